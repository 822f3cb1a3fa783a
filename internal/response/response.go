// Package response builds the error bodies the API sends: the same
// {message, code} shape the front-end's client surfaces to users.
package response

import "github.com/Znerf/headacheFront/internal"

func BadRequest(msg string) *internal.AppError {
	return internal.NewAppError(400, msg)
}

func Unauthorized(msg string) *internal.AppError {
	return internal.NewAppError(401, msg)
}

func Forbidden(msg string) *internal.AppError {
	return internal.NewAppError(403, msg)
}

func NotFound(msg string) *internal.AppError {
	return internal.NewAppError(404, msg)
}

func Conflict(msg string) *internal.AppError {
	return internal.NewAppError(409, msg)
}

func InternalError(msg string) *internal.AppError {
	return internal.NewAppError(500, msg)
}
