package server

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Znerf/headacheFront/internal"
	"github.com/Znerf/headacheFront/internal/auth"
	"github.com/Znerf/headacheFront/internal/service"
	"github.com/Znerf/headacheFront/internal/storage"
)

func PostRecord(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := auth.CurrentUser(c)

		var body service.CreateRecordRequest
		if err := c.ShouldBindJSON(&body); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}
		if err := service.ValidateCreateRecordRequest(&body); err != nil {
			HandleError(c, app.Logger(), err, 400, "Date must be YYYY-MM-DD and times HH:MM")
			return
		}

		rec, err := service.CreateRecord(c.Request.Context(), app.RecordRepo(), user, &body)
		if err != nil {
			if errors.Is(err, service.ErrRecordExists) {
				HandleError(c, app.Logger(), err, 409, "An entry for this date already exists")
				return
			}
			HandleError(c, app.Logger(), err, 500, "Failed to save entry")
			return
		}

		app.Metrics().RecordSaved()
		c.JSON(http.StatusCreated, rec)
	}
}

// GetRecords serves one page of the user's entries, newest first. Query
// params limit and page both default sensibly.
func GetRecords(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := auth.CurrentUser(c)

		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
		page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))

		result, err := service.ListRecords(c.Request.Context(), app.RecordRepo(), user, limit, page)
		if err != nil {
			HandleError(c, app.Logger(), err, 500, "Failed to fetch entries")
			return
		}
		c.JSON(http.StatusOK, result)
	}
}

func GetRecordByDate(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := auth.CurrentUser(c)

		date := c.Query("date")
		if _, err := parseDate(date); err != nil {
			HandleError(c, app.Logger(), err, 400, "Query param 'date' must be YYYY-MM-DD")
			return
		}

		rec, err := service.GetRecordByDate(c.Request.Context(), app.RecordRepo(), user, date)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				HandleError(c, app.Logger(), err, 404, "No entry for this date")
				return
			}
			HandleError(c, app.Logger(), err, 500, "Failed to fetch entry")
			return
		}
		c.JSON(http.StatusOK, rec)
	}
}

func PutRecord(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := auth.CurrentUser(c)

		var body service.RecordFieldsRequest
		if err := c.ShouldBindJSON(&body); err != nil {
			HandleError(c, app.Logger(), err, 400, "Invalid JSON")
			return
		}
		if err := service.ValidateRecordFieldsRequest(&body); err != nil {
			HandleError(c, app.Logger(), err, 400, "Times must be HH:MM")
			return
		}

		rec, err := service.UpdateRecord(c.Request.Context(), app.RecordRepo(), user, c.Param("id"), &body)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				HandleError(c, app.Logger(), err, 404, "Entry not found")
				return
			}
			HandleError(c, app.Logger(), err, 500, "Failed to save entry")
			return
		}

		app.Metrics().RecordSaved()
		c.JSON(http.StatusOK, rec)
	}
}

func DeleteRecord(app App) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := auth.CurrentUser(c)

		err := service.DeleteRecord(c.Request.Context(), app.RecordRepo(), user, c.Param("id"))
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				HandleError(c, app.Logger(), err, 404, "Entry not found")
				return
			}
			HandleError(c, app.Logger(), err, 500, "Failed to delete entry")
			return
		}
		c.Status(http.StatusNoContent)
	}
}

func parseDate(date string) (time.Time, error) {
	return time.Parse(internal.DateLayout, date)
}
