package storage

import (
	"fmt"
	"io"

	"github.com/Znerf/headacheFront/internal"
	"github.com/Znerf/headacheFront/internal/config"
)

// Repositories bundles the three stores a running server needs. Both
// backends implement all of them on a single struct.
type Repositories struct {
	Users   UserRepository
	Records RecordRepository
	Weather WeatherRepository

	closer io.Closer
}

func (r *Repositories) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer.Close()
}

func NewRepositories(cfg *config.Config, logger internal.Logger) (*Repositories, error) {
	switch cfg.DBType {
	case "file":
		s, err := NewFileStorage(cfg.FileUsers, cfg.FileRecords, cfg.FileWeather, logger)
		if err != nil {
			return nil, err
		}
		return &Repositories{Users: s, Records: s, Weather: s, closer: s}, nil
	case "postgres":
		s, err := NewPostgresStorage(cfg.DBDSN, logger)
		if err != nil {
			return nil, err
		}
		return &Repositories{Users: s, Records: s, Weather: s, closer: s}, nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.DBType)
	}
}

var _ UserRepository = (*FileStorage)(nil)
var _ RecordRepository = (*FileStorage)(nil)
var _ WeatherRepository = (*FileStorage)(nil)
