package exporter

import (
	"context"
	"log/slog"

	"eventcli/internal/dataprocessing"
	"eventcli/internal/errors"
	"eventcli/pkg/contracts/domain"
)

// WriteRegistrations writes a registrations table to path, replacing any
// previous file atomically
func WriteRegistrations(ctx context.Context, path string, rows []domain.Registration, logger *slog.Logger) error {
	w := NewCSVWriter("", logger)
	sw, err := w.CreateStreamWriter(path, domain.Columns, false)
	if err != nil {
		return err
	}

	for _, r := range rows {
		if err := ctx.Err(); err != nil {
			sw.Abort()
			return err
		}
		if err := sw.WriteRecord(dataprocessing.FormatRecord(r)); err != nil {
			sw.Abort()
			return errors.NewStorageError("failed to write registration", err).
				WithContext("path", path).
				WithContext("registration_id", r.ID)
		}
	}
	return sw.Close()
}
