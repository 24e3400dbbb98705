package service

import (
	"context"
	"io"

	"asset-scan/internal/backend"
	"asset-scan/internal/importer"
	"asset-scan/internal/metrics"
)

type ImportService struct {
	Runner *importer.Runner
}

// Import reads an xlsx upload and runs it. Unreadable files never reach validation.
func (s *ImportService) Import(ctx context.Context, creds backend.Credentials, r io.Reader) (importer.Result, error) {
	if creds.Empty() {
		return importer.Result{}, userError("Please log in to update assets", backend.ErrUnauthorized)
	}

	rows, err := importer.ReadSheet(r)
	if err != nil {
		return importer.Result{}, userError("Error processing Excel file: "+err.Error(), err)
	}

	res := s.Runner.Run(ctx, creds, rows)
	if len(res.Problems) > 0 {
		metrics.ImportRows.WithLabelValues(metrics.Invalid).Add(float64(len(rows)))
		return res, nil
	}
	metrics.ImportRows.WithLabelValues(metrics.OK).Add(float64(res.Succeeded))
	for _, f := range res.Failures {
		metrics.ImportRows.WithLabelValues(outcome(f.Err)).Inc()
	}
	return res, nil
}
