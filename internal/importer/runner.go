package importer

import (
	"context"
	"fmt"
	"sync"

	"asset-scan/internal/backend"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

// Updater writes one row to the backend.
type Updater interface {
	UpdateByRegistration(ctx context.Context, creds backend.Credentials, reg string, payload any) error
}

type Failure struct {
	RegistrationNumber string
	Err                error
}

type Result struct {
	Succeeded int
	Failures  []Failure
	// Problems holds validation messages; when set nothing was sent.
	Problems []string
}

func (r Result) Failed() int { return len(r.Failures) }

func (r Result) Message() string {
	if len(r.Problems) > 0 {
		return Summarize(r.Problems)
	}
	return fmt.Sprintf("Updated %d assets successfully. %d assets failed to update.", r.Succeeded, r.Failed())
}

// Runner validates a sheet and pushes every row to the backend.
type Runner struct {
	Backend Updater
	// Limit caps in-flight row updates; 0 means one goroutine per row.
	Limit int
	Today func() string
}

// Run is all-or-nothing on validation: a single bad row means no request is sent.
// After that every row is sent concurrently and succeeds or fails on its own.
func (r *Runner) Run(ctx context.Context, creds backend.Credentials, rows []Row) Result {
	if problems := Validate(rows); len(problems) > 0 {
		log.Infof("import rejected: %d validation problems in %d rows", len(problems), len(rows))
		return Result{Problems: problems}
	}

	today := r.Today()

	var (
		mu  sync.Mutex
		res Result
		g   errgroup.Group
	)
	if r.Limit > 0 {
		g.SetLimit(r.Limit)
	}

	for _, row := range rows {
		payload := MapRow(row, today)
		g.Go(func() error {
			err := r.Backend.UpdateByRegistration(ctx, creds, payload.RegistrationNumber, payload)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				log.WithError(err).Warnf("import: update %s failed", payload.RegistrationNumber)
				res.Failures = append(res.Failures, Failure{RegistrationNumber: payload.RegistrationNumber, Err: err})
				return nil
			}
			res.Succeeded++
			return nil
		})
	}
	_ = g.Wait()

	return res
}
