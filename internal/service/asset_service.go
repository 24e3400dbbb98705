package service

import (
	"context"
	"strings"

	"asset-scan/internal/asset"
	"asset-scan/internal/backend"
	"asset-scan/internal/metrics"

	log "github.com/sirupsen/logrus"
)

type AssetBackend interface {
	AssetByRegistration(ctx context.Context, creds backend.Credentials, reg string) (backend.Record, error)
	UpdateAsset(ctx context.Context, creds backend.Credentials, id string, payload any) (backend.Record, error)
}

// Loaded is a fetched record and the form hydrated from it.
type Loaded struct {
	Registration string
	Record       backend.Record
	Form         asset.Form
}

type AssetService struct {
	Backend AssetBackend
	Today   func() string
}

// Lookup turns decoded QR text into an editable asset. Text that is not a
// registration number never reaches the backend.
func (s *AssetService) Lookup(ctx context.Context, creds backend.Credentials, text string) (Loaded, error) {
	t := strings.TrimSpace(text)
	if t == "" {
		metrics.Lookups.WithLabelValues(metrics.Invalid).Inc()
		return Loaded{}, userError("Invalid QR", nil)
	}
	if !asset.ValidRegistration(t) {
		metrics.Lookups.WithLabelValues(metrics.Invalid).Inc()
		return Loaded{}, userError("Data not found", nil)
	}

	rec, err := s.Backend.AssetByRegistration(ctx, creds, t)
	metrics.Lookups.WithLabelValues(outcome(err)).Inc()
	if err != nil {
		switch {
		case backend.IsUnauthorized(err):
			return Loaded{}, userError("Please log in again.", err)
		case backend.IsNetwork(err):
			return Loaded{}, userError("Network error", err)
		}
		log.WithError(err).Debugf("lookup %s failed", t)
		return Loaded{}, userError("Not found", err)
	}

	return Loaded{
		Registration: t,
		Record:       rec,
		Form:         asset.FromRecord(rec),
	}, nil
}

// Save pushes the form to the asset with internal id. On failure the caller keeps
// the user's edits; nothing is rolled back.
func (s *AssetService) Save(ctx context.Context, creds backend.Credentials, id string, form asset.Form) (asset.Form, error) {
	if strings.TrimSpace(id) == "" {
		return form, userError("Scan an asset QR first", nil)
	}
	form.Normalize()
	if problems := form.Validate(); len(problems) > 0 {
		metrics.Updates.WithLabelValues(metrics.Invalid).Inc()
		return form, userError(strings.Join(problems, " "), nil)
	}

	payload := form.Payload(s.Today())
	rec, err := s.Backend.UpdateAsset(ctx, creds, id, payload)
	metrics.Updates.WithLabelValues(outcome(err)).Inc()
	if err != nil {
		switch {
		case backend.IsUnauthorized(err):
			return form, userError("Please log in again.", err)
		case backend.IsNetwork(err):
			return form, userError("Network error", err)
		}
		return form, userError(backend.Message(err, "Failed to update"), err)
	}

	saved := form
	saved.VerificationDate = payload.VerificationDate
	if !rec.IsZero() {
		if d := rec.String("verification_date"); d != "" {
			saved.VerificationDate = d
		}
	}
	return saved, nil
}
