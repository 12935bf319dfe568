package cli

import (
	"context"

	"github.com/grounds-studio/grounds/internal/config"
	"github.com/grounds-studio/grounds/internal/db"
	"github.com/grounds-studio/grounds/internal/waitlist"
)

// signupStore records handler outcomes in the signup repository.
type signupStore struct {
	repo *db.SignupRepository
}

func (s signupStore) Record(ctx context.Context, rec waitlist.SignupRecord) error {
	return s.repo.Create(ctx, &db.Signup{
		Email:     rec.Email,
		Message:   rec.Message,
		Status:    rec.Status,
		MessageID: rec.MessageID,
		Error:     rec.Error,
		CreatedAt: rec.SubmittedAt,
	})
}

func openStore(ctx context.Context, cfg *config.Config) (*db.DB, error) {
	path := cfg.StorePath()
	if path == "" {
		return nil, &PreflightError{
			Message:  "signup store is not configured",
			Hint:     "Set store.path in grounds.yaml or GROUNDS_STORE_PATH",
			NextStep: "GROUNDS_STORE_PATH=data/waitlist.db grounds serve",
		}
	}
	database, err := db.Open(db.Config{Path: path, BusyTimeoutMs: cfg.Store.BusyTimeoutMs})
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(ctx); err != nil {
		database.Close()
		return nil, err
	}
	return database, nil
}
