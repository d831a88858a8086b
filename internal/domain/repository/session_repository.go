package repository

import (
	"context"

	"github.com/rvc-001/planning-sub000/internal/domain/entity"
)

// SessionStore keeps issued login sessions. The spreadsheet stays the
// source of truth for users; sessions are the only state this service
// owns itself.
type SessionStore interface {
	Save(ctx context.Context, session entity.Session) error
	Get(ctx context.Context, token string) (entity.Session, bool, error)
	Delete(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context) (int, error)
}
