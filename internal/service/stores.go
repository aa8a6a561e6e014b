package service

import (
	"context"
	"time"

	"github.com/fitlog/fitlog/internal/model"
)

// UserStore is the persistence surface for user rows. Implemented by
// *repository.Repository; errors follow the repository sentinels
// (repository.ErrUserNotFound, repository.ErrEmailExists).
type UserStore interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, id int64) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	UpdateUserEmail(ctx context.Context, id int64, email string) error
	UpdateUserPassword(ctx context.Context, id int64, passwordHash string) error
	DeleteUser(ctx context.Context, id int64) error
}

// MeasurementStore is the persistence surface for measurement rows. All
// mutations are ownership-scoped: a row belonging to another user behaves
// exactly like an absent row (repository.ErrMeasurementNotFound).
type MeasurementStore interface {
	CreateMeasurement(ctx context.Context, m *model.Measurement) error
	UpdateMeasurementFields(ctx context.Context, id, userID int64, fields model.MeasurementFields) error
	DeleteMeasurement(ctx context.Context, id, userID int64) error
	ListMeasurements(ctx context.Context, userID int64) ([]*model.Measurement, error)
}

// SessionStore associates opaque tokens with principals for the lifetime of
// a session. Implemented by *cache.Cache.
type SessionStore interface {
	SaveSession(ctx context.Context, token string, p *model.Principal, ttl time.Duration) error
	GetSession(ctx context.Context, token string) (*model.Principal, error)
	DeleteSession(ctx context.Context, token string) error
	DeleteUserSessions(ctx context.Context, userID int64) error
}

// ActivityPublisher records activity feed events without blocking the
// originating operation. Implemented by *activity.Publisher.
type ActivityPublisher interface {
	PublishAsync(userID int64, kind, detail string)
}
