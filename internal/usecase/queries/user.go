package queries

import (
	"context"

	"slot-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type UserQueries interface {
	// GetCurrentUser fails for deactivated accounts.
	GetCurrentUser(ctx context.Context, userID uuid.UUID) (*UserView, error)
}

type UserReadStore interface {
	// FindByID returns shared.ErrUserNotFound when the row is missing.
	FindByID(ctx context.Context, id uuid.UUID) (*UserView, error)
}

type userQueriesImpl struct {
	readStore UserReadStore
}

func NewUserQueries(readStore UserReadStore) UserQueries {
	return &userQueriesImpl{
		readStore: readStore,
	}
}

func (q *userQueriesImpl) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*UserView, error) {
	u, err := q.readStore.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !u.IsActive {
		return nil, shared.ErrUserInactive
	}
	return u, nil
}
