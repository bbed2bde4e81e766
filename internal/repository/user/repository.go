package user

import (
	"context"

	"github.com/xDonalx/BuildStore/internal/domain"
)

type Repository interface {
	Create(ctx context.Context, u domain.User) (*domain.User, error)
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	UpdateProfile(ctx context.Context, id int64, p domain.Profile, profilePicture *string) (*domain.User, error)
}
