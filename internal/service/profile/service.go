// Package profile updates a user's profile fields and avatar.
package profile

import (
	"context"
	"fmt"
	"io"

	"github.com/xDonalx/BuildStore/internal/domain"
	userrepo "github.com/xDonalx/BuildStore/internal/repository/user"
)

// AssetStore persists uploaded avatar files.
type AssetStore interface {
	Save(ctx context.Context, filename string, r io.Reader) (string, error)
	Remove(name string) error
}

// Service applies profile updates.
type Service struct {
	repo   userrepo.Repository
	assets AssetStore
}

func New(repo userrepo.Repository, assets AssetStore) *Service {
	return &Service{repo: repo, assets: assets}
}

// Upload is an incoming avatar file.
type Upload struct {
	Filename string
	Reader   io.Reader
}

// Input carries the profile form fields plus an optional avatar.
type Input struct {
	Profile domain.Profile
	Avatar  *Upload
}

// Update overwrites the user's mutable profile fields as a whole and,
// when an avatar is supplied, stores it and updates the reference.
// Returns domain.ErrNotFound for an unknown user id. A stored avatar
// is removed again if the database update fails.
func (s *Service) Update(ctx context.Context, userID int64, in Input) (*domain.User, error) {
	var picture *string
	if in.Avatar != nil && in.Avatar.Reader != nil {
		stored, err := s.assets.Save(ctx, in.Avatar.Filename, in.Avatar.Reader)
		if err != nil {
			return nil, fmt.Errorf("store avatar: %w", err)
		}
		picture = &stored
	}

	u, err := s.repo.UpdateProfile(ctx, userID, in.Profile, picture)
	if err != nil {
		if picture != nil {
			_ = s.assets.Remove(*picture)
		}
		return nil, err
	}
	return u, nil
}
