// Package catalog manages the product catalog and its image assets.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xDonalx/BuildStore/internal/domain"
	productrepo "github.com/xDonalx/BuildStore/internal/repository/product"
)

var (
	// ErrMissingImage is returned when no image upload accompanies a
	// new product.
	ErrMissingImage = errors.New("image required")
	// ErrMissingFields is returned when name or description is empty.
	ErrMissingFields = errors.New("name and description required")
)

// AssetStore persists uploaded image files.
type AssetStore interface {
	Save(ctx context.Context, filename string, r io.Reader) (string, error)
	Remove(name string) error
}

// Service implements catalog CRUD.
type Service struct {
	repo   productrepo.Repository
	assets AssetStore
}

func New(repo productrepo.Repository, assets AssetStore) *Service {
	return &Service{repo: repo, assets: assets}
}

// Upload is an incoming image file.
type Upload struct {
	Filename string
	Reader   io.Reader
}

// CreateInput carries the add-product form fields.
type CreateInput struct {
	Name        string
	Description string
	Price       string
	Image       *Upload
}

// Create validates the input, stores the image asset, and persists the
// product. If the insert fails the stored asset is removed again so no
// orphan file is left behind.
func (s *Service) Create(ctx context.Context, in CreateInput) (*domain.Product, error) {
	name := strings.TrimSpace(in.Name)
	description := strings.TrimSpace(in.Description)
	if name == "" || description == "" {
		return nil, ErrMissingFields
	}
	if in.Image == nil || in.Image.Reader == nil {
		return nil, ErrMissingImage
	}
	priceCents, err := domain.ParsePrice(in.Price)
	if err != nil {
		return nil, err
	}

	stored, err := s.assets.Save(ctx, in.Image.Filename, in.Image.Reader)
	if err != nil {
		return nil, fmt.Errorf("store image: %w", err)
	}

	p, err := s.repo.Create(ctx, domain.Product{
		Name:        name,
		Description: description,
		PriceCents:  priceCents,
		Image:       stored,
	})
	if err != nil {
		_ = s.assets.Remove(stored)
		return nil, err
	}
	return p, nil
}

// List returns all products in stable id order.
func (s *Service) List(ctx context.Context) ([]domain.Product, error) {
	return s.repo.List(ctx)
}

// Get returns a product by id, or domain.ErrNotFound.
func (s *Service) Get(ctx context.Context, id int64) (*domain.Product, error) {
	return s.repo.GetByID(ctx, id)
}

// Delete removes a product and best-effort removes its image asset.
// Carts that already hold a snapshot of the product are unaffected.
func (s *Service) Delete(ctx context.Context, id int64) error {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if p.Image != "" {
		_ = s.assets.Remove(p.Image)
	}
	return nil
}
