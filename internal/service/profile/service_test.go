package profile

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/xDonalx/BuildStore/internal/domain"
)

type memoryUsers struct {
	byID map[int64]domain.User
}

func newMemoryUsers(users ...domain.User) *memoryUsers {
	r := &memoryUsers{byID: make(map[int64]domain.User)}
	for _, u := range users {
		r.byID[u.ID] = u
	}
	return r
}

func (r *memoryUsers) Create(_ context.Context, u domain.User) (*domain.User, error) {
	r.byID[u.ID] = u
	clone := u
	return &clone, nil
}

func (r *memoryUsers) GetByID(_ context.Context, id int64) (*domain.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := u
	return &clone, nil
}

func (r *memoryUsers) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	for _, u := range r.byID {
		if u.Username == username {
			clone := u
			return &clone, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (r *memoryUsers) UpdateProfile(_ context.Context, id int64, p domain.Profile, picture *string) (*domain.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	u.FirstName = p.FirstName
	u.LastName = p.LastName
	u.Patronymic = p.Patronymic
	u.Address = p.Address
	u.PhoneNumber = p.PhoneNumber
	u.AboutMe = p.AboutMe
	if picture != nil {
		u.ProfilePicture = *picture
	}
	r.byID[id] = u
	clone := u
	return &clone, nil
}

type stubAssets struct {
	saveErr error
	stored  []string
	removed []string
}

func (s *stubAssets) Save(_ context.Context, filename string, _ io.Reader) (string, error) {
	if s.saveErr != nil {
		return "", s.saveErr
	}
	s.stored = append(s.stored, filename)
	return filename, nil
}

func (s *stubAssets) Remove(name string) error {
	s.removed = append(s.removed, name)
	return nil
}

func TestUpdateOverwritesFields(t *testing.T) {
	repo := newMemoryUsers(domain.User{
		ID:        1,
		Username:  "alice",
		FirstName: "Old",
		AboutMe:   "old text",
	})
	svc := New(repo, &stubAssets{})

	u, err := svc.Update(context.Background(), 1, Input{
		Profile: domain.Profile{FirstName: "Alice", LastName: "Smith"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.FirstName != "Alice" || u.LastName != "Smith" {
		t.Fatalf("fields not updated: %+v", u)
	}
	// Overwrite is unconditional: fields absent from the input are blanked.
	if u.AboutMe != "" {
		t.Fatalf("expected AboutMe cleared, got %q", u.AboutMe)
	}
	if u.Username != "alice" {
		t.Fatalf("username must be immutable, got %q", u.Username)
	}
}

func TestUpdateStoresAvatar(t *testing.T) {
	repo := newMemoryUsers(domain.User{ID: 1, Username: "alice", ProfilePicture: "old.png"})
	assets := &stubAssets{}
	svc := New(repo, assets)

	u, err := svc.Update(context.Background(), 1, Input{
		Avatar: &Upload{Filename: "new.png", Reader: strings.NewReader("img")},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.ProfilePicture != "new.png" {
		t.Fatalf("avatar reference not updated: %q", u.ProfilePicture)
	}
	if len(assets.stored) != 1 {
		t.Fatalf("expected one stored avatar, got %v", assets.stored)
	}
}

func TestUpdateKeepsAvatarWhenAbsent(t *testing.T) {
	repo := newMemoryUsers(domain.User{ID: 1, Username: "alice", ProfilePicture: "old.png"})
	svc := New(repo, &stubAssets{})

	u, err := svc.Update(context.Background(), 1, Input{
		Profile: domain.Profile{FirstName: "Alice"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.ProfilePicture != "old.png" {
		t.Fatalf("avatar changed without upload: %q", u.ProfilePicture)
	}
}

func TestUpdateUnknownUser(t *testing.T) {
	assets := &stubAssets{}
	svc := New(newMemoryUsers(), assets)

	_, err := svc.Update(context.Background(), 42, Input{
		Avatar: &Upload{Filename: "a.png", Reader: strings.NewReader("img")},
	})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	// The stored avatar is cleaned up when the update fails.
	if len(assets.removed) != 1 {
		t.Fatalf("expected avatar cleanup, removed=%v", assets.removed)
	}
}
