package identity

import (
	"context"
	"errors"
	"testing"

	"github.com/xDonalx/BuildStore/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

// memoryRepo is a lightweight in-memory user repository for tests.
type memoryRepo struct {
	nextID int64
	byID   map[int64]domain.User
	byName map[string]int64
}

func newMemoryRepo() *memoryRepo {
	return &memoryRepo{byID: make(map[int64]domain.User), byName: make(map[string]int64)}
}

func (r *memoryRepo) Create(_ context.Context, u domain.User) (*domain.User, error) {
	if _, exists := r.byName[u.Username]; exists {
		return nil, domain.ErrAlreadyExists
	}
	r.nextID++
	u.ID = r.nextID
	r.byID[u.ID] = u
	r.byName[u.Username] = u.ID
	clone := u
	return &clone, nil
}

func (r *memoryRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	u, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := u
	return &clone, nil
}

func (r *memoryRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	id, ok := r.byName[username]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return r.GetByID(context.Background(), id)
}

func (r *memoryRepo) UpdateProfile(_ context.Context, id int64, p domain.Profile, picture *string) (*domain.User, error) {
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

func TestRegisterHashesPassword(t *testing.T) {
	svc := New(newMemoryRepo())

	u, err := svc.Register(context.Background(), "alice", "s3cret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.PasswordHash == "s3cret" || u.PasswordHash == "" {
		t.Fatalf("password stored in plaintext or empty: %q", u.PasswordHash)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("s3cret")); err != nil {
		t.Fatalf("hash does not verify: %v", err)
	}
	if u.Role != domain.RoleUser {
		t.Fatalf("expected default role %q, got %q", domain.RoleUser, u.Role)
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	repo := newMemoryRepo()
	svc := New(repo)
	ctx := context.Background()

	first, err := svc.Register(ctx, "alice", "s3cret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := svc.Register(ctx, "alice", "other"); !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}

	// The first account is unaffected.
	got, err := repo.GetByID(ctx, first.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.PasswordHash != first.PasswordHash {
		t.Fatal("first user's record changed after the failed duplicate")
	}
}

func TestRegisterRequiresCredentials(t *testing.T) {
	svc := New(newMemoryRepo())
	ctx := context.Background()

	for _, tc := range []struct{ username, password string }{
		{"", "pw"},
		{"   ", "pw"},
		{"bob", ""},
	} {
		if _, err := svc.Register(ctx, tc.username, tc.password); !errors.Is(err, ErrMissingCredentials) {
			t.Fatalf("(%q, %q): expected ErrMissingCredentials, got %v", tc.username, tc.password, err)
		}
	}
}

func TestAuthenticate(t *testing.T) {
	svc := New(newMemoryRepo())
	ctx := context.Background()

	if _, err := svc.Register(ctx, "alice", "s3cret"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	u, err := svc.Authenticate(ctx, "alice", "s3cret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if u.Username != "alice" {
		t.Fatalf("unexpected user: %+v", u)
	}
}

func TestAuthenticateUniformFailure(t *testing.T) {
	svc := New(newMemoryRepo())
	ctx := context.Background()

	if _, err := svc.Register(ctx, "alice", "s3cret"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	_, unknownErr := svc.Authenticate(ctx, "nobody", "s3cret")
	_, wrongPwErr := svc.Authenticate(ctx, "alice", "wrong")

	if !errors.Is(unknownErr, ErrInvalidCredentials) || !errors.Is(wrongPwErr, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for both, got %v and %v", unknownErr, wrongPwErr)
	}
	// The error must not reveal which check failed.
	if unknownErr.Error() != wrongPwErr.Error() {
		t.Fatalf("error messages differ: %q vs %q", unknownErr, wrongPwErr)
	}
}

func TestUserByID(t *testing.T) {
	svc := New(newMemoryRepo())
	ctx := context.Background()

	u, err := svc.Register(ctx, "alice", "s3cret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := svc.UserByID(ctx, u.ID)
	if err != nil || got.Username != "alice" {
		t.Fatalf("unexpected result: %+v, %v", got, err)
	}

	if _, err := svc.UserByID(ctx, 999); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
