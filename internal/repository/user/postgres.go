package user

import (
	"context"
	"errors"
	"io"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/xDonalx/BuildStore/internal/domain"
)

const userColumns = `id, username, password_hash, role, profile_picture, first_name, last_name, patronymic, address, phone_number, about_me, created_at`

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

// NewPostgres returns a Repository backed by Postgres.
func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) Create(ctx context.Context, u domain.User) (*domain.User, error) {
	const q = `
INSERT INTO users (username, password_hash, role)
VALUES ($1, $2, $3)
RETURNING ` + userColumns
	role := u.Role
	if role == "" {
		role = domain.RoleUser
	}
	res, err := r.scanUser(r.pool.QueryRow(ctx, q, u.Username, u.PasswordHash, role))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			r.logger.Printf("user repo: create username=%s already exists", u.Username)
			return nil, domain.ErrAlreadyExists
		}
		r.logger.Printf("user repo: create username=%s error=%v", u.Username, err)
		return nil, err
	}
	r.logger.Printf("user repo: created username=%s id=%d", res.Username, res.ID)
	return res, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	res, err := r.scanUser(r.pool.QueryRow(ctx, q, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Printf("user repo: get id=%d not found", id)
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("user repo: get id=%d error=%v", id, err)
		return nil, err
	}
	return res, nil
}

func (r *postgresRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	const q = `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	res, err := r.scanUser(r.pool.QueryRow(ctx, q, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Printf("user repo: get username=%s not found", username)
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("user repo: get username=%s error=%v", username, err)
		return nil, err
	}
	return res, nil
}

func (r *postgresRepo) UpdateProfile(ctx context.Context, id int64, p domain.Profile, profilePicture *string) (*domain.User, error) {
	const q = `
UPDATE users
SET first_name = $2,
    last_name = $3,
    patronymic = $4,
    address = $5,
    phone_number = $6,
    about_me = $7,
    profile_picture = COALESCE($8, profile_picture)
WHERE id = $1
RETURNING ` + userColumns
	res, err := r.scanUser(r.pool.QueryRow(ctx, q, id, p.FirstName, p.LastName, p.Patronymic, p.Address, p.PhoneNumber, p.AboutMe, profilePicture))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			r.logger.Printf("user repo: update profile id=%d not found", id)
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("user repo: update profile id=%d error=%v", id, err)
		return nil, err
	}
	r.logger.Printf("user repo: updated profile id=%d", id)
	return res, nil
}

func (r *postgresRepo) scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	if err := row.Scan(
		&u.ID,
		&u.Username,
		&u.PasswordHash,
		&u.Role,
		&u.ProfilePicture,
		&u.FirstName,
		&u.LastName,
		&u.Patronymic,
		&u.Address,
		&u.PhoneNumber,
		&u.AboutMe,
		&u.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &u, nil
}
