// Package session implements the server-side session state: the
// logged-in user id, the shopping cart, and pending flash messages,
// keyed by a random session id carried in a cookie.
package session

import (
	"context"

	"github.com/xDonalx/BuildStore/internal/domain"
)

// Data is the per-session state. It is JSON-encoded by stores.
type Data struct {
	UserID  *int64      `json:"userId,omitempty"`
	Cart    domain.Cart `json:"cart"`
	Flashes []string    `json:"flashes,omitempty"`
}

// Store persists session data by session id. Get returns
// domain.ErrNotFound for unknown or expired ids.
type Store interface {
	Get(ctx context.Context, sid string) (*Data, error)
	Save(ctx context.Context, sid string, data *Data) error
	Delete(ctx context.Context, sid string) error
}
