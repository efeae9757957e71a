package history

import (
	"context"
	"time"
)

// Record describes one finished upload.
type Record struct {
	ID                string    `json:"id"`
	ShareLink         string    `json:"shareLink"`
	ContainerUUID     string    `json:"containerUUID"`
	Files             []string  `json:"files"`
	TotalSize         int64     `json:"totalSize"`
	PasswordProtected bool      `json:"passwordProtected"`
	CreatedAt         time.Time `json:"createdAt"`
	ExpiresAt         time.Time `json:"expiresAt"`
}

type Repository interface {
	Add(ctx context.Context, r *Record) error
	// List returns records oldest first.
	List(ctx context.Context) ([]Record, error)
	Clear(ctx context.Context) error
	Close() error
}
