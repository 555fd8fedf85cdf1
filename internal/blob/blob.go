package blob

import (
	"context"
	"fmt"

	"github.com/siddheshbandgar/read-it-aloud/internal/config"
)

// Store persists audio artifacts and serves them back. Upload returns the
// public URL for the stored object.
type Store interface {
	Upload(ctx context.Context, key string, data []byte, contentType string) (string, error)
	Get(ctx context.Context, key string) ([]byte, string, error)
	Delete(ctx context.Context, key string) error
}

// Open selects a Store implementation from the configured driver.
func Open(cfg *config.Config) (Store, error) {
	switch cfg.BlobDriver {
	case "minio":
		return NewMinio(cfg)
	case "memory":
		return NewMemory(cfg.BaseURL), nil
	default:
		return nil, fmt.Errorf("unknown blob driver %q", cfg.BlobDriver)
	}
}
