package ports

import (
	"context"

	"github.com/way2pg/way2pg-api/internal/core/domain"
)

// MediaStore abstracts the external image host. Upload returns a stable URL
// plus the host-assigned identifier used for deletion; Delete is idempotent
// and safe to retry.
type MediaStore interface {
	Upload(ctx context.Context, data []byte, folder, filename string) (domain.Image, error)
	Delete(ctx context.Context, publicID string) error
}
