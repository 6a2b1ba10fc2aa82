package audit

import (
	"context"

	"github.com/hemantobora/bucket-guard/internal"
	"github.com/hemantobora/bucket-guard/internal/models"
)

// BlockPublicAccess turns on all four public-access-block flags with a single
// write. No read-before-write is done; repeating it is harmless.
func BlockPublicAccess(ctx context.Context, api internal.StorageAPI, bucket string) error {
	return api.PutPublicAccessBlock(ctx, bucket, models.FullAccessBlock())
}
