package internal

import (
	"context"

	"github.com/hemantobora/bucket-guard/internal/models"
)

// StorageAPI defines the bucket control-plane operations the auditor needs.
// Implementations handle provider-specific APIs (AWS S3, S3-compatible stores).
type StorageAPI interface {
	// ListBuckets returns one page of buckets. An empty next token means the
	// listing is exhausted.
	ListBuckets(ctx context.Context, continuation string) (buckets []models.Bucket, next string, err error)

	// GetPublicAccessBlock fails if the bucket never had a configuration.
	GetPublicAccessBlock(ctx context.Context, bucket string) (models.AccessBlock, error)

	// GetBucketPolicyStatus returns models.NoPolicy, not an error, when the
	// bucket has no policy attached.
	GetBucketPolicyStatus(ctx context.Context, bucket string) (models.PolicyStatus, error)

	GetBucketACL(ctx context.Context, bucket string) ([]models.Grant, error)

	PutPublicAccessBlock(ctx context.Context, bucket string, block models.AccessBlock) error
}

// IdentityProvider resolves the account the credentials belong to
type IdentityProvider interface {
	CallerIdentity(ctx context.Context) (*models.AccountInfo, error)
}
