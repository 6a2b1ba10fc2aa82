// Package audit classifies buckets as public or private and blocks public
// access on the ones that are exposed.
package audit

import (
	"context"
	"fmt"

	"github.com/hemantobora/bucket-guard/internal"
	"github.com/hemantobora/bucket-guard/internal/models"
)

// ListAllBuckets follows continuation tokens until the provider stops
// returning one and returns every bucket in provider order.
func ListAllBuckets(ctx context.Context, api internal.StorageAPI) ([]models.Bucket, error) {
	var (
		all   []models.Bucket
		token string
		seen  = map[string]bool{}
	)
	for {
		page, next, err := api.ListBuckets(ctx, token)
		if err != nil {
			return nil, fmt.Errorf("failed to list buckets: %w", err)
		}
		all = append(all, page...)
		if next == "" {
			return all, nil
		}
		if seen[next] {
			return nil, fmt.Errorf("failed to list buckets: %w (%q)", models.ErrPaginationLoop, next)
		}
		seen[next] = true
		token = next
	}
}
