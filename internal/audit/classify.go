package audit

import (
	"context"

	"github.com/hemantobora/bucket-guard/internal"
)

// IsPublic reports whether a bucket is publicly reachable.
//
// The access block is read first and any error, including a bucket that never
// had one configured, is returned. A bucket without a policy is private
// regardless of its ACL. Otherwise a grant to AllUsers or AuthenticatedUsers
// makes it public outright; failing that, it is public when the policy is
// public and BlockPublicAcls and BlockPublicPolicy are not both set.
func IsPublic(ctx context.Context, api internal.StorageAPI, bucket string) (bool, error) {
	block, err := api.GetPublicAccessBlock(ctx, bucket)
	if err != nil {
		return false, err
	}

	status, err := api.GetBucketPolicyStatus(ctx, bucket)
	if err != nil {
		return false, err
	}
	if !status.Attached {
		return false, nil
	}

	grants, err := api.GetBucketACL(ctx, bucket)
	if err != nil {
		return false, err
	}
	for _, g := range grants {
		if g.IsPublic() {
			return true, nil
		}
	}

	return status.IsPublic && !(block.BlockPublicACLs && block.BlockPublicPolicy), nil
}
