package models

import (
	"errors"
	"fmt"
)

// ErrPaginationLoop is returned when a provider hands back a continuation token
// that was already consumed during the same enumeration.
var ErrPaginationLoop = errors.New("provider returned a repeated continuation token")

// ProviderError represents cloud provider operation errors
type ProviderError struct {
	Provider  string // "aws", "s3-compatible"
	Operation string // "list-buckets", "get-public-access-block", etc.
	Resource  string // bucket name, profile, etc.
	Cause     error
}

func (e *ProviderError) Error() string {
	if e.Resource == "" {
		return fmt.Sprintf("%s provider error during %s: %v", e.Provider, e.Operation, e.Cause)
	}
	return fmt.Sprintf("%s provider error during %s operation on resource '%s': %v",
		e.Provider, e.Operation, e.Resource, e.Cause)
}

func (e *ProviderError) Unwrap() error {
	return e.Cause
}

// Audit phases a bucket can fail in.
const (
	PhaseClassify  = "classify"
	PhaseApprove   = "approve"
	PhaseRemediate = "remediate"
)

// BucketError represents a failure isolated to a single bucket during an audit run
type BucketError struct {
	Bucket string
	Phase  string // PhaseClassify, PhaseApprove or PhaseRemediate
	Cause  error
}

func (e *BucketError) Error() string {
	return fmt.Sprintf("bucket '%s' failed during %s: %v", e.Bucket, e.Phase, e.Cause)
}

func (e *BucketError) Unwrap() error {
	return e.Cause
}
