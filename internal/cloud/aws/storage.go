package aws

import (
	"context"
	"errors"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"

	"github.com/hemantobora/bucket-guard/internal/models"
)

// Error codes returned by S3 that carry meaning for the audit.
const (
	codeNoSuchBucketPolicy = "NoSuchBucketPolicy"
	codeNoSuchAccessBlock  = "NoSuchPublicAccessBlockConfiguration"
)

// DefaultPageSize is the ListBuckets page size hint.
const DefaultPageSize int32 = 1000

// S3API is the subset of the S3 client the audit uses. *s3.Client satisfies it.
type S3API interface {
	ListBuckets(ctx context.Context, params *s3.ListBucketsInput, optFns ...func(*s3.Options)) (*s3.ListBucketsOutput, error)
	GetPublicAccessBlock(ctx context.Context, params *s3.GetPublicAccessBlockInput, optFns ...func(*s3.Options)) (*s3.GetPublicAccessBlockOutput, error)
	GetBucketPolicyStatus(ctx context.Context, params *s3.GetBucketPolicyStatusInput, optFns ...func(*s3.Options)) (*s3.GetBucketPolicyStatusOutput, error)
	GetBucketAcl(ctx context.Context, params *s3.GetBucketAclInput, optFns ...func(*s3.Options)) (*s3.GetBucketAclOutput, error)
	PutPublicAccessBlock(ctx context.Context, params *s3.PutPublicAccessBlockInput, optFns ...func(*s3.Options)) (*s3.PutPublicAccessBlockOutput, error)
}

// Storage adapts S3 to internal.StorageAPI. Bucket-level calls are routed to a
// client bound to the bucket's home region, learned while listing, to avoid
// 301 PermanentRedirect responses on buckets outside the default region.
type Storage struct {
	PageSize      int32
	FollowRegions bool

	region    string
	newClient func(region string) S3API

	mu      sync.Mutex
	clients map[string]S3API
	regions map[string]string
}

// NewStorage creates a storage adapter. newClient builds a client for a region;
// an empty region means the default one.
func NewStorage(region string, newClient func(region string) S3API) *Storage {
	return &Storage{
		PageSize:      DefaultPageSize,
		FollowRegions: true,
		region:        region,
		newClient:     newClient,
		clients:       make(map[string]S3API),
		regions:       make(map[string]string),
	}
}

func (s *Storage) client(region string) S3API {
	if region == "" || !s.FollowRegions {
		region = s.region
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.clients[region]
	if !ok {
		c = s.newClient(region)
		s.clients[region] = c
	}
	return c
}

func (s *Storage) clientFor(bucket string) S3API {
	s.mu.Lock()
	region := s.regions[bucket]
	s.mu.Unlock()
	return s.client(region)
}

// ListBuckets returns one page of buckets and the continuation token S3 handed back.
func (s *Storage) ListBuckets(ctx context.Context, continuation string) ([]models.Bucket, string, error) {
	input := &s3.ListBucketsInput{}
	if s.PageSize > 0 {
		input.MaxBuckets = aws.Int32(s.PageSize)
	}
	if continuation != "" {
		input.ContinuationToken = aws.String(continuation)
	}

	out, err := s.client("").ListBuckets(ctx, input)
	if err != nil {
		return nil, "", wrap("list-buckets", "", err)
	}

	buckets := make([]models.Bucket, 0, len(out.Buckets))
	s.mu.Lock()
	for _, b := range out.Buckets {
		bucket := models.Bucket{
			Name:   aws.ToString(b.Name),
			Region: aws.ToString(b.BucketRegion),
		}
		if b.CreationDate != nil {
			bucket.CreationDate = *b.CreationDate
		}
		if bucket.Region != "" {
			s.regions[bucket.Name] = bucket.Region
		}
		buckets = append(buckets, bucket)
	}
	s.mu.Unlock()

	return buckets, aws.ToString(out.ContinuationToken), nil
}

// GetPublicAccessBlock returns the bucket's access-block flags.
func (s *Storage) GetPublicAccessBlock(ctx context.Context, bucket string) (models.AccessBlock, error) {
	out, err := s.clientFor(bucket).GetPublicAccessBlock(ctx, &s3.GetPublicAccessBlockInput{
		Bucket: aws.String(bucket),
	})
	if err != nil {
		return models.AccessBlock{}, wrap("get-public-access-block", bucket, err)
	}
	cfg := out.PublicAccessBlockConfiguration
	if cfg == nil {
		return models.AccessBlock{}, nil
	}
	return models.AccessBlock{
		BlockPublicACLs:       aws.ToBool(cfg.BlockPublicAcls),
		IgnorePublicACLs:      aws.ToBool(cfg.IgnorePublicAcls),
		BlockPublicPolicy:     aws.ToBool(cfg.BlockPublicPolicy),
		RestrictPublicBuckets: aws.ToBool(cfg.RestrictPublicBuckets),
	}, nil
}

// GetBucketPolicyStatus maps NoSuchBucketPolicy to models.NoPolicy.
func (s *Storage) GetBucketPolicyStatus(ctx context.Context, bucket string) (models.PolicyStatus, error) {
	out, err := s.clientFor(bucket).GetBucketPolicyStatus(ctx, &s3.GetBucketPolicyStatusInput{
		Bucket: aws.String(bucket),
	})
	if err != nil {
		if hasErrorCode(err, codeNoSuchBucketPolicy) {
			return models.NoPolicy, nil
		}
		return models.PolicyStatus{}, wrap("get-bucket-policy-status", bucket, err)
	}
	status := models.PolicyStatus{Attached: true}
	if out.PolicyStatus != nil {
		status.IsPublic = aws.ToBool(out.PolicyStatus.IsPublic)
	}
	return status, nil
}

// GetBucketACL returns the bucket's ACL grants.
func (s *Storage) GetBucketACL(ctx context.Context, bucket string) ([]models.Grant, error) {
	out, err := s.clientFor(bucket).GetBucketAcl(ctx, &s3.GetBucketAclInput{
		Bucket: aws.String(bucket),
	})
	if err != nil {
		return nil, wrap("get-bucket-acl", bucket, err)
	}
	grants := make([]models.Grant, 0, len(out.Grants))
	for _, g := range out.Grants {
		grants = append(grants, toGrant(g))
	}
	return grants, nil
}

// PutPublicAccessBlock writes all four flags in a single call.
func (s *Storage) PutPublicAccessBlock(ctx context.Context, bucket string, block models.AccessBlock) error {
	_, err := s.clientFor(bucket).PutPublicAccessBlock(ctx, &s3.PutPublicAccessBlockInput{
		Bucket: aws.String(bucket),
		PublicAccessBlockConfiguration: &s3types.PublicAccessBlockConfiguration{
			BlockPublicAcls:       aws.Bool(block.BlockPublicACLs),
			IgnorePublicAcls:      aws.Bool(block.IgnorePublicACLs),
			BlockPublicPolicy:     aws.Bool(block.BlockPublicPolicy),
			RestrictPublicBuckets: aws.Bool(block.RestrictPublicBuckets),
		},
	})
	if err != nil {
		return wrap("put-public-access-block", bucket, err)
	}
	return nil
}

func toGrant(g s3types.Grant) models.Grant {
	grant := models.Grant{Permission: string(g.Permission)}
	if g.Grantee != nil {
		grant.Grantee = models.Grantee{
			Type:        string(g.Grantee.Type),
			URI:         aws.ToString(g.Grantee.URI),
			ID:          aws.ToString(g.Grantee.ID),
			DisplayName: aws.ToString(g.Grantee.DisplayName),
		}
	}
	return grant
}

// IsAccessBlockMissing reports whether err means the bucket never had a
// public-access-block configuration.
func IsAccessBlockMissing(err error) bool {
	return hasErrorCode(err, codeNoSuchAccessBlock)
}

func hasErrorCode(err error, codes ...string) bool {
	var apiErr smithy.APIError
	if !errors.As(err, &apiErr) {
		return false
	}
	for _, code := range codes {
		if apiErr.ErrorCode() == code {
			return true
		}
	}
	return false
}

func wrap(operation, bucket string, err error) error {
	return &models.ProviderError{
		Provider:  "aws",
		Operation: operation,
		Resource:  bucket,
		Cause:     err,
	}
}
