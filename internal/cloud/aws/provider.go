// internal/cloud/aws/provider.go
package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/iam"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sts"

	"github.com/hemantobora/bucket-guard/internal"
	"github.com/hemantobora/bucket-guard/internal/models"
)

const defaultRegion = "us-east-1"

// Provider holds AWS-specific clients and config
type Provider struct {
	region    string
	endpoint  string
	storage   *Storage
	STSClient STSAPI
	IAMClient IAMAPI
	AWSConfig aws.Config
}

// STSAPI is the subset of the STS client used to resolve the caller.
type STSAPI interface {
	GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
}

// IAMAPI is the subset of the IAM client used to resolve the account alias.
type IAMAPI interface {
	ListAccountAliases(ctx context.Context, params *iam.ListAccountAliasesInput, optFns ...func(*iam.Options)) (*iam.ListAccountAliasesOutput, error)
}

// ProviderOption is a functional option for provider configuration
type ProviderOption func(*providerOptions)

type providerOptions struct {
	profile      string
	region       string
	endpoint     string
	accessKey    string
	secretKey    string
	sessionToken string
	pageSize     int32
}

// WithRegion specifies the AWS region
func WithRegion(region string) ProviderOption {
	return func(o *providerOptions) {
		o.region = region
	}
}

// WithProfile specifies the AWS profile to use
func WithProfile(profile string) ProviderOption {
	return func(o *providerOptions) {
		o.profile = profile
	}
}

// WithStaticCredentials uses explicit keys instead of the default credential chain
func WithStaticCredentials(accessKey, secretKey, sessionToken string) ProviderOption {
	return func(o *providerOptions) {
		o.accessKey = accessKey
		o.secretKey = secretKey
		o.sessionToken = sessionToken
	}
}

// WithEndpoint points the S3 client at an S3-compatible endpoint (path-style addressing)
func WithEndpoint(endpoint string) ProviderOption {
	return func(o *providerOptions) {
		o.endpoint = endpoint
	}
}

// WithPageSize sets the ListBuckets page size hint
func WithPageSize(n int32) ProviderOption {
	return func(o *providerOptions) {
		o.pageSize = n
	}
}

// loadAWSConfig loads AWS configuration with optional profile and static keys
func loadAWSConfig(ctx context.Context, opts *providerOptions) (aws.Config, error) {
	optFns := []func(*config.LoadOptions) error{}
	if opts.profile != "" {
		optFns = append(optFns, config.WithSharedConfigProfile(opts.profile))
	}
	if opts.region != "" {
		optFns = append(optFns, config.WithRegion(opts.region))
	}
	if opts.accessKey != "" {
		optFns = append(optFns, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(opts.accessKey, opts.secretKey, opts.sessionToken),
		))
	}
	cfg, err := config.LoadDefaultConfig(ctx, optFns...)
	if err != nil {
		return aws.Config{}, &models.ProviderError{
			Provider:  "aws",
			Operation: "load-config",
			Resource:  fmt.Sprintf("profile:%s", opts.profile),
			Cause:     fmt.Errorf("failed to load AWS config: %w", err),
		}
	}
	if cfg.Region == "" {
		cfg.Region = defaultRegion
	}
	return cfg, nil
}

// NewProvider creates a new AWS provider with S3, STS and IAM clients
func NewProvider(ctx context.Context, options ...ProviderOption) (*Provider, error) {
	opts := &providerOptions{}
	for _, opt := range options {
		opt(opts)
	}

	cfg, err := loadAWSConfig(ctx, opts)
	if err != nil {
		return nil, err
	}

	endpoint := opts.endpoint
	newClient := func(region string) S3API {
		return s3.NewFromConfig(cfg, func(o *s3.Options) {
			if region != "" {
				o.Region = region
			}
			if endpoint != "" {
				o.BaseEndpoint = aws.String(endpoint)
				o.UsePathStyle = true
			}
		})
	}

	storage := NewStorage(cfg.Region, newClient)
	if opts.pageSize > 0 {
		storage.PageSize = opts.pageSize
	}
	// S3-compatible stores have a single endpoint; bucket regions are meaningless there.
	storage.FollowRegions = endpoint == ""

	return &Provider{
		region:    cfg.Region,
		endpoint:  endpoint,
		storage:   storage,
		STSClient: sts.NewFromConfig(cfg),
		IAMClient: iam.NewFromConfig(cfg),
		AWSConfig: cfg,
	}, nil
}

// GetProviderType returns the provider type
func (p *Provider) GetProviderType() string {
	if p.endpoint != "" {
		return "s3-compatible"
	}
	return "aws"
}

func (p *Provider) GetRegion() string {
	return p.region
}

// Storage returns the bucket control-plane adapter
func (p *Provider) Storage() internal.StorageAPI {
	return p.storage
}
