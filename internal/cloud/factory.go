package cloud

import (
	"context"
	"fmt"

	"github.com/hemantobora/bucket-guard/internal/cloud/aws"
	"github.com/hemantobora/bucket-guard/internal/config"
)

// Factory creates storage providers based on configuration
type Factory struct {
	constructors map[string]func(ctx context.Context, cfg *config.Config) (Provider, error)
}

// NewFactory creates a new provider factory
func NewFactory() *Factory {
	f := &Factory{constructors: map[string]func(context.Context, *config.Config) (Provider, error){}}
	f.Register(config.ProviderAWS, createAWSProvider)
	f.Register(config.ProviderS3Compatible, createAWSProvider)
	return f
}

// Register adds or replaces the constructor for a provider type
func (f *Factory) Register(providerType string, fn func(ctx context.Context, cfg *config.Config) (Provider, error)) {
	f.constructors[providerType] = fn
}

// CreateProvider creates a provider for cfg.Provider
// Supported types: "aws", "s3-compatible"
func (f *Factory) CreateProvider(ctx context.Context, cfg *config.Config) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	fn, ok := f.constructors[cfg.Provider]
	if !ok {
		return nil, fmt.Errorf("unsupported provider type: %s", cfg.Provider)
	}
	return fn(ctx, cfg)
}

func createAWSProvider(ctx context.Context, cfg *config.Config) (Provider, error) {
	opts := []aws.ProviderOption{
		aws.WithProfile(cfg.Profile),
		aws.WithRegion(cfg.Region),
		aws.WithPageSize(int32(cfg.PageSize)),
	}
	if cfg.AccessKeyID != "" {
		opts = append(opts, aws.WithStaticCredentials(cfg.AccessKeyID, cfg.SecretAccessKey, cfg.SessionToken))
	}
	if cfg.Endpoint != "" {
		opts = append(opts, aws.WithEndpoint(cfg.Endpoint))
	}
	p, err := aws.NewProvider(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize AWS provider: %w", err)
	}
	return p, nil
}
