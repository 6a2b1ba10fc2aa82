// Package cloud defines the provider interface the audit runs against.
// This allows bucket-guard to support multiple storage providers.
package cloud

import "github.com/hemantobora/bucket-guard/internal"

// Provider defines the interface that cloud providers must implement
type Provider interface {
	internal.IdentityProvider

	// Storage returns the bucket control-plane operations
	Storage() internal.StorageAPI

	GetProviderType() string
	GetRegion() string
}
