// Package models provides shared data structures
package models

import "time"

// Well-known ACL group URIs that denote public exposure.
const (
	AllUsersURI           = "http://acs.amazonaws.com/groups/global/AllUsers"
	AuthenticatedUsersURI = "http://acs.amazonaws.com/groups/global/AuthenticatedUsers"
)

// Grantee types as reported in bucket ACLs.
const (
	GranteeCanonicalUser = "CanonicalUser"
	GranteeGroup         = "Group"
	GranteeEmail         = "AmazonCustomerByEmail"
)

// Bucket is a bucket descriptor as returned by enumeration
type Bucket struct {
	Name         string    `json:"name"`
	CreationDate time.Time `json:"creation_date,omitempty"`
	Region       string    `json:"region,omitempty"`
}

// AccessBlock mirrors the four public-access-block flags of a bucket
type AccessBlock struct {
	BlockPublicACLs       bool `json:"block_public_acls"`
	IgnorePublicACLs      bool `json:"ignore_public_acls"`
	BlockPublicPolicy     bool `json:"block_public_policy"`
	RestrictPublicBuckets bool `json:"restrict_public_buckets"`
}

// FullAccessBlock returns the configuration applied by remediation: every flag on.
func FullAccessBlock() AccessBlock {
	return AccessBlock{
		BlockPublicACLs:       true,
		IgnorePublicACLs:      true,
		BlockPublicPolicy:     true,
		RestrictPublicBuckets: true,
	}
}

// Enforced reports whether all four flags are set.
func (a AccessBlock) Enforced() bool {
	return a == FullAccessBlock()
}

// PolicyStatus is the provider-computed public flag of a bucket policy.
// Attached is false when the bucket has no policy at all; that outcome is
// a value, not an error.
type PolicyStatus struct {
	Attached bool `json:"attached"`
	IsPublic bool `json:"is_public"`
}

// NoPolicy is the status of a bucket without an attached policy.
var NoPolicy = PolicyStatus{}

// Grantee identifies who an ACL grant applies to
type Grantee struct {
	Type        string `json:"type"`
	URI         string `json:"uri,omitempty"`
	ID          string `json:"id,omitempty"`
	DisplayName string `json:"display_name,omitempty"`
}

// Grant is a single ACL entry
type Grant struct {
	Grantee    Grantee `json:"grantee"`
	Permission string  `json:"permission"`
}

// IsPublic reports whether the grant targets the all-users or
// authenticated-users well-known group.
func (g Grant) IsPublic() bool {
	if g.Grantee.Type != GranteeGroup {
		return false
	}
	return g.Grantee.URI == AllUsersURI || g.Grantee.URI == AuthenticatedUsersURI
}
