package audit

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/hemantobora/bucket-guard/internal/models"
)

var errAccessDenied = errors.New("AccessDenied")

type fakeBucket struct {
	block       models.AccessBlock
	blockErr    error
	policy      models.PolicyStatus
	policyErr   error
	grants      []models.Grant
	aclErr      error
	putErr      error
	aclRequests int
}

// fakeStorage is an in-memory StorageAPI. Buckets are listed in the order of
// names, pageSize at a time, with tokens of the form "page-N".
type fakeStorage struct {
	mu       sync.Mutex
	names    []string
	buckets  map[string]*fakeBucket
	pageSize int
	listErr  error
	puts     map[string][]models.AccessBlock
	tokens   []string
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{
		buckets:  map[string]*fakeBucket{},
		pageSize: 1000,
		puts:     map[string][]models.AccessBlock{},
	}
}

func (f *fakeStorage) add(name string, b *fakeBucket) {
	f.names = append(f.names, name)
	f.buckets[name] = b
}

func (f *fakeStorage) ListBuckets(_ context.Context, continuation string) ([]models.Bucket, string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tokens = append(f.tokens, continuation)
	if f.listErr != nil {
		return nil, "", f.listErr
	}
	page := 0
	if continuation != "" {
		if _, err := fmt.Sscanf(continuation, "page-%d", &page); err != nil {
			return nil, "", err
		}
	}
	start := page * f.pageSize
	end := start + f.pageSize
	if end > len(f.names) {
		end = len(f.names)
	}
	var out []models.Bucket
	for _, n := range f.names[start:end] {
		out = append(out, models.Bucket{Name: n})
	}
	next := ""
	if end < len(f.names) {
		next = fmt.Sprintf("page-%d", page+1)
	}
	return out, next, nil
}

func (f *fakeStorage) bucket(name string) (*fakeBucket, error) {
	b, ok := f.buckets[name]
	if !ok {
		return nil, fmt.Errorf("NoSuchBucket: %s", name)
	}
	return b, nil
}

func (f *fakeStorage) GetPublicAccessBlock(_ context.Context, name string) (models.AccessBlock, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, err := f.bucket(name)
	if err != nil {
		return models.AccessBlock{}, err
	}
	return b.block, b.blockErr
}

func (f *fakeStorage) GetBucketPolicyStatus(_ context.Context, name string) (models.PolicyStatus, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, err := f.bucket(name)
	if err != nil {
		return models.PolicyStatus{}, err
	}
	return b.policy, b.policyErr
}

func (f *fakeStorage) GetBucketACL(_ context.Context, name string) ([]models.Grant, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, err := f.bucket(name)
	if err != nil {
		return nil, err
	}
	b.aclRequests++
	return b.grants, b.aclErr
}

func (f *fakeStorage) PutPublicAccessBlock(_ context.Context, name string, block models.AccessBlock) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, err := f.bucket(name)
	if err != nil {
		return err
	}
	if b.putErr != nil {
		return b.putErr
	}
	f.puts[name] = append(f.puts[name], block)
	b.block = block
	return nil
}

var (
	ownerGrant = models.Grant{
		Grantee:    models.Grantee{Type: models.GranteeCanonicalUser, DisplayName: "owner"},
		Permission: "FULL_CONTROL",
	}
	allUsersRead = models.Grant{
		Grantee:    models.Grantee{Type: models.GranteeGroup, URI: models.AllUsersURI},
		Permission: "READ",
	}
	authUsersWrite = models.Grant{
		Grantee:    models.Grantee{Type: models.GranteeGroup, URI: models.AuthenticatedUsersURI},
		Permission: "WRITE",
	}
	logDeliveryGroup = models.Grant{
		Grantee:    models.Grantee{Type: models.GranteeGroup, URI: "http://acs.amazonaws.com/groups/s3/LogDelivery"},
		Permission: "WRITE",
	}
)
