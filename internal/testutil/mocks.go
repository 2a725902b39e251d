// Package testutil provides test utilities and mocks for publish jobs.
// This package is internal and should only be used for testing within the s3put module.
package testutil

import (
	"context"
	"sync"

	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/input-output-hk/catalyst-forge-libs/aws/s3put/internal/s3api"
)

// MockS3Client is a mock implementation of the S3API interface for testing.
// Every PutObject call is recorded so tests can assert on call counts and
// the exact inputs the uploader produced; PutObjectFunc customizes the
// response when set.
type MockS3Client struct {
	PutObjectFunc func(context.Context, *s3.PutObjectInput, ...func(*s3.Options)) (*s3.PutObjectOutput, error)

	mu    sync.Mutex
	calls []*s3.PutObjectInput
}

// PutObject mocks the S3 PutObject operation.
func (m *MockS3Client) PutObject(
	ctx context.Context,
	params *s3.PutObjectInput,
	optFns ...func(*s3.Options),
) (*s3.PutObjectOutput, error) {
	m.mu.Lock()
	m.calls = append(m.calls, params)
	m.mu.Unlock()

	if m.PutObjectFunc != nil {
		return m.PutObjectFunc(ctx, params, optFns...)
	}
	return &s3.PutObjectOutput{}, nil
}

// Calls returns the recorded PutObject inputs in call order.
func (m *MockS3Client) Calls() []*s3.PutObjectInput {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]*s3.PutObjectInput, len(m.calls))
	copy(out, m.calls)
	return out
}

// CallCount returns how many times PutObject was invoked.
func (m *MockS3Client) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// Ensure MockS3Client implements s3api.S3API interface
var _ s3api.S3API = (*MockS3Client)(nil)
