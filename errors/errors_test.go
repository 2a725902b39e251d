package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestError_Error tests message formatting with varying context.
func TestError_Error(t *testing.T) {
	cause := errors.New("boom")

	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{
			name: "operation only",
			err:  NewError("validate", cause),
			want: "s3put.validate: boom",
		},
		{
			name: "bucket context",
			err:  NewBucketError("upload", "assets", cause),
			want: "s3put.upload bucket assets: boom",
		},
		{
			name: "bucket and key context",
			err:  NewObjectError("upload", "assets", "v1/index.html", cause),
			want: "s3put.upload assets/v1/index.html: boom",
		},
		{
			name: "key only",
			err:  NewError("upload", cause).WithKey("v1/app.js"),
			want: "s3put.upload object v1/app.js: boom",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
		})
	}
}

// TestError_Unwrap tests that wrapped sentinels stay reachable.
func TestError_Unwrap(t *testing.T) {
	err := NewBucketError("upload", "assets",
		fmt.Errorf("2 upload(s) failed: %w", ErrUploadFailed))

	assert.ErrorIs(t, err, ErrUploadFailed)
	assert.NotErrorIs(t, err, ErrScanFailed)
}

// TestError_WithMessage tests message prefixing.
func TestError_WithMessage(t *testing.T) {
	err := NewError("configure", ErrInvalidCacheControl).WithMessage(`value "soon"`)

	assert.ErrorIs(t, err, ErrInvalidCacheControl)
	assert.Contains(t, err.Error(), `value "soon"`)
}

// TestClassifiers tests the error class helpers.
func TestClassifiers(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantConfig bool
		wantScan   bool
		wantUpload bool
	}{
		{
			name:       "bucket required is a config error",
			err:        NewError("validate", ErrBucketRequired),
			wantConfig: true,
		},
		{
			name:       "cache control is a config error",
			err:        ErrInvalidCacheControl,
			wantConfig: true,
		},
		{
			name:     "scan failure",
			err:      fmt.Errorf("%w: walking /src: permission denied", ErrScanFailed),
			wantScan: true,
		},
		{
			name:       "upload failure",
			err:        NewObjectError("upload", "b", "k", fmt.Errorf("%w: timeout", ErrUploadFailed)),
			wantUpload: true,
		},
		{
			name: "unrelated error matches nothing",
			err:  errors.New("boom"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantConfig, IsConfig(tt.err))
			assert.Equal(t, tt.wantScan, IsScan(tt.err))
			assert.Equal(t, tt.wantUpload, IsUpload(tt.err))
		})
	}
}
