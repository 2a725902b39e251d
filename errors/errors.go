// Package errors provides error types and handling for S3 publish jobs.
package errors

import (
	"errors"
	"fmt"
)

// Error represents a publish job error with context about the operation that failed.
// It wraps the underlying AWS SDK error or job failure with additional context.
type Error struct {
	// Op is the operation that failed (e.g., "validate", "scan", "upload")
	Op string

	// Bucket is the target bucket name (if applicable)
	Bucket string

	// Key is the destination object key (if applicable)
	Key string

	// Err is the underlying error from the AWS SDK or other source
	Err error
}

// Error implements the error interface by providing a formatted error message.
func (e *Error) Error() string {
	if e.Bucket != "" && e.Key != "" {
		return fmt.Sprintf("s3put.%s %s/%s: %v", e.Op, e.Bucket, e.Key, e.Err)
	}
	if e.Bucket != "" {
		return fmt.Sprintf("s3put.%s bucket %s: %v", e.Op, e.Bucket, e.Err)
	}
	if e.Key != "" {
		return fmt.Sprintf("s3put.%s object %s: %v", e.Op, e.Key, e.Err)
	}
	return fmt.Sprintf("s3put.%s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for error chaining support.
func (e *Error) Unwrap() error {
	return e.Err
}

// WithBucket adds bucket context to an existing error.
func (e *Error) WithBucket(bucket string) *Error {
	e.Bucket = bucket
	return e
}

// WithKey adds object key context to an existing error.
func (e *Error) WithKey(key string) *Error {
	e.Key = key
	return e
}

// WithMessage wraps the underlying error with a custom message.
func (e *Error) WithMessage(message string) *Error {
	e.Err = fmt.Errorf("%s: %w", message, e.Err)
	return e
}

// NewError creates a new Error with the given operation and underlying error.
func NewError(op string, err error) *Error {
	return &Error{
		Op:  op,
		Err: err,
	}
}

// NewBucketError creates a new Error with bucket context.
func NewBucketError(op, bucket string, err error) *Error {
	return &Error{
		Op:     op,
		Bucket: bucket,
		Err:    err,
	}
}

// NewObjectError creates a new Error with bucket and key context.
func NewObjectError(op, bucket, key string, err error) *Error {
	return &Error{
		Op:     op,
		Bucket: bucket,
		Key:    key,
		Err:    err,
	}
}

// Sentinel errors for the three failure classes a publish job distinguishes:
// configuration errors abort before any network activity, scan errors skip a
// single file selection, upload errors abort the remaining job.
// These can be used with errors.Is() for error checking.
var (
	// ErrBucketRequired indicates that the job has no target bucket
	ErrBucketRequired = errors.New("s3put: target bucket not set")

	// ErrInvalidCacheControl indicates a cache-control value that does not
	// parse as a non-negative integer
	ErrInvalidCacheControl = errors.New("s3put: cache-control is not a non-negative integer")

	// ErrScanFailed indicates that a file selection's base directory could
	// not be scanned
	ErrScanFailed = errors.New("s3put: selection scan failed")

	// ErrUploadFailed indicates that the storage service rejected or failed
	// an object upload
	ErrUploadFailed = errors.New("s3put: upload failed")
)

// IsConfig checks if an error is a configuration error, raised before any
// upload is attempted.
// This is a convenience function that handles both sentinel errors and wrapped errors.
func IsConfig(err error) bool {
	return errors.Is(err, ErrBucketRequired) || errors.Is(err, ErrInvalidCacheControl)
}

// IsScan checks if an error came from expanding a file selection.
// This is a convenience function that handles both sentinel errors and wrapped errors.
func IsScan(err error) bool {
	return errors.Is(err, ErrScanFailed)
}

// IsUpload checks if an error came from the storage service during a transfer.
// This is a convenience function that handles both sentinel errors and wrapped errors.
func IsUpload(err error) bool {
	return errors.Is(err, ErrUploadFailed)
}
