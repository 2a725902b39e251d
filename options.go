// Package s3put provides functional options for configuring Uploader behavior.
// These options follow the functional options pattern for clean, composable configuration.
package s3put

import (
	"log/slog"
	"net/http"

	"github.com/input-output-hk/catalyst-forge-libs/fs"
	"github.com/input-output-hk/catalyst-forge-libs/fs/billy"
)

// uploaderOptions holds configuration options for the Uploader.
type uploaderOptions struct {
	logger            *slog.Logger
	fsys              fs.Filesystem
	httpClient        *http.Client
	pathStyle         bool
	dryRun            bool
	continueOnError   bool
	detectContentType bool
}

// Option is a functional option for configuring the Uploader.
type Option func(*uploaderOptions)

// WithLogger configures the uploader with a structured logger.
// If logger is nil, logging will be disabled.
func WithLogger(logger *slog.Logger) Option {
	return func(opts *uploaderOptions) {
		opts.logger = logger
	}
}

// WithFilesystem sets a custom filesystem implementation for scanning and
// reading files. This allows using in-memory filesystems for testing.
// If not specified, defaults to the OS filesystem.
func WithFilesystem(fsys fs.Filesystem) Option {
	return func(opts *uploaderOptions) {
		opts.fsys = fsys
	}
}

// WithHTTPClient provides a custom HTTP client for the S3 transport.
// This gives full control over HTTP behavior including timeouts and proxies.
func WithHTTPClient(client *http.Client) Option {
	return func(opts *uploaderOptions) {
		opts.httpClient = client
	}
}

// WithPathStyle forces path-style addressing instead of virtual-hosted style.
// This is required for S3-compatible services that don't support virtual
// hosting, such as LocalStack or MinIO.
func WithPathStyle(enabled bool) Option {
	return func(opts *uploaderOptions) {
		opts.pathStyle = enabled
	}
}

// WithDryRun resolves every upload and logs what would be transferred
// without calling the storage service.
func WithDryRun(enabled bool) Option {
	return func(opts *uploaderOptions) {
		opts.dryRun = enabled
	}
}

// WithContinueOnError keeps the run going past individual upload failures,
// collecting them into Result.Failures instead of aborting on the first one.
// The default preserves the classic behavior: the first failed upload stops
// the whole job.
func WithContinueOnError(enabled bool) Option {
	return func(opts *uploaderOptions) {
		opts.continueOnError = enabled
	}
}

// WithDetectContentType sniffs the content type of files that neither an
// extension rule nor the job-wide content type covered. Detection reads the
// first bytes of the file and falls back to an extension lookup. Disabled by
// default, leaving such files without an explicit content type.
func WithDetectContentType(enabled bool) Option {
	return func(opts *uploaderOptions) {
		opts.detectContentType = enabled
	}
}

// defaultOptions returns the default configuration options.
func defaultOptions() *uploaderOptions {
	return &uploaderOptions{
		logger: nil,                // No default logger
		fsys:   billy.NewOSFS("/"), // OS filesystem
	}
}

// applyOptions applies the given options to the uploader options.
func applyOptions(opts *uploaderOptions, options []Option) {
	for _, option := range options {
		option(opts)
	}
}
