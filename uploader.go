// Package s3put provides uploader initialization and S3 client construction.
//
// The Uploader executes publish jobs: it builds an S3 client from the job's
// region and credentials (or uses an injected one), expands the job's file
// selections, and uploads each file with its resolved metadata.
package s3put

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/input-output-hk/catalyst-forge-libs/fs"

	"github.com/input-output-hk/catalyst-forge-libs/aws/s3put/internal/s3api"
)

// Uploader runs publish jobs against S3. A zero-option uploader reads from
// the OS filesystem, logs nothing, and builds its S3 client from the job
// when Run is called.
//
// An Uploader is safe to reuse across jobs when constructed with
// NewWithClient; one built by New constructs a fresh client per run, since
// the endpoint is a property of the job.
type Uploader struct {
	// client is the S3 surface used for uploads. Nil until Run builds one
	// from the job, unless a custom implementation was injected.
	client s3api.S3API

	// logger is used for structured logging of operations
	logger *slog.Logger

	// fsys is the filesystem abstraction for scanning and reading files
	fsys fs.Filesystem

	httpClient        *http.Client
	pathStyle         bool
	dryRun            bool
	continueOnError   bool
	detectContentType bool
}

// New creates an uploader with the provided options. The S3 client is
// constructed during Run from the job's region, endpoint, and credentials.
//
// Example:
//
//	up := s3put.New(
//	    s3put.WithLogger(slog.Default()),
//	)
//	result, err := up.Run(ctx, job)
func New(opts ...Option) *Uploader {
	options := defaultOptions()
	applyOptions(options, opts)

	return &Uploader{
		logger:            options.logger,
		fsys:              options.fsys,
		httpClient:        options.httpClient,
		pathStyle:         options.pathStyle,
		dryRun:            options.dryRun,
		continueOnError:   options.continueOnError,
		detectContentType: options.detectContentType,
	}
}

// NewWithClient creates an uploader with a custom S3API implementation.
// The job's region and credential fields are ignored since no client is
// built. This is primarily used for testing with mocked clients.
func NewWithClient(client s3api.S3API, opts ...Option) *Uploader {
	u := New(opts...)
	u.client = client
	return u
}

// buildClient constructs the S3 client for a job: the default credential
// chain or the job's static credentials, the endpoint resolved through the
// region table, and optional path-style addressing.
func (u *Uploader) buildClient(ctx context.Context, job *Job) (*s3.Client, error) {
	var loadOpts []func(*config.LoadOptions) error

	if job.AccessKey != "" && job.SecretKey != "" {
		loadOpts = append(loadOpts, config.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(job.AccessKey, job.SecretKey, job.SessionToken),
		))
	}

	endpoint := job.Endpoint
	if endpoint == "" && job.Region != "" {
		host, known := ResolveEndpoint(job.Region)
		if !known && u.logger != nil {
			u.logger.WarnContext(ctx, "region not found in the endpoint table, using it as an endpoint",
				"region", job.Region)
		}
		endpoint = host
		loadOpts = append(loadOpts, config.WithRegion(signingRegion(host)))
	}

	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	if cfg.Region == "" {
		cfg.Region = "us-east-1" // AWS default region
	}

	var s3Opts []func(*s3.Options)

	if endpoint != "" {
		url := endpointURL(endpoint)
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(url)
		})
	}

	if u.pathStyle {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.UsePathStyle = true
		})
	}

	if u.httpClient != nil {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.HTTPClient = u.httpClient
		})
	}

	return s3.NewFromConfig(cfg, s3Opts...), nil
}

// signingRegion derives the SigV4 region from a resolved endpoint host:
// s3-us-west-1.amazonaws.com yields us-west-1, and a bare region identifier
// passes through unchanged.
func signingRegion(host string) string {
	r := strings.TrimSuffix(host, ".amazonaws.com")
	return strings.TrimPrefix(r, "s3-")
}

// endpointURL ensures the endpoint carries a URL scheme, defaulting to HTTPS.
func endpointURL(endpoint string) string {
	if strings.Contains(endpoint, "://") {
		return endpoint
	}
	return "https://" + endpoint
}
