package s3put

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	awstypes "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/gabriel-vasile/mimetype"

	errs "github.com/input-output-hk/catalyst-forge-libs/aws/s3put/errors"
	"github.com/input-output-hk/catalyst-forge-libs/aws/s3put/internal/s3api"
	"github.com/input-output-hk/catalyst-forge-libs/aws/s3put/internal/scanner"
)

// DefaultContentType is the content type assumed when detection is enabled
// and sniffing fails
const DefaultContentType = "application/octet-stream"

// Result summarizes a publish run.
type Result struct {
	// FilesUploaded counts successfully uploaded files. In dry-run mode it
	// counts the files that would have been uploaded.
	FilesUploaded int

	// BytesUploaded is the total size of the uploaded files.
	BytesUploaded int64

	// SelectionsSkipped counts file selections dropped because their base
	// directory could not be scanned.
	SelectionsSkipped int

	// Failures holds the per-file upload errors collected when
	// continue-on-error is enabled; empty otherwise.
	Failures []error

	// Duration is the wall time of the run.
	Duration time.Duration
}

// Run executes a publish job: it validates the configuration, expands each
// file selection in declaration order, and uploads every matching file with
// its resolved metadata, one at a time.
//
// Failure handling follows the task's classic split: a selection whose base
// directory cannot be scanned is logged and skipped, while a failed upload
// aborts the job with the remaining files unprocessed. WithContinueOnError
// trades the second behavior for collecting failures in Result.Failures.
//
// Returns:
//   - *Result: Counts and timings for the run; nil when the run aborts
//   - error: Nil on success, a config error before any upload is attempted,
//     or the wrapped upload error that stopped the job
//
// Errors:
//   - ErrBucketRequired: If the job has no target bucket
//   - ErrInvalidCacheControl: If the cache-control field was assigned a
//     value that is not a non-negative integer
//   - ErrUploadFailed: If the storage service rejected or failed a transfer
//
// Example:
//
//	job := &s3put.Job{
//	    Bucket: "assets.example.com",
//	    Dest:   "releases/v1",
//	    Selections: []s3put.Selection{
//	        {Dir: "build/site", Include: []string{"**/*"}},
//	    },
//	}
//	result, err := s3put.New(s3put.WithLogger(slog.Default())).Run(ctx, job)
//	if err != nil {
//	    return err
//	}
//	fmt.Printf("uploaded %d file(s)\n", result.FilesUploaded)
func (u *Uploader) Run(ctx context.Context, job *Job) (*Result, error) {
	start := time.Now()

	if err := job.Validate(); err != nil {
		return nil, err
	}

	client := u.client
	if client == nil {
		built, err := u.buildClient(ctx, job)
		if err != nil {
			return nil, errs.NewError("configure", err)
		}
		client = built
	}

	prefix := NormalizeDestPrefix(job.Dest)
	scan := scanner.New(u.fsys)
	result := &Result{}

	for _, sel := range job.Selections {
		dir := sel.Dir
		if !filepath.IsAbs(dir) {
			if abs, err := filepath.Abs(dir); err == nil {
				dir = abs
			}
		}

		files, err := scan.Scan(ctx, dir, sel.Include, sel.Exclude)
		if err != nil {
			// A selection that cannot be scanned skips only itself.
			if u.logger != nil {
				u.logger.ErrorContext(ctx, "could not upload files from selection",
					"dir", sel.Dir,
					"error", err.Error())
			}
			result.SelectionsSkipped++
			continue
		}
		if len(files) == 0 {
			continue
		}

		if u.logger != nil {
			u.logger.InfoContext(ctx, "uploading files",
				"count", len(files),
				"dir", dir)
		}

		for _, rel := range files {
			relSlash := filepath.ToSlash(rel)
			key := prefix + relSlash

			size, err := u.putFile(ctx, client, job, filepath.Join(dir, rel), key)
			if err != nil {
				if !u.continueOnError {
					return nil, err
				}
				if u.logger != nil {
					u.logger.ErrorContext(ctx, "upload failed, continuing",
						"file", relSlash,
						"error", err.Error())
				}
				result.Failures = append(result.Failures, err)
				continue
			}

			result.FilesUploaded++
			result.BytesUploaded += size

			if u.logger != nil {
				if u.dryRun {
					u.logger.InfoContext(ctx, "dry run: file would be copied",
						"file", relSlash,
						"bucket", job.Bucket,
						"destination", key)
				} else {
					u.logger.InfoContext(ctx, "file copied",
						"file", relSlash,
						"bucket", job.Bucket,
						"destination", key)
				}
			}
		}
	}

	result.Duration = time.Since(start)

	if len(result.Failures) > 0 {
		return result, errs.NewBucketError("upload", job.Bucket,
			fmt.Errorf("%d upload(s) failed: %w", len(result.Failures), errs.ErrUploadFailed))
	}
	return result, nil
}

// putFile uploads a single file. The file is opened just before the transfer
// and closed before the next file is processed.
func (u *Uploader) putFile(
	ctx context.Context,
	client s3api.S3API,
	job *Job,
	fullPath, key string,
) (int64, error) {
	info, err := u.fsys.Stat(fullPath)
	if err != nil {
		return 0, wrapUploadError(job.Bucket, key, err)
	}

	contentType, cacheControl := resolveMetadata(job, path.Base(key))
	if contentType == "" && u.detectContentType {
		contentType = u.sniffContentType(fullPath)
	}

	input := &s3.PutObjectInput{
		Bucket:        aws.String(job.Bucket),
		Key:           aws.String(key),
		ContentLength: aws.Int64(info.Size()),
	}
	if contentType != "" {
		input.ContentType = aws.String(contentType)
	}
	if cacheControl != "" {
		input.CacheControl = aws.String(cacheControl)
	}
	if job.PublicRead {
		input.ACL = awstypes.ObjectCannedACLPublicRead
	}
	if job.ReducedRedundancy {
		input.StorageClass = awstypes.StorageClassReducedRedundancy
	}

	if u.dryRun {
		return info.Size(), nil
	}

	file, err := u.fsys.Open(fullPath)
	if err != nil {
		return 0, wrapUploadError(job.Bucket, key, err)
	}
	defer file.Close()
	input.Body = file

	if _, err := client.PutObject(ctx, input); err != nil {
		return 0, wrapUploadError(job.Bucket, key, err)
	}

	return info.Size(), nil
}

// resolveMetadata applies the job's extension rules to a file name and falls
// back to the job-wide values. Rules are scanned in declaration order and
// the first matching suffix wins; a matched rule suppresses the job-wide
// value even when its own value is empty.
func resolveMetadata(job *Job, name string) (contentType, cacheControl string) {
	matched := false
	for _, rule := range job.ContentTypes {
		if strings.HasSuffix(name, rule.Ext) {
			contentType = rule.ContentType
			matched = true
			break
		}
	}
	if !matched && job.ContentType != "" {
		contentType = job.ContentType
	}

	matched = false
	for _, rule := range job.CacheControls {
		if strings.HasSuffix(name, rule.Ext) {
			cacheControl = fmt.Sprintf("max-age=%d", rule.MaxAge)
			matched = true
			break
		}
	}
	if !matched && job.CacheControl != "" {
		cacheControl = "max-age=" + job.CacheControl
	}

	return contentType, cacheControl
}

// wrapUploadError classifies a failed transfer, surfacing the AWS service
// code when one is present.
func wrapUploadError(bucket, key string, err error) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		err = fmt.Errorf("%s: %w", apiErr.ErrorCode(), err)
	}
	return errs.NewObjectError("upload", bucket, key,
		fmt.Errorf("%w: %w", errs.ErrUploadFailed, err))
}

// sniffContentType determines the content type by reading the file's first
// bytes, falling back to extension-based lookup.
func (u *Uploader) sniffContentType(fullPath string) string {
	file, err := u.fsys.Open(fullPath)
	if err != nil {
		return extensionContentType(fullPath)
	}
	defer file.Close()

	// Read first 512 bytes for content detection
	buf := make([]byte, 512)
	n, _ := file.Read(buf)
	if n > 0 {
		if mt := mimetype.Detect(buf[:n]); mt != nil {
			return mt.String()
		}
	}

	return extensionContentType(fullPath)
}

// extensionContentType detects content type from the file extension.
func extensionContentType(fullPath string) string {
	ext := strings.ToLower(filepath.Ext(fullPath))
	if ext != "" {
		if byExt := mime.TypeByExtension(ext); byExt != "" {
			return byExt
		}
	}

	return DefaultContentType
}
