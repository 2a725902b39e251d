package s3put

import (
	"fmt"
	"strconv"
	"strings"

	errs "github.com/input-output-hk/catalyst-forge-libs/aws/s3put/errors"
)

// Selection names one set of local files to publish: a base directory plus
// optional include and exclude glob patterns. Patterns support *, ? and the
// recursive ** wildcard; excludes take precedence and an empty include list
// selects every file under Dir.
type Selection struct {
	Dir     string
	Include []string
	Exclude []string
}

// ContentTypeRule assigns a Content-Type to files whose name ends with Ext.
// The suffix comparison is case-sensitive, so ".css" and ".CSS" are distinct
// rules.
type ContentTypeRule struct {
	Ext         string
	ContentType string
}

// CacheControlRule assigns a Cache-Control max-age, in seconds, to files
// whose name ends with Ext. The suffix comparison is case-sensitive.
type CacheControlRule struct {
	Ext    string
	MaxAge int
}

// Job describes one publish invocation: where the files come from, which
// bucket and key prefix they go to, and the metadata applied to each object.
//
// Rule lists are evaluated in declaration order and the first match wins, so
// more specific suffixes (".min.js") must be listed before general ones
// (".js"). A job is built once, passed to Uploader.Run, and not mutated
// during the run.
type Job struct {
	// Bucket is the target bucket. It is the only required field.
	Bucket string

	// Dest is the key prefix prepended to every uploaded file's relative
	// path. It is normalized with NormalizeDestPrefix before use; empty
	// means the bucket root.
	Dest string

	// Region selects the endpoint through the region table. Identifiers not
	// in the table are used verbatim as the endpoint host. Empty leaves the
	// SDK default endpoint in place.
	Region string

	// Endpoint overrides the endpoint directly, bypassing the region table.
	// Useful for S3-compatible stores.
	Endpoint string

	// ContentType applies to every file no extension rule matched.
	ContentType string

	// CacheControl is the job-wide max-age in seconds, applied to every file
	// no cache-control rule matched. Set it through SetCacheControl; values
	// assigned directly are re-checked by Validate.
	CacheControl string

	// PublicRead marks every uploaded object publicly readable via the
	// public-read canned ACL. There is no per-file override.
	PublicRead bool

	// ReducedRedundancy stores every object in the reduced-redundancy
	// storage class. There is no per-file override.
	ReducedRedundancy bool

	// Selections are expanded in declaration order.
	Selections []Selection

	// ContentTypes are the content-type extension rules, first match wins.
	ContentTypes []ContentTypeRule

	// CacheControls are the cache-control extension rules, first match wins.
	CacheControls []CacheControlRule

	// AccessKey and SecretKey, when both set, are used as static credentials
	// instead of the default AWS credential chain. SessionToken is optional.
	AccessKey    string
	SecretKey    string
	SessionToken string
}

// SetCacheControl sets the job-wide cache-control max-age. The value must
// parse as a non-negative integer; anything else fails immediately rather
// than at run time. The stored value is canonicalized, so "0360" becomes
// "360".
func (j *Job) SetCacheControl(value string) error {
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return errs.NewError("configure", errs.ErrInvalidCacheControl).
			WithMessage(fmt.Sprintf("value %q", value))
	}
	j.CacheControl = strconv.Itoa(n)
	return nil
}

// Validate checks that the job can run. Only the bucket is required;
// malformed destination prefixes and unknown region identifiers are
// deliberately accepted (the prefix is normalized, the region falls back to
// a literal endpoint). A cache-control value assigned directly to the field
// is checked here, so it cannot bypass the SetCacheControl contract.
func (j *Job) Validate() error {
	if strings.TrimSpace(j.Bucket) == "" {
		return errs.NewError("validate", errs.ErrBucketRequired)
	}
	if j.CacheControl != "" {
		if n, err := strconv.Atoi(j.CacheControl); err != nil || n < 0 {
			return errs.NewError("validate", errs.ErrInvalidCacheControl).
				WithMessage(fmt.Sprintf("value %q", j.CacheControl))
		}
	}
	return nil
}

// NormalizeDestPrefix canonicalizes a destination prefix for key
// construction: surrounding whitespace is trimmed, one leading slash is
// stripped, and a trailing slash is appended when the result is non-empty.
// An empty or all-whitespace input yields the empty string, meaning the
// bucket root.
func NormalizeDestPrefix(raw string) string {
	p := strings.TrimSpace(raw)
	if p == "" {
		return ""
	}
	p = strings.TrimPrefix(p, "/")
	if p != "" && !strings.HasSuffix(p, "/") {
		p += "/"
	}
	return p
}
