// Package internal contains private implementation details for the s3put module.
// These packages are not intended for external use and may change without notice.
//
// The internal packages are organized as follows:
//   - scanner: File selection expansion and glob matching
//   - s3api: The S3 client surface the uploader depends on
//   - testutil: Mocks and LocalStack helpers shared by the tests
package internal
