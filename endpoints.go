package s3put

// regionEndpoints maps the region identifiers accepted by the task to their
// S3 endpoint hosts. The table is never modified after initialization.
// "EU" predates per-region identifiers and is kept for existing build files.
var regionEndpoints = map[string]string{
	"EU":             "s3-eu-west-1.amazonaws.com",
	"us-west-1":      "s3-us-west-1.amazonaws.com",
	"us-west-2":      "s3-us-west-2.amazonaws.com",
	"ap-southeast-1": "s3-ap-southeast-1.amazonaws.com",
	"ap-northeast-1": "s3-ap-northeast-1.amazonaws.com",
	"sa-east-1":      "sa-east-1.amazonaws.com",
}

// ResolveEndpoint maps a region identifier to its S3 endpoint host. An
// identifier missing from the table is returned verbatim, which lets build
// files target regions (or S3-compatible hosts) the table does not know
// about; known reports whether the lookup hit the table so callers can warn
// on the fallback.
func ResolveEndpoint(region string) (host string, known bool) {
	if h, ok := regionEndpoints[region]; ok {
		return h, true
	}
	return region, false
}
