//go:build integration
// +build integration

package s3put_test

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/input-output-hk/catalyst-forge-libs/aws/s3put"
	"github.com/input-output-hk/catalyst-forge-libs/aws/s3put/internal/testutil"
)

// TestIntegrationPublish runs a full publish job against LocalStack and
// verifies the uploaded keys and metadata.
func TestIntegrationPublish(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	endpoint, rawClient, cleanup := testutil.SetupLocalStack(t)
	defer cleanup()

	bucket := "s3put-integration"
	require.NoError(t, testutil.CreateBucket(ctx, rawClient, bucket))

	// Lay out a small site to publish
	siteDir := t.TempDir()
	files := map[string]string{
		"index.html":     "<html></html>",
		"css/app.css":    "body { margin: 0 }",
		"js/app.min.js":  "var a=1;",
		"img/banner.bin": "\x00\x01\x02",
	}
	for rel, content := range files {
		full := filepath.Join(siteDir, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
	}

	job := &s3put.Job{
		Bucket:      bucket,
		Dest:        "v1",
		Endpoint:    endpoint,
		AccessKey:   testutil.LocalStackAccessKey,
		SecretKey:   testutil.LocalStackSecretKey,
		ContentType: "text/html",
		Selections: []s3put.Selection{
			{Dir: siteDir, Include: []string{"**/*"}, Exclude: []string{"**/*.bin"}},
		},
		ContentTypes: []s3put.ContentTypeRule{
			{Ext: ".min.js", ContentType: "application/javascript"},
			{Ext: ".css", ContentType: "text/css"},
		},
		CacheControls: []s3put.CacheControlRule{
			{Ext: ".css", MaxAge: 86400},
		},
	}
	require.NoError(t, job.SetCacheControl("3600"))

	up := s3put.New(
		s3put.WithPathStyle(true),
		s3put.WithLogger(slog.Default()),
	)
	result, err := up.Run(ctx, job)
	require.NoError(t, err)
	assert.Equal(t, 3, result.FilesUploaded)

	keys, err := testutil.ObjectKeys(ctx, rawClient, bucket)
	require.NoError(t, err)
	sort.Strings(keys)
	assert.Equal(t, []string{"v1/css/app.css", "v1/index.html", "v1/js/app.min.js"}, keys)

	t.Run("extension rules set metadata", func(t *testing.T) {
		obj, err := testutil.FetchObject(ctx, rawClient, bucket, "v1/css/app.css")
		require.NoError(t, err)
		assert.Equal(t, []byte(files["css/app.css"]), obj.Body)
		assert.Equal(t, "text/css", obj.ContentType)
		assert.Equal(t, "max-age=86400", obj.CacheControl)
	})

	t.Run("globals fill in for unmatched files", func(t *testing.T) {
		obj, err := testutil.FetchObject(ctx, rawClient, bucket, "v1/index.html")
		require.NoError(t, err)
		assert.Equal(t, "text/html", obj.ContentType)
		assert.Equal(t, "max-age=3600", obj.CacheControl)
	})

	t.Run("first matching rule wins", func(t *testing.T) {
		obj, err := testutil.FetchObject(ctx, rawClient, bucket, "v1/js/app.min.js")
		require.NoError(t, err)
		assert.Equal(t, "application/javascript", obj.ContentType)
	})
}

// TestIntegrationStorageClass verifies the reduced-redundancy flag reaches
// the stored object.
func TestIntegrationStorageClass(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	ctx := context.Background()
	endpoint, rawClient, cleanup := testutil.SetupLocalStack(t)
	defer cleanup()

	bucket := "s3put-storage-class"
	require.NoError(t, testutil.CreateBucket(ctx, rawClient, bucket))

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "data.txt"), []byte("payload"), 0o644))

	job := &s3put.Job{
		Bucket:            bucket,
		Endpoint:          endpoint,
		AccessKey:         testutil.LocalStackAccessKey,
		SecretKey:         testutil.LocalStackSecretKey,
		ReducedRedundancy: true,
		Selections:        []s3put.Selection{{Dir: dir}},
	}

	result, err := s3put.New(s3put.WithPathStyle(true)).Run(ctx, job)
	require.NoError(t, err)
	require.Equal(t, 1, result.FilesUploaded)

	obj, err := testutil.FetchObject(ctx, rawClient, bucket, "data.txt")
	require.NoError(t, err)
	assert.Equal(t, "REDUCED_REDUNDANCY", obj.StorageClass)
}
