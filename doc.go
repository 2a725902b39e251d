// Package s3put uploads local files to an S3 bucket the way a build
// pipeline publishes artifacts: a job declares which files to take, the
// bucket and key prefix they go to, and the metadata each object carries.
//
// Files are named by glob selections (a base directory plus include and
// exclude patterns, with ** matching across directories) and uploaded one
// at a time, each under the destination prefix joined with its path
// relative to the selection's base directory.
//
// Key features:
//   - Extension rules for Content-Type and Cache-Control, first match wins
//   - Job-wide metadata defaults for files no rule matches
//   - Public-read ACL and reduced-redundancy storage flags
//   - Region identifiers resolved through a fixed endpoint table, with
//     unknown identifiers used verbatim as endpoint hosts
//   - Static credentials per job, or the AWS default credential chain
//   - Dry-run, continue-on-error, and content sniffing as options
//
// Example usage:
//
//	job := &s3put.Job{
//	    Bucket: "assets.example.com",
//	    Dest:   "releases/v1",
//	    Selections: []s3put.Selection{
//	        {Dir: "build/site", Include: []string{"**/*"}},
//	    },
//	}
//
//	result, err := s3put.New().Run(ctx, job)
//	if err != nil {
//	    return err
//	}
package s3put
