// Command s3put uploads local files to an S3 bucket as described by a YAML
// task file. It is the command-line front end for the s3put library.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/input-output-hk/catalyst-forge-libs/aws/s3put"
)

func main() {
	app := &cli.App{
		Name:  "s3put",
		Usage: "Upload build artifacts to an S3 bucket",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "task",
				Aliases:  []string{"t"},
				Usage:    "Path to the YAML task file",
				Required: true,
			},
			&cli.BoolFlag{
				Name:  "dry-run",
				Usage: "Resolve and log every upload without transferring anything",
			},
			&cli.BoolFlag{
				Name:  "continue-on-error",
				Usage: "Keep uploading past individual failures",
			},
			&cli.BoolFlag{
				Name:  "detect-content-type",
				Usage: "Sniff a content type for files no rule or global value covers",
			},
			&cli.BoolFlag{
				Name:  "path-style",
				Usage: "Use path-style addressing (needed for LocalStack or MinIO)",
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
			},
		},
		Action: run,
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "s3put:", err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	level := slog.LevelInfo
	if c.Bool("debug") {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	job, err := loadTask(c.String("task"))
	if err != nil {
		return err
	}

	up := s3put.New(
		s3put.WithLogger(logger),
		s3put.WithDryRun(c.Bool("dry-run")),
		s3put.WithContinueOnError(c.Bool("continue-on-error")),
		s3put.WithDetectContentType(c.Bool("detect-content-type")),
		s3put.WithPathStyle(c.Bool("path-style")),
	)

	result, err := up.Run(c.Context, job)
	if err != nil {
		return err
	}

	logger.Info("publish complete",
		"files", result.FilesUploaded,
		"bytes", result.BytesUploaded,
		"skipped_selections", result.SelectionsSkipped,
		"duration", result.Duration.String())

	return nil
}
