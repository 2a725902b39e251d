package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/input-output-hk/catalyst-forge-libs/aws/s3put"
)

// taskFile is the YAML schema of a publish task. Rule lists keep their file
// order, which is also their matching order.
type taskFile struct {
	Bucket            string          `yaml:"bucket"`
	Dest              string          `yaml:"dest"`
	Region            string          `yaml:"region"`
	Endpoint          string          `yaml:"endpoint"`
	ContentType       string          `yaml:"content_type"`
	CacheControl      string          `yaml:"cache_control"`
	PublicRead        bool            `yaml:"public_read"`
	ReducedRedundancy bool            `yaml:"reduced_redundancy"`
	AccessKey         string          `yaml:"access_key"`
	SecretKey         string          `yaml:"secret_key"`
	SessionToken      string          `yaml:"session_token"`
	Selections        []selectionFile `yaml:"selections"`
	ContentTypes      []typeRuleFile  `yaml:"content_types"`
	CacheControls     []cacheRuleFile `yaml:"cache_controls"`
}

type selectionFile struct {
	Dir     string   `yaml:"dir"`
	Include []string `yaml:"include"`
	Exclude []string `yaml:"exclude"`
}

type typeRuleFile struct {
	Ext  string `yaml:"ext"`
	Type string `yaml:"type"`
}

type cacheRuleFile struct {
	Ext    string `yaml:"ext"`
	MaxAge int    `yaml:"max_age"`
}

// loadTask reads a YAML task file and builds the publish job it describes.
// The cache-control value goes through the job's own setter so a bad value
// fails here, before anything is scanned or uploaded.
func loadTask(path string) (*s3put.Job, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read task file %s: %w", path, err)
	}

	var tf taskFile
	if err := yaml.Unmarshal(data, &tf); err != nil {
		return nil, fmt.Errorf("failed to parse task file %s: %w", path, err)
	}

	return buildJob(&tf)
}

// buildJob converts the decoded task file into a Job.
func buildJob(tf *taskFile) (*s3put.Job, error) {
	job := &s3put.Job{
		Bucket:            tf.Bucket,
		Dest:              tf.Dest,
		Region:            tf.Region,
		Endpoint:          tf.Endpoint,
		ContentType:       tf.ContentType,
		PublicRead:        tf.PublicRead,
		ReducedRedundancy: tf.ReducedRedundancy,
		AccessKey:         tf.AccessKey,
		SecretKey:         tf.SecretKey,
		SessionToken:      tf.SessionToken,
	}

	if tf.CacheControl != "" {
		if err := job.SetCacheControl(tf.CacheControl); err != nil {
			return nil, err
		}
	}

	for _, sel := range tf.Selections {
		job.Selections = append(job.Selections, s3put.Selection{
			Dir:     sel.Dir,
			Include: sel.Include,
			Exclude: sel.Exclude,
		})
	}
	for _, rule := range tf.ContentTypes {
		job.ContentTypes = append(job.ContentTypes, s3put.ContentTypeRule{
			Ext:         rule.Ext,
			ContentType: rule.Type,
		})
	}
	for _, rule := range tf.CacheControls {
		job.CacheControls = append(job.CacheControls, s3put.CacheControlRule{
			Ext:    rule.Ext,
			MaxAge: rule.MaxAge,
		})
	}

	return job, nil
}
