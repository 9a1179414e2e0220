package archive

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"CommentsAnalyzer/internal/domain"
	"CommentsAnalyzer/internal/ports"
)

// putObjectAPI is the slice of the S3 client the archiver needs.
type putObjectAPI interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Archiver writes one JSON snapshot per record to <prefix><id>.json.
type S3Archiver struct {
	client putObjectAPI
	bucket string
	prefix string
}

var _ ports.Archiver = (*S3Archiver)(nil)

// NewS3Archiver loads the default AWS credential chain for region.
func NewS3Archiver(ctx context.Context, bucket, prefix, region string) (*S3Archiver, error) {
	if bucket == "" {
		return nil, fmt.Errorf("archive bucket is empty")
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return newS3Archiver(s3.NewFromConfig(cfg), bucket, prefix), nil
}

func newS3Archiver(client putObjectAPI, bucket, prefix string) *S3Archiver {
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return &S3Archiver{client: client, bucket: bucket, prefix: prefix}
}

// Key returns the object key used for id.
func (a *S3Archiver) Key(id string) string {
	return a.prefix + id + ".json"
}

// Archive uploads the record, overwriting an earlier snapshot of the same id.
func (a *S3Archiver) Archive(ctx context.Context, record domain.NewsRecord) error {
	body, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}

	_, err = a.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(a.bucket),
		Key:         aws.String(a.Key(record.Article.ID)),
		Body:        bytes.NewReader(body),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("upload snapshot: %w", err)
	}
	return nil
}
