package archive

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"CommentsAnalyzer/internal/domain"
)

type fakeS3 struct {
	input *s3.PutObjectInput
	body  []byte
	err   error
}

func (f *fakeS3) PutObject(_ context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.input = params
	body, err := io.ReadAll(params.Body)
	if err != nil {
		return nil, err
	}
	f.body = body
	return &s3.PutObjectOutput{}, nil
}

func TestArchive(t *testing.T) {
	t.Parallel()

	fake := &fakeS3{}
	a := newS3Archiver(fake, "bucket", "records")

	rec := domain.NewsRecord{
		Article:  domain.ArticleMetadata{ID: "3301234", Title: "t", Category: domain.CategoryPolitics},
		Comments: []domain.Comment{{Author: "Ana", Date: "no date", Content: "ok", Sentiment: domain.SentimentNeutral}},
	}
	if err := a.Archive(context.Background(), rec); err != nil {
		t.Fatalf("Archive error: %v", err)
	}

	if aws.ToString(fake.input.Bucket) != "bucket" {
		t.Fatalf("unexpected bucket: %s", aws.ToString(fake.input.Bucket))
	}
	if aws.ToString(fake.input.Key) != "records/3301234.json" {
		t.Fatalf("unexpected key: %s", aws.ToString(fake.input.Key))
	}

	var got domain.NewsRecord
	if err := json.Unmarshal(fake.body, &got); err != nil {
		t.Fatalf("snapshot is not JSON: %v", err)
	}
	if got.Article.ID != "3301234" || len(got.Comments) != 1 {
		t.Fatalf("unexpected snapshot: %+v", got)
	}
}

func TestArchiveError(t *testing.T) {
	t.Parallel()

	boom := errors.New("access denied")
	a := newS3Archiver(&fakeS3{err: boom}, "bucket", "")
	if err := a.Archive(context.Background(), domain.NewsRecord{}); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
	if a.Key("1") != "1.json" {
		t.Fatalf("empty prefix should produce bare key, got %s", a.Key("1"))
	}
}

func TestNewS3ArchiverRequiresBucket(t *testing.T) {
	t.Parallel()

	if _, err := NewS3Archiver(context.Background(), "", "", "us-east-1"); err == nil {
		t.Fatalf("expected error for empty bucket")
	}
}
