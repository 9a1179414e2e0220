package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	"github.com/google/uuid"

	"CommentsAnalyzer/internal/domain"
)

func decodeEnvelope(t *testing.T, raw []byte, out *Envelope) {
	t.Helper()
	if err := json.Unmarshal(raw, out); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
}

func TestPublishStored(t *testing.T) {
	t.Parallel()

	producer := mocks.NewSyncProducer(t, mocks.NewTestConfig())
	defer producer.Close()

	var got Envelope
	producer.ExpectSendMessageWithCheckerFunctionAndSucceed(func(val []byte) error {
		decodeEnvelope(t, val, &got)
		return nil
	})

	pub := NewPublisherWithProducer(producer, "news-records")
	rec := domain.NewsRecord{
		Article:  domain.ArticleMetadata{ID: "123", Title: "t", Lead: "l", URL: "u", Category: domain.CategoryOther},
		Comments: []domain.Comment{{Author: "Anonymous", Date: "no date", Content: "hi", Sentiment: domain.SentimentNeutral}},
	}
	if err := pub.PublishStored(context.Background(), rec); err != nil {
		t.Fatalf("PublishStored error: %v", err)
	}

	if got.Type != TypeStored || got.RecordID != "123" {
		t.Fatalf("unexpected envelope: %+v", got)
	}
	if _, err := uuid.Parse(got.ID); err != nil {
		t.Fatalf("event id is not a uuid: %q", got.ID)
	}
	if got.Record == nil || len(got.Record.Comments) != 1 {
		t.Fatalf("stored event must carry the record: %+v", got.Record)
	}
}

func TestPublishDeleted(t *testing.T) {
	t.Parallel()

	producer := mocks.NewSyncProducer(t, mocks.NewTestConfig())
	defer producer.Close()

	var got Envelope
	producer.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		if msg.Topic != "news-records" {
			return fmt.Errorf("unexpected topic %s", msg.Topic)
		}
		key, err := msg.Key.Encode()
		if err != nil {
			return err
		}
		if string(key) != "55" {
			return fmt.Errorf("unexpected key %s", key)
		}
		val, err := msg.Value.Encode()
		if err != nil {
			return err
		}
		decodeEnvelope(t, val, &got)
		return nil
	})

	pub := NewPublisherWithProducer(producer, "news-records")
	if err := pub.PublishDeleted(context.Background(), "55"); err != nil {
		t.Fatalf("PublishDeleted error: %v", err)
	}
	if got.Type != TypeDeleted || got.Record != nil {
		t.Fatalf("unexpected envelope: %+v", got)
	}
}

func TestPublishFailure(t *testing.T) {
	t.Parallel()

	producer := mocks.NewSyncProducer(t, mocks.NewTestConfig())
	defer producer.Close()

	boom := errors.New("broker down")
	producer.ExpectSendMessageAndFail(boom)

	pub := NewPublisherWithProducer(producer, "news-records")
	if err := pub.PublishDeleted(context.Background(), "1"); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped broker error, got %v", err)
	}
}

func TestPublishCancelledContext(t *testing.T) {
	t.Parallel()

	producer := mocks.NewSyncProducer(t, mocks.NewTestConfig())
	defer producer.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	pub := NewPublisherWithProducer(producer, "news-records")
	if err := pub.PublishDeleted(ctx, "1"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
