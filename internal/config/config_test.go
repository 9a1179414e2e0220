package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		configPathEnv, serverAddrEnv, portEnv, ginModeEnv, logLevelEnv, storageDriverEnv,
		mongoURIEnv, databaseDSNEnv, sqlitePathEnv, sentimentScorerEnv, mlAPIKeyEnv,
		chatGPTAPIKeyEnv, chatGPTModelEnv, redisAddrEnv, kafkaBrokersEnv, archiveBucketEnv,
		telegramTokenEnv, telegramChatIDEnv,
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg := Load()
	if cfg.Storage.Driver != DriverSQLite {
		t.Fatalf("expected sqlite driver, got %s", cfg.Storage.Driver)
	}
	if cfg.Sentiment.Scorer != ScorerVader {
		t.Fatalf("expected vader scorer, got %s", cfg.Sentiment.Scorer)
	}
	if cfg.Sentiment.PositiveThreshold != 0.05 || cfg.Sentiment.NegativeThreshold != -0.05 {
		t.Fatalf("unexpected thresholds: %+v", cfg.Sentiment)
	}
	if cfg.Server.Addr != ":8080" {
		t.Fatalf("unexpected addr: %s", cfg.Server.Addr)
	}
	if cfg.Redis.Addr != "" || len(cfg.Kafka.Brokers) != 0 || cfg.Archive.Bucket != "" {
		t.Fatalf("optional adapters must be disabled by default: %+v %+v %+v", cfg.Redis, cfg.Kafka, cfg.Archive)
	}
}

func TestLoadFileAndEnv(t *testing.T) {
	clearEnv(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	raw := `
server:
  addr: ":9000"
storage:
  driver: Mongo
  mongo:
    database: custom
sites:
  - name: eltiempo
    host: www.eltiempo.com
    extractor: selector
    options:
      title: "h1.title"
categories:
  - name: sports
    keywords: [goal, match]
  - name: politics
    keywords: [vote]
sentiment:
  positiveThreshold: 0.1
`
	if err := os.WriteFile(path, []byte(raw), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv(configPathEnv, path)
	t.Setenv(portEnv, "7000")
	t.Setenv(kafkaBrokersEnv, "k1:9092, k2:9092,")
	t.Setenv(redisAddrEnv, "localhost:6379")

	cfg := Load()

	if cfg.Server.Addr != ":7000" {
		t.Fatalf("env PORT should win over file, got %s", cfg.Server.Addr)
	}
	if cfg.Storage.Driver != DriverMongo {
		t.Fatalf("expected mongo driver, got %s", cfg.Storage.Driver)
	}
	if cfg.Storage.Mongo.Database != "custom" || cfg.Storage.Mongo.Collection != "news" {
		t.Fatalf("unexpected mongo config: %+v", cfg.Storage.Mongo)
	}
	if len(cfg.Sites) != 1 || cfg.Sites[0].Options["title"] != "h1.title" {
		t.Fatalf("unexpected sites: %+v", cfg.Sites)
	}
	if len(cfg.Categories) != 2 || cfg.Categories[0].Name != "sports" {
		t.Fatalf("category order must be preserved: %+v", cfg.Categories)
	}
	if cfg.Sentiment.PositiveThreshold != 0.1 || cfg.Sentiment.NegativeThreshold != -0.05 {
		t.Fatalf("unexpected thresholds: %+v", cfg.Sentiment)
	}
	if !reflect.DeepEqual(cfg.Kafka.Brokers, []string{"k1:9092", "k2:9092"}) {
		t.Fatalf("unexpected brokers: %v", cfg.Kafka.Brokers)
	}
	if cfg.Redis.Addr != "localhost:6379" {
		t.Fatalf("unexpected redis addr: %s", cfg.Redis.Addr)
	}
}

func TestLoadInvalidFileFallsBack(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "broken.yaml")
	if err := os.WriteFile(path, []byte("server: [unclosed"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv(configPathEnv, path)

	cfg := Load()
	if cfg.Server.Addr != ":8080" {
		t.Fatalf("expected defaults after parse failure, got %s", cfg.Server.Addr)
	}
}

func TestAddrFromPort(t *testing.T) {
	t.Parallel()

	if got := addrFromPort("3000"); got != ":3000" {
		t.Fatalf("unexpected addr: %s", got)
	}
	if got := addrFromPort("127.0.0.1:3000"); got != "127.0.0.1:3000" {
		t.Fatalf("unexpected addr: %s", got)
	}
}
