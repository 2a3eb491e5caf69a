package bootstrap

import (
	"context"
	"reflect"
	"testing"

	"go.uber.org/zap"
)

func testLogger() *zap.Logger {
	return zap.NewNop()
}

func TestValidateConfig_MemoryBackend(t *testing.T) {
	cfg := AppConfig{
		StoreBackend: "memory",
		SessionKey:   "0123456789abcdef0123456789abcdef",
	}
	if err := ValidateConfig(nil, cfg, testLogger()); err != nil {
		t.Errorf("memory backend should not require a Mongo URI: %v", err)
	}
}

func TestValidateConfig_UnknownBackend(t *testing.T) {
	cfg := AppConfig{
		StoreBackend: "postgres",
		SessionKey:   "0123456789abcdef0123456789abcdef",
	}
	if err := ValidateConfig(nil, cfg, testLogger()); err == nil {
		t.Error("expected an error for an unknown store backend")
	}
}

func TestValidateConfig_ShortSessionKey(t *testing.T) {
	cfg := AppConfig{
		StoreBackend: "memory",
		SessionKey:   "short",
	}
	if err := ValidateConfig(nil, cfg, testLogger()); err == nil {
		t.Error("expected an error for a short session key")
	}
}

func TestSplitEmails(t *testing.T) {
	got := splitEmails(" admin@example.com, ,ops@example.com ")
	want := []string{"admin@example.com", "ops@example.com"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("splitEmails = %v, want %v", got, want)
	}
	if splitEmails("") != nil {
		t.Error("empty input should produce no entries")
	}
}

func TestConnectDB_MemoryBackendIsSeeded(t *testing.T) {
	deps, err := ConnectDB(context.Background(), nil, AppConfig{StoreBackend: "memory"}, testLogger())
	if err != nil {
		t.Fatalf("ConnectDB: %v", err)
	}
	if deps.MongoClient != nil {
		t.Error("memory backend should not open a Mongo client")
	}

	users, err := deps.Stores.Users.GetAll(context.Background())
	if err != nil {
		t.Fatalf("list users: %v", err)
	}
	if len(users) == 0 {
		t.Error("memory backend should come up with demo users")
	}
}
