package services

import (
	"context"
	"strings"
	"testing"
)

func TestLocalPayloadStore_RoundTrip(t *testing.T) {
	store, err := NewLocalPayloadStore(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	ctx := context.Background()

	key := GeneratePayloadKey()
	payload := []byte{0x00, 0xff, 0x10, 0x42}

	if err := store.SavePayload(ctx, key, payload); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	got, err := store.GetPayload(ctx, key)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if string(got) != string(payload) {
		t.Errorf("payload not stored verbatim: got %v, want %v", got, payload)
	}

	if err := store.DeletePayload(ctx, key); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := store.GetPayload(ctx, key); err == nil {
		t.Error("expected error reading deleted payload")
	}
}

func TestLocalPayloadStore_MissingKey(t *testing.T) {
	store, err := NewLocalPayloadStore(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}

	if _, err := store.GetPayload(context.Background(), "payloads/nope.bin"); err == nil {
		t.Error("expected error for missing payload")
	}
}

func TestNewPayloadStore_UnknownType(t *testing.T) {
	if _, err := NewPayloadStore("tape", "/tmp"); err == nil {
		t.Error("expected error for unknown store type")
	}
}

func TestGeneratePayloadKey_Format(t *testing.T) {
	key := GeneratePayloadKey()
	if !strings.HasPrefix(key, "payloads/") || !strings.HasSuffix(key, ".bin") {
		t.Errorf("unexpected key format: %q", key)
	}
	if key == GeneratePayloadKey() {
		t.Error("expected unique keys")
	}
}
