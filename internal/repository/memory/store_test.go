package memory

import (
	"context"
	"testing"
)

func TestStore_GetMissing(t *testing.T) {
	s := NewStore()
	_, ok, err := s.Get(context.Background(), "nope")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if ok {
		t.Error("expected missing key")
	}
}

func TestStore_SetGetCopies(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	value := []byte("v1")
	if err := s.Set(ctx, "k", value); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	value[0] = 'x' // caller mutation must not leak into the store

	got, ok, err := s.Get(ctx, "k")
	if err != nil || !ok {
		t.Fatalf("Get failed: ok=%v err=%v", ok, err)
	}
	if string(got) != "v1" {
		t.Errorf("Get = %q, want v1", got)
	}
}

func TestStore_SetManyAndDelete(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	if err := s.SetMany(ctx, map[string][]byte{"a": []byte("1"), "b": []byte("2")}); err != nil {
		t.Fatalf("SetMany failed: %v", err)
	}
	if len(s.Keys()) != 2 {
		t.Fatalf("expected 2 keys, got %v", s.Keys())
	}

	if err := s.Delete(ctx, "a"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := s.Delete(ctx, "a"); err != nil {
		t.Fatalf("Delete of missing key should be a no-op: %v", err)
	}
	if _, ok, _ := s.Get(ctx, "a"); ok {
		t.Error("key a should be gone")
	}
}

func TestStore_CanceledContext(t *testing.T) {
	s := NewStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := s.Set(ctx, "k", []byte("v")); err == nil {
		t.Error("expected error for canceled context")
	}
}
