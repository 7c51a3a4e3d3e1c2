package ristretto

import (
	"context"
	"testing"
	"time"
)

func newTestCache(t *testing.T) *Cache {
	t.Helper()
	c, err := New(1 << 20)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(c.Close)
	return c
}

func TestCache_SetGetDelete(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	if _, ok, err := c.Get(ctx, "missing"); err != nil || ok {
		t.Fatalf("Get(missing) = ok=%v err=%v, want miss", ok, err)
	}

	if err := c.Set(ctx, "k", []byte("v1"), time.Minute); err != nil {
		t.Fatalf("Set: %v", err)
	}
	data, ok, err := c.Get(ctx, "k")
	if err != nil || !ok {
		t.Fatalf("Get after Set = ok=%v err=%v", ok, err)
	}
	if string(data) != "v1" {
		t.Fatalf("Get = %q, want v1", data)
	}

	// Overwrite replaces the value.
	if err := c.Set(ctx, "k", []byte("v2"), time.Minute); err != nil {
		t.Fatalf("Set overwrite: %v", err)
	}
	data, ok, _ = c.Get(ctx, "k")
	if !ok || string(data) != "v2" {
		t.Fatalf("Get after overwrite = (%q, %v), want v2", data, ok)
	}

	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, ok, _ := c.Get(ctx, "k"); ok {
		t.Fatal("Get after Delete hit, want miss")
	}
}

func TestCache_TTLExpiry(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	if err := c.Set(ctx, "short", []byte("x"), 50*time.Millisecond); err != nil {
		t.Fatalf("Set: %v", err)
	}
	time.Sleep(150 * time.Millisecond)

	if _, ok, _ := c.Get(ctx, "short"); ok {
		t.Fatal("Get after TTL hit, want miss")
	}
}

func TestCache_DeleteMissingKey(t *testing.T) {
	c := newTestCache(t)

	if err := c.Delete(context.Background(), "never-set"); err != nil {
		t.Fatalf("Delete(missing) = %v, want nil", err)
	}
}
