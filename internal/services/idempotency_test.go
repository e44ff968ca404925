package services

import (
	"context"
	"testing"
)

func TestMemoryIdempotencyStore_ClaimOnce(t *testing.T) {
	store := NewMemoryIdempotencyStore()
	ctx := context.Background()

	fresh, err := store.Claim(ctx, "token-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !fresh {
		t.Error("first claim must be fresh")
	}

	fresh, err = store.Claim(ctx, "token-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fresh {
		t.Error("second claim of the same token must not be fresh")
	}

	fresh, _ = store.Claim(ctx, "token-2")
	if !fresh {
		t.Error("a different token must claim independently")
	}
}

func TestMemoryIdempotencyStore_StoreAndLookup(t *testing.T) {
	store := NewMemoryIdempotencyStore()
	ctx := context.Background()

	if _, err := store.Claim(ctx, "token-1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := store.Store(ctx, "token-1", "https://checkout.example.com/abc"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	url, err := store.Lookup(ctx, "token-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if url != "https://checkout.example.com/abc" {
		t.Errorf("unexpected stored URL %q", url)
	}

	url, _ = store.Lookup(ctx, "unknown")
	if url != "" {
		t.Errorf("unknown token must look up empty, got %q", url)
	}
}

func TestNewIdempotencyStore_FallsBackWithoutRedis(t *testing.T) {
	store := NewIdempotencyStore("")
	if _, ok := store.(*MemoryIdempotencyStore); !ok {
		t.Errorf("expected the in-memory store without a Redis URL, got %T", store)
	}
}
