package querycache_test

import (
	"testing"

	"rdfmap/internal/querycache"
)

func TestSetGetRoundTrip(t *testing.T) {
	cache := querycache.New()
	cache.Set("projects", "", []byte(`[{"id":"p1"}]`))

	payload, ok := cache.Get("projects", "")
	if !ok {
		t.Fatal("expected cache hit")
	}
	if string(payload) != `[{"id":"p1"}]` {
		t.Fatalf("unexpected payload: %s", payload)
	}
	if _, ok := cache.Get("projects", "limit=5"); ok {
		t.Fatal("expected miss for different params")
	}
}

func TestInvalidateDropsOnlyNamedResources(t *testing.T) {
	cache := querycache.New()
	cache.Set("projects", "", []byte(`[]`))
	cache.Set("projects", "limit=5", []byte(`[]`))
	cache.Set("data-preview/p1", "limit=10", []byte(`{}`))

	cache.Invalidate("projects")

	if _, ok := cache.Get("projects", ""); ok {
		t.Fatal("expected projects list to be invalidated")
	}
	if _, ok := cache.Get("projects", "limit=5"); ok {
		t.Fatal("expected parameterized projects entry to be invalidated")
	}
	if _, ok := cache.Get("data-preview/p1", "limit=10"); !ok {
		t.Fatal("expected unrelated resource to survive")
	}
}

func TestGetReturnsCopy(t *testing.T) {
	cache := querycache.New()
	cache.Set("projects", "", []byte("abc"))

	payload, _ := cache.Get("projects", "")
	payload[0] = 'x'

	again, _ := cache.Get("projects", "")
	if string(again) != "abc" {
		t.Fatalf("cache entry mutated through returned slice: %s", again)
	}
}

func TestNilCacheIsInert(t *testing.T) {
	var cache *querycache.Cache
	cache.Set("projects", "", []byte("ignored"))
	cache.Invalidate("projects")
	if _, ok := cache.Get("projects", ""); ok {
		t.Fatal("nil cache must miss")
	}
	if cache.Len() != 0 {
		t.Fatal("nil cache must report zero entries")
	}
}
