package cache

import (
	"sync"
	"sync/atomic"
	"testing"
)

func TestMemoryCache_SetGet(t *testing.T) {
	c := NewMemoryCache()

	if _, found := c.Get("missing"); found {
		t.Error("Expected miss for unknown key")
	}

	c.Set("k", []string{"a"})
	val, found := c.Get("k")
	if !found {
		t.Fatal("Expected hit after Set")
	}
	if got := val.([]string); len(got) != 1 || got[0] != "a" {
		t.Errorf("Unexpected cached value: %v", got)
	}
}

func TestMemoryCache_FirstValueWins(t *testing.T) {
	c := NewMemoryCache()
	c.Set("k", 1)
	c.Set("k", 2)

	val, _ := c.Get("k")
	if val.(int) != 1 {
		t.Errorf("Expected first stored value 1, got %v", val)
	}
}

func TestMemoryCache_Clear(t *testing.T) {
	c := NewMemoryCache()
	c.Set("a", 1)
	c.Set("b", 2)
	if c.Len() != 2 {
		t.Errorf("Expected 2 entries, got %d", c.Len())
	}

	c.Clear()
	if c.Len() != 0 {
		t.Errorf("Expected empty cache after Clear, got %d", c.Len())
	}
}

func TestGetOrCompute_Concurrent(t *testing.T) {
	c := NewMemoryCache()
	var calls int32

	var wg sync.WaitGroup
	results := make([]interface{}, 50)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			results[idx] = GetOrCompute(c, Key("holidays", "US", "2026"), func() interface{} {
				atomic.AddInt32(&calls, 1)
				return "computed"
			})
		}(i)
	}
	wg.Wait()

	for i, r := range results {
		if r != "computed" {
			t.Errorf("result %d = %v, want computed", i, r)
		}
	}
	if atomic.LoadInt32(&calls) < 1 {
		t.Error("Expected compute to run at least once")
	}
}

func TestKey(t *testing.T) {
	if got := Key("holidays", "US", "CA", "2026"); got != "legalguard:v1:holidays:US:CA:2026" {
		t.Errorf("Unexpected key %q", got)
	}
}
