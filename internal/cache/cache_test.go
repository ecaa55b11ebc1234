package cache

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestGetSet(t *testing.T) {
	s := New[string]()

	if s.Get("missing").IsPresent() {
		t.Error("expected miss for unset key")
	}

	s.Set("player_demo-1x1", "payload", LongTTL)
	got, ok := s.Get("player_demo-1x1").Get()
	if !ok {
		t.Fatal("expected hit after Set")
	}
	if got != "payload" {
		t.Errorf("Get = %q, want 'payload'", got)
	}
}

func TestExpiry(t *testing.T) {
	s := New[int]()
	now := time.Now()
	s.now = func() time.Time { return now }

	s.Set("content_type_x", 1, ShortTTL)

	now = now.Add(ShortTTL - time.Second)
	if s.Get("content_type_x").IsAbsent() {
		t.Error("entry expired before TTL elapsed")
	}

	now = now.Add(2 * time.Second)
	if s.Get("content_type_x").IsPresent() {
		t.Error("entry survived past TTL")
	}
}

func TestLastWriteWins(t *testing.T) {
	s := New[string]()
	s.Set("k", "first", LongTTL)
	s.Set("k", "second", LongTTL)

	if got, _ := s.Get("k").Get(); got != "second" {
		t.Errorf("Get = %q, want 'second'", got)
	}
}

func TestMemoizeCachesResult(t *testing.T) {
	s := New[string]()
	calls := 0

	for i := 0; i < 3; i++ {
		v, err := s.Memoize("search_naruto", ShortTTL, func() (string, error) {
			calls++
			return "results", nil
		})
		if err != nil {
			t.Fatalf("Memoize returned error: %v", err)
		}
		if v != "results" {
			t.Errorf("Memoize = %q, want 'results'", v)
		}
	}

	if calls != 1 {
		t.Errorf("compute ran %d times, want 1", calls)
	}
}

func TestMemoizeDoesNotCacheErrors(t *testing.T) {
	s := New[string]()
	calls := 0
	boom := errors.New("upstream down")

	for i := 0; i < 2; i++ {
		_, err := s.Memoize("k", ShortTTL, func() (string, error) {
			calls++
			return "", boom
		})
		if !errors.Is(err, boom) {
			t.Fatalf("expected upstream error, got %v", err)
		}
	}

	if calls != 2 {
		t.Errorf("compute ran %d times, want 2 (errors must not be cached)", calls)
	}
}

func TestMemoizeSingleFlight(t *testing.T) {
	s := New[string]()

	var calls int32
	release := make(chan struct{})

	const workers = 16
	var wg sync.WaitGroup
	results := make([]string, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			v, err := s.Memoize("source_demo_1", LongTTL, func() (string, error) {
				atomic.AddInt32(&calls, 1)
				<-release
				return "stream", nil
			})
			if err != nil {
				t.Errorf("worker %d: %v", i, err)
				return
			}
			results[i] = v
		}(i)
	}

	// Give the workers time to pile onto the same key before releasing.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Errorf("compute ran %d times under concurrency, want 1", n)
	}
	for i, v := range results {
		if v != "stream" {
			t.Errorf("worker %d got %q, want 'stream'", i, v)
		}
	}
}
