package ratelimit

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

// fixedClock returns a Limiter clock that only moves when advanced.
type fixedClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fixedClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fixedClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func newTestLimiter(config *Config) (*Limiter, *fixedClock) {
	clock := &fixedClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	l := NewLimiter(config)
	l.now = clock.Now
	return l, clock
}

func TestLimiter_Allow(t *testing.T) {
	limiter, _ := newTestLimiter(&Config{Enabled: true, DefaultLimit: 10, DefaultWindow: time.Minute})
	defer limiter.Stop()

	for i := 0; i < 10; i++ {
		allowed, info := limiter.Allow("127.0.0.1", "/styles", "GET")
		if !allowed {
			t.Fatalf("Expected request %d to be allowed", i+1)
		}
		if info.Limit != 10 {
			t.Errorf("Expected limit 10, got %d", info.Limit)
		}
		if info.Remaining != 9-i {
			t.Errorf("Request %d: expected %d remaining, got %d", i+1, 9-i, info.Remaining)
		}
	}

	allowed, info := limiter.Allow("127.0.0.1", "/styles", "GET")
	if allowed {
		t.Error("Expected 11th request to be denied")
	}
	if info.RetryAfter <= 0 || info.RetryAfter > 7*time.Second {
		t.Errorf("Expected retry after about 6s, got %v", info.RetryAfter)
	}
}

func TestLimiter_Refill(t *testing.T) {
	limiter, clock := newTestLimiter(&Config{Enabled: true, DefaultLimit: 60, DefaultWindow: time.Minute})
	defer limiter.Stop()

	for i := 0; i < 60; i++ {
		limiter.Allow("client", "/skills-test", "POST")
	}
	if allowed, _ := limiter.Allow("client", "/skills-test", "POST"); allowed {
		t.Fatal("Expected bucket to be empty")
	}

	clock.Advance(1100 * time.Millisecond)

	if allowed, _ := limiter.Allow("client", "/skills-test", "POST"); !allowed {
		t.Error("Expected request to be allowed after refill")
	}
	if allowed, _ := limiter.Allow("client", "/skills-test", "POST"); allowed {
		t.Error("Expected request to be denied after consuming refilled token")
	}
}

func TestLimiter_WhitelistAndBlacklist(t *testing.T) {
	limiter, _ := newTestLimiter(&Config{
		Enabled:       true,
		DefaultLimit:  1,
		DefaultWindow: time.Minute,
		Whitelist:     map[string]bool{"10.0.0.1": true},
		Blacklist:     map[string]bool{"10.0.0.2": true},
	})
	defer limiter.Stop()

	for i := 0; i < 5; i++ {
		if allowed, _ := limiter.Allow("10.0.0.1", "/rank", "POST"); !allowed {
			t.Errorf("Whitelisted request %d should be allowed", i+1)
		}
	}
	if allowed, _ := limiter.Allow("10.0.0.2", "/rank", "POST"); allowed {
		t.Error("Blacklisted client should be denied")
	}
}

func TestLimiter_Disabled(t *testing.T) {
	limiter, _ := newTestLimiter(&Config{Enabled: false, DefaultLimit: 1, DefaultWindow: time.Minute})
	defer limiter.Stop()

	for i := 0; i < 100; i++ {
		if allowed, _ := limiter.Allow("client", "/proposals", "POST"); !allowed {
			t.Fatalf("Request %d should be allowed when disabled", i+1)
		}
	}
}

func TestLimiter_EndpointSpecific(t *testing.T) {
	limiter, _ := newTestLimiter(&Config{
		Enabled:         true,
		DefaultLimit:    1000,
		DefaultWindow:   time.Minute,
		EndpointConfigs: DefaultEndpointConfigs(60),
	})
	defer limiter.Stop()

	for i := 0; i < 5; i++ {
		if allowed, _ := limiter.Allow("client", "/proposals", "POST"); !allowed {
			t.Fatalf("Burst request %d should be allowed", i+1)
		}
	}
	if allowed, info := limiter.Allow("client", "/proposals", "POST"); allowed {
		t.Error("Request beyond burst should be denied")
	} else if info.Limit != 60 {
		t.Errorf("Expected proposal limit 60, got %d", info.Limit)
	}

	if allowed, _ := limiter.Allow("client", "/styles", "GET"); !allowed {
		t.Error("Other endpoints should use their own bucket")
	}
	if allowed, _ := limiter.Allow("other", "/proposals", "POST"); !allowed {
		t.Error("Other clients should use their own bucket")
	}
	for i := 0; i < 50; i++ {
		if allowed, _ := limiter.Allow("client", "/health", "GET"); !allowed {
			t.Fatal("Health check should never be limited")
		}
	}
}

func TestLimiter_Concurrent(t *testing.T) {
	limiter, _ := newTestLimiter(&Config{Enabled: true, DefaultLimit: 100, DefaultWindow: time.Hour})
	defer limiter.Stop()

	var wg sync.WaitGroup
	var mu sync.Mutex
	allowedCount := 0

	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				if allowed, _ := limiter.Allow("client", "/skills", "GET"); allowed {
					mu.Lock()
					allowedCount++
					mu.Unlock()
				}
			}
		}()
	}
	wg.Wait()

	if allowedCount != 100 {
		t.Errorf("Expected exactly 100 allowed requests, got %d", allowedCount)
	}
}

func TestLimiter_Cleanup(t *testing.T) {
	limiter, clock := newTestLimiter(&Config{Enabled: true, DefaultLimit: 10, DefaultWindow: time.Minute})
	defer limiter.Stop()

	for i := 0; i < 3; i++ {
		limiter.Allow(fmt.Sprintf("client-%d", i), "/rank", "POST")
	}
	if n := limiter.bucketCount(); n != 3 {
		t.Fatalf("Expected 3 buckets, got %d", n)
	}

	clock.Advance(30 * time.Minute)
	limiter.Allow("client-0", "/rank", "POST")
	clock.Advance(45 * time.Minute)
	limiter.cleanupBuckets()

	if n := limiter.bucketCount(); n != 1 {
		t.Errorf("Expected only the recently used bucket to survive, got %d", n)
	}
}

func TestLimiter_StopIsIdempotent(t *testing.T) {
	limiter := NewLimiter(nil)
	limiter.Stop()
	limiter.Stop()
}

func TestMatchEndpoint(t *testing.T) {
	configs := []EndpointConfig{
		{Path: "/proposals", Method: "POST", Limit: 1},
		{Path: "/proposals/", Method: "GET", Limit: 2},
	}

	if c := MatchEndpoint("/proposals", "POST", configs); c == nil || c.Limit != 1 {
		t.Errorf("Expected exact match, got %+v", c)
	}
	if c := MatchEndpoint("/proposals/abc", "GET", configs); c == nil || c.Limit != 2 {
		t.Errorf("Expected prefix match, got %+v", c)
	}
	if c := MatchEndpoint("/proposals", "GET", configs); c != nil {
		t.Errorf("Expected no match, got %+v", c)
	}
	if c := MatchEndpoint("/health", "GET", configs); c == nil || c.Limit != 0 {
		t.Errorf("Expected unlimited health check, got %+v", c)
	}
}

func TestLoadConfig_Env(t *testing.T) {
	t.Setenv("RATE_LIMIT_ENABLED", "true")
	t.Setenv("RATE_LIMIT_DEFAULT_LIMIT", "42")
	t.Setenv("RATE_LIMIT_DEFAULT_WINDOW", "30s")
	t.Setenv("RATE_LIMIT_WHITELIST", "10.0.0.1, 10.0.0.2,")
	t.Setenv("RATE_LIMIT_PROPOSALS_PER_HOUR", "7")

	cfg := LoadConfig()
	if !cfg.Enabled || cfg.DefaultLimit != 42 || cfg.DefaultWindow != 30*time.Second {
		t.Errorf("Unexpected config: %+v", cfg)
	}
	if len(cfg.Whitelist) != 2 || !cfg.Whitelist["10.0.0.2"] {
		t.Errorf("Unexpected whitelist: %v", cfg.Whitelist)
	}
	if c := MatchEndpoint("/proposals", "POST", cfg.EndpointConfigs); c == nil || c.Limit != 7 {
		t.Errorf("Expected proposal limit from env, got %+v", c)
	}

	t.Setenv("RATE_LIMIT_ENABLED", "false")
	if LoadConfig().Enabled {
		t.Error("Expected rate limiting to be disabled")
	}
}
