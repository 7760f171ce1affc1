package prefs

import (
	"context"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"testing"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *RedisStore) {
	t.Helper()
	srv := miniredis.RunT(t)
	store := NewRedisStore(redis.NewClient(&redis.Options{Addr: srv.Addr()}), DefaultRedisPrefix)
	t.Cleanup(func() { _ = store.Close() })
	return srv, store
}

func TestRedisStore(t *testing.T) {
	srv, store := newTestRedis(t)
	ctx := context.Background()

	if v, ok, err := store.Get(ctx, ThemeKey); err != nil || ok || v != "" {
		t.Errorf("Missing key should read as not found: %q ok=%t err=%v", v, ok, err)
	}

	if err := store.Set(ctx, ThemeKey, ThemeLight); err != nil {
		t.Fatalf("Should not fail writing: %s", err)
	}

	raw, err := srv.Get(DefaultRedisPrefix + ThemeKey)
	if err != nil || raw != ThemeLight {
		t.Errorf("Value should be stored under the prefixed key: %q err=%v", raw, err)
	}
	if srv.Exists(ThemeKey) {
		t.Errorf("Unprefixed key should not be written")
	}

	v, ok, err := store.Get(ctx, ThemeKey)
	if err != nil || !ok || v != ThemeLight {
		t.Errorf("Stored value: %q ok=%t err=%v", v, ok, err)
	}
}

func TestRedisStore_Visits(t *testing.T) {
	srv, store := newTestRedis(t)
	ctx := context.Background()

	for want := 1; want <= 3; want++ {
		n, err := RecordVisit(ctx, store)
		if err != nil || n != want {
			t.Errorf("Visit %d: got %d err=%v", want, n, err)
		}
	}
	if raw, _ := srv.Get(DefaultRedisPrefix + VisitsKey); raw != "3" {
		t.Errorf("Counter should be persisted in redis, got %q", raw)
	}
}

func TestRedisStore_Unavailable(t *testing.T) {
	srv, store := newTestRedis(t)
	srv.Close()

	if _, _, err := store.Get(context.Background(), ThemeKey); err == nil {
		t.Errorf("Should fail when redis is down")
	}
	if theme, err := Theme(context.Background(), store); err == nil || theme != ThemeDark {
		t.Errorf("Theme should fall back to dark with an error, got %q err=%v", theme, err)
	}
}
