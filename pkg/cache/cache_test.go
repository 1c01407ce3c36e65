package cache

import (
	"bytes"
	"context"
	"testing"
	"time"
)

func TestFileCache(t *testing.T) {
	ctx := context.Background()
	c, err := NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer c.Close()

	t.Run("MissOnEmpty", func(t *testing.T) {
		_, ok, err := c.Get(ctx, "absent")
		if err != nil {
			t.Fatal(err)
		}
		if ok {
			t.Error("ok = true, want miss")
		}
	})

	t.Run("SetGet", func(t *testing.T) {
		want := []byte(`{"nodes":[]}`)
		if err := c.Set(ctx, "payload:1", want, 0); err != nil {
			t.Fatal(err)
		}
		got, ok, err := c.Get(ctx, "payload:1")
		if err != nil {
			t.Fatal(err)
		}
		if !ok {
			t.Fatal("ok = false, want hit")
		}
		if !bytes.Equal(got, want) {
			t.Errorf("data = %q, want %q", got, want)
		}
	})

	t.Run("Expiry", func(t *testing.T) {
		if err := c.Set(ctx, "fleeting", []byte("x"), time.Millisecond); err != nil {
			t.Fatal(err)
		}
		time.Sleep(10 * time.Millisecond)
		_, ok, err := c.Get(ctx, "fleeting")
		if err != nil {
			t.Fatal(err)
		}
		if ok {
			t.Error("expired entry returned as hit")
		}
	})

	t.Run("Delete", func(t *testing.T) {
		if err := c.Set(ctx, "gone", []byte("x"), 0); err != nil {
			t.Fatal(err)
		}
		if err := c.Delete(ctx, "gone"); err != nil {
			t.Fatal(err)
		}
		if _, ok, _ := c.Get(ctx, "gone"); ok {
			t.Error("deleted entry returned as hit")
		}
		// Deleting an absent key is not an error.
		if err := c.Delete(ctx, "never-existed"); err != nil {
			t.Errorf("Delete(absent) = %v, want nil", err)
		}
	})
}

func TestNullCache(t *testing.T) {
	ctx := context.Background()
	c := NewNullCache()

	if err := c.Set(ctx, "k", []byte("v"), 0); err != nil {
		t.Fatal(err)
	}
	if _, ok, err := c.Get(ctx, "k"); ok || err != nil {
		t.Errorf("Get = (%v, %v), want miss with no error", ok, err)
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatal(err)
	}
	if err := c.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestHash(t *testing.T) {
	a := Hash([]byte("payload:1"))
	b := Hash([]byte("payload:1"))
	other := Hash([]byte("payload:2"))

	if a != b {
		t.Error("hash not stable for equal input")
	}
	if a == other {
		t.Error("hash collides for different input")
	}
	if len(a) != 64 {
		t.Errorf("hash length = %d, want 64 hex chars", len(a))
	}
}
