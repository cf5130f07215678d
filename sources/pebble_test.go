package sources

import (
	"context"
	"testing"
	"time"

	"github.com/creastat/logmerge/core"
)

func drainSource(t *testing.T, src core.Source) []core.Entry {
	t.Helper()
	ctx := context.Background()
	var got []core.Entry
	for {
		entry, ok, err := src.Next(ctx)
		if err != nil {
			t.Fatalf("Next failed: %v", err)
		}
		if !ok {
			return got
		}
		got = append(got, entry)
	}
}

func TestPebbleSourceDrain(t *testing.T) {
	dir := t.TempDir()
	entries := []core.Entry{
		{Timestamp: time.Unix(0, 100), Payload: []byte("a")},
		{Timestamp: time.Unix(0, 200), Payload: []byte("b")},
		{Timestamp: time.Unix(0, 300), Payload: []byte("c")},
	}
	if err := WritePebbleEntries(dir, entries); err != nil {
		t.Fatalf("seed store: %v", err)
	}

	src, err := NewPebbleSource("store", dir)
	if err != nil {
		t.Fatalf("open source: %v", err)
	}

	got := drainSource(t, src)
	if len(got) != 3 {
		t.Fatalf("read %d entries, want 3", len(got))
	}
	for i, want := range entries {
		if !got[i].Timestamp.Equal(want.Timestamp) || string(got[i].Payload) != string(want.Payload) {
			t.Fatalf("entry %d = %+v, want %+v", i, got[i], want)
		}
	}

	// Exhaustion is sticky after the store is released.
	_, ok, err := src.Next(context.Background())
	if err != nil || ok {
		t.Fatalf("Next after drain = (%v, %v), want exhausted", ok, err)
	}
}

func TestPebbleSourceEqualTimestampsStable(t *testing.T) {
	dir := t.TempDir()
	ts := time.Unix(0, 500)
	entries := []core.Entry{
		{Timestamp: ts, Payload: []byte("first")},
		{Timestamp: ts, Payload: []byte("second")},
		{Timestamp: ts, Payload: []byte("third")},
	}
	if err := WritePebbleEntries(dir, entries); err != nil {
		t.Fatalf("seed store: %v", err)
	}

	src, err := NewPebbleSource("store", dir)
	if err != nil {
		t.Fatalf("open source: %v", err)
	}

	got := drainSource(t, src)
	want := []string{"first", "second", "third"}
	for i := range want {
		if string(got[i].Payload) != want[i] {
			t.Fatalf("entry %d = %q, want %q", i, got[i].Payload, want[i])
		}
	}
}

func TestPebbleSourceEmptyStore(t *testing.T) {
	dir := t.TempDir()
	if err := WritePebbleEntries(dir, nil); err != nil {
		t.Fatalf("seed store: %v", err)
	}

	src, err := NewPebbleSource("store", dir)
	if err != nil {
		t.Fatalf("open source: %v", err)
	}
	if got := drainSource(t, src); len(got) != 0 {
		t.Fatalf("read %d entries from empty store", len(got))
	}
}

func TestPebbleSourceClose(t *testing.T) {
	dir := t.TempDir()
	if err := WritePebbleEntries(dir, []core.Entry{{Timestamp: time.Unix(0, 1), Payload: []byte("a")}}); err != nil {
		t.Fatalf("seed store: %v", err)
	}

	src, err := NewPebbleSource("store", dir)
	if err != nil {
		t.Fatalf("open source: %v", err)
	}
	if _, ok, err := src.Next(context.Background()); err != nil || !ok {
		t.Fatalf("Next = (%v, %v), want entry", ok, err)
	}
	if err := src.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}
	_, ok, err := src.Next(context.Background())
	if err != nil || ok {
		t.Fatalf("Next after close = (%v, %v), want exhausted", ok, err)
	}
}
