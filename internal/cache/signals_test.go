package cache

import (
	"testing"
	"time"

	"github.com/ppiankov/claimguard/internal/model"
)

func TestSignalStore_RoundTrip(t *testing.T) {
	store := NewSignalStore(NewMemoryCache(time.Minute), time.Minute)

	sig := model.URLSignal{
		Host:          "www.nih.gov",
		TLD:           ".gov",
		Scheme:        "https",
		InferredType:  model.SourceWhitepaper,
		InferredYear:  2021,
		ContentOK:     true,
		ContentLength: 9000,
		Details:       "type: whitepaper; year≈2021; tld=.gov",
	}

	store.Set("https://www.nih.gov/report", sig)

	got, ok := store.Get("https://www.nih.gov/report")
	if !ok {
		t.Fatal("Expected cached signal")
	}
	if got != sig {
		t.Errorf("Expected %+v, got %+v", sig, got)
	}
}

func TestSignalStore_MissReturnsFalse(t *testing.T) {
	store := NewSignalStore(NewMemoryCache(time.Minute), time.Minute)

	if _, ok := store.Get("https://example.com/never-stored"); ok {
		t.Error("Expected cache miss for unknown URL")
	}
}

func TestSignalStore_KeysByURL(t *testing.T) {
	store := NewSignalStore(NewMemoryCache(time.Minute), time.Minute)

	store.Set("https://a.example.com/", model.URLSignal{Host: "a.example.com", InferredType: model.SourceUnknown})
	store.Set("https://b.example.com/", model.URLSignal{Host: "b.example.com", InferredType: model.SourceNews})

	a, ok := store.Get("https://a.example.com/")
	if !ok || a.Host != "a.example.com" {
		t.Errorf("Expected signal for a.example.com, got %+v (ok=%v)", a, ok)
	}
	b, ok := store.Get("https://b.example.com/")
	if !ok || b.InferredType != model.SourceNews {
		t.Errorf("Expected news signal for b.example.com, got %+v (ok=%v)", b, ok)
	}
}

func TestLayeredCache_DiskSurvivesMemoryLoss(t *testing.T) {
	dir := t.TempDir()

	first := NewLayeredCache(dir, time.Minute)
	if err := first.Set(CacheKey("https://example.com/doc"), []byte("payload"), time.Minute); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	// A fresh layered cache over the same directory only has the disk layer
	second := NewLayeredCache(dir, time.Minute)
	val, ok := second.Get(CacheKey("https://example.com/doc"))
	if !ok {
		t.Fatal("Expected disk layer hit after restart")
	}
	if string(val) != "payload" {
		t.Errorf("Expected 'payload', got '%s'", val)
	}
}

func TestDiskCache_ExpiredEntryDropped(t *testing.T) {
	dir := t.TempDir()
	disk := NewDiskCache(dir, time.Minute)

	if err := disk.Set("k", []byte("v"), -time.Second); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if _, ok := disk.Get("k"); ok {
		t.Error("Expected expired entry to be dropped")
	}
}
