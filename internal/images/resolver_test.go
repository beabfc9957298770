package images

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/inkwell-labs/lorekeeper/internal/models"
)

func writeBundleFile(t *testing.T, dir, set, name string) string {
	t.Helper()

	setDir := filepath.Join(dir, set)
	if err := os.MkdirAll(setDir, 0o755); err != nil {
		t.Fatalf("failed to create bundle dir: %v", err)
	}
	path := filepath.Join(setDir, name)
	if err := os.WriteFile(path, []byte("webp"), 0o644); err != nil {
		t.Fatalf("failed to write bundle file: %v", err)
	}
	return path
}

func TestResolveLocalBundle(t *testing.T) {
	dir := t.TempDir()
	want := writeBundleFile(t, dir, "The_First_Chapter", "TFC-001.webp")

	r := NewResolver(dir)
	loc := r.Resolve(models.Card{
		SetName:  "The First Chapter",
		UniqueID: "TFC-001",
		Variant:  models.VariantNormal,
		ImageURL: "https://cdn.example.com/tfc-001.png",
	})

	if !loc.IsLocal() {
		t.Fatalf("expected a local location, got %+v", loc)
	}
	if loc.LocalPath != want {
		t.Errorf("LocalPath = %s, want %s", loc.LocalPath, want)
	}
}

func TestResolveVariantSuffix(t *testing.T) {
	dir := t.TempDir()
	writeBundleFile(t, dir, "The_First_Chapter", "TFC-001.webp")
	want := writeBundleFile(t, dir, "The_First_Chapter", "TFC-001_enchanted.webp")

	r := NewResolver(dir)
	loc := r.Resolve(models.Card{
		SetName:  "The First Chapter",
		UniqueID: "TFC-001",
		Variant:  models.VariantEnchanted,
	})

	if loc.LocalPath != want {
		t.Errorf("LocalPath = %s, want %s", loc.LocalPath, want)
	}
}

func TestResolveFallsBackToCardNumber(t *testing.T) {
	dir := t.TempDir()
	want := writeBundleFile(t, dir, "Rise_of_the_Floodborn", "42.webp")

	r := NewResolver(dir)
	loc := r.Resolve(models.Card{
		SetName:    "Rise of the Floodborn",
		CardNumber: "42",
		Variant:    models.VariantNormal,
	})

	if loc.LocalPath != want {
		t.Errorf("LocalPath = %s, want %s", loc.LocalPath, want)
	}
}

func TestResolveRemoteFallback(t *testing.T) {
	r := NewResolver(t.TempDir())
	loc := r.Resolve(models.Card{
		SetName:  "The First Chapter",
		UniqueID: "TFC-999",
		Variant:  models.VariantNormal,
		ImageURL: "https://cdn.example.com/tfc-999.png",
	})

	if loc.IsLocal() {
		t.Fatalf("expected a remote location, got %+v", loc)
	}
	if loc.RemoteURL != "https://cdn.example.com/tfc-999.png" {
		t.Errorf("RemoteURL = %s", loc.RemoteURL)
	}
}

func TestResolveNoBundleConfigured(t *testing.T) {
	r := NewResolver("")
	loc := r.Resolve(models.Card{UniqueID: "TFC-001", ImageURL: "https://cdn.example.com/x.png"})
	if loc.IsLocal() {
		t.Error("resolver without a bundle dir should never report local paths")
	}
}
