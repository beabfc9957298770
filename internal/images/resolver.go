// Package images resolves per-card artwork locations across the local image
// bundle and each card's remote URL.
package images

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/inkwell-labs/lorekeeper/internal/models"
)

// Location is where a card's artwork can be read from. Exactly one of the
// two fields is meaningful.
type Location struct {
	LocalPath string `json:"local_path,omitempty"`
	RemoteURL string `json:"remote_url,omitempty"`
}

// IsLocal reports whether the artwork was found in the local bundle.
func (l Location) IsLocal() bool {
	return l.LocalPath != ""
}

// Prefetcher is the contract for the external image cache collaborator. The
// core only hands cards over; how and when artwork is actually fetched is
// the collaborator's business.
type Prefetcher interface {
	Prefetch(cards []models.Card)
}

// NopPrefetcher satisfies Prefetcher without doing anything.
type NopPrefetcher struct{}

func (NopPrefetcher) Prefetch([]models.Card) {}

// Resolver maps a card to its artwork location. Bundle layout is
// <dir>/<set name>/<unique id or card number>[_<variant>].webp; anything not
// present locally falls back to the card's remote URL.
type Resolver struct {
	bundleDir string
}

// NewResolver creates a resolver over the given bundle directory. An empty
// directory disables local lookups entirely.
func NewResolver(bundleDir string) *Resolver {
	return &Resolver{bundleDir: bundleDir}
}

// Resolve returns the artwork location for a card.
func (r *Resolver) Resolve(card models.Card) Location {
	if r.bundleDir != "" {
		path := filepath.Join(r.bundleDir, sanitizeDir(card.SetName), bundleFileName(card))
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return Location{LocalPath: path}
		}
	}
	return Location{RemoteURL: card.ImageURL}
}

// bundleFileName names a printing's artwork file. Non-normal variants carry
// a variant suffix so multiple finishes of one card can coexist.
func bundleFileName(card models.Card) string {
	base := card.UniqueID
	if base == "" {
		base = card.CardNumber
	}
	if card.Variant != models.VariantNormal {
		return fmt.Sprintf("%s_%s.webp", base, card.Variant)
	}
	return base + ".webp"
}

// sanitizeDir makes a set display name safe as a bundle directory name.
func sanitizeDir(name string) string {
	replacer := strings.NewReplacer(" ", "_", "/", "-", ":", "")
	return replacer.Replace(name)
}
