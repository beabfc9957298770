package models

import (
	"strings"
	"time"
)

// Variant is the finish/edition classification of a single printing.
type Variant string

const (
	VariantNormal     Variant = "normal"
	VariantFoil       Variant = "foil"
	VariantEnchanted  Variant = "enchanted"
	VariantPromo      Variant = "promo"
	VariantBorderless Variant = "borderless"
	VariantEpic       Variant = "epic"
	VariantIconic     Variant = "iconic"
)

// AllVariants returns all valid printing variants
func AllVariants() []Variant {
	return []Variant{
		VariantNormal,
		VariantFoil,
		VariantEnchanted,
		VariantPromo,
		VariantBorderless,
		VariantEpic,
		VariantIconic,
	}
}

// NormalizeVariant maps loose variant strings from dataset files to a Variant.
// Unknown or empty values default to normal.
func NormalizeVariant(v string) Variant {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "foil":
		return VariantFoil
	case "enchanted":
		return VariantEnchanted
	case "promo":
		return VariantPromo
	case "borderless":
		return VariantBorderless
	case "epic":
		return VariantEpic
	case "iconic":
		return VariantIconic
	default:
		return VariantNormal
	}
}

// Card is one printing of a named card. Two cards with the same name but
// different set or unique ID are distinct printings and are never merged
// outside of a CardGroup.
type Card struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Cost       int      `json:"cost"`
	Type       string   `json:"type"`
	Rarity     string   `json:"rarity"`
	SetName    string   `json:"set_name"`
	BodyText   string   `json:"body_text"`
	ImageURL   string   `json:"image_url"`
	Variant    Variant  `json:"variant"`
	CardNumber string   `json:"card_number,omitempty"`
	UniqueID   string   `json:"unique_id,omitempty"`
	Inkwell    bool     `json:"inkwell"`
	Strength   *int     `json:"strength,omitempty"`
	Willpower  *int     `json:"willpower,omitempty"`
	Lore       *int     `json:"lore,omitempty"`
	Franchise  string   `json:"franchise,omitempty"`
	InkColor   string   `json:"ink_color,omitempty"`
	PriceUSD   *float64 `json:"price_usd,omitempty"` // attached at read time, never authoritative
}

// Set is the metadata for one released (or upcoming) card set.
// Loaded once at startup and immutable thereafter.
type Set struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	SetCode     string `json:"set_code"`
	ReleaseDate string `json:"release_date,omitempty"` // ISO date; empty sorts first
	CardCount   int    `json:"card_count"`
	Description string `json:"description"`
	IsReleased  bool   `json:"is_released"`
}

// CardSearchResult wraps a flat card search response.
type CardSearchResult struct {
	Cards       []Card   `json:"cards"`
	TotalCount  int      `json:"total_count"`
	Suggestions []string `json:"suggestions,omitempty"`
}

// GroupSearchResult wraps a grouped (reprint-aware) search response.
type GroupSearchResult struct {
	Groups     []CardGroup `json:"groups"`
	TotalCount int         `json:"total_count"`
}

// PriceEntry is one cached price observation for a card.
type PriceEntry struct {
	CardID     string    `json:"card_id"`
	PriceUSD   float64   `json:"price_usd"`
	ObservedAt time.Time `json:"observed_at"`
}
