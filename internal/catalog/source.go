package catalog

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/inkwell-labs/lorekeeper/internal/models"
)

// SetsIndex is the top-level dataset document listing every set.
type SetsIndex struct {
	Version     string       `json:"version"`
	LastUpdated string       `json:"lastUpdated"`
	Sets        []models.Set `json:"sets"`
}

// setDocument is one per-set dataset document.
type setDocument struct {
	SetName   string       `json:"setName"`
	SetCode   string       `json:"setCode"`
	CardCount int          `json:"cardCount"`
	Cards     []cardRecord `json:"cards"`
}

// cardRecord mirrors the Card entity as it appears in dataset files. The
// variant arrives as a loose string and is normalized on conversion.
type cardRecord struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Cost       int    `json:"cost"`
	Type       string `json:"type"`
	Rarity     string `json:"rarity"`
	SetName    string `json:"setName"`
	BodyText   string `json:"bodyText"`
	ImageURL   string `json:"imageUrl"`
	Variant    string `json:"variant"`
	CardNumber string `json:"cardNumber,omitempty"`
	UniqueID   string `json:"uniqueId,omitempty"`
	Inkwell    bool   `json:"inkwell"`
	Strength   *int   `json:"strength,omitempty"`
	Willpower  *int   `json:"willpower,omitempty"`
	Lore       *int   `json:"lore,omitempty"`
	Franchise  string `json:"franchise,omitempty"`
	InkColor   string `json:"inkColor,omitempty"`
}

// Source supplies the raw dataset: the sets index plus one card list per set.
type Source interface {
	SetsIndex(ctx context.Context) (*SetsIndex, error)
	SetCards(ctx context.Context, set models.Set) ([]models.Card, error)
}

// FileSource reads the bundled dataset from a directory on disk:
// <dir>/sets.json for the index and <dir>/cards/<setCode>.json per set.
type FileSource struct {
	dir string
}

// NewFileSource creates a Source over the given data directory.
func NewFileSource(dir string) *FileSource {
	return &FileSource{dir: dir}
}

func (f *FileSource) SetsIndex(ctx context.Context) (*SetsIndex, error) {
	path := filepath.Join(f.dir, "sets.json")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &FileNotFoundError{Name: path}
		}
		return nil, &InvalidDataError{Message: err.Error()}
	}

	var index SetsIndex
	if err := json.Unmarshal(data, &index); err != nil {
		return nil, &DecodingError{Message: err.Error()}
	}
	if len(index.Sets) == 0 {
		return nil, &InvalidDataError{Message: "sets index lists no sets"}
	}
	return &index, nil
}

func (f *FileSource) SetCards(ctx context.Context, set models.Set) ([]models.Card, error) {
	path := filepath.Join(f.dir, "cards", set.SetCode+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &FileNotFoundError{Name: path}
		}
		return nil, &InvalidDataError{Message: err.Error()}
	}

	var doc setDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &DecodingError{Message: err.Error()}
	}

	cards := make([]models.Card, 0, len(doc.Cards))
	for _, rec := range doc.Cards {
		cards = append(cards, rec.toCard(set))
	}
	return cards, nil
}

// toCard converts a dataset record into a Card owned by the given set. The
// owning set's display name always wins over whatever the record carries, so
// the per-set index stays consistent with the set metadata.
func (r cardRecord) toCard(set models.Set) models.Card {
	return models.Card{
		ID:         r.ID,
		Name:       r.Name,
		Cost:       r.Cost,
		Type:       r.Type,
		Rarity:     r.Rarity,
		SetName:    set.Name,
		BodyText:   r.BodyText,
		ImageURL:   r.ImageURL,
		Variant:    models.NormalizeVariant(r.Variant),
		CardNumber: r.CardNumber,
		UniqueID:   r.UniqueID,
		Inkwell:    r.Inkwell,
		Strength:   r.Strength,
		Willpower:  r.Willpower,
		Lore:       r.Lore,
		Franchise:  r.Franchise,
		InkColor:   r.InkColor,
	}
}
