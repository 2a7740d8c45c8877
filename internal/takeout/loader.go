package takeout

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// ErrParse wraps any failure to decode the export document itself.
var ErrParse = errors.New("takeout: malformed saved places document")

// Document is the top level of a Takeout SavedPlaces.json export: a GeoJSON
// feature collection with app-specific properties on each feature.
type Document struct {
	Type     string    `json:"type"`
	Features []Feature `json:"features"`
}

// Feature keeps its geometry raw so a malformed geometry costs that one
// record its coordinates instead of failing the whole file.
type Feature struct {
	Type       string          `json:"type"`
	Geometry   json.RawMessage `json:"geometry"`
	Properties Properties      `json:"properties"`
}

type Properties struct {
	Location      Location `json:"location"`
	GoogleMapsURL string   `json:"google_maps_url"`
	Category      string   `json:"category"`
	SavedList     *string  `json:"saved_list"`
	Prefecture    string   `json:"prefecture"`
	Notes         string   `json:"notes"`
	Visited       *bool    `json:"visited"`
	VisitedDate   *string  `json:"visited_date"`
	TabelogRating *float64 `json:"tabelog_rating"`
	Date          *string  `json:"date"`
}

type Location struct {
	Name        string `json:"name"`
	Address     string `json:"address"`
	CountryCode string `json:"country_code"`
}

// LoadDocument reads and decodes one export file. A document without a
// features array is valid and yields an empty slice.
func LoadDocument(path string) (*Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("takeout: read %s: %w", path, err)
	}
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	return &doc, nil
}
