package takeout

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeDoc(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "SavedPlaces.json")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestLoadDocument(t *testing.T) {
	path := writeDoc(t, `{
  "type": "FeatureCollection",
  "features": [
    {
      "type": "Feature",
      "geometry": {"type": "Point", "coordinates": [135.5023, 34.6937]},
      "properties": {
        "google_maps_url": "https://maps.google.com/?cid=100",
        "location": {"name": "Dotonbori", "address": "Chuo Ward, Osaka", "country_code": "JP"},
        "prefecture": "Osaka"
      }
    },
    {
      "type": "Feature",
      "geometry": null,
      "properties": {
        "google_maps_url": "https://maps.google.com/?cid=101",
        "location": {"name": "Mystery Spot"}
      }
    }
  ]
}`)

	doc, err := LoadDocument(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(doc.Features) != 2 {
		t.Fatalf("expected 2 features, got %d", len(doc.Features))
	}
	first := doc.Features[0]
	if first.Properties.Location.Name != "Dotonbori" {
		t.Fatalf("unexpected name: %q", first.Properties.Location.Name)
	}
	if first.Properties.Prefecture != "Osaka" {
		t.Fatalf("unexpected prefecture: %q", first.Properties.Prefecture)
	}
	if len(first.Geometry) == 0 {
		t.Fatalf("expected raw geometry to be retained")
	}
}

func TestLoadDocumentEmptyFeatures(t *testing.T) {
	for _, content := range []string{
		`{"type": "FeatureCollection", "features": []}`,
		`{"type": "FeatureCollection"}`,
	} {
		doc, err := LoadDocument(writeDoc(t, content))
		if err != nil {
			t.Fatalf("load %q: %v", content, err)
		}
		if len(doc.Features) != 0 {
			t.Fatalf("expected no features, got %d", len(doc.Features))
		}
	}
}

func TestLoadDocumentMalformed(t *testing.T) {
	_, err := LoadDocument(writeDoc(t, `{"type": "FeatureCollection", "features": [`))
	if !errors.Is(err, ErrParse) {
		t.Fatalf("expected ErrParse, got %v", err)
	}
}

func TestLoadDocumentMissingFile(t *testing.T) {
	_, err := LoadDocument(filepath.Join(t.TempDir(), "nope.json"))
	if err == nil {
		t.Fatalf("expected error for missing file")
	}
	if errors.Is(err, ErrParse) {
		t.Fatalf("read failure should not be a parse error: %v", err)
	}
}
