package takeout

import (
	"encoding/json"
	"errors"
	"math"
	"strings"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"placegraph-backend/internal/domain"
)

// Rejection reasons. Rejected features are dropped silently; callers only
// ever surface aggregate counts.
var (
	ErrNoName = errors.New("feature has no place name")
	ErrNoURL  = errors.New("feature has no google_maps_url")
)

const defaultCategory = "place"

// Normalize maps one raw feature to its canonical Place record. It is pure:
// no I/O, and the input is never mutated.
func Normalize(f Feature) (domain.Place, error) {
	props := f.Properties

	name := strings.TrimSpace(props.Location.Name)
	if name == "" {
		return domain.Place{}, ErrNoName
	}
	url := strings.TrimSpace(props.GoogleMapsURL)
	if url == "" {
		return domain.Place{}, ErrNoURL
	}

	p := domain.Place{
		GoogleMapsURL: url,
		Name:          name,
		Type:          defaultCategory,
	}
	if c := strings.TrimSpace(props.Category); c != "" {
		p.Type = c
	}

	if lng, lat, ok := pointCoords(f.Geometry); ok {
		p.Longitude = &lng
		p.Latitude = &lat
	}

	if props.Location.Address != "" {
		addr := props.Location.Address
		p.Address = &addr
	}

	// Free text prefers explicit notes, then falls back to the address.
	switch {
	case props.Notes != "":
		notes := props.Notes
		p.Description = &notes
	case props.Location.Address != "":
		addr := props.Location.Address
		p.Description = &addr
	}

	// Region name is carried verbatim; whitespace only decides presence.
	if strings.TrimSpace(props.Prefecture) != "" {
		pref := props.Prefecture
		p.Prefecture = &pref
	}

	p.SavedList = props.SavedList
	p.Visited = props.Visited
	p.VisitedDate = props.VisitedDate
	p.Rating = props.TabelogRating
	p.SavedDate = props.Date
	return p, nil
}

// pointCoords accepts only a Point geometry whose coordinates are exactly
// two finite numbers. Anything else leaves both coordinates absent; a
// partial pair never escapes.
func pointCoords(raw json.RawMessage) (lng, lat float64, ok bool) {
	trimmed := strings.TrimSpace(string(raw))
	if trimmed == "" || trimmed == "null" {
		return 0, 0, false
	}

	var probe struct {
		Coordinates []json.RawMessage `json:"coordinates"`
	}
	if err := json.Unmarshal(raw, &probe); err != nil || len(probe.Coordinates) != 2 {
		return 0, 0, false
	}

	geom, err := geojson.UnmarshalGeometry(raw)
	if err != nil || geom == nil {
		return 0, 0, false
	}
	pt, isPoint := geom.Geometry().(orb.Point)
	if !isPoint {
		return 0, 0, false
	}

	lng, lat = pt.Lon(), pt.Lat()
	if math.IsNaN(lng) || math.IsInf(lng, 0) || math.IsNaN(lat) || math.IsInf(lat, 0) {
		return 0, 0, false
	}
	return lng, lat, true
}
