package domain

// Place is the canonical form of one saved-places feature, keyed by the
// Google Maps permalink. Optional attributes are pointers so "absent" and
// "empty" stay distinguishable all the way to the store, where a nil maps
// to a removed property.
type Place struct {
	GoogleMapsURL string
	Name          string
	Type          string
	Description   *string
	Address       *string
	Latitude      *float64
	Longitude     *float64
	Prefecture    *string
	SavedList     *string
	Visited       *bool
	VisitedDate   *string
	Rating        *float64
	SavedDate     *string
}
