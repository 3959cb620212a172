package types

import "github.com/paulmach/orb"

// GeoJSONPoint is the only geometry type the backend accepts for a location
const GeoJSONPoint = "Point"

// LocationPayload is the location document the storefront backend stores for
// a user or an outlet.
type LocationPayload struct {
	Country  *Country  `json:"country"`
	State    *State    `json:"state"`
	City     *City     `json:"city"`
	Location *GeoPoint `json:"location"`
}

// GeoPoint is a GeoJSON point. Coordinates are ordered [longitude, latitude].
type GeoPoint struct {
	Address     string    `json:"address"`
	Type        string    `json:"type"`
	Coordinates orb.Point `json:"coordinates"`
}

func NewGeoPoint(address string, lat, lng float64) *GeoPoint {
	return &GeoPoint{
		Address:     address,
		Type:        GeoJSONPoint,
		Coordinates: orb.Point{lng, lat},
	}
}
