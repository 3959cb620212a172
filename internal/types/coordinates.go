package types

// Coords is a bare latitude/longitude pair in decimal degrees.
type Coords struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func NewCoords(latitude, longitude float64) Coords {
	return Coords{
		Latitude:  latitude,
		Longitude: longitude,
	}
}

// Coordinates is the result of resolving a selected place to a point on the map
type Coordinates struct {
	Lat              float64 `json:"lat"`
	Lng              float64 `json:"lng"`
	Address          string  `json:"address"`
	FormattedAddress string  `json:"formattedAddress"`
	PlaceID          string  `json:"placeId,omitempty"`
	Timezone         string  `json:"timezone,omitempty"`
	Geohash          string  `json:"geohash,omitempty"`
}

func (c Coordinates) Coords() Coords {
	return NewCoords(c.Lat, c.Lng)
}
