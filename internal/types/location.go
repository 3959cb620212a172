package types

// LocationInfo contains human-readable location metadata returned by reverse geocoding
type LocationInfo struct {
	Name             string `json:"name"`
	City             string `json:"city"`
	County           string `json:"county"`
	State            string `json:"state"`
	Country          string `json:"country"`
	CountryCode      string `json:"countryCode"`
	FormattedAddress string `json:"formattedAddress"`
}
