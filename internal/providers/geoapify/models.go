package geoapify

// GeocodeAPIResponse is the body of both the search and the reverse endpoints
// when requested with format=json.
type GeocodeAPIResponse struct {
	Results []GeocodeResult `json:"results"`
}

type GeocodeResult struct {
	PlaceId     string  `json:"place_id"`
	Lat         float64 `json:"lat"`
	Lon         float64 `json:"lon"`
	Formatted   string  `json:"formatted"`
	Name        string  `json:"name"`
	City        string  `json:"city"`
	County      string  `json:"county"`
	State       string  `json:"state"`
	Country     string  `json:"country"`
	CountryCode string  `json:"country_code"`
	ResultType  string  `json:"result_type"`
}
