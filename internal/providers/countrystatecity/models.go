package countrystatecity

type CountryAPIResponse struct {
	Id        int    `json:"id"`
	Name      string `json:"name"`
	Iso2      string `json:"iso2"`
	Iso3      string `json:"iso3"`
	Phonecode string `json:"phonecode"`
	Capital   string `json:"capital"`
	Currency  string `json:"currency"`
	Native    string `json:"native"`
	Emoji     string `json:"emoji"`
}

type StateAPIResponse struct {
	Id   int    `json:"id"`
	Name string `json:"name"`
	Iso2 string `json:"iso2"`
}

type CityAPIResponse struct {
	Id   int    `json:"id"`
	Name string `json:"name"`
}
