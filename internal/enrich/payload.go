package enrich

import "storefront-location/internal/types"

// FormatPayload shapes a selection and its coordinates into the backend
// location document. Location is nil without coordinates.
func FormatPayload(sel types.Selection, coords *types.Coordinates) types.LocationPayload {
	payload := types.LocationPayload{}

	if sel.Country != nil {
		country := *sel.Country
		payload.Country = &country
	}
	if sel.State != nil {
		state := *sel.State
		payload.State = &state
	}
	if sel.City != nil {
		city := *sel.City
		payload.City = &city
	}

	if coords != nil {
		address := coords.FormattedAddress
		if address == "" {
			address = coords.Address
		}
		if address == "" {
			address = BuildAddress(sel)
		}
		payload.Location = types.NewGeoPoint(address, coords.Lat, coords.Lng)
	}

	return payload
}
