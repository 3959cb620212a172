package cascade

import (
	"fmt"

	"storefront-location/internal/location"
)

// Selection holds the chosen option id of each tier. Zero means unset.
type Selection struct {
	CountryID int `json:"countryId"`
	StateID   int `json:"stateId"`
	CityID    int `json:"cityId"`
}

// Validate reports a child tier that is set without its parent
func (s Selection) Validate() error {
	if s.StateID != 0 && s.CountryID == 0 {
		return fmt.Errorf("state %d selected without a country: %w", s.StateID, location.ErrInvariantViolation)
	}
	if s.CityID != 0 && s.StateID == 0 {
		return fmt.Errorf("city %d selected without a state: %w", s.CityID, location.ErrInvariantViolation)
	}
	return nil
}

func (s Selection) IsZero() bool {
	return s == Selection{}
}
