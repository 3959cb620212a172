package cascade

import (
	"storefront-location/internal/enrich"
	"storefront-location/internal/types"
)

// Advisory messages surfaced per tier
const (
	MsgCountriesFailed   = "Failed to fetch countries. Please try again later."
	MsgStatesNotFound    = "No states found for the selected country."
	MsgStatesFailed      = "Failed to fetch states. Please try again later."
	MsgCitiesNotFound    = "No cities found for the selected state."
	MsgCitiesFailed      = "Failed to fetch cities. Please try again later."
	MsgCoordinatesFailed = "Unable to resolve coordinates for the selected location."
)

// Loading reports which tiers have a fetch in flight
type Loading struct {
	Countries   bool `json:"countries"`
	States      bool `json:"states"`
	Cities      bool `json:"cities"`
	Coordinates bool `json:"coordinates"`
}

// Errors holds the last advisory message of each tier
type Errors struct {
	Countries   string `json:"countries,omitempty"`
	States      string `json:"states,omitempty"`
	Cities      string `json:"cities,omitempty"`
	Coordinates string `json:"coordinates,omitempty"`
}

func (e Errors) Any() bool {
	return e != Errors{}
}

// Snapshot is the read-only view of a controller handed to listeners.
// Country, State and City are resolved from the loaded lists and are nil
// while their ids are unset or not yet loaded.
type Snapshot struct {
	CountryID   int                `json:"countryId"`
	StateID     int                `json:"stateId"`
	CityID      int                `json:"cityId"`
	Country     *types.Country     `json:"country"`
	State       *types.State       `json:"state"`
	City        *types.City        `json:"city"`
	Loading     Loading            `json:"loading"`
	Errors      Errors             `json:"errors"`
	Coordinates *types.Coordinates `json:"coordinates"`
}

func (s Snapshot) Selection() Selection {
	return Selection{CountryID: s.CountryID, StateID: s.StateID, CityID: s.CityID}
}

// Resolved returns the resolved options of the snapshot
func (s Snapshot) Resolved() types.Selection {
	return types.Selection{Country: s.Country, State: s.State, City: s.City}
}

// Payload formats the snapshot as the backend location document
func (s Snapshot) Payload() types.LocationPayload {
	return enrich.FormatPayload(s.Resolved(), s.Coordinates)
}
