package types

// Option is an entry of one selection tier. Options are snapshots returned by
// the location directory and are never mutated after they are loaded.
type Option interface {
	OptionID() int
	OptionName() string
}

// Country is an entry of the country tier
type Country struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Iso2      string `json:"iso2"`
	Iso3      string `json:"iso3"`
	PhoneCode string `json:"phonecode"`
	Capital   string `json:"capital"`
	Currency  string `json:"currency"`
	Emoji     string `json:"emoji"`
}

func (c Country) OptionID() int      { return c.ID }
func (c Country) OptionName() string { return c.Name }

// State is an entry of the state/province tier
type State struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Iso2 string `json:"iso2"`
}

func (s State) OptionID() int      { return s.ID }
func (s State) OptionName() string { return s.Name }

// City is an entry of the city tier
type City struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func (c City) OptionID() int      { return c.ID }
func (c City) OptionName() string { return c.Name }

// Selection holds the options resolved for each tier, nil when unresolved
type Selection struct {
	Country *Country `json:"country"`
	State   *State   `json:"state"`
	City    *City    `json:"city"`
}

// Complete reports whether the selection can be geocoded
func (s Selection) Complete() bool {
	return s.Country != nil && s.City != nil
}
