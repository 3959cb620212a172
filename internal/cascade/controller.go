package cascade

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"

	"storefront-location/internal/location"
	"storefront-location/internal/types"
)

var (
	// ErrNotRunning is returned by mutations before Start or after Close
	ErrNotRunning = errors.New("selection controller is not running")

	// ErrAlreadyStarted is returned by a second call to Start
	ErrAlreadyStarted = errors.New("selection controller already started")
)

// Fetcher loads the option lists of the three tiers
type Fetcher interface {
	FetchCountries(ctx context.Context) ([]types.Country, error)
	FetchStates(ctx context.Context, countryIso2 string) ([]types.State, error)
	FetchCities(ctx context.Context, countryIso2, stateIso2 string) ([]types.City, error)
}

// CoordinateResolver resolves a complete selection to map coordinates
type CoordinateResolver interface {
	ResolveCoordinates(ctx context.Context, sel types.Selection) (*types.Coordinates, error)
}

// Listener receives a snapshot after every settled change. Calls are
// serialized and arrive in the order the changes were applied. A listener
// must not call back into the controller.
type Listener func(Snapshot)

type ControllerOption func(*Controller)

// WithSeed starts the controller from a caller-supplied selection. Seeded ids
// are kept while their tier loads and dropped if the loaded list lacks them.
func WithSeed(sel Selection) ControllerOption {
	return func(c *Controller) {
		c.sel = sel
		c.seeded = !sel.IsZero()
	}
}

// WithResolver enables coordinate resolution for complete selections
func WithResolver(resolver CoordinateResolver) ControllerOption {
	return func(c *Controller) {
		c.resolver = resolver
	}
}

func WithListener(listener Listener) ControllerOption {
	return func(c *Controller) {
		c.listener = listener
	}
}

func WithLogger(logger *slog.Logger) ControllerOption {
	return func(c *Controller) {
		c.logger = logger
	}
}

// tokens identify the latest fetch dispatched for each tier
type tokens struct {
	countries, states, cities, coordinates uint64
}

// Controller drives the country → state → city cascade. Every mutation
// leaves the selection valid: a child id is never set without its parent,
// and a fetch result is accepted only if it is the latest for its tier and
// its parent ids still match the selection.
type Controller struct {
	fetcher  Fetcher
	resolver CoordinateResolver
	listener Listener
	logger   *slog.Logger
	seeded   bool

	mu        sync.Mutex
	sel       Selection
	countries []types.Country
	states    []types.State
	cities    []types.City
	loading   Loading
	errs      Errors
	coords    *types.Coordinates
	geoKey    Selection
	seq       tokens

	ctx     context.Context
	cancel  context.CancelFunc
	started bool
	closed  bool

	inflight int
	idle     chan struct{}

	// emitMu is taken before mu is released so listener calls keep the
	// order of the mutations that produced them.
	emitMu sync.Mutex
}

// New creates a controller. It does nothing until Start is called.
func New(fetcher Fetcher, opts ...ControllerOption) (*Controller, error) {
	c := &Controller{fetcher: fetcher}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	c.logger = c.logger.With("component", "cascade-controller")

	if err := c.sel.Validate(); err != nil {
		return nil, fmt.Errorf("invalid seed: %w", err)
	}
	return c, nil
}

// Start emits the initial snapshot and loads the country list. The initial
// snapshot is not emitted for a seeded controller. Fetches run until ctx is
// done or Close is called.
func (c *Controller) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrNotRunning
	}
	if c.started {
		c.mu.Unlock()
		return ErrAlreadyStarted
	}
	c.ctx, c.cancel = context.WithCancel(ctx)
	c.started = true

	c.loadCountriesLocked()

	if c.seeded {
		c.mu.Unlock()
		return nil
	}
	c.unlockAndEmit()
	return nil
}

// Close stops accepting fetch results. In-flight requests are cancelled.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	if c.cancel != nil {
		c.cancel()
	}
}

// Wait blocks until no fetch is in flight or ctx is done
func (c *Controller) Wait(ctx context.Context) error {
	c.mu.Lock()
	if c.inflight == 0 {
		c.mu.Unlock()
		return nil
	}
	idle := c.idle
	c.mu.Unlock()

	select {
	case <-idle:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// SetCountry selects a country by id, or clears the selection when id is 0.
// The state and city selections, their lists and all advisory messages are
// cleared; a non-zero id schedules a fetch of the country's states.
func (c *Controller) SetCountry(id int) (Selection, error) {
	c.mu.Lock()
	if err := c.runningLocked(); err != nil {
		c.mu.Unlock()
		return Selection{}, err
	}

	var country types.Country
	if id != 0 {
		found, ok := CountryTier.Find(c.countries, id)
		if !ok {
			sel := c.sel
			c.mu.Unlock()
			return sel, fmt.Errorf("country %d is not loaded: %w", id, location.ErrInvariantViolation)
		}
		country = found
	}

	c.sel = Selection{CountryID: id}
	c.errs = Errors{}
	c.resetStatesLocked()
	c.resetCitiesLocked()
	if id != 0 {
		c.loadStatesLocked(country)
	}
	c.enrichLocked()

	sel := c.sel
	c.unlockAndEmit()
	return sel, nil
}

// SetState selects a state of the current country, or clears it when id is 0.
// The city selection and list are cleared; a non-zero id schedules a fetch of
// the state's cities.
func (c *Controller) SetState(id int) (Selection, error) {
	c.mu.Lock()
	if err := c.runningLocked(); err != nil {
		c.mu.Unlock()
		return Selection{}, err
	}

	var state types.State
	if id != 0 {
		if c.sel.CountryID == 0 {
			sel := c.sel
			c.mu.Unlock()
			return sel, fmt.Errorf("state %d selected without a country: %w", id, location.ErrInvariantViolation)
		}
		found, ok := StateTier.Find(c.states, id)
		if !ok {
			sel := c.sel
			c.mu.Unlock()
			return sel, fmt.Errorf("state %d is not loaded: %w", id, location.ErrInvariantViolation)
		}
		state = found
	}

	c.sel.StateID = id
	c.sel.CityID = 0
	c.errs.States = ""
	c.errs.Cities = ""
	c.resetCitiesLocked()
	if id != 0 {
		country, _ := CountryTier.Find(c.countries, c.sel.CountryID)
		c.loadCitiesLocked(country, state)
	}
	c.enrichLocked()

	sel := c.sel
	c.unlockAndEmit()
	return sel, nil
}

// SetCity selects a city of the current state, or clears it when id is 0
func (c *Controller) SetCity(id int) (Selection, error) {
	c.mu.Lock()
	if err := c.runningLocked(); err != nil {
		c.mu.Unlock()
		return Selection{}, err
	}

	if id != 0 {
		if c.sel.StateID == 0 {
			sel := c.sel
			c.mu.Unlock()
			return sel, fmt.Errorf("city %d selected without a state: %w", id, location.ErrInvariantViolation)
		}
		if _, ok := CityTier.Find(c.cities, id); !ok {
			sel := c.sel
			c.mu.Unlock()
			return sel, fmt.Errorf("city %d is not loaded: %w", id, location.ErrInvariantViolation)
		}
	}

	c.sel.CityID = id
	c.errs.Cities = ""
	c.enrichLocked()

	sel := c.sel
	c.unlockAndEmit()
	return sel, nil
}

// Snapshot returns the current state of the controller
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

func (c *Controller) Countries() []types.Country {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.countries)
}

func (c *Controller) States() []types.State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.states)
}

func (c *Controller) Cities() []types.City {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.cities)
}

func (c *Controller) runningLocked() error {
	if !c.started || c.closed {
		return ErrNotRunning
	}
	return nil
}

func (c *Controller) resetStatesLocked() {
	c.seq.states++
	c.states = nil
	c.loading.States = false
}

func (c *Controller) resetCitiesLocked() {
	c.seq.cities++
	c.cities = nil
	c.loading.Cities = false
}

func (c *Controller) loadCountriesLocked() {
	c.seq.countries++
	token := c.seq.countries
	c.loading.Countries = true
	c.errs.Countries = ""
	c.countries = nil

	c.goLocked(func(ctx context.Context) {
		countries, err := c.fetcher.FetchCountries(ctx)
		c.settleCountries(token, countries, err)
	})
}

func (c *Controller) loadStatesLocked(country types.Country) {
	c.seq.states++
	token := c.seq.states
	c.loading.States = true
	c.errs.States = ""
	c.states = nil

	c.goLocked(func(ctx context.Context) {
		states, err := c.fetcher.FetchStates(ctx, country.Iso2)
		c.settleStates(token, country.ID, states, err)
	})
}

func (c *Controller) loadCitiesLocked(country types.Country, state types.State) {
	c.seq.cities++
	token := c.seq.cities
	c.loading.Cities = true
	c.errs.Cities = ""
	c.cities = nil

	parent := Selection{CountryID: country.ID, StateID: state.ID}
	c.goLocked(func(ctx context.Context) {
		cities, err := c.fetcher.FetchCities(ctx, country.Iso2, state.Iso2)
		c.settleCities(token, parent, cities, err)
	})
}

func (c *Controller) settleCountries(token uint64, countries []types.Country, err error) {
	c.mu.Lock()
	if c.closed || token != c.seq.countries {
		c.mu.Unlock()
		c.logger.Debug("discarding stale countries result")
		return
	}

	c.loading.Countries = false
	if err != nil {
		c.logger.Warn("failed to fetch countries", "error", err)
		c.errs.Countries = MsgCountriesFailed
		c.sel = Selection{}
	} else {
		c.countries = countries
		c.reconcileCountryLocked()
	}
	c.enrichLocked()
	c.unlockAndEmit()
}

func (c *Controller) settleStates(token uint64, countryID int, states []types.State, err error) {
	c.mu.Lock()
	if c.closed || token != c.seq.states || c.sel.CountryID != countryID {
		c.mu.Unlock()
		c.logger.Debug("discarding stale states result", "country_id", countryID)
		return
	}

	c.loading.States = false
	if err != nil {
		c.logger.Warn("failed to fetch states", "country_id", countryID, "error", err)
		c.errs.States = tierMessage(err, MsgStatesNotFound, MsgStatesFailed)
		c.sel.StateID = 0
		c.sel.CityID = 0
	} else {
		c.states = states
		c.reconcileStateLocked()
	}
	c.enrichLocked()
	c.unlockAndEmit()
}

func (c *Controller) settleCities(token uint64, parent Selection, cities []types.City, err error) {
	c.mu.Lock()
	if c.closed || token != c.seq.cities ||
		c.sel.CountryID != parent.CountryID || c.sel.StateID != parent.StateID {
		c.mu.Unlock()
		c.logger.Debug("discarding stale cities result",
			"country_id", parent.CountryID,
			"state_id", parent.StateID,
		)
		return
	}

	c.loading.Cities = false
	if err != nil {
		c.logger.Warn("failed to fetch cities",
			"country_id", parent.CountryID,
			"state_id", parent.StateID,
			"error", err,
		)
		c.errs.Cities = tierMessage(err, MsgCitiesNotFound, MsgCitiesFailed)
		c.sel.CityID = 0
	} else {
		c.cities = cities
		if c.sel.CityID != 0 {
			if _, ok := CityTier.Find(cities, c.sel.CityID); !ok {
				c.logger.Debug("dropping seeded city", "city_id", c.sel.CityID)
				c.sel.CityID = 0
			}
		}
	}
	c.enrichLocked()
	c.unlockAndEmit()
}

// reconcileCountryLocked continues a seeded selection once countries load
func (c *Controller) reconcileCountryLocked() {
	if c.sel.CountryID == 0 {
		return
	}
	country, ok := CountryTier.Find(c.countries, c.sel.CountryID)
	if !ok {
		c.logger.Debug("dropping seeded country", "country_id", c.sel.CountryID)
		c.sel = Selection{}
		return
	}
	c.loadStatesLocked(country)
}

// reconcileStateLocked continues a seeded selection once states load
func (c *Controller) reconcileStateLocked() {
	if c.sel.StateID == 0 {
		return
	}
	state, ok := StateTier.Find(c.states, c.sel.StateID)
	if !ok {
		c.logger.Debug("dropping seeded state", "state_id", c.sel.StateID)
		c.sel.StateID = 0
		c.sel.CityID = 0
		return
	}
	country, _ := CountryTier.Find(c.countries, c.sel.CountryID)
	c.loadCitiesLocked(country, state)
}

// enrichLocked starts coordinate resolution when the selection first
// resolves to a complete country and city, and drops coordinates once it no
// longer does. A newer selection supersedes a pending resolution.
func (c *Controller) enrichLocked() {
	if c.resolver == nil {
		return
	}

	resolved := c.resolvedLocked()
	if !resolved.Complete() {
		if !c.geoKey.IsZero() {
			c.seq.coordinates++
			c.geoKey = Selection{}
			c.coords = nil
			c.loading.Coordinates = false
			c.errs.Coordinates = ""
		}
		return
	}

	if c.geoKey == c.sel {
		return
	}
	c.seq.coordinates++
	token := c.seq.coordinates
	key := c.sel
	c.geoKey = key
	c.coords = nil
	c.loading.Coordinates = true
	c.errs.Coordinates = ""

	c.goLocked(func(ctx context.Context) {
		coords, err := c.resolver.ResolveCoordinates(ctx, resolved)
		c.settleCoordinates(token, key, coords, err)
	})
}

func (c *Controller) settleCoordinates(token uint64, key Selection, coords *types.Coordinates, err error) {
	c.mu.Lock()
	if c.closed || token != c.seq.coordinates || c.sel != key {
		c.mu.Unlock()
		c.logger.Debug("discarding stale coordinates",
			"country_id", key.CountryID,
			"state_id", key.StateID,
			"city_id", key.CityID,
		)
		return
	}

	c.loading.Coordinates = false
	if err != nil {
		c.logger.Warn("failed to resolve coordinates",
			"country_id", key.CountryID,
			"state_id", key.StateID,
			"city_id", key.CityID,
			"error", err,
		)
		c.coords = nil
		c.errs.Coordinates = MsgCoordinatesFailed
	} else {
		c.coords = coords
	}
	c.unlockAndEmit()
}

// goLocked runs fn on its own goroutine and tracks it for Wait
func (c *Controller) goLocked(fn func(ctx context.Context)) {
	if c.inflight == 0 {
		c.idle = make(chan struct{})
	}
	c.inflight++
	ctx := c.ctx

	go func() {
		defer c.done()
		fn(ctx)
	}()
}

func (c *Controller) done() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.inflight--
	if c.inflight == 0 {
		close(c.idle)
		c.idle = nil
	}
}

// unlockAndEmit releases mu and hands the current snapshot to the listener
func (c *Controller) unlockAndEmit() {
	snap := c.snapshotLocked()
	c.emitMu.Lock()
	c.mu.Unlock()
	defer c.emitMu.Unlock()

	if c.listener != nil {
		c.listener(snap)
	}
}

func (c *Controller) resolvedLocked() types.Selection {
	var sel types.Selection
	if country, ok := CountryTier.Find(c.countries, c.sel.CountryID); ok && c.sel.CountryID != 0 {
		sel.Country = &country
	}
	if state, ok := StateTier.Find(c.states, c.sel.StateID); ok && c.sel.StateID != 0 {
		sel.State = &state
	}
	if city, ok := CityTier.Find(c.cities, c.sel.CityID); ok && c.sel.CityID != 0 {
		sel.City = &city
	}
	return sel
}

func (c *Controller) snapshotLocked() Snapshot {
	resolved := c.resolvedLocked()
	snap := Snapshot{
		CountryID: c.sel.CountryID,
		StateID:   c.sel.StateID,
		CityID:    c.sel.CityID,
		Country:   resolved.Country,
		State:     resolved.State,
		City:      resolved.City,
		Loading:   c.loading,
		Errors:    c.errs,
	}
	if c.coords != nil {
		coords := *c.coords
		snap.Coordinates = &coords
	}
	return snap
}

func tierMessage(err error, notFound, failed string) string {
	if errors.Is(err, location.ErrNotFound) {
		return notFound
	}
	return failed
}
