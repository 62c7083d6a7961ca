package booking

// Court is a bookable playing field as configured by the complex operator.
// Type is a free-form sport label ("Fútbol 5", "Padel") that drives the
// reservation duration through the configured sport duration table.
type Court struct {
	ID       string   `json:"id" db:"id"`
	Name     string   `json:"name" db:"name"`
	Type     string   `json:"type" db:"type"`
	Price    int64    `json:"price" db:"base_price"`
	IsActive bool     `json:"isActive" db:"is_active"`
	Pricing  *Pricing `json:"pricing,omitempty"`
}

// Pricing is the optional per-court price configuration: either a single
// flat price for the whole day, or a partition of the day into intervals
// keyed by their exclusive end time. Deposit is an optional up-front amount.
type Pricing struct {
	CourtID       string          `json:"courtId" db:"court_id"`
	IsSinglePrice bool            `json:"isSinglePrice" db:"is_single_price"`
	SinglePrice   *int64          `json:"singlePrice,omitempty" db:"single_price"`
	Deposit       *int64          `json:"deposit,omitempty" db:"deposit"`
	Intervals     []PriceInterval `json:"intervals,omitempty"`
}

// PriceInterval prices every start time strictly before EndTime that is not
// already covered by an earlier interval. "24:00" is a valid end of day.
type PriceInterval struct {
	EndTime string `json:"endTime" db:"end_time"`
	Price   int64  `json:"price" db:"price"`
}

// DayHours is one weekday's operating window (Monday=0 .. Sunday=6).
type DayHours struct {
	DayOfWeek int    `json:"dayOfWeek" db:"day_of_week"`
	IsOpen    bool   `json:"isOpen" db:"is_open"`
	OpenTime  string `json:"openTime" db:"open_time"`
	CloseTime string `json:"closeTime" db:"close_time"`
}
