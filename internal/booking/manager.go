package booking

import (
	"context"
	"fmt"
	"net/mail"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/nyaruka/phonenumbers"
	"github.com/rs/zerolog/log"
)

// Repository is the storage port of the lifecycle manager. Reads must
// reflect the latest committed state; the two *WithEvent writes must commit
// the reservation row and the projected ledger movement atomically, so a
// failed commit leaves neither behind.
type Repository interface {
	GetReservation(ctx context.Context, id string) (Reservation, error)
	ListByCourtDate(ctx context.Context, courtID, date string) ([]Reservation, error)
	CountActiveByCourt(ctx context.Context, courtID string) (int64, error)
	CreateWithEvent(ctx context.Context, r Reservation, ev LifecycleEvent) error
	UpdateWithEvent(ctx context.Context, r Reservation, ev *LifecycleEvent) error
}

// CourtSource supplies court and operating-hours configuration. The engine
// only reads it.
type CourtSource interface {
	GetCourt(ctx context.Context, id string) (Court, error)
	DayHours(ctx context.Context, weekday int) (DayHours, error)
}

// Notifier receives post-commit notifications. Implementations must be
// best-effort: a notification failure never unwinds a committed booking.
type Notifier interface {
	ReservationConfirmed(ctx context.Context, r Reservation)
	ReservationCancelled(ctx context.Context, r Reservation)
}

// Manager owns reservation status transitions. Create, update and restore
// are serialized per (court, date) so two concurrent bookings cannot both
// pass the overlap check against the same stale snapshot.
type Manager struct {
	repo        Repository
	courts      CourtSource
	durations   SportDurations
	phoneRegion string
	notifier    Notifier
	now         func() time.Time

	locks keyedMutex
}

// Option configures a Manager.
type Option func(*Manager)

// WithNotifier attaches a post-commit notifier.
func WithNotifier(n Notifier) Option {
	return func(m *Manager) { m.notifier = n }
}

// WithPhoneRegion sets the default region for contact number validation.
// An empty region disables number validation beyond the required check.
func WithPhoneRegion(region string) Option {
	return func(m *Manager) { m.phoneRegion = region }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

func NewManager(repo Repository, courts CourtSource, durations SportDurations, opts ...Option) *Manager {
	if durations == nil {
		durations = DefaultSportDurations()
	}
	m := &Manager{
		repo:      repo,
		courts:    courts,
		durations: durations,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// CreateRequest carries the input for a new reservation. The start time
// must be one of the generated slot labels; the end time is derived from
// the court's sport duration.
type CreateRequest struct {
	CourtID     string `json:"courtId"`
	Date        string `json:"date"`
	StartTime   string `json:"startTime"`
	UserName    string `json:"userName"`
	UserContact string `json:"userContact"`
	UserEmail   string `json:"userEmail"`
}

// UpdateRequest carries a partial edit. Nil fields keep their current
// value. Changing court, date or start time re-derives the end time and
// re-runs the overlap check; the price is always resolved again from the
// current pricing configuration.
type UpdateRequest struct {
	CourtID     *string `json:"courtId"`
	Date        *string `json:"date"`
	StartTime   *string `json:"startTime"`
	UserName    *string `json:"userName"`
	UserContact *string `json:"userContact"`
	UserEmail   *string `json:"userEmail"`
}

// Create validates, prices and commits a new confirmed reservation, and
// emits the matching ledger movement in the same commit.
func (m *Manager) Create(ctx context.Context, req CreateRequest) (Reservation, error) {
	logger := log.Ctx(ctx).With().
		Str("component", "booking_manager").
		Str("court_id", req.CourtID).
		Str("date", req.Date).
		Str("start_time", req.StartTime).
		Logger()

	if err := validateCustomer(req.UserName, req.UserContact, req.UserEmail, m.phoneRegion); err != nil {
		return Reservation{}, err
	}
	weekday, err := WeekdayIndex(req.Date)
	if err != nil {
		return Reservation{}, err
	}
	start, err := ParseClock(req.StartTime)
	if err != nil {
		return Reservation{}, ValidationError{Field: "startTime", Reason: err.Error()}
	}

	unlock := m.locks.lock(req.CourtID + "|" + req.Date)
	defer unlock()

	court, err := m.courts.GetCourt(ctx, req.CourtID)
	if err != nil {
		return Reservation{}, fmt.Errorf("load court %s: %w", req.CourtID, err)
	}
	if !court.IsActive {
		return Reservation{}, ValidationError{Field: "courtId", Reason: "court is inactive"}
	}

	end := start + m.durations.DurationFor(court.Type)
	if err := m.checkWithinHours(ctx, weekday, start, end); err != nil {
		return Reservation{}, err
	}
	endTime := FormatClock(end)

	existing, err := m.repo.ListByCourtDate(ctx, req.CourtID, req.Date)
	if err != nil {
		return Reservation{}, fmt.Errorf("list reservations for %s on %s: %w", req.CourtID, req.Date, err)
	}
	candidate := Candidate{CourtID: req.CourtID, Date: req.Date, StartTime: req.StartTime, EndTime: endTime}
	if !IsAvailable(candidate, "", existing) {
		logger.Info().Str("decision", "conflict").Msg("Reservation rejected by overlap check")
		return Reservation{}, ErrConflict
	}

	price := ResolvePrice(court, req.StartTime)
	if price <= 0 {
		return Reservation{}, ValidationError{Field: "price", Reason: "resolved price must be positive"}
	}

	now := m.now()
	reservation := Reservation{
		ID:          uuid.New().String(),
		CourtID:     court.ID,
		CourtName:   court.Name,
		Date:        req.Date,
		StartTime:   req.StartTime,
		EndTime:     endTime,
		UserName:    req.UserName,
		UserContact: req.UserContact,
		UserEmail:   req.UserEmail,
		Status:      StatusConfirmed,
		Price:       price,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	event := LifecycleEvent{Action: EventCreate, Reservation: reservation, OccurredAt: now}

	if err := m.repo.CreateWithEvent(ctx, reservation, event); err != nil {
		return Reservation{}, fmt.Errorf("commit reservation: %w", err)
	}

	logger.Info().
		Str("reservation_id", reservation.ID).
		Int64("price", price).
		Str("end_time", endTime).
		Msg("Reservation created")

	if m.notifier != nil {
		m.notifier.ReservationConfirmed(ctx, reservation)
	}
	return reservation, nil
}

// Update applies a partial edit to a confirmed reservation. When the
// recomputed price differs from the previous snapshot, an update event
// carrying the delta is committed alongside.
func (m *Manager) Update(ctx context.Context, id string, req UpdateRequest) (Reservation, error) {
	current, err := m.repo.GetReservation(ctx, id)
	if err != nil {
		return Reservation{}, err
	}
	if current.Status == StatusCancelled {
		return Reservation{}, ValidationError{Reason: "cannot update a cancelled reservation"}
	}

	next := current
	if req.Date != nil {
		next.Date = *req.Date
	}
	if req.StartTime != nil {
		next.StartTime = *req.StartTime
	}
	if req.CourtID != nil {
		next.CourtID = *req.CourtID
	}
	if req.UserName != nil {
		next.UserName = *req.UserName
	}
	if req.UserContact != nil {
		next.UserContact = *req.UserContact
	}
	if req.UserEmail != nil {
		next.UserEmail = *req.UserEmail
	}
	if err := validateCustomer(next.UserName, next.UserContact, next.UserEmail, m.phoneRegion); err != nil {
		return Reservation{}, err
	}

	weekday, err := WeekdayIndex(next.Date)
	if err != nil {
		return Reservation{}, err
	}
	start, err := ParseClock(next.StartTime)
	if err != nil {
		return Reservation{}, ValidationError{Field: "startTime", Reason: err.Error()}
	}

	unlock := m.locks.lock(next.CourtID + "|" + next.Date)
	defer unlock()

	court, err := m.courts.GetCourt(ctx, next.CourtID)
	if err != nil {
		return Reservation{}, fmt.Errorf("load court %s: %w", next.CourtID, err)
	}
	if !court.IsActive {
		return Reservation{}, ValidationError{Field: "courtId", Reason: "court is inactive"}
	}
	next.CourtName = court.Name

	end := start + m.durations.DurationFor(court.Type)
	if err := m.checkWithinHours(ctx, weekday, start, end); err != nil {
		return Reservation{}, err
	}
	next.EndTime = FormatClock(end)

	existing, err := m.repo.ListByCourtDate(ctx, next.CourtID, next.Date)
	if err != nil {
		return Reservation{}, fmt.Errorf("list reservations for %s on %s: %w", next.CourtID, next.Date, err)
	}
	candidate := Candidate{CourtID: next.CourtID, Date: next.Date, StartTime: next.StartTime, EndTime: next.EndTime}
	if !IsAvailable(candidate, current.ID, existing) {
		return Reservation{}, ErrConflict
	}

	price := ResolvePrice(court, next.StartTime)
	if price <= 0 {
		return Reservation{}, ValidationError{Field: "price", Reason: "resolved price must be positive"}
	}
	delta := price - current.Price
	next.Price = price

	now := m.now()
	next.UpdatedAt = now

	var event *LifecycleEvent
	if delta != 0 {
		event = &LifecycleEvent{Action: EventUpdate, Reservation: next, PriceDelta: delta, OccurredAt: now}
	}
	if err := m.repo.UpdateWithEvent(ctx, next, event); err != nil {
		return Reservation{}, fmt.Errorf("commit reservation update: %w", err)
	}

	log.Ctx(ctx).Info().
		Str("component", "booking_manager").
		Str("reservation_id", next.ID).
		Int64("price_delta", delta).
		Msg("Reservation updated")
	return next, nil
}

// Cancel soft-deletes a reservation. The slot becomes bookable again
// implicitly because cancelled reservations are excluded from overlap
// checks. Cancelling twice is a validation error, never a second movement.
func (m *Manager) Cancel(ctx context.Context, id string) (Reservation, error) {
	current, err := m.repo.GetReservation(ctx, id)
	if err != nil {
		return Reservation{}, err
	}
	if current.Status == StatusCancelled {
		return Reservation{}, ValidationError{Reason: "reservation is already cancelled"}
	}

	now := m.now()
	next := current
	next.Status = StatusCancelled
	next.UpdatedAt = now

	event := LifecycleEvent{Action: EventCancel, Reservation: next, OccurredAt: now}
	if err := m.repo.UpdateWithEvent(ctx, next, &event); err != nil {
		return Reservation{}, fmt.Errorf("commit cancellation: %w", err)
	}

	log.Ctx(ctx).Info().
		Str("component", "booking_manager").
		Str("reservation_id", next.ID).
		Msg("Reservation cancelled")

	if m.notifier != nil {
		m.notifier.ReservationCancelled(ctx, next)
	}
	return next, nil
}

// Restore flips a cancelled reservation back to confirmed. The slot may
// have been taken in the interim, so the overlap check runs again and
// restore can fail with ErrConflict.
func (m *Manager) Restore(ctx context.Context, id string) (Reservation, error) {
	current, err := m.repo.GetReservation(ctx, id)
	if err != nil {
		return Reservation{}, err
	}
	if current.Status != StatusCancelled {
		return Reservation{}, ValidationError{Reason: "reservation is not cancelled"}
	}

	unlock := m.locks.lock(current.CourtID + "|" + current.Date)
	defer unlock()

	existing, err := m.repo.ListByCourtDate(ctx, current.CourtID, current.Date)
	if err != nil {
		return Reservation{}, fmt.Errorf("list reservations for %s on %s: %w", current.CourtID, current.Date, err)
	}
	candidate := Candidate{CourtID: current.CourtID, Date: current.Date, StartTime: current.StartTime, EndTime: current.EndTime}
	if !IsAvailable(candidate, current.ID, existing) {
		return Reservation{}, ErrConflict
	}

	now := m.now()
	next := current
	next.Status = StatusConfirmed
	next.UpdatedAt = now

	event := LifecycleEvent{Action: EventRestore, Reservation: next, OccurredAt: now}
	if err := m.repo.UpdateWithEvent(ctx, next, &event); err != nil {
		return Reservation{}, fmt.Errorf("commit restore: %w", err)
	}

	log.Ctx(ctx).Info().
		Str("component", "booking_manager").
		Str("reservation_id", next.ID).
		Msg("Reservation restored")

	if m.notifier != nil {
		m.notifier.ReservationConfirmed(ctx, next)
	}
	return next, nil
}

// ActiveReservationCount reports the number of non-cancelled reservations
// on a court. The configuration collaborator uses it to block pricing edits
// while the court has active bookings.
func (m *Manager) ActiveReservationCount(ctx context.Context, courtID string) (int64, error) {
	count, err := m.repo.CountActiveByCourt(ctx, courtID)
	if err != nil {
		return 0, fmt.Errorf("count active reservations for %s: %w", courtID, err)
	}
	return count, nil
}

func (m *Manager) checkWithinHours(ctx context.Context, weekday, start, end int) error {
	hours, err := m.courts.DayHours(ctx, weekday)
	if err != nil {
		return fmt.Errorf("load operating hours: %w", err)
	}
	if !hours.IsOpen || hours.OpenTime == "" || hours.CloseTime == "" {
		return ValidationError{Field: "date", Reason: "the complex is closed that day"}
	}
	open, err := ParseClock(hours.OpenTime)
	if err != nil {
		return fmt.Errorf("parse open time: %w", err)
	}
	closing, err := ParseDayBoundary(hours.CloseTime)
	if err != nil {
		return fmt.Errorf("parse close time: %w", err)
	}
	if start < open {
		return ValidationError{Field: "startTime", Reason: "before opening time"}
	}
	if end > closing {
		return ValidationError{Field: "startTime", Reason: "booking would run past closing time"}
	}
	return nil
}

func validateCustomer(name, contact, email, phoneRegion string) error {
	if name == "" {
		return ValidationError{Field: "userName", Reason: "required"}
	}
	if contact == "" {
		return ValidationError{Field: "userContact", Reason: "required"}
	}
	if phoneRegion != "" {
		number, err := phonenumbers.Parse(contact, phoneRegion)
		if err != nil || !phonenumbers.IsPossibleNumber(number) {
			return ValidationError{Field: "userContact", Reason: "not a usable phone number"}
		}
	}
	if email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			return ValidationError{Field: "userEmail", Reason: "not a valid email address"}
		}
	}
	return nil
}

// WeekdayIndex maps a "YYYY-MM-DD" date to the operating-hours convention
// Monday=0 .. Sunday=6.
func WeekdayIndex(date string) (int, error) {
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return 0, ValidationError{Field: "date", Reason: "expected YYYY-MM-DD"}
	}
	return (int(day.Weekday()) + 6) % 7, nil
}

// keyedMutex serializes operations per (court, date) key. Keys are never
// evicted; the set is bounded by courts × bookable dates.
type keyedMutex struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func (k *keyedMutex) lock(key string) func() {
	k.mu.Lock()
	if k.locks == nil {
		k.locks = make(map[string]*sync.Mutex)
	}
	lock, ok := k.locks[key]
	if !ok {
		lock = &sync.Mutex{}
		k.locks[key] = lock
	}
	k.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}
