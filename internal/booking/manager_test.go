package booking

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeRepo struct {
	reservations map[string]Reservation
	events       []LifecycleEvent
	failCommits  bool
}

var errCommitFailed = errors.New("commit failed")

func newFakeRepo() *fakeRepo {
	return &fakeRepo{reservations: make(map[string]Reservation)}
}

func (f *fakeRepo) GetReservation(_ context.Context, id string) (Reservation, error) {
	r, ok := f.reservations[id]
	if !ok {
		return Reservation{}, ErrNotFound
	}
	return r, nil
}

func (f *fakeRepo) ListByCourtDate(_ context.Context, courtID, date string) ([]Reservation, error) {
	var out []Reservation
	for _, r := range f.reservations {
		if r.CourtID == courtID && r.Date == date {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRepo) CountActiveByCourt(_ context.Context, courtID string) (int64, error) {
	var count int64
	for _, r := range f.reservations {
		if r.CourtID == courtID && r.Status != StatusCancelled {
			count++
		}
	}
	return count, nil
}

func (f *fakeRepo) CreateWithEvent(_ context.Context, r Reservation, ev LifecycleEvent) error {
	if f.failCommits {
		return errCommitFailed
	}
	f.reservations[r.ID] = r
	f.events = append(f.events, ev)
	return nil
}

func (f *fakeRepo) UpdateWithEvent(_ context.Context, r Reservation, ev *LifecycleEvent) error {
	if f.failCommits {
		return errCommitFailed
	}
	if _, ok := f.reservations[r.ID]; !ok {
		return ErrNotFound
	}
	f.reservations[r.ID] = r
	if ev != nil {
		f.events = append(f.events, *ev)
	}
	return nil
}

type fakeCourts struct {
	courts map[string]Court
	hours  map[int]DayHours
}

func (f *fakeCourts) GetCourt(_ context.Context, id string) (Court, error) {
	court, ok := f.courts[id]
	if !ok {
		return Court{}, ErrNotFound
	}
	return court, nil
}

func (f *fakeCourts) DayHours(_ context.Context, weekday int) (DayHours, error) {
	hours, ok := f.hours[weekday]
	if !ok {
		return DayHours{DayOfWeek: weekday}, nil
	}
	return hours, nil
}

func allWeekOpen(open, close string) map[int]DayHours {
	hours := make(map[int]DayHours, 7)
	for day := 0; day < 7; day++ {
		hours[day] = DayHours{DayOfWeek: day, IsOpen: true, OpenTime: open, CloseTime: close}
	}
	return hours
}

func newTestManager(repo *fakeRepo, courts *fakeCourts, opts ...Option) *Manager {
	base := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)
	opts = append(opts, WithClock(func() time.Time { return base }))
	return NewManager(repo, courts, nil, opts...)
}

func padelComplex() *fakeCourts {
	return &fakeCourts{
		courts: map[string]Court{
			"c1": {ID: "c1", Name: "Cancha 1", Type: "Padel", Price: 15000, IsActive: true},
		},
		hours: allWeekOpen("10:00", "22:00"),
	}
}

func createRequest() CreateRequest {
	return CreateRequest{
		CourtID:     "c1",
		Date:        "2026-09-07",
		StartTime:   "10:00",
		UserName:    "Ana",
		UserContact: "1155551234",
	}
}

func TestManagerCreate(t *testing.T) {
	t.Run("padel booking spans ninety minutes", func(t *testing.T) {
		repo := newFakeRepo()
		m := newTestManager(repo, padelComplex())

		r, err := m.Create(context.Background(), createRequest())
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if r.EndTime != "11:30" {
			t.Errorf("end time = %q, want 11:30", r.EndTime)
		}
		if r.Price != 15000 {
			t.Errorf("price = %d, want 15000", r.Price)
		}
		if r.Status != StatusConfirmed {
			t.Errorf("status = %q, want Confirmed", r.Status)
		}
		if len(repo.events) != 1 || repo.events[0].Action != EventCreate {
			t.Fatalf("expected one create event, got %+v", repo.events)
		}
	})

	t.Run("overlapping booking conflicts", func(t *testing.T) {
		repo := newFakeRepo()
		m := newTestManager(repo, padelComplex())

		if _, err := m.Create(context.Background(), createRequest()); err != nil {
			t.Fatalf("first create: %v", err)
		}

		second := createRequest()
		second.StartTime = "11:00"
		if _, err := m.Create(context.Background(), second); !errors.Is(err, ErrConflict) {
			t.Fatalf("expected ErrConflict, got %v", err)
		}

		third := createRequest()
		third.StartTime = "11:30"
		if _, err := m.Create(context.Background(), third); err != nil {
			t.Fatalf("booking at 11:30 must succeed: %v", err)
		}
	})

	t.Run("inactive court rejected", func(t *testing.T) {
		courts := padelComplex()
		inactive := courts.courts["c1"]
		inactive.IsActive = false
		courts.courts["c1"] = inactive

		m := newTestManager(newFakeRepo(), courts)
		if _, err := m.Create(context.Background(), createRequest()); !IsValidation(err) {
			t.Fatalf("expected validation error, got %v", err)
		}
	})

	t.Run("closed day rejected", func(t *testing.T) {
		courts := padelComplex()
		courts.hours = map[int]DayHours{}

		m := newTestManager(newFakeRepo(), courts)
		if _, err := m.Create(context.Background(), createRequest()); !IsValidation(err) {
			t.Fatalf("expected validation error, got %v", err)
		}
	})

	t.Run("booking past closing time rejected", func(t *testing.T) {
		repo := newFakeRepo()
		m := newTestManager(repo, padelComplex())

		late := createRequest()
		late.StartTime = "21:30" // 90 minutes would end 23:00, past the 22:00 close
		if _, err := m.Create(context.Background(), late); !IsValidation(err) {
			t.Fatalf("expected validation error, got %v", err)
		}
	})

	t.Run("missing customer fields rejected", func(t *testing.T) {
		m := newTestManager(newFakeRepo(), padelComplex())

		req := createRequest()
		req.UserName = ""
		if _, err := m.Create(context.Background(), req); !IsValidation(err) {
			t.Fatalf("expected validation error for missing name, got %v", err)
		}

		req = createRequest()
		req.UserContact = ""
		if _, err := m.Create(context.Background(), req); !IsValidation(err) {
			t.Fatalf("expected validation error for missing contact, got %v", err)
		}

		req = createRequest()
		req.UserEmail = "not-an-email"
		if _, err := m.Create(context.Background(), req); !IsValidation(err) {
			t.Fatalf("expected validation error for bad email, got %v", err)
		}
	})

	t.Run("phone region validation", func(t *testing.T) {
		m := newTestManager(newFakeRepo(), padelComplex(), WithPhoneRegion("AR"))

		req := createRequest()
		req.UserContact = "abc"
		if _, err := m.Create(context.Background(), req); !IsValidation(err) {
			t.Fatalf("expected validation error for unusable phone, got %v", err)
		}
	})

	t.Run("failed commit leaves no state", func(t *testing.T) {
		repo := newFakeRepo()
		repo.failCommits = true
		m := newTestManager(repo, padelComplex())

		if _, err := m.Create(context.Background(), createRequest()); !errors.Is(err, errCommitFailed) {
			t.Fatalf("expected commit failure, got %v", err)
		}
		if len(repo.reservations) != 0 || len(repo.events) != 0 {
			t.Fatal("failed commit must leave neither reservation nor event")
		}
	})
}

func TestManagerUpdate(t *testing.T) {
	timed := func() (*fakeRepo, *Manager, Reservation) {
		repo := newFakeRepo()
		courts := padelComplex()
		courts.courts["c1"] = Court{
			ID: "c1", Name: "Cancha 1", Type: "Padel", Price: 15000, IsActive: true,
			Pricing: &Pricing{Intervals: []PriceInterval{
				{EndTime: "14:00", Price: 5000},
				{EndTime: "24:00", Price: 8000},
			}},
		}
		m := newTestManager(repo, courts)

		req := createRequest()
		req.StartTime = "13:00"
		r, err := m.Create(context.Background(), req)
		if err != nil {
			t.Fatalf("seed create: %v", err)
		}
		return repo, m, r
	}

	t.Run("price delta emits adjustment event", func(t *testing.T) {
		repo, m, r := timed()
		if r.Price != 5000 {
			t.Fatalf("seed price = %d, want 5000", r.Price)
		}

		start := "15:00"
		updated, err := m.Update(context.Background(), r.ID, UpdateRequest{StartTime: &start})
		if err != nil {
			t.Fatalf("update: %v", err)
		}
		if updated.Price != 8000 {
			t.Errorf("updated price = %d, want 8000", updated.Price)
		}
		last := repo.events[len(repo.events)-1]
		if last.Action != EventUpdate || last.PriceDelta != 3000 {
			t.Fatalf("expected update event with delta 3000, got %+v", last)
		}
	})

	t.Run("unchanged price emits no event", func(t *testing.T) {
		repo, m, r := timed()
		before := len(repo.events)

		name := "Ana Maria"
		if _, err := m.Update(context.Background(), r.ID, UpdateRequest{UserName: &name}); err != nil {
			t.Fatalf("update: %v", err)
		}
		if len(repo.events) != before {
			t.Fatalf("no-delta update must not add events, got %d new", len(repo.events)-before)
		}
	})

	t.Run("moving onto another booking conflicts", func(t *testing.T) {
		_, m, r := timed()

		other := createRequest()
		other.StartTime = "15:00"
		if _, err := m.Create(context.Background(), other); err != nil {
			t.Fatalf("second create: %v", err)
		}

		start := "15:30"
		if _, err := m.Update(context.Background(), r.ID, UpdateRequest{StartTime: &start}); !errors.Is(err, ErrConflict) {
			t.Fatalf("expected ErrConflict, got %v", err)
		}
	})

	t.Run("cancelled reservation cannot be updated", func(t *testing.T) {
		_, m, r := timed()
		if _, err := m.Cancel(context.Background(), r.ID); err != nil {
			t.Fatalf("cancel: %v", err)
		}
		start := "15:00"
		if _, err := m.Update(context.Background(), r.ID, UpdateRequest{StartTime: &start}); !IsValidation(err) {
			t.Fatalf("expected validation error, got %v", err)
		}
	})

	t.Run("unknown id", func(t *testing.T) {
		_, m, _ := timed()
		start := "15:00"
		if _, err := m.Update(context.Background(), "missing", UpdateRequest{StartTime: &start}); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestManagerCancelAndRestore(t *testing.T) {
	seed := func(t *testing.T) (*fakeRepo, *Manager, Reservation) {
		t.Helper()
		repo := newFakeRepo()
		m := newTestManager(repo, padelComplex())
		r, err := m.Create(context.Background(), createRequest())
		if err != nil {
			t.Fatalf("seed create: %v", err)
		}
		return repo, m, r
	}

	t.Run("cancel emits one cancel event", func(t *testing.T) {
		repo, m, r := seed(t)

		cancelled, err := m.Cancel(context.Background(), r.ID)
		if err != nil {
			t.Fatalf("cancel: %v", err)
		}
		if cancelled.Status != StatusCancelled {
			t.Errorf("status = %q, want Cancelled", cancelled.Status)
		}
		last := repo.events[len(repo.events)-1]
		if last.Action != EventCancel {
			t.Fatalf("expected cancel event, got %+v", last)
		}
	})

	t.Run("double cancel is a validation error, not a second event", func(t *testing.T) {
		repo, m, r := seed(t)
		if _, err := m.Cancel(context.Background(), r.ID); err != nil {
			t.Fatalf("cancel: %v", err)
		}
		events := len(repo.events)

		if _, err := m.Cancel(context.Background(), r.ID); !IsValidation(err) {
			t.Fatalf("expected validation error, got %v", err)
		}
		if len(repo.events) != events {
			t.Fatal("double cancel must not emit a second movement")
		}
	})

	t.Run("cancelled slot becomes bookable and restore then conflicts", func(t *testing.T) {
		_, m, r := seed(t)
		if _, err := m.Cancel(context.Background(), r.ID); err != nil {
			t.Fatalf("cancel: %v", err)
		}

		// The slot is free again.
		taken, err := m.Create(context.Background(), createRequest())
		if err != nil {
			t.Fatalf("rebooking a cancelled slot: %v", err)
		}

		// Restore must now fail; someone else holds the slot.
		if _, err := m.Restore(context.Background(), r.ID); !errors.Is(err, ErrConflict) {
			t.Fatalf("expected ErrConflict on restore, got %v", err)
		}

		if _, err := m.Cancel(context.Background(), taken.ID); err != nil {
			t.Fatalf("cancel rebooking: %v", err)
		}
		restored, err := m.Restore(context.Background(), r.ID)
		if err != nil {
			t.Fatalf("restore after slot freed: %v", err)
		}
		if restored.Status != StatusConfirmed {
			t.Errorf("status = %q, want Confirmed", restored.Status)
		}
	})

	t.Run("restore of a confirmed reservation is a validation error", func(t *testing.T) {
		_, m, r := seed(t)
		if _, err := m.Restore(context.Background(), r.ID); !IsValidation(err) {
			t.Fatalf("expected validation error, got %v", err)
		}
	})
}

func TestWeekdayIndex(t *testing.T) {
	cases := []struct {
		date string
		want int
	}{
		{date: "2026-08-31", want: 0}, // Monday
		{date: "2026-09-05", want: 5}, // Saturday
		{date: "2026-09-06", want: 6}, // Sunday
	}
	for _, tc := range cases {
		got, err := WeekdayIndex(tc.date)
		if err != nil {
			t.Errorf("WeekdayIndex(%q): %v", tc.date, err)
			continue
		}
		if got != tc.want {
			t.Errorf("WeekdayIndex(%q) = %d, want %d", tc.date, got, tc.want)
		}
	}
	if _, err := WeekdayIndex("tomorrow"); !IsValidation(err) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
