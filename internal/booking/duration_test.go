package booking

import "testing"

func TestDurationFor(t *testing.T) {
	durations := DefaultSportDurations()

	cases := []struct {
		courtType string
		want      int
	}{
		{courtType: "Padel", want: 90},
		{courtType: "padel", want: 90},
		{courtType: "Padel Indoor", want: 90},
		{courtType: "Futbol 5", want: 60},
		{courtType: "Tenis", want: 60},
		{courtType: "", want: 60},
	}
	for _, tc := range cases {
		if got := durations.DurationFor(tc.courtType); got != tc.want {
			t.Errorf("DurationFor(%q) = %d, want %d", tc.courtType, got, tc.want)
		}
	}
}

func TestDurationForCustomTable(t *testing.T) {
	durations := SportDurations{"futbol": 120, "broken": 0}

	if got := durations.DurationFor("Futbol 5"); got != 120 {
		t.Errorf("DurationFor(Futbol 5) = %d, want 120", got)
	}
	// A non-positive entry is ignored, not honored.
	if got := durations.DurationFor("Broken"); got != DefaultDurationMinutes {
		t.Errorf("DurationFor(Broken) = %d, want %d", got, DefaultDurationMinutes)
	}
	if got := durations.DurationFor("Padel"); got != DefaultDurationMinutes {
		t.Errorf("DurationFor(Padel) without entry = %d, want %d", got, DefaultDurationMinutes)
	}
}
