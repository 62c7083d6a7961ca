package booking

import "testing"

func TestGenerateSlots(t *testing.T) {
	open := DayHours{DayOfWeek: 0, IsOpen: true, OpenTime: "10:00", CloseTime: "22:00"}

	t.Run("thirty minute granularity", func(t *testing.T) {
		slots := GenerateSlots(open, 30)
		if len(slots) != 24 {
			t.Fatalf("expected 24 slots, got %d", len(slots))
		}
		if slots[0].Label != "10:00" {
			t.Errorf("first slot = %q, want 10:00", slots[0].Label)
		}
		if last := slots[len(slots)-1]; last.Label != "21:30" {
			t.Errorf("last slot = %q, want 21:30", last.Label)
		}
		if slots[3].Hour != 11 {
			t.Errorf("slot 3 hour = %d, want 11", slots[3].Hour)
		}
	})

	t.Run("sixty minute granularity", func(t *testing.T) {
		slots := GenerateSlots(open, 60)
		if len(slots) != 12 {
			t.Fatalf("expected 12 slots, got %d", len(slots))
		}
		if last := slots[len(slots)-1]; last.Label != "21:00" {
			t.Errorf("last slot = %q, want 21:00", last.Label)
		}
	})

	t.Run("last start strictly before close", func(t *testing.T) {
		slots := GenerateSlots(DayHours{IsOpen: true, OpenTime: "10:00", CloseTime: "11:00"}, 30)
		if len(slots) != 2 {
			t.Fatalf("expected 2 slots, got %d", len(slots))
		}
		// 11:00 itself must not appear
		for _, s := range slots {
			if s.Label == "11:00" {
				t.Errorf("slot at closing time must not be generated")
			}
		}
	})

	t.Run("closed day", func(t *testing.T) {
		if slots := GenerateSlots(DayHours{IsOpen: false, OpenTime: "10:00", CloseTime: "22:00"}, 30); slots != nil {
			t.Errorf("closed day should yield no slots, got %d", len(slots))
		}
	})

	t.Run("missing window", func(t *testing.T) {
		if slots := GenerateSlots(DayHours{IsOpen: true}, 30); slots != nil {
			t.Errorf("missing open/close should yield no slots, got %d", len(slots))
		}
	})

	t.Run("zero granularity", func(t *testing.T) {
		if slots := GenerateSlots(open, 0); slots != nil {
			t.Errorf("zero granularity should yield no slots, got %d", len(slots))
		}
	})

	t.Run("midnight close", func(t *testing.T) {
		slots := GenerateSlots(DayHours{IsOpen: true, OpenTime: "22:00", CloseTime: "24:00"}, 60)
		if len(slots) != 2 {
			t.Fatalf("expected 2 slots, got %d", len(slots))
		}
		if slots[1].Label != "23:00" {
			t.Errorf("last slot = %q, want 23:00", slots[1].Label)
		}
	})
}
