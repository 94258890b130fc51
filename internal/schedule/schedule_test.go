package schedule

import (
	"testing"
)

func TestIsBusinessHour(t *testing.T) {
	tests := []struct {
		name      string
		timeOfDay string
		want      bool
	}{
		{name: "first slot of the morning", timeOfDay: "08:00", want: true},
		{name: "last slot of the morning", timeOfDay: "11:00", want: true},
		{name: "first slot of the afternoon", timeOfDay: "15:00", want: true},
		{name: "last slot of the day", timeOfDay: "17:00", want: true},
		{name: "lunch break", timeOfDay: "12:00", want: false},
		{name: "before opening", timeOfDay: "07:00", want: false},
		{name: "after closing", timeOfDay: "18:00", want: false},
		{name: "non-exact format", timeOfDay: "9:00", want: false},
		{name: "with seconds", timeOfDay: "09:00:00", want: false},
		{name: "empty", timeOfDay: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsBusinessHour(tt.timeOfDay); got != tt.want {
				t.Errorf("IsBusinessHour(%q) = %v, want %v", tt.timeOfDay, got, tt.want)
			}
		})
	}
}

func TestSlots(t *testing.T) {
	slots := Slots()
	want := []string{"08:00", "09:00", "10:00", "11:00", "15:00", "16:00", "17:00"}

	if len(slots) != len(want) {
		t.Fatalf("Slots() returned %d entries, want %d", len(slots), len(want))
	}
	for i := range want {
		if slots[i] != want[i] {
			t.Errorf("Slots()[%d] = %q, want %q", i, slots[i], want[i])
		}
	}

	// Mutating the returned slice must not change the schedule.
	slots[0] = "00:00"
	if !IsBusinessHour("08:00") {
		t.Error("mutating Slots() result changed the business-hour set")
	}
}
