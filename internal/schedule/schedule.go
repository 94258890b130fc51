// Package schedule defines the salon's bookable appointment times.
package schedule

// businessHours is the fixed ordered set of bookable time-of-day values.
// Comparison is exact string match; there is no timezone handling.
var businessHours = []string{
	"08:00",
	"09:00",
	"10:00",
	"11:00",
	"15:00",
	"16:00",
	"17:00",
}

// IsBusinessHour reports whether timeOfDay exactly matches one of the
// permitted appointment times.
func IsBusinessHour(timeOfDay string) bool {
	for _, h := range businessHours {
		if h == timeOfDay {
			return true
		}
	}
	return false
}

// Slots returns the ordered business-hour set. Callers get a copy so the
// set stays fixed.
func Slots() []string {
	slots := make([]string, len(businessHours))
	copy(slots, businessHours)
	return slots
}
