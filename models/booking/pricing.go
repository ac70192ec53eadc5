package booking

// RatePerHour is the flat parking rate in currency minor units.
const RatePerHour = 5000

// HourMillis is one hour in epoch milliseconds.
const HourMillis = 3600000

// MinDuration and MaxDuration bound the durations offered to users.
const (
	MinDuration = 1
	MaxDuration = 4
)

// IsValidDuration reports whether d is one of the offered booking
// durations (whole hours, 1 through 4).
func IsValidDuration(d int) bool {
	return d >= MinDuration && d <= MaxDuration
}

// ComputeAmount returns the charge for a booking of d hours. The caller
// must have validated d; a non-positive duration yields zero rather than a
// negative amount.
func ComputeAmount(d int) int64 {
	if d < 0 {
		return 0
	}
	return int64(RatePerHour) * int64(d)
}
