package calendar

import (
	"fmt"
	"math"
)

// FillPercentage returns round(100 * registrations / maxParticipants)
// clamped to [0, 100]. Over-booked trainings report 100.
//
// A capacity below 1 yields 0 and ErrInvalidCapacity.
func FillPercentage(registrations, maxParticipants int) (int, error) {
	if maxParticipants < 1 {
		return 0, fmt.Errorf("%w: max participants %d", ErrInvalidCapacity, maxParticipants)
	}
	if registrations <= 0 {
		return 0, nil
	}
	pct := int(math.Round(100 * float64(registrations) / float64(maxParticipants)))
	return min(pct, 100), nil
}
