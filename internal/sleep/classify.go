// Package sleep contains the pure session classification and quality scoring
// logic. Nothing here touches storage or the network.
package sleep

import "github.com/somnia-app/somnia-api/internal/domain"

const (
	// Sessions shorter than this are naps regardless of when they start.
	napMaxDurationHours = 3.0

	// Daytime window for start-hour classification, [start, end).
	daytimeStartHour = 10
	daytimeEndHour   = 18
)

// IsNap reports whether a session is a nap: any session shorter than three
// hours, or any session starting in the daytime window. Duration here is the
// start-to-end span, not the stage sum, so sparsely staged nights classify
// the same as unstaged ones. Daytime is judged on the local wall-clock hour
// of the start time.
func IsNap(s *domain.SleepSession) bool {
	if s.EndTime.Sub(s.StartTime).Hours() < napMaxDurationHours {
		return true
	}
	hour := s.StartTime.Hour()
	return hour >= daytimeStartHour && hour < daytimeEndHour
}
