package attendance

import "time"

// Classify derives the status of a check-in. A check-in is late only when its
// wall-clock minute, in checkInAt's own location, is after the cutoff minute.
// Seconds are ignored, so 09:00:59 is present against a 09:00 cutoff.
func Classify(checkInAt time.Time, cutoff TimeOfDay) Status {
	at := TimeOfDay{Hour: checkInAt.Hour(), Minute: checkInAt.Minute()}
	if at.minutes() > cutoff.minutes() {
		return StatusLate
	}
	return StatusPresent
}
