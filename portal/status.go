package portal

import "time"

// Status is the display status of a license.
type Status int

const (
	StatusActive Status = iota
	StatusNotActive
	StatusProbation
	StatusExpired
)

func (s Status) String() string {
	switch s {
	case StatusActive:
		return "Active"
	case StatusNotActive:
		return "Not Active"
	case StatusProbation:
		return "Probation"
	case StatusExpired:
		return "Expired"
	}
	return "Unknown"
}

// GraceMonths is how long an expired license stays in probation.
const GraceMonths = 2

// NoDevice is shown when no device has claimed a license.
const NoDevice = "N/A"

// Clock returns the current time. Tests pass a fixed one.
type Clock func() time.Time

// Date truncates t to midnight of its calendar day in t's location.
func Date(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// GraceEnd is the last day of probation for a license expiring on expiry.
// Month overflow normalises the way time.AddDate does: Dec 31 plus two
// months is Mar 2 (or Mar 3 outside leap years).
func GraceEnd(expiry time.Time) time.Time {
	return Date(expiry).AddDate(0, GraceMonths, 0)
}

// Classify derives the display status of a license. Dates are compared by
// calendar day in now's location, and both boundaries are exclusive: on the
// expiry day itself a license is not yet in probation, and on the last grace
// day it is not yet expired.
func Classify(expiry time.Time, deviceName string, now time.Time) Status {
	today := Date(now)
	expiryDay := Date(expiry.In(now.Location()))

	switch {
	case today.After(GraceEnd(expiryDay)):
		return StatusExpired
	case today.After(expiryDay):
		return StatusProbation
	case hasDevice(deviceName):
		return StatusActive
	default:
		return StatusNotActive
	}
}

func hasDevice(deviceName string) bool {
	return deviceName != NoDevice && deviceName != "none"
}

// RenewalDate is the expiry a license gets when renewed at now: one year
// from today if it already lapsed, otherwise one year past the current expiry.
func RenewalDate(currentExpiry, now time.Time) time.Time {
	today := Date(now)
	expiryDay := Date(currentExpiry.In(now.Location()))
	if today.After(expiryDay) {
		return today.AddDate(1, 0, 0)
	}
	return expiryDay.AddDate(1, 0, 0)
}
