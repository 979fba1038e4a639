// Package countdown computes and formats the time left on an offer. Every
// surface that shows a timer goes through it so they never disagree.
package countdown

import (
	"time"
)

// TickInterval is how often a live timer must be recomputed
const TickInterval = time.Second

const (
	msPerSecond = int64(1000)
	msPerMinute = 60 * msPerSecond
	msPerHour   = 60 * msPerMinute
	msPerDay    = 24 * msPerHour
)

// Remaining is the time left until an end timestamp. When Expired is set
// every component is zero.
type Remaining struct {
	Days    int  `json:"days"`
	Hours   int  `json:"hours"`
	Minutes int  `json:"minutes"`
	Seconds int  `json:"seconds"`
	Expired bool `json:"expired"`
}

// Compute breaks end-now into days, hours, minutes and seconds. It reports
// Expired when now is at or after end.
func Compute(end, now time.Time) Remaining {
	if !now.Before(end) {
		return Remaining{Expired: true}
	}
	left := end.Sub(now).Milliseconds()

	days := left / msPerDay
	left %= msPerDay
	hours := left / msPerHour
	left %= msPerHour
	minutes := left / msPerMinute
	left %= msPerMinute
	seconds := left / msPerSecond

	return Remaining{
		Days:    int(days),
		Hours:   int(hours),
		Minutes: int(minutes),
		Seconds: int(seconds),
	}
}

// TotalSeconds is the whole number of seconds represented by r
func (r Remaining) TotalSeconds() int64 {
	if r.Expired {
		return 0
	}
	return int64(r.Days)*86400 + int64(r.Hours)*3600 + int64(r.Minutes)*60 + int64(r.Seconds)
}
