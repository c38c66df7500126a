// Package market answers "is the NSE open right now" and derives the order
// routing variety from it. It is pure: callers supply the instant, the
// package supplies the verdict.
package market

import (
	"strings"
	"time"
)

// Variety is the Kite order variety used for routing.
type Variety string

const (
	// VarietyRegular is used while the market is open.
	VarietyRegular Variety = "regular"
	// VarietyAMO queues the order for the next session (after-market order).
	VarietyAMO Variety = "amo"
)

// Trading window in exchange-local time (IST). Both boundaries inclusive.
const (
	openHour    = 9
	openMinute  = 15
	closeHour   = 15
	closeMinute = 30
)

// Hours is the human-readable trading window, used in status payloads.
const Hours = "9:15 AM - 3:30 PM IST (Monday to Friday)"

var ist = mustLoadIST()

func mustLoadIST() *time.Location {
	loc, err := time.LoadLocation("Asia/Kolkata")
	if err != nil {
		// IST has no DST; a fixed offset is exact.
		return time.FixedZone("IST", 5*3600+1800)
	}
	return loc
}

// IsOpen reports whether the NSE equity market is open at t.
// Closed on Saturday and Sunday; on other days open within 09:15-15:30 IST
// inclusive. Exchange holidays are not modelled.
func IsOpen(t time.Time) bool {
	local := t.In(ist)

	switch local.Weekday() {
	case time.Saturday, time.Sunday:
		return false
	}

	secs := local.Hour()*3600 + local.Minute()*60 + local.Second()
	return secs >= openHour*3600+openMinute*60 && secs <= closeHour*3600+closeMinute*60
}

// OrderVariety returns the routing variety that applies at t: regular while
// the market is open, amo otherwise. Order handlers must call this exactly
// once per order and reuse the result for both routing and the response
// annotation.
func OrderVariety(t time.Time) Variety {
	if IsOpen(t) {
		return VarietyRegular
	}
	return VarietyAMO
}

// Status is a point-in-time snapshot of the market calendar. Variety carries
// the upper-cased wire form ("REGULAR"/"AMO").
type Status struct {
	IsOpen      bool   `json:"is_open"`
	Label       string `json:"status"`
	Variety     string `json:"order_type_available"`
	Hours       string `json:"market_hours"`
	CurrentTime string `json:"current_time"`
}

// StatusAt builds the full calendar snapshot for t.
func StatusAt(t time.Time) Status {
	open := IsOpen(t)
	label := "CLOSED"
	if open {
		label = "OPEN"
	}
	return Status{
		IsOpen:      open,
		Label:       label,
		Variety:     strings.ToUpper(string(OrderVariety(t))),
		Hours:       Hours,
		CurrentTime: t.In(ist).Format("2006-01-02 15:04:05") + " IST",
	}
}
