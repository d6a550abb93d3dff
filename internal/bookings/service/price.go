package service

import "turfbook/pkg/timeslot"

// quote prices an interval at the turf's hourly rate in minor currency
// units. Partial hours bill as full hours.
func quote(ratePerHour int64, iv timeslot.Interval) int64 {
	return ratePerHour * int64(iv.BillableHours())
}
