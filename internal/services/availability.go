// Package services contains the portal's business logic: sessions, booking,
// the dashboard aggregator, and public content. Services hold injected
// dependencies so they can be exercised in tests without process-wide state.
package services

import "time"

// OfferedServices is the fixed set of services the practice offers. The
// booking form presents exactly these; anything else is rejected.
var OfferedServices = []string{
	"Grief and Loss Counseling",
	"Marriage & Relationship Therapy",
	"Anxiety Support",
	"Depression Therapy",
	"Trauma & Psychological Dreams",
	"Family & Parenting Stress",
	"School-Based Substance Use Prevention",
	"Mental Health Consulting & Training",
}

// TimeSlots is the fixed ordered set of half-hour marks offerable per
// bookable day, spanning the business day 09:00-16:30. There is no per-date
// variation.
var TimeSlots = []string{
	"09:00", "09:30", "10:00", "10:30", "11:00", "11:30",
	"12:00", "12:30", "13:00", "13:30", "14:00", "14:30",
	"15:00", "15:30", "16:00", "16:30",
}

// ClosedWeekday is the practice's fixed closed day.
const ClosedWeekday = time.Sunday

// IsBookable reports whether a calendar date can be booked: the date must not
// be strictly before now's calendar day (in now's location) and must not fall
// on the closed weekday. Slot occupancy is intentionally not considered.
func IsBookable(date, now time.Time) bool {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	day := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, now.Location())
	if day.Before(today) {
		return false
	}
	return day.Weekday() != ClosedWeekday
}

// IsOfferedService reports whether s is one of the fixed offerings.
func IsOfferedService(s string) bool {
	for _, offered := range OfferedServices {
		if s == offered {
			return true
		}
	}
	return false
}

// IsValidSlot reports whether t is a member of the fixed slot set.
func IsValidSlot(t string) bool {
	for _, slot := range TimeSlots {
		if t == slot {
			return true
		}
	}
	return false
}
