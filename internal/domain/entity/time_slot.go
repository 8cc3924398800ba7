package entity

import (
	"errors"
	"strings"
	"time"
)

const (
	SlotDuration     = 30 * time.Minute
	WorkdayStartHour = 9
	WorkdayEndHour   = 18

	DateLayout = "2006-01-02"
	TimeLayout = "15:04"

	slotKeyLayout = "2006-01-02 15:04"
)

// ClinicLocation is the fixed UTC+2 offset all appointment times are expressed in.
var ClinicLocation = time.FixedZone("UTC+2", 2*60*60)

var ErrInvalidSlotTime = errors.New("invalid slot time")

// ParseClinicDate parses YYYY-MM-DD as midnight in the clinic offset.
func ParseClinicDate(value string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, value, ClinicLocation)
}

// ParseSlotStart combines a day with "HH:MM" or a slot label "HH:MM - HH:MM"; only the
// start of a label is used.
func ParseSlotStart(day time.Time, value string) (time.Time, error) {
	start, _, _ := strings.Cut(strings.TrimSpace(value), " - ")
	t, err := time.Parse(TimeLayout, strings.TrimSpace(start))
	if err != nil {
		return time.Time{}, ErrInvalidSlotTime
	}
	d := day.In(ClinicLocation)
	return time.Date(d.Year(), d.Month(), d.Day(), t.Hour(), t.Minute(), 0, 0, ClinicLocation), nil
}

// IsClinicClosed reports whether the clinic is closed on the given day.
func IsClinicClosed(day time.Time) bool {
	switch day.In(ClinicLocation).Weekday() {
	case time.Saturday, time.Sunday:
		return true
	}
	return false
}

// DayBounds returns [00:00, 24:00) of the day in the clinic offset.
func DayBounds(day time.Time) (time.Time, time.Time) {
	d := day.In(ClinicLocation)
	start := time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, ClinicLocation)
	return start, start.AddDate(0, 0, 1)
}

// DaySlots returns the start of every working slot of the day, in order.
func DaySlots(day time.Time) []time.Time {
	dayStart, _ := DayBounds(day)
	open := dayStart.Add(WorkdayStartHour * time.Hour)
	closing := dayStart.Add(WorkdayEndHour * time.Hour)

	var slots []time.Time
	for t := open; t.Before(closing); t = t.Add(SlotDuration) {
		slots = append(slots, t)
	}
	return slots
}

// IsBookableSlot reports whether start is one of the working slots of an open day.
func IsBookableSlot(start time.Time) bool {
	if IsClinicClosed(start) {
		return false
	}
	for _, slot := range DaySlots(start) {
		if slot.Equal(start) {
			return true
		}
	}
	return false
}

func SlotLabel(start time.Time) string {
	s := start.In(ClinicLocation)
	return s.Format(TimeLayout) + " - " + s.Add(SlotDuration).Format(TimeLayout)
}

// SlotKey identifies a slot start at minute precision in the clinic offset.
func SlotKey(t time.Time) string {
	return t.In(ClinicLocation).Format(slotKeyLayout)
}

// AvailableSlots returns the labels of the day's slots whose start does not match any of
// the taken start times. Weekends have no slots.
func AvailableSlots(day time.Time, taken []time.Time) []string {
	labels := []string{}
	if IsClinicClosed(day) {
		return labels
	}

	busy := make(map[string]struct{}, len(taken))
	for _, t := range taken {
		busy[SlotKey(t)] = struct{}{}
	}

	for _, start := range DaySlots(day) {
		if _, ok := busy[SlotKey(start)]; ok {
			continue
		}
		labels = append(labels, SlotLabel(start))
	}
	return labels
}
