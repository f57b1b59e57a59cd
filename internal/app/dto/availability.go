package dto

import (
	domainavailability "farmstay/internal/domain/availability"
	"farmstay/internal/domain/shared/dayrange"
)

type CalendarDay struct {
	Day  dayrange.Day `json:"day"`
	Open bool         `json:"open"`
}

// Calendar lists the explicitly marked days of a farm. Days absent from
// Days carry no record and default to open for booking purposes.
type Calendar struct {
	FarmID string        `json:"farm_id"`
	Days   []CalendarDay `json:"days"`
}

func MapCalendar(farmID string, records []domainavailability.DayRecord) Calendar {
	days := make([]CalendarDay, 0, len(records))
	for _, rec := range records {
		days = append(days, CalendarDay{Day: rec.Day, Open: rec.Open})
	}
	return Calendar{FarmID: farmID, Days: days}
}

type StayCheck struct {
	FarmID    string       `json:"farm_id"`
	CheckIn   dayrange.Day `json:"check_in"`
	CheckOut  dayrange.Day `json:"check_out"`
	Available bool         `json:"available"`
}
