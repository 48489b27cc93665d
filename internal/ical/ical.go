// Package ical renders a set of chosen sections as an iCalendar feed
// with one weekly recurring event per meeting pattern.
package ical

import (
	"fmt"
	"strings"
	"time"

	ics "github.com/arran4/golang-ical"

	"github.com/opolyo01/etl-classes/internal/domain"
)

var byDayCodes = map[time.Weekday]string{
	time.Monday:    "MO",
	time.Tuesday:   "TU",
	time.Wednesday: "WE",
	time.Thursday:  "TH",
	time.Friday:    "FR",
	time.Saturday:  "SA",
	time.Sunday:    "SU",
}

// Build emits one weekly recurring VEVENT per meeting pattern, anchored
// on the first matching weekday at or after the anchor date. Asynchronous
// meetings are skipped because they have no wall-clock footprint.
func Build(sections []domain.Section, anchor time.Time) *ics.Calendar {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//etl-classes//schedule export//EN")

	day := time.Date(anchor.Year(), anchor.Month(), anchor.Day(), 0, 0, 0, 0, time.Local)

	for _, sec := range sections {
		for i, m := range domain.ParseSchedule(sec.DaysTime) {
			if m.Async {
				continue
			}
			weekdays := m.Days.Weekdays()
			if len(weekdays) == 0 {
				continue
			}

			first := firstOnOrAfter(day, weekdays)
			codes := make([]string, len(weekdays))
			for j, wd := range weekdays {
				codes[j] = byDayCodes[wd]
			}

			event := cal.AddEvent(fmt.Sprintf("%s-%s-%d@etl-classes", sec.Term, sec.CRN, i))
			event.SetDtStampTime(time.Now())
			event.SetStartAt(first.Add(time.Duration(m.Start) * time.Minute))
			event.SetEndAt(first.Add(time.Duration(m.End) * time.Minute))
			event.SetSummary(fmt.Sprintf("%s %s: %s", sec.Subject, sec.Course, sec.Title))
			if sec.Room != "" {
				event.SetLocation(sec.Room)
			}
			if sec.Instructor != "" {
				event.SetDescription("Instructor: " + sec.Instructor)
			}
			event.AddRrule("FREQ=WEEKLY;BYDAY=" + strings.Join(codes, ","))
		}
	}
	return cal
}

// firstOnOrAfter returns the earliest date at or after start whose
// weekday is in days.
func firstOnOrAfter(start time.Time, days []time.Weekday) time.Time {
	for d := start; ; d = d.AddDate(0, 0, 1) {
		for _, wd := range days {
			if d.Weekday() == wd {
				return d
			}
		}
	}
}
