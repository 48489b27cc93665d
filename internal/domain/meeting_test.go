package domain

import "testing"

func TestParseMeetingTime_DayAndRangeForms(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		days  DaySet
		start int
		end   int
	}{
		{"classic MWF", "MWF 09:00 AM-09:50 AM", Monday | Wednesday | Friday, 540, 590},
		{"TTh with trailing meridiem", "TTh 1:00-2:15pm", Tuesday | Thursday, 780, 855},
		{"Th is Thursday not Tuesday", "Th 6:00 PM-8:50 PM", Thursday, 1080, 1250},
		{"lone S is Sunday", "S 10:00 AM-11:00 AM", Sunday, 600, 660},
		{"U is Sunday too", "U 10:00 AM-11:00 AM", Sunday, 600, 660},
		{"Sa is Saturday", "Sa 9:00 AM-12:00 PM", Saturday, 540, 720},
		{"noon is 720", "M 12:00 PM-1:00 PM", Monday, 720, 780},
		{"midnight is 0", "F 12:00 AM-1:00 AM", Friday, 0, 60},
		{"start flips to morning", "MW 9:00-1:00pm", Monday | Wednesday, 540, 780},
		{"lowercase day codes", "mwf 9:00am-9:50am", Monday | Wednesday | Friday, 540, 590},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := ParseMeetingTime(tc.raw)
			if m.Async {
				t.Fatalf("ParseMeetingTime(%q) came back async", tc.raw)
			}
			if m.Days != tc.days {
				t.Errorf("days = %v, want %v", m.Days, tc.days)
			}
			if m.Start != tc.start || m.End != tc.end {
				t.Errorf("interval = [%d,%d), want [%d,%d)", m.Start, m.End, tc.start, tc.end)
			}
		})
	}
}

func TestParseMeetingTime_AsyncFallback(t *testing.T) {
	for _, raw := range []string{
		"",
		"TBA",
		"Online",
		"Asynchronous",
		"MWF",                 // days with no time
		"9:00 AM-9:50 AM",     // time with no days
		"XZ 9:00 AM-10:00 AM", // unknown day codes
		"MW 10:00 AM-9:00 AM", // inverted range
	} {
		if m := ParseMeetingTime(raw); !m.Async {
			t.Errorf("ParseMeetingTime(%q) = %+v, want async", raw, m)
		}
	}
}

func TestParseSchedule_SplitsMultipleMeetings(t *testing.T) {
	meetings := ParseSchedule("MW 10:00 AM-11:15 AM; F 10:00 AM-10:50 AM")
	if len(meetings) != 2 {
		t.Fatalf("got %d meetings, want 2", len(meetings))
	}
	if meetings[0].Days != Monday|Wednesday {
		t.Errorf("first meeting days = %v, want MoWe", meetings[0].Days)
	}
	if meetings[1].Days != Friday {
		t.Errorf("second meeting days = %v, want Fr", meetings[1].Days)
	}
}

func TestConflictsWith(t *testing.T) {
	mwfMorning := ParseMeetingTime("MWF 09:00 AM-09:50 AM")
	mwfNext := ParseMeetingTime("MWF 09:50 AM-10:40 AM")
	mwfOverlap := ParseMeetingTime("MW 09:30 AM-10:20 AM")
	tthSameTime := ParseMeetingTime("TTh 09:00 AM-09:50 AM")
	async := ParseMeetingTime("TBA")

	if !mwfMorning.ConflictsWith(mwfOverlap) {
		t.Error("overlapping intervals on shared days should conflict")
	}
	if mwfMorning.ConflictsWith(mwfNext) {
		t.Error("back-to-back meetings should not conflict")
	}
	if mwfMorning.ConflictsWith(tthSameTime) {
		t.Error("same time on disjoint days should not conflict")
	}
	if mwfMorning.ConflictsWith(async) || async.ConflictsWith(mwfMorning) {
		t.Error("async meetings should never conflict")
	}
	if async.ConflictsWith(async) {
		t.Error("two async meetings should never conflict")
	}
}

func TestDaySetString(t *testing.T) {
	got := (Monday | Wednesday | Friday).String()
	if got != "MoWeFr" {
		t.Errorf("String() = %q, want MoWeFr", got)
	}
}
