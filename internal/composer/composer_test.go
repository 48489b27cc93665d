package composer

import (
	"errors"
	"testing"

	"github.com/opolyo01/etl-classes/internal/domain"
)

func section(crn, subject, course, daysTime string) domain.Section {
	return domain.Section{
		CRN:      crn,
		Term:     "2026W",
		Subject:  subject,
		Course:   course,
		Title:    subject + " " + course,
		DaysTime: daysTime,
	}
}

func mustCompose(t *testing.T, requests []domain.CourseRequest, pools [][]domain.Section, prefs domain.Preferences, opts Options) *Result {
	t.Helper()
	result, err := Compose(requests, pools, prefs, nil, opts)
	if err != nil {
		t.Fatalf("Compose failed: %v", err)
	}
	return result
}

func TestCompose_PrunesConflictingCombinations(t *testing.T) {
	requests := []domain.CourseRequest{
		{Subject: "CS", Course: "2C"},
		{Subject: "MATH", Course: "2B"},
	}
	pools := [][]domain.Section{
		{
			section("30001", "CS", "2C", "MWF 10:00 AM-10:50 AM"),
			section("30002", "CS", "2C", "TTh 10:00 AM-11:15 AM"),
		},
		{
			section("40001", "MATH", "2B", "TTh 10:00 AM-11:15 AM"),
		},
	}

	result := mustCompose(t, requests, pools, domain.Preferences{}, Options{TopK: 5})

	if len(result.Schedules) != 1 {
		t.Fatalf("got %d schedules, want 1", len(result.Schedules))
	}
	sched := result.Schedules[0]
	if sched.Rank != 1 {
		t.Errorf("rank = %d, want 1", sched.Rank)
	}
	if len(sched.Sections) != 2 {
		t.Fatalf("got %d sections, want 2", len(sched.Sections))
	}
	// Sections come back in request order regardless of search order.
	if sched.Sections[0].Section.CRN != "30001" {
		t.Errorf("CS pick = %s, want 30001 (the MWF section)", sched.Sections[0].Section.CRN)
	}
	if sched.Sections[1].Section.CRN != "40001" {
		t.Errorf("MATH pick = %s, want 40001", sched.Sections[1].Section.CRN)
	}
	if result.Partial {
		t.Error("small search should not be partial")
	}
}

func TestCompose_AllCombinationsConflict(t *testing.T) {
	requests := []domain.CourseRequest{
		{Subject: "CS", Course: "2C"},
		{Subject: "MATH", Course: "2B"},
	}
	pools := [][]domain.Section{
		{section("30001", "CS", "2C", "MWF 10:00 AM-10:50 AM")},
		{section("40001", "MATH", "2B", "MW 10:30 AM-11:45 AM")},
	}

	result := mustCompose(t, requests, pools, domain.Preferences{}, Options{TopK: 5})
	if len(result.Schedules) != 0 {
		t.Fatalf("got %d schedules, want 0 (every combination conflicts)", len(result.Schedules))
	}
}

func TestCompose_SchedulesAreConflictFree(t *testing.T) {
	requests := []domain.CourseRequest{
		{Subject: "CS", Course: "2C"},
		{Subject: "MATH", Course: "2B"},
		{Subject: "PHYS", Course: "4A"},
	}
	pools := [][]domain.Section{
		{
			section("30001", "CS", "2C", "MWF 09:00 AM-09:50 AM"),
			section("30002", "CS", "2C", "TTh 09:00 AM-10:15 AM"),
		},
		{
			section("40001", "MATH", "2B", "MWF 09:00 AM-09:50 AM"),
			section("40002", "MATH", "2B", "MWF 10:00 AM-10:50 AM"),
		},
		{
			section("50001", "PHYS", "4A", "TTh 09:00 AM-10:15 AM"),
			section("50002", "PHYS", "4A", "TTh 11:00 AM-12:15 PM"),
		},
	}

	result := mustCompose(t, requests, pools, domain.Preferences{}, Options{TopK: 10})
	if len(result.Schedules) == 0 {
		t.Fatal("expected at least one conflict-free schedule")
	}

	for _, sched := range result.Schedules {
		for i := 0; i < len(sched.Sections); i++ {
			for j := i + 1; j < len(sched.Sections); j++ {
				a := domain.ParseSchedule(sched.Sections[i].Section.DaysTime)
				b := domain.ParseSchedule(sched.Sections[j].Section.DaysTime)
				for _, ma := range a {
					for _, mb := range b {
						if ma.ConflictsWith(mb) {
							t.Errorf("schedule rank %d pairs conflicting sections %s and %s",
								sched.Rank, sched.Sections[i].Section.CRN, sched.Sections[j].Section.CRN)
						}
					}
				}
			}
		}
	}
}

func TestCompose_EqualScoresBreakTiesByCRNKey(t *testing.T) {
	requests := []domain.CourseRequest{{Subject: "CS", Course: "2C"}}
	pools := [][]domain.Section{
		{
			section("30099", "CS", "2C", "TBA"),
			section("30001", "CS", "2C", "TBA"),
		},
	}

	result := mustCompose(t, requests, pools, domain.Preferences{}, Options{TopK: 2})
	if len(result.Schedules) != 2 {
		t.Fatalf("got %d schedules, want 2", len(result.Schedules))
	}
	if result.Schedules[0].Sections[0].Section.CRN != "30001" {
		t.Errorf("rank 1 = %s, want 30001 (smaller CRN key wins ties)",
			result.Schedules[0].Sections[0].Section.CRN)
	}
}

func TestCompose_Deterministic(t *testing.T) {
	requests := []domain.CourseRequest{
		{Subject: "CS", Course: "2C"},
		{Subject: "MATH", Course: "2B"},
	}
	pools := [][]domain.Section{
		{
			section("30001", "CS", "2C", "MWF 09:00 AM-09:50 AM"),
			section("30002", "CS", "2C", "TTh 09:00 AM-10:15 AM"),
			section("30003", "CS", "2C", "TBA"),
		},
		{
			section("40001", "MATH", "2B", "MWF 10:00 AM-10:50 AM"),
			section("40002", "MATH", "2B", "TBA"),
		},
	}
	// Inexact weights make the scores sensitive to summation order, so
	// the comparison below also catches order-dependent float totals.
	prefs := domain.Preferences{Weights: domain.Weights{Modality: 0.1, Time: 0.2, Rating: 0.6}}

	first := mustCompose(t, requests, pools, prefs, Options{TopK: 10})
	for run := 0; run < 20; run++ {
		next := mustCompose(t, requests, pools, prefs, Options{TopK: 10})
		if len(first.Schedules) != len(next.Schedules) {
			t.Fatalf("run %d length differs: %d vs %d", run, len(first.Schedules), len(next.Schedules))
		}
		for i := range first.Schedules {
			if first.Schedules[i].CRNKey() != next.Schedules[i].CRNKey() {
				t.Errorf("run %d rank %d ordering differs: %s vs %s",
					run, i+1, first.Schedules[i].CRNKey(), next.Schedules[i].CRNKey())
			}
			if first.Schedules[i].Score != next.Schedules[i].Score {
				t.Errorf("run %d rank %d score differs: %v vs %v",
					run, i+1, first.Schedules[i].Score, next.Schedules[i].Score)
			}
		}
	}
}

func TestCompose_MaxNodesReturnsPartial(t *testing.T) {
	requests := []domain.CourseRequest{
		{Subject: "CS", Course: "2C"},
		{Subject: "MATH", Course: "2B"},
	}
	pools := [][]domain.Section{
		{
			section("30001", "CS", "2C", "TBA"),
			section("30002", "CS", "2C", "TBA"),
			section("30003", "CS", "2C", "TBA"),
		},
		{
			section("40001", "MATH", "2B", "TBA"),
			section("40002", "MATH", "2B", "TBA"),
			section("40003", "MATH", "2B", "TBA"),
		},
	}

	result := mustCompose(t, requests, pools, domain.Preferences{}, Options{TopK: 50, MaxNodes: 2})
	if !result.Partial {
		t.Error("exceeding MaxNodes should flag the result partial")
	}
	if result.Visited > 3 {
		t.Errorf("visited %d nodes, budget was 2", result.Visited)
	}
}

func TestCompose_ArgumentValidation(t *testing.T) {
	req := domain.CourseRequest{Subject: "CS", Course: "2C"}
	pool := []domain.Section{section("30001", "CS", "2C", "TBA")}

	cases := []struct {
		name     string
		requests []domain.CourseRequest
		pools    [][]domain.Section
		prefs    domain.Preferences
		opts     Options
	}{
		{"zero top_k", []domain.CourseRequest{req}, [][]domain.Section{pool}, domain.Preferences{}, Options{}},
		{"no requests", nil, nil, domain.Preferences{}, Options{TopK: 1}},
		{"pool count mismatch", []domain.CourseRequest{req}, nil, domain.Preferences{}, Options{TopK: 1}},
		{"negative weight", []domain.CourseRequest{req}, [][]domain.Section{pool},
			domain.Preferences{Weights: domain.Weights{Modality: -1}}, Options{TopK: 1}},
		{"duplicate course", []domain.CourseRequest{req, req},
			[][]domain.Section{pool, pool}, domain.Preferences{}, Options{TopK: 1}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Compose(tc.requests, tc.pools, tc.prefs, nil, tc.opts)
			var invalid *domain.InvalidArgumentError
			if !errors.As(err, &invalid) {
				t.Errorf("error = %v, want *InvalidArgumentError", err)
			}
		})
	}
}

func TestCompose_EmptyPoolIsInfeasible(t *testing.T) {
	requests := []domain.CourseRequest{
		{Subject: "CS", Course: "2C"},
		{Subject: "MATH", Course: "2B"},
	}
	pools := [][]domain.Section{
		{section("30001", "CS", "2C", "TBA")},
		{},
	}

	_, err := Compose(requests, pools, domain.Preferences{}, nil, Options{TopK: 1})
	var infeasible *domain.InfeasibleError
	if !errors.As(err, &infeasible) {
		t.Fatalf("error = %v, want *InfeasibleError", err)
	}
	if infeasible.Subject != "MATH" || infeasible.Course != "2B" {
		t.Errorf("infeasible names %s %s, want MATH 2B", infeasible.Subject, infeasible.Course)
	}
}
