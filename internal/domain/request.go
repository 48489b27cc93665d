package domain

import (
	"fmt"
	"sort"
	"strings"
)

// CourseRequest names one course the student wants a section of.
// Label is display-only ("Linear Algebra") and never used for matching.
type CourseRequest struct {
	Subject string `json:"subject" validate:"required"`
	Course  string `json:"course" validate:"required"`
	Label   string `json:"label,omitempty"`
}

func (r CourseRequest) Key() string {
	return strings.ToUpper(r.Subject) + " " + strings.ToUpper(r.Course)
}

// ParseCourseRequest turns a free-form course label such as "CS 2C" or
// "C S 1A" into a CourseRequest: the last field is the course number,
// everything before it is the subject code.
func ParseCourseRequest(label string) (CourseRequest, error) {
	fields := strings.Fields(strings.ToUpper(strings.TrimSpace(label)))
	if len(fields) < 2 {
		return CourseRequest{}, &InvalidArgumentError{
			Argument: "courses",
			Reason:   fmt.Sprintf("%q is not a course label like \"CS 2C\"", label),
		}
	}
	return CourseRequest{
		Subject: strings.Join(fields[:len(fields)-1], ""),
		Course:  fields[len(fields)-1],
		Label:   strings.TrimSpace(label),
	}, nil
}

// TimeWindow is a preferred time-of-day window in minutes from
// midnight, half-open like meeting intervals.
type TimeWindow struct {
	Start int `json:"start"`
	End   int `json:"end"`
}

// Contains reports whether a meeting fits entirely inside the window.
func (w TimeWindow) Contains(m MeetingTime) bool {
	return m.Start >= w.Start && m.End <= w.End
}

// Weights configures how much each criterion contributes to the total
// score. All weights must be non-negative.
type Weights struct {
	Modality float64 `json:"modality" validate:"gte=0"`
	Time     float64 `json:"time" validate:"gte=0"`
	Rating   float64 `json:"rating" validate:"gte=0"`
}

// DefaultWeights weighs every criterion equally.
func DefaultWeights() Weights {
	return Weights{Modality: 1, Time: 1, Rating: 1}
}

func (w Weights) IsZero() bool {
	return w.Modality == 0 && w.Time == 0 && w.Rating == 0
}

// Preferences configures scoring for one composition call. The zero
// value is fully neutral: any modality, no time windows, no rating
// floor.
type Preferences struct {
	Modality  string       `json:"modality" validate:"omitempty,oneof=any in-person online hybrid"`
	Windows   []TimeWindow `json:"windows,omitempty"`
	MinRating float64      `json:"min_rating" validate:"gte=0,lte=5"`
	Weights   Weights      `json:"weights"`
}

// ChosenSection pairs a requested course with the section picked for it.
type ChosenSection struct {
	Request CourseRequest `json:"request"`
	Section Section       `json:"section"`
}

// RankedSchedule is one complete conflict-free schedule with its score.
type RankedSchedule struct {
	Rank      int                `json:"rank"`
	Score     float64            `json:"score"`
	Breakdown map[string]float64 `json:"breakdown"`
	Sections  []ChosenSection    `json:"sections"`
}

// CRNKey is the deterministic tie-break key: the chosen CRNs joined in
// ascending order. Equal-score schedules rank by this key so the
// output never depends on search iteration order.
func (r *RankedSchedule) CRNKey() string {
	crns := make([]string, len(r.Sections))
	for i, cs := range r.Sections {
		crns[i] = cs.Section.CRN
	}
	sort.Strings(crns)
	return strings.Join(crns, ",")
}
