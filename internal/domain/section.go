package domain

import (
	"strings"
	"time"
)

// Modality values normalized at ingestion time.
const (
	ModalityInPerson = "in-person"
	ModalityOnline   = "online"
	ModalityHybrid   = "hybrid"
	ModalityAny      = "any"
)

type Section struct {
	CRN        string    `db:"crn" json:"crn"`
	Term       string    `db:"term" json:"term"`
	Subject    string    `db:"subject" json:"subject"`
	Course     string    `db:"course" json:"course"`
	Title      string    `db:"title" json:"title"`
	Section    string    `db:"section" json:"section"`
	Instructor string    `db:"instructor" json:"instructor"`
	DaysTime   string    `db:"days_time" json:"days_time"`
	Room       string    `db:"room" json:"room"`
	Modality   string    `db:"modality" json:"modality"`
	Seats      *int      `db:"seats" json:"seats"`
	Enrolled   *int      `db:"enrolled" json:"enrolled"`
	UpdatedAt  time.Time `db:"updated_at" json:"updated_at"`
}

// NormalizedModality maps the free-text modality tag onto one of the
// Modality* constants. When the tag is empty it falls back to matching
// the room/location text, which is how the source site marks fully
// online sections ("Online").
func (s *Section) NormalizedModality() string {
	tag := strings.ToLower(s.Modality)
	switch {
	case strings.Contains(tag, "hybrid"):
		return ModalityHybrid
	case strings.Contains(tag, "online"), strings.Contains(tag, "virtual"):
		return ModalityOnline
	case strings.Contains(tag, "person"), strings.Contains(tag, "campus"):
		return ModalityInPerson
	}
	if tag == "" && strings.Contains(strings.ToLower(s.Room), "online") {
		return ModalityOnline
	}
	if tag == "" && s.Room != "" {
		return ModalityInPerson
	}
	return ""
}

// HasOpenSeats reports whether the section still has room. Sections
// without seat data are treated as open.
func (s *Section) HasOpenSeats() bool {
	if s.Seats == nil || s.Enrolled == nil {
		return true
	}
	return *s.Enrolled < *s.Seats
}

// ScoredSection is a search hit with its relevance score.
type ScoredSection struct {
	Section
	Score int `json:"score"`
}

// SectionQuery filters and ranks stored sections. Subject and Course
// match exactly (case-insensitive); the remaining fields are substring
// matches. Query is scored across several columns, mirroring the
// weights the search has always used: subject 5, course 4, title 3,
// instructor 3, days/time 2, room 2, section 2, modality 1.
type SectionQuery struct {
	Term       string
	Query      string
	Subject    string
	Course     string
	Title      string
	Instructor string
	DaysTime   string
	Room       string
	Modality   string
	Limit      int
}

// ClampLimit bounds the result limit to 1..100.
func (q *SectionQuery) ClampLimit() int {
	if q.Limit < 1 {
		return 1
	}
	if q.Limit > 100 {
		return 100
	}
	return q.Limit
}
