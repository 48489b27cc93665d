package ingest

import (
	"io"

	"github.com/gocarina/gocsv"

	"github.com/opolyo01/etl-classes/internal/domain"
)

// sectionRow is the CSV shape for section snapshots. Snapshots let a
// catalog be moved between machines or seeded offline without hitting
// the schedule site.
type sectionRow struct {
	Term       string `csv:"term"`
	CRN        string `csv:"crn"`
	Subject    string `csv:"subject"`
	Course     string `csv:"course"`
	Title      string `csv:"title"`
	Section    string `csv:"section"`
	Instructor string `csv:"instructor"`
	DaysTime   string `csv:"days_time"`
	Room       string `csv:"room"`
	Modality   string `csv:"modality"`
	Seats      *int   `csv:"seats"`
	Enrolled   *int   `csv:"enrolled"`
}

// WriteCSV writes sections as a CSV snapshot.
func WriteCSV(w io.Writer, sections []domain.Section) error {
	rows := make([]*sectionRow, len(sections))
	for i, s := range sections {
		rows[i] = &sectionRow{
			Term: s.Term, CRN: s.CRN, Subject: s.Subject, Course: s.Course,
			Title: s.Title, Section: s.Section, Instructor: s.Instructor,
			DaysTime: s.DaysTime, Room: s.Room, Modality: s.Modality,
			Seats: s.Seats, Enrolled: s.Enrolled,
		}
	}
	return gocsv.Marshal(rows, w)
}

// ReadCSV parses a CSV snapshot back into sections.
func ReadCSV(r io.Reader) ([]domain.Section, error) {
	var rows []*sectionRow
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		return nil, err
	}
	sections := make([]domain.Section, len(rows))
	for i, row := range rows {
		sections[i] = domain.Section{
			Term: row.Term, CRN: row.CRN, Subject: row.Subject, Course: row.Course,
			Title: row.Title, Section: row.Section, Instructor: row.Instructor,
			DaysTime: row.DaysTime, Room: row.Room, Modality: row.Modality,
			Seats: row.Seats, Enrolled: row.Enrolled,
		}
	}
	return sections, nil
}
