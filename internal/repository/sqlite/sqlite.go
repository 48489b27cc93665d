// Package sqlite implements the SectionStore over an embedded SQLite
// database, the default backend for single-machine deployments.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/opolyo01/etl-classes/internal/domain"
	"github.com/opolyo01/etl-classes/internal/repository"
)

const schema = `
CREATE TABLE IF NOT EXISTS sections (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	term TEXT NOT NULL,
	crn TEXT NOT NULL,
	subject TEXT NOT NULL,
	course TEXT NOT NULL,
	title TEXT NOT NULL,
	section TEXT NOT NULL DEFAULT '',
	instructor TEXT NOT NULL DEFAULT '',
	days_time TEXT NOT NULL DEFAULT '',
	room TEXT NOT NULL DEFAULT '',
	modality TEXT NOT NULL DEFAULT '',
	seats INTEGER,
	enrolled INTEGER,
	updated_at INTEGER NOT NULL,
	UNIQUE(term, crn)
);
CREATE INDEX IF NOT EXISTS idx_sections_subject_course ON sections(term, subject, course);
CREATE INDEX IF NOT EXISTS idx_sections_title ON sections(title);
CREATE INDEX IF NOT EXISTS idx_sections_instructor ON sections(instructor);
`

type Store struct {
	db *sql.DB
}

// NewStore opens (creating if needed) the database at path and ensures
// the schema exists.
func NewStore(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) UpsertSection(ctx context.Context, sec *domain.Section) error {
	const query = `
		INSERT INTO sections (
			term, crn, subject, course, title, section,
			instructor, days_time, room, modality, seats, enrolled, updated_at
		)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?)
		ON CONFLICT(term, crn) DO UPDATE SET
			subject=excluded.subject,
			course=excluded.course,
			title=excluded.title,
			section=excluded.section,
			instructor=excluded.instructor,
			days_time=excluded.days_time,
			room=excluded.room,
			modality=excluded.modality,
			seats=excluded.seats,
			enrolled=excluded.enrolled,
			updated_at=excluded.updated_at;
	`

	_, err := s.db.ExecContext(ctx, query,
		sec.Term, sec.CRN, sec.Subject, sec.Course, sec.Title, sec.Section,
		sec.Instructor, sec.DaysTime, sec.Room, sec.Modality,
		sec.Seats, sec.Enrolled, time.Now().Unix(),
	)
	return err
}

const sectionColumns = `term, crn, subject, course, title, section,
	instructor, days_time, room, modality, seats, enrolled, updated_at`

func scanSection(scan func(dest ...any) error) (domain.Section, error) {
	var sec domain.Section
	var updated int64
	err := scan(
		&sec.Term, &sec.CRN, &sec.Subject, &sec.Course, &sec.Title, &sec.Section,
		&sec.Instructor, &sec.DaysTime, &sec.Room, &sec.Modality,
		&sec.Seats, &sec.Enrolled, &updated,
	)
	if err != nil {
		return sec, err
	}
	sec.UpdatedAt = time.Unix(updated, 0).UTC()
	return sec, nil
}

func (s *Store) SectionsByTerm(ctx context.Context, term string) ([]domain.Section, error) {
	query := `SELECT ` + sectionColumns + ` FROM sections WHERE term = ? ORDER BY id;`

	rows, err := s.db.QueryContext(ctx, query, term)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sections []domain.Section
	for rows.Next() {
		sec, err := scanSection(rows.Scan)
		if err != nil {
			return nil, err
		}
		sections = append(sections, sec)
	}
	return sections, rows.Err()
}

func (s *Store) SectionsByCourse(ctx context.Context, term, subject, course string) ([]domain.Section, error) {
	query := `SELECT ` + sectionColumns + ` FROM sections
		WHERE term = ? AND UPPER(subject) = UPPER(?) AND UPPER(course) = UPPER(?)
		ORDER BY id;`

	rows, err := s.db.QueryContext(ctx, query, term, subject, course)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sections []domain.Section
	for rows.Next() {
		sec, err := scanSection(rows.Scan)
		if err != nil {
			return nil, err
		}
		sections = append(sections, sec)
	}
	return sections, rows.Err()
}

func (s *Store) SectionByCRN(ctx context.Context, term, crn string) (*domain.Section, error) {
	query := `SELECT ` + sectionColumns + ` FROM sections WHERE term = ? AND crn = ?;`

	sec, err := scanSection(s.db.QueryRowContext(ctx, query, term, crn).Scan)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &sec, nil
}

// SearchSections filters and ranks sections. Free-text queries are
// scored per column: exact subject 5, exact course 4, title 3,
// instructor 3, days/time 2, room 2, section 2, modality 1.
func (s *Store) SearchSections(ctx context.Context, q domain.SectionQuery) ([]domain.ScoredSection, error) {
	like := func(v string) string { return "%" + v + "%" }

	var where []string
	var params []any

	if q.Term != "" {
		where = append(where, "term = ?")
		params = append(params, q.Term)
	}
	if q.Subject != "" {
		where = append(where, "UPPER(subject) = UPPER(?)")
		params = append(params, q.Subject)
	}
	if q.Course != "" {
		where = append(where, "UPPER(course) = UPPER(?)")
		params = append(params, q.Course)
	}
	substrings := []struct{ col, val string }{
		{"title", q.Title},
		{"instructor", q.Instructor},
		{"days_time", q.DaysTime},
		{"room", q.Room},
		{"modality", q.Modality},
	}
	for _, f := range substrings {
		if f.val != "" {
			where = append(where, f.col+" LIKE ?")
			params = append(params, like(f.val))
		}
	}

	scoreExprs := []string{"0"}
	var scoreParams []any

	if q.Query != "" {
		queryLike := like(q.Query)
		scoreExprs = append(scoreExprs,
			"CASE WHEN UPPER(subject) = UPPER(?) THEN 5 ELSE 0 END",
			"CASE WHEN UPPER(course) = UPPER(?) THEN 4 ELSE 0 END",
			"CASE WHEN title LIKE ? THEN 3 ELSE 0 END",
			"CASE WHEN instructor LIKE ? THEN 3 ELSE 0 END",
			"CASE WHEN days_time LIKE ? THEN 2 ELSE 0 END",
			"CASE WHEN room LIKE ? THEN 2 ELSE 0 END",
			"CASE WHEN section LIKE ? THEN 2 ELSE 0 END",
			"CASE WHEN modality LIKE ? THEN 1 ELSE 0 END",
		)
		scoreParams = append(scoreParams,
			q.Query, q.Query, queryLike, queryLike,
			queryLike, queryLike, queryLike, queryLike,
		)

		where = append(where, `(subject LIKE ? OR course LIKE ? OR title LIKE ? OR instructor LIKE ?
			OR days_time LIKE ? OR room LIKE ? OR section LIKE ? OR modality LIKE ?)`)
		params = append(params,
			queryLike, queryLike, queryLike, queryLike,
			queryLike, queryLike, queryLike, queryLike,
		)
	}

	whereSQL := "1=1"
	if len(where) > 0 {
		whereSQL = strings.Join(where, " AND ")
	}

	query := `SELECT ` + sectionColumns + `, ` + strings.Join(scoreExprs, " + ") + ` AS score
		FROM sections
		WHERE ` + whereSQL + `
		ORDER BY score DESC, title ASC, subject ASC, course ASC, section ASC
		LIMIT ?;`

	args := append(append(scoreParams, params...), q.ClampLimit())
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.ScoredSection
	for rows.Next() {
		var r domain.ScoredSection
		var updated int64
		err := rows.Scan(
			&r.Term, &r.CRN, &r.Subject, &r.Course, &r.Title, &r.Section.Section,
			&r.Instructor, &r.DaysTime, &r.Room, &r.Modality,
			&r.Seats, &r.Enrolled, &updated, &r.Score,
		)
		if err != nil {
			return nil, err
		}
		r.UpdatedAt = time.Unix(updated, 0).UTC()
		results = append(results, r)
	}
	return results, rows.Err()
}
