// Package postgres implements the SectionStore over PostgreSQL for
// shared deployments where several planner processes read one catalog.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/opolyo01/etl-classes/internal/domain"
	"github.com/opolyo01/etl-classes/internal/repository"
)

const schema = `
CREATE TABLE IF NOT EXISTS sections (
	id BIGSERIAL PRIMARY KEY,
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
	seats INT,
	enrolled INT,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	UNIQUE(term, crn)
);
CREATE INDEX IF NOT EXISTS idx_sections_subject_course ON sections(term, subject, course);
CREATE INDEX IF NOT EXISTS idx_sections_title ON sections(title);
CREATE INDEX IF NOT EXISTS idx_sections_instructor ON sections(instructor);
`

type Storage struct {
	pool *pgxpool.Pool
}

// NewConnection returns *Storage so the pool is shared.
func NewConnection(ctx context.Context, connString string) (*Storage, error) {
	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, err
	}

	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &Storage{pool: pool}, nil
}

// Close closes the database connection pool.
func (s *Storage) Close() error {
	if s.pool != nil {
		s.pool.Close()
	}
	return nil
}

func (s *Storage) UpsertSection(ctx context.Context, sec *domain.Section) error {
	const query = `
		INSERT INTO sections (
			term, crn, subject, course, title, section,
			instructor, days_time, room, modality, seats, enrolled, updated_at
		)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,now())
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
			updated_at=now();
	`

	_, err := s.pool.Exec(ctx, query,
		sec.Term, sec.CRN, sec.Subject, sec.Course, sec.Title, sec.Section,
		sec.Instructor, sec.DaysTime, sec.Room, sec.Modality, sec.Seats, sec.Enrolled,
	)
	return err
}

const sectionColumns = `term, crn, subject, course, title, section,
	instructor, days_time, room, modality, seats, enrolled, updated_at`

func (s *Storage) scanSections(rows pgx.Rows) ([]domain.Section, error) {
	defer rows.Close()

	var sections []domain.Section
	for rows.Next() {
		var sec domain.Section
		err := rows.Scan(
			&sec.Term, &sec.CRN, &sec.Subject, &sec.Course, &sec.Title, &sec.Section,
			&sec.Instructor, &sec.DaysTime, &sec.Room, &sec.Modality,
			&sec.Seats, &sec.Enrolled, &sec.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		sections = append(sections, sec)
	}
	return sections, rows.Err()
}

func (s *Storage) SectionsByTerm(ctx context.Context, term string) ([]domain.Section, error) {
	query := `SELECT ` + sectionColumns + ` FROM sections WHERE term = $1 ORDER BY id;`

	rows, err := s.pool.Query(ctx, query, term)
	if err != nil {
		return nil, err
	}
	return s.scanSections(rows)
}

func (s *Storage) SectionsByCourse(ctx context.Context, term, subject, course string) ([]domain.Section, error) {
	query := `SELECT ` + sectionColumns + ` FROM sections
		WHERE term = $1 AND UPPER(subject) = UPPER($2) AND UPPER(course) = UPPER($3)
		ORDER BY id;`

	rows, err := s.pool.Query(ctx, query, term, subject, course)
	if err != nil {
		return nil, err
	}
	return s.scanSections(rows)
}

func (s *Storage) SectionByCRN(ctx context.Context, term, crn string) (*domain.Section, error) {
	query := `SELECT ` + sectionColumns + ` FROM sections WHERE term = $1 AND crn = $2;`

	var sec domain.Section
	err := s.pool.QueryRow(ctx, query, term, crn).Scan(
		&sec.Term, &sec.CRN, &sec.Subject, &sec.Course, &sec.Title, &sec.Section,
		&sec.Instructor, &sec.DaysTime, &sec.Room, &sec.Modality,
		&sec.Seats, &sec.Enrolled, &sec.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &sec, nil
}

func (s *Storage) SearchSections(ctx context.Context, q domain.SectionQuery) ([]domain.ScoredSection, error) {
	like := func(v string) string { return "%" + v + "%" }

	var where []string
	var params []any
	next := func(v any) string {
		params = append(params, v)
		return fmt.Sprintf("$%d", len(params))
	}

	var scoreExprs = []string{"0"}

	if q.Term != "" {
		where = append(where, "term = "+next(q.Term))
	}
	if q.Subject != "" {
		where = append(where, "UPPER(subject) = UPPER("+next(q.Subject)+")")
	}
	if q.Course != "" {
		where = append(where, "UPPER(course) = UPPER("+next(q.Course)+")")
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
			where = append(where, f.col+" ILIKE "+next(like(f.val)))
		}
	}

	if q.Query != "" {
		queryLike := like(q.Query)
		weighted := []struct {
			expr   string
			param  string
			weight int
		}{
			{"UPPER(subject) = UPPER(%s)", q.Query, 5},
			{"UPPER(course) = UPPER(%s)", q.Query, 4},
			{"title ILIKE %s", queryLike, 3},
			{"instructor ILIKE %s", queryLike, 3},
			{"days_time ILIKE %s", queryLike, 2},
			{"room ILIKE %s", queryLike, 2},
			{"section ILIKE %s", queryLike, 2},
			{"modality ILIKE %s", queryLike, 1},
		}
		var anyMatch []string
		for _, w := range weighted {
			cond := fmt.Sprintf(w.expr, next(w.param))
			scoreExprs = append(scoreExprs, fmt.Sprintf("CASE WHEN %s THEN %d ELSE 0 END", cond, w.weight))
			anyMatch = append(anyMatch, cond)
		}
		where = append(where, "("+strings.Join(anyMatch, " OR ")+")")
	}

	whereSQL := "1=1"
	if len(where) > 0 {
		whereSQL = strings.Join(where, " AND ")
	}

	query := `SELECT ` + sectionColumns + `, ` + strings.Join(scoreExprs, " + ") + ` AS score
		FROM sections
		WHERE ` + whereSQL + `
		ORDER BY score DESC, title ASC, subject ASC, course ASC, section ASC
		LIMIT ` + next(q.ClampLimit()) + `;`

	rows, err := s.pool.Query(ctx, query, params...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []domain.ScoredSection
	for rows.Next() {
		var r domain.ScoredSection
		var updated time.Time
		err := rows.Scan(
			&r.Term, &r.CRN, &r.Subject, &r.Course, &r.Title, &r.Section.Section,
			&r.Instructor, &r.DaysTime, &r.Room, &r.Modality,
			&r.Seats, &r.Enrolled, &updated, &r.Score,
		)
		if err != nil {
			return nil, err
		}
		r.UpdatedAt = updated
		results = append(results, r)
	}
	return results, rows.Err()
}
