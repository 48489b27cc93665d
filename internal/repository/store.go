package repository

import (
	"context"
	"errors"

	"github.com/opolyo01/etl-classes/internal/domain"
)

// ErrNotFound is returned by single-record lookups with no match.
var ErrNotFound = errors.New("record not found")

// SectionStore is the storage boundary: a term-scoped table of section
// records keyed by (term, crn). Upserts are idempotent so ingestion
// runs are re-run-safe.
type SectionStore interface {
	// UpsertSection inserts the section or overwrites the record with
	// the same (term, crn). It never creates duplicates.
	UpsertSection(ctx context.Context, sec *domain.Section) error

	// SectionsByTerm returns every section stored for the term, in
	// insertion order.
	SectionsByTerm(ctx context.Context, term string) ([]domain.Section, error)

	// SectionsByCourse returns the term's sections matching subject and
	// course number exactly (case-insensitive), in insertion order.
	SectionsByCourse(ctx context.Context, term, subject, course string) ([]domain.Section, error)

	// SectionByCRN looks up one section. Returns ErrNotFound when absent.
	SectionByCRN(ctx context.Context, term, crn string) (*domain.Section, error)

	// SearchSections runs the filtered, relevance-ranked search.
	SearchSections(ctx context.Context, q domain.SectionQuery) ([]domain.ScoredSection, error)

	Close() error
}
