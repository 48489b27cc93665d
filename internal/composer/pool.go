package composer

import (
	"context"

	"github.com/opolyo01/etl-classes/internal/domain"
	"github.com/opolyo01/etl-classes/internal/repository"
)

// PoolOptions adjusts the hard filters applied when resolving a
// course's candidate pool.
type PoolOptions struct {
	// OpenOnly drops sections that are known to be full. Sections
	// without seat data always pass.
	OpenOnly bool
}

// ResolvePool returns the candidate sections for one course request:
// every stored section of the term matching (subject, course) exactly,
// case-insensitive, in storage order. An empty result is a
// *domain.NotFoundError naming the course, so the caller can tell
// "not offered" apart from "offered but nothing fits".
func ResolvePool(ctx context.Context, store repository.SectionStore, term string, req domain.CourseRequest, opts PoolOptions) ([]domain.Section, error) {
	sections, err := store.SectionsByCourse(ctx, term, req.Subject, req.Course)
	if err != nil {
		return nil, err
	}

	if opts.OpenOnly {
		open := sections[:0]
		for _, sec := range sections {
			if sec.HasOpenSeats() {
				open = append(open, sec)
			}
		}
		sections = open
	}

	if len(sections) == 0 {
		return nil, &domain.NotFoundError{Term: term, Subject: req.Subject, Course: req.Course}
	}
	return sections, nil
}

// ResolvePools resolves one pool per request, preserving request order.
func ResolvePools(ctx context.Context, store repository.SectionStore, term string, requests []domain.CourseRequest, opts PoolOptions) ([][]domain.Section, error) {
	pools := make([][]domain.Section, len(requests))
	for i, req := range requests {
		pool, err := ResolvePool(ctx, store, term, req, opts)
		if err != nil {
			return nil, err
		}
		pools[i] = pool
	}
	return pools, nil
}
