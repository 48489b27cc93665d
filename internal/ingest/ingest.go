package ingest

import (
	"context"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/opolyo01/etl-classes/internal/domain"
	"github.com/opolyo01/etl-classes/internal/repository"
)

// Runner ties extract → transform → load together.
type Runner struct {
	Extractor *Extractor
	Store     repository.SectionStore
	Log       *zap.Logger
}

// Run ingests one (term, dept) pair. It returns the number of sections
// upserted. Individual upsert failures abort the run; the next run
// repairs any partial state because every write is an upsert.
func (r *Runner) Run(ctx context.Context, term, dept string) (int, error) {
	runID := uuid.NewString()
	log := r.Log.With(zap.String("run_id", runID), zap.String("term", term), zap.String("dept", dept))

	log.Info("extracting schedule")
	sections, err := r.Extractor.FetchTerm(ctx, term, dept)
	if err != nil {
		log.Error("extract failed", zap.Error(err))
		return 0, err
	}
	log.Info("extracted sections", zap.Int("count", len(sections)))

	for i := range sections {
		normalize(&sections[i])
		if err := r.Store.UpsertSection(ctx, &sections[i]); err != nil {
			log.Error("upsert failed", zap.String("crn", sections[i].CRN), zap.Error(err))
			return i, err
		}
	}

	log.Info("ingest complete", zap.Int("loaded", len(sections)))
	return len(sections), nil
}

// normalize cleans a freshly extracted record: titles come off the
// page in inconsistent casing.
func normalize(sec *domain.Section) {
	sec.Title = titleCase(sec.Title)
}

// titleCase uppercases the first letter of each word and lowercases
// the rest ("INTERMEDIATE ALGEBRA" → "Intermediate Algebra").
func titleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	startOfWord := true
	for _, r := range s {
		switch {
		case unicode.IsSpace(r) || r == '-' || r == '/' || r == '(':
			startOfWord = true
			b.WriteRune(r)
		case startOfWord:
			b.WriteRune(unicode.ToUpper(r))
			startOfWord = false
		default:
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}
