package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/opolyo01/etl-classes/internal/domain"
	"github.com/opolyo01/etl-classes/internal/repository"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "classes.db"))
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func seed(t *testing.T, store *Store, sections ...domain.Section) {
	t.Helper()
	ctx := context.Background()
	for i := range sections {
		if err := store.UpsertSection(ctx, &sections[i]); err != nil {
			t.Fatalf("UpsertSection(%s) failed: %v", sections[i].CRN, err)
		}
	}
}

func TestUpsertSection_Idempotent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	sec := domain.Section{
		Term: "2026W", CRN: "30123", Subject: "CS", Course: "2C",
		Title: "Intermediate Programming", Section: "CS-2C-01",
		Instructor: "DOE, JANE", DaysTime: "MWF 09:00 AM-09:50 AM",
	}
	seed(t, store, sec)

	sec.Instructor = "SMITH, ALEX"
	seed(t, store, sec)

	sections, err := store.SectionsByTerm(ctx, "2026W")
	if err != nil {
		t.Fatalf("SectionsByTerm failed: %v", err)
	}
	if len(sections) != 1 {
		t.Fatalf("got %d sections after re-upsert, want 1", len(sections))
	}
	if sections[0].Instructor != "SMITH, ALEX" {
		t.Errorf("instructor = %q, want the updated value", sections[0].Instructor)
	}
	if sections[0].UpdatedAt.IsZero() {
		t.Error("updated_at should be set")
	}
}

func TestSectionsByCourse_CaseInsensitive(t *testing.T) {
	store := newTestStore(t)

	seed(t, store,
		domain.Section{Term: "2026W", CRN: "30001", Subject: "CS", Course: "2C", Title: "A", Section: "01"},
		domain.Section{Term: "2026W", CRN: "30002", Subject: "cs", Course: "2c", Title: "B", Section: "02"},
		domain.Section{Term: "2026W", CRN: "40001", Subject: "MATH", Course: "2B", Title: "C", Section: "05"},
		domain.Section{Term: "2025F", CRN: "30001", Subject: "CS", Course: "2C", Title: "D", Section: "01"},
	)

	sections, err := store.SectionsByCourse(context.Background(), "2026W", "cs", "2C")
	if err != nil {
		t.Fatalf("SectionsByCourse failed: %v", err)
	}
	if len(sections) != 2 {
		t.Fatalf("got %d sections, want 2", len(sections))
	}
	// Insertion order.
	if sections[0].CRN != "30001" || sections[1].CRN != "30002" {
		t.Errorf("order = %s, %s; want 30001, 30002", sections[0].CRN, sections[1].CRN)
	}
}

func TestSectionByCRN(t *testing.T) {
	store := newTestStore(t)
	seats, enrolled := 30, 12
	seed(t, store, domain.Section{
		Term: "2026W", CRN: "30123", Subject: "CS", Course: "2C",
		Title: "Intermediate Programming", Section: "CS-2C-01",
		Seats: &seats, Enrolled: &enrolled,
	})

	sec, err := store.SectionByCRN(context.Background(), "2026W", "30123")
	if err != nil {
		t.Fatalf("SectionByCRN failed: %v", err)
	}
	if sec.Seats == nil || *sec.Seats != 30 || sec.Enrolled == nil || *sec.Enrolled != 12 {
		t.Errorf("seat counts = %v/%v, want 12/30", sec.Enrolled, sec.Seats)
	}

	_, err = store.SectionByCRN(context.Background(), "2026W", "99999")
	if !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("missing CRN error = %v, want ErrNotFound", err)
	}
}

func TestSearchSections_RelevanceOrdering(t *testing.T) {
	store := newTestStore(t)
	seed(t, store,
		domain.Section{Term: "2026W", CRN: "30001", Subject: "CS", Course: "2C",
			Title: "Intermediate Programming", Section: "CS-2C-01"},
		domain.Section{Term: "2026W", CRN: "40001", Subject: "MATH", Course: "2B",
			Title: "CS Topics For Mathematicians", Section: "MATH-2B-01"},
		domain.Section{Term: "2026W", CRN: "50001", Subject: "HIST", Course: "17A",
			Title: "US History", Section: "HIST-17A-01"},
	)

	hits, err := store.SearchSections(context.Background(), domain.SectionQuery{
		Term: "2026W", Query: "CS", Limit: 10,
	})
	if err != nil {
		t.Fatalf("SearchSections failed: %v", err)
	}
	if len(hits) != 2 {
		t.Fatalf("got %d hits, want 2 (HIST should not match)", len(hits))
	}
	if hits[0].Subject != "CS" {
		t.Errorf("top hit = %s, want the exact subject match", hits[0].Subject)
	}
	if hits[0].Score <= hits[1].Score {
		t.Errorf("scores not descending: %d then %d", hits[0].Score, hits[1].Score)
	}
}

func TestSearchSections_Filters(t *testing.T) {
	store := newTestStore(t)
	seed(t, store,
		domain.Section{Term: "2026W", CRN: "30001", Subject: "CS", Course: "2C",
			Title: "A", Section: "01", Instructor: "DOE, JANE", DaysTime: "TTh 10:00 AM-11:15 AM"},
		domain.Section{Term: "2026W", CRN: "30002", Subject: "CS", Course: "2C",
			Title: "B", Section: "02", Instructor: "SMITH, ALEX", DaysTime: "MWF 09:00 AM-09:50 AM"},
	)

	hits, err := store.SearchSections(context.Background(), domain.SectionQuery{
		Term: "2026W", Subject: "CS", DaysTime: "TTh", Limit: 10,
	})
	if err != nil {
		t.Fatalf("SearchSections failed: %v", err)
	}
	if len(hits) != 1 || hits[0].CRN != "30001" {
		t.Fatalf("hits = %v, want only the TTh section", hits)
	}
}

func TestSearchSections_LimitClamped(t *testing.T) {
	store := newTestStore(t)
	seed(t, store,
		domain.Section{Term: "2026W", CRN: "30001", Subject: "CS", Course: "2C", Title: "A", Section: "01"},
		domain.Section{Term: "2026W", CRN: "30002", Subject: "CS", Course: "2C", Title: "B", Section: "02"},
	)

	hits, err := store.SearchSections(context.Background(), domain.SectionQuery{Term: "2026W", Limit: -5})
	if err != nil {
		t.Fatalf("SearchSections failed: %v", err)
	}
	if len(hits) != 1 {
		t.Errorf("got %d hits with negative limit, want the clamped 1", len(hits))
	}
}
