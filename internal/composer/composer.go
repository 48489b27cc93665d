// Package composer searches the space of one-section-per-course
// selections for conflict-free schedules and ranks the survivors
// against the student's preferences.
package composer

import (
	"container/heap"
	"fmt"
	"sort"

	"github.com/opolyo01/etl-classes/internal/domain"
)

// Options bounds one composition call.
type Options struct {
	// TopK is the number of ranked schedules to keep. Must be positive.
	TopK int
	// MaxNodes caps the number of candidate sections visited during
	// the search; 0 means unlimited. When the cap trips, the best
	// schedules found so far are returned with Partial set.
	MaxNodes int
}

// Result is the outcome of a composition call. Zero schedules with a
// nil error means the pools were all non-empty but every combination
// conflicted, which is a valid, reportable outcome.
type Result struct {
	Schedules []domain.RankedSchedule `json:"schedules"`
	Partial   bool                    `json:"partial"`
	Visited   int                     `json:"visited"`
}

// candidate is a pool entry with its meeting times parsed up front, so
// the conflict check inside the search loop never touches raw strings.
type candidate struct {
	section  *domain.Section
	meetings []domain.MeetingTime
}

func (c *candidate) conflictsWith(o *candidate) bool {
	for _, m := range c.meetings {
		for _, om := range o.meetings {
			if m.ConflictsWith(om) {
				return true
			}
		}
	}
	return false
}

// Compose enumerates conflict-free selections of one section per
// request via backtracking, pruning any branch whose newest pick
// conflicts with a section already chosen, and returns the top-K
// schedules by preference score. pools must be parallel to requests.
// Ties in score break on the ascending join of chosen CRNs, so equal
// inputs always produce identical output.
func Compose(requests []domain.CourseRequest, pools [][]domain.Section, prefs domain.Preferences, ratings map[string]float64, opts Options) (*Result, error) {
	if opts.TopK <= 0 {
		return nil, &domain.InvalidArgumentError{Argument: "top_k", Reason: "must be positive"}
	}
	if len(requests) == 0 {
		return nil, &domain.InvalidArgumentError{Argument: "requests", Reason: "at least one course is required"}
	}
	if len(pools) != len(requests) {
		return nil, &domain.InvalidArgumentError{Argument: "pools", Reason: "one pool per request is required"}
	}
	if err := validateWeights(prefs.Weights); err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(requests))
	for _, req := range requests {
		key := req.Key()
		if seen[key] {
			return nil, &domain.InvalidArgumentError{
				Argument: "requests",
				Reason:   fmt.Sprintf("duplicate course %s", key),
			}
		}
		seen[key] = true
	}

	for i, pool := range pools {
		if len(pool) == 0 {
			return nil, &domain.InfeasibleError{Subject: requests[i].Subject, Course: requests[i].Course}
		}
	}

	cands := make([][]*candidate, len(pools))
	for i, pool := range pools {
		cands[i] = make([]*candidate, len(pool))
		for j := range pool {
			cands[i][j] = &candidate{
				section:  &pool[j],
				meetings: domain.ParseSchedule(pool[j].DaysTime),
			}
		}
	}

	// Assign smallest pools first so conflicting branches die early.
	// The permutation is undone when results are assembled, so callers
	// always see sections in request order.
	order := make([]int, len(requests))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return len(cands[order[a]]) < len(cands[order[b]])
	})

	s := &search{
		requests: requests,
		cands:    cands,
		order:    order,
		prefs:    prefs,
		ratings:  ratings,
		opts:     opts,
		chosen:   make([]*candidate, 0, len(requests)),
		best:     &scheduleHeap{},
	}
	heap.Init(s.best)
	s.descend(0)

	return &Result{
		Schedules: s.ranked(),
		Partial:   s.exhausted,
		Visited:   s.visited,
	}, nil
}

func validateWeights(w domain.Weights) error {
	if w.Modality < 0 || w.Time < 0 || w.Rating < 0 {
		return &domain.InvalidArgumentError{Argument: "weights", Reason: "weights must be non-negative"}
	}
	return nil
}

type search struct {
	requests []domain.CourseRequest
	cands    [][]*candidate
	order    []int
	prefs    domain.Preferences
	ratings  map[string]float64
	opts     Options

	chosen    []*candidate
	visited   int
	exhausted bool
	best      *scheduleHeap
}

// descend assigns a section to the depth-th course (in search order),
// recursing when the pick is conflict-free and backtracking otherwise.
func (s *search) descend(depth int) {
	if depth == len(s.order) {
		s.record()
		return
	}

	for _, cand := range s.cands[s.order[depth]] {
		if s.exhausted {
			return
		}
		s.visited++
		if s.opts.MaxNodes > 0 && s.visited > s.opts.MaxNodes {
			s.exhausted = true
			return
		}

		conflict := false
		for _, prev := range s.chosen {
			if cand.conflictsWith(prev) {
				conflict = true
				break
			}
		}
		if conflict {
			continue
		}

		s.chosen = append(s.chosen, cand)
		s.descend(depth + 1)
		s.chosen = s.chosen[:len(s.chosen)-1]
	}
}

// record scores the completed selection and offers it to the bounded
// best-K heap.
func (s *search) record() {
	// Undo the smallest-pool-first permutation.
	byRequest := make([]*candidate, len(s.requests))
	for pos, reqIdx := range s.order {
		byRequest[reqIdx] = s.chosen[pos]
	}

	total, breakdown := Score(byRequest, s.prefs, s.ratings)

	sections := make([]domain.ChosenSection, len(s.requests))
	for i, cand := range byRequest {
		sections[i] = domain.ChosenSection{
			Request: s.requests[i],
			Section: *cand.section,
		}
	}
	sched := domain.RankedSchedule{
		Score:     total,
		Breakdown: breakdown,
		Sections:  sections,
	}

	entry := scheduleEntry{schedule: sched, score: total, key: sched.CRNKey()}
	if s.best.Len() < s.opts.TopK {
		heap.Push(s.best, entry)
		return
	}
	if worst := (*s.best)[0]; entry.beats(worst) {
		(*s.best)[0] = entry
		heap.Fix(s.best, 0)
	}
}

// ranked drains the heap into descending-score order and stamps ranks.
func (s *search) ranked() []domain.RankedSchedule {
	out := make([]domain.RankedSchedule, s.best.Len())
	for i := len(out) - 1; i >= 0; i-- {
		entry := heap.Pop(s.best).(scheduleEntry)
		out[i] = entry.schedule
	}
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}

type scheduleEntry struct {
	schedule domain.RankedSchedule
	score    float64
	key      string
}

// beats reports whether e outranks o: higher score wins, then the
// lexicographically smaller CRN key.
func (e scheduleEntry) beats(o scheduleEntry) bool {
	if e.score != o.score {
		return e.score > o.score
	}
	return e.key < o.key
}

// scheduleHeap is a bounded min-heap: the root is the weakest schedule
// kept so far, ready to be evicted.
type scheduleHeap []scheduleEntry

func (h scheduleHeap) Len() int            { return len(h) }
func (h scheduleHeap) Less(i, j int) bool  { return h[j].beats(h[i]) }
func (h scheduleHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *scheduleHeap) Push(x any)         { *h = append(*h, x.(scheduleEntry)) }
func (h *scheduleHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}
