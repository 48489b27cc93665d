// Package ratings looks up instructor quality ratings from the
// unofficial RateMyProfessors GraphQL API. The lookup is best-effort
// by contract: an unconfigured provider, a network failure, or an
// unmatched name all come back as "no data", never as a failure the
// schedule composer has to handle.
package ratings

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"
)

const teacherSearchQuery = `
query TeacherSearch($query: String!, $schoolID: ID!) {
  newSearch {
    teachers(query: $query, schoolID: $schoolID) {
      edges {
        node {
          id
          firstName
          lastName
          department
          avgRating
          numRatings
          wouldTakeAgainPercent
          avgDifficulty
          legacyId
        }
      }
    }
  }
}`

// Teacher is one rated instructor profile.
type Teacher struct {
	Name           string  `json:"name"`
	Department     string  `json:"department"`
	AvgRating      float64 `json:"avg_rating"`
	NumRatings     int     `json:"num_ratings"`
	WouldTakeAgain float64 `json:"would_take_again"`
	Difficulty     float64 `json:"difficulty"`
	ProfileURL     string  `json:"profile_url,omitempty"`
}

// Config configures the ratings provider. An empty SchoolID disables
// lookups entirely.
type Config struct {
	BaseURL  string
	SchoolID string
	Timeout  time.Duration
	CacheTTL time.Duration
}

type cacheEntry struct {
	teachers []Teacher
	expires  time.Time
}

// Client queries the provider and memoizes results per instructor name
// with a TTL, so a composition over many sections by the same
// instructor costs one upstream call.
type Client struct {
	cfg  Config
	http *http.Client

	mu    sync.Mutex
	cache map[string]cacheEntry
}

func NewClient(cfg Config) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 8 * time.Second
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = 15 * time.Minute
	}
	return &Client{
		cfg:   cfg,
		http:  &http.Client{Timeout: cfg.Timeout},
		cache: make(map[string]cacheEntry),
	}
}

// Enabled reports whether the provider is configured.
func (c *Client) Enabled() bool {
	return c.cfg.SchoolID != ""
}

// NormalizeInstructor converts the catalog's "LAST, FIRST" convention
// into the "First Last" form the provider searches by. Names without a
// comma pass through unchanged.
func NormalizeInstructor(name string) string {
	last, first, found := strings.Cut(name, ",")
	if !found {
		return name
	}
	last = strings.TrimSpace(last)
	first = strings.TrimSpace(first)
	if last == "" || first == "" {
		return name
	}
	return first + " " + last
}

// Search returns the provider's matches for an instructor name, most
// relevant first, capped at limit (1..20).
func (c *Client) Search(ctx context.Context, instructor string, limit int) ([]Teacher, error) {
	if !c.Enabled() {
		return nil, fmt.Errorf("ratings provider is not configured")
	}
	if limit < 1 {
		limit = 1
	}
	if limit > 20 {
		limit = 20
	}

	teachers, err := c.fetch(ctx, NormalizeInstructor(instructor))
	if err != nil {
		return nil, err
	}
	if len(teachers) > limit {
		teachers = teachers[:limit]
	}
	return teachers, nil
}

// Lookup returns the best-rated match for one instructor, or nil when
// the provider is unconfigured, unreachable, or has no match. The
// best match is the one with the most ratings, then the highest
// average: a teacher rated 4.9 once loses to one rated 4.2 hundreds
// of times.
func (c *Client) Lookup(ctx context.Context, instructor string) *Teacher {
	if !c.Enabled() || instructor == "" {
		return nil
	}
	teachers, err := c.fetch(ctx, NormalizeInstructor(instructor))
	if err != nil || len(teachers) == 0 {
		return nil
	}

	best := teachers[0]
	for _, t := range teachers[1:] {
		if t.NumRatings > best.NumRatings ||
			(t.NumRatings == best.NumRatings && t.AvgRating > best.AvgRating) {
			best = t
		}
	}
	return &best
}

// RatingsFor builds the instructor→rating map the preference scorer
// consumes, covering every distinct instructor in the given names.
// Failures leave names absent, which the scorer treats as neutral.
func (c *Client) RatingsFor(ctx context.Context, names []string) map[string]float64 {
	out := make(map[string]float64)
	if !c.Enabled() {
		return out
	}
	for _, name := range names {
		if name == "" {
			continue
		}
		if _, done := out[name]; done {
			continue
		}
		if t := c.Lookup(ctx, name); t != nil {
			out[name] = t.AvgRating
		}
	}
	return out
}

type gqlResponse struct {
	Data struct {
		NewSearch struct {
			Teachers struct {
				Edges []struct {
					Node struct {
						FirstName             string  `json:"firstName"`
						LastName              string  `json:"lastName"`
						Department            string  `json:"department"`
						AvgRating             float64 `json:"avgRating"`
						NumRatings            int     `json:"numRatings"`
						WouldTakeAgainPercent float64 `json:"wouldTakeAgainPercent"`
						AvgDifficulty         float64 `json:"avgDifficulty"`
						LegacyID              int64   `json:"legacyId"`
					} `json:"node"`
				} `json:"edges"`
			} `json:"teachers"`
		} `json:"newSearch"`
	} `json:"data"`
}

func (c *Client) fetch(ctx context.Context, query string) ([]Teacher, error) {
	c.mu.Lock()
	if entry, ok := c.cache[query]; ok && time.Now().Before(entry.expires) {
		c.mu.Unlock()
		return entry.teachers, nil
	}
	c.mu.Unlock()

	body, err := json.Marshal(map[string]any{
		"query": teacherSearchQuery,
		"variables": map[string]string{
			"query":    query,
			"schoolID": c.cfg.SchoolID,
		},
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("ratings provider returned status %d", resp.StatusCode)
	}

	var decoded gqlResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, err
	}

	edges := decoded.Data.NewSearch.Teachers.Edges
	teachers := make([]Teacher, 0, len(edges))
	for _, e := range edges {
		n := e.Node
		t := Teacher{
			Name:           strings.TrimSpace(n.FirstName + " " + n.LastName),
			Department:     n.Department,
			AvgRating:      n.AvgRating,
			NumRatings:     n.NumRatings,
			WouldTakeAgain: n.WouldTakeAgainPercent,
			Difficulty:     n.AvgDifficulty,
		}
		if n.LegacyID != 0 {
			t.ProfileURL = fmt.Sprintf("https://www.ratemyprofessors.com/professor/%d", n.LegacyID)
		}
		teachers = append(teachers, t)
	}

	c.mu.Lock()
	c.cache[query] = cacheEntry{teachers: teachers, expires: time.Now().Add(c.cfg.CacheTTL)}
	c.mu.Unlock()

	return teachers, nil
}
