package ratings

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
)

func fakeProvider(t *testing.T, hits *int64, nodes []map[string]any) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt64(hits, 1)

		var req struct {
			Variables map[string]string `json:"variables"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("provider got undecodable body: %v", err)
		}
		if req.Variables["schoolID"] == "" {
			t.Error("provider request is missing schoolID")
		}

		edges := make([]map[string]any, len(nodes))
		for i, n := range nodes {
			edges[i] = map[string]any{"node": n}
		}
		json.NewEncoder(w).Encode(map[string]any{
			"data": map[string]any{
				"newSearch": map[string]any{
					"teachers": map[string]any{"edges": edges},
				},
			},
		})
	}))
}

func TestNormalizeInstructor(t *testing.T) {
	tests := []struct{ in, want string }{
		{"DOE, JANE", "JANE DOE"},
		{"Doe, Jane", "Jane Doe"},
		{"Jane Doe", "Jane Doe"},
		{"", ""},
		{",", ","},
	}
	for _, tc := range tests {
		if got := NormalizeInstructor(tc.in); got != tc.want {
			t.Errorf("NormalizeInstructor(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestLookup_PicksMostRatedTeacher(t *testing.T) {
	var hits int64
	srv := fakeProvider(t, &hits, []map[string]any{
		{"firstName": "Jane", "lastName": "Doe", "avgRating": 4.9, "numRatings": 1, "legacyId": 111},
		{"firstName": "Jane", "lastName": "Doe", "avgRating": 4.2, "numRatings": 250, "legacyId": 222},
	})
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL, SchoolID: "school-1"})
	got := c.Lookup(context.Background(), "DOE, JANE")
	if got == nil {
		t.Fatal("Lookup returned nil")
	}
	if got.NumRatings != 250 {
		t.Errorf("picked teacher with %d ratings, want the one with 250", got.NumRatings)
	}
	if got.ProfileURL != "https://www.ratemyprofessors.com/professor/222" {
		t.Errorf("profile URL = %q", got.ProfileURL)
	}
}

func TestLookup_CachesPerName(t *testing.T) {
	var hits int64
	srv := fakeProvider(t, &hits, []map[string]any{
		{"firstName": "Jane", "lastName": "Doe", "avgRating": 4.0, "numRatings": 10},
	})
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL, SchoolID: "school-1"})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if got := c.Lookup(ctx, "DOE, JANE"); got == nil {
			t.Fatal("Lookup returned nil")
		}
	}
	if n := atomic.LoadInt64(&hits); n != 1 {
		t.Errorf("provider was hit %d times, want 1 (cached)", n)
	}
}

func TestSearch_ClampsLimit(t *testing.T) {
	nodes := make([]map[string]any, 30)
	for i := range nodes {
		nodes[i] = map[string]any{"firstName": "T", "lastName": "N", "avgRating": 3.0, "numRatings": i}
	}
	var hits int64
	srv := fakeProvider(t, &hits, nodes)
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL, SchoolID: "school-1"})
	teachers, err := c.Search(context.Background(), "T N", 100)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if len(teachers) != 20 {
		t.Errorf("got %d teachers, want the 20 cap", len(teachers))
	}
}

func TestDisabledClient(t *testing.T) {
	c := NewClient(Config{})
	if c.Enabled() {
		t.Error("client without a school ID should be disabled")
	}
	if got := c.Lookup(context.Background(), "DOE, JANE"); got != nil {
		t.Errorf("disabled Lookup = %+v, want nil", got)
	}
	if _, err := c.Search(context.Background(), "DOE, JANE", 5); err == nil {
		t.Error("disabled Search should fail")
	}
	if m := c.RatingsFor(context.Background(), []string{"DOE, JANE"}); len(m) != 0 {
		t.Errorf("disabled RatingsFor = %v, want empty", m)
	}
}

func TestRatingsFor_SkipsFailures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(Config{BaseURL: srv.URL, SchoolID: "school-1"})
	m := c.RatingsFor(context.Background(), []string{"DOE, JANE", ""})
	if len(m) != 0 {
		t.Errorf("RatingsFor with failing provider = %v, want empty map", m)
	}
}
