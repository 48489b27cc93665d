// Package mcptools exposes the catalog, the schedule composer and the
// ratings lookup as MCP tools, so an LLM client can drive them over
// stdio the same way the HTTP API does.
package mcptools

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/opolyo01/etl-classes/internal/domain"
	"github.com/opolyo01/etl-classes/internal/ratings"
	"github.com/opolyo01/etl-classes/internal/repository"
)

// SuggestTool is the filtered, relevance-ranked section search.
type SuggestTool struct {
	store repository.SectionStore
	rc    *ratings.Client
}

func NewSuggestTool(store repository.SectionStore, rc *ratings.Client) *SuggestTool {
	return &SuggestTool{store: store, rc: rc}
}

func (t *SuggestTool) Definition() mcp.Tool {
	return mcp.NewTool("suggest_classes",
		mcp.WithDescription("Search the section catalog. Subject and course match exactly; title, instructor, days_time, room and modality are substring filters; query is free text scored across all columns. Results come back sorted by relevance."),
		mcp.WithString("term", mcp.Description("Term identifier, e.g. 2026W")),
		mcp.WithString("query", mcp.Description("Free-text query scored across all columns")),
		mcp.WithString("subject", mcp.Description("Exact subject code, e.g. CS")),
		mcp.WithString("course", mcp.Description("Exact course number, e.g. 2C")),
		mcp.WithString("title", mcp.Description("Substring match on course title")),
		mcp.WithString("instructor", mcp.Description("Substring match on instructor name")),
		mcp.WithString("days_time", mcp.Description("Substring match on the days/time text, e.g. TTh")),
		mcp.WithString("room", mcp.Description("Substring match on room, e.g. Online")),
		mcp.WithString("modality", mcp.Description("Substring match on modality")),
		mcp.WithNumber("limit", mcp.Description("Max results, clamped to 1..100 (default 10)")),
		mcp.WithBoolean("include_ratings", mcp.Description("Attach the instructor's rating profile to each hit")),
	)
}

type suggestHit struct {
	domain.ScoredSection
	Rating *ratings.Teacher `json:"rating,omitempty"`
}

func (t *SuggestTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	q := domain.SectionQuery{
		Term:       req.GetString("term", ""),
		Query:      req.GetString("query", ""),
		Subject:    req.GetString("subject", ""),
		Course:     req.GetString("course", ""),
		Title:      req.GetString("title", ""),
		Instructor: req.GetString("instructor", ""),
		DaysTime:   req.GetString("days_time", ""),
		Room:       req.GetString("room", ""),
		Modality:   req.GetString("modality", ""),
		Limit:      req.GetInt("limit", 10),
	}

	hits, err := t.store.SearchSections(ctx, q)
	if err != nil {
		return mcp.NewToolResultError("search failed: " + err.Error()), nil
	}

	includeRatings := req.GetBool("include_ratings", false)
	results := make([]suggestHit, len(hits))
	for i, hit := range hits {
		results[i] = suggestHit{ScoredSection: hit}
		if includeRatings && t.rc.Enabled() {
			results[i].Rating = t.rc.Lookup(ctx, hit.Instructor)
		}
	}

	return jsonResult(results)
}

// jsonResult marshals a tool payload as indented JSON text.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	body, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return mcp.NewToolResultError("failed to encode result: " + err.Error()), nil
	}
	return mcp.NewToolResultText(string(body)), nil
}
