package mcptools

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/opolyo01/etl-classes/internal/domain"
	"github.com/opolyo01/etl-classes/internal/ical"
	"github.com/opolyo01/etl-classes/internal/repository"
)

// ExportTool renders chosen sections as an iCalendar feed.
type ExportTool struct {
	store repository.SectionStore
}

func NewExportTool(store repository.SectionStore) *ExportTool {
	return &ExportTool{store: store}
}

func (t *ExportTool) Definition() mcp.Tool {
	return mcp.NewTool("export_schedule",
		mcp.WithDescription("Turn a set of chosen sections into iCalendar text with one weekly recurring event per meeting pattern. Paste the output into a .ics file to import it into a calendar app."),
		mcp.WithString("term", mcp.Required(), mcp.Description("Term identifier, e.g. 2026W")),
		mcp.WithArray("crns", mcp.Required(),
			mcp.Description("CRNs of the chosen sections"),
			mcp.Items(map[string]any{"type": "string"}),
		),
		mcp.WithString("start_date", mcp.Description("First day of the term as YYYY-MM-DD (defaults to today)")),
	)
}

func (t *ExportTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	term := req.GetString("term", "")
	if term == "" {
		return mcp.NewToolResultError("term is required"), nil
	}
	crns := req.GetStringSlice("crns", nil)
	if len(crns) == 0 {
		return mcp.NewToolResultError("at least one crn is required"), nil
	}

	anchor := time.Now()
	if s := req.GetString("start_date", ""); s != "" {
		parsed, err := time.Parse("2006-01-02", s)
		if err != nil {
			return mcp.NewToolResultError("start_date must be YYYY-MM-DD"), nil
		}
		anchor = parsed
	}

	var sections []domain.Section
	for _, crn := range crns {
		sec, err := t.store.SectionByCRN(ctx, term, crn)
		if errors.Is(err, repository.ErrNotFound) {
			return mcp.NewToolResultError(fmt.Sprintf("section %s not found in term %s", crn, term)), nil
		}
		if err != nil {
			return mcp.NewToolResultError("failed to fetch section: " + err.Error()), nil
		}
		sections = append(sections, *sec)
	}

	cal := ical.Build(sections, anchor)
	return mcp.NewToolResultText(cal.Serialize()), nil
}
