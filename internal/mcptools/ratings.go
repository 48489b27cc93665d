package mcptools

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/opolyo01/etl-classes/internal/ratings"
)

// RatingsTool looks up instructor ratings from the configured provider.
type RatingsTool struct {
	rc *ratings.Client
}

func NewRatingsTool(rc *ratings.Client) *RatingsTool {
	return &RatingsTool{rc: rc}
}

func (t *RatingsTool) Definition() mcp.Tool {
	return mcp.NewTool("lookup_professor_ratings",
		mcp.WithDescription("Search the ratings provider for an instructor by name. Accepts the catalog's \"Last, First\" form or plain \"First Last\". Returns matches with average rating, rating count, difficulty and profile URL."),
		mcp.WithString("name", mcp.Required(), mcp.Description("Instructor name")),
		mcp.WithNumber("limit", mcp.Description("Max matches, clamped to 1..20 (default 5)")),
	)
}

func (t *RatingsTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := req.GetString("name", "")
	if name == "" {
		return mcp.NewToolResultError("name is required"), nil
	}
	if !t.rc.Enabled() {
		return mcp.NewToolResultError("ratings provider is not configured"), nil
	}

	teachers, err := t.rc.Search(ctx, name, req.GetInt("limit", 5))
	if err != nil {
		return mcp.NewToolResultError("ratings provider is unavailable: " + err.Error()), nil
	}

	return jsonResult(teachers)
}
