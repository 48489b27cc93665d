package mcptools

import (
	"context"
	"errors"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/opolyo01/etl-classes/internal/composer"
	"github.com/opolyo01/etl-classes/internal/domain"
	"github.com/opolyo01/etl-classes/internal/ratings"
	"github.com/opolyo01/etl-classes/internal/repository"
)

const (
	defaultTopK     = 5
	defaultMaxNodes = 200000
)

// ComposeTool builds conflict-free schedules from a list of courses.
type ComposeTool struct {
	store repository.SectionStore
	rc    *ratings.Client
}

func NewComposeTool(store repository.SectionStore, rc *ratings.Client) *ComposeTool {
	return &ComposeTool{store: store, rc: rc}
}

func (t *ComposeTool) Definition() mcp.Tool {
	return mcp.NewTool("compose_schedules",
		mcp.WithDescription("Pick one section per requested course such that no two meetings overlap, score each complete schedule against the stated preferences, and return the top-K ranked schedules. Zero schedules means every combination conflicted."),
		mcp.WithString("term", mcp.Required(), mcp.Description("Term identifier, e.g. 2026W")),
		mcp.WithArray("courses", mcp.Required(),
			mcp.Description("Course labels, one per wanted course, e.g. [\"CS 2C\", \"MATH 2B\"]"),
			mcp.Items(map[string]any{"type": "string"}),
		),
		mcp.WithObject("preferences",
			mcp.Description("Scoring preferences: modality (any|in-person|online|hybrid), windows ([{start,end} minutes from midnight]), min_rating (0..5), weights ({modality,time,rating}, non-negative)"),
			mcp.Properties(map[string]any{
				"modality":   map[string]any{"type": "string"},
				"windows":    map[string]any{"type": "array"},
				"min_rating": map[string]any{"type": "number"},
				"weights":    map[string]any{"type": "object"},
			}),
		),
		mcp.WithNumber("top_k", mcp.Description("Number of ranked schedules to return (default 5)")),
		mcp.WithBoolean("open_only", mcp.Description("Only consider sections with open seats")),
		mcp.WithNumber("max_nodes", mcp.Description("Search budget in visited candidates; when tripped the best schedules so far come back flagged partial")),
	)
}

type composeArgs struct {
	Term        string             `json:"term"`
	Courses     []string           `json:"courses"`
	Preferences domain.Preferences `json:"preferences"`
	TopK        int                `json:"top_k"`
	OpenOnly    bool               `json:"open_only"`
	MaxNodes    int                `json:"max_nodes"`
}

func (t *ComposeTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var args composeArgs
	if err := req.BindArguments(&args); err != nil {
		return mcp.NewToolResultError("invalid arguments: " + err.Error()), nil
	}
	if args.Term == "" {
		return mcp.NewToolResultError("term is required"), nil
	}
	if len(args.Courses) == 0 {
		return mcp.NewToolResultError("at least one course is required"), nil
	}

	requests := make([]domain.CourseRequest, len(args.Courses))
	for i, label := range args.Courses {
		parsed, err := domain.ParseCourseRequest(label)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		requests[i] = parsed
	}

	pools, err := composer.ResolvePools(ctx, t.store, args.Term, requests, composer.PoolOptions{OpenOnly: args.OpenOnly})
	if err != nil {
		var notFound *domain.NotFoundError
		if errors.As(err, &notFound) {
			return mcp.NewToolResultError(notFound.Error()), nil
		}
		return mcp.NewToolResultError("failed to resolve course sections: " + err.Error()), nil
	}

	prefs := args.Preferences
	if prefs.Weights.IsZero() {
		prefs.Weights = domain.DefaultWeights()
	}

	var ratingMap map[string]float64
	if prefs.Weights.Rating > 0 && t.rc.Enabled() {
		ratingMap = t.rc.RatingsFor(ctx, instructorNames(pools))
	}

	opts := composer.Options{TopK: args.TopK, MaxNodes: args.MaxNodes}
	if opts.TopK == 0 {
		opts.TopK = defaultTopK
	}
	if opts.MaxNodes == 0 {
		opts.MaxNodes = defaultMaxNodes
	}

	result, err := composer.Compose(requests, pools, prefs, ratingMap, opts)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return jsonResult(result)
}

func instructorNames(pools [][]domain.Section) []string {
	seen := make(map[string]bool)
	var names []string
	for _, pool := range pools {
		for _, sec := range pool {
			if sec.Instructor != "" && !seen[sec.Instructor] {
				seen[sec.Instructor] = true
				names = append(names, sec.Instructor)
			}
		}
	}
	return names
}
