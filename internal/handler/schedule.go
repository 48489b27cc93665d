package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/opolyo01/etl-classes/internal/composer"
	"github.com/opolyo01/etl-classes/internal/domain"
	"github.com/opolyo01/etl-classes/internal/ratings"
	"github.com/opolyo01/etl-classes/internal/repository"
)

const (
	defaultTopK = 5
	// defaultMaxNodes bounds the backtracking search so a pathological
	// term can't pin a request; when tripped, the best schedules found
	// so far come back flagged partial.
	defaultMaxNodes = 200000
)

func SetupScheduleRoutes(e *echo.Echo, store repository.SectionStore, rc *ratings.Client) {
	e.POST("/api/schedules/compose", ComposeSchedules(store, rc))
	e.POST("/api/schedules/export", ExportSchedule(store))
}

type ComposeRequest struct {
	Term        string             `json:"term" validate:"required"`
	Courses     []string           `json:"courses" validate:"required,min=1,dive,required"`
	Preferences domain.Preferences `json:"preferences"`
	TopK        int                `json:"top_k" validate:"gte=0"`
	OpenOnly    bool               `json:"open_only"`
	MaxNodes    int                `json:"max_nodes" validate:"gte=0"`
}

// ComposeSchedules godoc
// @Summary Compose conflict-free schedules
// @Description Pick one section per requested course such that no two meetings overlap, score each complete schedule against the stated preferences, and return the top-K ranked schedules. Zero results with a 200 means every combination conflicted.
// @Tags schedules
// @Accept json
// @Produce json
// @Param request body handler.ComposeRequest true "Term, course labels (e.g. \"CS 2C\"), preferences"
// @Success 200 {object} composer.Result
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /schedules/compose [post]
func ComposeSchedules(store repository.SectionStore, rc *ratings.Client) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req ComposeRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
		}
		if err := c.Validate(&req); err != nil {
			return err
		}

		requests := make([]domain.CourseRequest, len(req.Courses))
		for i, label := range req.Courses {
			parsed, err := domain.ParseCourseRequest(label)
			if err != nil {
				return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
			}
			requests[i] = parsed
		}

		pools, err := composer.ResolvePools(c.Request().Context(), store, req.Term, requests, composer.PoolOptions{OpenOnly: req.OpenOnly})
		if err != nil {
			var notFound *domain.NotFoundError
			if errors.As(err, &notFound) {
				return c.JSON(http.StatusNotFound, map[string]string{"error": notFound.Error()})
			}
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to resolve course sections"})
		}

		prefs := req.Preferences
		if prefs.Weights.IsZero() {
			prefs.Weights = domain.DefaultWeights()
		}

		var ratingMap map[string]float64
		if prefs.Weights.Rating > 0 && rc.Enabled() {
			ratingMap = rc.RatingsFor(c.Request().Context(), instructorNames(pools))
		}

		opts := composer.Options{TopK: req.TopK, MaxNodes: req.MaxNodes}
		if opts.TopK == 0 {
			opts.TopK = defaultTopK
		}
		if opts.MaxNodes == 0 {
			opts.MaxNodes = defaultMaxNodes
		}

		result, err := composer.Compose(requests, pools, prefs, ratingMap, opts)
		if err != nil {
			var invalid *domain.InvalidArgumentError
			if errors.As(err, &invalid) {
				return c.JSON(http.StatusBadRequest, map[string]string{"error": invalid.Error()})
			}
			var infeasible *domain.InfeasibleError
			if errors.As(err, &infeasible) {
				return c.JSON(http.StatusUnprocessableEntity, map[string]string{"error": infeasible.Error()})
			}
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to compose schedules"})
		}

		return c.JSON(http.StatusOK, result)
	}
}

// instructorNames collects the distinct instructor names across all
// pools so the ratings map is fetched once per name, not per section.
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
