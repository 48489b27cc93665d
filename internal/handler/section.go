package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/opolyo01/etl-classes/internal/domain"
	"github.com/opolyo01/etl-classes/internal/ratings"
	"github.com/opolyo01/etl-classes/internal/repository"
)

func SetupSectionRoutes(e *echo.Echo, store repository.SectionStore, rc *ratings.Client) {
	e.GET("/api/sections", SearchSections(store, rc))
	e.GET("/api/sections/:crn", GetSectionByCRN(store))
	e.GET("/api/instructors/ratings", LookupInstructorRatings(rc))
}

// SectionResult is a search hit, optionally enriched with the
// instructor's rating profile.
type SectionResult struct {
	domain.ScoredSection
	Rating *ratings.Teacher `json:"rating,omitempty"`
}

// SearchSections godoc
// @Summary Search sections
// @Description Filtered, relevance-ranked search over stored sections. Subject and course match exactly; title, instructor, days_time, room and modality are substring filters; query is free text scored across all columns.
// @Tags sections
// @Accept json
// @Produce json
// @Param term query string false "Term identifier (e.g. 2026W)"
// @Param query query string false "Free-text query scored across columns"
// @Param subject query string false "Exact subject code (e.g. CS)"
// @Param course query string false "Exact course number (e.g. 2C)"
// @Param title query string false "Substring match on title"
// @Param instructor query string false "Substring match on instructor"
// @Param days_time query string false "Substring match on days/time (e.g. TTh)"
// @Param room query string false "Substring match on room (e.g. Online)"
// @Param modality query string false "Substring match on modality"
// @Param limit query int false "Max rows (1..100, default 10)"
// @Param include_ratings query bool false "Attach instructor ratings"
// @Success 200 {array} handler.SectionResult
// @Failure 500 {object} map[string]string
// @Router /sections [get]
func SearchSections(store repository.SectionStore, rc *ratings.Client) echo.HandlerFunc {
	return func(c echo.Context) error {
		limit, _ := strconv.Atoi(c.QueryParam("limit"))
		if limit == 0 {
			limit = 10
		}

		q := domain.SectionQuery{
			Term:       c.QueryParam("term"),
			Query:      c.QueryParam("query"),
			Subject:    c.QueryParam("subject"),
			Course:     c.QueryParam("course"),
			Title:      c.QueryParam("title"),
			Instructor: c.QueryParam("instructor"),
			DaysTime:   c.QueryParam("days_time"),
			Room:       c.QueryParam("room"),
			Modality:   c.QueryParam("modality"),
			Limit:      limit,
		}

		hits, err := store.SearchSections(c.Request().Context(), q)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to search sections"})
		}

		includeRatings, _ := strconv.ParseBool(c.QueryParam("include_ratings"))
		results := make([]SectionResult, len(hits))
		for i, hit := range hits {
			results[i] = SectionResult{ScoredSection: hit}
			if includeRatings && rc.Enabled() {
				results[i].Rating = rc.Lookup(c.Request().Context(), hit.Instructor)
			}
		}

		return c.JSON(http.StatusOK, results)
	}
}

// GetSectionByCRN godoc
// @Summary Get section by CRN
// @Description Look up one section by its Course Reference Number within a term
// @Tags sections
// @Accept json
// @Produce json
// @Param crn path string true "Course Reference Number"
// @Param term query string true "Term identifier"
// @Success 200 {object} domain.Section
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /sections/{crn} [get]
func GetSectionByCRN(store repository.SectionStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		term := c.QueryParam("term")
		if term == "" {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "term is required"})
		}

		sec, err := store.SectionByCRN(c.Request().Context(), term, c.Param("crn"))
		if err == repository.ErrNotFound {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "section not found"})
		}
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to fetch section"})
		}

		return c.JSON(http.StatusOK, sec)
	}
}

// LookupInstructorRatings godoc
// @Summary Lookup instructor ratings
// @Description Search the configured ratings provider for an instructor by name ("Last, First" or "First Last")
// @Tags instructors
// @Accept json
// @Produce json
// @Param name query string true "Instructor name"
// @Param limit query int false "Max matches (1..20, default 5)"
// @Success 200 {array} ratings.Teacher
// @Failure 400 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /instructors/ratings [get]
func LookupInstructorRatings(rc *ratings.Client) echo.HandlerFunc {
	return func(c echo.Context) error {
		name := c.QueryParam("name")
		if name == "" {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "name is required"})
		}
		if !rc.Enabled() {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "ratings provider is not configured"})
		}

		limit, _ := strconv.Atoi(c.QueryParam("limit"))
		if limit == 0 {
			limit = 5
		}

		teachers, err := rc.Search(c.Request().Context(), name, limit)
		if err != nil {
			return c.JSON(http.StatusServiceUnavailable, map[string]string{"error": "ratings provider is unavailable"})
		}

		return c.JSON(http.StatusOK, teachers)
	}
}
