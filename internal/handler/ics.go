package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/opolyo01/etl-classes/internal/domain"
	"github.com/opolyo01/etl-classes/internal/ical"
	"github.com/opolyo01/etl-classes/internal/repository"
)

type ExportRequest struct {
	Term string   `json:"term" validate:"required"`
	CRNs []string `json:"crns" validate:"required,min=1,dive,required"`
	// StartDate anchors the recurring events (YYYY-MM-DD, usually the
	// first day of the term). Defaults to today.
	StartDate string `json:"start_date"`
}

// ExportSchedule godoc
// @Summary Export a schedule as iCalendar
// @Description Turn a set of chosen sections into an .ics feed with one weekly recurring event per meeting pattern. Asynchronous sections are skipped.
// @Tags schedules
// @Accept json
// @Produce text/calendar
// @Param request body handler.ExportRequest true "Term, chosen CRNs, optional term start date"
// @Success 200 {string} string "iCalendar payload"
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /schedules/export [post]
func ExportSchedule(store repository.SectionStore) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req ExportRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
		}
		if err := c.Validate(&req); err != nil {
			return err
		}

		anchor := time.Now()
		if req.StartDate != "" {
			parsed, err := time.Parse("2006-01-02", req.StartDate)
			if err != nil {
				return c.JSON(http.StatusBadRequest, map[string]string{"error": "start_date must be YYYY-MM-DD"})
			}
			anchor = parsed
		}

		var sections []domain.Section
		for _, crn := range req.CRNs {
			sec, err := store.SectionByCRN(c.Request().Context(), req.Term, crn)
			if err == repository.ErrNotFound {
				return c.JSON(http.StatusNotFound, map[string]string{"error": fmt.Sprintf("section %s not found in term %s", crn, req.Term)})
			}
			if err != nil {
				return c.JSON(http.StatusInternalServerError, map[string]string{"error": "failed to fetch section"})
			}
			sections = append(sections, *sec)
		}

		cal := ical.Build(sections, anchor)
		return c.Blob(http.StatusOK, "text/calendar", []byte(cal.Serialize()))
	}
}
