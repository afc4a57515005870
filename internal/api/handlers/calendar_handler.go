package handlers

import (
	"time"

	"cloud.google.com/go/civil"
	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/contentplanner/internal/calendar"
	"github.com/maheshrc27/contentplanner/internal/models"
	"github.com/maheshrc27/contentplanner/internal/service"
	"github.com/maheshrc27/contentplanner/internal/transfer"
)

type CalendarHandler struct {
	s        service.CalendarService
	settings service.SettingsService
}

func NewCalendarHandler(service service.CalendarService, settings service.SettingsService) *CalendarHandler {
	return &CalendarHandler{s: service, settings: settings}
}

// Month serves the month grid. Without week_start the user's saved
// preference applies; without month the current month is shown.
func (h *CalendarHandler) Month(c *fiber.Ctx) error {
	month := civil.DateOf(time.Now())
	month.Day = 1
	if q := c.Query("month"); q != "" {
		parsed, err := service.ParseMonth(q)
		if err != nil {
			return sendError(c, err)
		}
		month = parsed
	}

	weekStart, err := h.weekStart(c)
	if err != nil {
		return sendError(c, err)
	}

	criteria, err := parseCriteria(c)
	if err != nil {
		return sendError(c, err)
	}

	view, err := h.s.MonthView(c.Context(), month, weekStart, criteria)
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(view)
}

func (h *CalendarHandler) Day(c *fiber.Ctx) error {
	date, err := service.ParseDate("date", c.Query("date"))
	if err != nil {
		return sendError(c, err)
	}

	criteria, err := parseCriteria(c)
	if err != nil {
		return sendError(c, err)
	}

	agenda, err := h.s.DayAgenda(c.Context(), date, criteria)
	if err != nil {
		return sendError(c, err)
	}
	return c.JSON(agenda)
}

func (h *CalendarHandler) weekStart(c *fiber.Ctx) (time.Weekday, error) {
	if q := c.Query("week_start"); q != "" {
		w, err := models.ParseWeekday(q)
		if err != nil {
			return 0, &models.ValidationError{Field: "week_start", Message: "unknown weekday " + q}
		}
		return time.Weekday(w), nil
	}

	settings, err := h.settings.GetSettingsInfo(c.Context(), GetUserID(c))
	if err != nil {
		return 0, err
	}
	return time.Weekday(settings.WeekStartsOn), nil
}

func parseCriteria(c *fiber.Ctx) (calendar.Criteria, error) {
	var filter transfer.PostFilter
	if err := c.QueryParser(&filter); err != nil {
		return calendar.Criteria{}, &models.ValidationError{Message: "invalid filter"}
	}
	return service.ParseCriteria(filter)
}
