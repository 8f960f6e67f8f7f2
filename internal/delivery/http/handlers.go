package http

import (
	"bytes"
	"embed"
	"html/template"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/pawait/weatherview/internal/presenter"
	"github.com/pawait/weatherview/internal/service"
)

const (
	sessionCookie = "weatherview_session"
	viewKey       = "view"
)

//go:embed templates/index.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/index.html"))

// Handler contains all HTTP handlers
type Handler struct {
	sessions *service.Sessions
	searches *service.SearchLog
	opts     presenter.Options
}

// NewHandler creates a new handler
func NewHandler(sessions *service.Sessions, searches *service.SearchLog, opts presenter.Options) *Handler {
	return &Handler{
		sessions: sessions,
		searches: searches,
		opts:     opts,
	}
}

// Session attaches the caller's WeatherView, issuing a session cookie when needed
func (h *Handler) Session(c *fiber.Ctx) error {
	id := c.Cookies(sessionCookie)
	if _, err := uuid.Parse(id); err != nil {
		id = h.sessions.NewID()
		c.Cookie(&fiber.Cookie{
			Name:     sessionCookie,
			Value:    id,
			Path:     "/",
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
		})
	}
	c.Locals(viewKey, h.sessions.View(id))
	return c.Next()
}

func currentView(c *fiber.Ctx) *service.WeatherView {
	return c.Locals(viewKey).(*service.WeatherView)
}

// HealthCheck returns service health status
func (h *Handler) HealthCheck(c *fiber.Ctx) error {
	store := "ok"
	if err := h.searches.Health(c.Context()); err != nil {
		store = err.Error()
	}
	return c.JSON(fiber.Map{
		"status":    "ok",
		"service":   "weatherview",
		"version":   "1.0.0",
		"searchLog": store,
		"sessions":  h.sessions.Len(),
	})
}

// Index renders the page for the caller's view
func (h *Handler) Index(c *fiber.Ctx) error {
	page := presenter.Build(currentView(c).State(), h.opts)

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, page); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to render page")
	}
	c.Set(fiber.HeaderCacheControl, "no-store")
	c.Type("html", "utf-8")
	return c.Send(buf.Bytes())
}

// Search handles the search form
func (h *Handler) Search(c *fiber.Ctx) error {
	currentView(c).HandleSubmit(c.FormValue("city"))
	return c.Redirect("/", fiber.StatusSeeOther)
}

// ToggleUnit handles the unit button
func (h *Handler) ToggleUnit(c *fiber.Ctx) error {
	currentView(c).ToggleUnit()
	return c.Redirect("/", fiber.StatusSeeOther)
}

// GetView returns the page model as JSON
func (h *Handler) GetView(c *fiber.Ctx) error {
	c.Set(fiber.HeaderCacheControl, "no-store")
	return c.JSON(presenter.Build(currentView(c).State(), h.opts))
}

// GetSearches returns the most recent lookups
func (h *Handler) GetSearches(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	if limit < 1 || limit > 100 {
		limit = 20
	}

	data, err := h.searches.Recent(c.Context(), limit)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to fetch search log")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    data,
		"count":   len(data),
	})
}
