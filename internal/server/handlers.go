package server

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/vegasq/catfilter/query"
	"github.com/vegasq/catfilter/table"
)

const defaultLimit = 100

// Handler serves searches over a Catalog
type Handler struct {
	catalog *Catalog
	engine  *query.Engine
	logger  *slog.Logger
}

// NewHandler creates a handler for catalog
func NewHandler(catalog *Catalog, engine *query.Engine, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{catalog: catalog, engine: engine, logger: logger}
}

// RegisterRoutes mounts the API under /api
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api")
	api.GET("/health", h.Health)
	api.GET("/columns", h.Columns)
	api.GET("/search", h.Search)
	api.POST("/reload", h.Reload)
}

// SearchResponse is the body of GET /api/search
type SearchResponse struct {
	Query       string                   `json:"query"`
	Explanation query.Explanation        `json:"explanation"`
	Total       int                      `json:"total"`
	Limit       int                      `json:"limit"`
	Offset      int                      `json:"offset"`
	Rows        []map[string]interface{} `json:"rows"`
}

// --- HANDLERS ---
func getPaginationParams(c echo.Context, defaultLimit int) (int, int) {
	limit, err := strconv.Atoi(c.QueryParam("limit"))
	if err != nil || limit <= 0 {
		limit = defaultLimit
	}
	offset, err := strconv.Atoi(c.QueryParam("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}
	return limit, offset
}

// current returns the loaded table or a 503 error
func (h *Handler) current() (*table.Table, error) {
	t, err := h.catalog.Table()
	if errors.Is(err, ErrNotLoaded) {
		return nil, echo.NewHTTPError(http.StatusServiceUnavailable, "catalog is loading").SetInternal(err)
	}
	return t, err
}

func (h *Handler) Health(c echo.Context) error {
	t, err := h.catalog.Table()
	if err != nil {
		return c.JSON(http.StatusOK, map[string]interface{}{"status": "loading"})
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status":    "ok",
		"rows":      t.Len(),
		"loaded_at": h.catalog.LoadedAt().Format(time.RFC3339),
	})
}

func (h *Handler) Columns(c echo.Context) error {
	t, err := h.current()
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"columns": t.Columns(),
	})
}

// Search always filters the full catalog; paging applies to the result
func (h *Handler) Search(c echo.Context) error {
	t, err := h.current()
	if err != nil {
		return err
	}

	q := c.QueryParam("q")
	result, exp := h.engine.SearchExplain(t, q)
	limit, offset := getPaginationParams(c, defaultLimit)

	return c.JSON(http.StatusOK, SearchResponse{
		Query:       q,
		Explanation: exp,
		Total:       result.Len(),
		Limit:       limit,
		Offset:      offset,
		Rows:        result.Slice(offset, limit).Records(),
	})
}

func (h *Handler) Reload(c echo.Context) error {
	t, err := h.catalog.Reload()
	if err != nil {
		h.logger.Error("reload_failed", "error", err)
		return echo.NewHTTPError(http.StatusInternalServerError, "reload failed").SetInternal(err)
	}
	h.logger.Info("catalog_reloaded", "rows", t.Len())
	return c.JSON(http.StatusOK, map[string]interface{}{
		"status": "ok",
		"rows":   t.Len(),
	})
}
