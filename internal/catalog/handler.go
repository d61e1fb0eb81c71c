package catalog

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/HerbHall/stampcatalog/internal/metrics"
	"github.com/HerbHall/stampcatalog/internal/server"
	"github.com/HerbHall/stampcatalog/internal/session"
	pkgcatalog "github.com/HerbHall/stampcatalog/pkg/catalog"
	"github.com/HerbHall/stampcatalog/pkg/models"
)

// ApplyRequest is the body of POST /api/v1/catalog/view.
type ApplyRequest struct {
	Filters     map[string][]string `json:"filters" validate:"omitempty,dive,keys,oneof=category stamp_type condition centering stamp_format certificate_grade,endkeys,dive,max=256"`
	Certificate string              `json:"certificate" validate:"omitempty,oneof=all has lacks"`
	Sort        string              `json:"sort" validate:"omitempty,oneof=original price_asc price_desc"`
	Search      string              `json:"search" validate:"max=256"`
}

// OptionsResponse is the response for GET /api/v1/catalog/options/{attribute}.
type OptionsResponse struct {
	Attribute models.Attribute `json:"attribute"`
	Options   []string         `json:"options"`
}

// Handler serves the catalog browsing API.
type Handler struct {
	engine    *Engine
	presenter *Presenter
	sessions  session.Store[State]
	increment int
	ttl       time.Duration
	metrics   *metrics.Metrics
	logger    *zap.Logger
	validate  *validator.Validate
}

// HandlerConfig carries the Handler's collaborators.
type HandlerConfig struct {
	Engine    *Engine
	Presenter *Presenter
	Sessions  session.Store[State]
	Increment int
	TTL       time.Duration
	Metrics   *metrics.Metrics
	Logger    *zap.Logger
}

// NewHandler creates a catalog API handler.
func NewHandler(cfg HandlerConfig) *Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	presenter := cfg.Presenter
	if presenter == nil {
		presenter = NewPresenter(cfg.Engine.Schema(), "")
	}
	return &Handler{
		engine:    cfg.Engine,
		presenter: presenter,
		sessions:  cfg.Sessions,
		increment: cfg.Increment,
		ttl:       cfg.TTL,
		metrics:   cfg.Metrics,
		logger:    logger,
		validate:  validator.New(),
	}
}

// RegisterRoutes implements server.RouteRegistrar.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/v1/catalog/options", h.handleAllOptions)
	mux.HandleFunc("GET /api/v1/catalog/options/{attribute}", h.handleOptions)
	mux.HandleFunc("GET /api/v1/catalog/view", h.handleGetView)
	mux.HandleFunc("POST /api/v1/catalog/view", h.handleApply)
	mux.HandleFunc("POST /api/v1/catalog/view/more", h.handleMore)
	mux.HandleFunc("POST /api/v1/catalog/view/reset", h.handleReset)
	mux.HandleFunc("GET /api/v1/catalog/items/{index}", h.handleItem)
}

// handleAllOptions returns the filter choices for every filterable attribute.
//
//	@Summary		List all filter options
//	@Tags			catalog
//	@Produce		json
//	@Success		200 {object} map[string][]string
//	@Failure		500 {object} server.Problem
//	@Failure		503 {object} server.Problem
//	@Router			/catalog/options [get]
func (h *Handler) handleAllOptions(w http.ResponseWriter, r *http.Request) {
	opts, err := h.engine.AllOptions(r.Context())
	if err != nil {
		h.logger.Error("failed to list options", zap.Error(err))
		catalogError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, opts)
}

// handleOptions returns the filter choices for one attribute, optionally
// narrowed by a type-ahead query.
//
//	@Summary		List filter options
//	@Tags			catalog
//	@Produce		json
//	@Param			attribute path string true "Attribute (category, stamp_type, condition, centering, stamp_format, certificate_grade, country, currency, has_certificate)"
//	@Param			q query string false "Fuzzy type-ahead query"
//	@Success		200 {object} OptionsResponse
//	@Failure		400 {object} server.Problem
//	@Failure		503 {object} server.Problem
//	@Router			/catalog/options/{attribute} [get]
func (h *Handler) handleOptions(w http.ResponseWriter, r *http.Request) {
	attr, ok := models.ParseAttribute(r.PathValue("attribute"))
	if !ok {
		server.BadRequest(w, "unknown attribute: "+r.PathValue("attribute"), r.URL.Path)
		return
	}

	opts, err := h.engine.Suggest(r.Context(), attr, r.URL.Query().Get("q"))
	if err != nil {
		h.logger.Error("failed to list options", zap.String("attribute", string(attr)), zap.Error(err))
		catalogError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, OptionsResponse{Attribute: attr, Options: opts})
}

// handleGetView returns the viewer's current view, starting a session if
// needed.
//
//	@Summary		Current view
//	@Tags			catalog
//	@Produce		json
//	@Success		200 {object} ViewResponse
//	@Failure		503 {object} server.Problem
//	@Router			/catalog/view [get]
func (h *Handler) handleGetView(w http.ResponseWriter, r *http.Request) {
	id, state, ok := h.loadState(w, r)
	if !ok {
		return
	}
	h.respondView(w, r, "get", id, state)
}

// handleApply replaces the viewer's criteria, sort mode and search text.
//
//	@Summary		Apply criteria
//	@Tags			catalog
//	@Accept			json
//	@Produce		json
//	@Param			request body ApplyRequest true "Criteria"
//	@Success		200 {object} ViewResponse
//	@Failure		400 {object} server.Problem
//	@Router			/catalog/view [post]
func (h *Handler) handleApply(w http.ResponseWriter, r *http.Request) {
	var req ApplyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		server.BadRequest(w, "invalid request body", r.URL.Path)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		server.BadRequest(w, "invalid criteria: "+err.Error(), r.URL.Path)
		return
	}

	criteria, err := NewCriteria(req.Filters, req.Certificate)
	if err != nil {
		server.BadRequest(w, err.Error(), r.URL.Path)
		return
	}
	mode, err := ParseSortMode(req.Sort)
	if err != nil {
		server.BadRequest(w, err.Error(), r.URL.Path)
		return
	}

	id, state, ok := h.loadState(w, r)
	if !ok {
		return
	}
	h.respondView(w, r, "apply", id, state.WithQuery(criteria, mode, req.Search))
}

// handleMore reveals one more increment of records.
//
//	@Summary		Load more
//	@Tags			catalog
//	@Produce		json
//	@Success		200 {object} ViewResponse
//	@Router			/catalog/view/more [post]
func (h *Handler) handleMore(w http.ResponseWriter, r *http.Request) {
	id, state, ok := h.loadState(w, r)
	if !ok {
		return
	}
	h.respondView(w, r, "more", id, state.RevealMore())
}

// handleReset clears every filter, the search text and the sort mode.
//
//	@Summary		Reset filters
//	@Tags			catalog
//	@Produce		json
//	@Success		200 {object} ViewResponse
//	@Router			/catalog/view/reset [post]
func (h *Handler) handleReset(w http.ResponseWriter, r *http.Request) {
	id, state, ok := h.loadState(w, r)
	if !ok {
		return
	}
	h.respondView(w, r, "reset", id, state.ResetFilters())
}

// handleItem returns one record with every image and its sanitized
// description.
//
//	@Summary		Get item
//	@Tags			catalog
//	@Produce		json
//	@Param			index path int true "Row index"
//	@Success		200 {object} ItemDetail
//	@Failure		400 {object} server.Problem
//	@Failure		404 {object} server.Problem
//	@Failure		503 {object} server.Problem
//	@Router			/catalog/items/{index} [get]
func (h *Handler) handleItem(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		server.BadRequest(w, "index must be an integer", r.URL.Path)
		return
	}

	item, err := h.engine.Item(r.Context(), index)
	if errors.Is(err, ErrItemNotFound) {
		server.NotFound(w, err.Error(), r.URL.Path)
		return
	}
	if err != nil {
		h.logger.Error("failed to get item", zap.Int("index", index), zap.Error(err))
		catalogError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, h.presenter.Detail(&item))
}

// loadState returns the viewer's session id and state, starting a new
// session when the request carries none. It writes an error response and
// returns false on failure.
func (h *Handler) loadState(w http.ResponseWriter, r *http.Request) (string, State, bool) {
	id, ok := session.IDFromRequest(r)
	if ok {
		state, err := h.sessions.Get(r.Context(), id)
		if err == nil {
			return id, state, true
		}
		if !errors.Is(err, session.ErrNotFound) {
			h.logger.Error("failed to load session", zap.Error(err))
			server.InternalError(w, "failed to load session", r.URL.Path)
			return "", State{}, false
		}
	}

	id = session.NewID()
	session.SetCookie(w, id, h.ttl)
	h.logger.Debug("session started", zap.String("session", id))
	return id, NewState(h.increment), true
}

// respondView runs state through the engine, persists it, and writes the
// view. Saving on every action also refreshes the session TTL.
func (h *Handler) respondView(w http.ResponseWriter, r *http.Request, action, id string, state State) {
	res, err := h.engine.Apply(r.Context(), state)
	if err != nil {
		h.logger.Error("failed to apply view", zap.String("action", action), zap.Error(err))
		catalogError(w, r, err)
		return
	}

	if err := h.sessions.Save(r.Context(), id, state); err != nil {
		h.logger.Error("failed to save session", zap.Error(err))
		server.InternalError(w, "failed to save session", r.URL.Path)
		return
	}

	h.metrics.ObserveView(action, res.Total)
	writeJSON(w, http.StatusOK, h.presenter.View(state, res))
}

// catalogError answers 503 when the data source cannot be read and 500 for
// anything else.
func catalogError(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, pkgcatalog.ErrDataSource) {
		server.ServiceUnavailable(w, "catalog data source unavailable", r.URL.Path)
		return
	}
	server.InternalError(w, "failed to load catalog", r.URL.Path)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
