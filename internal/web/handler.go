package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/saulo-duarte/quiz-categorias/internal/config"
	"github.com/saulo-duarte/quiz-categorias/internal/journal"
	"github.com/saulo-duarte/quiz-categorias/internal/quiz"
)

const defaultHistoryLimit = 20

// Quiz is the part of the controller the web view drives.
type Quiz interface {
	SelectCategory(ctx context.Context, key string) error
	SelectOption(label string) error
	SubmitCurrentAnswer(ctx context.Context) error
	ResetSession() error
	SetUserName(name string) error
	Snapshot() quiz.Snapshot
}

type Handler struct {
	quiz    Quiz
	journal journal.JournalService
}

// NewHandler builds the web handler. history may be nil when no journal is configured.
func NewHandler(q Quiz, history journal.JournalService) *Handler {
	return &Handler{quiz: q, journal: history}
}

type stateResponse struct {
	quiz.Snapshot
	Summary    quiz.Summary    `json:"summary"`
	Categories []quiz.Category `json:"categories"`
}

type userRequest struct {
	Name string `json:"name"`
}

type historyResponse struct {
	Sessions []*journal.SessionRecord `json:"sessions"`
	Stats    []journal.CategoryStats  `json:"stats"`
}

// Home godoc
// @Summary      Quiz page
// @Description  Renders the quiz for the current session as HTML
// @Tags         quiz
// @Produce      html
// @Success      200
// @Router       / [get]
func (h *Handler) Home(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	view := newPageView(h.quiz.Snapshot())
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, view); err != nil {
		log.WithError(err).Error("Error al renderizar la página del quiz")
	}
}

// State godoc
// @Summary      Current session state
// @Tags         quiz
// @Produce      json
// @Success      200  {object}  web.stateResponse
// @Router       /api/state [get]
func (h *Handler) State(w http.ResponseWriter, r *http.Request) {
	h.writeState(w, http.StatusOK)
}

// SelectCategory godoc
// @Summary      Start a session for a category
// @Description  Fetches the questions of the category from the quiz backend
// @Tags         quiz
// @Produce      json
// @Param        key  path      string  true  "Category key"  Enums(moda, historia, ciencia, deporte, arte)
// @Success      200  {object}  web.stateResponse
// @Failure      400  {object}  map[string]string
// @Failure      409  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /api/categories/{key} [post]
func (h *Handler) SelectCategory(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())
	key := chi.URLParam(r, "key")

	if err := h.quiz.SelectCategory(r.Context(), key); err != nil {
		log.WithError(err).WithField("category", key).Warn("Error al seleccionar la categoría")
		h.writeError(w, err)
		return
	}
	h.writeState(w, http.StatusOK)
}

// SelectOption godoc
// @Summary      Select an option of the active question
// @Tags         quiz
// @Produce      json
// @Param        label  path      string  true  "Option label (A, B, C...)"
// @Success      200    {object}  web.stateResponse
// @Failure      409    {object}  map[string]string
// @Failure      422    {object}  map[string]string
// @Router       /api/options/{label} [post]
func (h *Handler) SelectOption(w http.ResponseWriter, r *http.Request) {
	label := chi.URLParam(r, "label")

	if err := h.quiz.SelectOption(label); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeState(w, http.StatusOK)
}

// SubmitAnswer godoc
// @Summary      Submit the selected option
// @Description  Scores the answer and, after the last question, saves the session
// @Tags         quiz
// @Produce      json
// @Success      200  {object}  web.stateResponse
// @Failure      409  {object}  map[string]string
// @Failure      422  {object}  map[string]string
// @Failure      502  {object}  map[string]string
// @Router       /api/answer [post]
func (h *Handler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())

	if err := h.quiz.SubmitCurrentAnswer(r.Context()); err != nil {
		log.WithError(err).Warn("Error al enviar la respuesta")
		h.writeError(w, err)
		return
	}
	h.writeState(w, http.StatusOK)
}

// Reset godoc
// @Summary      Discard the session and return to category selection
// @Tags         quiz
// @Produce      json
// @Success      200  {object}  web.stateResponse
// @Failure      409  {object}  map[string]string
// @Router       /api/reset [post]
func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	if err := h.quiz.ResetSession(); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeState(w, http.StatusOK)
}

// SetUser godoc
// @Summary      Set the user name sent with answers
// @Tags         quiz
// @Accept       json
// @Produce      json
// @Param        body  body      web.userRequest  true  "User name"
// @Success      200   {object}  web.stateResponse
// @Failure      400   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /api/user [post]
func (h *Handler) SetUser(w http.ResponseWriter, r *http.Request) {
	var req userRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		config.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.quiz.SetUserName(req.Name); err != nil {
		h.writeError(w, err)
		return
	}
	h.writeState(w, http.StatusOK)
}

// History godoc
// @Summary      Recorded sessions and per-category totals
// @Tags         history
// @Produce      json
// @Param        limit  query     int     false  "Maximum sessions"  default(20)
// @Param        user   query     string  false  "Only sessions of this user"
// @Success      200    {object}  web.historyResponse
// @Failure      400    {object}  map[string]string
// @Failure      404    {object}  map[string]string
// @Failure      500    {object}  map[string]string
// @Router       /api/history [get]
func (h *Handler) History(w http.ResponseWriter, r *http.Request) {
	log := config.WithContext(r.Context())
	if h.journal == nil {
		config.Error(w, http.StatusNotFound, "journal disabled")
		return
	}

	limit := defaultHistoryLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			config.Error(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}
	user := r.URL.Query().Get("user")

	var (
		sessions []*journal.SessionRecord
		err      error
	)
	if user != "" {
		sessions, err = h.journal.ListByUser(r.Context(), user, limit)
	} else {
		sessions, err = h.journal.List(r.Context(), limit)
	}
	if err != nil {
		log.WithError(err).Error("Error al cargar el historial")
		config.Error(w, http.StatusInternalServerError, "failed to load history")
		return
	}

	stats, err := h.journal.Stats(r.Context(), user)
	if err != nil {
		log.WithError(err).Error("Error al cargar las estadísticas del historial")
		config.Error(w, http.StatusInternalServerError, "failed to load history")
		return
	}

	if sessions == nil {
		sessions = []*journal.SessionRecord{}
	}
	if stats == nil {
		stats = []journal.CategoryStats{}
	}
	config.JSON(w, http.StatusOK, historyResponse{Sessions: sessions, Stats: stats})
}

// HistoryEntry godoc
// @Summary      One recorded session
// @Tags         history
// @Produce      json
// @Param        id   path      string  true  "Session ID"
// @Success      200  {object}  journal.SessionRecord
// @Failure      404  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /api/history/{id} [get]
func (h *Handler) HistoryEntry(w http.ResponseWriter, r *http.Request) {
	if h.journal == nil {
		config.Error(w, http.StatusNotFound, "journal disabled")
		return
	}

	rec, err := h.journal.Get(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, journal.ErrSessionNotFound) {
		config.Error(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		config.Error(w, http.StatusInternalServerError, "failed to load session")
		return
	}
	config.JSON(w, http.StatusOK, rec)
}

// Health godoc
// @Summary      Liveness check
// @Tags         health
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	config.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) writeState(w http.ResponseWriter, status int) {
	s := h.quiz.Snapshot()
	config.JSON(w, status, stateResponse{
		Snapshot:   s,
		Summary:    s.Summary(),
		Categories: quiz.Categories(),
	})
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	config.Error(w, statusFor(err), errorMessage(err, h.quiz.Snapshot()))
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, quiz.ErrBusy):
		return http.StatusConflict
	case errors.Is(err, quiz.ErrUnknownCategory):
		return http.StatusBadRequest
	case errors.Is(err, quiz.ErrInvalidOption),
		errors.Is(err, quiz.ErrNoSelection),
		errors.Is(err, quiz.ErrNotAnswering):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadGateway
	}
}

// errorMessage prefers the message the controller shows to the user.
func errorMessage(err error, s quiz.Snapshot) string {
	if statusFor(err) == http.StatusBadGateway && s.LastError != "" {
		return s.LastError
	}
	return err.Error()
}
