// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/danielhkuo/mysite/middleware"
	"github.com/danielhkuo/mysite/models"
	"github.com/danielhkuo/mysite/polls"
	"github.com/danielhkuo/mysite/render"
)

// PollHandler serves the public question listing and detail pages
type PollHandler struct {
	store    polls.Store
	renderer *render.Renderer
	metrics  *middleware.Metrics
	now      func() time.Time
}

func NewPollHandler(store polls.Store, renderer *render.Renderer, metrics *middleware.Metrics) *PollHandler {
	return &PollHandler{store: store, renderer: renderer, metrics: metrics, now: time.Now}
}

// Index handles GET /polls/
func (h *PollHandler) Index(w http.ResponseWriter, r *http.Request) {
	now := h.now()

	questions, err := polls.ListVisible(r.Context(), h.store, now)
	if err != nil {
		slog.Error("failed to list questions", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	views := make([]render.QuestionView, 0, len(questions))
	for _, q := range questions {
		views = append(views, render.NewQuestionView(q, now, polls.WasPublishedRecently(q, now)))
	}

	h.renderer.HTML(w, http.StatusOK, render.PagePollsIndex, render.IndexData{Questions: views})
}

// Detail handles GET /polls/{id}/
func (h *PollHandler) Detail(w http.ResponseWriter, r *http.Request) {
	now := h.now()

	q, err := h.lookup(r, now)
	if errors.Is(err, polls.ErrNotFound) {
		h.renderer.NotFound(w)
		return
	}
	if err != nil {
		slog.Error("failed to get question", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	h.renderer.HTML(w, http.StatusOK, render.PagePollsDetail, render.DetailData{
		Question: render.NewQuestionView(q, now, polls.WasPublishedRecently(q, now)),
		Choices:  q.Choices,
	})
}

// ListAPI handles GET /api/polls
func (h *PollHandler) ListAPI(w http.ResponseWriter, r *http.Request) {
	now := h.now()

	questions, err := polls.ListVisible(r.Context(), h.store, now)
	if err != nil {
		slog.Error("failed to list questions", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	resp := models.QuestionListResponse{Questions: make([]models.QuestionSummary, 0, len(questions))}
	for _, q := range questions {
		resp.Questions = append(resp.Questions, summarize(q, now))
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}

// DetailAPI handles GET /api/polls/{id}
func (h *PollHandler) DetailAPI(w http.ResponseWriter, r *http.Request) {
	now := h.now()

	q, err := h.lookup(r, now)
	if errors.Is(err, polls.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Question not found")
		return
	}
	if err != nil {
		slog.Error("failed to get question", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	choices := q.Choices
	if choices == nil {
		choices = []models.Choice{}
	}

	middleware.JSONResponse(w, http.StatusOK, models.QuestionDetailResponse{
		Question: summarize(q, now),
		Choices:  choices,
	})
}

// lookup resolves the {id} path value. Every not-found cause is counted and
// collapsed into polls.ErrNotFound.
func (h *PollHandler) lookup(r *http.Request, now time.Time) (models.Question, error) {
	id, ok := pathID(r)
	if !ok {
		h.metrics.NotFoundTotal.WithLabelValues(string(polls.ReasonMissing)).Inc()
		return models.Question{}, polls.ErrNotFound
	}

	q, err := polls.GetDetail(r.Context(), h.store, id, now)
	if errors.Is(err, polls.ErrNotFound) {
		reason := polls.Reason(err)
		h.metrics.NotFoundTotal.WithLabelValues(string(reason)).Inc()
		slog.Debug("question not shown", "question_id", id, "reason", reason)
	}
	return q, err
}

func summarize(q models.Question, now time.Time) models.QuestionSummary {
	return models.QuestionSummary{
		ID:                q.ID,
		QuestionText:      q.QuestionText,
		PubDate:           q.PubDate,
		PublishedRecently: polls.WasPublishedRecently(q, now),
	}
}

// pathID parses the {id} path value. Non-numeric ids never match a question.
func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
