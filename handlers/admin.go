// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/danielhkuo/mysite/auth"
	"github.com/danielhkuo/mysite/cliparse"
	"github.com/danielhkuo/mysite/middleware"
	"github.com/danielhkuo/mysite/models"
	"github.com/danielhkuo/mysite/polls"
)

// AdminHandler creates and removes questions. Every request must carry the
// site admin key in X-Admin-Key.
type AdminHandler struct {
	store polls.Repository
	cfg   cliparse.Config
	now   func() time.Time
}

func NewAdminHandler(store polls.Repository, cfg cliparse.Config) *AdminHandler {
	return &AdminHandler{store: store, cfg: cfg, now: time.Now}
}

func (h *AdminHandler) authorize(w http.ResponseWriter, r *http.Request) bool {
	adminKey := r.Header.Get("X-Admin-Key")
	if err := auth.ValidateAdminKey(auth.AdminScope, adminKey, h.cfg.AdminKeySalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
		return false
	}
	return true
}

// CreateQuestion handles POST /admin/questions
func (h *AdminHandler) CreateQuestion(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(w, r) {
		return
	}

	var req models.CreateQuestionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if strings.TrimSpace(req.QuestionText) == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "question_text is required")
		return
	}
	if req.PubDate != nil && req.Days != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "pub_date and days are mutually exclusive")
		return
	}

	if req.PubDate != nil && req.PubDate.IsZero() {
		middleware.ErrorResponse(w, http.StatusBadRequest, "pub_date must be set")
		return
	}

	pubDate := h.now()
	switch {
	case req.PubDate != nil:
		pubDate = *req.PubDate
	case req.Days != nil:
		pubDate = pubDate.AddDate(0, 0, *req.Days)
	}

	id, err := h.store.CreateQuestion(r.Context(), req.QuestionText, pubDate)
	if errors.Is(err, polls.ErrPubDateOutOfRange) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "pub_date must fall between 1678 and 2262")
		return
	}
	if err != nil {
		slog.Error("failed to create question", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create question")
		return
	}

	slog.Info("question created", "question_id", id, "pub_date", pubDate)

	middleware.JSONResponse(w, http.StatusCreated, models.CreateQuestionResponse{QuestionID: id})
}

// AddChoice handles POST /admin/questions/{id}/choices
func (h *AdminHandler) AddChoice(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(w, r) {
		return
	}

	questionID, ok := pathID(r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusNotFound, "Question not found")
		return
	}

	var req models.AddChoiceRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	id, err := h.store.AddChoice(r.Context(), questionID, req.ChoiceText)
	if errors.Is(err, polls.ErrEmptyText) {
		middleware.ErrorResponse(w, http.StatusBadRequest, "choice_text is required")
		return
	}
	if errors.Is(err, polls.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Question not found")
		return
	}
	if err != nil {
		slog.Error("failed to add choice", "question_id", questionID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to add choice")
		return
	}

	slog.Info("choice added", "question_id", questionID, "choice_id", id)

	middleware.JSONResponse(w, http.StatusCreated, models.AddChoiceResponse{ChoiceID: id})
}

// DeleteQuestion handles DELETE /admin/questions/{id}
func (h *AdminHandler) DeleteQuestion(w http.ResponseWriter, r *http.Request) {
	if !h.authorize(w, r) {
		return
	}

	questionID, ok := pathID(r)
	if !ok {
		middleware.ErrorResponse(w, http.StatusNotFound, "Question not found")
		return
	}

	err := h.store.DeleteQuestion(r.Context(), questionID)
	if errors.Is(err, polls.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Question not found")
		return
	}
	if err != nil {
		slog.Error("failed to delete question", "question_id", questionID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to delete question")
		return
	}

	slog.Info("question deleted", "question_id", questionID)

	w.WriteHeader(http.StatusNoContent)
}
