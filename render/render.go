// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/mysite/models"
)

// Page names
const (
	PageIndex       = "index.html"
	PageHome        = "home.html"
	PagePollsIndex  = "polls_index.html"
	PagePollsDetail = "polls_detail.html"
	PageNotFound    = "not_found.html"
)

//go:embed templates/*.html
var templateFS embed.FS

// QuestionView is a question prepared for display
type QuestionView struct {
	ID        int64
	Text      string
	Published string
	Recent    bool
}

// NewQuestionView describes q relative to now
func NewQuestionView(q models.Question, now time.Time, recent bool) QuestionView {
	return QuestionView{
		ID:        q.ID,
		Text:      q.QuestionText,
		Published: humanize.RelTime(q.PubDate, now, "ago", "from now"),
		Recent:    recent,
	}
}

type IndexData struct {
	Questions []QuestionView
}

type DetailData struct {
	Question QuestionView
	Choices  []models.Choice
}

type HomeData struct {
	Count int
}

// Renderer executes the embedded page templates
type Renderer struct {
	pages map[string]*template.Template
}

// New parses every page together with the shared base layout
func New() (*Renderer, error) {
	pages := map[string]*template.Template{}
	for _, name := range []string{PageIndex, PageHome, PagePollsIndex, PagePollsDetail, PageNotFound} {
		t, err := template.ParseFS(templateFS, "templates/base.html", "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		pages[name] = t
	}
	return &Renderer{pages: pages}, nil
}

// HTML renders a page. The page is executed into a buffer first, so a
// template error still produces a clean 500.
func (r *Renderer) HTML(w http.ResponseWriter, statusCode int, name string, data any) {
	t, ok := r.pages[name]
	if !ok {
		slog.Error("unknown template", "template", name)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "base", data); err != nil {
		slog.Error("failed to render template", "template", name, "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(statusCode)
	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("failed to write response", "template", name, "error", err)
	}
}

// NotFound renders the 404 page
func (r *Renderer) NotFound(w http.ResponseWriter) {
	r.HTML(w, http.StatusNotFound, PageNotFound, nil)
}
