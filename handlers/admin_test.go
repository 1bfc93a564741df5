// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/danielhkuo/mysite/auth"
	"github.com/danielhkuo/mysite/models"
	"github.com/danielhkuo/mysite/polls"
	tu "github.com/danielhkuo/mysite/testutil"
)

func adminHeaders() map[string]string {
	cfg := tu.GetTestConfig()
	return map[string]string{"X-Admin-Key": auth.GenerateAdminKey(auth.AdminScope, cfg.AdminKeySalt)}
}

func intPtr(i int) *int { return &i }

func TestCreateQuestion(t *testing.T) {
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	explicit := time.Date(2024, 12, 25, 9, 0, 0, 0, time.UTC)
	farFuture := time.Date(2300, 1, 1, 0, 0, 0, 0, time.UTC)
	zero := time.Time{}

	tests := []struct {
		name           string
		body           interface{}
		headers        map[string]string
		expectedStatus int
		expectedDate   time.Time
	}{
		{
			name:           "defaults to now",
			body:           models.CreateQuestionRequest{QuestionText: "What's new?"},
			headers:        adminHeaders(),
			expectedStatus: http.StatusCreated,
			expectedDate:   now,
		},
		{
			name:           "days offset",
			body:           models.CreateQuestionRequest{QuestionText: "Old news?", Days: intPtr(-30)},
			headers:        adminHeaders(),
			expectedStatus: http.StatusCreated,
			expectedDate:   now.AddDate(0, 0, -30),
		},
		{
			name:           "explicit pub date",
			body:           models.CreateQuestionRequest{QuestionText: "Holiday?", PubDate: &explicit},
			headers:        adminHeaders(),
			expectedStatus: http.StatusCreated,
			expectedDate:   explicit,
		},
		{
			name:           "both pub date and days",
			body:           models.CreateQuestionRequest{QuestionText: "Both?", PubDate: &explicit, Days: intPtr(1)},
			headers:        adminHeaders(),
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "pub date past 2262",
			body:           models.CreateQuestionRequest{QuestionText: "Far away?", PubDate: &farFuture},
			headers:        adminHeaders(),
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "days offset past 2262",
			body:           models.CreateQuestionRequest{QuestionText: "Far away?", Days: intPtr(100000)},
			headers:        adminHeaders(),
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "zero pub date",
			body:           models.CreateQuestionRequest{QuestionText: "Undated?", PubDate: &zero},
			headers:        adminHeaders(),
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "missing text",
			body:           models.CreateQuestionRequest{},
			headers:        adminHeaders(),
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "wrong admin key",
			body:           models.CreateQuestionRequest{QuestionText: "Sneaky?"},
			headers:        map[string]string{"X-Admin-Key": "nope"},
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "no admin key",
			body:           models.CreateQuestionRequest{QuestionText: "Sneaky?"},
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := polls.NewMemoryStore()
			h := NewAdminHandler(store, tu.GetTestConfig())
			h.now = func() time.Time { return now }

			w := httptest.NewRecorder()
			h.CreateQuestion(w, tu.MakeRequest("POST", "/admin/questions", tt.body, tt.headers))

			tu.AssertStatus(t, w, tt.expectedStatus)
			if tt.expectedStatus != http.StatusCreated {
				return
			}

			var resp models.CreateQuestionResponse
			tu.AssertJSON(t, w, &resp)

			q, err := store.GetQuestion(context.Background(), resp.QuestionID)
			if err != nil {
				t.Fatalf("Expected stored question, got %v", err)
			}
			if !q.PubDate.Equal(tt.expectedDate) {
				t.Errorf("Expected pub date %v, got %v", tt.expectedDate, q.PubDate)
			}
		})
	}
}

func TestCreateQuestion_InvalidJSON(t *testing.T) {
	h := NewAdminHandler(polls.NewMemoryStore(), tu.GetTestConfig())

	req := httptest.NewRequest("POST", "/admin/questions", nil)
	for k, v := range adminHeaders() {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	h.CreateQuestion(w, req)

	tu.AssertStatus(t, w, http.StatusBadRequest)
}

func TestAddChoice(t *testing.T) {
	conn := tu.SetupTestDB(t)
	defer conn.Close()

	qid := tu.CreateTestQuestion(t, conn, "Favourite colour?", -1)

	tests := []struct {
		name           string
		id             string
		body           interface{}
		headers        map[string]string
		expectedStatus int
	}{
		{"valid", strconv.FormatInt(qid, 10), models.AddChoiceRequest{ChoiceText: "Blue"}, adminHeaders(), http.StatusCreated},
		{"empty text", strconv.FormatInt(qid, 10), models.AddChoiceRequest{ChoiceText: "  "}, adminHeaders(), http.StatusBadRequest},
		{"missing question", "999", models.AddChoiceRequest{ChoiceText: "Red"}, adminHeaders(), http.StatusNotFound},
		{"bad id", "blue", models.AddChoiceRequest{ChoiceText: "Red"}, adminHeaders(), http.StatusNotFound},
		{"no admin key", strconv.FormatInt(qid, 10), models.AddChoiceRequest{ChoiceText: "Red"}, nil, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewAdminHandler(dbStore(conn), tu.GetTestConfig())

			req := tu.MakeRequest("POST", "/admin/questions/"+tt.id+"/choices", tt.body, tt.headers)
			req.SetPathValue("id", tt.id)
			w := httptest.NewRecorder()
			h.AddChoice(w, req)

			tu.AssertStatus(t, w, tt.expectedStatus)

			if tt.expectedStatus == http.StatusCreated {
				var resp models.AddChoiceResponse
				tu.AssertJSON(t, w, &resp)
				if resp.ChoiceID == 0 {
					t.Error("Expected a choice ID")
				}
			}
		})
	}
}

func TestDeleteQuestion(t *testing.T) {
	conn := tu.SetupTestDB(t)
	defer conn.Close()

	qid := tu.CreateTestQuestion(t, conn, "Going away?", -1)
	tu.AddTestChoice(t, conn, qid, "Yes")
	id := strconv.FormatInt(qid, 10)

	h := NewAdminHandler(dbStore(conn), tu.GetTestConfig())

	del := func(headers map[string]string) *httptest.ResponseRecorder {
		req := tu.MakeRequest("DELETE", "/admin/questions/"+id, nil, headers)
		req.SetPathValue("id", id)
		w := httptest.NewRecorder()
		h.DeleteQuestion(w, req)
		return w
	}

	tu.AssertStatus(t, del(nil), http.StatusUnauthorized)
	tu.AssertStatus(t, del(adminHeaders()), http.StatusNoContent)
	tu.AssertStatus(t, del(adminHeaders()), http.StatusNotFound)

	var count int
	if err := conn.QueryRow("SELECT COUNT(*) FROM choice WHERE question_id = $1", qid).Scan(&count); err != nil {
		t.Fatalf("Failed to count choices: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected choices to be removed, got %d", count)
	}
}
