// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import "time"

// Session keys
const (
	SessionKeyVisits = "num_visits"
)

// Domain types

// Question is a poll. PubDate is the zero time when it was never set.
type Question struct {
	ID           int64     `json:"id"`
	QuestionText string    `json:"question_text"`
	PubDate      time.Time `json:"pub_date"`
	Choices      []Choice  `json:"choices"`
}

// HasPubDate reports whether a publication date was ever assigned.
func (q Question) HasPubDate() bool {
	return !q.PubDate.IsZero()
}

func (q Question) String() string {
	return q.QuestionText
}

type Choice struct {
	ID         int64  `json:"id"`
	QuestionID int64  `json:"question_id"`
	ChoiceText string `json:"choice_text"`
	Votes      int    `json:"votes"`
}

// Request types

// CreateQuestionRequest accepts either an absolute pub_date or a day
// offset relative to now (negative for the past). The zero time is not a
// valid pub_date; admin requests always create dated questions.
type CreateQuestionRequest struct {
	QuestionText string     `json:"question_text"`
	PubDate      *time.Time `json:"pub_date,omitempty"`
	Days         *int       `json:"days,omitempty"`
}

type AddChoiceRequest struct {
	ChoiceText string `json:"choice_text"`
}

// Response types

type CreateQuestionResponse struct {
	QuestionID int64 `json:"question_id"`
}

type AddChoiceResponse struct {
	ChoiceID int64 `json:"choice_id"`
}

type QuestionSummary struct {
	ID                int64     `json:"id"`
	QuestionText      string    `json:"question_text"`
	PubDate           time.Time `json:"pub_date"`
	PublishedRecently bool      `json:"published_recently"`
}

type QuestionListResponse struct {
	Questions []QuestionSummary `json:"latest_question_list"`
}

type QuestionDetailResponse struct {
	Question QuestionSummary `json:"question"`
	Choices  []Choice        `json:"choices"`
}

type VisitResponse struct {
	Count int `json:"count"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
