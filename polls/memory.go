// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package polls

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/danielhkuo/mysite/models"
)

// MemoryStore keeps questions in process memory. Reads return copies, so
// concurrent admin writes never change a slice a reader already holds.
type MemoryStore struct {
	mu        sync.RWMutex
	order     []int64
	questions map[int64]*models.Question
	nextQID   int64
	nextCID   int64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{questions: make(map[int64]*models.Question)}
}

// ListQuestions returns all questions in insertion order
func (s *MemoryStore) ListQuestions(ctx context.Context) ([]models.Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]models.Question, 0, len(s.order))
	for _, id := range s.order {
		list = append(list, cloneQuestion(s.questions[id]))
	}
	return list, nil
}

// GetQuestion returns a question by ID
func (s *MemoryStore) GetQuestion(ctx context.Context, id int64) (models.Question, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	q, ok := s.questions[id]
	if !ok {
		return models.Question{}, ErrNotFound
	}
	return cloneQuestion(q), nil
}

// CreateQuestion adds a question and returns its ID. A zero pubDate leaves
// the question undated.
func (s *MemoryStore) CreateQuestion(ctx context.Context, text string, pubDate time.Time) (int64, error) {
	if strings.TrimSpace(text) == "" {
		return 0, fmt.Errorf("question_text: %w", ErrEmptyText)
	}
	if err := CheckPubDate(pubDate); err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.nextQID++
	s.questions[s.nextQID] = &models.Question{
		ID:           s.nextQID,
		QuestionText: text,
		PubDate:      pubDate,
		Choices:      []models.Choice{},
	}
	s.order = append(s.order, s.nextQID)
	return s.nextQID, nil
}

// AddChoice appends a choice with zero votes to a question
func (s *MemoryStore) AddChoice(ctx context.Context, questionID int64, text string) (int64, error) {
	if strings.TrimSpace(text) == "" {
		return 0, fmt.Errorf("choice_text: %w", ErrEmptyText)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	q, ok := s.questions[questionID]
	if !ok {
		return 0, ErrNotFound
	}

	s.nextCID++
	q.Choices = append(q.Choices, models.Choice{
		ID:         s.nextCID,
		QuestionID: questionID,
		ChoiceText: text,
	})
	return s.nextCID, nil
}

// DeleteQuestion removes a question together with its choices
func (s *MemoryStore) DeleteQuestion(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.questions[id]; !ok {
		return ErrNotFound
	}
	delete(s.questions, id)

	for i, qid := range s.order {
		if qid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return nil
}

func cloneQuestion(q *models.Question) models.Question {
	c := *q
	c.Choices = append([]models.Choice{}, q.Choices...)
	return c
}
