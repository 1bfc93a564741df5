// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package polls

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/danielhkuo/mysite/models"
)

// Store is the read side of question storage used by the viewing workflow.
//
// ListQuestions returns every question with its choices, in insertion order.
// GetQuestion returns ErrNotFound when no question has the given id.
type Store interface {
	ListQuestions(ctx context.Context) ([]models.Question, error)
	GetQuestion(ctx context.Context, id int64) (models.Question, error)
}

// Repository adds the administrative writes. Questions and choices are only
// ever created through it; viewing never creates or deletes anything.
type Repository interface {
	Store
	CreateQuestion(ctx context.Context, text string, pubDate time.Time) (int64, error)
	AddChoice(ctx context.Context, questionID int64, text string) (int64, error)
	DeleteQuestion(ctx context.Context, id int64) error
}

// ListVisible returns the listable questions, most recent first. Questions
// sharing a pub date keep their insertion order. The result is never nil.
func ListVisible(ctx context.Context, store Store, now time.Time) ([]models.Question, error) {
	all, err := store.ListQuestions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}

	visible := make([]models.Question, 0, len(all))
	for _, q := range all {
		if IsListable(q, now) {
			visible = append(visible, q)
		}
	}

	sort.SliceStable(visible, func(i, j int) bool {
		return visible[i].PubDate.After(visible[j].PubDate)
	})

	return visible, nil
}

// GetDetail resolves a question for display. Missing, unpublished, future
// and choiceless questions all yield an error wrapping ErrNotFound.
func GetDetail(ctx context.Context, store Store, id int64, now time.Time) (models.Question, error) {
	q, err := store.GetQuestion(ctx, id)
	if errors.Is(err, ErrNotFound) {
		return models.Question{}, &NotFoundError{ID: id, Reason: ReasonMissing}
	}
	if err != nil {
		return models.Question{}, fmt.Errorf("failed to get question %d: %w", id, err)
	}

	if reason := unlistableReason(q, now); reason != "" {
		return models.Question{}, &NotFoundError{ID: id, Reason: reason}
	}

	return q, nil
}
