// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/danielhkuo/mysite/models"
	"github.com/danielhkuo/mysite/polls"
)

// PollStore is the SQL implementation of polls.Repository.
type PollStore struct {
	db *sql.DB
}

func NewPollStore(db *sql.DB) *PollStore {
	return &PollStore{db: db}
}

// ListQuestions returns every question with its choices, ordered by ID
func (s *PollStore) ListQuestions(ctx context.Context) ([]models.Question, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, question_text, pub_date
		FROM question
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query questions: %w", err)
	}
	defer rows.Close()

	questions := []models.Question{}
	index := map[int64]int{}
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, err
		}
		index[q.ID] = len(questions)
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read questions: %w", err)
	}

	choiceRows, err := s.db.QueryContext(ctx, `
		SELECT id, question_id, choice_text, votes
		FROM choice
		ORDER BY question_id, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query choices: %w", err)
	}
	defer choiceRows.Close()

	for choiceRows.Next() {
		var c models.Choice
		if err := choiceRows.Scan(&c.ID, &c.QuestionID, &c.ChoiceText, &c.Votes); err != nil {
			return nil, fmt.Errorf("failed to scan choice: %w", err)
		}
		// choices added after the question query ran are skipped
		if i, ok := index[c.QuestionID]; ok {
			questions[i].Choices = append(questions[i].Choices, c)
		}
	}
	if err := choiceRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read choices: %w", err)
	}

	return questions, nil
}

// GetQuestion returns one question with its choices
func (s *PollStore) GetQuestion(ctx context.Context, id int64) (models.Question, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, question_text, pub_date
		FROM question
		WHERE id = $1
	`, id)

	q, err := scanQuestion(row)
	if err == sql.ErrNoRows {
		return models.Question{}, polls.ErrNotFound
	}
	if err != nil {
		return models.Question{}, err
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, question_id, choice_text, votes
		FROM choice
		WHERE question_id = $1
		ORDER BY id
	`, id)
	if err != nil {
		return models.Question{}, fmt.Errorf("failed to query choices: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var c models.Choice
		if err := rows.Scan(&c.ID, &c.QuestionID, &c.ChoiceText, &c.Votes); err != nil {
			return models.Question{}, fmt.Errorf("failed to scan choice: %w", err)
		}
		q.Choices = append(q.Choices, c)
	}
	if err := rows.Err(); err != nil {
		return models.Question{}, fmt.Errorf("failed to read choices: %w", err)
	}

	return q, nil
}

// CreateQuestion inserts a question. A zero pubDate is stored as NULL.
func (s *PollStore) CreateQuestion(ctx context.Context, text string, pubDate time.Time) (int64, error) {
	if strings.TrimSpace(text) == "" {
		return 0, fmt.Errorf("question_text: %w", polls.ErrEmptyText)
	}
	if err := polls.CheckPubDate(pubDate); err != nil {
		return 0, err
	}

	var pub sql.NullInt64
	if !pubDate.IsZero() {
		pub = sql.NullInt64{Int64: pubDate.UnixNano(), Valid: true}
	}

	var id int64
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO question (question_text, pub_date)
		VALUES ($1, $2)
		RETURNING id
	`, text, pub).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert question: %w", err)
	}

	return id, nil
}

// AddChoice inserts a choice with zero votes
func (s *PollStore) AddChoice(ctx context.Context, questionID int64, text string) (int64, error) {
	if strings.TrimSpace(text) == "" {
		return 0, fmt.Errorf("choice_text: %w", polls.ErrEmptyText)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var exists int
	err = tx.QueryRowContext(ctx, "SELECT 1 FROM question WHERE id = $1", questionID).Scan(&exists)
	if err == sql.ErrNoRows {
		return 0, polls.ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("failed to query question: %w", err)
	}

	var id int64
	err = tx.QueryRowContext(ctx, `
		INSERT INTO choice (question_id, choice_text, votes)
		VALUES ($1, $2, 0)
		RETURNING id
	`, questionID, text).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to insert choice: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return id, nil
}

// DeleteQuestion removes a question and its choices in one transaction
func (s *PollStore) DeleteQuestion(ctx context.Context, id int64) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM choice WHERE question_id = $1", id); err != nil {
		return fmt.Errorf("failed to delete choices: %w", err)
	}

	res, err := tx.ExecContext(ctx, "DELETE FROM question WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("failed to delete question: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete question: %w", err)
	}
	if n == 0 {
		return polls.ErrNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanQuestion(row rowScanner) (models.Question, error) {
	var q models.Question
	var pub sql.NullInt64
	if err := row.Scan(&q.ID, &q.QuestionText, &pub); err != nil {
		if err == sql.ErrNoRows {
			return q, err
		}
		return q, fmt.Errorf("failed to scan question: %w", err)
	}
	if pub.Valid {
		q.PubDate = time.Unix(0, pub.Int64).UTC()
	}
	q.Choices = []models.Choice{}
	return q, nil
}
