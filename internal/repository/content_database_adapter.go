package repository

import (
	"context"
	"fmt"

	"test-extractor/internal/repository/models"
)

// ContentDatabaseAdapter reads and writes the tests/questions/answers tables.
// Every method runs on the transaction in ctx when there is one.
type ContentDatabaseAdapter struct {
	db DBTX
}

// NewContentDatabaseAdapter creates a new instance of ContentDatabaseAdapter
func NewContentDatabaseAdapter(db DBTX) *ContentDatabaseAdapter {
	return &ContentDatabaseAdapter{db: db}
}

// ExecScript executes a multi-statement SQL script
func (r *ContentDatabaseAdapter) ExecScript(ctx context.Context, script string) error {
	if _, err := GetExecutor(ctx, r.db).ExecContext(ctx, script); err != nil {
		return fmt.Errorf("failed to execute script: %w", err)
	}
	return nil
}

// ListTests returns all tests ordered by id
func (r *ContentDatabaseAdapter) ListTests(ctx context.Context) ([]models.Test, error) {
	var tests []models.Test
	query := "SELECT id, name FROM tests ORDER BY id"
	if err := GetExecutor(ctx, r.db).SelectContext(ctx, &tests, query); err != nil {
		return nil, fmt.Errorf("failed to list tests: %w", err)
	}
	return tests, nil
}

// ListAnswers returns all answers ordered by id
func (r *ContentDatabaseAdapter) ListAnswers(ctx context.Context) ([]models.Answer, error) {
	var answers []models.Answer
	query := "SELECT id, text FROM answers ORDER BY id"
	if err := GetExecutor(ctx, r.db).SelectContext(ctx, &answers, query); err != nil {
		return nil, fmt.Errorf("failed to list answers: %w", err)
	}
	return answers, nil
}

// ListQuestions returns all questions ordered by id
func (r *ContentDatabaseAdapter) ListQuestions(ctx context.Context) ([]models.Question, error) {
	var questions []models.Question
	query := "SELECT id, text, question_upper, test_id, answer_id FROM questions ORDER BY id"
	if err := GetExecutor(ctx, r.db).SelectContext(ctx, &questions, query); err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	return questions, nil
}

// ListQuestionLinks resolves every question's test and answer. Questions with a dangling
// reference are left out; see CountDanglingQuestions.
func (r *ContentDatabaseAdapter) ListQuestionLinks(ctx context.Context) ([]models.QuestionLink, error) {
	var links []models.QuestionLink
	query := `SELECT q.id AS question_id, q.text AS text, t.name AS test_name, a.text AS answer_text
              FROM questions q
              JOIN tests t ON t.id = q.test_id
              JOIN answers a ON a.id = q.answer_id
              ORDER BY q.id`
	if err := GetExecutor(ctx, r.db).SelectContext(ctx, &links, query); err != nil {
		return nil, fmt.Errorf("failed to list question links: %w", err)
	}
	return links, nil
}

// CountQuestions returns the number of rows in questions
func (r *ContentDatabaseAdapter) CountQuestions(ctx context.Context) (int, error) {
	var n int
	if err := GetExecutor(ctx, r.db).GetContext(ctx, &n, "SELECT COUNT(*) FROM questions"); err != nil {
		return 0, fmt.Errorf("failed to count questions: %w", err)
	}
	return n, nil
}

// CountDanglingQuestions counts questions whose test_id or answer_id points at no row
func (r *ContentDatabaseAdapter) CountDanglingQuestions(ctx context.Context) (int, error) {
	var n int
	query := `SELECT COUNT(*) FROM questions q
              WHERE NOT EXISTS (SELECT 1 FROM tests t WHERE t.id = q.test_id)
                 OR NOT EXISTS (SELECT 1 FROM answers a WHERE a.id = q.answer_id)`
	if err := GetExecutor(ctx, r.db).GetContext(ctx, &n, query); err != nil {
		return 0, fmt.Errorf("failed to count dangling questions: %w", err)
	}
	return n, nil
}
