package service

import (
	"context"
	"fmt"

	"test-extractor/internal/database"
	"test-extractor/internal/domain"
	"test-extractor/internal/repository"

	"go.uber.org/zap"
)

// Verifier re-reads a materialized database and compares it with the script it came from.
type Verifier struct {
	logger *zap.Logger
}

func NewVerifier(logger *zap.Logger) *Verifier {
	return &Verifier{logger: logger}
}

var _ domain.DatabaseVerifier = (*Verifier)(nil)

// Verify checks test names and answer texts by id, the question count, that no question
// references a missing test or answer, and that every question resolves to its own test name
// and answer text.
func (v *Verifier) Verify(ctx context.Context, dbPath string, expected *domain.Script) error {
	db, err := database.NewSQLiteDB(dbPath)
	if err != nil {
		return err
	}
	defer db.Close()
	repo := repository.NewContentDatabaseAdapter(db)

	tests, err := repo.ListTests(ctx)
	if err != nil {
		return err
	}
	if len(tests) != len(expected.TestNames) {
		return verifyError("expected %d tests, found %d", len(expected.TestNames), len(tests))
	}
	for i, t := range tests {
		if t.ID != int64(i) || t.Name != expected.TestNames[i] {
			return verifyError("test #%d is (%d, %q), expected %q", i, t.ID, t.Name, expected.TestNames[i])
		}
	}

	answers, err := repo.ListAnswers(ctx)
	if err != nil {
		return err
	}
	if len(answers) != len(expected.Answers) {
		return verifyError("expected %d answers, found %d", len(expected.Answers), len(answers))
	}
	for i, a := range answers {
		if a.ID != int64(i) || a.Text != expected.Answers[i] {
			return verifyError("answer #%d is (%d, %q), expected %q", i, a.ID, a.Text, expected.Answers[i])
		}
	}

	count, err := repo.CountQuestions(ctx)
	if err != nil {
		return err
	}
	if count != expected.QuestionCount {
		return verifyError("expected %d questions, found %d", expected.QuestionCount, count)
	}

	dangling, err := repo.CountDanglingQuestions(ctx)
	if err != nil {
		return err
	}
	if dangling != 0 {
		return verifyError("%d questions reference a missing test or answer", dangling)
	}

	links, err := repo.ListQuestionLinks(ctx)
	if err != nil {
		return err
	}
	if len(links) != len(expected.Links) {
		return verifyError("expected %d question links, found %d", len(expected.Links), len(links))
	}
	for i, l := range links {
		want := expected.Links[i]
		if l.QuestionID != int64(i) || l.Text != want.Text || l.TestName != want.TestName || l.AnswerText != want.AnswerText {
			return verifyError("question #%d resolves to (%q, %q), expected (%q, %q)",
				i, l.TestName, l.AnswerText, want.TestName, want.AnswerText)
		}
	}

	v.logger.Debug("Database verified",
		zap.String("path", dbPath),
		zap.Int("tests", len(tests)),
		zap.Int("questions", count),
		zap.Int("answers", len(answers)),
	)
	return nil
}

func verifyError(format string, args ...interface{}) error {
	return domain.NewInternalError("database verification failed", fmt.Errorf(format, args...))
}
