package script

import (
	"fmt"
	"strings"

	"test-extractor/internal/domain"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Header drops and recreates the three tables. The schema is static.
const Header = `DROP TABLE IF EXISTS tests;
DROP TABLE IF EXISTS questions;
DROP TABLE IF EXISTS answers;

CREATE TABLE tests (
    id INTEGER NOT NULL,
    name TEXT NOT NULL,
    PRIMARY KEY(id)
);

CREATE TABLE questions (
    id INTEGER NOT NULL,
    text TEXT NOT NULL,
    question_upper TEXT NOT NULL,
    test_id INTEGER,
    answer_id INTEGER,
    PRIMARY KEY(id)
);

CREATE TABLE answers (
    id INTEGER NOT NULL,
    text TEXT UNIQUE,
    PRIMARY KEY(id)
);

`

// AnswerDictionary assigns dense ids to distinct answer texts in first-seen order.
type AnswerDictionary struct {
	ids   map[string]int
	texts []string
}

func NewAnswerDictionary() *AnswerDictionary {
	return &AnswerDictionary{ids: make(map[string]int)}
}

// Add returns the id of text, assigning the next id when text is new
func (d *AnswerDictionary) Add(text string) int {
	if id, ok := d.ids[text]; ok {
		return id
	}
	id := len(d.texts)
	d.ids[text] = id
	d.texts = append(d.texts, text)
	return id
}

// ID looks up an already assigned id
func (d *AnswerDictionary) ID(text string) (int, bool) {
	id, ok := d.ids[text]
	return id, ok
}

// Texts returns the answers indexed by id
func (d *AnswerDictionary) Texts() []string {
	out := make([]string, len(d.texts))
	copy(out, d.texts)
	return out
}

// BuildDictionary scans every question of every test, in order.
func BuildDictionary(tests []*domain.Test) *AnswerDictionary {
	d := NewAnswerDictionary()
	for _, t := range tests {
		for _, q := range t.Questions {
			d.Add(q.Answer)
		}
	}
	return d
}

// Builder renders tests as an SQLite script.
type Builder struct{}

func NewBuilder() *Builder {
	return &Builder{}
}

var _ domain.ScriptBuilder = (*Builder)(nil)

// Build emits the schema, then the tests, questions and answers insert groups separated by
// blank lines. Test ids are positions in tests; question ids run across all tests.
func (b *Builder) Build(tests []*domain.Test) (*domain.Script, error) {
	answers := BuildDictionary(tests)
	upper := cases.Upper(language.Und)

	var sb strings.Builder
	sb.WriteString(Header)

	names := make([]string, len(tests))
	for testID, t := range tests {
		names[testID] = t.Name
		fmt.Fprintf(&sb, "INSERT INTO tests VALUES (%d, %s);\n", testID, Quote(t.Name))
	}
	sb.WriteString("\n")

	links := make([]domain.QuestionLink, 0, domain.CountQuestions(tests))
	questionID := 0
	for testID, t := range tests {
		for _, q := range t.Questions {
			answerID, ok := answers.ID(q.Answer)
			if !ok {
				// BuildDictionary saw every question above.
				return nil, domain.NewInternalError(fmt.Sprintf("answer %q has no id", q.Answer), nil)
			}
			fmt.Fprintf(&sb, "INSERT INTO questions VALUES (%d, %s, %s, %d, %d);\n",
				questionID, Quote(q.Text), Quote(upper.String(q.Text)), testID, answerID)
			links = append(links, domain.QuestionLink{Text: q.Text, TestName: t.Name, AnswerText: q.Answer})
			questionID++
		}
	}
	sb.WriteString("\n")

	for answerID, text := range answers.texts {
		fmt.Fprintf(&sb, "INSERT INTO answers VALUES (%d, %s);\n", answerID, Quote(text))
	}

	return &domain.Script{
		Text:          sb.String(),
		TestNames:     names,
		QuestionCount: questionID,
		Answers:       answers.Texts(),
		Links:         links,
	}, nil
}

// Quote renders s as an SQL string literal, doubling embedded single quotes.
func Quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}
