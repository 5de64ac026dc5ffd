package script

import (
	"strings"
	"testing"

	"test-extractor/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTests() []*domain.Test {
	xmlTest := domain.NewTest("Электробезопасность", "sources/elektro.arrays.xml")
	xmlTest.Questions = []domain.Question{{Text: "Что такое ток?", Answer: "B"}}

	sheetTest := domain.NewTest("Наряд-допуск", "sources/наряд-допуск-2.xlsx")
	sheetTest.Questions = []domain.Question{
		{Text: "Кто выдаёт наряд?", Answer: "A"},
		{Text: "Срок действия?", Answer: "B"},
	}
	return []*domain.Test{xmlTest, sheetTest}
}

func TestAnswerDictionary_FirstSeenOrder(t *testing.T) {
	d := BuildDictionary(sampleTests())

	assert.Equal(t, []string{"B", "A"}, d.Texts())

	id, ok := d.ID("B")
	assert.True(t, ok)
	assert.Equal(t, 0, id)
	id, ok = d.ID("A")
	assert.True(t, ok)
	assert.Equal(t, 1, id)
	_, ok = d.ID("C")
	assert.False(t, ok)

	assert.Equal(t, 0, d.Add("B"))
	assert.Equal(t, 2, d.Add("C"))
}

func TestBuilder_Build_EndToEndScenario(t *testing.T) {
	s, err := NewBuilder().Build(sampleTests())
	require.NoError(t, err)

	expected := Header +
		"INSERT INTO tests VALUES (0, 'Электробезопасность');\n" +
		"INSERT INTO tests VALUES (1, 'Наряд-допуск');\n" +
		"\n" +
		"INSERT INTO questions VALUES (0, 'Что такое ток?', 'ЧТО ТАКОЕ ТОК?', 0, 0);\n" +
		"INSERT INTO questions VALUES (1, 'Кто выдаёт наряд?', 'КТО ВЫДАЁТ НАРЯД?', 1, 1);\n" +
		"INSERT INTO questions VALUES (2, 'Срок действия?', 'СРОК ДЕЙСТВИЯ?', 1, 0);\n" +
		"\n" +
		"INSERT INTO answers VALUES (0, 'B');\n" +
		"INSERT INTO answers VALUES (1, 'A');\n"

	assert.Equal(t, expected, s.Text)
	assert.Equal(t, []string{"Электробезопасность", "Наряд-допуск"}, s.TestNames)
	assert.Equal(t, 3, s.QuestionCount)
	assert.Equal(t, []string{"B", "A"}, s.Answers)
	assert.Equal(t, []domain.QuestionLink{
		{Text: "Что такое ток?", TestName: "Электробезопасность", AnswerText: "B"},
		{Text: "Кто выдаёт наряд?", TestName: "Наряд-допуск", AnswerText: "A"},
		{Text: "Срок действия?", TestName: "Наряд-допуск", AnswerText: "B"},
	}, s.Links)
}

func TestBuilder_Build_EscapesQuotes(t *testing.T) {
	test := domain.NewTest("ПАО «Запорожсталь» o'clock", "a.xlsx")
	test.Questions = []domain.Question{{Text: "It's 'live'?", Answer: "Don't touch"}}

	s, err := NewBuilder().Build([]*domain.Test{test})
	require.NoError(t, err)

	assert.Contains(t, s.Text, "INSERT INTO tests VALUES (0, 'ПАО «Запорожсталь» o''clock');\n")
	assert.Contains(t, s.Text, "INSERT INTO questions VALUES (0, 'It''s ''live''?', 'IT''S ''LIVE''?', 0, 0);\n")
	assert.Contains(t, s.Text, "INSERT INTO answers VALUES (0, 'Don''t touch');\n")
}

func TestBuilder_Build_FullUnicodeUpperCase(t *testing.T) {
	test := domain.NewTest("t", "a.xlsx")
	test.Questions = []domain.Question{{Text: "straße ёж", Answer: "x"}}

	s, err := NewBuilder().Build([]*domain.Test{test})
	require.NoError(t, err)

	assert.Contains(t, s.Text, "'STRASSE ЁЖ'")
}

func TestBuilder_Build_NoTests(t *testing.T) {
	s, err := NewBuilder().Build(nil)
	require.NoError(t, err)

	assert.Equal(t, Header+"\n\n", s.Text)
	assert.Zero(t, s.QuestionCount)
	assert.Empty(t, s.Answers)
	assert.Empty(t, s.Links)
}

func TestBuilder_Build_InsertGroupOrder(t *testing.T) {
	s, err := NewBuilder().Build(sampleTests())
	require.NoError(t, err)

	lastTest := strings.LastIndex(s.Text, "INSERT INTO tests")
	firstQuestion := strings.Index(s.Text, "INSERT INTO questions")
	lastQuestion := strings.LastIndex(s.Text, "INSERT INTO questions")
	firstAnswer := strings.Index(s.Text, "INSERT INTO answers")

	assert.Less(t, strings.Index(s.Text, "CREATE TABLE answers"), lastTest)
	assert.Less(t, lastTest, firstQuestion)
	assert.Less(t, lastQuestion, firstAnswer)
}

func TestQuote(t *testing.T) {
	assert.Equal(t, "''", Quote(""))
	assert.Equal(t, "'a''b'", Quote("a'b"))
	assert.Equal(t, "''''''", Quote("''"))
}
