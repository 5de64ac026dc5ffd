package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewQuestion_TrimsWhitespace(t *testing.T) {
	q := NewQuestion("  Что такое ток?\n", "\tB ")
	assert.Equal(t, "Что такое ток?", q.Text)
	assert.Equal(t, "B", q.Answer)
}

func TestTest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		test    *Test
		wantErr bool
	}{
		{"valid", NewTest("Электробезопасность", "./sources/a.xlsx"), false},
		{"missing name", NewTest(" ", "./sources/a.xlsx"), true},
		{"missing path", NewTest("name", ""), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.test.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestFormatOf(t *testing.T) {
	cases := map[string]Format{
		"./sources/elektro.apk":         FormatPackage,
		"./sources/elektro.arrays.xml":  FormatXML,
		"./sources/наряд-допуск-2.xlsx": FormatSpreadsheet,
		"./sources/UPPER.XLSX":          FormatSpreadsheet,
		"./sources/legacy.xls":          FormatUnknown,
		"noext":                         FormatUnknown,
	}
	for path, want := range cases {
		assert.Equal(t, want, FormatOf(path), path)
	}
}

func TestCountQuestions(t *testing.T) {
	a := NewTest("a", "a.xml")
	a.Questions = []Question{{Text: "q1", Answer: "B"}}
	b := NewTest("b", "b.xlsx")
	b.Questions = []Question{{Text: "q2", Answer: "A"}, {Text: "q3", Answer: "B"}}

	assert.Equal(t, 3, CountQuestions([]*Test{a, b}))
	assert.Equal(t, 0, CountQuestions(nil))
}

func TestIsCode(t *testing.T) {
	base := NewExtractionError("elektro.apk", errors.New("exit status 1"))
	wrapped := fmt.Errorf("test %q: %w", "Электро", base)

	assert.True(t, IsCode(wrapped, ErrExtractionFailed))
	assert.False(t, IsCode(wrapped, ErrMalformedSource))
	assert.False(t, IsCode(errors.New("plain"), ErrExtractionFailed))
	assert.Contains(t, wrapped.Error(), "exit status 1")
}
