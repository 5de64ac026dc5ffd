package domain

import (
	"path/filepath"
	"strings"
)

// Question is a single quiz item paired with its correct answer text.
type Question struct {
	Text   string
	Answer string
}

// NewQuestion creates a Question with surrounding whitespace trimmed from both fields
func NewQuestion(text, answer string) Question {
	return Question{
		Text:   strings.TrimSpace(text),
		Answer: strings.TrimSpace(answer),
	}
}

// Test is a named question set. Path is rewritten once when the questions
// have to be unpacked from an application package first.
type Test struct {
	Name      string
	Path      string
	Questions []Question
}

// NewTest creates a new Test instance
func NewTest(name, path string) *Test {
	return &Test{
		Name: name,
		Path: path,
	}
}

// Validate validates the test
func (t *Test) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return NewValidationError("test name is required")
	}
	if strings.TrimSpace(t.Path) == "" {
		return NewValidationError("test path is required")
	}
	return nil
}

// Format returns the source format of the test's current path
func (t *Test) Format() Format {
	return FormatOf(t.Path)
}

// CountQuestions returns the number of questions across all tests
func CountQuestions(tests []*Test) int {
	n := 0
	for _, t := range tests {
		n += len(t.Questions)
	}
	return n
}

// Format identifies how a source file is read
type Format string

const (
	FormatUnknown     Format = ""
	FormatXML         Format = "xml"
	FormatSpreadsheet Format = "xlsx"
	FormatPackage     Format = "apk"
)

// FormatOf maps a file extension to its Format. Extensions are compared case-insensitively.
func FormatOf(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xml":
		return FormatXML
	case ".xlsx":
		return FormatSpreadsheet
	case ".apk":
		return FormatPackage
	default:
		return FormatUnknown
	}
}

// ValidationError represents a validation error
type ValidationError struct {
	message string
}

func (e *ValidationError) Error() string {
	return e.message
}

func NewValidationError(message string) error {
	return &ValidationError{message: message}
}
