package parser

import (
	"fmt"
	"strings"

	"test-extractor/internal/config"
	"test-extractor/internal/domain"

	"github.com/xuri/excelize/v2"
)

// SpreadsheetParser reads questions from the first worksheet of an xlsx workbook.
// Row 1 is the header row; every following row is one question.
type SpreadsheetParser struct {
	cfg config.SpreadsheetConfig
}

func NewSpreadsheetParser(cfg config.SpreadsheetConfig) *SpreadsheetParser {
	return &SpreadsheetParser{cfg: cfg}
}

var _ domain.SourceParser = (*SpreadsheetParser)(nil)

// Parse pairs the question column with the answer column row by row.
func (p *SpreadsheetParser) Parse(path string) ([]domain.Question, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, domain.NewMalformedSourceError(path, "workbook has no worksheets")
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read worksheet %q of %s: %w", sheets[0], path, err)
	}
	if len(rows) == 0 {
		return nil, domain.NewMalformedSourceError(path, "worksheet is empty")
	}

	questionCol, answerCol, err := p.columns(rows[0])
	if err != nil {
		return nil, domain.NewMalformedSourceError(path, err.Error())
	}

	questions := make([]domain.Question, 0, len(rows)-1)
	for _, row := range rows[1:] {
		text, answer := cell(row, questionCol), cell(row, answerCol)
		if strings.TrimSpace(text) == "" && strings.TrimSpace(answer) == "" {
			continue
		}
		questions = append(questions, domain.NewQuestion(text, answer))
	}
	return questions, nil
}

// columns resolves the question column by its exact header and the answer column by
// AnswerHeader, falling back to the AnswerColumn position when no header matches.
func (p *SpreadsheetParser) columns(header []string) (int, int, error) {
	questionCol, answerCol := -1, -1
	for i, h := range header {
		if h == p.cfg.QuestionHeader && questionCol < 0 {
			questionCol = i
		}
		if p.cfg.AnswerHeader != "" && h == p.cfg.AnswerHeader && answerCol < 0 {
			answerCol = i
		}
	}
	if questionCol < 0 {
		return 0, 0, fmt.Errorf("column %q not found", p.cfg.QuestionHeader)
	}
	if answerCol < 0 {
		answerCol = p.cfg.AnswerColumn
	}
	return questionCol, answerCol, nil
}

// cell returns row[i]; excelize trims trailing empty cells from each row.
func cell(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}
