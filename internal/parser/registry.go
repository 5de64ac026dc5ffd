package parser

import (
	"test-extractor/internal/config"
	"test-extractor/internal/domain"
)

// Registry picks the parser matching a source file's format.
type Registry struct {
	parsers map[domain.Format]domain.SourceParser
}

// NewRegistry registers the XML array and spreadsheet parsers.
func NewRegistry(xmlCfg config.XMLConfig, sheetCfg config.SpreadsheetConfig) *Registry {
	r := &Registry{parsers: make(map[domain.Format]domain.SourceParser)}
	r.Register(domain.FormatXML, NewXMLArrayParser(xmlCfg))
	r.Register(domain.FormatSpreadsheet, NewSpreadsheetParser(sheetCfg))
	return r
}

// Register adds or replaces the parser for a format
func (r *Registry) Register(format domain.Format, p domain.SourceParser) {
	r.parsers[format] = p
}

var _ domain.SourceParser = (*Registry)(nil)

// Parse dispatches on the file extension. Packages must be extracted before they can be parsed.
func (r *Registry) Parse(path string) ([]domain.Question, error) {
	p, ok := r.parsers[domain.FormatOf(path)]
	if !ok {
		return nil, domain.NewUnsupportedFormatError(path)
	}
	return p.Parse(path)
}
