package parser

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"os"
	"strings"

	"test-extractor/internal/config"
	"test-extractor/internal/domain"
)

// node is a generic XML element; resource files are small enough to hold as a tree.
type node struct {
	XMLName xml.Name
	Attrs   []xml.Attr `xml:",any,attr"`
	Inner   []byte     `xml:",innerxml"`
	Nodes   []node     `xml:",any"`
}

// text returns all character data inside n in document order, styling tags such as <b> included.
func (n *node) text() string {
	var sb strings.Builder
	d := xml.NewDecoder(bytes.NewReader(n.Inner))
	for {
		tok, err := d.Token()
		if err != nil {
			break
		}
		if cd, ok := tok.(xml.CharData); ok {
			sb.Write(cd)
		}
	}
	return sb.String()
}

func (n *node) attr(name string) (string, bool) {
	for _, a := range n.Attrs {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

// XMLArrayParser reads questions from an Android string-array resource. The array is a flat
// list in which every RecordWidth consecutive items describe one question.
type XMLArrayParser struct {
	cfg config.XMLConfig
}

func NewXMLArrayParser(cfg config.XMLConfig) *XMLArrayParser {
	return &XMLArrayParser{cfg: cfg}
}

var _ domain.SourceParser = (*XMLArrayParser)(nil)

// Parse returns one question per complete record. A trailing partial record is dropped.
func (p *XMLArrayParser) Parse(path string) ([]domain.Question, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var root node
	if err := xml.Unmarshal(b, &root); err != nil {
		return nil, domain.NewError(domain.ErrMalformedSource, fmt.Sprintf("failed to parse XML %s", path), err)
	}

	items, found := collectItems(&root, p.cfg.ArrayName)
	if !found {
		return nil, domain.NewMalformedSourceError(path, fmt.Sprintf("array %q not found", p.cfg.ArrayName))
	}

	width := p.cfg.RecordWidth
	questions := make([]domain.Question, 0, len(items)/width)
	for i := 0; i+width <= len(items); i += width {
		questions = append(questions, domain.NewQuestion(
			items[i+p.cfg.QuestionOffset],
			items[i+p.cfg.AnswerOffset],
		))
	}
	return questions, nil
}

// collectItems walks the tree in document order and gathers the <item> children of every
// element whose name attribute equals arrayName.
func collectItems(n *node, arrayName string) ([]string, bool) {
	var items []string
	found := false

	var walk func(n *node)
	walk = func(n *node) {
		if v, ok := n.attr("name"); ok && v == arrayName {
			found = true
			for i := range n.Nodes {
				if n.Nodes[i].XMLName.Local == "item" {
					items = append(items, n.Nodes[i].text())
				}
			}
		}
		for i := range n.Nodes {
			walk(&n.Nodes[i])
		}
	}
	walk(n)

	return items, found
}
