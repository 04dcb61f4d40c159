package render

import (
	"regexp"
	"strings"
)

// BlockType identifies the semantic role of one line of a document.
type BlockType string

const (
	BlockHeading    BlockType = "heading"
	BlockSubheading BlockType = "subheading"
	BlockBullet     BlockType = "bullet"
	BlockNumbered   BlockType = "numbered"
	BlockBreak      BlockType = "break"
	BlockParagraph  BlockType = "paragraph"
)

// Span is a run of text with optional strong emphasis.
type Span struct {
	Text string `json:"text"`
	Bold bool   `json:"bold,omitempty"`
}

// Block is one rendered line of a document.
type Block struct {
	Type  BlockType `json:"type"`
	Spans []Span    `json:"spans,omitempty"`
}

var (
	reHeading    = regexp.MustCompile(`^##\s+(.+)$`)
	reSubheading = regexp.MustCompile(`^###\s+(.+)$`)
	reBullet     = regexp.MustCompile(`^[\-\*]\s+(.+)$`)
	reNumbered   = regexp.MustCompile(`^\d+\.\s+.+$`)
	reBold       = regexp.MustCompile(`\*\*(.+?)\*\*`)
)

// Parse turns line-oriented generated text into semantic blocks: "## " marks
// a section heading, "### " a sub-heading, "- " or "* " a list item, a
// leading "<digits>. " a numbered item, a blank line a paragraph break, and
// anything else a paragraph. Doubled asterisks mark bold spans.
func Parse(text string) []Block {
	var blocks []Block

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)

		switch {
		case trimmed == "":
			blocks = append(blocks, Block{Type: BlockBreak})

		// The sub-heading check runs first: "## " would match "### " too.
		case reSubheading.MatchString(trimmed):
			m := reSubheading.FindStringSubmatch(trimmed)
			blocks = append(blocks, Block{Type: BlockSubheading, Spans: []Span{{Text: cleanInline(m[1])}}})

		case reHeading.MatchString(trimmed):
			m := reHeading.FindStringSubmatch(trimmed)
			blocks = append(blocks, Block{Type: BlockHeading, Spans: []Span{{Text: cleanInline(m[1])}}})

		case reBullet.MatchString(trimmed):
			m := reBullet.FindStringSubmatch(trimmed)
			blocks = append(blocks, Block{Type: BlockBullet, Spans: parseSpans(m[1])})

		case reNumbered.MatchString(trimmed):
			blocks = append(blocks, Block{Type: BlockNumbered, Spans: parseSpans(trimmed)})

		default:
			blocks = append(blocks, Block{Type: BlockParagraph, Spans: parseSpans(trimmed)})
		}
	}

	return blocks
}

// parseSpans splits text on **bold** markers into plain and bold spans.
func parseSpans(text string) []Span {
	parts := reBold.Split(text, -1)
	matches := reBold.FindAllStringSubmatch(text, -1)

	var spans []Span
	for i, part := range parts {
		if part != "" {
			spans = append(spans, Span{Text: cleanInline(part)})
		}
		if i < len(matches) {
			spans = append(spans, Span{Text: cleanInline(matches[i][1]), Bold: true})
		}
	}
	return spans
}

func cleanInline(s string) string {
	s = strings.ReplaceAll(s, "**", "")
	s = strings.ReplaceAll(s, "__", "")
	s = strings.ReplaceAll(s, "`", "")
	return s
}
