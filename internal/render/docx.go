package render

import (
	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"
)

const (
	fontName = "Times New Roman"
	fontSize = 13
)

// WriteDocx renders generated minutes into a styled docx file.
func WriteDocx(title, content, outputPath string) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return err
	}

	addStyledRun(doc.AddParagraph(""), title, true, 16)

	for _, block := range Parse(content) {
		switch block.Type {
		case BlockBreak:
			continue

		case BlockHeading:
			addStyledRun(doc.AddParagraph(""), blockText(block), true, 15)

		case BlockSubheading:
			addStyledRun(doc.AddParagraph(""), blockText(block), true, 14)

		case BlockBullet:
			addSpans(doc.AddParagraph(""), append([]Span{{Text: "• "}}, block.Spans...))

		case BlockNumbered, BlockParagraph:
			addSpans(doc.AddParagraph(""), block.Spans)
		}
	}

	return doc.SaveTo(outputPath)
}

func blockText(b Block) string {
	var text string
	for _, s := range b.Spans {
		text += s.Text
	}
	return text
}

func addStyledRun(p *docx.Paragraph, text string, bold bool, size uint64) {
	run := p.AddText(text).Font(fontName).Size(size).Color("000000")
	if bold {
		run.Bold(true)
	}
}

func addSpans(p *docx.Paragraph, spans []Span) {
	for _, s := range spans {
		run := p.AddText(s.Text).Font(fontName).Size(fontSize).Color("000000")
		if s.Bold {
			run.Bold(true)
		}
	}
}
