package render

import (
	"testing"
)

func TestParseBlockTypes(t *testing.T) {
	tests := []struct {
		name string
		line string
		want BlockType
	}{
		{"heading", "## Meeting Minutes", BlockHeading},
		{"subheading", "### Date", BlockSubheading},
		{"bullet dash", "- Budget approved", BlockBullet},
		{"bullet star", "* Budget approved", BlockBullet},
		{"numbered", "1. Opening remarks", BlockNumbered},
		{"numbered two digits", "12. Closing", BlockNumbered},
		{"blank", "", BlockBreak},
		{"paragraph", "The meeting opened at nine.", BlockParagraph},
		{"digits without dot", "2024 review", BlockParagraph},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blocks := Parse(tt.line)
			if len(blocks) != 1 {
				t.Fatalf("Parse(%q) produced %d blocks, want 1", tt.line, len(blocks))
			}
			if blocks[0].Type != tt.want {
				t.Errorf("Parse(%q) type = %v, want %v", tt.line, blocks[0].Type, tt.want)
			}
		})
	}
}

func TestParseHeadingText(t *testing.T) {
	blocks := Parse("## Key Discussions & Decisions")
	if got := blockText(blocks[0]); got != "Key Discussions & Decisions" {
		t.Errorf("heading text = %q", got)
	}
}

func TestParseBoldSpans(t *testing.T) {
	blocks := Parse("The **Q3 budget** was approved by **all attendees**.")
	if len(blocks) != 1 {
		t.Fatalf("got %d blocks", len(blocks))
	}

	spans := blocks[0].Spans
	want := []Span{
		{Text: "The "},
		{Text: "Q3 budget", Bold: true},
		{Text: " was approved by "},
		{Text: "all attendees", Bold: true},
		{Text: "."},
	}

	if len(spans) != len(want) {
		t.Fatalf("got %d spans, want %d: %+v", len(spans), len(want), spans)
	}
	for i := range want {
		if spans[i] != want[i] {
			t.Errorf("span %d = %+v, want %+v", i, spans[i], want[i])
		}
	}
}

func TestParseBulletWithBold(t *testing.T) {
	blocks := Parse("- **Owner**: Daniel")
	if blocks[0].Type != BlockBullet {
		t.Fatalf("type = %v", blocks[0].Type)
	}
	if !blocks[0].Spans[0].Bold || blocks[0].Spans[0].Text != "Owner" {
		t.Errorf("first span = %+v, want bold Owner", blocks[0].Spans[0])
	}
}

func TestParseDocument(t *testing.T) {
	doc := "## Meeting Minutes\n### Date\n2024-01-01\n\n- Item one\n1. First\nClosing remarks."
	blocks := Parse(doc)

	wantTypes := []BlockType{
		BlockHeading,
		BlockSubheading,
		BlockParagraph,
		BlockBreak,
		BlockBullet,
		BlockNumbered,
		BlockParagraph,
	}

	if len(blocks) != len(wantTypes) {
		t.Fatalf("got %d blocks, want %d", len(blocks), len(wantTypes))
	}
	for i, wt := range wantTypes {
		if blocks[i].Type != wt {
			t.Errorf("block %d type = %v, want %v", i, blocks[i].Type, wt)
		}
	}
}
