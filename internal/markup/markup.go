// Package markup converts the constrained inline/block markup used in note
// content into typed, renderable segments. It is deliberately not a real
// markdown parser: the behavior is a small set of line patterns and inline
// substitutions, applied in a fixed order.
package markup

import (
	"regexp"
	"strings"
)

type BlockKind string

const (
	BlockHeading   BlockKind = "heading"
	BlockBullet    BlockKind = "bullet"
	BlockNumbered  BlockKind = "numbered"
	BlockParagraph BlockKind = "paragraph"
	BlockLineBreak BlockKind = "linebreak"
)

type SpanKind string

const (
	SpanText      SpanKind = "text"
	SpanBold      SpanKind = "bold"
	SpanItalic    SpanKind = "italic"
	SpanUnderline SpanKind = "underline"
)

// Span is an inline run of text with a single style.
type Span struct {
	Kind SpanKind `json:"kind"`
	Text string   `json:"text"`
}

// Block is one rendered line. Level is 1–3 for headings and 0 otherwise.
// Text is the line's content with block markers stripped; Spans is the
// inline segmentation of that text.
type Block struct {
	Kind  BlockKind `json:"kind"`
	Level int       `json:"level,omitempty"`
	Text  string    `json:"text"`
	Spans []Span    `json:"spans,omitempty"`
}

var (
	headingRe  = regexp.MustCompile(`^(#{1,3})\s+(.*)$`)
	bulletRe   = regexp.MustCompile(`^[-*]\s+(.*)$`)
	numberedRe = regexp.MustCompile(`^\d+\.\s+(.*)$`)

	// Inline precedence matters: bold runs first so that "**" is never
	// seen by the italic pass as two single asterisks.
	boldRe      = regexp.MustCompile(`\*\*(.+?)\*\*`)
	italicRe    = regexp.MustCompile(`\*([^*]+)\*`)
	underlineRe = regexp.MustCompile(`__(.+?)__`)
)

// Render splits text into lines and converts each into a Block. Unmatched
// or unbalanced markers are left as literal text, never an error.
func Render(text string) []Block {
	lines := strings.Split(text, "\n")
	blocks := make([]Block, 0, len(lines))

	for _, line := range lines {
		blocks = append(blocks, renderLine(line))
	}

	return blocks
}

func renderLine(line string) Block {
	if strings.TrimSpace(line) == "" {
		return Block{Kind: BlockLineBreak, Text: ""}
	}

	if m := headingRe.FindStringSubmatch(line); m != nil {
		text := strings.TrimSpace(m[2])
		return Block{Kind: BlockHeading, Level: len(m[1]), Text: text, Spans: renderInline(text)}
	}

	if m := bulletRe.FindStringSubmatch(line); m != nil {
		return Block{Kind: BlockBullet, Text: m[1], Spans: renderInline(m[1])}
	}

	if m := numberedRe.FindStringSubmatch(line); m != nil {
		return Block{Kind: BlockNumbered, Text: m[1], Spans: renderInline(m[1])}
	}

	return Block{Kind: BlockParagraph, Text: line, Spans: renderInline(line)}
}

// renderInline applies the inline patterns in precedence order. Each pass
// only re-examines runs still marked as plain text, so a bolded region is
// never re-matched by the italic or underline pass.
func renderInline(text string) []Span {
	spans := []Span{{Kind: SpanText, Text: text}}
	spans = applyPattern(spans, boldRe, SpanBold)
	spans = applyPattern(spans, italicRe, SpanItalic)
	spans = applyPattern(spans, underlineRe, SpanUnderline)
	return spans
}

func applyPattern(spans []Span, re *regexp.Regexp, kind SpanKind) []Span {
	out := make([]Span, 0, len(spans))

	for _, s := range spans {
		if s.Kind != SpanText {
			out = append(out, s)
			continue
		}

		rest := s.Text
		for {
			loc := re.FindStringSubmatchIndex(rest)
			if loc == nil {
				break
			}
			if before := rest[:loc[0]]; before != "" {
				out = append(out, Span{Kind: SpanText, Text: before})
			}
			out = append(out, Span{Kind: kind, Text: rest[loc[2]:loc[3]]})
			rest = rest[loc[1]:]
		}
		if rest != "" {
			out = append(out, Span{Kind: SpanText, Text: rest})
		}
	}

	return out
}
