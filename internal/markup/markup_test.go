package markup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender_RepresentativeDocument(t *testing.T) {
	blocks := Render("# Title\n**bold** and *italic* and __under__\n- item1\n- item2")
	require.Len(t, blocks, 4)

	assert.Equal(t, BlockHeading, blocks[0].Kind)
	assert.Equal(t, 1, blocks[0].Level)
	assert.Equal(t, "Title", blocks[0].Text)

	para := blocks[1]
	assert.Equal(t, BlockParagraph, para.Kind)
	require.Len(t, para.Spans, 5)
	assert.Equal(t, Span{Kind: SpanBold, Text: "bold"}, para.Spans[0])
	assert.Equal(t, Span{Kind: SpanText, Text: " and "}, para.Spans[1])
	assert.Equal(t, Span{Kind: SpanItalic, Text: "italic"}, para.Spans[2])
	assert.Equal(t, Span{Kind: SpanText, Text: " and "}, para.Spans[3])
	assert.Equal(t, Span{Kind: SpanUnderline, Text: "under"}, para.Spans[4])

	assert.Equal(t, BlockBullet, blocks[2].Kind)
	assert.Equal(t, "item1", blocks[2].Text)
	assert.Equal(t, BlockBullet, blocks[3].Kind)
	assert.Equal(t, "item2", blocks[3].Text)
}

func TestRender_Headings(t *testing.T) {
	tests := []struct {
		line      string
		wantKind  BlockKind
		wantLevel int
		wantText  string
	}{
		{"# one", BlockHeading, 1, "one"},
		{"## two", BlockHeading, 2, "two"},
		{"### three", BlockHeading, 3, "three"},
		{"#### four hashes is a paragraph", BlockParagraph, 0, "#### four hashes is a paragraph"},
		{"#no space", BlockParagraph, 0, "#no space"},
		{"##   padded   ", BlockHeading, 2, "padded"},
	}

	for _, tt := range tests {
		b := Render(tt.line)[0]
		assert.Equal(t, tt.wantKind, b.Kind, tt.line)
		assert.Equal(t, tt.wantLevel, b.Level, tt.line)
		assert.Equal(t, tt.wantText, b.Text, tt.line)
	}
}

func TestRender_Lists(t *testing.T) {
	blocks := Render("- dash\n* star\n12. twelfth")
	require.Len(t, blocks, 3)
	assert.Equal(t, BlockBullet, blocks[0].Kind)
	assert.Equal(t, "dash", blocks[0].Text)
	assert.Equal(t, BlockBullet, blocks[1].Kind)
	assert.Equal(t, "star", blocks[1].Text)
	assert.Equal(t, BlockNumbered, blocks[2].Kind)
	assert.Equal(t, "twelfth", blocks[2].Text)
}

func TestRender_BlankLineBecomesLineBreak(t *testing.T) {
	blocks := Render("a\n\nb")
	require.Len(t, blocks, 3)
	assert.Equal(t, BlockLineBreak, blocks[1].Kind)
}

func TestRender_BoldTakesPrecedenceOverItalic(t *testing.T) {
	spans := Render("**strong**")[0].Spans
	require.Len(t, spans, 1)
	assert.Equal(t, Span{Kind: SpanBold, Text: "strong"}, spans[0])
}

func TestRender_UnbalancedMarkersStayLiteral(t *testing.T) {
	tests := []string{"**dangling", "*", "__half", "a ** b", "****"}
	for _, in := range tests {
		spans := Render(in)[0].Spans
		require.Len(t, spans, 1, in)
		assert.Equal(t, Span{Kind: SpanText, Text: in}, spans[0], in)
	}
}

func TestRender_HeadingTextGetsInlineStyles(t *testing.T) {
	b := Render("## a **b**")[0]
	require.Len(t, b.Spans, 2)
	assert.Equal(t, Span{Kind: SpanText, Text: "a "}, b.Spans[0])
	assert.Equal(t, Span{Kind: SpanBold, Text: "b"}, b.Spans[1])
}
