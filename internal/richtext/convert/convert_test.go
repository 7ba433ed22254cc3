package convert

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/cforcadmin/CforC-sub001/internal/richtext/blocks"
	"github.com/cforcadmin/CforC-sub001/internal/richtext/editordoc"
	"github.com/cforcadmin/CforC-sub001/internal/richtext/marks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func text(v string, ms ...marks.Mark) blocks.Text {
	return blocks.Text{Value: v, Marks: marks.NewSet(ms...)}
}

func run(v string, link string, ms ...marks.Mark) editordoc.Run {
	r := editordoc.Run{Text: v, Marks: marks.NewSet(ms...)}
	if link != "" {
		r.Link = &marks.Link{URL: link}
	}
	return r
}

func TestToEditorDocumentEmpty(t *testing.T) {
	want := &editordoc.Document{Content: []editordoc.Node{editordoc.EmptyParagraph()}}
	assert.Equal(t, want, ToEditorDocument(nil))
	assert.Equal(t, want, ToEditorDocument(blocks.Document{}))
	assert.Equal(t, want, ContentToEditorDocument(blocks.Content{}))
	assert.Equal(t, want, ContentToEditorDocument(blocks.Content{Kind: blocks.ContentInvalid}))
}

func TestToEditorDocument(t *testing.T) {
	doc := blocks.Document{
		blocks.Heading{Level: 3, Children: []blocks.Inline{text("Title")}},
		blocks.Paragraph{Children: []blocks.Inline{
			text("line1\nline2", marks.Bold),
			blocks.Link{URL: "https://x", Children: []blocks.Text{text("a"), text("b", marks.Italic)}},
		}},
		blocks.Quote{Children: []blocks.Inline{text("cite")}},
		blocks.List{Ordered: true, Items: []blocks.ListItem{{Children: []blocks.Inline{text("one")}}, {}}},
		blocks.Code{Text: "x := 1", Language: "go"},
		blocks.Unknown{Type: "callout", Children: []blocks.Inline{text("note")}},
		blocks.Paragraph{},
	}

	got := ToEditorDocument(doc)
	want := []editordoc.Node{
		editordoc.Heading{Level: 3, Content: []editordoc.Inline{run("Title", "")}},
		editordoc.Paragraph{Content: []editordoc.Inline{
			run("line1", "", marks.Bold),
			editordoc.HardBreak{},
			run("line2", "", marks.Bold),
			run("a", "https://x"),
			run("b", "https://x", marks.Italic),
		}},
		editordoc.Paragraph{Content: []editordoc.Inline{run("cite", "")}},
		editordoc.OrderedList{Items: []editordoc.ListItem{
			{Paragraph: editordoc.Paragraph{Content: []editordoc.Inline{run("one", "")}}},
			{Paragraph: editordoc.EmptyParagraph()},
		}},
		editordoc.CodeBlock{Text: "x := 1", Language: "go"},
		editordoc.Paragraph{Content: []editordoc.Inline{run("note", "")}},
		editordoc.EmptyParagraph(),
	}
	assert.Equal(t, want, got.Content)
}

func TestCompactRuns(t *testing.T) {
	tests := []struct {
		name string
		in   []blocks.Inline
		want []editordoc.Inline
	}{
		{name: "nil", in: nil, want: []editordoc.Inline{editordoc.Run{}}},
		{name: "single empty", in: []blocks.Inline{text("")}, want: []editordoc.Inline{editordoc.Run{}}},
		{name: "empty among others", in: []blocks.Inline{text(""), text("a"), text("")}, want: []editordoc.Inline{run("a", "")}},
		{name: "only break", in: []blocks.Inline{text("\n")}, want: []editordoc.Inline{editordoc.HardBreak{}}},
		{name: "trailing break", in: []blocks.Inline{text("a\n")}, want: []editordoc.Inline{run("a", ""), editordoc.HardBreak{}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, toRuns(tt.in))
		})
	}
}

func TestGroupRuns(t *testing.T) {
	tests := []struct {
		name string
		in   []editordoc.Inline
		want []blocks.Inline
	}{
		{
			name: "nil",
			in:   nil,
			want: []blocks.Inline{blocks.Text{}},
		},
		{
			name: "only empty runs",
			in:   []editordoc.Inline{editordoc.Run{}, editordoc.Run{}},
			want: []blocks.Inline{blocks.Text{}},
		},
		{
			name: "same link merges, new link flushes",
			in:   []editordoc.Inline{run("a", "X"), run("b", "X", marks.Bold), run("c", "Y")},
			want: []blocks.Inline{
				blocks.Link{URL: "X", Children: []blocks.Text{text("a"), text("b", marks.Bold)}},
				blocks.Link{URL: "Y", Children: []blocks.Text{text("c")}},
			},
		},
		{
			name: "link then plain text",
			in:   []editordoc.Inline{run("a", "X"), run("b", "")},
			want: []blocks.Inline{
				blocks.Link{URL: "X", Children: []blocks.Text{text("a")}},
				text("b"),
			},
		},
		{
			name: "plain text is not merged without a break",
			in:   []editordoc.Inline{run("a", ""), run("b", "")},
			want: []blocks.Inline{text("a"), text("b")},
		},
		{
			name: "hard break joins lines",
			in:   []editordoc.Inline{run("line1", ""), editordoc.HardBreak{}, run("line2", "")},
			want: []blocks.Inline{text("line1\nline2")},
		},
		{
			name: "hard break before different marks",
			in:   []editordoc.Inline{run("a", ""), editordoc.HardBreak{}, run("b", "", marks.Bold)},
			want: []blocks.Inline{text("a\n"), text("b", marks.Bold)},
		},
		{
			name: "leading break",
			in:   []editordoc.Inline{editordoc.HardBreak{}, run("a", "")},
			want: []blocks.Inline{text("\na")},
		},
		{
			name: "break inside link",
			in:   []editordoc.Inline{run("a", "X"), editordoc.HardBreak{}, run("b", "X")},
			want: []blocks.Inline{blocks.Link{URL: "X", Children: []blocks.Text{text("a\nb")}}},
		},
		{
			name: "break after flushed link",
			in:   []editordoc.Inline{run("a", "X"), run("b", "Y"), run("", ""), editordoc.HardBreak{}, run("c", "")},
			want: []blocks.Inline{
				blocks.Link{URL: "X", Children: []blocks.Text{text("a")}},
				blocks.Link{URL: "Y", Children: []blocks.Text{text("b\n")}},
				text("c"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GroupRuns(tt.in))
		})
	}
}

func TestToBlocks(t *testing.T) {
	assert.Equal(t, blocks.Document{}, ToBlocks(nil))

	data, err := json.Marshal(ToBlocks(nil))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))

	doc := editordoc.NewDocument(
		editordoc.Blockquote{Content: []editordoc.Node{
			editordoc.Paragraph{Content: []editordoc.Inline{run("q1", "")}},
			editordoc.Heading{Level: 2, Content: []editordoc.Inline{run("q2", "")}},
		}},
		editordoc.BulletList{Items: []editordoc.ListItem{{Paragraph: editordoc.EmptyParagraph()}}},
		editordoc.CodeBlock{Text: "a\nb"},
	)

	assert.Equal(t, blocks.Document{
		blocks.Paragraph{Children: []blocks.Inline{text("q1")}},
		blocks.Heading{Level: 2, Children: []blocks.Inline{text("q2")}},
		blocks.List{Items: []blocks.ListItem{{Children: []blocks.Inline{blocks.Text{}}}}},
		blocks.Code{Text: "a\nb"},
	}, ToBlocks(doc))
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		doc  blocks.Document
	}{
		{
			name: "marks",
			doc: blocks.Document{blocks.Paragraph{Children: []blocks.Inline{
				text("plain "),
				text("bold", marks.Bold),
				text("all", marks.Bold, marks.Italic, marks.Underline, marks.Strikethrough),
			}}},
		},
		{
			name: "links",
			doc: blocks.Document{blocks.Paragraph{Children: []blocks.Inline{
				text("see "),
				blocks.Link{URL: "https://a", Children: []blocks.Text{text("a"), text("b", marks.Italic)}},
				blocks.Link{URL: "https://b", Children: []blocks.Text{text("c")}},
			}}},
		},
		{
			name: "hard breaks",
			doc: blocks.Document{
				blocks.Heading{Level: 1, Children: []blocks.Inline{text("line1\nline2")}},
				blocks.Paragraph{Children: []blocks.Inline{text("\n")}},
				blocks.Paragraph{Children: []blocks.Inline{text("a\n", marks.Bold), text("b")}},
			},
		},
		{
			name: "image directive",
			doc:  blocks.Document{blocks.Paragraph{Children: []blocks.Inline{text("[IMAGE: /a.png | alt | small | left]")}}},
		},
		{
			name: "lists and code",
			doc: blocks.Document{
				blocks.List{Items: []blocks.ListItem{{Children: []blocks.Inline{text("x")}}}},
				blocks.List{Ordered: true, Items: []blocks.ListItem{{Children: []blocks.Inline{blocks.Text{}}}}},
				blocks.Code{Text: "fmt.Println()", Language: "go"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.doc, ToBlocks(ToEditorDocument(tt.doc)))
		})
	}
}

func TestHeadingLevelClamped(t *testing.T) {
	tests := []struct {
		level int
		want  int
	}{
		{level: 9, want: 6},
		{level: 0, want: 1},
		{level: -2, want: 1},
		{level: 4, want: 4},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprint(tt.level), func(t *testing.T) {
			doc := ToEditorDocument(blocks.Document{blocks.Heading{Level: tt.level, Children: []blocks.Inline{text("T")}}})
			require.Len(t, doc.Content, 1)
			assert.Equal(t, editordoc.Heading{Level: tt.want, Content: []editordoc.Inline{run("T", "")}}, doc.Content[0])

			back := ToBlocks(editordoc.NewDocument(editordoc.Heading{Level: tt.level, Content: []editordoc.Inline{run("T", "")}}))
			assert.Equal(t, blocks.Document{blocks.Heading{Level: tt.want, Children: []blocks.Inline{text("T")}}}, back)
		})
	}
}

func TestQuoteBecomesParagraph(t *testing.T) {
	doc := blocks.Document{blocks.Quote{Children: []blocks.Inline{text("cite")}}}
	assert.Equal(t, blocks.Document{blocks.Paragraph{Children: []blocks.Inline{text("cite")}}}, ToBlocks(ToEditorDocument(doc)))
}

func TestLegacy(t *testing.T) {
	doc := LegacyToBlocks("first\r\n\nthird")
	assert.Equal(t, blocks.Document{
		blocks.Paragraph{Children: []blocks.Inline{text("first")}},
		blocks.Paragraph{Children: []blocks.Inline{text("")}},
		blocks.Paragraph{Children: []blocks.Inline{text("third")}},
	}, doc)

	editor := ContentToEditorDocument(blocks.FromLegacy("a\nb"))
	require.Len(t, editor.Content, 2)
	assert.Equal(t, editordoc.Paragraph{Content: []editordoc.Inline{run("b", "")}}, editor.Content[1])
}
