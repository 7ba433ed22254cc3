package editordoc

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/cforcadmin/CforC-sub001/internal/richtext/marks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleTipTap = `{
	"type": "doc",
	"content": [
		{"type": "heading", "attrs": {"level": 2}, "content": [{"type": "text", "text": "Title"}]},
		{
			"type": "paragraph",
			"attrs": {"textAlign": "left"},
			"content": [
				{"type": "text", "marks": [{"type": "bold"}, {"type": "italic"}], "text": "Hello"},
				{"type": "hardBreak"},
				{"type": "text", "marks": [{"type": "link", "attrs": {"href": "https://example.org", "target": "_blank"}}, {"type": "strike"}], "text": "site"}
			]
		},
		{"type": "bulletList", "content": [
			{"type": "listItem", "content": [{"type": "paragraph", "content": [{"type": "text", "text": "one"}]}]},
			{"type": "listItem", "content": [{"type": "paragraph"}]}
		]},
		{"type": "orderedList", "attrs": {"start": 1}, "content": [
			{"type": "listItem", "content": [{"type": "paragraph", "content": [{"type": "text", "text": "first"}]}]}
		]},
		{"type": "codeBlock", "attrs": {"language": "go"}, "content": [{"type": "text", "text": "x := 1"}]},
		{"type": "blockquote", "content": [{"type": "paragraph", "content": [{"type": "text", "text": "cite"}]}]}
	]
}`

func TestParse(t *testing.T) {
	doc, err := Parse(strings.NewReader(sampleTipTap))
	require.NoError(t, err)

	want := &Document{Content: []Node{
		Heading{Level: 2, Content: []Inline{Run{Text: "Title"}}},
		Paragraph{Content: []Inline{
			Run{Text: "Hello", Marks: marks.NewSet(marks.Bold, marks.Italic)},
			HardBreak{},
			Run{Text: "site", Marks: marks.NewSet(marks.Strikethrough), Link: &marks.Link{URL: "https://example.org"}},
		}},
		BulletList{Items: []ListItem{
			{Paragraph: Paragraph{Content: []Inline{Run{Text: "one"}}}},
			{Paragraph: EmptyParagraph()},
		}},
		OrderedList{Items: []ListItem{
			{Paragraph: Paragraph{Content: []Inline{Run{Text: "first"}}}},
		}},
		CodeBlock{Text: "x := 1", Language: "go"},
		Blockquote{Content: []Node{Paragraph{Content: []Inline{Run{Text: "cite"}}}}},
	}}
	assert.Equal(t, want, doc)
}

func TestParseEmpty(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "empty input", input: ""},
		{name: "doc without content", input: `{"type":"doc"}`},
		{name: "only unknown nodes", input: `{"type":"doc","content":[{"type":"horizontalRule"}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Parse(strings.NewReader(tt.input))
			require.NoError(t, err)
			assert.Equal(t, NewDocument(), doc)
		})
	}
}

func TestParseSyntaxError(t *testing.T) {
	_, err := Parse(strings.NewReader(`{"type":"doc","content":[`))
	assert.Error(t, err)
}

func TestParseFallbacks(t *testing.T) {
	input := `{"type":"doc","content":[
		{"type":"heading","attrs":{"level":12},"content":[{"type":"text","text":"h"}]},
		{"type":"spoiler","content":[{"type":"paragraph","content":[{"type":"text","text":"hidden"}]}]},
		{"type":"paragraph","content":[
			{"type":"mention","attrs":{"label":"bob"}},
			{"type":"text","text":"x","marks":[{"type":"highlight"},{"type":"link","attrs":{"href":"https://a"}},{"type":"link","attrs":{"href":"https://b"}}]}
		]},
		{"type":"bulletList","content":[
			{"type":"listItem","content":[
				{"type":"paragraph","content":[{"type":"text","text":"a"}]},
				{"type":"paragraph","content":[{"type":"text","text":"b"}]},
				{"type":"bulletList","content":[{"type":"listItem","content":[{"type":"paragraph","content":[{"type":"text","text":"c"}]}]}]}
			]}
		]}
	]}`

	doc, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, doc.Content, 4)

	assert.Equal(t, Heading{Level: 6, Content: []Inline{Run{Text: "h"}}}, doc.Content[0])
	assert.Equal(t, Paragraph{Content: []Inline{Run{Text: "hidden"}}}, doc.Content[1])
	assert.Equal(t, Paragraph{Content: []Inline{
		Run{Text: "bob"},
		Run{Text: "x", Link: &marks.Link{URL: "https://a"}},
	}}, doc.Content[2])
	assert.Equal(t, BulletList{Items: []ListItem{{Paragraph: Paragraph{Content: []Inline{
		Run{Text: "a"}, HardBreak{}, Run{Text: "b"}, HardBreak{}, Run{Text: "c"},
	}}}}}, doc.Content[3])
}

func TestSerializeSkipsEmptyRuns(t *testing.T) {
	doc := NewDocument(
		EmptyParagraph(),
		Paragraph{Content: []Inline{Run{}, Run{Text: "a", Marks: marks.NewSet(marks.Underline, marks.Bold)}, HardBreak{}}},
		BulletList{},
		CodeBlock{},
	)

	data, err := Serialize(doc)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"doc","content":[
		{"type":"paragraph"},
		{"type":"paragraph","content":[
			{"type":"text","text":"a","marks":[{"type":"bold"},{"type":"underline"}]},
			{"type":"hardBreak"}
		]},
		{"type":"bulletList","content":[{"type":"listItem","content":[{"type":"paragraph"}]}]},
		{"type":"codeBlock"}
	]}`, string(data))
}

func TestSerializeNilDocument(t *testing.T) {
	data, err := Serialize(nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"doc","content":[{"type":"paragraph"}]}`, string(data))
}

func TestRoundTrip(t *testing.T) {
	doc, err := Parse(strings.NewReader(sampleTipTap))
	require.NoError(t, err)

	data, err := json.Marshal(doc)
	require.NoError(t, err)

	var again Document
	require.NoError(t, json.Unmarshal(data, &again))
	assert.Equal(t, *doc, again)
}
