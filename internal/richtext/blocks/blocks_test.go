package blocks

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/cforcadmin/CforC-sub001/internal/richtext/marks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleJSON = `[
	{"type":"heading","level":2,"children":[{"type":"text","text":"Members"}]},
	{"type":"paragraph","children":[
		{"type":"text","text":"Hello "},
		{"type":"text","text":"world","bold":true,"italic":true},
		{"type":"link","url":"https://example.org","children":[
			{"type":"text","text":"site"},
			{"type":"text","text":"!","underline":true}
		]}
	]},
	{"type":"list","format":"ordered","children":[
		{"type":"list-item","children":[{"type":"text","text":"one"}]},
		{"type":"list-item","children":[{"type":"text","text":"two","strikethrough":true}]}
	]},
	{"type":"quote","children":[{"type":"text","text":"cite"}]},
	{"type":"code","language":"go","children":[{"type":"text","text":"fmt.Println()"}]}
]`

func TestParse(t *testing.T) {
	c, err := Parse(strings.NewReader(sampleJSON))
	require.NoError(t, err)
	require.Equal(t, ContentBlocks, c.Kind)

	want := Document{
		Heading{Level: 2, Children: []Inline{Text{Value: "Members"}}},
		Paragraph{Children: []Inline{
			Text{Value: "Hello "},
			Text{Value: "world", Marks: marks.NewSet(marks.Bold, marks.Italic)},
			Link{URL: "https://example.org", Children: []Text{
				{Value: "site"},
				{Value: "!", Marks: marks.NewSet(marks.Underline)},
			}},
		}},
		List{Ordered: true, Items: []ListItem{
			{Children: []Inline{Text{Value: "one"}}},
			{Children: []Inline{Text{Value: "two", Marks: marks.NewSet(marks.Strikethrough)}}},
		}},
		Quote{Children: []Inline{Text{Value: "cite"}}},
		Code{Text: "fmt.Println()", Language: "go"},
	}
	assert.Equal(t, want, c.Blocks)
}

func TestParseValueShapes(t *testing.T) {
	tests := []struct {
		name string
		json string
		want ContentKind
	}{
		{name: "null", json: `null`, want: ContentNone},
		{name: "empty input", json: ``, want: ContentNone},
		{name: "legacy string", json: `"hello\nworld"`, want: ContentLegacy},
		{name: "array", json: `[]`, want: ContentBlocks},
		{name: "object", json: `{"type":"paragraph"}`, want: ContentInvalid},
		{name: "number", json: `42`, want: ContentInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := Parse(strings.NewReader(tt.json))
			require.NoError(t, err)
			assert.Equal(t, tt.want, c.Kind)
		})
	}

	c, _ := Parse(strings.NewReader(`"hello\nworld"`))
	assert.Equal(t, "hello\nworld", c.Legacy)
}

func TestParseSyntaxError(t *testing.T) {
	_, err := Parse(strings.NewReader(`[{"type":`))
	assert.Error(t, err)
}

func TestParseMalformed(t *testing.T) {
	input := `[
		"stray string",
		{"type":"heading","level":"9","children":[{"type":"text","text":"big"}]},
		{"type":"heading","children":"not a list"},
		{"type":"paragraph","children":[{"type":"text","text":5,"bold":"yes"}]},
		{"type":"list","children":[
			{"type":"list-item","children":[{"type":"text","text":"a"}]},
			{"type":"list","children":[{"type":"list-item","children":[{"type":"text","text":"nested"}]}]}
		]},
		{"type":"paragraph","children":[{"type":"mention","children":[{"type":"text","text":"@bob"}]}]},
		{"type":"link","url":"https://x","children":[{"type":"link","children":[{"type":"text","text":"deep"}]}]}
	]`

	c, err := Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, c.Blocks, 6)

	assert.Equal(t, Heading{Level: 6, Children: []Inline{Text{Value: "big"}}}, c.Blocks[0])
	assert.Equal(t, Heading{Level: 1, Children: []Inline{}}, c.Blocks[1])
	assert.Equal(t, Paragraph{Children: []Inline{Text{}}}, c.Blocks[2])

	list, ok := c.Blocks[3].(List)
	require.True(t, ok)
	assert.False(t, list.Ordered)
	require.Len(t, list.Items, 2)
	assert.Equal(t, []Inline{Text{Value: "nested"}}, list.Items[1].Children)

	assert.Equal(t, Paragraph{Children: []Inline{Text{Value: "@bob"}}}, c.Blocks[4])

	unknown, ok := c.Blocks[5].(Unknown)
	require.True(t, ok)
	assert.Equal(t, "link", unknown.Type)
}

func TestMarshalRoundTrip(t *testing.T) {
	c, err := Parse(strings.NewReader(sampleJSON))
	require.NoError(t, err)

	data, err := json.Marshal(c)
	require.NoError(t, err)

	var again Content
	require.NoError(t, json.Unmarshal(data, &again))
	assert.Equal(t, c, again)
}

func TestMarshalWireShape(t *testing.T) {
	doc := Document{
		Paragraph{},
		List{Items: []ListItem{{Children: []Inline{Text{Value: "x", Marks: marks.NewSet(marks.Bold)}}}}},
		Code{Text: "a\nb"},
	}

	data, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.JSONEq(t, `[
		{"type":"paragraph","children":[{"type":"text","text":""}]},
		{"type":"list","format":"unordered","children":[
			{"type":"list-item","children":[{"type":"text","text":"x","bold":true}]}
		]},
		{"type":"code","children":[{"type":"text","text":"a\nb"}]}
	]`, string(data))

	data, err = json.Marshal(Document(nil))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestUnknownBlockKeepsRaw(t *testing.T) {
	input := `[{"type":"image","image":{"url":"/uploads/a.png","alternativeText":"A"},"children":[{"type":"text","text":""}]}]`

	var doc Document
	require.NoError(t, json.Unmarshal([]byte(input), &doc))
	require.Len(t, doc, 1)
	assert.Equal(t, Kind("image"), doc[0].Kind())

	data, err := json.Marshal(doc)
	require.NoError(t, err)
	assert.JSONEq(t, input, string(data))
}

func TestDocumentUnmarshalRejectsString(t *testing.T) {
	var doc Document
	assert.Error(t, json.Unmarshal([]byte(`"legacy"`), &doc))
	assert.NoError(t, json.Unmarshal([]byte(`null`), &doc))
	assert.Nil(t, doc)
}

func TestPlainText(t *testing.T) {
	children := []Inline{
		Text{Value: "Visit "},
		Link{URL: "https://example.org", Children: []Text{{Value: "our "}, {Value: "site"}}},
		Text{Value: "."},
	}
	assert.Equal(t, "Visit our site.", PlainText(children))
	assert.Equal(t, []Inline{Text{}}, Normalize(nil))
}
