package blocks

import (
	"bytes"
	"encoding/json"
	"errors"

	"github.com/cforcadmin/CforC-sub001/internal/richtext/marks"
)

// wireNode - узел дерева в формате CMS.
type wireNode struct {
	Type          string     `json:"type"`
	Level         int        `json:"level,omitempty"`
	Format        string     `json:"format,omitempty"`
	Language      string     `json:"language,omitempty"`
	URL           string     `json:"url,omitempty"`
	Text          *string    `json:"text,omitempty"`
	Bold          bool       `json:"bold,omitempty"`
	Italic        bool       `json:"italic,omitempty"`
	Underline     bool       `json:"underline,omitempty"`
	Strikethrough bool       `json:"strikethrough,omitempty"`
	Children      []wireNode `json:"children,omitempty"`
}

// MarshalJSON сериализует документ в формат CMS. Пустой документ сериализуется как [].
func (d Document) MarshalJSON() ([]byte, error) {
	nodes := make([]json.RawMessage, 0, len(d))
	for _, b := range d {
		data, err := marshalBlock(b)
		if err != nil {
			return nil, err
		}
		if data != nil {
			nodes = append(nodes, data)
		}
	}
	return json.Marshal(nodes)
}

// UnmarshalJSON разбирает массив блоков. null дает пустой документ.
func (d *Document) UnmarshalJSON(data []byte) error {
	c, err := Parse(bytes.NewReader(data))
	if err != nil {
		return err
	}
	switch c.Kind {
	case ContentBlocks:
		*d = c.Blocks
	case ContentNone:
		*d = nil
	default:
		return errors.New("blocks: document must be a json array")
	}
	return nil
}

func marshalBlock(b Block) ([]byte, error) {
	var node wireNode
	switch bb := b.(type) {
	case Paragraph:
		node = wireNode{Type: string(KindParagraph), Children: wireInlines(bb.Children)}
	case Heading:
		node = wireNode{Type: string(KindHeading), Level: clampLevel(bb.Level), Children: wireInlines(bb.Children)}
	case Quote:
		node = wireNode{Type: string(KindQuote), Children: wireInlines(bb.Children)}
	case Code:
		node = wireNode{Type: string(KindCode), Language: bb.Language, Children: []wireNode{wireText(Text{Value: bb.Text})}}
	case List:
		node = wireNode{Type: string(KindList), Format: "unordered"}
		if bb.Ordered {
			node.Format = "ordered"
		}
		items := bb.Items
		if len(items) == 0 {
			items = []ListItem{{}}
		}
		for _, item := range items {
			node.Children = append(node.Children, wireNode{Type: string(KindListItem), Children: wireInlines(item.Children)})
		}
	case Unknown:
		if bb.Raw != nil {
			return json.Marshal(bb.Raw)
		}
		node = wireNode{Type: string(KindParagraph), Children: wireInlines(bb.Children)}
	default:
		return nil, nil
	}
	return json.Marshal(node)
}

func wireInlines(children []Inline) []wireNode {
	children = Normalize(children)
	res := make([]wireNode, 0, len(children))
	for _, child := range children {
		switch c := child.(type) {
		case Text:
			res = append(res, wireText(c))
		case Link:
			link := wireNode{Type: string(KindLink), URL: c.URL}
			texts := c.Children
			if len(texts) == 0 {
				texts = []Text{{}}
			}
			for _, t := range texts {
				link.Children = append(link.Children, wireText(t))
			}
			res = append(res, link)
		}
	}
	return res
}

func wireText(t Text) wireNode {
	value := t.Value
	return wireNode{
		Type:          string(KindText),
		Text:          &value,
		Bold:          t.Marks.Has(marks.Bold),
		Italic:        t.Marks.Has(marks.Italic),
		Underline:     t.Marks.Has(marks.Underline),
		Strikethrough: t.Marks.Has(marks.Strikethrough),
	}
}
