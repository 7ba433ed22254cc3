package editordoc

import (
	"encoding/json"
	"log/slog"
)

// Serialize сериализует Document в TipTap JSON.
func Serialize(doc *Document) ([]byte, error) {
	return json.Marshal(ToTipTap(doc))
}

// MarshalJSON реализует json.Marshaler.
func (d Document) MarshalJSON() ([]byte, error) {
	return Serialize(&d)
}

// ToTipTap строит TipTap документ. Документ без узлов получает один пустой параграф.
func ToTipTap(doc *Document) TipTapDocument {
	if doc == nil || len(doc.Content) == 0 {
		doc = NewDocument()
	}

	tipTapDoc := TipTapDocument{
		Type:    TypeDoc,
		Content: make([]TipTapNode, 0, len(doc.Content)),
	}
	for _, n := range doc.Content {
		if node := serializeNode(n); node != nil {
			tipTapDoc.Content = append(tipTapDoc.Content, *node)
		}
	}
	return tipTapDoc
}

// serializeNode преобразует узел документа в TipTap ноду.
func serializeNode(n Node) *TipTapNode {
	switch e := n.(type) {
	case Paragraph:
		return serializeParagraph(e)
	case Heading:
		node := &TipTapNode{
			Type:    TypeHeading,
			Attrs:   map[string]interface{}{"level": clampLevel(e.Level)},
			Content: serializeInlines(e.Content),
		}
		return node
	case BulletList:
		return serializeList(TypeBulletList, e.Items)
	case OrderedList:
		return serializeList(TypeOrderedList, e.Items)
	case CodeBlock:
		return serializeCode(e)
	case Blockquote:
		node := &TipTapNode{
			Type:    TypeBlockquote,
			Content: make([]TipTapNode, 0, len(e.Content)),
		}
		for _, child := range e.Content {
			if childNode := serializeNode(child); childNode != nil {
				node.Content = append(node.Content, *childNode)
			}
		}
		return node
	default:
		slog.Warn("Unknown node type for serialization", "type", e)
		return nil
	}
}

func serializeParagraph(p Paragraph) *TipTapNode {
	return &TipTapNode{
		Type:    TypeParagraph,
		Content: serializeInlines(p.Content),
	}
}

// serializeInlines пропускает пустые фрагменты: TipTap не принимает пустые текстовые ноды.
func serializeInlines(inlines []Inline) []TipTapNode {
	var res []TipTapNode
	for _, in := range inlines {
		switch c := in.(type) {
		case Run:
			if c.Text == "" {
				continue
			}
			res = append(res, serializeText(c))
		case HardBreak:
			res = append(res, TipTapNode{Type: TypeHardBreak})
		}
	}
	return res
}

// serializeText преобразует Run в TipTap текстовую ноду.
func serializeText(run Run) TipTapNode {
	node := TipTapNode{
		Type: TypeText,
		Text: run.Text,
	}

	tipTapMarks := make([]TipTapMark, 0, 5)
	for _, m := range run.Marks.List() {
		tipTapMarks = append(tipTapMarks, TipTapMark{Type: m.EditorName()})
	}

	// Ссылка
	if run.Link != nil {
		tipTapMarks = append(tipTapMarks, TipTapMark{
			Type: MarkLink,
			Attrs: map[string]interface{}{
				"href":   run.Link.URL,
				"target": "_blank",
			},
		})
	}

	if len(tipTapMarks) > 0 {
		node.Marks = tipTapMarks
	}
	return node
}

// serializeCode преобразует CodeBlock в TipTap codeBlock ноду.
func serializeCode(c CodeBlock) *TipTapNode {
	node := &TipTapNode{Type: TypeCodeBlock}
	if c.Language != "" {
		node.Attrs = map[string]interface{}{"language": c.Language}
	}
	// Код хранится как текстовая нода внутри
	if c.Text != "" {
		node.Content = []TipTapNode{{Type: TypeText, Text: c.Text}}
	}
	return node
}

// serializeList преобразует список в TipTap bulletList или orderedList ноду.
func serializeList(listType string, items []ListItem) *TipTapNode {
	if len(items) == 0 {
		items = []ListItem{{Paragraph: EmptyParagraph()}}
	}

	node := &TipTapNode{
		Type:    listType,
		Content: make([]TipTapNode, 0, len(items)),
	}
	for _, item := range items {
		node.Content = append(node.Content, TipTapNode{
			Type:    TypeListItem,
			Content: []TipTapNode{*serializeParagraph(item.Paragraph)},
		})
	}
	return node
}
