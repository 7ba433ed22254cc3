package editordoc

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/cforcadmin/CforC-sub001/internal/richtext/marks"
)

// Parse парсит JSON контент TipTap редактора в Document.
// Пустой ввод и документ без узлов дают документ с одним пустым параграфом.
func Parse(r io.Reader) (*Document, error) {
	var tipTapDoc TipTapDocument
	if err := json.NewDecoder(r).Decode(&tipTapDoc); err != nil {
		if errors.Is(err, io.EOF) {
			return NewDocument(), nil
		}
		return nil, fmt.Errorf("decode tiptap json: %w", err)
	}
	return FromTipTap(tipTapDoc), nil
}

// FromTipTap преобразует уже декодированный TipTap документ.
func FromTipTap(tipTapDoc TipTapDocument) *Document {
	if tipTapDoc.Type != "" && tipTapDoc.Type != TypeDoc {
		slog.Debug("Unexpected root node type", "type", tipTapDoc.Type)
	}

	nodes := make([]Node, 0, len(tipTapDoc.Content))
	for _, node := range tipTapDoc.Content {
		if n := parseNode(node); n != nil {
			nodes = append(nodes, n)
		}
	}
	return NewDocument(nodes...)
}

// UnmarshalJSON реализует json.Unmarshaler.
func (d *Document) UnmarshalJSON(data []byte) error {
	doc, err := Parse(bytes.NewReader(data))
	if err != nil {
		return err
	}
	*d = *doc
	return nil
}

// parseNode парсит отдельную ноду TipTap верхнего уровня.
func parseNode(node TipTapNode) Node {
	switch node.Type {
	case TypeParagraph:
		return parseParagraph(node)
	case TypeHeading:
		return Heading{Level: clampLevel(getAttrInt(node.Attrs, "level")), Content: parseInlines(node.Content)}
	case TypeBulletList, TypeTaskList:
		return BulletList{Items: parseListItems(node)}
	case TypeOrderedList:
		return OrderedList{Items: parseListItems(node)}
	case TypeCodeBlock:
		return CodeBlock{Text: flattenText(node), Language: getAttrString(node.Attrs, "language")}
	case TypeBlockquote:
		quote := Blockquote{Content: make([]Node, 0, len(node.Content))}
		for _, child := range node.Content {
			if n := parseNode(child); n != nil {
				quote.Content = append(quote.Content, n)
			}
		}
		return quote
	default:
		slog.Warn("Unknown node type", "type", node.Type)
		text := flattenText(node)
		if text == "" {
			return nil
		}
		return Paragraph{Content: []Inline{Run{Text: text}}}
	}
}

func parseParagraph(node TipTapNode) Paragraph {
	return Paragraph{Content: parseInlines(node.Content)}
}

// parseInlines преобразует содержимое параграфа. Результат никогда не бывает пустым.
func parseInlines(nodes []TipTapNode) []Inline {
	res := make([]Inline, 0, len(nodes))
	for _, child := range nodes {
		switch child.Type {
		case TypeText:
			res = append(res, parseText(child))
		case TypeHardBreak:
			res = append(res, HardBreak{})
		default:
			// mention и прочие строчные ноды сохраняем как текст
			slog.Debug("Unknown inline node type", "type", child.Type)
			text := flattenText(child)
			if text == "" {
				text = getAttrString(child.Attrs, "label")
			}
			if text != "" {
				res = append(res, Run{Text: text})
			}
		}
	}
	if len(res) == 0 {
		return []Inline{Run{}}
	}
	return res
}

// parseText преобразует текстовую ноду TipTap в Run.
func parseText(node TipTapNode) Run {
	run := Run{Text: node.Text}
	applyMarks(&run, node.Marks)
	return run
}

// applyMarks применяет форматирование (marks) к фрагменту. Учитывается только первая ссылка.
func applyMarks(run *Run, tipTapMarks []TipTapMark) {
	for _, mark := range tipTapMarks {
		if mark.Type == MarkLink {
			if href := getAttrString(mark.Attrs, "href"); href != "" && run.Link == nil {
				run.Link = &marks.Link{URL: href}
			}
			continue
		}
		m, ok := marks.ParseEditor(mark.Type)
		if !ok {
			slog.Debug("Unknown mark type", "type", mark.Type)
			continue
		}
		run.Marks = run.Marks.With(m)
	}
}

// parseListItems собирает элементы списка. Несколько параграфов внутри listItem склеиваются через HardBreak,
// вложенные списки разворачиваются в тот же параграф.
func parseListItems(node TipTapNode) []ListItem {
	items := make([]ListItem, 0, len(node.Content))
	for _, child := range node.Content {
		if child.Type != TypeListItem && child.Type != TypeTaskItem {
			slog.Debug("Unknown list child type", "type", child.Type)
			items = append(items, ListItem{Paragraph: Paragraph{Content: []Inline{Run{Text: flattenText(child)}}}})
			continue
		}
		items = append(items, ListItem{Paragraph: Paragraph{Content: collectItemInlines(child)}})
	}
	return items
}

func collectItemInlines(item TipTapNode) []Inline {
	var res []Inline
	var walk func(nodes []TipTapNode)
	walk = func(nodes []TipTapNode) {
		for _, n := range nodes {
			switch n.Type {
			case TypeParagraph, TypeHeading:
				if len(res) > 0 {
					res = append(res, HardBreak{})
				}
				res = append(res, parseInlines(n.Content)...)
			default:
				walk(n.Content)
			}
		}
	}
	walk(item.Content)
	return compact(res)
}

// compact убирает пустые фрагменты, оставляя один пустой, если больше ничего нет.
func compact(inlines []Inline) []Inline {
	res := make([]Inline, 0, len(inlines))
	for _, in := range inlines {
		if run, ok := in.(Run); ok && run.Text == "" {
			continue
		}
		res = append(res, in)
	}
	if len(res) == 0 {
		return []Inline{Run{}}
	}
	return res
}

// flattenText склеивает текст всех текстовых нод поддерева.
func flattenText(node TipTapNode) string {
	var sb strings.Builder
	var walk func(n TipTapNode)
	walk = func(n TipTapNode) {
		switch n.Type {
		case TypeText:
			sb.WriteString(n.Text)
		case TypeHardBreak:
			sb.WriteString("\n")
		}
		for _, child := range n.Content {
			walk(child)
		}
	}
	walk(node)
	return sb.String()
}

func clampLevel(level int) int {
	if level < 1 {
		return 1
	}
	if level > 6 {
		return 6
	}
	return level
}
