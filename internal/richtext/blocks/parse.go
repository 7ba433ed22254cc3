package blocks

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/cforcadmin/CforC-sub001/internal/richtext/marks"
)

// Parse читает значение поля CMS в формате JSON.
// Ошибка возвращается только для синтаксически некорректного JSON, структурные ошибки дерева не приводят к отказу.
func Parse(r io.Reader) (Content, error) {
	var raw interface{}
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return Content{}, nil
		}
		return Content{}, fmt.Errorf("decode blocks json: %w", err)
	}
	return ParseValue(raw), nil
}

// ParseValue разбирает уже декодированное JSON значение (результат json.Unmarshal в interface{}).
func ParseValue(v interface{}) Content {
	switch val := v.(type) {
	case nil:
		return Content{}
	case string:
		return FromLegacy(val)
	case []interface{}:
		return FromBlocks(parseDocument(val))
	case []map[string]interface{}:
		items := make([]interface{}, len(val))
		for i := range val {
			items[i] = val[i]
		}
		return FromBlocks(parseDocument(items))
	default:
		return Content{Kind: ContentInvalid}
	}
}

func parseDocument(items []interface{}) Document {
	doc := make(Document, 0, len(items))
	for _, item := range items {
		node, ok := item.(map[string]interface{})
		if !ok {
			slog.Debug("Skip non-object block", "value", item)
			continue
		}
		doc = append(doc, parseBlock(node))
	}
	return doc
}

func parseBlock(node map[string]interface{}) Block {
	switch Kind(getAttrString(node, "type")) {
	case KindParagraph:
		return Paragraph{Children: parseInlines(node)}
	case KindHeading:
		return Heading{Level: clampLevel(getAttrInt(node, "level")), Children: parseInlines(node)}
	case KindList:
		return parseList(node)
	case KindQuote:
		return Quote{Children: parseInlines(node)}
	case KindCode:
		return Code{Text: flattenText(node), Language: getAttrString(node, "language")}
	default:
		t := getAttrString(node, "type")
		slog.Debug("Unknown block type", "type", t)
		return Unknown{Type: t, Children: parseInlines(node), Raw: node}
	}
}

func parseList(node map[string]interface{}) List {
	list := List{
		Ordered: getAttrString(node, "format") == "ordered" || getAttrBool(node, "ordered"),
		Items:   make([]ListItem, 0),
	}

	for _, child := range getAttrList(node, "children") {
		if Kind(getAttrString(child, "type")) == KindListItem {
			list.Items = append(list.Items, ListItem{Children: parseInlines(child)})
			continue
		}
		// Вложенный список или прочий узел превращается в отдельный пункт со сплошным текстом
		slog.Debug("Unexpected list child", "type", getAttrString(child, "type"))
		list.Items = append(list.Items, ListItem{Children: []Inline{Text{Value: flattenText(child)}}})
	}

	return list
}

func parseInlines(node map[string]interface{}) []Inline {
	children := getAttrList(node, "children")
	res := make([]Inline, 0, len(children))
	for _, child := range children {
		res = append(res, parseInline(child))
	}
	return res
}

func parseInline(node map[string]interface{}) Inline {
	switch Kind(getAttrString(node, "type")) {
	case KindText:
		return parseText(node)
	case KindLink:
		link := Link{URL: getAttrString(node, "url")}
		for _, child := range getAttrList(node, "children") {
			if Kind(getAttrString(child, "type")) == KindText {
				link.Children = append(link.Children, parseText(child))
			} else {
				// Вложенные ссылки запрещены, сохраняем только их текст
				link.Children = append(link.Children, Text{Value: flattenText(child)})
			}
		}
		return link
	default:
		slog.Debug("Unknown inline type", "type", getAttrString(node, "type"))
		return Text{Value: flattenText(node)}
	}
}

func parseText(node map[string]interface{}) Text {
	t := Text{Value: getAttrString(node, "text")}
	for _, m := range marks.Ordered {
		if getAttrBool(node, m.String()) {
			t.Marks = t.Marks.With(m)
		}
	}
	return t
}

// flattenText собирает весь текст поддерева узла.
func flattenText(node map[string]interface{}) string {
	var sb strings.Builder
	var walk func(n map[string]interface{})
	walk = func(n map[string]interface{}) {
		sb.WriteString(getAttrString(n, "text"))
		for _, child := range getAttrList(n, "children") {
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
