// Пакет render превращает дерево хранения в дерево единиц представления и выводит его в HTML или Markdown.
//
// Основные возможности:
//   - Render: Content (дерево, устаревшая строка, пустое значение) в Tree.
//   - Разбор директивы изображения [IMAGE: url | alt | size | alignment] в параграфах.
//   - HTMLRenderer на golang.org/x/net/html с необязательной очисткой (bluemonday) и минификацией (tdewolff/minify).
//   - Markdown на github.com/nao1215/markdown.
package render

import "strings"

type Kind string

const (
	KindParagraph     Kind = "paragraph"
	KindHeading       Kind = "heading"
	KindList          Kind = "list"
	KindListItem      Kind = "listItem"
	KindQuote         Kind = "quote"
	KindCode          Kind = "code"
	KindImage         Kind = "image"
	KindText          Kind = "text"
	KindLineBreak     Kind = "lineBreak"
	KindBold          Kind = "bold"
	KindItalic        Kind = "italic"
	KindUnderline     Kind = "underline"
	KindStrikethrough Kind = "strikethrough"
	KindLink          Kind = "link"
)

// Node - единица представления. Набор заполненных полей зависит от Kind.
type Node struct {
	Kind     Kind   `json:"kind"`
	Level    int    `json:"level,omitempty"`
	Ordered  bool   `json:"ordered,omitempty"`
	Text     string `json:"text,omitempty"`
	Language string `json:"language,omitempty"`
	URL      string `json:"url,omitempty"`
	Image    *Image `json:"image,omitempty"`
	Children []Node `json:"children,omitempty"`
}

// Tree - упорядоченная последовательность блочных единиц.
type Tree []Node

// Inline сообщает, является ли единица строчной.
func (n Node) Inline() bool {
	switch n.Kind {
	case KindText, KindLineBreak, KindBold, KindItalic, KindUnderline, KindStrikethrough, KindLink:
		return true
	}
	return false
}

// PlainText возвращает текст поддерева. Перенос строки дает \n.
func (n Node) PlainText() string {
	switch n.Kind {
	case KindText, KindCode:
		return n.Text
	case KindLineBreak:
		return "\n"
	case KindImage:
		if n.Image == nil {
			return ""
		}
		return n.Image.Alt
	}
	var sb strings.Builder
	for _, child := range n.Children {
		sb.WriteString(child.PlainText())
	}
	return sb.String()
}
