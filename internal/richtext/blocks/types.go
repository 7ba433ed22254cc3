// Пакет blocks описывает дерево хранения rich-text документа (формат Blocks headless CMS) и его кодеки на границе с CMS.
//
// Основные возможности:
//   - Типы блоков (paragraph, heading, list, quote, code) и строчных узлов (text, link) в виде закрытых объединений.
//   - Значение поля CMS Content: дерево, устаревшая строка, пустое или некорректное значение.
//   - Устойчивый к ошибкам разбор JSON из CMS и сериализация обратно в формат CMS.
//   - Хранение Content в колонке jsonb (driver.Valuer, sql.Scanner).
package blocks

import (
	"strings"

	"github.com/cforcadmin/CforC-sub001/internal/richtext/marks"
)

type Kind string

const (
	KindParagraph Kind = "paragraph"
	KindHeading   Kind = "heading"
	KindList      Kind = "list"
	KindListItem  Kind = "list-item"
	KindQuote     Kind = "quote"
	KindCode      Kind = "code"
	KindText      Kind = "text"
	KindLink      Kind = "link"
)

// Block - узел верхнего уровня дерева хранения.
type Block interface {
	Kind() Kind
	block()
}

// Inline - строчный узел: Text или Link.
type Inline interface {
	Kind() Kind
	inline()
}

// Document - упорядоченная последовательность блоков.
type Document []Block

type Paragraph struct {
	Children []Inline
}

type Heading struct {
	Level    int
	Children []Inline
}

type List struct {
	Ordered bool
	Items   []ListItem
}

type ListItem struct {
	Children []Inline
}

type Quote struct {
	Children []Inline
}

type Code struct {
	Text     string
	Language string
}

// Unknown - блок неизвестного типа. Raw хранит исходный JSON объект для повторной сериализации без потерь,
// Children - строчные узлы, которые удалось из него извлечь.
type Unknown struct {
	Type     string
	Children []Inline
	Raw      map[string]interface{}
}

type Text struct {
	Value string
	Marks marks.Set
}

// Link оборачивает один или несколько текстовых фрагментов. Вложенные ссылки не допускаются.
type Link struct {
	URL      string
	Children []Text
}

func (Paragraph) Kind() Kind { return KindParagraph }
func (Heading) Kind() Kind   { return KindHeading }
func (List) Kind() Kind      { return KindList }
func (Quote) Kind() Kind     { return KindQuote }
func (Code) Kind() Kind      { return KindCode }
func (u Unknown) Kind() Kind { return Kind(u.Type) }
func (Text) Kind() Kind      { return KindText }
func (Link) Kind() Kind      { return KindLink }

func (Paragraph) block() {}
func (Heading) block()   {}
func (List) block()      {}
func (Quote) block()     {}
func (Code) block()      {}
func (Unknown) block()   {}

func (Text) inline() {}
func (Link) inline() {}

// InlineChildren возвращает строчное содержимое блоков, у которых оно есть (paragraph, heading, quote, unknown).
func InlineChildren(b Block) ([]Inline, bool) {
	switch bb := b.(type) {
	case Paragraph:
		return bb.Children, true
	case Heading:
		return bb.Children, true
	case Quote:
		return bb.Children, true
	case Unknown:
		return bb.Children, len(bb.Children) > 0
	}
	return nil, false
}

// Normalize возвращает строчное содержимое, в котором всегда есть хотя бы один узел:
// пустой список заменяется одним пустым текстом.
func Normalize(children []Inline) []Inline {
	if len(children) == 0 {
		return []Inline{Text{}}
	}
	return children
}

// PlainText склеивает текст строчных узлов, включая текст ссылок. Адреса ссылок не попадают в результат.
func PlainText(children []Inline) string {
	var sb strings.Builder
	for _, child := range children {
		switch c := child.(type) {
		case Text:
			sb.WriteString(c.Value)
		case Link:
			for _, t := range c.Children {
				sb.WriteString(t.Value)
			}
		}
	}
	return sb.String()
}

// Text возвращает текст ссылки без адреса.
func (l Link) Text() string {
	var sb strings.Builder
	for _, t := range l.Children {
		sb.WriteString(t.Value)
	}
	return sb.String()
}

// Plain сообщает, что у текста нет стилей.
func (t Text) Plain() bool {
	return t.Marks.Empty()
}
