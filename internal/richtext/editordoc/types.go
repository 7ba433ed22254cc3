// Пакет editordoc описывает документ WYSIWYG редактора (TipTap) и его JSON кодек.
//
// В отличие от дерева хранения строчное содержимое здесь плоское: ссылка - это отметка на каждом фрагменте текста,
// а принудительный перенос строки - отдельный узел HardBreak.
//
// Основные возможности:
//   - Типы узлов документа (paragraph, heading, bulletList, orderedList, codeBlock, blockquote) и строчных узлов (Run, HardBreak).
//   - Парсинг TipTap JSON в документ с откатом неизвестных узлов к параграфу.
//   - Сериализация документа обратно в TipTap JSON.
package editordoc

import "github.com/cforcadmin/CforC-sub001/internal/richtext/marks"

const (
	TypeDoc         = "doc"
	TypeParagraph   = "paragraph"
	TypeHeading     = "heading"
	TypeBulletList  = "bulletList"
	TypeOrderedList = "orderedList"
	TypeTaskList    = "taskList"
	TypeListItem    = "listItem"
	TypeTaskItem    = "taskItem"
	TypeCodeBlock   = "codeBlock"
	TypeBlockquote  = "blockquote"
	TypeText        = "text"
	TypeHardBreak   = "hardBreak"

	MarkLink = "link"
)

// Document - корень документа редактора.
type Document struct {
	Content []Node
}

// Node - узел верхнего уровня документа редактора.
type Node interface {
	NodeType() string
	node()
}

// Inline - строчный узел: Run или HardBreak.
type Inline interface {
	NodeType() string
	inline()
}

type Paragraph struct {
	Content []Inline
}

type Heading struct {
	Level   int
	Content []Inline
}

type BulletList struct {
	Items []ListItem
}

type OrderedList struct {
	Items []ListItem
}

// ListItem содержит ровно один параграф.
type ListItem struct {
	Paragraph Paragraph
}

type CodeBlock struct {
	Text     string
	Language string
}

// Blockquote появляется только во входных документах. Дерево хранения не умеет записывать цитаты из редактора.
type Blockquote struct {
	Content []Node
}

// Run - фрагмент текста с набором стилей и не более чем одной ссылкой.
type Run struct {
	Text  string
	Marks marks.Set
	Link  *marks.Link
}

// HardBreak - принудительный перенос строки внутри параграфа.
type HardBreak struct{}

func (Paragraph) NodeType() string   { return TypeParagraph }
func (Heading) NodeType() string     { return TypeHeading }
func (BulletList) NodeType() string  { return TypeBulletList }
func (OrderedList) NodeType() string { return TypeOrderedList }
func (CodeBlock) NodeType() string   { return TypeCodeBlock }
func (Blockquote) NodeType() string  { return TypeBlockquote }
func (Run) NodeType() string         { return TypeText }
func (HardBreak) NodeType() string   { return TypeHardBreak }

func (Paragraph) node()   {}
func (Heading) node()     {}
func (BulletList) node()  {}
func (OrderedList) node() {}
func (CodeBlock) node()   {}
func (Blockquote) node()  {}

func (Run) inline()       {}
func (HardBreak) inline() {}

// EmptyParagraph - параграф с одним пустым фрагментом. Редактору всегда нужна позиция курсора.
func EmptyParagraph() Paragraph {
	return Paragraph{Content: []Inline{Run{}}}
}

// NewDocument возвращает документ, который никогда не бывает пустым.
func NewDocument(nodes ...Node) *Document {
	if len(nodes) == 0 {
		nodes = []Node{EmptyParagraph()}
	}
	return &Document{Content: nodes}
}
