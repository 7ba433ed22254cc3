// Пакет convert связывает два представления rich-text документа: дерево хранения (blocks) и документ редактора (editordoc).
//
// Отображения не биективны. Цитата при открытии в редакторе становится параграфом, блок неизвестного типа
// становится параграфом из извлеченного текста, а blockquote редактора при сохранении разворачивается в свои блоки.
//
// Основные возможности:
//   - ToEditorDocument и ContentToEditorDocument: дерево хранения (или устаревшая строка) в документ редактора.
//   - ToBlocks и GroupRuns: документ редактора в дерево хранения с группировкой фрагментов по ссылкам.
//   - LegacyToBlocks: миграция устаревшей строки в блоки.
package convert

import (
	"strings"

	"github.com/cforcadmin/CforC-sub001/internal/richtext/blocks"
	"github.com/cforcadmin/CforC-sub001/internal/richtext/editordoc"
	"github.com/cforcadmin/CforC-sub001/internal/richtext/marks"
)

// ToEditorDocument преобразует дерево хранения в документ редактора. Результат всегда содержит хотя бы один узел.
func ToEditorDocument(doc blocks.Document) *editordoc.Document {
	nodes := make([]editordoc.Node, 0, len(doc))
	for _, b := range doc {
		if n := toEditorNode(b); n != nil {
			nodes = append(nodes, n)
		}
	}
	return editordoc.NewDocument(nodes...)
}

// ContentToEditorDocument дополнительно принимает устаревшую строку (параграф на каждую строку).
// Пустое и некорректное значение дают документ с одним пустым параграфом.
func ContentToEditorDocument(c blocks.Content) *editordoc.Document {
	switch c.Kind {
	case blocks.ContentBlocks:
		return ToEditorDocument(c.Blocks)
	case blocks.ContentLegacy:
		return ToEditorDocument(LegacyToBlocks(c.Legacy))
	}
	return editordoc.NewDocument()
}

func toEditorNode(b blocks.Block) editordoc.Node {
	switch bb := b.(type) {
	case blocks.Paragraph:
		return editordoc.Paragraph{Content: toRuns(bb.Children)}
	case blocks.Heading:
		return editordoc.Heading{Level: clampLevel(bb.Level), Content: toRuns(bb.Children)}
	case blocks.Quote:
		// В редакторе нет цитат, текст сохраняется как обычный параграф
		return editordoc.Paragraph{Content: toRuns(bb.Children)}
	case blocks.Code:
		return editordoc.CodeBlock{Text: bb.Text, Language: bb.Language}
	case blocks.List:
		items := make([]editordoc.ListItem, 0, len(bb.Items))
		for _, item := range bb.Items {
			items = append(items, editordoc.ListItem{Paragraph: editordoc.Paragraph{Content: toRuns(item.Children)}})
		}
		if bb.Ordered {
			return editordoc.OrderedList{Items: items}
		}
		return editordoc.BulletList{Items: items}
	case blocks.Unknown:
		return editordoc.Paragraph{Content: toRuns(bb.Children)}
	}
	return nil
}

// toRuns разворачивает строчные узлы в плоский список фрагментов. Ссылка дает по фрагменту на каждый
// свой текст, \n внутри текста становится HardBreak.
func toRuns(children []blocks.Inline) []editordoc.Inline {
	res := make([]editordoc.Inline, 0, len(children))
	for _, child := range children {
		switch c := child.(type) {
		case blocks.Text:
			res = appendText(res, c, nil)
		case blocks.Link:
			link := &marks.Link{URL: c.URL}
			for _, t := range c.Children {
				res = appendText(res, t, link)
			}
		}
	}
	return compactRuns(res)
}

func appendText(res []editordoc.Inline, t blocks.Text, link *marks.Link) []editordoc.Inline {
	for i, line := range strings.Split(t.Value, "\n") {
		if i > 0 {
			res = append(res, editordoc.HardBreak{})
		}
		res = append(res, editordoc.Run{Text: line, Marks: t.Marks, Link: link})
	}
	return res
}

// compactRuns убирает пустые фрагменты. Если ничего не осталось, возвращается один пустой фрагмент.
func compactRuns(inlines []editordoc.Inline) []editordoc.Inline {
	res := inlines[:0]
	for _, in := range inlines {
		if run, ok := in.(editordoc.Run); ok && run.Text == "" {
			continue
		}
		res = append(res, in)
	}
	if len(res) == 0 {
		return []editordoc.Inline{editordoc.Run{}}
	}
	return res
}

// clampLevel приводит уровень заголовка к диапазону 1..6.
func clampLevel(level int) int {
	return min(max(level, 1), 6)
}
