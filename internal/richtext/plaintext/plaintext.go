// Пакет plaintext извлекает простой текст из rich-text документов для поиска, превью и счетчиков.
package plaintext

import (
	"strings"

	"github.com/cforcadmin/CforC-sub001/internal/richtext/blocks"
	"github.com/cforcadmin/CforC-sub001/internal/richtext/editordoc"
)

// Paragraphs возвращает текст параграфов и заголовков, разделенных пустой строкой.
// Текст ссылок включается, адреса нет.
func Paragraphs(doc blocks.Document) string {
	parts := make([]string, 0, len(doc))
	for _, b := range doc {
		switch bb := b.(type) {
		case blocks.Paragraph:
			parts = append(parts, blocks.PlainText(bb.Children))
		case blocks.Heading:
			parts = append(parts, blocks.PlainText(bb.Children))
		}
	}
	return strings.Join(parts, "\n\n")
}

// Lines возвращает текст всех блоков по строке на блок. Элементы списка идут отдельными строками.
// Устаревшая строка возвращается без изменений, пустое и некорректное значение дают "".
func Lines(c blocks.Content) string {
	switch c.Kind {
	case blocks.ContentLegacy:
		return c.Legacy
	case blocks.ContentBlocks:
		return documentLines(c.Blocks)
	}
	return ""
}

func documentLines(doc blocks.Document) string {
	lines := make([]string, 0, len(doc))
	for _, b := range doc {
		switch bb := b.(type) {
		case blocks.List:
			items := make([]string, 0, len(bb.Items))
			for _, item := range bb.Items {
				items = append(items, blocks.PlainText(item.Children))
			}
			lines = append(lines, strings.Join(items, "\n"))
		case blocks.Code:
			lines = append(lines, bb.Text)
		default:
			if children, ok := blocks.InlineChildren(b); ok {
				lines = append(lines, blocks.PlainText(children))
			}
		}
	}
	return strings.Join(lines, "\n")
}

// EditorLines возвращает текст документа редактора по строке на блок. HardBreak дает \n.
func EditorLines(doc *editordoc.Document) string {
	if doc == nil {
		return ""
	}
	var lines []string
	var walk func(nodes []editordoc.Node)
	walk = func(nodes []editordoc.Node) {
		for _, n := range nodes {
			switch nn := n.(type) {
			case editordoc.Paragraph:
				lines = append(lines, inlineText(nn.Content))
			case editordoc.Heading:
				lines = append(lines, inlineText(nn.Content))
			case editordoc.BulletList:
				for _, item := range nn.Items {
					lines = append(lines, inlineText(item.Paragraph.Content))
				}
			case editordoc.OrderedList:
				for _, item := range nn.Items {
					lines = append(lines, inlineText(item.Paragraph.Content))
				}
			case editordoc.CodeBlock:
				lines = append(lines, nn.Text)
			case editordoc.Blockquote:
				walk(nn.Content)
			}
		}
	}
	walk(doc.Content)
	return strings.Join(lines, "\n")
}

func inlineText(inlines []editordoc.Inline) string {
	var sb strings.Builder
	for _, in := range inlines {
		switch v := in.(type) {
		case editordoc.Run:
			sb.WriteString(v.Text)
		case editordoc.HardBreak:
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
