package convert

import (
	"strings"

	"github.com/cforcadmin/CforC-sub001/internal/richtext/blocks"
	"github.com/cforcadmin/CforC-sub001/internal/richtext/editordoc"
	"github.com/cforcadmin/CforC-sub001/internal/richtext/marks"
)

// ToBlocks преобразует документ редактора в дерево хранения. nil дает пустой документ.
func ToBlocks(doc *editordoc.Document) blocks.Document {
	res := blocks.Document{}
	if doc == nil {
		return res
	}
	return appendBlocks(res, doc.Content)
}

func appendBlocks(res blocks.Document, nodes []editordoc.Node) blocks.Document {
	for _, n := range nodes {
		switch nn := n.(type) {
		case editordoc.Paragraph:
			res = append(res, blocks.Paragraph{Children: GroupRuns(nn.Content)})
		case editordoc.Heading:
			res = append(res, blocks.Heading{Level: clampLevel(nn.Level), Children: GroupRuns(nn.Content)})
		case editordoc.BulletList:
			res = append(res, blocks.List{Items: toListItems(nn.Items)})
		case editordoc.OrderedList:
			res = append(res, blocks.List{Ordered: true, Items: toListItems(nn.Items)})
		case editordoc.CodeBlock:
			res = append(res, blocks.Code{Text: nn.Text, Language: nn.Language})
		case editordoc.Blockquote:
			res = appendBlocks(res, nn.Content)
		}
	}
	return res
}

func toListItems(items []editordoc.ListItem) []blocks.ListItem {
	res := make([]blocks.ListItem, 0, len(items))
	for _, item := range items {
		res = append(res, blocks.ListItem{Children: GroupRuns(item.Paragraph.Content)})
	}
	return res
}

// LegacyToBlocks переводит устаревшую строку в блоки: по параграфу на каждую строку.
func LegacyToBlocks(s string) blocks.Document {
	lines := strings.Split(s, "\n")
	res := make(blocks.Document, 0, len(lines))
	for _, line := range lines {
		res = append(res, blocks.Paragraph{Children: []blocks.Inline{blocks.Text{Value: strings.TrimSuffix(line, "\r")}}})
	}
	return res
}

// runGroup - аккумулятор свертки GroupRuns.
type runGroup struct {
	// link - адрес текущей ссылки, pending - ее накопленные тексты.
	link    *marks.Link
	pending []blocks.Text
	out     []blocks.Inline
	// afterBreak - предыдущий узел был HardBreak.
	afterBreak bool
}

// GroupRuns сворачивает плоский список фрагментов в строчные узлы дерева хранения.
// Подряд идущие фрагменты с одной ссылкой объединяются в один link, смена адреса закрывает текущую ссылку.
// HardBreak дописывает \n к ближайшему предыдущему тексту, а следующий за ним фрагмент с теми же стилями
// продолжает этот же текст. Результат всегда содержит хотя бы один узел.
func GroupRuns(inlines []editordoc.Inline) []blocks.Inline {
	var g runGroup
	for _, in := range inlines {
		switch v := in.(type) {
		case editordoc.Run:
			g = g.addRun(v)
		case editordoc.HardBreak:
			g = g.addBreak()
		}
	}
	return blocks.Normalize(g.flush().out)
}

func (g runGroup) flush() runGroup {
	if g.link != nil && len(g.pending) > 0 {
		g.out = append(g.out, blocks.Link{URL: g.link.URL, Children: g.pending})
	}
	g.pending = nil
	return g
}

func (g runGroup) addRun(run editordoc.Run) runGroup {
	if run.Text == "" {
		return g
	}
	if !marks.SameTarget(g.link, run.Link) {
		g = g.flush()
		g.link = run.Link
	}

	text := blocks.Text{Value: run.Text, Marks: run.Marks}
	afterBreak := g.afterBreak
	g.afterBreak = false

	if g.link != nil {
		if last := len(g.pending) - 1; afterBreak && last >= 0 && g.pending[last].Marks == text.Marks {
			g.pending[last].Value += text.Value
			return g
		}
		g.pending = append(g.pending, text)
		return g
	}

	if last := len(g.out) - 1; afterBreak && last >= 0 {
		if prev, ok := g.out[last].(blocks.Text); ok && prev.Marks == text.Marks {
			prev.Value += text.Value
			g.out[last] = prev
			return g
		}
	}
	g.out = append(g.out, text)
	return g
}

func (g runGroup) addBreak() runGroup {
	g.afterBreak = true

	if last := len(g.pending) - 1; last >= 0 {
		g.pending[last].Value += "\n"
		return g
	}

	if last := len(g.out) - 1; last >= 0 {
		switch prev := g.out[last].(type) {
		case blocks.Text:
			prev.Value += "\n"
			g.out[last] = prev
			return g
		case blocks.Link:
			if n := len(prev.Children) - 1; n >= 0 {
				children := append([]blocks.Text(nil), prev.Children...)
				children[n].Value += "\n"
				prev.Children = children
				g.out[last] = prev
				return g
			}
		}
	}

	g.out = append(g.out, blocks.Text{Value: "\n"})
	return g
}
