package render

import (
	"strings"

	"github.com/cforcadmin/CforC-sub001/internal/richtext/blocks"
	"github.com/cforcadmin/CforC-sub001/internal/richtext/marks"
)

// Render строит дерево представления для значения поля CMS.
// Пустое и некорректное значение дают пустое дерево.
func Render(c blocks.Content) Tree {
	switch c.Kind {
	case blocks.ContentBlocks:
		return RenderBlocks(c.Blocks)
	case blocks.ContentLegacy:
		return RenderLegacy(c.Legacy)
	}
	return Tree{}
}

// RenderLegacy выводит устаревшую строку: по параграфу на каждую строку, включая пустые.
func RenderLegacy(s string) Tree {
	lines := strings.Split(s, "\n")
	tree := make(Tree, 0, len(lines))
	for _, line := range lines {
		line = strings.TrimSuffix(line, "\r")
		p := Node{Kind: KindParagraph}
		if line != "" {
			p.Children = []Node{{Kind: KindText, Text: line}}
		}
		tree = append(tree, p)
	}
	return tree
}

// RenderBlocks выводит дерево хранения. Блоки неизвестного типа пропускаются.
func RenderBlocks(doc blocks.Document) Tree {
	tree := make(Tree, 0, len(doc))
	for _, b := range doc {
		if n, ok := renderBlock(b); ok {
			tree = append(tree, n)
		}
	}
	return tree
}

func renderBlock(b blocks.Block) (Node, bool) {
	switch bb := b.(type) {
	case blocks.Paragraph:
		if img, ok := ParseImageDirective(bb.Children); ok {
			return Node{Kind: KindImage, Image: &img}, true
		}
		return Node{Kind: KindParagraph, Children: renderInlines(bb.Children)}, true
	case blocks.Heading:
		return Node{Kind: KindHeading, Level: clampLevel(bb.Level), Children: renderInlines(bb.Children)}, true
	case blocks.Quote:
		return Node{Kind: KindQuote, Children: renderInlines(bb.Children)}, true
	case blocks.Code:
		return Node{Kind: KindCode, Text: bb.Text, Language: bb.Language}, true
	case blocks.List:
		list := Node{Kind: KindList, Ordered: bb.Ordered, Children: make([]Node, 0, len(bb.Items))}
		for _, item := range bb.Items {
			list.Children = append(list.Children, Node{Kind: KindListItem, Children: renderInlines(item.Children)})
		}
		return list, true
	}
	return Node{}, false
}

func renderInlines(children []blocks.Inline) []Node {
	var res []Node
	for _, child := range children {
		switch c := child.(type) {
		case blocks.Text:
			res = append(res, renderText(c)...)
		case blocks.Link:
			var linkChildren []Node
			for _, t := range c.Children {
				linkChildren = append(linkChildren, renderText(t)...)
			}
			res = append(res, Node{Kind: KindLink, URL: c.URL, Children: linkChildren})
		}
	}
	return res
}

// renderText разбивает текст по \n и оборачивает результат в стили: bold внутри, strikethrough снаружи.
func renderText(t blocks.Text) []Node {
	var nodes []Node
	for i, line := range strings.Split(t.Value, "\n") {
		if i > 0 {
			nodes = append(nodes, Node{Kind: KindLineBreak})
		}
		if line != "" {
			nodes = append(nodes, Node{Kind: KindText, Text: line})
		}
	}
	if len(nodes) == 0 {
		return nil
	}

	for _, m := range t.Marks.List() {
		nodes = []Node{{Kind: markKind(m), Children: nodes}}
	}
	return nodes
}

func markKind(m marks.Mark) Kind {
	switch m {
	case marks.Bold:
		return KindBold
	case marks.Italic:
		return KindItalic
	case marks.Underline:
		return KindUnderline
	case marks.Strikethrough:
		return KindStrikethrough
	}
	return KindText
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
