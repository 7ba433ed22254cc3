package render

import (
	"io"
	"regexp"
	"strings"

	md "github.com/nao1215/markdown"
)

// Markdown записывает дерево в w в формате Markdown. Блоки разделяются пустой строкой.
func Markdown(w io.Writer, tree Tree) error {
	return markdownBuilder(w, tree).Build()
}

// MarkdownString возвращает Markdown дерева.
func MarkdownString(tree Tree) string {
	return markdownBuilder(io.Discard, tree).String()
}

func markdownBuilder(w io.Writer, tree Tree) *md.Markdown {
	m := md.NewMarkdown(w)
	for i, n := range tree {
		if i > 0 {
			m.PlainText("")
		}
		writeMarkdownBlock(m, n)
	}
	return m
}

func writeMarkdownBlock(m *md.Markdown, n Node) {
	switch n.Kind {
	case KindHeading:
		text := markdownInlines(n.Children)
		switch clampLevel(n.Level) {
		case 1:
			m.H1(text)
		case 2:
			m.H2(text)
		case 3:
			m.H3(text)
		case 4:
			m.H4(text)
		case 5:
			m.H5(text)
		default:
			m.H6(text)
		}
	case KindList:
		items := make([]string, 0, len(n.Children))
		for _, item := range n.Children {
			items = append(items, markdownInlines(item.Children))
		}
		if n.Ordered {
			m.OrderedList(items...)
		} else {
			m.BulletList(items...)
		}
	case KindQuote:
		m.Blockquote(markdownInlines(n.Children))
	case KindCode:
		m.CodeBlocks(md.SyntaxHighlight(n.Language), n.Text)
	case KindImage:
		if n.Image != nil {
			m.PlainText(md.Image(n.Image.Alt, n.Image.URL))
		}
	default:
		m.PlainText(markdownInlines(n.Children))
	}
}

func markdownInlines(nodes []Node) string {
	var sb strings.Builder
	for _, n := range nodes {
		sb.WriteString(markdownInline(n))
	}
	return sb.String()
}

func markdownInline(n Node) string {
	inner := markdownInlines(n.Children)
	switch n.Kind {
	case KindText:
		return escapeMarkdown(n.Text)
	case KindLineBreak:
		// жесткий перенос строки Markdown
		return "  \n"
	case KindBold:
		return md.Bold(inner)
	case KindItalic:
		return md.Italic(inner)
	case KindStrikethrough:
		return md.Strikethrough(inner)
	case KindUnderline:
		return "<u>" + inner + "</u>"
	case KindLink:
		return md.Link(inner, n.URL)
	}
	return inner
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`,
	"*", `\*`,
	"_", `\_`,
	"[", `\[`,
	"]", `\]`,
	"#", `\#`,
	">", `\>`,
	"-", `\-`,
	"+", `\+`,
	"!", `\!`,
	"`", "\\`",
	"~", `\~`,
)

// номер в начале строки превратил бы параграф в нумерованный список
var orderedMarkerRegexp = regexp.MustCompile(`^(\s*\d+)([.)])`)

// escapeMarkdown экранирует служебные символы Markdown в тексте.
func escapeMarkdown(s string) string {
	s = markdownEscaper.Replace(s)
	return orderedMarkerRegexp.ReplaceAllString(s, `$1\$2`)
}
