// Пакет htmlimport переводит устаревший HTML контент в дерево хранения (Blocks).
//
// HTML сначала очищается политикой bluemonday, затем разбирается golang.org/x/net/html.
//
// Основные возможности:
//   - Блоки p, h1-h6, ul/ol/li, blockquote, pre.
//   - Стили strong/b, em/i, u, s/strike/del, ссылки a[href], перенос br.
//   - Изображения img превращаются в параграф с директивой [IMAGE: ...].
package htmlimport

import (
	"bytes"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"

	"github.com/cforcadmin/CforC-sub001/internal/richtext/blocks"
	"github.com/cforcadmin/CforC-sub001/internal/richtext/marks"
	"github.com/cforcadmin/CforC-sub001/internal/richtext/render"
)

var importPolicy = bluemonday.UGCPolicy()

func init() {
	alignRegexp := regexp.MustCompile(`^(right|left)$`)
	codeClassRegexp := regexp.MustCompile(`^language-[\w+#-]+$`)

	importPolicy.AllowStyles("float").Matching(alignRegexp).OnElements("img")
	importPolicy.AllowAttrs("class").Matching(codeClassRegexp).OnElements("code")
}

// Parse читает HTML фрагмент и возвращает блоки. Ошибка возвращается только при сбое чтения или разбора.
func Parse(r io.Reader) (blocks.Document, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read html: %w", err)
	}

	rootNode, err := html.Parse(bytes.NewReader(importPolicy.SanitizeBytes(raw)))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	body := findElementByTagName(rootNode, "body")
	if body == nil {
		return blocks.Document{}, nil
	}

	var imp importer
	imp.walkBlocks(body)
	imp.flush()
	if imp.doc == nil {
		return blocks.Document{}, nil
	}
	return imp.doc, nil
}

// ParseString - Parse для строки.
func ParseString(s string) (blocks.Document, error) {
	return Parse(strings.NewReader(s))
}

// importer собирает блоки. Строчное содержимое вне блочных элементов копится в pending и становится параграфом.
type importer struct {
	doc     blocks.Document
	pending inlineCollector
}

func (imp *importer) flush() {
	if children := imp.pending.result(); len(children) > 0 {
		imp.doc = append(imp.doc, blocks.Paragraph{Children: children})
	}
	imp.appendImages(imp.pending.images)
	imp.pending = inlineCollector{}
}

func (imp *importer) appendImages(images []render.Image) {
	for _, img := range images {
		imp.doc = append(imp.doc, blocks.Paragraph{Children: []blocks.Inline{blocks.Text{Value: img.Directive()}}})
	}
}

func (imp *importer) walkBlocks(parent *html.Node) {
	for el := parent.FirstChild; el != nil; el = el.NextSibling {
		if el.Type == html.TextNode {
			imp.pending.walk(el, inlineState{})
			continue
		}
		if el.Type != html.ElementNode {
			continue
		}

		switch el.Data {
		case "p":
			imp.flush()
			imp.pending.walkChildren(el, inlineState{})
			imp.flush()
		case "h1", "h2", "h3", "h4", "h5", "h6":
			imp.flush()
			var c inlineCollector
			c.walkChildren(el, inlineState{})
			imp.doc = append(imp.doc, blocks.Heading{Level: int(el.Data[1] - '0'), Children: blocks.Normalize(c.result())})
			imp.appendImages(c.images)
		case "ul", "ol":
			imp.flush()
			list, images := parseList(el)
			imp.doc = append(imp.doc, list)
			imp.appendImages(images)
		case "blockquote":
			imp.flush()
			var c inlineCollector
			c.walkChildren(el, inlineState{})
			imp.doc = append(imp.doc, blocks.Quote{Children: blocks.Normalize(c.result())})
			imp.appendImages(c.images)
		case "pre":
			imp.flush()
			imp.doc = append(imp.doc, parseCode(el))
		case "br":
			imp.flush()
		case "div", "section", "article", "aside", "figure", "table", "thead", "tbody", "tr", "td", "th":
			imp.flush()
			imp.walkBlocks(el)
			imp.flush()
		default:
			imp.pending.walk(el, inlineState{})
		}
	}
}

func parseList(root *html.Node) (blocks.List, []render.Image) {
	list := blocks.List{Ordered: root.Data == "ol"}
	var images []render.Image
	for li := root.FirstChild; li != nil; li = li.NextSibling {
		if li.Type != html.ElementNode || li.Data != "li" {
			continue
		}
		var c inlineCollector
		c.walkChildren(li, inlineState{})
		list.Items = append(list.Items, blocks.ListItem{Children: blocks.Normalize(c.result())})
		images = append(images, c.images...)
	}
	if len(list.Items) == 0 {
		list.Items = []blocks.ListItem{{Children: blocks.Normalize(nil)}}
	}
	return list, images
}

func parseCode(root *html.Node) blocks.Code {
	var code blocks.Code
	var sb strings.Builder
	iterNodes(root, func(child *html.Node) bool {
		if child.Type == html.ElementNode && child.Data == "code" && code.Language == "" {
			for _, class := range strings.Fields(getAttrValue("class", child.Attr)) {
				if lang, ok := strings.CutPrefix(class, "language-"); ok {
					code.Language = lang
				}
			}
		}
		if child.Type == html.TextNode {
			sb.WriteString(child.Data)
		}
		return false
	})
	// парсер HTML уже убирает первый перевод строки после <pre>
	code.Text = strings.TrimSuffix(sb.String(), "\n")
	return code
}

// inlineState - стили и ссылка, действующие на текущий текстовый узел.
type inlineState struct {
	marks marks.Set
	link  string
}

type inlineCollector struct {
	out    []blocks.Inline
	images []render.Image
}

func (c *inlineCollector) walkChildren(n *html.Node, st inlineState) {
	for child := n.FirstChild; child != nil; child = child.NextSibling {
		c.walk(child, st)
	}
}

func (c *inlineCollector) walk(n *html.Node, st inlineState) {
	switch n.Type {
	case html.TextNode:
		value := collapseSpaces(n.Data)
		if c.endsWithBreak() {
			value = strings.TrimLeft(value, " ")
		}
		c.addText(value, st)
		return
	case html.ElementNode:
	default:
		return
	}

	switch n.Data {
	case "br":
		c.addText("\n", st)
		return
	case "img":
		if img, ok := getImage(n); ok {
			c.images = append(c.images, img)
		}
		return
	case "strong", "b":
		st.marks = st.marks.With(marks.Bold)
	case "em", "i":
		st.marks = st.marks.With(marks.Italic)
	case "u":
		st.marks = st.marks.With(marks.Underline)
	case "s", "strike", "del":
		st.marks = st.marks.With(marks.Strikethrough)
	case "a":
		if href := getAttrValue("href", n.Attr); href != "" {
			st.link = href
		}
	case "p", "div", "li", "ul", "ol", "blockquote", "pre", "h1", "h2", "h3", "h4", "h5", "h6":
		// вложенный блок внутри строчного контекста начинается с новой строки
		if len(c.out) > 0 {
			c.addText("\n", inlineState{})
		}
	}
	c.walkChildren(n, st)
}

func (c *inlineCollector) addText(value string, st inlineState) {
	if value == "" {
		return
	}
	text := blocks.Text{Value: value, Marks: st.marks}
	last := len(c.out) - 1

	if st.link != "" {
		if last >= 0 {
			if link, ok := c.out[last].(blocks.Link); ok && link.URL == st.link {
				link.Children = appendText(link.Children, text)
				c.out[last] = link
				return
			}
		}
		c.out = append(c.out, blocks.Link{URL: st.link, Children: []blocks.Text{text}})
		return
	}

	if last >= 0 {
		if prev, ok := c.out[last].(blocks.Text); ok && prev.Marks == text.Marks {
			prev.Value += text.Value
			c.out[last] = prev
			return
		}
	}
	c.out = append(c.out, text)
}

func (c *inlineCollector) endsWithBreak() bool {
	if len(c.out) == 0 {
		return false
	}
	switch v := c.out[len(c.out)-1].(type) {
	case blocks.Text:
		return strings.HasSuffix(v.Value, "\n")
	case blocks.Link:
		return len(v.Children) > 0 && strings.HasSuffix(v.Children[len(v.Children)-1].Value, "\n")
	}
	return false
}

func appendText(texts []blocks.Text, t blocks.Text) []blocks.Text {
	if n := len(texts) - 1; n >= 0 && texts[n].Marks == t.Marks {
		res := append([]blocks.Text(nil), texts...)
		res[n].Value += t.Value
		return res
	}
	return append(texts, t)
}

// result возвращает собранные узлы без пробелов по краям. Пустой результат - nil.
func (c *inlineCollector) result() []blocks.Inline {
	out := append([]blocks.Inline(nil), c.out...)
	if len(out) == 0 {
		return nil
	}
	out[0] = trimInline(out[0], true)
	out[len(out)-1] = trimInline(out[len(out)-1], false)

	res := out[:0]
	for _, in := range out {
		if t, ok := in.(blocks.Text); ok && t.Value == "" {
			continue
		}
		res = append(res, in)
	}
	if len(res) == 0 {
		return nil
	}
	return res
}

func trimInline(in blocks.Inline, left bool) blocks.Inline {
	trim := strings.TrimRight
	if left {
		trim = strings.TrimLeft
	}
	switch v := in.(type) {
	case blocks.Text:
		v.Value = trim(v.Value, " \n")
		return v
	case blocks.Link:
		children := append([]blocks.Text(nil), v.Children...)
		i := len(children) - 1
		if left {
			i = 0
		}
		children[i].Value = trim(children[i].Value, " ")
		v.Children = children
		return v
	}
	return in
}

var spacesRegexp = regexp.MustCompile(`[ \t\r\n\f]+`)

// collapseSpaces сворачивает пробельные символы HTML в один пробел.
func collapseSpaces(s string) string {
	return spacesRegexp.ReplaceAllString(s, " ")
}
