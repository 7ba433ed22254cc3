package render

import (
	"bytes"
	"fmt"
	"io"

	"github.com/microcosm-cc/bluemonday"
	"github.com/tdewolff/minify/v2"
	minhtml "github.com/tdewolff/minify/v2/html"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// HTMLRenderer выводит дерево представления в HTML. После создания не изменяется
// и может использоваться из нескольких горутин.
type HTMLRenderer struct {
	policy   *bluemonday.Policy
	minifier *minify.M
}

type HTMLOption func(*HTMLRenderer)

// WithSanitize включает очистку результата политикой NewPolicy.
func WithSanitize() HTMLOption {
	return func(r *HTMLRenderer) {
		r.policy = NewPolicy()
	}
}

// WithPolicy включает очистку результата заданной политикой.
func WithPolicy(p *bluemonday.Policy) HTMLOption {
	return func(r *HTMLRenderer) {
		r.policy = p
	}
}

// WithMinify включает минификацию результата.
func WithMinify() HTMLOption {
	return func(r *HTMLRenderer) {
		m := minify.New()
		m.AddFunc("text/html", minhtml.Minify)
		r.minifier = m
	}
}

func NewHTMLRenderer(opts ...HTMLOption) *HTMLRenderer {
	r := &HTMLRenderer{}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Render записывает HTML дерева в w.
func (r *HTMLRenderer) Render(w io.Writer, tree Tree) error {
	data, err := r.Bytes(tree)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// String возвращает HTML дерева.
func (r *HTMLRenderer) String(tree Tree) (string, error) {
	data, err := r.Bytes(tree)
	return string(data), err
}

// Bytes возвращает HTML дерева.
func (r *HTMLRenderer) Bytes(tree Tree) ([]byte, error) {
	var buf bytes.Buffer
	for _, n := range tree {
		if err := html.Render(&buf, htmlNode(n)); err != nil {
			return nil, fmt.Errorf("render html: %w", err)
		}
	}

	data := buf.Bytes()
	if r.policy != nil {
		data = r.policy.SanitizeBytes(data)
	}
	if r.minifier != nil {
		var err error
		data, err = r.minifier.Bytes("text/html", data)
		if err != nil {
			return nil, fmt.Errorf("minify html: %w", err)
		}
	}
	return data, nil
}

func element(a atom.Atom, attrs ...html.Attribute) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		DataAtom: a,
		Data:     a.String(),
		Attr:     attrs,
	}
}

func attr(key, val string) html.Attribute {
	return html.Attribute{Key: key, Val: val}
}

var headingAtoms = [...]atom.Atom{atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6}

// htmlNode строит узел x/net/html для единицы представления.
func htmlNode(n Node) *html.Node {
	var el *html.Node
	switch n.Kind {
	case KindText:
		return &html.Node{Type: html.TextNode, Data: n.Text}
	case KindLineBreak:
		return element(atom.Br)
	case KindParagraph:
		el = element(atom.P)
	case KindHeading:
		el = element(headingAtoms[clampLevel(n.Level)-1])
	case KindList:
		if n.Ordered {
			el = element(atom.Ol)
		} else {
			el = element(atom.Ul)
		}
	case KindListItem:
		el = element(atom.Li)
	case KindQuote:
		el = element(atom.Blockquote)
	case KindCode:
		code := element(atom.Code)
		if n.Language != "" {
			code.Attr = append(code.Attr, attr("class", "language-"+n.Language))
		}
		code.AppendChild(&html.Node{Type: html.TextNode, Data: n.Text})
		pre := element(atom.Pre)
		pre.AppendChild(code)
		return pre
	case KindImage:
		return imageNode(n.Image)
	case KindBold:
		el = element(atom.Strong)
	case KindItalic:
		el = element(atom.Em)
	case KindUnderline:
		el = element(atom.U)
	case KindStrikethrough:
		el = element(atom.S)
	case KindLink:
		el = element(atom.A, attr("href", n.URL))
	default:
		el = element(atom.Span)
	}

	for _, child := range n.Children {
		el.AppendChild(htmlNode(child))
	}
	return el
}

func imageNode(img *Image) *html.Node {
	if img == nil {
		img = &Image{}
	}
	figure := element(atom.Figure, attr("class", fmt.Sprintf("rt-image rt-image--%s rt-image--%s", parseImageSize(string(img.Size)), parseImageAlign(string(img.Align)))))
	figure.AppendChild(element(atom.Img, attr("src", img.URL), attr("alt", img.Alt)))
	return figure
}
