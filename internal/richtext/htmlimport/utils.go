package htmlimport

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/cforcadmin/CforC-sub001/internal/richtext/render"
)

func findElementByTagName(rootNode *html.Node, tagName string) *html.Node {
	var res *html.Node
	iterNodes(rootNode, func(n *html.Node) bool {
		if res != nil {
			return true
		}
		if n.Type == html.ElementNode && n.Data == tagName {
			res = n
			return true
		}
		return false
	})
	return res
}

func iterNodes(node *html.Node, f func(child *html.Node) bool) {
	if f(node) {
		return
	}
	for p := node.FirstChild; p != nil; p = p.NextSibling {
		iterNodes(p, f)
	}
}

func getAttrValue(key string, attrs []html.Attribute) string {
	for _, attr := range attrs {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}

// getImage читает src, alt и выравнивание из style float.
func getImage(el *html.Node) (render.Image, bool) {
	src := strings.TrimSpace(collapseSpaces(getAttrValue("src", el.Attr)))
	if src == "" {
		return render.Image{}, false
	}

	img := render.Image{URL: src, Alt: getAttrValue("alt", el.Attr)}
	for _, styleRaw := range strings.Split(getAttrValue("style", el.Attr), ";") {
		key, val, ok := strings.Cut(styleRaw, ":")
		if !ok || strings.TrimSpace(key) != "float" {
			continue
		}
		switch strings.TrimSpace(val) {
		case "left":
			img.Size, img.Align = render.ImageFull, render.AlignLeft
		case "right":
			img.Size, img.Align = render.ImageFull, render.AlignRight
		}
	}
	// директива однострочная, | разделяет ее поля
	img.URL = strings.ReplaceAll(img.URL, "|", "%7C")
	img.Alt = strings.TrimSpace(collapseSpaces(strings.ReplaceAll(img.Alt, "|", " ")))
	return img, true
}
