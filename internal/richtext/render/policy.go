package render

import (
	"regexp"

	"github.com/microcosm-cc/bluemonday"
)

var (
	imageClassRegexp = regexp.MustCompile(`^rt-image rt-image--(small|medium|large|full) rt-image--(left|center|right)$`)
	codeClassRegexp  = regexp.MustCompile(`^language-[\w+#-]+$`)
)

// NewPolicy возвращает политику очистки HTML для вывода rich-text: UGC политика,
// дополненная разметкой изображений и стилями текста.
func NewPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowElements("figure", "s", "u", "strong", "em")
	p.AllowAttrs("class").Matching(imageClassRegexp).OnElements("figure")
	p.AllowAttrs("class").Matching(codeClassRegexp).OnElements("code")
	p.AllowAttrs("src", "alt").OnElements("img")
	return p
}
