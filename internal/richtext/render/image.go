package render

import (
	"regexp"
	"strings"

	"github.com/cforcadmin/CforC-sub001/internal/richtext/blocks"
)

type ImageSize string

const (
	ImageSmall  ImageSize = "small"
	ImageMedium ImageSize = "medium"
	ImageLarge  ImageSize = "large"
	ImageFull   ImageSize = "full"
)

type ImageAlign string

const (
	AlignLeft   ImageAlign = "left"
	AlignCenter ImageAlign = "center"
	AlignRight  ImageAlign = "right"
)

// Image - изображение, заданное директивой в параграфе.
type Image struct {
	URL   string     `json:"url"`
	Alt   string     `json:"alt"`
	Size  ImageSize  `json:"size"`
	Align ImageAlign `json:"align"`
}

var imageDirectiveRegexp = regexp.MustCompile(`(?i)^\[IMAGE:\s*(.*)\]$`)

// ParseImageDirective распознает параграф, единственный узел которого - текст без стилей
// вида [IMAGE: url | alt | size | alignment]. Пустой url делает директиву недействительной.
func ParseImageDirective(children []blocks.Inline) (Image, bool) {
	if len(children) != 1 {
		return Image{}, false
	}
	t, ok := children[0].(blocks.Text)
	if !ok || !t.Plain() {
		return Image{}, false
	}
	return ParseImageText(t.Value)
}

// ParseImageText разбирает текст директивы изображения.
func ParseImageText(s string) (Image, bool) {
	m := imageDirectiveRegexp.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return Image{}, false
	}

	fields := strings.Split(m[1], "|")
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}

	img := Image{URL: fields[0], Size: ImageFull, Align: AlignCenter}
	if img.URL == "" {
		return Image{}, false
	}
	if len(fields) > 1 {
		img.Alt = fields[1]
	}
	if len(fields) > 2 {
		img.Size = parseImageSize(fields[2])
	}
	if len(fields) > 3 {
		img.Align = parseImageAlign(fields[3])
	}
	return img, true
}

// Directive возвращает текст директивы для изображения.
func (img Image) Directive() string {
	parts := []string{img.URL, img.Alt}
	if img.Size != "" || img.Align != "" {
		parts = append(parts, string(parseImageSize(string(img.Size))), string(parseImageAlign(string(img.Align))))
	}
	return "[IMAGE: " + strings.Join(parts, " | ") + "]"
}

func parseImageSize(s string) ImageSize {
	switch size := ImageSize(strings.ToLower(s)); size {
	case ImageSmall, ImageMedium, ImageLarge, ImageFull:
		return size
	}
	return ImageFull
}

func parseImageAlign(s string) ImageAlign {
	switch align := ImageAlign(strings.ToLower(s)); align {
	case AlignLeft, AlignCenter, AlignRight:
		return align
	}
	return AlignCenter
}
