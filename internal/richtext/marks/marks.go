// Пакет marks описывает общий словарь форматирования текста, используемый и деревом хранения (Blocks), и документом редактора.
//
// Основные возможности:
//   - Набор стилей текста (bold, italic, underline, strikethrough) в виде битовой маски с фиксированным порядком обхода.
//   - Аннотация ссылки Link.
//   - Разбор названий стилей в формате CMS и в формате TipTap.
package marks

import "strings"

type Mark uint8

const (
	Bold Mark = 1 << iota
	Italic
	Underline
	Strikethrough
)

// Ordered - канонический порядок применения стилей. От него зависит вложенность при рендере.
var Ordered = []Mark{Bold, Italic, Underline, Strikethrough}

// String возвращает название стиля в формате хранения.
func (m Mark) String() string {
	switch m {
	case Bold:
		return "bold"
	case Italic:
		return "italic"
	case Underline:
		return "underline"
	case Strikethrough:
		return "strikethrough"
	}
	return ""
}

// EditorName возвращает название стиля в формате TipTap.
func (m Mark) EditorName() string {
	if m == Strikethrough {
		return "strike"
	}
	return m.String()
}

// ParseStorage разбирает название стиля из дерева хранения.
func ParseStorage(name string) (Mark, bool) {
	switch strings.ToLower(name) {
	case "bold":
		return Bold, true
	case "italic":
		return Italic, true
	case "underline":
		return Underline, true
	case "strikethrough":
		return Strikethrough, true
	}
	return 0, false
}

// ParseEditor разбирает название стиля TipTap.
func ParseEditor(name string) (Mark, bool) {
	switch name {
	case "bold":
		return Bold, true
	case "italic":
		return Italic, true
	case "underline":
		return Underline, true
	case "strike":
		return Strikethrough, true
	}
	return 0, false
}

// Set - множество стилей текста.
type Set uint8

func NewSet(ms ...Mark) Set {
	var s Set
	for _, m := range ms {
		s = s.With(m)
	}
	return s
}

func (s Set) Has(m Mark) bool {
	return s&Set(m) != 0
}

func (s Set) With(m Mark) Set {
	return s | Set(m)
}

func (s Set) Without(m Mark) Set {
	return s &^ Set(m)
}

func (s Set) Empty() bool {
	return s == 0
}

// List возвращает стили множества в каноническом порядке.
func (s Set) List() []Mark {
	res := make([]Mark, 0, len(Ordered))
	for _, m := range Ordered {
		if s.Has(m) {
			res = append(res, m)
		}
	}
	return res
}

func (s Set) String() string {
	names := make([]string, 0, len(Ordered))
	for _, m := range s.List() {
		names = append(names, m.String())
	}
	return strings.Join(names, "+")
}

// Link - аннотация ссылки. У текстового фрагмента может быть не больше одной ссылки.
type Link struct {
	URL string
}

// SameTarget сообщает, ведут ли обе ссылки на один адрес. Две пустые ссылки (nil) считаются совпадающими.
func SameTarget(a, b *Link) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.URL == b.URL
}
