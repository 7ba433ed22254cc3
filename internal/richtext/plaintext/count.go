package plaintext

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/cforcadmin/CforC-sub001/internal/richtext/blocks"
)

type Stats struct {
	Words              int `json:"words"`
	Characters         int `json:"characters"`
	CharactersNoSpaces int `json:"characters_no_spaces"`
}

type DocumentStats struct {
	Stats
	Blocks    int `json:"blocks"`
	ListItems int `json:"list_items"`
}

// Count считает слова и символы (в рунах) в тексте.
func Count(text string) Stats {
	words := strings.FieldsFunc(text, func(r rune) bool {
		return unicode.IsSpace(r)
	})

	noSpaces := 0
	for _, r := range text {
		if !unicode.IsSpace(r) {
			noSpaces++
		}
	}

	return Stats{
		Words:              len(words),
		Characters:         utf8.RuneCountInString(text),
		CharactersNoSpaces: noSpaces,
	}
}

// CountDocument считает статистику по тексту Lines и структуре документа.
func CountDocument(c blocks.Content) DocumentStats {
	stats := DocumentStats{Stats: Count(Lines(c))}
	switch c.Kind {
	case blocks.ContentBlocks:
		stats.Blocks = len(c.Blocks)
		for _, b := range c.Blocks {
			if list, ok := b.(blocks.List); ok {
				stats.ListItems += len(list.Items)
			}
		}
	case blocks.ContentLegacy:
		stats.Blocks = strings.Count(c.Legacy, "\n") + 1
	}
	return stats
}

// Excerpt обрезает текст до limit рун, не разрывая символы, и добавляет многоточие.
// Если в обрезанном тексте есть пробел, обрезка идет по границе слова.
func Excerpt(text string, limit int) string {
	text = strings.TrimSpace(text)
	if limit <= 0 {
		return ""
	}

	asRunes := []rune(text)
	if len(asRunes) <= limit {
		return text
	}

	cut := asRunes[:limit]
	for i := len(cut) - 1; i > 0; i-- {
		if unicode.IsSpace(cut[i]) {
			cut = cut[:i]
			break
		}
	}
	return strings.TrimRightFunc(string(cut), unicode.IsSpace) + "…"
}
