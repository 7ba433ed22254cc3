package blocks

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
)

type ContentKind int

const (
	// ContentNone - значение отсутствует (null).
	ContentNone ContentKind = iota
	// ContentBlocks - дерево блоков.
	ContentBlocks
	// ContentLegacy - строка, записанная до появления дерева блоков.
	ContentLegacy
	// ContentInvalid - значение не является ни деревом, ни строкой. Отображается как пустое.
	ContentInvalid
)

func (k ContentKind) String() string {
	switch k {
	case ContentNone:
		return "none"
	case ContentBlocks:
		return "blocks"
	case ContentLegacy:
		return "legacy"
	case ContentInvalid:
		return "invalid"
	}
	return fmt.Sprintf("ContentKind(%d)", int(k))
}

// Content - значение rich-text поля, полученное из CMS.
type Content struct {
	Kind   ContentKind
	Blocks Document
	Legacy string
}

func FromBlocks(doc Document) Content {
	return Content{Kind: ContentBlocks, Blocks: doc}
}

func FromLegacy(s string) Content {
	return Content{Kind: ContentLegacy, Legacy: s}
}

func (c Content) MarshalJSON() ([]byte, error) {
	switch c.Kind {
	case ContentBlocks:
		return json.Marshal(c.Blocks)
	case ContentLegacy:
		return json.Marshal(c.Legacy)
	default:
		return []byte("null"), nil
	}
}

func (c *Content) UnmarshalJSON(data []byte) error {
	parsed, err := Parse(bytes.NewReader(data))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// Value реализует интерфейс driver.Valuer для сохранения Content в колонке JSONB.
func (c Content) Value() (driver.Value, error) {
	if c.Kind == ContentNone || c.Kind == ContentInvalid {
		return nil, nil
	}
	return c.MarshalJSON()
}

// Scan реализует интерфейс sql.Scanner для чтения Content из колонки JSONB.
func (c *Content) Scan(value interface{}) error {
	if value == nil {
		*c = Content{}
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.New(fmt.Sprint("Failed to unmarshal JSONB value:", value))
	}

	return c.UnmarshalJSON(data)
}

// GormDataType указывает GORM использовать тип JSONB для колонок.
func (Content) GormDataType() string {
	return "jsonb"
}
