package blocks

import "strings"

// getAttrString безопасно извлекает строковый атрибут из map.
func getAttrString(attrs map[string]interface{}, key string) string {
	if attrs == nil {
		return ""
	}
	val, ok := attrs[key]
	if !ok {
		return ""
	}
	str, ok := val.(string)
	if !ok {
		return ""
	}
	return str
}

// getAttrInt безопасно извлекает целочисленный атрибут из map.
func getAttrInt(attrs map[string]interface{}, key string) int {
	if attrs == nil {
		return 0
	}
	switch v := attrs[key].(type) {
	case float64:
		// JSON
		return int(v)
	case int:
		// YAML
		return v
	case string:
		// "level": "2" встречается в старых записях
		n := 0
		for _, r := range strings.TrimSpace(v) {
			if r < '0' || r > '9' {
				return 0
			}
			n = n*10 + int(r-'0')
		}
		return n
	}
	return 0
}

// getAttrBool безопасно извлекает булевый атрибут из map.
func getAttrBool(attrs map[string]interface{}, key string) bool {
	if attrs == nil {
		return false
	}
	b, ok := attrs[key].(bool)
	return ok && b
}

// getAttrList извлекает массив дочерних объектов, пропуская элементы, не являющиеся объектами.
func getAttrList(attrs map[string]interface{}, key string) []map[string]interface{} {
	if attrs == nil {
		return nil
	}
	raw, ok := attrs[key].([]interface{})
	if !ok {
		return nil
	}
	res := make([]map[string]interface{}, 0, len(raw))
	for _, item := range raw {
		if m, ok := item.(map[string]interface{}); ok {
			res = append(res, m)
		}
	}
	return res
}
