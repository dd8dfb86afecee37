package normalizer

// 网关返回的字段命名在不同编排版本间不稳定（snake_case / camelCase 混用），
// 这里统一用候选键列表做字段解析：按顺序取第一个存在且类型匹配的值，
// 任何缺失或类型不符都降级为"未找到"，绝不报错

// firstValue 按候选键顺序返回第一个存在的值
func firstValue(m map[string]any, keys ...string) (any, bool) {
	if m == nil {
		return nil, false
	}
	for _, key := range keys {
		if v, ok := m[key]; ok && v != nil {
			return v, true
		}
	}
	return nil, false
}

// firstMap 按候选键顺序返回第一个对象值
func firstMap(m map[string]any, keys ...string) (map[string]any, bool) {
	v, ok := firstValue(m, keys...)
	if !ok {
		return nil, false
	}
	sub, ok := v.(map[string]any)
	return sub, ok
}

// firstSlice 按候选键顺序返回第一个数组值
func firstSlice(m map[string]any, keys ...string) ([]any, bool) {
	v, ok := firstValue(m, keys...)
	if !ok {
		return nil, false
	}
	list, ok := v.([]any)
	return list, ok
}

// firstString 按候选键顺序返回第一个非空字符串值
func firstString(m map[string]any, keys ...string) (string, bool) {
	if m == nil {
		return "", false
	}
	for _, key := range keys {
		if v, ok := m[key]; ok {
			if s, ok := v.(string); ok && s != "" {
				return s, true
			}
		}
	}
	return "", false
}

// asMap 值本身是否为对象
func asMap(v any) (map[string]any, bool) {
	m, ok := v.(map[string]any)
	return m, ok
}
