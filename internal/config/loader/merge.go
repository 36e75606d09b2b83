package loader

// Merge layers maps into a new map. Later layers win; nested maps present
// in two layers are merged key by key, while any other value replaces the
// earlier one. The layers are not modified.
func Merge(layers ...map[string]any) map[string]any {
	out := map[string]any{}
	for _, layer := range layers {
		overlay(out, layer)
	}
	return out
}

func overlay(dst, src map[string]any) {
	for key, v := range src {
		sub, ok := v.(map[string]any)
		if !ok {
			dst[key] = copyValue(v)
			continue
		}
		if cur, ok := dst[key].(map[string]any); ok {
			overlay(cur, sub)
		} else {
			dst[key] = Clone(sub)
		}
	}
}

// Clone returns a deep copy of m.
func Clone(m map[string]any) map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	overlay(out, m)
	return out
}

func copyValue(v any) any {
	list, ok := v.([]any)
	if !ok {
		return v
	}
	out := make([]any, len(list))
	for i, item := range list {
		if m, ok := item.(map[string]any); ok {
			out[i] = Clone(m)
		} else {
			out[i] = copyValue(item)
		}
	}
	return out
}
