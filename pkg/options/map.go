package options

// Map is the resolved Options Map. Values are string, bool, []string or nil.
type Map map[string]any

// Merge combines a per-call override with the stored options. An empty
// override yields a copy of stored; otherwise override keys take precedence
// and stored fills the keys override lacks. Neither input is modified.
func Merge(override, stored Map) Map {
	merged := make(Map, len(stored)+len(override))
	if len(override) == 0 {
		for k, v := range stored {
			merged[k] = v
		}
		return merged
	}
	for k, v := range override {
		merged[k] = v
	}
	for k, v := range stored {
		if _, ok := merged[k]; !ok {
			merged[k] = v
		}
	}
	return merged
}

// String returns the string stored under key, or "" for anything else.
func (m Map) String(key string) string {
	s, _ := m[key].(string)
	return s
}

// Bool returns the bool stored under key, or false for anything else.
func (m Map) Bool(key string) bool {
	b, _ := m[key].(bool)
	return b
}

// Strings returns a copy of the sequence stored under key.
func (m Map) Strings(key string) []string {
	s, _ := m[key].([]string)
	if s == nil {
		return nil
	}
	return append([]string(nil), s...)
}

// Clone returns a shallow copy of m.
func (m Map) Clone() Map {
	return Merge(nil, m)
}
