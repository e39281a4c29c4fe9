// Package loader reads raw configuration maps from TOML files and
// environment variables.
//
// Loaders return nested map[string]any values keyed by section; the
// config package merges them and decodes the result into typed settings.
package loader

// Loader produces one layer of raw settings.
type Loader interface {
	// Load returns the layer, or nil, nil when its source does not exist.
	Load() (map[string]any, error)
}

// Merge deep-merges overlay into base and returns base. Nested maps are
// merged key by key; any other overlay value replaces the base value.
func Merge(base, overlay map[string]any) map[string]any {
	if base == nil {
		base = make(map[string]any, len(overlay))
	}
	for k, v := range overlay {
		if src, ok := v.(map[string]any); ok {
			if dst, ok := base[k].(map[string]any); ok {
				base[k] = Merge(dst, src)
				continue
			}
		}
		base[k] = v
	}
	return base
}
