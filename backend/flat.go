package backend

import (
	"fmt"
	"maps"
)

// AssignStrings stores flat key/value pairs into target, which must be a
// *map[string]string or a *map[string]any. Existing entries are kept unless
// overwritten.
func AssignStrings(target any, values map[string]string) error {
	switch dst := target.(type) {
	case *map[string]string:
		if *dst == nil {
			*dst = make(map[string]string, len(values))
		}

		maps.Copy(*dst, values)
	case *map[string]any:
		if *dst == nil {
			*dst = make(map[string]any, len(values))
		}

		for key, value := range values {
			(*dst)[key] = value
		}
	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedTarget, target)
	}

	return nil
}

// Strings flattens a map[string]string or map[string]any into string values.
// Non-string values are formatted with fmt.Sprint.
func Strings(data any) (map[string]string, error) {
	switch src := data.(type) {
	case map[string]string:
		return maps.Clone(src), nil
	case map[string]any:
		out := make(map[string]string, len(src))
		for key, value := range src {
			out[key] = fmt.Sprint(value)
		}

		return out, nil
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedTarget, data)
	}
}
