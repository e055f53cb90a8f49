package script

import (
	"fmt"

	"github.com/louisbranch/biomemod/internal/world/registry"
)

// arguments is a step's Lua table converted to Go values.
type arguments map[string]any

func (a arguments) has(key string) bool {
	_, ok := a[key]
	return ok
}

func (a arguments) text(key string) (string, error) {
	value, ok := a[key]
	if !ok {
		return "", fmt.Errorf("%s is required", key)
	}
	s, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("%s must be a string, got %T", key, value)
	}
	return s, nil
}

func (a arguments) identifier(key string) (registry.Identifier, error) {
	s, err := a.text(key)
	if err != nil {
		return registry.Identifier{}, err
	}
	id, err := registry.ParseIdentifier(s)
	if err != nil {
		return registry.Identifier{}, fmt.Errorf("%s: %w", key, err)
	}
	return id, nil
}

func (a arguments) list(key string) ([]string, error) {
	value, ok := a[key]
	if !ok {
		return nil, nil
	}
	switch v := value.(type) {
	case string:
		return []string{v}, nil
	case []any:
		out := make([]string, 0, len(v))
		for i, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%s[%d] must be a string, got %T", key, i+1, item)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%s must be a list of strings, got %T", key, value)
	}
}

func (a arguments) identifiers(key string) ([]registry.Identifier, error) {
	values, err := a.list(key)
	if err != nil {
		return nil, err
	}
	out := make([]registry.Identifier, 0, len(values))
	for _, value := range values {
		id, err := registry.ParseIdentifier(value)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", key, err)
		}
		out = append(out, id)
	}
	return out, nil
}

func (a arguments) number(key string) (float64, error) {
	value, ok := a[key]
	if !ok {
		return 0, fmt.Errorf("%s is required", key)
	}
	switch v := value.(type) {
	case int:
		return float64(v), nil
	case float64:
		return v, nil
	default:
		return 0, fmt.Errorf("%s must be a number, got %T", key, value)
	}
}

func (a arguments) integer(key string) (int, error) {
	value, ok := a[key]
	if !ok {
		return 0, fmt.Errorf("%s is required", key)
	}
	v, ok := value.(int)
	if !ok {
		return 0, fmt.Errorf("%s must be an integer, got %T", key, value)
	}
	return v, nil
}

func (a arguments) intOr(key string, fallback int) (int, error) {
	if !a.has(key) {
		return fallback, nil
	}
	return a.integer(key)
}

func (a arguments) flag(key string) (bool, error) {
	value, ok := a[key]
	if !ok {
		return false, nil
	}
	v, ok := value.(bool)
	if !ok {
		return false, fmt.Errorf("%s must be a boolean, got %T", key, value)
	}
	return v, nil
}

func (a arguments) table(key string) arguments {
	if value, ok := a[key].(map[string]any); ok {
		return value
	}
	return arguments{}
}
