package catalog

import (
	"fmt"
	"time"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// ArgNames is a convenience constructor for a Kind's accepted-argument set.
func ArgNames(names ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}
	return set
}

// StringArg reads a string argument, falling back to def when absent.
func StringArg(args map[string]cty.Value, name, def string) (string, error) {
	value, ok := args[name]
	if !ok || value.IsNull() {
		return def, nil
	}
	converted, err := convert.Convert(value, cty.String)
	if err != nil {
		return "", fmt.Errorf("argument %q: %w", name, err)
	}
	return converted.AsString(), nil
}

// BoolArg reads a bool argument, falling back to def when absent.
func BoolArg(args map[string]cty.Value, name string, def bool) (bool, error) {
	value, ok := args[name]
	if !ok || value.IsNull() {
		return def, nil
	}
	converted, err := convert.Convert(value, cty.Bool)
	if err != nil {
		return false, fmt.Errorf("argument %q: %w", name, err)
	}
	return converted.True(), nil
}

// DurationArg reads a duration argument given as a string like "5s",
// falling back to def when absent.
func DurationArg(args map[string]cty.Value, name string, def time.Duration) (time.Duration, error) {
	raw, err := StringArg(args, name, "")
	if err != nil {
		return 0, err
	}
	if raw == "" {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("argument %q: %w", name, err)
	}
	return d, nil
}
