package gotemplate

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
)

var filtersMu sync.Mutex

// registerFilters installs the filters the FIR views use: trim, na (empty
// becomes "N/A") and commalist (lists joined with ", ").
func registerFilters() error {
	filtersMu.Lock()
	defer filtersMu.Unlock()
	for name, fn := range map[string]pongo2.FilterFunction{
		"trim":      filterTrim,
		"na":        filterNA,
		"commalist": filterCommaList,
	} {
		if pongo2.FilterExists(name) {
			continue
		}
		if err := pongo2.RegisterFilter(name, fn); err != nil {
			return fmt.Errorf("register %s: %w", name, err)
		}
	}
	return nil
}

func filterTrim(in, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	return pongo2.AsValue(strings.TrimSpace(in.String())), nil
}

func filterNA(in, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if in.IsNil() || strings.TrimSpace(in.String()) == "" {
		return pongo2.AsValue("N/A"), nil
	}
	return in, nil
}

func filterCommaList(in, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
	if in.IsString() || !in.CanSlice() {
		return in, nil
	}
	parts := make([]string, 0, in.Len())
	in.Iterate(func(_, _ int, item, _ *pongo2.Value) bool {
		if s := strings.TrimSpace(fmt.Sprint(item.Interface())); s != "" {
			parts = append(parts, s)
		}
		return true
	}, func() {})
	return pongo2.AsValue(strings.Join(parts, ", ")), nil
}

func isFunc(v any) bool {
	return v != nil && reflect.TypeOf(v).Kind() == reflect.Func
}
