package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"

	"github.com/devnesthq/devnest/internal/catalog"
	"github.com/devnesthq/devnest/internal/config"
)

// fieldsValue is a comma-separated list of searchable tool fields.
type fieldsValue struct {
	fields []string
}

var _ pflag.Value = (*fieldsValue)(nil)

func (v *fieldsValue) String() string {
	return strings.Join(v.fields, ",")
}

func (v *fieldsValue) Set(raw string) error {
	var fields []string
	seen := make(map[string]bool)
	for _, part := range strings.Split(raw, ",") {
		name := strings.ToLower(strings.TrimSpace(part))
		if name == "" {
			continue
		}
		if !config.IsSearchField(name) {
			return fmt.Errorf("unknown field %q (valid: %s)", name, strings.Join(config.KnownSearchFields, ", "))
		}
		if seen[name] {
			continue
		}
		seen[name] = true
		fields = append(fields, name)
	}
	if len(fields) == 0 {
		return fmt.Errorf("at least one field is required")
	}
	v.fields = fields
	return nil
}

func (v *fieldsValue) Type() string {
	return "fields"
}

// categoryValue is a catalog category name, stored with its canonical casing.
type categoryValue struct {
	name string
}

var _ pflag.Value = (*categoryValue)(nil)

func (v *categoryValue) String() string {
	return v.name
}

func (v *categoryValue) Set(raw string) error {
	raw = strings.TrimSpace(raw)
	c := catalog.Default()
	if strings.EqualFold(raw, catalog.AllCategory) || strings.EqualFold(raw, "all") {
		v.name = catalog.AllCategory
		return nil
	}
	for _, name := range c.Categories {
		if strings.EqualFold(name, raw) {
			v.name = name
			return nil
		}
	}
	return fmt.Errorf("unknown category %q (valid: %s)", raw, strings.Join(c.Categories, ", "))
}

func (v *categoryValue) Type() string {
	return "category"
}
