// Package fallback serves the bundled sample data used for categories that
// have no backend endpoint.
package fallback

import (
	_ "embed"

	"github.com/cockroachdb/errors"
	"github.com/omarshaarawi/gridiron/internal/models"
	"gopkg.in/yaml.v3"
)

//go:embed data/fallback.yaml
var bundled []byte

// Dataset is read-only after construction.
type Dataset struct {
	rows map[models.Category][]models.RawRecord
}

// Load parses the bundled sample data.
func Load() (*Dataset, error) {
	return Parse(bundled)
}

// Parse reads a YAML document keyed by category name. Keys outside
// models.Categories are rejected so the data cannot drift from the selector.
func Parse(data []byte) (*Dataset, error) {
	var doc map[string][]map[string]any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "decode fallback dataset")
	}

	rows := make(map[models.Category][]models.RawRecord, len(doc))
	for name, items := range doc {
		category := models.Category(name)
		if !category.Valid() {
			return nil, errors.Newf("fallback dataset: unknown category %q", name)
		}
		records := make([]models.RawRecord, 0, len(items))
		for _, item := range items {
			records = append(records, models.RawRecord(item))
		}
		rows[category] = records
	}
	return &Dataset{rows: rows}, nil
}

// Has reports whether the dataset carries an entry for category.
func (d *Dataset) Has(category models.Category) bool {
	_, ok := d.rows[category]
	return ok
}

// Records returns the rows for category, or an empty slice. The slice is a
// fresh copy; the row maps are shared and must not be modified.
func (d *Dataset) Records(category models.Category) []models.RawRecord {
	src := d.rows[category]
	out := make([]models.RawRecord, len(src))
	copy(out, src)
	return out
}

// Categories lists the categories with sample data, in models.Categories order.
func (d *Dataset) Categories() []models.Category {
	out := make([]models.Category, 0, len(d.rows))
	for _, c := range models.Categories {
		if d.Has(c) {
			out = append(out, c)
		}
	}
	return out
}
