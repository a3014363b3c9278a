package report

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

// CSV renders the document as a flat CSV: each section becomes its heading
// row followed by its content rows, with a blank row between sections.
// Key-value content serializes as two columns, tables keep their grid, and
// lists and free text collapse to single-column rows.
func (d Document) CSV() ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	records := [][]string{{d.Title}, {}}
	for _, section := range d.Sections {
		records = append(records, []string{section.Heading})

		switch {
		case len(section.KeyValues) > 0:
			for _, kv := range section.KeyValues {
				records = append(records, []string{kv.Key, kv.Value})
			}
		case section.Table != nil:
			records = append(records, section.Table.Header)
			records = append(records, section.Table.Rows...)
		case len(section.List) > 0:
			for _, item := range section.List {
				records = append(records, []string{item})
			}
		case section.Text != "":
			records = append(records, []string{section.Text})
		}
		records = append(records, []string{})
	}

	if err := w.WriteAll(records); err != nil {
		return nil, fmt.Errorf("failed to render CSV: %w", err)
	}
	return buf.Bytes(), nil
}
