package domain

// FeatureSet is the projected export: a header, one row of cells per kept
// record, and the records themselves in the same order.
type FeatureSet struct {
	RunID   string
	Columns []string
	Rows    [][]string
	Records []ProcessedRecord
}

// Project renders records into the selected columns. A record with any
// missing cell is dropped, so every exported row is complete.
func Project(records []ProcessedRecord, columns []OutputColumn) (FeatureSet, Drops) {
	fs := FeatureSet{
		Columns: make([]string, len(columns)),
		Rows:    make([][]string, 0, len(records)),
		Records: make([]ProcessedRecord, 0, len(records)),
	}
	for i, c := range columns {
		fs.Columns[i] = c.Name
	}

	drops := Drops{}
	for _, r := range records {
		row, ok := projectRow(r, columns)
		if !ok {
			drops[ReasonMissingRequiredCell]++
			continue
		}
		fs.Rows = append(fs.Rows, row)
		fs.Records = append(fs.Records, r)
	}
	return fs, drops
}

func projectRow(r ProcessedRecord, columns []OutputColumn) ([]string, bool) {
	row := make([]string, len(columns))
	for i, c := range columns {
		v, ok := c.Value(r)
		if !ok {
			return nil, false
		}
		row[i] = v
	}
	return row, true
}
