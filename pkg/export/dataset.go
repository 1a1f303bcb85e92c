package export

// Dataset defines tabular export content. Rows are keyed by header.
type Dataset struct {
	Headers []string
	Rows    []map[string]string
}

// GridSheet is a two-dimensional seat map rendered one per hall.
type GridSheet struct {
	Name     string
	Title    string
	Subtitle string
	// Cells holds one entry per grid cell; an empty string renders a blank seat.
	Cells [][]string
}

func (d Dataset) record(row map[string]string) []string {
	record := make([]string, len(d.Headers))
	for i, header := range d.Headers {
		record[i] = row[header]
	}
	return record
}
