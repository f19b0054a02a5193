package metrics

import "sort"

// StatusRow is one status code and how many responses carried it.
type StatusRow struct {
	Code  string
	Count int
}

// StatusRows flattens a code->count map into rows sorted by descending count,
// then by code for stability.
func StatusRows(codes map[string]int) []StatusRow {
	if len(codes) == 0 {
		return nil
	}
	rows := make([]StatusRow, 0, len(codes))
	for code, count := range codes {
		rows = append(rows, StatusRow{Code: code, Count: count})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Count == rows[j].Count {
			return rows[i].Code < rows[j].Code
		}
		return rows[i].Count > rows[j].Count
	})
	return rows
}
