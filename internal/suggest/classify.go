package suggest

import "sort"

// splitColumns partitions columns into bucketed (grouping) and value
// (measure) columns, preserving input order within each group.
func splitColumns(columns []Column) (buckets, values []Column) {
	for _, col := range columns {
		if col.IsBucketed {
			buckets = append(buckets, col)
		} else {
			values = append(values, col)
		}
	}
	return buckets, values
}

// prioritizeColumns orders columns by axis priority
// (date < string < ip < boolean < number). The sort is stable, so
// columns of equal priority keep their relative order.
func prioritizeColumns(columns []Column) []Column {
	out := make([]Column, len(columns))
	copy(out, columns)
	sort.SliceStable(out, func(i, j int) bool {
		return typeOrder[out[i].DataType] < typeOrder[out[j].DataType]
	})
	return out
}

// visualizable reports whether a table shape can produce suggestions at
// all. Single-row tables, tables with fewer than two columns, tables
// without a numeric column and tables containing an unrecognized data
// type never do.
func visualizable(table TableShape) bool {
	if !table.IsMultiRow || len(table.Columns) < 2 {
		return false
	}
	hasNumber := false
	for _, col := range table.Columns {
		if !col.DataType.Valid() {
			return false
		}
		if col.DataType == TypeNumber {
			hasNumber = true
		}
	}
	return hasNumber
}
