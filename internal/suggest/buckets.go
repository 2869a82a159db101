package suggest

// orderBuckets turns the bucketed columns into an ordered candidate
// list: the first entry becomes the X axis, the last one the split
// dimension. When a prior layer exists for this table the ordering is
// reconciled against it so that an existing chart's mapping survives
// unrelated column changes.
func orderBuckets(buckets []Column, prior *Layer, change ChangeType) []Column {
	// Reverse before prioritizing so that among equal-priority columns
	// the innermost bucket of a nested grouping wins the X slot.
	ordered := prioritizeColumns(reverseColumns(buckets))

	if prior == nil || change == ChangeInitial {
		return ordered
	}

	// Keep the prior X column in front, except that a date column
	// already in front always wins the X slot.
	if idx := indexOfColumn(ordered, prior.XAccessor); idx >= 0 {
		if ordered[idx].DataType == TypeDate || ordered[0].DataType != TypeDate {
			x := ordered[idx]
			ordered = append(ordered[:idx], ordered[idx+1:]...)
			ordered = append([]Column{x}, ordered...)
		}
	}

	// Keep the prior split column in back. Applied after the X move, so
	// a column matching both roles ends up in the split slot.
	if prior.SplitAccessor != "" {
		if idx := indexOfColumn(ordered, prior.SplitAccessor); idx >= 0 {
			split := ordered[idx]
			ordered = append(ordered[:idx], ordered[idx+1:]...)
			ordered = append(ordered, split)
		}
	}

	return ordered
}

func reverseColumns(columns []Column) []Column {
	out := make([]Column, len(columns))
	for i, col := range columns {
		out[len(columns)-1-i] = col
	}
	return out
}

func indexOfColumn(columns []Column, columnID string) int {
	for i, col := range columns {
		if col.ColumnID == columnID {
			return i
		}
	}
	return -1
}
