package datasource

import (
	"net"
	"strconv"
	"strings"
	"time"

	"chartwise/internal/suggest"
)

// Values checked per column when inferring its type.
const sampleCheckLimit = 20

// InferShape derives the engine's table-shape descriptor from sampled
// rows. prior is the shape last served for the same layer, used to
// classify how the shape changed.
func InferShape(sample *TableSample, layerID string, prior *suggest.TableShape) suggest.TableShape {
	columns := make([]suggest.Column, len(sample.Columns))
	for i, name := range sample.Columns {
		dataType := inferColumnType(sample.Rows, i)
		columns[i] = suggest.Column{
			ColumnID:   columnID(name),
			DataType:   dataType,
			IsBucketed: dataType != suggest.TypeNumber,
			Label:      name,
			Scale:      scaleFor(dataType),
		}
	}

	shape := suggest.TableShape{
		Columns:    columns,
		IsMultiRow: len(sample.Rows) > 1,
		LayerID:    layerID,
	}
	shape.ChangeType = detectChange(shape, prior)
	return shape
}

// columnID derives a stable identifier from a column name.
func columnID(name string) string {
	slug := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		default:
			return '_'
		}
	}, name)
	return "col-" + slug
}

func scaleFor(t suggest.DataType) suggest.Scale {
	switch t {
	case suggest.TypeDate:
		return suggest.ScaleInterval
	case suggest.TypeNumber:
		return suggest.ScaleRatio
	default:
		return suggest.ScaleOrdinal
	}
}

// inferColumnType checks a sample of rows for the narrowest type every
// non-empty value satisfies. Numbers are checked first so "0"/"1"
// columns count as measures, not booleans.
func inferColumnType(rows [][]string, colIndex int) suggest.DataType {
	isNumber, isDate, isBool, isIP := true, true, true, true
	checked := 0

	for _, row := range rows {
		if checked >= sampleCheckLimit {
			break
		}
		if colIndex >= len(row) {
			continue
		}
		val := strings.TrimSpace(row[colIndex])
		if val == "" {
			continue
		}
		checked++

		if _, err := strconv.ParseFloat(val, 64); err != nil {
			isNumber = false
		}
		if !isDateString(val) {
			isDate = false
		}
		if _, err := strconv.ParseBool(strings.ToLower(val)); err != nil {
			isBool = false
		}
		if net.ParseIP(val) == nil {
			isIP = false
		}
	}

	switch {
	case checked == 0:
		return suggest.TypeString
	case isNumber:
		return suggest.TypeNumber
	case isDate:
		return suggest.TypeDate
	case isBool:
		return suggest.TypeBoolean
	case isIP:
		return suggest.TypeIP
	default:
		return suggest.TypeString
	}
}

func isDateString(val string) bool {
	formats := []string{
		time.RFC3339,
		"2006-01-02",
		"02/01/2006",
		"01/02/2006",
		"2006/01/02",
	}
	for _, f := range formats {
		if _, err := time.Parse(f, val); err == nil {
			return true
		}
	}
	return false
}

// detectChange classifies the shape against the one previously served
// for the same layer by comparing column id sets. A shape that both
// gains and loses columns is treated as a fresh start.
func detectChange(shape suggest.TableShape, prior *suggest.TableShape) suggest.ChangeType {
	if prior == nil {
		return suggest.ChangeInitial
	}

	cur := columnIDSet(shape.Columns)
	old := columnIDSet(prior.Columns)

	allOldPresent := true
	for id := range old {
		if !cur[id] {
			allOldPresent = false
			break
		}
	}
	allCurKnown := true
	for id := range cur {
		if !old[id] {
			allCurKnown = false
			break
		}
	}

	switch {
	case allOldPresent && allCurKnown:
		return suggest.ChangeUnchanged
	case allOldPresent:
		return suggest.ChangeExtended
	case allCurKnown:
		return suggest.ChangeReduced
	default:
		return suggest.ChangeInitial
	}
}

func columnIDSet(columns []suggest.Column) map[string]bool {
	set := make(map[string]bool, len(columns))
	for _, col := range columns {
		set[col.ColumnID] = true
	}
	return set
}
