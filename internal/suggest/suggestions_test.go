package suggest

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"testing"
)

// sequentialIDs returns a deterministic identifier generator.
func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func testSuggester() *Suggester {
	return NewSuggester(WithIDGenerator(sequentialIDs()))
}

func numberCol(id, label string) Column {
	return Column{ColumnID: id, DataType: TypeNumber, Label: label, Scale: ScaleRatio}
}

func dateBucket(id, label string) Column {
	return Column{ColumnID: id, DataType: TypeDate, IsBucketed: true, Label: label, Scale: ScaleInterval}
}

func stringBucket(id, label string) Column {
	return Column{ColumnID: id, DataType: TypeString, IsBucketed: true, Label: label, Scale: ScaleOrdinal}
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

// layerOf returns the single layer for layerID and fails the test if it
// is missing or duplicated.
func layerOf(t *testing.T, sug Suggestion, layerID string) Layer {
	t.Helper()
	var found []Layer
	for _, l := range sug.State.Layers {
		if l.LayerID == layerID {
			found = append(found, l)
		}
	}
	if len(found) != 1 {
		t.Fatalf("expected exactly one layer %q, got %d", layerID, len(found))
	}
	return found[0]
}

func assertSplitDisjoint(t *testing.T, layer Layer) {
	t.Helper()
	if layer.SplitAccessor == "" {
		t.Fatalf("expected a split accessor, got none")
	}
	if layer.SplitAccessor == layer.XAccessor {
		t.Errorf("split accessor %q collides with x accessor", layer.SplitAccessor)
	}
	for _, a := range layer.Accessors {
		if a == layer.SplitAccessor {
			t.Errorf("split accessor %q collides with y accessor", a)
		}
	}
}

func TestRejectsInvalidShapes(t *testing.T) {
	s := testSuggester()

	tests := []struct {
		name  string
		table TableShape
	}{
		{
			"single row",
			TableShape{
				Columns:    []Column{numberCol("bytes", "bytes"), dateBucket("date", "date")},
				IsMultiRow: false,
				LayerID:    "first",
			},
		},
		{
			"one column",
			TableShape{
				Columns:    []Column{numberCol("bytes", "bytes")},
				IsMultiRow: true,
				LayerID:    "first",
			},
		},
		{
			"no numeric column",
			TableShape{
				Columns:    []Column{stringBucket("a", "a"), dateBucket("date", "date")},
				IsMultiRow: true,
				LayerID:    "first",
			},
		},
		{
			"unrecognized data type",
			TableShape{
				Columns: []Column{
					{ColumnID: "geo", DataType: "geo_point", IsBucketed: true},
					numberCol("bytes", "bytes"),
				},
				IsMultiRow: true,
				LayerID:    "first",
			},
		},
		{
			"three bucketed columns",
			TableShape{
				Columns: []Column{
					stringBucket("a", "a"),
					stringBucket("b", "b"),
					stringBucket("c", "c"),
					numberCol("bytes", "bytes"),
				},
				IsMultiRow: true,
				LayerID:    "first",
				ChangeType: ChangeInitial,
			},
		},
		{
			"buckets without measures",
			TableShape{
				Columns: []Column{
					{ColumnID: "n", DataType: TypeNumber, IsBucketed: true, Scale: ScaleInterval},
					dateBucket("date", "date"),
				},
				IsMultiRow: true,
				LayerID:    "first",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.Suggestions(tt.table, nil)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != 0 {
				t.Errorf("expected no suggestions, got %d", len(got))
			}
		})
	}
}

func TestSingleMetricOverTime(t *testing.T) {
	s := testSuggester()
	table := TableShape{
		Columns: []Column{
			numberCol("bytes", "Average of bytes"),
			dateBucket("date", "date histogram"),
		},
		IsMultiRow: true,
		LayerID:    "first",
		ChangeType: ChangeUnchanged,
	}

	got, err := s.Suggestions(table, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 suggestion, got %d", len(got))
	}

	sug := got[0]
	layer := layerOf(t, sug, "first")

	if layer.SeriesType != SeriesAreaStacked {
		t.Errorf("expected series type %s, got %s", SeriesAreaStacked, layer.SeriesType)
	}
	if layer.XAccessor != "date" {
		t.Errorf("expected x accessor date, got %s", layer.XAccessor)
	}
	if !reflect.DeepEqual(layer.Accessors, []string{"bytes"}) {
		t.Errorf("expected accessors [bytes], got %v", layer.Accessors)
	}
	if layer.SplitAccessor != "id-1" {
		t.Errorf("expected generated split accessor id-1, got %s", layer.SplitAccessor)
	}
	assertSplitDisjoint(t, layer)

	if sug.Hide {
		t.Errorf("suggestion should not be hidden")
	}
	if sug.PreviewIcon != "area" {
		t.Errorf("expected area icon, got %s", sug.PreviewIcon)
	}
	if sug.Title != "Average of bytes over date histogram" {
		t.Errorf("unexpected title %q", sug.Title)
	}
	if !almostEqual(sug.Score, 1.0/3/2) {
		t.Errorf("expected score %.4f, got %.4f", 1.0/3/2, sug.Score)
	}
	if sug.State.PreferredSeriesType != SeriesAreaStacked {
		t.Errorf("preferred series type not updated: %s", sug.State.PreferredSeriesType)
	}
	if sug.State.IsHorizontal {
		t.Errorf("expected vertical orientation by default")
	}
	if !reflect.DeepEqual(sug.State.Legend, defaultLegend()) {
		t.Errorf("expected default legend, got %+v", sug.State.Legend)
	}
}

func TestUnchangedStateEmitsPresentationalVariants(t *testing.T) {
	s := testSuggester()
	table := TableShape{
		Columns: []Column{
			numberCol("price", "Average of price"),
			numberCol("quantity", "Sum of quantity"),
			dateBucket("date", "date"),
			stringBucket("product", "Top products"),
		},
		IsMultiRow: true,
		LayerID:    "first",
		ChangeType: ChangeUnchanged,
	}
	current := &State{
		Legend:              Legend{Visible: true, Position: "bottom"},
		PreferredSeriesType: SeriesBar,
		Layers: []Layer{{
			LayerID:       "first",
			SeriesType:    SeriesBar,
			XAccessor:     "date",
			SplitAccessor: "product",
			Accessors:     []string{"price", "quantity"},
		}},
	}

	got, err := s.Suggestions(table, current)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 suggestions, got %d", len(got))
	}

	family := got[0]
	if family.Title != "Area chart" {
		t.Errorf("expected title Area chart, got %q", family.Title)
	}
	familyLayer := layerOf(t, family, "first")
	if familyLayer.SeriesType != SeriesArea {
		t.Errorf("expected flipped series type area, got %s", familyLayer.SeriesType)
	}

	stacking := got[1]
	if stacking.Title != "Stacked" {
		t.Errorf("expected title Stacked, got %q", stacking.Title)
	}
	stackingLayer := layerOf(t, stacking, "first")
	if stackingLayer.SeriesType != SeriesBarStacked {
		t.Errorf("expected toggled series type bar_stacked, got %s", stackingLayer.SeriesType)
	}

	for _, sug := range got {
		layer := layerOf(t, sug, "first")
		if layer.XAccessor != "date" {
			t.Errorf("expected x accessor date, got %s", layer.XAccessor)
		}
		if layer.SplitAccessor != "product" {
			t.Errorf("expected split accessor product, got %s", layer.SplitAccessor)
		}
		if !reflect.DeepEqual(layer.Accessors, []string{"price", "quantity"}) {
			t.Errorf("unexpected accessors %v", layer.Accessors)
		}
		assertSplitDisjoint(t, layer)
		if !almostEqual(sug.Score, 0.5) {
			t.Errorf("expected score 0.5, got %.4f", sug.Score)
		}
		if sug.Hide {
			t.Errorf("presentational variant should not be hidden")
		}
		if !reflect.DeepEqual(sug.State.Legend, current.Legend) {
			t.Errorf("legend not carried through: %+v", sug.State.Legend)
		}
	}
}

func TestUnchangedOrdinalAxisFlipsOrientation(t *testing.T) {
	s := testSuggester()
	table := TableShape{
		Columns: []Column{
			numberCol("count", "Count"),
			stringBucket("category", "Category"),
		},
		IsMultiRow: true,
		LayerID:    "first",
		ChangeType: ChangeUnchanged,
	}
	current := &State{
		Legend:              defaultLegend(),
		PreferredSeriesType: SeriesBarStacked,
		Layers: []Layer{{
			LayerID:    "first",
			SeriesType: SeriesBarStacked,
			XAccessor:  "category",
			Accessors:  []string{"count"},
		}},
	}

	got, err := s.Suggestions(table, current)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 suggestions, got %d", len(got))
	}

	flip := got[0]
	if flip.Title != "Flip" {
		t.Errorf("expected title Flip, got %q", flip.Title)
	}
	if !flip.State.IsHorizontal {
		t.Errorf("expected orientation to flip to horizontal")
	}
	if layerOf(t, flip, "first").SeriesType != SeriesBarStacked {
		t.Errorf("orientation flip must keep the series type")
	}

	stacking := got[1]
	if stacking.Title != "Unstacked" {
		t.Errorf("expected title Unstacked, got %q", stacking.Title)
	}
	if layerOf(t, stacking, "first").SeriesType != SeriesBar {
		t.Errorf("expected toggled series type bar, got %s", layerOf(t, stacking, "first").SeriesType)
	}
	if stacking.State.IsHorizontal {
		t.Errorf("stacking variant must keep the current orientation")
	}
}

func TestMetricsOnlyTable(t *testing.T) {
	s := testSuggester()
	table := TableShape{
		Columns: []Column{
			numberCol("quantity", "quantity"),
			numberCol("price", "price"),
		},
		IsMultiRow: true,
		LayerID:    "first",
		ChangeType: ChangeUnchanged,
	}

	got, err := s.Suggestions(table, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 suggestion, got %d", len(got))
	}

	layer := layerOf(t, got[0], "first")
	if layer.SeriesType != SeriesBarStacked {
		t.Errorf("expected series type bar_stacked, got %s", layer.SeriesType)
	}
	if layer.XAccessor != "quantity" {
		t.Errorf("expected first metric as x, got %s", layer.XAccessor)
	}
	if !reflect.DeepEqual(layer.Accessors, []string{"price"}) {
		t.Errorf("expected accessors [price], got %v", layer.Accessors)
	}
	if layer.SplitAccessor != "id-1" {
		t.Errorf("expected generated split accessor, got %s", layer.SplitAccessor)
	}
	if got[0].Title != "price of quantity" {
		t.Errorf("unexpected title %q", got[0].Title)
	}
}

func TestExtendedTableKeepsPriorAxis(t *testing.T) {
	s := testSuggester()
	table := TableShape{
		Columns: []Column{
			numberCol("bytes", "bytes"),
			dateBucket("date", "date"),
			stringBucket("host", "host"),
		},
		IsMultiRow: true,
		LayerID:    "first",
		ChangeType: ChangeExtended,
	}
	current := &State{
		Legend:              defaultLegend(),
		PreferredSeriesType: SeriesAreaStacked,
		Layers: []Layer{{
			LayerID:       "first",
			SeriesType:    SeriesAreaStacked,
			XAccessor:     "date",
			SplitAccessor: "id-old",
			Accessors:     []string{"bytes"},
		}},
	}

	got, err := s.Suggestions(table, current)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 suggestion, got %d", len(got))
	}

	layer := layerOf(t, got[0], "first")
	if layer.XAccessor != "date" {
		t.Errorf("expected prior x accessor to survive, got %s", layer.XAccessor)
	}
	if layer.SplitAccessor != "host" {
		t.Errorf("expected new bucket as split, got %s", layer.SplitAccessor)
	}
	if layer.SeriesType != SeriesAreaStacked {
		t.Errorf("expected prior series type to survive, got %s", layer.SeriesType)
	}
	// Two buckets plus one measure: score (1+1)/3 without dampening.
	if !almostEqual(got[0].Score, 2.0/3) {
		t.Errorf("expected score %.4f, got %.4f", 2.0/3, got[0].Score)
	}
}

func TestLayerMergePreservesOtherLayers(t *testing.T) {
	s := testSuggester()
	other := Layer{
		LayerID:       "other",
		SeriesType:    SeriesLine,
		XAccessor:     "ts",
		SplitAccessor: "svc",
		Accessors:     []string{"latency"},
	}
	current := &State{
		Legend:              defaultLegend(),
		PreferredSeriesType: SeriesLine,
		Layers: []Layer{
			other,
			{LayerID: "second", SeriesType: SeriesBar, XAccessor: "old", Accessors: []string{"y"}},
		},
	}
	table := TableShape{
		Columns: []Column{
			numberCol("y", "y"),
			stringBucket("cat", "cat"),
		},
		IsMultiRow: true,
		LayerID:    "second",
		ChangeType: ChangeExtended,
	}

	got, err := s.Suggestions(table, current)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 suggestion, got %d", len(got))
	}

	layers := got[0].State.Layers
	if len(layers) != 2 {
		t.Fatalf("expected 2 layers, got %d", len(layers))
	}
	if !reflect.DeepEqual(layers[0], other) {
		t.Errorf("other layer was modified: %+v", layers[0])
	}
	layerOf(t, got[0], "second")
}

func TestReducedTableIsHidden(t *testing.T) {
	s := testSuggester()
	table := TableShape{
		Columns: []Column{
			numberCol("bytes", "bytes"),
			dateBucket("date", "date"),
		},
		IsMultiRow: true,
		LayerID:    "first",
		ChangeType: ChangeReduced,
	}
	current := &State{
		Legend:              defaultLegend(),
		PreferredSeriesType: SeriesBar,
		Layers: []Layer{{
			LayerID:    "first",
			SeriesType: SeriesBar,
			XAccessor:  "date",
			Accessors:  []string{"bytes", "gone"},
		}},
	}

	got, err := s.Suggestions(table, current)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 suggestion, got %d", len(got))
	}
	if !got[0].Hide {
		t.Errorf("reduced-shape suggestion must be hidden")
	}
	if !almostEqual(got[0].Score, 1.0/3) {
		t.Errorf("expected score %.4f, got %.4f", 1.0/3, got[0].Score)
	}
}

func TestResolveSeriesType(t *testing.T) {
	dateX := dateBucket("date", "date")
	catX := stringBucket("cat", "cat")

	tests := []struct {
		name    string
		x       Column
		prior   *Layer
		current *State
		change  ChangeType
		want    SeriesType
	}{
		{"date default", dateX, nil, nil, ChangeInitial, SeriesAreaStacked},
		{"non-date default", catX, nil, nil, ChangeInitial, SeriesBarStacked},
		{
			"prior layer wins on non-initial",
			dateX,
			&Layer{SeriesType: SeriesBar},
			&State{PreferredSeriesType: SeriesLine},
			ChangeExtended,
			SeriesBar,
		},
		{
			"prior layer without type falls back to preferred",
			dateX,
			&Layer{},
			&State{PreferredSeriesType: SeriesLine},
			ChangeExtended,
			SeriesLine,
		},
		{
			"preferred kept on initial when date compatible",
			dateX,
			nil,
			&State{PreferredSeriesType: SeriesLine},
			ChangeInitial,
			SeriesLine,
		},
		{
			"incompatible preferred dropped for date axis",
			dateX,
			nil,
			&State{PreferredSeriesType: SeriesBarStacked},
			ChangeInitial,
			SeriesAreaStacked,
		},
		{
			"incompatible preferred dropped for category axis",
			catX,
			nil,
			&State{PreferredSeriesType: SeriesArea},
			ChangeInitial,
			SeriesBarStacked,
		},
		{
			"bar preferred kept for category axis",
			catX,
			nil,
			&State{PreferredSeriesType: SeriesBar},
			ChangeInitial,
			SeriesBar,
		},
		{
			"no prior layer on extended uses compatibility check",
			dateX,
			nil,
			&State{PreferredSeriesType: SeriesArea},
			ChangeExtended,
			SeriesArea,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolveSeriesType(tt.x, tt.prior, tt.current, tt.change)
			if got != tt.want {
				t.Errorf("resolveSeriesType() = %s, expected %s", got, tt.want)
			}
		})
	}
}

func TestSeriesTypeTransitions(t *testing.T) {
	flips := map[SeriesType]SeriesType{
		SeriesArea:        SeriesBar,
		SeriesAreaStacked: SeriesBarStacked,
		SeriesBar:         SeriesArea,
		SeriesBarStacked:  SeriesAreaStacked,
		SeriesLine:        SeriesBar,
	}
	for from, want := range flips {
		got, err := flipSeriesType(from)
		if err != nil {
			t.Fatalf("flipSeriesType(%s): %v", from, err)
		}
		if got != want {
			t.Errorf("flipSeriesType(%s) = %s, expected %s", from, got, want)
		}
	}

	toggles := map[SeriesType]SeriesType{
		SeriesArea:        SeriesAreaStacked,
		SeriesAreaStacked: SeriesArea,
		SeriesBar:         SeriesBarStacked,
		SeriesBarStacked:  SeriesBar,
		SeriesLine:        SeriesLine,
	}
	for from, want := range toggles {
		got, err := toggleStacking(from)
		if err != nil {
			t.Fatalf("toggleStacking(%s): %v", from, err)
		}
		if got != want {
			t.Errorf("toggleStacking(%s) = %s, expected %s", from, got, want)
		}
	}

	if _, err := flipSeriesType("donut"); !errors.Is(err, ErrUnknownSeriesType) {
		t.Errorf("expected ErrUnknownSeriesType, got %v", err)
	}
	if _, err := toggleStacking("donut"); !errors.Is(err, ErrUnknownSeriesType) {
		t.Errorf("expected ErrUnknownSeriesType, got %v", err)
	}
	if _, err := previewIcon("donut"); !errors.Is(err, ErrUnknownSeriesType) {
		t.Errorf("expected ErrUnknownSeriesType, got %v", err)
	}
}

func TestUnknownPriorSeriesTypeFails(t *testing.T) {
	s := testSuggester()
	table := TableShape{
		Columns: []Column{
			numberCol("bytes", "bytes"),
			dateBucket("date", "date"),
		},
		IsMultiRow: true,
		LayerID:    "first",
		ChangeType: ChangeUnchanged,
	}
	current := &State{
		Legend: defaultLegend(),
		Layers: []Layer{{
			LayerID:    "first",
			SeriesType: "donut",
			XAccessor:  "date",
			Accessors:  []string{"bytes"},
		}},
	}

	if _, err := s.Suggestions(table, current); !errors.Is(err, ErrUnknownSeriesType) {
		t.Fatalf("expected ErrUnknownSeriesType, got %v", err)
	}
}

func TestTitles(t *testing.T) {
	s := testSuggester()

	t.Run("date axis", func(t *testing.T) {
		table := TableShape{
			Columns: []Column{
				numberCol("a", "CPU"),
				numberCol("b", "Memory"),
				dateBucket("date", "time"),
			},
			IsMultiRow: true,
			LayerID:    "first",
			ChangeType: ChangeInitial,
		}
		got, err := s.Suggestions(table, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got[0].Title != "CPU & Memory over time" {
			t.Errorf("unexpected title %q", got[0].Title)
		}
	})

	t.Run("category axis", func(t *testing.T) {
		table := TableShape{
			Columns: []Column{
				numberCol("a", "Revenue"),
				stringBucket("cat", "Region"),
			},
			IsMultiRow: true,
			LayerID:    "first",
			ChangeType: ChangeInitial,
		}
		got, err := s.Suggestions(table, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got[0].Title != "Revenue of Region" {
			t.Errorf("unexpected title %q", got[0].Title)
		}
	})

	t.Run("table label override", func(t *testing.T) {
		table := TableShape{
			Columns: []Column{
				numberCol("a", "Revenue"),
				stringBucket("cat", "Region"),
			},
			IsMultiRow: true,
			LayerID:    "first",
			ChangeType: ChangeInitial,
			Label:      "Quarterly revenue",
		}
		got, err := s.Suggestions(table, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got[0].Title != "Quarterly revenue" {
			t.Errorf("expected table label verbatim, got %q", got[0].Title)
		}
	})

	t.Run("custom translator", func(t *testing.T) {
		custom := NewSuggester(
			WithIDGenerator(sequentialIDs()),
			WithTranslator(func(key, defaultMessage string, values map[string]string) string {
				if key == "suggest.breakdown_title" {
					return values["y"] + " nach " + values["x"]
				}
				return formatMessage(key, defaultMessage, values)
			}),
		)
		table := TableShape{
			Columns: []Column{
				numberCol("a", "Umsatz"),
				stringBucket("cat", "Region"),
			},
			IsMultiRow: true,
			LayerID:    "first",
			ChangeType: ChangeInitial,
		}
		got, err := custom.Suggestions(table, nil)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got[0].Title != "Umsatz nach Region" {
			t.Errorf("unexpected title %q", got[0].Title)
		}
	})
}

func TestSuggestionScore(t *testing.T) {
	split := stringBucket("cat", "cat")

	tests := []struct {
		name   string
		ys     []Column
		split  *Column
		change ChangeType
		want   float64
	}{
		{"single measure", []Column{numberCol("a", "a")}, nil, ChangeInitial, 1.0 / 3},
		{"multiple measures", []Column{numberCol("a", "a"), numberCol("b", "b")}, nil, ChangeExtended, 2.0 / 3},
		{"measures and split", []Column{numberCol("a", "a"), numberCol("b", "b")}, &split, ChangeExtended, 1.0},
		{"unchanged dampening", []Column{numberCol("a", "a"), numberCol("b", "b")}, &split, ChangeUnchanged, 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := suggestionScore(tt.ys, tt.split, tt.change); !almostEqual(got, tt.want) {
				t.Errorf("suggestionScore() = %.4f, expected %.4f", got, tt.want)
			}
		})
	}
}

func TestIdempotence(t *testing.T) {
	table := TableShape{
		Columns: []Column{
			numberCol("price", "price"),
			numberCol("quantity", "quantity"),
			dateBucket("date", "date"),
			stringBucket("product", "product"),
		},
		IsMultiRow: true,
		LayerID:    "first",
		ChangeType: ChangeUnchanged,
	}
	current := &State{
		Legend:              defaultLegend(),
		PreferredSeriesType: SeriesBar,
		Layers: []Layer{{
			LayerID:       "first",
			SeriesType:    SeriesBar,
			XAccessor:     "date",
			SplitAccessor: "product",
			Accessors:     []string{"price", "quantity"},
		}},
	}

	first, err := testSuggester().Suggestions(table, current)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := testSuggester().Suggestions(table, current)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("identical inputs produced different suggestions")
	}
}

func TestGeneratedSplitIDsAreUniqueWithinCall(t *testing.T) {
	s := testSuggester()
	// No bucketed split available, so both presentational variants get a
	// synthesized split id.
	table := TableShape{
		Columns: []Column{
			numberCol("a", "a"),
			numberCol("b", "b"),
		},
		IsMultiRow: true,
		LayerID:    "first",
		ChangeType: ChangeUnchanged,
	}
	current := &State{
		Legend:              defaultLegend(),
		PreferredSeriesType: SeriesBarStacked,
		Layers: []Layer{{
			LayerID:    "first",
			SeriesType: SeriesBarStacked,
			XAccessor:  "a",
			Accessors:  []string{"b"},
		}},
	}

	got, err := s.Suggestions(table, current)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 suggestions, got %d", len(got))
	}

	first := layerOf(t, got[0], "first").SplitAccessor
	second := layerOf(t, got[1], "first").SplitAccessor
	if first == second {
		t.Errorf("variants share the generated split id %q", first)
	}
}
