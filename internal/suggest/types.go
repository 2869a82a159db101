// Package suggest proposes ranked chart configurations for tabular data.
// Given a table shape (typed columns plus bucketing metadata) and an
// optional prior chart state, it deterministically emits suggestions that
// map columns onto chart dimensions while keeping an existing chart's
// mapping stable across data changes.
package suggest

// DataType is the closed set of column types the engine understands.
// Anything else is rejected upstream.
type DataType string

const (
	TypeDate    DataType = "date"
	TypeString  DataType = "string"
	TypeIP      DataType = "ip"
	TypeBoolean DataType = "boolean"
	TypeNumber  DataType = "number"
)

// typeOrder defines axis priority: lower values win the X slot.
var typeOrder = map[DataType]int{
	TypeDate:    0,
	TypeString:  1,
	TypeIP:      2,
	TypeBoolean: 3,
	TypeNumber:  4,
}

func (t DataType) Valid() bool {
	_, ok := typeOrder[t]
	return ok
}

// Scale is an interpretive hint used for orientation decisions.
type Scale string

const (
	ScaleOrdinal  Scale = "ordinal"
	ScaleInterval Scale = "interval"
	ScaleRatio    Scale = "ratio"
)

// ChangeType describes how a table relates to whatever previously
// produced a chart. It is supplied by the data source.
type ChangeType string

const (
	ChangeInitial   ChangeType = "initial"
	ChangeUnchanged ChangeType = "unchanged"
	ChangeExtended  ChangeType = "extended"
	ChangeReduced   ChangeType = "reduced"
)

// SeriesType is the visual family and stacking mode of a chart.
type SeriesType string

const (
	SeriesArea        SeriesType = "area"
	SeriesAreaStacked SeriesType = "area_stacked"
	SeriesBar         SeriesType = "bar"
	SeriesBarStacked  SeriesType = "bar_stacked"
	SeriesLine        SeriesType = "line"
)

func (t SeriesType) Valid() bool {
	switch t {
	case SeriesArea, SeriesAreaStacked, SeriesBar, SeriesBarStacked, SeriesLine:
		return true
	}
	return false
}

// Column describes one column of a tabular result.
type Column struct {
	ColumnID   string   `json:"column_id"`
	DataType   DataType `json:"data_type"`
	IsBucketed bool     `json:"is_bucketed"`
	Label      string   `json:"label"`
	Scale      Scale    `json:"scale,omitempty"`
}

// TableShape is the unit of work handed to the engine. Column order is
// not semantically meaningful, it only provides stable iteration.
type TableShape struct {
	Columns    []Column   `json:"columns"`
	IsMultiRow bool       `json:"is_multi_row"`
	LayerID    string     `json:"layer_id"`
	ChangeType ChangeType `json:"change_type"`
	Label      string     `json:"label,omitempty"`
}

// Legend holds visibility and placement of the chart legend. It is
// carried through untouched, the engine never branches on it.
type Legend struct {
	Visible  bool   `json:"visible"`
	Position string `json:"position"`
}

// Layer is the resolved chart configuration for one table/layer.
type Layer struct {
	LayerID       string     `json:"layer_id"`
	SeriesType    SeriesType `json:"series_type"`
	XAccessor     string     `json:"x_accessor"`
	SplitAccessor string     `json:"split_accessor,omitempty"`
	Accessors     []string   `json:"accessors"`
}

// State is a full chart configuration, either the one a user is
// currently editing or the one a suggestion proposes.
type State struct {
	IsHorizontal        bool       `json:"is_horizontal"`
	Legend              Legend     `json:"legend"`
	PreferredSeriesType SeriesType `json:"preferred_series_type"`
	Layers              []Layer    `json:"layers"`
}

// Suggestion is one ranked output item. Score is in (0, 1]; Hide marks
// suggestions that stay selectable but are not advertised by default.
type Suggestion struct {
	Title       string  `json:"title"`
	Score       float64 `json:"score"`
	Hide        bool    `json:"hide"`
	PreviewIcon string  `json:"preview_icon"`
	State       State   `json:"state"`
}

func defaultLegend() Legend {
	return Legend{Visible: true, Position: "right"}
}

// layerFor returns the prior layer mapped to layerID, or nil.
func layerFor(state *State, layerID string) *Layer {
	if state == nil {
		return nil
	}
	for i := range state.Layers {
		if state.Layers[i].LayerID == layerID {
			return &state.Layers[i]
		}
	}
	return nil
}
