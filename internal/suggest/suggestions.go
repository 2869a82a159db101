package suggest

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// ErrUnknownSeriesType is returned when a series type outside the known
// set reaches flip or icon resolution. The build is aborted instead of
// silently guessing a chart type.
var ErrUnknownSeriesType = errors.New("unknown series type")

// TranslateFunc renders a localizable message. The default message uses
// {name} placeholders substituted from values.
type TranslateFunc func(key, defaultMessage string, values map[string]string) string

// formatMessage is the default translator. It ignores the key and
// substitutes placeholders directly into the default message.
func formatMessage(_, defaultMessage string, values map[string]string) string {
	out := defaultMessage
	for name, val := range values {
		out = strings.ReplaceAll(out, "{"+name+"}", val)
	}
	return out
}

// Suggester generates chart suggestions. The zero dependencies are a
// fresh-identifier generator and a message translator, both injectable
// for tests and embedders.
type Suggester struct {
	newID     func() string
	translate TranslateFunc
}

type Option func(*Suggester)

// WithIDGenerator replaces the identifier generator used for
// synthesized split dimensions. The generator must be safe for
// concurrent use when the suggester ranks tables in parallel.
func WithIDGenerator(fn func() string) Option {
	return func(s *Suggester) { s.newID = fn }
}

// WithTranslator replaces the title translator.
func WithTranslator(fn TranslateFunc) Option {
	return func(s *Suggester) { s.translate = fn }
}

func NewSuggester(opts ...Option) *Suggester {
	s := &Suggester{
		newID:     uuid.NewString,
		translate: formatMessage,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ============================================================================
// Suggestion generation
// ============================================================================

// Suggestions proposes ranked chart configurations for a table shape.
// current is the chart state being edited, if any. A nil result with a
// nil error means the shape is not visualizable, which is a policy
// outcome rather than a failure. An error is only returned when a
// series type outside the known set is encountered.
func (s *Suggester) Suggestions(table TableShape, current *State) ([]Suggestion, error) {
	if !visualizable(table) {
		return nil, nil
	}

	buckets, values := splitColumns(table.Columns)
	prior := layerFor(current, table.LayerID)

	var (
		x     Column
		ys    []Column
		split *Column
	)

	switch {
	case len(buckets) == 1 || len(buckets) == 2:
		if len(values) == 0 {
			// Nothing to put on the Y axis.
			return nil, nil
		}
		ordered := orderBuckets(buckets, prior, table.ChangeType)
		x = ordered[0]
		if len(ordered) > 1 {
			last := ordered[len(ordered)-1]
			split = &last
		}
		ys = values
	case len(buckets) == 0:
		ordered := prioritizeColumns(values)
		x = ordered[0]
		ys = ordered[1:]
	default:
		// Multiple simultaneous splits are never proposed.
		return nil, nil
	}

	seriesType := resolveSeriesType(x, prior, current, table.ChangeType)

	if table.ChangeType == ChangeUnchanged && current != nil {
		return s.presentationalVariants(table, current, seriesType, x, ys, split)
	}

	horizontal := false
	if current != nil {
		horizontal = current.IsHorizontal
	}
	sug, err := s.build(buildParams{
		table:      table,
		current:    current,
		seriesType: seriesType,
		title:      s.suggestionTitle(table, x, ys),
		horizontal: horizontal,
		x:          x,
		ys:         ys,
		split:      split,
	})
	if err != nil {
		return nil, err
	}
	return []Suggestion{sug}, nil
}

// presentationalVariants emits the two alternatives offered when the
// data backing the current chart has not changed: a flipped orientation
// or series family, plus a toggled stacking mode.
func (s *Suggester) presentationalVariants(table TableShape, current *State, seriesType SeriesType, x Column, ys []Column, split *Column) ([]Suggestion, error) {
	var out []Suggestion

	if x.Scale == ScaleOrdinal {
		flip, err := s.build(buildParams{
			table:      table,
			current:    current,
			seriesType: seriesType,
			title:      s.translate("suggest.flip_title", "Flip", nil),
			horizontal: !current.IsHorizontal,
			x:          x,
			ys:         ys,
			split:      split,
		})
		if err != nil {
			return nil, err
		}
		out = append(out, flip)
	} else {
		flipped, err := flipSeriesType(seriesType)
		if err != nil {
			return nil, err
		}
		title := s.translate("suggest.bar_chart_title", "Bar chart", nil)
		if strings.HasPrefix(string(flipped), "area") {
			title = s.translate("suggest.area_chart_title", "Area chart", nil)
		}
		alt, err := s.build(buildParams{
			table:      table,
			current:    current,
			seriesType: flipped,
			title:      title,
			horizontal: current.IsHorizontal,
			x:          x,
			ys:         ys,
			split:      split,
		})
		if err != nil {
			return nil, err
		}
		out = append(out, alt)
	}

	toggled, err := toggleStacking(seriesType)
	if err != nil {
		return nil, err
	}
	title := s.translate("suggest.stacked_title", "Stacked", nil)
	if strings.HasSuffix(string(seriesType), "stacked") {
		title = s.translate("suggest.unstacked_title", "Unstacked", nil)
	}
	stack, err := s.build(buildParams{
		table:      table,
		current:    current,
		seriesType: toggled,
		title:      title,
		horizontal: current.IsHorizontal,
		x:          x,
		ys:         ys,
		split:      split,
	})
	if err != nil {
		return nil, err
	}
	out = append(out, stack)

	return out, nil
}

// ============================================================================
// Series type resolution
// ============================================================================

// resolveSeriesType picks the series family for a suggestion. An
// existing layer keeps its own type across non-initial changes; on an
// initial shape the user's preferred type is kept only when it is
// compatible with the X axis.
func resolveSeriesType(x Column, prior *Layer, current *State, change ChangeType) SeriesType {
	defaultType := SeriesBarStacked
	if x.DataType == TypeDate {
		defaultType = SeriesAreaStacked
	}

	if prior != nil && change != ChangeInitial {
		if prior.SeriesType != "" {
			return prior.SeriesType
		}
		if current != nil && current.PreferredSeriesType != "" {
			return current.PreferredSeriesType
		}
		return defaultType
	}

	if current == nil || current.PreferredSeriesType == "" {
		return defaultType
	}
	if x.DataType == TypeDate {
		if dateCompatible(current.PreferredSeriesType) {
			return current.PreferredSeriesType
		}
		return defaultType
	}
	if !dateCompatible(current.PreferredSeriesType) {
		return current.PreferredSeriesType
	}
	return defaultType
}

// dateCompatible reports whether a series family suits a date X axis.
// Every other known type is treated as bar compatible.
func dateCompatible(t SeriesType) bool {
	return t == SeriesArea || t == SeriesAreaStacked || t == SeriesLine
}

// flipSeriesType switches between the bar and area families. Line has
// no counterpart and falls back to bar.
func flipSeriesType(t SeriesType) (SeriesType, error) {
	switch t {
	case SeriesArea:
		return SeriesBar, nil
	case SeriesAreaStacked:
		return SeriesBarStacked, nil
	case SeriesBar:
		return SeriesArea, nil
	case SeriesBarStacked:
		return SeriesAreaStacked, nil
	case SeriesLine:
		return SeriesBar, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownSeriesType, t)
	}
}

// toggleStacking switches between stacked and unstacked within the same
// family. Line passes through unchanged.
func toggleStacking(t SeriesType) (SeriesType, error) {
	switch t {
	case SeriesArea:
		return SeriesAreaStacked, nil
	case SeriesAreaStacked:
		return SeriesArea, nil
	case SeriesBar:
		return SeriesBarStacked, nil
	case SeriesBarStacked:
		return SeriesBar, nil
	case SeriesLine:
		return SeriesLine, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownSeriesType, t)
	}
}

// previewIcon returns the icon identifier for a series family.
func previewIcon(t SeriesType) (string, error) {
	switch t {
	case SeriesArea, SeriesAreaStacked:
		return "area", nil
	case SeriesBar, SeriesBarStacked:
		return "bar", nil
	case SeriesLine:
		return "line", nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownSeriesType, t)
	}
}

// ============================================================================
// Titles
// ============================================================================

func (s *Suggester) suggestionTitle(table TableShape, x Column, ys []Column) string {
	if table.Label != "" {
		return table.Label
	}

	labels := make([]string, len(ys))
	for i, y := range ys {
		labels[i] = y.Label
	}
	yTitle := strings.Join(labels, s.translate("suggest.y_conjunction", " & ", nil))

	values := map[string]string{"y": yTitle, "x": x.Label}
	if x.DataType == TypeDate {
		return s.translate("suggest.over_time_title", "{y} over {x}", values)
	}
	return s.translate("suggest.breakdown_title", "{y} of {x}", values)
}

// ============================================================================
// Building
// ============================================================================

type buildParams struct {
	table      TableShape
	current    *State
	seriesType SeriesType
	title      string
	horizontal bool
	x          Column
	ys         []Column
	split      *Column
}

// build assembles one suggestion. The new layer replaces only the entry
// matching the table's layer id; every other layer of the current state
// is carried through unchanged.
func (s *Suggester) build(p buildParams) (Suggestion, error) {
	icon, err := previewIcon(p.seriesType)
	if err != nil {
		return Suggestion{}, err
	}

	accessors := make([]string, len(p.ys))
	for i, y := range p.ys {
		accessors[i] = y.ColumnID
	}

	// Renderers always need a nominal split key, so one is generated
	// even when no bucketed column provides it.
	var splitID string
	if p.split != nil {
		splitID = p.split.ColumnID
	} else {
		splitID = s.newID()
	}

	var layer Layer
	if prior := layerFor(p.current, p.table.LayerID); prior != nil {
		layer = *prior
	}
	layer.LayerID = p.table.LayerID
	layer.SeriesType = p.seriesType
	layer.XAccessor = p.x.ColumnID
	layer.SplitAccessor = splitID
	layer.Accessors = accessors

	var layers []Layer
	if p.current != nil {
		for _, l := range p.current.Layers {
			if l.LayerID != p.table.LayerID {
				layers = append(layers, l)
			}
		}
	}
	layers = append(layers, layer)

	legend := defaultLegend()
	if p.current != nil {
		legend = p.current.Legend
	}

	return Suggestion{
		Title:       p.title,
		Score:       suggestionScore(p.ys, p.split, p.table.ChangeType),
		Hide:        p.table.ChangeType == ChangeReduced,
		PreviewIcon: icon,
		State: State{
			IsHorizontal:        p.horizontal,
			Legend:              legend,
			PreferredSeriesType: p.seriesType,
			Layers:              layers,
		},
	}, nil
}

// suggestionScore ranks a suggestion by how much of the table it puts
// to use. Presentation-only alternatives for unchanged data score half.
func suggestionScore(ys []Column, split *Column, change ChangeType) float64 {
	base := 1.0
	if len(ys) > 1 {
		base = 2
	}
	if split != nil {
		base++
	}
	score := base / 3
	if change == ChangeUnchanged {
		score *= 0.5
	}
	return score
}
