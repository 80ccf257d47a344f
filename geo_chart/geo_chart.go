/*
	Copyright 2023 Google Inc.
	Licensed under the Apache License, Version 2.0 (the "License");
	you may not use this file except in compliance with the License.
	You may obtain a copy of the License at
		https://www.apache.org/licenses/LICENSE-2.0
	Unless required by applicable law or agreed to in writing, software
	distributed under the License is distributed on an "AS IS" BASIS,
	WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
	See the License for the specific language governing permissions and
	limitations under the License.
*/

// Package geochart runs the color pipeline of a geo pushpin chart, and
// recomputes it only as far as each update requires.
//
// A Chart is updated with successive Props.  Each update is first compared
// with the previous one: a new execution rebuilds everything, a new color
// configuration only rebuilds the colors, and anything else leaves the chart
// as it was.
package geochart

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/rs/zerolog"

	changegate "github.com/ilhamster/geoviz/change_gate"
	"github.com/ilhamster/geoviz/color"
	colorstrategy "github.com/ilhamster/geoviz/color_strategy"
	"github.com/ilhamster/geoviz/execution"
	"github.com/ilhamster/geoviz/legend"
	"github.com/ilhamster/geoviz/logger"
	"github.com/ilhamster/geoviz/observability"
	pushpincolor "github.com/ilhamster/geoviz/pushpin_color"
)

// DefaultDataPointsLimit is the most locations a chart draws unless its
// configuration says otherwise.
const DefaultDataPointsLimit = 25000

var (
	// ErrDataTooLarge is returned when an execution has more locations than
	// the chart's limit.
	ErrDataTooLarge = errors.New("geochart: data too large")
	// ErrNoExecution is returned when reading a chart that has never been
	// computed.
	ErrNoExecution = errors.New("geochart: no execution")
)

// Config is the hosting configuration of a chart.
type Config struct {
	ColorPalette color.Palette   `json:"colorPalette,omitempty"`
	Colors       []string        `json:"colors,omitempty"`
	ColorMapping []color.Mapping `json:"colorMapping,omitempty"`
	// Limit is the most locations the chart draws; zero means
	// DefaultDataPointsLimit.
	Limit int `json:"limit,omitempty"`
}

func (c Config) limit() int {
	if c.Limit > 0 {
		return c.Limit
	}
	return DefaultDataPointsLimit
}

// Props are the inputs of a chart update.
type Props struct {
	Config    Config
	Buckets   execution.Buckets
	Execution *execution.Execution
	// OnDataTooLarge is called when Execution has more locations than the
	// configured limit.  It must be set whenever that can happen.
	OnDataTooLarge func()
}

func (p Props) gateProps() changegate.Props {
	return changegate.Props{
		ColorConfig: changegate.ColorConfig{
			ColorPalette: p.Config.ColorPalette,
			Colors:       p.Config.Colors,
			ColorMapping: p.Config.ColorMapping,
		},
		Execution: p.Execution,
	}
}

// Options are the computed state of a chart.
type Options struct {
	GeoData       execution.GeoData
	Strategy      *colorstrategy.Strategy
	Palette       color.Palette
	CategoryItems []legend.Item
	Fingerprint   uint64
}

// Pushpin is a single drawn location.
type Pushpin struct {
	Index    int
	Location string
	Lat, Lng float64
	// Cell is the H3 cell of the pushpin at the chart's resolution, or empty
	// if its location is not a "lat;lng" pair.
	Cell    string
	Segment string
	Tooltip string
	// Value and Size are NaN when missing or unbound.
	Value  float64
	Size   float64
	Colors pushpincolor.Pushpin
}

// ColorPayload is what a chart publishes about its colors.
type ColorPayload struct {
	Assignments []color.Assignment `json:"colorAssignments"`
	Palette     color.Palette      `json:"colorPalette"`
}

// Chart holds the computed state of a single geo chart.  It is safe for
// concurrent use.
type Chart struct {
	h3Resolution int
	log          *zerolog.Logger

	mu    sync.Mutex
	props Props
	// exec is the execution opts was computed from.
	exec *execution.Execution
	opts *Options
	// err is the failure of the last full recompute.  It is reported by
	// every read until a full recompute succeeds.
	err error
	// enabledItems are the category legend items with their visibility.
	enabledItems []legend.Item
}

// New returns a Chart that has seen no update.  Pushpins are indexed into
// H3 cells at h3Resolution.
func New(log *zerolog.Logger, h3Resolution int) *Chart {
	if log == nil {
		nop := zerolog.Nop()
		log = &nop
	}
	return &Chart{
		h3Resolution: h3Resolution,
		log:          log,
	}
}

// Fingerprint returns a hash of exec's contents.
func Fingerprint(exec *execution.Execution) (uint64, error) {
	d := xxhash.New()
	if err := json.NewEncoder(d).Encode(exec); err != nil {
		return 0, fmt.Errorf("fingerprinting execution: %w", err)
	}
	return d.Sum64(), nil
}

// Update brings the chart up to date with p, recomputing only what p
// changed, and returns the change decision for p.  An update without an
// execution keeps the previous one.  Changed buckets, a changed data points
// limit, or a failed previous recompute count as a changed execution, so
// that a failure is reported again until it is resolved.  If p's execution
// is too large, Update calls p.OnDataTooLarge and returns ErrDataTooLarge;
// it panics if OnDataTooLarge is nil.
func (c *Chart) Update(ctx context.Context, p Props) (changegate.Decision, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	log := logger.FromContext(ctx, c.log)
	decision := changegate.ShouldRecompute(c.props.gateProps(), p.gateProps())
	if p.Execution == nil {
		p.Execution = c.props.Execution
	}
	if !decision.ExecutionChanged && c.stale(p) {
		decision.ExecutionChanged = true
	}
	recompute := decision.Recompute()
	log.Debug().
		Bool("execution_changed", decision.ExecutionChanged).
		Bool("color_config_changed", decision.ColorConfigChanged).
		Stringer("recompute", recompute).
		Msg("chart update")
	var err error
	switch recompute {
	case changegate.FullRecompute:
		err = c.recomputeAll(log, p)
		c.err = err
	case changegate.ColorRecompute:
		c.recomputeColors(p)
	}
	c.props = p
	observability.IncRecomputation(recompute.String())
	return decision, err
}

// stale reports whether p needs a full recompute that the change gate does
// not see.  The caller must hold c.mu.
func (c *Chart) stale(p Props) bool {
	return c.err != nil ||
		p.Buckets != c.props.Buckets ||
		p.Config.limit() != c.props.Config.limit()
}

func (c *Chart) recomputeAll(log *zerolog.Logger, p Props) error {
	c.exec, c.opts, c.enabledItems = nil, nil, nil
	if p.Execution == nil {
		return nil
	}
	geo, err := execution.GeoDataFor(p.Buckets, p.Execution)
	if err != nil {
		return err
	}
	if !execution.IsDataOfReasonableSize(p.Execution.Result, geo, p.Config.limit()) {
		observability.IncDataTooLarge()
		log.Warn().Int("limit", p.Config.limit()).Msg("execution too large to draw")
		if p.OnDataTooLarge == nil {
			panic("geochart: OnDataTooLarge callback is missing")
		}
		p.OnDataTooLarge()
		return ErrDataTooLarge
	}
	fp, err := Fingerprint(p.Execution)
	if err != nil {
		return err
	}
	c.exec = p.Execution
	c.opts = options(p.Config, c.exec, geo)
	c.opts.Fingerprint = fp
	c.enabledItems = append([]legend.Item{}, c.opts.CategoryItems...)
	log.Debug().
		Str("fingerprint", fmt.Sprintf("%016x", fp)).
		Stringer("strategy", c.opts.Strategy.Kind()).
		Int("assignments", len(c.opts.Strategy.ColorAssignment())).
		Msg("chart recomputed")
	return nil
}

func (c *Chart) recomputeColors(p Props) {
	if c.opts == nil {
		return
	}
	fp := c.opts.Fingerprint
	c.opts = options(p.Config, c.exec, c.opts.GeoData)
	c.opts.Fingerprint = fp
	c.enabledItems = append([]legend.Item{}, c.opts.CategoryItems...)
}

func options(cfg Config, exec *execution.Execution, geo execution.GeoData) *Options {
	palette := color.ValidPalette(cfg.Colors, cfg.ColorPalette)
	strategy := colorstrategy.New(palette, cfg.ColorMapping, geo, exec)
	var items []legend.Item
	if geo.Segment != nil {
		items = legend.Items(strategy)
	}
	return &Options{
		GeoData:       geo,
		Strategy:      strategy,
		Palette:       palette,
		CategoryItems: items,
	}
}

// Snapshot is a consistent view of a chart's computed state.  Later updates
// do not affect it.
type Snapshot struct {
	Options
	h3Resolution int
	exec         *execution.Execution
	enabledItems []legend.Item
}

// Snapshot returns the chart's current state, or the reason there is none.
func (c *Chart) Snapshot() (*Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return nil, c.err
	}
	if c.opts == nil {
		return nil, ErrNoExecution
	}
	opts := *c.opts
	opts.CategoryItems = append([]legend.Item{}, c.opts.CategoryItems...)
	return &Snapshot{
		Options:      opts,
		h3Resolution: c.h3Resolution,
		exec:         c.exec,
		enabledItems: append([]legend.Item{}, c.enabledItems...),
	}, nil
}

// Options returns a snapshot of the chart's computed state.
func (c *Chart) Options() (Options, error) {
	snap, err := c.Snapshot()
	if err != nil {
		return Options{}, err
	}
	return snap.Options, nil
}

// Pushpins returns the chart's current pushpins.  See Snapshot.Pushpins.
func (c *Chart) Pushpins() ([]Pushpin, error) {
	snap, err := c.Snapshot()
	if err != nil {
		return nil, err
	}
	return snap.Pushpins(), nil
}

// ColorLegend returns the chart's current color legend.  See
// Snapshot.ColorLegend.
func (c *Chart) ColorLegend() ([]pushpincolor.LegendColorItem, error) {
	snap, err := c.Snapshot()
	if err != nil {
		return nil, err
	}
	return snap.ColorLegend(), nil
}

// CategoryLegend returns the chart's current category legend.  See
// Snapshot.CategoryLegend.
func (c *Chart) CategoryLegend() ([]legend.Item, error) {
	snap, err := c.Snapshot()
	if err != nil {
		return nil, err
	}
	return snap.CategoryLegend(), nil
}

// ColorAssignments returns the chart's current color assignments.  See
// Snapshot.ColorAssignments.
func (c *Chart) ColorAssignments() (ColorPayload, error) {
	snap, err := c.Snapshot()
	if err != nil {
		return ColorPayload{}, err
	}
	return snap.ColorAssignments(), nil
}

// ToggleLegendItem flips the visibility of category legend item legendIndex.
func (c *Chart) ToggleLegendItem(legendIndex int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	if c.opts == nil {
		return ErrNoExecution
	}
	if legendIndex < 0 || legendIndex >= len(c.enabledItems) {
		return fmt.Errorf("legend item %d out of range [0, %d)", legendIndex, len(c.enabledItems))
	}
	c.enabledItems = legend.Toggle(c.enabledItems, legendIndex)
	return nil
}

func measureValues(res *execution.Result, role *execution.Role, width int) []float64 {
	if role != nil {
		if vals := res.MeasureValues(role.Index); vals != nil {
			return vals
		}
	}
	ret := make([]float64, width)
	for idx := range ret {
		ret[idx] = math.NaN()
	}
	return ret
}

// Pushpins returns the pushpins, omitting those whose category is hidden in
// the legend.
func (s *Snapshot) Pushpins() []Pushpin {
	geo := s.GeoData
	res := s.exec.Result
	if geo.Location == nil {
		return []Pushpin{}
	}
	locations := res.AttributeNames(geo.Location.Index)
	var tooltips, segments []string
	var colorValues []float64
	if geo.Color != nil {
		colorValues = res.MeasureValues(geo.Color.Index)
	}
	if geo.Segment != nil {
		segments = res.AttributeNames(geo.Segment.Index)
	}
	if geo.Tooltip != nil {
		tooltips = res.AttributeNames(geo.Tooltip.Index)
	}
	colors := pushpincolor.PushpinColors(colorValues, segments, s.Strategy)
	sizes := measureValues(res, geo.Size, len(locations))
	shownValues := measureValues(res, geo.Color, len(locations))
	var shown map[string]bool
	if geo.Segment != nil {
		shown = map[string]bool{}
		for _, name := range legend.SelectedNames(s.enabledItems) {
			shown[name] = true
		}
	}
	ret := make([]Pushpin, 0, len(locations))
	for idx, name := range locations {
		pp := Pushpin{
			Index:    idx,
			Location: name,
			Value:    math.NaN(),
			Size:     math.NaN(),
			Colors:   colors[0],
		}
		if idx < len(colors) {
			pp.Colors = colors[idx]
		}
		if idx < len(segments) {
			pp.Segment = segments[idx]
		}
		if idx < len(tooltips) {
			pp.Tooltip = tooltips[idx]
		}
		if idx < len(sizes) {
			pp.Size = sizes[idx]
		}
		if idx < len(shownValues) {
			pp.Value = shownValues[idx]
		}
		if shown != nil {
			category := pp.Segment
			if category == "" {
				category = pushpincolor.EmptySegmentItem
			}
			if !shown[category] {
				continue
			}
		}
		if loc, err := execution.ParseLocation(name); err == nil {
			pp.Lat, pp.Lng = loc.Lat, loc.Lng
			if cell, err := loc.Cell(s.h3Resolution); err == nil {
				pp.Cell = cell.String()
			}
		}
		ret = append(ret, pp)
	}
	return ret
}

// ColorLegend returns the buckets of the color legend, or nothing if the
// chart has no color measure.
func (s *Snapshot) ColorLegend() []pushpincolor.LegendColorItem {
	if s.GeoData.Color == nil {
		return []pushpincolor.LegendColorItem{}
	}
	series := s.exec.Result.MeasureValues(s.GeoData.Color.Index)
	return pushpincolor.LegendColorData(series, s.Strategy.BaseColor(0))
}

// CategoryLegend returns the category legend items with their visibility.
// It is empty for unsegmented charts.
func (s *Snapshot) CategoryLegend() []legend.Item {
	return append([]legend.Item{}, s.enabledItems...)
}

// ColorAssignments returns the color assignments and the palette they were
// drawn from.
func (s *Snapshot) ColorAssignments() ColorPayload {
	return ColorPayload{
		Assignments: append([]color.Assignment{}, s.Strategy.ColorAssignment()...),
		Palette:     append(color.Palette{}, s.Palette...),
	}
}
