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

// Package datasource provides a geoviz data source serving the pushpins and
// legends of geo charts.  Each collection holds one chart's configuration,
// buckets, and execution.
package datasource

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/rs/zerolog"

	"github.com/ilhamster/geoviz/category"
	"github.com/ilhamster/geoviz/color"
	continuousaxis "github.com/ilhamster/geoviz/continuous_axis"
	"github.com/ilhamster/geoviz/execution"
	geochart "github.com/ilhamster/geoviz/geo_chart"
	"github.com/ilhamster/geoviz/label"
	"github.com/ilhamster/geoviz/legend"
	"github.com/ilhamster/geoviz/logger"
	"github.com/ilhamster/geoviz/magnitude"
	pushpincolor "github.com/ilhamster/geoviz/pushpin_color"
	"github.com/ilhamster/geoviz/util"
)

const (
	pushpinsQuery         = "geo.pushpins"
	colorLegendQuery      = "geo.color_legend"
	categoryLegendQuery   = "geo.category_legend"
	colorAssignmentsQuery = "geo.color_assignments"

	collectionNameKey   = "collection_name"
	toggleLegendItemKey = "toggle_legend_item"

	colorStrategyKey    = "color_strategy"
	fingerprintKey      = "fingerprint"
	h3ResolutionKey     = "h3_resolution"
	indexKey            = "index"
	locationKey         = "location"
	latKey              = "lat"
	lngKey              = "lng"
	h3CellKey           = "h3_cell"
	segmentKey          = "segment"
	segmentAttributeKey = "segment_attribute"
	tooltipKey          = "tooltip"
	rangeFromKey        = "range_from"
	rangeToKey          = "range_to"
	legendIndexKey      = "legend_index"
	visibleKey          = "visible"
	matchKeysKey        = "match_keys"
	colorTypeKey        = "color_type"
	colorGUIDKey        = "color_guid"
	paletteGUIDsKey     = "palette_guids"
	paletteColorsKey    = "palette_colors"

	colorValueCategoryID = "color_value"
	sizeValueCategoryID  = "size_value"
	colorLegendSpace     = "color_legend"
)

// ErrBadCollectionName is returned for collection names that do not name a
// single file under the collection root.
var ErrBadCollectionName = errors.New("bad collection name")

// Collection is a single chart's inputs.
type Collection struct {
	Config    geochart.Config      `json:"config"`
	Buckets   execution.Buckets    `json:"buckets"`
	Execution *execution.Execution `json:"execution"`
}

// ExecutionFetcher describes types capable of fetching collections by name.
type ExecutionFetcher interface {
	// Fetch fetches the collection specified by collectionName, returning an
	// error if a failure is encountered.
	Fetch(ctx context.Context, collectionName string) (*Collection, error)
}

// FileFetcher fetches collections stored as <root>/<name>.json.
type FileFetcher struct {
	root string
}

// NewFileFetcher returns a FileFetcher reading collections under root.
func NewFileFetcher(root string) *FileFetcher {
	return &FileFetcher{root: root}
}

// Fetch reads and decodes the named collection.
func (ff *FileFetcher) Fetch(ctx context.Context, collectionName string) (*Collection, error) {
	if collectionName == "" || collectionName != filepath.Base(collectionName) || strings.HasPrefix(collectionName, ".") {
		return nil, fmt.Errorf("%w: %q", ErrBadCollectionName, collectionName)
	}
	file, err := os.Open(filepath.Join(ff.root, collectionName+".json"))
	if err != nil {
		return nil, err
	}
	defer file.Close()
	coll := &Collection{}
	if err := json.NewDecoder(file).Decode(coll); err != nil {
		return nil, fmt.Errorf("failed to decode collection %q: %w", collectionName, err)
	}
	return coll, nil
}

// Options configures a DataSource.
type Options struct {
	// CacheCapacity is the number of charts kept.
	CacheCapacity int
	// H3Resolution is the resolution pushpins are indexed at.
	H3Resolution int
	// DataPointsLimit applies to collections that don't set their own limit.
	DataPointsLimit int
	Logger          *zerolog.Logger
}

// DataSource implements querydispatcher.dataSource for geo charts.  It keeps
// the charts of the most recently used collections, so that repeated requests
// only recompute what changed in their collection.
type DataSource struct {
	mu sync.Mutex
	// An LRU cache holding the charts of the most recently-accessed
	// collections.
	charts  *lru.Cache[string, *geochart.Chart]
	fetcher ExecutionFetcher
	opts    Options
	log     *zerolog.Logger
}

// New returns a new DataSource using the provided fetcher.
func New(fetcher ExecutionFetcher, opts Options) (*DataSource, error) {
	charts, err := lru.New[string, *geochart.Chart](opts.CacheCapacity)
	if err != nil {
		return nil, err
	}
	log := opts.Logger
	if log == nil {
		nop := zerolog.Nop()
		log = &nop
	}
	return &DataSource{
		charts:  charts,
		fetcher: fetcher,
		opts:    opts,
		log:     log,
	}, nil
}

// SupportedDataSeriesQueries returns the DataSeriesRequest query names
// supported by DataSource.
func (ds *DataSource) SupportedDataSeriesQueries() []string {
	return []string{
		pushpinsQuery,
		colorLegendQuery,
		categoryLegendQuery,
		colorAssignmentsQuery,
	}
}

// chart returns the cached chart of the specified collection, creating it if
// it isn't already cached.
func (ds *DataSource) chart(collectionName string) *geochart.Chart {
	ds.mu.Lock()
	defer ds.mu.Unlock()
	if c, ok := ds.charts.Get(collectionName); ok {
		return c
	}
	c := geochart.New(ds.log, ds.opts.H3Resolution)
	ds.charts.Add(collectionName, c)
	return c
}

// Chart fetches the specified collection and brings its chart up to date.
func (ds *DataSource) Chart(ctx context.Context, collectionName string) (*geochart.Chart, error) {
	coll, err := ds.fetcher.Fetch(ctx, collectionName)
	if err != nil {
		return nil, err
	}
	cfg := coll.Config
	if cfg.Limit == 0 {
		cfg.Limit = ds.opts.DataPointsLimit
	}
	log := logger.FromContext(ctx, ds.log)
	c := ds.chart(collectionName)
	if _, err := c.Update(ctx, geochart.Props{
		Config:    cfg,
		Buckets:   coll.Buckets,
		Execution: coll.Execution,
		OnDataTooLarge: func() {
			log.Info().Str("collection", collectionName).Msg("collection exceeds the data points limit")
		},
	}); err != nil {
		return nil, fmt.Errorf("collection %q: %w", collectionName, err)
	}
	return c, nil
}

// HandleDataSeriesRequests handles the provided set of DataSeriesRequests, with
// the provided global filters.  It assembles its responses in the provided
// DataResponseBuilder.
func (ds *DataSource) HandleDataSeriesRequests(ctx context.Context, globalFilters map[string]*util.V, drb *util.DataResponseBuilder, reqs []*util.DataSeriesRequest) error {
	start := time.Now()
	queryNames := make([]string, 0, len(reqs))
	for _, req := range reqs {
		queryNames = append(queryNames, req.QueryName)
	}
	collectionNameVal, ok := globalFilters[collectionNameKey]
	if !ok {
		return fmt.Errorf("missing required filter option '%s'", collectionNameKey)
	}
	collectionName, err := util.ExpectStringValue(collectionNameVal)
	if err != nil {
		return fmt.Errorf("required filter option '%s' must be a string", collectionNameKey)
	}
	ctx = logger.WithCollection(ctx, collectionName)
	log := logger.FromContext(ctx, ds.log)
	defer func() {
		log.Debug().Strs("queries", queryNames).Dur("elapsed", time.Since(start)).Msg("handled queries")
	}()
	c, err := ds.Chart(ctx, collectionName)
	if err != nil {
		return err
	}
	// Legend toggles apply before any series is built, so that all series in
	// this request agree.
	for _, req := range reqs {
		if req.QueryName != categoryLegendQuery {
			continue
		}
		toggleVal, ok := req.Options[toggleLegendItemKey]
		if !ok {
			continue
		}
		idxs, err := legendIndices(toggleVal)
		if err != nil {
			return err
		}
		for _, idx := range idxs {
			if err := c.ToggleLegendItem(int(idx)); err != nil {
				return err
			}
		}
	}
	snap, err := c.Snapshot()
	if err != nil {
		return fmt.Errorf("collection %q: %w", collectionName, err)
	}
	for _, req := range reqs {
		series := drb.DataSeries(req)
		switch req.QueryName {
		case pushpinsQuery:
			handlePushpinsQuery(snap, ds.opts.H3Resolution, series)
		case colorLegendQuery:
			handleColorLegendQuery(snap, series)
		case categoryLegendQuery:
			handleCategoryLegendQuery(snap, series)
		case colorAssignmentsQuery:
			handleColorAssignmentsQuery(snap, series)
		default:
			return fmt.Errorf("error handling data query %s: unsupported data query", req.QueryName)
		}
	}
	return nil
}

// legendIndices returns the legend items a toggle_legend_item option names:
// a single index or a list of them.
func legendIndices(v *util.V) ([]int64, error) {
	if idx, err := util.ExpectIntegerValue(v); err == nil {
		return []int64{idx}, nil
	}
	idxs, err := util.ExpectIntegersValue(v)
	if err != nil {
		return nil, fmt.Errorf("option '%s' must be an integer or integers", toggleLegendItemKey)
	}
	return idxs, nil
}

func measureAxis(role *execution.Role, id, description string, values ...float64) *continuousaxis.Axis {
	if role == nil {
		return nil
	}
	return continuousaxis.NewDoubleAxis(category.New(id, role.Name, description), role.Format, values...)
}

// segmentCategories returns the categories of a segmented chart's legend
// items, by name.
func segmentCategories(geo execution.GeoData, items []legend.Item) map[string]*category.Category {
	ret := map[string]*category.Category{}
	if geo.Segment == nil {
		return ret
	}
	for _, item := range items {
		ret[item.Name] = category.Segment(item.LegendIndex, item.Name, geo.Segment.Name)
	}
	return ret
}

// tooltipFormat returns the label format of pushpin tooltips, with a line
// for each filled role.
func tooltipFormat(geo execution.GeoData) string {
	var lines []label.Line
	if geo.Tooltip != nil {
		lines = append(lines, label.Line{Title: geo.Tooltip.Name, Key: tooltipKey})
	} else if geo.Location != nil {
		lines = append(lines, label.Line{Title: geo.Location.Name, Key: locationKey})
	}
	if geo.Color != nil {
		lines = append(lines, label.Line{Title: geo.Color.Name, Key: colorValueCategoryID})
	}
	if geo.Size != nil {
		lines = append(lines, label.Line{Title: geo.Size.Name, Key: sizeValueCategoryID})
	}
	if geo.Segment != nil {
		lines = append(lines, label.Line{Title: geo.Segment.Name, Key: segmentKey})
	}
	return label.Lines(lines...)
}

func handlePushpinsQuery(snap *geochart.Snapshot, h3Resolution int, series util.DataBuilder) {
	pushpins := snap.Pushpins()
	geo := snap.GeoData
	values := make([]float64, len(pushpins))
	sizes := make([]float64, len(pushpins))
	for idx, pp := range pushpins {
		values[idx], sizes[idx] = pp.Value, pp.Size
	}
	colorAxis := measureAxis(geo.Color, colorValueCategoryID, "The measure coloring pushpins", values...)
	sizeAxis := measureAxis(geo.Size, sizeValueCategoryID, "The measure sizing pushpins", sizes...)
	categories := segmentCategories(geo, snap.CategoryItems)
	series.With(
		util.StringProperty(colorStrategyKey, snap.Strategy.Kind().String()),
		util.StringProperty(fingerprintKey, fmt.Sprintf("%016x", snap.Fingerprint)),
		util.IntegerProperty(h3ResolutionKey, int64(h3Resolution)),
		label.Format(tooltipFormat(geo)),
	)
	axes := series.Child()
	for _, axis := range []*continuousaxis.Axis{colorAxis, sizeAxis} {
		if axis != nil {
			axes.Child().With(axis.Define())
		}
	}
	pins := series.Child()
	for _, pp := range pushpins {
		pin := pins.Child().With(
			util.IntegerProperty(indexKey, int64(pp.Index)),
			util.StringProperty(locationKey, pp.Location),
			util.If(pp.Cell != "", util.Chain(
				util.DoubleProperty(latKey, pp.Lat),
				util.DoubleProperty(lngKey, pp.Lng),
				util.StringProperty(h3CellKey, pp.Cell),
			)),
			util.If(geo.Tooltip != nil, util.StringProperty(tooltipKey, pp.Tooltip)),
			color.Fill(pp.Colors.Background, pp.Colors.Border),
		)
		if colorAxis != nil {
			pin.With(colorAxis.Value(pp.Value))
		}
		if sizeAxis != nil {
			lo, hi := sizeAxis.Extents()
			pin.With(
				sizeAxis.Value(pp.Size),
				magnitude.Relative(pp.Size, lo, hi),
			)
		}
		if geo.Segment != nil {
			name := pp.Segment
			if name == "" {
				name = pushpincolor.EmptySegmentItem
			}
			pin.With(util.StringProperty(segmentKey, pp.Segment))
			if cat, ok := categories[name]; ok {
				pin.With(cat.Tag())
			}
		}
	}
}

func handleColorLegendQuery(snap *geochart.Snapshot, series util.DataBuilder) {
	items := snap.ColorLegend()
	if len(items) == 0 {
		return
	}
	axis := measureAxis(snap.GeoData.Color, colorValueCategoryID, "The measure coloring pushpins",
		items[0].Range.From, items[len(items)-1].Range.To)
	series.With(
		color.ShadeSpace(colorLegendSpace, snap.Strategy.BaseColor(0)).Define(),
		axis.Define(),
	)
	for _, item := range items {
		series.Child().With(
			color.Primary(item.Color),
			util.DoubleProperty(rangeFromKey, item.Range.From),
			util.DoubleProperty(rangeToKey, item.Range.To),
		)
	}
}

func handleCategoryLegendQuery(snap *geochart.Snapshot, series util.DataBuilder) {
	geo := snap.GeoData
	if geo.Segment == nil {
		return
	}
	items := snap.CategoryLegend()
	series.With(util.StringProperty(segmentAttributeKey, geo.Segment.Name))
	for _, item := range items {
		series.Child().With(
			category.Segment(item.LegendIndex, item.Name, geo.Segment.Name).Define(),
			color.Primary(item.Color),
			util.IntegerProperty(legendIndexKey, int64(item.LegendIndex)),
			util.BoolProperty(visibleKey, item.Visible),
		)
	}
}

func handleColorAssignmentsQuery(snap *geochart.Snapshot, series util.DataBuilder) {
	payload := snap.ColorAssignments()
	guids := make([]string, len(payload.Palette))
	fills := make([]string, len(payload.Palette))
	for idx, entry := range payload.Palette {
		guids[idx], fills[idx] = entry.GUID, entry.Fill.String()
	}
	series.With(
		util.StringsProperty(paletteGUIDsKey, guids...),
		util.StringsProperty(paletteColorsKey, fills...),
	)
	for idx, a := range payload.Assignments {
		var matchKeys []string
		if a.Header != nil {
			matchKeys = a.Header.MatchKeys()
		}
		colorType := "rgb"
		if a.Color.Type == color.GUIDItem {
			colorType = "guid"
		}
		series.Child().With(
			util.StringsProperty(matchKeysKey, matchKeys...),
			util.StringProperty(colorTypeKey, colorType),
			util.If(a.Color.Type == color.GUIDItem, util.StringProperty(colorGUIDKey, a.Color.GUID)),
			color.Primary(snap.Strategy.ColorByIndex(idx)),
		)
	}
}
