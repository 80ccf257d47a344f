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

// Package colorstrategy assigns base colors to the headers of a geo pushpin
// chart.
//
// How a chart is colored depends on the shape of its buckets:
//
//   - Segmented: the chart has a segment attribute.  Each distinct segment
//     item gets its own color.
//   - LocationOnly: the chart has a location but no segment.  The location
//     attribute as a whole gets a single color.
//   - MeasureDriven: the chart has neither.  The color measure, or failing
//     that the size measure, gets a single color.
//
// A color mapping may override any assignment; mapped palette references
// that the palette cannot resolve are replaced by a palette default rather
// than reported.
package colorstrategy

import (
	"fmt"

	"github.com/ilhamster/geoviz/color"
	"github.com/ilhamster/geoviz/execution"
)

// Kind identifies how a Strategy assigns colors.
type Kind int

// Strategy kinds.
const (
	LocationOnly Kind = iota
	Segmented
	MeasureDriven
)

func (k Kind) String() string {
	switch k {
	case LocationOnly:
		return "location_only"
	case Segmented:
		return "segmented"
	case MeasureDriven:
		return "measure_driven"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// NoneGUID is the palette reference assigned when a measure-driven chart has
// no measure to color.
const NoneGUID = "none"

// KindOf returns the Kind of Strategy a chart with the provided roles uses.
func KindOf(geo execution.GeoData) Kind {
	switch {
	case geo.Segment != nil:
		return Segmented
	case geo.Location != nil:
		return LocationOnly
	default:
		return MeasureDriven
	}
}

// Strategy is an immutable set of color assignments for one chart update.
type Strategy struct {
	kind        Kind
	palette     color.Palette
	assignments []color.Assignment
	colors      []color.RGB
}

// New returns the Strategy coloring exec, with roles geo, from palette and
// mappings.  palette must not be empty.
func New(palette color.Palette, mappings []color.Mapping, geo execution.GeoData, exec *execution.Execution) *Strategy {
	s := &Strategy{
		kind:    KindOf(geo),
		palette: palette,
	}
	var resp *execution.Response
	var res *execution.Result
	if exec != nil {
		resp, res = exec.Response, exec.Result
	}
	switch s.kind {
	case Segmented:
		s.assignments = segmentAssignments(palette, mappings, res.AttributeItems(geo.Segment.Index))
	case LocationOnly:
		var header execution.Header
		if h, ok := resp.Attribute(geo.Location.Index); ok {
			header = h
		}
		s.assignments = []color.Assignment{{
			Header: header,
			Color:  mappedOrDefault(palette, mappings, header),
		}}
	case MeasureDriven:
		s.assignments = []color.Assignment{measureAssignment(palette, mappings, geo, resp)}
	}
	s.colors = make([]color.RGB, len(s.assignments))
	for idx, a := range s.assignments {
		s.colors[idx] = a.Color.Resolve(palette, idx)
	}
	return s
}

// isValid reports whether item may be drawn from palette.
func isValid(palette color.Palette, item color.Item) bool {
	if item.Type == color.RGBItem {
		return true
	}
	return palette.Has(item.GUID)
}

func mappedOrDefault(palette color.Palette, mappings []color.Mapping, header execution.Header) color.Item {
	if item, ok := color.Lookup(mappings, header); ok && isValid(palette, item) {
		return item
	}
	return color.GUIDColor(palette[0].GUID)
}

func segmentAssignments(palette color.Palette, mappings []color.Mapping, items []execution.AttributeItem) []color.Assignment {
	seen := map[string]struct{}{}
	ret := []color.Assignment{}
	for _, item := range items {
		key := item.Key()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		c, ok := color.Lookup(mappings, item)
		if !ok || !isValid(palette, c) {
			c = color.GUIDColor(palette[len(ret)%len(palette)].GUID)
		}
		ret = append(ret, color.Assignment{Header: item, Color: c})
	}
	return ret
}

func measureAssignment(palette color.Palette, mappings []color.Mapping, geo execution.GeoData, resp *execution.Response) color.Assignment {
	role := geo.Color
	if role == nil {
		role = geo.Size
	}
	if role == nil {
		return color.Assignment{Color: color.GUIDColor(NoneGUID)}
	}
	header, ok := resp.Measure(role.Index)
	if !ok {
		return color.Assignment{Color: color.GUIDColor(NoneGUID)}
	}
	return color.Assignment{
		Header: header,
		Color:  mappedOrDefault(palette, mappings, header),
	}
}

// Kind returns how the receiver assigned its colors.
func (s *Strategy) Kind() Kind {
	return s.kind
}

// Palette returns the palette the receiver draws from.
func (s *Strategy) Palette() color.Palette {
	return s.palette
}

// ColorAssignment returns the receiver's assignments, in legend order.
func (s *Strategy) ColorAssignment() []color.Assignment {
	return s.assignments
}

// FullColorAssignment returns every assignment the receiver made.  Geo charts
// publish all of them, so this is the same as ColorAssignment.
func (s *Strategy) FullColorAssignment() []color.Assignment {
	return s.assignments
}

// BaseColor returns the color of assignment idx.  Indices past the last
// assignment wrap around the palette.
func (s *Strategy) BaseColor(idx int) color.RGB {
	if idx >= 0 && idx < len(s.colors) {
		return s.colors[idx]
	}
	return s.palette.At(idx)
}

// ColorByIndex returns the rgb() color of assignment idx.
func (s *Strategy) ColorByIndex(idx int) string {
	return s.BaseColor(idx).String()
}
