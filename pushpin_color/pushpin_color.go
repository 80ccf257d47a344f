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

// Package pushpincolor resolves the fill and border of every pushpin of a geo
// chart, and the color ranges of its color legend.
//
// A pushpin's value is bucketed into one of color.ColorScale shades of its
// category's base color, relative to the range of all pushpin values: the
// lowest value gets the lightest shade and the highest gets the base color
// itself.  Borders are always drawn in the unshaded base color.
package pushpincolor

import (
	"math"

	"github.com/ilhamster/geoviz/color"
	colorstrategy "github.com/ilhamster/geoviz/color_strategy"
	"github.com/ilhamster/geoviz/execution"
)

const (
	// EmptySegmentItem names the category of pushpins with no segment value.
	EmptySegmentItem = "(empty value)"
	// DefaultSegmentItem names the single category of an unsegmented chart.
	DefaultSegmentItem = "default_segment_item"
)

// Pushpin is the pair of colors a single pushpin is drawn with.
type Pushpin struct {
	Background string `json:"background"`
	Border     string `json:"border"`
}

// Range is a closed range of values.
type Range struct {
	From float64 `json:"from"`
	To   float64 `json:"to"`
}

// LegendColorItem is one bucket of a color legend.
type LegendColorItem struct {
	Color string `json:"color"`
	Range Range  `json:"range"`
}

// bounds returns the least and greatest non-NaN value of vals, and false if
// there are none.
func bounds(vals []float64) (lo, hi float64, ok bool) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range vals {
		if math.IsNaN(v) {
			continue
		}
		ok = true
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi, ok
}

// ColorIndexInPalette returns the shade index of v within [lo, hi]: the first
// i whose bucket boundary lo + i*(hi-lo)/ColorScale is at least v.  Missing
// (NaN) values and degenerate ranges get shade 0.
func ColorIndexInPalette(v, lo, hi float64) int {
	if math.IsNaN(v) || lo == hi {
		return 0
	}
	for i := 0; i < color.ColorScale; i++ {
		if v <= lo+float64(i)*(hi-lo)/color.ColorScale {
			return i
		}
	}
	return color.ColorScale - 1
}

// CategoryName returns the palette mapping key for assignment a.
func CategoryName(a color.Assignment) string {
	item, ok := a.Header.(execution.AttributeItem)
	if !ok {
		return DefaultSegmentItem
	}
	if item.Name == "" {
		return EmptySegmentItem
	}
	return item.Name
}

// shadeMapping returns the shades of every category of s.  Categories sharing
// a name get the shades of the last of them.
func shadeMapping(s *colorstrategy.Strategy) map[string][color.ColorScale]color.RGB {
	ret := map[string][color.ColorScale]color.RGB{}
	for idx, a := range s.ColorAssignment() {
		ret[CategoryName(a)] = color.Shades(s.BaseColor(idx))
	}
	return ret
}

// PaletteMapping returns the rgb() shades, lightest first, of every category
// s assigns a color to.
func PaletteMapping(s *colorstrategy.Strategy) map[string][]string {
	ret := map[string][]string{}
	for name, shades := range shadeMapping(s) {
		strs := make([]string, len(shades))
		for idx, shade := range shades {
			strs[idx] = shade.String()
		}
		ret[name] = strs
	}
	return ret
}

func categoryOf(segments []string, idx int) string {
	if len(segments) == 0 {
		return DefaultSegmentItem
	}
	if idx >= len(segments) || segments[idx] == "" {
		return EmptySegmentItem
	}
	return segments[idx]
}

// PushpinColors returns the colors of the pushpins with the provided values
// and segments, in order.  values holds NaN for missing values; segments is
// empty for an unsegmented chart.
//
// With no values, every pushpin is drawn in its category's base color; if
// there are no segments either, or the chart is unsegmented and all values
// are equal, a single default pushpin color is returned.
func PushpinColors(values []float64, segments []string, s *colorstrategy.Strategy) []Pushpin {
	defaultColors := []Pushpin{{
		Background: s.ColorByIndex(0),
		Border:     color.Grey.String(),
	}}
	mapping := shadeMapping(s)
	shadesOf := func(category string) [color.ColorScale]color.RGB {
		if shades, ok := mapping[category]; ok {
			return shades
		}
		if shades, ok := mapping[DefaultSegmentItem]; ok {
			return shades
		}
		return color.Shades(s.BaseColor(0))
	}
	if len(values) == 0 {
		if len(segments) == 0 {
			return defaultColors
		}
		ret := make([]Pushpin, len(segments))
		for idx := range segments {
			base := shadesOf(categoryOf(segments, idx))[color.ColorScale-1].String()
			ret[idx] = Pushpin{Background: base, Border: base}
		}
		return ret
	}
	lo, hi, ok := bounds(values)
	if !ok {
		lo, hi = 0, 0
	}
	if lo == hi && len(segments) == 0 {
		return defaultColors
	}
	ret := make([]Pushpin, len(values))
	for idx, v := range values {
		shades := shadesOf(categoryOf(segments, idx))
		ret[idx] = Pushpin{
			Background: shades[ColorIndexInPalette(v, lo, hi)].String(),
			Border:     shades[color.ColorScale-1].String(),
		}
	}
	return ret
}

// LegendColorData returns the color legend buckets of series in shades of
// base, lightest first.  It is empty if series has fewer than two distinct
// values.
func LegendColorData(series []float64, base color.RGB) []LegendColorItem {
	lo, hi, ok := bounds(series)
	if !ok || lo == hi {
		return []LegendColorItem{}
	}
	shades := color.Shades(base)
	ret := make([]LegendColorItem, color.ColorScale)
	for i := range ret {
		ret[i] = LegendColorItem{
			Color: shades[i].String(),
			Range: Range{
				From: lo + float64(i)*(hi-lo)/color.ColorScale,
				To:   lo + float64(i+1)*(hi-lo)/color.ColorScale,
			},
		}
	}
	return ret
}
