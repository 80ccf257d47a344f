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

package pushpincolor

import (
	"fmt"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/ilhamster/geoviz/color"
	colorstrategy "github.com/ilhamster/geoviz/color_strategy"
	"github.com/ilhamster/geoviz/execution"
	testutil "github.com/ilhamster/geoviz/test_util"
)

var nan = math.NaN()

func strategyFor(t *testing.T, gf testutil.GeoFixture) *colorstrategy.Strategy {
	t.Helper()
	exec, buckets := gf.Execution()
	geo, err := execution.GeoDataFor(buckets, exec)
	if err != nil {
		t.Fatalf("GeoDataFor() yielded unexpected error %s", err)
	}
	return colorstrategy.New(color.DefaultPalette(), nil, geo, exec)
}

func pp(background, border string) Pushpin {
	return Pushpin{Background: background, Border: border}
}

func TestPushpinColors(t *testing.T) {
	names := testutil.SegmentNames("name_", 5)
	duplicated := append(append([]string{}, names...), names...)
	for _, test := range []struct {
		description string
		fixture     testutil.GeoFixture
		values      []float64
		segments    []string
		want        []Pushpin
	}{{
		description: "duplicated segmented series",
		fixture:     testutil.GeoFixture{Segments: duplicated},
		values:      []float64{10, 20, 30, 40, 50, 10, 20, 30, 40, 50},
		segments:    duplicated,
		want: []Pushpin{
			pp("rgb(215,242,250)", "rgb(20,178,226)"),
			pp("rgb(127,224,198)", "rgb(0,193,141)"),
			pp("rgb(237,136,129)", "rgb(229,77,66)"),
			pp("rgb(241,134,0)", "rgb(241,134,0)"),
			pp("rgb(171,85,163)", "rgb(171,85,163)"),
			pp("rgb(215,242,250)", "rgb(20,178,226)"),
			pp("rgb(127,224,198)", "rgb(0,193,141)"),
			pp("rgb(237,136,129)", "rgb(229,77,66)"),
			pp("rgb(241,134,0)", "rgb(241,134,0)"),
			pp("rgb(171,85,163)", "rgb(171,85,163)"),
		},
	}, {
		description: "no values and no segments",
		fixture:     testutil.GeoFixture{},
		want: []Pushpin{
			pp("rgb(20,178,226)", "rgb(233,237,241)"),
		},
	}, {
		description: "equal values without segments",
		fixture:     testutil.GeoFixture{Colors: testutil.Floats(10, 10)},
		values:      []float64{10, 10},
		want: []Pushpin{
			pp("rgb(20,178,226)", "rgb(233,237,241)"),
		},
	}, {
		description: "segmented with a missing value",
		fixture:     testutil.GeoFixture{Segments: names},
		values:      []float64{10, nan, 30, 40, 50},
		segments:    names,
		want: []Pushpin{
			pp("rgb(215,242,250)", "rgb(20,178,226)"),
			pp("rgb(212,244,236)", "rgb(0,193,141)"),
			pp("rgb(237,136,129)", "rgb(229,77,66)"),
			pp("rgb(241,134,0)", "rgb(241,134,0)"),
			pp("rgb(171,85,163)", "rgb(171,85,163)"),
		},
	}, {
		description: "unsegmented with a missing value",
		fixture:     testutil.GeoFixture{},
		values:      []float64{10, nan, 30, 40, 50},
		want: []Pushpin{
			pp("rgb(215,242,250)", "rgb(20,178,226)"),
			pp("rgb(215,242,250)", "rgb(20,178,226)"),
			pp("rgb(98,203,235)", "rgb(20,178,226)"),
			pp("rgb(20,178,226)", "rgb(20,178,226)"),
			pp("rgb(20,178,226)", "rgb(20,178,226)"),
		},
	}, {
		description: "negative and positive values",
		fixture:     testutil.GeoFixture{},
		values:      []float64{nan, -100, -50, 0, 50, 100, 200},
		segments:    []string{},
		want: []Pushpin{
			pp("rgb(215,242,250)", "rgb(20,178,226)"),
			pp("rgb(215,242,250)", "rgb(20,178,226)"),
			pp("rgb(176,229,245)", "rgb(20,178,226)"),
			pp("rgb(137,216,240)", "rgb(20,178,226)"),
			pp("rgb(98,203,235)", "rgb(20,178,226)"),
			pp("rgb(59,190,230)", "rgb(20,178,226)"),
			pp("rgb(20,178,226)", "rgb(20,178,226)"),
		},
	}, {
		description: "no values with segments",
		fixture:     testutil.GeoFixture{Segments: []string{"a", "b", ""}},
		segments:    []string{"a", "b", "", "a"},
		want: []Pushpin{
			pp("rgb(20,178,226)", "rgb(20,178,226)"),
			pp("rgb(0,193,141)", "rgb(0,193,141)"),
			pp("rgb(229,77,66)", "rgb(229,77,66)"),
			pp("rgb(20,178,226)", "rgb(20,178,226)"),
		},
	}, {
		description: "equal values with segments",
		fixture:     testutil.GeoFixture{Segments: []string{"a", "b"}},
		values:      []float64{3, 3},
		segments:    []string{"a", "b"},
		want: []Pushpin{
			pp("rgb(215,242,250)", "rgb(20,178,226)"),
			pp("rgb(212,244,236)", "rgb(0,193,141)"),
		},
	}, {
		description: "unknown segment falls back to the first category",
		fixture:     testutil.GeoFixture{Segments: []string{"a"}},
		values:      []float64{1, 2},
		segments:    []string{"a", "zzz"},
		want: []Pushpin{
			pp("rgb(215,242,250)", "rgb(20,178,226)"),
			pp("rgb(20,178,226)", "rgb(20,178,226)"),
		},
	}} {
		t.Run(test.description, func(t *testing.T) {
			s := strategyFor(t, test.fixture)
			got := PushpinColors(test.values, test.segments, s)
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("PushpinColors() diff (-want +got) %s", diff)
			}
			again := PushpinColors(test.values, test.segments, s)
			if diff := cmp.Diff(got, again); diff != "" {
				t.Errorf("PushpinColors() is not idempotent, diff (-first +second) %s", diff)
			}
		})
	}
}

func TestPushpinColorsWithEmptySegments(t *testing.T) {
	// Two distinct items without names share the empty-value category, which
	// takes the color of the later of them.
	segItem := func(name string, id int) execution.AttributeItem {
		return execution.AttributeItem{Name: name, URI: fmt.Sprintf("/gdc/md/projectId/obj/2/elements?id=%d", id)}
	}
	exec := &execution.Execution{
		Response: &execution.Response{Dimensions: []execution.Dimension{
			{},
			{Attributes: []execution.AttributeHeader{
				{LocalIdentifier: "a_location"},
				{LocalIdentifier: "a_segment"},
			}},
		}},
		Result: &execution.Result{
			HeaderItems: [][]execution.AttributeItem{
				make([]execution.AttributeItem, 6),
				{segItem("name_0", 0), segItem("name_1", 1), segItem("name_0", 0), segItem("name_1", 1), segItem("", 2), segItem("", 3)},
			},
		},
	}
	geo, err := execution.GeoDataFor(execution.Buckets{Location: "a_location", Segment: "a_segment"}, exec)
	if err != nil {
		t.Fatalf("GeoDataFor() yielded unexpected error %s", err)
	}
	s := colorstrategy.New(color.DefaultPalette(), nil, geo, exec)
	got := PushpinColors(
		[]float64{10, nan, 30, 40, nan, nan},
		[]string{"name_0", "name_1", "name_0", "name_1", "", ""},
		s,
	)
	want := []Pushpin{
		pp("rgb(215,242,250)", "rgb(20,178,226)"),
		pp("rgb(212,244,236)", "rgb(0,193,141)"),
		pp("rgb(59,190,230)", "rgb(20,178,226)"),
		pp("rgb(0,193,141)", "rgb(0,193,141)"),
		pp("rgb(252,234,212)", "rgb(241,134,0)"),
		pp("rgb(252,234,212)", "rgb(241,134,0)"),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("PushpinColors() diff (-want +got) %s", diff)
	}
}

func TestPaletteMapping(t *testing.T) {
	blue := []string{
		"rgb(215,242,250)", "rgb(176,229,245)", "rgb(137,216,240)",
		"rgb(98,203,235)", "rgb(59,190,230)", "rgb(20,178,226)",
	}
	for _, test := range []struct {
		description string
		fixture     testutil.GeoFixture
		want        map[string][]string
	}{{
		description: "one segment item",
		fixture:     testutil.GeoFixture{Segments: []string{"only_one_item"}},
		want:        map[string][]string{"only_one_item": blue},
	}, {
		description: "no segment",
		fixture:     testutil.GeoFixture{Colors: testutil.Floats(1, 2)},
		want:        map[string][]string{DefaultSegmentItem: blue},
	}, {
		description: "several segment items",
		fixture:     testutil.GeoFixture{Segments: testutil.SegmentNames("item", 4)},
		want: map[string][]string{
			"item0": blue,
			"item1": {
				"rgb(212,244,236)", "rgb(170,234,217)", "rgb(127,224,198)",
				"rgb(85,213,179)", "rgb(42,203,160)", "rgb(0,193,141)",
			},
			"item2": {
				"rgb(250,225,223)", "rgb(246,195,192)", "rgb(242,166,160)",
				"rgb(237,136,129)", "rgb(233,106,97)", "rgb(229,77,66)",
			},
			"item3": {
				"rgb(252,234,212)", "rgb(250,214,170)", "rgb(248,194,127)",
				"rgb(245,174,85)", "rgb(243,154,42)", "rgb(241,134,0)",
			},
		},
	}, {
		description: "empty segment item",
		fixture:     testutil.GeoFixture{Segments: []string{""}},
		want:        map[string][]string{EmptySegmentItem: blue},
	}} {
		t.Run(test.description, func(t *testing.T) {
			if diff := cmp.Diff(test.want, PaletteMapping(strategyFor(t, test.fixture))); diff != "" {
				t.Errorf("PaletteMapping() diff (-want +got) %s", diff)
			}
		})
	}
}

func TestPaletteMappingRotation(t *testing.T) {
	mapping := PaletteMapping(strategyFor(t, testutil.GeoFixture{
		Segments: testutil.SegmentNames("item", 21),
	}))
	if diff := cmp.Diff(mapping["item0"], mapping["item20"]); diff != "" {
		t.Errorf("item20 shades differ from item0 shades (-item0 +item20) %s", diff)
	}
	if len(mapping["item0"]) != color.ColorScale {
		t.Errorf("item0 has %d shades, want %d", len(mapping["item0"]), color.ColorScale)
	}
}

func TestColorIndexInPalette(t *testing.T) {
	for _, test := range []struct {
		value  float64
		lo, hi float64
		want   int
	}{
		{value: 100, lo: 100, hi: 700, want: 0},
		{value: 120, lo: 100, hi: 700, want: 1},
		{value: 220, lo: 100, hi: 700, want: 2},
		{value: 300, lo: 100, hi: 700, want: 2},
		{value: 312, lo: 100, hi: 700, want: 3},
		{value: 700, lo: 100, hi: 700, want: 5},
		{value: 800, lo: 100, hi: 700, want: 5},
		{value: nan, lo: 100, hi: 700, want: 0},
		{value: 30, lo: 100, hi: 100, want: 0},
		{value: -20, lo: -100, hi: -10, want: 5},
	} {
		t.Run(fmt.Sprintf("%v in [%v, %v]", test.value, test.lo, test.hi), func(t *testing.T) {
			if got := ColorIndexInPalette(test.value, test.lo, test.hi); got != test.want {
				t.Errorf("ColorIndexInPalette(%v, %v, %v) = %d, want %d", test.value, test.lo, test.hi, got, test.want)
			}
		})
	}
}

func TestColorIndexBounds(t *testing.T) {
	for _, r := range [][2]float64{{0, 1}, {-3.5, 1e9}, {0.1, 0.3}, {-7, -6.999}} {
		if got := ColorIndexInPalette(r[0], r[0], r[1]); got != 0 {
			t.Errorf("ColorIndexInPalette(lo) over %v = %d, want 0", r, got)
		}
		if got := ColorIndexInPalette(r[1], r[0], r[1]); got != color.ColorScale-1 {
			t.Errorf("ColorIndexInPalette(hi) over %v = %d, want %d", r, got, color.ColorScale-1)
		}
	}
}

func TestLegendColorData(t *testing.T) {
	base := color.DefaultPalette()[0].Fill
	for _, test := range []struct {
		description string
		series      []float64
		want        []LegendColorItem
	}{{
		description: "empty series",
		series:      []float64{},
		want:        []LegendColorItem{},
	}, {
		description: "equal values",
		series:      []float64{1, 1, 1, 1, 1, 1, 1},
		want:        []LegendColorItem{},
	}, {
		description: "equal values and missing values",
		series:      []float64{nan, 1, nan},
		want:        []LegendColorItem{},
	}, {
		description: "only missing values",
		series:      []float64{nan},
		want:        []LegendColorItem{},
	}, {
		description: "full range",
		series:      []float64{0, 1, 2, 3, 4, 5, 6},
		want: []LegendColorItem{
			{Color: "rgb(215,242,250)", Range: Range{From: 0, To: 1}},
			{Color: "rgb(176,229,245)", Range: Range{From: 1, To: 2}},
			{Color: "rgb(137,216,240)", Range: Range{From: 2, To: 3}},
			{Color: "rgb(98,203,235)", Range: Range{From: 3, To: 4}},
			{Color: "rgb(59,190,230)", Range: Range{From: 4, To: 5}},
			{Color: "rgb(20,178,226)", Range: Range{From: 5, To: 6}},
		},
	}, {
		description: "missing values are ignored",
		series:      []float64{nan, 12, 0, nan},
		want: []LegendColorItem{
			{Color: "rgb(215,242,250)", Range: Range{From: 0, To: 2}},
			{Color: "rgb(176,229,245)", Range: Range{From: 2, To: 4}},
			{Color: "rgb(137,216,240)", Range: Range{From: 4, To: 6}},
			{Color: "rgb(98,203,235)", Range: Range{From: 6, To: 8}},
			{Color: "rgb(59,190,230)", Range: Range{From: 8, To: 10}},
			{Color: "rgb(20,178,226)", Range: Range{From: 10, To: 12}},
		},
	}} {
		t.Run(test.description, func(t *testing.T) {
			if diff := cmp.Diff(test.want, LegendColorData(test.series, base)); diff != "" {
				t.Errorf("LegendColorData() diff (-want +got) %s", diff)
			}
		})
	}
}
