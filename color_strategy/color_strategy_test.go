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

package colorstrategy

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/ilhamster/geoviz/color"
	"github.com/ilhamster/geoviz/execution"
	testutil "github.com/ilhamster/geoviz/test_util"
)

func strategyFor(t *testing.T, palette color.Palette, mappings []color.Mapping, gf testutil.GeoFixture, dropLocation bool) *Strategy {
	t.Helper()
	exec, buckets := gf.Execution()
	if dropLocation {
		buckets.Location = ""
	}
	geo, err := execution.GeoDataFor(buckets, exec)
	if err != nil {
		t.Fatalf("GeoDataFor() yielded unexpected error %s", err)
	}
	return New(palette, mappings, geo, exec)
}

func item(name string, id int) execution.AttributeItem {
	return execution.AttributeItem{
		Name: name,
		URI:  "/gdc/md/projectId/obj/2/elements?id=" + string(rune('0'+id)),
	}
}

func TestColorAssignment(t *testing.T) {
	palette := color.DefaultPalette()
	revenue := execution.MeasureHeader{
		LocalIdentifier: "m_color",
		Identifier:      "revenue",
		URI:             "/gdc/md/projectId/obj/10",
		Name:            "Revenue",
		Format:          "#,##0",
	}
	population := execution.MeasureHeader{
		LocalIdentifier: "m_size",
		Identifier:      "population",
		URI:             "/gdc/md/projectId/obj/11",
		Name:            "Population",
		Format:          "#,##0",
	}
	location := execution.AttributeHeader{
		LocalIdentifier: "a_location",
		Identifier:      "label.city.location",
		URI:             "/gdc/md/projectId/obj/1",
		Name:            "City location",
		FormOf:          execution.FormOf{Name: "City"},
	}
	for _, test := range []struct {
		description  string
		mappings     []color.Mapping
		fixture      testutil.GeoFixture
		dropLocation bool
		wantKind     Kind
		want         []color.Assignment
	}{{
		description: "segmented, distinct items in first-occurrence order",
		fixture: testutil.GeoFixture{
			Segments: []string{"b", "a", "b", "c", "a"},
			Colors:   testutil.Floats(1, 2, 3, 4, 5),
		},
		wantKind: Segmented,
		want: []color.Assignment{
			{Header: item("b", 0), Color: color.GUIDColor("0")},
			{Header: item("a", 1), Color: color.GUIDColor("1")},
			{Header: item("c", 2), Color: color.GUIDColor("2")},
		},
	}, {
		description: "segmented, mapped items keep their position",
		mappings: []color.Mapping{
			{MatchKey: "/gdc/md/projectId/obj/2/elements?id=0", Color: color.GUIDColor("7")},
			{MatchKey: "c", Color: color.RGBColor(color.RGB{R: 1, G: 2, B: 3})},
			{MatchKey: "a", Color: color.GUIDColor("not_in_palette")},
		},
		fixture: testutil.GeoFixture{
			Segments: []string{"b", "a", "c"},
		},
		wantKind: Segmented,
		want: []color.Assignment{
			{Header: item("b", 0), Color: color.GUIDColor("7")},
			{Header: item("a", 1), Color: color.GUIDColor("1")},
			{Header: item("c", 2), Color: color.RGBColor(color.RGB{R: 1, G: 2, B: 3})},
		},
	}, {
		description: "location only",
		fixture: testutil.GeoFixture{
			Colors: testutil.Floats(1, 2),
		},
		wantKind: LocationOnly,
		want: []color.Assignment{
			{Header: location, Color: color.GUIDColor("0")},
		},
	}, {
		description: "location only, mapped",
		mappings: []color.Mapping{
			{MatchKey: "a_location", Color: color.GUIDColor("3")},
		},
		fixture: testutil.GeoFixture{
			Colors: testutil.Floats(1, 2),
		},
		wantKind: LocationOnly,
		want: []color.Assignment{
			{Header: location, Color: color.GUIDColor("3")},
		},
	}, {
		description: "location only, invalid mapping",
		mappings: []color.Mapping{
			{MatchKey: "a_location", Color: color.GUIDColor("42")},
		},
		fixture: testutil.GeoFixture{
			Colors: testutil.Floats(1, 2),
		},
		wantKind: LocationOnly,
		want: []color.Assignment{
			{Header: location, Color: color.GUIDColor("0")},
		},
	}, {
		description: "color measure preferred over size",
		mappings: []color.Mapping{
			{MatchKey: "revenue", Color: color.GUIDColor("5")},
		},
		fixture: testutil.GeoFixture{
			Colors: testutil.Floats(1, 2),
			Sizes:  testutil.Floats(3, 4),
		},
		dropLocation: true,
		wantKind:     MeasureDriven,
		want: []color.Assignment{
			{Header: revenue, Color: color.GUIDColor("5")},
		},
	}, {
		description: "size measure",
		fixture: testutil.GeoFixture{
			Sizes: testutil.Floats(3, 4),
		},
		dropLocation: true,
		wantKind:     MeasureDriven,
		want: []color.Assignment{
			{Header: population, Color: color.GUIDColor("0")},
		},
	}, {
		description:  "no measure",
		fixture:      testutil.GeoFixture{},
		dropLocation: true,
		wantKind:     MeasureDriven,
		want: []color.Assignment{
			{Color: color.GUIDColor(NoneGUID)},
		},
	}} {
		t.Run(test.description, func(t *testing.T) {
			s := strategyFor(t, palette, test.mappings, test.fixture, test.dropLocation)
			if s.Kind() != test.wantKind {
				t.Errorf("Kind() = %s, want %s", s.Kind(), test.wantKind)
			}
			if diff := cmp.Diff(test.want, s.ColorAssignment()); diff != "" {
				t.Errorf("ColorAssignment() diff (-want +got) %s", diff)
			}
			if diff := cmp.Diff(s.ColorAssignment(), s.FullColorAssignment()); diff != "" {
				t.Errorf("FullColorAssignment() differs from ColorAssignment() (-assignment +full) %s", diff)
			}
		})
	}
}

func TestAssignmentCount(t *testing.T) {
	for _, palette := range []color.Palette{
		color.DefaultPalette(),
		{{GUID: "only", Fill: color.RGB{R: 9, G: 9, B: 9}}},
	} {
		segmented := strategyFor(t, palette, nil, testutil.GeoFixture{
			Segments: append(testutil.SegmentNames("item", 25), testutil.SegmentNames("item", 25)...),
		}, false)
		if got := len(segmented.ColorAssignment()); got != 25 {
			t.Errorf("segmented chart has %d assignments, want 25", got)
		}
		for _, a := range segmented.ColorAssignment() {
			if !palette.Has(a.Color.GUID) {
				t.Errorf("segmented assignment %v is not in the palette", a)
			}
		}
		location := strategyFor(t, palette, nil, testutil.GeoFixture{Colors: testutil.Floats(1)}, false)
		if got := len(location.ColorAssignment()); got != 1 {
			t.Errorf("location-only chart has %d assignments, want 1", got)
		}
		measure := strategyFor(t, palette, nil, testutil.GeoFixture{Sizes: testutil.Floats(1)}, true)
		if got := len(measure.ColorAssignment()); got != 1 {
			t.Errorf("measure-driven chart has %d assignments, want 1", got)
		}
	}
}

func TestColorByIndex(t *testing.T) {
	palette := color.DefaultPalette()
	s := strategyFor(t, palette, []color.Mapping{
		{MatchKey: "item1", Color: color.RGBColor(color.RGB{R: 1, G: 2, B: 3})},
	}, testutil.GeoFixture{
		Segments: testutil.SegmentNames("item", 21),
	}, false)
	for _, test := range []struct {
		idx  int
		want string
	}{
		{idx: 0, want: "rgb(20,178,226)"},
		{idx: 1, want: "rgb(1,2,3)"},
		{idx: 2, want: "rgb(229,77,66)"},
		{idx: 19, want: "rgb(133,78,130)"},
		{idx: 20, want: "rgb(20,178,226)"},
		{idx: 22, want: "rgb(229,77,66)"},
	} {
		if got := s.ColorByIndex(test.idx); got != test.want {
			t.Errorf("ColorByIndex(%d) = %s, want %s", test.idx, got, test.want)
		}
	}

	none := strategyFor(t, palette, nil, testutil.GeoFixture{}, true)
	if got, want := none.ColorByIndex(0), "rgb(20,178,226)"; got != want {
		t.Errorf("ColorByIndex(0) of an unmeasured chart = %s, want %s", got, want)
	}
}
