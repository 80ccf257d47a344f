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

package execution

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func f(v float64) *float64 {
	return &v
}

var testExecution = &Execution{
	Response: &Response{
		Dimensions: []Dimension{{
			Measures: []MeasureHeader{
				{LocalIdentifier: "m_size", Name: "Population", Format: "#,##0"},
				{LocalIdentifier: "m_color", Identifier: "revenue", URI: "/md/revenue", Name: "Revenue", Format: "$#,##0"},
			},
		}, {
			Attributes: []AttributeHeader{
				{LocalIdentifier: "a_location", Name: "City location", FormOf: FormOf{Name: "City"}},
				{LocalIdentifier: "a_segment", Name: "Region name", FormOf: FormOf{Name: "Region"}},
			},
		}},
	},
	Result: &Result{
		Data: [][]*float64{
			{f(10), f(20), nil},
			{f(1.5), nil, f(3)},
		},
		HeaderItems: [][]AttributeItem{
			{{Name: "50.08;14.42"}, {Name: "49.19;16.61"}, {Name: "49.82;18.26"}},
			{{Name: "Bohemia", URI: "/r/1"}, {Name: "Moravia", URI: "/r/2"}, {Name: "Silesia", URI: "/r/3"}},
		},
	},
}

func TestGeoDataFor(t *testing.T) {
	for _, test := range []struct {
		description string
		buckets     Buckets
		exec        *Execution
		wantGeo     GeoData
		wantErr     error
	}{{
		description: "all roles",
		buckets: Buckets{
			Location: "a_location",
			Size:     "m_size",
			Color:    "m_color",
			Segment:  "a_segment",
		},
		exec: testExecution,
		wantGeo: GeoData{
			Location: &Role{Index: 0, Name: "City"},
			Size:     &Role{Index: 0, Name: "Population", Format: "#,##0"},
			Color:    &Role{Index: 1, Name: "Revenue", Format: "$#,##0"},
			Segment:  &Role{Index: 1, Name: "Region"},
		},
	}, {
		description: "location only",
		buckets:     Buckets{Location: "a_location"},
		exec:        testExecution,
		wantGeo: GeoData{
			Location: &Role{Index: 0, Name: "City"},
		},
	}, {
		description: "no execution",
		buckets:     Buckets{Location: "a_location"},
	}, {
		description: "unknown measure",
		buckets:     Buckets{Location: "a_location", Color: "m_missing"},
		exec:        testExecution,
		wantErr:     ErrUnknownBucket,
	}, {
		description: "measure named as attribute",
		buckets:     Buckets{Segment: "m_size"},
		exec:        testExecution,
		wantErr:     ErrUnknownBucket,
	}} {
		t.Run(test.description, func(t *testing.T) {
			gotGeo, err := GeoDataFor(test.buckets, test.exec)
			if !errors.Is(err, test.wantErr) {
				t.Fatalf("GeoDataFor() yielded error %v, want %v", err, test.wantErr)
			}
			if diff := cmp.Diff(test.wantGeo, gotGeo); diff != "" {
				t.Errorf("GeoDataFor() = %v, diff (-want +got) %s", gotGeo, diff)
			}
		})
	}
}

func TestResultAccessors(t *testing.T) {
	res := testExecution.Result
	if diff := cmp.Diff([]float64{1.5, math.NaN(), 3}, res.MeasureValues(1), cmpopts.EquateNaNs()); diff != "" {
		t.Errorf("MeasureValues(1) diff (-want +got) %s", diff)
	}
	if got := res.MeasureValues(5); got != nil {
		t.Errorf("MeasureValues(5) = %v, want nil", got)
	}
	if diff := cmp.Diff([]string{"Bohemia", "Moravia", "Silesia"}, res.AttributeNames(1)); diff != "" {
		t.Errorf("AttributeNames(1) diff (-want +got) %s", diff)
	}
	var nilResult *Result
	if got := nilResult.AttributeNames(0); got != nil {
		t.Errorf("AttributeNames() on nil result = %v, want nil", got)
	}
}

func TestIsDataOfReasonableSize(t *testing.T) {
	geo := GeoData{Location: &Role{Index: 0}}
	for _, test := range []struct {
		description string
		geo         GeoData
		limit       int
		want        bool
	}{{
		description: "under limit",
		geo:         geo,
		limit:       25000,
		want:        true,
	}, {
		description: "at limit",
		geo:         geo,
		limit:       3,
		want:        true,
	}, {
		description: "over limit",
		geo:         geo,
		limit:       2,
		want:        false,
	}, {
		description: "no location",
		limit:       0,
		want:        true,
	}} {
		t.Run(test.description, func(t *testing.T) {
			if got := IsDataOfReasonableSize(testExecution.Result, test.geo, test.limit); got != test.want {
				t.Errorf("IsDataOfReasonableSize() = %t, want %t", got, test.want)
			}
		})
	}
}

func TestMatchKeys(t *testing.T) {
	for _, test := range []struct {
		description string
		header      Header
		want        []string
	}{{
		description: "measure with all keys",
		header:      testExecution.Response.Dimensions[0].Measures[1],
		want:        []string{"m_color", "revenue", "/md/revenue", "Revenue"},
	}, {
		description: "attribute without identifier",
		header:      testExecution.Response.Dimensions[1].Attributes[0],
		want:        []string{"a_location", "City location"},
	}, {
		description: "attribute item",
		header:      AttributeItem{Name: "Bohemia", URI: "/r/1"},
		want:        []string{"/r/1", "Bohemia"},
	}, {
		description: "empty attribute item",
		header:      AttributeItem{},
		want:        []string{},
	}} {
		t.Run(test.description, func(t *testing.T) {
			if diff := cmp.Diff(test.want, test.header.MatchKeys()); diff != "" {
				t.Errorf("MatchKeys() diff (-want +got) %s", diff)
			}
		})
	}
}

func TestExecutionJSON(t *testing.T) {
	raw := `{
		"response": {"dimensions": [
			{"measures": [{"localIdentifier": "m1", "name": "Revenue"}]},
			{"attributes": [{"localIdentifier": "a1", "name": "City", "formOf": {"name": "City"}}]}
		]},
		"result": {
			"data": [[1, null]],
			"headerItems": [[{"name": "Prague"}, {"name": "Brno"}]]
		}
	}`
	var got Execution
	if err := json.Unmarshal([]byte(raw), &got); err != nil {
		t.Fatalf("json.Unmarshal() yielded unexpected error %s", err)
	}
	want := Execution{
		Response: &Response{Dimensions: []Dimension{
			{Measures: []MeasureHeader{{LocalIdentifier: "m1", Name: "Revenue"}}},
			{Attributes: []AttributeHeader{{LocalIdentifier: "a1", Name: "City", FormOf: FormOf{Name: "City"}}}},
		}},
		Result: &Result{
			Data:        [][]*float64{{f(1), nil}},
			HeaderItems: [][]AttributeItem{{{Name: "Prague"}, {Name: "Brno"}}},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("json.Unmarshal() diff (-want +got) %s", diff)
	}
}

func TestParseLocation(t *testing.T) {
	for _, test := range []struct {
		description string
		input       string
		want        Location
		wantErr     bool
	}{{
		description: "valid",
		input:       "50.08;14.42",
		want:        Location{Lat: 50.08, Lng: 14.42},
	}, {
		description: "spaces",
		input:       " -33.86 ; 151.2 ",
		want:        Location{Lat: -33.86, Lng: 151.2},
	}, {
		description: "missing separator",
		input:       "50.08,14.42",
		wantErr:     true,
	}, {
		description: "not a number",
		input:       "north;14.42",
		wantErr:     true,
	}, {
		description: "out of range",
		input:       "91;0",
		wantErr:     true,
	}} {
		t.Run(test.description, func(t *testing.T) {
			got, err := ParseLocation(test.input)
			if (err != nil) != test.wantErr {
				t.Fatalf("ParseLocation(%q) yielded error %v, wanted error: %t", test.input, err, test.wantErr)
			}
			if diff := cmp.Diff(test.want, got); diff != "" {
				t.Errorf("ParseLocation(%q) diff (-want +got) %s", test.input, diff)
			}
		})
	}
}

func TestLocationCell(t *testing.T) {
	loc := Location{Lat: 50.08, Lng: 14.42}
	cell, err := loc.Cell(6)
	if err != nil {
		t.Fatalf("Cell() yielded unexpected error %s", err)
	}
	if !cell.IsValid() {
		t.Errorf("Cell() = %v, want a valid cell", cell)
	}
	if got := cell.Resolution(); got != 6 {
		t.Errorf("Cell().Resolution() = %d, want 6", got)
	}
	if _, err := loc.Cell(16); err == nil {
		t.Errorf("Cell(16) yielded no error")
	}
}
