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

package testutil

import (
	"fmt"

	"github.com/ilhamster/geoviz/execution"
)

// GeoFixture describes a geo pushpin execution column by column.  Nil
// slices leave the corresponding role unfilled.
type GeoFixture struct {
	Locations []string
	Segments  []string
	Colors    []*float64
	Sizes     []*float64
}

// F returns a pointer to v, for populating measure columns.
func F(v float64) *float64 {
	return &v
}

// Floats returns a measure column holding vals.
func Floats(vals ...float64) []*float64 {
	ret := make([]*float64, len(vals))
	for idx := range vals {
		ret[idx] = F(vals[idx])
	}
	return ret
}

func (gf GeoFixture) width() int {
	ret := len(gf.Locations)
	for _, l := range []int{len(gf.Segments), len(gf.Colors), len(gf.Sizes)} {
		if l > ret {
			ret = l
		}
	}
	return ret
}

// Execution returns the execution gf describes and the buckets naming its
// roles.  Segment items share a URI exactly when they share a name.  Missing
// locations are filled in with distinct points.
func (gf GeoFixture) Execution() (*execution.Execution, execution.Buckets) {
	width := gf.width()
	var buckets execution.Buckets
	measures := []execution.MeasureHeader{}
	attributes := []execution.AttributeHeader{}
	res := &execution.Result{}
	if gf.Colors != nil {
		buckets.Color = "m_color"
		measures = append(measures, execution.MeasureHeader{
			LocalIdentifier: "m_color",
			Identifier:      "revenue",
			URI:             "/gdc/md/projectId/obj/10",
			Name:            "Revenue",
			Format:          "#,##0",
		})
		res.Data = append(res.Data, gf.Colors)
	}
	if gf.Sizes != nil {
		buckets.Size = "m_size"
		measures = append(measures, execution.MeasureHeader{
			LocalIdentifier: "m_size",
			Identifier:      "population",
			URI:             "/gdc/md/projectId/obj/11",
			Name:            "Population",
			Format:          "#,##0",
		})
		res.Data = append(res.Data, gf.Sizes)
	}
	buckets.Location = "a_location"
	attributes = append(attributes, execution.AttributeHeader{
		LocalIdentifier: "a_location",
		Identifier:      "label.city.location",
		URI:             "/gdc/md/projectId/obj/1",
		Name:            "City location",
		FormOf:          execution.FormOf{Name: "City"},
	})
	locations := make([]execution.AttributeItem, width)
	for idx := range locations {
		if idx < len(gf.Locations) {
			locations[idx] = execution.AttributeItem{Name: gf.Locations[idx]}
			continue
		}
		locations[idx] = execution.AttributeItem{Name: fmt.Sprintf("%.2f;%.2f", 40+float64(idx)/100, 10+float64(idx)/100)}
	}
	res.HeaderItems = append(res.HeaderItems, locations)
	if gf.Segments != nil {
		buckets.Segment = "a_segment"
		attributes = append(attributes, execution.AttributeHeader{
			LocalIdentifier: "a_segment",
			Identifier:      "label.type",
			URI:             "/gdc/md/projectId/obj/2",
			Name:            "Type",
			FormOf:          execution.FormOf{Name: "Type"},
		})
		ids := map[string]int{}
		segments := make([]execution.AttributeItem, len(gf.Segments))
		for idx, name := range gf.Segments {
			id, ok := ids[name]
			if !ok {
				id = len(ids)
				ids[name] = id
			}
			segments[idx] = execution.AttributeItem{
				Name: name,
				URI:  fmt.Sprintf("/gdc/md/projectId/obj/2/elements?id=%d", id),
			}
		}
		res.HeaderItems = append(res.HeaderItems, segments)
	}
	return &execution.Execution{
		Response: &execution.Response{
			Dimensions: []execution.Dimension{
				{Measures: measures},
				{Attributes: attributes},
			},
		},
		Result: res,
	}, buckets
}

// SegmentNames returns "<prefix>0" through "<prefix>(count-1)".
func SegmentNames(prefix string, count int) []string {
	ret := make([]string, count)
	for idx := range ret {
		ret[idx] = fmt.Sprintf("%s%d", prefix, idx)
	}
	return ret
}
