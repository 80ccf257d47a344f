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

// Package execution models the results an analytics backend returns for a
// geo pushpin chart, and resolves the chart's buckets against them.
//
// An execution Response describes two dimensions: dimension 0 holds the
// measure headers, and dimension 1 holds the attribute headers.  The Result
// holds one row of measure values per measure and one row of attribute items
// per attribute, all of the same length: one column per pushpin.
package execution

import (
	"errors"
	"fmt"
	"math"
)

// ErrUnknownBucket is returned when a bucket names a local identifier absent
// from the execution response.
var ErrUnknownBucket = errors.New("unknown bucket")

// Dimension indices within a Response.
const (
	MeasureDimension   = 0
	AttributeDimension = 1
)

// MeasureHeader describes a single measure.
type MeasureHeader struct {
	LocalIdentifier string `json:"localIdentifier"`
	Identifier      string `json:"identifier,omitempty"`
	URI             string `json:"uri,omitempty"`
	Name            string `json:"name"`
	Format          string `json:"format,omitempty"`
}

// FormOf names the attribute an attribute display form belongs to.
type FormOf struct {
	Identifier string `json:"identifier,omitempty"`
	URI        string `json:"uri,omitempty"`
	Name       string `json:"name"`
}

// AttributeHeader describes a single attribute display form.
type AttributeHeader struct {
	LocalIdentifier string `json:"localIdentifier"`
	Identifier      string `json:"identifier,omitempty"`
	URI             string `json:"uri,omitempty"`
	Name            string `json:"name"`
	FormOf          FormOf `json:"formOf"`
}

// DisplayName returns the name of the attribute h is a form of, or h's own
// name if that is unknown.
func (h AttributeHeader) DisplayName() string {
	if h.FormOf.Name != "" {
		return h.FormOf.Name
	}
	return h.Name
}

// AttributeItem is a single value of an attribute.
type AttributeItem struct {
	Name string `json:"name"`
	URI  string `json:"uri,omitempty"`
}

// Key returns the identity of the item: its URI, or its name if it has none.
func (i AttributeItem) Key() string {
	if i.URI != "" {
		return i.URI
	}
	return i.Name
}

// Dimension is one of a Response's dimensions.
type Dimension struct {
	Measures   []MeasureHeader   `json:"measures,omitempty"`
	Attributes []AttributeHeader `json:"attributes,omitempty"`
}

// Response is the metadata of an execution: what its result rows mean.
type Response struct {
	Dimensions []Dimension `json:"dimensions"`
}

// Measure returns the measure header at index idx.
func (r *Response) Measure(idx int) (MeasureHeader, bool) {
	if r == nil || len(r.Dimensions) <= MeasureDimension {
		return MeasureHeader{}, false
	}
	ms := r.Dimensions[MeasureDimension].Measures
	if idx < 0 || idx >= len(ms) {
		return MeasureHeader{}, false
	}
	return ms[idx], true
}

// Attribute returns the attribute header at index idx.
func (r *Response) Attribute(idx int) (AttributeHeader, bool) {
	if r == nil || len(r.Dimensions) <= AttributeDimension {
		return AttributeHeader{}, false
	}
	as := r.Dimensions[AttributeDimension].Attributes
	if idx < 0 || idx >= len(as) {
		return AttributeHeader{}, false
	}
	return as[idx], true
}

// Result holds an execution's values.
type Result struct {
	// Data holds one row per measure.  Missing values are nil.
	Data [][]*float64 `json:"data"`
	// HeaderItems holds one row per attribute.
	HeaderItems [][]AttributeItem `json:"headerItems"`
}

// MeasureValues returns the values of measure idx, with NaN standing in for
// missing values.
func (r *Result) MeasureValues(idx int) []float64 {
	if r == nil || idx < 0 || idx >= len(r.Data) {
		return nil
	}
	row := r.Data[idx]
	ret := make([]float64, len(row))
	for col, v := range row {
		if v == nil {
			ret[col] = math.NaN()
			continue
		}
		ret[col] = *v
	}
	return ret
}

// AttributeItems returns the items of attribute idx.
func (r *Result) AttributeItems(idx int) []AttributeItem {
	if r == nil || idx < 0 || idx >= len(r.HeaderItems) {
		return nil
	}
	return r.HeaderItems[idx]
}

// AttributeNames returns the item names of attribute idx.
func (r *Result) AttributeNames(idx int) []string {
	items := r.AttributeItems(idx)
	if items == nil {
		return nil
	}
	ret := make([]string, len(items))
	for col, item := range items {
		ret[col] = item.Name
	}
	return ret
}

// Execution is a complete execution: its metadata and its values.
type Execution struct {
	Response *Response `json:"response"`
	Result   *Result   `json:"result"`
}

// Buckets names, by local identifier, the execution headers filling each of a
// geo chart's roles.  Empty roles are unfilled.
type Buckets struct {
	Location string `json:"location,omitempty"`
	Size     string `json:"size,omitempty"`
	Color    string `json:"color,omitempty"`
	Segment  string `json:"segment,omitempty"`
	Tooltip  string `json:"tooltip,omitempty"`
}

// Role locates a filled chart role within an execution.  Index is into the
// measure dimension for size and color, and into the attribute dimension
// otherwise.
type Role struct {
	Index  int
	Name   string
	Format string
}

// GeoData is the resolved role layout of a geo chart.  Unfilled roles are nil.
type GeoData struct {
	Location *Role
	Size     *Role
	Color    *Role
	Segment  *Role
	Tooltip  *Role
}

// GeoDataFor resolves buckets against exec's response.
func GeoDataFor(buckets Buckets, exec *Execution) (GeoData, error) {
	var ret GeoData
	if exec == nil || exec.Response == nil {
		return ret, nil
	}
	resp := exec.Response
	var err error
	attr := func(localID string) *Role {
		if localID == "" || err != nil {
			return nil
		}
		if len(resp.Dimensions) > AttributeDimension {
			for idx, h := range resp.Dimensions[AttributeDimension].Attributes {
				if h.LocalIdentifier == localID {
					return &Role{Index: idx, Name: h.DisplayName()}
				}
			}
		}
		err = fmt.Errorf("%w: attribute %q", ErrUnknownBucket, localID)
		return nil
	}
	measure := func(localID string) *Role {
		if localID == "" || err != nil {
			return nil
		}
		if len(resp.Dimensions) > MeasureDimension {
			for idx, h := range resp.Dimensions[MeasureDimension].Measures {
				if h.LocalIdentifier == localID {
					return &Role{Index: idx, Name: h.Name, Format: h.Format}
				}
			}
		}
		err = fmt.Errorf("%w: measure %q", ErrUnknownBucket, localID)
		return nil
	}
	ret.Location = attr(buckets.Location)
	ret.Size = measure(buckets.Size)
	ret.Color = measure(buckets.Color)
	ret.Segment = attr(buckets.Segment)
	ret.Tooltip = attr(buckets.Tooltip)
	if err != nil {
		return GeoData{}, err
	}
	return ret, nil
}

// IsDataOfReasonableSize reports whether result has at most limit locations.
// A chart without a location is always of reasonable size.
func IsDataOfReasonableSize(result *Result, geo GeoData, limit int) bool {
	if geo.Location == nil {
		return true
	}
	return len(result.AttributeItems(geo.Location.Index)) <= limit
}
