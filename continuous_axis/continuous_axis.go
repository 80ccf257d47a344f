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

// Package continuousaxis provides decorator helpers for defining the value
// axes of a geo chart's measures.  An axis is a category with minimum and
// maximum points along the measure's domain.
package continuousaxis

import (
	"math"

	"github.com/ilhamster/geoviz/category"
	"github.com/ilhamster/geoviz/util"
)

const (
	axisTypeKey   = "axis_type"
	axisMinKey    = "axis_min"
	axisMaxKey    = "axis_max"
	axisFormatKey = "axis_format"

	doubleAxisType = "double"
)

// Axis is the value axis of a single measure.
type Axis struct {
	cat      *category.Category
	format   string
	min, max float64
}

// NewDoubleAxis returns a new Axis with the specified category and number
// format.  Its extents are the lowest and highest of the provided extents,
// ignoring NaNs; with no such extents, both are zero.
func NewDoubleAxis(cat *category.Category, format string, extents ...float64) *Axis {
	min, max := math.Inf(1), math.Inf(-1)
	for _, extent := range extents {
		if math.IsNaN(extent) {
			continue
		}
		min = math.Min(min, extent)
		max = math.Max(max, extent)
	}
	if min > max {
		min, max = 0, 0
	}
	return &Axis{
		cat:    cat,
		format: format,
		min:    min,
		max:    max,
	}
}

// Define annotates with a definition of the receiver.
func (a *Axis) Define() util.PropertyUpdate {
	return util.Chain(
		a.cat.Define(),
		util.StringProperty(axisTypeKey, doubleAxisType),
		util.If(a.format != "", util.StringProperty(axisFormatKey, a.format)),
		util.DoubleProperty(axisMinKey, a.min),
		util.DoubleProperty(axisMaxKey, a.max),
	)
}

// Value annotates with v as a point along the receiver, keyed by the
// receiver's category ID.  NaN values are left unset.
func (a *Axis) Value(v float64) util.PropertyUpdate {
	return util.If(!math.IsNaN(v), util.DoubleProperty(a.cat.ID(), v))
}

// CategoryID returns the category ID of the receiving Axis.
func (a *Axis) CategoryID() string {
	return a.cat.ID()
}

// Extents returns the receiver's minimum and maximum.
func (a *Axis) Extents() (min, max float64) {
	return a.min, a.max
}
