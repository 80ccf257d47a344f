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

// Package changegate decides how much of a geo chart must be recomputed when
// its inputs change.
package changegate

import (
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/ilhamster/geoviz/color"
	"github.com/ilhamster/geoviz/execution"
)

// ColorConfig is the part of a chart's configuration that affects only its
// colors.
type ColorConfig struct {
	ColorPalette color.Palette
	Colors       []string
	ColorMapping []color.Mapping
}

// Props are the inputs of a chart update that the gate inspects.
type Props struct {
	ColorConfig ColorConfig
	Execution   *execution.Execution
}

// Recompute says how much of a chart an update recomputes.
type Recompute int

// Recompute levels, in increasing order of work.
const (
	NoRecompute Recompute = iota
	ColorRecompute
	FullRecompute
)

func (r Recompute) String() string {
	switch r {
	case ColorRecompute:
		return "color"
	case FullRecompute:
		return "full"
	default:
		return "none"
	}
}

// Decision records which of a chart's inputs changed.
type Decision struct {
	ExecutionChanged   bool
	ColorConfigChanged bool
}

// Recompute returns the work the receiver calls for.  An execution change
// subsumes a color configuration change.
func (d Decision) Recompute() Recompute {
	switch {
	case d.ExecutionChanged:
		return FullRecompute
	case d.ColorConfigChanged:
		return ColorRecompute
	default:
		return NoRecompute
	}
}

// Nil and empty slices are the same configuration.
var equateEmpty = cmpopts.EquateEmpty()

// ShouldRecompute compares two successive sets of chart inputs.  The
// execution changed if next has one and prev had none or a different
// response; results are not compared, since a response identifies its result.
func ShouldRecompute(prev, next Props) Decision {
	return Decision{
		ExecutionChanged:   executionChanged(prev.Execution, next.Execution),
		ColorConfigChanged: !cmp.Equal(prev.ColorConfig, next.ColorConfig, equateEmpty),
	}
}

func executionChanged(prev, next *execution.Execution) bool {
	if next == nil {
		return false
	}
	if prev == nil {
		return true
	}
	return !cmp.Equal(prev.Response, next.Response, equateEmpty)
}
