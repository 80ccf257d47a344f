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

// Package magnitude supports attaching magnitudes to items, such as the
// relative sizes of pushpins.
package magnitude

import (
	"math"

	"github.com/ilhamster/geoviz/util"
)

const (
	relativeMagnitudeKey = "relative_magnitude"
)

// Relative returns a PropertyUpdate that annotates with v's position within
// [lo, hi], from 0 at lo to 1 at hi.  Values in a degenerate range sit at the
// middle; NaN values are left unset.
func Relative(v, lo, hi float64) util.PropertyUpdate {
	if math.IsNaN(v) {
		return util.EmptyUpdate
	}
	if hi <= lo {
		return util.DoubleProperty(relativeMagnitudeKey, .5)
	}
	return util.DoubleProperty(relativeMagnitudeKey, math.Min(1, math.Max(0, (v-lo)/(hi-lo))))
}
