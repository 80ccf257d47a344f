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
	"fmt"
	"strconv"
	"strings"

	h3 "github.com/uber/h3-go/v4"
)

// MaxH3Resolution is the finest H3 resolution.
const MaxH3Resolution = 15

// Location is a pushpin's position in degrees.
type Location struct {
	Lat float64
	Lng float64
}

// ParseLocation parses a "lat;lng" location item.
func ParseLocation(s string) (Location, error) {
	parts := strings.Split(s, ";")
	if len(parts) != 2 {
		return Location{}, fmt.Errorf("location %q: want \"lat;lng\"", s)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return Location{}, fmt.Errorf("location %q: latitude: %w", s, err)
	}
	lng, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return Location{}, fmt.Errorf("location %q: longitude: %w", s, err)
	}
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return Location{}, fmt.Errorf("location %q: out of range", s)
	}
	return Location{Lat: lat, Lng: lng}, nil
}

// Cell returns the H3 cell containing l at resolution res.
func (l Location) Cell(res int) (h3.Cell, error) {
	if res < 0 || res > MaxH3Resolution {
		return 0, fmt.Errorf("h3 resolution %d out of range [0, %d]", res, MaxH3Resolution)
	}
	cell, err := h3.LatLngToCell(h3.LatLng{Lat: l.Lat, Lng: l.Lng}, res)
	if err != nil {
		return 0, fmt.Errorf("h3 cell for %v: %w", l, err)
	}
	return cell, nil
}
