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

// Package legend builds the category legend of a segmented geo chart and
// tracks which of its categories are shown.
package legend

import (
	colorstrategy "github.com/ilhamster/geoviz/color_strategy"
	"github.com/ilhamster/geoviz/execution"
	pushpincolor "github.com/ilhamster/geoviz/pushpin_color"
)

// Item is a single category legend entry.
type Item struct {
	Name        string `json:"name"`
	LegendIndex int    `json:"legendIndex"`
	Color       string `json:"color"`
	Visible     bool   `json:"isVisible"`
}

// Items returns one visible Item per color assignment of s, in assignment
// order.
func Items(s *colorstrategy.Strategy) []Item {
	assignments := s.ColorAssignment()
	ret := make([]Item, len(assignments))
	for idx, a := range assignments {
		name := pushpincolor.EmptySegmentItem
		if item, ok := a.Header.(execution.AttributeItem); ok && item.Name != "" {
			name = item.Name
		}
		ret[idx] = Item{
			Name:        name,
			LegendIndex: idx,
			Color:       s.ColorByIndex(idx),
			Visible:     true,
		}
	}
	return ret
}

// Toggle returns a copy of items with the visibility of the item at
// legendIndex flipped.  An out-of-range index changes nothing.
func Toggle(items []Item, legendIndex int) []Item {
	ret := make([]Item, len(items))
	copy(ret, items)
	if legendIndex >= 0 && legendIndex < len(ret) {
		ret[legendIndex].Visible = !ret[legendIndex].Visible
	}
	return ret
}

// SelectedNames returns the names of the visible items, in order.
func SelectedNames(items []Item) []string {
	ret := []string{}
	for _, item := range items {
		if item.Visible {
			ret = append(ret, item.Name)
		}
	}
	return ret
}
