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

// Package color holds the palette vocabulary of geo pushpin charts and the
// response properties that carry resolved colors to the renderer.
//
// A rendered pushpin is annotated with two colors:
//
//   - The primary color is the pushpin's fill.  When the chart has a color
//     measure, it is one of the shades of the pushpin's category color,
//     chosen by the pushpin's value.
//   - The stroke color is the pushpin's border, always the unshaded category
//     color.
//
// So, a single pushpin might be annotated via:
//
//	pushpin.With(
//	  color.Primary("rgb(215,242,250)"),
//	  color.Stroke("rgb(20,178,226)"),
//	)
//
// A color legend describes the shades of a single base color as a Space,
// defined once on the legend datum:
//
//	legend.With(color.ShadeSpace("color_legend", base).Define())
package color

import (
	"strings"

	"github.com/ilhamster/geoviz/util"
)

const (
	// colorSpaceNamePrefix defines a color space.
	colorSpaceNamePrefix = "color_space_"
	// The primary color space and value, or raw color.
	primaryColorSpaceKey      = "primary_color_space"
	primaryColorSpaceValueKey = "primary_color_space_value"
	primaryColorKey           = "primary_color"
	// The stroke color space and value, or raw color.
	strokeColorSpaceKey      = "stroke_color_space"
	strokeColorSpaceValueKey = "stroke_color_space_value"
	strokeColorKey           = "stroke_color"
)

// Space represents a color space: a color continuum that can map double
// values to colors.
type Space struct {
	name   string
	colors []string
}

// NewSpace defines a new color space.  Colors in this space will be linearly
// interpolated between the specified colors.
func NewSpace(name string, colors ...string) *Space {
	return &Space{
		name:   name,
		colors: colors,
	}
}

// ShadeSpace returns a Space running through the shades of base, lightest
// first.
func ShadeSpace(name string, base RGB) *Space {
	shades := Shades(base)
	colors := make([]string, len(shades))
	for idx, shade := range shades {
		colors[idx] = shade.String()
	}
	return NewSpace(name, colors...)
}

// Name returns the Space's name.
func (s *Space) Name() string {
	return s.name
}

// Colors returns the Space's colors.
func (s *Space) Colors() []string {
	return s.colors
}

// Define annotates with a definition of the receiving Space.
func (s *Space) Define() util.PropertyUpdate {
	return util.StringsProperty(colorSpaceNamePrefix+s.name, s.colors...)
}

// PrimaryColor annotates a Datum with a primary color along the receiving
// color space.
func (s *Space) PrimaryColor(colorValue float64) util.PropertyUpdate {
	return util.Chain(
		util.StringProperty(primaryColorSpaceKey, colorSpaceNamePrefix+s.name),
		util.DoubleProperty(primaryColorSpaceValueKey, colorValue),
	)
}

// StrokeColor annotates a Datum with a stroke color along the receiving
// color space.
func (s *Space) StrokeColor(colorValue float64) util.PropertyUpdate {
	return util.Chain(
		util.StringProperty(strokeColorSpaceKey, colorSpaceNamePrefix+s.name),
		util.DoubleProperty(strokeColorSpaceValueKey, colorValue),
	)
}

// Primary annotates a Datum with the specified primary color.
func Primary(colorValue string) util.PropertyUpdate {
	return util.StringProperty(primaryColorKey, colorValue)
}

// Stroke annotates a Datum with the specified stroke color.
func Stroke(colorValue string) util.PropertyUpdate {
	return util.StringProperty(strokeColorKey, colorValue)
}

// Fill annotates a Datum with the specified primary and stroke colors.  Empty
// colors are left unset.
func Fill(background, border string) util.PropertyUpdate {
	return util.Chain(
		util.If(strings.TrimSpace(background) != "", Primary(background)),
		util.If(strings.TrimSpace(border) != "", Stroke(border)),
	)
}
