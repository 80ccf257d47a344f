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

package color

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/ilhamster/geoviz/execution"
	"github.com/lucasb-eyer/go-colorful"
)

// ErrInvalidColor is returned when a color string cannot be parsed.
var ErrInvalidColor = errors.New("invalid color")

// RGB is an opaque 8-bit-per-channel color.
type RGB struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

// String renders c as a CSS rgb() color.
func (c RGB) String() string {
	return fmt.Sprintf("rgb(%d,%d,%d)", c.R, c.G, c.B)
}

// Hex renders c as a #rrggbb color.
func (c RGB) Hex() string {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}.Hex()
}

// Parse parses a CSS rgb(r,g,b) color or a #rgb or #rrggbb hex color.
func Parse(s string) (RGB, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "#") {
		c, err := colorful.Hex(s)
		if err != nil {
			return RGB{}, fmt.Errorf("%w %q: %v", ErrInvalidColor, s, err)
		}
		r, g, b := c.RGB255()
		return RGB{R: r, G: g, B: b}, nil
	}
	lower := strings.ToLower(s)
	if !strings.HasPrefix(lower, "rgb(") || !strings.HasSuffix(lower, ")") {
		return RGB{}, fmt.Errorf("%w %q", ErrInvalidColor, s)
	}
	parts := strings.Split(lower[len("rgb("):len(lower)-1], ",")
	if len(parts) != 3 {
		return RGB{}, fmt.Errorf("%w %q: want three channels", ErrInvalidColor, s)
	}
	var chans [3]uint8
	for idx, part := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(part), 10, 8)
		if err != nil {
			return RGB{}, fmt.Errorf("%w %q: %v", ErrInvalidColor, s, err)
		}
		chans[idx] = uint8(v)
	}
	return RGB{R: chans[0], G: chans[1], B: chans[2]}, nil
}

// MustParse is like Parse, but panics on error.  Only for literal colors.
func MustParse(s string) RGB {
	c, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Grey is the border of the single default pushpin shown when there is
// nothing to bucket.
var Grey = RGB{R: 233, G: 237, B: 241}

// PaletteEntry is a single palette color, addressed by GUID.
type PaletteEntry struct {
	GUID string `json:"guid"`
	Fill RGB    `json:"fill"`
}

// Palette is an ordered, non-empty list of colors.  Its first entry is the
// fallback for unresolvable colors.
type Palette []PaletteEntry

var defaultFills = []RGB{
	{20, 178, 226},
	{0, 193, 141},
	{229, 77, 66},
	{241, 134, 0},
	{171, 85, 163},
	{244, 213, 33},
	{148, 161, 174},
	{107, 191, 216},
	{181, 136, 177},
	{238, 135, 128},
	{241, 171, 84},
	{133, 209, 188},
	{195, 141, 188},
	{243, 217, 116},
	{180, 187, 194},
	{70, 115, 177},
	{42, 165, 143},
	{138, 43, 99},
	{195, 103, 0},
	{133, 78, 130},
}

// DefaultPalette returns the twenty default hues, with GUIDs "0" to "19".
func DefaultPalette() Palette {
	ret := make(Palette, len(defaultFills))
	for idx, fill := range defaultFills {
		ret[idx] = PaletteEntry{GUID: strconv.Itoa(idx), Fill: fill}
	}
	return ret
}

// ValidPalette returns the palette a chart should color with: palette if it
// is non-empty, else colors parsed into a palette with GUIDs by position,
// else the default palette.
func ValidPalette(colors []string, palette Palette) Palette {
	if len(palette) > 0 {
		return palette
	}
	if len(colors) == 0 {
		return DefaultPalette()
	}
	ret := make(Palette, 0, len(colors))
	for idx, s := range colors {
		c, err := Parse(s)
		if err != nil {
			return DefaultPalette()
		}
		ret = append(ret, PaletteEntry{GUID: strconv.Itoa(idx), Fill: c})
	}
	return ret
}

// Has reports whether guid names an entry of p.
func (p Palette) Has(guid string) bool {
	for _, entry := range p {
		if entry.GUID == guid {
			return true
		}
	}
	return false
}

// ByGUID returns the fill of the entry named guid, or of entry index (modulo
// the palette length) if there is none.
func (p Palette) ByGUID(guid string, index int) RGB {
	for _, entry := range p {
		if entry.GUID == guid {
			return entry.Fill
		}
	}
	return p.At(index)
}

// At returns the fill of entry index, modulo the palette length.
func (p Palette) At(index int) RGB {
	if len(p) == 0 {
		return RGB{}
	}
	index %= len(p)
	if index < 0 {
		index += len(p)
	}
	return p[index].Fill
}

// ItemType distinguishes palette references from literal colors.
type ItemType int

// Item types.
const (
	GUIDItem ItemType = iota
	RGBItem
)

// Item is a color as chosen by a chart author: either a reference into the
// palette or a literal RGB color.
type Item struct {
	Type ItemType
	GUID string
	RGB  RGB
}

// GUIDColor returns a palette-reference Item.
func GUIDColor(guid string) Item {
	return Item{Type: GUIDItem, GUID: guid}
}

// RGBColor returns a literal-color Item.
func RGBColor(c RGB) Item {
	return Item{Type: RGBItem, RGB: c}
}

// Resolve returns the color i denotes in p.  Unknown GUIDs resolve to entry
// index of p.
func (i Item) Resolve(p Palette, index int) RGB {
	if i.Type == RGBItem {
		return i.RGB
	}
	return p.ByGUID(i.GUID, index)
}

type itemJSON struct {
	Type  string          `json:"type"`
	Value json.RawMessage `json:"value"`
}

// MarshalJSON encodes i as {"type": "guid", "value": "4"} or
// {"type": "rgb", "value": {"r": 1, "g": 2, "b": 3}}.
func (i Item) MarshalJSON() ([]byte, error) {
	var (
		typ string
		val any
	)
	switch i.Type {
	case GUIDItem:
		typ, val = "guid", i.GUID
	case RGBItem:
		typ, val = "rgb", i.RGB
	default:
		return nil, fmt.Errorf("unsupported color item type %d", i.Type)
	}
	v, err := json.Marshal(val)
	if err != nil {
		return nil, err
	}
	return json.Marshal(itemJSON{Type: typ, Value: v})
}

// UnmarshalJSON decodes the format written by MarshalJSON.
func (i *Item) UnmarshalJSON(data []byte) error {
	var ij itemJSON
	if err := json.Unmarshal(data, &ij); err != nil {
		return err
	}
	switch ij.Type {
	case "guid":
		i.Type = GUIDItem
		return json.Unmarshal(ij.Value, &i.GUID)
	case "rgb":
		i.Type = RGBItem
		return json.Unmarshal(ij.Value, &i.RGB)
	default:
		return fmt.Errorf("%w: unsupported color item type %q", ErrInvalidColor, ij.Type)
	}
}

// Mapping assigns a color to the headers identified by MatchKey.
type Mapping struct {
	MatchKey string `json:"id"`
	Color    Item   `json:"color"`
}

// Lookup returns the color of the first mapping matching any of header's
// keys, or false if none does.
func Lookup(mappings []Mapping, header execution.Header) (Item, bool) {
	if header == nil {
		return Item{}, false
	}
	keys := header.MatchKeys()
	for _, m := range mappings {
		for _, key := range keys {
			if m.MatchKey == key {
				return m.Color, true
			}
		}
	}
	return Item{}, false
}

// Assignment pairs a chart header with the color it is drawn in.
type Assignment struct {
	Header execution.Header
	Color  Item
}
