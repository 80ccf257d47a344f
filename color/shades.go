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

// ColorScale is the number of shades a base color is bucketed into.  Shade 0
// is the lightest; shade ColorScale-1 is the base color itself.
const ColorScale = 6

// ShadeTable holds the precomputed shades of every default palette hue.
var ShadeTable = map[RGB][ColorScale]RGB{
	{20, 178, 226}: {{215, 242, 250}, {176, 229, 245}, {137, 216, 240}, {98, 203, 235}, {59, 190, 230}, {20, 178, 226}},
	{0, 193, 141}: {{212, 244, 236}, {170, 234, 217}, {127, 224, 198}, {85, 213, 179}, {42, 203, 160}, {0, 193, 141}},
	{229, 77, 66}: {{250, 225, 223}, {246, 195, 192}, {242, 166, 160}, {237, 136, 129}, {233, 106, 97}, {229, 77, 66}},
	{241, 134, 0}: {{252, 234, 212}, {250, 214, 170}, {248, 194, 127}, {245, 174, 85}, {243, 154, 42}, {241, 134, 0}},
	{171, 85, 163}: {{241, 226, 239}, {227, 198, 224}, {213, 170, 209}, {199, 141, 193}, {185, 113, 178}, {171, 85, 163}},
	{244, 213, 33}: {{253, 248, 218}, {251, 241, 181}, {249, 234, 144}, {247, 227, 107}, {245, 220, 70}, {244, 213, 33}},
	{148, 161, 174}: {{237, 239, 241}, {219, 223, 228}, {201, 208, 214}, {183, 192, 201}, {165, 176, 187}, {148, 161, 174}},
	{107, 191, 216}: {{230, 244, 248}, {205, 233, 242}, {181, 223, 235}, {156, 212, 229}, {131, 201, 222}, {107, 191, 216}},
	{181, 136, 177}: {{242, 235, 242}, {230, 215, 229}, {218, 195, 216}, {205, 175, 203}, {193, 155, 190}, {181, 136, 177}},
	{238, 135, 128}: {{252, 235, 233}, {249, 215, 212}, {246, 195, 191}, {243, 175, 170}, {240, 155, 149}, {238, 135, 128}},
	{241, 171, 84}: {{252, 241, 226}, {250, 227, 198}, {248, 213, 169}, {245, 199, 141}, {243, 185, 112}, {241, 171, 84}},
	{133, 209, 188}: {{234, 247, 243}, {214, 239, 232}, {194, 232, 221}, {173, 224, 210}, {153, 216, 199}, {133, 209, 188}},
	{195, 141, 188}: {{245, 236, 243}, {235, 217, 232}, {225, 198, 221}, {215, 179, 210}, {205, 160, 199}, {195, 141, 188}},
	{243, 217, 116}: {{253, 248, 231}, {251, 242, 208}, {249, 236, 185}, {247, 229, 162}, {245, 223, 139}, {243, 217, 116}},
	{180, 187, 194}: {{242, 243, 244}, {230, 232, 234}, {217, 221, 224}, {205, 209, 214}, {192, 198, 204}, {180, 187, 194}},
	{70, 115, 177}: {{224, 231, 242}, {193, 208, 229}, {162, 185, 216}, {131, 161, 203}, {100, 138, 190}, {70, 115, 177}},
	{42, 165, 143}: {{219, 240, 236}, {184, 225, 217}, {148, 210, 199}, {113, 195, 180}, {77, 180, 161}, {42, 165, 143}},
	{138, 43, 99}: {{235, 219, 229}, {216, 184, 203}, {196, 149, 177}, {177, 113, 151}, {157, 78, 125}, {138, 43, 99}},
	{195, 103, 0}: {{245, 229, 212}, {235, 204, 170}, {225, 179, 127}, {215, 153, 85}, {205, 128, 42}, {195, 103, 0}},
	{133, 78, 130}: {{234, 225, 234}, {214, 196, 213}, {194, 166, 192}, {173, 137, 171}, {153, 107, 150}, {133, 78, 130}},
}

// Shades returns the ColorScale shades of base, lightest first.  Hues outside
// ShadeTable are blended toward white in equal integer steps.
func Shades(base RGB) [ColorScale]RGB {
	if shades, ok := ShadeTable[base]; ok {
		return shades
	}
	var ret [ColorScale]RGB
	for k := 0; k < ColorScale; k++ {
		ret[k] = lighten(base, ColorScale-1-k)
	}
	return ret
}

// lighten moves each channel of c steps/ColorScale of the way to 255,
// rounding down.
func lighten(c RGB, steps int) RGB {
	ch := func(v uint8) uint8 {
		n := int(v)
		return uint8((ColorScale*n + (255-n)*steps) / ColorScale)
	}
	return RGB{R: ch(c.R), G: ch(c.G), B: ch(c.B)}
}

// Shade returns shade idx of base, clamped to the valid shade range.
func Shade(base RGB, idx int) RGB {
	if idx < 0 {
		idx = 0
	}
	if idx >= ColorScale {
		idx = ColorScale - 1
	}
	return Shades(base)[idx]
}
