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

// Header is a chart header a color can be assigned to: an AttributeHeader,
// an AttributeItem, or a MeasureHeader.
type Header interface {
	// MatchKeys returns the non-empty keys a color mapping may address the
	// header by, most specific first.
	MatchKeys() []string
	isHeader()
}

func nonEmpty(keys ...string) []string {
	ret := make([]string, 0, len(keys))
	for _, key := range keys {
		if key != "" {
			ret = append(ret, key)
		}
	}
	return ret
}

// MatchKeys returns h's local identifier, identifier, URI, and name.
func (h AttributeHeader) MatchKeys() []string {
	return nonEmpty(h.LocalIdentifier, h.Identifier, h.URI, h.Name)
}

// MatchKeys returns i's URI and name.
func (i AttributeItem) MatchKeys() []string {
	return nonEmpty(i.URI, i.Name)
}

// MatchKeys returns h's local identifier, identifier, URI, and name.
func (h MeasureHeader) MatchKeys() []string {
	return nonEmpty(h.LocalIdentifier, h.Identifier, h.URI, h.Name)
}

func (AttributeHeader) isHeader() {}
func (AttributeItem) isHeader()   {}
func (MeasureHeader) isHeader()   {}
