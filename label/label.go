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

// Package label supports labeling renderable items, such as the tooltips of
// pushpins.
package label

import (
	"fmt"
	"strings"

	"github.com/ilhamster/geoviz/util"
)

const (
	// labelFormatKey specifies the label format string used to label items.
	labelFormatKey = "label_format"
)

// Format returns a PropertyUpdate that labels with the provided label format.
// In a label format, `$(key)` stands for the labeled item's property `key`.
func Format(labelFormat string) util.PropertyUpdate {
	return util.StringProperty(labelFormatKey, labelFormat)
}

// Line is one line of a multi-line label: a title and the key of the property
// shown after it.
type Line struct {
	Title, Key string
}

// Lines returns a label format showing each of lines on its own line, as
// `Title: $(Key)`.  Lines without a title show only the property.
func Lines(lines ...Line) string {
	ret := make([]string, len(lines))
	for idx, line := range lines {
		ref := fmt.Sprintf("$(%s)", line.Key)
		if line.Title == "" {
			ret[idx] = ref
			continue
		}
		ret[idx] = line.Title + ": " + ref
	}
	return strings.Join(ret, "\n")
}
