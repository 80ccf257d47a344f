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

package label

import (
	"testing"

	testutil "github.com/ilhamster/geoviz/test_util"
	"github.com/ilhamster/geoviz/util"
)

func TestLines(t *testing.T) {
	for _, test := range []struct {
		description string
		lines       []Line
		want        string
	}{{
		description: "none",
		want:        "",
	}, {
		description: "titled and untitled",
		lines: []Line{
			{Key: "location"},
			{Title: "Revenue", Key: "color_value"},
			{Title: "Population", Key: "size_value"},
		},
		want: "$(location)\nRevenue: $(color_value)\nPopulation: $(size_value)",
	}} {
		t.Run(test.description, func(t *testing.T) {
			if got := Lines(test.lines...); got != test.want {
				t.Errorf("Lines() = %q, want %q", got, test.want)
			}
		})
	}
}

func TestFormat(t *testing.T) {
	if msg, failed := testutil.NewUpdateComparator().
		WithTestUpdates(Format("City: $(location)")).
		WithWantUpdates(util.StringProperty(labelFormatKey, "City: $(location)")).
		Compare(t); failed {
		t.Fatal(msg)
	}
}
