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

// Package testutil provides helpers for testing geoviz responses: comparing
// PropertyUpdates and whole responses, reading properties back out of a
// response, and building geo chart executions (see GeoFixture).
package testutil

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/ilhamster/geoviz/util"
)

// UpdateComparator checks that a set of PropertyUpdates under test annotates
// a datum exactly as a wanted set does.
type UpdateComparator struct {
	got, want []util.PropertyUpdate
}

// NewUpdateComparator returns an UpdateComparator with no updates.
func NewUpdateComparator() *UpdateComparator {
	return &UpdateComparator{}
}

// WithTestUpdates sets the updates under test.
func (uc *UpdateComparator) WithTestUpdates(got ...util.PropertyUpdate) *UpdateComparator {
	uc.got = got
	return uc
}

// WithWantUpdates sets the updates the ones under test should match.
func (uc *UpdateComparator) WithWantUpdates(want ...util.PropertyUpdate) *UpdateComparator {
	uc.want = want
	return uc
}

// Compare applies both sets of updates to sibling datums and compares their
// properties by key and value, so string table order does not matter.  It
// returns a diff message and whether the two differ.
func (uc *UpdateComparator) Compare(t *testing.T) (string, bool) {
	t.Helper()
	drb := util.NewDataResponseBuilder()
	series := drb.DataSeries(&util.DataSeriesRequest{})
	series.Child().With(uc.got...)
	series.Child().With(uc.want...)
	data, err := drb.Data()
	if err != nil {
		t.Fatal(err)
	}
	datums := data.DataSeries[0].Root.Children
	got, want := Properties(data, datums[0]), Properties(data, datums[1])
	if diff := cmp.Diff(want, got); diff != "" {
		return fmt.Sprintf("Got properties %v, diff (-want +got):\n%s", got, diff), true
	}
	return "", false
}

// Series returns data's series named seriesName, or nil.
func Series(data *util.Data, seriesName string) *util.DataSeries {
	for _, series := range data.DataSeries {
		if series.SeriesName == seriesName {
			return series
		}
	}
	return nil
}

// Properties returns d's properties, keyed by name, with prettyprinted values.
func Properties(data *util.Data, d *util.Datum) map[string]string {
	ret := make(map[string]string, len(d.Properties))
	for keyIdx, val := range d.Properties {
		ret[data.StringTable[keyIdx]] = val.PrettyPrint(data.StringTable)
	}
	return ret
}

// ChildValues returns the prettyprinted value of key in each of d's
// children, in order.  Children without key contribute "unset".
func ChildValues(data *util.Data, d *util.Datum, key string) []string {
	ret := make([]string, len(d.Children))
	for idx, child := range d.Children {
		val, ok := Properties(data, child)[key]
		if !ok {
			val = "unset"
		}
		ret[idx] = val
	}
	return ret
}

// TestDataBuilder fluently builds an expected response.
type TestDataBuilder interface {
	With(updates ...util.PropertyUpdate) TestDataBuilder
	Child() TestDataBuilder
	AndChild() TestDataBuilder
	Parent() TestDataBuilder
}

type testDataBuilder struct {
	db     util.DataBuilder
	parent *testDataBuilder
}

func (tdb *testDataBuilder) With(updates ...util.PropertyUpdate) TestDataBuilder {
	tdb.db.With(updates...)
	return tdb
}

// Child returns a builder for a new child of the receiver.
func (tdb *testDataBuilder) Child() TestDataBuilder {
	return &testDataBuilder{db: tdb.db.Child(), parent: tdb}
}

// AndChild returns a builder for a new sibling of the receiver, or for a new
// child if the receiver is a root.
func (tdb *testDataBuilder) AndChild() TestDataBuilder {
	return tdb.Parent().Child()
}

// Parent returns the receiver's parent, or the receiver if it is a root.
func (tdb *testDataBuilder) Parent() TestDataBuilder {
	if tdb.parent == nil {
		return tdb
	}
	return tdb.parent
}

func dataOf(d any) (*util.Data, error) {
	switch v := d.(type) {
	case *util.DataResponseBuilder:
		return v.Data()
	case *util.Data:
		return v, nil
	default:
		return nil, fmt.Errorf("argument must be a *util.DataResponseBuilder or a *util.Data, got %T", d)
	}
}

// CompareDataResponses reports on t any difference between got and want,
// each a *util.DataResponseBuilder or a *util.Data.  It returns an error
// only if either cannot be read.
func CompareDataResponses(t *testing.T, got, want any) error {
	t.Helper()
	gotData, err := dataOf(got)
	if err != nil {
		return err
	}
	wantData, err := dataOf(want)
	if err != nil {
		return err
	}
	if diff := cmp.Diff(wantData.PrettyPrint(), gotData.PrettyPrint()); diff != "" {
		t.Errorf("Got data %s, diff (-want +got) %s", gotData.PrettyPrint(), diff)
	}
	return nil
}

func buildSeries(t *testing.T, build any) *util.DataResponseBuilder {
	t.Helper()
	drb := util.NewDataResponseBuilder()
	series := drb.DataSeries(&util.DataSeriesRequest{})
	switch b := build.(type) {
	case func(util.DataBuilder):
		b(series)
	case func(TestDataBuilder):
		b(&testDataBuilder{db: series})
	default:
		t.Fatalf("expected a func(util.DataBuilder) or func(testutil.TestDataBuilder), got %T", build)
	}
	return drb
}

// CompareResponses compares the single-series responses built by buildGot
// and buildWant, each a func(util.DataBuilder) or a func(TestDataBuilder).
func CompareResponses(t *testing.T, buildGot, buildWant any) error {
	t.Helper()
	return CompareDataResponses(t, buildSeries(t, buildGot), buildSeries(t, buildWant))
}
