//  Copyright (c) 2014 Couchbase, Inc.
//  Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file
//  except in compliance with the License. You may obtain a copy of the License at
//    http://www.apache.org/licenses/LICENSE-2.0
//  Unless required by applicable law or agreed to in writing, software distributed under the
//  License is distributed on an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND,
//  either express or implied. See the License for the specific language governing permissions
//  and limitations under the License.

package planner

import (
	"testing"

	"github.com/couchbase/docquery/datastore"
	"github.com/couchbase/docquery/errors"
	"github.com/couchbase/docquery/value"
)

func vectorFor(t *testing.T, query string, keyPattern datastore.KeyPattern, direction int) *FieldRangeVector {
	t.Helper()
	frs := NewFieldRangeSet("test.vector", mustValue(t, query))
	frv, err := NewFieldRangeVector(frs, datastore.IndexSpec{Name: "ix", KeyPattern: keyPattern}, direction)
	if err != nil {
		t.Fatalf("unexpected vector error: %v", err)
	}
	return frv
}

var abPattern = datastore.KeyPattern{{Field: "a", Direction: 1}, {Field: "b", Direction: 1}}

func TestVectorStartEndKeys(t *testing.T) {
	// scenario: equality plus range
	frv := vectorFor(t, `{"a": 5, "b": {"$gt": 10, "$lte": 20}}`, abPattern, 1)

	expectKey(t, frv.StartKey(), 5.0, 10.0)
	expectKey(t, frv.EndKey(), 5.0, 20.0)
	if frv.Size() != 1 {
		t.Errorf("expected a single leg, got %d", frv.Size())
	}
}

func TestVectorInExplosion(t *testing.T) {
	// scenario: $in times $in
	frv := vectorFor(t, `{"a": {"$in": [1, 2, 3]}, "b": {"$in": [10, 20]}}`, abPattern, 1)

	if frv.Size() != 6 {
		t.Fatalf("expected 6 legs, got %d", frv.Size())
	}

	expected := [][2]float64{
		{1, 10}, {1, 20}, {2, 10}, {2, 20}, {3, 10}, {3, 20},
	}
	iter := frv.NewIterator()
	iter.PrepDive()
	for i, box := range expected {
		expectKey(t, iter.StartKey(), box[0], box[1])
		expectKey(t, iter.EndKey(), box[0], box[1])
		if i < len(expected)-1 && !iter.AdvanceBox() {
			t.Fatalf("iterator exhausted early at box %d", i)
		}
	}
	if iter.AdvanceBox() {
		t.Errorf("expected exhaustion after the last box")
	}
}

func TestVectorCombinatorialLimit(t *testing.T) {
	// 100^3 = 1e6 legs breaches the cap
	in := make([]interface{}, 100)
	for i := range in {
		in[i] = float64(i)
	}
	query := value.NewValue(map[string]interface{}{
		"a": map[string]interface{}{"$in": in},
		"b": map[string]interface{}{"$in": in},
		"c": map[string]interface{}{"$in": in},
	})

	frs := NewFieldRangeSet("test.vector", query)
	_, err := NewFieldRangeVector(frs, datastore.IndexSpec{Name: "ix", KeyPattern: datastore.KeyPattern{
		{Field: "a", Direction: 1}, {Field: "b", Direction: 1}, {Field: "c", Direction: 1},
	}}, 1)

	if err == nil {
		t.Fatalf("expected combinatorial limit error")
	}
	if err.Code() != errors.E_PLAN_COMBINATORIAL_LIMIT {
		t.Errorf("expected code %d, got %d", errors.E_PLAN_COMBINATORIAL_LIMIT, err.Code())
	}
}

func TestVectorReverseDirection(t *testing.T) {
	// scenario: reverse traversal swaps bounds verbatim
	frv := vectorFor(t, `{"a": {"$gte": 1, "$lte": 3}}`,
		datastore.KeyPattern{{Field: "a", Direction: 1}}, -1)

	expectKey(t, frv.StartKey(), 3.0)
	expectKey(t, frv.EndKey(), 1.0)

	intervals := frv.ranges[0].Intervals()
	if len(intervals) != 1 {
		t.Fatalf("expected one reversed interval")
	}
	if !intervals[0].Lower.Inclusive || !intervals[0].Upper.Inclusive {
		t.Errorf("inclusivity flags must ride along verbatim")
	}
}

func TestVectorMatches(t *testing.T) {
	frv := vectorFor(t, `{"a": {"$gte": 1, "$lte": 3}, "b": {"$in": [10, 20]}}`, abPattern, 1)

	var tests = []struct {
		doc     string
		matches bool
	}{
		{`{"a": 2, "b": 10}`, true},
		{`{"a": 1, "b": 20}`, true},
		{`{"a": 0, "b": 10}`, false},
		{`{"a": 2, "b": 15}`, false},
		{`{"a": 4, "b": 10}`, false},
		// multikey: any array element may satisfy the range
		{`{"a": [0, 2, 7], "b": 10}`, true},
		{`{"a": [0, 7], "b": 10}`, false},
	}

	for _, test := range tests {
		doc := mustValue(t, test.doc)
		if frv.Matches(doc) != test.matches {
			t.Errorf("matches(%s): expected %v", test.doc, test.matches)
		}
	}
}

// Match/scan coherence: matches(doc) iff the document's index key
// falls inside one of the vector's Cartesian boxes.
func TestVectorMatchScanCoherence(t *testing.T) {
	frv := vectorFor(t, `{"a": {"$in": [1, 3]}, "b": {"$gt": 5, "$lte": 8}}`, abPattern, 1)

	for a := 0.0; a <= 4; a++ {
		for b := 4.0; b <= 9; b++ {
			doc := value.NewValue(map[string]interface{}{"a": a, "b": b})
			inBox := (a == 1 || a == 3) && b > 5 && b <= 8
			if frv.Matches(doc) != inBox {
				t.Errorf("matches({a:%v, b:%v}) = %v, expected %v", a, b, frv.Matches(doc), inBox)
			}
		}
	}
}

func TestVectorObj(t *testing.T) {
	frv := vectorFor(t, `{"a": {"$in": [1, 2]}}`,
		datastore.KeyPattern{{Field: "a", Direction: 1}}, 1)

	expected := `{"a":[[1,1],[2,2]]}`
	if got := frv.Obj().String(); got != expected {
		t.Errorf("obj dump mismatch: expected %s, got %s", expected, got)
	}
}

func TestVectorMissingFieldIndexedAsNull(t *testing.T) {
	frv := vectorFor(t, `{"a": null}`,
		datastore.KeyPattern{{Field: "a", Direction: 1}}, 1)

	if !frv.Matches(mustValue(t, `{"b": 1}`)) {
		t.Errorf("a document without the field must match a null equality")
	}
}
