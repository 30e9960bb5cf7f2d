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
	"sort"
	"testing"

	"github.com/couchbase/docquery/datastore"
	"github.com/couchbase/docquery/value"
)

/*
A scan simulation over an in-memory sorted key list, interpreting the
iterator's hints exactly as a storage engine would: seek to the
target key, or past every key sharing its first r+1 elements when
after() is set.
*/
func simulateScan(t *testing.T, frv *FieldRangeVector, keys []value.Values) (visited []value.Values, seeks int) {
	t.Helper()

	sorted := make([]value.Values, len(keys))
	copy(sorted, keys)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Collate(sorted[j]) < 0
	})

	iter := frv.NewIterator()
	iter.PrepDive()

	if !frv.MatchPossible() {
		if r := iter.Advance(make(value.Values, len(frv.ranges))); r != -2 {
			t.Fatalf("expected -2 on unsatisfiable vector, got %d", r)
		}
		return nil, 0
	}

	pos := seekTo(sorted, frv.StartKey())
	seeks++
	guard := 0
	for pos < len(sorted) {
		if guard++; guard > 10*len(sorted)+100 {
			t.Fatalf("scan failed to terminate")
		}

		curr := sorted[pos]
		r := iter.Advance(curr)
		switch {
		case r == -2:
			return visited, seeks
		case r == -1:
			visited = append(visited, curr)
			pos++
		default:
			target := make(value.Values, len(curr))
			copy(target, curr[:r])
			copy(target[r:], iter.Cmp()[r:])

			var next int
			if iter.After() {
				next = seekPastPrefix(sorted, target[:r+1])
			} else {
				next = seekTo(sorted, target)
			}
			if next <= pos {
				t.Fatalf("seek hint did not advance: pos %d -> %d (curr %v, target %v, after %v)",
					pos, next, curr, target, iter.After())
			}
			pos = next
			seeks++
		}
	}
	return visited, seeks
}

func seekTo(sorted []value.Values, target value.Values) int {
	return sort.Search(len(sorted), func(i int) bool {
		return sorted[i].Collate(target) >= 0
	})
}

func seekPastPrefix(sorted []value.Values, prefix value.Values) int {
	return sort.Search(len(sorted), func(i int) bool {
		return sorted[i][:len(prefix)].Collate(prefix) > 0
	})
}

func gridKeys(as, bs []float64) []value.Values {
	var rv []value.Values
	for _, a := range as {
		for _, b := range bs {
			rv = append(rv, value.Values{value.NewValue(a), value.NewValue(b)})
		}
	}
	return rv
}

func checkScan(t *testing.T, query string, keyPattern datastore.KeyPattern, keys []value.Values) {
	t.Helper()
	frv := vectorFor(t, query, keyPattern, 1)
	visited, _ := simulateScan(t, frv, keys)

	// the scan must visit exactly the matching keys, in order
	var expected []value.Values
	sorted := make([]value.Values, len(keys))
	copy(sorted, keys)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Collate(sorted[j]) < 0 })
	for _, key := range sorted {
		doc := make(map[string]interface{}, len(keyPattern))
		for i, part := range keyPattern {
			doc[part.Field] = key[i]
		}
		if frv.Matches(value.NewValue(doc)) {
			expected = append(expected, key)
		}
	}

	if len(visited) != len(expected) {
		t.Fatalf("%s: visited %d keys, expected %d\nvisited: %v\nexpected: %v",
			query, len(visited), len(expected), visited, expected)
	}
	for i := range visited {
		if visited[i].Collate(expected[i]) != 0 {
			t.Errorf("%s: key %d: visited %v, expected %v", query, i, visited[i], expected[i])
		}
	}
	for i := 1; i < len(visited); i++ {
		if visited[i-1].Collate(visited[i]) >= 0 {
			t.Errorf("%s: scan order not strictly increasing at %d", query, i)
		}
	}
}

func TestIteratorEqualityPlusRange(t *testing.T) {
	keys := gridKeys([]float64{3, 4, 5, 6}, []float64{5, 10, 12, 20, 25})
	checkScan(t, `{"a": 5, "b": {"$gt": 10, "$lte": 20}}`, abPattern, keys)
}

func TestIteratorInTimesIn(t *testing.T) {
	keys := gridKeys([]float64{0, 1, 2, 3, 4}, []float64{5, 10, 15, 20, 25})
	checkScan(t, `{"a": {"$in": [1, 3]}, "b": {"$in": [10, 20]}}`, abPattern, keys)
}

func TestIteratorExclusiveBounds(t *testing.T) {
	keys := gridKeys([]float64{1, 2, 3}, []float64{1, 2, 3, 4, 5})
	checkScan(t, `{"a": {"$gte": 1, "$lte": 3}, "b": {"$gt": 2, "$lt": 4}}`, abPattern, keys)
}

func TestIteratorGaps(t *testing.T) {
	keys := gridKeys([]float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}, []float64{0})
	checkScan(t, `{"a": {"$nin": [3, 6]}}`, datastore.KeyPattern{{Field: "a", Direction: 1}, {Field: "b", Direction: 1}}, keys)
}

func TestIteratorSingleField(t *testing.T) {
	var keys []value.Values
	for i := 0.0; i < 30; i++ {
		keys = append(keys, value.Values{value.NewValue(i)})
	}
	checkScan(t, `{"a": {"$in": [3, 7, 21]}}`, datastore.KeyPattern{{Field: "a", Direction: 1}}, keys)
}

func TestIteratorSkipsGapEfficiently(t *testing.T) {
	// two tight clusters with a wide gap; the scan must jump the gap
	// in one seek instead of visiting every key
	var keys []value.Values
	for i := 0.0; i < 1000; i++ {
		keys = append(keys, value.Values{value.NewValue(i), value.NewValue(0.0)})
	}
	frv := vectorFor(t, `{"a": {"$in": [5, 995]}}`,
		datastore.KeyPattern{{Field: "a", Direction: 1}, {Field: "b", Direction: 1}}, 1)
	visited, seeks := simulateScan(t, frv, keys)

	if len(visited) != 2 {
		t.Fatalf("expected 2 visited keys, got %d", len(visited))
	}
	if seeks > 5 {
		t.Errorf("expected the gap to be skipped in a few seeks, used %d", seeks)
	}
}

func TestIteratorUnsatisfiable(t *testing.T) {
	// scenario: empty range returns -2 on the first advance
	frv := vectorFor(t, `{"a": {"$gt": 10, "$lt": 5}}`,
		datastore.KeyPattern{{Field: "a", Direction: 1}}, 1)
	if frv.MatchPossible() {
		t.Fatalf("expected unsatisfiable vector")
	}

	iter := frv.NewIterator()
	iter.PrepDive()
	if r := iter.Advance(value.Values{value.NewValue(7.0)}); r != -2 {
		t.Errorf("expected -2, got %d", r)
	}
	if iter.Ok() {
		t.Errorf("expected iterator not ok")
	}
}

func TestIteratorHintShape(t *testing.T) {
	frv := vectorFor(t, `{"a": 5, "b": {"$gt": 10, "$lte": 20}}`, abPattern, 1)
	iter := frv.NewIterator()
	iter.PrepDive()

	// sitting on the excluded boundary (5, 10): skip past it
	r := iter.Advance(value.Values{value.NewValue(5.0), value.NewValue(10.0)})
	if r != 1 {
		t.Fatalf("expected hint at position 1, got %d", r)
	}
	if !iter.After() {
		t.Errorf("equality with an exclusive bound must skip past, not to")
	}
	if iter.Cmp()[1].Collate(value.NewValue(10.0)) != 0 {
		t.Errorf("expected cmp[1] == 10, got %s", iter.Cmp()[1])
	}
	if iter.Inc()[1] {
		t.Errorf("expected inc[1] == false")
	}

	// below the b range: seek to its lower bound
	r = iter.Advance(value.Values{value.NewValue(5.0), value.NewValue(3.0)})
	if r != 1 || iter.After() {
		t.Fatalf("expected plain seek hint at position 1, got %d after=%v", r, iter.After())
	}

	// above the whole vector: done
	r = iter.Advance(value.Values{value.NewValue(5.0), value.NewValue(21.0)})
	if r != -2 {
		t.Errorf("expected -2 above all ranges, got %d", r)
	}
}
