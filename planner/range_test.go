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

	"github.com/couchbase/docquery/value"
)

func mustValue(t *testing.T, body string) value.Value {
	t.Helper()
	v, err := value.FromJSON([]byte(body))
	if err != nil {
		t.Fatalf("bad fixture %s: %v", body, err)
	}
	return v
}

func rangeFor(t *testing.T, query, field string) *FieldRange {
	t.Helper()
	frs := NewFieldRangeSet("test.ranges", mustValue(t, query))
	return frs.Range(field)
}

// every test range fixture keyed by a short name
func rangeFixtures(t *testing.T) map[string]*FieldRange {
	t.Helper()
	return map[string]*FieldRange{
		"eq":       rangeFor(t, `{"a": 5}`, "a"),
		"gt":       rangeFor(t, `{"a": {"$gt": 5}}`, "a"),
		"lte":      rangeFor(t, `{"a": {"$lte": 9}}`, "a"),
		"between":  rangeFor(t, `{"a": {"$gt": 1, "$lt": 10}}`, "a"),
		"in":       rangeFor(t, `{"a": {"$in": [1, 2, 3]}}`, "a"),
		"ne":       rangeFor(t, `{"a": {"$ne": 7}}`, "a"),
		"nin":      rangeFor(t, `{"a": {"$nin": [2, 4]}}`, "a"),
		"trivial":  newTrivialFieldRange(),
		"empty":    rangeFor(t, `{"a": {"$gt": 10, "$lt": 5}}`, "a"),
		"interval": rangeFor(t, `{"a": {"$gte": 2, "$lte": 6}}`, "a"),
	}
}

func checkNormalized(t *testing.T, name string, fr *FieldRange) {
	t.Helper()
	intervals := fr.Intervals()
	for i := range intervals {
		if !intervals[i].StrictValid() {
			t.Errorf("%s: interval %d not strictly valid", name, i)
		}
		if i == 0 {
			continue
		}
		prev := intervals[i-1]
		cmp := intervals[i].Lower.Bound.Collate(prev.Upper.Bound)
		if cmp < 0 {
			t.Errorf("%s: intervals %d and %d out of order or overlapping", name, i-1, i)
		}
		if cmp == 0 && (intervals[i].Lower.Inclusive || prev.Upper.Inclusive) {
			t.Errorf("%s: intervals %d and %d are mergeable", name, i-1, i)
		}
	}
}

func TestRangeConstruction(t *testing.T) {
	var tests = []struct {
		query     string
		intervals int
		equality  bool
		inQuery   bool
	}{
		{`{"a": 5}`, 1, true, true},
		{`{"a": {"$lt": 5}}`, 1, false, false},
		{`{"a": {"$gte": 5}}`, 1, false, false},
		{`{"a": {"$ne": 5}}`, 2, false, false},
		{`{"a": {"$in": [3, 1, 2, 1]}}`, 3, false, true},
		{`{"a": {"$gt": 10, "$lt": 5}}`, 0, false, false},
		{`{"a": {"$mod": [2, 0]}}`, 1, false, false},
	}

	for _, test := range tests {
		fr := rangeFor(t, test.query, "a")
		checkNormalized(t, test.query, fr)
		if len(fr.Intervals()) != test.intervals {
			t.Errorf("%s: expected %d intervals, got %d", test.query, test.intervals, len(fr.Intervals()))
		}
		if fr.Equality() != test.equality {
			t.Errorf("%s: expected equality %v", test.query, test.equality)
		}
		if !fr.Empty() && fr.InQuery() != test.inQuery {
			t.Errorf("%s: expected inQuery %v", test.query, test.inQuery)
		}
	}
}

func TestRangeBounds(t *testing.T) {
	fr := rangeFor(t, `{"a": {"$gt": 10, "$lte": 20}}`, "a")
	if fr.Min().Collate(value.NewValue(10.0)) != 0 || fr.MinInclusive() {
		t.Errorf("expected exclusive lower bound 10, got %s inclusive=%v", fr.Min(), fr.MinInclusive())
	}
	if fr.Max().Collate(value.NewValue(20.0)) != 0 || !fr.MaxInclusive() {
		t.Errorf("expected inclusive upper bound 20, got %s inclusive=%v", fr.Max(), fr.MaxInclusive())
	}
	if !fr.Nontrivial() {
		t.Errorf("expected nontrivial range")
	}
	if newTrivialFieldRange().Nontrivial() {
		t.Errorf("trivial range reported nontrivial")
	}
}

func TestRangeIdempotence(t *testing.T) {
	for name, fr := range rangeFixtures(t) {
		if got := fr.Copy().Intersect(fr); !got.Equals(fr) {
			t.Errorf("%s: r & r != r", name)
		}
		if got := fr.Copy().Union(fr); !got.Equals(fr) {
			t.Errorf("%s: r | r != r", name)
		}
		if got := fr.Copy().Difference(fr); !got.Empty() {
			t.Errorf("%s: r - r not empty", name)
		}
		if got := fr.Copy().Intersect(newTrivialFieldRange()); !got.Equals(fr) {
			t.Errorf("%s: r & universal != r", name)
		}
		if got := fr.Copy().Union(newEmptyFieldRange()); !got.Equals(fr) {
			t.Errorf("%s: r | empty != r", name)
		}
	}
}

func TestRangeCommutativityAndAssociativity(t *testing.T) {
	fixtures := rangeFixtures(t)
	names := []string{"eq", "gt", "lte", "between", "in", "ne", "nin", "trivial", "empty"}

	for _, an := range names {
		for _, bn := range names {
			a, b := fixtures[an], fixtures[bn]
			ab := a.Copy().Intersect(b)
			ba := b.Copy().Intersect(a)
			if !ab.Equals(ba) {
				t.Errorf("%s & %s not commutative", an, bn)
			}
			abU := a.Copy().Union(b)
			baU := b.Copy().Union(a)
			if !abU.Equals(baU) {
				t.Errorf("%s | %s not commutative", an, bn)
			}
			checkNormalized(t, an+"&"+bn, ab)
			checkNormalized(t, an+"|"+bn, abU)

			for _, cn := range []string{"between", "in", "gt"} {
				c := fixtures[cn]
				left := a.Copy().Intersect(b).Intersect(c)
				right := a.Copy().Intersect(b.Copy().Intersect(c))
				if !left.Equals(right) {
					t.Errorf("(%s & %s) & %s != %s & (%s & %s)", an, bn, cn, an, bn, cn)
				}
			}
		}
	}
}

func TestRangeComplement(t *testing.T) {
	fixtures := rangeFixtures(t)
	for _, name := range []string{"eq", "gt", "lte", "between", "in", "ne", "nin", "empty"} {
		fr := fixtures[name]
		not := negateRange(fr.Copy())
		checkNormalized(t, "not "+name, not)

		union := fr.Copy().Union(not)
		if union.Nontrivial() {
			t.Errorf("%s | not(%s) != universal: %v", name, name, union.Intervals())
		}
		intersection := fr.Copy().Intersect(not)
		if !intersection.Empty() {
			t.Errorf("%s & not(%s) != empty: %v", name, name, intersection.Intervals())
		}
	}
}

func TestNegateEmptySet(t *testing.T) {
	// $in over an empty set matches nothing
	if !rangeFor(t, `{"a": {"$in": []}}`, "a").Empty() {
		t.Errorf("$in [] should match nothing")
	}

	// excluding nothing excludes nothing: $nin [] admits every value
	fr := rangeFor(t, `{"a": {"$nin": []}}`, "a")
	if fr.Empty() || fr.Nontrivial() {
		t.Errorf("$nin [] should be the universal range, got %v", fr.Intervals())
	}

	// the universal range still passes through negation unchanged
	triv := negateRange(newTrivialFieldRange())
	if triv.Empty() || triv.Nontrivial() {
		t.Errorf("negated trivial range should stay trivial, got %v", triv.Intervals())
	}
}

func TestRangeSubsetConsistency(t *testing.T) {
	fixtures := rangeFixtures(t)
	names := []string{"eq", "gt", "lte", "between", "in", "ne", "nin", "trivial", "empty", "interval"}

	for _, an := range names {
		for _, bn := range names {
			a, b := fixtures[an], fixtures[bn]
			subset := a.SubsetOf(b)
			viaIntersect := a.Copy().Intersect(b).Equals(a)
			viaDifference := a.Copy().Difference(b).Empty()
			if subset != viaIntersect || subset != viaDifference {
				t.Errorf("%s <= %s inconsistent: subset=%v intersect=%v difference=%v",
					an, bn, subset, viaIntersect, viaDifference)
			}
		}
	}

	if !rangeFor(t, `{"a": {"$gte": 2, "$lte": 6}}`, "a").SubsetOf(rangeFor(t, `{"a": {"$gt": 1, "$lt": 10}}`, "a")) {
		t.Errorf("[2,6] should be a subset of (1,10)")
	}
	if rangeFor(t, `{"a": {"$gte": 1, "$lte": 6}}`, "a").SubsetOf(rangeFor(t, `{"a": {"$gt": 1, "$lt": 10}}`, "a")) {
		t.Errorf("[1,6] should not be a subset of (1,10)")
	}
}

func TestRangeReverseInvolution(t *testing.T) {
	fixtures := rangeFixtures(t)
	for _, name := range []string{"eq", "gt", "between", "in", "nin", "trivial"} {
		fr := fixtures[name]
		reversed := newEmptyFieldRange()
		fr.Reverse(reversed)
		back := newEmptyFieldRange()
		reversed.Reverse(back)

		if len(back.Intervals()) != len(fr.Intervals()) {
			t.Fatalf("%s: reverse(reverse(r)) interval count changed", name)
		}
		for i := range fr.Intervals() {
			if !fr.Intervals()[i].Equals(back.Intervals()[i]) {
				t.Errorf("%s: interval %d altered by double reverse", name, i)
			}
		}
	}
}

func TestRangeReverseShape(t *testing.T) {
	fr := rangeFor(t, `{"a": {"$in": [1, 2]}}`, "a")
	reversed := newEmptyFieldRange()
	fr.Reverse(reversed)

	intervals := reversed.Intervals()
	if len(intervals) != 2 {
		t.Fatalf("expected 2 reversed intervals, got %d", len(intervals))
	}
	if intervals[0].Lower.Bound.Collate(value.NewValue(2.0)) != 0 ||
		intervals[1].Lower.Bound.Collate(value.NewValue(1.0)) != 0 {
		t.Errorf("reversed intervals not in descending order: %v", intervals)
	}
}

func TestRangeReverseSpecialPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Errorf("expected panic reversing a special range")
		}
	}()
	fr := newSargSpecial("2d")
	fr.Reverse(newEmptyFieldRange())
}

func TestSetExclusiveBounds(t *testing.T) {
	fr := rangeFor(t, `{"a": {"$gte": 2, "$lte": 6}}`, "a")
	fr.SetExclusiveBounds()
	if fr.MinInclusive() || fr.MaxInclusive() {
		t.Errorf("bounds still inclusive after SetExclusiveBounds")
	}

	// a point interval becomes strictly invalid and is dropped
	point := rangeFor(t, `{"a": 5}`, "a")
	point.SetExclusiveBounds()
	if !point.Empty() {
		t.Errorf("exclusive point interval should normalize away")
	}
}

func TestRangeDifferenceSplitting(t *testing.T) {
	fr := rangeFor(t, `{"a": {"$gte": 0, "$lte": 10}}`, "a")
	mid := rangeFor(t, `{"a": {"$gt": 3, "$lt": 7}}`, "a")
	fr.Difference(mid)

	intervals := fr.Intervals()
	if len(intervals) != 2 {
		t.Fatalf("expected a split into 2 intervals, got %d", len(intervals))
	}
	if !intervals[0].Upper.Inclusive || intervals[0].Upper.Bound.Collate(value.NewValue(3.0)) != 0 {
		t.Errorf("lower piece should end inclusively at 3: %v", intervals[0])
	}
	if !intervals[1].Lower.Inclusive || intervals[1].Lower.Bound.Collate(value.NewValue(7.0)) != 0 {
		t.Errorf("upper piece should start inclusively at 7: %v", intervals[1])
	}
}

func TestRangeDifferenceFlipsInclusivity(t *testing.T) {
	// [MIN, 10) minus [MIN, 5) leaves [5, 10)
	fr := rangeFor(t, `{"a": {"$lt": 10}}`, "a")
	fr.Difference(rangeFor(t, `{"a": {"$lt": 5}}`, "a"))

	intervals := fr.Intervals()
	if len(intervals) != 1 {
		t.Fatalf("expected a single interval, got %d", len(intervals))
	}
	if !intervals[0].Lower.Inclusive || intervals[0].Lower.Bound.Collate(value.NewValue(5.0)) != 0 {
		t.Errorf("expected inclusive lower bound 5, got %v", intervals[0].Lower)
	}
	if intervals[0].Upper.Inclusive || intervals[0].Upper.Bound.Collate(value.NewValue(10.0)) != 0 {
		t.Errorf("expected exclusive upper bound 10, got %v", intervals[0].Upper)
	}
}

func TestFieldBoundFlipInclusive(t *testing.T) {
	b := FieldBound{Bound: value.NewValue(5.0), Inclusive: true}
	b.FlipInclusive()
	if b.Inclusive {
		t.Errorf("expected exclusive after flip")
	}
	b.FlipInclusive()
	if !b.Inclusive {
		t.Errorf("expected inclusive after double flip")
	}
}

func TestIntervalEqualityCache(t *testing.T) {
	iv := NewPointInterval(value.NewValue(5.0))
	if !iv.Equality() {
		t.Fatalf("point interval must be an equality")
	}

	// mutation must invalidate the cached result
	iv.Upper = FieldBound{Bound: value.NewValue(9.0), Inclusive: true}
	iv.clearEqualityCache()
	if iv.Equality() {
		t.Errorf("widened interval must not report equality")
	}
	if !iv.StrictValid() {
		t.Errorf("widened interval must stay strictly valid")
	}
}

func TestRangeObjDataPropagation(t *testing.T) {
	a := rangeFor(t, `{"a": {"$gt": 1}}`, "a")
	b := rangeFor(t, `{"a": {"$lt": 10}}`, "a")
	if len(a.objData) == 0 || len(b.objData) == 0 {
		t.Fatalf("constructed ranges must own their backing documents")
	}

	before := len(a.objData)
	a.Intersect(b)
	if len(a.objData) <= before {
		t.Errorf("intersection must append the other operand's backing documents")
	}
}
