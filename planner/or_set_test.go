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
	"github.com/couchbase/docquery/value"
)

var aPattern = datastore.KeyPattern{{Field: "a", Direction: 1}}

func TestOrSetLifecycle(t *testing.T) {
	ors := NewFieldRangeOrSet("test.or",
		mustValue(t, `{"$or": [{"a": {"$lt": 5}}, {"a": {"$lt": 10}}]}`))

	if ors.OrFinished() {
		t.Fatalf("two clauses pending, not finished")
	}
	if !ors.MoreOrClauses() {
		t.Fatalf("expected more clauses")
	}

	ors.PopOrClause(aPattern)
	if ors.OrFinished() || !ors.MoreOrClauses() {
		t.Fatalf("one clause should remain")
	}

	ors.PopOrClause(aPattern)
	if !ors.OrFinished() || ors.MoreOrClauses() {
		t.Errorf("expected finished after both pops")
	}
}

func TestOrSetSubtraction(t *testing.T) {
	// scenario: the second clause is refined by what the first scan
	// already covered
	ors := NewFieldRangeOrSet("test.or",
		mustValue(t, `{"$or": [{"a": {"$lt": 5}}, {"a": {"$lt": 10}}]}`))
	ors.PopOrClause(aPattern)

	frs := ors.TopFrs()
	fr := frs.Range("a")
	intervals := fr.Intervals()
	if len(intervals) != 1 {
		t.Fatalf("expected one refined interval, got %d", len(intervals))
	}
	// inclusivity of 5 flipped because the original was exclusive
	if !intervals[0].Lower.Inclusive || intervals[0].Lower.Bound.Collate(value.NewValue(5.0)) != 0 {
		t.Errorf("expected refined lower bound [5, got %v", intervals[0].Lower)
	}
	if intervals[0].Upper.Inclusive || intervals[0].Upper.Bound.Collate(value.NewValue(10.0)) != 0 {
		t.Errorf("expected refined upper bound 10), got %v", intervals[0].Upper)
	}
}

func TestOrSetCoveredClauseDropped(t *testing.T) {
	// the second clause is entirely covered by the first
	ors := NewFieldRangeOrSet("test.or",
		mustValue(t, `{"$or": [{"a": {"$lt": 10}}, {"a": {"$lt": 5}}, {"a": {"$gt": 20}}]}`))
	ors.PopOrClause(aPattern)

	// {a < 5} was subsumed and dropped; {a > 20} remains
	if !ors.MoreOrClauses() {
		t.Fatalf("expected a remaining clause")
	}
	fr := ors.TopFrs().Range("a")
	if fr.Min().Collate(value.NewValue(20.0)) != 0 {
		t.Errorf("expected the covered clause to be dropped, top is %v", fr.Intervals())
	}
}

func TestOrSetBaseConjunction(t *testing.T) {
	ors := NewFieldRangeOrSet("test.or",
		mustValue(t, `{"k": 7, "$or": [{"a": {"$lt": 5}}, {"b": 1}]}`))

	frs := ors.TopFrs()
	if !frs.Range("k").Equality() {
		t.Errorf("base conjunction must apply to every clause")
	}
	if !frs.Range("a").Nontrivial() {
		t.Errorf("current clause bounds must apply")
	}

	orig := ors.TopFrsOriginal()
	if !orig.Range("k").Equality() || !orig.Range("a").Nontrivial() {
		t.Errorf("original clause bounds must apply")
	}
}

func TestOrSetWithoutOr(t *testing.T) {
	ors := NewFieldRangeOrSet("test.or", mustValue(t, `{"a": 1}`))
	if ors.OrFinished() {
		t.Errorf("orFinished requires an $or to have been seen")
	}
	if ors.MoreOrClauses() {
		t.Errorf("no clauses expected")
	}
}

func TestOrSetAllClausesSimplified(t *testing.T) {
	ors := NewFieldRangeOrSet("test.or",
		mustValue(t, `{"$or": [{"a": {"$gt": 1, "$lt": 3}}, {"b": 4}]}`))

	simplified := ors.AllClausesSimplified()
	if len(simplified) != 2 {
		t.Fatalf("expected 2 simplified clauses, got %d", len(simplified))
	}
	if simplified[0].String() != `{"a":{"$gt":1,"$lt":3}}` {
		t.Errorf("unexpected first clause: %s", simplified[0])
	}
	if simplified[1].String() != `{"b":4}` {
		t.Errorf("unexpected second clause: %s", simplified[1])
	}
}
