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
	"github.com/couchbase/docquery/datastore"
	"github.com/couchbase/docquery/errors"
	"github.com/couchbase/docquery/value"
)

/*
As the executor iterates through $or clauses this class generates a
FieldRangeSet for the current clause, in some cases by excluding
ranges that were scanned for a previous clause.
*/
type FieldRangeOrSet struct {
	baseSet        *FieldRangeSet
	orSets         []*FieldRangeSet
	originalOrSets []*FieldRangeSet
	oldOrSets      []*FieldRangeSet // keep retired clauses owned
	orFound        bool
}

func NewFieldRangeOrSet(ns string, query value.Value) *FieldRangeOrSet {
	rv := &FieldRangeOrSet{
		baseSet: NewFieldRangeSet(ns, query),
	}

	clauses, ok := query.Field("$or")
	if !ok || clauses.Type() != value.ARRAY {
		return rv
	}

	for i := 0; ; i++ {
		clause, ok := clauses.Index(i)
		if !ok {
			break
		}
		if clause.Type() != value.OBJECT {
			// a malformed clause disables $or planning; the matcher
			// still evaluates the original predicate
			rv.orSets = nil
			rv.originalOrSets = nil
			return rv
		}
		rv.orSets = append(rv.orSets, NewFieldRangeSet(ns, clause))
		rv.originalOrSets = append(rv.originalOrSets, NewFieldRangeSet(ns, clause))
	}

	rv.orFound = len(rv.orSets) > 0
	return rv
}

/*
True iff we are done scanning $or clauses.
*/
func (this *FieldRangeOrSet) OrFinished() bool {
	return this.orFound && len(this.orSets) == 0
}

func (this *FieldRangeOrSet) MoreOrClauses() bool {
	return len(this.orSets) > 0
}

func (this *FieldRangeOrSet) GetSpecial() string {
	return this.baseSet.GetSpecial()
}

/*
Iterates to the next $or clause by removing the current one. When a
key pattern is supplied, the finished clause's bounds are first
projected onto the index and then subtracted from each remaining
clause, so the next scan skips already-visited keys. The original,
looser bounds are used for the subtraction: they are composed of
fewer ranges and the approximation stays conservative.
*/
func (this *FieldRangeOrSet) PopOrClause(keyPattern datastore.KeyPattern) {
	if len(this.orSets) == 0 {
		panic(errors.NewRangeInvariantError("no or clause to pop"))
	}

	toDiff := this.originalOrSets[0]
	if toDiff.MatchPossible() && keyPattern != nil {
		toDiff = toDiff.Subset(keyPattern.Fields())
	}

	keptRefined := this.orSets[:1]
	keptOriginal := this.originalOrSets[:1]
	for k := 1; k < len(this.orSets); k++ {
		refined := this.orSets[k]
		refined.Subtract(toDiff)
		if refined.MatchPossible() {
			keptRefined = append(keptRefined, refined)
			keptOriginal = append(keptOriginal, this.originalOrSets[k])
		}
	}

	this.oldOrSets = append(this.oldOrSets, keptRefined[0])
	this.orSets = keptRefined[1:]
	this.originalOrSets = keptOriginal[1:]
}

/*
FieldRangeSet for the current $or clause: the conjunction outside the
$or intersected with the clause's refined bounds.
*/
func (this *FieldRangeOrSet) TopFrs() *FieldRangeSet {
	rv := this.baseSet.Copy()
	if len(this.orSets) > 0 {
		rv.Intersect(this.orSets[0])
	}
	return rv
}

/*
Original FieldRangeSet for the current $or clause. While the original
bounds are looser, they are composed of fewer ranges and it is faster
to do operations with them; when they can be used instead of more
precise bounds, they should.
*/
func (this *FieldRangeOrSet) TopFrsOriginal() *FieldRangeSet {
	rv := this.baseSet.Copy()
	if len(this.originalOrSets) > 0 {
		rv.Intersect(this.originalOrSets[0])
	}
	return rv
}

/*
Simplified queries for all clauses that can still match.
*/
func (this *FieldRangeOrSet) AllClausesSimplified() []value.Value {
	rv := make([]value.Value, 0, len(this.orSets))
	for _, frs := range this.orSets {
		if frs.MatchPossible() {
			rv = append(rv, frs.SimplifiedQuery(nil))
		}
	}
	return rv
}
