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

// Hard cap on the product of interval counts across all key fields;
// beyond this, enumerating scan legs costs more than scanning.
const _MAX_RANGE_PRODUCT = 1000000

/*
An ordered list of FieldRanges aligned with an index key pattern,
corresponding to valid index keys for a given index spec. Fields
whose index direction runs against the scan direction carry their
range reversed.
*/
type FieldRangeVector struct {
	ranges    []*FieldRange
	forward   []bool
	indexSpec datastore.IndexSpec
	direction int
	queries   value.Values
}

/*
NewFieldRangeVector binds a FieldRangeSet to one index and scan
direction. Construction fails only when the Cartesian product of
interval counts reaches the partitioning limit.
*/
func NewFieldRangeVector(frs *FieldRangeSet, indexSpec datastore.IndexSpec, direction int) (
	*FieldRangeVector, errors.Error) {

	rv := &FieldRangeVector{
		indexSpec: indexSpec,
		direction: 1,
		queries:   frs.queries,
	}
	if direction < 0 {
		rv.direction = -1
	}

	for _, part := range indexSpec.KeyPattern {
		forward := partForward(part.Direction, direction)
		rv.forward = append(rv.forward, forward)
		if forward {
			rv.ranges = append(rv.ranges, frs.Range(part.Field).Copy())
		} else {
			reversed := newEmptyFieldRange()
			frs.Range(part.Field).Reverse(reversed)
			rv.ranges = append(rv.ranges, reversed)
		}
	}

	if rv.Size() >= _MAX_RANGE_PRODUCT {
		return nil, errors.NewCombinatorialLimitError(rv.Size())
	}

	return rv, nil
}

/*
The number of index ranges represented by this vector.
*/
func (this *FieldRangeVector) Size() int64 {
	size := int64(1)
	for _, fr := range this.ranges {
		size *= int64(len(fr.Intervals()))
	}
	return size
}

func (this *FieldRangeVector) Direction() int {
	return this.direction
}

/*
False iff some field admits no values at all; StartKey and EndKey are
only defined when a match is possible.
*/
func (this *FieldRangeVector) MatchPossible() bool {
	for _, fr := range this.ranges {
		if fr.Empty() {
			return false
		}
	}
	return true
}

func (this *FieldRangeVector) IndexSpec() datastore.IndexSpec {
	return this.indexSpec
}

/*
Starting point for an index traversal.
*/
func (this *FieldRangeVector) StartKey() value.Values {
	rv := make(value.Values, 0, len(this.ranges))
	for _, fr := range this.ranges {
		intervals := fr.Intervals()
		rv = append(rv, intervals[0].Lower.Bound)
	}
	return rv
}

/*
End point for an index traversal.
*/
func (this *FieldRangeVector) EndKey() value.Values {
	rv := make(value.Values, 0, len(this.ranges))
	for _, fr := range this.ranges {
		intervals := fr.Intervals()
		rv = append(rv, intervals[len(intervals)-1].Upper.Bound)
	}
	return rv
}

/*
A client readable representation of this vector:
{field: [[lo, hi], [lo, hi], ...], ...}
*/
func (this *FieldRangeVector) Obj() value.Value {
	rv := make(map[string]interface{}, len(this.ranges))
	for i, part := range this.indexSpec.KeyPattern {
		intervals := this.ranges[i].Intervals()
		pairs := make([]interface{}, 0, len(intervals))
		for j := range intervals {
			pairs = append(pairs, []interface{}{
				intervals[j].Lower.Bound, intervals[j].Upper.Bound,
			})
		}
		rv[part.Field] = pairs
	}
	return value.NewValue(rv)
}

/*
True iff the provided document matches valid ranges on all of this
vector's fields, which is the case iff this document would be
returned while scanning the index corresponding to this vector. Used
for $or clause deduping.
*/
func (this *FieldRangeVector) Matches(doc value.Value) bool {
	for i, part := range this.indexSpec.KeyPattern {
		e, ok := doc.Field(part.Field)
		if !ok {
			// a missing field is indexed as null
			e = value.NULL_VALUE
		}

		if e.Type() == value.ARRAY {
			// multikey: any element may satisfy the range
			matched := false
			for j := 0; ; j++ {
				el, ok := e.Index(j)
				if !ok {
					break
				}
				if this.matchesElement(el, i) {
					matched = true
					break
				}
			}
			if !matched {
				return false
			}
			continue
		}

		if !this.matchesElement(e, i) {
			return false
		}
	}
	return true
}

func (this *FieldRangeVector) matchesElement(e value.Value, i int) bool {
	l, _ := this.matchingLowElement(e, i)
	return l%2 == 0
}

/*
Binary search for e over the flattened bound list of field i's
intervals, in scan order. The returned index is even when e lands
inside interval index/2, odd when e falls in the gap just above
bound index (the upper bound of interval index/2; -1 means below
every interval). lowEquality reports that e compared equal to some interval's
lower bound.
*/
func (this *FieldRangeVector) matchingLowElement(e value.Value, i int) (int, bool) {
	lowEquality := false
	l := -1
	h := len(this.ranges[i].Intervals()) * 2
	for l+1 < h {
		m := (l + h) / 2
		interval := &this.ranges[i].Intervals()[m/2]
		var toCmp FieldBound
		if m%2 == 0 {
			toCmp = interval.Lower
		} else {
			toCmp = interval.Upper
		}

		cmp := toCmp.Bound.Collate(e)
		if !this.forward[i] {
			cmp = -cmp
		}
		if cmp < 0 {
			l = m
		} else if cmp > 0 {
			h = m
		} else {
			if m%2 == 0 {
				lowEquality = true
			}
			ret := m
			// an exclusive lower match sits below its interval; an
			// inclusive upper match sits inside it
			if (m%2 == 0 && !toCmp.Inclusive) || (m%2 == 1 && toCmp.Inclusive) {
				ret--
			}
			return ret, lowEquality
		}
	}
	return l, lowEquality
}
