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
	"github.com/couchbase/docquery/value"
)

/*
Iterator walks an ordered representation of keys to find those that
match its FieldRangeVector, telling the storage engine where to jump
next. It borrows the vector immutably for its lifetime.
*/
type Iterator struct {
	v     *FieldRangeVector
	i     []int
	cmp   []value.Value
	inc   []bool
	after bool
}

func (this *FieldRangeVector) NewIterator() *Iterator {
	n := len(this.ranges)
	rv := &Iterator{
		v:   this,
		i:   make([]int, n),
		cmp: make([]value.Value, n),
		inc: make([]bool, n),
	}
	for k := range rv.i {
		rv.i[k] = -1
	}
	return rv
}

/*
Advance reports how the cursor should move, given the composite key
it currently sits on:

	-2  iteration is complete, no need to advance
	-1  the key is within the ranges; advance to the next key,
	    without skipping
	>=0 skip parameter r: seek to the key comprised of the first r
	    elements of curr followed by the r-th and remaining elements
	    of Cmp() (with inclusivity specified by Inc()); if After() is
	    true, skip past every key sharing the first r+1 elements of
	    that target rather than to it.
*/
func (this *Iterator) Advance(curr value.Values) int {
	n := len(this.i)
	if n == 0 || len(this.v.ranges[0].Intervals()) == 0 {
		return -2
	}

	// the latest field whose current value sits inside an interval but
	// not on its inclusive upper bound; keys can still grow at that position
	latestNonEndpoint := -1

	for k := 0; k < n; k++ {
		intervals := this.v.ranges[k].Intervals()
		if len(intervals) == 0 {
			return -2
		}
		e := curr[k]

		l, _ := this.v.matchingLowElement(e, k)
		if l%2 == 0 {
			ii := l / 2
			this.i[k] = ii
			iv := &intervals[ii]
			atTop := iv.Upper.Inclusive && iv.Upper.Bound.Collate(e) == 0
			if !atTop {
				latestNonEndpoint = k
			}
			continue
		}

		ii := (l + 1) / 2
		if ii < len(intervals) {
			// e sits below interval ii at this field: seek to its
			// lower bound, past it when e equals an exclusive bound
			this.i[k] = ii
			this.cmp[k] = intervals[ii].Lower.Bound
			this.inc[k] = intervals[ii].Lower.Inclusive
			// in a normalized range a lower bound equal to e here is
			// necessarily exclusive; the boundary must be skipped
			this.after = intervals[ii].Lower.Bound.Collate(e) == 0
			this.setTail(k + 1)
			return k
		}

		// e is above every interval at this field: carry to the
		// deepest earlier field that can still move
		for q := k - 1; q >= 0; q-- {
			if q == latestNonEndpoint {
				// more keys exist within field q's current interval;
				// skip past the exhausted prefix
				this.cmp[q] = curr[q]
				this.inc[q] = false
				this.after = true
				this.setTail(q + 1)
				return q
			}
			if this.i[q]+1 < len(this.v.ranges[q].Intervals()) {
				this.i[q]++
				next := &this.v.ranges[q].Intervals()[this.i[q]]
				this.cmp[q] = next.Lower.Bound
				this.inc[q] = next.Lower.Inclusive
				this.after = false
				this.setTail(q + 1)
				return q
			}
		}
		return -2
	}

	this.after = false
	return -1
}

func (this *Iterator) setTail(from int) {
	for j := from; j < len(this.i); j++ {
		this.i[j] = 0
		intervals := this.v.ranges[j].Intervals()
		if len(intervals) > 0 {
			this.cmp[j] = intervals[0].Lower.Bound
			this.inc[j] = intervals[0].Lower.Inclusive
		}
	}
}

/*
AdvanceBox steps the per-field interval indices to the next Cartesian
box, rightmost field first.
*/
func (this *Iterator) AdvanceBox() bool {
	i := len(this.i) - 1
	for i >= 0 && this.i[i] >= len(this.v.ranges[i].Intervals())-1 {
		i--
	}
	if i >= 0 {
		this.i[i]++
		for j := i + 1; j < len(this.i); j++ {
			this.i[j] = 0
		}
	} else {
		this.i[0] = len(this.v.ranges[0].Intervals())
	}
	return this.Ok()
}

func (this *Iterator) Cmp() []value.Value {
	return this.cmp
}

func (this *Iterator) Inc() []bool {
	return this.inc
}

func (this *Iterator) After() bool {
	return this.after
}

/*
PrepDive positions the iterator so the first seek lands on the
vector's StartKey.
*/
func (this *Iterator) PrepDive() {
	this.after = false
	this.setTail(0)
}

func (this *Iterator) SetZero(i int) {
	for j := i; j < len(this.i); j++ {
		this.i[j] = 0
	}
}

func (this *Iterator) SetMinus(i int) {
	for j := i; j < len(this.i); j++ {
		this.i[j] = -1
	}
}

func (this *Iterator) Ok() bool {
	return len(this.i) > 0 && this.i[0] < len(this.v.ranges[0].Intervals())
}

/*
Lower corner of the current Cartesian box.
*/
func (this *Iterator) StartKey() value.Values {
	rv := make(value.Values, 0, len(this.i))
	for k := range this.i {
		iv := this.v.ranges[k].Intervals()[this.i[k]]
		rv = append(rv, iv.Lower.Bound)
	}
	return rv
}

/*
Upper corner of the current Cartesian box.
*/
func (this *Iterator) EndKey() value.Values {
	rv := make(value.Values, 0, len(this.i))
	for k := range this.i {
		iv := this.v.ranges[k].Intervals()[this.i[k]]
		rv = append(rv, iv.Upper.Bound)
	}
	return rv
}
