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

	"github.com/couchbase/docquery/errors"
	"github.com/couchbase/docquery/value"
	"github.com/dlclark/regexp2"
)

/*
An ordered list of FieldIntervals expressing constraints on valid
values for one field. Intervals are sorted by lower bound, pairwise
disjoint and non-mergeable; an empty list matches nothing. The
backing documents of every contributing predicate are retained in
objData so that bound references stay valid for the lifetime of the
range and of anything derived from it.
*/
type FieldRange struct {
	intervals []FieldInterval
	objData   value.Values
	special   string
	residuals []*regexp2.Regexp
}

func newEmptyFieldRange() *FieldRange {
	return &FieldRange{}
}

func newTrivialFieldRange() *FieldRange {
	return &FieldRange{
		intervals: []FieldInterval{
			NewFieldInterval(value.MIN_KEY_VALUE, true, value.MAX_KEY_VALUE, true),
		},
	}
}

func newFieldRange(intervals []FieldInterval, operand value.Value) *FieldRange {
	rv := &FieldRange{}
	rv.intervals = normalizeIntervals(intervals)
	if operand != nil {
		rv.objData = append(rv.objData, operand)
	}
	return rv
}

/*
Range intersection with other.
*/
func (this *FieldRange) Intersect(other *FieldRange) *FieldRange {
	this.finishOperation(intersectIntervals(this.intervals, other.intervals), other)
	return this
}

/*
Range union with other.
*/
func (this *FieldRange) Union(other *FieldRange) *FieldRange {
	merged := make([]FieldInterval, 0, len(this.intervals)+len(other.intervals))
	merged = append(merged, this.intervals...)
	merged = append(merged, other.intervals...)
	this.finishOperation(merged, other)
	return this
}

/*
Range of elements included in this but not other.
*/
func (this *FieldRange) Difference(other *FieldRange) *FieldRange {
	rv := make([]FieldInterval, 0, len(this.intervals))
	for _, iv := range this.intervals {
		pieces := []FieldInterval{iv}
		for _, sub := range other.intervals {
			var next []FieldInterval
			for _, p := range pieces {
				next = append(next, subtractInterval(p, sub)...)
			}
			pieces = next
		}
		rv = append(rv, pieces...)
	}
	this.finishOperation(rv, other)
	return this
}

/*
True iff this range is a subset of other: every interval here is
contained in some interval of other.
*/
func (this *FieldRange) SubsetOf(other *FieldRange) bool {
	j := 0
	for _, iv := range this.intervals {
		for j < len(other.intervals) && cmpUpper(other.intervals[j].Upper, iv.Upper) < 0 {
			j++
		}
		if j >= len(other.intervals) || !containsInterval(other.intervals[j], iv) {
			return false
		}
	}
	return true
}

/*
If there are any valid values for this range, the extreme values can
be extracted.
*/

func (this *FieldRange) Min() value.Value {
	if this.Empty() {
		panic(errors.NewRangeInvariantError("min() called on empty range"))
	}
	return this.intervals[0].Lower.Bound
}

func (this *FieldRange) Max() value.Value {
	if this.Empty() {
		panic(errors.NewRangeInvariantError("max() called on empty range"))
	}
	return this.intervals[len(this.intervals)-1].Upper.Bound
}

func (this *FieldRange) MinInclusive() bool {
	if this.Empty() {
		panic(errors.NewRangeInvariantError("minInclusive() called on empty range"))
	}
	return this.intervals[0].Lower.Inclusive
}

func (this *FieldRange) MaxInclusive() bool {
	if this.Empty() {
		panic(errors.NewRangeInvariantError("maxInclusive() called on empty range"))
	}
	return this.intervals[len(this.intervals)-1].Upper.Inclusive
}

/*
True iff this range expresses a single equality interval.
*/
func (this *FieldRange) Equality() bool {
	return !this.Empty() &&
		this.Min().Collate(this.Max()) == 0 &&
		this.MinInclusive() && this.MaxInclusive()
}

/*
True if all the intervals for this range are equalities; the shape of
an $in.
*/
func (this *FieldRange) InQuery() bool {
	if this.Equality() {
		return true
	}
	for i := range this.intervals {
		if !this.intervals[i].Equality() {
			return false
		}
	}
	return true
}

/*
True iff this range is neither empty nor the universal range.
*/
func (this *FieldRange) Nontrivial() bool {
	return !this.Empty() &&
		(len(this.intervals) != 1 ||
			value.MIN_KEY_VALUE.Collate(this.Min()) != 0 ||
			value.MAX_KEY_VALUE.Collate(this.Max()) != 0)
}

/*
True iff this range matches no values.
*/
func (this *FieldRange) Empty() bool {
	return len(this.intervals) == 0
}

/*
Empty the range so it matches nothing.
*/
func (this *FieldRange) MakeEmpty() {
	this.intervals = nil
}

func (this *FieldRange) Intervals() []FieldInterval {
	return this.intervals
}

func (this *FieldRange) GetSpecial() string {
	return this.special
}

/*
Residual filters that must be applied by the executor on top of the
index range, e.g. regexes that only partially reduce to a prefix.
*/
func (this *FieldRange) Residuals() []*regexp2.Regexp {
	return this.residuals
}

/*
Make component intervals noninclusive.
*/
func (this *FieldRange) SetExclusiveBounds() {
	for i := range this.intervals {
		this.intervals[i].Lower.Inclusive = false
		this.intervals[i].Upper.Inclusive = false
		this.intervals[i].clearEqualityCache()
	}
	this.intervals = normalizeIntervals(this.intervals)
}

/*
Constructs a range where all FieldIntervals and FieldBounds are in
the opposite order of the current range. The bounds keep their
inclusivity flags verbatim, so the resulting intervals may not be
StrictValid; only the index traversal machinery may consume them.
*/
func (this *FieldRange) Reverse(ret *FieldRange) {
	if this.special != "" {
		panic(errors.NewRangeInvariantError("reverse() called on special range " + this.special))
	}
	ret.intervals = make([]FieldInterval, 0, len(this.intervals))
	ret.objData = this.objData
	ret.residuals = this.residuals
	for i := len(this.intervals) - 1; i >= 0; i-- {
		ret.intervals = append(ret.intervals, FieldInterval{
			Lower: this.intervals[i].Upper,
			Upper: this.intervals[i].Lower,
		})
	}
}

func (this *FieldRange) Copy() *FieldRange {
	rv := &FieldRange{
		intervals: make([]FieldInterval, len(this.intervals)),
		objData:   this.objData,
		special:   this.special,
		residuals: this.residuals,
	}
	copy(rv.intervals, this.intervals)
	return rv
}

func (this *FieldRange) Equals(other *FieldRange) bool {
	if len(this.intervals) != len(other.intervals) || this.special != other.special {
		return false
	}
	for i := range this.intervals {
		if !this.intervals[i].Equals(other.intervals[i]) {
			return false
		}
	}
	return true
}

/*
Normalize the outcome of a set operation and take over the other
operand's owned documents and residual filters.
*/
func (this *FieldRange) finishOperation(newIntervals []FieldInterval, other *FieldRange) {
	this.intervals = normalizeIntervals(newIntervals)
	this.objData = append(this.objData, other.objData...)
	this.residuals = append(this.residuals, other.residuals...)
}

// Lower bounds order by value; at a value tie an inclusive lower
// comes before an exclusive one.
func cmpLower(a, b FieldBound) int {
	cmp := a.Bound.Collate(b.Bound)
	if cmp != 0 {
		return cmp
	}
	if a.Inclusive == b.Inclusive {
		return 0
	}
	if a.Inclusive {
		return -1
	}
	return 1
}

// Upper bounds order by value; at a value tie an exclusive upper
// comes before an inclusive one.
func cmpUpper(a, b FieldBound) int {
	cmp := a.Bound.Collate(b.Bound)
	if cmp != 0 {
		return cmp
	}
	if a.Inclusive == b.Inclusive {
		return 0
	}
	if a.Inclusive {
		return 1
	}
	return -1
}

func maxLower(a, b FieldBound) FieldBound {
	if cmpLower(a, b) >= 0 {
		return a
	}
	return b
}

func minUpper(a, b FieldBound) FieldBound {
	if cmpUpper(a, b) <= 0 {
		return a
	}
	return b
}

/*
Sort intervals by lower bound, drop strictly invalid ones, and
coalesce intervals that overlap or touch at an endpoint with at least
one inclusive side.
*/
func normalizeIntervals(intervals []FieldInterval) []FieldInterval {
	valid := make([]FieldInterval, 0, len(intervals))
	for i := range intervals {
		if intervals[i].StrictValid() {
			iv := intervals[i]
			iv.clearEqualityCache()
			valid = append(valid, iv)
		}
	}

	if len(valid) == 0 {
		return nil
	}

	sort.SliceStable(valid, func(i, j int) bool {
		return cmpLower(valid[i].Lower, valid[j].Lower) < 0
	})

	rv := valid[:1]
	for _, next := range valid[1:] {
		last := &rv[len(rv)-1]
		cmp := next.Lower.Bound.Collate(last.Upper.Bound)
		if cmp < 0 || (cmp == 0 && (next.Lower.Inclusive || last.Upper.Inclusive)) {
			if cmpUpper(next.Upper, last.Upper) > 0 {
				last.Upper = next.Upper
				last.clearEqualityCache()
			}
		} else {
			rv = append(rv, next)
		}
	}

	return rv
}

func intersectIntervals(a, b []FieldInterval) []FieldInterval {
	var rv []FieldInterval
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		iv := FieldInterval{
			Lower: maxLower(a[i].Lower, b[j].Lower),
			Upper: minUpper(a[i].Upper, b[j].Upper),
		}
		if iv.StrictValid() {
			rv = append(rv, iv)
		}

		cmp := cmpUpper(a[i].Upper, b[j].Upper)
		if cmp <= 0 {
			i++
		}
		if cmp >= 0 {
			j++
		}
	}
	return rv
}

/*
Subtract sub from iv, yielding zero, one or two remaining pieces.
*/
func subtractInterval(iv, sub FieldInterval) []FieldInterval {
	var rv []FieldInterval

	// piece of iv below sub
	below := FieldInterval{
		Lower: iv.Lower,
		Upper: FieldBound{Bound: sub.Lower.Bound, Inclusive: !sub.Lower.Inclusive},
	}
	if cmpUpper(iv.Upper, below.Upper) < 0 {
		below.Upper = iv.Upper
	}
	if below.StrictValid() {
		rv = append(rv, below)
	}

	// piece of iv above sub
	above := FieldInterval{
		Lower: FieldBound{Bound: sub.Upper.Bound, Inclusive: !sub.Upper.Inclusive},
		Upper: iv.Upper,
	}
	if cmpLower(iv.Lower, above.Lower) > 0 {
		above.Lower = iv.Lower
	}
	if above.StrictValid() {
		rv = append(rv, above)
	}

	return rv
}

/*
True iff outer fully contains inner.
*/
func containsInterval(outer, inner FieldInterval) bool {
	return cmpLower(outer.Lower, inner.Lower) <= 0 && cmpUpper(outer.Upper, inner.Upper) >= 0
}

/*
Complement over the value universe: everything outside the given
normalized intervals, bounded by the key sentinels.
*/
func complementIntervals(intervals []FieldInterval) []FieldInterval {
	var rv []FieldInterval
	lower := FieldBound{Bound: value.MIN_KEY_VALUE, Inclusive: true}
	for _, iv := range intervals {
		gap := FieldInterval{
			Lower: lower,
			Upper: FieldBound{Bound: iv.Lower.Bound, Inclusive: !iv.Lower.Inclusive},
		}
		if gap.StrictValid() {
			rv = append(rv, gap)
		}
		lower = FieldBound{Bound: iv.Upper.Bound, Inclusive: !iv.Upper.Inclusive}
	}

	tail := FieldInterval{
		Lower: lower,
		Upper: FieldBound{Bound: value.MAX_KEY_VALUE, Inclusive: true},
	}
	if tail.StrictValid() {
		rv = append(rv, tail)
	}

	return rv
}
