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
One side of an interval of valid values, specified by a value and a
boolean indicating whether the interval includes the value.
*/
type FieldBound struct {
	Bound     value.Value
	Inclusive bool
}

func (this *FieldBound) Equals(other FieldBound) bool {
	return this.Inclusive == other.Inclusive && this.Bound.Collate(other.Bound) == 0
}

func (this *FieldBound) FlipInclusive() {
	this.Inclusive = !this.Inclusive
}

/*
An interval composed of a lower and an upper FieldBound, each end
inclusive or exclusive.
*/
type FieldInterval struct {
	Lower FieldBound
	Upper FieldBound

	// tri-state equality cache; the zero value means not yet computed
	cachedEquality value.Tristate
}

/*
NewPointInterval returns the degenerate interval [e, e].
*/
func NewPointInterval(e value.Value) FieldInterval {
	return FieldInterval{
		Lower: FieldBound{Bound: e, Inclusive: true},
		Upper: FieldBound{Bound: e, Inclusive: true},
	}
}

func NewFieldInterval(lower value.Value, lowerInclusive bool, upper value.Value, upperInclusive bool) FieldInterval {
	return FieldInterval{
		Lower: FieldBound{Bound: lower, Inclusive: lowerInclusive},
		Upper: FieldBound{Bound: upper, Inclusive: upperInclusive},
	}
}

/*
StrictValid is true iff at least one value can be contained in the
interval: the lower bound is below the upper, or they coincide and
both ends are inclusive.
*/
func (this *FieldInterval) StrictValid() bool {
	cmp := this.Lower.Bound.Collate(this.Upper.Bound)
	return cmp < 0 || (cmp == 0 && this.Lower.Inclusive && this.Upper.Inclusive)
}

/*
Equality is true iff the interval is an equality constraint. The
result is cached; mutators must call clearEqualityCache.
*/
func (this *FieldInterval) Equality() bool {
	if this.cachedEquality == value.NONE {
		eq := this.Lower.Inclusive && this.Upper.Inclusive &&
			this.Lower.Bound.Collate(this.Upper.Bound) == 0
		this.cachedEquality = value.ToTristate(eq)
	}
	return this.cachedEquality == value.TRUE
}

func (this *FieldInterval) clearEqualityCache() {
	this.cachedEquality = value.NONE
}

func (this *FieldInterval) Equals(other FieldInterval) bool {
	return this.Lower.Equals(other.Lower) && this.Upper.Equals(other.Upper)
}
