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
$in builds the union of point intervals over the operand array,
deduped and sorted by normalization. Regex members contribute their
prefix ranges. A non-array operand downgrades to the trivial range.
*/
func newSargIn(operand value.Value) (*FieldRange, bool) {
	if operand.Type() != value.ARRAY {
		return newSargDefault(), false
	}

	rv := newEmptyFieldRange()
	rv.objData = append(rv.objData, operand)

	for i := 0; ; i++ {
		e, ok := operand.Index(i)
		if !ok {
			break
		}

		if e.Type() == value.REGEX {
			re, ok := newSargRegex(e)
			if !ok {
				return newSargDefault(), false
			}
			rv.Union(re)
		} else {
			rv.intervals = append(rv.intervals, NewPointInterval(e))
		}
	}

	rv.intervals = normalizeIntervals(rv.intervals)
	return rv, true
}

/*
$all can use at most one element as an index equality; the rest of
the containment check is left to the matcher. Regex and operator
elements are not usable.
*/
func newSargAll(operand value.Value) (*FieldRange, bool) {
	if operand.Type() != value.ARRAY {
		return newSargDefault(), false
	}

	for i := 0; ; i++ {
		e, ok := operand.Index(i)
		if !ok {
			break
		}
		if e.Type() != value.REGEX && e.Type() != value.OBJECT {
			return newSargEq(e), true
		}
	}

	return newSargDefault(), true
}
