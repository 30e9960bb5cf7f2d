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
	"github.com/couchbase/docquery/logging"
	"github.com/couchbase/docquery/value"
)

/*
Build the FieldRange for a single operator clause. Operators that
cannot refine an index range return the trivial range; the caller
records such clauses for residual evaluation. The boolean result is
false when the operand was malformed and the clause was downgraded.
*/
func sargFor(op string, operand value.Value, isNot bool) (*FieldRange, bool) {
	var rv *FieldRange
	ok := true

	switch op {
	case "$eq":
		rv = newSargEq(operand)
	case "$ne":
		rv = newSargEq(operand)
		isNot = !isNot
	case "$lt":
		rv = newSargLT(operand, false)
	case "$lte":
		rv = newSargLT(operand, true)
	case "$gt":
		rv = newSargGT(operand, false)
	case "$gte":
		rv = newSargGT(operand, true)
	case "$in":
		rv, ok = newSargIn(operand)
	case "$nin":
		rv, ok = newSargIn(operand)
		isNot = !isNot
	case "$all":
		rv, ok = newSargAll(operand)
	case "$regex":
		rv, ok = newSargRegex(operand)
	case "$near", "$within", "$geoWithin", "$geoIntersects":
		rv = newSargSpecial("2d")
	default:
		// $mod, $type, $exists, $size, $elemMatch, $where and any
		// unrecognized operator cannot refine an index range.
		rv = newSargDefault()
	}

	if isNot {
		rv = negateRange(rv)
	}

	if !ok {
		logging.Debugf("downgraded operator %s to the trivial range", op)
	}

	return rv, ok
}
