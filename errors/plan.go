//  Copyright (c) 2014 Couchbase, Inc.
//  Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file
//  except in compliance with the License. You may obtain a copy of the License at
//    http://www.apache.org/licenses/LICENSE-2.0
//  Unless required by applicable law or agreed to in writing, software distributed under the
//  License is distributed on an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND,
//  either express or implied. See the License for the specific language governing permissions
//  and limitations under the License.

package errors

import (
	"fmt"
)

// Plan errors - errors that are created in the planner package

func NewPlanError(e error, msg string) Error {
	switch e := e.(type) {
	case Error: // if given error is already an Error, just return it:
		return e
	default:
		return &err{level: EXCEPTION, ICode: 4000, IKey: "plan_error", ICause: e, InternalMsg: msg, InternalCaller: CallerN(1)}
	}
}

const E_PLAN_MALFORMED_OPERAND ErrorCode = 4370

// The predicate is kept as a residual filter and the field degrades
// to the trivial range; this error is recorded, never fatal.
func NewMalformedOperandError(op string, operand fmt.Stringer) Error {
	return &err{level: WARNING, ICode: E_PLAN_MALFORMED_OPERAND, IKey: "plan.range.malformed_operand",
		InternalMsg: fmt.Sprintf("Malformed operand %v for operator %s", operand, op), InternalCaller: CallerN(1)}
}

const E_PLAN_COMBINATORIAL_LIMIT ErrorCode = 4380

func NewCombinatorialLimitError(size int64) Error {
	return &err{level: EXCEPTION, ICode: E_PLAN_COMBINATORIAL_LIMIT, IKey: "plan.range.combinatorial_limit",
		InternalMsg: "combinatorial limit of $in partitioning of result set exceeded", InternalCaller: CallerN(1)}
}

const E_PLAN_RANGE_INVARIANT ErrorCode = 4390

// Programmer errors; callers panic rather than recover.
func NewRangeInvariantError(msg string) Error {
	return &err{level: EXCEPTION, ICode: E_PLAN_RANGE_INVARIANT, IKey: "plan.range.invariant",
		InternalMsg: msg, InternalCaller: CallerN(1)}
}
