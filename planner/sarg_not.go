//  Copyright (c) 2014 Couchbase, Inc.
//  Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file
//  except in compliance with the License. You may obtain a copy of the License at
//    http://www.apache.org/licenses/LICENSE-2.0
//  Unless required by applicable law or agreed to in writing, software distributed under the
//  License is distributed on an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND,
//  either express or implied. See the License for the specific language governing permissions
//  and limitations under the License.

package planner

/*
Complement the range over the value universe. The trivial range stays
trivial: a negated unrefinable clause still admits every index key,
and the residual filter carries the real work. Special ranges are
opaque to set algebra and also pass through unchanged. An empty range
complements to the universe: excluding nothing excludes nothing, so
$nin over an empty set admits every value. Residual filters are
dropped; the caller keeps the negated predicate for the matcher.
*/
func negateRange(fr *FieldRange) *FieldRange {
	if fr.special != "" || (!fr.Empty() && !fr.Nontrivial()) {
		return fr
	}

	fr.intervals = normalizeIntervals(complementIntervals(fr.intervals))
	fr.residuals = nil
	return fr
}
