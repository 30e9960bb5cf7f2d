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
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/couchbase/docquery/datastore"
)

/*
Implements query pattern matching, used to determine if a query is
similar to an earlier query and should use the same plan.

Two queries generate the same QueryPattern, and therefore match each
other, if their fields have the same bound kinds and they have the
same normalized sort spec.
*/
type PatternType int

const (
	Equality PatternType = iota
	LowerBound
	UpperBound
	UpperAndLowerBound
)

type QueryPattern struct {
	fieldTypes map[string]PatternType
	sort       datastore.KeyPattern
}

/*
Lexicographic comparison over (field name, pattern type) pairs, with
the sort spec as the final tie-breaker.
*/
func (this QueryPattern) Less(other QueryPattern) bool {
	thisFields := sortedPatternFields(this.fieldTypes)
	otherFields := sortedPatternFields(other.fieldTypes)

	for i, f := range thisFields {
		if i >= len(otherFields) {
			return false
		}
		of := otherFields[i]
		if f < of {
			return true
		} else if f > of {
			return false
		}
		if this.fieldTypes[f] < other.fieldTypes[of] {
			return true
		} else if this.fieldTypes[f] > other.fieldTypes[of] {
			return false
		}
	}
	if len(thisFields) < len(otherFields) {
		return true
	}

	return sortLess(this.sort, other.sort)
}

func (this QueryPattern) Equals(other QueryPattern) bool {
	return !this.Less(other) && !other.Less(this)
}

/*
A stable 64-bit fingerprint of the pattern, used as the plan cache
key.
*/
func (this QueryPattern) Fingerprint() uint64 {
	h := xxhash.New()
	for _, f := range sortedPatternFields(this.fieldTypes) {
		h.WriteString(f)
		h.Write([]byte{0x00, byte(this.fieldTypes[f]), 0x00})
	}
	h.WriteString("|")
	for _, part := range this.sort {
		h.WriteString(part.Field)
		h.WriteString(strconv.Itoa(part.Direction))
		h.WriteString("\x00")
	}
	return h.Sum64()
}

/*
The sort spec is normalized by flipping directions uniformly so that
the first component is negative; a sort and its mirror image share a
plan.
*/
func normalizeSort(spec datastore.KeyPattern) datastore.KeyPattern {
	if len(spec) == 0 {
		return spec
	}

	direction := 1
	if spec[0].Direction >= 0 {
		direction = -1
	}

	rv := make(datastore.KeyPattern, len(spec))
	for i, part := range spec {
		d := 1
		if part.Direction < 0 {
			d = -1
		}
		rv[i] = datastore.KeyPart{Field: part.Field, Direction: direction * d}
	}
	return rv
}

func sortLess(a, b datastore.KeyPattern) bool {
	for i, part := range a {
		if i >= len(b) {
			return false
		}
		if part.Field != b[i].Field {
			return part.Field < b[i].Field
		}
		if part.Direction != b[i].Direction {
			return part.Direction < b[i].Direction
		}
	}
	return len(a) < len(b)
}

func sortedPatternFields(fieldTypes map[string]PatternType) []string {
	rv := make([]string, 0, len(fieldTypes))
	for f := range fieldTypes {
		rv = append(rv, f)
	}
	sort.Strings(rv)
	return rv
}
