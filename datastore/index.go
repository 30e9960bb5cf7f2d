//  Copyright (c) 2014 Couchbase, Inc.
//  Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file
//  except in compliance with the License. You may obtain a copy of the License at
//    http://www.apache.org/licenses/LICENSE-2.0
//  Unless required by applicable law or agreed to in writing, software distributed under the
//  License is distributed on an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND,
//  either express or implied. See the License for the specific language governing permissions
//  and limitations under the License.

/*
Package datastore defines the contracts between the planner and the
storage layer: index descriptions, bound lists for range scans, and
the sorted key iterator the scan protocol drives.
*/
package datastore

import (
	"github.com/couchbase/docquery/value"
)

/*
One component of an index key pattern: a field name and a direction,
+1 ascending or -1 descending.
*/
type KeyPart struct {
	Field     string
	Direction int
}

/*
An ordered list of fields and directions used to build composite
index keys.
*/
type KeyPattern []KeyPart

func (this KeyPattern) Fields() []string {
	rv := make([]string, len(this))
	for i, part := range this {
		rv[i] = part.Field
	}
	return rv
}

func (this KeyPattern) Equals(other KeyPattern) bool {
	if len(this) != len(other) {
		return false
	}
	for i := range this {
		if this[i] != other[i] {
			return false
		}
	}
	return true
}

/*
The description of an index as provided by the catalog. Only the key
pattern and the type-specific flags are consumed by range derivation.
*/
type IndexSpec struct {
	Name       string
	KeyPattern KeyPattern
	Unique     bool
	Sparse     bool
	Special    string
}

// Inclusion controls how the boundary values of a range are treated.
type Inclusion int

const (
	NEITHER Inclusion = 0x00
	LOW     Inclusion = 0x01
	HIGH    Inclusion = 0x01 << 1
	BOTH    Inclusion = LOW | HIGH
)

/*
A Bound holds the inclusive start and end composite keys of one index
scan leg.
*/
type Bound struct {
	Start value.Values
	End   value.Values
}

/*
A BoundList contains nonoverlapping bounds in the direction of
traversal.
*/
type BoundList []Bound

/*
KeyIterator is the storage engine surface the scan protocol drives:
a sorted iterator over encoded index keys supporting seeks.
*/
type KeyIterator interface {
	Seek(key []byte)
	Next()
	Valid() bool
	Key() []byte
	Close()
}
