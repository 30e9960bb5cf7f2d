//  Copyright (c) 2014 Couchbase, Inc.
//  Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file
//  except in compliance with the License. You may obtain a copy of the License at
//    http://www.apache.org/licenses/LICENSE-2.0
//  Unless required by applicable law or agreed to in writing, software distributed under the
//  License is distributed on an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND,
//  either express or implied. See the License for the specific language governing permissions
//  and limitations under the License.

package value

import (
	"bytes"
	"encoding/hex"
	"fmt"
)

type objectIdValue [12]byte

/*
NewObjectIdValue constructs an object id from its 24-character hex
representation.
*/
func NewObjectIdValue(s string) (Value, error) {
	if len(s) != 24 {
		return nil, fmt.Errorf("invalid object id %q", s)
	}

	var rv objectIdValue
	b, err := hex.DecodeString(s)
	if err != nil {
		return nil, err
	}

	copy(rv[:], b)
	return rv, nil
}

func (this objectIdValue) String() string {
	b, _ := this.MarshalJSON()
	return string(b)
}

func (this objectIdValue) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf(`{"$oid":"%s"}`, hex.EncodeToString(this[:]))), nil
}

func (this objectIdValue) Type() Type { return OBJECTID }

func (this objectIdValue) Actual() interface{} {
	return hex.EncodeToString(this[:])
}

func (this objectIdValue) Equals(other Value) bool {
	switch other := other.(type) {
	case objectIdValue:
		return this == other
	default:
		return false
	}
}

func (this objectIdValue) Collate(other Value) int {
	switch other := other.(type) {
	case objectIdValue:
		return bytes.Compare(this[:], other[:])
	default:
		return int(OBJECTID - other.Type())
	}
}

func (this objectIdValue) Copy() Value {
	return this
}

func (this objectIdValue) Field(field string) (Value, bool) {
	return nil, false
}

func (this objectIdValue) Index(index int) (Value, bool) {
	return nil, false
}
