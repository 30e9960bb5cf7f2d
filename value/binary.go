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
	"encoding/base64"
	"fmt"
)

type binaryValue []byte

func (this binaryValue) String() string {
	b, _ := this.MarshalJSON()
	return string(b)
}

func (this binaryValue) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf(`{"$binary":"%s"}`,
		base64.StdEncoding.EncodeToString([]byte(this)))), nil
}

func (this binaryValue) Type() Type { return BINARY }

func (this binaryValue) Actual() interface{} {
	return []byte(this)
}

func (this binaryValue) Equals(other Value) bool {
	switch other := other.(type) {
	case binaryValue:
		return bytes.Equal(this, other)
	default:
		return false
	}
}

/*
Binary collates by length first, then by byte content.
*/
func (this binaryValue) Collate(other Value) int {
	switch other := other.(type) {
	case binaryValue:
		if len(this) != len(other) {
			return len(this) - len(other)
		}
		return bytes.Compare(this, other)
	default:
		return int(BINARY - other.Type())
	}
}

func (this binaryValue) Copy() Value {
	rv := make(binaryValue, len(this))
	copy(rv, this)
	return rv
}

func (this binaryValue) Field(field string) (Value, bool) {
	return nil, false
}

func (this binaryValue) Index(index int) (Value, bool) {
	return nil, false
}

func decodeBase64(s string) ([]byte, error) {
	return base64.StdEncoding.DecodeString(s)
}
