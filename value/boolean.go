//  Copyright (c) 2014 Couchbase, Inc.
//  Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file
//  except in compliance with the License. You may obtain a copy of the License at
//    http://www.apache.org/licenses/LICENSE-2.0
//  Unless required by applicable law or agreed to in writing, software distributed under the
//  License is distributed on an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND,
//  either express or implied. See the License for the specific language governing permissions
//  and limitations under the License.

package value

type boolValue bool

var TRUE_VALUE Value = boolValue(true)
var FALSE_VALUE Value = boolValue(false)

var _FALSE_BYTES = []byte("false")
var _TRUE_BYTES = []byte("true")

func (this boolValue) String() string {
	if this {
		return "true"
	}
	return "false"
}

func (this boolValue) MarshalJSON() ([]byte, error) {
	if this {
		return _TRUE_BYTES, nil
	}
	return _FALSE_BYTES, nil
}

func (this boolValue) Type() Type { return BOOLEAN }

func (this boolValue) Actual() interface{} {
	return bool(this)
}

func (this boolValue) Equals(other Value) bool {
	switch other := other.(type) {
	case boolValue:
		return this == other
	default:
		return false
	}
}

/*
If other is type boolValue, return 0 if equal, -1 if receiver is
false and 1 otherwise. The default behavior is to return the
position wrt the other's type.
*/
func (this boolValue) Collate(other Value) int {
	switch other := other.(type) {
	case boolValue:
		if this == other {
			return 0
		} else if !this {
			return -1
		} else {
			return 1
		}
	default:
		return int(BOOLEAN - other.Type())
	}
}

func (this boolValue) Copy() Value {
	return this
}

func (this boolValue) Field(field string) (Value, bool) {
	return nil, false
}

func (this boolValue) Index(index int) (Value, bool) {
	return nil, false
}
