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
)

/*
sliceValue is defined as a slice of interfaces.
*/
type sliceValue []interface{}

var EMPTY_ARRAY_VALUE Value = sliceValue([]interface{}{})

func (this sliceValue) String() string {
	bytes, err := this.MarshalJSON()
	if err != nil {
		panic(_MARSHAL_ERROR)
	}
	return string(bytes)
}

func (this sliceValue) MarshalJSON() ([]byte, error) {
	if this == nil {
		return []byte("[]"), nil
	}

	var buf bytes.Buffer
	buf.WriteString("[")
	for i, e := range this {
		if i > 0 {
			buf.WriteString(",")
		}
		b, err := NewValue(e).MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(b)
	}
	buf.WriteString("]")
	return buf.Bytes(), nil
}

func (this sliceValue) Type() Type { return ARRAY }

func (this sliceValue) Actual() interface{} {
	return []interface{}(this)
}

func (this sliceValue) Equals(other Value) bool {
	switch other := other.(type) {
	case sliceValue:
		return arrayEquals(this, other)
	default:
		return false
	}
}

func (this sliceValue) Collate(other Value) int {
	switch other := other.(type) {
	case sliceValue:
		return arrayCollate(this, other)
	default:
		return int(ARRAY - other.Type())
	}
}

func (this sliceValue) Copy() Value {
	rv := make(sliceValue, len(this))
	copy(rv, this)
	return rv
}

func (this sliceValue) Field(field string) (Value, bool) {
	return nil, false
}

func (this sliceValue) Index(index int) (Value, bool) {
	if index >= 0 && index < len(this) {
		return NewValue(this[index]), true
	}

	return nil, false
}

func arrayEquals(array1, array2 []interface{}) bool {
	if len(array1) != len(array2) {
		return false
	}

	for i, item1 := range array1 {
		if !NewValue(item1).Equals(NewValue(array2[i])) {
			return false
		}
	}

	return true
}

/*
Elementwise collation; at a common-prefix tie the shorter array
collates first.
*/
func arrayCollate(array1, array2 []interface{}) int {
	for i, item1 := range array1 {
		if i >= len(array2) {
			return 1
		}

		cmp := NewValue(item1).Collate(NewValue(array2[i]))
		if cmp != 0 {
			return cmp
		}
	}

	return len(array1) - len(array2)
}
