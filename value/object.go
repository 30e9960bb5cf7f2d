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
	"sort"
)

/*
objectValue is a map of strings to interfaces.
*/
type objectValue map[string]interface{}

var EMPTY_OBJECT_VALUE Value = objectValue(map[string]interface{}{})

func (this objectValue) String() string {
	bytes, err := this.MarshalJSON()
	if err != nil {
		panic(_MARSHAL_ERROR)
	}
	return string(bytes)
}

/*
Fields are emitted in sorted name order so that marshaling is
deterministic.
*/
func (this objectValue) MarshalJSON() ([]byte, error) {
	if this == nil {
		return []byte("{}"), nil
	}

	var buf bytes.Buffer
	buf.WriteString("{")
	for i, n := range this.FieldNames() {
		if i > 0 {
			buf.WriteString(",")
		}
		kb, err := stringValue(n).MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteString(":")
		vb, err := NewValue(this[n]).MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteString("}")
	return buf.Bytes(), nil
}

func (this objectValue) Type() Type { return OBJECT }

func (this objectValue) Actual() interface{} {
	return map[string]interface{}(this)
}

func (this objectValue) Equals(other Value) bool {
	switch other := other.(type) {
	case objectValue:
		return objectEquals(this, other)
	case *orderedObjectValue:
		return objectEquals(this, other.fields)
	default:
		return false
	}
}

func (this objectValue) Collate(other Value) int {
	switch other := other.(type) {
	case objectValue:
		return objectCollate(this, other)
	case *orderedObjectValue:
		return objectCollate(this, other.fields)
	default:
		return int(OBJECT - other.Type())
	}
}

func (this objectValue) Copy() Value {
	rv := make(objectValue, len(this))
	for k, v := range this {
		rv[k] = v
	}
	return rv
}

func (this objectValue) Field(field string) (Value, bool) {
	result, ok := this[field]
	if ok {
		return NewValue(result), true
	}

	return nil, false
}

func (this objectValue) Index(index int) (Value, bool) {
	return nil, false
}

/*
Sorted field names of the receiver.
*/
func (this objectValue) FieldNames() []string {
	names := make([]string, 0, len(this))
	for n := range this {
		names = append(names, n)
	}

	sort.Strings(names)
	return names
}

func objectEquals(obj1, obj2 map[string]interface{}) bool {
	if len(obj1) != len(obj2) {
		return false
	}

	for name1, item1 := range obj1 {
		item2, ok := obj2[name1]
		if !ok || !NewValue(item1).Equals(NewValue(item2)) {
			return false
		}
	}

	return true
}

/*
Objects collate by number of fields, then pairwise over the sorted
field names, comparing names before values.
*/
func objectCollate(obj1, obj2 map[string]interface{}) int {
	if len(obj1) != len(obj2) {
		return len(obj1) - len(obj2)
	}

	names1 := objectValue(obj1).FieldNames()
	names2 := objectValue(obj2).FieldNames()

	for i, name1 := range names1 {
		name2 := names2[i]
		if name1 != name2 {
			if name1 < name2 {
				return -1
			}
			return 1
		}

		cmp := NewValue(obj1[name1]).Collate(NewValue(obj2[name2]))
		if cmp != 0 {
			return cmp
		}
	}

	return 0
}
