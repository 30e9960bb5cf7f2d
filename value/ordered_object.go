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
orderedObjectValue is an object that remembers the order its fields
were appended in and marshals them in that order. Comparison and
equality are field-order-insensitive, exactly as for objectValue;
only the serialized form differs. Used where a caller dictates field
order, e.g. simplified query projections.
*/
type orderedObjectValue struct {
	names  []string
	fields map[string]interface{}
}

/*
NewOrderedObjectValue builds an object whose fields marshal in the
order of names. Every name must have an entry in fields.
*/
func NewOrderedObjectValue(names []string, fields map[string]interface{}) Value {
	return &orderedObjectValue{names: names, fields: fields}
}

func (this *orderedObjectValue) String() string {
	bytes, err := this.MarshalJSON()
	if err != nil {
		panic(_MARSHAL_ERROR)
	}
	return string(bytes)
}

func (this *orderedObjectValue) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("{")
	for i, n := range this.names {
		if i > 0 {
			buf.WriteString(",")
		}
		kb, err := stringValue(n).MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteString(":")
		vb, err := NewValue(this.fields[n]).MarshalJSON()
		if err != nil {
			return nil, err
		}
		buf.Write(vb)
	}
	buf.WriteString("}")
	return buf.Bytes(), nil
}

func (this *orderedObjectValue) Type() Type { return OBJECT }

func (this *orderedObjectValue) Actual() interface{} {
	return this.fields
}

func (this *orderedObjectValue) Equals(other Value) bool {
	switch other := other.(type) {
	case *orderedObjectValue:
		return objectEquals(this.fields, other.fields)
	case objectValue:
		return objectEquals(this.fields, other)
	default:
		return false
	}
}

func (this *orderedObjectValue) Collate(other Value) int {
	switch other := other.(type) {
	case *orderedObjectValue:
		return objectCollate(this.fields, other.fields)
	case objectValue:
		return objectCollate(this.fields, other)
	default:
		return int(OBJECT - other.Type())
	}
}

func (this *orderedObjectValue) Copy() Value {
	names := make([]string, len(this.names))
	copy(names, this.names)
	fields := make(map[string]interface{}, len(this.fields))
	for k, v := range this.fields {
		fields[k] = v
	}
	return &orderedObjectValue{names: names, fields: fields}
}

func (this *orderedObjectValue) Field(field string) (Value, bool) {
	result, ok := this.fields[field]
	if ok {
		return NewValue(result), true
	}

	return nil, false
}

func (this *orderedObjectValue) Index(index int) (Value, bool) {
	return nil, false
}
