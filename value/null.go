//  Copyright (c) 2014 Couchbase, Inc.
//  Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file
//  except in compliance with the License. You may obtain a copy of the License at
//    http://www.apache.org/licenses/LICENSE-2.0
//  Unless required by applicable law or agreed to in writing, software distributed under the
//  License is distributed on an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND,
//  either express or implied. See the License for the specific language governing permissions
//  and limitations under the License.

package value

type nullValue struct {
}

/*
Initialized as a pointer to an empty nullValue.
*/
var NULL_VALUE Value = &nullValue{}

/*
Returns a NULL_VALUE.
*/
func NewNullValue() Value {
	return NULL_VALUE
}

var _NULL_BYTES = []byte("null")

func (this *nullValue) String() string {
	return string(_NULL_BYTES)
}

func (this *nullValue) MarshalJSON() ([]byte, error) {
	return _NULL_BYTES, nil
}

func (this *nullValue) Type() Type { return NULL }

func (this *nullValue) Actual() interface{} {
	return nil
}

func (this *nullValue) Equals(other Value) bool {
	return other.Type() == NULL
}

/*
Returns the relative position of null wrt other.
*/
func (this *nullValue) Collate(other Value) int {
	return int(NULL - other.Type())
}

func (this *nullValue) Copy() Value {
	return this
}

func (this *nullValue) Field(field string) (Value, bool) {
	return nil, false
}

func (this *nullValue) Index(index int) (Value, bool) {
	return nil, false
}
