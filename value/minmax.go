//  Copyright (c) 2014 Couchbase, Inc.
//  Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file
//  except in compliance with the License. You may obtain a copy of the License at
//    http://www.apache.org/licenses/LICENSE-2.0
//  Unless required by applicable law or agreed to in writing, software distributed under the
//  License is distributed on an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND,
//  either express or implied. See the License for the specific language governing permissions
//  and limitations under the License.

package value

/*
The two key sentinels. MIN_KEY_VALUE collates strictly below every
other value, MAX_KEY_VALUE strictly above. Together they bound the
trivial range.
*/

type minKeyValue struct {
}

var MIN_KEY_VALUE Value = &minKeyValue{}

var _MIN_KEY_BYTES = []byte(`{"$minKey":1}`)

func (this *minKeyValue) String() string {
	return string(_MIN_KEY_BYTES)
}

func (this *minKeyValue) MarshalJSON() ([]byte, error) {
	return _MIN_KEY_BYTES, nil
}

func (this *minKeyValue) Type() Type { return MINKEY }

func (this *minKeyValue) Actual() interface{} {
	return nil
}

func (this *minKeyValue) Equals(other Value) bool {
	return other.Type() == MINKEY
}

func (this *minKeyValue) Collate(other Value) int {
	return int(MINKEY - other.Type())
}

func (this *minKeyValue) Copy() Value {
	return this
}

func (this *minKeyValue) Field(field string) (Value, bool) {
	return nil, false
}

func (this *minKeyValue) Index(index int) (Value, bool) {
	return nil, false
}

type maxKeyValue struct {
}

var MAX_KEY_VALUE Value = &maxKeyValue{}

var _MAX_KEY_BYTES = []byte(`{"$maxKey":1}`)

func (this *maxKeyValue) String() string {
	return string(_MAX_KEY_BYTES)
}

func (this *maxKeyValue) MarshalJSON() ([]byte, error) {
	return _MAX_KEY_BYTES, nil
}

func (this *maxKeyValue) Type() Type { return MAXKEY }

func (this *maxKeyValue) Actual() interface{} {
	return nil
}

func (this *maxKeyValue) Equals(other Value) bool {
	return other.Type() == MAXKEY
}

func (this *maxKeyValue) Collate(other Value) int {
	return int(MAXKEY - other.Type())
}

func (this *maxKeyValue) Copy() Value {
	return this
}

func (this *maxKeyValue) Field(field string) (Value, bool) {
	return nil, false
}

func (this *maxKeyValue) Index(index int) (Value, bool) {
	return nil, false
}
