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
	"fmt"
	"strings"

	json "github.com/couchbase/go_json"
)

/*
stringValue is defined as type string.
*/
type stringValue string

/*
Define a value representing an empty string and
assign it to EMPTY_STRING_VALUE.
*/
var EMPTY_STRING_VALUE Value = stringValue("")

/*
Use built-in JSON string marshalling, which handles special
characters.
*/
func (this stringValue) String() string {
	bytes, err := json.MarshalNoEscape(string(this))
	if err != nil {
		// We should not get here.
		panic(fmt.Sprintf("Error marshaling string Value %s: %v", string(this), err))
	}
	return string(bytes)
}

func (this stringValue) MarshalJSON() ([]byte, error) {
	return json.MarshalNoEscape(string(this))
}

func (this stringValue) Type() Type { return STRING }

func (this stringValue) Actual() interface{} {
	return string(this)
}

func (this stringValue) Equals(other Value) bool {
	switch other := other.(type) {
	case stringValue:
		return this == other
	default:
		return false
	}
}

/*
Strings compare bytewise, which for UTF-8 matches code point order.
*/
func (this stringValue) Collate(other Value) int {
	switch other := other.(type) {
	case stringValue:
		return strings.Compare(string(this), string(other))
	default:
		return int(STRING - other.Type())
	}
}

func (this stringValue) Copy() Value {
	return this
}

func (this stringValue) Field(field string) (Value, bool) {
	return nil, false
}

func (this stringValue) Index(index int) (Value, bool) {
	return nil, false
}
