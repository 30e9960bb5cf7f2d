//  Copyright (c) 2014 Couchbase, Inc.
//  Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file
//  except in compliance with the License. You may obtain a copy of the License at
//    http://www.apache.org/licenses/LICENSE-2.0
//  Unless required by applicable law or agreed to in writing, software distributed under the
//  License is distributed on an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND,
//  either express or implied. See the License for the specific language governing permissions
//  and limitations under the License.

/*
Package value represents the document data model. It is the in-memory
representation of document values in flight, and provides the total
cross-type ordering that index keys and range bounds are built on.
*/
package value

import (
	"fmt"
	"time"

	json "github.com/couchbase/go_json"
)

type Tristate int

const (
	NONE Tristate = iota
	FALSE
	TRUE
)

/*
Function ToTristate converts a boolean into a Tristate type.
*/
func ToTristate(b bool) Tristate {
	if b {
		return TRUE
	} else {
		return FALSE
	}
}

/*
Function ToBool converts a Tristate value to a boolean.
*/
func ToBool(t Tristate) bool {
	return t == TRUE
}

/*
The data types supported by Value, in collation order. The two
sentinels MINKEY and MAXKEY bracket every other type; they never
appear in documents, only in range bounds and index keys.
*/
type Type int

const (
	MINKEY = Type(iota) // Below all other values
	NULL                // Explicit null
	NUMBER              // Int or float, compared by mathematical value
	STRING              // UTF-8 string
	OBJECT              // Document
	ARRAY               // Array
	BINARY              // Uninterpreted bytes
	OBJECTID            // 12-byte object id
	BOOLEAN             // Boolean
	DATE                // Millisecond timestamp
	REGEX               // Regular expression with options
	MAXKEY              // Above all other values
)

/*
Stringer interface for types.
*/
func (this Type) String() string {
	return _TYPE_NAMES[this]
}

/*
The _TYPE_NAMES variable is a slice of strings that contains the Type
and its corresponding string representation.
*/
var _TYPE_NAMES = []string{
	MINKEY:   "minKey",
	NULL:     "null",
	NUMBER:   "number",
	STRING:   "string",
	OBJECT:   "object",
	ARRAY:    "array",
	BINARY:   "binary",
	OBJECTID: "objectId",
	BOOLEAN:  "boolean",
	DATE:     "date",
	REGEX:    "regex",
	MAXKEY:   "maxKey",
}

const _MARSHAL_ERROR = "Unexpected marshal error on valid data."

/*
A collection of Value objects. Composite index keys are represented
as Values and compared positionally.
*/
type Values []Value

/*
Positional collation of two composite keys. A shorter key that is a
prefix of a longer key collates before it.
*/
func (this Values) Collate(other Values) int {
	for i, v := range this {
		if i >= len(other) {
			return 1
		}

		c := v.Collate(other[i])
		if c != 0 {
			return c
		}
	}

	if len(this) < len(other) {
		return -1
	}

	return 0
}

func (this Values) Copy() Values {
	rv := make(Values, len(this))
	for i, v := range this {
		rv[i] = v.Copy()
	}
	return rv
}

/*
An interface for storing and manipulating a document value. Each
value type implements the methods that correspond to it.
*/
type Value interface {
	/*
	   String marshaling.
	*/
	fmt.Stringer

	/*
	   JSON marshaling. Non-JSON types emit their extended-JSON
	   escape forms.
	*/
	json.Marshaler

	/*
	   Returns the type of the receiver.
	*/
	Type() Type

	/*
	   Native Go representation.
	*/
	Actual() interface{}

	/*
	   Equality comparison. It is faster than Collate().
	*/
	Equals(other Value) bool

	/*
	   Returns -int, 0 or +int depending on whether the receiver
	   sorts less than, equal to, or greater than the input
	   argument Value. It uses the type order defined above;
	   objects compare field names as well as values.
	*/
	Collate(other Value) int

	/*
	   Returns a Value that is a shallow copy of the receiver.
	*/
	Copy() Value

	/*
	   Access a field in an object. Returns a Value and a boolean
	   indicating whether the field was present. Non-objects
	   return (nil, false).
	*/
	Field(field string) (Value, bool)

	/*
	   Access an entry at a particular index in an array. Returns
	   a Value and a boolean indicating presence. Non-arrays
	   return (nil, false).
	*/
	Index(index int) (Value, bool)
}

/*
Bring a Go native into the value world. Values pass through.
*/
func NewValue(val interface{}) Value {
	if val == nil {
		return NULL_VALUE
	}

	switch val := val.(type) {
	case Value:
		return val
	case bool:
		if val {
			return TRUE_VALUE
		}
		return FALSE_VALUE
	case int:
		return intValue(val)
	case int32:
		return intValue(val)
	case int64:
		return intValue(val)
	case float32:
		return floatValue(val)
	case float64:
		return floatValue(val)
	case string:
		return stringValue(val)
	case []interface{}:
		return sliceValue(val)
	case map[string]interface{}:
		return objectValue(val)
	case []byte:
		return binaryValue(val)
	case time.Time:
		return dateValue(val.UnixNano() / int64(time.Millisecond))
	case []Value:
		rv := make([]interface{}, len(val))
		for i, v := range val {
			rv[i] = v
		}
		return sliceValue(rv)
	default:
		panic(fmt.Sprintf("Cannot create value for type %T.", val))
	}
}

/*
FromJSON ingests a JSON document, honoring the extended-JSON escapes
for the types JSON cannot express directly: {"$minKey":1},
{"$maxKey":1}, {"$oid":"..."}, {"$date":millis},
{"$regex":"...","$options":"..."} and {"$binary":"base64"}.
*/
func FromJSON(bytes []byte) (Value, error) {
	var parsed interface{}
	err := json.Unmarshal(bytes, &parsed)
	if err != nil {
		return nil, err
	}

	return NewValue(fromExtended(parsed)), nil
}

func fromExtended(val interface{}) interface{} {
	switch val := val.(type) {
	case map[string]interface{}:
		if v, ok := extendedEscape(val); ok {
			return v
		}

		rv := make(map[string]interface{}, len(val))
		for k, v := range val {
			rv[k] = fromExtended(v)
		}
		return rv
	case []interface{}:
		rv := make([]interface{}, len(val))
		for i, v := range val {
			rv[i] = fromExtended(v)
		}
		return rv
	default:
		return val
	}
}

func extendedEscape(obj map[string]interface{}) (Value, bool) {
	if len(obj) == 0 || len(obj) > 2 {
		return nil, false
	}

	if _, ok := obj["$minKey"]; ok && len(obj) == 1 {
		return MIN_KEY_VALUE, true
	}
	if _, ok := obj["$maxKey"]; ok && len(obj) == 1 {
		return MAX_KEY_VALUE, true
	}
	if v, ok := obj["$oid"]; ok && len(obj) == 1 {
		if s, ok := v.(string); ok {
			if oid, err := NewObjectIdValue(s); err == nil {
				return oid, true
			}
		}
		return nil, false
	}
	if v, ok := obj["$date"]; ok && len(obj) == 1 {
		switch ms := v.(type) {
		case float64:
			return dateValue(int64(ms)), true
		case int64:
			return dateValue(ms), true
		case int:
			return dateValue(int64(ms)), true
		}
		return nil, false
	}
	if v, ok := obj["$regex"]; ok {
		pattern, sok := v.(string)
		if !sok {
			return nil, false
		}
		options := ""
		if o, ok := obj["$options"]; ok {
			options, sok = o.(string)
			if !sok {
				return nil, false
			}
		} else if len(obj) != 1 {
			return nil, false
		}
		return regexpValue{pattern: pattern, options: options}, true
	}
	if v, ok := obj["$binary"]; ok && len(obj) == 1 {
		if s, ok := v.(string); ok {
			if b, err := decodeBase64(s); err == nil {
				return binaryValue(b), true
			}
		}
		return nil, false
	}

	return nil, false
}
