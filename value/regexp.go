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
	"strings"
)

/*
RegexValue exposes the pattern and options of a regex-typed Value.
*/
type RegexValue interface {
	Value
	Pattern() string
	Options() string
}

/*
regexpValue carries a regular expression pattern and its option
flags. The pattern is not compiled here; the planner decides whether
it reduces to a prefix range or needs a residual matcher.
*/
type regexpValue struct {
	pattern string
	options string
}

func NewRegexpValue(pattern, options string) Value {
	return regexpValue{pattern: pattern, options: options}
}

func (this regexpValue) String() string {
	b, _ := this.MarshalJSON()
	return string(b)
}

func (this regexpValue) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"$regex":`)
	pb, err := stringValue(this.pattern).MarshalJSON()
	if err != nil {
		return nil, err
	}
	buf.Write(pb)
	buf.WriteString(`,"$options":`)
	ob, err := stringValue(this.options).MarshalJSON()
	if err != nil {
		return nil, err
	}
	buf.Write(ob)
	buf.WriteString("}")
	return buf.Bytes(), nil
}

func (this regexpValue) Type() Type { return REGEX }

func (this regexpValue) Actual() interface{} {
	return this.pattern
}

/*
Pattern accessors used by the planner's prefix heuristic.
*/
func (this regexpValue) Pattern() string {
	return this.pattern
}

func (this regexpValue) Options() string {
	return this.options
}

func (this regexpValue) Equals(other Value) bool {
	switch other := other.(type) {
	case regexpValue:
		return this == other
	default:
		return false
	}
}

func (this regexpValue) Collate(other Value) int {
	switch other := other.(type) {
	case regexpValue:
		cmp := strings.Compare(this.pattern, other.pattern)
		if cmp != 0 {
			return cmp
		}
		return strings.Compare(this.options, other.options)
	default:
		return int(REGEX - other.Type())
	}
}

func (this regexpValue) Copy() Value {
	return this
}

func (this regexpValue) Field(field string) (Value, bool) {
	return nil, false
}

func (this regexpValue) Index(index int) (Value, bool) {
	return nil, false
}
