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
	"time"
)

/*
dateValue holds milliseconds since the Unix epoch.
*/
type dateValue int64

func NewDateValue(t time.Time) Value {
	return dateValue(t.UnixNano() / int64(time.Millisecond))
}

func NewDateMillisValue(ms int64) Value {
	return dateValue(ms)
}

func (this dateValue) String() string {
	b, _ := this.MarshalJSON()
	return string(b)
}

func (this dateValue) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf(`{"$date":%d}`, int64(this))), nil
}

func (this dateValue) Type() Type { return DATE }

func (this dateValue) Actual() interface{} {
	return int64(this)
}

func (this dateValue) Equals(other Value) bool {
	switch other := other.(type) {
	case dateValue:
		return this == other
	default:
		return false
	}
}

func (this dateValue) Collate(other Value) int {
	switch other := other.(type) {
	case dateValue:
		switch {
		case this < other:
			return -1
		case this > other:
			return 1
		default:
			return 0
		}
	default:
		return int(DATE - other.Type())
	}
}

func (this dateValue) Copy() Value {
	return this
}

func (this dateValue) Field(field string) (Value, bool) {
	return nil, false
}

func (this dateValue) Index(index int) (Value, bool) {
	return nil, false
}
