//  Copyright (c) 2014 Couchbase, Inc.
//  Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file
//  except in compliance with the License. You may obtain a copy of the License at
//    http://www.apache.org/licenses/LICENSE-2.0
//  Unless required by applicable law or agreed to in writing, software distributed under the
//  License is distributed on an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND,
//  either express or implied. See the License for the specific language governing permissions
//  and limitations under the License.

package datastore

import (
	"encoding/binary"
	"encoding/hex"
	"fmt"
	"math"
	"sort"

	"github.com/couchbase/docquery/value"
)

/*
Order-preserving key encoding: for any two composite keys a and b,
bytes.Compare(EncodeKey(a), EncodeKey(b)) has the same sign as
a.Collate(b). Each element starts with a type tag in collation
order. Integers ride the double path, so integers beyond 2^53
collapse to the nearest double.
*/

const (
	_TAG_MINKEY   = 0x02
	_TAG_NULL     = 0x05
	_TAG_NUMBER   = 0x10
	_TAG_STRING   = 0x15
	_TAG_OBJECT   = 0x20
	_TAG_ARRAY    = 0x25
	_TAG_BINARY   = 0x30
	_TAG_OBJECTID = 0x35
	_TAG_BOOLEAN  = 0x40
	_TAG_DATE     = 0x45
	_TAG_REGEX    = 0x50
	_TAG_MAXKEY   = 0xF0
)

func EncodeKey(vals value.Values) []byte {
	var buf []byte
	for _, v := range vals {
		buf = encodeValue(buf, v)
	}
	return buf
}

func encodeValue(buf []byte, v value.Value) []byte {
	switch v.Type() {
	case value.MINKEY:
		return append(buf, _TAG_MINKEY)
	case value.NULL:
		return append(buf, _TAG_NULL)
	case value.NUMBER:
		buf = append(buf, _TAG_NUMBER)
		var f float64
		switch a := v.Actual().(type) {
		case int64:
			f = float64(a)
		case float64:
			f = a
		}
		if math.IsNaN(f) {
			return append(buf, 0x00)
		}
		buf = append(buf, 0x01)
		return appendFloatBits(buf, f)
	case value.STRING:
		buf = append(buf, _TAG_STRING)
		return appendEscaped(buf, []byte(v.Actual().(string)))
	case value.OBJECT:
		buf = append(buf, _TAG_OBJECT)
		fields := v.Actual().(map[string]interface{})
		names := make([]string, 0, len(fields))
		for n := range fields {
			names = append(names, n)
		}
		sort.Strings(names)
		buf = appendUint32(buf, uint32(len(names)))
		for _, n := range names {
			buf = appendEscaped(buf, []byte(n))
			buf = encodeValue(buf, value.NewValue(fields[n]))
		}
		return buf
	case value.ARRAY:
		buf = append(buf, _TAG_ARRAY)
		elems := v.Actual().([]interface{})
		for _, e := range elems {
			buf = encodeValue(buf, value.NewValue(e))
		}
		return append(buf, 0x00)
	case value.BINARY:
		buf = append(buf, _TAG_BINARY)
		b := v.Actual().([]byte)
		buf = appendUint32(buf, uint32(len(b)))
		return append(buf, b...)
	case value.OBJECTID:
		buf = append(buf, _TAG_OBJECTID)
		b, _ := hex.DecodeString(v.Actual().(string))
		return append(buf, b...)
	case value.BOOLEAN:
		buf = append(buf, _TAG_BOOLEAN)
		if v.Actual().(bool) {
			return append(buf, 0x01)
		}
		return append(buf, 0x00)
	case value.DATE:
		buf = append(buf, _TAG_DATE)
		return appendInt64(buf, v.Actual().(int64))
	case value.REGEX:
		buf = append(buf, _TAG_REGEX)
		re := v.(value.RegexValue)
		buf = appendEscaped(buf, []byte(re.Pattern()))
		return appendEscaped(buf, []byte(re.Options()))
	case value.MAXKEY:
		return append(buf, _TAG_MAXKEY)
	default:
		panic(fmt.Sprintf("cannot encode value of type %s", v.Type()))
	}
}

/*
DecodeKey decodes n leading elements of an encoded composite key and
returns the remaining bytes.
*/
func DecodeKey(buf []byte, n int) (value.Values, []byte, error) {
	rv := make(value.Values, 0, n)
	for i := 0; i < n; i++ {
		var v value.Value
		var err error
		v, buf, err = decodeValue(buf)
		if err != nil {
			return nil, nil, err
		}
		rv = append(rv, v)
	}
	return rv, buf, nil
}

func decodeValue(buf []byte) (value.Value, []byte, error) {
	if len(buf) == 0 {
		return nil, nil, fmt.Errorf("truncated key")
	}

	tag := buf[0]
	buf = buf[1:]
	switch tag {
	case _TAG_MINKEY:
		return value.MIN_KEY_VALUE, buf, nil
	case _TAG_NULL:
		return value.NULL_VALUE, buf, nil
	case _TAG_NUMBER:
		if len(buf) < 1 {
			return nil, nil, fmt.Errorf("truncated number")
		}
		if buf[0] == 0x00 {
			return value.NewValue(math.NaN()), buf[1:], nil
		}
		if len(buf) < 9 {
			return nil, nil, fmt.Errorf("truncated number")
		}
		f := floatFromBits(buf[1:9])
		return value.NewValue(f), buf[9:], nil
	case _TAG_STRING:
		b, rest, err := readEscaped(buf)
		if err != nil {
			return nil, nil, err
		}
		return value.NewValue(string(b)), rest, nil
	case _TAG_OBJECT:
		if len(buf) < 4 {
			return nil, nil, fmt.Errorf("truncated object")
		}
		count := binary.BigEndian.Uint32(buf)
		buf = buf[4:]
		fields := make(map[string]interface{}, count)
		for i := uint32(0); i < count; i++ {
			nb, rest, err := readEscaped(buf)
			if err != nil {
				return nil, nil, err
			}
			var fv value.Value
			fv, buf, err = decodeValue(rest)
			if err != nil {
				return nil, nil, err
			}
			fields[string(nb)] = fv
		}
		return value.NewValue(fields), buf, nil
	case _TAG_ARRAY:
		var elems []interface{}
		for {
			if len(buf) == 0 {
				return nil, nil, fmt.Errorf("truncated array")
			}
			if buf[0] == 0x00 {
				return value.NewValue(elems), buf[1:], nil
			}
			var ev value.Value
			var err error
			ev, buf, err = decodeValue(buf)
			if err != nil {
				return nil, nil, err
			}
			elems = append(elems, ev)
		}
	case _TAG_BINARY:
		if len(buf) < 4 {
			return nil, nil, fmt.Errorf("truncated binary")
		}
		n := binary.BigEndian.Uint32(buf)
		buf = buf[4:]
		if uint32(len(buf)) < n {
			return nil, nil, fmt.Errorf("truncated binary")
		}
		b := make([]byte, n)
		copy(b, buf[:n])
		return value.NewValue(b), buf[n:], nil
	case _TAG_OBJECTID:
		if len(buf) < 12 {
			return nil, nil, fmt.Errorf("truncated object id")
		}
		v, err := value.NewObjectIdValue(hex.EncodeToString(buf[:12]))
		if err != nil {
			return nil, nil, err
		}
		return v, buf[12:], nil
	case _TAG_BOOLEAN:
		if len(buf) < 1 {
			return nil, nil, fmt.Errorf("truncated boolean")
		}
		return value.NewValue(buf[0] == 0x01), buf[1:], nil
	case _TAG_DATE:
		if len(buf) < 8 {
			return nil, nil, fmt.Errorf("truncated date")
		}
		ms := int64(binary.BigEndian.Uint64(buf) ^ (1 << 63))
		return value.NewDateMillisValue(ms), buf[8:], nil
	case _TAG_REGEX:
		pb, rest, err := readEscaped(buf)
		if err != nil {
			return nil, nil, err
		}
		ob, rest, err := readEscaped(rest)
		if err != nil {
			return nil, nil, err
		}
		return value.NewRegexpValue(string(pb), string(ob)), rest, nil
	case _TAG_MAXKEY:
		return value.MAX_KEY_VALUE, buf, nil
	default:
		return nil, nil, fmt.Errorf("unknown key tag 0x%02x", tag)
	}
}

// sign-flip transform so the IEEE-754 bit patterns sort like the
// numbers they encode
func appendFloatBits(buf []byte, f float64) []byte {
	if f == 0 {
		f = 0 // normalize negative zero
	}
	bits := math.Float64bits(f)
	if f >= 0 {
		bits ^= 1 << 63
	} else {
		bits = ^bits
	}
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], bits)
	return append(buf, b[:]...)
}

func floatFromBits(b []byte) float64 {
	bits := binary.BigEndian.Uint64(b)
	if bits&(1<<63) != 0 {
		bits ^= 1 << 63
	} else {
		bits = ^bits
	}
	return math.Float64frombits(bits)
}

func appendInt64(buf []byte, v int64) []byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], uint64(v)^(1<<63))
	return append(buf, b[:]...)
}

func appendUint32(buf []byte, v uint32) []byte {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	return append(buf, b[:]...)
}

// 0x00 bytes are escaped as 0x00 0xFF and the sequence terminated by
// 0x00 0x00, keeping bytewise order intact
func appendEscaped(buf, data []byte) []byte {
	for _, c := range data {
		if c == 0x00 {
			buf = append(buf, 0x00, 0xFF)
		} else {
			buf = append(buf, c)
		}
	}
	return append(buf, 0x00, 0x00)
}

func readEscaped(buf []byte) ([]byte, []byte, error) {
	var rv []byte
	for i := 0; i < len(buf); i++ {
		c := buf[i]
		if c != 0x00 {
			rv = append(rv, c)
			continue
		}
		if i+1 >= len(buf) {
			return nil, nil, fmt.Errorf("truncated escape")
		}
		if buf[i+1] == 0x00 {
			return rv, buf[i+2:], nil
		}
		rv = append(rv, 0x00)
		i++
	}
	return nil, nil, fmt.Errorf("unterminated escape")
}
