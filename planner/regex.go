//  Copyright (c) 2014 Couchbase, Inc.
//  Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file
//  except in compliance with the License. You may obtain a copy of the License at
//    http://www.apache.org/licenses/LICENSE-2.0
//  Unless required by applicable law or agreed to in writing, software distributed under the
//  License is distributed on an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND,
//  either express or implied. See the License for the specific language governing permissions
//  and limitations under the License.

package planner

import (
	"strings"
)

/*
SimpleRegex returns a string that, used as a prefix bound, matches a
superset of the regex. It returns "" for regular expressions that do
not begin with a usable literal anchor. purePrefix reports whether
the regex is exactly equivalent to the prefix bound, i.e. the whole
pattern was consumed as a literal with no wildcard tail.
*/
func SimpleRegex(pattern, flags string) (prefix string, purePrefix bool) {
	var multilineOK bool
	switch {
	case strings.HasPrefix(pattern, "\\A"):
		multilineOK = true
		pattern = pattern[2:]
	case strings.HasPrefix(pattern, "^"):
		multilineOK = false
		pattern = pattern[1:]
	default:
		return "", false
	}

	extended := false
	for i := 0; i < len(flags); i++ {
		switch flags[i] {
		case 'm':
			// multiline anchors only stay usable under \A
			if multilineOK {
				continue
			}
			return "", false
		case 'x':
			extended = true
		default:
			// case-insensitive and the rest defeat the index
			return "", false
		}
	}

	var ss []byte
	r := ""
	done := false
	i := 0
	for i < len(pattern) && !done {
		c := pattern[i]
		i++
		switch {
		case c == '*' || c == '?':
			// these are the only two symbols that make the last
			// char optional
			r = string(ss)
			if len(r) > 0 {
				r = r[:len(r)-1]
			}
			return r, false
		case c == '\\':
			if i >= len(pattern) {
				r = string(ss)
				done = true
				break
			}
			c = pattern[i]
			i++
			if (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') || c == 0 {
				// slash followed by an alphanumeric is a character
				// class, not a literal
				r = string(ss)
				done = true
			} else {
				ss = append(ss, c)
			}
		case strings.IndexByte("^$.[|()+{", c) >= 0:
			// metacharacters end the literal portion
			r = string(ss)
			done = true
		case extended && c == '#':
			// comment
			r = string(ss)
			done = true
		case extended && (c == ' ' || c == '\t' || c == '\n' || c == '\r'):
			continue
		default:
			ss = append(ss, c)
		}
	}

	if r == "" && i >= len(pattern) && !done {
		r = string(ss)
		return r, r != ""
	}

	return r, false
}

/*
SimpleRegexEnd computes the smallest string strictly greater than
every string having the given prefix: increment the last byte,
carrying on overflow by dropping trailing 0xFF bytes. An empty result
means no string upper bound exists.
*/
func SimpleRegexEnd(prefix string) string {
	bytes := []byte(prefix)
	for len(bytes) > 0 && bytes[len(bytes)-1] == 0xFF {
		bytes = bytes[:len(bytes)-1]
	}

	if len(bytes) == 0 {
		return ""
	}

	bytes[len(bytes)-1]++
	return string(bytes)
}
