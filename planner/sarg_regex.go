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
	"github.com/couchbase/docquery/value"
	"github.com/dlclark/regexp2"
)

/*
A regex reduces to the range [prefix, SimpleRegexEnd(prefix)) when it
anchors on a literal prefix; otherwise it admits the whole string
type. The compiled regex rides along as a residual filter so the
matcher can reject the strings inside the range that the pattern
does not accept.
*/
func newSargRegex(operand value.Value) (*FieldRange, bool) {
	var pattern, options string

	switch operand := operand.(type) {
	case value.RegexValue:
		pattern = operand.Pattern()
		options = operand.Options()
	default:
		if operand.Type() != value.STRING {
			return newSargDefault(), false
		}
		pattern = operand.Actual().(string)
	}

	prefix, purePrefix := SimpleRegex(pattern, options)

	var intervals []FieldInterval
	if prefix != "" {
		lower := value.NewValue(prefix)
		end := SimpleRegexEnd(prefix)
		if end != "" {
			intervals = append(intervals,
				NewFieldInterval(lower, true, value.NewValue(end), false))
		} else {
			// prefix is all 0xFF bytes; no string upper bound exists
			intervals = append(intervals,
				NewFieldInterval(lower, true, value.EMPTY_OBJECT_VALUE, false))
		}
	} else {
		// any string may match
		intervals = append(intervals,
			NewFieldInterval(value.EMPTY_STRING_VALUE, true, value.EMPTY_OBJECT_VALUE, false))
	}

	rv := newFieldRange(intervals, operand)

	// a pure prefix is exactly the range; everything else needs the
	// regex as a post-filter
	if !purePrefix {
		re, err := regexp2.Compile(pattern, regexOptions(options))
		if err != nil {
			return newSargDefault(), false
		}
		rv.residuals = append(rv.residuals, re)
	}

	return rv, true
}

func regexOptions(options string) regexp2.RegexOptions {
	var rv regexp2.RegexOptions
	for i := 0; i < len(options); i++ {
		switch options[i] {
		case 'i':
			rv |= regexp2.IgnoreCase
		case 'm':
			rv |= regexp2.Multiline
		case 's':
			rv |= regexp2.Singleline
		case 'x':
			rv |= regexp2.IgnorePatternWhitespace
		}
	}
	return rv
}
