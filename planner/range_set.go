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
	"sort"
	"strings"

	"github.com/couchbase/docquery/datastore"
	"github.com/couchbase/docquery/errors"
	"github.com/couchbase/docquery/logging"
	"github.com/couchbase/docquery/value"
)

/*
A clause that contributes no index range but must be re-emitted
verbatim for residual evaluation.
*/
type passthroughTerm struct {
	name    string
	operand value.Value
}

/*
A set of FieldRanges determined from constraints on the fields of a
query, that may be used to determine index bounds. A field not
present in the map carries the trivial range.
*/
type FieldRangeSet struct {
	ranges      map[string]*FieldRange
	ns          string
	queries     value.Values
	passthrough []passthroughTerm
}

/*
NewFieldRangeSet builds per-field ranges by walking the predicate
document. Malformed clauses degrade to the trivial range and are
recorded for the matcher; they never fail the whole query.
*/
func NewFieldRangeSet(ns string, query value.Value) *FieldRangeSet {
	rv := &FieldRangeSet{
		ranges:  make(map[string]*FieldRange),
		ns:      ns,
		queries: value.Values{query},
	}

	if query.Type() != value.OBJECT {
		logging.Debugf("non-object predicate for %s treated as trivial", ns)
		return rv
	}

	for _, field := range fieldNames(query) {
		operand, _ := query.Field(field)
		rv.processQueryField(field, operand)
	}

	return rv
}

func (this *FieldRangeSet) processQueryField(field string, operand value.Value) {
	if field == "$and" {
		if operand.Type() != value.ARRAY {
			this.recordMalformed("$and", operand)
			return
		}
		for i := 0; ; i++ {
			clause, ok := operand.Index(i)
			if !ok {
				break
			}
			if clause.Type() != value.OBJECT {
				this.recordMalformed("$and", clause)
				continue
			}
			for _, f := range fieldNames(clause) {
				v, _ := clause.Field(f)
				this.processQueryField(f, v)
			}
		}
		return
	}

	if strings.HasPrefix(field, "$") {
		// $or is handled by FieldRangeOrSet; $where, $nor, $text and
		// friends only matter to the matcher
		if field != "$or" {
			this.passthrough = append(this.passthrough, passthroughTerm{name: field, operand: operand})
		}
		return
	}

	switch {
	case operand.Type() == value.REGEX:
		this.processOpElement(field, "$regex", operand, false)
	case operand.Type() == value.OBJECT && isOperatorObject(operand):
		this.processOpObject(field, operand)
	default:
		this.intersectRange(field, newSargEq(operand))
	}
}

func (this *FieldRangeSet) processOpObject(field string, ops value.Value) {
	names := fieldNames(ops)

	for _, op := range names {
		operand, _ := ops.Field(op)
		switch op {
		case "$not":
			this.processNot(field, operand)
		case "$options":
			// consumed alongside $regex
		case "$regex":
			pattern, sok := operand.Actual().(string)
			if operand.Type() == value.REGEX || !sok {
				this.processOpElement(field, op, operand, false)
				break
			}
			options := ""
			if o, ok := ops.Field("$options"); ok && o.Type() == value.STRING {
				options = o.Actual().(string)
			}
			this.processOpElement(field, op, value.NewRegexpValue(pattern, options), false)
		default:
			this.processOpElement(field, op, operand, false)
		}
	}
}

func (this *FieldRangeSet) processNot(field string, operand value.Value) {
	switch operand.Type() {
	case value.OBJECT:
		for _, op := range fieldNames(operand) {
			v, _ := operand.Field(op)
			this.processOpElement(field, op, v, true)
		}
	case value.REGEX:
		this.processOpElement(field, "$regex", operand, true)
	default:
		this.recordMalformed("$not", operand)
	}
}

func (this *FieldRangeSet) processOpElement(field, op string, operand value.Value, isNot bool) {
	fr, ok := sargFor(op, operand, isNot)
	if !ok || !fr.Nontrivial() {
		// keep the original clause for residual evaluation
		this.passthrough = append(this.passthrough,
			passthroughTerm{name: field, operand: value.NewValue(map[string]interface{}{op: operand})})
	}
	this.intersectRange(field, fr)
}

func (this *FieldRangeSet) intersectRange(field string, fr *FieldRange) {
	if existing, ok := this.ranges[field]; ok {
		existing.Intersect(fr)
	} else {
		this.ranges[field] = fr
	}
}

func (this *FieldRangeSet) recordMalformed(op string, operand value.Value) {
	err := errors.NewMalformedOperandError(op, operand)
	logging.Debugf("%v", err)
	this.passthrough = append(this.passthrough, passthroughTerm{name: op, operand: operand})
}

/*
True if a range was recorded for the given field; the recorded range
may still be trivial (e.g. from $exists).
*/
func (this *FieldRangeSet) HasRange(field string) bool {
	_, ok := this.ranges[field]
	return ok
}

/*
Range for the given field; fields without constraints get a fresh
trivial range, never a shared one.
*/
func (this *FieldRangeSet) Range(field string) *FieldRange {
	if fr, ok := this.ranges[field]; ok {
		return fr
	}
	return trivialRange()
}

/*
The number of nontrivial ranges.
*/
func (this *FieldRangeSet) NNontrivialRanges() int {
	count := 0
	for _, fr := range this.ranges {
		if fr.Nontrivial() {
			count++
		}
	}
	return count
}

/*
True iff no FieldRanges are empty.
*/
func (this *FieldRangeSet) MatchPossible() bool {
	for _, fr := range this.ranges {
		if fr.Empty() {
			return false
		}
	}
	return true
}

func (this *FieldRangeSet) Ns() string {
	return this.ns
}

func (this *FieldRangeSet) GetSpecial() string {
	for _, fr := range this.ranges {
		if fr.special != "" {
			return fr.special
		}
	}
	return ""
}

/*
A simplified query from the extreme values of the nontrivial fields.
If fields is specified, only and exactly those fields appear in the
result, in that order; otherwise the nontrivial fields appear in
sorted order along with the recorded residual clauses.
*/
func (this *FieldRangeSet) SimplifiedQuery(fields []string) value.Value {
	rv := make(map[string]interface{})
	var names []string
	seen := make(map[string]bool)

	if fields == nil {
		for field, fr := range this.ranges {
			if fr.Nontrivial() {
				fields = append(fields, field)
			}
		}
		for _, term := range this.passthrough {
			rv[term.name] = term.operand
			fields = append(fields, term.name)
		}
		sort.Strings(fields)
	}

	for _, field := range fields {
		if seen[field] {
			continue
		}
		seen[field] = true

		fr := this.Range(field)
		if fr.Empty() {
			// an unsatisfiable range has no expressible bounds; a
			// recorded residual clause still stands in for it
			if _, ok := rv[field]; ok {
				names = append(names, field)
			}
			continue
		}
		names = append(names, field)

		if !fr.Nontrivial() {
			// an explicitly requested unconstrained field reads as
			// no bounds unless a residual clause was recorded for it
			if _, ok := rv[field]; !ok {
				rv[field] = map[string]interface{}{}
			}
			continue
		}

		if fr.Equality() {
			rv[field] = fr.Min()
			continue
		}

		bounds := make(map[string]interface{})
		if value.MIN_KEY_VALUE.Collate(fr.Min()) != 0 {
			if fr.MinInclusive() {
				bounds["$gte"] = fr.Min()
			} else {
				bounds["$gt"] = fr.Min()
			}
		}
		if value.MAX_KEY_VALUE.Collate(fr.Max()) != 0 {
			if fr.MaxInclusive() {
				bounds["$lte"] = fr.Max()
			} else {
				bounds["$lt"] = fr.Max()
			}
		}
		rv[field] = bounds
	}

	return value.NewOrderedObjectValue(names, rv)
}

/*
Produce the query's shape fingerprint for plan caching.
*/
func (this *FieldRangeSet) Pattern(sort datastore.KeyPattern) QueryPattern {
	rv := QueryPattern{fieldTypes: make(map[string]PatternType)}

	for field, fr := range this.ranges {
		switch {
		case fr.Empty():
			// an impossible query still has a shape; classify by
			// the tightest kind
			rv.fieldTypes[field] = Equality
		case fr.Equality():
			rv.fieldTypes[field] = Equality
		case fr.Nontrivial():
			lower := value.MIN_KEY_VALUE.Collate(fr.Min()) != 0
			upper := value.MAX_KEY_VALUE.Collate(fr.Max()) != 0
			switch {
			case lower && upper:
				rv.fieldTypes[field] = UpperAndLowerBound
			case lower:
				rv.fieldTypes[field] = LowerBound
			case upper:
				rv.fieldTypes[field] = UpperBound
			}
		}
	}

	rv.sort = normalizeSort(sort)
	return rv
}

/*
Intersection with other: field-wise range intersection, with fields
present in only one operand carried through.
*/
func (this *FieldRangeSet) Intersect(other *FieldRangeSet) *FieldRangeSet {
	for field, ofr := range other.ranges {
		if fr, ok := this.ranges[field]; ok {
			fr.Intersect(ofr)
		} else {
			this.ranges[field] = ofr.Copy()
		}
	}
	this.passthrough = append(this.passthrough, other.passthrough...)
	this.appendQueries(other)
	return this
}

/*
A FieldRangeSet approximation of the documents in this but not in
other. The result is always a superset of the true difference.

Scanning a composite key range yields a multidimensional box. If the
other box contains this box in all dimensions, nothing remains. If it
contains this box in all dimensions but one, the other box's values
can be subtracted along that one dimension. Any other configuration
would produce a non-box result, so this is returned unchanged.
*/
func (this *FieldRangeSet) Subtract(other *FieldRangeSet) *FieldRangeSet {
	nUnincluded := 0
	unincludedField := ""

	thisFields := sortedRangeFields(this.ranges)
	otherFields := sortedRangeFields(other.ranges)

	i, j := 0, 0
	for nUnincluded < 2 && i < len(thisFields) && j < len(otherFields) {
		cmp := strings.Compare(thisFields[i], otherFields[j])
		switch {
		case cmp == 0:
			if this.ranges[thisFields[i]].SubsetOf(other.ranges[otherFields[j]]) {
				// nothing
			} else {
				nUnincluded++
				unincludedField = thisFields[i]
			}
			i++
			j++
		case cmp < 0:
			i++
		default:
			// other has a bound we don't, nothing can be done
			return this
		}
	}

	if j < len(otherFields) {
		// other has a bound we don't, nothing can be done
		return this
	}

	if nUnincluded > 1 {
		return this
	}

	if nUnincluded == 0 {
		this.makeEmpty()
		return this
	}

	this.ranges[unincludedField].Difference(other.ranges[unincludedField])
	this.appendQueries(other)
	return this
}

/*
A new FieldRangeSet restricted to the named fields; fields absent
here stay absent, and therefore trivial.
*/
func (this *FieldRangeSet) Subset(fields []string) *FieldRangeSet {
	rv := &FieldRangeSet{
		ranges:  make(map[string]*FieldRange, len(fields)),
		ns:      this.ns,
		queries: this.queries,
	}
	for _, field := range fields {
		if fr, ok := this.ranges[field]; ok {
			rv.ranges[field] = fr.Copy()
		}
	}
	return rv
}

func (this *FieldRangeSet) Copy() *FieldRangeSet {
	rv := &FieldRangeSet{
		ranges:      make(map[string]*FieldRange, len(this.ranges)),
		ns:          this.ns,
		queries:     this.queries,
		passthrough: this.passthrough,
	}
	for field, fr := range this.ranges {
		rv.ranges[field] = fr.Copy()
	}
	return rv
}

/*
An ordered list of bounds generated using an index key pattern and
traversal direction.

NOTE This function is deprecated in the query optimizer and only
currently used by the shard key range calculation.
*/
func (this *FieldRangeSet) IndexBounds(keyPattern datastore.KeyPattern, direction int) datastore.BoundList {
	builders := []boundBuilder{{}}

	ineq := false // until ineq, we are dealing with equality and $in bounds only
	for _, part := range keyPattern {
		fr := this.Range(part.Field)
		forward := partForward(part.Direction, direction)

		if !ineq {
			if fr.Equality() {
				for i := range builders {
					builders[i].start = append(builders[i].start, fr.Min())
					builders[i].end = append(builders[i].end, fr.Min())
				}
				continue
			}

			if !fr.InQuery() {
				ineq = true
			}
			intervals := fr.Intervals()
			newBuilders := make([]boundBuilder, 0, len(builders)*len(intervals))
			for _, b := range builders {
				if forward {
					for k := 0; k < len(intervals); k++ {
						newBuilders = appendBoundBuilder(newBuilders, b.start, b.end, intervals[k])
					}
				} else {
					for k := len(intervals) - 1; k >= 0; k-- {
						iv := FieldInterval{Lower: intervals[k].Upper, Upper: intervals[k].Lower}
						newBuilders = appendBoundBuilder(newBuilders, b.start, b.end, iv)
					}
				}
			}
			builders = newBuilders
			continue
		}

		// after an inequality, only whole-range extremes are usable
		start, end := fr.Min(), fr.Max()
		if !forward {
			start, end = end, start
		}
		for i := range builders {
			builders[i].start = append(builders[i].start, start)
			builders[i].end = append(builders[i].end, end)
		}
	}

	rv := make(datastore.BoundList, 0, len(builders))
	for _, b := range builders {
		rv = append(rv, datastore.Bound{Start: b.start, End: b.end})
	}
	return rv
}

type boundBuilder struct {
	start value.Values
	end   value.Values
}

func appendBoundBuilder(builders []boundBuilder, start, end value.Values, iv FieldInterval) []boundBuilder {
	ns := make(value.Values, len(start), len(start)+1)
	copy(ns, start)
	ne := make(value.Values, len(end), len(end)+1)
	copy(ne, end)
	return append(builders, boundBuilder{start: append(ns, iv.Lower.Bound), end: append(ne, iv.Upper.Bound)})
}

func (this *FieldRangeSet) appendQueries(other *FieldRangeSet) {
	this.queries = append(this.queries, other.queries...)
}

func (this *FieldRangeSet) makeEmpty() {
	for _, fr := range this.ranges {
		fr.MakeEmpty()
	}
}

// the trivial-range accessor hands out fresh instances so no caller
// can corrupt a shared one
func trivialRange() *FieldRange {
	return newTrivialFieldRange()
}

func fieldNames(obj value.Value) []string {
	fields := obj.Actual().(map[string]interface{})
	rv := make([]string, 0, len(fields))
	for f := range fields {
		rv = append(rv, f)
	}
	sort.Strings(rv)
	return rv
}

func isOperatorObject(obj value.Value) bool {
	for _, f := range fieldNames(obj) {
		if strings.HasPrefix(f, "$") {
			return true
		}
	}
	return false
}

func sortedRangeFields(ranges map[string]*FieldRange) []string {
	rv := make([]string, 0, len(ranges))
	for f := range ranges {
		rv = append(rv, f)
	}
	sort.Strings(rv)
	return rv
}

func partForward(keyDirection, scanDirection int) bool {
	key := 1
	if keyDirection < 0 {
		key = -1
	}
	scan := 1
	if scanDirection < 0 {
		scan = -1
	}
	return key*scan > 0
}
