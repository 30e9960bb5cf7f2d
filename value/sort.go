//  Copyright (c) 2014 Couchbase, Inc.
//  Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file
//  except in compliance with the License. You may obtain a copy of the License at
//    http://www.apache.org/licenses/LICENSE-2.0
//  Unless required by applicable law or agreed to in writing, software distributed under the
//  License is distributed on an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND,
//  either express or implied. See the License for the specific language governing permissions
//  and limitations under the License.

package value

// Sorter sorts a Values slice in place, in collation order.
type Sorter struct {
	values Values
}

func NewSorter(values Values) *Sorter {
	return &Sorter{values: values}
}

func (this *Sorter) Len() int {
	return len(this.values)
}

func (this *Sorter) Less(i, j int) bool {
	return this.values[i].Collate(this.values[j]) < 0
}

func (this *Sorter) Swap(i, j int) {
	this.values[i], this.values[j] = this.values[j], this.values[i]
}
