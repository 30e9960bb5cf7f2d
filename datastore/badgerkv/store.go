//  Copyright (c) 2014 Couchbase, Inc.
//  Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file
//  except in compliance with the License. You may obtain a copy of the License at
//    http://www.apache.org/licenses/LICENSE-2.0
//  Unless required by applicable law or agreed to in writing, software distributed under the
//  License is distributed on an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND,
//  either express or implied. See the License for the specific language governing permissions
//  and limitations under the License.

/*
Package badgerkv keeps encoded index keys in a Badger store and runs
range scans driven by the planner's skip protocol. It exists to put a
real sorted iterator under the cursor-advancement machinery; a
production deployment would substitute its own B-tree.
*/
package badgerkv

import (
	"fmt"

	"github.com/dgraph-io/badger/v4"

	"github.com/couchbase/docquery/datastore"
	"github.com/couchbase/docquery/logging"
	"github.com/couchbase/docquery/planner"
	"github.com/couchbase/docquery/value"
)

// stored keys are <index prefix><encoded composite><0x01><doc id>
const _DOC_SEPARATOR = 0x01

type Store struct {
	db *badger.DB
}

/*
NewStore opens a Badger-backed index store. An empty path keeps the
store in memory.
*/
func NewStore(path string) (*Store, error) {
	opts := badger.DefaultOptions(path).WithLogger(nil)
	if path == "" {
		opts = opts.WithInMemory(true)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

func (this *Store) Close() error {
	return this.db.Close()
}

/*
Insert adds one index entry: the document's composite key for the
named index, pointing at the document id.
*/
func (this *Store) Insert(index string, key value.Values, docID string) error {
	stored := indexPrefix(index)
	stored = append(stored, datastore.EncodeKey(key)...)
	stored = append(stored, _DOC_SEPARATOR)
	stored = append(stored, docID...)
	return this.db.Update(func(txn *badger.Txn) error {
		return txn.Set(stored, []byte(docID))
	})
}

/*
IndexDocument inserts entries for every key produced by the index key
pattern over the document, expanding array fields into one entry per
element.
*/
func (this *Store) IndexDocument(spec datastore.IndexSpec, doc value.Value, docID string) error {
	keys := compositeKeys(spec.KeyPattern, doc)
	for _, key := range keys {
		if err := this.Insert(spec.Name, key, docID); err != nil {
			return err
		}
	}
	return nil
}

/*
Scan visits the index keys admitted by the vector, in index order,
driving the sorted iterator with the vector's skip hints. Only
forward scans are supported here.
*/
func (this *Store) Scan(frv *planner.FieldRangeVector) ([]string, error) {
	if frv.Direction() < 0 {
		return nil, fmt.Errorf("reverse scans are not supported by the badger store")
	}
	if !frv.MatchPossible() {
		return nil, nil
	}

	n := len(frv.IndexSpec().KeyPattern)
	prefix := indexPrefix(frv.IndexSpec().Name)

	var ids []string
	err := this.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()

		iter := frv.NewIterator()
		iter.PrepDive()
		it.Seek(joinKey(prefix, datastore.EncodeKey(frv.StartKey())))

		for it.Valid() {
			stored := it.Item().Key()
			curr, rest, err := datastore.DecodeKey(stored[len(prefix):], n)
			if err != nil {
				return err
			}

			r := iter.Advance(curr)
			switch {
			case r == -2:
				return nil
			case r == -1:
				if len(rest) > 0 && rest[0] == _DOC_SEPARATOR {
					ids = append(ids, string(rest[1:]))
				}
				it.Next()
			default:
				target := make(value.Values, n)
				copy(target, curr[:r])
				copy(target[r:], iter.Cmp()[r:])
				if iter.After() {
					// skip past every key sharing the first r+1
					// elements of the target
					seek := joinKey(prefix, datastore.EncodeKey(target[:r+1]))
					it.Seek(append(seek, 0xFF))
				} else {
					it.Seek(joinKey(prefix, datastore.EncodeKey(target)))
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logging.Debugf("scan of %s returned %d entries", frv.IndexSpec().Name, len(ids))
	return ids, nil
}

func indexPrefix(index string) []byte {
	rv := make([]byte, 0, len(index)+2)
	rv = append(rv, index...)
	return append(rv, 0x00, 0x00)
}

func joinKey(prefix, key []byte) []byte {
	rv := make([]byte, 0, len(prefix)+len(key)+1)
	rv = append(rv, prefix...)
	return append(rv, key...)
}

/*
All composite keys a document contributes under a key pattern, one
per combination of array elements on multikey fields.
*/
func compositeKeys(keyPattern datastore.KeyPattern, doc value.Value) []value.Values {
	rv := []value.Values{nil}
	for _, part := range keyPattern {
		e, ok := doc.Field(part.Field)
		if !ok {
			e = value.NULL_VALUE
		}

		var alternatives value.Values
		if e.Type() == value.ARRAY {
			for i := 0; ; i++ {
				el, ok := e.Index(i)
				if !ok {
					break
				}
				alternatives = append(alternatives, el)
			}
			if len(alternatives) == 0 {
				alternatives = value.Values{e}
			}
		} else {
			alternatives = value.Values{e}
		}

		next := make([]value.Values, 0, len(rv)*len(alternatives))
		for _, head := range rv {
			for _, alt := range alternatives {
				key := make(value.Values, len(head), len(head)+1)
				copy(key, head)
				next = append(next, append(key, alt))
			}
		}
		rv = next
	}
	return rv
}
