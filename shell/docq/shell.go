//  Copyright (c) 2014 Couchbase, Inc.
//  Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file
//  except in compliance with the License. You may obtain a copy of the License at
//    http://www.apache.org/licenses/LICENSE-2.0
//  Unless required by applicable law or agreed to in writing, software distributed under the
//  License is distributed on an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND,
//  either express or implied. See the License for the specific language governing permissions
//  and limitations under the License.

/*
Package docq implements the interactive range-inspection shell: type
a predicate document and see the derived ranges, simplified query and
index bounds.
*/
package docq

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/peterh/liner"

	"github.com/couchbase/docquery/datastore"
	"github.com/couchbase/docquery/planner"
	"github.com/couchbase/docquery/value"
)

const _HISTORY_FILE = ".docq_history"

type Shell struct {
	namespace  string
	keyPattern datastore.KeyPattern
	direction  int
	out        io.Writer
}

func NewShell(namespace string) *Shell {
	return &Shell{
		namespace: namespace,
		direction: 1,
		out:       os.Stdout,
	}
}

/*
Run reads lines until EOF or \quit. A line starting with a backslash
is a shell command; anything else is parsed as a predicate document.
*/
func (this *Shell) Run() error {
	line := liner.NewLiner()
	line.SetCtrlCAborts(false)
	line.SetMultiLineMode(true)
	defer line.Close()

	historyPath := filepath.Join(os.Getenv("HOME"), _HISTORY_FILE)
	if f, err := os.Open(historyPath); err == nil {
		line.ReadHistory(f)
		f.Close()
	}
	defer func() {
		if f, err := os.Create(historyPath); err == nil {
			line.WriteHistory(f)
			f.Close()
		}
	}()

	for {
		input, err := line.Prompt("docq> ")
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		line.AppendHistory(input)

		if strings.HasPrefix(input, "\\") {
			if quit := this.command(input); quit {
				return nil
			}
			continue
		}

		this.evaluate(input)
	}
}

func (this *Shell) command(input string) bool {
	parts := strings.SplitN(input, " ", 2)
	switch parts[0] {
	case "\\quit", "\\q":
		return true
	case "\\index":
		if len(parts) < 2 {
			fmt.Fprintf(this.out, "usage: \\index {\"field\":1,...}\n")
			return false
		}
		kp, err := ParseKeyPattern(parts[1])
		if err != nil {
			fmt.Fprintf(this.out, "bad key pattern: %v\n", err)
			return false
		}
		this.keyPattern = kp
	case "\\direction":
		if len(parts) == 2 && strings.TrimSpace(parts[1]) == "-1" {
			this.direction = -1
		} else {
			this.direction = 1
		}
	default:
		fmt.Fprintf(this.out, "commands: \\index, \\direction, \\quit\n")
	}
	return false
}

func (this *Shell) evaluate(input string) {
	query, err := value.FromJSON([]byte(input))
	if err != nil {
		fmt.Fprintf(this.out, "parse error: %v\n", err)
		return
	}

	frs := planner.NewFieldRangeSet(this.namespace, query)
	fmt.Fprintf(this.out, "match possible: %v\n", frs.MatchPossible())
	fmt.Fprintf(this.out, "simplified:     %s\n", frs.SimplifiedQuery(nil))

	if len(this.keyPattern) == 0 {
		return
	}

	frv, ferr := planner.NewFieldRangeVector(frs,
		datastore.IndexSpec{Name: "shell", KeyPattern: this.keyPattern}, this.direction)
	if ferr != nil {
		fmt.Fprintf(this.out, "error %d: %s\n", ferr.Code(), ferr.Error())
		return
	}

	fmt.Fprintf(this.out, "ranges:         %s\n", frv.Obj())
	fmt.Fprintf(this.out, "legs:           %d\n", frv.Size())
	if frv.MatchPossible() {
		fmt.Fprintf(this.out, "start key:      %s\n", keyString(frv.StartKey()))
		fmt.Fprintf(this.out, "end key:        %s\n", keyString(frv.EndKey()))
	}
}

func keyString(key value.Values) string {
	parts := make([]string, len(key))
	for i, v := range key {
		parts[i] = v.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

/*
ParseKeyPattern reads a key pattern out of a JSON object of field to
direction. Field order follows the sorted field names of the object.
*/
func ParseKeyPattern(input string) (datastore.KeyPattern, error) {
	v, err := value.FromJSON([]byte(input))
	if err != nil {
		return nil, err
	}
	if v.Type() != value.OBJECT {
		return nil, fmt.Errorf("key pattern must be an object")
	}

	fields := v.Actual().(map[string]interface{})
	names := make([]string, 0, len(fields))
	for n := range fields {
		names = append(names, n)
	}
	sort.Strings(names)

	rv := make(datastore.KeyPattern, 0, len(names))
	for _, n := range names {
		direction := 1
		if d := value.NewValue(fields[n]); d.Type() == value.NUMBER && d.Collate(value.NewValue(0)) < 0 {
			direction = -1
		}
		rv = append(rv, datastore.KeyPart{Field: n, Direction: direction})
	}
	return rv, nil
}
