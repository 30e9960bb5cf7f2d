//  Copyright (c) 2014 Couchbase, Inc.
//  Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file
//  except in compliance with the License. You may obtain a copy of the License at
//    http://www.apache.org/licenses/LICENSE-2.0
//  Unless required by applicable law or agreed to in writing, software distributed under the
//  License is distributed on an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND,
//  either express or implied. See the License for the specific language governing permissions
//  and limitations under the License.

package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/couchbase/docquery/logging"
	"github.com/couchbase/docquery/shell/docq"
)

var namespace = flag.String("namespace", "test.docq", "Namespace reported for derived range sets")
var logLevel = flag.String("log-level", "info", "Log level: none, fatal, severe, error, warn, info, debug, trace")

func main() {
	flag.Parse()

	if level, ok := logging.ParseLevel(*logLevel); ok {
		logging.SetLevel(level)
	}

	shell := docq.NewShell(*namespace)
	if err := shell.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "docq: %v\n", err)
		os.Exit(1)
	}
}
