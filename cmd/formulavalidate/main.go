// Copyright 2020-2023 Buf Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Command formulavalidate is a thin JSON-over-stdio boundary around the
// formulacore Validation Orchestrator: it reads one request envelope as
// JSON from stdin (or -in) and writes the response envelope as JSON to
// stdout (or -out), standing in for the transport layer spec §1 places
// out of scope.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/openformula/formulacore"
	"github.com/openformula/formulacore/config"
)

var (
	inFileName  string
	outFileName string
)

func main() {
	flag.StringVar(&inFileName, "in", "", "read the request envelope from this file instead of stdin")
	flag.StringVar(&outFileName, "out", "", "write the response envelope to this file instead of stdout")
	flag.Parse()

	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "formulavalidate:", err)
		os.Exit(1)
	}
}

func run() error {
	in := os.Stdin
	if inFileName != "" {
		f, err := os.Open(inFileName)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	out := os.Stdout
	if outFileName != "" {
		f, err := os.Create(outFileName)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	body, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("reading request: %w", err)
	}

	var req formulacore.Request
	if err := json.Unmarshal(body, &req); err != nil {
		return fmt.Errorf("decoding request: %w", err)
	}

	core := formulacore.New(config.Load(nil))
	resp := core.Validate(req)

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}
