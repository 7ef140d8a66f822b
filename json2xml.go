// Copyright 2015 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Program json2xml reads a JSON document and writes the equivalent XML
// document, streaming both ends: the input is never parsed into an
// in-memory tree, and the output is written incrementally as each JSON
// value is read.
//
// Usage: json2xml [-f] [-t] [INFILE] [OUTFILE]
//
// INFILE and OUTFILE default to "-", meaning standard input and standard
// output respectively; either may independently be "-" while the other
// names a real file.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/pborman/getopt"

	"github.com/jsonevents/json2xml/pkg/jsonstream"
	"github.com/jsonevents/json2xml/pkg/xmlsink"
)

// convert reads a JSON document from r and writes the equivalent XML
// document to w, under opts. It does not invoke the CLI flag parser, so
// it can be driven directly by tests or by another program embedding
// this pipeline.
func convert(r io.Reader, w io.Writer, opts xmlsink.Options) error {
	src := jsonstream.NewByteSource(r)
	lexer := jsonstream.NewLexer(src, jsonstream.LexerOptions{})
	sink := xmlsink.NewSink(w, opts)
	parser := jsonstream.NewParserAdapter(sink)

	if err := parser.Parse(lexer); err != nil {
		_ = sink.Flush()
		return err
	}
	return sink.Flush()
}

// stop is indirected through a variable, following the same pattern used
// for testing the exit path without actually terminating the process.
var stop = os.Exit

func exitIfError(err error) {
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop(1)
	}
}

func main() {
	var formatted, typed bool
	getopt.BoolVarLong(&formatted, "formatted", 'f', "format the XML (indent nested elements; larger output)")
	getopt.BoolVarLong(&typed, "typed", 't', "add a type attribute to every scalar element")
	getopt.SetParameters("[INFILE] [OUTFILE]")

	if err := getopt.Getopt(nil); err != nil {
		fmt.Fprintln(os.Stderr, err)
		getopt.PrintUsage(os.Stderr)
		os.Exit(1)
	}

	args := getopt.Args()
	inpath, outpath := "-", "-"
	if len(args) > 0 {
		inpath = args[0]
	}
	if len(args) > 1 {
		outpath = args[1]
	}

	var in io.Reader = os.Stdin
	if inpath != "-" {
		f, err := os.Open(inpath)
		exitIfError(err)
		defer f.Close()
		in = f
	}

	var out io.Writer = os.Stdout
	if outpath != "-" {
		f, err := os.Create(outpath)
		exitIfError(err)
		defer f.Close()
		out = f
	}

	exitIfError(convert(in, out, xmlsink.Options{Formatted: formatted, Typed: typed}))
}
