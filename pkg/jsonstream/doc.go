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

// Package jsonstream implements a streaming, event-driven JSON reader.
//
// Input is consumed one byte at a time from a ByteSource. A Lexer turns
// that byte stream into lexical tokens (structural delimiters, punctuation,
// and scalars), and a ParserAdapter raises the lexical token stream to a
// parser token stream that enforces JSON's object/array grammar and
// distinguishes object keys from string values. Neither stage builds an
// in-memory document: a caller-supplied Consumer receives tokens (or
// errors) one at a time and may abort the pipeline by returning an error.
package jsonstream
