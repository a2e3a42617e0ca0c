/*
 * Pythia - The Python static-analysis engine
 *
 * Copyright Pythia Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *   http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// tokenize reads Python source from a file or standard input and dumps
// the token stream, either as an aligned human-readable table or as JSON.
package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/logrusorgru/aurora/v4"

	"github.com/pythia-lang/pythia/parser/lexer"
)

var jsonFlag = flag.Bool("json", false, "output the token stream as JSON")

func main() {
	flag.Parse()
	args := flag.Args()

	var data []byte
	var err error

	if len(args) == 0 {
		data, err = io.ReadAll(bufio.NewReader(os.Stdin))
	} else {
		data, err = os.ReadFile(args[0])
	}
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, colorizeError(err.Error()))
		os.Exit(1)
	}

	output := lexer.Tokenize(data)

	if *jsonFlag {
		dumpJSON(data, output)
	} else {
		dumpTable(data, output)
	}
}

func colorizeError(message string) string {
	return aurora.Colorize(message, aurora.RedFg|aurora.BrightFg|aurora.BoldFm).String()
}

func colorizeTokenType(tokenType lexer.TokenType) string {
	return aurora.Colorize(tokenType.String(), aurora.CyanFg).String()
}

func dumpTable(input []byte, output *lexer.TokenizerOutput) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer func() {
		_ = w.Flush()
	}()

	for _, token := range output.Tokens.Items() {
		value := ""
		if token.Value != nil {
			value = fmt.Sprintf("%v", token.Value)
		}

		_, _ = fmt.Fprintf(
			w,
			"%d:%d\t%s\t%s\t%s\n",
			token.Start,
			token.Length,
			colorizeTokenType(token.Type),
			value,
			aurora.Colorize(string(token.Source(input)), aurora.BrightFg).String(),
		)
	}

	_, _ = fmt.Fprintf(
		w,
		"\n%d tokens, %d lines, eol %q, tab %q\n",
		output.Tokens.Count(),
		output.Lines.Count(),
		output.PredominantEndOfLineSequence,
		output.PredominantTabSequence,
	)
}

type jsonToken struct {
	Type   string `json:"type"`
	Start  int    `json:"start"`
	Length int    `json:"length"`
	Value  any    `json:"value,omitempty"`
	Source string `json:"source"`
}

func dumpJSON(input []byte, output *lexer.TokenizerOutput) {
	tokens := make([]jsonToken, 0, output.Tokens.Count())
	for _, token := range output.Tokens.Items() {
		tokens = append(tokens, jsonToken{
			Type:   token.Type.String(),
			Start:  token.Start,
			Length: token.Length,
			Value:  token.Value,
			Source: string(token.Source(input)),
		})
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	err := encoder.Encode(map[string]any{
		"tokens": tokens,
		"lines":  output.Lines.Count(),
		"eol":    output.PredominantEndOfLineSequence,
		"tab":    output.PredominantTabSequence,
	})
	if err != nil {
		_, _ = fmt.Fprintln(os.Stderr, colorizeError(err.Error()))
		os.Exit(1)
	}
}
