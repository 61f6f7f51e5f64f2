// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package cmd

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/consensys/gnark-crypto/ecc/bls12-377/fr"
	"github.com/consensys/go-span/pkg/util"
	"github.com/consensys/go-span/pkg/util/collection/iter"
	"github.com/consensys/go-span/pkg/util/collection/view"
	"github.com/consensys/go-span/pkg/util/termio"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// viewCmd represents the view command
var viewCmd = &cobra.Command{
	Use:   "view [flags] element...",
	Short: "Construct a view over a buffer and inspect it.",
	Long: `Construct a view over a buffer of elements and inspect it.
	The view can be narrowed by one or more slices, written through and read.
	Afterwards, both the view and the (possibly updated) buffer are printed.`,
	Run: func(cmd *cobra.Command, args []string) {
		var cfg viewConfig
		//
		cfg.offset = GetInt(cmd, "offset")
		cfg.length = GetInt(cmd, "length")
		cfg.hasLength = cmd.Flags().Changed("length")
		cfg.slices = GetStringArray(cmd, "slice")
		cfg.sets = GetStringArray(cmd, "set")
		cfg.gets = GetIntArray(cmd, "get")
		cfg.colour = term.IsTerminal(int(os.Stdout.Fd()))
		//
		var (
			err   error
			stats = util.NewPerfStats()
		)
		//
		if GetFlag(cmd, "field") {
			err = inspectView(cmd.OutOrStdout(), cfg, args, fieldCodec)
		} else {
			err = inspectView(cmd.OutOrStdout(), cfg, args, intCodec)
		}
		//
		stats.Log("Inspecting view")
		//
		if err != nil {
			log.Errorf("%v", err)
			os.Exit(2)
		}
	},
}

// viewConfig encapsulates the parameters of the view command.
type viewConfig struct {
	// Position of the first element of the view within the buffer.
	offset int
	// Number of elements in the view.  This is only meaningful when hasLength
	// holds, otherwise the view covers everything from offset onwards.
	length int
	// Whether or not a length was given explicitly.
	hasLength bool
	// Slices (of the form "start:count") applied in order to the view.
	slices []string
	// Writes (of the form "index=value") made through the final view.
	sets []string
	// Indices read from the final view.
	gets []int
	// Whether or not to use ANSI escapes.
	colour bool
}

// codec converts elements of some type to and from text.
type codec[T any] struct {
	parse  func(string) (T, error)
	format func(*T) string
}

var intCodec = codec[int64]{
	func(s string) (int64, error) { return strconv.ParseInt(s, 0, 64) },
	func(v *int64) string { return strconv.FormatInt(*v, 10) },
}

var fieldCodec = codec[fr.Element]{
	func(s string) (fr.Element, error) {
		var e fr.Element
		//
		_, err := e.SetString(s)
		//
		return e, err
	},
	func(v *fr.Element) string { return v.String() },
}

// inspectView constructs a buffer from the given elements, and then exercises
// a view of it as directed by the configuration.  Output is written to w.
func inspectView[T any](w io.Writer, cfg viewConfig, elements []string, c codec[T]) error {
	buffer, err := parseElements(elements, c)
	if err != nil {
		return err
	}
	// Default length is everything after the offset.  An explicit length is
	// passed through as is, such that negative lengths are rejected.
	length := cfg.length
	if !cfg.hasLength {
		length = max(len(buffer)-cfg.offset, 0)
	}
	//
	v, err := view.New(buffer, cfg.offset, length)
	if err != nil {
		return err
	}
	//
	log.Debugf("constructed view [%d, %d) over %d elements", v.Offset(), v.Offset()+v.Len(), len(buffer))
	// Narrow the view
	for _, s := range cfg.slices {
		start, count, err := parsePair(s, ":")
		if err != nil {
			return fmt.Errorf("--slice %s: %w", s, err)
		} else if v, err = v.Slice(start, count); err != nil {
			return fmt.Errorf("--slice %s: %w", s, err)
		}
		//
		log.Debugf("sliced view to [%d, %d)", v.Offset(), v.Offset()+v.Len())
	}
	// Write through the view
	written := make(map[int]bool)
	//
	for _, s := range cfg.sets {
		index, val, err := parseAssignment(s, c)
		if err != nil {
			return fmt.Errorf("--set %s: %w", s, err)
		}
		//
		ptr, err := v.Get(index)
		if err != nil {
			return fmt.Errorf("--set %s: %w", s, err)
		}
		//
		*ptr = val
		written[index] = true
		//
		log.Debugf("wrote %s at index %d (position %d)", c.format(ptr), index, v.Offset()+index)
	}
	// Read from the view
	for _, index := range cfg.gets {
		ptr, err := v.Get(index)
		if err != nil {
			return fmt.Errorf("--get %d: %w", index, err)
		}
		//
		if _, err = fmt.Fprintf(w, "get(%d) = %s\n", index, c.format(ptr)); err != nil {
			return err
		}
	}
	//
	if err := printView(w, v, written, c, cfg.colour); err != nil {
		return err
	}
	//
	_, err = fmt.Fprintf(w, "buffer = %s\n", formatAll(view.Of(buffer), c))
	//
	return err
}

// printView prints a view as a table of its elements, with written elements
// highlighted.
func printView[T any](w io.Writer, v view.View[T], written map[int]bool, c codec[T], colour bool) error {
	var (
		table  = termio.NewTablePrinter(3, uint(v.Len())+1)
		values = iter.NewProjectIterator(v.Iterator(), c.format)
		escape = termio.NewAnsiEscape().FgColour(termio.TERM_GREEN)
	)
	//
	table.SetRow(0, "index", "position", "value")
	table.SetRowEscape(0, termio.BoldAnsiEscape())
	//
	for i := 0; values.HasNext(); i++ {
		row := uint(i) + 1
		table.SetRow(row, strconv.Itoa(i), strconv.Itoa(v.Offset()+i), values.Next())
		//
		if written[i] {
			table.SetRowEscape(row, escape)
		}
	}
	//
	table.SetMaxWidth(2, 32)
	table.AnsiEscapes(colour)
	//
	return table.Print(w)
}

func formatAll[T any](v view.View[T], c codec[T]) string {
	items := iter.NewProjectIterator(v.Iterator(), c.format).Collect()
	//
	return fmt.Sprintf("[%s]", strings.Join(items, ","))
}

func parseElements[T any](elements []string, c codec[T]) ([]T, error) {
	buffer := make([]T, len(elements))
	//
	for i, s := range elements {
		var err error
		//
		if buffer[i], err = c.parse(s); err != nil {
			return nil, fmt.Errorf("element %d (%s): %w", i, s, err)
		}
	}
	//
	return buffer, nil
}

// parsePair parses a pair of integers separated by a given separator.
func parsePair(s string, sep string) (int, int, error) {
	lhs, rhs, ok := strings.Cut(s, sep)
	if !ok {
		return 0, 0, fmt.Errorf("expected two integers separated by \"%s\"", sep)
	}
	//
	first, err := strconv.Atoi(lhs)
	if err != nil {
		return 0, 0, err
	}
	//
	second, err := strconv.Atoi(rhs)
	//
	return first, second, err
}

// parseAssignment parses an assignment of the form "index=value".
func parseAssignment[T any](s string, c codec[T]) (int, T, error) {
	var val T
	//
	lhs, rhs, ok := strings.Cut(s, "=")
	if !ok {
		return 0, val, fmt.Errorf("expected assignment of the form index=value")
	}
	//
	index, err := strconv.Atoi(lhs)
	if err != nil {
		return 0, val, err
	}
	//
	val, err = c.parse(rhs)
	//
	return index, val, err
}

func init() {
	rootCmd.AddCommand(viewCmd)
	viewCmd.Flags().Int("offset", 0, "position of the first element of the view")
	viewCmd.Flags().Int("length", 0, "number of elements in the view (default is all remaining)")
	viewCmd.Flags().StringArray("slice", nil, "narrow the view to start:count (repeatable)")
	viewCmd.Flags().StringArray("set", nil, "write index=value through the view (repeatable)")
	viewCmd.Flags().IntSlice("get", nil, "read the element at a given index of the view (repeatable)")
	viewCmd.Flags().Bool("field", false, "treat elements as BLS12-377 scalar field elements")
}
