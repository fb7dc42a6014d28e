// SPDX-License-Identifier: Apache-2.0
// Copyright (c) 2025 Mufeed Ali

package cli

import (
	"fmt"
	"os"

	"better-naming/internal/commands"
	"better-naming/internal/editor"
	"better-naming/internal/host"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Suggest names for the selected code and apply the picked one",
	Long: `Sends the selected code to the completion API and offers the suggested names.
The picked name replaces the first "foo" or "Foo" in the selection.

The selection is either a range of a file (--file, --range) or the whole of
standard input (--stdin), in which case the edited text is written to
standard output. This makes bn usable as an editor filter.`,
	Example: "  bn suggest --file main.go --range 12:7-12:30\n" +
		"  bn suggest --file util.py --range 4-9\n" +
		"  :'<,'>!bn suggest --stdin",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCommand(cmd, commands.SuggestNamesID)
	},
}

// editorFlags registers the flags that describe the active document.
func editorFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("file", "f", "", "file holding the code to rename")
	cmd.Flags().StringP("range", "r", "", "selection within --file as line:col-line:col or line-line (1-based)")
	cmd.Flags().Bool("stdin", false, "read the selection from stdin and write the result to stdout")
}

// activeEditor is the document a command works on. flush must run once the
// command has finished.
type activeEditor struct {
	editor host.Editor
	flush  func() error
}

// editorFromFlags picks the editor for a command: a file when --file is
// given, stdin when --stdin is set or stdin is piped, otherwise none.
func editorFromFlags(cmd *cobra.Command) (activeEditor, error) {
	none := activeEditor{flush: func() error { return nil }}
	if cmd.Flags().Lookup("file") == nil {
		return none, nil
	}

	path, _ := cmd.Flags().GetString("file")
	rangeSpec, _ := cmd.Flags().GetString("range")
	useStdin, _ := cmd.Flags().GetBool("stdin")

	if path != "" && useStdin {
		return none, fmt.Errorf("--file and --stdin cannot be used together")
	}
	if rangeSpec != "" && path == "" {
		return none, fmt.Errorf("--range requires --file")
	}

	if path != "" {
		var rng *host.Range
		if rangeSpec != "" {
			r, err := editor.ParseRange(rangeSpec)
			if err != nil {
				return none, err
			}
			rng = &r
		}
		return activeEditor{editor: editor.NewFileEditor(path, rng), flush: none.flush}, nil
	}

	if useStdin || !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		se := editor.NewStreamEditor(os.Stdin, os.Stdout)
		return activeEditor{editor: se, flush: se.Flush}, nil
	}
	return none, nil
}

func init() {
	editorFlags(suggestCmd)
}
