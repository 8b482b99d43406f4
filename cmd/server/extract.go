package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/BerylCAtieno/landing-assistant-agent/internal/extract"
	"github.com/BerylCAtieno/landing-assistant-agent/internal/synth"
)

var extractBlocks bool

var extractCmd = &cobra.Command{
	Use:   "extract [file]",
	Short: "Extract landing data from a transcript",
	Long: `Read a landing copy transcript from a file (or stdin) and print the
extracted sections as JSON. With --blocks the page blocks are printed
instead, using placeholder images.

Examples:
  landing-agent extract copy.txt
  cat copy.txt | landing-agent extract --blocks`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		in := cmd.InOrStdin()
		if len(args) == 1 {
			f, err := os.Open(args[0])
			if err != nil {
				return fmt.Errorf("failed to open transcript: %w", err)
			}
			defer f.Close()
			in = f
		}
		raw, err := io.ReadAll(in)
		if err != nil {
			return fmt.Errorf("failed to read transcript: %w", err)
		}

		data := extract.Extract(string(raw))
		var out any = data
		if extractBlocks {
			out = synth.New().Synthesize(extract.ParsePrompt(string(raw)), data, nil)
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	},
}

func init() {
	extractCmd.Flags().BoolVar(&extractBlocks, "blocks", false, "print synthesized page blocks")
}
