// =============================================================================
// INI to CSV Converter - Inspect Command
// =============================================================================
//
// The 'inspect' command runs only the decoder and describes what it found.
// Nothing is written.
//
// COMMAND USAGE:
//   converter inspect [--input PATH]
//
// =============================================================================

package cmd

import (
	"fmt"

	"github.com/ginjaninja78/INI-to-CSV-conversion/internal/converter"
	"github.com/ginjaninja78/INI-to-CSV-conversion/internal/decoder"
	"github.com/ginjaninja78/INI-to-CSV-conversion/internal/flattener"
	"github.com/spf13/cobra"
)

var inspectInput string

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Decode an INI file and list its sections",
	Long: `The inspect command decodes the input exactly like convert does and prints
the encoding attempts, the sections found and how many keys each one has.`,

	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("input") {
			cfg.InputFile = inspectInput
		}

		decoded, err := converter.New(cfg, newReporter(cmd, cfg)).Inspect()
		if err != nil {
			return fmt.Errorf("inspection failed: %w", err)
		}

		printInspection(cmd, decoded)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)

	inspectCmd.Flags().StringVarP(&inspectInput, "input", "i", "", "INI file to read")
}

func printInspection(cmd *cobra.Command, res *decoder.Result) {
	out := cmd.OutOrStdout()

	fmt.Fprintln(out, "=== Encoding Attempts ===")
	for _, a := range res.Attempts {
		if a.Err != nil {
			fmt.Fprintf(out, "  %-40s %s: %v\n", a.Encoding, a.Outcome, a.Err)
			continue
		}
		fmt.Fprintf(out, "  %-40s %s\n", a.Encoding, a.Outcome)
	}
	if res.Hint != nil {
		fmt.Fprintf(out, "Detector guess: %s (%d%% confidence)\n", res.Hint.Charset, res.Hint.Confidence)
	}

	doc := res.Document
	fmt.Fprintln(out, "\n=== Sections ===")
	for _, s := range doc.Sections {
		fmt.Fprintf(out, "  [%s] %d key(s)\n", s.Name, len(s.Keys))
	}

	fmt.Fprintln(out, "\n=== Summary ===")
	fmt.Fprintf(out, "Encoding used: %s\n", res.Encoding)
	fmt.Fprintf(out, "Sections:      %d\n", len(doc.Sections))
	fmt.Fprintf(out, "Unique keys:   %d\n", len(flattener.KeyUnion(doc)))
}
