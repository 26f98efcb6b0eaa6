// =============================================================================
// INI to CSV Converter - Main Entry Point
// =============================================================================
//
// USAGE:
//   converter convert       - Convert an INI file to CSV (and optionally XLSX)
//   converter inspect       - Decode an INI file and describe its sections
//   converter version       - Display the application version
//
// ARCHITECTURE:
//   - cmd/           : CLI command definitions (Cobra)
//   - internal/      : Decoder, flattener, writers and the conversion pipeline
//   - pkg/           : Shared file utilities
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/INI-to-CSV-conversion/cmd"
)

func main() {
	cmd.Execute()
}
