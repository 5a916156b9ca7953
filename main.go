// =============================================================================
// RT Systems to CHIRP Converter - Main Entry Point
// =============================================================================
//
// This is the main entry point for the rtsys2chirp CLI application. It
// delegates command execution to the cmd package.
//
// USAGE:
//   rtsys2chirp -i export.csv -o chirp.csv - Convert one export
//   rtsys2chirp process                    - Convert every export in the input directory
//   rtsys2chirp version                    - Display the application version
//
// ARCHITECTURE:
//   - cmd/           : CLI command definitions (Cobra)
//   - internal/      : Conversion core and its readers, writer and config
//   - pkg/           : Batch file management utilities
//
// =============================================================================

package main

import (
	"github.com/ginjaninja78/rtsys2chirp/cmd"
)

func main() {
	cmd.Execute()
}
