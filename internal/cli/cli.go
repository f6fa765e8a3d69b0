// Package cli implements the figgen command-line interface.
//
// This package provides the convert command, which routes figure source
// files (drawio, dot, mermaid/plantuml markup, raw images) to the right
// renderer backend, and a completion command for shell completions. The
// CLI is built using cobra and supports verbose logging via the
// charmbracelet/log library.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context so the conversion engine can attribute
// log lines to jobs.
//
// # Example
//
//	import "github.com/figtools/figgen/internal/cli"
//
//	func main() {
//	    if err := cli.Execute(ctx); err != nil {
//	        os.Exit(1)
//	    }
//	}
package cli

// appName is the application name used for directories and display.
const appName = "figgen"
