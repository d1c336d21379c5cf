package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags).
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var configFile string

var rootCmd = &cobra.Command{
	Use:   "ecmacore",
	Short: "Diagnostic CLI for the ecmacore runtime package",
	Long: `ecmacore is a diagnostic CLI around pkg/runtime, the ECMAScript value/
object/Proxy/Reflect core. It is not a JavaScript runner: there is no lexer,
parser, or bytecode VM here. Instead it builds object graphs and Proxy/
Reflect scenarios directly against the runtime package and lets you inspect
the resulting descriptors, or run the conformance checks that back the
package's test suite.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "path to a YAML runtime config file (see pkg/runtime.Config)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "verbose output")
}
