package commands

import (
	"github.com/spf13/cobra"

	"github.com/openradius/raddecode/cmd/raddecode/commands/initcmd"
)

var (
	// Version information injected at build time.
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"

	// Global flags.
	cfgFile string
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "raddecode",
	Short: "raddecode - a standalone RADIUS attribute decoder",
	Long: `raddecode decodes RADIUS attribute/value pairs from raw wire bytes: the
bounds-checked flat/TLV/VSA/extended/WiMAX attribute hierarchy, the
User-Password/Tunnel-Password/Ascend-Secret obfuscation schemes, and
RFC 2869/6929/WiMAX fragment reassembly, degrading gracefully to raw
octets on anything malformed rather than aborting.

Use "raddecode [command] --help" for more information about a command.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

// GetRootCmd returns the root command for testing purposes.
func GetRootCmd() *cobra.Command {
	return rootCmd
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $XDG_CONFIG_HOME/raddecode/config.yaml)")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(decodeCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(dictionaryCmd)
	rootCmd.AddCommand(initcmd.Cmd)
}

// GetConfigFile returns the config file path from the global flag.
func GetConfigFile() string {
	return cfgFile
}
