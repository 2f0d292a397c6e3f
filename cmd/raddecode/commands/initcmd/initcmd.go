// Package initcmd implements the interactive first-run configuration
// wizard, "raddecode init".
package initcmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/openradius/raddecode/internal/cli/prompt"
	"github.com/openradius/raddecode/internal/config"
)

var force bool

// Cmd is the init subcommand. It reads the root command's persistent
// --config flag (inherited, so available on cmd.Flags() by RunE time) to
// decide where to write the new configuration file.
var Cmd = &cobra.Command{
	Use:   "init",
	Short: "Interactively create a configuration file",
	Long: `Walks through the settings raddecode needs to run — the shared RADIUS
secret, where the attribute dictionary comes from, and whether to enable
the debug HTTP server and metrics — then writes a YAML configuration file.

Examples:
  # Initialize with default location
  raddecode init

  # Initialize with a custom path
  raddecode init --config /etc/raddecode/config.yaml

  # Overwrite an existing file
  raddecode init --force`,
	RunE: runInit,
}

func init() {
	Cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing configuration file")
}

func runInit(cmd *cobra.Command, args []string) error {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = config.GetDefaultConfigPath()
	}

	if !force {
		if ok, err := confirmOverwriteIfExists(configPath); err != nil {
			return err
		} else if !ok {
			fmt.Println("Aborted.")
			return nil
		}
	}

	cfg := &config.Config{}
	config.ApplyDefaults(cfg)

	secret, err := prompt.Password("RADIUS shared secret")
	if err != nil {
		return abortOr(err)
	}
	cfg.RADIUS.Secret = secret

	tunnelZeros, err := prompt.Confirm("Require zero bytes after the Tunnel-Password value (tunnel_password_zeros)", false)
	if err != nil {
		return abortOr(err)
	}
	cfg.RADIUS.TunnelPasswordZeros = tunnelZeros

	source, err := prompt.SelectString("Attribute dictionary source", []string{"builtin", "file", "s3"})
	if err != nil {
		return abortOr(err)
	}
	cfg.Dictionary.Source = source

	switch source {
	case "file":
		path, err := prompt.InputRequired("Dictionary file path")
		if err != nil {
			return abortOr(err)
		}
		cfg.Dictionary.Path = path

		watch, err := prompt.Confirm("Watch the dictionary file for live reload", true)
		if err != nil {
			return abortOr(err)
		}
		cfg.Dictionary.Watch = watch

	case "s3":
		bucket, err := prompt.InputRequired("S3 bucket")
		if err != nil {
			return abortOr(err)
		}
		cfg.Dictionary.S3.Bucket = bucket

		key, err := prompt.InputRequired("S3 object key")
		if err != nil {
			return abortOr(err)
		}
		cfg.Dictionary.S3.Key = key

		region, err := prompt.Input("AWS region", "us-east-1")
		if err != nil {
			return abortOr(err)
		}
		cfg.Dictionary.S3.Region = region
	}

	httpAPI, err := prompt.Confirm("Enable the debug HTTP server (/decode, /metrics)", true)
	if err != nil {
		return abortOr(err)
	}
	cfg.HTTPAPI.Enabled = httpAPI

	metrics, err := prompt.Confirm("Enable Prometheus metrics", true)
	if err != nil {
		return abortOr(err)
	}
	cfg.Metrics.Enabled = metrics

	auditEnabled, err := prompt.Confirm("Enable the decode audit trail (sqlite)", false)
	if err != nil {
		return abortOr(err)
	}
	cfg.Audit.Enabled = auditEnabled
	if auditEnabled {
		dsn, err := prompt.Input("Audit database path", config.GetDefaultConfigPath()+".audit.db")
		if err != nil {
			return abortOr(err)
		}
		cfg.Audit.DSN = dsn
	}

	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("configuration is invalid: %w", err)
	}
	if err := config.SaveConfig(cfg, configPath); err != nil {
		return fmt.Errorf("failed to write configuration: %w", err)
	}

	fmt.Printf("Configuration file created at: %s\n", configPath)
	fmt.Println("\nNext steps:")
	fmt.Println("  1. Review the configuration file")
	fmt.Printf("  2. Decode a packet: raddecode decode --config %s <hex>\n", configPath)
	fmt.Printf("  3. Or start the debug server: raddecode serve --config %s\n", configPath)

	return nil
}

func confirmOverwriteIfExists(path string) (bool, error) {
	if _, err := os.Stat(path); err != nil {
		return true, nil
	}
	return prompt.Confirm(fmt.Sprintf("%s already exists, overwrite it", path), false)
}

func abortOr(err error) error {
	if prompt.IsAborted(err) {
		return nil
	}
	return err
}
