package commands

import (
	"context"
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/openradius/raddecode/internal/cli/output"
	"github.com/openradius/raddecode/internal/config"
	"github.com/openradius/raddecode/pkg/metrics"
	"github.com/openradius/raddecode/pkg/radius"
	"github.com/openradius/raddecode/pkg/radius/dictionary"
	"github.com/openradius/raddecode/pkg/radius/vp"
)

var (
	decodeSecret      string
	decodeVectorHex   string
	decodeTunnelZeros bool
	decodeOutput      string
)

var decodeCmd = &cobra.Command{
	Use:   "decode <hex>",
	Short: "Decode a hex-encoded RADIUS attribute buffer",
	Long: `Decode reads a hex-encoded buffer of one or more concatenated RADIUS
attributes and prints every decoded VP.

The shared secret and Request Authenticator vector come from the loaded
configuration by default; --secret and --vector override them for one-off
decodes without editing the config file.

Examples:
  # Decode a User-Name attribute (hex of: type=1 len=7 "bobby")
  raddecode decode 0107626f626279

  # Decode against a dictionary file, printing JSON
  raddecode decode --config ./raddecode.yaml --output json 0107626f626279`,
	Args: cobra.ExactArgs(1),
	RunE: runDecode,
}

func init() {
	decodeCmd.Flags().StringVar(&decodeSecret, "secret", "", "shared secret (overrides config)")
	decodeCmd.Flags().StringVar(&decodeVectorHex, "vector", "", "16-byte Request Authenticator, hex-encoded (overrides config)")
	decodeCmd.Flags().BoolVar(&decodeTunnelZeros, "tunnel-password-zeros", false, "require the Tunnel-Password bytes after the embedded length to be zero (overrides config)")
	decodeCmd.Flags().StringVar(&decodeOutput, "output", "table", "output format: table, json, yaml")
}

func runDecode(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfigForAdHocCommand(GetConfigFile())
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	format, err := output.ParseFormat(decodeOutput)
	if err != nil {
		return err
	}
	printer := output.NewPrinter(cmd.OutOrStdout(), format, true)

	payload, err := hex.DecodeString(args[0])
	if err != nil {
		return fmt.Errorf("invalid hex payload: %w", err)
	}

	ctx := context.Background()
	dict, err := BuildDictionary(ctx, &cfg.Dictionary)
	if err != nil {
		return err
	}

	pctx, err := buildDecodeContext(cfg, decodeSecret, decodeVectorHex, decodeTunnelZeros, cmd.Flags().Changed("tunnel-password-zeros"))
	if err != nil {
		return err
	}

	cur := &vp.Cursor{}
	if err := radius.DecodeAttributesWithMetrics(dict, cur, pctx, payload, metrics.NewDecodeMetrics()); err != nil {
		return fmt.Errorf("decode failed: %w", err)
	}

	return printer.Print(vpTable(cur.Pairs()))
}

// buildDecodeContext resolves the secret/vector/tunnel-zeros used for this
// decode, letting CLI flags override the loaded configuration.
func buildDecodeContext(cfg *config.Config, secretOverride, vectorOverride string, tunnelZerosOverride, tunnelZerosChanged bool) (*vp.Context, error) {
	pctx := &vp.Context{
		Secret:              []byte(cfg.RADIUS.Secret),
		TunnelPasswordZeros: cfg.RADIUS.TunnelPasswordZeros,
	}
	if secretOverride != "" {
		pctx.Secret = []byte(secretOverride)
	}
	if tunnelZerosChanged {
		pctx.TunnelPasswordZeros = tunnelZerosOverride
	}
	if vectorOverride != "" {
		raw, err := hex.DecodeString(vectorOverride)
		if err != nil {
			return nil, fmt.Errorf("invalid hex vector: %w", err)
		}
		if len(raw) != len(pctx.Vector) {
			return nil, fmt.Errorf("vector must be exactly 16 bytes, got %d", len(raw))
		}
		copy(pctx.Vector[:], raw)
	}
	return pctx, nil
}

// vpTable adapts a slice of decoded VPs to output.TableRenderer.
type vpTable []vp.Pair

func (t vpTable) Headers() []string {
	return []string{"Number", "Name", "Type", "Vendor", "Tag", "Value", "Raw Fallback"}
}

func (t vpTable) Rows() [][]string {
	rows := make([][]string, 0, len(t))
	for _, p := range t {
		rows = append(rows, []string{
			strconv.FormatUint(uint64(p.Descriptor.Number), 10),
			p.Descriptor.Name,
			p.Descriptor.Type.String(),
			vendorLabel(p.Descriptor.Vendor),
			tagLabel(p.Tag),
			valueLabel(p.Value),
			strconv.FormatBool(p.Descriptor.Flags.IsUnknown),
		})
	}
	return rows
}

func vendorLabel(v *dictionary.Vendor) string {
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%s (%d)", v.Name, v.PEN)
}

func tagLabel(tag int) string {
	if tag == vp.NoTag {
		return ""
	}
	return strconv.Itoa(tag)
}

func valueLabel(v any) string {
	if b, ok := v.([]byte); ok {
		return hex.EncodeToString(b)
	}
	return fmt.Sprintf("%v", v)
}
