package cli

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/urfave/cli/v3"

	"github.com/ovhtools/ovhctl/pkg/config"
	"github.com/ovhtools/ovhctl/pkg/ovh"
	"github.com/ovhtools/ovhctl/pkg/serializer"
)

// Flags shared by every listing command.
var (
	formatFlag = &cli.StringFlag{
		Name:    "format",
		Aliases: []string{"t"},
		Value:   string(serializer.FormatTable),
		Usage:   "output format (table, wide, json, yaml)",
	}
	outputFlag = &cli.StringFlag{
		Name:    "output",
		Aliases: []string{"o"},
		Usage:   "output file path (default: stdout)",
	}
)

// parseOutputFormat extracts and validates the output format from CLI flags,
// suggesting the closest valid format on a typo.
func parseOutputFormat(cmd *cli.Command) (serializer.Format, error) {
	raw := cmd.String("format")
	format := serializer.Format(raw)
	if !format.IsUnknown() {
		return format, nil
	}
	if suggestion := closest(raw, serializer.Formats()); suggestion != "" {
		return "", fmt.Errorf("unknown output format %q, did you mean %q?", raw, suggestion)
	}
	return "", fmt.Errorf("unknown output format %q, valid formats are: %s", raw, strings.Join(serializer.Formats(), ", "))
}

// closest returns the candidate within a small edit distance of input, or the
// empty string when nothing is close enough to suggest.
func closest(input string, candidates []string) string {
	const maxDistance = 2

	best, bestDistance := "", maxDistance+1
	for _, candidate := range candidates {
		if d := levenshtein.ComputeDistance(strings.ToLower(input), candidate); d < bestDistance {
			best, bestDistance = candidate, d
		}
	}
	return best
}

// loadConfig reads the credential file designated by the global --config flag
// or the default lookup chain.
func loadConfig(cmd *cli.Command) (*config.Config, error) {
	return config.Load(cmd.String("config"))
}

// newSignedClient builds a client able to issue signed calls. It fails before
// any network activity when the credentials are incomplete.
func newSignedClient(cmd *cli.Command) (*ovh.Client, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	if err := cfg.ValidateSigned(); err != nil {
		return nil, err
	}
	return ovh.NewClient(cfg.ClientOptions())
}

// writeResult serializes v according to the --format and --output flags.
func writeResult(cmd *cli.Command, v any) error {
	format, err := parseOutputFormat(cmd)
	if err != nil {
		return err
	}

	w, err := serializer.NewFileWriterOrStdout(format, cmd.String("output"))
	if err != nil {
		return err
	}
	defer func() {
		if err := w.Close(); err != nil {
			slog.Warn("could not close the output writer", "error", err)
		}
	}()

	return w.Serialize(v)
}
