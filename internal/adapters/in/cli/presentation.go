package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/bnema/citybike/internal/adapters/in/cli/ui/components"
	"github.com/bnema/citybike/internal/adapters/in/cli/ui/styles"
	"github.com/bnema/citybike/internal/domain"
)

type outputFormat string

const (
	outputTable outputFormat = "table"
	outputJSON  outputFormat = "json"
	outputYAML  outputFormat = "yaml"
)

// networksResult is the document written by the json and yaml formats.
type networksResult struct {
	Networks []domain.Network `json:"networks" yaml:"networks"`
}

func parseOutputFormat(raw string) (outputFormat, error) {
	switch f := outputFormat(strings.ToLower(strings.TrimSpace(raw))); f {
	case outputTable, outputJSON, outputYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want table, json or yaml)", raw)
	}
}

func writeNetworks(w io.Writer, format outputFormat, result networksResult) error {
	if result.Networks == nil {
		result.Networks = []domain.Network{}
	}

	switch format {
	case outputJSON:
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode networks: %w", err)
		}
		return cliWriteLine(w, string(data))
	case outputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(result); err != nil {
			return fmt.Errorf("failed to encode networks: %w", err)
		}
		return enc.Close()
	default:
		return writeNetworksTable(w, result.Networks)
	}
}

func writeNetworksTable(w io.Writer, networks []domain.Network) error {
	if err := cliWriteLine(w, cliRenderTitle(styles.IconBike+" City bike networks")); err != nil {
		return err
	}
	if len(networks) == 0 {
		return cliWriteLine(w, cliRenderEmptyState("No networks to show."))
	}
	if err := cliWriteLine(w, components.NetworksTable(networks)); err != nil {
		return err
	}
	return cliWritef(w, "%s\n", cliRenderMuted(fmt.Sprintf("%d networks", len(networks))))
}

var cliWriteLine = func(w io.Writer, msg string) error {
	_, err := fmt.Fprintln(w, msg)
	return err
}

var cliWritef = func(w io.Writer, format string, args ...any) error {
	_, err := fmt.Fprintf(w, format, args...)
	return err
}

func cliRenderTitle(msg string) string {
	return styles.Theme.Title.Render(msg)
}

func cliRenderMuted(msg string) string {
	return styles.Theme.Muted.Render(msg)
}

func cliRenderEmptyState(msg string) string {
	return cliRenderMuted(msg)
}
