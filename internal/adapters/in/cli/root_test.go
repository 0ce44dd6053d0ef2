package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/bnema/citybike/internal/app"
	"github.com/bnema/citybike/internal/domain"
	"github.com/bnema/citybike/pkg/version"
)

type recordingRunner struct {
	interactiveCalls int
	listCalls        int
	overrides        app.Overrides
	result           networksResult
	err              error
}

func (r *recordingRunner) runner() runner {
	return runner{
		interactive: func(cmd *cobra.Command, o app.Overrides) error {
			r.interactiveCalls++
			r.overrides = o
			return r.err
		},
		list: func(cmd *cobra.Command, o app.Overrides) (networksResult, error) {
			r.listCalls++
			r.overrides = o
			return r.result, r.err
		},
	}
}

func execute(t *testing.T, r *recordingRunner, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd(r.runner())
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func sampleResult() networksResult {
	return networksResult{Networks: []domain.Network{
		{ID: "velib", Href: "/v2/networks/velib", Name: "Vélib' Métropole"},
		{ID: "citi-bike-nyc", Href: "/v2/networks/citi-bike-nyc", Name: "Citi Bike"},
	}}
}

func TestRoot_RunsInteractiveWithFlags(t *testing.T) {
	r := &recordingRunner{}

	_, err := execute(t, r, "--url", "https://example.test/n", "--preview", "--log-level", "debug", "-c", "/tmp/c.toml")
	require.NoError(t, err)

	assert.Equal(t, 1, r.interactiveCalls)
	assert.Equal(t, app.Overrides{
		ConfigPath: "/tmp/c.toml",
		URL:        "https://example.test/n",
		Preview:    true,
		LogLevel:   "debug",
	}, r.overrides)
}

func TestRoot_PropagatesError(t *testing.T) {
	r := &recordingRunner{err: errors.New("boom")}

	_, err := execute(t, r)
	assert.EqualError(t, err, "boom")
}

func TestList_Table(t *testing.T) {
	r := &recordingRunner{result: sampleResult()}

	out, err := execute(t, r, "list")
	require.NoError(t, err)

	assert.Equal(t, 1, r.listCalls)
	assert.Zero(t, r.interactiveCalls)
	assert.Contains(t, out, "City bike networks")
	assert.Contains(t, out, "velib")
	assert.Contains(t, out, "Citi Bike")
	assert.Contains(t, out, "2 networks")
}

func TestList_TableEmpty(t *testing.T) {
	r := &recordingRunner{}

	out, err := execute(t, r, "list")
	require.NoError(t, err)

	assert.Contains(t, out, "No networks to show.")
}

func TestList_JSON(t *testing.T) {
	r := &recordingRunner{result: sampleResult()}

	out, err := execute(t, r, "list", "--output", "json")
	require.NoError(t, err)

	var decoded domain.Networks
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, sampleResult().Networks, decoded.Networks)
}

func TestList_JSONEmptyIsArray(t *testing.T) {
	r := &recordingRunner{}

	out, err := execute(t, r, "list", "-o", "json")
	require.NoError(t, err)

	assert.JSONEq(t, `{"networks":[]}`, out)
}

func TestList_YAML(t *testing.T) {
	r := &recordingRunner{result: sampleResult()}

	out, err := execute(t, r, "list", "-o", "YAML")
	require.NoError(t, err)

	var decoded networksResult
	require.NoError(t, yaml.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, sampleResult().Networks, decoded.Networks)
}

func TestList_UnknownFormat(t *testing.T) {
	r := &recordingRunner{result: sampleResult()}

	_, err := execute(t, r, "list", "-o", "xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
	assert.Zero(t, r.listCalls)
}

func TestList_InheritsPersistentFlags(t *testing.T) {
	r := &recordingRunner{}

	_, err := execute(t, r, "list", "--preview")
	require.NoError(t, err)

	assert.True(t, r.overrides.Preview)
}

func TestVersion(t *testing.T) {
	version.Set("1.2.3", "abc123", "2026-01-01")
	t.Cleanup(func() { version.Set("dev", "unknown", "unknown") })

	out, err := execute(t, &recordingRunner{}, "version")
	require.NoError(t, err)

	assert.Contains(t, out, "citybike 1.2.3")
	assert.Contains(t, out, "Commit: abc123")
	assert.Contains(t, out, "Build Date: 2026-01-01")
}
