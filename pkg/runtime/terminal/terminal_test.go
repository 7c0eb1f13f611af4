package terminal

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/de-tools/ops-atlas/pkg/models/domain"
	"github.com/de-tools/ops-atlas/pkg/models/domain/domaintest"
)

func writeEnvelope(t *testing.T, env *domain.RawResponseEnvelope) string {
	t.Helper()
	data, err := json.Marshal(env)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "envelope.json")
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, logs bytes.Buffer
	cli := NewCLI(Options{Output: &out, LogOutput: &logs})
	cli.SetArgs(args)
	err := cli.Execute()
	return out.String(), err
}

func TestCLI_AnalyzeTable(t *testing.T) {
	path := writeEnvelope(t, domaintest.Envelope())

	out, err := run(t, "analyze", "--envelope", path)
	require.NoError(t, err)

	assert.Contains(t, out, "Store 01234-00001 operations for 2025-03-14 (grade A)")
	assert.Contains(t, out, "Baseline Period: 2025-03-07 to 2025-03-13 (7 days)")
	assert.Contains(t, out, "=== Hourly Sales ===")
	assert.Contains(t, out, "| Name ")
}

func TestCLI_AnalyzeText(t *testing.T) {
	path := writeEnvelope(t, domaintest.Envelope())

	out, err := run(t, "analyze", "--envelope", path, "--format", "text")
	require.NoError(t, err)

	assert.Contains(t, out, "=== Platform Ratings ===")
	assert.NotContains(t, out, "| Name ")
}

func TestCLI_AnalyzeExportJSON(t *testing.T) {
	env := domaintest.Envelope()
	env.StoreOperations.ActualLaborPercent = 0.40
	env.StoreOperations.TargetLaborPercent = 0.30
	path := writeEnvelope(t, env)

	out, err := run(t, "analyze", "--envelope", path, "--format", "json", "--export", "alerts")
	require.NoError(t, err)

	var doc struct {
		Alerts []struct {
			Metric   string `json:"metric"`
			Severity string `json:"severity"`
		} `json:"alerts"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &doc))
	require.NotEmpty(t, doc.Alerts)
	assert.Equal(t, "labor_percent", doc.Alerts[0].Metric)
	assert.Equal(t, "critical", doc.Alerts[0].Severity)
}

func TestCLI_AnalyzeWritesChart(t *testing.T) {
	path := writeEnvelope(t, domaintest.Envelope())
	chart := filepath.Join(t.TempDir(), "hourly.html")

	_, err := run(t, "analyze", "--envelope", path, "--format", "yaml", "--export", "hourly", "--chart", chart)
	require.NoError(t, err)

	html, err := os.ReadFile(chart)
	require.NoError(t, err)
	assert.Contains(t, string(html), "Hourly Sales")
}

func TestCLI_AnalyzeErrors(t *testing.T) {
	path := writeEnvelope(t, domaintest.Envelope())

	_, err := run(t, "analyze", "--envelope", path, "--format", "xml")
	assert.ErrorContains(t, err, "unknown export format")

	_, err = run(t, "analyze", "--envelope", filepath.Join(t.TempDir(), "missing.json"))
	assert.ErrorContains(t, err, "failed to open envelope")

	empty := writeEnvelope(t, &domain.RawResponseEnvelope{})
	_, err = run(t, "analyze", "--envelope", empty)
	assert.ErrorContains(t, err, "analysis failed")
}

func TestCLI_Config(t *testing.T) {
	settings := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(settings, []byte("analysis:\n  alerts:\n    max_alerts: 3\n"), 0o600))

	out, err := run(t, "config", "--config", settings)
	require.NoError(t, err)
	assert.Contains(t, out, "max_alerts: 3")
	assert.Contains(t, out, "labor_percent:")
}

func TestCLI_Profiles(t *testing.T) {
	dir := t.TempDir()
	profiles := filepath.Join(dir, "profiles.ini")
	require.NoError(t, os.WriteFile(profiles, []byte("[prod]\nhost = https://metrics.example.com\ntoken = t\n"), 0o600))
	settings := filepath.Join(dir, "settings.yaml")
	require.NoError(t, os.WriteFile(settings, []byte("upstream:\n  profiles_file: "+profiles+"\n"), 0o600))

	out, err := run(t, "profiles", "--config", settings)
	require.NoError(t, err)
	assert.Contains(t, out, "prod:https://metrics.example.com")
}
