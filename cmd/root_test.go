package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunCommand_WritesTextAndJSON(t *testing.T) {
	// GIVEN a run command with a short horizon and a JSON results path
	dir := t.TempDir()
	resultsFile := filepath.Join(dir, "results.json")
	recordsFile := filepath.Join(dir, "records.csv")

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetArgs([]string{"run", "--horizon", "50", "--seed", "3", "--results", resultsFile, "--records", recordsFile})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	// WHEN the CLI executes
	require.NoError(t, rootCmd.Execute())

	// THEN the text report goes to the command's output
	out := buf.String()
	assert.Contains(t, out, "--- Simulation Results ---")
	assert.Contains(t, out, "Processed in Fog")

	// AND the JSON document carries the run's config and summary
	data, err := os.ReadFile(resultsFile)
	require.NoError(t, err)
	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Contains(t, doc, "summary")
	cfg, ok := doc["config"].(map[string]any)
	require.True(t, ok, "config must be an object")
	assert.Equal(t, 50.0, cfg["horizon"])
	assert.Equal(t, 3.0, cfg["seed"])

	// AND the CSV starts with its header
	records, err := os.ReadFile(recordsFile)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(records, []byte("task_id,sensor_id,fog_node,location")))
}
