package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testGazetteer = `name,state,country,latitude,longitude,population
Perth,WA,Australia,-31.9523,115.8613,2000000
Sydney,NSW,Australia,-33.8688,151.2093,5000000
`

const testSeed = `[
  {"event_id": "ev1", "preferred_origin_id": "ev1-origin", "latitude": -34.0, "longitude": 122.31},
  {"event_id": "ev2", "preferred_origin_id": "ev2-origin", "latitude": 0, "longitude": 0}
]`

func TestRootCommand_HasSubcommands(t *testing.T) {
	names := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}

	for _, name := range []string{"describe", "name", "serve", "initdb"} {
		assert.True(t, names[name], "expected subcommand %q not found", name)
	}
}

func TestRootCommand_Flags(t *testing.T) {
	shorthands := map[string]string{
		"locations-file": "L",
		"max-distance":   "M",
		"min-population": "P",
		"direction-type": "D",
		"update-region":  "U",
		"test":           "T",
	}
	for name, short := range shorthands {
		f := rootCmd.PersistentFlags().Lookup(name)
		require.NotNil(t, f, "missing --%s", name)
		assert.Equal(t, short, f.Shorthand, "--%s shorthand", name)
	}

	assert.Equal(t, "1000", rootCmd.PersistentFlags().Lookup("max-distance").DefValue)
	assert.Equal(t, "detailed", rootCmd.PersistentFlags().Lookup("direction-type").DefValue)
	assert.Equal(t, "true", rootCmd.PersistentFlags().Lookup("include-state-country").DefValue)
	assert.NotNil(t, describeCmd.Flags().Lookup("lat"))
	assert.NotNil(t, describeCmd.Flags().Lookup("lon"))
	assert.NotNil(t, nameCmd.Flags().Lookup("concurrency"))
	assert.NotNil(t, serveCmd.Flags().Lookup("port"))
	assert.NotNil(t, serveCmd.Flags().Lookup("rate-limit"))
	require.NotNil(t, serveCmd.Flags().Lookup("rate-burst"))
	assert.Equal(t, "20", serveCmd.Flags().Lookup("rate-burst").DefValue)
	assert.NotNil(t, initdbCmd.Flags().Lookup("seed"))
}

func TestPersistentPreRunWrapsConfigErrors(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Cleanup(func() { configFile = "" })

	_, err := execute(t, "describe", "--lat=0", "--lon=0", "--config", "missing.yaml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load config")
	assert.Contains(t, err.Error(), "config: read file")
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestDescribeCommand(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	gaz := writeFile(t, dir, "locations.csv", testGazetteer)

	out, err := execute(t, "describe", "--lat=-34.0", "--lon=122.31", "-L", gaz, "--log-level", "error")
	require.NoError(t, err)
	assert.Equal(t, "643 km ESE of Perth, WA, Australia\n", out)
}

func TestInitdbAndNameCommands(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	gaz := writeFile(t, dir, "locations.csv", testGazetteer)
	seed := writeFile(t, dir, "events.json", testSeed)
	dbPath := filepath.Join(dir, "events.db")

	out, err := execute(t, "initdb", "--store", "sqlite", "--db-path", dbPath, "--seed", seed, "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, out, "seeded 2 events")

	out, err = execute(t, "name", "ev1", "ev2", "--store", "sqlite", "--db-path", dbPath,
		"-L", gaz, "-M", "1000", "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, out, "ev1\twritten\t643 km ESE of Perth, WA, Australia")
	assert.Contains(t, out, "ev2\tno match")

	out, err = execute(t, "name", "missing", "--store", "sqlite", "--db-path", dbPath,
		"-L", gaz, "--log-level", "error")
	require.Error(t, err)
	assert.Contains(t, out, "missing\terror")
}
