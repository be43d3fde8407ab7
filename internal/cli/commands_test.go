package cli

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JonMunkholm/exopop/internal/core"
	"github.com/JonMunkholm/exopop/internal/store"
)

func TestListCommand(t *testing.T) {
	useFixture(t)

	stdout, _, err := executeCommand("list")
	require.NoError(t, err)

	assert.Contains(t, stdout, "KEY")
	assert.Contains(t, stdout, "goodmass")
	assert.Contains(t, stdout, "Kepler (name match) (deprecated)")
}

func TestListCommand_JSON(t *testing.T) {
	useFixture(t)

	stdout, _, err := executeCommand("list", "--json")
	require.NoError(t, err)

	var infos []core.SubsetInfo
	require.NoError(t, json.Unmarshal([]byte(stdout), &infos))
	assert.Len(t, infos, 14)
	assert.Equal(t, core.GroupDiscoverer, infos[0].Group)
}

func TestBuildCommand(t *testing.T) {
	cacheDir := useFixture(t)

	stdout, _, err := executeCommand("build", "--json")
	require.NoError(t, err)

	var summary buildSummary
	require.NoError(t, json.Unmarshal([]byte(stdout), &summary))
	assert.Equal(t, 5, summary.Rows)
	assert.Equal(t, []string{core.ColDiscoverer}, summary.Columns)
	require.Len(t, summary.Reports, 2)
	assert.Equal(t, 7, summary.Reports[0].After)

	assert.FileExists(t, filepath.Join(cacheDir, core.StandardKey+".parquet"))

	// A second run reads the cached table: same snapshot, no reports.
	stdout, _, err = executeCommand("build", "--json")
	require.NoError(t, err)

	var cached buildSummary
	require.NoError(t, json.Unmarshal([]byte(stdout), &cached))
	assert.Equal(t, summary.Snapshot, cached.Snapshot)
	assert.Empty(t, cached.Reports)

	// --refresh rebuilds.
	stdout, _, err = executeCommand("build", "--refresh", "--json")
	require.NoError(t, err)

	var rebuilt buildSummary
	require.NoError(t, json.Unmarshal([]byte(stdout), &rebuilt))
	assert.NotEqual(t, summary.Snapshot, rebuilt.Snapshot)
}

func TestBuildCommand_Text(t *testing.T) {
	useFixture(t)

	stdout, _, err := executeCommand("build")
	require.NoError(t, err)

	assert.Contains(t, stdout, "rows")
	assert.Contains(t, stdout, "sufficiency")
	assert.Contains(t, stdout, "7 -> 5")
}

func TestSubsetsCommand(t *testing.T) {
	useFixture(t)

	stdout, _, err := executeCommand("subsets", "kepler", "goodmass", "--json")
	require.NoError(t, err)

	var got []subsetSummary
	require.NoError(t, json.Unmarshal([]byte(stdout), &got))
	assert.Equal(t, []subsetSummary{
		{Key: "kepler", Group: core.GroupDiscoverer, Retained: 2, Removed: 3},
		{Key: "goodmass", Group: core.GroupMass, Retained: 2, Removed: 3},
	}, got)
}

func TestSubsetsCommand_All(t *testing.T) {
	useFixture(t)

	stdout, _, err := executeCommand("subsets", "--json")
	require.NoError(t, err)

	var got []subsetSummary
	require.NoError(t, json.Unmarshal([]byte(stdout), &got))
	assert.Len(t, got, 14)
}

func TestSubsetsCommand_MassThreshold(t *testing.T) {
	useFixture(t)

	stdout, _, err := executeCommand("--mass-threshold", "50", "subsets", "goodmass", "--json")
	require.NoError(t, err)

	var got []subsetSummary
	require.NoError(t, json.Unmarshal([]byte(stdout), &got))
	require.Len(t, got, 1)
	assert.Equal(t, 0, got[0].Retained)
}

func TestSubsetsCommand_Unknown(t *testing.T) {
	useFixture(t)

	_, _, err := executeCommand("subsets", "hot-jupiters")
	require.Error(t, err)
	assert.ErrorIs(t, err, core.ErrUnknownSubset)
}

func TestStatsCommand(t *testing.T) {
	useFixture(t)

	stdout, _, err := executeCommand("stats", "m", "-c", "teff,planet_mass", "--json")
	require.NoError(t, err)

	var stats []core.ColumnStats
	require.NoError(t, json.Unmarshal([]byte(stdout), &stats))
	require.Len(t, stats, 2)
	assert.Equal(t, 2, stats[0].Count)
	assert.Equal(t, 1, stats[1].Count)
	assert.Equal(t, 1, stats[1].Missing)
}

func TestStatsCommand_Text(t *testing.T) {
	useFixture(t)

	stdout, _, err := executeCommand("stats", "standard", "-c", "rv_semiamplitude")
	require.NoError(t, err)

	assert.Contains(t, stdout, "COLUMN")
	assert.Contains(t, stdout, "rv_semiamplitude")
}

func TestStatsCommand_UnknownColumn(t *testing.T) {
	useFixture(t)

	_, _, err := executeCommand("stats", "g", "-c", "radius")
	assert.ErrorIs(t, err, core.ErrUnknownColumn)
}

func TestExportCommand(t *testing.T) {
	useFixture(t)
	out := filepath.Join(t.TempDir(), "goodmass.parquet")

	stdout, _, err := executeCommand("export", "goodmass", out)
	require.NoError(t, err)
	assert.Contains(t, stdout, "2 rows")

	table, err := store.ReadTable(out)
	require.NoError(t, err)
	assert.Equal(t, []string{"HD 209458b", "Kepler-10b"}, table.Names())
}

func TestExportCommand_Standard(t *testing.T) {
	useFixture(t)
	out := filepath.Join(t.TempDir(), "standard.parquet")

	_, _, err := executeCommand("export", "standard", out)
	require.NoError(t, err)

	info, err := os.Stat(out)
	require.NoError(t, err)
	assert.Positive(t, info.Size())
}

func TestExportCommand_Args(t *testing.T) {
	useFixture(t)

	_, _, err := executeCommand("export", "goodmass")
	require.Error(t, err)
}

func TestPublishCommand_NoDatabase(t *testing.T) {
	useFixture(t)

	_, _, err := executeCommand("publish")
	assert.ErrorIs(t, err, store.ErrDatabaseNotConfigured)
}
