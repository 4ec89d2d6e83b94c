package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flybeeper/gps-checker/internal/models"
)

const sampleLog = `10:00:00 N35゜39'29.1" E139゜44'28.8"
10:00:05 N35゜39'29.1" E139゜44'28.8"
`

func runCLI(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	t.Setenv("LOG_LEVEL", "error")

	var stdout, stderr bytes.Buffer
	code := run(args, strings.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRun_TextFromStdin(t *testing.T) {
	code, out, _ := runCLI(t, sampleLog)
	require.Equal(t, exitOK, code)

	assert.Contains(t, out, "Suspected errors: 1 of 2 fixes")
	assert.Contains(t, out, "10:00:05")
	assert.Contains(t, out, "no movement, data gap")
	assert.Contains(t, out, "Duplicate coordinates: 1 groups")
	assert.NotContains(t, out, "10:00:00  ")
}

func TestRun_AllRecords(t *testing.T) {
	code, out, _ := runCLI(t, sampleLog, "-all")
	require.Equal(t, exitOK, code)
	assert.Contains(t, out, "Records: 2 of 2 fixes")
}

func TestRun_JSONFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "track.txt")
	require.NoError(t, os.WriteFile(path, []byte(sampleLog), 0o644))

	code, out, _ := runCLI(t, "", "-format", "json", path)
	require.Equal(t, exitOK, code)

	var report map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Len(t, report["records"], 2)
	assert.Len(t, report["anomalies"], 1)
}

func TestRun_NoValidData(t *testing.T) {
	code, out, errOut := runCLI(t, "garbage\n")
	assert.Equal(t, exitNoValidData, code)
	assert.Empty(t, out)
	assert.Contains(t, errOut, "no valid GPS data")
}

func TestRun_BadArguments(t *testing.T) {
	code, _, _ := runCLI(t, sampleLog, "-format", "xml")
	assert.Equal(t, exitError, code)

	code, _, _ = runCLI(t, "", filepath.Join(t.TempDir(), "missing.txt"))
	assert.Equal(t, exitError, code)

	code, _, _ = runCLI(t, "", "-unknown")
	assert.Equal(t, exitError, code)
}

func TestRun_SQLiteFinder(t *testing.T) {
	t.Setenv("DUPLICATE_FINDER", "sqlite")
	code, out, _ := runCLI(t, sampleLog, "-format", "json")
	require.Equal(t, exitOK, code)

	var report map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Len(t, report["duplicates"], 1)
}

func TestMemberTimes(t *testing.T) {
	group := models.DuplicateGroup{
		Count: 2,
		Members: []models.DuplicateMember{
			{Index: 0, Time: models.NewTimeOfDay(10, 0, 0)},
			{Index: 3, Time: models.NewTimeOfDay(10, 0, 5)},
		},
	}
	assert.Equal(t, "10:00:00 10:00:05", memberTimes(group))
	assert.Empty(t, memberTimes(models.DuplicateGroup{}))
}
