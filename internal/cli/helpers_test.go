package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

const testConfig = `
grid: {slots: 6, columns: 3}
dock: {capacity: 2, items: [D]}
drawer:
  items:
    - {id: A, label: Alpha}
    - {id: B, label: Beta}
    - {id: C, label: Gamma}
    - {id: D, label: Delta}
`

var dbCommands = map[string]bool{"layout": true, "place": true, "drag": true, "check": true, "trace": true, "move": true}

// testEnv is a config file and a database in a temp directory.
type testEnv struct {
	dir    string
	config string
	db     string
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()
	dir := t.TempDir()
	env := testEnv{
		dir:    dir,
		config: filepath.Join(dir, "homeslot.yaml"),
		db:     filepath.Join(dir, "homeslot.db"),
	}
	require.NoError(t, os.WriteFile(env.config, []byte(testConfig), 0644))
	return env
}

// run executes a root command with the env's config. Commands that take
// --db get the env's database.
func (e testEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	full := append([]string{"--config", e.config}, args...)
	for _, arg := range args {
		if dbCommands[arg] {
			full = append(full, "--db", e.db)
			break
		}
	}

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	cmd := NewRootCommand()
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)
	cmd.SetArgs(full)

	err := cmd.Execute()
	return stdout.String(), err
}
