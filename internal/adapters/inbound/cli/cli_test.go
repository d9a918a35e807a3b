package cli_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/specgate/specgate/internal/adapters/inbound/cli"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := cli.NewRootCmdForTest()
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func writeProject(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(dir, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

func TestVersionCommand(t *testing.T) {
	out, err := runCommand(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "specgate")
	assert.Contains(t, out, "dev")
}

func TestCheckCommand_CleanProjectPasses(t *testing.T) {
	dir := writeProject(t, map[string]string{
		"app/routes.py": "@app.get(\"/products\")\ndef list_products():\n    return service.list()\n",
	})

	out, err := runCommand(t, "check", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "passed")
}

func TestCheckCommand_FailingProjectExitsNonZero(t *testing.T) {
	dir := writeProject(t, map[string]string{
		"app/pay.py": "def pay(order):\n    raise NotImplementedError\n",
	})

	out, err := runCommand(t, "check", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "blocking findings")
	assert.Contains(t, out, "app/pay.py")
}

func TestCheckCommand_JSONOutput(t *testing.T) {
	dir := writeProject(t, map[string]string{
		"app/ok.py": "x = 1\n",
	})

	out, err := runCommand(t, "check", dir, "--json")
	require.NoError(t, err)

	var result map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, true, result["passed"])
}

func TestCoverageCommand(t *testing.T) {
	dir := writeProject(t, map[string]string{
		"app/routes.py": "@app.get(\"/products\")\ndef list_products(): ...\n",
	})
	irPath := filepath.Join(t.TempDir(), "surface.yaml")
	require.NoError(t, os.WriteFile(irPath, []byte(`endpoints:
  - method: GET
    path: /products
  - method: POST
    path: /products
`), 0o644))

	out, err := runCommand(t, "coverage", dir, "--ir", irPath)
	require.NoError(t, err)
	assert.Contains(t, out, "50%")
	assert.Contains(t, out, "Missing")

	_, err = runCommand(t, "coverage", dir, "--ir", irPath, "--min", "0.9")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "below minimum")
}

func TestCoverageCommand_RequiresIR(t *testing.T) {
	_, err := runCommand(t, "coverage", t.TempDir())
	assert.Error(t, err)
}

func TestScenariosCommand(t *testing.T) {
	behaviorPath := filepath.Join(t.TempDir(), "behavior.yaml")
	require.NoError(t, os.WriteFile(behaviorPath, []byte(`flows:
  - id: OrderCreate
    entity: Order
    endpoint: /orders
`), 0o644))

	out, err := runCommand(t, "scenarios", "--behavior", behaviorPath)
	require.NoError(t, err)
	assert.Contains(t, out, "SCN-0001")
	assert.Contains(t, out, "/orders")
}

func TestScenariosCommand_RequiresInput(t *testing.T) {
	_, err := runCommand(t, "scenarios")
	assert.Error(t, err)
}

func TestGuardrailCommand(t *testing.T) {
	manifestPath := filepath.Join(t.TempDir(), "slots.yaml")
	require.NoError(t, os.WriteFile(manifestPath, []byte("allowed_slots:\n  - \"app/**\"\n"), 0o644))

	out, err := runCommand(t, "guardrail", t.TempDir(),
		"--manifest", manifestPath,
		"--touched", "app/routes.py")
	require.NoError(t, err)
	assert.Contains(t, out, "within allowed slots")

	out, err = runCommand(t, "guardrail", t.TempDir(),
		"--manifest", manifestPath,
		"--touched", "secrets/key.pem")
	require.Error(t, err)
	assert.Contains(t, out, "blocked  secrets/key.pem")
}

func TestGateCommand_FastLevelJSON(t *testing.T) {
	dir := writeProject(t, map[string]string{
		"app/routes.py": "@app.get(\"/products\")\ndef list_products():\n    return service.list()\n",
	})
	irPath := filepath.Join(t.TempDir(), "surface.yaml")
	require.NoError(t, os.WriteFile(irPath, []byte("endpoints:\n  - method: GET\n    path: /products\n"), 0o644))

	out, err := runCommand(t, "gate", dir,
		"--env", "dev",
		"--level", "fast",
		"--ir", irPath,
		"--json")
	require.NoError(t, err)

	var report map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	verdict, ok := report["verdict"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, true, verdict["passed"])
	assert.Equal(t, "dev", verdict["environment"])
}

func TestGateCommand_UnknownEnvironment(t *testing.T) {
	dir := writeProject(t, map[string]string{"app/ok.py": "x = 1\n"})
	_, err := runCommand(t, "gate", dir, "--env", "qa")
	assert.Error(t, err)
}
