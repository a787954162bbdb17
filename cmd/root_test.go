package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	testPrivKeyHex = "0xac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"
	testSignerAddr = "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"
)

// executeCommand runs the root command with an isolated config dir and
// returns everything written to stdout and stderr.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("WEB3MODEL_PRIVATE_KEY", "")
	t.Setenv("WEB3MODEL_RPC_URL", "")
	t.Setenv("WEB3MODEL_NETWORK", "")
	return executeIn(t, t.TempDir(), args...)
}

func executeIn(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	t.Cleanup(func() {
		rpcURL, networkName, verbose = "", "", false
	})

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(append([]string{"--config", dir}, args...))
	err := rootCmd.Execute()
	return buf.String(), err
}

func mustExecute(t *testing.T, args ...string) string {
	t.Helper()
	out, err := executeCommand(t, args...)
	require.NoError(t, err, out)
	return out
}
