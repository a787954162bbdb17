package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zjkal/web3-model/internal/chain"
	"github.com/zjkal/web3-model/internal/wallet"
)

// ---------------------------------------------------------------------------
// JSON-RPC mock
// ---------------------------------------------------------------------------

type rpcMock struct {
	*httptest.Server

	mu        sync.Mutex
	responses map[string]any
	calls     map[string]int
}

func newRPCMock(t *testing.T, responses map[string]any) *rpcMock {
	t.Helper()
	m := &rpcMock{responses: responses, calls: make(map[string]int)}
	m.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			ID     json.RawMessage `json:"id"`
			Method string          `json:"method"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		m.mu.Lock()
		m.calls[req.Method]++
		result, ok := m.responses[req.Method]
		m.mu.Unlock()

		resp := map[string]any{"jsonrpc": "2.0", "id": req.ID}
		if ok {
			resp["result"] = result
		} else {
			resp["error"] = map[string]any{"code": -32601, "message": "method not found"}
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp) //nolint:errcheck
	}))
	t.Cleanup(m.Close)
	return m
}

func (m *rpcMock) Calls(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[method]
}

func chainResponses() map[string]any {
	return map[string]any{
		"eth_chainId":             "0x1",
		"eth_gasPrice":            "0x3b9aca00",
		"eth_getTransactionCount": "0x5",
		"eth_estimateGas":         "0x5208",
		"eth_sendRawTransaction":  uint256Word(big.NewInt(1)),
	}
}

func uint256Word(n *big.Int) string {
	return fmt.Sprintf("0x%064x", n)
}

// executeWithKey runs a command with the test key in the environment.
func executeWithKey(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("WEB3MODEL_PRIVATE_KEY", testPrivKeyHex)
	t.Setenv("WEB3MODEL_RPC_URL", "")
	t.Setenv("WEB3MODEL_NETWORK", "")
	return executeIn(t, t.TempDir(), args...)
}

// ---------------------------------------------------------------------------
// wallet
// ---------------------------------------------------------------------------

func TestWalletNew(t *testing.T) {
	out := mustExecute(t, "wallet", "new")
	assert.Contains(t, out, "Address")
	assert.Contains(t, out, "Private Key")
	assert.Contains(t, out, "not stored")
}

func TestWalletAddress(t *testing.T) {
	out, err := executeWithKey(t, "wallet", "address")
	require.NoError(t, err)
	assert.Equal(t, testSignerAddr, strings.TrimSpace(out))
}

func TestWalletAddress_NoKey(t *testing.T) {
	_, err := executeCommand(t, "wallet", "address")
	assert.ErrorIs(t, err, errNoKey)
}

func TestWalletVerify(t *testing.T) {
	w, err := wallet.FromPrivateKey(testPrivKeyHex)
	require.NoError(t, err)
	signer, err := w.Signer()
	require.NoError(t, err)
	sig, err := signer.SignMessage([]byte("hello"))
	require.NoError(t, err)

	t.Cleanup(func() { walletVerifyAddr = "" })
	out := mustExecute(t, "wallet", "verify", "hello", hexutil.Encode(sig), "--address", testSignerAddr)
	assert.Contains(t, out, "signed by "+testSignerAddr)

	out = mustExecute(t, "wallet", "verify", "tampered", hexutil.Encode(sig), "--address", testSignerAddr)
	assert.Contains(t, out, "not signed by")
}

// ---------------------------------------------------------------------------
// networks / config
// ---------------------------------------------------------------------------

func TestNetworksCommand(t *testing.T) {
	out := mustExecute(t, "networks")
	assert.Contains(t, out, "base-sepolia")
	assert.Contains(t, out, "84532")
	assert.Contains(t, out, "*")
}

func TestConfigSetAndShow(t *testing.T) {
	t.Setenv("WEB3MODEL_NETWORK", "")
	t.Setenv("WEB3MODEL_PRIVATE_KEY", "")
	dir := t.TempDir()

	_, err := executeIn(t, dir, "config", "set", "network", "sepolia")
	require.NoError(t, err)
	_, err = executeIn(t, dir, "config", "set", "decimals", "6")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, "config.json"))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"sepolia"`)

	out, err := executeIn(t, dir, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "sepolia")
	assert.Contains(t, out, "not set")
}

func TestConfigSet_Rejects(t *testing.T) {
	_, err := executeCommand(t, "config", "set", "private_key", testPrivKeyHex)
	assert.Error(t, err)

	_, err = executeCommand(t, "config", "set", "network", "atlantis")
	assert.Error(t, err)
}

// ---------------------------------------------------------------------------
// send
// ---------------------------------------------------------------------------

func resetSendFlags(t *testing.T) {
	t.Cleanup(func() {
		sendGas, sendGasPrice, sendNonce, sendData = 0, "", -1, ""
		sendYes, sendDryRun = false, false
	})
}

func TestSend_DryRunDoesNotSubmit(t *testing.T) {
	resetSendFlags(t)
	m := newRPCMock(t, chainResponses())

	out, err := executeWithKey(t, "--rpc", m.URL, "send", "0x70997970C51812dc3A010C7d01b50e0d17dc79C8", "0.5", "--dry-run")
	require.NoError(t, err)
	assert.Contains(t, out, "Transaction Preview")
	assert.Contains(t, out, "21000")
	assert.Contains(t, out, "1 Gwei")
	assert.Zero(t, m.Calls("eth_sendRawTransaction"))
}

func TestSend_ExplicitFieldsSkipQueries(t *testing.T) {
	resetSendFlags(t)
	m := newRPCMock(t, chainResponses())

	_, err := executeWithKey(t, "--rpc", m.URL, "send", "0x70997970C51812dc3A010C7d01b50e0d17dc79C8", "1",
		"--gas", "30000", "--gas-price", "2.5", "--nonce", "0", "--dry-run")
	require.NoError(t, err)
	assert.Zero(t, m.Calls("eth_gasPrice"))
	assert.Zero(t, m.Calls("eth_getTransactionCount"))
	assert.Zero(t, m.Calls("eth_estimateGas"))
	assert.Equal(t, 1, m.Calls("eth_chainId"))
}

func TestSend_Submits(t *testing.T) {
	resetSendFlags(t)
	m := newRPCMock(t, chainResponses())

	out, err := executeWithKey(t, "--rpc", m.URL, "send", "0x70997970C51812dc3A010C7d01b50e0d17dc79C8", "0.5", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "Transaction sent!")
	assert.Equal(t, 1, m.Calls("eth_sendRawTransaction"))
}

func TestSend_InvalidRecipient(t *testing.T) {
	resetSendFlags(t)
	_, err := executeWithKey(t, "send", "0x1234", "1")
	assert.ErrorIs(t, err, wallet.ErrInvalidAddress)
}

// ---------------------------------------------------------------------------
// token
// ---------------------------------------------------------------------------

func TestTokenBalance_Raw(t *testing.T) {
	t.Cleanup(func() { tokenRaw = false })
	m := newRPCMock(t, map[string]any{"eth_call": uint256Word(big.NewInt(1234))})

	out, err := executeCommand(t, "--rpc", m.URL, "token", "balance", "--raw",
		"0x5FbDB2315678afecb367f032d93F642f64180aa3", testSignerAddr)
	require.NoError(t, err)
	assert.Equal(t, "1234", strings.TrimSpace(out))
	assert.Equal(t, 1, m.Calls("eth_call"))
}

func TestTokenBalance_ScalesByDecimals(t *testing.T) {
	// decimals() and balanceOf() share the mock answer: 6 decimals, balance 6.
	m := newRPCMock(t, map[string]any{"eth_call": uint256Word(big.NewInt(6))})

	out, err := executeCommand(t, "--rpc", m.URL, "token", "balance",
		"0x5FbDB2315678afecb367f032d93F642f64180aa3", testSignerAddr)
	require.NoError(t, err)
	assert.Equal(t, "0.000006", strings.TrimSpace(out))
	assert.Equal(t, 2, m.Calls("eth_call"))
}

func TestTokenAllowance_Unlimited(t *testing.T) {
	t.Cleanup(func() { tokenRaw = false })
	maxUint := new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 256), big.NewInt(1))
	m := newRPCMock(t, map[string]any{"eth_call": uint256Word(maxUint)})

	out, err := executeCommand(t, "--rpc", m.URL, "token", "allowance", "--raw",
		"0x5FbDB2315678afecb367f032d93F642f64180aa3", testSignerAddr, "0x70997970C51812dc3A010C7d01b50e0d17dc79C8")
	require.NoError(t, err)
	assert.Equal(t, "unlimited", strings.TrimSpace(out))
}

func TestProbeStatus(t *testing.T) {
	n := chain.Network{Name: "ethereum", ChainID: 1}
	assert.Contains(t, probeStatus(n, chain.ProbeResult{ChainID: big.NewInt(1)}), "ok")
	assert.Contains(t, probeStatus(n, chain.ProbeResult{ChainID: big.NewInt(1), Stale: true}), "behind head")
	assert.Contains(t, probeStatus(n, chain.ProbeResult{ChainID: big.NewInt(5)}), "chain id 5")
	assert.Contains(t, probeStatus(n, chain.ProbeResult{Err: chain.ErrTransport}), "unreachable")
}

func TestProbeTable(t *testing.T) {
	networks := []chain.Network{{Name: "local", ChainID: 31337}}
	results := []chain.ProbeResult{{ChainID: big.NewInt(31337), BlockNumber: 42, Latency: 3 * time.Millisecond}}
	out := probeTable(networks, results).Render()
	assert.Contains(t, out, "3ms")
	assert.Contains(t, out, "42")
}

func TestResolveRecipient_HexSkipsNetwork(t *testing.T) {
	m := newRPCMock(t, map[string]any{})
	client, err := ethclient.Dial(m.URL)
	require.NoError(t, err)
	t.Cleanup(client.Close)

	addr, err := resolveRecipient(context.Background(), client, "0x70997970c51812dc3a010c7d01b50e0d17dc79c8")
	require.NoError(t, err)
	assert.Equal(t, "0x70997970C51812dc3A010C7d01b50e0d17dc79C8", addr.Hex())
	assert.Zero(t, m.Calls("eth_call"))
}

func TestResolveRecipient_ENSName(t *testing.T) {
	// registry.resolver() and resolver.addr() both answer with this word.
	m := newRPCMock(t, map[string]any{
		"eth_call": "0x00000000000000000000000070997970c51812dc3a010c7d01b50e0d17dc79c8",
	})
	client, err := ethclient.Dial(m.URL)
	require.NoError(t, err)
	t.Cleanup(client.Close)

	addr, err := resolveRecipient(context.Background(), client, "alice.eth")
	require.NoError(t, err)
	assert.Equal(t, "0x70997970C51812dc3A010C7d01b50e0d17dc79C8", addr.Hex())
	assert.Equal(t, 2, m.Calls("eth_call"))
}
