package contract

import (
	"encoding/json"
	"fmt"
	"math/big"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"
	"github.com/zjkal/web3-model/internal/wallet"
)

// ---------------------------------------------------------------------------
// helpers
// ---------------------------------------------------------------------------

const (
	testPrivKeyHex = "ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"
	testSignerAddr = "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"
	testTokenAddr  = "0x5FbDB2315678afecb367f032d93F642f64180aa3"
	testRecipient  = "0x70997970C51812dc3A010C7d01b50e0d17dc79C8"
)

// rpcError makes the mock answer a method with a JSON-RPC error object.
type rpcError struct {
	Code    int
	Message string
}

// rpcMock is a JSON-RPC server with a fixed result per method. It records how
// often each method was hit and the params of its last request. Unknown
// methods get a -32601 error.
type rpcMock struct {
	*httptest.Server

	mu        sync.Mutex
	responses map[string]any
	calls     map[string]int
	params    map[string][]json.RawMessage
}

func newRPCMock(t *testing.T, responses map[string]any) *rpcMock {
	t.Helper()
	m := &rpcMock{
		responses: responses,
		calls:     make(map[string]int),
		params:    make(map[string][]json.RawMessage),
	}
	m.Server = httptest.NewServer(http.HandlerFunc(m.serve))
	t.Cleanup(m.Close)
	return m
}

func (m *rpcMock) serve(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID     json.RawMessage   `json:"id"`
		Method string            `json:"method"`
		Params []json.RawMessage `json:"params"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}

	m.mu.Lock()
	m.calls[req.Method]++
	m.params[req.Method] = req.Params
	result, ok := m.responses[req.Method]
	m.mu.Unlock()

	resp := map[string]any{"jsonrpc": "2.0", "id": req.ID}
	switch res := result.(type) {
	case rpcError:
		resp["error"] = map[string]any{"code": res.Code, "message": res.Message}
	default:
		if ok {
			resp["result"] = res
		} else {
			resp["error"] = map[string]any{"code": -32601, "message": "method not found"}
		}
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp) //nolint:errcheck
}

// Calls returns how many requests hit method.
func (m *rpcMock) Calls(method string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[method]
}

// TotalCalls returns the number of requests of any method.
func (m *rpcMock) TotalCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.calls {
		n += c
	}
	return n
}

// Param decodes positional param i of the last request for method into v.
func (m *rpcMock) Param(t *testing.T, method string, i int, v any) {
	t.Helper()
	m.mu.Lock()
	params := m.params[method]
	m.mu.Unlock()
	require.Greater(t, len(params), i, "no param %d recorded for %s", i, method)
	require.NoError(t, json.Unmarshal(params[i], v))
}

// SentTx decodes the last eth_sendRawTransaction payload.
func (m *rpcMock) SentTx(t *testing.T) *types.Transaction {
	t.Helper()
	var raw string
	m.Param(t, "eth_sendRawTransaction", 0, &raw)
	data, err := hexutil.Decode(raw)
	require.NoError(t, err)
	tx := new(types.Transaction)
	require.NoError(t, tx.UnmarshalBinary(data))
	return tx
}

// chainResponses are answers for a healthy chain with id 1, gas price 20 wei,
// nonce 5 and a 21000 gas estimate.
func chainResponses() map[string]any {
	return map[string]any{
		"eth_chainId":             "0x1",
		"eth_gasPrice":            "0x14",
		"eth_getTransactionCount": "0x5",
		"eth_estimateGas":         "0x5208",
		"eth_sendRawTransaction":  uint256Word(1),
	}
}

func dialMock(t *testing.T, m *rpcMock) *ethclient.Client {
	t.Helper()
	client, err := ethclient.Dial(m.URL)
	require.NoError(t, err)
	t.Cleanup(client.Close)
	return client
}

// quietLogger returns a logger that records entries instead of printing them.
func quietLogger() (*logrus.Logger, *test.Hook) {
	return test.NewNullLogger()
}

func testWallet(t *testing.T) *wallet.Wallet {
	t.Helper()
	w, err := wallet.New(testSignerAddr, testPrivKeyHex)
	require.NoError(t, err)
	return w
}

func uint256Word(n int64) string {
	return fmt.Sprintf("0x%064x", big.NewInt(n))
}

func addr(s string) common.Address {
	return common.HexToAddress(s)
}
