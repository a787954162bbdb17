package chain

import (
	"context"
	"errors"
	"fmt"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/ethereum/go-ethereum/rpc"
)

// ErrTransport marks failures to reach the node at all, as opposed to errors
// the node returned over a working connection.
var ErrTransport = errors.New("rpc transport error")

// Backend is the subset of the go-ethereum client the library talks to.
// *ethclient.Client satisfies it.
type Backend interface {
	ethereum.ChainIDReader
	ethereum.ChainStateReader
	ethereum.ContractCaller
	ethereum.GasEstimator
	ethereum.GasPricer
	ethereum.TransactionSender
}

var _ Backend = (*ethclient.Client)(nil)

// Dial connects to an EVM JSON-RPC endpoint. HTTP endpoints connect lazily, so
// an unreachable node surfaces on the first call rather than here.
func Dial(ctx context.Context, rpcURL string) (*ethclient.Client, error) {
	if rpcURL == "" {
		return nil, fmt.Errorf("%w: empty RPC URL", ErrTransport)
	}
	client, err := ethclient.DialContext(ctx, rpcURL)
	if err != nil {
		return nil, fmt.Errorf("%w: dialing %s: %w", ErrTransport, rpcURL, err)
	}
	return client, nil
}

// Classify wraps err with ErrTransport unless the node itself produced it.
// Only JSON-RPC error objects count as node answers; non-2xx HTTP replies
// (gateways, rate limiters) are transport failures, still reachable as
// rpc.HTTPError through errors.As.
func Classify(err error) error {
	if err == nil || IsNodeError(err) || errors.Is(err, ErrTransport) {
		return err
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrTransport, err)
}

// IsNodeError reports whether err was returned by the node as a JSON-RPC error.
func IsNodeError(err error) bool {
	var rpcErr rpc.Error
	return errors.As(err, &rpcErr)
}
