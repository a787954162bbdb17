package chain

import (
	"context"
	"fmt"
	"math/big"
	"sync"
	"time"
)

// staleBlockThreshold is how many blocks behind the best head a probed node
// may be before it counts as stale.
const staleBlockThreshold = 3

// ProbeResult is the outcome of pinging one endpoint. ChainID is nil when the
// endpoint did not answer.
type ProbeResult struct {
	URL         string
	ChainID     *big.Int
	BlockNumber uint64
	Latency     time.Duration
	Stale       bool
	Err         error
}

// Healthy reports whether the endpoint answered, is not stale and, when
// wantChainID is non-zero, serves that chain.
func (r ProbeResult) Healthy(wantChainID int64) bool {
	if r.Err != nil || r.Stale {
		return false
	}
	return wantChainID == 0 || r.ServesChain(wantChainID)
}

// ServesChain reports whether the endpoint answered with chain ID id. Chain IDs
// wider than 64 bits never match.
func (r ProbeResult) ServesChain(id int64) bool {
	return r.ChainID != nil && r.ChainID.IsInt64() && r.ChainID.Int64() == id
}

// Probe dials url and measures one eth_chainId plus eth_blockNumber round.
func Probe(ctx context.Context, url string) ProbeResult {
	res := ProbeResult{URL: url}

	client, err := Dial(ctx, url)
	if err != nil {
		res.Err = err
		return res
	}
	defer client.Close()

	start := time.Now()
	id, err := client.ChainID(ctx)
	if err != nil {
		res.Err = fmt.Errorf("eth_chainId: %w", Classify(err))
		return res
	}
	block, err := client.BlockNumber(ctx)
	if err != nil {
		res.Err = fmt.Errorf("eth_blockNumber: %w", Classify(err))
		return res
	}
	res.Latency = time.Since(start)
	res.ChainID = id
	res.BlockNumber = block
	return res
}

// ProbeAll probes urls in parallel. Results keep the order of urls. Nodes more
// than a few blocks behind the best head among results on the same chain are
// marked stale.
func ProbeAll(ctx context.Context, urls []string) []ProbeResult {
	results := make([]ProbeResult, len(urls))
	var wg sync.WaitGroup
	for i, url := range urls {
		wg.Add(1)
		go func(idx int, u string) {
			defer wg.Done()
			results[idx] = Probe(ctx, u)
		}(i, url)
	}
	wg.Wait()

	markStale(results)
	return results
}

func markStale(results []ProbeResult) {
	best := map[string]uint64{}
	for _, r := range results {
		if r.Err == nil && r.BlockNumber > best[chainKey(r)] {
			best[chainKey(r)] = r.BlockNumber
		}
	}
	for i := range results {
		r := &results[i]
		if r.Err == nil && best[chainKey(*r)]-r.BlockNumber > staleBlockThreshold {
			r.Stale = true
		}
	}
}

func chainKey(r ProbeResult) string {
	if r.ChainID == nil {
		return ""
	}
	return r.ChainID.String()
}
