package contract

import (
	"encoding/json"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
)

// TxDescriptor is a fully resolved legacy transaction, before signing.
// To, Value and Data are nil when they carry their default.
type TxDescriptor struct {
	ChainID  *big.Int
	From     common.Address
	To       *common.Address
	Value    *big.Int
	Data     []byte
	Gas      uint64
	GasPrice *big.Int
	Nonce    uint64
}

// txDescriptorJSON mirrors the key set node RPCs use for transaction objects.
type txDescriptorJSON struct {
	ChainID  *hexutil.Big    `json:"chainId"`
	From     common.Address  `json:"from"`
	To       *common.Address `json:"to,omitempty"`
	Value    *hexutil.Big    `json:"value,omitempty"`
	Data     hexutil.Bytes   `json:"data,omitempty"`
	Gas      hexutil.Uint64  `json:"gas"`
	GasPrice *hexutil.Big    `json:"gasPrice"`
	Nonce    hexutil.Uint64  `json:"nonce"`
}

// MarshalJSON encodes the descriptor with hex quantities, omitting to, value
// and data when unset.
func (d *TxDescriptor) MarshalJSON() ([]byte, error) {
	return json.Marshal(txDescriptorJSON{
		ChainID:  (*hexutil.Big)(d.ChainID),
		From:     d.From,
		To:       d.To,
		Value:    (*hexutil.Big)(d.Value),
		Data:     d.Data,
		Gas:      hexutil.Uint64(d.Gas),
		GasPrice: (*hexutil.Big)(d.GasPrice),
		Nonce:    hexutil.Uint64(d.Nonce),
	})
}

// Fee returns Gas × GasPrice in wei.
func (d *TxDescriptor) Fee() *big.Int {
	if d.GasPrice == nil {
		return new(big.Int)
	}
	return new(big.Int).Mul(new(big.Int).SetUint64(d.Gas), d.GasPrice)
}

// Transaction converts the descriptor to an unsigned legacy transaction.
func (d *TxDescriptor) Transaction() *types.Transaction {
	value := new(big.Int)
	if d.Value != nil {
		value.Set(d.Value)
	}
	return types.NewTx(&types.LegacyTx{
		Nonce:    d.Nonce,
		GasPrice: d.GasPrice,
		Gas:      d.Gas,
		To:       d.To,
		Value:    value,
		Data:     d.Data,
	})
}

// CallMsg is the message used for eth_estimateGas. Gas is left unset so the
// node estimates against its own cap.
func (d *TxDescriptor) CallMsg() ethereum.CallMsg {
	return ethereum.CallMsg{
		From:     d.From,
		To:       d.To,
		GasPrice: d.GasPrice,
		Value:    d.Value,
		Data:     d.Data,
	}
}
