package contract

import (
	"fmt"
	"math/big"
	"reflect"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/zjkal/web3-model/internal/wallet"
)

var bigIntType = reflect.TypeOf(&big.Int{})

// ParseArgs converts command-line strings into the Go values go-ethereum's
// ABI packer expects for f's inputs. Supported: address, bool, string, bytes,
// bytesN and every intN/uintN width. Integers accept decimal or 0x hex.
func (f *Function) ParseArgs(raw []string) ([]any, error) {
	inputs := f.Method.Inputs
	if len(raw) != len(inputs) {
		return nil, fmt.Errorf("%w: %s takes %d, got %d", ErrArgumentCount, f.Method.Sig, len(inputs), len(raw))
	}
	args := make([]any, len(raw))
	for i, in := range inputs {
		v, err := parseArg(in.Type, raw[i])
		if err != nil {
			name := in.Name
			if name == "" {
				name = strconv.Itoa(i)
			}
			return nil, fmt.Errorf("%w: param %s (%s): %w", ErrInvalidArgument, name, in.Type, err)
		}
		args[i] = v
	}
	return args, nil
}

func parseArg(typ abi.Type, val string) (any, error) {
	val = strings.TrimSpace(val)

	switch typ.T {
	case abi.AddressTy:
		return wallet.ParseAddress(val)

	case abi.BoolTy:
		return strconv.ParseBool(val)

	case abi.StringTy:
		return val, nil

	case abi.BytesTy:
		return decodeHex(val)

	case abi.FixedBytesTy:
		b, err := decodeHex(val)
		if err != nil {
			return nil, err
		}
		if len(b) > typ.Size {
			return nil, fmt.Errorf("%d bytes does not fit bytes%d", len(b), typ.Size)
		}
		arr := reflect.New(typ.GetType()).Elem()
		reflect.Copy(arr, reflect.ValueOf(b))
		return arr.Interface(), nil

	case abi.IntTy, abi.UintTy:
		return parseInteger(typ, val)

	default:
		return nil, fmt.Errorf("unsupported type %s", typ.String())
	}
}

func parseInteger(typ abi.Type, val string) (any, error) {
	n, ok := new(big.Int).SetString(val, 0)
	if !ok {
		return nil, fmt.Errorf("invalid integer: %q", val)
	}

	if typ.T == abi.UintTy {
		if n.Sign() < 0 || n.BitLen() > typ.Size {
			return nil, fmt.Errorf("%s out of range for uint%d", val, typ.Size)
		}
	} else {
		limit := new(big.Int).Lsh(big.NewInt(1), uint(typ.Size-1))
		minimum := new(big.Int).Neg(limit)
		if n.Cmp(minimum) < 0 || n.Cmp(limit) >= 0 {
			return nil, fmt.Errorf("%s out of range for int%d", val, typ.Size)
		}
	}

	goType := typ.GetType()
	if goType == bigIntType {
		return n, nil
	}
	v := reflect.New(goType).Elem()
	if typ.T == abi.UintTy {
		v.SetUint(n.Uint64())
	} else {
		v.SetInt(n.Int64())
	}
	return v.Interface(), nil
}
