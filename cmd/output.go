package cmd

import (
	"fmt"
	"math/big"
	"reflect"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/zjkal/web3-model/internal/ui"
)

// formatValue renders a decoded ABI value for display.
func formatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return "<nil>"
	case *big.Int:
		return x.String()
	case common.Address:
		return x.Hex()
	case common.Hash:
		return x.Hex()
	case []byte:
		return hexutil.Encode(x)
	case string:
		return x
	case bool:
		return fmt.Sprintf("%t", x)
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			b := make([]byte, rv.Len())
			reflect.Copy(reflect.ValueOf(b), rv)
			return hexutil.Encode(b)
		}
		fallthrough
	case reflect.Slice:
		parts := make([]string, rv.Len())
		for i := range parts {
			parts[i] = formatValue(rv.Index(i).Interface())
		}
		return "[" + strings.Join(parts, ", ") + "]"
	}
	return fmt.Sprintf("%v", v)
}

// resultPairs labels decoded outputs: "Result" for one, "Result[i]" for many.
func resultPairs(values []any) [][2]string {
	if len(values) == 1 {
		return [][2]string{{"Result", ui.Val(formatValue(values[0]))}}
	}
	pairs := make([][2]string, 0, len(values))
	for i, v := range values {
		pairs = append(pairs, [2]string{fmt.Sprintf("Result[%d]", i), ui.Val(formatValue(v))})
	}
	return pairs
}
