package contract

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
)

// LoadABIFile reads an ABI from path. The file may be a raw ABI array or a
// Hardhat/Foundry artifact object with an "abi" key.
func LoadABIFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading ABI %s: %w", path, err)
	}
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return "", fmt.Errorf("%w: file is empty: %s", ErrInvalidABI, path)
	}

	if data[0] == '{' {
		var artifact struct {
			ABI json.RawMessage `json:"abi"`
		}
		if err := json.Unmarshal(data, &artifact); err != nil {
			return "", fmt.Errorf("%w: %s: %w", ErrInvalidABI, path, err)
		}
		abiData := bytes.TrimSpace(artifact.ABI)
		if len(abiData) < 2 || abiData[0] != '[' {
			return "", fmt.Errorf("%w: %s is a JSON object without an \"abi\" array", ErrInvalidABI, path)
		}
		return string(abiData), nil
	}

	return string(data), nil
}
