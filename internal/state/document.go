// Package state reads and writes the YAML form of a contracts.SourceState.
package state

import (
	"fmt"

	"github.com/leandrodaf/timeline/sdk/contracts"
	"gopkg.in/yaml.v3"
)

// Marshal encodes st as YAML.
func Marshal(st contracts.SourceState) ([]byte, error) {
	data, err := yaml.Marshal(st)
	if err != nil {
		return nil, fmt.Errorf("state: marshal: %w", err)
	}
	return data, nil
}

// Unmarshal decodes a YAML document.
func Unmarshal(data []byte) (contracts.SourceState, error) {
	var st contracts.SourceState
	if err := yaml.Unmarshal(data, &st); err != nil {
		return contracts.SourceState{}, fmt.Errorf("state: unmarshal: %w", err)
	}
	return st, nil
}
