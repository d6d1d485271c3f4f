package deploy

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/nspcc-dev/neo-go/pkg/encoding/address"
)

// Record is the machine-readable summary of one deployment run. It is
// written next to the operator tooling so later runs and monitoring can
// resolve contract addresses without chain lookups.
type Record struct {
	ChainID   uint32            `json:"chainId"`
	ChainName string            `json:"chainName"`
	Timestamp string            `json:"timestamp"`
	Contracts map[string]string `json:"contracts"`
}

// NewRecord builds a deployment Record from the deployed contract set.
func NewRecord(chainID uint32, chainName string, info Info) Record {
	return Record{
		ChainID:   chainID,
		ChainName: chainName,
		Timestamp: timestampNow().Format(time.RFC3339),
		Contracts: map[string]string{
			"feerouter": address.Uint160ToString(info.FeeRouter),
			"gateway":   address.Uint160ToString(info.Gateway),
		},
	}
}

// WriteRecord stores the Record at the given path in indented JSON form,
// overwriting any previous deployment record.
func WriteRecord(path string, r Record) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("encode deployment record: %w", err)
	}

	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("write deployment record: %w", err)
	}
	return nil
}
