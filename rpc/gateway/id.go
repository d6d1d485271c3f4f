package gateway

import (
	"fmt"

	"github.com/mr-tron/base58"
	"github.com/nspcc-dev/neo-go/pkg/util"
)

// FormatDepositID returns the canonical base58 string form of the deposit
// identifier used in logs, CLIs and operator tooling.
func FormatDepositID(id util.Uint256) string {
	return base58.Encode(id[:])
}

// ParseDepositID decodes the base58 string form of a deposit identifier.
func ParseDepositID(s string) (util.Uint256, error) {
	b, err := base58.Decode(s)
	if err != nil {
		return util.Uint256{}, fmt.Errorf("invalid deposit ID encoding: %w", err)
	}
	if len(b) != util.Uint256Size {
		return util.Uint256{}, fmt.Errorf("invalid deposit ID length %d", len(b))
	}
	return util.Uint256DecodeBytesBE(b)
}
