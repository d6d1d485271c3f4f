package deploy

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/nspcc-dev/neo-go/pkg/encoding/address"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/stretchr/testify/require"
)

func TestRecordRoundtrip(t *testing.T) {
	fixed := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)
	timestampNow = func() time.Time { return fixed }
	t.Cleanup(func() { timestampNow = func() time.Time { return time.Now().UTC() } })

	info := Info{
		FeeRouter: util.Uint160{1, 2, 3},
		Gateway:   util.Uint160{4, 5, 6},
	}

	r := NewRecord(894710606, "testnet", info)
	require.Equal(t, fixed.Format(time.RFC3339), r.Timestamp)

	path := filepath.Join(t.TempDir(), "deployment.json")
	require.NoError(t, WriteRecord(path, r))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var back Record
	require.NoError(t, json.Unmarshal(data, &back))
	require.Equal(t, r, back)
	require.Equal(t, address.Uint160ToString(info.Gateway), back.Contracts["gateway"])
	require.Equal(t, uint32(894710606), back.ChainID)
}
