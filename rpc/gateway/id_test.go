package gateway

import (
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/stretchr/testify/require"
)

func TestDepositIDStringForm(t *testing.T) {
	var id util.Uint256
	for i := range id {
		id[i] = byte(i)
	}

	s := FormatDepositID(id)
	back, err := ParseDepositID(s)
	require.NoError(t, err)
	require.Equal(t, id, back)

	_, err = ParseDepositID("not-a-valid-encoding!")
	require.Error(t, err)

	_, err = ParseDepositID("1111")
	require.Error(t, err)
}
