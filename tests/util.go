package tests

import (
	"math/rand"
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/core/native/nativenames"
	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/neotest/chain"
)

func newExecutor(t *testing.T) *neotest.Executor {
	bc, acc := chain.NewSingle(t)
	return neotest.NewExecutor(t, bc, acc, acc)
}

func gasInvoker(t *testing.T, e *neotest.Executor) *neotest.ContractInvoker {
	return e.CommitteeInvoker(e.NativeHash(t, nativenames.Gas)).WithSigners(e.Validator)
}

func randomBytes(n int) []byte {
	a := make([]byte, n)
	rand.Read(a) //nolint:staticcheck // SA1019: rand.Read has been deprecated since Go 1.20
	return a
}

// validCredential builds withdrawal credentials of the given type byte with
// a random 20-byte address suffix.
func validCredential(prefix byte) []byte {
	cred := make([]byte, 32)
	cred[0] = prefix
	copy(cred[12:], randomBytes(20))
	return cred
}
