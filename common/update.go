package common

import (
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

// ErrUpdateAccess is thrown by the Update method of every contract when the
// carrier transaction is not witnessed by the contract owner.
const ErrUpdateAccess = "only the owner can update the contract"

// HasUpdateAccess returns true if the contract can be updated.
func HasUpdateAccess(ctx storage.Context) bool {
	return runtime.CheckWitness(Owner(ctx))
}
