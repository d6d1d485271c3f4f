package registration

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/gas"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

// Call records the payload of one register invocation.
type Call struct {
	Credential  []byte
	PublicKey   []byte
	Signature   []byte
	DepositRoot []byte
}

const countKey = "count"

func OnNEP17Payment(from interop.Hash160, amount int, data any) {
	caller := runtime.GetCallingScriptHash()
	if !caller.Equals(gas.Hash) {
		panic("GAS only")
	}
}

func Register(credential []byte, pubkey []byte, signature []byte, depositRoot []byte) {
	if len(pubkey) != 48 {
		panic("bad validator public key")
	}
	if len(signature) != 96 {
		panic("bad deposit signature")
	}

	ctx := storage.GetContext()
	n := Count()
	storage.Put(ctx, countKey, n+1)
	storage.Put(ctx, std.Itoa(n, 10), std.Serialize(Call{
		Credential:  credential,
		PublicKey:   pubkey,
		Signature:   signature,
		DepositRoot: depositRoot,
	}))
}

// Count returns the number of registrations performed so far.
func Count() int {
	n := storage.Get(storage.GetReadOnlyContext(), countKey)
	if n == nil {
		return 0
	}
	return n.(int)
}

// Get returns the i-th recorded registration.
func Get(i int) Call {
	val := storage.Get(storage.GetReadOnlyContext(), std.Itoa(i, 10))
	if val == nil {
		return Call{}
	}
	return std.Deserialize(val.([]byte)).(Call)
}
