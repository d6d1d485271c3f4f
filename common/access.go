package common

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

// Storage keys of the access roles. Contracts using this guard must not
// reuse these byte values for their own storage prefixes.
const (
	ownerKey    = 'O'
	operatorKey = 'Q'
)

var (
	// ErrCallerNotOwner appears when the method is restricted to the
	// contract owner but was called by someone else.
	ErrCallerNotOwner = "caller is not the owner"
	// ErrCallerNotOperator appears when the method is restricted to the
	// contract operator but was called by someone else.
	ErrCallerNotOperator = "caller is not the operator"
	// ErrCallerNeitherOperatorNorOwner appears when the method accepts
	// both privileged roles and the caller is neither of them.
	ErrCallerNeitherOperatorNorOwner = "caller is neither operator nor owner"
)

// InitAccess stores the initial owner and operator accounts. It must be
// called exactly once, from the _deploy method of the governing contract.
func InitAccess(ctx storage.Context, owner, operator interop.Hash160) {
	if len(owner) != interop.Hash160Len {
		panic("invalid owner account")
	}

	storage.Put(ctx, ownerKey, owner)

	if len(operator) != 0 {
		if len(operator) != interop.Hash160Len {
			panic("invalid operator account")
		}
		storage.Put(ctx, operatorKey, operator)
	}
}

// Owner returns the current owner account of the contract.
func Owner(ctx storage.Context) interop.Hash160 {
	return storage.Get(ctx, ownerKey).(interop.Hash160)
}

// Operator returns the current operator account of the contract or nil if
// none is delegated.
func Operator(ctx storage.Context) interop.Hash160 {
	op := storage.Get(ctx, operatorKey)
	if op == nil {
		return nil
	}
	return op.(interop.Hash160)
}

// CheckOwner checks witness of the contract owner. It panics with
// ErrCallerNotOwner message on fail.
func CheckOwner(ctx storage.Context) {
	if !runtime.CheckWitness(Owner(ctx)) {
		panic(ErrCallerNotOwner)
	}
}

// CheckOperator checks witness of the contract operator. It panics with
// ErrCallerNotOperator message on fail.
func CheckOperator(ctx storage.Context) {
	op := Operator(ctx)
	if len(op) != interop.Hash160Len || !runtime.CheckWitness(op) {
		panic(ErrCallerNotOperator)
	}
}

// CheckOperatorOrOwner checks witness of either privileged role. It panics
// with ErrCallerNeitherOperatorNorOwner message on fail.
func CheckOperatorOrOwner(ctx storage.Context) {
	if !InvokedByOperatorOrOwner(ctx) {
		panic(ErrCallerNeitherOperatorNorOwner)
	}
}

// InvokedByOperatorOrOwner is a non-panicking form of CheckOperatorOrOwner
// for methods that combine role checks with other accepted callers.
func InvokedByOperatorOrOwner(ctx storage.Context) bool {
	if runtime.CheckWitness(Owner(ctx)) {
		return true
	}

	op := Operator(ctx)
	return len(op) == interop.Hash160Len && runtime.CheckWitness(op)
}

// TransferOwnership moves the owner role to the new account. Only the
// current owner can do that. Produces OwnershipTransferred notification.
func TransferOwnership(ctx storage.Context, newOwner interop.Hash160) {
	if len(newOwner) != interop.Hash160Len {
		panic("invalid owner account")
	}

	old := Owner(ctx)
	if !runtime.CheckWitness(old) {
		panic(ErrCallerNotOwner)
	}

	storage.Put(ctx, ownerKey, newOwner)
	runtime.Notify("OwnershipTransferred", old, newOwner)
}

// SetOperator changes the delegated operator account. Only the owner can
// do that. Empty account removes the delegation. Produces OperatorChanged
// notification.
func SetOperator(ctx storage.Context, newOperator interop.Hash160) {
	CheckOwner(ctx)

	old := Operator(ctx)
	if len(newOperator) == 0 {
		storage.Delete(ctx, operatorKey)
	} else {
		if len(newOperator) != interop.Hash160Len {
			panic("invalid operator account")
		}
		storage.Put(ctx, operatorKey, newOperator)
	}

	runtime.Notify("OperatorChanged", old, newOperator)
}
