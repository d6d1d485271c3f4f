package common

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/util"
)

// IgnorePaymentDetails marks GAS transfers issued by the contracts
// themselves so that receiving contracts can tell them apart from user
// contributions.
const IgnorePaymentDetails = "\x73\x67"

// RecoverNEP17 moves amount of a stray NEP-17 token held by the calling
// contract to the given account. Access control is on the caller.
func RecoverNEP17(token, to interop.Hash160, amount int) {
	self := runtime.GetExecutingScriptHash()

	ok := contract.Call(token, "transfer", contract.All,
		self, to, amount, []byte(IgnorePaymentDetails)).(bool)
	if !ok {
		panic("asset recovery transfer failed")
	}
}

// RecoverNEP11 moves a stray NEP-11 token held by the calling contract to
// the given account. Access control is on the caller.
func RecoverNEP11(token, to interop.Hash160, tokenID []byte) {
	ok := contract.Call(token, "transfer", contract.All,
		to, tokenID, nil).(bool)
	if !ok {
		panic("asset recovery transfer failed")
	}
}

// AbortWithMessage calls `runtime.Log` with the passed message
// and calls `ABORT` opcode.
func AbortWithMessage(msg string) {
	runtime.Log(msg)
	util.Abort()
}
