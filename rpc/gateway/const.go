package gateway

import (
	"github.com/nspcc-dev/stakegate-contract/contracts/gateway/depositstatus"
)

// Deposit status values returned by the depositStatus method.
const (
	// StatusNone means the deposit identifier is unknown to the contract.
	StatusNone = depositstatus.None
	// StatusPendingOrAdded means the deposit accepts contributions and
	// awaits settlement.
	StatusPendingOrAdded = depositstatus.PendingOrAdded
	// StatusSettled means the whole deposit value was forwarded to
	// validator registration.
	StatusSettled = depositstatus.Settled
	// StatusRejected means the operator refused the deposit and its value
	// is refundable.
	StatusRejected = depositstatus.Rejected
)
