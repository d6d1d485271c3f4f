// Package depositstatus holds the lifecycle states of gateway deposit
// records. It is a separate package to be importable by the contract, RPC
// wrappers and tests alike.
package depositstatus

const (
	// None is the implicit state of an unknown identifier, never stored.
	None = 0
	// PendingOrAdded is the state of a record holding contributed value
	// awaiting operator action.
	PendingOrAdded = 1
	// Settled is the terminal state of a record whose value was fully
	// consumed by validator registrations.
	Settled = 2
	// Rejected is the state of a record the operator refused to serve;
	// its value is immediately refundable.
	Rejected = 3
)
