/*
Package gateway implements Gateway contract which is deployed to Neo chain.

Gateway contract pools GAS contributions earmarked for fixed-size validator
registrations. Contributions are keyed by the triple of withdrawal
credentials, amount per validator and fee router identity; several partial
contributions may accumulate under one key, possibly before the referenced
fee router exists. The operator either settles the accumulated value
against the registration contract or rejects the request; an unanswered
request becomes refundable once its expiration time elapses, which is the
depositor's protection against an unresponsive operator.

Value enters the contract exclusively through NEP-17 GAS transfers
carrying a contribution descriptor; bare transfers are refused. Value
leaves only through Settle and Refund, both of which debit the record
before any transfer is dispatched.

# Contract notifications

ContributionAdded notification. Produced on every accepted contribution.

	ContributionAdded:
	  - name: id
	    type: Hash256
	  - name: depositor
	    type: Hash160
	  - name: amount
	    type: Integer
	  - name: total
	    type: Integer

ServiceRejected notification. Produced when the operator refuses to serve
a deposit. The reason is a free-form operator note.

	ServiceRejected:
	  - name: id
	    type: Hash256
	  - name: reason
	    type: String

Refunded notification.

	Refunded:
	  - name: id
	    type: Hash256
	  - name: depositor
	    type: Hash160
	  - name: amount
	    type: Integer

Settled notification. Produced on every settlement call, partial ones
included.

	Settled:
	  - name: id
	    type: Hash256
	  - name: count
	    type: Integer
	  - name: total
	    type: Integer

OwnershipTransferred and OperatorChanged notifications are produced by the
access guard on role changes.
*/
package gateway

/*
Contract storage model.

# Summary
Key-value storage format:
 - 'O' -> interop.Hash160
   contract owner account
 - 'Q' -> interop.Hash160
   delegated operator account
 - 'f' -> interop.Hash160
   fee router factory contract address
 - 'g' -> interop.Hash160
   validator registration contract address
 - 'e' -> 1
   present once post-Pectra deposits were enabled
 - 'd' + sha256 deposit identifier -> std.Serialize(Deposit)
   escrow records (Deposit is a structure defined in current package)
 - 'config' + string key -> int
   network configuration records, see the *ConfigKey constants

# Escrow
Deposit identifiers are sha256 digests over the serialized triple of
withdrawal credentials, amount per validator and fee router identity. The
raw-configuration form of the identifier resolves the router identity
through the factory first, so both forms always agree.
*/
