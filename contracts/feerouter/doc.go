/*
Package feerouter implements FeeRouter contract which is deployed to Neo
chain.

FeeRouter contract is both the factory and the registry of fee routers. A
fee router is a record splitting every reward it accrues between a client
recipient, an optional referrer and the service, per fixed basis-point
shares. Router identities are derived deterministically from the
configuration and the contract's own identity, so a router can be
referenced (and receive contributions through the gateway) before it is
created; creation is an insert-if-absent operation at the predicted
identity. There is no way to edit a created router: any change to the
configuration derives a different identity.

The default client share is factory policy read at creation time only;
routers created with the zero sentinel copy the then-current default and
are immune to later policy changes.

# Contract notifications

RouterCreated notification. Carries the new router identity, which is the
sole mechanism for other parties to learn it.

	RouterCreated:
	  - name: id
	    type: Hash160
	  - name: client
	    type: Hash160
	  - name: clientBips
	    type: Integer
	  - name: referrer
	    type: Hash160
	  - name: referrerBips
	    type: Integer

RewardAccrued notification. Produced on every accepted reward payment.

	RewardAccrued:
	  - name: id
	    type: Hash160
	  - name: from
	    type: Hash160
	  - name: amount
	    type: Integer

Withdrawn notification. The three amounts always sum to the balance at
withdrawal time.

	Withdrawn:
	  - name: id
	    type: Hash160
	  - name: clientAmount
	    type: Integer
	  - name: referrerAmount
	    type: Integer
	  - name: serviceAmount
	    type: Integer

OwnershipTransferred and OperatorChanged notifications are produced by the
access guard on role changes.
*/
package feerouter

/*
Contract storage model.

# Summary
Key-value storage format:
 - 'O' -> interop.Hash160
   contract owner account
 - 'Q' -> interop.Hash160
   delegated operator account
 - 's' -> interop.Hash160
   service recipient account
 - 'd' -> int
   default client share in basis points
 - 't' -> interop.Hash160
   reference router implementation
 - 'g' -> interop.Hash160
   deposit gateway contract address
 - 'n' -> interop.Hash160
   validator registration contract address
 - 'r' + router identity -> std.Serialize(Router)
   router records (Router is a structure defined in current package)
 - 'c' + client account + router identity -> 1
   per-client registry of router identities

# Registries
Both the global ('r' prefix) and the per-client ('c' prefix) registries
are append-only; router records are never deleted, withdrawal only zeroes
their balance.
*/
