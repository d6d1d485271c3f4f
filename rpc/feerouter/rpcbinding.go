// Package feerouter contains RPC wrappers for StakeGate FeeRouter contract.
package feerouter

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/google/uuid"
	"github.com/nspcc-dev/neo-go/pkg/core/transaction"
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/unwrap"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
)

// FeerouterRouter is a contract-specific feerouter.Router type used by its methods.
type FeerouterRouter struct {
	Template     util.Uint160
	Client       util.Uint160
	ClientBips   *big.Int
	Referrer     util.Uint160
	ReferrerBips *big.Int
	Service      util.Uint160
	Balance      *big.Int
}

// RouterCreatedEvent represents "RouterCreated" event emitted by the contract.
type RouterCreatedEvent struct {
	ID           util.Uint160
	Client       util.Uint160
	ClientBips   *big.Int
	Referrer     util.Uint160
	ReferrerBips *big.Int
}

// RewardAccruedEvent represents "RewardAccrued" event emitted by the contract.
type RewardAccruedEvent struct {
	ID     util.Uint160
	From   util.Uint160
	Amount *big.Int
}

// WithdrawnEvent represents "Withdrawn" event emitted by the contract.
type WithdrawnEvent struct {
	ID             util.Uint160
	ClientAmount   *big.Int
	ReferrerAmount *big.Int
	ServiceAmount  *big.Int
}

// OwnershipTransferredEvent represents "OwnershipTransferred" event emitted by the contract.
type OwnershipTransferredEvent struct {
	OldOwner util.Uint160
	NewOwner util.Uint160
}

// OperatorChangedEvent represents "OperatorChanged" event emitted by the contract.
type OperatorChangedEvent struct {
	OldOperator util.Uint160
	NewOperator util.Uint160
}

// Invoker is used by ContractReader to call various safe methods.
type Invoker interface {
	Call(contract util.Uint160, operation string, params ...any) (*result.Invoke, error)
	CallAndExpandIterator(contract util.Uint160, method string, maxItems int, params ...any) (*result.Invoke, error)
	TerminateSession(sessionID uuid.UUID) error
	TraverseIterator(sessionID uuid.UUID, iterator *result.Iterator, num int) ([]stackitem.Item, error)
}

// Actor is used by Contract to call state-changing methods.
type Actor interface {
	Invoker

	MakeCall(contract util.Uint160, method string, params ...any) (*transaction.Transaction, error)
	MakeRun(script []byte) (*transaction.Transaction, error)
	MakeUnsignedCall(contract util.Uint160, method string, attrs []transaction.Attribute, params ...any) (*transaction.Transaction, error)
	MakeUnsignedRun(script []byte, attrs []transaction.Attribute) (*transaction.Transaction, error)
	SendCall(contract util.Uint160, method string, params ...any) (util.Uint256, uint32, error)
	SendRun(script []byte) (util.Uint256, uint32, error)
}

// ContractReader implements safe contract methods.
type ContractReader struct {
	invoker Invoker
	hash    util.Uint160
}

// Contract implements all contract methods.
type Contract struct {
	ContractReader
	actor Actor
	hash  util.Uint160
}

// NewReader creates an instance of ContractReader using provided contract hash and the given Invoker.
func NewReader(invoker Invoker, hash util.Uint160) *ContractReader {
	return &ContractReader{invoker, hash}
}

// New creates an instance of Contract using provided contract hash and the given Actor.
func New(actor Actor, hash util.Uint160) *Contract {
	return &Contract{ContractReader{actor, hash}, actor, hash}
}

// ClientRouters invokes `clientRouters` method of contract.
func (c *ContractReader) ClientRouters(client util.Uint160) ([]util.Uint160, error) {
	return unwrap.ArrayOfUint160(c.invoker.Call(c.hash, "clientRouters", client))
}

// DefaultClientBasisPoints invokes `defaultClientBasisPoints` method of contract.
func (c *ContractReader) DefaultClientBasisPoints() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "defaultClientBasisPoints"))
}

// Gateway invokes `gateway` method of contract.
func (c *ContractReader) Gateway() (util.Uint160, error) {
	return unwrap.Uint160(c.invoker.Call(c.hash, "gateway"))
}

// GetRouter invokes `getRouter` method of contract.
func (c *ContractReader) GetRouter(id util.Uint160) (*FeerouterRouter, error) {
	return itemToFeerouterRouter(unwrap.Item(c.invoker.Call(c.hash, "getRouter", id)))
}

// Operator invokes `operator` method of contract.
func (c *ContractReader) Operator() (util.Uint160, error) {
	return unwrap.Uint160(c.invoker.Call(c.hash, "operator"))
}

// Owner invokes `owner` method of contract.
func (c *ContractReader) Owner() (util.Uint160, error) {
	return unwrap.Uint160(c.invoker.Call(c.hash, "owner"))
}

// PredictRouterAddress invokes `predictRouterAddress` method of contract.
func (c *ContractReader) PredictRouterAddress(template util.Uint160, client util.Uint160, clientBips *big.Int, referrer util.Uint160, referrerBips *big.Int) (util.Uint160, error) {
	return unwrap.Uint160(c.invoker.Call(c.hash, "predictRouterAddress", template, client, clientBips, referrer, referrerBips))
}

// ReferenceRouter invokes `referenceRouter` method of contract.
func (c *ContractReader) ReferenceRouter() (util.Uint160, error) {
	return unwrap.Uint160(c.invoker.Call(c.hash, "referenceRouter"))
}

// Registration invokes `registration` method of contract.
func (c *ContractReader) Registration() (util.Uint160, error) {
	return unwrap.Uint160(c.invoker.Call(c.hash, "registration"))
}

// RouterBalance invokes `routerBalance` method of contract.
func (c *ContractReader) RouterBalance(id util.Uint160) (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "routerBalance", id))
}

// Routers invokes `routers` method of contract.
func (c *ContractReader) Routers() (uuid.UUID, result.Iterator, error) {
	return unwrap.SessionIterator(c.invoker.Call(c.hash, "routers"))
}

// RoutersExpanded is similar to Routers (uses the same contract
// method), but can be useful if the server used doesn't support sessions and
// doesn't expand iterators. It creates a script that will get the specified
// number of result items from the iterator right in the VM and return them to
// you. It's only limited by VM stack and GAS available for RPC invocations.
func (c *ContractReader) RoutersExpanded(_numOfIteratorItems int) ([]stackitem.Item, error) {
	return unwrap.Array(c.invoker.CallAndExpandIterator(c.hash, "routers", _numOfIteratorItems))
}

// Service invokes `service` method of contract.
func (c *ContractReader) Service() (util.Uint160, error) {
	return unwrap.Uint160(c.invoker.Call(c.hash, "service"))
}

// Version invokes `version` method of contract.
func (c *ContractReader) Version() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "version"))
}

// CreateRouter creates a transaction invoking `createRouter` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) CreateRouter(template util.Uint160, client util.Uint160, clientBips *big.Int, referrer util.Uint160, referrerBips *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "createRouter", template, client, clientBips, referrer, referrerBips)
}

// CreateRouterTransaction creates a transaction invoking `createRouter` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) CreateRouterTransaction(template util.Uint160, client util.Uint160, clientBips *big.Int, referrer util.Uint160, referrerBips *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "createRouter", template, client, clientBips, referrer, referrerBips)
}

// CreateRouterUnsigned creates a transaction invoking `createRouter` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) CreateRouterUnsigned(template util.Uint160, client util.Uint160, clientBips *big.Int, referrer util.Uint160, referrerBips *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "createRouter", nil, template, client, clientBips, referrer, referrerBips)
}

// RecoverNFT creates a transaction invoking `recoverNFT` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) RecoverNFT(token util.Uint160, to util.Uint160, tokenID []byte) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "recoverNFT", token, to, tokenID)
}

// RecoverNFTTransaction creates a transaction invoking `recoverNFT` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) RecoverNFTTransaction(token util.Uint160, to util.Uint160, tokenID []byte) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "recoverNFT", token, to, tokenID)
}

// RecoverNFTUnsigned creates a transaction invoking `recoverNFT` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) RecoverNFTUnsigned(token util.Uint160, to util.Uint160, tokenID []byte) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "recoverNFT", nil, token, to, tokenID)
}

// RecoverToken creates a transaction invoking `recoverToken` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) RecoverToken(token util.Uint160, to util.Uint160, amount *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "recoverToken", token, to, amount)
}

// RecoverTokenTransaction creates a transaction invoking `recoverToken` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) RecoverTokenTransaction(token util.Uint160, to util.Uint160, amount *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "recoverToken", token, to, amount)
}

// RecoverTokenUnsigned creates a transaction invoking `recoverToken` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) RecoverTokenUnsigned(token util.Uint160, to util.Uint160, amount *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "recoverToken", nil, token, to, amount)
}

// SetDefaultClientBasisPoints creates a transaction invoking `setDefaultClientBasisPoints` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) SetDefaultClientBasisPoints(value *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "setDefaultClientBasisPoints", value)
}

// SetDefaultClientBasisPointsTransaction creates a transaction invoking `setDefaultClientBasisPoints` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) SetDefaultClientBasisPointsTransaction(value *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "setDefaultClientBasisPoints", value)
}

// SetDefaultClientBasisPointsUnsigned creates a transaction invoking `setDefaultClientBasisPoints` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) SetDefaultClientBasisPointsUnsigned(value *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "setDefaultClientBasisPoints", nil, value)
}

// SetGateway creates a transaction invoking `setGateway` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) SetGateway(addr util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "setGateway", addr)
}

// SetGatewayTransaction creates a transaction invoking `setGateway` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) SetGatewayTransaction(addr util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "setGateway", addr)
}

// SetGatewayUnsigned creates a transaction invoking `setGateway` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) SetGatewayUnsigned(addr util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "setGateway", nil, addr)
}

// SetOperator creates a transaction invoking `setOperator` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) SetOperator(newOperator util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "setOperator", newOperator)
}

// SetOperatorTransaction creates a transaction invoking `setOperator` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) SetOperatorTransaction(newOperator util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "setOperator", newOperator)
}

// SetOperatorUnsigned creates a transaction invoking `setOperator` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) SetOperatorUnsigned(newOperator util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "setOperator", nil, newOperator)
}

// SetReferenceRouter creates a transaction invoking `setReferenceRouter` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) SetReferenceRouter(template util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "setReferenceRouter", template)
}

// SetReferenceRouterTransaction creates a transaction invoking `setReferenceRouter` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) SetReferenceRouterTransaction(template util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "setReferenceRouter", template)
}

// SetReferenceRouterUnsigned creates a transaction invoking `setReferenceRouter` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) SetReferenceRouterUnsigned(template util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "setReferenceRouter", nil, template)
}

// SetRegistration creates a transaction invoking `setRegistration` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) SetRegistration(addr util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "setRegistration", addr)
}

// SetRegistrationTransaction creates a transaction invoking `setRegistration` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) SetRegistrationTransaction(addr util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "setRegistration", addr)
}

// SetRegistrationUnsigned creates a transaction invoking `setRegistration` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) SetRegistrationUnsigned(addr util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "setRegistration", nil, addr)
}

// TransferOwnership creates a transaction invoking `transferOwnership` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) TransferOwnership(newOwner util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "transferOwnership", newOwner)
}

// TransferOwnershipTransaction creates a transaction invoking `transferOwnership` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) TransferOwnershipTransaction(newOwner util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "transferOwnership", newOwner)
}

// TransferOwnershipUnsigned creates a transaction invoking `transferOwnership` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) TransferOwnershipUnsigned(newOwner util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "transferOwnership", nil, newOwner)
}

// Update creates a transaction invoking `update` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Update(nefFile []byte, manifest []byte, data any) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "update", nefFile, manifest, data)
}

// UpdateTransaction creates a transaction invoking `update` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) UpdateTransaction(nefFile []byte, manifest []byte, data any) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "update", nefFile, manifest, data)
}

// UpdateUnsigned creates a transaction invoking `update` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) UpdateUnsigned(nefFile []byte, manifest []byte, data any) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "update", nil, nefFile, manifest, data)
}

// Withdraw creates a transaction invoking `withdraw` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Withdraw(id util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "withdraw", id)
}

// WithdrawTransaction creates a transaction invoking `withdraw` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) WithdrawTransaction(id util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "withdraw", id)
}

// WithdrawUnsigned creates a transaction invoking `withdraw` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) WithdrawUnsigned(id util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "withdraw", nil, id)
}

func fieldToUint160(item stackitem.Item) (util.Uint160, error) {
	b, err := item.TryBytes()
	if err != nil {
		return util.Uint160{}, err
	}
	u, err := util.Uint160DecodeBytesBE(b)
	if err != nil {
		return util.Uint160{}, err
	}
	return u, nil
}

// fieldToOptionalUint160 treats an empty byte string as a missing account.
func fieldToOptionalUint160(item stackitem.Item) (util.Uint160, error) {
	b, err := item.TryBytes()
	if err != nil {
		return util.Uint160{}, err
	}
	if len(b) == 0 {
		return util.Uint160{}, nil
	}
	u, err := util.Uint160DecodeBytesBE(b)
	if err != nil {
		return util.Uint160{}, err
	}
	return u, nil
}

// itemToFeerouterRouter converts stack item into *FeerouterRouter.
func itemToFeerouterRouter(item stackitem.Item, err error) (*FeerouterRouter, error) {
	if err != nil {
		return nil, err
	}
	var res = new(FeerouterRouter)
	err = res.FromStackItem(item)
	return res, err
}

// FromStackItem retrieves fields of FeerouterRouter from the given
// [stackitem.Item] or returns an error if it's not possible to do to so.
func (res *FeerouterRouter) FromStackItem(item stackitem.Item) error {
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 7 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err   error
	)
	index++
	res.Template, err = fieldToUint160(arr[index])
	if err != nil {
		return fmt.Errorf("field Template: %w", err)
	}

	index++
	res.Client, err = fieldToUint160(arr[index])
	if err != nil {
		return fmt.Errorf("field Client: %w", err)
	}

	index++
	res.ClientBips, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field ClientBips: %w", err)
	}

	index++
	res.Referrer, err = fieldToOptionalUint160(arr[index])
	if err != nil {
		return fmt.Errorf("field Referrer: %w", err)
	}

	index++
	res.ReferrerBips, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field ReferrerBips: %w", err)
	}

	index++
	res.Service, err = fieldToUint160(arr[index])
	if err != nil {
		return fmt.Errorf("field Service: %w", err)
	}

	index++
	res.Balance, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Balance: %w", err)
	}

	return nil
}

// RouterCreatedEventsFromApplicationLog retrieves a set of all emitted events
// with "RouterCreated" name from the provided [result.ApplicationLog].
func RouterCreatedEventsFromApplicationLog(log *result.ApplicationLog) ([]*RouterCreatedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*RouterCreatedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "RouterCreated" {
				continue
			}
			event := new(RouterCreatedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize RouterCreatedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to RouterCreatedEvent or
// returns an error if it's not possible to do to so.
func (e *RouterCreatedEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 5 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err   error
	)
	index++
	e.ID, err = fieldToUint160(arr[index])
	if err != nil {
		return fmt.Errorf("field ID: %w", err)
	}

	index++
	e.Client, err = fieldToUint160(arr[index])
	if err != nil {
		return fmt.Errorf("field Client: %w", err)
	}

	index++
	e.ClientBips, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field ClientBips: %w", err)
	}

	index++
	e.Referrer, err = fieldToOptionalUint160(arr[index])
	if err != nil {
		return fmt.Errorf("field Referrer: %w", err)
	}

	index++
	e.ReferrerBips, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field ReferrerBips: %w", err)
	}

	return nil
}

// RewardAccruedEventsFromApplicationLog retrieves a set of all emitted events
// with "RewardAccrued" name from the provided [result.ApplicationLog].
func RewardAccruedEventsFromApplicationLog(log *result.ApplicationLog) ([]*RewardAccruedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*RewardAccruedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "RewardAccrued" {
				continue
			}
			event := new(RewardAccruedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize RewardAccruedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to RewardAccruedEvent or
// returns an error if it's not possible to do to so.
func (e *RewardAccruedEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 3 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err   error
	)
	index++
	e.ID, err = fieldToUint160(arr[index])
	if err != nil {
		return fmt.Errorf("field ID: %w", err)
	}

	index++
	e.From, err = fieldToOptionalUint160(arr[index])
	if err != nil {
		return fmt.Errorf("field From: %w", err)
	}

	index++
	e.Amount, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Amount: %w", err)
	}

	return nil
}

// WithdrawnEventsFromApplicationLog retrieves a set of all emitted events
// with "Withdrawn" name from the provided [result.ApplicationLog].
func WithdrawnEventsFromApplicationLog(log *result.ApplicationLog) ([]*WithdrawnEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*WithdrawnEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "Withdrawn" {
				continue
			}
			event := new(WithdrawnEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize WithdrawnEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to WithdrawnEvent or
// returns an error if it's not possible to do to so.
func (e *WithdrawnEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 4 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err   error
	)
	index++
	e.ID, err = fieldToUint160(arr[index])
	if err != nil {
		return fmt.Errorf("field ID: %w", err)
	}

	index++
	e.ClientAmount, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field ClientAmount: %w", err)
	}

	index++
	e.ReferrerAmount, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field ReferrerAmount: %w", err)
	}

	index++
	e.ServiceAmount, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field ServiceAmount: %w", err)
	}

	return nil
}

// OwnershipTransferredEventsFromApplicationLog retrieves a set of all emitted events
// with "OwnershipTransferred" name from the provided [result.ApplicationLog].
func OwnershipTransferredEventsFromApplicationLog(log *result.ApplicationLog) ([]*OwnershipTransferredEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*OwnershipTransferredEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "OwnershipTransferred" {
				continue
			}
			event := new(OwnershipTransferredEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize OwnershipTransferredEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to OwnershipTransferredEvent or
// returns an error if it's not possible to do to so.
func (e *OwnershipTransferredEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 2 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err   error
	)
	index++
	e.OldOwner, err = fieldToUint160(arr[index])
	if err != nil {
		return fmt.Errorf("field OldOwner: %w", err)
	}

	index++
	e.NewOwner, err = fieldToUint160(arr[index])
	if err != nil {
		return fmt.Errorf("field NewOwner: %w", err)
	}

	return nil
}

// OperatorChangedEventsFromApplicationLog retrieves a set of all emitted events
// with "OperatorChanged" name from the provided [result.ApplicationLog].
func OperatorChangedEventsFromApplicationLog(log *result.ApplicationLog) ([]*OperatorChangedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*OperatorChangedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "OperatorChanged" {
				continue
			}
			event := new(OperatorChangedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize OperatorChangedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to OperatorChangedEvent or
// returns an error if it's not possible to do to so.
func (e *OperatorChangedEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 2 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err   error
	)
	index++
	e.OldOperator, err = fieldToOptionalUint160(arr[index])
	if err != nil {
		return fmt.Errorf("field OldOperator: %w", err)
	}

	index++
	e.NewOperator, err = fieldToOptionalUint160(arr[index])
	if err != nil {
		return fmt.Errorf("field NewOperator: %w", err)
	}

	return nil
}
