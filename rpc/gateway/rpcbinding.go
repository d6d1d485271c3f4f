// Package gateway contains RPC wrappers for StakeGate Gateway contract.
package gateway

import (
	"errors"
	"fmt"
	"math/big"
	"unicode/utf8"

	"github.com/nspcc-dev/neo-go/pkg/core/transaction"
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/unwrap"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
)

// GatewayDeposit is a contract-specific gateway.Deposit type used by its methods.
type GatewayDeposit struct {
	Amount     *big.Int
	Status     *big.Int
	Expiration *big.Int
	Depositor  util.Uint160
}

// ContributionAddedEvent represents "ContributionAdded" event emitted by the contract.
type ContributionAddedEvent struct {
	ID     util.Uint256
	From   util.Uint160
	Amount *big.Int
	Total  *big.Int
}

// ServiceRejectedEvent represents "ServiceRejected" event emitted by the contract.
type ServiceRejectedEvent struct {
	ID     util.Uint256
	Reason string
}

// RefundedEvent represents "Refunded" event emitted by the contract.
type RefundedEvent struct {
	ID     util.Uint256
	To     util.Uint160
	Amount *big.Int
}

// SettledEvent represents "Settled" event emitted by the contract.
type SettledEvent struct {
	ID    util.Uint256
	Count *big.Int
	Total *big.Int
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

// Config invokes `config` method of contract.
func (c *ContractReader) Config(key string) (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "config", key))
}

// DepositAmount invokes `depositAmount` method of contract.
func (c *ContractReader) DepositAmount(id util.Uint256) (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "depositAmount", id))
}

// DepositData invokes `depositData` method of contract.
func (c *ContractReader) DepositData(id util.Uint256) (*GatewayDeposit, error) {
	return itemToGatewayDeposit(unwrap.Item(c.invoker.Call(c.hash, "depositData", id)))
}

// DepositStatus invokes `depositStatus` method of contract.
func (c *ContractReader) DepositStatus(id util.Uint256) (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "depositStatus", id))
}

// Factory invokes `factory` method of contract.
func (c *ContractReader) Factory() (util.Uint160, error) {
	return unwrap.Uint160(c.invoker.Call(c.hash, "factory"))
}

// GetDepositID invokes `getDepositID` method of contract.
func (c *ContractReader) GetDepositID(credential []byte, amountPerValidator *big.Int, routerID util.Uint160) (util.Uint256, error) {
	return unwrap.Uint256(c.invoker.Call(c.hash, "getDepositID", credential, amountPerValidator, routerID))
}

// GetDepositIDForConfig invokes `getDepositIDForConfig` method of contract.
func (c *ContractReader) GetDepositIDForConfig(credential []byte, amountPerValidator *big.Int, template util.Uint160, client util.Uint160, clientBips *big.Int, referrer util.Uint160, referrerBips *big.Int) (util.Uint256, error) {
	return unwrap.Uint256(c.invoker.Call(c.hash, "getDepositIDForConfig", credential, amountPerValidator, template, client, clientBips, referrer, referrerBips))
}

// Operator invokes `operator` method of contract.
func (c *ContractReader) Operator() (util.Uint160, error) {
	return unwrap.Uint160(c.invoker.Call(c.hash, "operator"))
}

// Owner invokes `owner` method of contract.
func (c *ContractReader) Owner() (util.Uint160, error) {
	return unwrap.Uint160(c.invoker.Call(c.hash, "owner"))
}

// PectraEnabled invokes `pectraEnabled` method of contract.
func (c *ContractReader) PectraEnabled() (bool, error) {
	return unwrap.Bool(c.invoker.Call(c.hash, "pectraEnabled"))
}

// Registration invokes `registration` method of contract.
func (c *ContractReader) Registration() (util.Uint160, error) {
	return unwrap.Uint160(c.invoker.Call(c.hash, "registration"))
}

// TotalBalance invokes `totalBalance` method of contract.
func (c *ContractReader) TotalBalance() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "totalBalance"))
}

// Version invokes `version` method of contract.
func (c *ContractReader) Version() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "version"))
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

// Refund creates a transaction invoking `refund` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Refund(credential []byte, amountPerValidator *big.Int, routerID util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "refund", credential, amountPerValidator, routerID)
}

// RefundTransaction creates a transaction invoking `refund` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) RefundTransaction(credential []byte, amountPerValidator *big.Int, routerID util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "refund", credential, amountPerValidator, routerID)
}

// RefundUnsigned creates a transaction invoking `refund` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) RefundUnsigned(credential []byte, amountPerValidator *big.Int, routerID util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "refund", nil, credential, amountPerValidator, routerID)
}

// Reject creates a transaction invoking `reject` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Reject(id util.Uint256, reason string) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "reject", id, reason)
}

// RejectTransaction creates a transaction invoking `reject` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) RejectTransaction(id util.Uint256, reason string) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "reject", id, reason)
}

// RejectUnsigned creates a transaction invoking `reject` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) RejectUnsigned(id util.Uint256, reason string) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "reject", nil, id, reason)
}

// SetConfig creates a transaction invoking `setConfig` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) SetConfig(key string, value *big.Int) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "setConfig", key, value)
}

// SetConfigTransaction creates a transaction invoking `setConfig` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) SetConfigTransaction(key string, value *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "setConfig", key, value)
}

// SetConfigUnsigned creates a transaction invoking `setConfig` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) SetConfigUnsigned(key string, value *big.Int) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "setConfig", nil, key, value)
}

// SetFactory creates a transaction invoking `setFactory` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) SetFactory(addr util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "setFactory", addr)
}

// SetFactoryTransaction creates a transaction invoking `setFactory` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) SetFactoryTransaction(addr util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "setFactory", addr)
}

// SetFactoryUnsigned creates a transaction invoking `setFactory` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) SetFactoryUnsigned(addr util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "setFactory", nil, addr)
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

// SetPectraEnabled creates a transaction invoking `setPectraEnabled` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) SetPectraEnabled() (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "setPectraEnabled")
}

// SetPectraEnabledTransaction creates a transaction invoking `setPectraEnabled` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) SetPectraEnabledTransaction() (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "setPectraEnabled")
}

// SetPectraEnabledUnsigned creates a transaction invoking `setPectraEnabled` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) SetPectraEnabledUnsigned() (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "setPectraEnabled", nil)
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

// Settle creates a transaction invoking `settle` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Settle(credential []byte, amountPerValidator *big.Int, routerID util.Uint160, pubkeys [][]byte, signatures [][]byte, depositRoots [][]byte) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "settle", credential, amountPerValidator, routerID, pubkeys, signatures, depositRoots)
}

// SettleTransaction creates a transaction invoking `settle` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) SettleTransaction(credential []byte, amountPerValidator *big.Int, routerID util.Uint160, pubkeys [][]byte, signatures [][]byte, depositRoots [][]byte) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "settle", credential, amountPerValidator, routerID, pubkeys, signatures, depositRoots)
}

// SettleUnsigned creates a transaction invoking `settle` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) SettleUnsigned(credential []byte, amountPerValidator *big.Int, routerID util.Uint160, pubkeys [][]byte, signatures [][]byte, depositRoots [][]byte) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "settle", nil, credential, amountPerValidator, routerID, pubkeys, signatures, depositRoots)
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

func fieldToUint256(item stackitem.Item) (util.Uint256, error) {
	b, err := item.TryBytes()
	if err != nil {
		return util.Uint256{}, err
	}
	u, err := util.Uint256DecodeBytesBE(b)
	if err != nil {
		return util.Uint256{}, err
	}
	return u, nil
}

func fieldToString(item stackitem.Item) (string, error) {
	b, err := item.TryBytes()
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", errors.New("not a UTF-8 string")
	}
	return string(b), nil
}

// itemToGatewayDeposit converts stack item into *GatewayDeposit.
func itemToGatewayDeposit(item stackitem.Item, err error) (*GatewayDeposit, error) {
	if err != nil {
		return nil, err
	}
	var res = new(GatewayDeposit)
	err = res.FromStackItem(item)
	return res, err
}

// FromStackItem retrieves fields of GatewayDeposit from the given
// [stackitem.Item] or returns an error if it's not possible to do to so.
func (res *GatewayDeposit) FromStackItem(item stackitem.Item) error {
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
	res.Amount, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Amount: %w", err)
	}

	index++
	res.Status, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Status: %w", err)
	}

	index++
	res.Expiration, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Expiration: %w", err)
	}

	index++
	res.Depositor, err = fieldToOptionalUint160(arr[index])
	if err != nil {
		return fmt.Errorf("field Depositor: %w", err)
	}

	return nil
}

// ContributionAddedEventsFromApplicationLog retrieves a set of all emitted events
// with "ContributionAdded" name from the provided [result.ApplicationLog].
func ContributionAddedEventsFromApplicationLog(log *result.ApplicationLog) ([]*ContributionAddedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*ContributionAddedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "ContributionAdded" {
				continue
			}
			event := new(ContributionAddedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize ContributionAddedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to ContributionAddedEvent or
// returns an error if it's not possible to do to so.
func (e *ContributionAddedEvent) FromStackItem(item *stackitem.Array) error {
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
	e.ID, err = fieldToUint256(arr[index])
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

	index++
	e.Total, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Total: %w", err)
	}

	return nil
}

// ServiceRejectedEventsFromApplicationLog retrieves a set of all emitted events
// with "ServiceRejected" name from the provided [result.ApplicationLog].
func ServiceRejectedEventsFromApplicationLog(log *result.ApplicationLog) ([]*ServiceRejectedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*ServiceRejectedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "ServiceRejected" {
				continue
			}
			event := new(ServiceRejectedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize ServiceRejectedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to ServiceRejectedEvent or
// returns an error if it's not possible to do to so.
func (e *ServiceRejectedEvent) FromStackItem(item *stackitem.Array) error {
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
	e.ID, err = fieldToUint256(arr[index])
	if err != nil {
		return fmt.Errorf("field ID: %w", err)
	}

	index++
	e.Reason, err = fieldToString(arr[index])
	if err != nil {
		return fmt.Errorf("field Reason: %w", err)
	}

	return nil
}

// RefundedEventsFromApplicationLog retrieves a set of all emitted events
// with "Refunded" name from the provided [result.ApplicationLog].
func RefundedEventsFromApplicationLog(log *result.ApplicationLog) ([]*RefundedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*RefundedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "Refunded" {
				continue
			}
			event := new(RefundedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize RefundedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to RefundedEvent or
// returns an error if it's not possible to do to so.
func (e *RefundedEvent) FromStackItem(item *stackitem.Array) error {
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
	e.ID, err = fieldToUint256(arr[index])
	if err != nil {
		return fmt.Errorf("field ID: %w", err)
	}

	index++
	e.To, err = fieldToUint160(arr[index])
	if err != nil {
		return fmt.Errorf("field To: %w", err)
	}

	index++
	e.Amount, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Amount: %w", err)
	}

	return nil
}

// SettledEventsFromApplicationLog retrieves a set of all emitted events
// with "Settled" name from the provided [result.ApplicationLog].
func SettledEventsFromApplicationLog(log *result.ApplicationLog) ([]*SettledEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*SettledEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "Settled" {
				continue
			}
			event := new(SettledEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize SettledEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to SettledEvent or
// returns an error if it's not possible to do to so.
func (e *SettledEvent) FromStackItem(item *stackitem.Array) error {
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
	e.ID, err = fieldToUint256(arr[index])
	if err != nil {
		return fmt.Errorf("field ID: %w", err)
	}

	index++
	e.Count, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Count: %w", err)
	}

	index++
	e.Total, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field Total: %w", err)
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
