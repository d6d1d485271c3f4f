package gateway

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/crypto"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/gas"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
	"github.com/nspcc-dev/stakegate-contract/common"
	"github.com/nspcc-dev/stakegate-contract/contracts/gateway/depositstatus"
)

// Deposit is the escrow record of one (credential, amount per validator,
// fee router) configuration.
type Deposit struct {
	// Value currently escrowed for this record.
	Amount int
	// One of the depositstatus constants, never depositstatus.None.
	Status int
	// Timestamp (ms) after which refund no longer requires operator
	// action. Set on the first contribution, forced to zero on rejection.
	Expiration int
	// Account the refund goes back to. Recorded on the first
	// contribution.
	Depositor interop.Hash160
}

// Network configuration record keys. Values are adjustable by the contract
// owner via SetConfig.
const (
	// RefundDelayConfigKey is the waiting period (ms) after which a
	// depositor may reclaim value without operator action.
	RefundDelayConfigKey = "RefundDelay"
	// MinContributionConfigKey is the spam-guard lower bound of a single
	// contribution transfer.
	MinContributionConfigKey = "MinContribution"
	// MinAmountPerValidatorConfigKey is the lower bound of the amount per
	// validator once post-Pectra amounts are enabled.
	MinAmountPerValidatorConfigKey = "MinAmountPerValidator"
	// MaxAmountPerValidatorConfigKey is the upper bound of the amount per
	// validator once post-Pectra amounts are enabled.
	MaxAmountPerValidatorConfigKey = "MaxAmountPerValidator"
)

const (
	// CanonicalAmountPerValidator is the only amount per validator
	// accepted while post-Pectra amounts are disabled: 32 GAS.
	CanonicalAmountPerValidator = 32_0000_0000

	defaultRefundDelay     = 86_400_000 // 24h in ms
	defaultMinContribution = 1_0000_0000
	defaultMinPerValidator = 32_0000_0000
	defaultMaxPerValidator = 2048_0000_0000

	credentialLen = 32

	depositPrefix = 'd'

	factoryKey      = 'f'
	registrationKey = 'g'
	pectraKey       = 'e'
)

var configPrefix = []byte("config")

const (
	errDirectTransfer   = "direct transfers are not allowed"
	errSmallDeposit     = "deposit amount too small"
	errCredentialLen    = "invalid withdrawal credentials"
	errCredentialPrefix = "incorrect withdrawal credentials prefix"
	errCredentialZero   = "withdrawal credentials bytes not zero"
	errPectraDisabled   = "eip-7251 is not enabled yet"
	errAmountRange      = "amount per validator out of range"
	errNoReject         = "no deposit to reject"
	errRejected         = "deposit was rejected"
	errSettled          = "deposit already settled"
	errInsufficient     = "insufficient balance"
	errNotClient        = "caller is not the client"
	errNotExpired       = "waiting for expiration"
	errValidatorCount   = "validator count error"
	errParameterCount   = "amount of parameters mismatch"
	errNoRegistration   = "registration contract not set"
	errRecoverGAS       = "cannot recover escrowed asset"
)

// nolint:unused
func _deploy(data any, isUpdate bool) {
	ctx := storage.GetContext()
	if isUpdate {
		args := data.([]any)
		common.CheckVersion(args[len(args)-1].(int))
		return
	}

	args := data.(struct {
		owner        interop.Hash160
		operator     interop.Hash160
		factory      interop.Hash160
		registration interop.Hash160
		refundDelay  int
	})

	common.InitAccess(ctx, args.owner, args.operator)

	if len(args.factory) != interop.Hash160Len {
		panic("invalid fee router factory account")
	}
	storage.Put(ctx, factoryKey, args.factory)

	if len(args.registration) == interop.Hash160Len {
		storage.Put(ctx, registrationKey, args.registration)
	}

	if args.refundDelay < 0 {
		panic("invalid refund delay")
	}
	if args.refundDelay > 0 {
		setConfig(ctx, RefundDelayConfigKey, args.refundDelay)
	}

	runtime.Log("gateway contract initialized")
}

// Update method updates contract source code and manifest. It can be
// invoked only by the contract owner.
func Update(nefFile, manifest []byte, data any) {
	ctx := storage.GetContext()
	if !common.HasUpdateAccess(ctx) {
		panic(common.ErrUpdateAccess)
	}

	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, nefFile, manifest, common.AppendVersion(data))
	runtime.Log("gateway contract updated")
}

// OnNEP17Payment is a callback for NEP-17 compatible native GAS contract
// and the only way value enters the gateway. The transfer data must be a
// contribution descriptor, either with a resolved fee router identity

//	[credential, amountPerValidator, routerID]
//
// or with the raw router configuration the identity is derived from
//
//	[credential, amountPerValidator, template, client, clientBips, referrer, referrerBips].
//
// Both forms lead to the same deposit identifier when the configuration
// matches the router identity derivation of the factory. Bare transfers
// carrying no descriptor are refused.
func OnNEP17Payment(from interop.Hash160, amount int, data any) {
	caller := runtime.GetCallingScriptHash()
	if !caller.Equals(gas.Hash) {
		common.AbortWithMessage("gateway contract accepts GAS only")
	}

	if data == nil {
		panic(errDirectTransfer)
	}

	ctx := storage.GetContext()
	args := data.([]any)

	var routerID interop.Hash160
	switch len(args) {
	case 3:
		routerID = args[2].(interop.Hash160)
		if len(routerID) != interop.Hash160Len {
			panic(errDirectTransfer)
		}
	case 7:
		routerID = predictRouter(ctx,
			args[2].(interop.Hash160), args[3].(interop.Hash160),
			args[4].(int), args[5].(interop.Hash160), args[6].(int))
	default:
		panic(errDirectTransfer)
	}

	credential := args[0].([]byte)
	amountPerValidator := args[1].(int)

	if amount < getIntConfig(ctx, MinContributionConfigKey, defaultMinContribution) {
		panic(errSmallDeposit)
	}
	validateCredential(ctx, credential)
	validateAmountPerValidator(ctx, amountPerValidator)

	id := depositID(credential, amountPerValidator, routerID)
	rec := getDeposit(ctx, id)

	switch rec.Status {
	case depositstatus.Settled:
		panic(errSettled)
	case depositstatus.Rejected:
		panic(errRejected)
	case depositstatus.None:
		rec.Status = depositstatus.PendingOrAdded
		rec.Depositor = from
		// The refund clock starts on the first contribution only and is
		// not refreshed by later ones.
		rec.Expiration = runtime.GetTime() +
			getIntConfig(ctx, RefundDelayConfigKey, defaultRefundDelay)
	}

	rec.Amount += amount
	common.SetSerialized(ctx, depositKey(id), rec)

	runtime.Notify("ContributionAdded", id, from, amount, rec.Amount)
}

// Reject marks the deposit as refused by the operator, making its value
// immediately refundable. It can be invoked by the contract operator or
// owner. The reason is a free-form operator note.
func Reject(id interop.Hash256, reason string) {
	ctx := storage.GetContext()
	common.CheckOperatorOrOwner(ctx)

	rec := getDeposit(ctx, id)
	if rec.Status != depositstatus.PendingOrAdded {
		panic(errNoReject)
	}

	rec.Status = depositstatus.Rejected
	rec.Expiration = 0
	common.SetSerialized(ctx, depositKey(id), rec)

	runtime.Notify("ServiceRejected", id, reason)
}

// Refund returns the whole escrowed value of the deposit to its recorded
// depositor. Before the expiration time it fails for every caller; once
// the expiration has elapsed (rejection forces it to zero) anyone may
// trigger the refund on the depositor's behalf.
func Refund(credential []byte, amountPerValidator int, routerID interop.Hash160) {
	ctx := storage.GetContext()

	id := depositID(credential, amountPerValidator, routerID)
	rec := getDeposit(ctx, id)
	if rec.Amount == 0 {
		panic(errInsufficient)
	}

	if runtime.GetTime() < rec.Expiration {
		if !runtime.CheckWitness(rec.Depositor) {
			panic(errNotClient)
		}
		panic(errNotExpired)
	}

	amount := rec.Amount
	rec.Amount = 0
	common.SetSerialized(ctx, depositKey(id), rec)

	self := runtime.GetExecutingScriptHash()
	if !gas.Transfer(self, rec.Depositor, amount, []byte(common.IgnorePaymentDetails)) {
		panic("refund transfer failed")
	}

	runtime.Notify("Refunded", id, rec.Depositor, amount)
}

// Settle consumes escrowed value of the deposit, one amount per validator
// for each unit of the batch, and forwards value and registration payload
// to the registration contract. Any fault of the registration contract
// aborts the whole call, so the batch applies all-or-nothing. Partial
// settlement across several calls is permitted while the record's value
// covers each call. It can be invoked by the contract operator or owner.
func Settle(credential []byte, amountPerValidator int, routerID interop.Hash160, pubkeys [][]byte, signatures [][]byte, depositRoots [][]byte) {
	ctx := storage.GetContext()
	common.CheckOperatorOrOwner(ctx)

	count := len(pubkeys)
	if count == 0 {
		panic(errValidatorCount)
	}
	if len(signatures) != count || len(depositRoots) != count {
		panic(errParameterCount)
	}

	registration := storage.Get(ctx, registrationKey)
	if registration == nil {
		panic(errNoRegistration)
	}
	registrationH := registration.(interop.Hash160)

	id := depositID(credential, amountPerValidator, routerID)
	rec := getDeposit(ctx, id)

	total := amountPerValidator * count
	if rec.Amount < total {
		panic(errInsufficient)
	}

	// Debit the full batch before any external call.
	rec.Amount -= total
	if rec.Amount == 0 {
		rec.Status = depositstatus.Settled
	}
	common.SetSerialized(ctx, depositKey(id), rec)

	self := runtime.GetExecutingScriptHash()
	for i := 0; i < count; i++ {
		if !gas.Transfer(self, registrationH, amountPerValidator, []byte(common.IgnorePaymentDetails)) {
			panic("registration transfer failed")
		}
		contract.Call(registrationH, "register", contract.All,
			credential, pubkeys[i], signatures[i], depositRoots[i])
	}

	runtime.Notify("Settled", id, count, total)
}

// SetPectraEnabled irreversibly enables 0x02 withdrawal credentials and
// the configured amount-per-validator range. It can be invoked only by
// the contract owner.
func SetPectraEnabled() {
	ctx := storage.GetContext()
	common.CheckOwner(ctx)
	storage.Put(ctx, pectraKey, 1)
}

// PectraEnabled returns true once post-Pectra deposits were enabled.
func PectraEnabled() bool {
	return storage.Get(storage.GetReadOnlyContext(), pectraKey) != nil
}

// SetConfig stores a network configuration record. It can be invoked only
// by the contract owner.
func SetConfig(key string, value int) {
	ctx := storage.GetContext()
	common.CheckOwner(ctx)

	if value <= 0 {
		panic("invalid config value")
	}
	setConfig(ctx, key, value)
}

// Config returns the stored configuration record or zero if the default
// applies.
func Config(key string) int {
	val := storage.Get(storage.GetReadOnlyContext(), append(configPrefix, key...))
	if val == nil {
		return 0
	}
	return val.(int)
}

// SetFactory stores the fee router factory contract address. It can be
// invoked only by the contract owner.
func SetFactory(addr interop.Hash160) {
	ctx := storage.GetContext()
	common.CheckOwner(ctx)

	if len(addr) != interop.Hash160Len {
		panic("invalid fee router factory account")
	}
	storage.Put(ctx, factoryKey, addr)
}

// SetRegistration stores the validator registration contract address. It
// can be invoked only by the contract owner.
func SetRegistration(addr interop.Hash160) {
	ctx := storage.GetContext()
	common.CheckOwner(ctx)

	if len(addr) != interop.Hash160Len {
		panic("invalid registration account")
	}
	storage.Put(ctx, registrationKey, addr)
}

// TransferOwnership moves the owner role to the new account. Only the
// current owner can do that.
func TransferOwnership(newOwner interop.Hash160) {
	common.TransferOwnership(storage.GetContext(), newOwner)
}

// SetOperator changes the delegated operator account. Only the owner can
// do that.
func SetOperator(newOperator interop.Hash160) {
	common.SetOperator(storage.GetContext(), newOperator)
}

// Owner returns the contract owner account.
func Owner() interop.Hash160 {
	return common.Owner(storage.GetReadOnlyContext())
}

// Operator returns the delegated operator account or nil.
func Operator() interop.Hash160 {
	return common.Operator(storage.GetReadOnlyContext())
}

// Factory returns the fee router factory contract address.
func Factory() interop.Hash160 {
	return storage.Get(storage.GetReadOnlyContext(), factoryKey).(interop.Hash160)
}

// Registration returns the validator registration contract address or nil.
func Registration() interop.Hash160 {
	r := storage.Get(storage.GetReadOnlyContext(), registrationKey)
	if r == nil {
		return nil
	}
	return r.(interop.Hash160)
}

// TotalBalance returns the aggregate GAS value the gateway holds.
func TotalBalance() int {
	return gas.BalanceOf(runtime.GetExecutingScriptHash())
}

// DepositAmount returns the escrowed value of the deposit or zero for an
// unknown identifier.
func DepositAmount(id interop.Hash256) int {
	return getDeposit(storage.GetReadOnlyContext(), id).Amount
}

// DepositStatus returns the depositstatus constant of the deposit;
// depositstatus.None for an unknown identifier.
func DepositStatus(id interop.Hash256) int {
	return getDeposit(storage.GetReadOnlyContext(), id).Status
}

// DepositData returns the full deposit record; the zero record for an
// unknown identifier.
func DepositData(id interop.Hash256) Deposit {
	return getDeposit(storage.GetReadOnlyContext(), id)
}

// GetDepositID derives the deposit identifier from the resolved fee
// router identity.
func GetDepositID(credential []byte, amountPerValidator int, routerID interop.Hash160) interop.Hash256 {
	if len(routerID) != interop.Hash160Len {
		panic("invalid fee router identity")
	}
	return depositID(credential, amountPerValidator, routerID)
}

// GetDepositIDForConfig derives the deposit identifier from the raw fee
// router configuration, resolving the router identity through the
// factory. It always matches GetDepositID for the identity the factory
// predicts, whether the router is deployed or not.
func GetDepositIDForConfig(credential []byte, amountPerValidator int, template, client interop.Hash160, clientBips int, referrer interop.Hash160, referrerBips int) interop.Hash256 {
	routerID := predictRouter(storage.GetReadOnlyContext(),
		template, client, clientBips, referrer, referrerBips)
	return depositID(credential, amountPerValidator, routerID)
}

// RecoverToken sweeps a stray NEP-17 token to the given account. GAS is
// excluded since held GAS is the escrowed deposits. It can be invoked
// only by the contract owner.
func RecoverToken(token, to interop.Hash160, amount int) {
	common.CheckOwner(storage.GetContext())

	if token.Equals(gas.Hash) {
		panic(errRecoverGAS)
	}

	common.RecoverNEP17(token, to, amount)
}

// RecoverNFT sweeps a stray NEP-11 token to the given account. It can be
// invoked only by the contract owner.
func RecoverNFT(token, to interop.Hash160, tokenID []byte) {
	common.CheckOwner(storage.GetContext())
	common.RecoverNEP11(token, to, tokenID)
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

func validateCredential(ctx storage.Context, credential []byte) {
	if len(credential) != credentialLen {
		panic(errCredentialLen)
	}

	switch credential[0] {
	case 0x01:
	case 0x02:
		if storage.Get(ctx, pectraKey) == nil {
			panic(errCredentialPrefix)
		}
	default:
		panic(errCredentialPrefix)
	}

	// Type byte, then 11 zero bytes, then the 20-byte address suffix.
	for i := 1; i < credentialLen-interop.Hash160Len; i++ {
		if credential[i] != 0 {
			panic(errCredentialZero)
		}
	}
}

func validateAmountPerValidator(ctx storage.Context, amount int) {
	if storage.Get(ctx, pectraKey) == nil {
		if amount != CanonicalAmountPerValidator {
			panic(errPectraDisabled)
		}
		return
	}

	min := getIntConfig(ctx, MinAmountPerValidatorConfigKey, defaultMinPerValidator)
	max := getIntConfig(ctx, MaxAmountPerValidatorConfigKey, defaultMaxPerValidator)
	if amount < min || amount > max {
		panic(errAmountRange)
	}
}

func predictRouter(ctx storage.Context, template, client interop.Hash160, clientBips int, referrer interop.Hash160, referrerBips int) interop.Hash160 {
	factory := storage.Get(ctx, factoryKey).(interop.Hash160)
	id := contract.Call(factory, "predictRouterAddress", contract.ReadOnly,
		template, client, clientBips, referrer, referrerBips).(interop.Hash160)
	if len(id) != interop.Hash160Len {
		panic("fee router factory returned bad identity")
	}
	return id
}

func depositID(credential []byte, amountPerValidator int, routerID interop.Hash160) interop.Hash256 {
	raw := std.Serialize([]any{credential, amountPerValidator, routerID})
	return crypto.Sha256(raw)
}

func depositKey(id interop.Hash256) []byte {
	return append([]byte{depositPrefix}, id...)
}

func getDeposit(ctx storage.Context, id interop.Hash256) Deposit {
	if len(id) != interop.Hash256Len {
		panic("invalid deposit identifier")
	}

	data := storage.Get(ctx, depositKey(id))
	if data == nil {
		return Deposit{}
	}
	return std.Deserialize(data.([]byte)).(Deposit)
}

func getIntConfig(ctx storage.Context, key string, def int) int {
	val := storage.Get(ctx, append(configPrefix, key...))
	if val == nil {
		return def
	}
	return val.(int)
}

func setConfig(ctx storage.Context, key string, value int) {
	storage.Put(ctx, append(configPrefix, key...), value)
}
