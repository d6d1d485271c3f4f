package feerouter

import (
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/iterator"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/crypto"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/gas"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
	"github.com/nspcc-dev/stakegate-contract/common"
)

// Router holds one fee-router record. A router splits every received
// reward between the client, an optional referrer and the service. All
// share values are fixed at creation time, the only mutable field is
// Balance.
type Router struct {
	// Reference router implementation this record was derived from.
	Template interop.Hash160
	// Client recipient of the reward share.
	Client interop.Hash160
	// Client share in basis points.
	ClientBips int
	// Referrer recipient, empty if no referrer is configured.
	Referrer interop.Hash160
	// Referrer share in basis points, zero if no referrer is configured.
	ReferrerBips int
	// Service recipient, copied from the factory at creation time.
	Service interop.Hash160
	// Reward amount accrued since the last withdrawal.
	Balance int
}

const (
	// TotalBips is the denominator of every share split.
	TotalBips = 10_000

	routerPrefix = 'r'
	clientPrefix = 'c'

	serviceKey      = 's'
	defaultBipsKey  = 'd'
	templateKey     = 't'
	gatewayKey      = 'g'
	registrationKey = 'n'
)

const (
	errDefaultBips      = "invalid default client basis points"
	errClientBips       = "invalid client basis points"
	errReferrerBips     = "invalid referrer basis points"
	errNoReference      = "reference fee router not set"
	errUnknownRouter    = "unknown fee router"
	errRouterIDRequired = "fee router identifier required"
	errNothingToDraw    = "nothing to withdraw"
	errNotClient        = "caller is not the client"
	errRecoverGAS       = "cannot recover accrued rewards"
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
		owner             interop.Hash160
		operator          interop.Hash160
		service           interop.Hash160
		defaultClientBips int
		referenceRouter   interop.Hash160
	})

	common.InitAccess(ctx, args.owner, args.operator)

	if len(args.service) != interop.Hash160Len {
		panic("invalid service account")
	}
	if args.defaultClientBips < 0 || args.defaultClientBips >= TotalBips {
		panic(errDefaultBips)
	}

	storage.Put(ctx, serviceKey, args.service)
	storage.Put(ctx, defaultBipsKey, args.defaultClientBips)
	if len(args.referenceRouter) == interop.Hash160Len {
		storage.Put(ctx, templateKey, args.referenceRouter)
	}

	runtime.Log("feerouter contract initialized")
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
	runtime.Log("feerouter contract updated")
}

// OnNEP17Payment is a callback for NEP-17 compatible native GAS contract.
// Incoming value is a reward accrual for the router identified by data.
// Rewards can come from any source, no registration step is required.
func OnNEP17Payment(from interop.Hash160, amount int, data any) {
	caller := runtime.GetCallingScriptHash()
	if !caller.Equals(gas.Hash) {
		common.AbortWithMessage("feerouter contract accepts GAS only")
	}

	if amount <= 0 {
		panic("amount must be positive")
	}
	if data == nil {
		panic(errRouterIDRequired)
	}

	id := data.(interop.Hash160)
	if len(id) != interop.Hash160Len {
		panic(errRouterIDRequired)
	}

	ctx := storage.GetContext()
	r := mustGetRouter(ctx, id)
	r.Balance += amount
	common.SetSerialized(ctx, routerKey(id), r)

	runtime.Notify("RewardAccrued", id, from, amount)
}

// PredictRouterAddress returns the identity a router with the given
// configuration has or will have. The derivation is a pure function of the
// configuration and the factory's own identity, so the result does not
// depend on whether the router exists yet. A zero clientBips value is the
// "use the factory default" sentinel and resolves against the current
// default, exactly as CreateRouter resolves it.
func PredictRouterAddress(template, client interop.Hash160, clientBips int, referrer interop.Hash160, referrerBips int) interop.Hash160 {
	ctx := storage.GetReadOnlyContext()
	template, clientBips = resolveConfig(ctx, template, client, clientBips, referrer, referrerBips)
	return routerIdentity(template, client, clientBips, referrer, referrerBips)
}

// CreateRouter deploys the router record at its predicted identity or
// returns the existing one. Creation is idempotent: repeated calls with
// the same configuration never create a second record or reset its
// balance. Produces RouterCreated notification carrying the identity,
// which is the only way for other parties to learn it.
func CreateRouter(template, client interop.Hash160, clientBips int, referrer interop.Hash160, referrerBips int) interop.Hash160 {
	ctx := storage.GetContext()
	template, clientBips = resolveConfig(ctx, template, client, clientBips, referrer, referrerBips)

	id := routerIdentity(template, client, clientBips, referrer, referrerBips)
	key := routerKey(id)
	if storage.Get(ctx, key) != nil {
		return id
	}

	r := Router{
		Template:     template,
		Client:       client,
		ClientBips:   clientBips,
		Referrer:     referrer,
		ReferrerBips: referrerBips,
		Service:      storage.Get(ctx, serviceKey).(interop.Hash160),
		Balance:      0,
	}
	common.SetSerialized(ctx, key, r)

	storage.Put(ctx, clientKey(client, id), 1)

	runtime.Notify("RouterCreated", id, client, clientBips, referrer, referrerBips)
	return id
}

// Withdraw splits the router's accrued balance between its client,
// referrer and service recipients and transfers the shares out. It can be
// invoked by the router's client or by the contract operator or owner.
// The service share is the remainder after the client and referrer cuts,
// so no value is lost to integer rounding.
func Withdraw(id interop.Hash160) {
	ctx := storage.GetContext()
	r := mustGetRouter(ctx, id)

	if !runtime.CheckWitness(r.Client) && !common.InvokedByOperatorOrOwner(ctx) {
		panic(errNotClient)
	}

	balance := r.Balance
	if balance == 0 {
		panic(errNothingToDraw)
	}

	clientAmount := balance * r.ClientBips / TotalBips
	referrerAmount := 0
	if len(r.Referrer) == interop.Hash160Len {
		referrerAmount = balance * r.ReferrerBips / TotalBips
	}
	serviceAmount := balance - clientAmount - referrerAmount

	// Zero the stored balance before dispatching any transfer so that a
	// reentrant call observes the already-reduced state.
	r.Balance = 0
	common.SetSerialized(ctx, routerKey(id), r)

	self := runtime.GetExecutingScriptHash()
	payOut(self, r.Client, clientAmount)
	payOut(self, r.Referrer, referrerAmount)
	payOut(self, r.Service, serviceAmount)

	runtime.Notify("Withdrawn", id, clientAmount, referrerAmount, serviceAmount)
}

// SetDefaultClientBasisPoints changes the client share applied to routers
// created with the zero sentinel. Existing routers keep the value they
// were created with. It can be invoked only by the contract owner.
func SetDefaultClientBasisPoints(value int) {
	ctx := storage.GetContext()
	common.CheckOwner(ctx)

	if value < 0 || value >= TotalBips {
		panic(errDefaultBips)
	}

	storage.Put(ctx, defaultBipsKey, value)
}

// SetReferenceRouter stores the reference router implementation used when
// creation requests do not name one. It can be invoked only by the
// contract owner.
func SetReferenceRouter(template interop.Hash160) {
	ctx := storage.GetContext()
	common.CheckOwner(ctx)

	if len(template) != interop.Hash160Len {
		panic("invalid reference router account")
	}

	storage.Put(ctx, templateKey, template)
}

// SetGateway stores the deposit gateway contract address. It can be
// invoked only by the contract owner.
func SetGateway(addr interop.Hash160) {
	ctx := storage.GetContext()
	common.CheckOwner(ctx)

	if len(addr) != interop.Hash160Len {
		panic("invalid gateway account")
	}

	storage.Put(ctx, gatewayKey, addr)
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

// DefaultClientBasisPoints returns the current default client share.
func DefaultClientBasisPoints() int {
	return storage.Get(storage.GetReadOnlyContext(), defaultBipsKey).(int)
}

// Service returns the service recipient account.
func Service() interop.Hash160 {
	return storage.Get(storage.GetReadOnlyContext(), serviceKey).(interop.Hash160)
}

// ReferenceRouter returns the stored reference router implementation or
// nil if none is set.
func ReferenceRouter() interop.Hash160 {
	t := storage.Get(storage.GetReadOnlyContext(), templateKey)
	if t == nil {
		return nil
	}
	return t.(interop.Hash160)
}

// Gateway returns the deposit gateway contract address or nil.
func Gateway() interop.Hash160 {
	g := storage.Get(storage.GetReadOnlyContext(), gatewayKey)
	if g == nil {
		return nil
	}
	return g.(interop.Hash160)
}

// Registration returns the validator registration contract address or nil.
func Registration() interop.Hash160 {
	r := storage.Get(storage.GetReadOnlyContext(), registrationKey)
	if r == nil {
		return nil
	}
	return r.(interop.Hash160)
}

// GetRouter returns the router record stored under the given identity.
func GetRouter(id interop.Hash160) Router {
	return mustGetRouter(storage.GetReadOnlyContext(), id)
}

// RouterBalance returns the accrued balance of the router.
func RouterBalance(id interop.Hash160) int {
	return mustGetRouter(storage.GetReadOnlyContext(), id).Balance
}

// Routers returns an iterator over the identities of every router ever
// created. The registry is append-only.
func Routers() iterator.Iterator {
	return storage.Find(storage.GetReadOnlyContext(), []byte{routerPrefix},
		storage.KeysOnly|storage.RemovePrefix)
}

// ClientRouters returns the identities of every router created for the
// given client recipient. The registry is append-only.
func ClientRouters(client interop.Hash160) []interop.Hash160 {
	if len(client) != interop.Hash160Len {
		panic("invalid client account")
	}

	prefix := append([]byte{clientPrefix}, client...)
	res := []interop.Hash160{}

	it := storage.Find(storage.GetReadOnlyContext(), prefix,
		storage.KeysOnly|storage.RemovePrefix)
	for iterator.Next(it) {
		res = append(res, iterator.Value(it).(interop.Hash160))
	}
	return res
}

// RecoverToken sweeps a stray NEP-17 token to the given account. GAS is
// excluded since held GAS is the routers' accrued rewards. It can be
// invoked only by the contract owner.
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

func resolveConfig(ctx storage.Context, template, client interop.Hash160, clientBips int, referrer interop.Hash160, referrerBips int) (interop.Hash160, int) {
	if len(template) == 0 {
		t := storage.Get(ctx, templateKey)
		if t == nil {
			panic(errNoReference)
		}
		template = t.(interop.Hash160)
	}
	if len(template) != interop.Hash160Len {
		panic(errNoReference)
	}

	if len(client) != interop.Hash160Len {
		panic("invalid client account")
	}

	if clientBips == 0 {
		clientBips = storage.Get(ctx, defaultBipsKey).(int)
	}
	// The explicit bound is inclusive of the whole balance while the
	// default is not: an explicit client config may claim everything.
	if clientBips < 0 || clientBips > TotalBips {
		panic(errClientBips)
	}

	if len(referrer) == 0 {
		if referrerBips != 0 {
			panic(errReferrerBips)
		}
	} else {
		if len(referrer) != interop.Hash160Len {
			panic("invalid referrer account")
		}
		if referrerBips <= 0 || clientBips+referrerBips > TotalBips {
			panic(errReferrerBips)
		}
	}

	return template, clientBips
}

func routerIdentity(template, client interop.Hash160, clientBips int, referrer interop.Hash160, referrerBips int) interop.Hash160 {
	raw := std.Serialize([]any{
		runtime.GetExecutingScriptHash(),
		template,
		client,
		clientBips,
		referrer,
		referrerBips,
	})
	return crypto.Ripemd160([]byte(crypto.Sha256(raw)))
}

func routerKey(id interop.Hash160) []byte {
	return append([]byte{routerPrefix}, id...)
}

func clientKey(client, id interop.Hash160) []byte {
	return append(append([]byte{clientPrefix}, client...), id...)
}

func mustGetRouter(ctx storage.Context, id interop.Hash160) Router {
	if len(id) != interop.Hash160Len {
		panic(errUnknownRouter)
	}

	data := storage.Get(ctx, routerKey(id))
	if data == nil {
		panic(errUnknownRouter)
	}
	return std.Deserialize(data.([]byte)).(Router)
}

func payOut(self, to interop.Hash160, amount int) {
	if amount == 0 {
		return
	}
	if !gas.Transfer(self, to, amount, []byte(common.IgnorePaymentDetails)) {
		panic("reward transfer failed")
	}
}
