package tests

import (
	"math/big"
	"path"
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/nspcc-dev/stakegate-contract/common"
	"github.com/nspcc-dev/stakegate-contract/contracts/gateway/depositstatus"
	"github.com/stretchr/testify/require"
)

const (
	gatewayPath      = "../contracts/gateway"
	registrationPath = "../internal/testcontracts/registration"

	gasUnit = 1_0000_0000
)

func deployGatewayContract(t *testing.T, e *neotest.Executor, operator, factory util.Uint160, registration any, refundDelay int64) util.Uint160 {
	c := neotest.CompileFile(t, e.CommitteeHash, gatewayPath, path.Join(gatewayPath, "config.yml"))
	e.DeployContract(t, c, []any{e.CommitteeHash, operator, factory, registration, refundDelay})
	return c.Hash
}

func deployRegistrationContract(t *testing.T, e *neotest.Executor) util.Uint160 {
	c := neotest.CompileFile(t, e.CommitteeHash, registrationPath, path.Join(registrationPath, "config.yml"))
	e.DeployContract(t, c, nil)
	return c.Hash
}

// newGatewayInvoker deploys the full contract set with the committee as
// owner of everything. A zero refundDelay leaves the 24h default in force.
func newGatewayInvoker(t *testing.T, refundDelay int64) (*neotest.ContractInvoker, *neotest.ContractInvoker, util.Uint160) {
	e := newExecutor(t)

	factoryHash := deployFeeRouterContract(t, e, e.CommitteeHash, randomHash160(t), 9000, randomBytes(util.Uint160Size))
	regHash := deployRegistrationContract(t, e)
	gwHash := deployGatewayContract(t, e, e.CommitteeHash, factoryHash, regHash, refundDelay)

	return e.CommitteeInvoker(gwHash), e.CommitteeInvoker(factoryHash), regHash
}

// contribute sends amount of GAS from the signer to the gateway with the
// given contribution descriptor.
func contribute(t *testing.T, c *neotest.ContractInvoker, from neotest.Signer, amount int64, data []any) {
	gasInv := gasInvoker(t, c.Executor).WithSigners(from)
	gasInv.Invoke(t, stackitem.NewBool(true), "transfer", from.ScriptHash(), c.Hash, amount, data)
}

func contributeFail(t *testing.T, c *neotest.ContractInvoker, from neotest.Signer, message string, amount int64, data any) {
	gasInv := gasInvoker(t, c.Executor).WithSigners(from)
	gasInv.InvokeFail(t, message, "transfer", from.ScriptHash(), c.Hash, amount, data)
}

func depositID(t *testing.T, c *neotest.ContractInvoker, credential []byte, perValidator int64, routerID []byte) []byte {
	res, err := c.TestInvoke(t, "getDepositID", credential, perValidator, routerID)
	require.NoError(t, err)
	return res.Top().Bytes()
}

func depositRecord(t *testing.T, c *neotest.ContractInvoker, id []byte) (int64, int64, int64, []byte) {
	res, err := c.TestInvoke(t, "depositData", id)
	require.NoError(t, err)
	fields := res.Top().Array()
	return mustInt(t, fields[0]), mustInt(t, fields[1]), mustInt(t, fields[2]), mustBytes(t, fields[3])
}

func TestGateway_Deploy(t *testing.T) {
	c, factory, regHash := newGatewayInvoker(t, 0)

	c.Invoke(t, stackitem.Make(factory.Hash.BytesBE()), "factory")
	c.Invoke(t, stackitem.Make(regHash.BytesBE()), "registration")
	c.Invoke(t, stackitem.NewBool(false), "pectraEnabled")
	c.Invoke(t, stackitem.Make(0), "totalBalance")
	c.Invoke(t, stackitem.Make(common.Version), "version")
	factory.Invoke(t, stackitem.Make(common.Version), "version")
}

func TestGateway_ContributionValidation(t *testing.T) {
	c, _, _ := newGatewayInvoker(t, 0)
	v := c.Executor.Validator

	cred := validCredential(0x01)
	routerID := randomBytes(util.Uint160Size)
	ok := []any{cred, int64(32 * gasUnit), routerID}

	contributeFail(t, c, v, "direct transfers are not allowed", 32*gasUnit, nil)
	contributeFail(t, c, v, "direct transfers are not allowed", 32*gasUnit, []any{cred, int64(32 * gasUnit)})
	contributeFail(t, c, v, "deposit amount too small", gasUnit/2, ok)
	contributeFail(t, c, v, "invalid withdrawal credentials", 32*gasUnit, []any{randomBytes(31), int64(32 * gasUnit), routerID})
	contributeFail(t, c, v, "incorrect withdrawal credentials prefix", 32*gasUnit, []any{validCredential(0x00), int64(32 * gasUnit), routerID})
	contributeFail(t, c, v, "incorrect withdrawal credentials prefix", 32*gasUnit, []any{validCredential(0x02), int64(32 * gasUnit), routerID})

	dirty := validCredential(0x01)
	dirty[5] = 0xff
	contributeFail(t, c, v, "withdrawal credentials bytes not zero", 32*gasUnit, []any{dirty, int64(32 * gasUnit), routerID})

	contributeFail(t, c, v, "eip-7251 is not enabled yet", 32*gasUnit, []any{cred, int64(64 * gasUnit), routerID})

	contribute(t, c, v, 32*gasUnit, ok)
	c.Invoke(t, stackitem.Make(32*gasUnit), "totalBalance")
}

func TestGateway_Lifecycle(t *testing.T) {
	c, _, _ := newGatewayInvoker(t, 0)
	v := c.Executor.Validator

	cred := validCredential(0x01)
	routerID := randomBytes(util.Uint160Size)
	data := []any{cred, int64(32 * gasUnit), routerID}
	id := depositID(t, c, cred, 32*gasUnit, routerID)

	c.Invoke(t, stackitem.Make(depositstatus.None), "depositStatus", id)

	contribute(t, c, v, 32*gasUnit, data)
	c.Invoke(t, stackitem.Make(depositstatus.PendingOrAdded), "depositStatus", id)
	c.Invoke(t, stackitem.Make(32*gasUnit), "depositAmount", id)

	contribute(t, c, v, 32*gasUnit, data)
	amount, status, _, depositor := depositRecord(t, c, id)
	require.Equal(t, int64(64*gasUnit), amount)
	require.Equal(t, int64(depositstatus.PendingOrAdded), status)
	require.Equal(t, v.ScriptHash().BytesBE(), depositor)

	c.InvokeFail(t, "no deposit to reject", "reject", randomBytes(32), "unknown")
	c.Invoke(t, stackitem.Null{}, "reject", id, "compliance check failed")

	_, status, expiration, _ := depositRecord(t, c, id)
	require.Equal(t, int64(depositstatus.Rejected), status)
	require.Equal(t, int64(0), expiration)

	contributeFail(t, c, v, "deposit was rejected", 32*gasUnit, data)
	c.InvokeFail(t, "no deposit to reject", "reject", id, "twice")

	// Rejection made the value immediately refundable by anyone.
	stranger := c.WithSigners(c.NewAccount(t))
	stranger.Invoke(t, stackitem.Null{}, "refund", cred, int64(32*gasUnit), routerID)

	c.Invoke(t, stackitem.Make(0), "depositAmount", id)
	c.Invoke(t, stackitem.Make(depositstatus.Rejected), "depositStatus", id)
	stranger.InvokeFail(t, "insufficient balance", "refund", cred, int64(32*gasUnit), routerID)
}

func TestGateway_RefundBeforeExpiration(t *testing.T) {
	c, _, _ := newGatewayInvoker(t, 0)

	depositor := c.NewAccount(t)
	cred := validCredential(0x01)
	routerID := randomBytes(util.Uint160Size)

	contribute(t, c, depositor, 32*gasUnit, []any{cred, int64(32 * gasUnit), routerID})

	c.WithSigners(c.NewAccount(t)).InvokeFail(t, "caller is not the client",
		"refund", cred, int64(32*gasUnit), routerID)
	c.WithSigners(depositor).InvokeFail(t, "waiting for expiration",
		"refund", cred, int64(32*gasUnit), routerID)
}

func TestGateway_RefundAfterExpiration(t *testing.T) {
	c, _, _ := newGatewayInvoker(t, 1)

	depositor := c.NewAccount(t)
	cred := validCredential(0x01)
	routerID := randomBytes(util.Uint160Size)

	contribute(t, c, depositor, 32*gasUnit, []any{cred, int64(32 * gasUnit), routerID})
	before := c.Chain.GetUtilityTokenBalance(depositor.ScriptHash())

	// Anyone may trigger the refund once the delay elapsed, the value still
	// goes to the recorded depositor.
	c.WithSigners(c.NewAccount(t)).Invoke(t, stackitem.Null{},
		"refund", cred, int64(32*gasUnit), routerID)

	after := c.Chain.GetUtilityTokenBalance(depositor.ScriptHash())
	require.Equal(t, big.NewInt(32*gasUnit), new(big.Int).Sub(after, before))

	id := depositID(t, c, cred, 32*gasUnit, routerID)
	c.Invoke(t, stackitem.Make(0), "depositAmount", id)
}

func TestGateway_ExpirationNotRefreshed(t *testing.T) {
	c, _, _ := newGatewayInvoker(t, 0)
	v := c.Executor.Validator

	cred := validCredential(0x01)
	routerID := randomBytes(util.Uint160Size)
	data := []any{cred, int64(32 * gasUnit), routerID}
	id := depositID(t, c, cred, 32*gasUnit, routerID)

	contribute(t, c, v, 32*gasUnit, data)
	_, _, expiration, _ := depositRecord(t, c, id)
	require.NotZero(t, expiration)

	contribute(t, c, v, 32*gasUnit, data)
	_, _, expirationAfter, _ := depositRecord(t, c, id)
	require.Equal(t, expiration, expirationAfter)
}

func TestGateway_Settle(t *testing.T) {
	c, _, regHash := newGatewayInvoker(t, 0)
	v := c.Executor.Validator
	reg := c.CommitteeInvoker(regHash)

	cred := validCredential(0x01)
	routerID := randomBytes(util.Uint160Size)
	id := depositID(t, c, cred, 32*gasUnit, routerID)

	contribute(t, c, v, 64*gasUnit, []any{cred, int64(32 * gasUnit), routerID})

	pubkeys := [][]byte{randomBytes(48), randomBytes(48)}
	sigs := [][]byte{randomBytes(96), randomBytes(96)}
	roots := [][]byte{randomBytes(32), randomBytes(32)}

	c.InvokeFail(t, "validator count error", "settle",
		cred, int64(32*gasUnit), routerID, []any{}, []any{}, []any{})
	c.InvokeFail(t, "amount of parameters mismatch", "settle",
		cred, int64(32*gasUnit), routerID, []any{pubkeys[0]}, []any{}, []any{roots[0]})
	c.InvokeFail(t, "insufficient balance", "settle",
		cred, int64(32*gasUnit), routerID,
		[]any{pubkeys[0], pubkeys[1], randomBytes(48)},
		[]any{sigs[0], sigs[1], randomBytes(96)},
		[]any{roots[0], roots[1], randomBytes(32)})

	c.Invoke(t, stackitem.Null{}, "settle",
		cred, int64(32*gasUnit), routerID, []any{pubkeys[0]}, []any{sigs[0]}, []any{roots[0]})

	c.Invoke(t, stackitem.Make(depositstatus.PendingOrAdded), "depositStatus", id)
	c.Invoke(t, stackitem.Make(32*gasUnit), "depositAmount", id)
	reg.Invoke(t, stackitem.Make(1), "count")
	require.Equal(t, big.NewInt(32*gasUnit), c.Chain.GetUtilityTokenBalance(regHash))

	c.Invoke(t, stackitem.Null{}, "settle",
		cred, int64(32*gasUnit), routerID, []any{pubkeys[1]}, []any{sigs[1]}, []any{roots[1]})

	c.Invoke(t, stackitem.Make(depositstatus.Settled), "depositStatus", id)
	c.Invoke(t, stackitem.Make(0), "depositAmount", id)
	reg.Invoke(t, stackitem.Make(2), "count")

	res, err := reg.TestInvoke(t, "get", int64(0))
	require.NoError(t, err)
	recorded := res.Top().Array()
	require.Equal(t, cred, mustBytes(t, recorded[0]))
	require.Equal(t, pubkeys[0], mustBytes(t, recorded[1]))
	require.Equal(t, sigs[0], mustBytes(t, recorded[2]))
	require.Equal(t, roots[0], mustBytes(t, recorded[3]))

	contributeFail(t, c, v, "deposit already settled", 32*gasUnit,
		[]any{cred, int64(32 * gasUnit), routerID})
}

func TestGateway_SettleFaultingRegistration(t *testing.T) {
	c, _, _ := newGatewayInvoker(t, 0)
	v := c.Executor.Validator

	cred := validCredential(0x01)
	routerID := randomBytes(util.Uint160Size)
	id := depositID(t, c, cred, 32*gasUnit, routerID)

	contribute(t, c, v, 32*gasUnit, []any{cred, int64(32 * gasUnit), routerID})

	// A registration fault rolls back the whole batch, nothing is debited.
	c.InvokeFail(t, "bad validator public key", "settle",
		cred, int64(32*gasUnit), routerID,
		[]any{randomBytes(47)}, []any{randomBytes(96)}, []any{randomBytes(32)})

	c.Invoke(t, stackitem.Make(32*gasUnit), "depositAmount", id)
	c.Invoke(t, stackitem.Make(depositstatus.PendingOrAdded), "depositStatus", id)
}

func TestGateway_SettleWithoutRegistration(t *testing.T) {
	e := newExecutor(t)
	factoryHash := deployFeeRouterContract(t, e, e.CommitteeHash, randomHash160(t), 9000, randomBytes(util.Uint160Size))
	gwHash := deployGatewayContract(t, e, e.CommitteeHash, factoryHash, []byte{}, 0)
	c := e.CommitteeInvoker(gwHash)

	c.Invoke(t, stackitem.Null{}, "registration")
	c.InvokeFail(t, "registration contract not set", "settle",
		validCredential(0x01), int64(32*gasUnit), randomBytes(util.Uint160Size),
		[]any{randomBytes(48)}, []any{randomBytes(96)}, []any{randomBytes(32)})
}

func TestGateway_DepositIDForms(t *testing.T) {
	c, factory, _ := newGatewayInvoker(t, 0)
	v := c.Executor.Validator

	template := randomHash160(t)
	client := randomHash160(t)
	cred := validCredential(0x01)

	routerID := predictRouter(t, factory, template, client, 9000, []byte{}, 0)

	id := depositID(t, c, cred, 32*gasUnit, routerID)
	res, err := c.TestInvoke(t, "getDepositIDForConfig",
		cred, int64(32*gasUnit), template, client, int64(9000), []byte{}, int64(0))
	require.NoError(t, err)
	require.Equal(t, id, res.Top().Bytes())

	// The raw-configuration contribution form lands on the same record.
	contribute(t, c, v, 32*gasUnit,
		[]any{cred, int64(32 * gasUnit), template, client, int64(9000), []byte{}, int64(0)})
	c.Invoke(t, stackitem.Make(32*gasUnit), "depositAmount", id)
}

func TestGateway_Pectra(t *testing.T) {
	c, _, _ := newGatewayInvoker(t, 0)
	v := c.Executor.Validator
	routerID := randomBytes(util.Uint160Size)

	c.WithSigners(c.NewAccount(t)).InvokeFail(t, "caller is not the owner", "setPectraEnabled")
	c.Invoke(t, stackitem.Null{}, "setPectraEnabled")
	c.Invoke(t, stackitem.NewBool(true), "pectraEnabled")

	contribute(t, c, v, 64*gasUnit, []any{validCredential(0x02), int64(64 * gasUnit), routerID})

	contributeFail(t, c, v, "amount per validator out of range", 32*gasUnit,
		[]any{validCredential(0x01), int64(16 * gasUnit), routerID})
	contributeFail(t, c, v, "amount per validator out of range", 32*gasUnit,
		[]any{validCredential(0x01), int64(2049 * gasUnit), routerID})
}

func TestGateway_Config(t *testing.T) {
	c, _, _ := newGatewayInvoker(t, 0)
	v := c.Executor.Validator

	c.Invoke(t, stackitem.Make(0), "config", "MinContribution")
	c.WithSigners(c.NewAccount(t)).InvokeFail(t, "caller is not the owner",
		"setConfig", "MinContribution", int64(5*gasUnit))
	c.InvokeFail(t, "invalid config value", "setConfig", "MinContribution", int64(0))

	c.Invoke(t, stackitem.Null{}, "setConfig", "MinContribution", int64(5*gasUnit))
	c.Invoke(t, stackitem.Make(5*gasUnit), "config", "MinContribution")

	contributeFail(t, c, v, "deposit amount too small", 2*gasUnit,
		[]any{validCredential(0x01), int64(32 * gasUnit), randomBytes(util.Uint160Size)})
}

func TestGateway_AdminAccess(t *testing.T) {
	c, _, _ := newGatewayInvoker(t, 0)

	stranger := c.WithSigners(c.NewAccount(t))
	addr := randomHash160(t)

	stranger.InvokeFail(t, "caller is not the owner", "setFactory", addr)
	stranger.InvokeFail(t, "caller is not the owner", "setRegistration", addr)
	stranger.InvokeFail(t, "caller is not the owner", "setOperator", addr)
	stranger.InvokeFail(t, "caller is not the owner", "transferOwnership", addr)
	stranger.InvokeFail(t, "caller is neither operator nor owner", "reject", randomBytes(32), "")
	stranger.InvokeFail(t, "caller is neither operator nor owner", "settle",
		validCredential(0x01), int64(32*gasUnit), randomBytes(util.Uint160Size),
		[]any{randomBytes(48)}, []any{randomBytes(96)}, []any{randomBytes(32)})

	c.Invoke(t, stackitem.Null{}, "setFactory", addr)
	c.Invoke(t, stackitem.Make(addr.BytesBE()), "factory")
}

func TestGateway_OperatorActions(t *testing.T) {
	e := newExecutor(t)
	operatorAcc := e.NewAccount(t)

	factoryHash := deployFeeRouterContract(t, e, e.CommitteeHash, randomHash160(t), 9000, randomBytes(util.Uint160Size))
	regHash := deployRegistrationContract(t, e)
	gwHash := deployGatewayContract(t, e, operatorAcc.ScriptHash(), factoryHash, regHash, 0)
	c := e.CommitteeInvoker(gwHash)
	v := e.Validator

	cred := validCredential(0x01)
	routerID := randomBytes(util.Uint160Size)
	id := depositID(t, c, cred, 32*gasUnit, routerID)

	contribute(t, c, v, 64*gasUnit, []any{cred, int64(32 * gasUnit), routerID})

	cOp := c.WithSigners(operatorAcc)
	cOp.Invoke(t, stackitem.Null{}, "settle",
		cred, int64(32*gasUnit), routerID,
		[]any{randomBytes(48)}, []any{randomBytes(96)}, []any{randomBytes(32)})
	cOp.Invoke(t, stackitem.Null{}, "reject", id, "remaining value refused")

	c.Invoke(t, stackitem.Make(depositstatus.Rejected), "depositStatus", id)

	// The operator role does not extend to owner-only configuration.
	cOp.InvokeFail(t, "caller is not the owner", "setOperator", operatorAcc.ScriptHash())
}

func TestGateway_RecoverToken(t *testing.T) {
	c, factory, _ := newGatewayInvoker(t, 0)
	to := randomHash160(t)

	gasHash := gasInvoker(t, c.Executor).Hash
	c.InvokeFail(t, "cannot recover escrowed asset", "recoverToken", gasHash, to, int64(1))
	factory.InvokeFail(t, "cannot recover accrued rewards", "recoverToken", gasHash, to, int64(1))

	stranger := c.WithSigners(c.NewAccount(t))
	stranger.InvokeFail(t, "caller is not the owner", "recoverToken", gasHash, to, int64(1))
}
