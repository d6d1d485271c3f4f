package tests

import (
	"math/big"
	"path"
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/stretchr/testify/require"
)

const feeRouterPath = "../contracts/feerouter"

func randomHash160(t *testing.T) util.Uint160 {
	h, err := util.Uint160DecodeBytesBE(randomBytes(util.Uint160Size))
	require.NoError(t, err)
	return h
}

// deployFeeRouterContract deploys the factory with the committee as owner.
// An empty template slice leaves the reference router unset.
func deployFeeRouterContract(t *testing.T, e *neotest.Executor, operator, service util.Uint160, defaultBips int64, template any) util.Uint160 {
	c := neotest.CompileFile(t, e.CommitteeHash, feeRouterPath, path.Join(feeRouterPath, "config.yml"))
	e.DeployContract(t, c, []any{e.CommitteeHash, operator, service, defaultBips, template})
	return c.Hash
}

func newFeeRouterInvoker(t *testing.T, defaultBips int64) (*neotest.ContractInvoker, util.Uint160) {
	e := newExecutor(t)
	service := randomHash160(t)
	h := deployFeeRouterContract(t, e, e.CommitteeHash, service, defaultBips, randomBytes(util.Uint160Size))
	return e.CommitteeInvoker(h), service
}

func predictRouter(t *testing.T, c *neotest.ContractInvoker, template any, client util.Uint160, clientBips int64, referrer any, referrerBips int64) []byte {
	res, err := c.TestInvoke(t, "predictRouterAddress", template, client, clientBips, referrer, referrerBips)
	require.NoError(t, err)
	return res.Top().Bytes()
}

func TestFeeRouter_DeployDefaultBips(t *testing.T) {
	e := newExecutor(t)
	service := randomHash160(t)

	c := neotest.CompileFile(t, e.CommitteeHash, feeRouterPath, path.Join(feeRouterPath, "config.yml"))
	e.DeployContractCheckFAULT(t, c, []any{e.CommitteeHash, e.CommitteeHash, service, int64(10_000), []byte{}},
		"invalid default client basis points")

	e.DeployContract(t, c, []any{e.CommitteeHash, e.CommitteeHash, service, int64(9000), []byte{}})

	inv := e.CommitteeInvoker(c.Hash)
	inv.Invoke(t, stackitem.Make(9000), "defaultClientBasisPoints")
	inv.Invoke(t, stackitem.Make(service.BytesBE()), "service")
	inv.Invoke(t, stackitem.Null{}, "referenceRouter")
}

func TestFeeRouter_PredictMatchesCreate(t *testing.T) {
	c, _ := newFeeRouterInvoker(t, 9000)

	template := randomHash160(t)
	client := randomHash160(t)
	referrer := randomHash160(t)

	predicted := predictRouter(t, c, template, client, 9000, referrer, 500)
	c.Invoke(t, stackitem.Make(predicted), "createRouter", template, client, int64(9000), referrer, int64(500))

	// Prediction result is stable after the router exists.
	require.Equal(t, predicted, predictRouter(t, c, template, client, 9000, referrer, 500))

	// A different configuration lands on a different identity.
	other := predictRouter(t, c, template, client, 8000, referrer, 500)
	require.NotEqual(t, predicted, other)

	res, err := c.TestInvoke(t, "getRouter", predicted)
	require.NoError(t, err)
	fields := res.Top().Array()
	require.Equal(t, template.BytesBE(), mustBytes(t, fields[0]))
	require.Equal(t, client.BytesBE(), mustBytes(t, fields[1]))
	require.Equal(t, int64(9000), mustInt(t, fields[2]))
	require.Equal(t, referrer.BytesBE(), mustBytes(t, fields[3]))
	require.Equal(t, int64(500), mustInt(t, fields[4]))
	require.Equal(t, int64(0), mustInt(t, fields[6]))
}

func TestFeeRouter_CreateIdempotent(t *testing.T) {
	c, _ := newFeeRouterInvoker(t, 9000)

	template := randomHash160(t)
	client := randomHash160(t)

	id := predictRouter(t, c, template, client, 9000, []byte{}, 0)
	c.Invoke(t, stackitem.Make(id), "createRouter", template, client, int64(9000), []byte{}, int64(0))

	accrue(t, c, id, 3_0000_0000)

	// Re-creation returns the same identity and keeps the balance.
	c.Invoke(t, stackitem.Make(id), "createRouter", template, client, int64(9000), []byte{}, int64(0))
	c.Invoke(t, stackitem.Make(3_0000_0000), "routerBalance", id)

	res, err := c.TestInvoke(t, "clientRouters", client)
	require.NoError(t, err)
	require.Equal(t, []stackitem.Item{stackitem.Make(id)}, res.Top().Array())
}

func TestFeeRouter_DefaultSentinelSnapshot(t *testing.T) {
	c, _ := newFeeRouterInvoker(t, 9000)

	template := randomHash160(t)
	client := randomHash160(t)

	// Zero client share resolves against the current default.
	id := predictRouter(t, c, template, client, 0, []byte{}, 0)
	require.Equal(t, predictRouter(t, c, template, client, 9000, []byte{}, 0), id)

	c.Invoke(t, stackitem.Make(id), "createRouter", template, client, int64(0), []byte{}, int64(0))

	c.Invoke(t, stackitem.Null{}, "setDefaultClientBasisPoints", int64(8000))
	c.Invoke(t, stackitem.Make(8000), "defaultClientBasisPoints")

	// The created router kept the share it was resolved with, while the
	// sentinel now resolves to a different identity.
	res, err := c.TestInvoke(t, "getRouter", id)
	require.NoError(t, err)
	require.Equal(t, int64(9000), mustInt(t, res.Top().Array()[2]))

	require.Equal(t, predictRouter(t, c, template, client, 8000, []byte{}, 0),
		predictRouter(t, c, template, client, 0, []byte{}, 0))
}

func TestFeeRouter_CreateValidation(t *testing.T) {
	c, _ := newFeeRouterInvoker(t, 9000)

	template := randomHash160(t)
	client := randomHash160(t)
	referrer := randomHash160(t)

	c.InvokeFail(t, "invalid referrer basis points", "createRouter", template, client, int64(9000), []byte{}, int64(500))
	c.InvokeFail(t, "invalid referrer basis points", "createRouter", template, client, int64(9000), referrer, int64(0))
	c.InvokeFail(t, "invalid referrer basis points", "createRouter", template, client, int64(9800), referrer, int64(500))
	c.InvokeFail(t, "invalid client basis points", "createRouter", template, client, int64(10_001), []byte{}, int64(0))

	// The whole balance may be assigned to the client explicitly.
	id := predictRouter(t, c, template, client, 10_000, []byte{}, 0)
	c.Invoke(t, stackitem.Make(id), "createRouter", template, client, int64(10_000), []byte{}, int64(0))
}

func TestFeeRouter_ReferenceRouterFallback(t *testing.T) {
	e := newExecutor(t)
	service := randomHash160(t)

	h := deployFeeRouterContract(t, e, e.CommitteeHash, service, 9000, []byte{})
	c := e.CommitteeInvoker(h)

	client := randomHash160(t)
	c.InvokeFail(t, "reference fee router not set", "createRouter", []byte{}, client, int64(9000), []byte{}, int64(0))

	template := randomHash160(t)
	c.Invoke(t, stackitem.Null{}, "setReferenceRouter", template)
	c.Invoke(t, stackitem.Make(template.BytesBE()), "referenceRouter")

	// An omitted template now falls back to the stored reference.
	require.Equal(t, predictRouter(t, c, template, client, 9000, []byte{}, 0),
		predictRouter(t, c, []byte{}, client, 9000, []byte{}, 0))
}

func TestFeeRouter_AccrueAndWithdraw(t *testing.T) {
	c, service := newFeeRouterInvoker(t, 9000)

	template := randomHash160(t)
	client := randomHash160(t)
	referrer := randomHash160(t)

	id := predictRouter(t, c, template, client, 9000, referrer, 500)
	c.Invoke(t, stackitem.Make(id), "createRouter", template, client, int64(9000), referrer, int64(500))

	gasInv := gasInvoker(t, c.Executor)
	gasInv.InvokeFail(t, "unknown fee router", "transfer",
		c.Executor.Validator.ScriptHash(), c.Hash, int64(10_0000_0000), randomBytes(util.Uint160Size))

	accrue(t, c, id, 10_0000_0000)
	c.Invoke(t, stackitem.Make(10_0000_0000), "routerBalance", id)

	c.Invoke(t, stackitem.Null{}, "withdraw", id)

	require.Equal(t, big.NewInt(9_0000_0000), c.Chain.GetUtilityTokenBalance(client))
	require.Equal(t, big.NewInt(5000_0000), c.Chain.GetUtilityTokenBalance(referrer))
	require.Equal(t, big.NewInt(5000_0000), c.Chain.GetUtilityTokenBalance(service))
	c.Invoke(t, stackitem.Make(0), "routerBalance", id)

	c.InvokeFail(t, "nothing to withdraw", "withdraw", id)
}

func TestFeeRouter_WithdrawRemainderToService(t *testing.T) {
	c, service := newFeeRouterInvoker(t, 9000)

	template := randomHash160(t)
	client := randomHash160(t)

	// 3333+3333 bips of 10001 leave a rounding remainder with the service.
	referrer := randomHash160(t)
	id := predictRouter(t, c, template, client, 3333, referrer, 3333)
	c.Invoke(t, stackitem.Make(id), "createRouter", template, client, int64(3333), referrer, int64(3333))

	accrue(t, c, id, 10_001)
	c.Invoke(t, stackitem.Null{}, "withdraw", id)

	clientGot := c.Chain.GetUtilityTokenBalance(client).Int64()
	referrerGot := c.Chain.GetUtilityTokenBalance(referrer).Int64()
	serviceGot := c.Chain.GetUtilityTokenBalance(service).Int64()

	require.Equal(t, int64(3333), clientGot)
	require.Equal(t, int64(3333), referrerGot)
	require.Equal(t, int64(10_001)-clientGot-referrerGot, serviceGot)
}

func TestFeeRouter_WithdrawAccess(t *testing.T) {
	e := newExecutor(t)
	service := randomHash160(t)

	clientAcc := e.NewAccount(t)
	operatorAcc := e.NewAccount(t)
	stranger := e.NewAccount(t)

	h := deployFeeRouterContract(t, e, operatorAcc.ScriptHash(), service, 9000, randomBytes(util.Uint160Size))
	c := e.CommitteeInvoker(h)

	template := randomHash160(t)
	id := predictRouter(t, c, template, clientAcc.ScriptHash(), 9000, []byte{}, 0)
	c.Invoke(t, stackitem.Make(id), "createRouter", template, clientAcc.ScriptHash(), int64(9000), []byte{}, int64(0))

	accrue(t, c, id, 4_0000_0000)
	c.WithSigners(stranger).InvokeFail(t, "caller is not the client", "withdraw", id)

	c.WithSigners(clientAcc).Invoke(t, stackitem.Null{}, "withdraw", id)

	accrue(t, c, id, 4_0000_0000)
	c.WithSigners(operatorAcc).Invoke(t, stackitem.Null{}, "withdraw", id)
}

func TestFeeRouter_AdminAccess(t *testing.T) {
	c, _ := newFeeRouterInvoker(t, 9000)

	stranger := c.WithSigners(c.NewAccount(t))
	addr := randomHash160(t)

	stranger.InvokeFail(t, "caller is not the owner", "setDefaultClientBasisPoints", int64(8000))
	stranger.InvokeFail(t, "caller is not the owner", "setReferenceRouter", addr)
	stranger.InvokeFail(t, "caller is not the owner", "setGateway", addr)
	stranger.InvokeFail(t, "caller is not the owner", "setRegistration", addr)
	stranger.InvokeFail(t, "caller is not the owner", "setOperator", addr)
	stranger.InvokeFail(t, "caller is not the owner", "transferOwnership", addr)

	c.InvokeFail(t, "invalid default client basis points", "setDefaultClientBasisPoints", int64(10_000))

	c.Invoke(t, stackitem.Null{}, "setGateway", addr)
	c.Invoke(t, stackitem.Make(addr.BytesBE()), "gateway")
	c.Invoke(t, stackitem.Null{}, "setRegistration", addr)
	c.Invoke(t, stackitem.Make(addr.BytesBE()), "registration")
}

func TestFeeRouter_TransferOwnership(t *testing.T) {
	c, _ := newFeeRouterInvoker(t, 9000)

	newOwner := c.NewAccount(t)
	c.Invoke(t, stackitem.Null{}, "transferOwnership", newOwner.ScriptHash())
	c.Invoke(t, stackitem.Make(newOwner.ScriptHash().BytesBE()), "owner")

	// The previous owner lost the role.
	c.InvokeFail(t, "caller is not the owner", "setDefaultClientBasisPoints", int64(8000))
	c.WithSigners(newOwner).Invoke(t, stackitem.Null{}, "setDefaultClientBasisPoints", int64(8000))
}

// accrue sends amount of GAS from the validator to the factory crediting the
// given router.
func accrue(t *testing.T, c *neotest.ContractInvoker, id []byte, amount int64) {
	gasInv := gasInvoker(t, c.Executor)
	gasInv.Invoke(t, stackitem.NewBool(true), "transfer",
		c.Executor.Validator.ScriptHash(), c.Hash, amount, id)
}

func mustBytes(t *testing.T, item stackitem.Item) []byte {
	b, err := item.TryBytes()
	require.NoError(t, err)
	return b
}

func mustInt(t *testing.T, item stackitem.Item) int64 {
	i, err := item.TryInteger()
	require.NoError(t, err)
	return i.Int64()
}
