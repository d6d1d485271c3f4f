// Package deploy provides StakeGate contract deployment procedure.
package deploy

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/actor"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/management"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/manifest"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/nef"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/vmstate"
	"github.com/nspcc-dev/neo-go/pkg/wallet"
	"github.com/nspcc-dev/stakegate-contract/rpc/feerouter"
	"go.uber.org/zap"
)

// Blockchain groups services provided by particular Neo blockchain network
// that are required for StakeGate deployment.
type Blockchain interface {
	// RPCActor groups functions needed to compose and send transactions to
	// the blockchain.
	actor.RPCActor

	// GetContractStateByHash returns network state of the smart contract by
	// its address. GetContractStateByHash returns error with 'Unknown
	// contract' substring if requested contract is missing.
	GetContractStateByHash(util.Uint160) (*state.Contract, error)
}

// ContractPrm groups deployment parameters of a single compiled contract.
type ContractPrm struct {
	NEF      nef.File
	Manifest manifest.Manifest
}

// Prm groups all parameters of the StakeGate deployment procedure.
type Prm struct {
	// Writes progress into the log.
	Logger *zap.Logger

	// Particular Neo blockchain instance to deploy to.
	Blockchain Blockchain

	// Local process account used for transaction signing (must be unlocked).
	// It becomes the owner of both contracts.
	LocalAccount *wallet.Account

	FeeRouter ContractPrm
	Gateway   ContractPrm

	// Delegated operator of both contracts. Zero value leaves the operator
	// role unset.
	Operator util.Uint160

	// Service recipient of residual reward shares.
	Service util.Uint160

	// Client share applied to routers created with the zero sentinel,
	// must be below 10000.
	DefaultClientBips int64

	// Reference router implementation recorded in the factory. Zero value
	// leaves it unset until SetReferenceRouter is invoked.
	ReferenceRouter util.Uint160

	// Validator registration contract. Zero value leaves it unset until
	// SetRegistration is invoked, settlement is disabled meanwhile.
	Registration util.Uint160

	// Waiting period (ms) after which depositors may reclaim escrowed
	// value without operator action. Zero keeps the contract default.
	RefundDelayMillis int64
}

// Info carries the addresses of the deployed contracts.
type Info struct {
	FeeRouter util.Uint160
	Gateway   util.Uint160
}

// Deploy initializes the StakeGate contract set on the given blockchain:
// the fee router factory first, then the deposit gateway pointing at it,
// and finally the back reference from the factory to the gateway. Deploy
// is idempotent: contracts already present on the chain are left as they
// are. The procedure fails permanently on the first unexpected situation,
// in this case any deployed leftovers are reused on the next run.
func Deploy(ctx context.Context, prm Prm) (Info, error) {
	var res Info

	if prm.Logger == nil {
		return res, errors.New("missing logger")
	}
	if prm.Blockchain == nil {
		return res, errors.New("missing blockchain client")
	}
	if prm.LocalAccount == nil {
		return res, errors.New("missing local account")
	}
	if prm.Service.Equals(util.Uint160{}) {
		return res, errors.New("missing service account")
	}
	if prm.DefaultClientBips < 0 || prm.DefaultClientBips >= 10_000 {
		return res, errors.New("default client basis points out of range")
	}

	a, err := actor.NewSimple(prm.Blockchain, prm.LocalAccount)
	if err != nil {
		return res, fmt.Errorf("init transaction sender: %w", err)
	}

	owner := prm.LocalAccount.ScriptHash()

	res.FeeRouter = state.CreateContractHash(owner, prm.FeeRouter.NEF.Checksum, prm.FeeRouter.Manifest.Name)
	res.Gateway = state.CreateContractHash(owner, prm.Gateway.NEF.Checksum, prm.Gateway.Manifest.Name)

	err = deployContract(ctx, prm.Logger, prm.Blockchain, a, "fee router factory", res.FeeRouter,
		prm.FeeRouter, []any{
			owner,
			optionalAccount(prm.Operator),
			prm.Service,
			prm.DefaultClientBips,
			optionalAccount(prm.ReferenceRouter),
		})
	if err != nil {
		return res, err
	}

	err = deployContract(ctx, prm.Logger, prm.Blockchain, a, "gateway", res.Gateway,
		prm.Gateway, []any{
			owner,
			optionalAccount(prm.Operator),
			res.FeeRouter,
			optionalAccount(prm.Registration),
			prm.RefundDelayMillis,
		})
	if err != nil {
		return res, err
	}

	factory := feerouter.New(a, res.FeeRouter)

	current, err := feerouter.NewReader(a, res.FeeRouter).Gateway()
	if err == nil && current.Equals(res.Gateway) {
		prm.Logger.Info("factory already references the gateway", zap.Stringer("address", res.Gateway))
		return res, nil
	}

	txHash, vub, err := factory.SetGateway(res.Gateway)
	if err != nil {
		return res, fmt.Errorf("set gateway reference in the factory: %w", err)
	}
	if err := waitHalt(a, txHash, vub); err != nil {
		return res, fmt.Errorf("set gateway reference in the factory: %w", err)
	}

	prm.Logger.Info("StakeGate contracts successfully deployed",
		zap.Stringer("fee router factory", res.FeeRouter), zap.Stringer("gateway", res.Gateway))

	return res, nil
}

func deployContract(ctx context.Context, l *zap.Logger, b Blockchain, a *actor.Actor, name string, addr util.Uint160, prm ContractPrm, args []any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	_, err := b.GetContractStateByHash(addr)
	if err == nil {
		l.Info("contract is already deployed, skip", zap.String("contract", name), zap.Stringer("address", addr))
		return nil
	}
	if !strings.Contains(err.Error(), "Unknown contract") {
		return fmt.Errorf("read %s contract state: %w", name, err)
	}

	l.Info("deploying contract...", zap.String("contract", name), zap.Stringer("address", addr))

	txHash, vub, err := management.New(a).Deploy(&prm.NEF, &prm.Manifest, args)
	if err != nil {
		return fmt.Errorf("deploy %s contract: %w", name, err)
	}
	if err := waitHalt(a, txHash, vub); err != nil {
		return fmt.Errorf("deploy %s contract: %w", name, err)
	}

	l.Info("contract successfully deployed", zap.String("contract", name), zap.Stringer("address", addr))
	return nil
}

func waitHalt(a *actor.Actor, txHash util.Uint256, vub uint32) error {
	aer, err := a.Wait(txHash, vub, nil)
	if err != nil {
		return fmt.Errorf("wait for transaction %s: %w", txHash.StringLE(), err)
	}
	if aer.VMState != vmstate.Halt {
		return fmt.Errorf("transaction %s failed: %s", txHash.StringLE(), aer.FaultException)
	}
	return nil
}

// optionalAccount maps the zero address to an unset deployment argument.
func optionalAccount(acc util.Uint160) any {
	if acc.Equals(util.Uint160{}) {
		return []byte{}
	}
	return acc
}

// timestampNow is split out for record reproducibility in tests.
var timestampNow = func() time.Time { return time.Now().UTC() }
