// Command stakegate-deploy deploys the StakeGate contract set to a Neo
// blockchain and records the resulting addresses in a deployment file.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/nspcc-dev/neo-go/pkg/encoding/address"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/manifest"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/nef"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/wallet"
	"github.com/nspcc-dev/stakegate-contract/deploy"
	"go.uber.org/zap"
)

func main() {
	neoRPCEndpoint := flag.String("rpc", "", "Network address of the Neo RPC server")
	walletPath := flag.String("wallet", "", "Path to the deployer wallet (NEP-6)")
	chainName := flag.String("chain-name", "", "Label of the blockchain environment (e.g. 'testnet')")
	serviceAddr := flag.String("service", "", "Address of the service reward recipient")
	operatorAddr := flag.String("operator", "", "Address of the delegated operator (optional)")
	registrationAddr := flag.String("registration", "", "Address of the validator registration contract (optional)")
	referenceAddr := flag.String("reference-router", "", "Address of the reference fee router implementation (optional)")
	defaultBips := flag.Int64("default-bips", 9000, "Default client share in basis points, below 10000")
	refundDelay := flag.Int64("refund-delay", 0, "Refund waiting period in milliseconds, 0 keeps the contract default")
	feeRouterDir := flag.String("feerouter", "", "Path prefix of the compiled fee router contract (<prefix>.nef, <prefix>.manifest.json)")
	gatewayDir := flag.String("gateway", "", "Path prefix of the compiled gateway contract (<prefix>.nef, <prefix>.manifest.json)")
	outPath := flag.String("out", "deployment.json", "Path of the deployment record to write")

	flag.Parse()

	switch {
	case *neoRPCEndpoint == "":
		log.Fatal("missing Neo RPC endpoint")
	case *walletPath == "":
		log.Fatal("missing deployer wallet")
	case *chainName == "":
		log.Fatal("missing blockchain label")
	case *serviceAddr == "":
		log.Fatal("missing service account")
	case *feeRouterDir == "":
		log.Fatal("missing compiled fee router contract")
	case *gatewayDir == "":
		log.Fatal("missing compiled gateway contract")
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal(fmt.Errorf("init logger: %w", err))
	}
	defer logger.Sync() //nolint:errcheck // stderr sync errors are of no interest

	if err := run(logger, *neoRPCEndpoint, *walletPath, *chainName, *serviceAddr, *operatorAddr,
		*registrationAddr, *referenceAddr, *defaultBips, *refundDelay, *feeRouterDir, *gatewayDir, *outPath); err != nil {
		logger.Fatal("deployment failed", zap.Error(err))
	}
}

func run(logger *zap.Logger, endpoint, walletPath, chainName, serviceAddr, operatorAddr, registrationAddr, referenceAddr string,
	defaultBips, refundDelay int64, feeRouterPrefix, gatewayPrefix, outPath string) error {
	ctx := context.Background()

	service, err := address.StringToUint160(serviceAddr)
	if err != nil {
		return fmt.Errorf("decode service account: %w", err)
	}

	operator, err := optionalAddress(operatorAddr)
	if err != nil {
		return fmt.Errorf("decode operator account: %w", err)
	}
	registration, err := optionalAddress(registrationAddr)
	if err != nil {
		return fmt.Errorf("decode registration account: %w", err)
	}
	reference, err := optionalAddress(referenceAddr)
	if err != nil {
		return fmt.Errorf("decode reference router account: %w", err)
	}

	acc, err := unlockedAccount(walletPath)
	if err != nil {
		return err
	}

	feeRouterPrm, err := readContract(feeRouterPrefix)
	if err != nil {
		return fmt.Errorf("read fee router contract: %w", err)
	}
	gatewayPrm, err := readContract(gatewayPrefix)
	if err != nil {
		return fmt.Errorf("read gateway contract: %w", err)
	}

	c, err := rpcclient.New(ctx, endpoint, rpcclient.Options{})
	if err != nil {
		return fmt.Errorf("init Neo RPC client: %w", err)
	}
	defer c.Close()

	if err := c.Init(); err != nil {
		return fmt.Errorf("initial Neo RPC request: %w", err)
	}

	info, err := deploy.Deploy(ctx, deploy.Prm{
		Logger:            logger,
		Blockchain:        c,
		LocalAccount:      acc,
		FeeRouter:         feeRouterPrm,
		Gateway:           gatewayPrm,
		Operator:          operator,
		Service:           service,
		DefaultClientBips: defaultBips,
		ReferenceRouter:   reference,
		Registration:      registration,
		RefundDelayMillis: refundDelay,
	})
	if err != nil {
		return err
	}

	version, err := c.GetVersion()
	if err != nil {
		return fmt.Errorf("read network version: %w", err)
	}

	record := deploy.NewRecord(uint32(version.Protocol.Network), chainName, info)
	if err := deploy.WriteRecord(outPath, record); err != nil {
		return err
	}

	logger.Info("deployment record written", zap.String("path", outPath))
	return nil
}

func optionalAddress(s string) (util.Uint160, error) {
	if s == "" {
		return util.Uint160{}, nil
	}
	return address.StringToUint160(s)
}

// unlockedAccount opens the wallet and decrypts its default account with
// the passphrase from the STAKEGATE_WALLET_PASSWORD environment variable.
func unlockedAccount(walletPath string) (*wallet.Account, error) {
	w, err := wallet.NewWalletFromFile(walletPath)
	if err != nil {
		return nil, fmt.Errorf("open wallet: %w", err)
	}

	acc := w.GetAccount(w.GetChangeAddress())
	if acc == nil {
		return nil, fmt.Errorf("no usable account in wallet '%s'", walletPath)
	}

	pass, ok := os.LookupEnv("STAKEGATE_WALLET_PASSWORD")
	if !ok {
		return nil, fmt.Errorf("missing STAKEGATE_WALLET_PASSWORD environment variable")
	}

	if err := acc.Decrypt(pass, w.Scrypt); err != nil {
		return nil, fmt.Errorf("unlock account: %w", err)
	}
	return acc, nil
}

func readContract(prefix string) (deploy.ContractPrm, error) {
	var res deploy.ContractPrm

	rawNEF, err := os.ReadFile(prefix + ".nef")
	if err != nil {
		return res, fmt.Errorf("read NEF: %w", err)
	}
	res.NEF, err = nef.FileFromBytes(rawNEF)
	if err != nil {
		return res, fmt.Errorf("decode NEF: %w", err)
	}

	rawManifest, err := os.ReadFile(prefix + ".manifest.json")
	if err != nil {
		return res, fmt.Errorf("read manifest: %w", err)
	}

	var m manifest.Manifest
	if err := json.Unmarshal(rawManifest, &m); err != nil {
		return res, fmt.Errorf("decode manifest: %w", err)
	}
	res.Manifest = m

	return res, nil
}
