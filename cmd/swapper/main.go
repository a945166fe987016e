// ====================================
// File: cmd/swapper/main.go
// ====================================
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/archangel0x01/sol-token-swapper/internal/cli"
	"github.com/archangel0x01/sol-token-swapper/internal/config"
	"github.com/archangel0x01/sol-token-swapper/internal/jupiter"
	"github.com/archangel0x01/sol-token-swapper/internal/logger"
	"github.com/archangel0x01/sol-token-swapper/internal/trade"
	"github.com/archangel0x01/sol-token-swapper/internal/wallet"
	solclient "github.com/archangel0x01/sol-token-swapper/pkg/blockchain/solana"
)

const configPath = "configs/config.yaml"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logCfg := logger.DefaultConfig()
	logCfg.Development = cfg.DebugLogging
	log, err := logger.New(logCfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	printer := cli.NewPrinter(os.Stdout)

	// Ошибки кошелька — единственный фатальный путь: без ключа
	// продолжать нечего.
	w, err := wallet.Load(cfg.WalletFile)
	if err != nil {
		printer.Failf("Error loading wallet: %v", err)
		log.Error("Wallet loading failed", zap.Error(err))
		os.Exit(1)
	}
	printer.Infof("Wallet loaded. Public key: %s", w)

	prompter := cli.NewPrompter(os.Stdin, printer)
	input, err := prompter.ReadTradeInput(cfg.DefaultSlippageBps)
	if err != nil {
		var verr *cli.ValidationError
		if errors.As(err, &verr) {
			printer.Failf("%v", verr)
		} else {
			printer.Failf("Failed to read input: %v", err)
		}
		return
	}

	rpcClient := solclient.NewClient(cfg.RPCURL, uint(cfg.SendRetries), log.WithComponent("solana-client"))
	if err := rpcClient.HealthCheck(ctx); err != nil {
		printer.Warnf("RPC endpoint is not responding, continuing anyway")
	}

	jup := jupiter.NewClient(cfg.QuoteURL, cfg.SwapURL,
		time.Duration(cfg.HTTPTimeoutSec)*time.Second, log.WithComponent("jupiter"))
	service := trade.NewService(jup, rpcClient, w, printer, log)

	service.Run(ctx, input.TokenMint, input.SolAmount, input.SlippageBps)
}
