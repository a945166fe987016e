// internal/trade/service.go
package trade

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"

	"github.com/archangel0x01/sol-token-swapper/internal/jupiter"
	"github.com/archangel0x01/sol-token-swapper/internal/logger"
	"github.com/archangel0x01/sol-token-swapper/internal/wallet"
)

// Submitter отправляет подписанную транзакцию и однократно проверяет её
// подтверждение.
type Submitter interface {
	SendTransaction(ctx context.Context, tx *solana.Transaction) (solana.Signature, error)
	ConfirmTransaction(ctx context.Context, signature solana.Signature) (bool, error)
}

// Console — пользовательский вывод покупки (реализуется cli.Printer).
type Console interface {
	Infof(format string, args ...interface{})
	Successf(format string, args ...interface{})
	Failf(format string, args ...interface{})
	Warnf(format string, args ...interface{})
}

// Service выполняет один проход конвейера покупки:
// котировка -> сборка транзакции -> подпись -> отправка -> подтверждение.
// Стадии строго последовательны, первая ошибка прерывает весь запуск.
type Service struct {
	jupiter   *jupiter.Client
	submitter Submitter
	wallet    *wallet.Wallet
	console   Console
	logger    *logger.Logger
}

func NewService(jup *jupiter.Client, submitter Submitter, w *wallet.Wallet, console Console, log *logger.Logger) *Service {
	return &Service{
		jupiter:   jup,
		submitter: submitter,
		wallet:    w,
		console:   console,
		logger:    log,
	}
}

// Run выполняет покупку и печатает итоговую строку. Возвращает признак
// успеха; процесс завершается нормально в обоих случаях.
func (s *Service) Run(ctx context.Context, tokenMint string, solAmount float64, slippageBps int) bool {
	// Все записи одного запуска связаны общим correlation_id.
	opLogger := s.logger.WithOperation("token-purchase")
	opLogger.Info("Purchase started",
		zap.String("token_mint", tokenMint),
		zap.Float64("sol_amount", solAmount),
		zap.Int("slippage_bps", slippageBps))

	if err := s.BuyToken(ctx, tokenMint, solAmount, slippageBps); err != nil {
		opLogger.Error("Purchase failed", zap.Error(err))
		s.console.Failf("%v", err)
		s.console.Failf("Token purchase failed!")
		return false
	}
	opLogger.Info("Purchase completed")
	s.console.Successf("Token purchase completed successfully!")
	return true
}

// BuyToken покупает токен за SOL через агрегатор.
func (s *Service) BuyToken(ctx context.Context, tokenMint string, solAmount float64, slippageBps int) error {
	lamports, err := SolToLamports(solAmount)
	if err != nil {
		return err
	}

	s.console.Infof("Buying %v SOL worth of %s", solAmount, tokenMint)

	// 1. Котировка
	s.console.Infof("Getting quote for %v SOL to %s...", solAmount, tokenMint)
	quote, err := s.jupiter.GetQuote(ctx, solana.SolMint.String(), tokenMint, lamports, slippageBps)
	if err != nil {
		return fmt.Errorf("failed to get quote: %w", err)
	}

	inLamports, err := quote.InAmountLamports()
	if err != nil {
		return fmt.Errorf("failed to parse quote inAmount: %w", err)
	}
	s.console.Infof("Quote received:")
	s.console.Infof("  - Input: %v SOL", LamportsToSol(inLamports))
	s.console.Infof("  - Output: %s tokens", quote.OutAmount)
	s.console.Infof("  - Price Impact: %s%%", quote.PriceImpact())

	// 2. Сборка транзакции
	s.console.Infof("Building swap transaction...")
	swapTx, err := s.jupiter.GetSwapTransaction(ctx, quote, s.wallet.PublicKey)
	if err != nil {
		return fmt.Errorf("failed to get swap transaction: %w", err)
	}

	// 3. Подпись
	tx, err := SignSwapTransaction(swapTx, s.wallet)
	if err != nil {
		return err
	}

	// 4. Отправка и подтверждение
	s.console.Infof("Sending transaction...")
	signature, err := s.submitter.SendTransaction(ctx, tx)
	if err != nil {
		return err
	}

	s.console.Infof("Transaction sent successfully!")
	s.console.Infof("Signature: %s", signature)
	s.console.Infof("View on Solscan: https://solscan.io/tx/%s", signature)
	s.logger.WithTransaction(signature.String()).Info("Transaction sent")

	s.console.Infof("Waiting for confirmation...")
	confirmed, err := s.submitter.ConfirmTransaction(ctx, signature)
	if err != nil {
		return err
	}
	if !confirmed {
		return fmt.Errorf("transaction %s failed to confirm", signature)
	}

	s.console.Infof("Transaction confirmed!")
	return nil
}
