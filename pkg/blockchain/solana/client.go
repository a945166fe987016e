// pkg/blockchain/solana/client.go
package solana

import (
	"context"
	"fmt"

	"github.com/cenkalti/backoff/v4"
	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"go.uber.org/zap"
)

// Client — тонкий адаптер над solana-go RPC-клиентом: отправка подписанной
// транзакции и однократная проверка подтверждения.
type Client struct {
	rpc        *rpc.Client
	maxRetries uint
	logger     *zap.Logger
}

// SubmissionError — нода отклонила транзакцию, не вернула подпись или
// транзакция не подтвердилась.
type SubmissionError struct {
	Op  string
	Err error
}

func (e *SubmissionError) Error() string {
	return fmt.Sprintf("transaction %s failed: %v", e.Op, e.Err)
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}

// NewClient создаёт клиент. maxRetries — количество повторов отправки на
// стороне ноды (передается в sendTransaction, сами мы не ретраим).
func NewClient(rpcURL string, maxRetries uint, logger *zap.Logger) *Client {
	return &Client{
		rpc:        rpc.New(rpcURL),
		maxRetries: maxRetries,
		logger:     logger,
	}
}

// HealthCheck проверяет доступность RPC при старте. Единственное место с
// ретраями на нашей стороне: торговые вызовы дальше по конвейеру
// выполняются строго по одному разу.
func (c *Client) HealthCheck(ctx context.Context) error {
	operation := func() error {
		_, err := c.rpc.GetLatestBlockhash(ctx, rpc.CommitmentFinalized)
		return err
	}
	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewExponentialBackOff(), 3), ctx)
	if err := backoff.Retry(operation, policy); err != nil {
		c.logger.Warn("RPC health check failed", zap.Error(err))
		return err
	}
	return nil
}

// SendTransaction отправляет подписанную транзакцию: preflight-симуляция
// включена, commitment "confirmed", повторы отправки делегированы ноде.
func (c *Client) SendTransaction(ctx context.Context, tx *solana.Transaction) (solana.Signature, error) {
	maxRetries := c.maxRetries
	sig, err := c.rpc.SendTransactionWithOpts(ctx, tx, rpc.TransactionOpts{
		SkipPreflight:       false,
		PreflightCommitment: rpc.CommitmentConfirmed,
		MaxRetries:          &maxRetries,
	})
	if err != nil {
		c.logger.Error("SendTransaction error", zap.Error(err))
		return solana.Signature{}, &SubmissionError{Op: "send", Err: err}
	}
	if sig.IsZero() {
		return solana.Signature{}, &SubmissionError{Op: "send", Err: fmt.Errorf("node returned no signature")}
	}
	return sig, nil
}

// ConfirmTransaction делает один опрос статуса на уровне "confirmed".
// Подтверждение (confirmed или finalized, без ошибки исполнения) — true;
// всё остальное — false. Цикла опроса нет.
func (c *Client) ConfirmTransaction(ctx context.Context, signature solana.Signature) (bool, error) {
	statuses, err := c.rpc.GetSignatureStatuses(ctx, false, signature)
	if err != nil {
		c.logger.Error("GetSignatureStatuses error", zap.Error(err))
		return false, &SubmissionError{Op: "confirm", Err: err}
	}
	if statuses == nil || len(statuses.Value) == 0 || statuses.Value[0] == nil {
		return false, nil
	}

	status := statuses.Value[0]
	if status.Err != nil {
		return false, &SubmissionError{Op: "confirm", Err: fmt.Errorf("execution error: %v", status.Err)}
	}

	switch status.ConfirmationStatus {
	case rpc.ConfirmationStatusConfirmed, rpc.ConfirmationStatusFinalized:
		return true, nil
	default:
		return false, nil
	}
}
