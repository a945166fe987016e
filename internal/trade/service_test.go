// internal/trade/service_test.go
package trade_test

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/archangel0x01/sol-token-swapper/internal/cli"
	"github.com/archangel0x01/sol-token-swapper/internal/jupiter"
	"github.com/archangel0x01/sol-token-swapper/internal/logger"
	"github.com/archangel0x01/sol-token-swapper/internal/trade"
	"github.com/archangel0x01/sol-token-swapper/internal/wallet"
)

// fakeSubmitter подменяет RPC-клиент в тестах конвейера.
type fakeSubmitter struct {
	sendErr      error
	confirmOK    bool
	confirmErr   error
	sendCalls    int
	confirmCalls int
	signature    solana.Signature
}

func (f *fakeSubmitter) SendTransaction(_ context.Context, _ *solana.Transaction) (solana.Signature, error) {
	f.sendCalls++
	if f.sendErr != nil {
		return solana.Signature{}, f.sendErr
	}
	return f.signature, nil
}

func (f *fakeSubmitter) ConfirmTransaction(_ context.Context, _ solana.Signature) (bool, error) {
	f.confirmCalls++
	return f.confirmOK, f.confirmErr
}

type jupiterStub struct {
	srv        *httptest.Server
	quoteCalls int
	swapCalls  int
}

// newJupiterStub поднимает httptest-сервер, отвечающий на оба эндпоинта
// агрегатора. swap возвращает валидную неподписанную транзакцию для
// указанного fee payer.
func newJupiterStub(t *testing.T, payer solana.PublicKey, quoteStatus int) *jupiterStub {
	t.Helper()
	stub := &jupiterStub{}

	tx, err := solana.NewTransaction(
		[]solana.Instruction{solana.NewInstruction(solana.MemoProgramID, nil, nil)},
		solana.Hash{},
		solana.TransactionPayer(payer),
	)
	require.NoError(t, err)
	raw, err := tx.MarshalBinary()
	require.NoError(t, err)
	swapTx := base64.StdEncoding.EncodeToString(raw)

	mux := http.NewServeMux()
	mux.HandleFunc("/quote", func(w http.ResponseWriter, r *http.Request) {
		stub.quoteCalls++
		if quoteStatus != http.StatusOK {
			w.WriteHeader(quoteStatus)
			_, _ = w.Write([]byte(`{"error": "no route"}`))
			return
		}
		_, _ = w.Write([]byte(`{
			"inputMint": "So11111111111111111111111111111111111111112",
			"outputMint": "TokenMintAAA111",
			"inAmount": "500000000",
			"outAmount": "1000000",
			"slippageBps": 100,
			"priceImpactPct": "0.02",
			"routePlan": []
		}`))
	})
	mux.HandleFunc("/swap", func(w http.ResponseWriter, r *http.Request) {
		stub.swapCalls++
		_, _ = w.Write([]byte(fmt.Sprintf(`{"swapTransaction": %q}`, swapTx)))
	})

	stub.srv = httptest.NewServer(mux)
	t.Cleanup(stub.srv.Close)
	return stub
}

func TestRunCompletesPurchase(t *testing.T) {
	account := solana.NewWallet()
	w, err := wallet.New(account.PrivateKey)
	require.NoError(t, err)

	stub := newJupiterStub(t, w.PublicKey, http.StatusOK)
	submitter := &fakeSubmitter{confirmOK: true, signature: solana.Signature{1, 2, 3}}

	var out bytes.Buffer
	jup := jupiter.NewClient(stub.srv.URL+"/quote", stub.srv.URL+"/swap", 5*time.Second, zap.NewNop())
	service := trade.NewService(jup, submitter, w, cli.NewPrinter(&out), logger.NewNop())

	ok := service.Run(context.Background(), "TokenMintAAA111", 0.5, 100)
	require.True(t, ok)

	transcript := out.String()
	assert.Contains(t, transcript, "Buying 0.5 SOL worth of TokenMintAAA111")
	assert.Contains(t, transcript, "Input: 0.5 SOL")
	assert.Contains(t, transcript, "Output: 1000000 tokens")
	assert.Contains(t, transcript, "Price Impact: 0.02%")
	assert.Contains(t, transcript, "Transaction sent successfully!")
	assert.Contains(t, transcript, "Waiting for confirmation...")
	assert.Contains(t, transcript, "Transaction confirmed!")
	assert.Contains(t, transcript, "Token purchase completed successfully!")

	assert.Equal(t, 1, stub.quoteCalls)
	assert.Equal(t, 1, stub.swapCalls)
	assert.Equal(t, 1, submitter.sendCalls)
	assert.Equal(t, 1, submitter.confirmCalls)
}

func TestRunHaltsWhenQuoteFails(t *testing.T) {
	account := solana.NewWallet()
	w, err := wallet.New(account.PrivateKey)
	require.NoError(t, err)

	stub := newJupiterStub(t, w.PublicKey, http.StatusInternalServerError)
	submitter := &fakeSubmitter{confirmOK: true}

	var out bytes.Buffer
	jup := jupiter.NewClient(stub.srv.URL+"/quote", stub.srv.URL+"/swap", 5*time.Second, zap.NewNop())
	service := trade.NewService(jup, submitter, w, cli.NewPrinter(&out), logger.NewNop())

	ok := service.Run(context.Background(), "TokenMintAAA111", 0.5, 100)
	require.False(t, ok)

	// Конвейер остановился до сборки транзакции и до отправки.
	assert.Equal(t, 1, stub.quoteCalls)
	assert.Equal(t, 0, stub.swapCalls)
	assert.Equal(t, 0, submitter.sendCalls)
	assert.Equal(t, 0, submitter.confirmCalls)
	assert.Contains(t, out.String(), "Token purchase failed!")
}

func TestRunHaltsWhenSendFails(t *testing.T) {
	account := solana.NewWallet()
	w, err := wallet.New(account.PrivateKey)
	require.NoError(t, err)

	stub := newJupiterStub(t, w.PublicKey, http.StatusOK)
	submitter := &fakeSubmitter{sendErr: fmt.Errorf("node returned no signature")}

	var out bytes.Buffer
	jup := jupiter.NewClient(stub.srv.URL+"/quote", stub.srv.URL+"/swap", 5*time.Second, zap.NewNop())
	service := trade.NewService(jup, submitter, w, cli.NewPrinter(&out), logger.NewNop())

	ok := service.Run(context.Background(), "TokenMintAAA111", 0.5, 100)
	require.False(t, ok)

	// Без идентификатора транзакции подтверждение не опрашивается.
	assert.Equal(t, 1, submitter.sendCalls)
	assert.Equal(t, 0, submitter.confirmCalls)
	assert.Contains(t, out.String(), "Token purchase failed!")
}

func TestRunFailsWhenNotConfirmed(t *testing.T) {
	account := solana.NewWallet()
	w, err := wallet.New(account.PrivateKey)
	require.NoError(t, err)

	stub := newJupiterStub(t, w.PublicKey, http.StatusOK)
	submitter := &fakeSubmitter{confirmOK: false}

	var out bytes.Buffer
	jup := jupiter.NewClient(stub.srv.URL+"/quote", stub.srv.URL+"/swap", 5*time.Second, zap.NewNop())
	service := trade.NewService(jup, submitter, w, cli.NewPrinter(&out), logger.NewNop())

	ok := service.Run(context.Background(), "TokenMintAAA111", 0.5, 100)
	require.False(t, ok)

	assert.Equal(t, 1, submitter.confirmCalls)
	assert.Contains(t, out.String(), "Token purchase failed!")
}

func TestRunRejectsNonPositiveAmount(t *testing.T) {
	account := solana.NewWallet()
	w, err := wallet.New(account.PrivateKey)
	require.NoError(t, err)

	stub := newJupiterStub(t, w.PublicKey, http.StatusOK)
	submitter := &fakeSubmitter{confirmOK: true}

	var out bytes.Buffer
	jup := jupiter.NewClient(stub.srv.URL+"/quote", stub.srv.URL+"/swap", 5*time.Second, zap.NewNop())
	service := trade.NewService(jup, submitter, w, cli.NewPrinter(&out), logger.NewNop())

	ok := service.Run(context.Background(), "TokenMintAAA111", -1, 100)
	require.False(t, ok)

	// Никаких сетевых вызовов при невалидной сумме.
	assert.Equal(t, 0, stub.quoteCalls)
	assert.Equal(t, 0, submitter.sendCalls)
}
