// =============================
// File: internal/jupiter/client.go
// =============================
package jupiter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/gagliardetto/solana-go"
	"go.uber.org/zap"
)

// Client — клиент quote/swap эндпоинтов Jupiter v6. Один http.Client
// переиспользуется для обоих последовательных вызовов; ретраев нет —
// каждая стадия выполняется ровно один раз.
type Client struct {
	quoteURL string
	swapURL  string
	http     *http.Client
	logger   *zap.Logger
}

func NewClient(quoteURL, swapURL string, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		quoteURL: quoteURL,
		swapURL:  swapURL,
		http:     &http.Client{Timeout: timeout},
		logger:   logger,
	}
}

// GetQuote запрашивает котировку обмена. amount — во входных минимальных
// единицах (лампорты для SOL), slippageBps — допуск в базисных пунктах.
func (c *Client) GetQuote(ctx context.Context, inputMint, outputMint string, amount uint64, slippageBps int) (*Quote, error) {
	q := url.Values{}
	q.Set("inputMint", inputMint)
	q.Set("outputMint", outputMint)
	q.Set("amount", fmt.Sprintf("%d", amount))
	q.Set("slippageBps", fmt.Sprintf("%d", slippageBps))
	u := c.quoteURL + "?" + q.Encode()

	c.logger.Info("Requesting quote",
		zap.String("input_mint", inputMint),
		zap.String("output_mint", outputMint),
		zap.Uint64("amount", amount),
		zap.Int("slippage_bps", slippageBps))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build quote request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &NetworkError{Endpoint: "quote", Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Endpoint: "quote", Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, &RemoteServiceError{Endpoint: "quote", StatusCode: resp.StatusCode, Body: string(body)}
	}

	var quote Quote
	if err := json.Unmarshal(body, &quote); err != nil {
		return nil, &RemoteServiceError{Endpoint: "quote", StatusCode: resp.StatusCode, Body: string(body)}
	}
	if err := quote.Validate(); err != nil {
		c.logger.Warn("Quote response failed validation", zap.Error(err))
		return nil, &RemoteServiceError{Endpoint: "quote", StatusCode: resp.StatusCode, Body: string(body)}
	}

	return &quote, nil
}

// GetSwapTransaction запрашивает готовую к подписи транзакцию для
// полученной котировки. Котировка передается в тело запроса дословно.
func (c *Client) GetSwapTransaction(ctx context.Context, quote *Quote, userPublicKey solana.PublicKey) (string, error) {
	quoteRaw, err := json.Marshal(quote)
	if err != nil {
		return "", fmt.Errorf("failed to marshal quote: %w", err)
	}

	payload := swapRequest{
		QuoteResponse:             quoteRaw,
		UserPublicKey:             userPublicKey.String(),
		WrapAndUnwrapSol:          true,
		DynamicComputeUnitLimit:   true,
		PrioritizationFeeLamports: "auto",
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal swap request: %w", err)
	}

	c.logger.Info("Requesting swap transaction",
		zap.String("user_public_key", userPublicKey.String()))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.swapURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build swap request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", &NetworkError{Endpoint: "swap", Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", &NetworkError{Endpoint: "swap", Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		return "", &RemoteServiceError{Endpoint: "swap", StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	var sr SwapResponse
	if err := json.Unmarshal(respBody, &sr); err != nil || sr.SwapTransaction == "" {
		return "", &RemoteServiceError{Endpoint: "swap", StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	return sr.SwapTransaction, nil
}
