// =============================
// File: internal/jupiter/types.go
// =============================
package jupiter

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Quote — ответ quote-эндпоинта. Для отображения разбираются только
// inAmount, outAmount и priceImpactPct; всё остальное (routePlan и
// прочие поля маршрута) уходит в swap-запрос дословно через raw.
type Quote struct {
	InputMint      string          `json:"inputMint"`
	OutputMint     string          `json:"outputMint"`
	InAmount       string          `json:"inAmount"`
	OutAmount      string          `json:"outAmount"`
	SlippageBps    int             `json:"slippageBps"`
	PriceImpactPct json.RawMessage `json:"priceImpactPct"`
	RoutePlan      json.RawMessage `json:"routePlan"`

	raw json.RawMessage
}

func (q *Quote) UnmarshalJSON(data []byte) error {
	type alias Quote
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}
	*q = Quote(a)
	q.raw = append(json.RawMessage(nil), data...)
	return nil
}

// MarshalJSON возвращает исходное тело ответа без изменений, чтобы
// swap-запрос получил котировку ровно в том виде, как её отдал агрегатор.
func (q Quote) MarshalJSON() ([]byte, error) {
	if q.raw == nil {
		type alias Quote
		return json.Marshal(alias(q))
	}
	return q.raw, nil
}

// Validate проверяет наличие обязательных полей котировки.
func (q *Quote) Validate() error {
	if q.InAmount == "" {
		return fmt.Errorf("quote response missing inAmount")
	}
	if q.OutAmount == "" {
		return fmt.Errorf("quote response missing outAmount")
	}
	return nil
}

// InAmountLamports возвращает входную сумму котировки в лампортах.
func (q *Quote) InAmountLamports() (uint64, error) {
	return strconv.ParseUint(q.InAmount, 10, 64)
}

// PriceImpact возвращает priceImpactPct как строку для отображения,
// независимо от того, пришло поле числом или строкой. Если поля нет —
// "N/A".
func (q *Quote) PriceImpact() string {
	if len(q.PriceImpactPct) == 0 {
		return "N/A"
	}
	return strings.Trim(string(q.PriceImpactPct), `"`)
}

// swapRequest — тело POST-запроса swap-эндпоинта. Настройки исполнения
// фиксированы: обернуть/развернуть SOL, динамический compute budget и
// автоматический priority fee.
type swapRequest struct {
	QuoteResponse             json.RawMessage `json:"quoteResponse"`
	UserPublicKey             string          `json:"userPublicKey"`
	WrapAndUnwrapSol          bool            `json:"wrapAndUnwrapSol"`
	DynamicComputeUnitLimit   bool            `json:"dynamicComputeUnitLimit"`
	PrioritizationFeeLamports string          `json:"prioritizationFeeLamports"`
}

// SwapResponse — ответ swap-эндпоинта: сериализованная неподписанная
// транзакция в base64.
type SwapResponse struct {
	SwapTransaction string `json:"swapTransaction"`
}
