// =============================
// File: internal/cli/prompt.go
// =============================
package cli

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// ValidationError — пользователь ввел значение, с которым нельзя
// продолжать (пустой минт, неположительная или нечисловая сумма).
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// TradeInput — проверенный пользовательский ввод.
type TradeInput struct {
	TokenMint   string
	SolAmount   float64
	SlippageBps int
}

// Prompter задает три вопроса: минт токена, сумма SOL, проскальзывание.
type Prompter struct {
	in  *bufio.Reader
	out *Printer
}

func NewPrompter(in io.Reader, out *Printer) *Prompter {
	return &Prompter{in: bufio.NewReader(in), out: out}
}

// ReadTradeInput ведет диалог и возвращает проверенный ввод. Ошибка
// означает, что запуск нужно прервать до любых сетевых вызовов.
func (p *Prompter) ReadTradeInput(defaultSlippageBps int) (*TradeInput, error) {
	p.out.Promptf("Enter the mint address of the token you want to buy: ")
	mint, err := p.readLine()
	if err != nil {
		return nil, err
	}
	if mint == "" {
		return nil, &ValidationError{Field: "token mint", Reason: "must not be empty"}
	}

	p.out.Promptf("Enter the amount of SOL to swap: ")
	amountStr, err := p.readLine()
	if err != nil {
		return nil, err
	}
	amount, err := ParseSolAmount(amountStr)
	if err != nil {
		return nil, err
	}

	p.out.Promptf("Enter slippage tolerance in %% (default 1%%): ")
	slippageStr, err := p.readLine()
	if err != nil {
		return nil, err
	}
	bps, warned := ParseSlippageBps(slippageStr, defaultSlippageBps)
	if warned {
		p.out.Warnf("Invalid slippage, using default 1%%")
	}

	return &TradeInput{TokenMint: mint, SolAmount: amount, SlippageBps: bps}, nil
}

func (p *Prompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil && err != io.EOF {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// ParseSolAmount разбирает сумму SOL. Нечисловые и неположительные
// значения отклоняются до любых сетевых вызовов.
func ParseSolAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	amount, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, &ValidationError{Field: "amount", Reason: "must be a number"}
	}
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return 0, &ValidationError{Field: "amount", Reason: "must be positive"}
	}
	return amount, nil
}

// ParseSlippageBps переводит проценты в базисные пункты. Пустой ввод —
// молча значение по умолчанию; нечисловой — значение по умолчанию с
// предупреждением (второй результат true).
func ParseSlippageBps(s string, defaultBps int) (int, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return defaultBps, false
	}
	pct, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return defaultBps, true
	}
	return int(math.Round(pct * 100)), false
}
