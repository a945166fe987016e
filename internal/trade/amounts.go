// internal/trade/amounts.go
package trade

import (
	"fmt"
	"math"
)

// LamportsPerSOL — количество лампортов в одном SOL.
const LamportsPerSOL = 1_000_000_000

// SolToLamports переводит сумму в SOL в лампорты с округлением до
// ближайшего целого.
func SolToLamports(amount float64) (uint64, error) {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return 0, fmt.Errorf("amount must be positive, got %v", amount)
	}
	lamports := math.Round(amount * LamportsPerSOL)
	if lamports > math.MaxUint64 {
		return 0, fmt.Errorf("amount %v overflows lamports", amount)
	}
	return uint64(lamports), nil
}

// LamportsToSol переводит лампорты обратно в SOL для отображения.
func LamportsToSol(lamports uint64) float64 {
	return float64(lamports) / LamportsPerSOL
}
