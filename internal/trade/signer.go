// internal/trade/signer.go
package trade

import (
	"encoding/base64"
	"fmt"

	bin "github.com/gagliardetto/binary"
	"github.com/gagliardetto/solana-go"

	"github.com/archangel0x01/sol-token-swapper/internal/wallet"
)

// SignSwapTransaction декодирует base64-транзакцию агрегатора и
// подписывает её ключом кошелька. Агрегатор обязан собрать транзакцию
// ровно под одного подписанта — наш кошелёк как fee payer; всё прочее
// отклоняется до подписи, недоподписанная транзакция не уходит дальше.
func SignSwapTransaction(encoded string, w *wallet.Wallet) (*solana.Transaction, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("failed to decode swap transaction: %w", err)
	}

	tx, err := solana.TransactionFromDecoder(bin.NewBinDecoder(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to deserialize swap transaction: %w", err)
	}

	if n := tx.Message.Header.NumRequiredSignatures; n != 1 {
		return nil, fmt.Errorf("swap transaction requires %d signatures, expected exactly 1", n)
	}
	if len(tx.Message.AccountKeys) == 0 || !tx.Message.AccountKeys[0].Equals(w.PublicKey) {
		return nil, fmt.Errorf("swap transaction fee payer does not match wallet %s", w.PublicKey)
	}

	if err := w.SignTransaction(tx); err != nil {
		return nil, fmt.Errorf("failed to sign swap transaction: %w", err)
	}
	if len(tx.Signatures) != 1 {
		return nil, fmt.Errorf("expected 1 signature after signing, got %d", len(tx.Signatures))
	}

	return tx, nil
}
