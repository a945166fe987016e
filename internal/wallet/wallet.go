// ==================================
// File: internal/wallet/wallet.go
// ==================================
package wallet

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gagliardetto/solana-go"
	"github.com/mr-tron/base58"
)

// Wallet представляет кошелёк Solana.
type Wallet struct {
	PrivateKey solana.PrivateKey
	PublicKey  solana.PublicKey
}

// ConfigurationError описывает проблему с файлом кошелька. Любая такая
// ошибка фатальна: без валидного ключа продолжать нечего.
type ConfigurationError struct {
	Path string
	Err  error
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("wallet file %s: %v", e.Path, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// walletFile — структура wallet.json: единственное поле secretKey,
// либо base58-строка, либо массив байтов.
type walletFile struct {
	SecretKey *secretKey `json:"secretKey"`
}

type secretKey struct {
	bytes []byte
}

func (s *secretKey) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var encoded string
		if err := json.Unmarshal(data, &encoded); err != nil {
			return err
		}
		decoded, err := base58.Decode(encoded)
		if err != nil {
			return fmt.Errorf("failed to decode base58 secret key: %w", err)
		}
		s.bytes = decoded
		return nil
	}

	var values []int
	if err := json.Unmarshal(data, &values); err != nil {
		return fmt.Errorf("secretKey must be a base58 string or a byte array")
	}
	raw := make([]byte, len(values))
	for i, v := range values {
		if v < 0 || v > 255 {
			return fmt.Errorf("secretKey byte %d out of range", i)
		}
		raw[i] = byte(v)
	}
	s.bytes = raw
	return nil
}

// Load читает файл кошелька и возвращает ключевую пару. Секрет никогда
// не логируется и не включается в тексты ошибок.
func Load(path string) (*Wallet, error) {
	cleanPath := filepath.Clean(path)

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, &ConfigurationError{Path: path, Err: fmt.Errorf("failed to read file: %w", err)}
	}

	var wf walletFile
	if err := json.Unmarshal(data, &wf); err != nil {
		return nil, &ConfigurationError{Path: path, Err: fmt.Errorf("failed to parse JSON: %w", err)}
	}
	if wf.SecretKey == nil {
		return nil, &ConfigurationError{Path: path, Err: fmt.Errorf("secretKey field not found")}
	}

	w, err := New(wf.SecretKey.bytes)
	if err != nil {
		return nil, &ConfigurationError{Path: path, Err: err}
	}
	return w, nil
}

// New создаёт кошелёк из сырых байтов секретного ключа (seed + pubkey).
func New(secret []byte) (*Wallet, error) {
	if len(secret) != 64 {
		return nil, fmt.Errorf("invalid private key length: expected 64 bytes, got %d", len(secret))
	}
	privateKey := solana.PrivateKey(secret)
	return &Wallet{
		PrivateKey: privateKey,
		PublicKey:  privateKey.PublicKey(),
	}, nil
}

// SignTransaction подписывает транзакцию с помощью приватного ключа кошелька.
func (w *Wallet) SignTransaction(tx *solana.Transaction) error {
	_, err := tx.Sign(func(key solana.PublicKey) *solana.PrivateKey {
		if key.Equals(w.PublicKey) {
			return &w.PrivateKey
		}
		return nil
	})
	return err
}

// String возвращает строковое представление кошелька (его публичный ключ).
func (w *Wallet) String() string {
	return w.PublicKey.String()
}
