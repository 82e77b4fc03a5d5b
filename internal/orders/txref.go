package orders

import (
	"context"
	"crypto/rand"
	"fmt"
	"math/big"
)

const (
	txRefLength   = 12
	txRefAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ123456789"
	txRefAttempts = 5
)

// TxRefChecker reports whether a candidate reference is already taken.
type TxRefChecker interface {
	TxRefExists(ctx context.Context, txRef string) (bool, error)
}

func randomTxRef() (string, error) {
	buf := make([]byte, txRefLength)
	max := big.NewInt(int64(len(txRefAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", fmt.Errorf("generate tx_ref: %w", err)
		}
		buf[i] = txRefAlphabet[n.Int64()]
	}
	return string(buf), nil
}

// GenerateTxRef draws candidates until one is unused, bounded at a fixed
// number of attempts. The unique index on orders.tx_ref is the final arbiter;
// the caller still has to handle an insert-time collision.
func GenerateTxRef(ctx context.Context, checker TxRefChecker) (string, error) {
	for attempt := 0; attempt < txRefAttempts; attempt++ {
		candidate, err := randomTxRef()
		if err != nil {
			return "", err
		}
		taken, err := checker.TxRefExists(ctx, candidate)
		if err != nil {
			return "", fmt.Errorf("check tx_ref: %w", err)
		}
		if !taken {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("could not find a free tx_ref after %d attempts", txRefAttempts)
}
