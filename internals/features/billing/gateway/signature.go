package gateway

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// IntegritySignature computes the keyed hash the processor requires on
// non-test credentials: sha256(reference ‖ amount_in_cents ‖ currency ‖ secret),
// hex encoded.
func IntegritySignature(reference string, amountInCents int64, currency, secret string) string {
	payload := fmt.Sprintf("%s%d%s%s", reference, amountInCents, currency, secret)
	sum := sha256.Sum256([]byte(payload))
	return hex.EncodeToString(sum[:])
}
