package application

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/vendora/sales-api/internal/domains/orders/ports"
)

type fingerprintLine struct {
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
	UnitPrice string `json:"unit_price,omitempty"`
}

type fingerprintPayload struct {
	ClientID string            `json:"client_id"`
	Lines    []fingerprintLine `json:"lines"`
}

// FingerprintPlaceOrder produces a stable hash of the placement payload so a
// reused idempotency key can be checked against the original request.
func FingerprintPlaceOrder(input ports.PlaceOrderInput) (string, error) {
	payload := fingerprintPayload{
		ClientID: input.ClientID,
		Lines:    make([]fingerprintLine, 0, len(input.Lines)),
	}
	for _, line := range input.Lines {
		fl := fingerprintLine{ProductID: line.ProductID, Quantity: line.Quantity}
		if line.UnitPrice != nil {
			fl.UnitPrice = line.UnitPrice.String()
		}
		payload.Lines = append(payload.Lines, fl)
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("fingerprint order payload: %w", err)
	}
	sum := sha256.Sum256(raw)
	return hex.EncodeToString(sum[:]), nil
}
