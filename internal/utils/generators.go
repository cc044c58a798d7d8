package utils

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
)

// GenerateClientID synthesizes a holder identifier for tickets created
// without a caller-supplied user_id.
func GenerateClientID() string {
	timestamp := time.Now().Unix()
	randomNum, _ := rand.Int(rand.Reader, big.NewInt(999999))
	return fmt.Sprintf("client_%d_%06d", timestamp, randomNum.Int64())
}

// GenerateQRToken returns a fresh opaque token for QR payloads. The token is
// the only credential a scanning station ever sees.
func GenerateQRToken() string {
	return uuid.NewString()
}
