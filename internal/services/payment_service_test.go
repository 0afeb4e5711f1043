package services

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func sign(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature(t *testing.T) {
	s := &PaymentService{keySecret: "key-secret"}

	valid := sign("key-secret", "order_abc", "pay_xyz")
	assert.True(t, s.verifySignature("order_abc", "pay_xyz", valid))

	assert.False(t, s.verifySignature("order_abc", "pay_xyz", sign("wrong-secret", "order_abc", "pay_xyz")))
	assert.False(t, s.verifySignature("order_abc", "pay_other", valid))
	assert.False(t, s.verifySignature("order_abc", "pay_xyz", ""))
}
