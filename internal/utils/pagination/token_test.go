package pagination

import (
	"encoding/base64"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeTimeIDToken(t *testing.T) {
	createdAt := time.Date(2026, 5, 15, 14, 30, 45, 123456789, time.UTC)

	token := EncodeTimeIDToken(createdAt, "rule-123")
	assert.NotEmpty(t, token, "Token should not be empty")

	decodedTime, decodedID, err := DecodeTimeIDToken(token)
	assert.NoError(t, err, "Decoding should not return an error")
	assert.Equal(t, createdAt, decodedTime, "Timestamp should match after decode")
	assert.Equal(t, "rule-123", decodedID, "Identifier should match after decode")

	// Zero time round-trips too
	zeroToken := EncodeTimeIDToken(time.Time{}, "rule-0")
	decodedZero, decodedZeroID, err := DecodeTimeIDToken(zeroToken)
	assert.NoError(t, err)
	assert.True(t, decodedZero.IsZero())
	assert.Equal(t, "rule-0", decodedZeroID)
}

func TestDecodeTimeIDToken_Invalid(t *testing.T) {
	_, _, err := DecodeTimeIDToken("not-base64!!!")
	assert.Error(t, err, "Invalid base64 should fail")

	onePart := base64.StdEncoding.EncodeToString([]byte("only-one-part"))
	_, _, err = DecodeTimeIDToken(onePart)
	assert.Error(t, err, "Missing identifier should fail")

	badTime := base64.StdEncoding.EncodeToString([]byte("not-a-time|rule-1"))
	_, _, err = DecodeTimeIDToken(badTime)
	assert.Error(t, err, "Unparseable timestamp should fail")
}
