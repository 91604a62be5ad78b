package articut

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorFromMessage(t *testing.T) {
	tests := []struct {
		name string
		msg  string
		want error
	}{
		{"invalid version", "Specified version does not exist.", ErrInvalidVersion},
		{"invalid level", "Specified level does not exist.", ErrInvalidLevel},
		{"auth failed", "Authtication failed.", ErrAuthFailed},
		{"invalid key", "Invalid Articut key!", ErrInvalidAPIKey},
		{"input too long", "Your input_str is too long.", ErrInputTooLong},
		{"quota exhausted", "Insufficient word count balance!", ErrQuotaExhausted},
		{"internal error", "Internal server error.", ErrInternalServer},
		{"invalid content type", "Invalid content_type.", ErrInvalidContentType},
		{"invalid arguments", "Invalid arguments.", ErrInvalidArguments},
		{"dict parse failed", "UserDefinedDICT Parsing ERROR.", ErrDictParseFailed},
		{"dict too large", "Maximum UserDefinedDICT file size is 10 MB.", ErrDictTooLarge},
		{"rate limited", "Requests per minute exceeded.", ErrRateLimited},
		{"success", "Success!", nil},
		{"empty", "", nil},
		{"unknown message", "Something new the service just made up.", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := errorFromMessage(tt.msg)
			if tt.want == nil {
				assert.NoError(t, got)
				return
			}
			assert.ErrorIs(t, got, tt.want)
		})
	}
}

func TestErrorFromMessageSubstring(t *testing.T) {
	// Phrases are matched anywhere inside the message, not against the
	// whole string.
	msg := "ERROR 401: Invalid Articut key. See https://api.droidtown.co for details."
	assert.ErrorIs(t, errorFromMessage(msg), ErrInvalidAPIKey)
}

func TestErrorFromMessageFirstMatchWins(t *testing.T) {
	// "Internal server error" sits before "Invalid arguments" in the
	// table, so a message containing both maps to the former.
	msg := "Internal server error while checking: Invalid arguments."
	assert.ErrorIs(t, errorFromMessage(msg), ErrInternalServer)
}

func TestErrorFromMessageExactSpelling(t *testing.T) {
	// The service really does spell it "Authtication". The correctly
	// spelled phrase is not something it emits and must not match.
	assert.ErrorIs(t, errorFromMessage("Authtication failed."), ErrAuthFailed)
	assert.NoError(t, errorFromMessage("Authentication failed."))
}

func TestNetworkError(t *testing.T) {
	cause := fmt.Errorf("dial tcp: connection refused")
	err := &NetworkError{Err: cause}

	assert.Contains(t, err.Error(), "network error")
	assert.Contains(t, err.Error(), "connection refused")
	assert.Equal(t, cause, err.Unwrap())
	assert.ErrorIs(t, err, cause)
}

func TestIsNetworkError(t *testing.T) {
	wrapped := fmt.Errorf("parse failed: %w", &NetworkError{Err: errors.New("boom")})
	assert.True(t, IsNetworkError(wrapped))

	assert.False(t, IsNetworkError(nil))
	assert.False(t, IsNetworkError(ErrRateLimited))
}

func TestSentinelsAreDistinct(t *testing.T) {
	sentinels := []error{
		ErrInvalidVersion,
		ErrInvalidLevel,
		ErrAuthFailed,
		ErrInvalidAPIKey,
		ErrInputTooLong,
		ErrQuotaExhausted,
		ErrInternalServer,
		ErrInvalidContentType,
		ErrInvalidArguments,
		ErrDictParseFailed,
		ErrDictTooLarge,
		ErrRateLimited,
	}

	seen := make(map[error]bool, len(sentinels))
	for _, err := range sentinels {
		require.False(t, seen[err], "duplicate sentinel %v", err)
		seen[err] = true
	}
	assert.Len(t, seen, len(messageTable))
}
