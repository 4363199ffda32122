package checkout

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSentinelErrors_AreWrapFriendly(t *testing.T) {
	for _, sentinel := range []error{
		ErrSessionNotFound,
		ErrAlreadyProcessed,
		ErrSessionExpired,
		ErrPaymentFailed,
		ErrActivationInconsistency,
	} {
		err := fmt.Errorf("wrapped: %w", sentinel)
		require.True(t, errors.Is(err, sentinel))
	}
}
