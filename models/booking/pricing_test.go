package booking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeAmount(t *testing.T) {
	for d := MinDuration; d <= MaxDuration; d++ {
		assert.Equal(t, int64(5000*d), ComputeAmount(d))
	}
	assert.Equal(t, int64(0), ComputeAmount(-3))
}

func TestIsValidDuration(t *testing.T) {
	for d := 1; d <= 4; d++ {
		assert.True(t, IsValidDuration(d), "duration %d", d)
	}
	for _, d := range []int{0, -1, 5, 24, 100} {
		assert.False(t, IsValidDuration(d), "duration %d", d)
	}
}

func TestStatusHelpers(t *testing.T) {
	assert.True(t, StatusPending.IsValid())
	assert.False(t, Status("expired").IsValid())
	assert.True(t, StatusCompleted.IsTerminal())
	assert.True(t, StatusCancelled.IsTerminal())
	assert.False(t, StatusPending.IsTerminal())
	assert.False(t, StatusActive.IsTerminal())
}

func TestPaymentEnums(t *testing.T) {
	assert.True(t, PaymentMethodQRIS.IsValid())
	assert.True(t, PaymentMethodIDCard.IsValid())
	assert.False(t, PaymentMethod("cash").IsValid())

	assert.True(t, PaymentStatusFailed.IsValid())
	assert.False(t, PaymentStatus("refunded").IsValid())
}
