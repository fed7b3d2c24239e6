package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAllowedTransitions(t *testing.T) {
	tests := []struct {
		name    string
		from    OrderStatus
		allowed []OrderStatus
	}{
		{
			name:    "awaiting offers preparation and cancellation",
			from:    StatusAguardando,
			allowed: []OrderStatus{StatusEmPreparo, StatusCancelado},
		},
		{
			name:    "in preparation offers completion and cancellation",
			from:    StatusEmPreparo,
			allowed: []OrderStatus{StatusConcluido, StatusCancelado},
		},
		{
			name: "completed is terminal",
			from: StatusConcluido,
		},
		{
			name: "cancelled is terminal",
			from: StatusCancelado,
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			assert.Equal(t, testCase.allowed, AllowedTransitions(testCase.from))
		})
	}
}

func TestCanTransition(t *testing.T) {
	assert.True(t, CanTransition(StatusAguardando, StatusEmPreparo))
	assert.True(t, CanTransition(StatusAguardando, StatusCancelado))
	assert.True(t, CanTransition(StatusEmPreparo, StatusConcluido))
	assert.False(t, CanTransition(StatusAguardando, StatusConcluido))
	assert.False(t, CanTransition(StatusConcluido, StatusCancelado))
	assert.False(t, CanTransition(StatusCancelado, StatusAguardando))
}

func TestTerminalStatesOfferNothing(t *testing.T) {
	for _, s := range AllOrderStatuses() {
		if IsTerminal(s) {
			assert.Empty(t, AllowedTransitions(s), "terminal status %q must offer no transition", s)
		} else {
			assert.NotEmpty(t, AllowedTransitions(s))
		}
	}
}

func TestPaymentStatusIsUnguarded(t *testing.T) {
	// Every payment status is representable alongside every order status,
	// including Cancelado + Pago.
	for _, orderStatus := range AllOrderStatuses() {
		for _, payment := range AllPaymentStatuses() {
			o := Order{Status: orderStatus, PaymentStatus: payment}
			assert.True(t, ValidOrderStatus(o.Status))
			assert.True(t, ValidPaymentStatus(o.PaymentStatus))
		}
	}
}

func TestShortID(t *testing.T) {
	assert.Equal(t, "234567", ShortID("1234567"))
	assert.Equal(t, "42", ShortID("42"))
	assert.Equal(t, "123456", ShortID("123456"))
}
