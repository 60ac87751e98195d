package controllers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAmountInPaise(t *testing.T) {
	// 19.99 sits just below 1999 paise in floating point; plain
	// truncation would charge 1998.
	assert.Equal(t, 1999, amountInPaise(19.99))
	assert.Equal(t, 10000, amountInPaise(100))
	assert.Equal(t, 1, amountInPaise(0.01))
	assert.Equal(t, 29, amountInPaise(0.29))
	assert.Equal(t, 123456, amountInPaise(1234.56))
	assert.Equal(t, 0, amountInPaise(0))
}
