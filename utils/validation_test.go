package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateName(t *testing.T) {
	t.Run("empty name is allowed", func(t *testing.T) {
		valid, _ := ValidateName("")
		assert.True(t, valid)
	})

	t.Run("plain names pass", func(t *testing.T) {
		for _, name := range []string{"Asha", "Jean Luc", "Om"} {
			valid, msg := ValidateName(name)
			assert.True(t, valid, msg)
		}
	})

	t.Run("single character is rejected", func(t *testing.T) {
		valid, _ := ValidateName("A")
		assert.False(t, valid)
	})

	t.Run("digits and special characters are rejected", func(t *testing.T) {
		for _, name := range []string{"R2D2", "Eve<script>", "Bob!"} {
			valid, _ := ValidateName(name)
			assert.False(t, valid, name)
		}
	})
}
