package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCode(t *testing.T) {
	assert.Equal(t, "InsufficientFunds", Code(fmt.Errorf("source: %w", ErrInsufficientFunds)))
	assert.Equal(t, "AccountInactive", Code(fmt.Errorf("destination: %w", ErrAccountInactive)))
	assert.Equal(t, "", Code(errors.New("boom")))
	assert.Equal(t, "", Code(nil))
}
