package eth

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFromBaseUnits(t *testing.T) {
	wei, ok := new(big.Int).SetString("1234567890000000000", 10)
	if !ok {
		t.Fatal("bad literal")
	}
	assert.Equal(t, "1.23456789", FromBaseUnits(wei, 18).String())

	assert.Equal(t, "0", FromBaseUnits(big.NewInt(0), 18).String())
	assert.Equal(t, "1.5", FromBaseUnits(big.NewInt(1500000), 6).String())
	assert.Equal(t, "42", FromBaseUnits(big.NewInt(42), 0).String())

	// smallest unit stays exact, no float rounding
	assert.Equal(t, "0.000000000000000001", FromBaseUnits(big.NewInt(1), 18).String())
}
