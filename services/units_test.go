package services

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEther(t *testing.T) {
	wei, err := ParseEther("0.001")
	require.NoError(t, err)
	assert.Equal(t, "1000000000000000", wei.String())

	wei, err = ParseEther("12")
	require.NoError(t, err)
	assert.Equal(t, "12000000000000000000", wei.String())

	wei, err = ParseEther("0.000000000000000001")
	require.NoError(t, err)
	assert.Equal(t, "1", wei.String())

	_, err = ParseEther("0.0000000000000000001")
	assert.Error(t, err)
	_, err = ParseEther("-1")
	assert.Error(t, err)
	_, err = ParseEther("abc")
	assert.Error(t, err)
}

func TestFormatEther(t *testing.T) {
	assert.Equal(t, "0.0", FormatEther(big.NewInt(0)))
	assert.Equal(t, "0.0", FormatEther(nil))
	assert.Equal(t, "1.0", FormatEther(big.NewInt(1_000_000_000_000_000_000)))
	assert.Equal(t, "0.001", FormatEther(big.NewInt(1_000_000_000_000_000)))
	assert.Equal(t, "0.000000000000000001", FormatEther(big.NewInt(1)))
}

func TestParseWei(t *testing.T) {
	v, err := ParseWei("340282366920938463463374607431768211456")
	require.NoError(t, err)
	assert.Equal(t, "340282366920938463463374607431768211456", v.String())

	_, err = ParseWei("1.5")
	assert.Error(t, err)
	_, err = ParseWei("-3")
	assert.Error(t, err)
}
