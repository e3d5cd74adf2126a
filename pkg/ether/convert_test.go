package ether_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bancassurance-api/pkg/ether"
)

func TestUSDToWei_TasaFija(t *testing.T) {
	rate := decimal.NewFromInt(2000)

	cases := []struct {
		usd string
		wei string
		eth string
	}{
		{"45", "22500000000000000", "0.0225"},
		{"150", "75000000000000000", "0.075"},
		{"2000", "1000000000000000000", "1"},
		{"0", "0", "0"},
	}
	for _, tc := range cases {
		wei, err := ether.USDToWei(decimal.RequireFromString(tc.usd), rate)
		require.NoError(t, err)
		assert.Equal(t, tc.wei, wei.String(), "usd=%s", tc.usd)
		assert.Equal(t, tc.eth, ether.FormatEther(wei), "usd=%s", tc.usd)
	}
}

func TestUSDToWei_RedondeaA18Decimales(t *testing.T) {
	wei, err := ether.USDToWei(decimal.RequireFromString("0.3333333333333333333333"), decimal.NewFromInt(1))
	require.NoError(t, err)
	assert.Equal(t, "333333333333333333", wei.String())
}

func TestUSDToWei_EntradasInvalidas(t *testing.T) {
	_, err := ether.USDToWei(decimal.NewFromInt(10), decimal.Zero)
	assert.Error(t, err)

	_, err = ether.USDToWei(decimal.NewFromInt(-1), decimal.NewFromInt(2000))
	assert.Error(t, err)
}

func TestToHex(t *testing.T) {
	assert.Equal(t, "0x4fefa17b724000", ether.ToHex(decimal.RequireFromString("22500000000000000")))
	assert.Equal(t, "0x0", ether.ToHex(decimal.Zero))
}
