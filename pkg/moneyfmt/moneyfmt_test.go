package moneyfmt_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/dcastano/puntoventa-api/pkg/moneyfmt"
)

func TestCOP_SeparadorDeMiles(t *testing.T) {
	cases := []struct {
		amount int64
		want   string
	}{
		{0, "$ 0"},
		{1000, "$ 1.000"},
		{8120, "$ 8.120"},
		{1190000, "$ 1.190.000"},
	}
	for _, tc := range cases {
		got := moneyfmt.COP(decimal.NewFromInt(tc.amount))
		assert.Equal(t, tc.want, got)
	}
}
