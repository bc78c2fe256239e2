package checkout_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcastano/puntoventa-api/internal/domain/checkout"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

// cartWith construye un carrito con los productos base de los escenarios:
// BUÑUELOS ($1.000) × 2 y PASTEL POLLO ($4.800) × 1 → subtotal 6.800.
func cartWith(t *testing.T) *checkout.Cart {
	t.Helper()
	c := checkout.New()
	c.AddItem("p1", "BUÑUELOS", d(1000))
	c.AddItem("p1", "BUÑUELOS", d(1000))
	c.AddItem("p2", "PASTEL POLLO", d(4800))
	require.True(t, c.Summary().Subtotal.Equal(d(6800)))
	return c
}

func TestAddItem_MismoProductoAcumulaEnUnaLinea(t *testing.T) {
	c := checkout.New()
	p := d(1000)
	c.AddItem("p1", "BUÑUELOS", p)
	c.AddItem("p1", "BUÑUELOS", p)
	c.AddItem("p1", "BUÑUELOS", p)

	lines := c.Lines()
	require.Len(t, lines, 1, "el carrito nunca duplica líneas del mismo producto")
	assert.Equal(t, 3, lines[0].Quantity)
	assert.True(t, c.Summary().Subtotal.Equal(d(3000)), "subtotal = 3 × precio")
}

func TestAddItem_ProductosDistintosConservanOrden(t *testing.T) {
	c := cartWith(t)
	lines := c.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, "p1", lines[0].ProductID)
	assert.Equal(t, "p2", lines[1].ProductID)
}

func TestSetQuantity_CeroEquivaleARemoveItem(t *testing.T) {
	a := cartWith(t)
	b := cartWith(t)

	a.SetQuantity("p1", 0)
	b.RemoveItem("p1")

	assert.Equal(t, b.Lines(), a.Lines())
	assert.True(t, a.Summary().Subtotal.Equal(b.Summary().Subtotal))
}

func TestSetQuantity_ProductoAusenteNoHaceNada(t *testing.T) {
	c := cartWith(t)
	c.SetQuantity("no-existe", 5)
	assert.Len(t, c.Lines(), 2)
	assert.True(t, c.Summary().Subtotal.Equal(d(6800)))
}

func TestRemoveItem_EsIdempotente(t *testing.T) {
	c := cartWith(t)
	c.RemoveItem("p2")
	after := c.Lines()

	// Segunda eliminación del mismo producto: el carrito no cambia.
	c.RemoveItem("p2")
	assert.Equal(t, after, c.Lines())
}

func TestClear_ReiniciaDescuentoYDomicilio(t *testing.T) {
	c := cartWith(t)
	c.SetDiscount(d(500), checkout.DiscountAmount)
	c.SetShipping(d(2000))

	c.Clear()

	s := c.Summary()
	assert.True(t, c.IsEmpty())
	assert.True(t, s.Subtotal.IsZero())
	assert.True(t, s.Discount.IsZero())
	assert.True(t, s.Shipping.IsZero())
	assert.True(t, s.Total.IsZero())
}

// Ley de acotamiento: para cualquier monto de descuento el resultado queda
// en [0, subtotal], sin importar qué tan grande (o negativo) sea el input.
func TestSetDiscount_MontoSiempreAcotado(t *testing.T) {
	cases := []struct {
		name  string
		input int64
		want  int64
	}{
		{"monto normal", 500, 500},
		{"monto igual al subtotal", 6800, 6800},
		{"monto mayor al subtotal se acota", 1_000_000, 6800},
		{"monto negativo se acota a cero", -300, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := cartWith(t)
			c.SetDiscount(d(tc.input), checkout.DiscountAmount)
			got := c.Summary().Discount
			assert.True(t, got.Equal(d(tc.want)), "descuento = %s, esperado %d", got, tc.want)
		})
	}
}

func TestSetDiscount_PorcentajeRedondeaYAcota(t *testing.T) {
	cases := []struct {
		name    string
		percent int64
		want    int64
	}{
		{"10% de 6800", 10, 680},
		{"100% es el subtotal completo", 100, 6800},
		{"mas de 100% se acota al subtotal", 150, 6800},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := cartWith(t)
			c.SetDiscount(d(tc.percent), checkout.DiscountPercentage)
			got := c.Summary().Discount
			assert.True(t, got.Equal(d(tc.want)), "descuento = %s, esperado %d", got, tc.want)
		})
	}
}

func TestSetDiscount_PorcentajeConRedondeo(t *testing.T) {
	// 33% de 1000 = 330; 33% de 50 = 16.5 → redondea a 17 (round half up).
	c := checkout.New()
	c.AddItem("p1", "CAFE", d(50))
	c.SetDiscount(d(33), checkout.DiscountPercentage)
	assert.True(t, c.Summary().Discount.Equal(d(17)))
}

// Escenario completo de la caja: subtotal 6.800, domicilio 2.000 → total
// 8.800; descuento del 10% (680) → total 8.120.
func TestSummary_EscenarioVentaConDomicilioYDescuento(t *testing.T) {
	c := cartWith(t)

	s := c.Summary()
	require.True(t, s.Subtotal.Equal(d(6800)))
	require.True(t, s.Total.Equal(d(6800)))

	c.SetShipping(d(2000))
	s = c.Summary()
	require.True(t, s.Total.Equal(d(8800)), "total con domicilio = %s", s.Total)

	c.SetDiscount(d(10), checkout.DiscountPercentage)
	s = c.Summary()
	assert.True(t, s.Discount.Equal(d(680)))
	assert.True(t, s.Total.Equal(d(8120)), "total final = %s", s.Total)
}

func TestSummary_CarritoVacioForzaDescuentoACero(t *testing.T) {
	c := checkout.New()
	c.AddItem("p1", "BUÑUELOS", d(1000))
	c.SetDiscount(d(500), checkout.DiscountAmount)
	c.SetShipping(d(2000))
	c.RemoveItem("p1")

	// Con subtotal 0 el descuento se acota a 0 y el total queda en el
	// domicilio pendiente (el llamador debe evitar cobrarlo solo).
	s := c.Summary()
	assert.True(t, s.Subtotal.IsZero())
	assert.True(t, s.Discount.IsZero())
	assert.True(t, s.Total.Equal(d(2000)))
}

func TestComputeSummary_EsPuraYNoCachea(t *testing.T) {
	lines := []checkout.Line{
		{ProductID: "p1", ProductName: "BUÑUELOS", UnitPrice: d(1000), Quantity: 2},
		{ProductID: "p2", ProductName: "PASTEL POLLO", UnitPrice: d(4800), Quantity: 1},
	}
	s1 := checkout.ComputeSummary(lines, d(680), d(2000))
	s2 := checkout.ComputeSummary(lines, d(680), d(2000))
	assert.True(t, s1.Total.Equal(s2.Total))
	assert.True(t, s1.Total.Equal(d(8120)))
}
