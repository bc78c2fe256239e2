package checkout

import (
	"github.com/shopspring/decimal"
)

// Modos de descuento aceptados por la caja.
const (
	DiscountAmount     = "amount"     // monto fijo en pesos
	DiscountPercentage = "percentage" // porcentaje sobre el subtotal
)

// ShippingRates tarifas fijas de domicilio ofrecidas en la caja.
// La operación SetShipping acepta igualmente cualquier valor no negativo.
var ShippingRates = []decimal.Decimal{
	decimal.NewFromInt(1000),
	decimal.NewFromInt(2000),
	decimal.NewFromInt(3000),
}

// Line es una línea del carrito: un producto y su cantidad (siempre ≥ 1).
type Line struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
}

// Summary es el desglose derivado de la venta en curso. Nunca se almacena:
// se recalcula completo en cada lectura, así no puede quedar obsoleto.
type Summary struct {
	Subtotal decimal.Decimal `json:"subtotal"`
	Discount decimal.Decimal `json:"discount"`
	Shipping decimal.Decimal `json:"shipping"`
	Total    decimal.Decimal `json:"total"`
}

// Cart mantiene las líneas de la venta en curso más el descuento y el
// domicilio aplicados. Es estado puro en memoria, sin I/O; pertenece a una
// única sesión de caja. No valida stock: eso es responsabilidad de quien
// confirma la venta.
type Cart struct {
	lines    []Line
	discount decimal.Decimal
	shipping decimal.Decimal
}

// New crea un carrito vacío.
func New() *Cart {
	return &Cart{discount: decimal.Zero, shipping: decimal.Zero}
}

// AddItem agrega una unidad del producto. Si ya existe una línea para ese
// producto incrementa su cantidad; el carrito nunca tiene líneas duplicadas.
func (c *Cart) AddItem(productID, productName string, unitPrice decimal.Decimal) {
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			c.lines[i].Quantity++
			return
		}
	}
	c.lines = append(c.lines, Line{
		ProductID:   productID,
		ProductName: productName,
		UnitPrice:   unitPrice,
		Quantity:    1,
	})
}

// SetQuantity fija la cantidad exacta de la línea. Cantidad ≤ 0 elimina la
// línea. Si el producto no está en el carrito no hace nada.
func (c *Cart) SetQuantity(productID string, quantity int) {
	if quantity <= 0 {
		c.RemoveItem(productID)
		return
	}
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			c.lines[i].Quantity = quantity
			return
		}
	}
}

// RemoveItem elimina la línea del producto; no hace nada si no existe.
func (c *Cart) RemoveItem(productID string) {
	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

// Clear vacía el carrito y reinicia descuento y domicilio a cero.
func (c *Cart) Clear() {
	c.lines = nil
	c.discount = decimal.Zero
	c.shipping = decimal.Zero
}

// SetDiscount aplica un descuento. En modo porcentaje calcula
// round(subtotal × valor / 100); en modo monto usa el valor tal cual.
// En ambos modos el resultado queda acotado a [0, subtotal]: un descuento
// jamás supera el subtotal ni es negativo.
func (c *Cart) SetDiscount(value decimal.Decimal, mode string) {
	subtotal := c.subtotal()
	var d decimal.Decimal
	if mode == DiscountPercentage {
		d = subtotal.Mul(value).Div(decimal.NewFromInt(100)).Round(0)
	} else {
		d = value
	}
	c.discount = clampDiscount(d, subtotal)
}

// SetShipping fija el valor del domicilio. Se espera un valor no negativo,
// típicamente una de las tarifas de ShippingRates o cero.
func (c *Cart) SetShipping(amount decimal.Decimal) {
	c.shipping = amount
}

// Lines devuelve una copia de las líneas en orden de inserción.
func (c *Cart) Lines() []Line {
	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// IsEmpty indica si el carrito no tiene líneas.
func (c *Cart) IsEmpty() bool {
	return len(c.lines) == 0
}

// Summary recalcula el desglose a partir del estado actual.
func (c *Cart) Summary() Summary {
	return ComputeSummary(c.lines, c.discount, c.shipping)
}

func (c *Cart) subtotal() decimal.Decimal {
	sum := decimal.Zero
	for _, l := range c.lines {
		sum = sum.Add(l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return sum
}

// ComputeSummary calcula el desglose de totales como función pura:
// subtotal = Σ(precio × cantidad), descuento acotado a [0, subtotal],
// total = subtotal − descuento + domicilio. Con el descuento acotado al
// subtotal, total ≥ 0 siempre que el domicilio sea ≥ 0.
func ComputeSummary(lines []Line, discount, shipping decimal.Decimal) Summary {
	subtotal := decimal.Zero
	for _, l := range lines {
		subtotal = subtotal.Add(l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	d := clampDiscount(discount, subtotal)
	return Summary{
		Subtotal: subtotal,
		Discount: d,
		Shipping: shipping,
		Total:    subtotal.Sub(d).Add(shipping),
	}
}

func clampDiscount(d, subtotal decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	if d.GreaterThan(subtotal) {
		return subtotal
	}
	return d
}
