package stock_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcastano/puntoventa-api/internal/application/stock"
	"github.com/dcastano/puntoventa-api/internal/domain"
	"github.com/dcastano/puntoventa-api/internal/domain/entity"
)

// fakeProductRepo catálogo en memoria; failOn fuerza fallo al escribir el
// stock de un producto concreto (para probar lotes parciales).
type fakeProductRepo struct {
	products map[string]*entity.Product
	failOn   string
}

func newFakeProductRepo(products ...*entity.Product) *fakeProductRepo {
	m := make(map[string]*entity.Product)
	for _, p := range products {
		m[p.ID] = p
	}
	return &fakeProductRepo{products: m}
}

func (f *fakeProductRepo) Create(_ context.Context, p *entity.Product) error {
	f.products[p.ID] = p
	return nil
}

func (f *fakeProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProductRepo) List(_ context.Context, _, _ string, _, _ int) ([]*entity.Product, error) {
	return nil, nil
}

func (f *fakeProductRepo) Update(_ context.Context, p *entity.Product) error {
	f.products[p.ID] = p
	return nil
}

func (f *fakeProductRepo) UpdateStock(_ context.Context, id string, s int) error {
	if id == f.failOn {
		return errors.New("write timeout")
	}
	p, ok := f.products[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Stock = s
	return nil
}

func (f *fakeProductRepo) Delete(_ context.Context, id string) error {
	delete(f.products, id)
	return nil
}

func producto(id string, stockQty int) *entity.Product {
	return &entity.Product{ID: id, Name: "PRODUCTO " + id, Price: decimal.NewFromInt(1000), Stock: stockQty}
}

func TestDecrement_PisoEnCero(t *testing.T) {
	repo := newFakeProductRepo(producto("p1", 3))
	adj := stock.NewAdjuster(repo)

	// Vender 5 con stock 3: queda 0, nunca negativo.
	newStock, err := adj.Decrement(context.Background(), "p1", 5)
	require.NoError(t, err)
	assert.Equal(t, 0, newStock)
}

func TestDecrement_CantidadInvalida(t *testing.T) {
	adj := stock.NewAdjuster(newFakeProductRepo(producto("p1", 3)))
	for _, q := range []int{0, -2} {
		_, err := adj.Decrement(context.Background(), "p1", q)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
}

func TestDecrement_ProductoInexistente(t *testing.T) {
	adj := stock.NewAdjuster(newFakeProductRepo())
	_, err := adj.Decrement(context.Background(), "no-existe", 1)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestIncrement_SumaSinTope(t *testing.T) {
	repo := newFakeProductRepo(producto("p1", 10))
	adj := stock.NewAdjuster(repo)

	newStock, err := adj.Increment(context.Background(), "p1", 500)
	require.NoError(t, err)
	assert.Equal(t, 510, newStock)
}

func TestDecrementMany_AplicaTodos(t *testing.T) {
	repo := newFakeProductRepo(producto("p1", 50), producto("p2", 20))
	adj := stock.NewAdjuster(repo)

	err := adj.DecrementMany(context.Background(), []stock.Item{
		{ProductID: "p1", Quantity: 2},
		{ProductID: "p2", Quantity: 1},
	})
	require.NoError(t, err)

	p1, _ := repo.GetByID(context.Background(), "p1")
	p2, _ := repo.GetByID(context.Background(), "p2")
	assert.Equal(t, 48, p1.Stock)
	assert.Equal(t, 19, p2.Stock)
}

// Producto agotado bloquea el lote completo antes de escribir nada y el
// error dice cuál producto falló.
func TestDecrementMany_StockAgotadoBloqueaSinAplicar(t *testing.T) {
	repo := newFakeProductRepo(producto("p1", 50), producto("p2", 0))
	adj := stock.NewAdjuster(repo)

	err := adj.DecrementMany(context.Background(), []stock.Item{
		{ProductID: "p1", Quantity: 2},
		{ProductID: "p2", Quantity: 1},
	})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Contains(t, err.Error(), "PRODUCTO p2")

	p1, _ := repo.GetByID(context.Background(), "p1")
	assert.Equal(t, 50, p1.Stock, "el prechequeo evita la aplicación parcial")
}

// Si una escritura intermedia falla, los ítems anteriores quedaron
// aplicados y el BatchError los enumera: no hay rollback entre ítems.
func TestDecrementMany_FalloIntermedioReportaAplicados(t *testing.T) {
	repo := newFakeProductRepo(producto("p1", 50), producto("p2", 20), producto("p3", 10))
	repo.failOn = "p2"
	adj := stock.NewAdjuster(repo)

	err := adj.DecrementMany(context.Background(), []stock.Item{
		{ProductID: "p1", Quantity: 2},
		{ProductID: "p2", Quantity: 1},
		{ProductID: "p3", Quantity: 1},
	})
	require.Error(t, err)

	var batchErr *stock.BatchError
	require.ErrorAs(t, err, &batchErr)
	assert.Equal(t, []string{"p1"}, batchErr.Applied)
	assert.Equal(t, "p2", batchErr.FailedID)

	p1, _ := repo.GetByID(context.Background(), "p1")
	p3, _ := repo.GetByID(context.Background(), "p3")
	assert.Equal(t, 48, p1.Stock, "p1 ya estaba descontado al fallar p2")
	assert.Equal(t, 10, p3.Stock, "p3 nunca se tocó")
}
