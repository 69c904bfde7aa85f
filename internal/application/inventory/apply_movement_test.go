package inventory_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appcosting "github.com/jhoicas/Costeo-api/internal/application/costing"
	"github.com/jhoicas/Costeo-api/internal/application/inventory"
	"github.com/jhoicas/Costeo-api/internal/domain"
	"github.com/jhoicas/Costeo-api/internal/domain/entity"
	"github.com/jhoicas/Costeo-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria: implementan los puertos del libro de inventario con
// semántica de transacción (snapshot + restore en rollback), suficiente para
// verificar la aritmética del promedio ponderado y la atomicidad de lotes.
// ──────────────────────────────────────────────────────────────────────────────

type memState struct {
	products  map[string]*entity.Product
	stocks    map[string]*entity.Stock
	movements []*entity.StockMovement
	records   []*entity.ProductRecord
}

func newMemState() *memState {
	return &memState{
		products: map[string]*entity.Product{},
		stocks:   map[string]*entity.Stock{},
	}
}

func (s *memState) clone() *memState {
	c := newMemState()
	for k, v := range s.products {
		p := *v
		c.products[k] = &p
	}
	for k, v := range s.stocks {
		st := *v
		c.stocks[k] = &st
	}
	c.movements = append(c.movements, s.movements...)
	c.records = append(c.records, s.records...)
	return c
}

func stockKey(areaID, productID string, variationID *string) string {
	v := ""
	if variationID != nil {
		v = *variationID
	}
	return fmt.Sprintf("%s|%s|%s", areaID, productID, v)
}

type memProducts struct{ s *memState }

func (r *memProducts) GetByID(id string) (*entity.Product, error) {
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	return p, nil
}

func (r *memProducts) GetByIDs(ids []string) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, id := range ids {
		if p, ok := r.s.products[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *memProducts) GetForUpdate(id string) (*entity.Product, error) { return r.GetByID(id) }

func (r *memProducts) UpdateAverageCost(id string, cost decimal.Decimal) error {
	r.s.products[id].AverageCost = cost
	return nil
}

func (r *memProducts) UpdateTotalQuantity(id string, qty decimal.Decimal) error {
	r.s.products[id].TotalQuantity = qty
	return nil
}

func (r *memProducts) ListStockLimitIDs(businessID string) ([]string, error) {
	var out []string
	for id, p := range r.s.products {
		if p.BusinessID == businessID && p.StockLimit {
			out = append(out, id)
		}
	}
	return out, nil
}

type memStocks struct{ s *memState }

func (r *memStocks) Get(areaID, productID string, variationID *string) (*entity.Stock, error) {
	if st, ok := r.s.stocks[stockKey(areaID, productID, variationID)]; ok {
		return st, nil
	}
	return &entity.Stock{AreaID: areaID, ProductID: productID, VariationID: variationID,
		Quantity: decimal.Zero, AverageCost: decimal.Zero}, nil
}

func (r *memStocks) GetForUpdate(areaID, productID string, variationID *string) (*entity.Stock, error) {
	return r.Get(areaID, productID, variationID)
}

func (r *memStocks) Upsert(stock *entity.Stock) error {
	r.s.stocks[stockKey(stock.AreaID, stock.ProductID, stock.VariationID)] = stock
	return nil
}

func (r *memStocks) SumQuantityByProduct(productID string) (decimal.Decimal, error) {
	sum := decimal.Zero
	for _, st := range r.s.stocks {
		if st.ProductID == productID {
			sum = sum.Add(st.Quantity)
		}
	}
	return sum, nil
}

type memMovements struct{ s *memState }

func (r *memMovements) Create(m *entity.StockMovement) error {
	r.s.movements = append(r.s.movements, m)
	return nil
}

func (r *memMovements) ListByProduct(productID string, limit int) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	for _, m := range r.s.movements {
		if m.ProductID == productID {
			out = append(out, m)
		}
	}
	return out, nil
}

type memRecords struct{ s *memState }

func (r *memRecords) Create(rec *entity.ProductRecord) error {
	r.s.records = append(r.s.records, rec)
	return nil
}

func (r *memRecords) ListByProduct(productID string, limit int) ([]*entity.ProductRecord, error) {
	var out []*entity.ProductRecord
	for _, rec := range r.s.records {
		if rec.ProductID == productID {
			out = append(out, rec)
		}
	}
	return out, nil
}

// memTx simula la transacción: si fn falla se restaura el snapshot previo.
type memTx struct{ s *memState }

func (t *memTx) Run(ctx context.Context, fn func(
	stocks repository.StockRepository,
	movements repository.StockMovementRepository,
	products repository.ProductRepository,
	records repository.RecordRepository,
) error) error {
	backup := t.s.clone()
	err := fn(&memStocks{t.s}, &memMovements{t.s}, &memProducts{t.s}, &memRecords{t.s})
	if err != nil {
		*t.s = *backup
		return err
	}
	return nil
}

type memQueue struct{ tasks []appcosting.Task }

func (q *memQueue) Enqueue(_ context.Context, t appcosting.Task) error {
	q.tasks = append(q.tasks, t)
	return nil
}

type memCurrencies struct {
	business   *entity.Business
	currencies []*entity.AvailableCurrency
}

func (c *memCurrencies) GetBusiness(string) (*entity.Business, error) { return c.business, nil }
func (c *memCurrencies) ListByBusiness(string) ([]*entity.AvailableCurrency, error) {
	return c.currencies, nil
}

// ──────────────────────────────────────────────────────────────────────────────

const (
	bizID  = "biz-1"
	userID = "user-1"
	areaA  = "area-A"
	areaB  = "area-B"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func fixture() (*memState, *memQueue, *inventory.ApplyMovementUseCase) {
	s := newMemState()
	s.products["p1"] = &entity.Product{
		ID: "p1", BusinessID: bizID, Name: "Harina", Type: entity.ProductTypeStock,
		Measure: "KG", AverageCost: d("8"), StockLimit: true,
	}
	s.stocks[stockKey(areaA, "p1", nil)] = &entity.Stock{
		AreaID: areaA, ProductID: "p1", Quantity: d("10"), AverageCost: d("8"),
	}
	s.products["p1"].TotalQuantity = d("10")

	q := &memQueue{}
	uc := inventory.NewApplyMovementUseCase(&memTx{s}, q, &memCurrencies{
		business: &entity.Business{ID: bizID, CostCurrency: "CUP", Precision: 2},
	})
	return s, q, uc
}

func entryInput(qty, cost string) inventory.MovementInput {
	c := d(cost)
	return inventory.MovementInput{
		BusinessID: bizID, MovedByID: userID, ProductID: "p1", AreaID: areaA,
		Operation: entity.OperationEntry, Quantity: d(qty), UnitCost: &c,
	}
}

func TestApplyMovement_EntradaMezclaPromedio(t *testing.T) {
	s, q, uc := fixture()

	// (10*8 + 5*12) / 15 = 9.33
	require.NoError(t, uc.ApplyMovement(context.Background(), entryInput("5", "12")))

	stock := s.stocks[stockKey(areaA, "p1", nil)]
	assert.Equal(t, "15", stock.Quantity.String())
	assert.Equal(t, "9.33", stock.AverageCost.String())
	assert.Equal(t, "9.33", s.products["p1"].AverageCost.String())
	assert.Equal(t, "15", s.products["p1"].TotalQuantity.String())

	require.Len(t, s.movements, 1)
	mov := s.movements[0]
	assert.Equal(t, entity.OperationEntry, mov.Operation)
	assert.Equal(t, "8", mov.CostBeforeOperation.String(), "guarda el costo previo a la operación")
	assert.Equal(t, "12", mov.Price.Amount.String())
	assert.Equal(t, "CUP", mov.Price.CodeCurrency)

	// Encola la propagación del producto afectado.
	require.Len(t, q.tasks, 1)
	assert.Equal(t, appcosting.TaskRecomputeCost, q.tasks[0].Kind)
	assert.Equal(t, "p1", q.tasks[0].ProductID)
}

func TestApplyMovement_EntradaSinCostoUsaPromedio(t *testing.T) {
	s, _, uc := fixture()
	in := entryInput("5", "0")
	in.UnitCost = nil

	require.NoError(t, uc.ApplyMovement(context.Background(), in))
	// Blend con el mismo costo promedio: no cambia.
	assert.Equal(t, "8", s.products["p1"].AverageCost.String())
	assert.Equal(t, "15", s.stocks[stockKey(areaA, "p1", nil)].Quantity.String())
}

func TestApplyMovement_EntradaCeroEsNoOp(t *testing.T) {
	s, q, uc := fixture()
	require.NoError(t, uc.ApplyMovement(context.Background(), entryInput("0", "99")))

	assert.Equal(t, "10", s.stocks[stockKey(areaA, "p1", nil)].Quantity.String())
	assert.Equal(t, "8", s.products["p1"].AverageCost.String())
	assert.Empty(t, s.movements, "una entrada de cantidad cero no genera movimiento")
	assert.Empty(t, s.records, "sin efectos no hay registro de auditoría")
	assert.Empty(t, q.tasks, "sin cambio de costo no hay recompute que encolar")
}

func TestApplyMovement_EntradaEnOtraMonedaConvierte(t *testing.T) {
	s, _, _ := fixture()
	q := &memQueue{}
	uc := inventory.NewApplyMovementUseCase(&memTx{s}, q, &memCurrencies{
		business: &entity.Business{ID: bizID, CostCurrency: "CUP", Precision: 2},
		currencies: []*entity.AvailableCurrency{
			{BusinessID: bizID, Code: "CUP", ExchangeRate: d("1"), IsMain: true},
			{BusinessID: bizID, Code: "USD", ExchangeRate: d("120")},
		},
	})

	in := entryInput("5", "1")
	in.CodeCurrency = "USD"
	require.NoError(t, uc.ApplyMovement(context.Background(), in))

	// 1 USD = 120 CUP; blend (10*8 + 5*120) / 15 = 45.33
	assert.Equal(t, "45.33", s.products["p1"].AverageCost.String())
	require.Len(t, s.movements, 1)
	assert.Equal(t, "120", s.movements[0].Price.Amount.String())
	assert.Equal(t, "CUP", s.movements[0].Price.CodeCurrency)
}

func TestApplyMovement_EntradaMonedaNoHabilitada(t *testing.T) {
	s, _, _ := fixture()
	uc := inventory.NewApplyMovementUseCase(&memTx{s}, &memQueue{}, &memCurrencies{
		business: &entity.Business{ID: bizID, CostCurrency: "CUP", Precision: 2},
		currencies: []*entity.AvailableCurrency{
			{BusinessID: bizID, Code: "CUP", ExchangeRate: d("1"), IsMain: true},
		},
	})

	in := entryInput("5", "1")
	in.CodeCurrency = "EUR"
	err := uc.ApplyMovement(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrUnknownCurrency)
	assert.Empty(t, s.movements)
}

func TestApplyMovement_CostoFijadoNoSeMezcla(t *testing.T) {
	s, _, uc := fixture()
	s.products["p1"].IsCostDefined = true

	require.NoError(t, uc.ApplyMovement(context.Background(), entryInput("5", "100")))

	// El promedio queda anclado; la cantidad sí se mueve.
	assert.Equal(t, "8", s.products["p1"].AverageCost.String())
	assert.Equal(t, "15", s.stocks[stockKey(areaA, "p1", nil)].Quantity.String())
}

func TestApplyMovement_SalidaInsuficiente(t *testing.T) {
	s, q, uc := fixture()
	in := inventory.MovementInput{
		BusinessID: bizID, MovedByID: userID, ProductID: "p1", AreaID: areaA,
		Operation: entity.OperationExit, Quantity: d("11"),
	}
	err := uc.ApplyMovement(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// El libro queda intacto y no se encola nada.
	assert.Equal(t, "10", s.stocks[stockKey(areaA, "p1", nil)].Quantity.String())
	assert.Empty(t, s.movements)
	assert.Empty(t, q.tasks)
}

func TestApplyMovement_SalidaNoCambiaPromedio(t *testing.T) {
	s, _, uc := fixture()
	in := inventory.MovementInput{
		BusinessID: bizID, MovedByID: userID, ProductID: "p1", AreaID: areaA,
		Operation: entity.OperationSell, Quantity: d("4"),
	}
	require.NoError(t, uc.ApplyMovement(context.Background(), in))

	assert.Equal(t, "6", s.stocks[stockKey(areaA, "p1", nil)].Quantity.String())
	assert.Equal(t, "8", s.products["p1"].AverageCost.String())
	require.Len(t, s.movements, 1)
	assert.Equal(t, "-4", s.movements[0].Quantity.String(), "las salidas se registran en negativo")
}

func TestApplyMovement_TransferDosPatasEnlazadas(t *testing.T) {
	s, _, uc := fixture()
	in := inventory.MovementInput{
		BusinessID: bizID, MovedByID: userID, ProductID: "p1",
		AreaID: areaA, ToAreaID: areaB,
		Operation: entity.OperationTransfer, Quantity: d("4"),
	}
	require.NoError(t, uc.ApplyMovement(context.Background(), in))

	assert.Equal(t, "6", s.stocks[stockKey(areaA, "p1", nil)].Quantity.String())
	assert.Equal(t, "4", s.stocks[stockKey(areaB, "p1", nil)].Quantity.String())
	// El total del producto no cambia con un traslado.
	assert.Equal(t, "10", s.products["p1"].TotalQuantity.String())
	// El promedio tampoco: el destino entra al costo vigente.
	assert.Equal(t, "8", s.products["p1"].AverageCost.String())

	require.Len(t, s.movements, 2)
	out, entry := s.movements[0], s.movements[1]
	assert.Equal(t, entity.OperationTransfer, out.Operation)
	assert.Equal(t, entity.OperationTransfer, entry.Operation)
	require.NotNil(t, entry.ParentID)
	assert.Equal(t, out.ID, *entry.ParentID, "la pata de entrada referencia a la de salida")
}

func TestApplyMovement_TransferConDestinoCaroNoTocaElProducto(t *testing.T) {
	s, _, uc := fixture()
	// El área destino ya tiene existencias a un promedio distinto: la fila
	// destino mezcla, pero el promedio del producto solo lo mueve una ENTRY.
	s.stocks[stockKey(areaB, "p1", nil)] = &entity.Stock{
		AreaID: areaB, ProductID: "p1", Quantity: d("5"), AverageCost: d("20"),
	}
	s.products["p1"].TotalQuantity = d("15")

	in := inventory.MovementInput{
		BusinessID: bizID, MovedByID: userID, ProductID: "p1",
		AreaID: areaA, ToAreaID: areaB,
		Operation: entity.OperationTransfer, Quantity: d("5"),
	}
	require.NoError(t, uc.ApplyMovement(context.Background(), in))

	assert.Equal(t, "8", s.products["p1"].AverageCost.String(), "un traslado interno no cambia el costo promedio del producto")
	// (5*20 + 5*8) / 10 = 14 en la fila destino.
	assert.Equal(t, "14", s.stocks[stockKey(areaB, "p1", nil)].AverageCost.String())
	assert.Equal(t, "10", s.stocks[stockKey(areaB, "p1", nil)].Quantity.String())
	assert.Equal(t, "5", s.stocks[stockKey(areaA, "p1", nil)].Quantity.String())
	assert.Equal(t, "15", s.products["p1"].TotalQuantity.String())

	require.Len(t, s.records, 1)
	assert.Equal(t, s.records[0].OldValue, s.records[0].NewValue)
}

func TestApplyMovement_TransferInsuficienteRevierteTodo(t *testing.T) {
	s, _, uc := fixture()
	in := inventory.MovementInput{
		BusinessID: bizID, MovedByID: userID, ProductID: "p1",
		AreaID: areaA, ToAreaID: areaB,
		Operation: entity.OperationTransfer, Quantity: d("50"),
	}
	err := uc.ApplyMovement(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, "10", s.stocks[stockKey(areaA, "p1", nil)].Quantity.String())
	_, destExists := s.stocks[stockKey(areaB, "p1", nil)]
	assert.False(t, destExists)
}

func TestApplyMovement_ProductoEliminado(t *testing.T) {
	s, _, uc := fixture()
	now := s.products["p1"].CreatedAt
	s.products["p1"].DeletedAt = &now

	err := uc.ApplyMovement(context.Background(), entryInput("5", "12"))
	assert.ErrorIs(t, err, domain.ErrProductDeleted)
}

func TestApplyMovement_OperacionInvalida(t *testing.T) {
	_, _, uc := fixture()
	err := uc.ApplyMovement(context.Background(), inventory.MovementInput{
		BusinessID: bizID, ProductID: "p1", AreaID: areaA, Operation: "RESTOCK", Quantity: d("1"),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
