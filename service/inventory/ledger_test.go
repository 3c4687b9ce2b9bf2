package inventory

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	entity "qcube.GO/model/entity"
)

func testLedger() *Ledger {
	return NewLedger([]entity.SKU{
		{SKU: "SKU-A", Nombre: "Caja chica", Stock: 5, Ubicacion: "A1", Categoria: "Embalaje", Precio: 2.5},
		{SKU: "SKU-B", Nombre: "Cinta adhesiva", Stock: 2, Ubicacion: "B3", Categoria: "Adhesivos", Precio: 1.8, StockMin: 10},
	}, nil)
}

func TestRegister_Entrada(t *testing.T) {
	l := testLedger()
	m, err := l.Register("SKU-A", entity.MovementEntrada, 10, "Reposicion")
	require.NoError(t, err)

	assert.Equal(t, 15, l.StockOf("SKU-A"))
	assert.Equal(t, entity.MovementEntrada, m.Tipo)
	assert.Equal(t, 10, m.Cantidad)
	assert.Equal(t, "Reposicion", m.Razon)
	assert.Empty(t, m.OrdenID)
	assert.True(t, strings.HasPrefix(m.ID, "MOV-"))
}

func TestRegister_SalidaClampsAtZero(t *testing.T) {
	l := testLedger()
	m, err := l.Register("SKU-A", entity.MovementSalida, 100, "Merma")
	require.NoError(t, err)

	assert.Equal(t, 0, l.StockOf("SKU-A"))
	// The movement records the requested quantity, not the clamped delta.
	assert.Equal(t, 100, m.Cantidad)
}

func TestRegister_AjusteIsAbsolute(t *testing.T) {
	l := testLedger()
	_, err := l.Register("SKU-A", entity.MovementAjuste, 7, "Conteo fisico")
	require.NoError(t, err)
	assert.Equal(t, 7, l.StockOf("SKU-A"))

	// Applying the same adjustment again changes nothing.
	_, err = l.Register("SKU-A", entity.MovementAjuste, 7, "Conteo fisico")
	require.NoError(t, err)
	assert.Equal(t, 7, l.StockOf("SKU-A"))
}

func TestRegister_Validation(t *testing.T) {
	l := testLedger()

	_, err := l.Register("SKU-A", entity.MovementEntrada, 0, "")
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = l.Register("SKU-A", entity.MovementEntrada, -3, "")
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = l.Register("SKU-X", entity.MovementEntrada, 1, "")
	assert.ErrorIs(t, err, ErrUnknownSKU)

	_, err = l.Register("SKU-A", entity.MovementType("ROTACION"), 1, "")
	assert.Error(t, err)

	assert.Equal(t, 5, l.StockOf("SKU-A"))
	assert.Empty(t, l.Movements())
}

func TestApplyDelta_UnknownSKUIsNoop(t *testing.T) {
	l := testLedger()
	assert.Equal(t, 0, l.ApplyDelta("SKU-X", 5))
	assert.Equal(t, 0, l.StockOf("SKU-X"))
}

func TestAppendMovement_MostRecentFirst(t *testing.T) {
	l := testLedger()
	l.AppendMovement(entity.Movement{ID: "MOV-1"})
	l.AppendMovement(entity.Movement{ID: "MOV-2"})

	movs := l.Movements()
	require.Len(t, movs, 2)
	assert.Equal(t, "MOV-2", movs[0].ID)
	assert.Equal(t, "MOV-1", movs[1].ID)
}

func TestMovementsFor(t *testing.T) {
	l := testLedger()
	l.AppendMovement(entity.Movement{ID: "MOV-1", SKU: "SKU-A"})
	l.AppendMovement(entity.Movement{ID: "MOV-2", SKU: "SKU-B"})
	l.AppendMovement(entity.Movement{ID: "MOV-3", SKU: "SKU-A"})

	movs := l.MovementsFor("SKU-A")
	require.Len(t, movs, 2)
	assert.Equal(t, "MOV-3", movs[0].ID)
	assert.Equal(t, "MOV-1", movs[1].ID)
}

func TestAddSKU(t *testing.T) {
	l := testLedger()
	require.NoError(t, l.AddSKU(entity.SKU{SKU: "SKU-C", Nombre: "Nuevo", Stock: 1}))
	assert.Equal(t, "SKU-C", l.SKUs()[0].SKU)

	assert.ErrorIs(t, l.AddSKU(entity.SKU{SKU: "SKU-A"}), ErrDuplicateSKU)
	assert.Error(t, l.AddSKU(entity.SKU{SKU: "  "}))
}

func TestUpdateSKU_DoesNotTouchStock(t *testing.T) {
	l := testLedger()
	err := l.UpdateSKU(entity.SKU{SKU: "SKU-A", Nombre: "Caja grande", Stock: 999, Ubicacion: "Z9", Precio: 3.0})
	require.NoError(t, err)

	s, ok := l.Find("SKU-A")
	require.True(t, ok)
	assert.Equal(t, "Caja grande", s.Nombre)
	assert.Equal(t, "Z9", s.Ubicacion)
	assert.Equal(t, 5, s.Stock)

	assert.ErrorIs(t, l.UpdateSKU(entity.SKU{SKU: "SKU-X"}), ErrUnknownSKU)
}

func TestRemoveSKU(t *testing.T) {
	l := testLedger()
	l.AppendMovement(entity.Movement{ID: "MOV-1", SKU: "SKU-A"})
	require.NoError(t, l.RemoveSKU("SKU-A"))

	_, ok := l.Find("SKU-A")
	assert.False(t, ok)
	assert.Equal(t, 0, l.StockOf("SKU-A"))
	// The movement log keeps referencing the removed SKU.
	assert.Len(t, l.MovementsFor("SKU-A"), 1)

	assert.ErrorIs(t, l.RemoveSKU("SKU-A"), ErrUnknownSKU)
}

func TestFilter(t *testing.T) {
	l := testLedger()

	assert.Len(t, l.Filter("", false), 2)
	assert.Len(t, l.Filter("caja", false), 1)
	assert.Len(t, l.Filter("ADHES", false), 1)
	assert.Len(t, l.Filter("nada", false), 0)

	// SKU-B sits below its minimum of 10; SKU-A uses the default of 5.
	low := l.Filter("", true)
	require.Len(t, low, 1)
	assert.Equal(t, "SKU-B", low[0].SKU)
}

func TestTotalValue(t *testing.T) {
	l := testLedger()
	assert.InDelta(t, 5*2.5+2*1.8, l.TotalValue(), 0.001)
}
