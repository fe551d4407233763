package banco

import (
	"strings"
	"time"

	"panaderia-backend/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// SaldoTrasMovimiento: saldo = anterior + abono - cargo.
func SaldoTrasMovimiento(saldoAnterior, abono, cargo float64) float64 {
	f, _ := decimal.NewFromFloat(saldoAnterior).
		Add(decimal.NewFromFloat(abono)).
		Sub(decimal.NewFromFloat(cargo)).
		Float64()
	return f
}

// Referencias de documento que la digitación usa como relleno y no
// corresponden a una factura real.
var documentosPlaceholder = map[string]struct{}{
	"":    {},
	"-":   {},
	"0":   {},
	"s/d": {},
}

// DebeConciliar: solo un cargo con referencia de documento real intenta
// conciliar facturas de insumos pendientes.
func DebeConciliar(cargo float64, documento string) bool {
	if cargo <= 0 {
		return false
	}
	doc := strings.ToLower(strings.TrimSpace(documento))
	_, relleno := documentosPlaceholder[doc]
	return !relleno
}

// UltimoSaldo: saldo de la última línea del libro ordenado por
// (fecha, id). El almacén antiguo confiaba en el orden de inserción de la
// lista; aquí el orden queda fijado por la consulta.
func UltimoSaldo(tx *gorm.DB) (float64, error) {
	var ultimo models.MovimientoBanco
	err := tx.Order("fecha DESC, id DESC").First(&ultimo).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return 0, nil
		}
		return 0, err
	}
	return ultimo.Saldo, nil
}

// Conciliar busca facturas de insumos con folio igual al documento y alguna
// aún no pagada; si las hay, marca como pagadas TODAS las filas que
// comparten ese folio. Es una coincidencia de string al mejor esfuerzo: el
// folio no tiene garantía de unicidad y varias facturas con el mismo string
// quedan pagadas juntas.
func Conciliar(tx *gorm.DB, documento string, fechaPago time.Time) (int64, error) {
	var pendientes int64
	if err := tx.Model(&models.InsumoTransaccion{}).
		Where("folio = ? AND estado_pago <> ?", documento, models.PagoPagada).
		Count(&pendientes).Error; err != nil {
		return 0, err
	}
	if pendientes == 0 {
		return 0, nil
	}

	res := tx.Model(&models.InsumoTransaccion{}).
		Where("folio = ?", documento).
		Updates(map[string]interface{}{
			"estado_pago": models.PagoPagada,
			"fecha_pago":  fechaPago,
		})
	return res.RowsAffected, res.Error
}
