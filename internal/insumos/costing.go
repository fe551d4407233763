package insumos

import (
	"panaderia-backend/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CostoPromedio mezcla una compra con el stock existente:
//
//	nuevo = round((stock*costo + cantidad*precio) / (stock + cantidad))
//
// redondeado a peso entero (los costos se llevan en CLP). Si
// stock+cantidad <= 0 el costo pasa a ser directamente el precio de la
// compra.
func CostoPromedio(stockAntes, costoAntes, cantidad, precio float64) float64 {
	divisor := decimal.NewFromFloat(stockAntes).Add(decimal.NewFromFloat(cantidad))
	if divisor.Sign() <= 0 {
		return precio
	}

	total := decimal.NewFromFloat(stockAntes).Mul(decimal.NewFromFloat(costoAntes)).
		Add(decimal.NewFromFloat(cantidad).Mul(decimal.NewFromFloat(precio)))

	f, _ := total.Div(divisor).Round(0).Float64()
	return f
}

// StockActual: stock firmado del insumo sumando el libro completo.
func StockActual(tx *gorm.DB, nombre string) (float64, error) {
	var stock float64
	err := tx.Model(&models.InsumoTransaccion{}).
		Where("insumo = ?", nombre).
		Select("COALESCE(SUM(entrada - salida), 0)").
		Scan(&stock).Error
	return stock, err
}

// RegistrarCompra actualiza el costo promedio del insumo con una compra.
// Se omite si la cantidad o el precio no son positivos, o si no existe
// maestro con ese nombre. No guarda historial de costos anteriores.
//
// stockAntes se calcula sumando el libro completo AL MOMENTO de la
// llamada. Al editar una compra existente el libro todavía contiene la
// fila con su cantidad anterior y la cantidad editada se suma encima,
// con lo que esa compra pesa dos veces en el promedio. Así lo calculaba
// el sistema histórico y los costos vigentes salieron de ahí: no
// corregirlo sin acordarlo con administración. Hay un test de regresión
// que fija este comportamiento.
func RegistrarCompra(tx *gorm.DB, nombre string, entrada, precio float64) error {
	if entrada <= 0 || precio <= 0 {
		return nil
	}

	var insumo models.Insumo
	if err := tx.Where("nombre = ?", nombre).First(&insumo).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil
		}
		return err
	}

	stock, err := StockActual(tx, nombre)
	if err != nil {
		return err
	}

	insumo.CostoUnitario = CostoPromedio(stock, insumo.CostoUnitario, entrada, precio)
	return tx.Save(&insumo).Error
}
