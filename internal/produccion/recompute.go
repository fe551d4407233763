package produccion

import (
	"math"
	"time"

	"panaderia-backend/internal/models"

	"gorm.io/gorm"
)

// CalcularRendimiento: (kilos / sacos) * 2, redondeado a 2 decimales.
// Con sacos en cero el rendimiento es 0, no un error.
func CalcularRendimiento(kilos, sacos float64) float64 {
	if sacos == 0 {
		return 0
	}
	return math.Round(kilos/sacos*2*100) / 100
}

// Aplicar proyecta los derivados del día sobre el registro y dice si hubo
// cambio. Sin cambio no se escribe nada (evita updates espurios).
func Aplicar(rec models.Rendimiento, kilos, sacos float64) (models.Rendimiento, bool) {
	if rec.KilosProducidos == kilos && rec.SacosUsados == sacos {
		return rec, false
	}
	rec.KilosProducidos = kilos
	rec.SacosUsados = sacos
	rec.Rendimiento = CalcularRendimiento(kilos, sacos)
	return rec, true
}

// DerivadosDelDia suma los kilos vendidos y las salidas de harina de la fecha.
func DerivadosDelDia(tx *gorm.DB, fecha time.Time) (kilos float64, sacos float64, err error) {
	if err = tx.Model(&models.Venta{}).
		Where("fecha = ?", fecha).
		Select("COALESCE(SUM(kilos), 0)").
		Scan(&kilos).Error; err != nil {
		return 0, 0, err
	}

	if err = tx.Model(&models.InsumoTransaccion{}).
		Where("fecha = ? AND insumo = ?", fecha, models.NombreHarina).
		Select("COALESCE(SUM(salida), 0)").
		Scan(&sacos).Error; err != nil {
		return 0, 0, err
	}

	return kilos, sacos, nil
}

// RecomputarParaFecha actualiza el rendimiento existente de la fecha con
// los derivados del día. Si no hay registro para esa fecha es un no-op:
// el rendimiento se siembra desde el formulario de producción, nunca
// desde el recálculo.
//
// Se llama dentro de la transacción de la mutación que lo gatilla (venta
// o transacción de harina); en un update con cambio de fecha se llama
// una vez por cada fecha.
func RecomputarParaFecha(tx *gorm.DB, fecha time.Time) error {
	var rec models.Rendimiento
	if err := tx.Where("fecha = ?", fecha).First(&rec).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil
		}
		return err
	}

	kilos, sacos, err := DerivadosDelDia(tx, fecha)
	if err != nil {
		return err
	}

	rec, changed := Aplicar(rec, kilos, sacos)
	if !changed {
		return nil
	}

	return tx.Save(&rec).Error
}
