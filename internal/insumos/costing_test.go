package insumos

import "testing"

func TestCostoPromedio(t *testing.T) {
	tests := []struct {
		name       string
		stockAntes float64
		costoAntes float64
		cantidad   float64
		precio     float64
		want       float64
	}{
		// Caso de referencia: Harina con stock 1000 a $100, compra de 500 a $120
		// → (100000 + 60000) / 1500 = 106.67 → 107
		{"harina caso real", 1000, 100, 500, 120, 107},
		{"primera compra sin stock", 0, 0, 100, 250, 250},
		{"mismo precio no mueve el costo", 800, 300, 200, 300, 300},
		{"redondeo hacia arriba", 1, 100, 1, 101, 101}, // 100.5 → 101
		{"redondeo hacia abajo", 2, 100, 1, 101, 100},  // 100.33 → 100
		// Stock negativo (más salidas que entradas en el libro): si el
		// divisor no es positivo, el costo pasa a ser el precio de compra
		{"stock negativo mayor que compra", -200, 150, 100, 120, 120},
		{"stock negativo se compensa", -100, 150, 300, 120, 105}, // (-15000+36000)/200
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CostoPromedio(tt.stockAntes, tt.costoAntes, tt.cantidad, tt.precio)
			if got != tt.want {
				t.Errorf("CostoPromedio(%v, %v, %v, %v) = %v, quiere %v",
					tt.stockAntes, tt.costoAntes, tt.cantidad, tt.precio, got, tt.want)
			}
		})
	}
}

// Regresión: al editar una compra existente, stockAntes se toma del libro
// sin aplicar la edición, por lo que la fila editada pesa dos veces en el
// promedio. Es el comportamiento del sistema histórico y los costos
// vigentes del maestro salieron de ahí; este test impide "corregirlo" por
// accidente (ver comentario en RegistrarCompra).
func TestCostoPromedio_EdicionCuentaDosVeces(t *testing.T) {
	// Libro: una sola compra de 500 a $100. Stock = 500, costo = 100.
	// El usuario edita esa misma compra a 500 unidades a $130.
	//
	// Un cálculo "correcto" sacaría la fila del libro antes de mezclar
	// (stockAntes = 0 → costo 130). El sistema histórico mezcla sobre el
	// libro sin editar: (500*100 + 500*130) / 1000 = 115.
	got := CostoPromedio(500, 100, 500, 130)
	if got != 115 {
		t.Fatalf("costo tras editar la compra = %v, quiere 115 (doble conteo del libro histórico)", got)
	}
	if got == 130 {
		t.Fatalf("la edición dejó de contar dos veces la compra; este cambio de regla debe acordarse con administración")
	}
}
