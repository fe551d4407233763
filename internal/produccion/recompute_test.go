package produccion

import (
	"testing"

	"panaderia-backend/internal/models"
)

func TestCalcularRendimiento(t *testing.T) {
	tests := []struct {
		name  string
		kilos float64
		sacos float64
		want  float64
	}{
		{"día normal", 1250, 25, 100},
		{"redondeo a 2 decimales", 1000, 3, 666.67},
		{"sin sacos usados", 500, 0, 0},
		{"sin producción", 0, 10, 0},
		{"todo en cero", 0, 0, 0},
		{"fracción de saco", 90, 1.5, 120},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalcularRendimiento(tt.kilos, tt.sacos)
			if got != tt.want {
				t.Errorf("CalcularRendimiento(%v, %v) = %v, quiere %v", tt.kilos, tt.sacos, got, tt.want)
			}
		})
	}
}

func TestAplicar_SinCambioNoEscribe(t *testing.T) {
	rec := models.Rendimiento{
		KilosProducidos: 1250,
		SacosUsados:     25,
		Rendimiento:     100,
		Barredura:       3,
		Merma:           1.5,
	}

	// Mismos derivados: el registro debe volver idéntico y sin marca de cambio
	got, changed := Aplicar(rec, 1250, 25)
	if changed {
		t.Fatalf("Aplicar marcó cambio con derivados idénticos")
	}
	if got != rec {
		t.Errorf("Aplicar modificó el registro sin cambio de derivados: %+v != %+v", got, rec)
	}
}

func TestAplicar_ActualizaDerivadosYPreservaManuales(t *testing.T) {
	rec := models.Rendimiento{
		KilosProducidos: 1250,
		SacosUsados:     25,
		Rendimiento:     100,
		Barredura:       3,
		Merma:           1.5,
	}

	got, changed := Aplicar(rec, 1300, 26)
	if !changed {
		t.Fatalf("Aplicar no marcó cambio con derivados distintos")
	}
	if got.KilosProducidos != 1300 || got.SacosUsados != 26 {
		t.Errorf("derivados no actualizados: %+v", got)
	}
	if got.Rendimiento != 100 {
		t.Errorf("rendimiento = %v, quiere 100", got.Rendimiento)
	}
	// Los campos digitados a mano no se tocan
	if got.Barredura != 3 || got.Merma != 1.5 {
		t.Errorf("barredura/merma modificados: %+v", got)
	}
}

func TestAplicar_SacosEnCeroDejaRendimientoCero(t *testing.T) {
	rec := models.Rendimiento{KilosProducidos: 100, SacosUsados: 2, Rendimiento: 100}

	got, changed := Aplicar(rec, 100, 0)
	if !changed {
		t.Fatalf("Aplicar no marcó cambio")
	}
	if got.Rendimiento != 0 {
		t.Errorf("rendimiento = %v, quiere 0 con sacos en cero", got.Rendimiento)
	}
}
