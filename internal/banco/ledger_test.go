package banco

import "testing"

func TestSaldoTrasMovimiento(t *testing.T) {
	// Cadena de la cartola de ejemplo: libro vacío, abono de 1.500.000,
	// luego cargo de 350.000
	saldo := SaldoTrasMovimiento(0, 1500000, 0)
	if saldo != 1500000 {
		t.Fatalf("saldo tras el abono = %v, quiere 1500000", saldo)
	}

	saldo = SaldoTrasMovimiento(saldo, 0, 350000)
	if saldo != 1150000 {
		t.Fatalf("saldo tras el cargo = %v, quiere 1150000", saldo)
	}
}

func TestSaldoTrasMovimiento_Decimales(t *testing.T) {
	// float64 ingenuo: 0.1 + 0.2 != 0.3; la suma va por decimal
	saldo := SaldoTrasMovimiento(0.1, 0.2, 0)
	if saldo != 0.3 {
		t.Errorf("saldo = %v, quiere 0.3", saldo)
	}
}

func TestDebeConciliar(t *testing.T) {
	tests := []struct {
		name      string
		cargo     float64
		documento string
		want      bool
	}{
		{"cargo con folio real", 350000, "F-10234", true},
		{"abono no concilia", 0, "F-10234", false},
		{"documento vacío", 350000, "", false},
		{"guion de relleno", 350000, "-", false},
		{"cero de relleno", 350000, "0", false},
		{"sin dato", 350000, "s/d", false},
		{"sin dato en mayúscula", 350000, "S/D", false},
		{"espacios alrededor del relleno", 350000, "  -  ", false},
		{"folio con espacios", 350000, "  F-10234  ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DebeConciliar(tt.cargo, tt.documento)
			if got != tt.want {
				t.Errorf("DebeConciliar(%v, %q) = %v, quiere %v", tt.cargo, tt.documento, got, tt.want)
			}
		})
	}
}
