package pedidos

import (
	"testing"
	"time"
)

func dia(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestExpandirMasivo_UnBorradorPorFecha(t *testing.T) {
	base := []ItemCarrito{
		{ProductoID: 1, Nombre: "Marraqueta", Unidad: "kg", Horario: HorarioAM, Cantidad: 20},
		{ProductoID: 2, Nombre: "Hallulla", Unidad: "kg", Horario: HorarioPM, Cantidad: 10},
	}
	fechas := []time.Time{dia("2026-09-01"), dia("2026-09-02"), dia("2026-09-03")}

	borradores := ExpandirMasivo(fechas, base)

	if len(borradores) != 3 {
		t.Fatalf("len(borradores) = %d, quiere 3", len(borradores))
	}
	for _, b := range borradores {
		if len(b.Items) != 2 {
			t.Errorf("borrador %s con %d líneas, quiere 2", b.FechaEntrega.Format("2006-01-02"), len(b.Items))
		}
	}
}

func TestExpandirMasivo_BorradoresIndependientes(t *testing.T) {
	base := []ItemCarrito{
		{ProductoID: 1, Nombre: "Marraqueta", Unidad: "kg", Horario: HorarioAM, Cantidad: 20},
	}
	borradores := ExpandirMasivo([]time.Time{dia("2026-09-01"), dia("2026-09-02")}, base)

	// Ajustar el primer día no puede tocar el segundo ni la base
	borradores[0].Items[0].Cantidad = 99

	if borradores[1].Items[0].Cantidad != 20 {
		t.Errorf("el segundo borrador cambió a %v, quiere 20", borradores[1].Items[0].Cantidad)
	}
	if base[0].Cantidad != 20 {
		t.Errorf("la base cambió a %v, quiere 20", base[0].Cantidad)
	}
}

func TestExpandirMasivo_FechasRepetidasYOrden(t *testing.T) {
	base := []ItemCarrito{{ProductoID: 1, Nombre: "Marraqueta", Unidad: "kg", Horario: HorarioAM, Cantidad: 5}}
	fechas := []time.Time{dia("2026-09-03"), dia("2026-09-01"), dia("2026-09-03"), dia("2026-09-02")}

	borradores := ExpandirMasivo(fechas, base)

	if len(borradores) != 3 {
		t.Fatalf("len(borradores) = %d, quiere 3 (repetida colapsada)", len(borradores))
	}
	want := []string{"2026-09-01", "2026-09-02", "2026-09-03"}
	for i, b := range borradores {
		if got := b.FechaEntrega.Format("2006-01-02"); got != want[i] {
			t.Errorf("borrador %d con fecha %s, quiere %s", i, got, want[i])
		}
	}
}

func TestExpandirMasivo_SinBaseNoHayBorradores(t *testing.T) {
	borradores := ExpandirMasivo([]time.Time{dia("2026-09-01")}, nil)
	if len(borradores) != 0 {
		t.Fatalf("len(borradores) = %d, quiere 0", len(borradores))
	}
}
