package pedidos

import "testing"

func TestFusionarItem_AgregaLineaNueva(t *testing.T) {
	carrito := []ItemCarrito{
		{ProductoID: 1, Nombre: "Marraqueta", Unidad: "kg", Horario: HorarioAM, Cantidad: 10},
	}

	carrito = FusionarItem(carrito, ItemCarrito{ProductoID: 2, Nombre: "Hallulla", Unidad: "kg", Horario: HorarioAM, Cantidad: 5})

	if len(carrito) != 2 {
		t.Fatalf("len(carrito) = %d, quiere 2", len(carrito))
	}
}

func TestFusionarItem_SumaCantidades(t *testing.T) {
	carrito := []ItemCarrito{
		{ProductoID: 1, Nombre: "Marraqueta", Unidad: "kg", Horario: HorarioAM, Cantidad: 2},
	}

	carrito = FusionarItem(carrito, ItemCarrito{ProductoID: 1, Nombre: "Marraqueta", Unidad: "kg", Horario: HorarioAM, Cantidad: 3})

	if len(carrito) != 1 {
		t.Fatalf("len(carrito) = %d, quiere 1 línea, no dos", len(carrito))
	}
	if carrito[0].Cantidad != 5 {
		t.Errorf("cantidad = %v, quiere 5 (2 + 3 se suman)", carrito[0].Cantidad)
	}
}

func TestFusionarItem_MismoProductoDistintoHorario(t *testing.T) {
	carrito := []ItemCarrito{
		{ProductoID: 1, Nombre: "Marraqueta", Unidad: "kg", Horario: HorarioAM, Cantidad: 10},
	}

	carrito = FusionarItem(carrito, ItemCarrito{ProductoID: 1, Nombre: "Marraqueta", Unidad: "kg", Horario: HorarioPM, Cantidad: 8})

	if len(carrito) != 2 {
		t.Fatalf("len(carrito) = %d, quiere 2: distinto horario es otra línea", len(carrito))
	}
}

func TestFusionarItem_CantidadCeroElimina(t *testing.T) {
	carrito := []ItemCarrito{
		{ProductoID: 1, Nombre: "Marraqueta", Unidad: "kg", Horario: HorarioAM, Cantidad: 10},
		{ProductoID: 2, Nombre: "Hallulla", Unidad: "kg", Horario: HorarioAM, Cantidad: 5},
	}

	carrito = FusionarItem(carrito, ItemCarrito{ProductoID: 1, Nombre: "Marraqueta", Unidad: "kg", Horario: HorarioAM, Cantidad: 0})

	if len(carrito) != 1 {
		t.Fatalf("len(carrito) = %d, quiere 1", len(carrito))
	}
	if carrito[0].ProductoID != 2 {
		t.Errorf("quedó el producto %d, quiere 2", carrito[0].ProductoID)
	}
}

func TestFusionarItem_CantidadNegativaNoAgrega(t *testing.T) {
	carrito := FusionarItem(nil, ItemCarrito{ProductoID: 1, Nombre: "Marraqueta", Unidad: "kg", Horario: HorarioAM, Cantidad: -3})
	if len(carrito) != 0 {
		t.Fatalf("len(carrito) = %d, quiere 0", len(carrito))
	}
}

func TestHorarioValido(t *testing.T) {
	for _, h := range []string{HorarioAM, HorarioMediodia, HorarioPM} {
		if !HorarioValido(h) {
			t.Errorf("HorarioValido(%q) = false, quiere true", h)
		}
	}
	for _, h := range []string{"", "AM", "tarde", "noche"} {
		if HorarioValido(h) {
			t.Errorf("HorarioValido(%q) = true, quiere false", h)
		}
	}
}
