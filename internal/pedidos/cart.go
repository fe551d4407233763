package pedidos

import "strings"

// Franjas de entrega que maneja el despacho.
const (
	HorarioAM       = "am"
	HorarioMediodia = "mediodia"
	HorarioPM       = "pm"
)

func HorarioValido(h string) bool {
	switch h {
	case HorarioAM, HorarioMediodia, HorarioPM:
		return true
	}
	return false
}

// ItemCarrito es una línea del carrito antes de convertirse en pedido.
type ItemCarrito struct {
	ProductoID uint    `json:"producto_id"`
	Nombre     string  `json:"nombre"`
	Unidad     string  `json:"unidad"`
	Horario    string  `json:"horario"`
	Cantidad   float64 `json:"cantidad"`
}

func mismaLinea(a, b ItemCarrito) bool {
	return a.ProductoID == b.ProductoID &&
		strings.EqualFold(a.Unidad, b.Unidad) &&
		a.Horario == b.Horario
}

// FusionarItem agrega una línea al carrito. Si ya existe la misma
// combinación de producto, unidad y horario, las cantidades se SUMAN.
// Cantidad cero o negativa elimina la línea.
func FusionarItem(items []ItemCarrito, nuevo ItemCarrito) []ItemCarrito {
	out := make([]ItemCarrito, 0, len(items)+1)
	fusionado := false
	for _, it := range items {
		if mismaLinea(it, nuevo) {
			if nuevo.Cantidad > 0 {
				it.Cantidad += nuevo.Cantidad
				out = append(out, it)
			}
			fusionado = true
			continue
		}
		out = append(out, it)
	}
	if !fusionado && nuevo.Cantidad > 0 {
		out = append(out, nuevo)
	}
	return out
}
