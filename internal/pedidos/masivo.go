package pedidos

import (
	"sort"
	"time"
)

// BorradorPedido es un pedido aún no confirmado del flujo masivo: una
// fecha de entrega con su propia copia de las líneas base.
type BorradorPedido struct {
	FechaEntrega time.Time     `json:"fecha_entrega"`
	Items        []ItemCarrito `json:"items"`
}

// ExpandirMasivo arma un borrador por cada fecha, con una copia
// independiente de las líneas base: el usuario ajusta un día sin tocar
// los demás. Fechas repetidas se colapsan y el resultado queda ordenado
// por fecha.
func ExpandirMasivo(fechas []time.Time, base []ItemCarrito) []BorradorPedido {
	if len(base) == 0 {
		return nil
	}

	vistas := make(map[time.Time]struct{}, len(fechas))
	unicas := make([]time.Time, 0, len(fechas))
	for _, f := range fechas {
		dia := time.Date(f.Year(), f.Month(), f.Day(), 0, 0, 0, 0, time.UTC)
		if _, ok := vistas[dia]; ok {
			continue
		}
		vistas[dia] = struct{}{}
		unicas = append(unicas, dia)
	}
	sort.Slice(unicas, func(i, j int) bool { return unicas[i].Before(unicas[j]) })

	borradores := make([]BorradorPedido, 0, len(unicas))
	for _, dia := range unicas {
		items := make([]ItemCarrito, len(base))
		copy(items, base)
		borradores = append(borradores, BorradorPedido{FechaEntrega: dia, Items: items})
	}
	return borradores
}
