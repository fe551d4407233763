package pedidos

import "panaderia-backend/internal/models"

// Transiciones permitidas del pedido. Entregado y anulado son terminales.
var transiciones = map[models.EstadoPedido][]models.EstadoPedido{
	models.PedidoRecibido:      {models.PedidoEnPreparacion, models.PedidoAnulado},
	models.PedidoEnPreparacion: {models.PedidoDespachado, models.PedidoAnulado},
	models.PedidoDespachado:    {models.PedidoEntregado, models.PedidoAnulado},
}

func TransicionValida(desde, hacia models.EstadoPedido) bool {
	for _, e := range transiciones[desde] {
		if e == hacia {
			return true
		}
	}
	return false
}
