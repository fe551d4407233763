package pedidos

import (
	"testing"

	"panaderia-backend/internal/models"
)

func TestTransicionValida(t *testing.T) {
	tests := []struct {
		desde models.EstadoPedido
		hacia models.EstadoPedido
		want  bool
	}{
		{models.PedidoRecibido, models.PedidoEnPreparacion, true},
		{models.PedidoEnPreparacion, models.PedidoDespachado, true},
		{models.PedidoDespachado, models.PedidoEntregado, true},
		{models.PedidoRecibido, models.PedidoAnulado, true},
		{models.PedidoDespachado, models.PedidoAnulado, true},
		{models.PedidoRecibido, models.PedidoDespachado, false}, // no se salta la preparación
		{models.PedidoEntregado, models.PedidoAnulado, false},   // entregado es terminal
		{models.PedidoAnulado, models.PedidoRecibido, false},    // anulado es terminal
		{models.PedidoEnPreparacion, models.PedidoRecibido, false},
	}

	for _, tt := range tests {
		if got := TransicionValida(tt.desde, tt.hacia); got != tt.want {
			t.Errorf("TransicionValida(%s, %s) = %v, quiere %v", tt.desde, tt.hacia, got, tt.want)
		}
	}
}
