package main

import (
	"log"
	"strings"

	"panaderia-backend/internal/audit"
	"panaderia-backend/internal/auth"
	"panaderia-backend/internal/banco"
	"panaderia-backend/internal/caja"
	"panaderia-backend/internal/config"
	"panaderia-backend/internal/dashboard"
	"panaderia-backend/internal/database"
	"panaderia-backend/internal/insumos"
	"panaderia-backend/internal/maestros"
	"panaderia-backend/internal/models"
	"panaderia-backend/internal/pedidos"
	"panaderia-backend/internal/produccion"
	"panaderia-backend/internal/ventas"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	cfg := config.Load()
	database.Init(cfg)

	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			if e, ok := err.(*fiber.Error); ok {
				return c.Status(e.Code).JSON(fiber.Map{
					"error": e.Message,
				})
			}
			log.Println("Error inesperado:", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Error interno del servidor",
			})
		},
	})

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	api := app.Group("/api")

	// Auth público
	api.Post("/auth/register-admin", auth.RegisterAdminHandler(cfg))
	api.Post("/auth/login", auth.LoginHandler(cfg))

	// Rutas autenticadas
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	protected.Get("/auth/me", auth.MeHandler())

	soloAdmin := auth.RequireRole(models.RoleAdmin)
	personal := auth.RequireRole(models.RoleAdmin, models.RoleOperador)

	// Gestión de usuarios
	protected.Post("/usuarios", soloAdmin, auth.CreateUserHandler())

	// Ventas diarias
	protected.Post("/ventas", personal, ventas.CreateVentaHandler())
	protected.Get("/ventas", personal, ventas.ListVentasHandler())
	protected.Put("/ventas/:id", personal, ventas.UpdateVentaHandler())
	protected.Delete("/ventas/:id", soloAdmin, ventas.DeleteVentaHandler())

	// Rendimiento de producción
	protected.Post("/rendimientos", personal, produccion.CreateRendimientoHandler())
	protected.Get("/rendimientos", personal, produccion.ListRendimientosHandler())
	protected.Put("/rendimientos/:id", personal, produccion.UpdateRendimientoHandler())
	protected.Delete("/rendimientos/:id", soloAdmin, produccion.DeleteRendimientoHandler())

	// Insumos y sus compras/consumos
	protected.Post("/insumos", personal, insumos.CreateInsumoHandler())
	protected.Get("/insumos", personal, insumos.ListInsumosHandler())
	protected.Get("/insumos/stock", personal, insumos.StockInsumosHandler())
	protected.Put("/insumos/:id", personal, insumos.UpdateInsumoHandler())
	protected.Delete("/insumos/:id", soloAdmin, insumos.DeleteInsumoHandler())

	protected.Post("/insumo-transacciones", personal, insumos.CreateTransaccionHandler())
	protected.Get("/insumo-transacciones", personal, insumos.ListTransaccionesHandler())
	protected.Put("/insumo-transacciones/:id", personal, insumos.UpdateTransaccionHandler())
	protected.Delete("/insumo-transacciones/:id", soloAdmin, insumos.DeleteTransaccionHandler())

	// Libro del banco (append-only)
	protected.Post("/movimientos-banco", personal, banco.CreateMovimientoHandler())
	protected.Get("/movimientos-banco", personal, banco.ListMovimientosHandler())
	protected.Get("/movimientos-banco/saldo", personal, banco.SaldoHandler())

	// Caja chica
	protected.Post("/caja-chica", personal, caja.CreateCajaChicaHandler())
	protected.Get("/caja-chica", personal, caja.ListCajaChicaHandler())
	protected.Put("/caja-chica/:id", personal, caja.UpdateCajaChicaHandler())
	protected.Delete("/caja-chica/:id", soloAdmin, caja.DeleteCajaChicaHandler())

	// Fichas maestras
	maestros.ClienteResource.Register(protected.Group("/clientes", personal), soloAdmin)
	maestros.ProveedorResource.Register(protected.Group("/proveedores", personal), soloAdmin)
	maestros.TrabajadorResource.Register(protected.Group("/trabajadores", personal), soloAdmin)
	maestros.EquipoResource.Register(protected.Group("/equipos", personal), soloAdmin)
	maestros.VehiculoResource.Register(protected.Group("/vehiculos", personal), soloAdmin)

	// Catálogo del portal
	protected.Get("/productos", pedidos.ListProductosHandler())
	protected.Post("/productos", personal, pedidos.CreateProductoHandler())
	protected.Post("/productos/importar", personal, pedidos.ImportarCatalogoHandler())
	protected.Put("/productos/:id", personal, pedidos.UpdateProductoHandler())
	protected.Delete("/productos/:id", soloAdmin, pedidos.DeleteProductoHandler())

	// Pedidos del portal. El resumen va antes de /:codigo para que fiber
	// no lo capture como código.
	protected.Get("/pedidos/resumen", personal, pedidos.ResumenDiarioHandler())
	protected.Post("/pedidos", pedidos.CreatePedidoHandler())
	protected.Get("/pedidos", pedidos.ListPedidosHandler())
	protected.Get("/pedidos/:codigo", pedidos.GetPedidoHandler())
	protected.Put("/pedidos/:codigo/estado", personal, pedidos.UpdateEstadoHandler())
	protected.Post("/pedidos/:codigo/anular", pedidos.AnularPedidoHandler())

	// Flujo masivo
	protected.Post("/pedidos-masivo/expandir", pedidos.ExpandirMasivoHandler())
	protected.Post("/pedidos-masivo/confirmar", pedidos.ConfirmarMasivoHandler())

	// Reclamos
	protected.Post("/reclamos", pedidos.CreateReclamoHandler())
	protected.Get("/reclamos", pedidos.ListReclamosHandler())
	protected.Put("/reclamos/:id", personal, pedidos.ResponderReclamoHandler())

	// Dashboard
	protected.Get("/dashboard/resumen", personal, dashboard.ResumenFinancieroHandler())
	protected.Get("/dashboard/grafico-ventas", personal, dashboard.GraficoVentasHandler())

	// Audit logs
	protected.Get("/audit-logs", personal, audit.ListAuditLogsHandler())
	protected.Post("/audit-logs/:id/undo", soloAdmin, audit.UndoAuditLogHandler())

	log.Println("Servidor escuchando en el puerto", cfg.HTTPPort)
	if err := app.Listen(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}
