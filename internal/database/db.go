package database

import (
	"log"

	"panaderia-backend/internal/config"
	"panaderia-backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

func Init(cfg *config.Config) {
	var err error

	DB, err = gorm.Open(postgres.Open(cfg.DatabaseDSN), &gorm.Config{})
	if err != nil {
		log.Fatalf("No se pudo conectar a la base de datos: %v", err)
	}

	// Migración manual: los datos importados del almacén JSON antiguo traían
	// fechas duplicadas en rendimientos. Hay que limpiar ANTES del
	// AutoMigrate o la creación del uniqueIndex falla.
	if DB.Migrator().HasTable(&models.Rendimiento{}) {
		var dupes int64
		DB.Raw(`SELECT COUNT(*) FROM (
			SELECT fecha FROM rendimientos GROUP BY fecha HAVING COUNT(*) > 1
		) d`).Scan(&dupes)
		if dupes > 0 {
			log.Printf("rendimientos tiene %d fechas duplicadas, se conserva el registro más reciente por fecha...", dupes)
			DB.Exec(`DELETE FROM rendimientos r USING rendimientos r2
				WHERE r.fecha = r2.fecha AND r.id < r2.id`)
			log.Println("Duplicados de rendimientos eliminados")
		}
	}

	err = DB.AutoMigrate(
		&models.User{},
		&models.Venta{},
		&models.Insumo{},
		&models.InsumoTransaccion{},
		&models.Rendimiento{},
		&models.MovimientoBanco{},
		&models.CajaChica{},
		&models.AuditLog{},
		// Datos maestros
		&models.Cliente{},
		&models.Proveedor{},
		&models.Trabajador{},
		&models.Equipo{},
		&models.Vehiculo{},
		// Portal de pedidos
		&models.Producto{},
		&models.Pedido{},
		&models.PedidoItem{},
		&models.Reclamo{},
	)
	if err != nil {
		log.Fatalf("Error en AutoMigrate: %v", err)
	}

	log.Println("Conexión a la base de datos OK. Migración completada.")
}
