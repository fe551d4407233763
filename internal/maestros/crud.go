package maestros

import (
	"fmt"

	"panaderia-backend/internal/audit"
	"panaderia-backend/internal/auth"
	"panaderia-backend/internal/database"
	"panaderia-backend/internal/models"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

var validate = validator.New()

// Resource es el CRUD genérico de los datos maestros. Los módulos
// financieros llevan handlers propios porque arrastran recálculos; las
// fichas maestras son todas iguales: parsear, validar, guardar, auditar.
type Resource[T any] struct {
	// Nombre de entidad para el log de auditoría ("cliente", "vehiculo"...)
	EntityType string
	// Descripción corta para el log ("Panadería San José", "GH-1234")
	Describir func(*T) string
	// ID del registro (gorm lo llena tras Create)
	GetID func(*T) uint
	// Normalización previa al guardado (RUT canónico, patente en
	// mayúscula). Opcional.
	Normalizar func(*T) error
	// Filtros de listado a partir de la query. Opcional.
	Filtrar func(*gorm.DB, *fiber.Ctx) *gorm.DB
}

func getUserInfo(c *fiber.Ctx) (uint, string, error) {
	userIDVal := c.Locals(auth.CtxUserIDKey)
	userID, ok := userIDVal.(uint)
	if !ok {
		return 0, "", fiber.NewError(fiber.StatusForbidden, "No se pudo obtener el usuario")
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", userID).Error; err != nil {
		return 0, "", fiber.NewError(fiber.StatusInternalServerError, "Usuario no encontrado")
	}

	return userID, user.Name, nil
}

func (r *Resource[T]) preparar(entity *T) error {
	if err := validate.Struct(entity); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
			return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("Campo '%s' inválido", errs[0].Field()))
		}
		return fiber.NewError(fiber.StatusBadRequest, "Datos inválidos")
	}
	if r.Normalizar != nil {
		if err := r.Normalizar(entity); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
	}
	return nil
}

func (r *Resource[T]) auditar(c *fiber.Ctx, action models.AuditAction, id uint, desc string, before, after interface{}) {
	userID, userName, err := getUserInfo(c)
	if err != nil {
		return
	}
	_ = audit.WriteLog(audit.LogOptions{
		UserID:      userID,
		UserName:    userName,
		EntityType:  r.EntityType,
		EntityID:    id,
		Action:      action,
		Description: desc,
		Before:      before,
		After:       after,
	})
}

func (r *Resource[T]) ListHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var entity T
		dbq := database.DB.Model(&entity)
		if r.Filtrar != nil {
			dbq = r.Filtrar(dbq, c)
		}

		var entities []T
		if err := dbq.Order("id ASC").Find(&entities).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudieron listar los registros")
		}
		return c.JSON(entities)
	}
}

func (r *Resource[T]) GetHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var entity T
		if err := database.DB.First(&entity, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Registro no encontrado")
		}
		return c.JSON(entity)
	}
}

func (r *Resource[T]) CreateHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var entity T
		if err := c.BodyParser(&entity); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		if err := r.preparar(&entity); err != nil {
			return err
		}

		if err := database.DB.Create(&entity).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo crear el registro")
		}

		r.auditar(c, models.AuditActionCreate, r.GetID(&entity),
			fmt.Sprintf("%s creado: %s", r.EntityType, r.Describir(&entity)), nil, entity)

		return c.Status(fiber.StatusCreated).JSON(entity)
	}
}

func (r *Resource[T]) UpdateHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var entity T
		if err := database.DB.First(&entity, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Registro no encontrado")
		}
		oldEntity := entity

		// BodyParser sobre el registro ya cargado: los campos que el
		// cliente no manda conservan su valor actual
		if err := c.BodyParser(&entity); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		if err := r.preparar(&entity); err != nil {
			return err
		}

		if err := database.DB.Save(&entity).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo actualizar el registro")
		}

		r.auditar(c, models.AuditActionUpdate, r.GetID(&entity),
			fmt.Sprintf("%s actualizado: %s", r.EntityType, r.Describir(&entity)), oldEntity, entity)

		return c.JSON(entity)
	}
}

func (r *Resource[T]) DeleteHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var entity T
		if err := database.DB.First(&entity, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Registro no encontrado")
		}

		if err := database.DB.Delete(&entity).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo eliminar el registro")
		}

		r.auditar(c, models.AuditActionDelete, r.GetID(&entity),
			fmt.Sprintf("%s eliminado: %s", r.EntityType, r.Describir(&entity)), entity, nil)

		return c.SendStatus(fiber.StatusNoContent)
	}
}

// Register cuelga el recurso bajo el router dado. Los deletes de fichas
// maestras quedan para admin en el registro de rutas del servidor.
func (r *Resource[T]) Register(router fiber.Router, deleteMiddleware ...fiber.Handler) {
	router.Get("/", r.ListHandler())
	router.Get("/:id", r.GetHandler())
	router.Post("/", r.CreateHandler())
	router.Put("/:id", r.UpdateHandler())

	handlers := append([]fiber.Handler{}, deleteMiddleware...)
	handlers = append(handlers, r.DeleteHandler())
	router.Delete("/:id", handlers...)
}
