package pedidos

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	"panaderia-backend/internal/audit"
	"panaderia-backend/internal/auth"
	"panaderia-backend/internal/database"
	"panaderia-backend/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/xuri/excelize/v2"
)

// normalizarNombre: baja a minúscula y quita tildes y eñes para comparar
// nombres de producto que la planilla trae con mayúsculas o sin acentos.
// Ej: "PAN AMASADO AÑEJO" -> "pan amasado anejo"
func normalizarNombre(s string) string {
	replacements := map[rune]string{
		'á': "a", 'Á': "a",
		'é': "e", 'É': "e",
		'í': "i", 'Í': "i",
		'ó': "o", 'Ó': "o",
		'ú': "u", 'Ú': "u",
		'ü': "u", 'Ü': "u",
		'ñ': "n", 'Ñ': "n",
	}

	var result strings.Builder
	for _, r := range s {
		if replacement, ok := replacements[r]; ok {
			result.WriteString(replacement)
		} else {
			result.WriteRune(r)
		}
	}
	return strings.ToLower(strings.TrimSpace(result.String()))
}

type ProductoRequest struct {
	Nombre string  `json:"nombre"`
	Unidad string  `json:"unidad"`
	Precio float64 `json:"precio"`
	Activo *bool   `json:"activo"`
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

// GET /api/productos?activo=true
func ListProductosHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		dbq := database.DB.Model(&models.Producto{})
		switch c.Query("activo") {
		case "true":
			dbq = dbq.Where("activo = ?", true)
		case "false":
			dbq = dbq.Where("activo = ?", false)
		}

		var productos []models.Producto
		if err := dbq.Order("nombre ASC, unidad ASC").Find(&productos).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo listar el catálogo")
		}
		return c.JSON(productos)
	}
}

// POST /api/productos
func CreateProductoHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body ProductoRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		nombre := strings.TrimSpace(body.Nombre)
		unidad := strings.ToLower(strings.TrimSpace(body.Unidad))
		if nombre == "" || unidad == "" {
			return fiber.NewError(fiber.StatusBadRequest, "nombre y unidad son obligatorios")
		}
		if body.Precio < 0 {
			return fiber.NewError(fiber.StatusBadRequest, "precio no puede ser negativo")
		}

		producto := models.Producto{
			Nombre: nombre,
			Unidad: unidad,
			Precio: body.Precio,
			Activo: true,
		}
		if body.Activo != nil {
			producto.Activo = *body.Activo
		}

		if err := database.DB.Create(&producto).Error; err != nil {
			return fiber.NewError(fiber.StatusConflict, "Ya existe un producto con ese nombre y unidad")
		}

		userID, userName, uerr := getUserInfo(c)
		if uerr == nil {
			_ = audit.WriteLog(audit.LogOptions{
				UserID:      userID,
				UserName:    userName,
				EntityType:  "producto",
				EntityID:    producto.ID,
				Action:      models.AuditActionCreate,
				Description: fmt.Sprintf("Producto creado: %s (%s)", producto.Nombre, producto.Unidad),
				Before:      nil,
				After:       producto,
			})
		}

		return c.Status(fiber.StatusCreated).JSON(producto)
	}
}

// PUT /api/productos/:id
func UpdateProductoHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var producto models.Producto
		if err := database.DB.First(&producto, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Producto no encontrado")
		}
		oldProducto := producto

		var body ProductoRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Cuerpo de la petición inválido")
		}

		if nombre := strings.TrimSpace(body.Nombre); nombre != "" {
			producto.Nombre = nombre
		}
		if unidad := strings.ToLower(strings.TrimSpace(body.Unidad)); unidad != "" {
			producto.Unidad = unidad
		}
		if body.Precio > 0 {
			producto.Precio = body.Precio
		}
		if body.Activo != nil {
			producto.Activo = *body.Activo
		}

		if err := database.DB.Save(&producto).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo actualizar el producto")
		}

		userID, userName, uerr := getUserInfo(c)
		if uerr == nil {
			_ = audit.WriteLog(audit.LogOptions{
				UserID:      userID,
				UserName:    userName,
				EntityType:  "producto",
				EntityID:    producto.ID,
				Action:      models.AuditActionUpdate,
				Description: fmt.Sprintf("Producto actualizado: %s (%s)", producto.Nombre, producto.Unidad),
				Before:      oldProducto,
				After:       producto,
			})
		}

		return c.JSON(producto)
	}
}

// DELETE /api/productos/:id — desactiva, no borra: los pedidos históricos
// referencian el producto.
func DeleteProductoHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Params("id")

		var producto models.Producto
		if err := database.DB.First(&producto, "id = ?", id).Error; err != nil {
			return fiber.NewError(fiber.StatusNotFound, "Producto no encontrado")
		}
		oldProducto := producto

		producto.Activo = false
		if err := database.DB.Save(&producto).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo desactivar el producto")
		}

		userID, userName, uerr := getUserInfo(c)
		if uerr == nil {
			_ = audit.WriteLog(audit.LogOptions{
				UserID:      userID,
				UserName:    userName,
				EntityType:  "producto",
				EntityID:    producto.ID,
				Action:      models.AuditActionUpdate,
				Description: fmt.Sprintf("Producto desactivado: %s (%s)", producto.Nombre, producto.Unidad),
				Before:      oldProducto,
				After:       producto,
			})
		}

		return c.SendStatus(fiber.StatusNoContent)
	}
}

type ImportarCatalogoResponse struct {
	Creados      int      `json:"creados"`
	Actualizados int      `json:"actualizados"`
	Omitidos     []string `json:"omitidos"`
}

// POST /api/productos/importar
// Carga el catálogo desde una planilla .xlsx con columnas
// nombre | unidad | precio. Filas existentes (mismo nombre y unidad,
// comparación sin tildes) actualizan el precio; las nuevas se crean.
func ImportarCatalogoHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		fileHeader, err := c.FormFile("file")
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "No se pudo subir el archivo: "+err.Error())
		}

		if !strings.HasSuffix(strings.ToLower(fileHeader.Filename), ".xlsx") {
			return fiber.NewError(fiber.StatusBadRequest, "Solo se aceptan archivos .xlsx")
		}

		file, err := fileHeader.Open()
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo abrir el archivo: "+err.Error())
		}
		defer file.Close()

		excelFile, err := excelize.OpenReader(file)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "No se pudo leer el Excel: "+err.Error())
		}
		defer excelFile.Close()

		sheetList := excelFile.GetSheetList()
		if len(sheetList) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "El Excel no tiene hojas")
		}

		rows, err := excelFile.GetRows(sheetList[0])
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "No se pudo leer la hoja: "+err.Error())
		}
		if len(rows) == 0 {
			return fiber.NewError(fiber.StatusBadRequest, "El Excel está vacío")
		}

		// Si la primera fila parece encabezado, se salta
		startIndex := 0
		if len(rows[0]) > 0 {
			firstCell := strings.ToUpper(strings.TrimSpace(rows[0][0]))
			if strings.Contains(firstCell, "NOMBRE") || strings.Contains(firstCell, "PRODUCTO") {
				startIndex = 1
			}
		}

		var existentes []models.Producto
		if err := database.DB.Find(&existentes).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "No se pudo leer el catálogo actual")
		}

		porClave := make(map[string]*models.Producto, len(existentes))
		for i := range existentes {
			clave := normalizarNombre(existentes[i].Nombre) + "|" + strings.ToLower(existentes[i].Unidad)
			porClave[clave] = &existentes[i]
		}

		resp := ImportarCatalogoResponse{Omitidos: make([]string, 0)}

		for i := startIndex; i < len(rows); i++ {
			row := rows[i]
			if len(row) == 0 || strings.TrimSpace(row[0]) == "" {
				continue
			}

			nombre := strings.TrimSpace(row[0])
			unidad := "unidad"
			if len(row) > 1 && strings.TrimSpace(row[1]) != "" {
				unidad = strings.ToLower(strings.TrimSpace(row[1]))
			}

			precio := 0.0
			if len(row) > 2 && strings.TrimSpace(row[2]) != "" {
				precioStr := strings.ReplaceAll(strings.TrimSpace(row[2]), ".", "")
				precioStr = strings.ReplaceAll(precioStr, ",", ".")
				precio, err = strconv.ParseFloat(precioStr, 64)
				if err != nil || precio < 0 {
					resp.Omitidos = append(resp.Omitidos, fmt.Sprintf("fila %d: precio inválido '%s'", i+1, row[2]))
					continue
				}
			}

			clave := normalizarNombre(nombre) + "|" + unidad
			if existente, ok := porClave[clave]; ok {
				existente.Precio = precio
				existente.Activo = true
				if err := database.DB.Save(existente).Error; err != nil {
					resp.Omitidos = append(resp.Omitidos, fmt.Sprintf("fila %d: %s no se pudo actualizar", i+1, nombre))
					continue
				}
				resp.Actualizados++
				continue
			}

			nuevo := models.Producto{Nombre: nombre, Unidad: unidad, Precio: precio, Activo: true}
			if err := database.DB.Create(&nuevo).Error; err != nil {
				resp.Omitidos = append(resp.Omitidos, fmt.Sprintf("fila %d: %s no se pudo crear", i+1, nombre))
				continue
			}
			porClave[clave] = &nuevo
			resp.Creados++
		}

		log.Printf("Catálogo importado: %d creados, %d actualizados, %d omitidos",
			resp.Creados, resp.Actualizados, len(resp.Omitidos))

		userID, userName, uerr := getUserInfo(c)
		if uerr == nil {
			_ = audit.WriteLog(audit.LogOptions{
				UserID:      userID,
				UserName:    userName,
				EntityType:  "producto",
				EntityID:    0,
				Action:      models.AuditActionCreate,
				Description: fmt.Sprintf("Importación de catálogo: %d creados, %d actualizados", resp.Creados, resp.Actualizados),
				Before:      nil,
				After:       resp,
			})
		}

		return c.JSON(resp)
	}
}
