package maestros

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrRUTInvalido = errors.New("RUT inválido")

// NormalizarRUT valida el dígito verificador (módulo 11) y devuelve el RUT
// en formato canónico "12345678-5", sin puntos y con la K en mayúscula.
func NormalizarRUT(rut string) (string, error) {
	limpio := strings.ToUpper(strings.TrimSpace(rut))
	limpio = strings.ReplaceAll(limpio, ".", "")
	limpio = strings.ReplaceAll(limpio, "-", "")

	if len(limpio) < 2 {
		return "", ErrRUTInvalido
	}

	cuerpo := limpio[:len(limpio)-1]
	dv := limpio[len(limpio)-1:]

	num, err := strconv.ParseInt(cuerpo, 10, 64)
	if err != nil || num <= 0 {
		return "", ErrRUTInvalido
	}

	if digitoVerificador(num) != dv {
		return "", ErrRUTInvalido
	}

	return fmt.Sprintf("%d-%s", num, dv), nil
}

func digitoVerificador(num int64) string {
	var suma int64
	factor := int64(2)
	for num > 0 {
		suma += (num % 10) * factor
		num /= 10
		factor++
		if factor > 7 {
			factor = 2
		}
	}
	resto := 11 - suma%11
	switch resto {
	case 11:
		return "0"
	case 10:
		return "K"
	default:
		return strconv.FormatInt(resto, 10)
	}
}
