package maestros

import "testing"

func TestNormalizarRUT(t *testing.T) {
	tests := []struct {
		name    string
		entrada string
		want    string
		wantErr bool
	}{
		{"con puntos y guion", "12.345.678-5", "12345678-5", false},
		{"sin puntos", "12345678-5", "12345678-5", false},
		{"sin guion", "123456785", "12345678-5", false},
		{"dv k minúscula", "11111112-k", "11111112-K", false},
		{"dv cero", "11111117-0", "11111117-0", false},
		{"espacios alrededor", "  12345678-5  ", "12345678-5", false},
		{"dv incorrecto", "12345678-9", "", true},
		{"vacío", "", "", true},
		{"solo dv", "5", "", true},
		{"cuerpo no numérico", "abcdefg-5", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizarRUT(tt.entrada)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("NormalizarRUT(%q) = %q, quiere error", tt.entrada, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("NormalizarRUT(%q) error inesperado: %v", tt.entrada, err)
			}
			if got != tt.want {
				t.Errorf("NormalizarRUT(%q) = %q, quiere %q", tt.entrada, got, tt.want)
			}
		})
	}
}
