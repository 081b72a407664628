package fields

import (
	"encoding/json"
	"testing"
)

func TestAliases_String(t *testing.T) {
	teacher := Aliases{"prepod_full", "prep_fio", "fio"}

	tests := []struct {
		name string
		rec  map[string]any
		want string
	}{
		{"first alias", map[string]any{"prepod_full": "Иванов И.И.", "fio": "Петров"}, "Иванов И.И."},
		{"skips missing", map[string]any{"fio": "Петров П.П."}, "Петров П.П."},
		{"skips empty and blank", map[string]any{"prepod_full": "", "prep_fio": "   ", "fio": "Сидоров"}, "Сидоров"},
		{"skips null", map[string]any{"prepod_full": nil, "prep_fio": "Смирнов"}, "Смирнов"},
		{"trims", map[string]any{"prepod_full": "  Иванов  "}, "Иванов"},
		{"numbers are text", map[string]any{"fio": float64(303)}, "303"},
		{"ignores objects", map[string]any{"prepod_full": map[string]any{"x": 1}, "fio": "Ок"}, "Ок"},
		{"nothing", map[string]any{"other": "x"}, ""},
		{"nil record", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := teacher.String(tt.rec); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestAliases_Number(t *testing.T) {
	keys := Aliases{"rating", "score"}

	if v, ok := keys.Number(map[string]any{"score": float64(7), "rating": float64(42)}); !ok || v != 42 {
		t.Errorf("expected rating to win, got %v %v", v, ok)
	}
	if v, ok := keys.Number(map[string]any{"rating": "high", "score": json.Number("3.5")}); !ok || v != 3.5 {
		t.Errorf("expected non-numeric rating to fall through, got %v %v", v, ok)
	}
	if _, ok := keys.Number(map[string]any{"total": float64(1)}); ok {
		t.Errorf("expected no match for unknown keys")
	}
}
