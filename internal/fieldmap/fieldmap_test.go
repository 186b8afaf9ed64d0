package fieldmap_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"efarchive/internal/fieldmap"
)

func TestPick(t *testing.T) {
	tests := []struct {
		name     string
		obj      map[string]any
		paths    []string
		fallback string
		want     string
	}{
		{
			name:     "first alias wins",
			obj:      map[string]any{"number": "A-1", "DocumentNumber": "B-2"},
			paths:    []string{"number", "DocumentNumber"},
			fallback: "",
			want:     "A-1",
		},
		{
			name:     "falls through to later alias",
			obj:      map[string]any{"DocumentNumber": "X"},
			paths:    []string{"number", "DocumentNumber"},
			fallback: "",
			want:     "X",
		},
		{
			name:     "empty object returns fallback",
			obj:      map[string]any{},
			paths:    []string{"a", "b"},
			fallback: "N/A",
			want:     "N/A",
		},
		{
			name:     "blank string is treated as absent",
			obj:      map[string]any{"number": "   ", "documentNumber": "77"},
			paths:    []string{"number", "documentNumber"},
			fallback: "",
			want:     "77",
		},
		{
			name:     "nil value is treated as absent",
			obj:      map[string]any{"number": nil},
			paths:    []string{"number"},
			fallback: "none",
			want:     "none",
		},
		{
			name:     "nested path resolves",
			obj:      map[string]any{"buyer": map[string]any{"name": "ACME"}},
			paths:    []string{"buyerName", "buyer.name"},
			fallback: "",
			want:     "ACME",
		},
		{
			name:     "nested path with missing segment returns fallback",
			obj:      map[string]any{"buyer": map[string]any{"city": "Sofia"}},
			paths:    []string{"buyer.name"},
			fallback: "unknown",
			want:     "unknown",
		},
		{
			name:     "nested path through non-object returns fallback",
			obj:      map[string]any{"buyer": "ACME"},
			paths:    []string{"buyer.name"},
			fallback: "unknown",
			want:     "unknown",
		},
		{
			name:     "integral float prints as integer",
			obj:      map[string]any{"documentID": float64(77740)},
			paths:    []string{"documentID"},
			fallback: "",
			want:     "77740",
		},
		{
			name:     "fractional float keeps its fraction",
			obj:      map[string]any{"amount": 120.5},
			paths:    []string{"amount"},
			fallback: "",
			want:     "120.5",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, fieldmap.Pick(tt.obj, tt.paths, tt.fallback))
		})
	}
}

func TestPickNeverPanics(t *testing.T) {
	assert.NotPanics(t, func() {
		fieldmap.Pick(nil, []string{"a.b.c"}, "")
		fieldmap.Pick(map[string]any{"a": []any{1, 2}}, []string{"a.b"}, "")
	})
}

func TestPickRaw(t *testing.T) {
	items := []any{map[string]any{"name": "x"}}
	obj := map[string]any{"Items": items}

	got, ok := fieldmap.PickRaw(obj, []string{"items", "Items"})
	assert.True(t, ok)
	assert.Equal(t, items, got)

	_, ok = fieldmap.PickRaw(obj, []string{"lines"})
	assert.False(t, ok)
}

func TestUnwrap(t *testing.T) {
	inner := map[string]any{"number": "1"}

	assert.Equal(t, inner, fieldmap.Unwrap(inner))
	assert.Equal(t, inner, fieldmap.Unwrap([]any{inner}))
	assert.Equal(t, inner, fieldmap.Unwrap(map[string]any{"invoice": inner}))
	assert.Equal(t, map[string]any{}, fieldmap.Unwrap([]any{}))
	assert.Equal(t, map[string]any{}, fieldmap.Unwrap("not an object"))
	assert.Equal(t, map[string]any{}, fieldmap.Unwrap(nil))
}
