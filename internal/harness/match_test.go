package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchSubset(t *testing.T) {
	tests := []struct {
		name     string
		expected any
		actual   any
		want     bool
	}{
		{"equal scalars", 1.0, 1.0, true},
		{"different scalars", "a", "b", false},
		{"subset object", map[string]any{"id": 1.0}, map[string]any{"id": 1.0, "title": "x"}, true},
		{"missing key", map[string]any{"id": 1.0}, map[string]any{"title": "x"}, false},
		{"nested mismatch", map[string]any{"title": []any{"m"}}, map[string]any{"title": []any{"n"}}, false},
		{"object vs array", map[string]any{}, []any{}, false},
		{"array length differs", []any{1.0}, []any{1.0, 2.0}, false},
		{"array elementwise subset", []any{map[string]any{"id": 1.0}}, []any{map[string]any{"id": 1.0, "completed": true}}, true},
		{"null", nil, nil, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, matchSubset(tt.expected, tt.actual))
		})
	}
}

func TestCheckExpect(t *testing.T) {
	t.Run("match", func(t *testing.T) {
		exp := &Expect{Status: 201, Body: map[string]any{"id": 1, "completed": false}}
		assert.Empty(t, checkExpect(exp, 201, []byte(`{"id":1,"title":"x","completed":false}`)))
	})

	t.Run("status and body mismatch", func(t *testing.T) {
		exp := &Expect{Status: 200, Body: map[string]any{"id": 2}}
		errs := checkExpect(exp, 404, []byte(`{"error":"todo 2 not found"}`))
		assert.Len(t, errs, 2)
		assert.Contains(t, errs[0], "expected status 200, got 404")
	})

	t.Run("text body", func(t *testing.T) {
		exp := &Expect{Status: 200, Body: "hello"}
		assert.Empty(t, checkExpect(exp, 200, []byte("hello")))
	})

	t.Run("empty body", func(t *testing.T) {
		exp := &Expect{Status: 204, EmptyBody: true}
		assert.Empty(t, checkExpect(exp, 204, nil))
		assert.Len(t, checkExpect(exp, 204, []byte("{}")), 1)
	})
}
