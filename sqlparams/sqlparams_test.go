package sqlparams

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeAtPlaceholders(t *testing.T) {
	query := "SELECT * FROM users WHERE name = @name AND age > @min_age"

	normalized, params, err := Normalize(query, map[string]any{"name": "bob", "min_age": 18}, nil)
	assert.NoError(t, err)
	assert.Equal(t, "SELECT * FROM users WHERE name = :name AND age > :min_age", normalized)
	assert.Equal(t, "bob", params["name"])
	assert.Equal(t, 18, params["min_age"])
}

func TestNormalizeRepeatedAtPlaceholder(t *testing.T) {
	query := "SELECT * FROM t WHERE a = @v OR b = @v"

	normalized, _, err := Normalize(query, map[string]any{"v": 1}, nil)
	assert.NoError(t, err)
	assert.Equal(t, "SELECT * FROM t WHERE a = :v OR b = :v", normalized)
}

func TestNormalizePositionalPlaceholders(t *testing.T) {
	query := "SELECT * FROM t WHERE a = ? AND b = ?"

	normalized, params, err := Normalize(query, nil, []any{1, "x"})
	assert.NoError(t, err)
	assert.Equal(t, "SELECT * FROM t WHERE a = :param_0 AND b = :param_1", normalized)
	assert.Equal(t, 1, params["param_0"])
	assert.Equal(t, "x", params["param_1"])
}

func TestNormalizeInsufficientPositional(t *testing.T) {
	query := "SELECT * FROM t WHERE a = ? AND b = ?"

	_, _, err := Normalize(query, nil, []any{1})
	assert.ErrorIs(t, err, ErrInsufficientParams)
	assert.Contains(t, err.Error(), "expected 2, got 1")
}

func TestNormalizeMixedPlaceholders(t *testing.T) {
	query := "UPDATE t SET a = @a WHERE b = ?"

	normalized, params, err := Normalize(query, map[string]any{"a": "new"}, []any{7})
	assert.NoError(t, err)
	assert.Equal(t, "UPDATE t SET a = :a WHERE b = :param_0", normalized)
	assert.Equal(t, "new", params["a"])
	assert.Equal(t, 7, params["param_0"])
}

func TestNormalizeNoPlaceholders(t *testing.T) {
	query := "SELECT 1"

	normalized, params, err := Normalize(query, nil, nil)
	assert.NoError(t, err)
	assert.Equal(t, query, normalized)
	assert.Empty(t, params)
}

func TestNormalizeExtraPositionalIgnored(t *testing.T) {
	normalized, params, err := Normalize("SELECT * FROM t WHERE a = ?", nil, []any{1, 2, 3})
	assert.NoError(t, err)
	assert.Equal(t, "SELECT * FROM t WHERE a = :param_0", normalized)
	assert.Len(t, params, 1)
}

// The rewrite is quoting-unaware by contract: placeholders inside string
// literals are substituted too.
func TestNormalizeInsideStringLiteral(t *testing.T) {
	normalized, _, err := Normalize("SELECT 'why?' FROM t", nil, []any{1})
	assert.NoError(t, err)
	assert.Equal(t, "SELECT 'why:param_0' FROM t", normalized)

	normalized, _, err = Normalize("SELECT 'mail@example' FROM t", nil, nil)
	assert.NoError(t, err)
	assert.Equal(t, "SELECT 'mail:example' FROM t", normalized)
}
