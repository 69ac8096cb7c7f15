//go:build unit

package readstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWhere(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		var w where
		assert.Equal(t, "", w.sql())
		assert.Equal(t, " LIMIT $1 OFFSET $2", w.page(10, 0))
		assert.Equal(t, []any{10, 0}, w.args)
	})

	t.Run("conditions number placeholders in order", func(t *testing.T) {
		var w where
		w.add("venue = ?", "Ground")
		w.add("date BETWEEN ? AND ?", "2026-01-01", "2026-01-31")
		w.add("status = 'available'")

		assert.Equal(t, " WHERE venue = $1 AND date BETWEEN $2 AND $3 AND status = 'available'", w.sql())
		assert.Equal(t, " LIMIT $4 OFFSET $5", w.page(20, 40))
		assert.Equal(t, []any{"Ground", "2026-01-01", "2026-01-31", 20, 40}, w.args)
	})
}
