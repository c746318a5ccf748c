package migrations

import (
	"io/fs"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFS_EveryUpHasDown(t *testing.T) {
	ups, err := fs.Glob(FS, "*.up.sql")
	require.NoError(t, err)
	require.NotEmpty(t, ups)

	for _, up := range ups {
		down := strings.TrimSuffix(up, ".up.sql") + ".down.sql"
		_, err := fs.Stat(FS, down)
		assert.NoError(t, err, "missing %s", down)
	}
}

// Quantities keep the precision they were sent with.
func TestFS_EntryQuantitiesKeepFullPrecision(t *testing.T) {
	data, err := fs.ReadFile(FS, "000002_create_milk_entries.up.sql")
	require.NoError(t, err)

	for _, column := range []string{"liters", "fat", "amount"} {
		pattern := regexp.MustCompile(`(?m)^\s*` + column + `\s+NUMERIC\s+NOT NULL`)
		assert.Regexp(t, pattern, string(data), "%s must be an unconstrained NUMERIC", column)
	}
}
