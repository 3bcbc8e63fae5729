package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tferdous17/rbkv/store"
)

func runScript(t *testing.T, memtable *store.Memtable, lines ...string) string {
	t.Helper()
	var out bytes.Buffer
	require.NoError(t, runREPL(strings.NewReader(strings.Join(lines, "\n")), &out, memtable))
	return out.String()
}

func TestREPL_Commands(t *testing.T) {
	memtable := store.NewMemtable()
	out := runScript(t, memtable,
		"set b 2",
		"set a 1",
		"set c 3",
		"get b",
		"min",
		"max",
		"next a",
		"prev c",
		"range a b",
		"del b",
		"get b",
		"verify",
	)

	assert.Contains(t, out, "set: success")
	assert.Contains(t, out, "\n2\n")
	assert.Contains(t, out, "a = 1")
	assert.Contains(t, out, "c = 3")
	assert.Contains(t, out, "deletion: success")
	assert.Contains(t, out, "err: invalid key: not found")
	assert.Contains(t, out, "verify: ok")
	assert.Equal(t, []string{"a", "c"}, memtable.Keys())
}

func TestREPL_Fill(t *testing.T) {
	memtable := store.NewMemtable()
	out := runScript(t, memtable, "fill 50", "verify", "dump")

	assert.Contains(t, out, "fill: ")
	assert.Contains(t, out, "verify: ok")
	assert.GreaterOrEqual(t, memtable.Len(), 1)
	require.NoError(t, memtable.Verify())
}

func TestREPL_BadInput(t *testing.T) {
	out := runScript(t, store.NewMemtable(), "set onlykey", "fill x", "bogus", "min", "")

	assert.Contains(t, out, "Insufficient num of args")
	assert.Contains(t, out, "err: fill needs a non-negative count")
	assert.Contains(t, out, `unknown command "bogus"`)
	assert.Contains(t, out, "err: ")
}
