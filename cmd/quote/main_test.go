package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hibachi/internal/modules/quote"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	pricesFile, verbose = "", false
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestCalcJSON(t *testing.T) {
	out, err := run(t, "calc", "--adults", "14", "--children", "2", "--upgrade", "filet_mignon=10", "--miles", "45", "--json")
	require.NoError(t, err)

	var res quote.Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, int64(91000), res.GrandTotal)
	assert.Equal(t, int64(81000), res.BalanceDue)
}

func TestCalcTable(t *testing.T) {
	out, err := run(t, "calc", "--adults", "9", "--miles", "60")
	require.NoError(t, err)
	assert.Contains(t, out, "$550.00 (minimum)")
	assert.Contains(t, out, "$60.00")
	assert.Contains(t, out, "$610.00")
}

func TestCalcDraft(t *testing.T) {
	out, err := run(t, "calc", "--adults", "10", "--draft", "--customer", "Malia")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "Hi Malia,"))
}

func TestCalcRejectsNegative(t *testing.T) {
	_, err := run(t, "calc", "--adults", "-1")
	assert.ErrorIs(t, err, quote.ErrInvalidInput)
}

func TestPricesWithFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prices.yaml")
	require.NoError(t, os.WriteFile(path, []byte("prices:\n  adult: 6000\n"), 0o600))

	out, err := run(t, "prices", "--prices", path)
	require.NoError(t, err)
	assert.Contains(t, out, "$60.00")
	assert.Contains(t, out, "30 mi")

	out, err = run(t, "calc", "--prices", path, "--adults", "20", "--json")
	require.NoError(t, err)
	var res quote.Result
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, int64(120000), res.Subtotal)
}
