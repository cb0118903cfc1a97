package theme

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrinter(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, false)

	p.Success("added %s", "temurin-21")
	p.Info("scanning %d roots", 3)
	p.Warn("careful")
	p.Error("broken")

	out := buf.String()
	assert.Contains(t, out, "added temurin-21")
	assert.Contains(t, out, "scanning 3 roots")
	assert.Contains(t, out, "careful")
	assert.Contains(t, out, "broken")
}

func TestQuietPrinterKeepsWarningsAndErrors(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf, true)

	p.Success("added")
	p.Info("info")
	p.Warn("warned")
	p.Error("failed")

	out := buf.String()
	assert.NotContains(t, out, "added")
	assert.NotContains(t, out, "info")
	assert.Contains(t, out, "warned")
	assert.Contains(t, out, "failed")
}
