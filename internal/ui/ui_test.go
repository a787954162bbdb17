package ui

import (
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------------------------------------------------------------------------
// formatters
// ---------------------------------------------------------------------------

func TestFormattersKeepMessage(t *testing.T) {
	formatters := map[string]func(string) string{
		"Success":   Success,
		"Warn":      Warn,
		"Err":       Err,
		"Hint":      Hint,
		"Addr":      Addr,
		"Val":       Val,
		"Meta":      Meta,
		"ChainName": ChainName,
	}
	for name, fn := range formatters {
		t.Run(name, func(t *testing.T) {
			assert.Contains(t, fn("payload"), "payload")
		})
	}
}

func TestPrefixes(t *testing.T) {
	assert.Contains(t, Success("done"), "✓")
	assert.Contains(t, Warn("careful"), "⚠")
	assert.Contains(t, Err("failed"), "✗")
	assert.NotEqual(t, Hint("x"), Meta("x"))
}

func TestTruncateAddr(t *testing.T) {
	assert.Equal(t, "", TruncateAddr(""))
	assert.Equal(t, "0x12345678", TruncateAddr("0x12345678"))
	assert.Equal(t, "0x1234…5678", TruncateAddr("0x1234567890abcdef1234567890abcdef12345678"))
}

// ---------------------------------------------------------------------------
// tables
// ---------------------------------------------------------------------------

func TestKeyValueBlockPreservesOrder(t *testing.T) {
	result := KeyValueBlock("Transaction", [][2]string{
		{"From", "AAA"},
		{"To", "BBB"},
		{"Fee", "CCC"},
	})
	assert.Contains(t, result, "Transaction")
	a, b, c := strings.Index(result, "AAA"), strings.Index(result, "BBB"), strings.Index(result, "CCC")
	require.Greater(t, a, -1)
	assert.Less(t, a, b)
	assert.Less(t, b, c)
	assert.Contains(t, result, "╭", "rounded border")
}

func TestKeyValueBlockNoTitle(t *testing.T) {
	result := KeyValueBlock("", [][2]string{{"Key", "Value"}})
	assert.Contains(t, result, "Key:")
	assert.Contains(t, result, "Value")
}

func TestTableRender(t *testing.T) {
	tbl := NewTable([]Column{{Title: "Name", Width: 8}, {Title: "Chain ID", Width: 10}})
	tbl.AddRow(Row{"ethereum", "1"})
	tbl.AddRow(Row{"base"})

	out := tbl.Render()
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "Name")
	assert.Contains(t, lines[1], "--------")
	assert.Contains(t, lines[2], "ethereum")
	assert.Contains(t, lines[3], "base")
}

func TestPad(t *testing.T) {
	assert.Equal(t, "ab   ", pad("ab", 5))
	assert.Equal(t, "abcde", pad("abcde", 5))
	assert.Equal(t, "abcd…", pad("abcdefgh", 5))
	assert.Equal(t, "", pad("abc", 0))
	assert.Equal(t, "é  ", pad("é", 3))
}

// ---------------------------------------------------------------------------
// prompts and spinner
// ---------------------------------------------------------------------------

func TestConfirmFrom(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"y\n", true},
		{"YES\n", true},
		{"  yes  \n", true},
		{"n\n", false},
		{"\n", false},
		{"", false},
		{"yep\n", false},
	}
	for _, tt := range tests {
		t.Run(strings.TrimSpace(tt.input), func(t *testing.T) {
			var out bytes.Buffer
			assert.Equal(t, tt.want, ConfirmFrom(strings.NewReader(tt.input), &out, "Send?"))
			assert.Contains(t, out.String(), "Send?")
		})
	}
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestSpinnerWritesAndStops(t *testing.T) {
	var out syncBuffer
	s := NewSpinnerTo(&out, "Estimating gas")
	s.Start()
	time.Sleep(2 * spinnerInterval)
	s.Stop()

	assert.Contains(t, out.String(), "Estimating gas")
	assert.True(t, strings.HasSuffix(out.String(), "\r"), "line cleared on stop")
}
