package diagfmt_test

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"phpsniff/internal/diagfmt"
	"phpsniff/internal/driver"
	"phpsniff/internal/lexer"
)

func TestFormatTokens(t *testing.T) {
	res, err := driver.TokenizeBytes("a.php", []byte("<?php if ($a) {}"), lexer.Options{})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, diagfmt.FormatTokensPretty(&buf, res.Tokens, res.Index))
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, len(res.Tokens))
	assert.Contains(t, lines[0], `"<?php "`)
	assert.Contains(t, lines[3], "-> 5")

	buf.Reset()
	require.NoError(t, diagfmt.FormatTokensJSON(&buf, res.Tokens, res.Index))
	var out []diagfmt.TokenOutput
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	require.Len(t, out, len(res.Tokens))
	require.NotNil(t, out[1].Parens)
	assert.Equal(t, 3, *out[1].Parens)
	require.NotNil(t, out[3].Partner)
	assert.Equal(t, 5, *out[3].Partner)
	assert.Nil(t, out[0].Partner)
}

func TestFormatTokensWithoutIndex(t *testing.T) {
	res, err := driver.TokenizeBytes("a.php", []byte("<?php )"), lexer.Options{})
	require.Error(t, err)
	var buf bytes.Buffer
	require.NoError(t, diagfmt.FormatTokensPretty(&buf, res.Tokens, nil))
	assert.NotContains(t, buf.String(), "->")
}
