package cli

import (
	"bufio"
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSimpleText_TrimsLine(t *testing.T) {
	var out bytes.Buffer
	sc := bufio.NewScanner(strings.NewReader("  milk  \n"))

	got, err := GetSimpleText(sc, "What to add?", &out)
	require.NoError(t, err)

	assert.Equal(t, "milk", got)
	assert.Contains(t, out.String(), "What to add?")
	assert.Contains(t, out.String(), "> ")
}

func TestGetSimpleText_PartialLineAtEOF(t *testing.T) {
	var out bytes.Buffer
	sc := bufio.NewScanner(strings.NewReader("milk"))

	got, err := GetSimpleText(sc, "What to add?", &out)
	require.NoError(t, err)
	assert.Equal(t, "milk", got)
}

func TestGetSimpleText_ExhaustedInputReturnsEOF(t *testing.T) {
	var out bytes.Buffer
	sc := bufio.NewScanner(strings.NewReader(""))

	_, err := GetSimpleText(sc, "What to add?", &out)
	assert.ErrorIs(t, err, io.EOF)
}

func TestGetSimpleText_ConsecutiveReadsShareScanner(t *testing.T) {
	var out bytes.Buffer
	sc := bufio.NewScanner(strings.NewReader("create\nAlex\n"))

	first, err := GetSimpleText(sc, "Mode", &out)
	require.NoError(t, err)
	second, err := GetSimpleText(sc, "Name", &out)
	require.NoError(t, err)

	assert.Equal(t, "create", first)
	assert.Equal(t, "Alex", second)
}
