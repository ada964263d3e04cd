package console

import (
	"bufio"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readGate(t *testing.T, in *bufio.Reader) string {
	t.Helper()
	buf := make([]byte, 4096)
	n, err := newLineGate(in).Read(buf)
	require.NoError(t, err)
	return string(buf[:n])
}

func TestLineGateStopsAtLineEnd(t *testing.T) {
	shared := bufio.NewReader(strings.NewReader("2\n/path/cv.pdf\r\nLine one\n\n\nnext\n"))

	assert.Equal(t, "2\n", readGate(t, shared))
	assert.Equal(t, "/path/cv.pdf\r", readGate(t, shared))

	job, err := ReadJobAdvert(shared, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, "Line one", job)

	assert.Equal(t, "next\n", readGate(t, shared))

	_, err = newLineGate(shared).Read(make([]byte, 16))
	assert.ErrorIs(t, err, io.EOF)
}

func TestLineGateStopsAtControlKeys(t *testing.T) {
	shared := bufio.NewReader(strings.NewReader("ab\x03rest\x04tail"))

	assert.Equal(t, "ab\x03", readGate(t, shared))
	assert.Equal(t, "rest\x04", readGate(t, shared))
	assert.Equal(t, "tail", readGate(t, shared))
}

func TestLineGateRespectsBufferSize(t *testing.T) {
	shared := bufio.NewReader(strings.NewReader("abcdef\n"))
	gate := newLineGate(shared)

	buf := make([]byte, 4)
	n, err := gate.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "abcd", string(buf[:n]))

	n, err = gate.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "ef\n", string(buf[:n]))
}
