package cli

import (
	"bufio"
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stubTerminal(t *testing.T, terminal bool, pw []byte, err error) {
	t.Helper()
	origRead, origIs := readPassword, isTerminal
	readPassword = func(int) ([]byte, error) { return pw, err }
	isTerminal = func(int) bool { return terminal }
	t.Cleanup(func() { readPassword, isTerminal = origRead, origIs })
}

func TestGetSimpleText(t *testing.T) {
	var out bytes.Buffer

	got, err := GetSimpleText(bufio.NewReader(strings.NewReader("  alice  \nrest")), "Username", &out)
	require.NoError(t, err)
	assert.Equal(t, "alice", got)
	assert.Equal(t, "Username\n> ", out.String())
}

func TestGetSimpleText_PartialLineAtEOF(t *testing.T) {
	got, err := GetSimpleText(bufio.NewReader(strings.NewReader("bob")), "Username", &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, "bob", got)

	_, err = GetSimpleText(bufio.NewReader(strings.NewReader("")), "Username", &bytes.Buffer{})
	assert.Error(t, err)
}

func TestGetPassword_Terminal(t *testing.T) {
	stubTerminal(t, true, []byte("Passw0rd"), nil)
	var out bytes.Buffer

	got, err := GetPassword(bufio.NewReader(strings.NewReader("ignored\n")), "Password", &out)
	require.NoError(t, err)
	assert.Equal(t, "Passw0rd", got)
	assert.Equal(t, "Password: \n", out.String())
}

func TestGetPassword_TerminalError(t *testing.T) {
	stubTerminal(t, true, nil, errors.New("tty gone"))

	_, err := GetPassword(bufio.NewReader(strings.NewReader("")), "Password", &bytes.Buffer{})
	assert.EqualError(t, err, "tty gone")
}

func TestGetPassword_PipedInput(t *testing.T) {
	stubTerminal(t, false, nil, errors.New("must not be called"))

	got, err := GetPassword(bufio.NewReader(strings.NewReader("Passw0rd\n")), "Password", &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, "Passw0rd", got)
}

func TestGetMultiline(t *testing.T) {
	reader := bufio.NewReader(strings.NewReader("Pho\r\nwith basil\n\nleftover\n"))

	got, err := GetMultiline(reader, "Content", &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, "Pho\nwith basil", got)

	next, err := readLine(reader)
	require.NoError(t, err)
	assert.Equal(t, "leftover", next)
}

func TestGetMultiline_EOFWithoutBlankLine(t *testing.T) {
	got, err := GetMultiline(bufio.NewReader(strings.NewReader("only line")), "Content", &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, "only line", got)
}
