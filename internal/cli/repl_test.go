package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubExec struct {
	calls    []string
	leaveErr error
}

func (s *stubExec) List(ctx context.Context)                { s.calls = append(s.calls, "list") }
func (s *stubExec) Add(ctx context.Context, title string)   { s.calls = append(s.calls, "add:"+title) }
func (s *stubExec) Done(ctx context.Context, arg string)    { s.calls = append(s.calls, "done:"+arg) }
func (s *stubExec) Remove(ctx context.Context, arg string)  { s.calls = append(s.calls, "rm:"+arg) }
func (s *stubExec) Code(ctx context.Context)                { s.calls = append(s.calls, "code") }
func (s *stubExec) Leave(ctx context.Context) error {
	s.calls = append(s.calls, "leave")
	return s.leaveErr
}

func runScript(t *testing.T, a execIface, script string) bool {
	t.Helper()
	return runREPL(context.Background(), a, bufio.NewScanner(strings.NewReader(script)), io.Discard)
}

func TestREPL_Dispatch(t *testing.T) {
	s := &stubExec{}

	left := runScript(t, s, "list\nadd milk and eggs\ndone 2\nrm 1\ncode\nexit\n")

	assert.False(t, left)
	assert.Equal(t, []string{"list", "add:milk and eggs", "done:2", "rm:1", "code"}, s.calls)
}

func TestREPL_ShortList(t *testing.T) {
	s := &stubExec{}
	runScript(t, s, "l\nexit\n")
	assert.Equal(t, []string{"list"}, s.calls)
}

func TestREPL_LeaveReturnsTrue(t *testing.T) {
	s := &stubExec{}
	left := runScript(t, s, "leave\n")
	assert.True(t, left)
}

func TestREPL_FailedLeaveKeepsRunning(t *testing.T) {
	s := &stubExec{leaveErr: errors.New("disk full")}
	left := runScript(t, s, "leave\nexit\n")
	assert.False(t, left)
	assert.Equal(t, []string{"leave"}, s.calls)
}

func TestREPL_UnknownAndBlankLines(t *testing.T) {
	s := &stubExec{}
	left := runScript(t, s, "\nbogus\nexit\n")
	assert.False(t, left)
	assert.Empty(t, s.calls)
}

func TestREPL_EOFExits(t *testing.T) {
	s := &stubExec{}
	left := runScript(t, s, "")
	assert.False(t, left)
}

// Prompt, help and errors all go to the writer the caller hands in, the
// same one the command handlers print to.
func TestREPL_WritesToGivenWriter(t *testing.T) {
	var out bytes.Buffer
	s := &stubExec{}

	runREPL(context.Background(), s, bufio.NewScanner(strings.NewReader("help\nbogus\nexit\n")), &out)

	assert.Contains(t, out.String(), "famlist> ")
	assert.Contains(t, out.String(), "Available commands")
	assert.Contains(t, out.String(), "Unknown command: bogus")
	assert.Contains(t, out.String(), "Bye!")
}
