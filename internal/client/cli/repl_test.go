package cli

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExec struct {
	calls []string
}

func (f *fakeExec) record(format string, args ...any) error {
	f.calls = append(f.calls, fmt.Sprintf(format, args...))
	return nil
}

func (f *fakeExec) New(ctx context.Context) error  { return f.record("new") }
func (f *fakeExec) List(ctx context.Context) error { return f.record("list") }
func (f *fakeExec) Show(ctx context.Context, id string) error {
	return f.record("show %s", id)
}
func (f *fakeExec) Set(ctx context.Context, id, field, value string) error {
	return f.record("set %s %s=%s", id, field, value)
}
func (f *fakeExec) Voice(ctx context.Context, id, zone, transcript string) error {
	return f.record("voice %s %s [%s]", id, zone, transcript)
}
func (f *fakeExec) Say(ctx context.Context, text string) error { return f.record("say [%s]", text) }
func (f *fakeExec) Stop(ctx context.Context) error             { return f.record("stop") }
func (f *fakeExec) Sync(ctx context.Context) error             { return f.record("sync") }
func (f *fakeExec) Pending(ctx context.Context) error          { return f.record("pending") }
func (f *fakeExec) Lang(ctx context.Context, code string) error {
	return f.record("lang %s", code)
}
func (f *fakeExec) VoiceOn(ctx context.Context) error  { return f.record("voiceon") }
func (f *fakeExec) VoiceOff(ctx context.Context) error { return f.record("voiceoff") }
func (f *fakeExec) Selfie(ctx context.Context, uri string) error {
	return f.record("selfie %s", uri)
}
func (f *fakeExec) Delete(ctx context.Context, id string) error {
	return f.record("delete %s", id)
}

func captureOutput(t *testing.T) *[]string {
	t.Helper()
	var out []string
	origPrint := printlnFn
	printlnFn = func(a ...any) (int, error) {
		out = append(out, fmt.Sprintln(a...))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = origPrint })
	return &out
}

func runLines(ctx context.Context, exec execIface, lines ...string) {
	rctx, cancel := context.WithCancel(ctx)
	defer cancel()
	in := readLines(rctx, strings.NewReader(strings.Join(lines, "\n")))
	runREPL(ctx, exec, func() string { return "status" }, in)
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	captureOutput(t)

	exec := &fakeExec{}
	runLines(context.Background(), exec,
		"help",
		"new",
		"l",
		"show abc",
		"set abc farmerName Ram Kumar",
		"set abc A.completed yes",
		"voice abc b plant height is 120",
		"say hello there",
		"stop",
		"sync",
		"pending",
		"lang hi",
		"voiceoff",
		"voiceon",
		"selfie file:///selfie.jpg",
		"delete abc",
		"",
		"exit",
		"new",
	)

	assert.Equal(t, []string{
		"new",
		"list",
		"show abc",
		"set abc farmerName=Ram Kumar",
		"set abc A.completed=yes",
		"voice abc b [plant height is 120]",
		"say [hello there]",
		"stop",
		"sync",
		"pending",
		"lang hi",
		"voiceoff",
		"voiceon",
		"selfie file:///selfie.jpg",
		"delete abc",
	}, exec.calls)
}

func TestRunREPL_UsageErrors(t *testing.T) {
	out := captureOutput(t)

	exec := &fakeExec{}
	runLines(context.Background(), exec,
		"show",
		"set abc farmerName",
		"voice abc A",
		"say",
		"lang",
		"selfie",
		"delete",
		"foobar",
		"quit",
	)

	assert.Empty(t, exec.calls)
	joined := strings.Join(*out, "")
	for _, want := range []string{
		"Usage: show", "Usage: set", "Usage: voice", "Usage: say",
		"Usage: lang", "Usage: selfie", "Usage: delete", "Unknown command: foobar", "Bye!",
	} {
		assert.Contains(t, joined, want)
	}
}

func TestRunREPL_StopsOnEOFAndCanceledContext(t *testing.T) {
	captureOutput(t)

	exec := &fakeExec{}
	runLines(context.Background(), exec, "new")
	require.Equal(t, []string{"new"}, exec.calls)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	exec = &fakeExec{}
	runLines(ctx, exec, "new", "list")
	assert.Empty(t, exec.calls)
}

func TestRunREPL_CanceledWhileWaitingForInput(t *testing.T) {
	captureOutput(t)

	ctx, cancel := context.WithCancel(context.Background())
	lines := make(chan string)
	done := make(chan struct{})
	exec := &fakeExec{}
	go func() {
		defer close(done)
		runREPL(ctx, exec, func() string { return "status" }, lines)
	}()

	cancel()
	<-done

	select {
	case lines <- "new":
		t.Fatal("line accepted after cancel")
	default:
	}
	assert.Empty(t, exec.calls)
}

func TestRunREPL_PromptShowsStatus(t *testing.T) {
	out := captureOutput(t)

	runLines(context.Background(), &fakeExec{}, "exit")
	require.NotEmpty(t, *out)
	assert.Equal(t, "fk> status > \n", (*out)[0])
}
