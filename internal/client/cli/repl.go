package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	New(ctx context.Context) error
	List(ctx context.Context) error
	Show(ctx context.Context, id string) error
	Set(ctx context.Context, id, field, value string) error
	Voice(ctx context.Context, id, zone, transcript string) error
	Say(ctx context.Context, text string) error
	Stop(ctx context.Context) error
	Sync(ctx context.Context) error
	Pending(ctx context.Context) error
	Lang(ctx context.Context, code string) error
	VoiceOn(ctx context.Context) error
	VoiceOff(ctx context.Context) error
	Selfie(ctx context.Context, uri string) error
	Delete(ctx context.Context, id string) error
}

const helpText = `Available commands:
  new                            start a new field record
  (l)ist                         list records, newest first
  show <id>                      show a record
  set <id> <field> <value...>    edit a field (zone fields as A.plantHeight, A.completed)
  voice <id> <zone> <text...>    apply a dictated transcript
  say <text...>                  speak text in the current language
  stop                           stop speaking
  sync                           push pending records now
  pending                        count unsynced records
  lang <en|hi|od>                switch language
  voiceon | voiceoff             toggle voice instructions
  selfie <uri>                   remember the collector selfie
  delete <id>                    delete a record
  exit | quit                    leave the program`

// readLines scans in on its own goroutine and delivers lines until EOF or
// ctx is done. A read blocked on a terminal cannot be interrupted; that
// goroutine exits on the next line or EOF and never touches the App.
func readLines(ctx context.Context, in io.Reader) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
	}()
	return lines
}

// runREPL dispatches commands from lines to a until lines is closed, ctx is
// done, or the user types "exit" or "quit". Commands run on the caller's
// goroutine, so none is in flight once runREPL returns.
//
// Handlers print their own errors, so returned errors are dropped here.
func runREPL(ctx context.Context, a execIface, statusFn func() string, lines <-chan string) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("fk> %s > ", statusFn()))

		var line string
		select {
		case <-ctx.Done():
			return
		case l, ok := <-lines:
			if !ok {
				return
			}
			line = l
		}
		if ctx.Err() != nil {
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			printlnFn(helpText)

		case "new":
			_ = a.New(ctx)

		case "l", "list":
			_ = a.List(ctx)

		case "show":
			if len(args) != 1 {
				printlnFn("Usage: show <id>")
				continue
			}
			_ = a.Show(ctx, args[0])

		case "set":
			if len(args) < 3 {
				printlnFn("Usage: set <id> <field> <value>")
				continue
			}
			_ = a.Set(ctx, args[0], args[1], strings.Join(args[2:], " "))

		case "voice":
			if len(args) < 3 {
				printlnFn("Usage: voice <id> <zone> <transcript>")
				continue
			}
			_ = a.Voice(ctx, args[0], args[1], strings.Join(args[2:], " "))

		case "say":
			if len(args) == 0 {
				printlnFn("Usage: say <text>")
				continue
			}
			_ = a.Say(ctx, strings.Join(args, " "))

		case "stop":
			_ = a.Stop(ctx)

		case "sync":
			_ = a.Sync(ctx)

		case "pending":
			_ = a.Pending(ctx)

		case "lang":
			if len(args) != 1 {
				printlnFn("Usage: lang <en|hi|od>")
				continue
			}
			_ = a.Lang(ctx, args[0])

		case "voiceon":
			_ = a.VoiceOn(ctx)

		case "voiceoff":
			_ = a.VoiceOff(ctx)

		case "selfie":
			if len(args) != 1 {
				printlnFn("Usage: selfie <uri>")
				continue
			}
			_ = a.Selfie(ctx, args[0])

		case "delete":
			if len(args) != 1 {
				printlnFn("Usage: delete <id>")
				continue
			}
			_ = a.Delete(ctx, args[0])

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
