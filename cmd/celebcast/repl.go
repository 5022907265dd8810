package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/dooshek/celebcast/internal/persona"
	"github.com/dooshek/celebcast/internal/studio"
	"github.com/fatih/color"
)

var (
	bold   = color.New(color.Bold)
	cyan   = color.New(color.FgCyan)
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
	red    = color.New(color.FgRed)
)

const replHelp = `Commands:
  topic <text>     set the celebrity or event to cover
  tone [n|name]    list tones or pick one
  draft            write a script for the current topic
  script           show the current script
  edit             replace the script, finish with a line containing only "."
  voices           list voice personas
  voice <id>       select a voice persona
  play             read the script aloud
  stop             stop playback
  status           show the current session
  help             show this help
  quit             exit`

type repl struct {
	ctrl    *studio.Controller
	scanner *bufio.Scanner
	out     io.Writer
}

func runREPL(ctx context.Context, ctrl *studio.Controller, in io.Reader, out io.Writer) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	r := &repl{ctrl: ctrl, scanner: scanner, out: out}

	bold.Fprintln(out, "📺 Celebcast studio")
	fmt.Fprintln(out, `Type "help" for commands.`)

	for {
		if ctx.Err() != nil {
			return nil
		}
		cyan.Fprint(out, "celebcast> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		cmd, arg, _ := strings.Cut(line, " ")
		arg = strings.TrimSpace(arg)

		if quit := r.handle(ctx, strings.ToLower(cmd), arg); quit {
			return nil
		}
	}
}

func (r *repl) handle(ctx context.Context, cmd, arg string) bool {
	switch cmd {
	case "topic":
		if arg == "" {
			fmt.Fprintf(r.out, "Topic: %s\n", r.ctrl.State().Topic)
			return false
		}
		r.ctrl.SetTopic(arg)
		green.Fprintf(r.out, "Topic set: %s\n", arg)

	case "tone":
		r.tone(arg)

	case "draft":
		r.draft(ctx)

	case "script":
		fmt.Fprintln(r.out, r.ctrl.State().Script)

	case "edit":
		r.edit()

	case "voices":
		r.voices()

	case "voice":
		if err := r.ctrl.SelectVoice(arg); err != nil {
			red.Fprintf(r.out, "%v (try \"voices\")\n", err)
			return false
		}
		green.Fprintf(r.out, "Voice: %s\n", r.ctrl.Persona().Name)

	case "play":
		r.play(ctx)

	case "stop":
		r.ctrl.StopPlayback()
		fmt.Fprintln(r.out, "Playback stopped")

	case "status":
		r.status()

	case "help", "?":
		fmt.Fprintln(r.out, replHelp)

	case "quit", "exit":
		return true

	default:
		red.Fprintf(r.out, "Unknown command %q\n", cmd)
	}
	return false
}

func (r *repl) tone(arg string) {
	if arg == "" {
		current := r.ctrl.State().Tone
		for i, t := range persona.Tones() {
			marker := " "
			if t == current {
				marker = "*"
			}
			fmt.Fprintf(r.out, " %s %d. %s\n", marker, i+1, t)
		}
		return
	}

	tone, ok := persona.ResolveTone(arg)
	if !ok {
		red.Fprintf(r.out, "Unknown tone %q\n", arg)
		return
	}
	r.ctrl.SetTone(tone)
	green.Fprintf(r.out, "Tone: %s\n", tone)
}

func (r *repl) draft(ctx context.Context) {
	if strings.TrimSpace(r.ctrl.State().Topic) == "" {
		yellow.Fprintln(r.out, "Set a topic first")
		return
	}

	fmt.Fprintln(r.out, "✍️  Drafting...")
	if !r.ctrl.RequestScript(ctx) {
		yellow.Fprintln(r.out, "Busy, try again in a moment")
		return
	}

	s := r.ctrl.State()
	if s.Error != "" {
		red.Fprintln(r.out, s.Error)
		return
	}
	bold.Fprintln(r.out, "\n"+s.Script)
}

func (r *repl) edit() {
	fmt.Fprintln(r.out, `Enter the new script, finish with "." on its own line:`)

	var lines []string
	for r.scanner.Scan() {
		line := r.scanner.Text()
		if strings.TrimSpace(line) == "." {
			break
		}
		lines = append(lines, line)
	}

	r.ctrl.EditScript(strings.Join(lines, "\n"))
	green.Fprintln(r.out, "Script updated")
}

func (r *repl) voices() {
	selected := r.ctrl.State().Voice
	for _, p := range persona.Catalog() {
		marker := " "
		if p.ID == selected {
			marker = "*"
		}
		fmt.Fprintf(r.out, " %s %-7s %s (%s, %s)\n", marker, p.ID, p.Name, p.Gender, p.Style)
		fmt.Fprintf(r.out, "           %s\n", p.Description)
	}
}

func (r *repl) play(ctx context.Context) {
	if strings.TrimSpace(r.ctrl.State().Script) == "" {
		yellow.Fprintln(r.out, "The script is empty")
		return
	}

	fmt.Fprintln(r.out, "🎙️  Synthesizing...")
	if !r.ctrl.RequestVoiceover(ctx) {
		yellow.Fprintln(r.out, "Busy, try again in a moment")
		return
	}

	s := r.ctrl.State()
	if s.Error != "" {
		red.Fprintln(r.out, s.Error)
		return
	}
	green.Fprintf(r.out, "🔊 On air with %s\n", r.ctrl.Persona().Name)
}

func (r *repl) status() {
	s := r.ctrl.State()
	fmt.Fprintf(r.out, "Topic:   %s\n", s.Topic)
	fmt.Fprintf(r.out, "Tone:    %s\n", s.Tone)
	fmt.Fprintf(r.out, "Voice:   %s\n", r.ctrl.Persona().Name)
	fmt.Fprintf(r.out, "Status:  %s\n", s.Status)
	fmt.Fprintf(r.out, "Playing: %t\n", s.Playing)
	if s.Error != "" {
		red.Fprintf(r.out, "Error:   %s\n", s.Error)
	}
}
