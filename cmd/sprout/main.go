// Command sprout is the front-end for the Sprout language engine: it runs
// script files and hosts an interactive REPL with multi-line input.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
	"github.com/peterh/liner"

	"github.com/daios-ai/sprout"
)

const appName = "sprout"

var cli struct {
	Run     RunCmd     `cmd:"" help:"Run a script file."`
	Repl    ReplCmd    `cmd:"" help:"Start the interactive REPL."`
	Version VersionCmd `cmd:"" help:"Print the engine version."`
}

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))

	ktx := kong.Parse(&cli,
		kong.Name(appName),
		kong.Description("The Sprout language interpreter."),
		kong.UsageOnError(),
	)
	ktx.FatalIfErrorf(ktx.Run())
}

// -----------------------------------------------------------------------------
// run
// -----------------------------------------------------------------------------

type RunCmd struct {
	File string `arg:"" help:"Script file to run." type:"existingfile"`
}

func (c *RunCmd) Run() error {
	data, err := os.ReadFile(c.File)
	if err != nil {
		return fmt.Errorf("cannot read %s: %w", c.File, err)
	}
	src := string(data)

	prog, perrs := sprout.Parse(src)
	if len(perrs) > 0 {
		for _, pe := range perrs {
			fmt.Fprintln(os.Stderr, sprout.WrapErrorWithSource(pe, src).Error())
		}
		return fmt.Errorf("%d parse error(s) in %s", len(perrs), c.File)
	}

	ip := sprout.New()
	v := ip.Eval(prog, sprout.NewEnv(ip.Global))
	if v.Tag == sprout.VTNull && v.Annot != "" {
		return errors.New(v.Annot)
	}
	return nil
}

// -----------------------------------------------------------------------------
// version
// -----------------------------------------------------------------------------

type VersionCmd struct{}

func (c *VersionCmd) Run() error {
	fmt.Println(sprout.Version)
	return nil
}

// -----------------------------------------------------------------------------
// repl
// -----------------------------------------------------------------------------

type ReplCmd struct {
	Config  string `help:"Path to the REPL config file (default ~/.sproutrc.yml)." type:"path"`
	NoColor bool   `help:"Disable ANSI styling."`
}

type replStyles struct {
	banner lipgloss.Style
	result lipgloss.Style
	errMsg lipgloss.Style
}

func newReplStyles(color bool) replStyles {
	if !color {
		plain := lipgloss.NewStyle()
		return replStyles{banner: plain, result: plain, errMsg: plain}
	}
	return replStyles{
		banner: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		result: lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		errMsg: lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	}
}

func (c *ReplCmd) Run() error {
	cfg := loadReplConfig(c.Config)
	st := newReplStyles(!c.NoColor && cfg.colorEnabled())

	fmt.Println(st.banner.Render(fmt.Sprintf(
		"Sprout %s REPL\nCtrl+C cancels input, Ctrl+D exits. Type :quit to exit.",
		sprout.Version)))

	histPath := cfg.historyPath()

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	ip := sprout.New()

	for {
		code, ok := readByParseProbe(ln, cfg.Prompt, cfg.Continuation)
		if !ok {
			fmt.Println()
			break
		}

		if strings.HasPrefix(strings.TrimSpace(code), ":") {
			switch strings.TrimSpace(strings.ToLower(code)) {
			case ":quit":
				return nil
			default:
				fmt.Println("unknown command. Type :quit to exit.")
			}
			continue
		}

		if strings.TrimSpace(code) == "" {
			continue
		}

		prog, perrs := sprout.Parse(code)
		if len(perrs) > 0 {
			for _, pe := range perrs {
				fmt.Fprintln(os.Stderr, st.errMsg.Render("\t"+pe.Error()))
			}
			continue
		}

		v := ip.Eval(prog, ip.Global)
		if v.Tag == sprout.VTNull && v.Annot != "" {
			fmt.Fprintln(os.Stderr, st.errMsg.Render(v.Annot))
		} else {
			fmt.Println(st.result.Render(sprout.FormatValue(v)))
		}
		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))
	}

	return nil
}

// readByParseProbe collects input lines until the accumulated text parses, or
// fails with an error that is not a premature end of input. The parse here is
// only a completeness probe; the caller re-parses for evaluation.
func readByParseProbe(ln *liner.State, prompt, cont string) (string, bool) {
	var b strings.Builder

	for {
		var line string
		var err error
		if b.Len() == 0 {
			line, err = ln.Prompt(prompt)
		} else {
			line, err = ln.Prompt(cont)
		}
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if err != nil {
			return "", true
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		_, perrs := sprout.Parse(src)
		if len(perrs) == 0 {
			return src, true
		}
		if sprout.IsIncomplete(perrs) {
			continue
		}
		return src, true
	}
}

func homeJoin(name string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return name
	}
	return filepath.Join(home, name)
}
