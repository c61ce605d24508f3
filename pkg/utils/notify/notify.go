package notify

import (
	"fmt"
	"io"
	"os"
	"strings"

	fcolor "github.com/fatih/color"
	"github.com/gitops-playground/playctl/pkg/utils/timer"
)

// Kind selects the symbol and color of a line.
type Kind int

const (
	// KindError is a failure line.
	KindError Kind = iota
	// KindWarning is a degraded but non-fatal condition.
	KindWarning
	// KindActivity is work in progress.
	KindActivity
	// KindSuccess is a finished step.
	KindSuccess
	// KindInfo is plain information.
	KindInfo
	// KindTitle opens a stage and is prefixed with an emoji instead of a symbol.
	KindTitle
)

// Line is a single message written to the user.
type Line struct {
	Kind   Kind
	Text   string
	Args   []any
	Emoji  string
	Timer  timer.Timer
	Writer io.Writer
}

type style struct {
	symbol string
	attrs  []fcolor.Attribute
}

//nolint:gochecknoglobals // lookup table
var styles = map[Kind]style{
	KindError:    {symbol: "✗ ", attrs: []fcolor.Attribute{fcolor.FgRed}},
	KindWarning:  {symbol: "⚠ ", attrs: []fcolor.Attribute{fcolor.FgYellow}},
	KindActivity: {symbol: "► ", attrs: []fcolor.Attribute{fcolor.Reset}},
	KindSuccess:  {symbol: "✔ ", attrs: []fcolor.Attribute{fcolor.FgGreen}},
	KindInfo:     {symbol: "ℹ ", attrs: []fcolor.Attribute{fcolor.FgBlue}},
	KindTitle:    {attrs: []fcolor.Attribute{fcolor.Reset, fcolor.Bold}},
}

const defaultTitleEmoji = "🧩"

// Write renders a line. A nil writer means stdout.
func Write(line Line) {
	out := line.Writer
	if out == nil {
		out = os.Stdout
	}

	text := line.Text
	if len(line.Args) > 0 {
		text = fmt.Sprintf(line.Text, line.Args...)
	}

	st, ok := styles[line.Kind]
	if !ok {
		st = style{attrs: []fcolor.Attribute{fcolor.Reset}}
	}

	painter := fcolor.New(st.attrs...)

	if line.Kind == KindTitle {
		emoji := line.Emoji
		if emoji == "" {
			emoji = defaultTitleEmoji
		}

		report(painter.Fprintf(out, "%s %s\n", emoji, text))

		return
	}

	report(painter.Fprintf(out, "%s%s\n", st.symbol, hangingIndent(text, st.symbol)))

	if line.Kind == KindSuccess && line.Timer != nil {
		total, stage := line.Timer.GetTiming()
		report(painter.Fprintf(out, "⏲ current: %s\n  total:  %s\n", stage, total))
	}
}

// Titlef opens a stage.
func Titlef(w io.Writer, emoji, format string, args ...any) {
	Write(Line{Kind: KindTitle, Emoji: emoji, Text: format, Args: args, Writer: w})
}

// Activityf reports work in progress.
func Activityf(w io.Writer, format string, args ...any) {
	Write(Line{Kind: KindActivity, Text: format, Args: args, Writer: w})
}

// Successf reports a finished step.
func Successf(w io.Writer, format string, args ...any) {
	Write(Line{Kind: KindSuccess, Text: format, Args: args, Writer: w})
}

// StageDonef reports a finished stage followed by its timing when tmr is non-nil.
func StageDonef(w io.Writer, tmr timer.Timer, format string, args ...any) {
	Write(Line{Kind: KindSuccess, Text: format, Args: args, Timer: tmr, Writer: w})
}

// Warningf reports a degraded condition that does not stop the command.
func Warningf(w io.Writer, format string, args ...any) {
	Write(Line{Kind: KindWarning, Text: format, Args: args, Writer: w})
}

// Errorf reports a failure.
func Errorf(w io.Writer, format string, args ...any) {
	Write(Line{Kind: KindError, Text: format, Args: args, Writer: w})
}

// Infof prints plain information.
func Infof(w io.Writer, format string, args ...any) {
	Write(Line{Kind: KindInfo, Text: format, Args: args, Writer: w})
}

// report sends write failures to stderr so output problems never abort a command.
func report(_ int, err error) {
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "notify: %v\n", err)
	}
}

// hangingIndent aligns continuation lines under the first character after the symbol.
func hangingIndent(text, symbol string) string {
	if symbol == "" || !strings.Contains(text, "\n") {
		return text
	}

	pad := strings.Repeat(" ", len([]rune(symbol)))
	lines := strings.Split(text, "\n")

	for i := 1; i < len(lines); i++ {
		if lines[i] != "" {
			lines[i] = pad + lines[i]
		}
	}

	return strings.Join(lines, "\n")
}
