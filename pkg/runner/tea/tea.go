package teaui

import (
	"errors"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

var errNoTerminal = errors.New("the ui needs an interactive terminal; try `daybook day` instead")

func requireTerminal() error {
	in, out := os.Stdin.Fd(), os.Stdout.Fd()
	if !(isatty.IsTerminal(in) || isatty.IsCygwinTerminal(in)) ||
		!(isatty.IsTerminal(out) || isatty.IsCygwinTerminal(out)) {
		return errNoTerminal
	}
	return nil
}

func darkBackground() bool {
	return termenv.NewOutput(os.Stdout).HasDarkBackground()
}
