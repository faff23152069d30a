package opts

import (
	"context"

	"github.com/pterm/pterm"
)

// 💬 Prompter asks the user questions on the terminal
type Prompter interface {
	// Ask returns the text entered for question
	Ask(ctx context.Context, question string) (string, error)

	// Confirm returns the yes/no answer to question, def when none is given
	Confirm(ctx context.Context, question string, def bool) (bool, error)
}

// TerminalPrompter prompts with pterm's interactive printers
type TerminalPrompter struct{}

func (p *TerminalPrompter) Ask(ctx context.Context, question string) (string, error) {
	return pterm.DefaultInteractiveTextInput.Show(question)
}

func (p *TerminalPrompter) Confirm(ctx context.Context, question string, def bool) (bool, error) {
	return pterm.DefaultInteractiveConfirm.WithDefaultValue(def).Show(question)
}
