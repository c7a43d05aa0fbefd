package ui

import (
	"os"

	survey "github.com/AlecAivazis/survey/v2"
)

func (l *Logger) finalizeTailForPrompt() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.tail != nil && !l.tail.closed {
		// This will clear live box and print static box once.
		l.finalizeTailLocked()
	}
}

// Input asks for a single line of text, pre-filled with def. The prompt and
// the answer go to the full log.
func (l *Logger) Input(label, def string) (string, error) {
	l.finalizeTailForPrompt()

	l.InfoSilent("PROMPT: %s (default: %q)", label, def)

	var answer string
	err := survey.AskOne(
		&survey.Input{Message: label, Default: def},
		&answer,
		survey.WithStdio(os.Stdin, os.Stdout, os.Stderr),
	)
	if err != nil {
		l.Error("PROMPT FAILED: %v", err)
		return "", err
	}

	l.InfoSilent("ANSWER: %q", answer)
	return answer, nil
}

// Confirm asks a yes/no question defaulting to yes.
func (l *Logger) Confirm(text string) (bool, error) {
	l.finalizeTailForPrompt()

	l.InfoSilent("PROMPT: %s (confirm)", text)

	yes := true
	err := survey.AskOne(
		&survey.Confirm{Message: text, Default: true},
		&yes,
		survey.WithStdio(os.Stdin, os.Stdout, os.Stderr),
	)
	if err != nil {
		l.Error("PROMPT FAILED: %v", err)
		return false, err
	}

	l.InfoSilent("ANSWER: %t", yes)
	return yes, nil
}
