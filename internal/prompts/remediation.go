package prompts

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// Remediation prompt choices.
const (
	ChoiceBlock    = "Block public access"
	ChoiceSkip     = "Skip this bucket"
	ChoiceBlockAll = "Block public access on all remaining public buckets"
	ChoiceAbort    = "Skip all remaining public buckets"
)

// AskFunc matches survey.AskOne
type AskFunc func(p survey.Prompt, response interface{}, opts ...survey.AskOpt) error

// RemediationPrompt asks before public access is blocked on each bucket.
// It is safe for concurrent use; prompts are serialized.
type RemediationPrompt struct {
	ask AskFunc

	mu      sync.Mutex
	all     bool
	aborted bool
}

// NewRemediationPrompt creates a prompt backed by the terminal
func NewRemediationPrompt() *RemediationPrompt {
	return &RemediationPrompt{ask: survey.AskOne}
}

// Approve matches audit.ApproveFunc.
func (p *RemediationPrompt) Approve(ctx context.Context, bucket string) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return false, err
	}
	if p.all {
		return true, nil
	}
	if p.aborted {
		return false, nil
	}

	var choice string
	err := p.ask(&survey.Select{
		Message: fmt.Sprintf("Bucket %s has public access. What do you want to do?", bucket),
		Options: []string{ChoiceBlock, ChoiceSkip, ChoiceBlockAll, ChoiceAbort},
		Default: ChoiceBlock,
	}, &choice)
	if err != nil {
		// Ctrl-C in raw mode never reaches the signal handler; treat it as skip-all.
		if errors.Is(err, terminal.InterruptErr) {
			p.aborted = true
		}
		return false, fmt.Errorf("prompt failed: %w", err)
	}

	switch choice {
	case ChoiceBlock:
		return true, nil
	case ChoiceBlockAll:
		p.all = true
		return true, nil
	case ChoiceAbort:
		p.aborted = true
		return false, nil
	default:
		return false, nil
	}
}
