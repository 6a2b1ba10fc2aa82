package prompts

import (
	"context"
	"errors"
	"testing"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

func scripted(t *testing.T, answers ...string) (*RemediationPrompt, *int) {
	t.Helper()
	calls := 0
	p := &RemediationPrompt{ask: func(prompt survey.Prompt, response interface{}, _ ...survey.AskOpt) error {
		if _, ok := prompt.(*survey.Select); !ok {
			t.Fatalf("expected a select prompt, got %T", prompt)
		}
		if calls >= len(answers) {
			t.Fatalf("unexpected prompt #%d", calls+1)
		}
		*(response.(*string)) = answers[calls]
		calls++
		return nil
	}}
	return p, &calls
}

func TestApproveBlockAndSkip(t *testing.T) {
	p, calls := scripted(t, ChoiceBlock, ChoiceSkip)
	ctx := context.Background()

	if ok, err := p.Approve(ctx, "a"); err != nil || !ok {
		t.Fatalf("expected approval, got %v %v", ok, err)
	}
	if ok, err := p.Approve(ctx, "b"); err != nil || ok {
		t.Fatalf("expected skip, got %v %v", ok, err)
	}
	if *calls != 2 {
		t.Fatalf("expected 2 prompts, got %d", *calls)
	}
}

func TestApproveAllStopsPrompting(t *testing.T) {
	p, calls := scripted(t, ChoiceBlockAll)
	for _, b := range []string{"a", "b", "c"} {
		if ok, err := p.Approve(context.Background(), b); err != nil || !ok {
			t.Fatalf("%s: expected approval, got %v %v", b, ok, err)
		}
	}
	if *calls != 1 {
		t.Fatalf("expected a single prompt, got %d", *calls)
	}
}

func TestApproveAbortSkipsRemaining(t *testing.T) {
	p, calls := scripted(t, ChoiceAbort)
	for _, b := range []string{"a", "b"} {
		if ok, err := p.Approve(context.Background(), b); err != nil || ok {
			t.Fatalf("%s: expected skip, got %v %v", b, ok, err)
		}
	}
	if *calls != 1 {
		t.Fatalf("expected a single prompt, got %d", *calls)
	}
}

func TestApproveInterrupt(t *testing.T) {
	calls := 0
	p := &RemediationPrompt{ask: func(survey.Prompt, interface{}, ...survey.AskOpt) error {
		calls++
		return terminal.InterruptErr
	}}
	ok, err := p.Approve(context.Background(), "a")
	if ok || !errors.Is(err, terminal.InterruptErr) {
		t.Fatalf("expected interrupt error, got %v %v", ok, err)
	}

	ok, err = p.Approve(context.Background(), "b")
	if ok || err != nil {
		t.Fatalf("buckets after an interrupt should be skipped, got %v %v", ok, err)
	}
	if calls != 1 {
		t.Fatalf("expected no prompt after interrupt, got %d prompts", calls)
	}
}

func TestApproveOtherErrorKeepsAsking(t *testing.T) {
	calls := 0
	p := &RemediationPrompt{ask: func(_ survey.Prompt, response interface{}, _ ...survey.AskOpt) error {
		calls++
		if calls == 1 {
			return errors.New("tty read failed")
		}
		*(response.(*string)) = ChoiceBlock
		return nil
	}}
	if _, err := p.Approve(context.Background(), "a"); err == nil {
		t.Fatal("expected prompt error")
	}
	ok, err := p.Approve(context.Background(), "b")
	if !ok || err != nil {
		t.Fatalf("expected approval on retry, got %v %v", ok, err)
	}
}

func TestApproveCanceledContext(t *testing.T) {
	p, calls := scripted(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := p.Approve(ctx, "a"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if *calls != 0 {
		t.Fatalf("no prompt expected")
	}
}
