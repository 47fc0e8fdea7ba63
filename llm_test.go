package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestStripCodeFence(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"bare json", `{"a": 1}`, `{"a": 1}`},
		{"json fence", "```json\n{\"a\": 1}\n```", `{"a": 1}`},
		{"plain fence", "```\n{\"a\": 1}\n```", `{"a": 1}`},
		{"surrounding whitespace", "  \n```json\n{\"a\": 1}\n```\n  ", `{"a": 1}`},
		{"unterminated fence", "```json\n{\"a\": 1}", `{"a": 1}`},
		{"empty", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := stripCodeFence(tc.in); got != tc.want {
				t.Fatalf("stripCodeFence(%q) = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestInvokeFirstModelSucceeds(t *testing.T) {
	var calls []string
	a := &Analyzer{
		candidates: defaultModelCandidates,
		generate: func(ctx context.Context, model, prompt string) (string, error) {
			calls = append(calls, model)
			return `{"sentiment_score": 80}`, nil
		},
	}

	result, err := a.Invoke(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(calls) != 1 {
		t.Fatalf("expected a single attempt, got %v", calls)
	}
	if result.Field("sentiment_score") != "80" {
		t.Fatalf("unexpected score: %q", result.Field("sentiment_score"))
	}
}

func TestInvokeFallsBackOnFailure(t *testing.T) {
	var calls []string
	a := &Analyzer{
		candidates: defaultModelCandidates,
		generate: func(ctx context.Context, model, prompt string) (string, error) {
			calls = append(calls, model)
			switch len(calls) {
			case 1:
				return "", errors.New("quota exceeded")
			case 2:
				return "not json at all", nil
			default:
				return "```json\n{\"sentiment_label\": \"Positivo\"}\n```", nil
			}
		},
	}

	result, err := a.Invoke(context.Background(), "prompt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(calls) != 3 {
		t.Fatalf("expected three attempts, got %v", calls)
	}
	if calls[0] != defaultModelCandidates[0].Name || calls[2] != defaultModelCandidates[2].Name {
		t.Fatalf("candidates tried out of order: %v", calls)
	}
	if result.Field("sentiment_label") != "Positivo" {
		t.Fatalf("unexpected label: %q", result.Field("sentiment_label"))
	}
}

func TestInvokeSuccessStopsFallback(t *testing.T) {
	var calls int
	a := &Analyzer{
		candidates: defaultModelCandidates,
		generate: func(ctx context.Context, model, prompt string) (string, error) {
			calls++
			if calls == 1 {
				return "", errors.New("unavailable")
			}
			return `{}`, nil
		},
	}

	if _, err := a.Invoke(context.Background(), "prompt"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 2 {
		t.Fatalf("remaining candidates must not be tried after a success, got %d calls", calls)
	}
}

func TestInvokeAllModelsFail(t *testing.T) {
	var calls int
	lastFailure := errors.New("final model down")
	a := &Analyzer{
		candidates: defaultModelCandidates,
		generate: func(ctx context.Context, model, prompt string) (string, error) {
			calls++
			if calls == len(defaultModelCandidates) {
				return "", lastFailure
			}
			return "", fmt.Errorf("model %s down", model)
		},
	}

	_, err := a.Invoke(context.Background(), "prompt")
	var exhausted *AllModelsFailedError
	if !errors.As(err, &exhausted) {
		t.Fatalf("expected AllModelsFailedError, got %v", err)
	}
	if calls != len(defaultModelCandidates) {
		t.Fatalf("expected %d attempts, got %d", len(defaultModelCandidates), calls)
	}
	// The wrapped error is the last one recorded.
	if !errors.Is(err, lastFailure) {
		t.Fatalf("expected the last failure to be wrapped, got %v", err)
	}
}

func TestDefaultModelCandidates(t *testing.T) {
	if len(defaultModelCandidates) != 5 {
		t.Fatalf("unexpected candidate count: %d", len(defaultModelCandidates))
	}
	for i, c := range defaultModelCandidates {
		if !strings.HasPrefix(c.Name, "models/") {
			t.Fatalf("candidate %d has unqualified name %q", i, c.Name)
		}
	}
	// Fast models come first so a working cheap model short-circuits the
	// capable tier.
	if defaultModelCandidates[0].Tier != TierFast || defaultModelCandidates[len(defaultModelCandidates)-1].Tier != TierCapable {
		t.Fatal("candidates must be ordered fast tier before capable tier")
	}
}
