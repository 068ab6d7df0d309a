package pipeline

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestStageError_Error(t *testing.T) {
	se := &StageError{Stage: StageFetch, Err: errors.New("access denied")}

	expected := `stage "fetch" failed: access denied`
	if got := se.Error(); got != expected {
		t.Errorf("Error() = %q, want %q", got, expected)
	}
}

func TestStageError_Unwrap(t *testing.T) {
	err := errors.New("original error")
	se := &StageError{Stage: StageDecode, Err: err}

	if got := se.Unwrap(); got != err {
		t.Errorf("Unwrap() = %v, want %v", got, err)
	}
}

func TestIsStageError(t *testing.T) {
	se := &StageError{Stage: StageRender, Err: errors.New("err")}

	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "nil error", err: nil, want: false},
		{name: "standard error", err: errors.New("standard"), want: false},
		{name: "StageError", err: se, want: true},
		{name: "wrapped StageError", err: fmt.Errorf("wrapped: %w", se), want: true},
		{name: "joined errors containing StageError", err: errors.Join(errors.New("other"), se), want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsStageError(tt.err); got != tt.want {
				t.Errorf("IsStageError() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestStageOf(t *testing.T) {
	se := &StageError{Stage: StageAggregate, Err: errors.New("err")}

	tests := []struct {
		name      string
		err       error
		wantStage Stage
		wantOk    bool
	}{
		{name: "nil error", err: nil},
		{name: "standard error", err: errors.New("standard")},
		{name: "StageError", err: se, wantStage: StageAggregate, wantOk: true},
		{name: "wrapped StageError", err: fmt.Errorf("wrapped: %w", se), wantStage: StageAggregate, wantOk: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotStage, gotOk := StageOf(tt.err)
			if gotOk != tt.wantOk {
				t.Errorf("StageOf() ok = %v, want %v", gotOk, tt.wantOk)
			}
			if gotStage != tt.wantStage {
				t.Errorf("StageOf() stage = %q, want %q", gotStage, tt.wantStage)
			}
		})
	}
}

func TestCauseOf(t *testing.T) {
	rootErr := errors.New("root cause")
	se := &StageError{Stage: StageFetch, Err: rootErr}

	tests := []struct {
		name string
		err  error
		want error
	}{
		{name: "nil error", err: nil, want: nil},
		{name: "standard error", err: rootErr, want: rootErr},
		{name: "StageError", err: se, want: rootErr},
		{name: "wrapped StageError", err: fmt.Errorf("wrapped: %w", se), want: rootErr},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CauseOf(tt.err); got != tt.want {
				t.Errorf("CauseOf() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAllStageErrors(t *testing.T) {
	se1 := &StageError{Stage: StageRender, Err: errors.New("e1")}
	se2 := &StageError{Stage: StageMetrics, Err: errors.New("e2")}

	tests := []struct {
		name string
		err  error
		want []*StageError
	}{
		{name: "nil error", err: nil, want: nil},
		{name: "standard error", err: errors.New("standard"), want: nil},
		{name: "single StageError", err: se1, want: []*StageError{se1}},
		{name: "joined StageErrors", err: errors.Join(se1, se2), want: []*StageError{se1, se2}},
		{name: "nested joins", err: errors.Join(errors.Join(se1), errors.New("x"), se2), want: []*StageError{se1, se2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AllStageErrors(tt.err)
			if len(got) != len(tt.want) {
				t.Fatalf("AllStageErrors() len = %d, want %d", len(got), len(tt.want))
			}
			for i, g := range got {
				if g != tt.want[i] {
					t.Errorf("AllStageErrors()[%d] = %v, want %v", i, g, tt.want[i])
				}
			}
		})
	}
}

func TestPanicError(t *testing.T) {
	sentinel := errors.New("boom")
	pe := newPanicError(sentinel)

	if !errors.Is(pe, sentinel) {
		t.Fatal("PanicError must unwrap an error panic value")
	}
	if !strings.HasPrefix(pe.Error(), "panic: boom") {
		t.Fatalf("unexpected message %q", pe.Error())
	}
	if pe.Stack == "" {
		t.Fatal("expected a stack trace")
	}

	if (&PanicError{Value: "text"}).Unwrap() != nil {
		t.Fatal("non-error panic values unwrap to nil")
	}
}
