package errors

import (
	stderrors "errors"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantMsg string
		wantCat Category
	}{
		{
			name:    "render failure",
			code:    "R001",
			wantMsg: "Render failed",
			wantCat: CategoryReconcile,
		},
		{
			name:    "fixture error",
			code:    "F102",
			wantMsg: "Unknown fixture component",
			wantCat: CategoryFixture,
		},
		{
			name:    "config error",
			code:    "C121",
			wantMsg: "Invalid server port",
			wantCat: CategoryConfig,
		},
		{
			name:    "unknown error code",
			code:    "R999",
			wantMsg: "Unknown error",
			wantCat: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := New(tt.code)
			if err.Message != tt.wantMsg {
				t.Errorf("Message = %q, want %q", err.Message, tt.wantMsg)
			}
			if err.Category != tt.wantCat {
				t.Errorf("Category = %q, want %q", err.Category, tt.wantCat)
			}
			if err.Code != tt.code {
				t.Errorf("Code = %q, want %q", err.Code, tt.code)
			}
		})
	}
}

func TestNewf(t *testing.T) {
	err := Newf(CategoryCLI, "fixture %q not found", "list.yaml")
	if err.Message != `fixture "list.yaml" not found` {
		t.Errorf("Message = %q", err.Message)
	}
	if err.Code != "" {
		t.Errorf("Code = %q, want empty", err.Code)
	}
}

func TestWrapAndUnwrap(t *testing.T) {
	cause := stderrors.New("disk full")
	err := New("S150").Wrap(cause)

	if !stderrors.Is(err, cause) {
		t.Error("errors.Is should find the wrapped cause")
	}
	if !strings.Contains(err.Error(), "disk full") {
		t.Errorf("Error() = %q, want it to mention the cause", err.Error())
	}
	if !Is(err, "S150") {
		t.Error("Is(err, S150) = false, want true")
	}
	if Is(cause, "S150") {
		t.Error("Is(cause, S150) = true, want false")
	}
}

func TestFromError(t *testing.T) {
	if FromError(nil, "C120") != nil {
		t.Error("FromError(nil) should be nil")
	}

	orig := New("C121")
	if got := FromError(orig, "C120"); got != orig {
		t.Error("FromError should return an existing ReconcileError unchanged")
	}

	plain := stderrors.New("boom")
	got := FromError(plain, "C120")
	if got.Code != "C120" || got.Wrapped != plain {
		t.Errorf("FromError = %+v, want code C120 wrapping the cause", got)
	}
}

func TestRecovered(t *testing.T) {
	if Recovered(nil) != nil {
		t.Fatal("Recovered(nil) should be nil")
	}

	err := Recovered("kaboom")
	var pe *PanicError
	if !stderrors.As(err, &pe) {
		t.Fatalf("Recovered should produce a *PanicError, got %T", err)
	}
	if pe.Value != "kaboom" {
		t.Errorf("Value = %v, want kaboom", pe.Value)
	}
	if err.Error() != "panic: kaboom" {
		t.Errorf("Error() = %q", err.Error())
	}

	cause := stderrors.New("inner")
	wrapped := Recovered(cause)
	if !stderrors.Is(wrapped, cause) {
		t.Error("a recovered error value should unwrap to itself")
	}
}

func TestFormat(t *testing.T) {
	DisableColors()
	defer EnableColors()

	err := New("F101").
		WithDetail("step 2 has no tree").
		WithSuggestion("Add a 'tree' key to every step").
		WithNode("<ul>")

	out := err.Format()
	for _, want := range []string{"ERROR F101: Fixture step is empty", "at <ul>", "step 2 has no tree", "Hint: Add a 'tree' key"} {
		if !strings.Contains(out, want) {
			t.Errorf("Format() missing %q in:\n%s", want, out)
		}
	}
}

func TestWrapText(t *testing.T) {
	lines := wrapText("one two three four five", 9)
	want := []string{"one two", "three", "four five"}
	if len(lines) != len(want) {
		t.Fatalf("wrapText = %q, want %q", lines, want)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}
}
