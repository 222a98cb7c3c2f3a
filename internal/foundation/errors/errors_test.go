package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestClassifiedError(t *testing.T) {
	t.Run("Basic error creation", func(t *testing.T) {
		err := NewError(CategoryConfig, "invalid configuration").
			WithSeverity(SeverityFatal).
			WithContext("file", "sitegen.yaml").
			Build()

		if err.Category() != CategoryConfig {
			t.Errorf("expected category %s, got %s", CategoryConfig, err.Category())
		}
		if err.Severity() != SeverityFatal {
			t.Errorf("expected severity %s, got %s", SeverityFatal, err.Severity())
		}
		if err.Message() != "invalid configuration" {
			t.Errorf("expected message 'invalid configuration', got %s", err.Message())
		}

		file, exists := err.Context().GetString("file")
		if !exists || file != "sitegen.yaml" {
			t.Errorf("expected context file=sitegen.yaml, got %v", file)
		}
	})

	t.Run("Error detection through wrapping", func(t *testing.T) {
		err := fmt.Errorf("plan: %w", ValidationError("slug collision").Build())

		if !IsClassified(err) {
			t.Error("expected wrapped error to be classified")
		}
		if !HasCategory(err, CategoryValidation) {
			t.Error("expected error to have validation category")
		}
		if GetCategory(errors.New("plain")) != CategoryInternal {
			t.Error("expected unclassified error to default to internal")
		}
	})

	t.Run("Error string", func(t *testing.T) {
		cause := errors.New("permission denied")
		err := WrapError(cause, CategoryFileSystem, "write page").Fatal().Build()

		want := "[filesystem:fatal] write page: permission denied"
		if err.Error() != want {
			t.Errorf("expected %q, got %q", want, err.Error())
		}
		if !errors.Is(err, cause) {
			t.Error("expected error to wrap cause")
		}
	})
}

func TestErrorBuilder(t *testing.T) {
	tests := []struct {
		name     string
		builder  *ErrorBuilder
		category ErrorCategory
		severity ErrorSeverity
	}{
		{"ConfigError", ConfigError("test"), CategoryConfig, SeverityFatal},
		{"ValidationError", ValidationError("test"), CategoryValidation, SeverityFatal},
		{"FileSystemError", FileSystemError("test"), CategoryFileSystem, SeverityFatal},
		{"RenderError", RenderError("test"), CategoryRender, SeverityFatal},
		{"BuildError", BuildError("test"), CategoryBuild, SeverityFatal},
		{"InternalError", InternalError("test"), CategoryInternal, SeverityFatal},
		{"Warning", NewError(CategoryValidation, "test").Warning(), CategoryValidation, SeverityWarning},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.builder.Build()
			if err.Category() != tt.category {
				t.Errorf("expected category %s, got %s", tt.category, err.Category())
			}
			if err.Severity() != tt.severity {
				t.Errorf("expected severity %s, got %s", tt.severity, err.Severity())
			}
		})
	}
}

func TestClassifiedError_WithContextDoesNotMutate(t *testing.T) {
	base := ValidationError("empty slug").WithContext("section", "—").Build()
	derived := base.WithContext("path", "sezioni/.html")

	if _, ok := base.Context().Get("path"); ok {
		t.Error("expected original context to be untouched")
	}
	if v, _ := derived.Context().GetString("section"); v != "—" {
		t.Errorf("expected derived context to keep section, got %q", v)
	}
	if !errors.Is(derived, base) {
		t.Error("expected derived error to match base by category and message")
	}
}

func TestErrorContext(t *testing.T) {
	ctx1 := ErrorContext{}.Set("key1", "value1").Set("shared", "original")
	ctx2 := ErrorContext{}.Set("key2", 42).Set("shared", "overridden")

	merged := ctx1.Merge(ctx2)

	if v, _ := merged.GetString("key1"); v != "value1" {
		t.Errorf("expected key1=value1, got %s", v)
	}
	if v, _ := merged.Get("key2"); v != 42 {
		t.Errorf("expected key2=42, got %v", v)
	}
	if v, _ := merged.GetString("shared"); v != "overridden" {
		t.Errorf("expected shared=overridden, got %s", v)
	}
	if _, ok := merged.GetString("key2"); ok {
		t.Error("expected non-string value to be rejected by GetString")
	}
}
