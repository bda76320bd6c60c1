package errors

import (
	"fmt"
	"strings"
	"testing"
)

func TestNewModelError(t *testing.T) {
	tests := []struct {
		name     string
		op       string
		kind     string
		err      error
		wantMsg  string
		hasStack bool
	}{
		{
			name:     "with original error",
			op:       "RandomForest",
			kind:     "fit failed",
			err:      fmt.Errorf("test error"),
			wantMsg:  "featselect: RandomForest: fit failed: test error",
			hasStack: true,
		},
		{
			name:     "without original error",
			op:       "L1",
			kind:     "fit failed",
			err:      nil,
			wantMsg:  "featselect: L1: fit failed",
			hasStack: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewModelError(tt.op, tt.kind, tt.err)

			if err.Error() != tt.wantMsg {
				t.Errorf("Error() = %v, want %v", err.Error(), tt.wantMsg)
			}

			if tt.hasStack {
				formatted := fmt.Sprintf("%+v", err)
				if !strings.Contains(formatted, "errors_test.go") {
					t.Error("Expected stack trace to contain test file name")
				}
			}

			var modelErr *ModelError
			if !As(err, &modelErr) {
				t.Error("Error should be castable to *ModelError")
			}
		})
	}
}

func TestNewSchemaError(t *testing.T) {
	err := NewSchemaError("classes.txt", "Set")

	want := `featselect: classes.txt: column "Set" not found`
	if err.Error() != want {
		t.Errorf("Error() = %v, want %v", err.Error(), want)
	}

	var schemaErr *SchemaError
	if !As(err, &schemaErr) {
		t.Fatal("Error should be castable to *SchemaError")
	}
	if schemaErr.Column != "Set" {
		t.Errorf("Column = %v, want Set", schemaErr.Column)
	}
}

func TestNewValidationError(t *testing.T) {
	err := NewValidationError("n", "required for RandomForest", nil)

	if !strings.Contains(err.Error(), "validation failed for parameter 'n'") {
		t.Errorf("unexpected message: %v", err.Error())
	}

	var valErr *ValidationError
	if !As(err, &valErr) {
		t.Error("Error should be castable to *ValidationError")
	}
}

func TestWarnHandler(t *testing.T) {
	var captured []error
	SetWarningHandler(func(w error) {
		captured = append(captured, w)
	})
	defer SetWarningHandler(nil)

	w := NewFeatureSkippedWarning("FisherExact", "kmer_17", "feature is not binary")
	Warn(w)

	if len(captured) != 1 {
		t.Fatalf("expected 1 captured warning, got %d", len(captured))
	}
	if !strings.Contains(captured[0].Error(), "kmer_17") {
		t.Errorf("warning should name the feature: %v", captured[0])
	}
}

func TestRetainCountClampedWarning(t *testing.T) {
	w := NewRetainCountClampedWarning(500, 48)

	want := "retain count 500 exceeds 48 available features; clamped"
	if w.Error() != want {
		t.Errorf("Error() = %v, want %v", w.Error(), want)
	}
}

func TestWrapPreservesType(t *testing.T) {
	base := NewValueError("Chi2", "negative feature values")
	wrapped := Wrap(base, "selecting features")

	var valErr *ValueError
	if !As(wrapped, &valErr) {
		t.Error("wrapped error should still be castable to *ValueError")
	}
	if !strings.Contains(wrapped.Error(), "selecting features") {
		t.Errorf("wrap message missing: %v", wrapped.Error())
	}
}
