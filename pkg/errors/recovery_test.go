package errors

import (
	"fmt"
	"strings"
	"testing"
)

func TestRecoverWithPanic(t *testing.T) {
	fitFunc := func() (err error) {
		defer Recover(&err, "Lasso.Fit")
		panic("singular design matrix")
	}

	err := fitFunc()
	if err == nil {
		t.Fatal("Expected error from recovered panic, got nil")
	}

	var panicErr *PanicError
	if !As(err, &panicErr) {
		t.Fatalf("Expected PanicError, got %T", err)
	}
	if panicErr.Operation != "Lasso.Fit" {
		t.Errorf("Operation = %q, want Lasso.Fit", panicErr.Operation)
	}
	if panicErr.PanicValue != "singular design matrix" {
		t.Errorf("PanicValue = %v, want the panic message", panicErr.PanicValue)
	}
	if panicErr.StackTrace == "" {
		t.Error("Expected non-empty stack trace")
	}
	if want := "panic in Lasso.Fit: singular design matrix"; panicErr.Error() != want {
		t.Errorf("Error() = %q, want %q", panicErr.Error(), want)
	}
}

func TestRecoverWithoutPanic(t *testing.T) {
	fitFunc := func() (err error) {
		defer Recover(&err, "Lasso.Fit")
		return nil
	}

	if err := fitFunc(); err != nil {
		t.Fatalf("Expected no error when no panic occurs, got: %v", err)
	}
}

func TestRecoverKeepsExistingError(t *testing.T) {
	original := fmt.Errorf("convergence failure")

	fitFunc := func() (err error) {
		defer Recover(&err, "Lasso.Fit")
		err = original
		panic("panic after error")
	}

	err := fitFunc()
	if err == nil {
		t.Fatal("Expected error, got nil")
	}
	msg := err.Error()
	if !strings.Contains(msg, "panic in Lasso.Fit") {
		t.Errorf("Error message should contain panic context: %s", msg)
	}
	if !strings.Contains(msg, "convergence failure") {
		t.Errorf("Error message should keep the original error: %s", msg)
	}
	if !Is(err, original) {
		t.Error("Original error should still be unwrappable")
	}
}

func TestSafeExecute(t *testing.T) {
	err := SafeExecute("Engine.Fit", func() error {
		return nil
	})
	if err != nil {
		t.Errorf("SafeExecute with clean function returned %v", err)
	}

	wantErr := fmt.Errorf("bad input")
	err = SafeExecute("Engine.Fit", func() error {
		return wantErr
	})
	if err != wantErr {
		t.Errorf("SafeExecute should pass through the function's error, got %v", err)
	}

	err = SafeExecute("Engine.Fit", func() error {
		panic("engine misuse")
	})
	var panicErr *PanicError
	if !As(err, &panicErr) {
		t.Fatalf("SafeExecute should convert panic to PanicError, got %T", err)
	}
	if panicErr.Operation != "Engine.Fit" {
		t.Errorf("Operation = %q, want Engine.Fit", panicErr.Operation)
	}
}
