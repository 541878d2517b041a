package roster

import (
	"errors"
	"testing"
)

func TestParseInput(t *testing.T) {
	in, err := parseInput("00", " Russell ", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if in.number != 0 || in.name != "Russell" || in.position != "" {
		t.Fatalf("unexpected input %+v", in)
	}

	if _, err := parseInput("-1", "Neg", ""); err != nil {
		t.Fatalf("negative numbers parse as integers: %v", err)
	}
}

func TestValidationErrorMatchesSentinel(t *testing.T) {
	_, err := parseInput("abc", "Name", "")
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
	if err.Error() != "number: number must be an integer" {
		t.Fatalf("unexpected message %q", err.Error())
	}
	if errors.Is(err, ErrPersist) {
		t.Fatalf("validation errors must not match ErrPersist")
	}
}
