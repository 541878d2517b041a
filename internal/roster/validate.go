package roster

import (
	"strconv"
	"strings"
)

const (
	FieldNumber = "number"
	FieldName   = "name"
)

type playerInput struct {
	number   int
	name     string
	position string
}

// parseInput trims the raw form values and checks presence/type only.
func parseInput(number, name, position string) (playerInput, error) {
	in := playerInput{
		name:     strings.TrimSpace(name),
		position: strings.TrimSpace(position),
	}
	if in.name == "" {
		return playerInput{}, &ValidationError{Field: FieldName, Message: "name is required"}
	}
	raw := strings.TrimSpace(number)
	if raw == "" {
		return playerInput{}, &ValidationError{Field: FieldNumber, Message: "number is required"}
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return playerInput{}, &ValidationError{Field: FieldNumber, Message: "number must be an integer"}
	}
	in.number = n
	return in, nil
}
