package config

import (
	"errors"
	"fmt"
)

// ErrConfigNotFound is returned by Load when the profile file does not exist.
var ErrConfigNotFound = errors.New("config file not found")

// ParseError reports a profile file whose contents are not well-formed JSON.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("config file %s is not valid JSON", e.Path)
	}
	return fmt.Sprintf("config file %s is not valid JSON: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
