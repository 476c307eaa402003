package main

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// confirm asks a yes/no question on stderr and reads the answer from stdin.
// Anything but y/yes, including end of input, is a no.
func (a *app) confirm(question string) (bool, error) {
	fmt.Fprintf(a.errOut, "%s [y/N] ", question)

	line, err := a.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false, err
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}
