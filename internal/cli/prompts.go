package cli

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// prompter collects validated input from an interactive reader. Each
// helper re-prompts until the input parses, mirroring how the menu
// treats every bad entry as recoverable.
type prompter struct {
	in  *bufio.Reader
	out io.Writer
}

// readLine returns one trimmed input line. io.EOF propagates so the
// shell can exit cleanly when stdin closes.
func (p *prompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// nonEmpty prompts until the user enters a non-empty line.
func (p *prompter) nonEmpty(prompt string) (string, error) {
	for {
		fmt.Fprint(p.out, prompt)
		value, err := p.readLine()
		if err != nil {
			return "", err
		}
		if value == "" {
			fmt.Fprintln(p.out, "Input cannot be empty. Please try again.")
			continue
		}
		return value, nil
	}
}

// float prompts until the user enters a number.
func (p *prompter) float(prompt string) (float64, error) {
	for {
		fmt.Fprint(p.out, prompt)
		value, err := p.readLine()
		if err != nil {
			return 0, err
		}
		f, convErr := strconv.ParseFloat(value, 64)
		if convErr != nil {
			fmt.Fprintln(p.out, "Invalid input. Please enter a number.")
			continue
		}
		return f, nil
	}
}

// floatInRange prompts until the user enters a number within [min, max].
func (p *prompter) floatInRange(prompt string, min, max float64) (float64, error) {
	for {
		f, err := p.float(prompt)
		if err != nil {
			return 0, err
		}
		if f < min || f > max {
			fmt.Fprintf(p.out, "Value must be between %g and %g.\n", min, max)
			continue
		}
		return f, nil
	}
}

// optionalFloat returns nil when the user leaves the line empty.
func (p *prompter) optionalFloat(prompt string) (*float64, error) {
	fmt.Fprint(p.out, prompt)
	value, err := p.readLine()
	if err != nil {
		return nil, err
	}
	if value == "" {
		return nil, nil
	}
	f, convErr := strconv.ParseFloat(value, 64)
	if convErr != nil {
		fmt.Fprintln(p.out, "Invalid input, ignoring this filter.")
		return nil, nil
	}
	return &f, nil
}

// optionalInt returns nil when the user leaves the line empty.
func (p *prompter) optionalInt(prompt string) (*int, error) {
	fmt.Fprint(p.out, prompt)
	value, err := p.readLine()
	if err != nil {
		return nil, err
	}
	if value == "" {
		return nil, nil
	}
	i, convErr := strconv.Atoi(value)
	if convErr != nil {
		fmt.Fprintln(p.out, "Invalid input, ignoring this filter.")
		return nil, nil
	}
	return &i, nil
}

// optionalString returns nil when the user leaves the line empty.
func (p *prompter) optionalString(prompt string) (*string, error) {
	fmt.Fprint(p.out, prompt)
	value, err := p.readLine()
	if err != nil {
		return nil, err
	}
	if value == "" {
		return nil, nil
	}
	return &value, nil
}

// yesNo prompts for a y/n confirmation; anything except y/yes is no.
func (p *prompter) yesNo(prompt string) (bool, error) {
	fmt.Fprint(p.out, prompt)
	value, err := p.readLine()
	if err != nil {
		return false, err
	}
	value = strings.ToLower(value)
	return value == "y" || value == "yes", nil
}
