package ledger

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"
)

// InvalidDataError is returned for operator input that should be re-entered.
type InvalidDataError struct {
	Reason string
}

func (e *InvalidDataError) Error() string {
	return e.Reason
}

// Validate parses the tokens as integers and checks that there is exactly one per column
// of the worksheet header. Only *InvalidDataError failures are recoverable by re-prompting,
// any other error is from the spreadsheet.
func (l *Ledger) Validate(ctx context.Context, table Table, tokens []string) (Row, error) {
	row, err := l.validate(ctx, table, tokens)

	var invalid *InvalidDataError
	if errors.As(err, &invalid) {
		fmt.Fprintf(l.out, "Invalid data: %v, please try again\n\n", invalid)
	} else if err == nil {
		fmt.Fprintf(l.out, "Data is valid!\n")
	}

	return row, err
}

func (l *Ledger) validate(ctx context.Context, table Table, tokens []string) (Row, error) {
	row := make(Row, len(tokens))
	for i, token := range tokens {
		v, err := strconv.Atoi(token)
		if err != nil {
			return nil, &InvalidDataError{Reason: fmt.Sprintf("invalid literal for integer: '%v'", token)}
		}

		row[i] = v
	}

	width, err := l.Width(ctx, table)
	if err != nil {
		return nil, err
	}

	if len(row) != width {
		return nil, &InvalidDataError{Reason: fmt.Sprintf("Exactly %d values required, you provided %d", width, len(row))}
	}

	return row, nil
}

// Collect prompts for a line of comma separated figures until one validates against the
// worksheet header. It only gives up at the end of the input, when the context is cancelled
// or on a spreadsheet error.
func (l *Ledger) Collect(ctx context.Context, r io.Reader, table Table) (Row, error) {
	reader := bufio.NewReader(r)

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		fmt.Fprintf(l.out, "Please enter %v data from the last market.\n", table)
		fmt.Fprintf(l.out, "Data should be numbers, one per sandwich, separated by commas.\n")
		fmt.Fprintf(l.out, "Example: 10, 20, 30, 40, 50, 60\n\n")
		fmt.Fprintf(l.out, "Enter your data here: ")

		line, err := reader.ReadString('\n')
		if err != nil && (!errors.Is(err, io.EOF) || line == "") {
			return nil, err
		}

		if err := ctx.Err(); err != nil {
			return nil, err
		}

		fmt.Fprintln(l.out)

		row, err := l.Validate(ctx, table, Tokenize(line))

		var invalid *InvalidDataError
		switch {
		case err == nil:
			return row, nil

		case errors.As(err, &invalid):
			continue

		default:
			return nil, err
		}
	}
}

// Tokenize removes all whitespace from a line of input and splits it on commas.
func Tokenize(line string) []string {
	s := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, line)

	return strings.Split(s, ",")
}

func parse(values []string) (Row, error) {
	row := make(Row, len(values))
	for i, v := range values {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return nil, fmt.Errorf("invalid value '%v' at position %d", v, i+1)
		}

		row[i] = n
	}

	return row, nil
}
