package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/globalwealth/wealthdash/internal/wealth"
)

// ExitChecksFailed is returned when the dataset fails validation.
const ExitChecksFailed = 10

// ValidateOptions defines available flags for the validate command.
type ValidateOptions struct {
	Tolerance  float64
	JSONOutput bool
	Stdout     io.Writer
	Stderr     io.Writer
	// Dataset overrides the built-in dataset.
	Dataset func() wealth.Dataset
}

// ValidateSummary describes the JSON response for validate.
type ValidateSummary struct {
	OK        bool               `json:"ok"`
	Tolerance float64            `json:"tolerance"`
	Sums      []wealth.ColumnSum `json:"sums"`
	Problems  []string           `json:"problems"`
}

// ValidateCommand checks the dataset and prints the outcome. It returns 0 when
// every check passes, ExitChecksFailed when any fails and 1 on usage errors.
func ValidateCommand(ctx context.Context, opts ValidateOptions) int {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	if opts.Tolerance < 0 {
		_, _ = fmt.Fprintln(opts.Stderr, "validate: --tolerance must not be negative")
		return 1
	}
	if opts.Tolerance == 0 {
		opts.Tolerance = wealth.DefaultTolerance
	}
	dataset := wealth.All
	if opts.Dataset != nil {
		dataset = opts.Dataset
	}
	d := dataset()

	summary := ValidateSummary{
		OK:        true,
		Tolerance: opts.Tolerance,
		Sums:      wealth.ColumnSums(d, opts.Tolerance),
		Problems:  []string{},
	}
	if err := wealth.Validate(d, opts.Tolerance); err != nil {
		var verr *wealth.ValidationError
		if !errors.As(err, &verr) {
			_, _ = fmt.Fprintf(opts.Stderr, "validate: %v\n", err)
			return 1
		}
		summary.OK = false
		summary.Problems = verr.Problems
	}

	if opts.JSONOutput {
		if err := json.NewEncoder(opts.Stdout).Encode(summary); err != nil {
			_, _ = fmt.Fprintf(opts.Stderr, "validate: encode json: %v\n", err)
			return 1
		}
	} else {
		renderValidateHuman(opts.Stdout, summary)
	}
	if !summary.OK {
		return ExitChecksFailed
	}
	return 0
}

func renderValidateHuman(out io.Writer, summary ValidateSummary) {
	_, _ = fmt.Fprintf(out, "Dataset validation (tolerance ±%.2f)\n", summary.Tolerance)
	for _, sum := range summary.Sums {
		mark := "ok"
		if !sum.OK {
			mark = "FAIL"
		}
		_, _ = fmt.Fprintf(out, " - %s.%s = %.3f [%s]\n", sum.Table, sum.Column, sum.Sum, mark)
	}
	if summary.OK {
		_, _ = fmt.Fprintln(out, "All checks passed.")
		return
	}
	_, _ = fmt.Fprintf(out, "%d problem(s) detected:\n", len(summary.Problems))
	for _, p := range summary.Problems {
		_, _ = fmt.Fprintf(out, " - %s\n", p)
	}
}
