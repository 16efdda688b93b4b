package wealth

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// DefaultTolerance is the allowed drift of a percentage column from 100.
const DefaultTolerance = 0.5

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func rowValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// ValidationError lists every failed dataset check.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return "wealth: dataset invalid: " + strings.Join(e.Problems, "; ")
}

// ColumnSum reports the total of one percentage column.
type ColumnSum struct {
	Table  string  `json:"table"`
	Column string  `json:"column"`
	Sum    float64 `json:"sum"`
	OK     bool    `json:"ok"`
}

// SumPercentAdults totals the share of adults across wealth bands.
func SumPercentAdults(bands []WealthBand) float64 {
	total := 0.0
	for _, b := range bands {
		total += b.PercentAdults
	}
	return total
}

// SumPercentWealth totals the share of wealth across wealth bands.
func SumPercentWealth(bands []WealthBand) float64 {
	total := 0.0
	for _, b := range bands {
		total += b.PercentWealth
	}
	return total
}

// SumPercentBillionaires totals the share of billionaires across bands.
func SumPercentBillionaires(bands []BillionaireBand) float64 {
	total := 0.0
	for _, b := range bands {
		total += b.PercentBillionaires
	}
	return total
}

// SumPercentBillionaireWealth totals the share of billionaire wealth across bands.
func SumPercentBillionaireWealth(bands []BillionaireBand) float64 {
	total := 0.0
	for _, b := range bands {
		total += b.PercentBillionaireWealth
	}
	return total
}

// ColumnSums computes every percentage column total and flags the ones that
// drift from 100 by more than tolerance.
func ColumnSums(d Dataset, tolerance float64) []ColumnSum {
	if tolerance <= 0 {
		tolerance = DefaultTolerance
	}
	sums := []ColumnSum{
		{Table: "wealth_bands", Column: "percent_adults", Sum: SumPercentAdults(d.WealthBands)},
		{Table: "wealth_bands", Column: "percent_wealth", Sum: SumPercentWealth(d.WealthBands)},
		{Table: "billionaire_bands", Column: "percent_billionaires", Sum: SumPercentBillionaires(d.BillionaireBands)},
		{Table: "billionaire_bands", Column: "percent_billionaire_wealth", Sum: SumPercentBillionaireWealth(d.BillionaireBands)},
	}
	for _, y := range d.Historical {
		total := 0.0
		for _, v := range y.Shares() {
			total += v
		}
		sums = append(sums, ColumnSum{Table: "historical", Column: fmt.Sprintf("%d", y.Year), Sum: total})
	}
	for i := range sums {
		sums[i].Sum = math.Round(sums[i].Sum*1000) / 1000
		sums[i].OK = math.Abs(sums[i].Sum-100) <= tolerance
	}
	return sums
}

// Validate checks row-level constraints and percentage totals of the dataset.
func Validate(d Dataset, tolerance float64) error {
	v := rowValidator()
	var problems []string

	addRowErr := func(table string, idx int, err error) {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				problems = append(problems, fmt.Sprintf("%s[%d].%s failed %s", table, idx, fe.Field(), fe.Tag()))
			}
			return
		}
		problems = append(problems, fmt.Sprintf("%s[%d]: %v", table, idx, err))
	}

	for i, row := range d.WealthBands {
		if err := v.Struct(row); err != nil {
			addRowErr("wealth_bands", i, err)
		}
	}
	for i, row := range d.Historical {
		if err := v.Struct(row); err != nil {
			addRowErr("historical", i, err)
		}
	}
	for i, row := range d.BillionaireBands {
		if err := v.Struct(row); err != nil {
			addRowErr("billionaire_bands", i, err)
		}
	}
	for i, row := range d.Metrics {
		if err := v.Struct(row); err != nil {
			addRowErr("metrics", i, err)
		}
	}

	for _, sum := range ColumnSums(d, tolerance) {
		if !sum.OK {
			problems = append(problems, fmt.Sprintf("%s.%s sums to %.3f", sum.Table, sum.Column, sum.Sum))
		}
	}

	if len(problems) > 0 {
		return &ValidationError{Problems: problems}
	}
	return nil
}
