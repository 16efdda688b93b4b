package export

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/globalwealth/wealthdash/internal/wealth"
	"github.com/globalwealth/wealthdash/internal/wealth/ui"
)

// Table names a CSV export.
type Table string

// Exportable tables.
const (
	TableWealth       Table = "wealth"
	TableBillionaires Table = "billionaires"
	TableHistorical   Table = "historical"
	TableAll          Table = "all"
)

// ErrUnknownTable is returned by ParseTable for names outside the known set.
var ErrUnknownTable = errors.New("export: unknown table")

// ParseTable resolves a table name; an empty name selects every table.
func ParseTable(name string) (Table, error) {
	switch t := Table(strings.ToLower(strings.TrimSpace(name))); t {
	case "":
		return TableAll, nil
	case TableWealth, TableBillionaires, TableHistorical, TableAll:
		return t, nil
	default:
		return "", fmt.Errorf("%w %q", ErrUnknownTable, name)
	}
}

// Filename returns the download name for the table.
func (t Table) Filename() string {
	return "wealth-" + string(t) + ".csv"
}

// WriteWealthCSV emits the global wealth bands as CSV.
func WriteWealthCSV(w io.Writer, bands []wealth.WealthBand) error {
	return writeTab(w, ui.WealthTable(bands))
}

// WriteBillionairesCSV emits the billionaire bands as CSV.
func WriteBillionairesCSV(w io.Writer, bands []wealth.BillionaireBand) error {
	return writeTab(w, ui.BillionaireTable(bands))
}

// WriteHistoricalCSV emits the historical shares as CSV.
func WriteHistoricalCSV(w io.Writer, years []wealth.HistoricalYear) error {
	return writeTab(w, ui.HistoricalTable(years))
}

// WriteAllCSV emits every table, separated by a blank line.
func WriteAllCSV(w io.Writer, d wealth.Dataset) error {
	if err := WriteWealthCSV(w, d.WealthBands); err != nil {
		return err
	}
	if _, err := io.WriteString(w, "\n"); err != nil {
		return err
	}
	if err := WriteBillionairesCSV(w, d.BillionaireBands); err != nil {
		return err
	}
	if _, err := io.WriteString(w, "\n"); err != nil {
		return err
	}
	return WriteHistoricalCSV(w, d.Historical)
}

// WriteTable emits the selected table from d.
func WriteTable(w io.Writer, t Table, d wealth.Dataset) error {
	switch t {
	case TableWealth:
		return WriteWealthCSV(w, d.WealthBands)
	case TableBillionaires:
		return WriteBillionairesCSV(w, d.BillionaireBands)
	case TableHistorical:
		return WriteHistoricalCSV(w, d.Historical)
	case TableAll:
		return WriteAllCSV(w, d)
	default:
		return fmt.Errorf("%w %q", ErrUnknownTable, string(t))
	}
}

func writeTab(w io.Writer, tab ui.TableTab) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	if err := writer.Write(tab.Columns); err != nil {
		return err
	}
	for _, row := range tab.Rows {
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}
