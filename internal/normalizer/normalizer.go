// Package normalizer turns loaded statement tables into canonical
// transactions.
package normalizer

import (
	"fmt"
	"strings"

	"fjacquet/budget-report/internal/dateutils"
	"fjacquet/budget-report/internal/logging"
	"fjacquet/budget-report/internal/models"
	"fjacquet/budget-report/internal/parsererror"

	"github.com/shopspring/decimal"
)

// Config controls coercion of raw cells.
type Config struct {
	DefaultCategory string
	NullValues      []string
}

// DefaultConfig returns the defaults used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		DefaultCategory: models.DefaultCategory,
		NullValues:      DefaultNullValues,
	}
}

// Result is the normalized table plus the row counts before and after
// dropping rows that failed coercion.
type Result struct {
	Layout       models.ColumnLayout
	Transactions []models.Transaction
	RowsIn       int
	RowsOut      int
}

// Dropped returns how many rows were discarded.
func (r Result) Dropped() int {
	return r.RowsIn - r.RowsOut
}

// Normalizer reconciles a statement's amount columns and coerces every row.
type Normalizer struct {
	cfg    Config
	nulls  NullSet
	logger logging.Logger
}

// NewNormalizer creates a Normalizer. Empty config fields take their defaults.
func NewNormalizer(cfg Config, logger logging.Logger) *Normalizer {
	if strings.TrimSpace(cfg.DefaultCategory) == "" {
		cfg.DefaultCategory = models.DefaultCategory
	}
	if cfg.NullValues == nil {
		cfg.NullValues = DefaultNullValues
	}
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Normalizer{cfg: cfg, nulls: NewNullSet(cfg.NullValues), logger: logger}
}

// ResolveLayout picks how amounts are encoded. A Money In / Money Out pair
// wins over a single Amount column.
func ResolveLayout(table *models.RawTable) models.ColumnLayout {
	switch {
	case table.HasColumn(models.ColumnMoneyOut) && table.HasColumn(models.ColumnMoneyIn):
		return models.LayoutSplitInOut
	case table.HasColumn(models.ColumnAmount):
		return models.LayoutSingleAmount
	default:
		return models.LayoutInvalid
	}
}

// columns caches the resolved column positions of one table; -1 means absent.
type columns struct {
	date, category, amount, moneyIn, moneyOut, name, description int
}

func locateColumns(table *models.RawTable) columns {
	return columns{
		date:        table.ColumnIndex(models.ColumnDate),
		category:    table.ColumnIndex(models.ColumnCategory),
		amount:      table.ColumnIndex(models.ColumnAmount),
		moneyIn:     table.ColumnIndex(models.ColumnMoneyIn),
		moneyOut:    table.ColumnIndex(models.ColumnMoneyOut),
		name:        table.ColumnIndex(models.ColumnName),
		description: table.ColumnIndex(models.ColumnDescription),
	}
}

// Normalize resolves the layout once and coerces every record. Rows whose
// amount or date cannot be parsed are dropped and only debug-logged. A table
// with no usable amount column fails with *parsererror.SchemaError.
func (n *Normalizer) Normalize(table *models.RawTable) (Result, error) {
	layout := ResolveLayout(table)
	if layout == models.LayoutInvalid {
		return Result{Layout: layout}, &parsererror.SchemaError{
			FilePath: table.Source,
			Columns:  table.Header,
		}
	}

	log := n.logger.WithFields(
		logging.F(logging.FieldFile, table.Source),
		logging.F(logging.FieldLayout, layout.String()),
	)
	cols := locateColumns(table)
	if cols.date < 0 {
		log.Warn("No Date column found; every row will be dropped")
	}

	result := Result{
		Layout:       layout,
		RowsIn:       table.Len(),
		Transactions: make([]models.Transaction, 0, table.Len()),
	}
	for i, rec := range table.Records {
		tx, err := n.coerce(layout, cols, i+1, rec)
		if err != nil {
			log.WithError(err).Debug("Dropping row", logging.F(logging.FieldRow, rec.Line))
			continue
		}
		result.Transactions = append(result.Transactions, tx)
	}
	result.RowsOut = len(result.Transactions)

	log.Info("Normalized statement",
		logging.F(logging.FieldRowsIn, result.RowsIn),
		logging.F(logging.FieldRowsOut, result.RowsOut))
	return result, nil
}

func (n *Normalizer) coerce(layout models.ColumnLayout, cols columns, row int, rec models.RawRecord) (models.Transaction, error) {
	amount, err := n.amount(layout, cols, rec)
	if err != nil {
		return models.Transaction{}, err
	}

	rawDate := rec.Value(cols.date)
	if n.nulls.IsNull(rawDate) {
		return models.Transaction{}, &parsererror.ParseError{Row: rec.Line, Field: models.ColumnDate, Value: rawDate, Err: fmt.Errorf("missing date")}
	}
	date, err := dateutils.ParseDayFirst(rawDate)
	if err != nil {
		return models.Transaction{}, &parsererror.ParseError{Row: rec.Line, Field: models.ColumnDate, Value: rawDate, Err: err}
	}

	category := n.cfg.DefaultCategory
	if raw := rec.Value(cols.category); !n.nulls.IsNull(raw) {
		category = strings.TrimSpace(raw)
	}

	return models.NewTransactionBuilder().
		WithRow(row).
		WithDateFromTime(date).
		WithCategory(category).
		WithAmount(amount).
		WithName(n.text(rec.Value(cols.name))).
		WithDescription(n.text(rec.Value(cols.description))).
		Build()
}

// amount dispatches on the resolved layout. In the split layout a null side
// counts as zero; a side that is present but not numeric invalidates the row.
func (n *Normalizer) amount(layout models.ColumnLayout, cols columns, rec models.RawRecord) (decimal.Decimal, error) {
	switch layout {
	case models.LayoutSplitInOut:
		in, err := n.optionalAmount(rec, cols.moneyIn, models.ColumnMoneyIn)
		if err != nil {
			return decimal.Zero, err
		}
		out, err := n.optionalAmount(rec, cols.moneyOut, models.ColumnMoneyOut)
		if err != nil {
			return decimal.Zero, err
		}
		return in.Add(out), nil
	case models.LayoutSingleAmount:
		raw := rec.Value(cols.amount)
		if n.nulls.IsNull(raw) {
			return decimal.Zero, &parsererror.ParseError{Row: rec.Line, Field: models.ColumnAmount, Value: raw, Err: fmt.Errorf("missing amount")}
		}
		d, err := ParseAmount(raw)
		if err != nil {
			return decimal.Zero, &parsererror.ParseError{Row: rec.Line, Field: models.ColumnAmount, Value: raw, Err: err}
		}
		return d, nil
	default:
		return decimal.Zero, fmt.Errorf("unsupported layout %s", layout)
	}
}

func (n *Normalizer) optionalAmount(rec models.RawRecord, idx int, field string) (decimal.Decimal, error) {
	raw := rec.Value(idx)
	if n.nulls.IsNull(raw) {
		return decimal.Zero, nil
	}
	d, err := ParseAmount(raw)
	if err != nil {
		return decimal.Zero, &parsererror.ParseError{Row: rec.Line, Field: field, Value: raw, Err: err}
	}
	return d, nil
}

func (n *Normalizer) text(raw string) string {
	if n.nulls.IsNull(raw) {
		return ""
	}
	return strings.TrimSpace(raw)
}
