// Package common provides the canonical CSV export shared by the commands.
package common

import (
	"encoding/csv"
	"fmt"
	"strconv"

	"fjacquet/budget-report/internal/dateutils"
	"fjacquet/budget-report/internal/fileutils"
	"fjacquet/budget-report/internal/logging"
	"fjacquet/budget-report/internal/models"

	"github.com/gocarina/gocsv"
)

// TransactionRow is the CSV shape of a normalized transaction.
type TransactionRow struct {
	ID          string `csv:"ID"`
	Row         int    `csv:"Row"`
	Date        string `csv:"Date"`
	Month       string `csv:"Month"`
	Category    string `csv:"Category"`
	Amount      string `csv:"Amount"`
	Name        string `csv:"Name"`
	Description string `csv:"Description"`
}

// SpikeRow is the CSV shape of a flagged expense.
type SpikeRow struct {
	TransactionRow
	Magnitude string `csv:"Magnitude"`
	Threshold string `csv:"Threshold"`
}

// NewTransactionRow converts a transaction, fixing amounts to two decimals.
func NewTransactionRow(tx models.Transaction) TransactionRow {
	return TransactionRow{
		ID:          tx.ID,
		Row:         tx.Row,
		Date:        dateutils.ToISODate(tx.Date),
		Month:       tx.Month.String(),
		Category:    tx.Category,
		Amount:      tx.Amount.StringFixed(2),
		Name:        tx.Name,
		Description: tx.Description,
	}
}

// NewSpikeRow converts a flagged expense.
func NewSpikeRow(f models.FlaggedTransaction) SpikeRow {
	return SpikeRow{
		TransactionRow: NewTransactionRow(f.Transaction),
		Magnitude:      f.Magnitude.StringFixed(2),
		Threshold:      strconv.FormatFloat(f.Threshold, 'f', 2, 64),
	}
}

// CSVStore writes the canonical CSV files.
type CSVStore struct {
	delimiter rune
	logger    logging.Logger
}

// NewCSVStore creates a store using delimiter (',' when zero).
func NewCSVStore(delimiter rune, logger logging.Logger) *CSVStore {
	if delimiter == 0 {
		delimiter = ','
	}
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &CSVStore{delimiter: delimiter, logger: logger}
}

// WriteTransactions writes the canonical table to csvFile.
func (s *CSVStore) WriteTransactions(transactions []models.Transaction, csvFile string) error {
	if transactions == nil {
		return fmt.Errorf("cannot write nil transactions to CSV")
	}
	rows := make([]TransactionRow, len(transactions))
	for i, tx := range transactions {
		rows[i] = NewTransactionRow(tx)
	}
	return writeRows(s, rows, csvFile)
}

// WriteSpikes writes flagged expenses to csvFile.
func (s *CSVStore) WriteSpikes(spikes []models.FlaggedTransaction, csvFile string) error {
	rows := make([]SpikeRow, len(spikes))
	for i, f := range spikes {
		rows[i] = NewSpikeRow(f)
	}
	return writeRows(s, rows, csvFile)
}

func writeRows[T any](s *CSVStore, rows []T, csvFile string) error {
	log := s.logger.WithFields(
		logging.F(logging.FieldOutputFile, csvFile),
		logging.F(logging.FieldCount, len(rows)),
	)
	log.Info("Writing CSV file")

	file, err := fileutils.CreateFile(csvFile)
	if err != nil {
		log.WithError(err).Error("Failed to create CSV file")
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.WithError(err).Warn("Failed to close file")
		}
	}()

	csvWriter := csv.NewWriter(file)
	csvWriter.Comma = s.delimiter
	if err := gocsv.MarshalCSV(rows, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		log.WithError(err).Error("Failed to marshal rows to CSV")
		return fmt.Errorf("error writing CSV data: %w", err)
	}
	return nil
}
