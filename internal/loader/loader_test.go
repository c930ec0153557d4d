package loader

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"fjacquet/budget-report/internal/logging"
	"fjacquet/budget-report/internal/parsererror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeStatement(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "statement.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoad_ValidFile(t *testing.T) {
	path := writeStatement(t, "Date,Category,Amount,Name\n"+
		"05/01/2024,Food,-20,Cafe\n"+
		"10/01/2024,Food,-25,Bakery\n")

	l := NewLoader(',', logging.NewMockLogger())
	table, err := l.Load(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, path, table.Source)
	assert.Equal(t, []string{"Date", "Category", "Amount", "Name"}, table.Header)
	require.Equal(t, 2, table.Len())
	assert.Equal(t, []string{"05/01/2024", "Food", "-20", "Cafe"}, table.Records[0].Values)
	assert.Equal(t, 2, table.Records[0].Line)
	assert.Equal(t, 3, table.Records[1].Line)
}

func TestLoad_DuplicateColumnsKeepFirst(t *testing.T) {
	path := writeStatement(t, "Date,Amount,Category,Amount\n01/02/2024,-10,Rent,-999\n")

	table, err := NewLoader(',', logging.NewMockLogger()).Load(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, []string{"Date", "Amount", "Category"}, table.Header)
	assert.Equal(t, []string{"01/02/2024", "-10", "Rent"}, table.Records[0].Values)
}

func TestLoad_BOMAndRaggedRows(t *testing.T) {
	path := writeStatement(t, "\uFEFF Date , Amount,Category\n"+
		"01/02/2024,-10\n"+
		",,\n"+
		"\n"+
		"02/02/2024,-5,Food,extra\n")

	table, err := NewLoader(',', logging.NewMockLogger()).Load(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, []string{"Date", "Amount", "Category"}, table.Header)
	require.Equal(t, 3, table.Len(), "empty lines are skipped, empty fields are kept")
	assert.Equal(t, []string{"01/02/2024", "-10", ""}, table.Records[0].Values)
	assert.Equal(t, []string{"", "", ""}, table.Records[1].Values)
	assert.Equal(t, []string{"02/02/2024", "-5", "Food"}, table.Records[2].Values)
}

func TestLoad_CustomDelimiter(t *testing.T) {
	path := writeStatement(t, "Date;Amount\n01/02/2024;\"-1,234.50\"\n")

	table, err := NewLoader(';', logging.NewMockLogger()).Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "-1,234.50", table.Records[0].Value(1))
}

func TestLoad_Errors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name   string
		path   string
		reason string
	}{
		{"missing file", filepath.Join(dir, "missing.csv"), "file does not exist"},
		{"directory", dir, "path is a directory"},
		{"empty file", writeStatement(t, ""), "file has no header row"},
		{"header only", writeStatement(t, "Date,Amount\n"), "no data rows"},
		{"only empty lines", writeStatement(t, "Date,Amount\n\n\n"), "no data rows"},
	}

	l := NewLoader(',', logging.NewMockLogger())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			table, err := l.Load(context.Background(), tt.path)
			assert.Nil(t, table)
			require.Error(t, err)
			assert.True(t, errors.Is(err, parsererror.ErrLoad))

			var loadErr *parsererror.LoadError
			require.True(t, errors.As(err, &loadErr))
			assert.Equal(t, tt.reason, loadErr.Reason)
			assert.Equal(t, tt.path, loadErr.FilePath)
		})
	}
}

func TestLoad_CancelledContext(t *testing.T) {
	path := writeStatement(t, "Date,Amount\n01/02/2024,-1\n")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewLoader(',', logging.NewMockLogger()).Load(ctx, path)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRead_LogsDuplicateColumns(t *testing.T) {
	logger := logging.NewMockLogger()
	_, err := NewLoader(',', logger).Read(context.Background(),
		strings.NewReader("Amount,Amount\n1,2\n"), "inline")
	require.NoError(t, err)
	assert.True(t, logger.HasEntry("DEBUG", "Dropped duplicate columns"))
}

func TestNewLoader_Defaults(t *testing.T) {
	l := NewLoader(0, nil)
	assert.Equal(t, ',', l.delimiter)
}

func TestParseDelimiter(t *testing.T) {
	tests := []struct {
		input    string
		expected rune
		wantErr  bool
	}{
		{"", ',', false},
		{",", ',', false},
		{";", ';', false},
		{"|", '|', false},
		{`\t`, '\t', false},
		{"tab", '\t', false},
		{";;", 0, true},
		{`"`, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDelimiter(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}
