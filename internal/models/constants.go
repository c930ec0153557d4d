package models

// Canonical column names recognized in statement headers.
const (
	ColumnDate        = "Date"
	ColumnCategory    = "Category"
	ColumnAmount      = "Amount"
	ColumnMoneyIn     = "Money In"
	ColumnMoneyOut    = "Money Out"
	ColumnName        = "Name"
	ColumnDescription = "Description"
)

// DefaultCategory replaces missing or null category labels.
const DefaultCategory = "General"

// File permissions for generated artifacts.
const (
	PermissionDirectory  = 0750
	PermissionReportFile = 0644
)
