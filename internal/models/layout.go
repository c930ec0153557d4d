package models

// ColumnLayout identifies how a statement encodes its amounts. It is resolved
// once per table and then dispatched on for every row.
type ColumnLayout int

const (
	// LayoutInvalid means no usable amount column exists.
	LayoutInvalid ColumnLayout = iota
	// LayoutSplitInOut sums a "Money In" and a "Money Out" column.
	LayoutSplitInOut
	// LayoutSingleAmount reads one signed "Amount" column.
	LayoutSingleAmount
)

func (l ColumnLayout) String() string {
	switch l {
	case LayoutSplitInOut:
		return "split-in-out"
	case LayoutSingleAmount:
		return "single-amount"
	default:
		return "invalid"
	}
}
