package model

import (
	"fmt"
	"strings"
)

const (
	// RowSearchDepth bounds the walk from a focused cell up to its row.
	RowSearchDepth = 20
	// tableSearchDepth bounds the walk from a row up to its table.
	tableSearchDepth = 10

	headerPrefix = "Table headers: "
)

// IsHeaderRow reports whether n is a table header row or header cell.
func IsHeaderRow(n Node) bool {
	if n == nil {
		return false
	}
	f := MapFamily(n.TypeName())
	return f == FamilyHeaderRow || f == FamilyHeaderCell
}

// IsDataRow reports whether n is a table data row.
func IsDataRow(n Node) bool {
	if n == nil {
		return false
	}
	f := MapFamily(n.TypeName())
	return f == FamilyTableRow || f == FamilySelectorRow
}

// FindRowAncestor returns n or its nearest data-row ancestor within depth
// levels, or nil.
func FindRowAncestor(n Node, depth int) Node {
	return FindAncestor(n, depth, true, FamilyTableRow, FamilySelectorRow)
}

// cellText returns the joined text leaves of one cell, or "" for a cell that
// is hidden or fully transparent.
func cellText(cell Node) string {
	if !IsShown(cell) {
		return ""
	}
	return Clean(strings.Join(textLeaves(cell, true), " "))
}

// ExtractRowText joins the text of each direct child cell of row with ", ".
// It returns "" when no cell yields text.
func ExtractRowText(row Node) string {
	if row == nil {
		return ""
	}
	var segments []string
	for _, cell := range Children(row) {
		if s := cellText(cell); s != "" {
			segments = append(segments, s)
		}
	}
	return strings.Join(segments, ", ")
}

// ExtractHeaderText reads every cell of the header row that n belongs to.
// n may be the header row itself or one of its cells.
func ExtractHeaderText(n Node) string {
	if n == nil {
		return ""
	}
	container := n
	if MapFamily(n.TypeName()) != FamilyHeaderRow {
		container = n.Parent()
	}
	if container == nil {
		return ""
	}
	text := ExtractRowText(container)
	if text == "" {
		return ""
	}
	return headerPrefix + text
}

// RowIdentity names a logical table row. Virtualized tables recycle row
// nodes, so the same Row handle can show different data between frames;
// when both sides resolved an index, identity is (Index, Table) alone.
type RowIdentity struct {
	Row      Handle
	Table    Handle
	Index    int
	HasIndex bool
}

// RowIdentityOf reads the row's bound data index and its enclosing table.
func RowIdentityOf(row Node) RowIdentity {
	if row == nil {
		return RowIdentity{}
	}
	id := RowIdentity{Row: row.Handle()}
	if idx, ok := rowIndex(row); ok {
		id.Index, id.HasIndex = idx, true
	}
	if table := FindAncestor(row, tableSearchDepth, false, FamilyTable); table != nil {
		id.Table = table.Handle()
	} else if p := row.Parent(); p != nil {
		id.Table = p.Handle()
	}
	return id
}

func rowIndex(row Node) (int, bool) {
	if ri, ok := row.(RowIndexSource); ok {
		if idx, err := ri.RowIndex(); err == nil && idx >= 0 {
			return idx, true
		}
	}
	if idx, ok := fieldInt(row, "index"); ok && idx >= 0 {
		return idx, true
	}
	return 0, false
}

// SameRow reports whether a and b identify the same logical row.
func SameRow(a, b RowIdentity) bool {
	if a.HasIndex && b.HasIndex {
		return a.Index == b.Index && a.Table == b.Table
	}
	return a.Row == b.Row
}

// String renders the identity for logs.
func (r RowIdentity) String() string {
	if r.HasIndex {
		return fmt.Sprintf("row %d of table %d", r.Index, r.Table)
	}
	return fmt.Sprintf("row node %d", r.Row)
}
