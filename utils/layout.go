package utils

import (
	"fmt"
	"sort"
	"strings"

	"github.com/Aashish23092/ocr-invoice-extraction/dto"
)

// GroupIntoRows clusters fragments into visual rows. A fragment joins the
// current row when its top coordinate is within tolerance of the previous
// fragment's top; otherwise it starts a new row. Fragments are sorted
// top-to-bottom before grouping, so callers may pass them in any order.
// Finished rows are ordered left to right.
//
// Panics if tolerance <= 0; that is a programming error, not noisy input.
func GroupIntoRows(fragments []dto.TextFragment, tolerance int) []dto.Row {
	if tolerance <= 0 {
		panic(fmt.Sprintf("utils: row tolerance must be positive, got %d", tolerance))
	}
	if len(fragments) == 0 {
		return nil
	}

	sorted := make([]dto.TextFragment, len(fragments))
	copy(sorted, fragments)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Top < sorted[j].Top
	})

	var rows []dto.Row
	current := []dto.TextFragment{sorted[0]}

	for _, frag := range sorted[1:] {
		prev := current[len(current)-1]
		if abs(frag.Top-prev.Top) <= tolerance {
			current = append(current, frag)
			continue
		}
		rows = append(rows, finishRow(current))
		current = []dto.TextFragment{frag}
	}
	rows = append(rows, finishRow(current))

	return rows
}

// finishRow orders a row's fragments by ascending left edge
func finishRow(fragments []dto.TextFragment) dto.Row {
	sort.SliceStable(fragments, func(i, j int) bool {
		return fragments[i].Left < fragments[j].Left
	})
	return dto.Row{Fragments: fragments}
}

// JoinRows assembles the full document text in reading order, one row per line
func JoinRows(rows []dto.Row) string {
	var b strings.Builder
	for i, row := range rows {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(row.Text())
	}
	return b.String()
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
