// Package transform computes new filenames from original names. Every
// function here is pure and total: arbitrary string input never panics, and
// an unrecognized mode or a no-op parameter set returns the name unchanged.
package transform

import (
	"strconv"
	"strings"

	"github.com/lzyyzznl/work-tools/internal/domain"
)

// NewName generates the prospective filename for one file. index is the
// file's 0-based position within the batch and only matters for number mode.
func NewName(originalName string, mode domain.Mode, params domain.Params, index int) string {
	stem, ext := SplitName(originalName)

	switch mode {
	case domain.ModeReplace:
		return handleReplace(originalName, params.Replace)
	case domain.ModeAdd:
		return handleAdd(stem, ext, params.Add)
	case domain.ModeNumber:
		return handleNumber(stem, ext, params.Number, index)
	case domain.ModeDelete:
		return handleDelete(stem, ext, params.Delete)
	default:
		return originalName
	}
}

// SplitName separates a filename into stem and extension. The extension is
// everything after the last dot, unless that dot is the first character:
// ".gitignore" has no extension. ext keeps its leading dot or is empty.
func SplitName(name string) (stem, ext string) {
	i := strings.LastIndex(name, ".")
	if i <= 0 {
		return name, ""
	}
	return name[:i], name[i:]
}

// handleReplace substitutes every occurrence of FromStr in the whole name,
// extension included. The match is literal, not pattern based.
func handleReplace(name string, p domain.ReplaceParams) string {
	if p.FromStr == "" {
		return name
	}
	return strings.ReplaceAll(name, p.FromStr, p.ToStr)
}

func handleAdd(stem, ext string, p domain.AddParams) string {
	if p.Text == "" {
		return stem + ext
	}
	if p.IsPrefix {
		return p.Text + stem + ext
	}
	return stem + p.Text + ext
}

// handleNumber zero-pads to Digits width but never truncates: a number wider
// than Digits overflows naturally.
func handleNumber(stem, ext string, p domain.NumberParams, index int) string {
	n := strconv.Itoa(p.Start + index*p.Step)
	if pad := p.Digits - len(n); pad > 0 {
		n = strings.Repeat("0", pad) + n
	}
	if p.IsPrefix {
		return n + p.Separator + stem + ext
	}
	return stem + p.Separator + n + ext
}

// handleDelete removes up to Count characters from the stem. All index
// arithmetic clamps to [0, len(stem)] so deleting past either end just
// removes fewer characters.
func handleDelete(stem, ext string, p domain.DeleteParams) string {
	if p.Count <= 0 || p.StartPos <= 0 {
		return stem + ext
	}

	// Work on runes so multi-byte names are deleted by character, not byte
	result := []rune(stem)
	if p.FromLeft {
		start := p.StartPos - 1
		if start < len(result) {
			end := min(start+p.Count, len(result))
			result = append(result[:start:start], result[end:]...)
		}
	} else {
		// StartPos counts from the end of the stem, 1 = last character
		start := max(0, len(result)-p.StartPos-p.Count+1)
		end := max(0, len(result)-p.StartPos+1)
		result = append(result[:start:start], result[end:]...)
	}

	return string(result) + ext
}
