package tui

import (
	"fmt"
	"strings"
)

// formatMoney formats an amount as "<currency>X,XXX.XX" with comma separators
func formatMoney(currency string, amount float64) string {
	negative := amount < 0
	if negative {
		amount = -amount
	}

	s := fmt.Sprintf("%.2f", amount)

	// Split at decimal point
	dotPos := len(s) - 3
	intPart := s[:dotPos]
	decPart := s[dotPos:]

	// Add commas to integer part
	result := make([]byte, 0, len(intPart)+len(intPart)/3)
	for i, c := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			result = append(result, ',')
		}
		result = append(result, byte(c))
	}

	prefix := currency
	if negative {
		prefix = "-" + currency
	}
	return prefix + string(result) + decPart
}

// truncateStr truncates a string to the specified length with ellipsis
func truncateStr(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}

// pdfFileName turns a document name into a filesystem-safe PDF file name
func pdfFileName(name string, draft bool) string {
	name = strings.ReplaceAll(name, "/", "-")
	if draft {
		return name + "-draft.pdf"
	}
	return name + ".pdf"
}
