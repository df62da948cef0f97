package utils

import (
	"fmt"
	"regexp"
	"strings"
)

// FormatInvoiceNo renders a sequential invoice number, e.g. INV-000042
func FormatInvoiceNo(seq int64) string {
	return fmt.Sprintf("INV-%06d", seq)
}

// FormatPurchaseNo renders a sequential purchase number, e.g. PUR-000042
func FormatPurchaseNo(seq int64) string {
	return fmt.Sprintf("PUR-%06d", seq)
}

var (
	slugInvalid = regexp.MustCompile("[^a-z0-9-]")
	slugHyphens = regexp.MustCompile("-+")
)

// Slugify converts a string to a URL-friendly slug
func Slugify(s string) string {
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "-")
	s = slugInvalid.ReplaceAllString(s, "")
	s = slugHyphens.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
