// Package importer turns extracted receipt text into transaction
// previews.
//
// Running OCR on the receipt image is an external capability: this package
// only receives the extracted text. A preview is never stored directly,
// the user confirms it through the regular transaction creation path.
package importer

import (
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/finwall/backend/internal/importer/helpers"
	"github.com/finwall/backend/internal/models"
	"github.com/finwall/backend/internal/types"
	"github.com/google/uuid"
	"github.com/ryanuber/go-glob"
	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
)

// ErrNoAmount is returned when no monetary amount can be found in the
// receipt text.
var ErrNoAmount = errors.New("no amount could be found in the receipt text")

// TransactionPreview is the parsed suggestion for one receipt.
type TransactionPreview struct {
	Merchant    string          `json:"merchant"`    // First line of the receipt
	Amount      decimal.Decimal `json:"amount"`      // Best guess for the receipt total
	Date        types.Date      `json:"date"`        // Date printed on the receipt, today if none was found
	Currency    string          `json:"currency"`    // ISO 4217 code printed on the receipt, empty if none was found
	CategoryID  *uuid.UUID      `json:"categoryId"`  // Suggested category, set by match rules
	MatchRuleID *uuid.UUID      `json:"matchRuleId"` // The rule that suggested the category
	ImportHash  string          `json:"importHash"`  // SHA256 over the normalized text, for duplicate detection
}

var (
	// Amounts like "12,34", "1.234,56", "1,234.56" or "12.34", optionally
	// with a currency marker around them.
	amountPattern = regexp.MustCompile(`(\d{1,3}(?:[.,]\d{3})*[.,]\d{2})`)

	// The line carrying the receipt total
	totalPattern = regexp.MustCompile(`(?i)\b(total|summe|gesamt|amount due)\b`)

	// Candidates for ISO 4217 currency codes
	currencyPattern = regexp.MustCompile(`\b[A-Z]{3}\b`)

	datePatterns = []struct {
		re     *regexp.Regexp
		layout string
	}{
		{regexp.MustCompile(`\d{4}-\d{2}-\d{2}`), "2006-01-02"},
		{regexp.MustCompile(`\d{2}\.\d{2}\.\d{4}`), "02.01.2006"},
		{regexp.MustCompile(`\d{2}/\d{2}/\d{4}`), "01/02/2006"},
	}
)

// Parse extracts a transaction preview from receipt text.
//
// The merchant is the first non-empty line. The amount is taken from the
// line matching a total keyword, falling back to the largest amount on the
// receipt. A missing date falls back to now.
func Parse(text string, now time.Time) (TransactionPreview, error) {
	preview := TransactionPreview{
		Date:       types.DateOf(now),
		ImportHash: helpers.Sha256String(normalize(text)),
	}

	var fallback decimal.Decimal
	var dateFound bool
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if preview.Merchant == "" {
			preview.Merchant = line
		}

		for _, amount := range amountPattern.FindAllString(line, -1) {
			value, err := decimal.NewFromString(normalizeAmount(amount))
			if err != nil {
				continue
			}

			if totalPattern.MatchString(line) && preview.Amount.IsZero() {
				preview.Amount = value
			}

			if value.GreaterThan(fallback) {
				fallback = value
			}
		}

		if date, ok := findDate(line); ok && !dateFound {
			preview.Date = date
			dateFound = true
		}

		if preview.Currency == "" {
			if code, ok := findCurrency(line); ok {
				preview.Currency = code
			}
		}
	}

	if preview.Amount.IsZero() {
		preview.Amount = fallback
	}

	if preview.Amount.IsZero() {
		return TransactionPreview{}, ErrNoAmount
	}

	return preview, nil
}

// Match assigns a category to the preview from the first rule whose glob
// pattern matches the merchant name. Rules must be passed sorted by
// priority.
func Match(preview *TransactionPreview, rules []models.MatchRule) {
	for _, rule := range rules {
		if glob.Glob(strings.ToLower(rule.Match), strings.ToLower(preview.Merchant)) {
			categoryID := rule.CategoryID
			ruleID := rule.ID
			preview.CategoryID = &categoryID
			preview.MatchRuleID = &ruleID
			return
		}
	}
}

// findCurrency detects the receipt currency from common signs or an ISO
// 4217 code printed on the line.
func findCurrency(line string) (string, bool) {
	switch {
	case strings.Contains(line, "€"):
		return currency.EUR.String(), true
	case strings.Contains(line, "£"):
		return currency.GBP.String(), true
	case strings.Contains(line, "$"):
		return currency.USD.String(), true
	}

	for _, code := range currencyPattern.FindAllString(line, -1) {
		if unit, err := currency.ParseISO(code); err == nil {
			return unit.String(), true
		}
	}

	return "", false
}

func findDate(line string) (types.Date, bool) {
	for _, pattern := range datePatterns {
		match := pattern.re.FindString(line)
		if match == "" {
			continue
		}

		t, err := time.Parse(pattern.layout, match)
		if err != nil {
			continue
		}

		return types.DateOf(t), true
	}

	return types.Date{}, false
}

// normalizeAmount converts "1.234,56" and "1,234.56" to "1234.56".
func normalizeAmount(s string) string {
	lastComma := strings.LastIndex(s, ",")
	lastDot := strings.LastIndex(s, ".")

	if lastComma > lastDot {
		// Comma is the decimal separator
		s = strings.ReplaceAll(s, ".", "")
		idx := strings.LastIndex(s, ",")
		return strings.ReplaceAll(s[:idx], ",", "") + "." + s[idx+1:]
	}

	return strings.ReplaceAll(s, ",", "")
}

func normalize(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
