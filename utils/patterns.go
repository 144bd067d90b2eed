package utils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/Aashish23092/ocr-invoice-extraction/dto"
)

// fieldRule is one match attempt for a header field. Rules for a field are
// tried in order and the first match anywhere in the document text wins;
// later rules are never consulted once one succeeds.
type fieldRule struct {
	re         *regexp.Regexp
	group      int
	confidence float64
	process    func(string) string
}

// headerField pairs an output key with its ordered rule list
type headerField struct {
	key   string
	rules []fieldRule
}

// headerFields is the extraction rule registry for invoice header fields.
// Order within each rule list encodes precedence: label-anchored, specific
// patterns first, looser fallbacks last.
var headerFields = []headerField{
	{
		key: "invoice_number",
		rules: []fieldRule{
			{
				re:         regexp.MustCompile(`(?i)invoice\s*(?:no\.?|number|num|#)\s*[:.\-]?\s*([A-Z]{1,5}[/\-]?[A-Z0-9]+(?:[/\-][A-Z0-9]+)*)`),
				group:      1,
				confidence: 0.95,
				process:    strings.TrimSpace,
			},
			{
				re:         regexp.MustCompile(`(?i)\bbill\s*(?:no|number)\s*[:.\-]?\s*([A-Z0-9][A-Z0-9/\-]{2,})`),
				group:      1,
				confidence: 0.95,
				process:    strings.TrimSpace,
			},
		},
	},
	{
		key: "invoice_date",
		rules: []fieldRule{
			{
				re:         regexp.MustCompile(`(?i)(?:invoice\s*)?\bdated?\b\s*[:.\-]?\s*(\d{1,2}[/.\-]\d{1,2}[/.\-]\d{2,4})`),
				group:      1,
				confidence: 0.90,
				process:    normalizeDate,
			},
			{
				re:         regexp.MustCompile(`(?i)\b(\d{1,2})[\s\-]([a-z]{3,9})[\s\-,]+(\d{2,4})\b`),
				group:      0,
				confidence: 0.85,
				process:    normalizeDate,
			},
			{
				re:         regexp.MustCompile(`\b(\d{1,2}[/\-]\d{1,2}[/\-]\d{4})\b`),
				group:      1,
				confidence: 0.85,
				process:    normalizeDate,
			},
		},
	},
	{
		key: "gst_number",
		rules: []fieldRule{
			{
				// GSTIN: state code + PAN + entity code + Z + check character
				re:         regexp.MustCompile(`\b(\d{2}[A-Z]{5}\d{4}[A-Z][0-9A-Z]Z[0-9A-Z])\b`),
				group:      1,
				confidence: 0.95,
				process:    strings.TrimSpace,
			},
		},
	},
	{
		key: "vendor_name",
		rules: []fieldRule{
			{
				re:         regexp.MustCompile(`(?i)(?:sold\s*by|seller)\s*[:\-]?\s*([A-Z][A-Za-z0-9 .&']{3,60}?)(?:\n|,|gstin|address|$)`),
				group:      1,
				confidence: 0.90,
				process:    strings.TrimSpace,
			},
			{
				re:         regexp.MustCompile(`(?m)^\s*([A-Z][A-Z .&']{4,50}(?:ENTERPRISES|TRADERS|MOBILES|TELECOM|STORE|AGENCY|ELECTRONICS))\b`),
				group:      1,
				confidence: 0.85,
				process:    strings.TrimSpace,
			},
		},
	},
	{
		key: "vendor_phone",
		rules: []fieldRule{
			{
				re:         regexp.MustCompile(`(?i)(?:ph(?:one)?|mob(?:ile)?|tel|contact)\s*(?:no)?\s*[:.\-]?\s*(?:\+?91[\s\-]?)?(\d{10})\b`),
				group:      1,
				confidence: 0.85,
				process:    strings.TrimSpace,
			},
		},
	},
	{
		key: "customer_name",
		rules: []fieldRule{
			{
				// Single contextual rule anchored on buyer labels, stopping at
				// the next structural delimiter.
				re:         regexp.MustCompile(`(?i)(?:buyer|bill\s*to|m/s)\s*[:.\-]?\s*([A-Za-z][A-Za-z0-9 .&']{2,60}?)(?:\n|,|\(|gstin|address|state|$)`),
				group:      1,
				confidence: 0.85,
				process:    strings.TrimSpace,
			},
		},
	},
}

// ExtractHeaderFields runs the rule registry against the full document text.
// Fields without a matching rule are simply absent from the result.
func ExtractHeaderFields(fullText string) dto.FieldMap {
	fields := make(dto.FieldMap)
	for _, hf := range headerFields {
		for _, rule := range hf.rules {
			m := rule.re.FindStringSubmatch(fullText)
			if m == nil {
				continue
			}
			raw := m[rule.group]
			processed := raw
			if rule.process != nil {
				processed = rule.process(raw)
			}
			if processed == "" {
				continue
			}
			fields.Put(hf.key, dto.PatternField(hf.key, raw, processed, rule.confidence))
			break
		}
	}
	return fields
}

var monthNumbers = map[string]string{
	"jan": "01", "feb": "02", "mar": "03", "apr": "04", "may": "05",
	"jun": "06", "jul": "07", "aug": "08", "sep": "09", "oct": "10",
	"nov": "11", "dec": "12",
}

// normalizeDate converts recognized date strings to DD/MM/YYYY: month names
// become two-digit months, two-digit years are expanded with a 50-year pivot,
// and separators collapse to "/".
func normalizeDate(raw string) string {
	raw = strings.TrimSpace(raw)

	// "12 Mar 2024", "12-Mar-24"
	if m := monthNameDateRe.FindStringSubmatch(raw); m != nil {
		month, ok := monthNumbers[strings.ToLower(m[2][:3])]
		if !ok {
			return raw
		}
		return fmt.Sprintf("%s/%s/%s", pad2(m[1]), month, expandYear(m[3]))
	}

	// "12/03/2024", "12-3-24", "12.03.2024"
	if m := numericSplitDateRe.FindStringSubmatch(raw); m != nil {
		return fmt.Sprintf("%s/%s/%s", pad2(m[1]), pad2(m[2]), expandYear(m[3]))
	}

	return raw
}

// pad2 left-pads a 1-digit day or month with a zero
func pad2(s string) string {
	if len(s) == 1 {
		return "0" + s
	}
	return s
}

var (
	monthNameDateRe    = regexp.MustCompile(`(?i)^(\d{1,2})[\s\-]([a-z]{3,9})[\s\-,]+(\d{2,4})$`)
	numericSplitDateRe = regexp.MustCompile(`^(\d{1,2})[/.\-](\d{1,2})[/.\-](\d{2,4})$`)
)

// expandYear widens two-digit years with a 50-year pivot
func expandYear(year string) string {
	if len(year) != 2 {
		return year
	}
	n, err := strconv.Atoi(year)
	if err != nil {
		return year
	}
	if n < 50 {
		return fmt.Sprintf("20%02d", n)
	}
	return fmt.Sprintf("19%02d", n)
}
