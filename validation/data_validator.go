// Package validation provides input and data-quality validation for the
// formulary API.
package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/rxsaudi/formulary-api/catalog/entities"
	"github.com/rxsaudi/formulary-api/interfaces"
	"github.com/rxsaudi/formulary-api/logging"
	"github.com/rxsaudi/formulary-api/search"
)

// Pre-compiled regex patterns, compiled once at package initialization.
var (
	// Search input: Latin and Arabic letters, digits, whitespace and the
	// punctuation that occurs in drug names, ICD-10 codes and wildcard
	// queries ('%' is the wildcard, '.' appears in ICD codes).
	inputRegex = regexp.MustCompile(`^[\p{Latin}\p{Arabic}0-9\s\-\.\+%'/,()]+$`)

	// Register numbers: digits with optional dashes ("143-28-1005").
	registerRegex = regexp.MustCompile(`^[0-9]+(-[0-9]+)*$`)

	// Dangerous patterns as plain strings; substring scans are far cheaper
	// than regex for these.
	dangerousPatterns = []string{
		"<script", "</script>", "javascript:", "vbscript:", "onload=", "onerror=",
		"onclick=", "onmouseover=", "onfocus=", "onblur=", "onchange=", "onsubmit=",
		"eval(", "expression(", "url(", "import ", "@import", "binding(", "behavior(",
		// SQL injection patterns
		"' or ", "\" or ", "union select", "drop table", "delete from", "insert into",
		"update set", "--", "/*", "*/", "xp_", "sp_", "exec(", "execute(",
		// Command injection patterns
		"; ", "| ", "& ", "`", "$(", "${",
		// Path traversal patterns
		"../", "..\\", "%2e%2e", "file://",
		// LDAP injection patterns
		"*)(", "*|(", "*)%",
		// NoSQL injection patterns
		"{$ne:", "{$gt:", "{$where:", "{$or:", "{$regex:", "{$expr:",
	}
)

// DataValidatorImpl implements the interfaces.DataValidator interface
type DataValidatorImpl struct{}

// NewDataValidator creates a new data validator
func NewDataValidator() interfaces.DataValidator {
	return &DataValidatorImpl{}
}

// ValidateMedicine checks if a medicine entity is valid
func (v *DataValidatorImpl) ValidateMedicine(m *entities.Medicine) error {
	if m == nil {
		return fmt.Errorf("medicine is nil")
	}

	if strings.TrimSpace(m.RegisterNumber) == "" {
		return fmt.Errorf("missing register number")
	}

	if strings.TrimSpace(m.TradeName) == "" {
		return fmt.Errorf("empty trade name for register number %s", m.RegisterNumber)
	}

	if len(m.TradeName) > 200 {
		return fmt.Errorf("trade name too long for register number %s: %d characters", m.RegisterNumber, len(m.TradeName))
	}

	if len(m.ScientificName) > 500 {
		return fmt.Errorf("scientific name too long for register number %s: %d characters", m.RegisterNumber, len(m.ScientificName))
	}

	if len(m.PharmaceuticalForm) > 100 {
		return fmt.Errorf("pharmaceutical form too long for register number %s: %d characters", m.RegisterNumber, len(m.PharmaceuticalForm))
	}

	return nil
}

// ValidateDataIntegrity rejects snapshots that cannot serve searches at all.
func (v *DataValidatorImpl) ValidateDataIntegrity(medicines []entities.Medicine, formulary []entities.InsuranceDrug) error {
	if len(medicines) == 0 {
		return fmt.Errorf("no medicines found")
	}

	seen := make(map[string]bool)
	for i := range medicines {
		med := &medicines[i]
		if seen[med.RegisterNumber] {
			return fmt.Errorf("duplicate register number found: %s", med.RegisterNumber)
		}
		seen[med.RegisterNumber] = true

		if err := v.ValidateMedicine(med); err != nil {
			return fmt.Errorf("invalid medicine %s: %w", med.RegisterNumber, err)
		}
	}

	for i, pol := range formulary {
		if strings.TrimSpace(pol.ScientificName) == "" {
			return fmt.Errorf("formulary row %d has no scientific name", i)
		}
	}

	return nil
}

// ReportDataQuality collects non-fatal snapshot issues for logging.
func (v *DataValidatorImpl) ReportDataQuality(medicines []entities.Medicine, formulary []entities.InsuranceDrug) *interfaces.DataQualityReport {
	report := &interfaces.DataQualityReport{
		DuplicateRegisterNumbers:  []string{},
		MissingScientificNameIDs:  []string{},
		OrphanPolicySignatureList: []string{},
	}

	// Duplicate register numbers
	seen := make(map[string]bool)
	for _, med := range medicines {
		if seen[med.RegisterNumber] {
			report.DuplicateRegisterNumbers = append(report.DuplicateRegisterNumbers, med.RegisterNumber)
		}
		seen[med.RegisterNumber] = true
	}

	// Medicines without a scientific name (first 10 register numbers kept)
	for _, med := range medicines {
		if strings.TrimSpace(med.ScientificName) == "" {
			report.MissingScientificName++
			if len(report.MissingScientificNameIDs) < 10 {
				report.MissingScientificNameIDs = append(report.MissingScientificNameIDs, med.RegisterNumber)
			}
		}
	}

	// Medicines whose price will never satisfy a price filter
	for _, med := range medicines {
		if strings.TrimSpace(med.PublicPrice) == "" || strings.EqualFold(med.PublicPrice, "N/A") {
			report.UnpricedMedicines++
		}
	}

	// Formulary rows without an indication (grouped under Unknown)
	for _, pol := range formulary {
		if strings.TrimSpace(pol.Indication) == "" {
			report.PoliciesWithoutIndication++
		}
	}

	// Policy signatures with no marketed medicine (first 10 kept)
	marketed := make(map[string]bool, len(medicines))
	for _, med := range medicines {
		marketed[search.Signature(med.ScientificName)] = true
	}
	orphans := make(map[string]bool)
	for _, pol := range formulary {
		sig := search.Signature(pol.ScientificName)
		if !marketed[sig] && !orphans[sig] {
			orphans[sig] = true
			report.OrphanPolicySignatures++
			if len(report.OrphanPolicySignatureList) < 10 {
				report.OrphanPolicySignatureList = append(report.OrphanPolicySignatureList, sig)
			}
		}
	}

	return report
}

// ValidateSearchInput validates user search strings
func (v *DataValidatorImpl) ValidateSearchInput(input string) error {
	if strings.TrimSpace(input) == "" {
		return fmt.Errorf("input cannot be empty")
	}

	if search.EffectiveLength(input) < 3 {
		return fmt.Errorf("input too short: minimum 3 characters")
	}

	if len(input) > 50 {
		return fmt.Errorf("input too long: maximum 50 characters")
	}

	// Word count validation to prevent DoS attacks with many short words
	words := strings.Fields(input)
	if len(words) > 6 {
		return fmt.Errorf("search query too complex: maximum 6 words allowed")
	}

	lowerInput := strings.ToLower(input)
	for _, pattern := range dangerousPatterns {
		if strings.Contains(lowerInput, pattern) {
			return fmt.Errorf("input contains potentially dangerous content")
		}
	}

	if !inputRegex.MatchString(input) {
		return fmt.Errorf("input contains invalid characters. Only Arabic and Latin letters, numbers, spaces, wildcards and common punctuation are allowed")
	}

	if hasExcessiveRepetition(input) {
		return fmt.Errorf("input contains excessive character repetition")
	}

	return nil
}

// ValidateRegisterNumber validates a medicine register number path parameter.
func (v *DataValidatorImpl) ValidateRegisterNumber(input string) (string, error) {
	trimmed := strings.TrimSpace(input)
	if trimmed == "" {
		return "", fmt.Errorf("input cannot be empty")
	}

	if len(input) != len(trimmed) {
		return "", fmt.Errorf("input contains invalid characters")
	}

	if len(trimmed) > 20 {
		return "", fmt.Errorf("register number too long")
	}

	// Derived placeholder identifiers from the normalizer are accepted too.
	if strings.HasPrefix(trimmed, "gen-") {
		return trimmed, nil
	}

	if !registerRegex.MatchString(trimmed) {
		return "", fmt.Errorf("register number must contain only digits and dashes")
	}

	return trimmed, nil
}

// LogDataQuality logs the report the way the refresh path consumes it.
func LogDataQuality(report *interfaces.DataQualityReport) {
	if len(report.DuplicateRegisterNumbers) > 0 {
		logging.Warn("Duplicate register numbers detected",
			"total", len(report.DuplicateRegisterNumbers),
			"register_numbers", report.DuplicateRegisterNumbers,
		)
	}

	if report.MissingScientificName > 0 {
		logging.Warn("Medicines without scientific name",
			"count", report.MissingScientificName,
			"register_numbers", report.MissingScientificNameIDs,
		)
	}

	if report.UnpricedMedicines > 0 {
		logging.Info("Medicines without a usable public price",
			"count", report.UnpricedMedicines,
		)
	}

	if report.PoliciesWithoutIndication > 0 {
		logging.Warn("Formulary rows without indication",
			"count", report.PoliciesWithoutIndication,
		)
	}

	if report.OrphanPolicySignatures > 0 {
		logging.Info("Formulary signatures with no marketed medicine",
			"count", report.OrphanPolicySignatures,
			"signatures", report.OrphanPolicySignatureList,
		)
	}
}

// hasExcessiveRepetition checks for DoS patterns with one character repeated
// more than 10 times consecutively.
func hasExcessiveRepetition(input string) bool {
	count := 0
	var last rune
	for _, r := range input {
		if r == last {
			count++
			if count > 10 {
				return true
			}
		} else {
			last = r
			count = 1
		}
	}
	return false
}
