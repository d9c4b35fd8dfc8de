package pkg

import (
	"regexp"
	"strings"

	"github.com/blastrain/vitess-sqlparser/sqlparser"
)

var writeKeyword = regexp.MustCompile(`(?i)\b(insert|update|delete|drop|alter|truncate|merge|create|exec|execute|grant|revoke)\b`)

// CleanSQL strips markdown code-fence decoration and backticks the model tends
// to wrap replies in.
func CleanSQL(raw string) string {
	s := strings.TrimSpace(raw)
	for _, prefix := range []string{"```sql", "```SQL", "```json", "```"} {
		s = strings.TrimPrefix(s, prefix)
	}
	s = strings.TrimSuffix(s, "```")
	s = strings.ReplaceAll(s, "`", "")
	return strings.TrimSpace(s)
}

// IsReadOnly reports whether stmt is a single read-only SELECT. Statements that
// parse are accepted only as SELECT/UNION. T-SQL constructs (TOP, bracketed
// identifiers) don't always parse with this grammar, so parse failures fall
// back to a keyword screen instead of being rejected outright.
func IsReadOnly(stmt string) bool {
	if s, err := sqlparser.Parse(stmt); err == nil {
		switch s.(type) {
		case *sqlparser.Select, *sqlparser.Union:
			return true
		default:
			return false
		}
	}
	return keywordScreen(stmt)
}

func keywordScreen(stmt string) bool {
	trimmed := strings.TrimSpace(stmt)
	if trimmed == "" {
		return false
	}
	upper := strings.ToUpper(trimmed)
	if !strings.HasPrefix(upper, "SELECT") && !strings.HasPrefix(upper, "WITH") {
		return false
	}
	if writeKeyword.MatchString(trimmed) {
		return false
	}
	// one statement only; a trailing semicolon is fine
	if strings.Contains(strings.TrimSuffix(trimmed, ";"), ";") {
		return false
	}
	return true
}
