package importer

import (
	"strconv"
	"strings"
)

// ParseMoney strips the currency prefixes the marketplace exports use
// and parses the remainder. Unparseable values come back as 0, matching
// the exports' habit of leaving money cells blank.
func ParseMoney(value string) float64 {
	value = strings.ReplaceAll(value, "£", "")
	value = strings.ReplaceAll(value, "US $", "")
	value = strings.ReplaceAll(value, "$", "")
	value = strings.ReplaceAll(value, ",", "")
	value = strings.TrimSpace(value)

	amount, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0
	}
	return amount
}
