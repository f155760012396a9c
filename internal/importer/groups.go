package importer

import "regexp"

var modelNumberPattern = regexp.MustCompile(`[A-Za-z][0-9]{4}`)

// Model numbers of devices sharing one keycap layout, mapped to the
// group tag their products are reported under.
var keycapGroups = map[string]string{
	"A1706": "A1706-A1707-A1708",
	"A1707": "A1706-A1707-A1708",
	"A1708": "A1706-A1707-A1708",

	"A1989": "A1989-A1990-A2159",
	"A1990": "A1989-A1990-A2159",
	"A2159": "A1989-A1990-A2159",

	"A2141": "A2485-A2442-A2338-A2289-A2251-A2141-A2337-A2179",
	"A2289": "A2485-A2442-A2338-A2289-A2251-A2141-A2337-A2179",
	"A2251": "A2485-A2442-A2338-A2289-A2251-A2141-A2337-A2179",
	"A2338": "A2485-A2442-A2338-A2289-A2251-A2141-A2337-A2179",
	"A2485": "A2485-A2442-A2338-A2289-A2251-A2141-A2337-A2179",
	"A2442": "A2485-A2442-A2338-A2289-A2251-A2141-A2337-A2179",
	"A2337": "A2485-A2442-A2338-A2289-A2251-A2141-A2337-A2179",
	"A2179": "A2485-A2442-A2338-A2289-A2251-A2141-A2337-A2179",
	"A2681": "A2485-A2442-A2338-A2289-A2251-A2141-A2337-A2179",
}

// ProductGroup extracts model-number tokens from a product title and
// maps the first recognized one to its device-family group tag.
// Returns "" when no token belongs to a known family.
func ProductGroup(title string) string {
	for _, number := range modelNumberPattern.FindAllString(title, -1) {
		if group, ok := keycapGroups[number]; ok {
			return group
		}
	}
	return ""
}
