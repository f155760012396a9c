package importer

import "strings"

// defaultOption stands in for an empty or missing variation value. The
// catalog treats an empty option as "no variation", so a literal "0"
// keeps a default option distinguishable from absence.
const defaultOption = "0"

// ParseVariationAttributes decodes a free-text variation cell such as
// "Key:Left Arrow" or "[Colour:Red,Size:Large]" into attribute
// name/option pairs. Names come back lowercased with spaces removed;
// options are trimmed and kept as single-element lists so callers can
// union them into existing option sets.
func ParseVariationAttributes(cell string) map[string][]string {
	if cell == "" {
		cell = "Key: " + defaultOption
	}

	if len(cell) >= 2 && cell[0] == '[' && cell[len(cell)-1] == ']' {
		cell = cell[1 : len(cell)-1]
	}

	// Some exports hyphenate the attribute delimiter.
	cell = strings.ReplaceAll(cell, "-:", ":")

	// A lone bare comma separates two attributes; a real multi-value
	// option such as "Full Arrow Set (Left, Right, Up, Down)" always
	// uses comma-space. Known-lossy heuristic, kept as-is.
	var segments []string
	if strings.Count(cell, ",") == 1 && !strings.Contains(cell, ", ") {
		segments = strings.Split(cell, ",")
	} else {
		segments = []string{cell}
	}

	attributes := make(map[string][]string, len(segments))

	for _, segment := range segments {
		key, value, found := strings.Cut(segment, ":")
		if !found {
			value = defaultOption
		}

		key = strings.ToLower(strings.ReplaceAll(key, " ", ""))
		attributes[key] = []string{strings.TrimSpace(value)}
	}

	return attributes
}

// NormalizeVariationAttributes flattens parsed attribute lists into the
// concrete name→value form stored on a variation.
func NormalizeVariationAttributes(attributes map[string][]string) map[string]string {
	normalized := make(map[string]string, len(attributes))
	for key, values := range attributes {
		if len(values) == 0 {
			continue
		}
		normalized[strings.ToLower(key)] = strings.TrimSpace(values[0])
	}
	return normalized
}
