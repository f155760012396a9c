package importer

import "strings"

// Channel identifies a marketplace export format. Each channel binds
// semantic field names to fixed column positions; the files carry no
// usable header binding, so positions are part of the contract.
type Channel string

const (
	ChannelWC   Channel = "wc"
	ChannelEbay Channel = "ebay"
)

// BackslashMarker replaces literal backslashes in variation cells.
// Upstream systems use backslash both as escape and content character,
// so the raw character cannot survive the trip through parsing.
const BackslashMarker = "Backslash"

var channelSchemas = map[Channel]map[string]int{
	ChannelEbay: {
		"order_number":            0,
		"billing_name":            3,
		"billing_address_line_1":  6,
		"billing_address_line_2":  7,
		"billing_city":            8,
		"billing_state":           9,
		"billing_postcode":        10,
		"billing_country":         11,
		"shipping_name":           14,
		"shipping_address_line_1": 16,
		"shipping_address_line_2": 17,
		"shipping_city":           18,
		"shipping_state":          19,
		"shipping_postcode":       20,
		"shipping_country":        21,
		"item_number":             22,
		"title":                   23,
		"quantity":                26,
		"price":                   27,
		"shipping_total":          28,
		"ebay_collected_tax_type": 34,
		"ebay_collected_tax":      39,
		"order_total":             46,
		"order_date":              49,
		"transaction_id":          61, // absent on the summary row of multi-item orders
		"variation":               62,
	},
	ChannelWC: {
		"order_number":            0,
		"order_date":              2,
		"billing_first_name":      4,
		"billing_last_name":       5,
		"billing_address_line_1":  7,
		"billing_address_line_2":  7,
		"billing_city":            8,
		"billing_state":           9,
		"billing_postcode":        10,
		"billing_country":         11,
		"shipping_first_name":     14,
		"shipping_last_name":      15,
		"shipping_address_line_1": 16,
		"shipping_address_line_2": 16,
		"shipping_city":           17,
		"shipping_state":          18,
		"shipping_postcode":       19,
		"shipping_country":        20,
		"shipping_total":          25,
		"title":                   31,
		"quantity":                32,
		"price":                   33,
		"item_number":             34,
		"variation_id":            35,
		"variation":               36,
	},
}

// ItemMetaKey is the meta key the channel item number is stored under.
func (c Channel) ItemMetaKey() string {
	if c == ChannelEbay {
		return "ebay_item_number"
	}
	return "wc_item_number"
}

// OrderMetaKey is the meta key the channel order number is stored under.
func (c Channel) OrderMetaKey() string {
	if c == ChannelEbay {
		return "ebay_order_number"
	}
	return "wc_order_number"
}

func (c Channel) Valid() bool {
	_, ok := channelSchemas[c]
	return ok
}

// Field resolves a named field of a raw row through the channel schema.
// A field missing from the schema, or a row too short to hold it,
// reports ok=false rather than failing.
func Field(row []string, channel Channel, name string) (string, bool) {
	schema, ok := channelSchemas[channel]
	if !ok {
		return "", false
	}
	index, ok := schema[name]
	if !ok || index >= len(row) {
		return "", false
	}

	value := row[index]
	if name == "variation" {
		value = strings.ReplaceAll(value, `\`, BackslashMarker)
	}

	return value, true
}
