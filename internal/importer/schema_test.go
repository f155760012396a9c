package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func wcRow(fields map[string]string) []string {
	row := make([]string, 40)
	for name, value := range fields {
		row[channelSchemas[ChannelWC][name]] = value
	}
	return row
}

func ebayRow(fields map[string]string) []string {
	row := make([]string, 64)
	for name, value := range fields {
		row[channelSchemas[ChannelEbay][name]] = value
	}
	return row
}

func TestFieldResolvesBySchemaIndex(t *testing.T) {
	row := wcRow(map[string]string{
		"order_number": "1001",
		"item_number":  "WC-55",
		"price":        "12.50",
	})

	value, ok := Field(row, ChannelWC, "order_number")
	assert.True(t, ok)
	assert.Equal(t, "1001", value)

	value, ok = Field(row, ChannelWC, "item_number")
	assert.True(t, ok)
	assert.Equal(t, "WC-55", value)
}

func TestFieldAbsentFromSchema(t *testing.T) {
	row := wcRow(nil)

	// transaction_id only exists on the ebay schema
	_, ok := Field(row, ChannelWC, "transaction_id")
	assert.False(t, ok)
}

func TestFieldRowTooShort(t *testing.T) {
	value, ok := Field([]string{"1001", "x"}, ChannelWC, "item_number")
	assert.False(t, ok)
	assert.Empty(t, value)
}

func TestFieldUnknownChannel(t *testing.T) {
	_, ok := Field([]string{"a"}, Channel("amazon"), "order_number")
	assert.False(t, ok)
}

func TestFieldVariationBackslashMarker(t *testing.T) {
	row := wcRow(map[string]string{"variation": `Key:Left\Right`})

	value, ok := Field(row, ChannelWC, "variation")
	assert.True(t, ok)
	assert.Equal(t, "Key:Left"+BackslashMarker+"Right", value)
}

func TestChannelMetaKeys(t *testing.T) {
	assert.Equal(t, "ebay_item_number", ChannelEbay.ItemMetaKey())
	assert.Equal(t, "wc_item_number", ChannelWC.ItemMetaKey())
	assert.Equal(t, "ebay_order_number", ChannelEbay.OrderMetaKey())
	assert.Equal(t, "wc_order_number", ChannelWC.OrderMetaKey())
}

func TestChannelValid(t *testing.T) {
	assert.True(t, ChannelWC.Valid())
	assert.True(t, ChannelEbay.Valid())
	assert.False(t, Channel("amazon").Valid())
}
