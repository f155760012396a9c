package importer

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"stocksync/internal/logger"
	"stocksync/internal/models"
)

// Catalog is the slice of the product/order store the importer needs.
// Writes must be visible to later reads within the same run.
type Catalog interface {
	FindProductByExternalID(channel, itemNumber string) (*models.Product, error)
	CreateSimpleProduct(product *models.Product) error
	CreateVariableProduct(product *models.Product) error
	SaveProduct(product *models.Product) error
	CreateVariation(variation *models.Variation) error
	VariationsOf(productID string) ([]models.Variation, error)
	OrderExists(channel, orderNumber string) (bool, error)
	CreateOrder(order *models.Order) error
}

// Publisher receives a notification for every entity the importer
// creates. A nil publisher disables events.
type Publisher interface {
	Publish(eventType, entityID, channel string)
}

// Report collects per-file counters for post-run auditing.
type Report struct {
	Rows              int
	ProductsCreated   int
	VariationsCreated int
	VariationsSkipped int
	OrdersCreated     int
	OrdersSkipped     int
	ItemsSkipped      int
}

type Importer struct {
	catalog   Catalog
	publisher Publisher
	logger    *logger.Logger
	channel   Channel
}

func New(catalog Catalog, channel Channel, publisher Publisher, log *logger.Logger) *Importer {
	return &Importer{
		catalog:   catalog,
		publisher: publisher,
		logger:    log,
		channel:   channel,
	}
}

// Run imports one export file: first every row is reconciled into the
// product catalog, then rows sharing an order number are assembled into
// orders. Orders resolve line items against products, so the two
// passes are strictly ordered.
func (im *Importer) Run(path string, hasHeader bool) (*Report, error) {
	rows, err := ReadRows(path, hasHeader)
	if err != nil {
		return nil, err
	}

	report := &Report{Rows: len(rows)}

	// Grouped rows per order number, in first-seen order.
	var orderNumbers []string
	orderRows := make(map[string][][]string)

	for index, row := range rows {
		if err := im.importProduct(row, report); err != nil {
			im.logger.Error("row %d: %v", index, err)
		}

		if orderNumber, ok := im.field(row, "order_number"); ok && orderNumber != "" {
			if _, seen := orderRows[orderNumber]; !seen {
				orderNumbers = append(orderNumbers, orderNumber)
			}
			orderRows[orderNumber] = append(orderRows[orderNumber], row)
		}

		im.logger.Debug("product %d/%d processed", index+1, len(rows))
	}

	for index, orderNumber := range orderNumbers {
		if err := im.importOrder(orderNumber, orderRows[orderNumber], report); err != nil {
			im.logger.Error("order %s: %v", orderNumber, err)
		}
		im.logger.Debug("order %d/%d - no. %s", index+1, len(orderNumbers), orderNumber)
	}

	im.logger.Info("imported %s: rows=%d products=%d variations=%d (skipped %d) orders=%d (skipped %d) items skipped=%d",
		path, report.Rows, report.ProductsCreated, report.VariationsCreated, report.VariationsSkipped,
		report.OrdersCreated, report.OrdersSkipped, report.ItemsSkipped)

	return report, nil
}

func (im *Importer) field(row []string, name string) (string, bool) {
	return Field(row, im.channel, name)
}

// classify decides simple vs. variation for one row. WC exports carry
// an explicit variation_id column ("0" on simple rows); other channels
// signal a variation with a non-empty variation cell.
func (im *Importer) classify(row []string) models.ProductType {
	if im.channel == ChannelWC {
		variationID, ok := im.field(row, "variation_id")
		if ok && variationID != "0" {
			return models.TypeVariable
		}
		return models.TypeSimple
	}

	if variation, _ := im.field(row, "variation"); variation != "" {
		return models.TypeVariable
	}
	return models.TypeSimple
}

func (im *Importer) importProduct(row []string, report *Report) error {
	itemNumber, ok := im.field(row, "item_number")
	if !ok || itemNumber == "" {
		return nil
	}

	existing, err := im.catalog.FindProductByExternalID(string(im.channel), itemNumber)
	if err != nil {
		return err
	}

	productType := im.classify(row)

	switch {
	case existing != nil && productType == models.TypeVariable:
		return im.attachVariation(row, existing, report)

	case existing == nil && productType == models.TypeSimple:
		return im.createSimpleProduct(row, itemNumber, report)

	case existing == nil && productType == models.TypeVariable:
		parent, err := im.createVariationParent(row, itemNumber, report)
		if err != nil {
			return err
		}
		return im.attachVariation(row, parent, report)
	}

	// Existing simple product: nothing to reconcile.
	return nil
}

var bracketSuffix = regexp.MustCompile(`\[.*\]`)

func (im *Importer) createSimpleProduct(row []string, itemNumber string, report *Report) error {
	title, _ := im.field(row, "title")
	title = strings.TrimSpace(bracketSuffix.ReplaceAllString(title, ""))

	price, _ := im.field(row, "price")

	product := &models.Product{
		Channel:    string(im.channel),
		ExternalID: itemNumber,
		Title:      title,
		Price:      ParseMoney(price),
	}
	if group := ProductGroup(title); group != "" {
		product.ProductGroup = &group
	}

	if err := im.catalog.CreateSimpleProduct(product); err != nil {
		return err
	}

	report.ProductsCreated++
	im.publish("product.created", product.ID)
	return nil
}

// parentTitle derives the variable product's display title from a row
// title: ebay titles append the variation in brackets, wc titles append
// it after the last hyphen.
func (im *Importer) parentTitle(title string) string {
	if im.channel == ChannelEbay {
		return strings.TrimSpace(bracketSuffix.ReplaceAllString(title, ""))
	}
	if index := strings.LastIndex(title, "-"); index >= 0 {
		return strings.TrimSpace(title[:index])
	}
	return strings.TrimSpace(title)
}

func (im *Importer) createVariationParent(row []string, itemNumber string, report *Report) (*models.Product, error) {
	title, _ := im.field(row, "title")
	price, _ := im.field(row, "price")

	product := &models.Product{
		Channel:    string(im.channel),
		ExternalID: itemNumber,
		Title:      im.parentTitle(title),
		Price:      ParseMoney(price),
		Attributes: map[string][]string{},
	}
	if group := ProductGroup(product.Title); group != "" {
		product.ProductGroup = &group
	}

	if err := im.catalog.CreateVariableProduct(product); err != nil {
		return nil, err
	}

	report.ProductsCreated++
	im.publish("product.created", product.ID)
	return product, nil
}

// attachVariation merges a row's parsed attributes into the parent's
// option sets and creates the concrete variation. When every option of
// the row is already defined on the parent the row is a re-import and
// no variation is created.
func (im *Importer) attachVariation(row []string, parent *models.Product, report *Report) error {
	cell, _ := im.field(row, "variation")
	attributes := ParseVariationAttributes(cell)

	priceCell, _ := im.field(row, "price")
	price := ParseMoney(priceCell)

	if parent.Attributes == nil {
		parent.Attributes = map[string][]string{}
	}

	existsCount := 0
	for key, values := range attributes {
		value := values[0]
		options := parent.Attributes[key]

		if containsOption(options, value) {
			existsCount++
			continue
		}
		parent.Attributes[key] = append(options, value)
	}

	if existsCount == len(attributes) {
		report.VariationsSkipped++
		return nil
	}

	if err := im.catalog.SaveProduct(parent); err != nil {
		return err
	}

	variation := &models.Variation{
		ProductID:  parent.ID,
		Price:      price,
		Attributes: NormalizeVariationAttributes(attributes),
	}
	if err := im.catalog.CreateVariation(variation); err != nil {
		return err
	}

	report.VariationsCreated++
	im.publish("variation.created", variation.ID)
	return nil
}

func containsOption(options []string, value string) bool {
	for _, option := range options {
		if option == value {
			return true
		}
	}
	return false
}

func (im *Importer) importOrder(orderNumber string, rows [][]string, report *Report) error {
	exists, err := im.catalog.OrderExists(string(im.channel), orderNumber)
	if err != nil {
		return err
	}
	if exists {
		report.OrdersSkipped++
		im.logger.Debug("order %s already imported, skipping", orderNumber)
		return nil
	}

	first := rows[0]

	order := &models.Order{
		Channel:    string(im.channel),
		ExternalID: orderNumber,
		Status:     "completed",
		Billing:    im.address(first, "billing"),
		Shipping:   im.address(first, "shipping"),
	}

	itemsTotal := 0.0
	for _, row := range rows {
		// Multi-item ebay orders open with a summary row that has no
		// transaction id and is not a line item.
		if im.channel == ChannelEbay {
			if transactionID, _ := im.field(row, "transaction_id"); transactionID == "" {
				continue
			}
		}

		item, ok := im.buildLineItem(row, report)
		if !ok {
			continue
		}

		order.Items = append(order.Items, item)
		itemsTotal += item.Total
	}

	if im.channel == ChannelEbay {
		taxAmount, _ := im.field(first, "ebay_collected_tax")
		taxType, _ := im.field(first, "ebay_collected_tax_type")
		if taxAmount != "" && taxType != "" {
			// Tax already collected by the marketplace; recorded as a
			// fee with tax status none, never recalculated.
			order.FeeName = &taxType
			order.FeeTotal = ParseMoney(taxAmount)
		}
	}

	shippingTotal, _ := im.field(first, "shipping_total")
	order.ShippingTotal = ParseMoney(shippingTotal)
	order.Total = itemsTotal + order.FeeTotal + order.ShippingTotal

	if dateCell, ok := im.field(first, "order_date"); ok {
		order.DateCreated = parseOrderDate(dateCell)
		if order.DateCreated.IsZero() {
			im.logger.Warn("order %s: unparseable order date %q", orderNumber, dateCell)
		}
	}

	if err := im.catalog.CreateOrder(order); err != nil {
		return err
	}

	report.OrdersCreated++
	im.publish("order.created", order.ID)
	return nil
}

// buildLineItem resolves one row to a product or concrete variation.
// Rows whose product or variation cannot be resolved are dropped from
// the order rather than failing the import.
func (im *Importer) buildLineItem(row []string, report *Report) (models.OrderItem, bool) {
	itemNumber, _ := im.field(row, "item_number")

	product, err := im.catalog.FindProductByExternalID(string(im.channel), itemNumber)
	if err != nil || product == nil {
		report.ItemsSkipped++
		im.logger.Warn("line item %s: product not found, skipping", itemNumber)
		return models.OrderItem{}, false
	}

	quantityCell, _ := im.field(row, "quantity")
	quantity, _ := strconv.Atoi(strings.TrimSpace(quantityCell))

	priceCell, _ := im.field(row, "price")
	total := ParseMoney(priceCell) * float64(quantity)

	item := models.OrderItem{
		ProductID: product.ID,
		Quantity:  quantity,
		Total:     total,
	}

	if im.classify(row) == models.TypeSimple {
		return item, true
	}

	cell, _ := im.field(row, "variation")
	wanted := NormalizeVariationAttributes(ParseVariationAttributes(cell))

	variations, err := im.catalog.VariationsOf(product.ID)
	if err != nil {
		report.ItemsSkipped++
		im.logger.Warn("line item %s: %v", itemNumber, err)
		return models.OrderItem{}, false
	}

	for _, variation := range variations {
		if variationMatches(variation.Attributes, wanted) {
			id := variation.ID
			item.VariationID = &id
			return item, true
		}
	}

	report.ItemsSkipped++
	im.logger.Warn("line item %s: no variation matches %v, skipping", itemNumber, wanted)
	return models.OrderItem{}, false
}

// variationMatches reports whether a stored variation carries exactly
// the wanted value for every wanted attribute. Comparison is
// case-insensitive on values; attribute names are already normalized.
func variationMatches(stored, wanted map[string]string) bool {
	if len(wanted) == 0 {
		return false
	}
	for key, value := range wanted {
		if !strings.EqualFold(stored[key], value) {
			return false
		}
	}
	return true
}

// address builds one side of the order address block from the first row
// of an order group. Ebay exports carry a single full-name column that
// is split on whitespace; wc exports have separate first/last columns.
// Short names degrade to whatever tokens exist.
func (im *Importer) address(row []string, side string) models.Address {
	var firstName, lastName string

	if im.channel == ChannelEbay {
		name, _ := im.field(row, side+"_name")
		tokens := strings.Fields(name)
		if len(tokens) > 0 {
			firstName = tokens[0]
			lastName = tokens[len(tokens)-1]
		}
	} else {
		firstName, _ = im.field(row, side+"_first_name")
		lastName, _ = im.field(row, side+"_last_name")
	}

	line1, _ := im.field(row, side+"_address_line_1")
	line2, _ := im.field(row, side+"_address_line_2")
	city, _ := im.field(row, side+"_city")
	state, _ := im.field(row, side+"_state")
	postcode, _ := im.field(row, side+"_postcode")
	country, _ := im.field(row, side+"_country")

	return models.Address{
		FirstName: firstName,
		LastName:  lastName,
		Line1:     line1,
		Line2:     line2,
		City:      city,
		State:     state,
		Postcode:  postcode,
		Country:   country,
	}
}

var orderDateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"Jan-02-06 15:04:05",
	"Jan-02-06",
	"02/01/2006 15:04",
	time.RFC3339,
}

func parseOrderDate(value string) time.Time {
	value = strings.TrimSpace(value)
	for _, layout := range orderDateLayouts {
		if date, err := time.Parse(layout, value); err == nil {
			return date
		}
	}
	return time.Time{}
}

func (im *Importer) publish(eventType, entityID string) {
	if im.publisher == nil {
		return
	}
	im.publisher.Publish(eventType, entityID, string(im.channel))
}

// String implements fmt.Stringer for run summaries.
func (r *Report) String() string {
	return fmt.Sprintf("rows=%d products=%d variations=%d orders=%d",
		r.Rows, r.ProductsCreated, r.VariationsCreated, r.OrdersCreated)
}
