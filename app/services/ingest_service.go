package services

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/upahaar/upahaar/app/models"
	"github.com/upahaar/upahaar/app/repositories"
	"github.com/upahaar/upahaar/pkg/event"
	"github.com/upahaar/upahaar/pkg/logger"
	"github.com/upahaar/upahaar/pkg/metrics"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// RowError describes one CSV row that could not be fully parsed. Rows with
// errors are still imported with the bad field left at its zero value.
type RowError struct {
	Row   int    `json:"row"`
	Field string `json:"field"`
	Cause string `json:"cause"`
}

// IngestResult summarizes one CSV import.
type IngestResult struct {
	Imported  int        `json:"imported"`
	RowErrors []RowError `json:"rowErrors,omitempty"`
}

// IngestService turns uploaded CSV files into product documents.
type IngestService struct {
	products *repositories.ProductRepository
}

func NewIngestService() *IngestService {
	return &IngestService{products: repositories.NewProductRepository()}
}

// ImportCSV reads a header-keyed CSV stream, coerces each row into a product
// and bulk inserts the batch. Every row is stamped with the importing admin as
// createdBy/updatedBy. Numeric and JSON columns that fail to parse are
// recorded per row rather than aborting the import. On success a
// catalog.imported event fires so listeners can invalidate caches.
func (s *IngestService) ImportCSV(ctx context.Context, r io.Reader, actor primitive.ObjectID) (IngestResult, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		metrics.ProductsImported.WithLabelValues("error").Inc()
		return IngestResult{}, fmt.Errorf("services: read csv header: %w", err)
	}
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}

	var (
		products []models.Product
		rowErrs  []RowError
		rowIndex int
	)
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			metrics.ProductsImported.WithLabelValues("error").Inc()
			return IngestResult{}, fmt.Errorf("services: read csv row %d: %w", rowIndex+1, err)
		}
		rowIndex++

		row := rowReader{cols: cols, record: record, index: rowIndex}
		p := row.product()
		p.CreatedBy = actor
		p.UpdatedBy = actor
		products = append(products, p)
		rowErrs = append(rowErrs, row.errs...)
	}

	inserted, err := s.products.InsertMany(ctx, products)
	if err != nil {
		metrics.ProductsImported.WithLabelValues("error").Add(float64(len(products) - inserted))
	}
	metrics.ProductsImported.WithLabelValues("ok").Add(float64(inserted))

	if inserted > 0 {
		event.Fire("catalog.imported", inserted)
	}
	if err != nil {
		return IngestResult{Imported: inserted, RowErrors: rowErrs}, err
	}

	logger.WithCtx(ctx).Info("csv import complete",
		"imported", inserted, "row_errors", len(rowErrs))
	return IngestResult{Imported: inserted, RowErrors: rowErrs}, nil
}

// rowReader extracts typed fields from one CSV record, collecting per-field
// parse errors as it goes.
type rowReader struct {
	cols   map[string]int
	record []string
	index  int
	errs   []RowError
}

func (r *rowReader) str(field string) string {
	i, ok := r.cols[field]
	if !ok || i >= len(r.record) {
		return ""
	}
	return strings.TrimSpace(r.record[i])
}

func (r *rowReader) num(field string) float64 {
	raw := r.str(field)
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		r.fail(field, err)
		return 0
	}
	return v
}

func (r *rowReader) integer(field string) int {
	return int(r.num(field))
}

// boolean matches the upload format: the literal TRUE and nothing else.
func (r *rowReader) boolean(field string) bool {
	return r.str(field) == "TRUE"
}

// stringList parses a JSON array column. A plain non-JSON value passes
// through as a single-element list.
func (r *rowReader) stringList(field string) []string {
	raw := r.str(field)
	if raw == "" {
		return nil
	}
	if !strings.HasPrefix(raw, "[") {
		return []string{raw}
	}
	var out []string
	if err := json.Unmarshal([]byte(raw), &out); err != nil {
		r.fail(field, err)
		return nil
	}
	return out
}

// object parses a JSON object column into dest. Non-JSON values are ignored.
func (r *rowReader) object(field string, dest interface{}) {
	raw := r.str(field)
	if raw == "" || !strings.HasPrefix(raw, "{") {
		return
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		r.fail(field, err)
	}
}

func (r *rowReader) fail(field string, err error) {
	r.errs = append(r.errs, RowError{Row: r.index, Field: field, Cause: err.Error()})
}

func (r *rowReader) product() models.Product {
	p := models.Product{
		Title:       r.str("title"),
		Slug:        r.str("slug"),
		Description: r.str("description"),
		Brand:       r.str("brand"),
		Category:    r.str("category"),
		SubCategory: r.str("subCategory"),

		Price:      r.num("price"),
		Discount:   r.num("discount"),
		FinalPrice: r.num("finalPrice"),
		Stock:      r.integer("stock"),

		Images:    r.stringList("images"),
		Occasions: r.stringList("occasions"),
		Tags:      r.stringList("tags"),

		IsCustomizable:      r.boolean("isCustomizable"),
		CustomizationFields: r.stringList("customizationFields"),
		GiftWrapAvailable:   r.boolean("giftWrapAvailable"),
		GiftMessageAllowed:  r.boolean("giftMessageAllowed"),
		IsRecommended:       r.boolean("isRecommended"),
		LimitedEdition:      r.boolean("limitedEdition"),

		DeliveryTime: r.str("deliveryTime"),
		SeasonalTag:  r.str("seasonalTag"),
		Status:       r.str("status"),
	}
	if p.Status == "" {
		p.Status = "active"
	}

	r.object("ratings", &p.Ratings)
	r.object("seller", &p.Seller)
	r.object("meta", &p.Meta)

	p.ComputeFinalPrice()
	return p
}
