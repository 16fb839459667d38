package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/lumenshop/storefront/internal/app/remote"
)

// DocumentsClient implements the document store boundary over PostgREST.
// Each collection is a table whose rows carry an "id" column plus the
// document fields.
type DocumentsClient struct {
	client *Client
}

// From starts a query builder for a collection.
func (d *DocumentsClient) From(collection string) *QueryBuilder {
	return &QueryBuilder{
		client:     d.client,
		collection: collection,
		columns:    "*",
	}
}

// QueryBuilder builds PostgREST queries.
type QueryBuilder struct {
	client     *Client
	collection string
	columns    string
	filters    []string
	orders     []string
	limit      int
	single     bool
}

// Select specifies columns to select.
func (q *QueryBuilder) Select(columns string) *QueryBuilder {
	q.columns = columns
	return q
}

// Eq adds an equality filter.
func (q *QueryBuilder) Eq(column string, value any) *QueryBuilder {
	q.filters = append(q.filters, fmt.Sprintf("%s=eq.%v", column, value))
	return q
}

// Order adds an ordering clause, ascending.
func (q *QueryBuilder) Order(column string) *QueryBuilder {
	q.orders = append(q.orders, column+".asc")
	return q
}

// Limit caps the number of rows returned.
func (q *QueryBuilder) Limit(n int) *QueryBuilder {
	q.limit = n
	return q
}

// Single requests exactly one row as a bare object.
func (q *QueryBuilder) Single() *QueryBuilder {
	q.single = true
	return q
}

// Execute runs the query and returns the raw response body.
func (q *QueryBuilder) Execute(ctx context.Context) ([]byte, error) {
	params := url.Values{}
	params.Set("select", q.columns)
	if len(q.orders) > 0 {
		params.Set("order", strings.Join(q.orders, ","))
	}
	if q.limit > 0 {
		params.Set("limit", strconv.Itoa(q.limit))
	}

	urlStr := q.client.restURL + "/" + q.collection + "?" + params.Encode()
	for _, f := range q.filters {
		urlStr += "&" + f
	}

	var headers map[string]string
	if q.single {
		headers = map[string]string{"Accept": "application/vnd.pgrst.object+json"}
	}

	respBody, statusCode, err := q.client.request(ctx, "GET", urlStr, nil, headers)
	if err != nil {
		return nil, err
	}
	if statusCode == 404 || statusCode == 406 {
		return nil, remote.ErrNotFound
	}
	if statusCode >= 400 {
		return nil, parseError(respBody, statusCode)
	}
	return respBody, nil
}

// =============================================================================
// remote.Documents
// =============================================================================

// Get fetches one document by id.
func (d *DocumentsClient) Get(ctx context.Context, collection, id string) (remote.Document, error) {
	body, err := d.From(collection).Eq("id", id).Single().Execute(ctx)
	if err != nil {
		return remote.Document{}, err
	}
	return remote.Document{ID: id, Data: body}, nil
}

// Query fetches documents matching an optional equality filter.
func (d *DocumentsClient) Query(ctx context.Context, collection string, filter *remote.Filter, limit int) ([]remote.Document, error) {
	q := d.From(collection)
	if filter != nil {
		q = q.Eq(filter.Field, filter.Value)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	body, err := q.Execute(ctx)
	if err != nil {
		return nil, err
	}

	var rows []json.RawMessage
	if err := json.Unmarshal(body, &rows); err != nil {
		return nil, fmt.Errorf("decode query response: %w", err)
	}
	docs := make([]remote.Document, 0, len(rows))
	for _, row := range rows {
		docs = append(docs, remote.Document{
			ID:   gjson.GetBytes(row, "id").String(),
			Data: row,
		})
	}
	return docs, nil
}

// Set upserts a document under a fixed id.
func (d *DocumentsClient) Set(ctx context.Context, collection, id string, fields any) error {
	row, err := withID(fields, id)
	if err != nil {
		return err
	}
	headers := map[string]string{
		"Prefer": "return=minimal,resolution=merge-duplicates",
	}
	respBody, statusCode, err := d.client.request(ctx, "POST", d.client.restURL+"/"+collection, row, headers)
	if err != nil {
		return err
	}
	if statusCode >= 400 {
		return parseError(respBody, statusCode)
	}
	return nil
}

// Update patches fields of an existing document.
func (d *DocumentsClient) Update(ctx context.Context, collection, id string, fields map[string]any) error {
	body, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("encode fields: %w", err)
	}
	urlStr := d.client.restURL + "/" + collection + "?id=eq." + url.QueryEscape(id)
	respBody, statusCode, err := d.client.request(ctx, "PATCH", urlStr, body, nil)
	if err != nil {
		return err
	}
	if statusCode == 404 {
		return remote.ErrNotFound
	}
	if statusCode >= 400 {
		return parseError(respBody, statusCode)
	}
	return nil
}

// Add inserts a document and returns the id the store assigned.
func (d *DocumentsClient) Add(ctx context.Context, collection string, fields any) (string, error) {
	body, err := json.Marshal(fields)
	if err != nil {
		return "", fmt.Errorf("encode fields: %w", err)
	}
	headers := map[string]string{"Prefer": "return=representation"}
	respBody, statusCode, err := d.client.request(ctx, "POST", d.client.restURL+"/"+collection, body, headers)
	if err != nil {
		return "", err
	}
	if statusCode >= 400 {
		return "", parseError(respBody, statusCode)
	}

	id := gjson.GetBytes(respBody, "0.id").String()
	if id == "" {
		return "", fmt.Errorf("insert response missing id")
	}
	return id, nil
}

// Delete removes one document by id.
func (d *DocumentsClient) Delete(ctx context.Context, collection, id string) error {
	urlStr := d.client.restURL + "/" + collection + "?id=eq." + url.QueryEscape(id)
	respBody, statusCode, err := d.client.request(ctx, "DELETE", urlStr, nil, nil)
	if err != nil {
		return err
	}
	if statusCode == 404 {
		return remote.ErrNotFound
	}
	if statusCode >= 400 {
		return parseError(respBody, statusCode)
	}
	return nil
}

// withID injects the document id into the encoded fields.
func withID(fields any, id string) ([]byte, error) {
	data, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("encode fields: %w", err)
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("document fields must encode to an object: %w", err)
	}
	m["id"] = id
	return json.Marshal(m)
}
