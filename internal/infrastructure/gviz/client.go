package gviz

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rvc-001/planning-sub000/internal/domain/entity"
	"github.com/rvc-001/planning-sub000/internal/domain/repository"
)

// DefaultBaseURL is the public tabular query service.
const DefaultBaseURL = "https://docs.google.com/spreadsheets/d"

const (
	requestTimeout  = 20 * time.Second
	maxResponseSize = 25 << 20
)

// Client reads sheet tabs through the gviz query endpoint. The endpoint
// answers with JSON wrapped in a JavaScript callback, so the payload is
// substring-extracted before decoding.
type Client struct {
	baseURL       string
	spreadsheetID string
	headerRows    int
	httpClient    *http.Client
}

// NewClient builds a reader for one spreadsheet. headerRows is the
// header-row-count hint passed to the endpoint.
func NewClient(baseURL, spreadsheetID string, headerRows int) *Client {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if headerRows < 0 {
		headerRows = 0
	}
	return &Client{
		baseURL:       baseURL,
		spreadsheetID: spreadsheetID,
		headerRows:    headerRows,
		httpClient:    &http.Client{Timeout: requestTimeout},
	}
}

var _ repository.SheetReader = (*Client)(nil)

type wireCol struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Type  string `json:"type"`
}

type wireCell struct {
	V any    `json:"v"`
	F string `json:"f"`
}

type wireRow struct {
	C []*wireCell `json:"c"`
}

type wireError struct {
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

type wireResponse struct {
	Status string      `json:"status"`
	Errors []wireError `json:"errors"`
	Table  struct {
		Cols []wireCol `json:"cols"`
		Rows []wireRow `json:"rows"`
	} `json:"table"`
}

// ReadTab fetches one tab as a TabularResult.
func (c *Client) ReadTab(ctx context.Context, sheetName string) (entity.TabularResult, error) {
	q := url.Values{}
	q.Set("tqx", "out:json")
	q.Set("sheet", sheetName)
	q.Set("headers", fmt.Sprintf("%d", c.headerRows))
	u := fmt.Sprintf("%s/%s/gviz/tq?%s", c.baseURL, url.PathEscape(c.spreadsheetID), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return entity.TabularResult{}, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return entity.TabularResult{}, fmt.Errorf("read %q: %w", sheetName, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return entity.TabularResult{}, fmt.Errorf("read %q: %w", sheetName, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := strings.TrimSpace(string(body))
		if msg == "" {
			msg = resp.Status
		}
		if len(msg) > 512 {
			msg = msg[:512]
		}
		return entity.TabularResult{}, fmt.Errorf("read %q: status=%d: %s", sheetName, resp.StatusCode, msg)
	}

	result, err := parseResponse(sheetName, body)
	if err != nil {
		return entity.TabularResult{}, err
	}
	result.HeaderRows = c.headerRows
	return result, nil
}

// parseResponse unwraps the setResponse callback and decodes the table.
func parseResponse(sheetName string, body []byte) (entity.TabularResult, error) {
	payload, err := extractPayload(string(body))
	if err != nil {
		return entity.TabularResult{}, fmt.Errorf("read %q: %w", sheetName, err)
	}

	var wire wireResponse
	if err := json.Unmarshal([]byte(payload), &wire); err != nil {
		return entity.TabularResult{}, fmt.Errorf("read %q: json decode error: %w", sheetName, err)
	}
	if wire.Status == "error" {
		msgs := make([]string, 0, len(wire.Errors))
		for _, e := range wire.Errors {
			if strings.TrimSpace(e.Message) != "" {
				msgs = append(msgs, e.Message)
			} else {
				msgs = append(msgs, e.Reason)
			}
		}
		if len(msgs) == 0 {
			msgs = append(msgs, "unknown query error")
		}
		return entity.TabularResult{}, fmt.Errorf("read %q: query error: %s", sheetName, strings.Join(msgs, "; "))
	}

	result := entity.TabularResult{
		Columns: make([]entity.Column, 0, len(wire.Table.Cols)),
		Rows:    make([][]*entity.Cell, 0, len(wire.Table.Rows)),
	}
	for _, col := range wire.Table.Cols {
		result.Columns = append(result.Columns, entity.Column{ID: col.ID, Label: col.Label, Type: col.Type})
	}
	for _, row := range wire.Table.Rows {
		cells := make([]*entity.Cell, 0, len(row.C))
		for _, wc := range row.C {
			if wc == nil || wc.V == nil {
				cells = append(cells, nil)
				continue
			}
			cells = append(cells, &entity.Cell{Value: wc.V, Formatted: wc.F})
		}
		result.Rows = append(result.Rows, cells)
	}
	return result, nil
}

// extractPayload cuts the JSON object out of the callback wrapper:
// "/*O_o*/\ngoogle.visualization.Query.setResponse({...});".
func extractPayload(raw string) (string, error) {
	const marker = "setResponse("
	start := strings.Index(raw, marker)
	if start < 0 {
		return "", fmt.Errorf("malformed response: setResponse wrapper not found")
	}
	start += len(marker)
	end := strings.LastIndex(raw, ")")
	if end <= start {
		return "", fmt.Errorf("malformed response: unterminated wrapper")
	}
	payload := strings.TrimSpace(raw[start:end])
	if !strings.HasPrefix(payload, "{") {
		return "", fmt.Errorf("malformed response: payload is not a JSON object")
	}
	return payload, nil
}
