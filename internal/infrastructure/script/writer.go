package script

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rvc-001/planning-sub000/internal/domain/entity"
	"github.com/rvc-001/planning-sub000/internal/domain/repository"
)

const (
	requestTimeout  = 20 * time.Second
	maxResponseSize = 1 << 20
)

// Writer posts form-encoded write commands to the remote script endpoint.
// The endpoint is an external collaborator: it owns durability, row
// location for updateByJobCard, and the user-management tab.
type Writer struct {
	endpointURL string
	httpClient  *http.Client
}

func NewWriter(endpointURL string) *Writer {
	return &Writer{
		endpointURL: strings.TrimSpace(endpointURL),
		httpClient:  &http.Client{Timeout: requestTimeout},
	}
}

var _ repository.CommandWriter = (*Writer)(nil)

type scriptResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// post submits one command. A transport failure, a non-2xx status and a
// success:false body are all errors; success:false keeps the server
// message verbatim so the caller can surface it unchanged.
func (w *Writer) post(ctx context.Context, form url.Values) error {
	if w.endpointURL == "" {
		return fmt.Errorf("script endpoint not configured")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.endpointURL, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("write %q: %w", form.Get("action"), err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return fmt.Errorf("write %q: %w", form.Get("action"), err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg := strings.TrimSpace(string(body))
		if msg == "" {
			msg = resp.Status
		}
		return fmt.Errorf("write %q: status=%d: %s", form.Get("action"), resp.StatusCode, msg)
	}

	var out scriptResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return fmt.Errorf("write %q: json decode error: %w", form.Get("action"), err)
	}
	if !out.Success {
		msg := strings.TrimSpace(out.Error)
		if msg == "" {
			msg = "unknown error"
		}
		return fmt.Errorf("%s", msg)
	}
	return nil
}

func (w *Writer) Insert(ctx context.Context, sheetName string, rowData []string) error {
	encoded, err := json.Marshal(rowData)
	if err != nil {
		return err
	}
	form := url.Values{}
	form.Set("action", "insert")
	form.Set("sheetName", sheetName)
	form.Set("rowData", string(encoded))
	return w.post(ctx, form)
}

func (w *Writer) Update(ctx context.Context, sheetName string, rowIndex int, rowData []string) error {
	encoded, err := json.Marshal(rowData)
	if err != nil {
		return err
	}
	form := url.Values{}
	form.Set("action", "update")
	form.Set("sheetName", sheetName)
	form.Set("rowIndex", strconv.Itoa(rowIndex))
	form.Set("rowData", string(encoded))
	return w.post(ctx, form)
}

func (w *Writer) UpdateByJobCard(ctx context.Context, sheetName, jobCardNo string, columns map[int]string) error {
	encoded, err := encodeColumnMap(columns)
	if err != nil {
		return err
	}
	form := url.Values{}
	form.Set("action", "updateByJobCard")
	form.Set("sheetName", sheetName)
	form.Set("jobCardNo", jobCardNo)
	form.Set("columnUpdates", encoded)
	return w.post(ctx, form)
}

func (w *Writer) UpdateColumns(ctx context.Context, sheetName string, rowIndex int, columns map[int]string) error {
	encoded, err := encodeColumnMap(columns)
	if err != nil {
		return err
	}
	form := url.Values{}
	form.Set("action", "updateColumns")
	form.Set("sheetName", sheetName)
	form.Set("rowIndex", strconv.Itoa(rowIndex))
	form.Set("columnUpdates", encoded)
	return w.post(ctx, form)
}

func (w *Writer) AddUser(ctx context.Context, user entity.User, password string) error {
	form := userForm("addUser", user, password)
	return w.post(ctx, form)
}

func (w *Writer) UpdateUser(ctx context.Context, user entity.User, password string) error {
	form := userForm("updateUser", user, password)
	return w.post(ctx, form)
}

func (w *Writer) DeleteUser(ctx context.Context, userID string) error {
	form := url.Values{}
	form.Set("action", "deleteUser")
	form.Set("userId", userID)
	return w.post(ctx, form)
}

func userForm(action string, user entity.User, password string) url.Values {
	form := url.Values{}
	form.Set("action", action)
	form.Set("userId", user.ID)
	form.Set("username", user.Username)
	form.Set("role", user.Role)
	form.Set("permissions", strings.Join(user.Permissions, ","))
	if password != "" {
		form.Set("password", password)
	}
	return form
}

// encodeColumnMap serializes a sparse {columnIndex: value} map with string
// keys, the shape the script endpoint expects.
func encodeColumnMap(columns map[int]string) (string, error) {
	out := make(map[string]string, len(columns))
	for idx, val := range columns {
		out[strconv.Itoa(idx)] = val
	}
	encoded, err := json.Marshal(out)
	if err != nil {
		return "", err
	}
	return string(encoded), nil
}
