// Package printer is the HTTP client for the thermal print server.
package printer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"
)

// Salud is the /salud payload.
type Salud struct {
	ImpresoraDisponible bool   `json:"impresora_disponible"`
	Impresora           string `json:"impresora,omitempty"`
}

// Job is one entry of the print queue.
type Job struct {
	ID               string `json:"id"`
	ClientIP         string `json:"client_ip"`
	OriginalFilename string `json:"original_filename"`
	ReceivedAt       int64  `json:"received_at"`
	State            string `json:"state"`
	ErrorMessage     string `json:"error_message,omitempty"`
}

// Cola is the /cola payload: pending jobs plus the recently printed ones.
type Cola struct {
	Pendientes []Job `json:"pendientes"`
	Impresos   []Job `json:"impresos"`
}

// PrintResult is the acknowledgment for a submitted document.
type PrintResult struct {
	OK      bool   `json:"ok"`
	Mensaje string `json:"mensaje,omitempty"`
	JobID   string `json:"job_id,omitempty"`
}

type Client struct {
	baseURL string
	http    *http.Client
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) getJSON(ctx context.Context, path string, dest interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return err
	}
	res, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("servidor de impresion: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return errorFromResponse(res)
	}
	return json.NewDecoder(res.Body).Decode(dest)
}

// GetSalud reports printer availability.
func (c *Client) GetSalud(ctx context.Context) (*Salud, error) {
	var s Salud
	if err := c.getJSON(ctx, "/salud", &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// GetEstado returns the raw status document of the print server.
func (c *Client) GetEstado(ctx context.Context) (map[string]interface{}, error) {
	var m map[string]interface{}
	if err := c.getJSON(ctx, "/estado", &m); err != nil {
		return nil, err
	}
	return m, nil
}

// GetCola returns the current print queue.
func (c *Client) GetCola(ctx context.Context) (*Cola, error) {
	var q Cola
	if err := c.getJSON(ctx, "/cola", &q); err != nil {
		return nil, err
	}
	return &q, nil
}

// ImprimirPNG submits a rendered PNG as multipart form-data under the
// "archivo" field. A 2xx with an unparseable body still counts as success.
func (c *Client) ImprimirPNG(ctx context.Context, data []byte, filename string) (*PrintResult, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("archivo", filename)
	if err != nil {
		return nil, err
	}
	if _, err := fw.Write(data); err != nil {
		return nil, err
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/imprimir-imagen", &body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	res, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error enviando a impresion: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, errorFromResponse(res)
	}

	var result PrintResult
	if err := json.NewDecoder(res.Body).Decode(&result); err != nil {
		return &PrintResult{OK: true, Mensaje: "Documento enviado a imprimir"}, nil
	}
	result.OK = true
	return &result, nil
}

// errorFromResponse surfaces the server-supplied detail message when the
// body carries one, otherwise the bare status.
func errorFromResponse(res *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(res.Body, 4096))
	var payload struct {
		Detail string `json:"detail"`
	}
	if json.Unmarshal(raw, &payload) == nil && payload.Detail != "" {
		return fmt.Errorf("%s", payload.Detail)
	}
	return fmt.Errorf("error en la impresion (%d)", res.StatusCode)
}
