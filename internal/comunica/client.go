// Package comunica implements the client for the Comunica PJe feed of
// real-time court communications, plus the intimation parser and the
// deadline calculator applied to its items.
package comunica

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	baseURL = "https://comunicaapi.pje.jus.br"

	// requestTimeout bounds one feed query.
	requestTimeout = 15 * time.Second
)

// httpDoer abstracts the HTTP client, enabling test mocks.
type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client queries the Comunica PJe API.
type Client struct {
	baseURL string
	http    httpDoer
}

// Opts holds parameters for creating a Client.
type Opts struct {
	BaseURL string   // override for tests; defaults to the public host
	HTTP    httpDoer // override for tests; defaults to a plain http.Client
}

// New creates a Comunica PJe client.
func New(opts Opts) *Client {
	c := &Client{baseURL: opts.BaseURL, http: opts.HTTP}
	if c.baseURL == "" {
		c.baseURL = baseURL
	}
	if c.http == nil {
		c.http = &http.Client{Timeout: requestTimeout}
	}
	return c
}

// Result is the outcome of one feed query. Success=false means the call
// failed (network, timeout, bad payload); the feed returning zero items
// is Success=true with Count 0.
type Result struct {
	Success bool
	Err     string
	Count   int
	Items   []Item
}

// Item is one raw communication as published by the feed.
type Item struct {
	ID                    int64       `json:"id"`
	DataDisponibilizacao  string      `json:"data_disponibilizacao"`
	TipoComunicacao       string      `json:"tipoComunicacao"`
	NomeOrgao             string      `json:"nomeOrgao"`
	SiglaTribunal         string      `json:"siglaTribunal"`
	Meio                  string      `json:"meiocompleto"`
	Link                  string      `json:"link"`
	Destinatarios         []Recipient `json:"destinatarios"`
	DestinatarioAdvogados []Attorney  `json:"destinatarioadvogados"`
	Texto                 string      `json:"texto"`
}

// Recipient is one named recipient of a communication.
type Recipient struct {
	Nome string `json:"nome"`
}

// Attorney wraps the nested lawyer record the feed publishes.
type Attorney struct {
	Advogado struct {
		Nome      string `json:"nome"`
		UFOAB     string `json:"uf_oab"`
		NumeroOAB string `json:"numero_oab"`
	} `json:"advogado"`
}

// OAB formats the attorney as "<nome> OAB <uf> <numero>".
func (a Attorney) OAB() string {
	return fmt.Sprintf("%s OAB %s %s", a.Advogado.Nome, a.Advogado.UFOAB, a.Advogado.NumeroOAB)
}

// feedResponse mirrors the slice of the feed response we consume.
type feedResponse struct {
	Count int    `json:"count"`
	Items []Item `json:"items"`
}

// Query fetches all communications published for a case number (digits
// only). One page only: whatever the feed returns is authoritative.
// Callers must throttle; the live API enforces ~20 requests/minute.
func (c *Client) Query(ctx context.Context, digits string) Result {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	url := c.baseURL + "/api/v1/comunicacao?numeroProcesso=" + digits
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return Result{Err: err.Error()}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return Result{Err: err.Error()}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{Err: err.Error()}
	}

	var fr feedResponse
	if err := json.Unmarshal(data, &fr); err != nil {
		return Result{Err: fmt.Sprintf("comunica: parse response: %v", err)}
	}
	return Result{Success: true, Count: fr.Count, Items: fr.Items}
}
