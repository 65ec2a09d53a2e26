// Package datajud implements the client for the DataJud public search
// API, the national index of court docket movements. The API is
// partitioned by court ("trt2", "tst", ...); callers pick the partition.
package datajud

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"
)

const (
	baseURL = "https://api-publica.datajud.cnj.jus.br"

	// defaultTimeout bounds a primary-partition search.
	defaultTimeout = 30 * time.Second
	// fallbackTimeout bounds the cheaper TST probe.
	fallbackTimeout = 15 * time.Second
)

// httpDoer abstracts the HTTP client, enabling test mocks.
type httpDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client queries the DataJud search API.
type Client struct {
	apiKey  string
	baseURL string
	http    httpDoer
}

// Opts holds parameters for creating a Client.
type Opts struct {
	APIKey  string
	BaseURL string   // override for tests; defaults to the public host
	HTTP    httpDoer // override for tests; defaults to a plain http.Client
}

// New creates a DataJud client.
func New(opts Opts) *Client {
	c := &Client{
		apiKey:  opts.APIKey,
		baseURL: opts.BaseURL,
		http:    opts.HTTP,
	}
	if c.baseURL == "" {
		c.baseURL = baseURL
	}
	if c.http == nil {
		c.http = &http.Client{Timeout: defaultTimeout}
	}
	return c
}

// Result is the outcome of a movement index query. Found=false with an
// empty Err means the case is simply not in this partition; Found=false
// with Err set means the call itself failed and says nothing about the
// case's existence.
type Result struct {
	Found bool
	Err   string

	Tribunal           string
	Grau               string
	Classe             string
	OrgaoJulgador      string
	DataAjuizamento    string
	UltimaAtualizacao  string
	TotalMovimentos    int
	UltimaMovimentacao *MovementRef
	MovimentosRecentes []MovementSummary
	// Movimentos is the full pooled movement list, most recent first.
	Movimentos []MovementDetail
}

// MovementRef is the single most recent movement in condensed form.
type MovementRef struct {
	Data      string `json:"data"`
	Descricao string `json:"descricao"`
}

// MovementSummary is one row of the recent-movements list.
type MovementSummary struct {
	Data      string `json:"data"`
	Descricao string `json:"descricao"`
	Grau      string `json:"grau,omitempty"`
}

// MovementDetail is a fully expanded pooled movement.
type MovementDetail struct {
	Data         string       `json:"data"`
	DataHora     string       `json:"dataHora"`
	Nome         string       `json:"nome"`
	Codigo       int          `json:"codigo"`
	Grau         string       `json:"grau"`
	Orgao        string       `json:"orgao"`
	Complementos []Complement `json:"complementos,omitempty"`
}

// Complement is one tabulated detail attached to a movement.
type Complement struct {
	Nome      string `json:"nome"`
	Valor     string `json:"valor"`
	Descricao string `json:"descricao"`
}

// searchResponse mirrors the slice of the index response we consume.
type searchResponse struct {
	Hits struct {
		Hits []struct {
			Source hitSource `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

type hitSource struct {
	Tribunal string `json:"tribunal"`
	Grau     string `json:"grau"`
	Classe   struct {
		Nome string `json:"nome"`
	} `json:"classe"`
	OrgaoJulgador struct {
		Nome string `json:"nome"`
	} `json:"orgaoJulgador"`
	DataAjuizamento           string `json:"dataAjuizamento"`
	DataHoraUltimaAtualizacao string `json:"dataHoraUltimaAtualizacao"`
	Movimentos                []struct {
		DataHora              string `json:"dataHora"`
		Nome                  string `json:"nome"`
		Codigo                int    `json:"codigo"`
		ComplementosTabelados []struct {
			Nome      string `json:"nome"`
			Valor     string `json:"valor"`
			Descricao string `json:"descricao"`
		} `json:"complementosTabelados"`
	} `json:"movimentos"`
}

// Query searches one court partition for a case number (digits only).
// Call failures are folded into the Result, never returned as errors, so
// the caller can distinguish "not found" from "could not ask".
func (c *Client) Query(ctx context.Context, digits, court string) Result {
	resp, status, err := c.search(ctx, court, digits, 5, defaultTimeout)
	if err != nil {
		return Result{Err: err.Error()}
	}
	if status != http.StatusOK {
		return Result{Err: fmt.Sprintf("HTTP %d", status)}
	}
	if len(resp.Hits.Hits) == 0 {
		return Result{}
	}

	// The index may return several docket snapshots for one case (one
	// per degree); pool their movements and keep the freshest snapshot
	// for top-level metadata.
	best := resp.Hits.Hits[0].Source
	var all []MovementDetail
	for _, hit := range resp.Hits.Hits {
		src := hit.Source
		for _, m := range src.Movimentos {
			det := MovementDetail{
				Data:     FormatDate(m.DataHora),
				DataHora: m.DataHora,
				Nome:     m.Nome,
				Codigo:   m.Codigo,
				Grau:     src.Grau,
				Orgao:    src.OrgaoJulgador.Nome,
			}
			for _, ct := range m.ComplementosTabelados {
				det.Complementos = append(det.Complementos, Complement{
					Nome: ct.Nome, Valor: ct.Valor, Descricao: ct.Descricao,
				})
			}
			all = append(all, det)
		}
		if src.DataHoraUltimaAtualizacao > best.DataHoraUltimaAtualizacao {
			best = src
		}
	}

	// Timestamps are ISO-like, so lexicographic order is chronological.
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].DataHora > all[j].DataHora
	})

	res := Result{
		Found:             true,
		Tribunal:          best.Tribunal,
		Grau:              best.Grau,
		Classe:            best.Classe.Nome,
		OrgaoJulgador:     best.OrgaoJulgador.Nome,
		DataAjuizamento:   FormatDate(best.DataAjuizamento),
		UltimaAtualizacao: best.DataHoraUltimaAtualizacao,
		TotalMovimentos:   len(all),
		Movimentos:        all,
	}
	if len(all) > 0 {
		res.UltimaMovimentacao = &MovementRef{
			Data:      all[0].Data,
			Descricao: describeMovement(all[0], true),
		}
		recent := all
		if len(recent) > 10 {
			recent = recent[:10]
		}
		for _, m := range recent {
			res.MovimentosRecentes = append(res.MovimentosRecentes, MovementSummary{
				Data:      m.Data,
				Descricao: describeMovement(m, false),
				Grau:      m.Grau,
			})
		}
	}
	return res
}

// FallbackResult is the condensed outcome of a secondary-partition probe.
type FallbackResult struct {
	Found           bool
	Grau            string
	TotalMovimentos int
	UltimaMov       *MovementRef
}

// QueryFallback probes a secondary partition (the national labor
// appellate court) for cases the default partition does not index. All
// failures collapse to not-found: the probe is best-effort.
func (c *Client) QueryFallback(ctx context.Context, digits, court string) FallbackResult {
	resp, status, err := c.search(ctx, court, digits, 3, fallbackTimeout)
	if err != nil || status != http.StatusOK || len(resp.Hits.Hits) == 0 {
		return FallbackResult{}
	}
	src := resp.Hits.Hits[0].Source
	movs := src.Movimentos
	sort.SliceStable(movs, func(i, j int) bool {
		return movs[i].DataHora > movs[j].DataHora
	})
	res := FallbackResult{
		Found:           true,
		Grau:            src.Grau,
		TotalMovimentos: len(movs),
	}
	if len(movs) > 0 {
		res.UltimaMov = &MovementRef{
			Data:      FormatDate(movs[0].DataHora),
			Descricao: movs[0].Nome,
		}
	}
	return res
}

// search performs one _search POST against a partition.
func (c *Client) search(ctx context.Context, court, digits string, size int, timeout time.Duration) (*searchResponse, int, error) {
	body, err := json.Marshal(map[string]interface{}{
		"query": map[string]interface{}{
			"match": map[string]string{"numeroProcesso": digits},
		},
		"size": size,
	})
	if err != nil {
		return nil, 0, fmt.Errorf("datajud: marshal query: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	url := fmt.Sprintf("%s/api_publica_%s/_search", c.baseURL, court)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, 0, fmt.Errorf("datajud: build request: %w", err)
	}
	req.Header.Set("Authorization", "ApiKey "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("datajud: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("datajud: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, resp.StatusCode, nil
	}

	var sr searchResponse
	if err := json.Unmarshal(data, &sr); err != nil {
		return nil, 0, fmt.Errorf("datajud: parse response: %w", err)
	}
	return &sr, resp.StatusCode, nil
}

// describeMovement builds the human-readable description for a movement:
// the movement name, any tabulated complement values joined by comma and,
// when full is set and the movement is not first-instance, a degree
// suffix.
func describeMovement(m MovementDetail, full bool) string {
	desc := m.Nome
	var parts []string
	for _, ct := range m.Complementos {
		v := ct.Valor
		if full && v == "" {
			v = ct.Descricao
		}
		if v == "" {
			v = ct.Nome
		}
		if v != "" {
			parts = append(parts, v)
		}
	}
	if len(parts) > 0 {
		desc += " - " + strings.Join(parts, ", ")
	}
	if full && m.Grau != "" && m.Grau != "G1" {
		desc += fmt.Sprintf(" [%s]", m.Grau)
	}
	return desc
}

// FormatDate normalizes index timestamps to "YYYY-MM-DD". Accepts ISO
// datetimes and compact "YYYYMMDD..." forms; anything else is returned
// unchanged.
func FormatDate(iso string) string {
	if iso == "" {
		return ""
	}
	if i := strings.IndexByte(iso, 'T'); i >= 0 {
		return iso[:i]
	}
	if len(iso) >= 8 && !strings.Contains(iso, "-") {
		return iso[:4] + "-" + iso[4:6] + "-" + iso[6:8]
	}
	return iso
}
