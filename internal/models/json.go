package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// jsonValue marshals v for storage in a json column. nil-able pointers
// store SQL NULL so absent values round-trip as absent.
func jsonValue(v interface{}) (driver.Value, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("models: marshal json column: %w", err)
	}
	return string(data), nil
}

// jsonScan unmarshals a json column into dst, accepting string, []byte
// and NULL (left as zero value).
func jsonScan(src interface{}, dst interface{}) error {
	if src == nil {
		return nil
	}
	var data []byte
	switch s := src.(type) {
	case []byte:
		data = s
	case string:
		data = []byte(s)
	default:
		return fmt.Errorf("models: scan json column: unsupported type %T", src)
	}
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, dst)
}

// Movement is one docket entry reference: the date it happened and a
// human-readable description synthesized from the movement index.
type Movement struct {
	Data      string `json:"data"`
	Descricao string `json:"descricao"`
}

func (m Movement) Value() (driver.Value, error) { return jsonValue(m) }
func (m *Movement) Scan(src interface{}) error  { return jsonScan(src, m) }

// MovementSummary is one entry of the recent-movements list kept per case.
type MovementSummary struct {
	Data      string `json:"data"`
	Descricao string `json:"descricao"`
	Grau      string `json:"grau,omitempty"`
}

// MovementList stores the most recent movement summaries as one json column.
type MovementList []MovementSummary

func (l MovementList) Value() (driver.Value, error) { return jsonValue(l) }
func (l *MovementList) Scan(src interface{}) error  { return jsonScan(src, l) }

// Hearing is a scheduled court hearing. Only Data is required.
type Hearing struct {
	Data  string `json:"data"`
	Hora  string `json:"hora,omitempty"`
	Tipo  string `json:"tipo,omitempty"`
	Local string `json:"local,omitempty"`
	Link  string `json:"link,omitempty"`
}

func (h Hearing) Value() (driver.Value, error) { return jsonValue(h) }
func (h *Hearing) Scan(src interface{}) error  { return jsonScan(src, h) }

// StringList stores a list of strings as one json column.
type StringList []string

func (l StringList) Value() (driver.Value, error) { return jsonValue(l) }
func (l *StringList) Scan(src interface{}) error  { return jsonScan(src, l) }

// ParsedIntimation is the structured reading of a communication's text,
// computed once at ingestion and cached with the communication.
type ParsedIntimation struct {
	TipoDecisao      string `json:"tipo_decisao"`
	PrazoDias        *int   `json:"prazo_dias"`
	PrazoDescricao   string `json:"prazo_descricao"`
	ConteudoResumido string `json:"conteudo_resumido"`
	Urgente          bool   `json:"urgente"`
}

func (p ParsedIntimation) Value() (driver.Value, error) { return jsonValue(p) }
func (p *ParsedIntimation) Scan(src interface{}) error  { return jsonScan(src, p) }
