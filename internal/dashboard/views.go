package dashboard

import (
	"github.com/brasslaw/vigia/internal/models"
	"github.com/brasslaw/vigia/internal/strategy"
)

// CaseSummary is the per-case row of the /api/status payload: the stored
// case plus everything the strategy layer derives from it.
type CaseSummary struct {
	models.Case

	UltimaMovLocal   *models.Movement `json:"ultima_mov_local"`
	UltimaMovDataJud *models.Movement `json:"ultima_mov_datajud"`

	Acao        string      `json:"acao"`
	AcaoCor     string      `json:"acaoCor"`
	Estrategia  []string    `json:"estrategia"`
	Prazo       interface{} `json:"prazo"`
	PrazoAlerta string      `json:"prazoAlerta"`

	// Shadows the full stored text with the list-view excerpt.
	AcaoSugerida string `json:"acao_sugerida"`

	ComunicaTotal          int             `json:"comunica_total"`
	ComunicaUltima         *ComunicaUltima `json:"comunica_ultima"`
	ComunicaRecenteData    string          `json:"comunica_recente_data,omitempty"`
	ComunicaRecenteDecisao string          `json:"comunica_recente_decisao,omitempty"`
	ComunicaMaisRecente    bool            `json:"comunica_mais_recente,omitempty"`
}

// ComunicaUltima condenses the newest cached communication for list views.
type ComunicaUltima struct {
	Data      string `json:"data"`
	Tipo      string `json:"tipo"`
	Orgao     string `json:"orgao"`
	Decisao   string `json:"decisao"`
	Urgente   bool   `json:"urgente"`
	PrazoDias *int   `json:"prazo_dias"`
}

// Summarize merges one stored case with its cached communications into
// the list-view row. entry may be nil when the case was never checked
// against the communications feed.
func Summarize(p *models.Case, entry *models.CommEntry) CaseSummary {
	var latest *models.Communication
	if entry != nil && len(entry.Comunicacoes) > 0 {
		latest = &entry.Comunicacoes[0]
	}

	r := strategy.Derive(p, latest)

	s := CaseSummary{
		Case:                *p,
		UltimaMovLocal:      p.UltimaMovimentacao,
		UltimaMovDataJud:    strategy.LatestIndexMovement(p),
		Acao:                r.Action,
		AcaoCor:             r.Color,
		Estrategia:          strategy.TopNotes(r.Notes),
		Prazo:               r.Deadline.Wire(),
		PrazoAlerta:         r.Deadline.Alert,
		AcaoSugerida:        truncate(p.AcaoSugerida, 150),
		ComunicaMaisRecente: r.ComunicaMaisRecente,
	}
	if entry != nil {
		s.ComunicaTotal = entry.TotalComunicacoes
	}
	if latest != nil {
		s.ComunicaUltima = &ComunicaUltima{
			Data:      latest.Data,
			Tipo:      latest.Tipo,
			Orgao:     latest.Orgao,
			Decisao:   latest.Parsed.TipoDecisao,
			Urgente:   latest.Parsed.Urgente,
			PrazoDias: latest.Parsed.PrazoDias,
		}
		s.ComunicaRecenteData = latest.Data
		s.ComunicaRecenteDecisao = latest.Parsed.TipoDecisao
	}
	return s
}

// CaseDetail is the single-case payload: the full stored case, the full
// strategy note list and a page of cached communications.
type CaseDetail struct {
	models.Case

	Acao        string      `json:"acao"`
	AcaoCor     string      `json:"acaoCor"`
	Estrategia  []string    `json:"estrategia"`
	Prazo       interface{} `json:"prazo"`
	PrazoAlerta string      `json:"prazoAlerta"`

	Comunicacoes              []DetailComm `json:"comunicacoes"`
	ComunicaTotal             int          `json:"comunica_total"`
	ComunicaUltimaVerificacao string       `json:"comunica_ultima_verificacao,omitempty"`
}

// DetailComm is the trimmed communication shown on the case page.
type DetailComm struct {
	Data          string                  `json:"data"`
	Tipo          string                  `json:"tipo"`
	Orgao         string                  `json:"orgao"`
	Link          string                  `json:"link"`
	Parsed        models.ParsedIntimation `json:"parsed"`
	Destinatarios models.StringList       `json:"destinatarios"`
}

const detailCommLimit = 10

// Detail builds the single-case payload. entry may be nil.
func Detail(p *models.Case, entry *models.CommEntry) CaseDetail {
	var latest *models.Communication
	if entry != nil && len(entry.Comunicacoes) > 0 {
		latest = &entry.Comunicacoes[0]
	}

	r := strategy.Derive(p, latest)

	d := CaseDetail{
		Case:         *p,
		Acao:         r.Action,
		AcaoCor:      r.Color,
		Estrategia:   r.Notes,
		Prazo:        r.Deadline.Wire(),
		PrazoAlerta:  r.Deadline.Alert,
		Comunicacoes: []DetailComm{},
	}
	if entry != nil {
		d.ComunicaTotal = entry.TotalComunicacoes
		d.ComunicaUltimaVerificacao = entry.UltimaVerificacao
		for i := range entry.Comunicacoes {
			if i == detailCommLimit {
				break
			}
			cm := entry.Comunicacoes[i]
			d.Comunicacoes = append(d.Comunicacoes, DetailComm{
				Data:          cm.Data,
				Tipo:          cm.Tipo,
				Orgao:         cm.Orgao,
				Link:          cm.Link,
				Parsed:        cm.Parsed,
				Destinatarios: cm.Destinatarios,
			})
		}
	}
	return d
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
