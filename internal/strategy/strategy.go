// Package strategy derives the recommended action, urgency color,
// defensive notes and deadline estimate for a tracked case. Everything
// here is a pure function of the stored case plus its most recent
// cached communication, cheap enough to run on every read.
package strategy

import (
	"strings"
	"time"

	"github.com/brasslaw/vigia/internal/comunica"
	"github.com/brasslaw/vigia/internal/models"
)

// Urgency colors on the wire.
const (
	ColorRed    = "vermelho"
	ColorOrange = "laranja"
	ColorBlue   = "azul"
	ColorGreen  = "verde"
	ColorGray   = "cinza"
)

// DeadlineKind tags what the deadline value means.
type DeadlineKind int

const (
	// DeadlineNone means no deadline could be derived.
	DeadlineNone DeadlineKind = iota
	// DeadlineManualCheck means a deadline likely exists but must be
	// looked up in the latest intimation by hand.
	DeadlineManualCheck
	// DeadlineDate is a firm date (hearing, or computed from a
	// communication's explicit deadline).
	DeadlineDate
	// DeadlineEstimate is a heuristic date inferred from the latest
	// movement's description.
	DeadlineEstimate
)

// manualCheckSentinel is the historical wire rendering of
// DeadlineManualCheck.
const manualCheckSentinel = "Verificar intimacao"

// Deadline is a derived deadline with its human-readable alert.
type Deadline struct {
	Kind  DeadlineKind
	Date  string // ISO date, set for Date and Estimate
	Alert string
}

// Wire renders the deadline in the dashboard's historical shape: an ISO
// date, the manual-check sentinel, or nil.
func (d Deadline) Wire() interface{} {
	switch d.Kind {
	case DeadlineDate, DeadlineEstimate:
		return d.Date
	case DeadlineManualCheck:
		return manualCheckSentinel
	default:
		return nil
	}
}

// Result is the derived advisory view of one case.
type Result struct {
	Action   string
	Color    string
	Deadline Deadline
	Notes    []string
	// ComunicaMaisRecente is set when the communications feed has seen
	// something newer than the movement index.
	ComunicaMaisRecente bool
}

// Derive computes the advisory view. latest is the case's most recent
// cached communication, nil when none is cached.
func Derive(c *models.Case, latest *models.Communication) Result {
	fase := strings.ToLower(c.Fase)
	prioridade := strings.ToLower(c.Prioridade)

	var r Result
	r.Action, r.Color = action(c, fase, prioridade)
	r.Deadline = deadline(c, fase)
	r.Notes = notes(c, fase)

	// A real-time communication carrying a deadline beats every
	// heuristic above.
	if latest != nil && latest.Parsed.PrazoDias != nil && latest.Data != "" {
		if real := comunica.FinalDeadline(latest.Data, latest.Parsed.PrazoDias); real != "" {
			r.Deadline = Deadline{
				Kind:  DeadlineDate,
				Date:  real,
				Alert: "TEMPO REAL (Comunica PJe): " + latest.Parsed.PrazoDescricao + " | Publicado: " + latest.Data,
			}
			if latest.Parsed.Urgente {
				r.Color = ColorRed
				r.Action = latest.Parsed.TipoDecisao + " - PRAZO: " + real
			}
		}
	}

	if latest != nil && latest.Data != "" {
		if mov := LatestIndexMovement(c); mov != nil && mov.Data != "" && latest.Data > mov.Data {
			r.ComunicaMaisRecente = true
		}
	}

	return r
}

// action picks the recommended action and color. First match wins; the
// ordering is deliberate, a hearing outranks everything.
func action(c *models.Case, fase, prioridade string) (string, string) {
	switch {
	case c.ProximaAudiencia != nil:
		return "AUDIENCIA AGENDADA: " + c.ProximaAudiencia.Data, ColorRed
	case strings.Contains(fase, "execu"):
		return "EM EXECUCAO - Verificar prazos e bloqueios", ColorRed
	case c.DesconsideracaoPJBurlington || c.DesconsideracaoPJFRRamos:
		return "DESC. PJ ATIVA - Monitorar bloqueios patrimoniais", ColorRed
	case c.PedidoBloqueioContaPJ || c.PedidoBloqueioContaSocios:
		return "RISCO BLOQUEIO BANCARIO - Negociar preventivamente", ColorRed
	case c.BurlingtonRevel:
		return "REVEL - Avaliar acao rescisoria", ColorRed
	case strings.Contains(prioridade, "crit") || strings.Contains(prioridade, "maxim") || strings.Contains(prioridade, "urgent"):
		return orDefault(c.AcaoSugerida, "PRIORIDADE CRITICA - Acao imediata necessaria"), ColorRed
	case strings.Contains(prioridade, "alta"):
		return orDefault(c.AcaoSugerida, "PRIORIDADE ALTA - Monitorar semanalmente"), ColorOrange
	case strings.Contains(fase, "recurso") || strings.Contains(fase, "agravo"):
		return "Aguardar julgamento do recurso", ColorBlue
	case c.CausaGanhaBurlington:
		return "Causa GANHA - Monitorar transitado em julgado", ColorGreen
	case c.ExtintoInerciaReclamante:
		return "EXTINTO por inercia do reclamante", ColorGreen
	case strings.Contains(fase, "acordo"):
		return "Em ACORDO - Monitorar pagamento/cumprimento", ColorBlue
	default:
		return orDefault(c.AcaoSugerida, "Acompanhar movimentacoes"), ColorGray
	}
}

// deadline derives the deadline estimate from the case alone. The
// real-time override in Derive may replace it.
func deadline(c *models.Case, fase string) Deadline {
	if c.ProximaAudiencia != nil {
		return Deadline{
			Kind:  DeadlineDate,
			Date:  c.ProximaAudiencia.Data,
			Alert: "AUDIENCIA em " + c.ProximaAudiencia.Data,
		}
	}
	if strings.Contains(fase, "execu") {
		return Deadline{
			Kind:  DeadlineManualCheck,
			Alert: "Em execucao - verificar se ha intimacao pendente para pagamento (48h apos intimacao via SISBAJUD)",
		}
	}
	mov := LatestIndexMovement(c)
	if mov == nil || mov.Data == "" {
		return Deadline{}
	}
	desc := strings.ToLower(mov.Descricao)
	switch {
	case strings.Contains(desc, "intimacao") || strings.Contains(desc, "publicacao") || strings.Contains(desc, "diario"):
		if d := addDays(mov.Data, 8); d != "" {
			return Deadline{
				Kind:  DeadlineEstimate,
				Date:  d,
				Alert: "Prazo estimado: ~8 dias uteis apos publicacao em " + mov.Data,
			}
		}
	case strings.Contains(desc, "sentenca") || strings.Contains(desc, "decisao"):
		if d := addDays(mov.Data, 8); d != "" {
			return Deadline{
				Kind:  DeadlineEstimate,
				Date:  d,
				Alert: "Prazo para recurso: ~8 dias uteis apos intimacao da sentenca",
			}
		}
	case strings.Contains(desc, "despacho"):
		return Deadline{Alert: "Verificar teor do despacho - pode conter prazo para cumprimento"}
	}
	return Deadline{}
}

// LatestIndexMovement returns the freshest movement the index reported:
// the tracked latest when present, otherwise the head of the recent
// list.
func LatestIndexMovement(c *models.Case) *models.Movement {
	if c.UltimaMovimentacaoDataJud != nil {
		return c.UltimaMovimentacaoDataJud
	}
	if len(c.DataJudMovimentosRecentes) > 0 {
		m := c.DataJudMovimentosRecentes[0]
		return &models.Movement{Data: m.Data, Descricao: m.Descricao}
	}
	return nil
}

func orDefault(s, def string) string {
	if s != "" {
		return s
	}
	return def
}

func addDays(iso string, days int) string {
	if len(iso) > 10 {
		iso = iso[:10]
	}
	d, err := time.Parse("2006-01-02", iso)
	if err != nil {
		return ""
	}
	return d.AddDate(0, 0, days).Format("2006-01-02")
}
