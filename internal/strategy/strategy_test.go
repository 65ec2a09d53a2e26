package strategy

import (
	"strings"
	"testing"

	"github.com/brasslaw/vigia/internal/models"
)

func intPtr(n int) *int { return &n }

func TestDeriveExecutionPhase(t *testing.T) {
	c := &models.Case{ID: 7, Reclamante: "JOSE", Fase: "Execução"}
	r := Derive(c, nil)

	if r.Action != "EM EXECUCAO - Verificar prazos e bloqueios" {
		t.Errorf("Action = %q", r.Action)
	}
	if r.Color != ColorRed {
		t.Errorf("Color = %q, want %q", r.Color, ColorRed)
	}
	if r.Deadline.Kind != DeadlineManualCheck {
		t.Errorf("Deadline.Kind = %v, want DeadlineManualCheck", r.Deadline.Kind)
	}
	if got := r.Deadline.Wire(); got != "Verificar intimacao" {
		t.Errorf("Deadline.Wire() = %v", got)
	}
	if !strings.Contains(r.Deadline.Alert, "48h") {
		t.Errorf("Deadline.Alert = %q", r.Deadline.Alert)
	}
}

func TestDeriveHearingOutranksEverything(t *testing.T) {
	c := &models.Case{
		Fase:                        "Execução",
		DesconsideracaoPJBurlington: true,
		BurlingtonRevel:             true,
		ProximaAudiencia:            &models.Hearing{Data: "2024-04-10", Tipo: "instrucao"},
	}
	r := Derive(c, nil)

	if !strings.HasPrefix(r.Action, "AUDIENCIA AGENDADA") {
		t.Errorf("Action = %q, want AUDIENCIA AGENDADA prefix", r.Action)
	}
	if r.Color != ColorRed {
		t.Errorf("Color = %q", r.Color)
	}
	if r.Deadline.Kind != DeadlineDate || r.Deadline.Date != "2024-04-10" {
		t.Errorf("Deadline = %+v", r.Deadline)
	}
}

func TestDeriveActionChain(t *testing.T) {
	tests := []struct {
		name       string
		c          models.Case
		wantAction string
		wantColor  string
	}{
		{"veil piercing", models.Case{DesconsideracaoPJFRRamos: true},
			"DESC. PJ ATIVA - Monitorar bloqueios patrimoniais", ColorRed},
		{"freeze request", models.Case{PedidoBloqueioContaSocios: true},
			"RISCO BLOQUEIO BANCARIO - Negociar preventivamente", ColorRed},
		{"default judgment", models.Case{BurlingtonRevel: true},
			"REVEL - Avaliar acao rescisoria", ColorRed},
		{"critical priority default text", models.Case{Prioridade: "CRITICA"},
			"PRIORIDADE CRITICA - Acao imediata necessaria", ColorRed},
		{"critical priority stored action", models.Case{Prioridade: "Maxima", AcaoSugerida: "Pagar acordo"},
			"Pagar acordo", ColorRed},
		{"high priority", models.Case{Prioridade: "Alta"},
			"PRIORIDADE ALTA - Monitorar semanalmente", ColorOrange},
		{"appeal phase", models.Case{Fase: "Recurso Ordinário"},
			"Aguardar julgamento do recurso", ColorBlue},
		{"won", models.Case{CausaGanhaBurlington: true},
			"Causa GANHA - Monitorar transitado em julgado", ColorGreen},
		{"extinct", models.Case{ExtintoInerciaReclamante: true},
			"EXTINTO por inercia do reclamante", ColorGreen},
		{"settlement", models.Case{Fase: "Acordo homologado"},
			"Em ACORDO - Monitorar pagamento/cumprimento", ColorBlue},
		{"default", models.Case{},
			"Acompanhar movimentacoes", ColorGray},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Derive(&tt.c, nil)
			if r.Action != tt.wantAction {
				t.Errorf("Action = %q, want %q", r.Action, tt.wantAction)
			}
			if r.Color != tt.wantColor {
				t.Errorf("Color = %q, want %q", r.Color, tt.wantColor)
			}
		})
	}
}

func TestDeriveDeadlineFromMovement(t *testing.T) {
	c := &models.Case{
		UltimaMovimentacaoDataJud: &models.Movement{Data: "2024-03-01", Descricao: "Publicacao de sentenca no diario"},
	}
	r := Derive(c, nil)
	// "diario" matches the publication branch.
	if r.Deadline.Kind != DeadlineEstimate || r.Deadline.Date != "2024-03-09" {
		t.Errorf("Deadline = %+v", r.Deadline)
	}

	c = &models.Case{
		UltimaMovimentacaoDataJud: &models.Movement{Data: "2024-03-01", Descricao: "Sentenca proferida"},
	}
	r = Derive(c, nil)
	if r.Deadline.Kind != DeadlineEstimate || r.Deadline.Date != "2024-03-09" {
		t.Errorf("Deadline = %+v", r.Deadline)
	}
	if !strings.Contains(r.Deadline.Alert, "recurso") {
		t.Errorf("Alert = %q", r.Deadline.Alert)
	}

	c = &models.Case{
		UltimaMovimentacaoDataJud: &models.Movement{Data: "2024-03-01", Descricao: "Despacho"},
	}
	r = Derive(c, nil)
	if r.Deadline.Kind != DeadlineNone || r.Deadline.Alert == "" {
		t.Errorf("Deadline = %+v, want alert without date", r.Deadline)
	}
	if r.Deadline.Wire() != nil {
		t.Errorf("Wire() = %v, want nil", r.Deadline.Wire())
	}
}

func TestDeriveFallsBackToRecentList(t *testing.T) {
	c := &models.Case{
		DataJudMovimentosRecentes: models.MovementList{
			{Data: "2024-03-01", Descricao: "Intimacao da parte", Grau: "G1"},
		},
	}
	r := Derive(c, nil)
	if r.Deadline.Kind != DeadlineEstimate || r.Deadline.Date != "2024-03-09" {
		t.Errorf("Deadline = %+v", r.Deadline)
	}
}

func TestDeriveRealTimeOverride(t *testing.T) {
	c := &models.Case{Fase: "Conhecimento"}
	latest := &models.Communication{
		Data: "2024-03-01",
		Parsed: models.ParsedIntimation{
			TipoDecisao:    "SENTENCA",
			PrazoDias:      intPtr(8),
			PrazoDescricao: "8 dias uteis para recurso ordinario",
			Urgente:        false,
		},
	}
	r := Derive(c, latest)
	if r.Deadline.Kind != DeadlineDate || r.Deadline.Date != "2024-03-13" {
		t.Errorf("Deadline = %+v", r.Deadline)
	}
	if !strings.HasPrefix(r.Deadline.Alert, "TEMPO REAL (Comunica PJe):") {
		t.Errorf("Alert = %q", r.Deadline.Alert)
	}
	// Not urgent: action untouched.
	if r.Action != "Acompanhar movimentacoes" {
		t.Errorf("Action = %q", r.Action)
	}

	latest.Parsed.Urgente = true
	r = Derive(c, latest)
	if r.Color != ColorRed {
		t.Errorf("Color = %q, want red for urgent real-time deadline", r.Color)
	}
	if r.Action != "SENTENCA - PRAZO: 2024-03-13" {
		t.Errorf("Action = %q", r.Action)
	}
}

func TestDeriveComunicaMaisRecente(t *testing.T) {
	c := &models.Case{
		UltimaMovimentacaoDataJud: &models.Movement{Data: "2024-02-01", Descricao: "Conclusos"},
	}
	latest := &models.Communication{Data: "2024-03-01"}
	if r := Derive(c, latest); !r.ComunicaMaisRecente {
		t.Error("ComunicaMaisRecente = false, want true for newer communication")
	}

	latest.Data = "2024-01-01"
	if r := Derive(c, latest); r.ComunicaMaisRecente {
		t.Error("ComunicaMaisRecente = true for older communication")
	}
}
