package strategy

import (
	"strings"

	"github.com/brasslaw/vigia/internal/models"
)

// noteRule maps one case condition to its fixed advisory text. The
// table runs in order; every matching rule contributes.
type noteRule struct {
	match func(c *models.Case, fase string) bool
	note  string
}

// assetProtectionNote closes every strategy list.
const assetProtectionNote = "PROTECAO PATRIMONIAL: Imoveis residenciais de Raphael e Fernanda sao protegidos como bem de familia (Lei 8.009/90). Veiculos de uso pessoal/trabalho podem ser arguidos como impenhoraveis. Manter planejamento patrimonial preventivo."

var noteRules = []noteRule{
	{func(c *models.Case, _ string) bool { return c.DesconsideracaoPJBurlington },
		"URGENTE: Desconsideracao PJ Burlington deferida. Patrimonio pessoal de Raphael e Brassplate em risco direto. Avaliar Agravo de Peticao imediatamente. Verificar se imoveis estao protegidos por bem de familia."},
	{func(c *models.Case, _ string) bool { return c.DesconsideracaoPJFRRamos },
		"URGENTE: Desconsideracao PJ FRRamos deferida. Patrimonio pessoal de Fernanda em risco. Interpor recurso imediato. Verificar regime de bens e protecao patrimonial."},
	{func(c *models.Case, _ string) bool { return c.PedidoBloqueioContaPJ },
		"BLOQUEIO PJ: Risco SISBAJUD. Manter saldo minimo nas contas PJ. Considerar deposito judicial para evitar constricao."},
	{func(c *models.Case, _ string) bool { return c.PedidoBloqueioContaSocios },
		"BLOQUEIO SOCIOS: Risco de bloqueio nas contas pessoais de Raphael e Fernanda via SISBAJUD. Antecipar defesa."},
	{func(c *models.Case, _ string) bool { return c.PedidoAutomovel },
		"PENHORA VEICULO: Arguir impenhorabilidade - ferramenta de trabalho (art. 833, V CPC) ou bem de familia."},
	{func(c *models.Case, _ string) bool { return c.PedidoImovelBurlington },
		"PENHORA IMOVEL BURLINGTON: Arguir bem de familia (Lei 8.009/90). Se for sede, arguir impenhorabilidade."},
	{func(c *models.Case, _ string) bool { return c.PedidoImovelFRRamos },
		"PENHORA IMOVEL FRRAMOS: Arguir bem de familia de Fernanda (Lei 8.009/90). Entidade familiar protegida."},
	{func(c *models.Case, _ string) bool { return c.BurlingtonRevel },
		"REVELIA: Burlington REVEL - confissao ficta. Avaliar acao rescisoria (art. 966 CPC) se sentenca transitou. Verificar se houve vicio de citacao."},
	{func(c *models.Case, _ string) bool { return c.GrupoEconomicoReconhecido },
		"GRUPO ECONOMICO: Reconhecido - todas as empresas respondem solidariamente. Focar em demonstrar autonomia entre Burlington e FRRamos."},
	{func(_ *models.Case, fase string) bool { return strings.Contains(fase, "execu") },
		"EXECUCAO: Fase critica. Opcoes: (1) Parcelamento art. 916 CPC, (2) Excepcao de pre-executividade para valores indevidos, (3) Embargos a execucao para discutir calculos, (4) Acordo parcelado."},
	{func(c *models.Case, _ string) bool { return c.ProximaAudiencia != nil },
		"AUDIENCIA PROXIMA: Preparar carta de preposicao, documentos e testemunhas. Verificar tipo (conciliacao/instrucao) e adaptar estrategia."},
	{func(c *models.Case, _ string) bool { return c.CausaGanhaBurlington },
		"POSITIVO: Causa ganha para Burlington. Monitorar transito em julgado."},
	{func(c *models.Case, _ string) bool { return c.CausaGanhaFRRamos },
		"POSITIVO: FRRamos com causa ganha/excluida. Manter monitorizacao."},
	{func(c *models.Case, _ string) bool { return c.ExtintoInerciaReclamante },
		"FAVORAVEL: Extinto por inercia do reclamante. Arquivamento definitivo."},
}

// notes builds the full strategy list for one case.
func notes(c *models.Case, fase string) []string {
	var out []string
	for _, r := range noteRules {
		if r.match(c, fase) {
			out = append(out, r.note)
		}
	}
	if len(out) == 0 {
		risco := strings.ToLower(c.Risco)
		if strings.Contains(risco, "crit") || strings.Contains(risco, "alt") {
			out = append(out, "Risco "+c.Risco+": Monitorar semanalmente. Priorizar defesa tecnica. Considerar negociacao se valor for viavel para parcelamento.")
		} else {
			out = append(out, "Acompanhar prazos processuais. Manter defesa em dia. Sem riscos patrimoniais imediatos identificados.")
		}
	}
	return append(out, assetProtectionNote)
}

// TopNotes is the list-view cut of a strategy list: the first two
// entries, each capped at 120 characters.
func TopNotes(all []string) []string {
	out := make([]string, 0, 2)
	for _, s := range all {
		if len(out) == 2 {
			break
		}
		r := []rune(s)
		if len(r) > 120 {
			r = r[:120]
		}
		out = append(out, string(r))
	}
	return out
}
