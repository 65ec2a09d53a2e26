// Package models defines the GORM models for the case store and the
// communications cache. JSON tags preserve the wire names the dashboard
// and the legacy data files use.
package models

import "strings"

// Case is one labor-court lawsuit being tracked for the defense.
type Case struct {
	ID             int    `gorm:"primaryKey" json:"id"`
	Reclamante     string `gorm:"size:128;not null" json:"reclamante"`
	Numero         string `gorm:"size:64;index" json:"numero"`
	Tipo           string `gorm:"size:64" json:"tipo"`
	Grau           string `gorm:"size:16" json:"grau"`
	AdvReclamante  string `gorm:"size:128" json:"advogado_reclamante"`
	Vara           string `gorm:"size:128" json:"vara"`
	Tribunal       string `gorm:"size:32" json:"tribunal"`
	Cidade         string `gorm:"size:64" json:"cidade"`
	DataAutuacao   string `gorm:"size:10" json:"data_autuacao"`
	Status         string `gorm:"size:64" json:"status"`
	Fase           string `gorm:"size:128" json:"fase"`
	Risco          string `gorm:"size:32" json:"risco"`
	Prioridade     string `gorm:"size:32" json:"prioridade"`
	AcaoSugerida   string `gorm:"type:text" json:"acao_sugerida"`

	ValorCausa           *float64 `json:"valor_causa"`
	ValorCondenacao      *float64 `json:"valor_condenacao"`
	ValorAcordo          *float64 `json:"valor_acordo"`
	ValorBloqueado       *float64 `json:"valor_bloqueado"`
	ValorLiquidoExecucao *float64 `json:"valor_liquido_execucao"`

	ResultadoBurlington string `gorm:"size:64" json:"resultado_burlington"`
	ResultadoFRRamos    string `gorm:"size:64" json:"resultado_frramos"`
	EnvolveFRRamos      bool   `json:"envolve_frramos"`
	FRRamosCondenada    bool   `json:"frramos_condenada"`
	DefesaAceita        bool   `json:"defesa_aceita"`

	GrupoEconomicoReconhecido   bool `json:"grupo_economico_reconhecido"`
	DesconsideracaoPJBurlington bool `json:"desconsideracao_pj_burlington"`
	DesconsideracaoPJFRRamos    bool `json:"desconsideracao_pj_frramos"`
	BurlingtonRevel             bool `json:"burlington_revel"`
	PedidoBloqueioContaPJ       bool `json:"pedido_bloqueio_conta_pj"`
	PedidoBloqueioContaSocios   bool `json:"pedido_bloqueio_conta_socios"`
	PedidoAutomovel             bool `json:"pedido_automovel"`
	PedidoImovelBurlington      bool `json:"pedido_imovel_burlington"`
	PedidoImovelFRRamos         bool `json:"pedido_imovel_frramos"`
	CausaGanhaBurlington        bool `json:"causa_ganha_burlington"`
	CausaGanhaFRRamos           bool `json:"causa_ganha_frramos"`
	ExtintoInerciaReclamante    bool `json:"extinto_inercia_reclamante"`

	ProximaAudiencia *Hearing `gorm:"type:json" json:"proxima_audiencia,omitempty"`

	// UltimaMovimentacao is the locally curated latest movement;
	// UltimaMovimentacaoDataJud mirrors what the movement index last
	// reported. The two advance independently.
	UltimaMovimentacao        *Movement `gorm:"type:json" json:"ultima_movimentacao,omitempty"`
	UltimaMovimentacaoDataJud *Movement `gorm:"type:json" json:"ultima_movimentacao_datajud,omitempty"`

	DataJudUltimaVerificacao  string       `gorm:"size:40" json:"datajud_ultima_verificacao,omitempty"`
	DataJudTotalMovimentos    int          `json:"datajud_total_movimentos"`
	DataJudMovimentosRecentes MovementList `gorm:"type:json" json:"datajud_movimentos_recentes,omitempty"`
	DataJudTST                bool         `json:"datajud_tst,omitempty"`
}

func (Case) TableName() string {
	return "processos"
}

// NumeroLimpo returns the digits-only case number used as the query key
// for both court APIs.
func (c *Case) NumeroLimpo() string {
	var b strings.Builder
	for _, r := range c.Numero {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Queryable reports whether the case number is usable against the
// external APIs. Numbers with fewer than 15 digits are not.
func (c *Case) Queryable() bool {
	return len(c.NumeroLimpo()) >= 15
}

// StoreMeta is the single-row store-level metadata document.
type StoreMeta struct {
	ID                       uint   `gorm:"primaryKey" json:"-"`
	UltimaAtualizacaoDataJud string `gorm:"size:40" json:"ultima_atualizacao_datajud"`
	EncontradosDataJud       int    `json:"processos_encontrados_datajud"`
	NaoEncontradosDataJud    int    `json:"processos_nao_encontrados_datajud"`
}

func (StoreMeta) TableName() string {
	return "store_meta"
}
