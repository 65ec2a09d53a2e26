package updater

import (
	"context"
	"fmt"

	"github.com/brasslaw/vigia/internal/datajud"
	"github.com/brasslaw/vigia/internal/models"
)

// FullCase is the on-demand, uncached merge of everything the external
// systems currently hold for one case.
type FullCase struct {
	ID         int        `json:"id"`
	Reclamante string     `json:"reclamante"`
	Numero     string     `json:"numero"`
	DataJud    *FullIndex `json:"datajud"`
	TST        *FullTST   `json:"tst,omitempty"`
	Comunica   *FullFeed  `json:"comunica,omitempty"`
}

// FullIndex carries the complete pooled movement list from the docket
// index, not just the recent slice the store keeps.
type FullIndex struct {
	Found           bool                     `json:"found"`
	Erro            string                   `json:"erro,omitempty"`
	Tribunal        string                   `json:"tribunal,omitempty"`
	Grau            string                   `json:"grau,omitempty"`
	Classe          string                   `json:"classe,omitempty"`
	OrgaoJulgador   string                   `json:"orgao_julgador,omitempty"`
	DataAjuizamento string                   `json:"data_ajuizamento,omitempty"`
	TotalMovimentos int                      `json:"total_movimentos"`
	Movimentos      []datajud.MovementDetail `json:"movimentos"`
}

// FullTST is the superior-labor-court slice of the merge.
type FullTST struct {
	Grau               string               `json:"grau,omitempty"`
	TotalMovimentos    int                  `json:"total_movimentos"`
	UltimaMovimentacao *datajud.MovementRef `json:"ultima_movimentacao,omitempty"`
}

// FullFeed is the live communications slice of the merge.
type FullFeed struct {
	Count        int                    `json:"count"`
	Comunicacoes []models.Communication `json:"comunicacoes"`
}

// LiveComms queries the communications feed for one case right now,
// without touching the cache.
func (u *Updater) LiveComms(ctx context.Context, id int) (*FullFeed, error) {
	p, err := u.store.GetCase(id)
	if err != nil {
		return nil, err
	}
	res := u.feed.Query(ctx, p.NumeroLimpo())
	if !res.Success {
		return nil, fmt.Errorf("updater: comunica #%d: %s", id, res.Err)
	}
	fc := &FullFeed{Count: res.Count, Comunicacoes: []models.Communication{}}
	for _, it := range res.Items {
		fc.Comunicacoes = append(fc.Comunicacoes, u.toCommunication(it))
	}
	return fc, nil
}

// FetchFullCase queries the docket index, the superior-court partition
// and the communications feed for one case and merges the three live
// views. Three sequential external calls; callers should not poll it.
func (u *Updater) FetchFullCase(ctx context.Context, id int) (*FullCase, error) {
	p, err := u.store.GetCase(id)
	if err != nil {
		return nil, err
	}
	if !p.Queryable() {
		return nil, fmt.Errorf("updater: case #%d: numero invalido", id)
	}
	digits := p.NumeroLimpo()

	full := &FullCase{ID: p.ID, Reclamante: p.Reclamante, Numero: p.Numero}

	idx := u.index.Query(ctx, digits, u.court)
	full.DataJud = &FullIndex{
		Found:           idx.Found,
		Erro:            idx.Err,
		Tribunal:        idx.Tribunal,
		Grau:            idx.Grau,
		Classe:          idx.Classe,
		OrgaoJulgador:   idx.OrgaoJulgador,
		DataAjuizamento: idx.DataAjuizamento,
		TotalMovimentos: idx.TotalMovimentos,
		Movimentos:      idx.Movimentos,
	}

	if tst := u.index.QueryFallback(ctx, digits, u.fallbackCourt); tst.Found {
		full.TST = &FullTST{
			Grau:               tst.Grau,
			TotalMovimentos:    tst.TotalMovimentos,
			UltimaMovimentacao: tst.UltimaMov,
		}
	}

	if feed := u.feed.Query(ctx, digits); feed.Success {
		fc := &FullFeed{Count: feed.Count, Comunicacoes: []models.Communication{}}
		for _, it := range feed.Items {
			fc.Comunicacoes = append(fc.Comunicacoes, u.toCommunication(it))
		}
		full.Comunica = fc
	}

	return full, nil
}
