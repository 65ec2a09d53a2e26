package updater

import (
	"context"
	"fmt"

	"github.com/brasslaw/vigia/internal/models"
)

// timestampFloor orders any real movement date after an absent one.
const timestampFloor = "1900-01-01"

// Summary is the count block of a movement-sync run.
type Summary struct {
	TotalProcessos int `json:"total_processos"`
	Encontrados    int `json:"encontrados"`
	NaoEncontrados int `json:"nao_encontrados"`
	Erros          int `json:"erros"`
	Atualizados    int `json:"atualizados_com_novas_movimentacoes"`
}

// UpdatedCase identifies a case whose movement date advanced in a run.
type UpdatedCase struct {
	ID               int              `json:"id"`
	Reclamante       string           `json:"reclamante"`
	NovaMovimentacao *models.Movement `json:"nova_movimentacao"`
}

// MovementResult is what a completed movement sync returns and what the
// dashboard shows as the last result.
type MovementResult struct {
	Success      bool          `json:"success"`
	DataExecucao string        `json:"data_execucao"`
	Fonte        string        `json:"fonte"`
	Resumo       Summary       `json:"resumo"`
	Atualizados  []UpdatedCase `json:"processos_atualizados"`
}

// fieldChange records one store field mutated by a run.
type fieldChange struct {
	Campo    string      `json:"campo"`
	Anterior interface{} `json:"anterior"`
	Novo     interface{} `json:"novo"`
}

// indexSnapshot is the per-case slice of the index response kept in the
// run report.
type indexSnapshot struct {
	TotalMovimentos    int                 `json:"totalMovimentos"`
	UltimaMovimentacao *models.Movement    `json:"ultimaMovimentacao"`
	UltimaAtualizacao  string              `json:"ultimaAtualizacaoDataJud"`
	MovimentosRecentes models.MovementList `json:"movimentosRecentes"`
}

// caseChange is one per-case entry of the run report.
type caseChange struct {
	ID         int           `json:"id"`
	Reclamante string        `json:"reclamante"`
	Numero     string        `json:"numero"`
	DataJud    indexSnapshot `json:"datajud"`
	Mudancas   []fieldChange `json:"mudancas"`
}

// movementReport is the dated report file written after a run.
type movementReport struct {
	DataExecucao string       `json:"data_execucao"`
	Fonte        string       `json:"fonte"`
	Resumo       Summary      `json:"resumo"`
	Detalhes     []caseChange `json:"detalhes"`
}

// RunMovementSync walks every case, queries the docket index (falling
// back to the superior labor court partition for unindexed cases),
// advances movement data that moved forward, and persists the mutated
// snapshot plus a dated report. Only one run may be in flight; a second
// trigger gets ErrRunning.
func (u *Updater) RunMovementSync(ctx context.Context, source string) (*MovementResult, error) {
	if !u.Movements.TryStart() {
		return nil, ErrRunning
	}
	defer u.Movements.Finish()
	st := u.Movements

	st.Logf("Iniciando atualização (fonte: %s)", source)

	snap, err := u.store.LoadSnapshot()
	if err != nil {
		st.Logf("ERRO FATAL: %v", err)
		return nil, fmt.Errorf("updater: movement sync: %w", err)
	}
	st.SetTotal(len(snap.Cases))

	if name, err := u.store.WriteBackup(snap); err != nil {
		st.Logf("Backup falhou: %v", err)
	} else {
		st.Logf("Backup: %s", name)
	}

	var found, notFound, errCount, updated int
	var changes []caseChange

	for i := range snap.Cases {
		p := &snap.Cases[i]
		st.Step(i+1, p.Reclamante)

		if !p.Queryable() {
			errCount++
			st.Logf("#%d %s -> NUMERO INVALIDO", p.ID, p.Reclamante)
		} else {
			res := u.index.Query(ctx, p.NumeroLimpo(), u.court)
			switch {
			case res.Found:
				found++
				change := caseChange{
					ID:         p.ID,
					Reclamante: p.Reclamante,
					Numero:     p.Numero,
					DataJud: indexSnapshot{
						TotalMovimentos:    res.TotalMovimentos,
						UltimaAtualizacao:  res.UltimaAtualizacao,
						MovimentosRecentes: toMovementList(res.MovimentosRecentes),
					},
				}
				if res.UltimaMovimentacao != nil && res.UltimaMovimentacao.Data != "" {
					newMov := &models.Movement{
						Data:      res.UltimaMovimentacao.Data,
						Descricao: res.UltimaMovimentacao.Descricao,
					}
					change.DataJud.UltimaMovimentacao = newMov
					current := timestampFloor
					if p.UltimaMovimentacao != nil && p.UltimaMovimentacao.Data != "" {
						current = p.UltimaMovimentacao.Data
					}
					if newMov.Data > current {
						change.Mudancas = append(change.Mudancas, fieldChange{
							Campo:    "ultima_movimentacao",
							Anterior: p.UltimaMovimentacao,
							Novo:     newMov,
						})
						p.UltimaMovimentacaoDataJud = newMov
						updated++
						st.Logf("#%d %s -> ATUALIZADO: %s", p.ID, p.Reclamante, newMov.Data)
					} else {
						st.Logf("#%d %s -> OK (%d movs)", p.ID, p.Reclamante, res.TotalMovimentos)
					}
				}
				p.DataJudUltimaVerificacao = u.nowISO()
				p.DataJudTotalMovimentos = res.TotalMovimentos
				p.DataJudMovimentosRecentes = toMovementList(res.MovimentosRecentes)
				changes = append(changes, change)
			case res.Err != "":
				errCount++
				st.Logf("#%d %s -> ERRO: %s", p.ID, p.Reclamante, res.Err)
			default:
				fb := u.index.QueryFallback(ctx, p.NumeroLimpo(), u.fallbackCourt)
				if fb.Found {
					found++
					p.DataJudUltimaVerificacao = u.nowISO()
					p.DataJudTST = true
					st.Logf("#%d %s -> TST (%d movs)", p.ID, p.Reclamante, fb.TotalMovimentos)
				} else {
					notFound++
					st.Logf("#%d %s -> NAO ENCONTRADO", p.ID, p.Reclamante)
				}
			}
		}

		// Uniform cadence toward the external API, skipped cases
		// included.
		if i < len(snap.Cases)-1 {
			if err := u.sleep(ctx, u.delay); err != nil {
				st.Logf("ERRO FATAL: %v", err)
				return nil, fmt.Errorf("updater: movement sync: %w", err)
			}
		}
	}

	now := u.nowISO()
	snap.Meta.UltimaAtualizacaoDataJud = now
	snap.Meta.EncontradosDataJud = found
	snap.Meta.NaoEncontradosDataJud = notFound
	if err := u.store.SaveSnapshot(snap); err != nil {
		st.Logf("ERRO FATAL: %v", err)
		return nil, fmt.Errorf("updater: movement sync: %w", err)
	}

	summary := Summary{
		TotalProcessos: len(snap.Cases),
		Encontrados:    found,
		NaoEncontrados: notFound,
		Erros:          errCount,
		Atualizados:    updated,
	}
	if _, err := u.store.WriteReport(movementReport{
		DataExecucao: now,
		Fonte:        source,
		Resumo:       summary,
		Detalhes:     changes,
	}); err != nil {
		st.Logf("Relatorio falhou: %v", err)
	}

	result := &MovementResult{Success: true, DataExecucao: now, Fonte: source, Resumo: summary}
	for _, c := range changes {
		if len(c.Mudancas) > 0 {
			result.Atualizados = append(result.Atualizados, UpdatedCase{
				ID:               c.ID,
				Reclamante:       c.Reclamante,
				NovaMovimentacao: c.DataJud.UltimaMovimentacao,
			})
		}
	}
	st.SetResult(result, now)
	st.Logf("Concluido: %d encontrados, %d atualizados, %d nao encontrados, %d erros", found, updated, notFound, errCount)
	u.notify(ctx, fmt.Sprintf("Sincronizacao DataJud (%s): %d encontrados, %d atualizados, %d nao encontrados, %d erros",
		source, found, updated, notFound, errCount))
	return result, nil
}
