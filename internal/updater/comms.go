package updater

import (
	"context"
	"fmt"
	"strings"

	"github.com/brasslaw/vigia/internal/comunica"
	"github.com/brasslaw/vigia/internal/models"
)

// ComunicaResult is what a completed communications sync returns.
type ComunicaResult struct {
	Found     int    `json:"found"`
	Total     int    `json:"total"`
	Timestamp string `json:"timestamp"`
}

// RunComunicaSync queries the communications feed for every case with a
// usable number. A response with communications replaces the case's
// cache entry entirely; an empty or failed response only advances the
// verification timestamp (creating an empty placeholder for cases never
// seen before). Guarded independently from the movement sync.
func (u *Updater) RunComunicaSync(ctx context.Context, source string) (*ComunicaResult, error) {
	if !u.Comms.TryStart() {
		return nil, ErrRunning
	}
	defer u.Comms.Finish()
	st := u.Comms

	st.Logf("Iniciando consulta tempo real (%s)...", source)

	snap, err := u.store.LoadSnapshot()
	if err != nil {
		st.Logf("ERRO FATAL: %v", err)
		return nil, fmt.Errorf("updater: comunica sync: %w", err)
	}
	st.SetTotal(len(snap.Cases))

	var found, total int
	var urgentes []string
	for i := range snap.Cases {
		p := &snap.Cases[i]
		st.Step(i+1, p.Reclamante)
		if !p.Queryable() {
			continue
		}
		total++

		res := u.feed.Query(ctx, p.NumeroLimpo())
		entry := models.CommEntry{
			CaseID:            p.ID,
			Numero:            p.Numero,
			Reclamante:        p.Reclamante,
			UltimaVerificacao: u.nowISO(),
		}
		if res.Success && res.Count > 0 {
			found++
			entry.TotalComunicacoes = res.Count
			comms := make([]models.Communication, 0, len(res.Items))
			urgent := false
			for _, it := range res.Items {
				cm := u.toCommunication(it)
				urgent = urgent || cm.Parsed.Urgente
				comms = append(comms, cm)
			}
			if urgent {
				urgentes = append(urgentes, p.Reclamante)
			}
			if err := u.store.ReplaceComms(entry, comms); err != nil {
				st.Logf("#%d %s -> ERRO: %v", p.ID, p.Reclamante, err)
			}
		} else if err := u.store.TouchComms(entry); err != nil {
			st.Logf("#%d %s -> ERRO: %v", p.ID, p.Reclamante, err)
		}

		if i < len(snap.Cases)-1 {
			if err := u.sleep(ctx, u.feedDelay); err != nil {
				st.Logf("ERRO FATAL: %v", err)
				return nil, fmt.Errorf("updater: comunica sync: %w", err)
			}
		}
	}

	now := u.nowISO()
	st.Logf("Concluido: %d/%d com comunicacoes", found, total)
	result := &ComunicaResult{Found: found, Total: total, Timestamp: now}
	st.SetResult(result, now)
	if len(urgentes) > 0 {
		u.notify(ctx, fmt.Sprintf("Comunica PJe (%s): intimacoes urgentes para %s", source, strings.Join(urgentes, ", ")))
	}
	return result, nil
}

// toCommunication normalizes one raw feed item, parsing its text.
func (u *Updater) toCommunication(it comunica.Item) models.Communication {
	var dest models.StringList
	for _, d := range it.Destinatarios {
		dest = append(dest, d.Nome)
	}
	var advs models.StringList
	for _, a := range it.DestinatarioAdvogados {
		advs = append(advs, a.OAB())
	}
	return models.Communication{
		FeedID:        it.ID,
		Data:          it.DataDisponibilizacao,
		Tipo:          it.TipoComunicacao,
		Orgao:         it.NomeOrgao,
		Tribunal:      it.SiglaTribunal,
		Meio:          it.Meio,
		Link:          it.Link,
		Destinatarios: dest,
		Advogados:     advs,
		Parsed:        u.parser.Parse(it.Texto),
		TextoCompleto: it.Texto,
	}
}
