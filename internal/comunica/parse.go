package comunica

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/brasslaw/vigia/internal/models"
)

var (
	prazoRe = regexp.MustCompile(`(?i)prazo de (\d+) dias?`)
	tagRe   = regexp.MustCompile(`<[^>]*>`)
	wsRe    = regexp.MustCompile(`\s+`)
)

// excerptLimit caps the cleaned body of the excerpt. Name-mention markers
// are prepended on top of this budget.
const excerptLimit = 300

// Parser extracts structured signals from raw intimation text.
type Parser struct {
	watchNames []string
}

// NewParser creates a Parser that flags mentions of the given proper
// names (checked upper-cased, in order).
func NewParser(watchNames []string) *Parser {
	return &Parser{watchNames: watchNames}
}

// Parse maps raw communication text to its structured reading. The rules
// run in a fixed order: each one only sets the decision type if no
// earlier rule did, urgency accumulates, and later deadline rules
// overwrite earlier ones. Reordering them changes results on texts that
// match more than one rule.
func (p *Parser) Parse(texto string) models.ParsedIntimation {
	var info models.ParsedIntimation
	if texto == "" {
		return info
	}
	t := strings.ToUpper(texto)

	if strings.Contains(t, "DESCONSIDERAÇÃO DA PERSONALIDADE") {
		info.TipoDecisao = "INCIDENTE DESCONSIDERACAO PJ"
		info.Urgente = true
		info.PrazoDias = intPtr(15)
		info.PrazoDescricao = "15 dias para defesa do incidente de desconsideracao"
	}
	if strings.Contains(t, "AUDIÊNCIA") || strings.Contains(t, "AUDIENCIA") {
		if info.TipoDecisao != "" {
			info.TipoDecisao += " + AUDIENCIA"
		} else {
			info.TipoDecisao = "AUDIENCIA DESIGNADA"
		}
		info.Urgente = true
	}
	if strings.Contains(t, "BLOQUEIO") || strings.Contains(t, "SISBAJUD") || strings.Contains(t, "BACENJUD") {
		if info.TipoDecisao == "" {
			info.TipoDecisao = "BLOQUEIO BANCARIO"
		}
		info.Urgente = true
	}
	if strings.Contains(t, "PENHORA") {
		if info.TipoDecisao == "" {
			info.TipoDecisao = "PENHORA"
		}
		info.Urgente = true
	}
	if strings.Contains(t, "SENTENÇA") || strings.Contains(t, "SENTENCA") {
		if info.TipoDecisao == "" {
			info.TipoDecisao = "SENTENCA"
		}
		info.PrazoDias = intPtr(8)
		info.PrazoDescricao = "8 dias uteis para recurso ordinario"
	}
	if strings.Contains(t, "ACÓRDÃO") || strings.Contains(t, "ACORDAO") {
		if info.TipoDecisao == "" {
			info.TipoDecisao = "ACORDAO"
		}
		info.PrazoDias = intPtr(8)
		info.PrazoDescricao = "8 dias uteis para recurso de revista"
	}
	if strings.Contains(t, "DESPACHO") {
		if info.TipoDecisao == "" {
			info.TipoDecisao = "DESPACHO"
		}
	}

	// An explicit deadline in the text beats every rule above.
	if m := prazoRe.FindStringSubmatch(texto); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			info.PrazoDias = intPtr(n)
			info.PrazoDescricao = m[1] + " dias conforme determinacao judicial"
		}
	}

	var markers strings.Builder
	for _, name := range p.watchNames {
		if strings.Contains(t, strings.ToUpper(name)) {
			fmt.Fprintf(&markers, "[MENCIONA %s] ", strings.ToUpper(name))
		}
	}
	info.ConteudoResumido = markers.String() + excerpt(texto)

	return info
}

// excerpt strips HTML tags, collapses whitespace and truncates to the
// excerpt budget.
func excerpt(texto string) string {
	s := tagRe.ReplaceAllString(texto, " ")
	s = strings.TrimSpace(wsRe.ReplaceAllString(s, " "))
	r := []rune(s)
	if len(r) > excerptLimit {
		r = r[:excerptLimit]
	}
	return string(r)
}

func intPtr(n int) *int {
	return &n
}
