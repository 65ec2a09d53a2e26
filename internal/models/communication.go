package models

// Communication is one court-published notice for a case, as returned by
// the Comunica PJe feed, with its parsed reading cached alongside.
type Communication struct {
	RowID  uint  `gorm:"primaryKey;autoIncrement" json:"-"`
	FeedID int64 `gorm:"index" json:"id"`
	CaseID int   `gorm:"index;not null" json:"-"`

	// Position preserves the feed's ordering (0 = most recent).
	Position int `json:"-"`

	Data          string           `gorm:"size:10" json:"data"`
	Tipo          string           `gorm:"size:64" json:"tipo"`
	Orgao         string           `gorm:"size:256" json:"orgao"`
	Tribunal      string           `gorm:"size:32" json:"tribunal"`
	Meio          string           `gorm:"size:64" json:"meio"`
	Link          string           `gorm:"size:512" json:"link"`
	Destinatarios StringList       `gorm:"type:json" json:"destinatarios"`
	Advogados     StringList       `gorm:"type:json" json:"advogados"`
	Parsed        ParsedIntimation `gorm:"type:json" json:"parsed"`
	TextoCompleto string           `gorm:"type:text" json:"texto_completo"`
}

func (Communication) TableName() string {
	return "comunicacoes"
}

// CommEntry is the per-case header of the communications cache. A row
// exists for every case that has been queried at least once, even when
// the feed returned nothing.
type CommEntry struct {
	CaseID             int    `gorm:"primaryKey" json:"-"`
	Numero             string `gorm:"size:64" json:"numero"`
	Reclamante         string `gorm:"size:128" json:"reclamante"`
	TotalComunicacoes  int    `json:"total_comunicacoes"`
	UltimaVerificacao  string `gorm:"size:40" json:"ultima_verificacao"`

	Comunicacoes []Communication `gorm:"-" json:"comunicacoes"`
}

func (CommEntry) TableName() string {
	return "comunica_cache"
}
