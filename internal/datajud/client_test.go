package datajud

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const twoHitResponse = `{
  "hits": {
    "hits": [
      {"_source": {
        "tribunal": "TRT2", "grau": "G1",
        "classe": {"nome": "Acao Trabalhista - Rito Ordinario"},
        "orgaoJulgador": {"nome": "31a Vara do Trabalho de Sao Paulo"},
        "dataAjuizamento": "2023-02-01T00:00:00.000Z",
        "dataHoraUltimaAtualizacao": "2024-01-05T10:00:00.000Z",
        "movimentos": [
          {"dataHora": "2024-01-05T09:00:00.000Z", "nome": "Conclusos os autos", "codigo": 51,
           "complementosTabelados": [{"nome": "tipo_de_conclusao", "valor": "julgamento", "descricao": "tipo"}]},
          {"dataHora": "2023-12-20T09:00:00.000Z", "nome": "Juntada de peticao", "codigo": 85}
        ]
      }},
      {"_source": {
        "tribunal": "TRT2", "grau": "G2",
        "classe": {"nome": "Recurso Ordinario"},
        "orgaoJulgador": {"nome": "4a Turma"},
        "dataAjuizamento": "2023-02-01T00:00:00.000Z",
        "dataHoraUltimaAtualizacao": "2024-02-10T10:00:00.000Z",
        "movimentos": [
          {"dataHora": "2024-02-10T08:00:00.000Z", "nome": "Distribuido", "codigo": 26}
        ]
      }}
    ]
  }
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(Opts{APIKey: "chave", BaseURL: srv.URL, HTTP: srv.Client()}), srv
}

func TestQuery_MergesHitsAndSortsMovements(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody map[string]interface{}
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		json.NewDecoder(r.Body).Decode(&gotBody)
		fmt.Fprint(w, twoHitResponse)
	})

	res := client.Query(context.Background(), "10012345620230020031", "trt2")

	if gotPath != "/api_publica_trt2/_search" {
		t.Errorf("path = %q, want /api_publica_trt2/_search", gotPath)
	}
	if gotAuth != "ApiKey chave" {
		t.Errorf("Authorization = %q, want ApiKey chave", gotAuth)
	}
	if gotBody["size"] != float64(5) {
		t.Errorf("size = %v, want 5", gotBody["size"])
	}

	if !res.Found || res.Err != "" {
		t.Fatalf("res = %+v, want found", res)
	}
	// Best hit for metadata is the one with the greatest update timestamp.
	if res.Grau != "G2" || res.Classe != "Recurso Ordinario" {
		t.Errorf("metadata from wrong hit: grau=%q classe=%q", res.Grau, res.Classe)
	}
	if res.TotalMovimentos != 3 {
		t.Errorf("TotalMovimentos = %d, want 3 (pooled)", res.TotalMovimentos)
	}
	if res.UltimaMovimentacao == nil {
		t.Fatal("UltimaMovimentacao = nil")
	}
	if res.UltimaMovimentacao.Data != "2024-02-10" {
		t.Errorf("latest movement date = %q, want 2024-02-10", res.UltimaMovimentacao.Data)
	}
	// Pooled list is sorted descending across hits.
	if res.Movimentos[1].Nome != "Conclusos os autos" {
		t.Errorf("Movimentos[1].Nome = %q, want Conclusos os autos", res.Movimentos[1].Nome)
	}
	if len(res.MovimentosRecentes) != 3 {
		t.Errorf("len(MovimentosRecentes) = %d, want 3", len(res.MovimentosRecentes))
	}
}

func TestQuery_MovementDescriptionSynthesis(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"hits":{"hits":[{"_source":{
			"grau": "G2", "dataHoraUltimaAtualizacao": "2024-01-01",
			"movimentos": [{"dataHora": "2024-01-01T08:00:00Z", "nome": "Penhora",
				"complementosTabelados": [{"nome": "bem", "valor": "veiculo"}, {"nome": "outro", "descricao": "detalhe"}]}]
		}}]}}`)
	})

	res := client.Query(context.Background(), "12345678901234567890", "trt2")
	if !res.Found {
		t.Fatalf("res = %+v", res)
	}
	want := "Penhora - veiculo, detalhe [G2]"
	if res.UltimaMovimentacao.Descricao != want {
		t.Errorf("Descricao = %q, want %q", res.UltimaMovimentacao.Descricao, want)
	}
	// The recent-movements summary omits the degree suffix and the
	// descricao fallback.
	if got := res.MovimentosRecentes[0].Descricao; got != "Penhora - veiculo, outro" {
		t.Errorf("recent Descricao = %q, want %q", got, "Penhora - veiculo, outro")
	}
}

func TestQuery_NoHits(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"hits":{"hits":[]}}`)
	})
	res := client.Query(context.Background(), "12345678901234567890", "trt2")
	if res.Found || res.Err != "" {
		t.Errorf("res = %+v, want plain not-found", res)
	}
}

func TestQuery_Non200IsErrorNotNotFound(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})
	res := client.Query(context.Background(), "12345678901234567890", "trt2")
	if res.Found {
		t.Fatal("Found = true on HTTP 429")
	}
	if res.Err != "HTTP 429" {
		t.Errorf("Err = %q, want HTTP 429", res.Err)
	}
}

func TestQuery_ParseFailureIsError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "not json")
	})
	res := client.Query(context.Background(), "12345678901234567890", "trt2")
	if res.Found || res.Err == "" {
		t.Errorf("res = %+v, want parse error", res)
	}
	if !strings.Contains(res.Err, "parse") {
		t.Errorf("Err = %q, want parse failure", res.Err)
	}
}

func TestQuery_NetworkFailureIsError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close() // refuse connections
	client := New(Opts{APIKey: "k", BaseURL: srv.URL})
	res := client.Query(context.Background(), "12345678901234567890", "trt2")
	if res.Found || res.Err == "" {
		t.Errorf("res = %+v, want network error", res)
	}
}

func TestQueryFallback_CollapsesFailures(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	res := client.QueryFallback(context.Background(), "12345678901234567890", "tst")
	if res.Found {
		t.Error("Found = true on HTTP 500, want collapsed not-found")
	}
}

func TestQueryFallback_Found(t *testing.T) {
	var gotPath string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		fmt.Fprint(w, `{"hits":{"hits":[{"_source":{
			"grau": "TST",
			"movimentos": [
				{"dataHora": "2023-06-01T08:00:00Z", "nome": "Recebidos os autos"},
				{"dataHora": "2023-08-01T08:00:00Z", "nome": "Conclusos"}
			]
		}}]}}`)
	})
	res := client.QueryFallback(context.Background(), "12345678901234567890", "tst")
	if gotPath != "/api_publica_tst/_search" {
		t.Errorf("path = %q", gotPath)
	}
	if !res.Found || res.TotalMovimentos != 2 {
		t.Fatalf("res = %+v", res)
	}
	if res.UltimaMov == nil || res.UltimaMov.Data != "2023-08-01" {
		t.Errorf("UltimaMov = %+v, want most recent", res.UltimaMov)
	}
}

func TestFormatDate(t *testing.T) {
	tests := []struct{ in, want string }{
		{"2024-01-05T09:00:00.000Z", "2024-01-05"},
		{"20240105090000", "2024-01-05"},
		{"2024-01-05", "2024-01-05"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := FormatDate(tt.in); got != tt.want {
			t.Errorf("FormatDate(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
