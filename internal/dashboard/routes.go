package dashboard

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/brasslaw/vigia/internal/models"
	"github.com/brasslaw/vigia/internal/store"
	"github.com/brasslaw/vigia/internal/updater"
)

// registerRoutes sets up all dashboard routes on the Gin router.
//
// Errors travel in the response body with HTTP 200, which is what the
// dashboard frontend has always expected.
func registerRoutes(router *gin.Engine, s *store.Store, u *updater.Updater) {
	router.Use(corsMiddleware())

	router.GET("/", handleIndex())

	api := router.Group("/api")
	api.GET("/status", handleStatus(s, u))
	api.POST("/atualizar", handleAtualizar(u))
	api.GET("/progress", handleProgress(u))
	api.GET("/processos", handleProcessos(s))
	api.GET("/processo/:id", handleProcessoDetail(s))
	api.GET("/processo/:id/completo", handleProcessoCompleto(u))
	api.GET("/comunicacoes", handleComunicacoes(s))
	api.GET("/comunicacoes/:id", handleComunicacoesLive(u))
	api.POST("/comunicacoes/atualizar", handleComunicaAtualizar(u))
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		c.Next()
	}
}

func handleIndex() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.HTML(http.StatusOK, "index.html", gin.H{
			"title": "Vigia Trabalhista",
		})
	}
}

func handleStatus(s *store.Store, u *updater.Updater) gin.HandlerFunc {
	return func(c *gin.Context) {
		snap, err := s.LoadSnapshot()
		if err != nil {
			c.JSON(http.StatusOK, gin.H{"error": err.Error()})
			return
		}
		cache, err := s.LoadCommCache()
		if err != nil {
			log.Printf("[DASHBOARD] cache de comunicacoes indisponivel: %v", err)
			cache = map[int]models.CommEntry{}
		}

		resumo := make([]CaseSummary, 0, len(snap.Cases))
		for i := range snap.Cases {
			p := &snap.Cases[i]
			var entry *models.CommEntry
			if e, ok := cache[p.ID]; ok {
				entry = &e
			}
			resumo = append(resumo, Summarize(p, entry))
		}

		st := u.Movements.Status()
		if st.LastUpdate == "" {
			st.LastUpdate = snap.Meta.UltimaAtualizacaoDataJud
		}

		c.JSON(http.StatusOK, gin.H{
			"updateState": st,
			"metadata":    snap.Meta,
			"processos":   resumo,
		})
	}
}

func handleAtualizar(u *updater.Updater) gin.HandlerFunc {
	return func(c *gin.Context) {
		st := u.Movements.Status()
		if st.Running {
			c.JSON(http.StatusOK, gin.H{
				"error":    "Atualização já em andamento",
				"running":  true,
				"progress": st.Progress,
				"total":    st.Total,
			})
			return
		}

		go func() {
			if _, err := u.RunMovementSync(context.Background(), "dashboard-manual"); err != nil && !errors.Is(err, updater.ErrRunning) {
				log.Printf("[DASHBOARD] atualizacao manual falhou: %v", err)
			}
		}()

		c.JSON(http.StatusOK, gin.H{
			"started": true,
			"message": "Atualização iniciada",
		})
	}
}

func handleProgress(u *updater.Updater) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, u.Movements.Recent())
	}
}

func handleProcessos(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		snap, err := s.LoadSnapshot()
		if err != nil {
			c.JSON(http.StatusOK, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"metadata":  snap.Meta,
			"processos": snap.Cases,
		})
	}
}

func handleProcessoDetail(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusOK, gin.H{"error": "Processo nao encontrado"})
			return
		}
		p, err := s.GetCase(id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusOK, gin.H{"error": "Processo nao encontrado"})
				return
			}
			c.JSON(http.StatusOK, gin.H{"error": err.Error()})
			return
		}

		entry, err := s.GetCommEntry(id)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			log.Printf("[DASHBOARD] comunicacoes do processo #%d indisponiveis: %v", id, err)
		}

		c.JSON(http.StatusOK, Detail(p, entry))
	}
}

func handleProcessoCompleto(u *updater.Updater) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusOK, gin.H{"error": "Processo nao encontrado"})
			return
		}
		full, err := u.FetchFullCase(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusOK, gin.H{"error": "Processo nao encontrado"})
				return
			}
			c.JSON(http.StatusOK, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, full)
	}
}

func handleComunicacoes(s *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		cache, err := s.LoadCommCache()
		if err != nil {
			c.JSON(http.StatusOK, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, cache)
	}
}

func handleComunicacoesLive(u *updater.Updater) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			c.JSON(http.StatusOK, gin.H{"success": false, "error": "Processo nao encontrado"})
			return
		}
		feed, err := u.LiveComms(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				c.JSON(http.StatusOK, gin.H{"success": false, "error": "Processo nao encontrado"})
				return
			}
			c.JSON(http.StatusOK, gin.H{"success": false, "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success":      true,
			"count":        feed.Count,
			"comunicacoes": feed.Comunicacoes,
		})
	}
}

func handleComunicaAtualizar(u *updater.Updater) gin.HandlerFunc {
	return func(c *gin.Context) {
		go func() {
			if _, err := u.RunComunicaSync(context.Background(), "dashboard-manual"); err != nil && !errors.Is(err, updater.ErrRunning) {
				log.Printf("[DASHBOARD] consulta comunica manual falhou: %v", err)
			}
		}()

		c.JSON(http.StatusOK, gin.H{
			"started": true,
			"message": "Consulta Comunica PJe iniciada",
		})
	}
}
