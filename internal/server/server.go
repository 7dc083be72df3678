package server

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/iwvelando/payment-clauses/internal/conciliacao"
	"github.com/iwvelando/payment-clauses/internal/condicao"
	"github.com/iwvelando/payment-clauses/internal/config"
	"github.com/iwvelando/payment-clauses/internal/engine"
	"github.com/iwvelando/payment-clauses/internal/export"
	"github.com/iwvelando/payment-clauses/internal/optimizer"
	"github.com/iwvelando/payment-clauses/pkg/constants"
	"go.uber.org/zap"
)

const (
	contentTypePDF  = "application/pdf"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	contentTypeYAML = "application/yaml"
)

type handler struct {
	logger      *zap.Logger
	engine      *engine.Engine
	maxBodySize int64
	version     string
}

// apiResponse is the envelope of every JSON response.
type apiResponse struct {
	Status  string      `json:"status"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
	Errors  []string    `json:"errors,omitempty"`
}

type ajusteRequest struct {
	Contrato   condicao.Contrato `json:"contrato"`
	Percentual float64           `json:"percentual"`
	Dimensao   string            `json:"dimensao"`
}

type fechamentoRequest struct {
	Contrato  condicao.Contrato     `json:"contrato"`
	Diretivas []optimizer.Directive `json:"diretivas"`
}

type ajusteContratoRequest struct {
	Percentual float64 `json:"percentual"`
	Dimensao   string  `json:"dimensao"`
}

// NewHandler constructs the HTTP handler serving the clause API. A nil
// engine is replaced by one over an empty in-memory store.
func NewHandler(logger *zap.Logger, eng *engine.Engine, maxBodySize int64, version string) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if eng == nil {
		eng = engine.New(logger, nil)
	}

	if maxBodySize <= 0 {
		maxBodySize = constants.DefaultMaxBodySizeBytes
	}

	trimmedVersion := strings.TrimSpace(version)
	if trimmedVersion == "" {
		trimmedVersion = "dev"
	}

	h := &handler{logger: logger, engine: eng, maxBodySize: maxBodySize, version: trimmedVersion}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery(), h.logRequests, h.limitBody)

	r.GET("/health", h.handleHealth)
	r.GET("/api/version", h.handleVersion)

	v1 := r.Group("/api/v1")
	v1.POST("/clausulas", h.handleClausulas)
	v1.POST("/conciliacao", h.handleConciliacao)
	v1.POST("/ajuste", h.handleAjuste)
	v1.POST("/fechamento", h.handleFechamento)
	v1.POST("/export/pdf", h.handleExportPDF)
	v1.POST("/export/xlsx", h.handleExportXLSX)
	v1.POST("/export/yaml", h.handleExportYAML)
	v1.PUT("/contratos/:id", h.handleSalvarContrato)
	v1.GET("/contratos/:id", h.handleObterContrato)
	v1.DELETE("/contratos/:id", h.handleRemoverContrato)
	v1.POST("/contratos/:id/ajuste", h.handleAjustarContrato)

	return r
}

func (h *handler) logRequests(c *gin.Context) {
	start := time.Now()
	c.Next()

	h.logger.Info("request served",
		zap.String("op", "server.logRequests"),
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.Int("status", c.Writer.Status()),
		zap.Duration("duration", time.Since(start)),
	)
}

func (h *handler) limitBody(c *gin.Context) {
	if c.Request.Body != nil {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBodySize)
	}
	c.Next()
}

func (h *handler) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "UP", "service": "payment-clauses"})
}

func (h *handler) handleVersion(c *gin.Context) {
	c.JSON(http.StatusOK, map[string]string{
		"version": h.version,
	})
}

func (h *handler) handleClausulas(c *gin.Context) {
	contrato, ok := h.bindContrato(c, "server.handleClausulas")
	if !ok {
		return
	}

	report, err := h.engine.Generate(contrato)
	if err != nil {
		h.respondError(c, err, "server.handleClausulas")
		return
	}
	h.respondSuccess(c, report)
}

func (h *handler) handleConciliacao(c *gin.Context) {
	contrato, ok := h.bindContrato(c, "server.handleConciliacao")
	if !ok {
		return
	}

	prepared, err := contrato.Prepare()
	if err != nil {
		h.respondError(c, err, "server.handleConciliacao")
		return
	}
	h.respondSuccess(c, conciliacao.Reconcile(prepared.Condicoes, prepared.ValorReferencia))
}

func (h *handler) handleAjuste(c *gin.Context) {
	var req ajusteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBindError(c, err, "server.handleAjuste")
		return
	}

	dimension, err := parseDimensao(req.Dimensao)
	if err != nil {
		h.respondError(c, err, "server.handleAjuste")
		return
	}

	prepared, err := req.Contrato.Prepare()
	if err != nil {
		h.respondError(c, err, "server.handleAjuste")
		return
	}

	adjustment, err := h.engine.ApplyAdjustment(prepared, req.Percentual, dimension)
	if err != nil {
		h.respondError(c, err, "server.handleAjuste")
		return
	}
	h.respondSuccess(c, adjustment)
}

func (h *handler) handleFechamento(c *gin.Context) {
	var req fechamentoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBindError(c, err, "server.handleFechamento")
		return
	}
	if len(req.Diretivas) == 0 {
		h.respond(c, http.StatusBadRequest, "server.handleFechamento", "no closing directives given")
		return
	}

	closing, err := h.engine.CloseBalance(req.Contrato, req.Diretivas)
	if err != nil {
		h.respondError(c, err, "server.handleFechamento")
		return
	}
	h.respondSuccess(c, closing)
}

func (h *handler) handleExportPDF(c *gin.Context) {
	report, ok := h.generate(c, "server.handleExportPDF")
	if !ok {
		return
	}
	// A clause with no conditions is the introduction alone.
	if len(report.Contrato.Condicoes) == 0 {
		h.respondError(c, export.ErrEmptyText, "server.handleExportPDF")
		return
	}

	var buf bytes.Buffer
	if err := export.WriteClausePDF(&buf, report.Contrato.Titulo, report.Clausula); err != nil {
		h.respondError(c, err, "server.handleExportPDF")
		return
	}
	h.respondFile(c, "clausula.pdf", contentTypePDF, buf.Bytes())
}

func (h *handler) handleExportXLSX(c *gin.Context) {
	report, ok := h.generate(c, "server.handleExportXLSX")
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := export.WriteScheduleXLSX(&buf, report.Cronograma, report.Conciliacao); err != nil {
		h.respondError(c, err, "server.handleExportXLSX")
		return
	}
	h.respondFile(c, "cronograma.xlsx", contentTypeXLSX, buf.Bytes())
}

func (h *handler) handleExportYAML(c *gin.Context) {
	contrato, ok := h.bindContrato(c, "server.handleExportYAML")
	if !ok {
		return
	}

	prepared, err := contrato.Prepare()
	if err != nil {
		h.respondError(c, err, "server.handleExportYAML")
		return
	}

	var buf bytes.Buffer
	if err := config.WriteDocument(&buf, config.Configuration{Contrato: prepared}); err != nil {
		h.respondError(c, err, "server.handleExportYAML")
		return
	}
	h.respondFile(c, "contrato.yaml", contentTypeYAML, buf.Bytes())
}

func (h *handler) handleSalvarContrato(c *gin.Context) {
	id, ok := h.pathID(c, "server.handleSalvarContrato")
	if !ok {
		return
	}
	contrato, ok := h.bindContrato(c, "server.handleSalvarContrato")
	if !ok {
		return
	}
	contrato.ID = id.String()

	saved, err := h.engine.Persist(c.Request.Context(), contrato)
	if err != nil {
		h.respondError(c, err, "server.handleSalvarContrato")
		return
	}
	h.respondSuccess(c, saved)
}

func (h *handler) handleObterContrato(c *gin.Context) {
	id, ok := h.pathID(c, "server.handleObterContrato")
	if !ok {
		return
	}

	report, err := h.engine.Report(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err, "server.handleObterContrato")
		return
	}
	h.respondSuccess(c, report)
}

func (h *handler) handleRemoverContrato(c *gin.Context) {
	id, ok := h.pathID(c, "server.handleRemoverContrato")
	if !ok {
		return
	}

	if err := h.engine.Delete(c.Request.Context(), id); err != nil {
		h.respondError(c, err, "server.handleRemoverContrato")
		return
	}
	h.respondSuccess(c, gin.H{"id": id.String()})
}

func (h *handler) handleAjustarContrato(c *gin.Context) {
	id, ok := h.pathID(c, "server.handleAjustarContrato")
	if !ok {
		return
	}

	var req ajusteContratoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondBindError(c, err, "server.handleAjustarContrato")
		return
	}

	dimension, err := parseDimensao(req.Dimensao)
	if err != nil {
		h.respondError(c, err, "server.handleAjustarContrato")
		return
	}

	adjustment, err := h.engine.Adjust(c.Request.Context(), id, req.Percentual, dimension)
	if err != nil {
		h.respondError(c, err, "server.handleAjustarContrato")
		return
	}
	h.respondSuccess(c, adjustment)
}

func (h *handler) generate(c *gin.Context, op string) (engine.Report, bool) {
	contrato, ok := h.bindContrato(c, op)
	if !ok {
		return engine.Report{}, false
	}

	report, err := h.engine.Generate(contrato)
	if err != nil {
		h.respondError(c, err, op)
		return engine.Report{}, false
	}
	return report, true
}

// bindContrato reads a contract from the request body. YAML bodies use the
// same document shape as the CLI; anything else is decoded as a JSON contract.
func (h *handler) bindContrato(c *gin.Context, op string) (condicao.Contrato, bool) {
	if strings.Contains(c.ContentType(), "yaml") {
		conf, err := config.LoadConfigurationFromReader(c.Request.Body)
		if err != nil {
			h.respondBindError(c, err, op)
			return condicao.Contrato{}, false
		}
		return conf.Contrato, true
	}

	var contrato condicao.Contrato
	if err := c.ShouldBindJSON(&contrato); err != nil {
		h.respondBindError(c, err, op)
		return condicao.Contrato{}, false
	}
	return contrato, true
}

func (h *handler) pathID(c *gin.Context, op string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.respond(c, http.StatusBadRequest, op, fmt.Sprintf("invalid contract id %q", c.Param("id")))
		return uuid.UUID{}, false
	}
	return id, true
}

func parseDimensao(s string) (conciliacao.Dimension, error) {
	if strings.TrimSpace(s) == "" {
		return conciliacao.DimensionValor, nil
	}
	return conciliacao.ParseDimension(strings.ToLower(strings.TrimSpace(s)))
}

func (h *handler) respondSuccess(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, apiResponse{Status: "success", Data: data})
}

func (h *handler) respondFile(c *gin.Context, name, contentType string, data []byte) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Data(http.StatusOK, contentType, data)
}

func (h *handler) respondBindError(c *gin.Context, err error, op string) {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		h.respond(c, http.StatusRequestEntityTooLarge, op,
			fmt.Sprintf("request body exceeds limit of %d bytes", h.maxBodySize))
		return
	}
	h.respond(c, http.StatusBadRequest, op, "failed to decode contract", err.Error())
}

func (h *handler) respondError(c *gin.Context, err error, op string) {
	status := http.StatusInternalServerError
	message := "failed to process contract"
	switch {
	case errors.Is(err, engine.ErrNotFound):
		status = http.StatusNotFound
		message = "contract not found"
	case errors.Is(err, condicao.ErrInvalid), errors.Is(err, condicao.ErrUnknownCode),
		errors.Is(err, conciliacao.ErrInvalidDimension), errors.Is(err, conciliacao.ErrInvalidPercent):
		status = http.StatusUnprocessableEntity
		message = "invalid contract"
	case errors.Is(err, optimizer.ErrInvalidDirective), errors.Is(err, optimizer.ErrTargetNotFound),
		errors.Is(err, optimizer.ErrProtectedTarget):
		status = http.StatusUnprocessableEntity
		message = "invalid closing directive"
	case errors.Is(err, export.ErrEmptyText):
		status = http.StatusUnprocessableEntity
		message = "contract has no conditions to export"
	}
	h.respond(c, status, op, message, strings.Split(err.Error(), "\n")...)
}

func (h *handler) respond(c *gin.Context, status int, op, message string, errs ...string) {
	h.logger.Error("request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("message", message),
		zap.Strings("errors", errs),
	)
	c.AbortWithStatusJSON(status, apiResponse{Status: "error", Message: message, Errors: errs})
}
