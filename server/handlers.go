package server

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"ai_content_generator/generator"
)

type healthResp struct {
	Status     string `json:"status"`
	AIProvider string `json:"aiProvider"`
	Timestamp  string `json:"timestamp"`
	Message    string `json:"message"`
}

type infoResp struct {
	Message    string            `json:"message"`
	Version    string            `json:"version"`
	AIProvider string            `json:"aiProvider"`
	Timestamp  string            `json:"timestamp"`
	Endpoints  map[string]string `json:"endpoints"`
}

type generateReq struct {
	Type string         `json:"type"`
	Data map[string]any `json:"data"`
}

type generateResp struct {
	Success    bool             `json:"success"`
	Content    string           `json:"content"`
	HTML       string           `json:"html"`
	ID         string           `json:"id"`
	AIProvider string           `json:"aiProvider"`
	Message    string           `json:"message"`
	Entry      generator.Result `json:"entry"`
}

type historyResp struct {
	Success bool               `json:"success"`
	History []generator.Result `json:"history"`
	Total   int                `json:"total"`
}

type statsResp struct {
	Success bool  `json:"success"`
	Stats   stats `json:"stats"`
}

type stats struct {
	TotalGenerations  int            `json:"totalGenerations"`
	GenerationsByType map[string]int `json:"generationsByType"`
	// ServerUptime is in seconds.
	ServerUptime float64 `json:"serverUptime"`
}

type errorResp struct {
	Success bool   `json:"success"`
	Error   string `json:"error"`
}

// Endpoints lists the API surface, also printed at startup.
var Endpoints = map[string]string{
	"health":   "GET /api/health",
	"info":     "GET /api/info",
	"generate": "POST /api/generate",
	"history":  "GET /api/history",
	"stats":    "GET /api/stats",
}

func timestamp() string {
	return time.Now().UTC().Format("2006-01-02T15:04:05.000Z07:00")
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, healthResp{
		Status:     "Server is running successfully",
		AIProvider: s.agent.Provider(),
		Timestamp:  timestamp(),
		Message:    "Backend API is working!",
	})
}

func (s *Server) handleInfo(c *gin.Context) {
	c.JSON(http.StatusOK, infoResp{
		Message:    "AI Content Generator Backend API is running!",
		Version:    s.version,
		AIProvider: s.agent.Provider(),
		Timestamp:  timestamp(),
		Endpoints:  Endpoints,
	})
}

func (s *Server) handleGenerate(c *gin.Context) {
	var body generateReq
	if err := c.ShouldBindJSON(&body); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, errorResp{Success: false, Error: "Invalid JSON body"})
		return
	}
	req := generator.Request{Type: generator.ContentType(body.Type), Data: stringFields(body.Data)}

	// 客户端断开后仍完成并记录本次生成。
	ctx := context.WithoutCancel(c.Request.Context())
	res, err := s.agent.Generate(ctx, req)
	if err != nil {
		var verr *generator.ValidationError
		if errors.As(err, &verr) {
			c.JSON(http.StatusBadRequest, errorResp{Success: false, Error: verr.Message})
			return
		}
		s.log.Error("generation failed", "type", body.Type, "error", err)
		c.JSON(http.StatusInternalServerError, errorResp{Success: false, Error: "Failed to generate content"})
		return
	}

	c.JSON(http.StatusOK, generateResp{
		Success:    true,
		Content:    res.Content,
		HTML:       res.HTML,
		ID:         res.ID,
		AIProvider: res.Provider,
		Message:    "Content generated with " + res.Provider,
		Entry:      res,
	})
}

func (s *Server) handleHistory(c *gin.Context) {
	entries := s.store.List()
	c.JSON(http.StatusOK, historyResp{Success: true, History: entries, Total: len(entries)})
}

func (s *Server) handleStats(c *gin.Context) {
	st := s.store.Stats()
	byType := make(map[string]int, len(st.ByType))
	for t, n := range st.ByType {
		byType[string(t)] = n
	}
	c.JSON(http.StatusOK, statsResp{
		Success: true,
		Stats: stats{
			TotalGenerations:  st.Total,
			GenerationsByType: byType,
			ServerUptime:      time.Since(s.started).Seconds(),
		},
	})
}

// stringFields flattens form values to strings; null values are dropped.
func stringFields(in map[string]any) map[string]string {
	if in == nil {
		return nil
	}
	out := make(map[string]string, len(in))
	for k, v := range in {
		switch val := v.(type) {
		case nil:
		case string:
			out[k] = val
		default:
			out[k] = fmt.Sprint(val)
		}
	}
	return out
}
