// Package bridge передает команды хоста по HTTP
package bridge

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/hazadus/go-vinyl/internal/data"
	"github.com/hazadus/go-vinyl/internal/library"
)

// RequestIDHeader - заголовок для сквозного идентификатора запроса
const RequestIDHeader = "X-Request-ID"

// ErrUnknownCommand возвращается для команд, которых нет у хоста
var ErrUnknownCommand = errors.New("неизвестная команда")

// PlayFileArgs - тело команды play_file
type PlayFileArgs struct {
	Path string `json:"path" binding:"required"`
}

// Server обрабатывает вызовы команд и передает их хосту
type Server struct {
	host library.Host
	log  *zap.Logger
}

// NewServer создает сервер команд для хоста
func NewServer(host library.Host, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{host: host, log: log}
}

// RegisterRoutes регистрирует маршруты моста
func (s *Server) RegisterRoutes(router gin.IRouter) {
	router.POST("/invoke/:command", s.Invoke)
}

// POST /invoke/:command
func (s *Server) Invoke(c *gin.Context) {
	command := c.Param("command")

	var err error
	switch command {
	case library.CmdFindFiles:
		tracks, findErr := s.host.FindFiles(c.Request.Context())
		if findErr == nil {
			if tracks == nil {
				tracks = []data.Track{}
			}
			c.JSON(http.StatusOK, tracks)
			return
		}
		err = findErr
	case library.CmdPlayFile:
		var args PlayFileArgs
		if bindErr := c.ShouldBindJSON(&args); bindErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "path is required"})
			return
		}
		err = s.host.PlayFile(c.Request.Context(), args.Path)
	case library.CmdPausePlay:
		err = s.host.PausePlay(c.Request.Context())
	default:
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("%v: %s", ErrUnknownCommand, command)})
		return
	}

	if err != nil {
		s.log.Warn("команда завершилась ошибкой",
			zap.String("command", command),
			zap.String("request_id", c.GetString("request_id")),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

// RequestID подставляет идентификатор запроса, если клиент его не прислал
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(RequestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		c.Set("request_id", id)
		c.Header(RequestIDHeader, id)
		c.Next()
	}
}

// Logger пишет каждый запрос в журнал
func Logger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.Info("http",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("request_id", c.GetString("request_id")),
		)
	}
}

// NewRouter создает gin.Engine с общими middleware
func NewRouter(log *zap.Logger) *gin.Engine {
	if log == nil {
		log = zap.NewNop()
	}
	router := gin.New()
	router.Use(gin.Recovery(), RequestID(), Logger(log))
	return router
}
