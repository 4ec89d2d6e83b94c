package handler

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/flybeeper/gps-checker/internal/check"
	"github.com/flybeeper/gps-checker/internal/parser"
	"github.com/flybeeper/gps-checker/pkg/pool"
	"github.com/flybeeper/gps-checker/pkg/utils"
)

const protobufContentType = "application/x-protobuf"

// CheckRequest JSON-тело запроса проверки
type CheckRequest struct {
	Text string `json:"text"`
}

// RESTHandler обработчик REST API endpoints
type RESTHandler struct {
	checker      *check.Checker
	logger       *utils.Logger
	timeout      time.Duration
	maxBodyBytes int64
}

// NewRESTHandler создает новый REST handler
func NewRESTHandler(checker *check.Checker, maxBodyBytes int64, logger *utils.Logger) *RESTHandler {
	return &RESTHandler{
		checker:      checker,
		logger:       logger,
		timeout:      30 * time.Second,
		maxBodyBytes: maxBodyBytes,
	}
}

// PostCheck проверяет журнал GPS из тела запроса
// POST /api/v1/check
// Тело: текст журнала или JSON {"text": "..."} с Content-Type: application/json
func (h *RESTHandler) PostCheck(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), h.timeout)
	defer cancel()

	text, ok := h.readLog(c)
	if !ok {
		return
	}

	report, err := h.checker.Run(ctx, text)
	if err != nil {
		if errors.Is(err, parser.ErrNoValidData) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"code":    "no_valid_data",
				"message": "No line matched the GPS log format",
			})
			return
		}

		h.logger.WithField("error", err).Error("Failed to check GPS log")
		c.JSON(http.StatusInternalServerError, gin.H{
			"code":    "internal_error",
			"message": "Failed to check GPS log",
		})
		return
	}

	if strings.Contains(c.GetHeader("Accept"), protobufContentType) {
		buf := pool.Global.Get()
		defer pool.Global.Put(buf)

		data, err := marshalReportProto(*buf, report)
		if err != nil {
			h.logger.WithField("error", err).Error("Failed to marshal protobuf")
			c.JSON(http.StatusInternalServerError, gin.H{
				"code":    "marshal_error",
				"message": "Failed to serialize response",
			})
			return
		}
		c.Data(http.StatusOK, protobufContentType, data)
		*buf = data
	} else {
		c.JSON(http.StatusOK, report)
	}

	h.logger.WithFields(map[string]interface{}{
		"run_id":    report.RunID,
		"fixes":     report.Summary.Fixes,
		"anomalies": report.Summary.Anomalies,
		"dropped":   report.Parse.Dropped,
	}).Debug("Check request served")
}

// GetRules возвращает правила классификатора и действующие пороги
// GET /api/v1/rules
func (h *RESTHandler) GetRules(c *gin.Context) {
	thresholds := h.checker.Thresholds()
	c.JSON(http.StatusOK, gin.H{
		"rules":       convertRulesToJSON(thresholds),
		"thresholds":  thresholds,
		"base_size":   check.BaseMarkerSize,
		"base_color":  check.ColorNeutral,
		"degree_mark": parser.DegreeMark,
	})
}

// readLog читает текст журнала из тела запроса. При ошибке ответ уже записан.
func (h *RESTHandler) readLog(c *gin.Context) (string, bool) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBodyBytes)

	if strings.Contains(c.GetHeader("Content-Type"), "application/json") {
		var request CheckRequest
		if err := c.ShouldBindJSON(&request); err != nil {
			h.writeBodyError(c, err, "json_error", "Invalid JSON format")
			return "", false
		}
		return request.Text, true
	}

	data, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.writeBodyError(c, err, "read_error", "Failed to read request body")
		return "", false
	}
	return string(data), true
}

func (h *RESTHandler) writeBodyError(c *gin.Context, err error, code, message string) {
	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{
			"code":    "body_too_large",
			"message": "Request body exceeds the size limit",
		})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{
		"code":    code,
		"message": message,
	})
}
