package handlers

import (
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mhndckngyn/askdev-api/internal/apperror"
	"github.com/mhndckngyn/askdev-api/internal/config"
	"github.com/mhndckngyn/askdev-api/internal/content"
	"github.com/mhndckngyn/askdev-api/internal/history"
	"github.com/mhndckngyn/askdev-api/internal/notification"
	"github.com/mhndckngyn/askdev-api/internal/upload"
	"github.com/mhndckngyn/askdev-api/internal/verify"
)

// Handler combines all handler types
type Handler struct {
	Auth         *AuthHandler
	Question     *QuestionHandler
	Answer       *AnswerHandler
	Comment      *CommentHandler
	History      *HistoryHandler
	Notification *NotificationHandler
	Report       *ReportHandler
	Tag          *TagHandler
	User         *UserHandler
	Admin        *AdminHandler
}

// NewHandler creates a unified handler with all sub-handlers
func NewHandler(
	db *gorm.DB,
	cfg *config.Config,
	log *slog.Logger,
	svc *content.Service,
	notifier *notification.Notifier,
	recorder *history.Recorder,
	verifier verify.Verifier,
	uploader upload.Uploader,
) *Handler {
	return &Handler{
		Auth:         NewAuthHandler(db, cfg, log, verifier, uploader),
		Question:     NewQuestionHandler(svc, log),
		Answer:       NewAnswerHandler(svc, log),
		Comment:      NewCommentHandler(svc, log),
		History:      NewHistoryHandler(recorder, log),
		Notification: NewNotificationHandler(notifier, log),
		Report:       NewReportHandler(svc, log),
		Tag:          NewTagHandler(svc, log),
		User:         NewUserHandler(db, log),
		Admin:        NewAdminHandler(svc, log),
	}
}

// respondError translates a service error into the JSON error shape. Known
// errors keep their status and message key; anything else becomes a 500,
// and non-silent errors are logged.
func respondError(c *gin.Context, log *slog.Logger, err error) {
	if appErr, ok := apperror.As(err); ok {
		if !appErr.Silent {
			log.Error("request failed", "path", c.FullPath(), "err", err)
		}
		c.JSON(appErr.Status, gin.H{"error": appErr.Message})
		return
	}
	log.Error("request failed", "path", c.FullPath(), "err", err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal-error"})
}

// currentUserID reads the authenticated caller set by the auth middleware.
func currentUserID(c *gin.Context) (int, bool) {
	v, exists := c.Get("user_id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "auth.unauthorized"})
		return 0, false
	}
	id, ok := v.(int)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "auth.unauthorized"})
		return 0, false
	}
	return id, true
}

// pathID parses the named path parameter as an integer id.
func pathID(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id < 1 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid-id"})
		return 0, false
	}
	return id, true
}

// formFiles collects the uploaded files under field from a multipart
// request. A missing form or field is just an empty upload.
func formFiles(c *gin.Context, field string) ([]upload.File, []multipart.File, error) {
	form, err := c.MultipartForm()
	if err != nil {
		return nil, nil, nil
	}
	headers := form.File[field]

	files := make([]upload.File, 0, len(headers))
	opened := make([]multipart.File, 0, len(headers))
	for _, h := range headers {
		f, err := h.Open()
		if err != nil {
			closeAll(opened)
			return nil, nil, err
		}
		opened = append(opened, f)
		files = append(files, upload.File{Name: h.Filename, Reader: f})
	}
	return files, opened, nil
}

func closeAll(files []multipart.File) {
	for _, f := range files {
		f.Close()
	}
}
