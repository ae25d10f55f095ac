package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/mhndckngyn/askdev-api/internal/content"
)

type TagHandler struct {
	svc *content.Service
	log *slog.Logger
}

func NewTagHandler(svc *content.Service, log *slog.Logger) *TagHandler {
	return &TagHandler{svc: svc, log: log}
}

// List searches tags. Query params: keyword, sortBy (name|popularity),
// page, limit.
func (h *TagHandler) List(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	tags, total, err := h.svc.ListTags(c.Query("keyword"), c.DefaultQuery("sortBy", "name"), page, limit)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tags": tags, "total": total})
}

func (h *TagHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	tag, err := h.svc.GetTag(id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, tag)
}
