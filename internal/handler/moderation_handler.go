package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/summitlink/internal/service"
)

// ShowModerationConsole 渲染审核控制台页面
func (a *API) ShowModerationConsole(c *gin.Context) {
	session := sessions.Default(c)
	username := session.Get("username")

	pending, err := a.contacts.List(service.StatusPending)
	if err != nil {
		c.HTML(http.StatusInternalServerError, "console.html", gin.H{
			"title":    "Contact Review",
			"username": username,
			"error":    "Failed to load contacts. Please try again later.",
		})
		return
	}

	c.HTML(http.StatusOK, "console.html", gin.H{
		"title":    "Contact Review",
		"username": username,
		"items":    pending,
		"filter":   string(service.StatusPending),
	})
}

// ListContacts 按生命周期状态过滤记录。
// 响应会原样带回请求的 status 与 generation，前端用它们丢弃
// 切换过滤器后迟到的陈旧响应。
func (a *API) ListContacts(c *gin.Context) {
	status, err := service.ParseStatus(c.Query("status"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Unknown filter value")
		return
	}

	generation, _ := strconv.Atoi(strings.TrimSpace(c.Query("generation")))

	items, err := a.contacts.List(status)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Failed to load contacts. Please try again later.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items":      items,
		"status":     status,
		"generation": generation,
	})
}

// ApproveContact 将记录转入 approved 状态
func (a *API) ApproveContact(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid contact ID")
		return
	}

	contact, err := a.contacts.Approve(id)
	if err != nil {
		if errors.Is(err, service.ErrContactNotFound) {
			respondError(c, http.StatusNotFound, "Contact not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to approve contact. Please try again.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Contact approved",
		"item":    contact,
		"state":   service.StatusOf(*contact),
	})
}

// RejectContact 将记录转入 rejected 状态，只做标记不删除
func (a *API) RejectContact(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid contact ID")
		return
	}

	contact, err := a.contacts.Reject(id)
	if err != nil {
		if errors.Is(err, service.ErrContactNotFound) {
			respondError(c, http.StatusNotFound, "Contact not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to reject contact. Please try again.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Contact rejected",
		"item":    contact,
		"state":   service.StatusOf(*contact),
	})
}
