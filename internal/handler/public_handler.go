package handler

import (
	"bytes"
	"errors"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
	"github.com/summitlink/internal/phone"
	"github.com/summitlink/internal/service"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	markdownEngine = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Linkify),
		goldmark.WithRendererOptions(html.WithHardWraps(), html.WithXHTML()),
	)
	sanitizer = bluemonday.UGCPolicy()
)

// renderBioHTML 将个人简介按 Markdown 渲染并净化
func renderBioHTML(bio string) template.HTML {
	if bio == "" {
		return ""
	}

	var buf bytes.Buffer
	if err := markdownEngine.Convert([]byte(bio), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(bio))
	}

	return template.HTML(sanitizer.Sanitize(buf.String()))
}

// ShowHome 渲染公开首页
func (a *API) ShowHome(c *gin.Context) {
	c.HTML(http.StatusOK, "home.html", gin.H{
		"title": "SummitLink",
	})
}

// ShowSubmitForm 渲染资料提交表单页面
func (a *API) ShowSubmitForm(c *gin.Context) {
	c.HTML(http.StatusOK, "submit.html", gin.H{
		"title": "Submit Your Profile",
	})
}

// ShowDirectory 渲染公开目录：只取已通过审核的记录并按类别分栏。
// 本页面以及详情接口都不会触发任何生命周期变更。
func (a *API) ShowDirectory(c *gin.Context) {
	buckets, err := a.contacts.Directory()
	if err != nil {
		c.HTML(http.StatusInternalServerError, "directory.html", gin.H{
			"title": "Attendee Directory",
			"error": "Failed to load the directory. Please try again later.",
		})
		return
	}

	c.HTML(http.StatusOK, "directory.html", gin.H{
		"title":      "Attendee Directory",
		"organizers": buckets.Organizers,
		"speakers":   buckets.Speakers,
		"delegates":  buckets.Delegates,
	})
}

// GetDirectoryContact 返回一条已通过审核记录的完整字段，用于详情弹窗。
// 未通过审核的记录对公开目录不可见，一律返回 404。
func (a *API) GetDirectoryContact(c *gin.Context) {
	id, err := parseUintParam(c, "id")
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid contact ID")
		return
	}

	contact, err := a.contacts.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrContactNotFound) {
			respondError(c, http.StatusNotFound, "Contact not found")
			return
		}
		respondError(c, http.StatusInternalServerError, "Failed to load contact. Please try again later.")
		return
	}

	if service.StatusOf(*contact) != service.StatusApproved {
		respondError(c, http.StatusNotFound, "Contact not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"item":         contact,
		"bio_html":     renderBioHTML(contact.Bio),
		"phone_pretty": phone.Format(contact.Phone),
	})
}
