package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/summitlink/internal/service"
	"github.com/summitlink/internal/storage"
)

// contactChannelToggles 对应提交表单里每个联系渠道的启用开关。
// 关闭的渠道即使带了值也会被清空，不会进入最终载荷。
type contactChannelToggles struct {
	Instagram bool `json:"instagram"`
	Facebook  bool `json:"facebook"`
	LinkedIn  bool `json:"linkedin"`
	YouTube   bool `json:"youtube"`
	Twitter   bool `json:"twitter"`
	Email     bool `json:"email"`
	Website   bool `json:"website"`
	Phone     bool `json:"phone"`
}

type contactSubmissionPayload struct {
	Category  string                `json:"category"`
	Name      string                `json:"name"`
	Title     string                `json:"title"`
	Bio       string                `json:"bio"`
	Location  string                `json:"location"`
	Notes     string                `json:"notes"`
	PhotoURL  string                `json:"photo_url"`
	Instagram string                `json:"instagram"`
	Facebook  string                `json:"facebook"`
	LinkedIn  string                `json:"linkedin"`
	YouTube   string                `json:"youtube"`
	Twitter   string                `json:"twitter"`
	Email     string                `json:"email"`
	Website   string                `json:"website"`
	Phone     string                `json:"phone"`
	Channels  contactChannelToggles `json:"channels"`
}

// toInput 组装最小写入载荷：未启用的渠道整体置空
func (p contactSubmissionPayload) toInput() service.ContactInput {
	input := service.ContactInput{
		Category: p.Category,
		Name:     p.Name,
		Title:    p.Title,
		Bio:      p.Bio,
		Location: p.Location,
		Notes:    p.Notes,
		PhotoURL: p.PhotoURL,
	}

	if p.Channels.Instagram {
		input.Instagram = p.Instagram
	}
	if p.Channels.Facebook {
		input.Facebook = p.Facebook
	}
	if p.Channels.LinkedIn {
		input.LinkedIn = p.LinkedIn
	}
	if p.Channels.YouTube {
		input.YouTube = p.YouTube
	}
	if p.Channels.Twitter {
		input.Twitter = p.Twitter
	}
	if p.Channels.Email {
		input.Email = p.Email
	}
	if p.Channels.Website {
		input.Website = p.Website
	}
	if p.Channels.Phone {
		input.Phone = p.Phone
	}

	return input
}

// SubmitContact 处理公开提交，新记录强制进入 pending 状态
func (a *API) SubmitContact(c *gin.Context) {
	var payload contactSubmissionPayload
	if !bindJSON(c, &payload, "Invalid submission payload") {
		return
	}

	contact, err := a.contacts.Create(payload.toInput())
	if err != nil {
		status, message := submissionErrorResponse(err)
		respondError(c, status, message)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Thank you! Your profile has been submitted for review.",
		"item":    contact,
	})
}

// submissionErrorResponse 按结构化错误分类挑选面向用户的提示，
// 不做任何错误文本的子串匹配
func submissionErrorResponse(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrContactInvalidInput):
		return http.StatusBadRequest, "Name and title are required."
	case errors.Is(err, service.ErrContactInvalidPhone):
		return http.StatusBadRequest, "Please enter a valid phone number. For international numbers, include the country code with a + prefix."
	case errors.Is(err, storage.ErrSizeLimitExceeded):
		return http.StatusBadRequest, "The image is too large. Please use a smaller image or try again without an image."
	case errors.Is(err, storage.ErrPermissionDenied):
		return http.StatusForbidden, "Permission error: the system cannot store submissions at this time. Please try again later."
	case errors.Is(err, storage.ErrSchemaMismatch):
		return http.StatusInternalServerError, "Database error. Please contact the administrator."
	case errors.Is(err, storage.ErrNotFound):
		return http.StatusInternalServerError, "Database configuration error. Please contact the administrator."
	default:
		return http.StatusInternalServerError, "There was a problem submitting your information. Please try again."
	}
}

// UploadContactPhoto 接收资料照片，跑完校验、压缩、上传、降级的完整流水线。
// 拖拽与文件选择两个入口共用这一个端点。
func (a *API) UploadContactPhoto(c *gin.Context) {
	file, err := c.FormFile("photo")
	if err != nil {
		respondError(c, http.StatusBadRequest, "No photo found in the request")
		return
	}

	opened, err := file.Open()
	if err != nil {
		respondError(c, http.StatusBadRequest, "Error reading file")
		return
	}
	defer opened.Close()

	data, err := io.ReadAll(opened)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Error reading file")
		return
	}

	result, err := a.photos.Process(file.Filename, file.Header.Get("Content-Type"), data)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrPhotoUnsupportedType):
			respondError(c, http.StatusBadRequest, "Please select a valid image file (JPEG, PNG, GIF, or WebP)")
		case errors.Is(err, service.ErrPhotoTooLarge):
			respondError(c, http.StatusBadRequest, "File size must be less than 5MB")
		case errors.Is(err, service.ErrPhotoDecode):
			respondError(c, http.StatusBadRequest, "Error processing image. Please try a different image.")
		default:
			respondError(c, http.StatusInternalServerError, "Error uploading image. Please try again.")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"url":    result.URL,
		"inline": result.Inline,
	})
}
