package service

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"github.com/summitlink/internal/storage"
	"golang.org/x/image/webp"
)

var (
	// ErrPhotoUnsupportedType 在文件类型不在允许列表内时返回
	ErrPhotoUnsupportedType = errors.New("unsupported photo type")
	// ErrPhotoTooLarge 在文件超过体积上限时返回
	ErrPhotoTooLarge = errors.New("photo too large")
	// ErrPhotoDecode 在图片无法解码时返回，压缩阶段不允许静默跳过
	ErrPhotoDecode = errors.New("failed to decode photo")
)

const (
	// PhotoContainer 是对象存储中存放资料照片的容器名
	PhotoContainer = "contact-photos"

	maxPhotoBytes       = 5 * 1024 * 1024
	compressThreshold   = 500_000
	maxPhotoEdge        = 800
	compressJPEGQuality = 70
)

// 允许上传的图片类型，与其落盘扩展名的对应关系
var photoExtByType = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
	"image/webp": ".webp",
}

// PhotoService 实现照片接收流水线：校验 -> 压缩 -> 上传 -> 内嵌降级。
// 上传失败不阻断表单提交，改用 data URL 形式内嵌到照片引用里。
type PhotoService struct {
	store storage.BlobStore
}

// NewPhotoService 构造 PhotoService
func NewPhotoService(store storage.BlobStore) *PhotoService {
	return &PhotoService{store: store}
}

// PhotoResult 是流水线的产出：照片引用以及它是否为内嵌形式
type PhotoResult struct {
	URL         string
	Inline      bool
	ContentType string
	Size        int
}

// Process 对一个用户选择的文件跑完整条流水线。
// 校验失败返回错误；上传失败不算错误，结果降级为内嵌引用。
func (s *PhotoService) Process(filename, contentType string, data []byte) (*PhotoResult, error) {
	mediaType := normalizeMediaType(contentType)
	if _, ok := photoExtByType[mediaType]; !ok {
		return nil, fmt.Errorf("%w: %s", ErrPhotoUnsupportedType, mediaType)
	}
	if len(data) > maxPhotoBytes {
		return nil, fmt.Errorf("%w: %d bytes", ErrPhotoTooLarge, len(data))
	}

	processed, outType, err := compressPhoto(mediaType, data)
	if err != nil {
		return nil, err
	}

	key := objectKey(filename, outType)
	url, err := s.store.Upload(PhotoContainer, key, processed)
	if err != nil {
		// 上传失败降级为内嵌引用，不向调用方冒泡
		return &PhotoResult{
			URL:         inlineDataURL(outType, processed),
			Inline:      true,
			ContentType: outType,
			Size:        len(processed),
		}, nil
	}

	return &PhotoResult{
		URL:         url,
		ContentType: outType,
		Size:        len(processed),
	}, nil
}

// compressPhoto 在图片超过阈值时将其长边压到 maxPhotoEdge 并转存为 JPEG。
// 小于阈值的图片原样通过，解码失败是硬错误。
func compressPhoto(mediaType string, data []byte) ([]byte, string, error) {
	if len(data) < compressThreshold {
		return data, mediaType, nil
	}

	img, err := decodePhoto(mediaType, data)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrPhotoDecode, err)
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width >= height && width > maxPhotoEdge {
		img = imaging.Resize(img, maxPhotoEdge, 0, imaging.Lanczos)
	} else if height > maxPhotoEdge {
		img = imaging.Resize(img, 0, maxPhotoEdge, imaging.Lanczos)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(compressJPEGQuality)); err != nil {
		return nil, "", fmt.Errorf("encode compressed photo: %w", err)
	}

	return buf.Bytes(), "image/jpeg", nil
}

// decodePhoto 解码图片，webp 走 x/image 的解码器
func decodePhoto(mediaType string, data []byte) (image.Image, error) {
	if mediaType == "image/webp" {
		return webp.Decode(bytes.NewReader(data))
	}
	return imaging.Decode(bytes.NewReader(data))
}

// objectKey 生成抗碰撞的对象名：随机 token + 毫秒时间戳 + 扩展名
func objectKey(filename, mediaType string) string {
	token := strings.ReplaceAll(uuid.New().String(), "-", "")[:13]

	ext := strings.ToLower(filepath.Ext(filename))
	if mediaType == "image/jpeg" || ext == "" {
		ext = photoExtByType[mediaType]
	}

	return fmt.Sprintf("%s_%d%s", token, time.Now().UnixMilli(), ext)
}

// inlineDataURL 把图片字节编码为自包含的 data URL
func inlineDataURL(mediaType string, data []byte) string {
	return "data:" + mediaType + ";base64," + base64.StdEncoding.EncodeToString(data)
}

// normalizeMediaType 丢掉参数部分并统一大小写
func normalizeMediaType(contentType string) string {
	mediaType := contentType
	if idx := strings.Index(mediaType, ";"); idx >= 0 {
		mediaType = mediaType[:idx]
	}
	return strings.ToLower(strings.TrimSpace(mediaType))
}
