package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// 单个对象的体积上限，超出直接返回 ErrSizeLimitExceeded
const maxObjectBytes = 5 * 1024 * 1024

// BlobStore 抽象对象存储：上传字节并换取一个可公开访问的 URL。
// 磁盘实现用于生产部署，测试中可以替换为注入失败的假实现。
type BlobStore interface {
	Upload(container, key string, data []byte) (string, error)
	PublicURL(container, key string) string
}

// DiskStore 把对象写到本地上传目录，经由静态路由对外提供访问
type DiskStore struct {
	baseDir string
	baseURL string
}

// NewDiskStore 构造 DiskStore，baseURL 是静态路由挂载的访问前缀
func NewDiskStore(baseDir, baseURL string) *DiskStore {
	return &DiskStore{
		baseDir: strings.TrimRight(baseDir, "/"),
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// Upload 将对象写入 <baseDir>/<container>/<key>，返回公开访问 URL
func (s *DiskStore) Upload(container, key string, data []byte) (string, error) {
	if err := validateSegment(container); err != nil {
		return "", err
	}
	if err := validateSegment(key); err != nil {
		return "", err
	}
	if int64(len(data)) > maxObjectBytes {
		return "", fmt.Errorf("upload %s/%s: %w", container, key, ErrSizeLimitExceeded)
	}

	dir := filepath.Join(s.baseDir, container)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create container dir: %w", Classify(err))
	}

	path := filepath.Join(dir, key)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write object: %w", Classify(err))
	}

	return s.PublicURL(container, key), nil
}

// PublicURL 返回对象的公开访问地址
func (s *DiskStore) PublicURL(container, key string) string {
	return s.baseURL + "/" + container + "/" + key
}

// validateSegment 拒绝包含路径穿越成分的名字
func validateSegment(segment string) error {
	if segment == "" || segment == "." || segment == ".." ||
		strings.ContainsAny(segment, `/\`) {
		return fmt.Errorf("invalid object path segment %q: %w", segment, ErrSchemaMismatch)
	}
	return nil
}
