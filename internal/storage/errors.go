package storage

import (
	"errors"
	"os"
	"syscall"

	"gorm.io/gorm"
)

// 存储边界的结构化错误分类，handler 依赖 errors.Is 选择面向用户的提示，
// 不对错误文本做任何子串匹配
var (
	// ErrPermissionDenied 表示写入被策略或文件系统权限拒绝
	ErrPermissionDenied = errors.New("storage: permission denied")
	// ErrSizeLimitExceeded 表示对象超过单个对象的体积上限
	ErrSizeLimitExceeded = errors.New("storage: size limit exceeded")
	// ErrStoreUnavailable 表示存储服务当前不可达
	ErrStoreUnavailable = errors.New("storage: store unavailable")
	// ErrNotFound 表示请求的记录或对象不存在
	ErrNotFound = errors.New("storage: not found")
	// ErrSchemaMismatch 表示写入的字段与存储端模式不一致
	ErrSchemaMismatch = errors.New("storage: schema mismatch")
)

// Classify 将底层存储返回的错误折叠到上述分类中。
// 无法识别的错误原样返回，由调用方兜底处理。
func Classify(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, ErrPermissionDenied),
		errors.Is(err, ErrSizeLimitExceeded),
		errors.Is(err, ErrStoreUnavailable),
		errors.Is(err, ErrNotFound),
		errors.Is(err, ErrSchemaMismatch):
		return err
	case errors.Is(err, gorm.ErrRecordNotFound), errors.Is(err, os.ErrNotExist):
		return ErrNotFound
	case errors.Is(err, os.ErrPermission):
		return ErrPermissionDenied
	case errors.Is(err, syscall.ENOSPC):
		return ErrSizeLimitExceeded
	case errors.Is(err, gorm.ErrInvalidField), errors.Is(err, gorm.ErrInvalidData):
		return ErrSchemaMismatch
	default:
		return err
	}
}
