package biz

import (
	"errors"
	"fmt"
)

var (
	// ErrUnauthorized 调用者未认证
	ErrUnauthorized = errors.New("unauthorized")
	// ErrForbidden 调用者角色不足
	ErrForbidden = errors.New("forbidden")
	// ErrMediaNotFound 媒体记录不存在
	ErrMediaNotFound = errors.New("media not found")
	// ErrInvalidPayload base64 负载无法解码
	ErrInvalidPayload = errors.New("invalid file payload")
	// ErrStorageFailed 对象存储操作失败
	ErrStorageFailed = errors.New("object storage operation failed")
	// ErrMetadataFailed 元数据存储操作失败
	ErrMetadataFailed = errors.New("media metadata operation failed")
)

// FileTooLargeError 解码后文件超过大小上限
type FileTooLargeError struct {
	Actual int64
	Max    int64
}

func (e *FileTooLargeError) Error() string {
	return fmt.Sprintf("file too large: %d bytes (max %d)", e.Actual, e.Max)
}

// IsFileTooLarge 判断错误是否为文件过大
func IsFileTooLarge(err error) bool {
	var e *FileTooLargeError
	return errors.As(err, &e)
}
