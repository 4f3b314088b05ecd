package data

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/casemedia/casemedia-backend/internal/media/biz"
	pkgminio "github.com/casemedia/casemedia-backend/internal/pkg/minio"
)

// ErrObjectExists 对象已存在且未显式要求覆盖
var ErrObjectExists = errors.New("object already exists")

// MinioObjectStorage 实现 biz.ObjectStorage 接口
type MinioObjectStorage struct {
	client *pkgminio.Client
	bucket string
}

// NewMinioObjectStorage 创建 MinIO 对象存储适配器
func NewMinioObjectStorage(client *pkgminio.Client, bucket string) *MinioObjectStorage {
	return &MinioObjectStorage{
		client: client,
		bucket: bucket,
	}
}

// Put 写入对象。upsert 为 false 时先检查对象是否存在，存在则拒绝覆盖
func (s *MinioObjectStorage) Put(ctx context.Context, objectKey string, data []byte, contentType string, upsert bool) error {
	if !upsert {
		_, err := s.client.StatObject(ctx, s.bucket, objectKey)
		if err == nil {
			return fmt.Errorf("%w: %s", ErrObjectExists, objectKey)
		}
		if !pkgminio.IsNotFound(err) {
			return fmt.Errorf("failed to check object existence: %w", err)
		}
	}

	reader := bytes.NewReader(data)
	_, err := s.client.PutObject(ctx, s.bucket, objectKey, reader, int64(len(data)), pkgminio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fmt.Errorf("failed to upload object: %w", err)
	}

	return nil
}

// Get 读取对象内容
func (s *MinioObjectStorage) Get(ctx context.Context, objectKey string) ([]byte, error) {
	obj, err := s.client.GetObject(ctx, s.bucket, objectKey)
	if err != nil {
		return nil, fmt.Errorf("failed to get object: %w", err)
	}
	defer obj.Close()

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(obj); err != nil {
		return nil, fmt.Errorf("failed to read object: %w", err)
	}

	return buf.Bytes(), nil
}

// Remove 删除对象
func (s *MinioObjectStorage) Remove(ctx context.Context, objectKey string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, objectKey); err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}

	return nil
}

// List 列出前缀下的所有对象
func (s *MinioObjectStorage) List(ctx context.Context, prefix string) ([]biz.StoredObject, error) {
	infos, err := s.client.ListObjects(ctx, s.bucket, prefix)
	if err != nil {
		return nil, fmt.Errorf("failed to list objects: %w", err)
	}

	objects := make([]biz.StoredObject, 0, len(infos))
	for _, info := range infos {
		objects = append(objects, biz.StoredObject{
			Key:          info.Key,
			Size:         info.Size,
			LastModified: info.LastModified,
		})
	}

	return objects, nil
}
