package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"fu-news-go/pkg/log"

	"github.com/google/uuid"
)

const (
	imagePrefix       = "news-images/"
	imageURLExpiry    = time.Hour
	contentSniffBytes = 512
)

// ErrMediaUnavailable 表示对象存储未启用。
var ErrMediaUnavailable = errors.New("object storage is not enabled")

// ObjectStore 是图片存储后端的抽象，由 *storage.ObjectStore 实现。
type ObjectStore interface {
	Put(ctx context.Context, objectName string, r io.Reader, size int64, contentType string) error
	PresignedURL(ctx context.Context, objectName string, expiry time.Duration) (string, error)
	Exists(ctx context.Context, objectName string) (bool, error)
}

// MediaService 接口定义了文章配图的上传与访问。
type MediaService interface {
	// Upload 校验图片类型和大小后保存，返回对象名和一个限时访问地址。
	Upload(ctx context.Context, fileName string, r io.Reader, size int64) (*ImageUploadResponse, error)
	// ImageURL 为 Upload 返回的对象名生成 1 小时有效的访问地址。
	ImageURL(ctx context.Context, name string) (string, error)
}

type mediaService struct {
	store    ObjectStore
	maxBytes int64
}

// NewMediaService 创建一个新的 MediaService 实例。store 为 nil 表示未启用 MinIO。
func NewMediaService(store ObjectStore, maxUploadMB int64) MediaService {
	return &mediaService{store: store, maxBytes: maxUploadMB << 20}
}

func (s *mediaService) Upload(ctx context.Context, fileName string, r io.Reader, size int64) (*ImageUploadResponse, error) {
	if size <= 0 {
		return nil, validationError(msgInvalidInput)
	}
	if size > s.maxBytes {
		return nil, validationError(fmt.Sprintf("Image must not exceed %d MB.", s.maxBytes>>20))
	}
	if s.store == nil {
		return nil, ErrMediaUnavailable
	}

	head := make([]byte, contentSniffBytes)
	n, err := io.ReadFull(r, head)
	if err != nil && !errors.Is(err, io.ErrUnexpectedEOF) && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("read upload: %w", err)
	}
	head = head[:n]
	contentType := http.DetectContentType(head)
	if !strings.HasPrefix(contentType, "image/") {
		return nil, validationError(msgNotAnImage)
	}

	objectName := imagePrefix + uuid.NewString() + strings.ToLower(filepath.Ext(fileName))
	body := io.MultiReader(bytes.NewReader(head), r)
	if err := s.store.Put(ctx, objectName, body, size, contentType); err != nil {
		return nil, fmt.Errorf("store image: %w", err)
	}
	log.Infof("[MediaService] 图片上传成功, object: %s, size: %d, type: %s", objectName, size, contentType)

	url, err := s.store.PresignedURL(ctx, objectName, imageURLExpiry)
	if err != nil {
		return nil, fmt.Errorf("presign image: %w", err)
	}
	return &ImageUploadResponse{ObjectName: strings.TrimPrefix(objectName, imagePrefix), URL: url}, nil
}

func (s *mediaService) ImageURL(ctx context.Context, name string) (string, error) {
	if name == "" || strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return "", notFoundError(msgImageNotFound)
	}
	if s.store == nil {
		return "", ErrMediaUnavailable
	}
	objectName := imagePrefix + name
	exists, err := s.store.Exists(ctx, objectName)
	if err != nil {
		return "", fmt.Errorf("stat image: %w", err)
	}
	if !exists {
		return "", notFoundError(msgImageNotFound)
	}
	url, err := s.store.PresignedURL(ctx, objectName, imageURLExpiry)
	if err != nil {
		return "", fmt.Errorf("presign image: %w", err)
	}
	return url, nil
}
