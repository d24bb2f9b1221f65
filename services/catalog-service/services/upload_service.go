package services

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	awspkg "github.com/pawsitivecheck/backend/pkg/aws"
	"github.com/pawsitivecheck/backend/services/catalog-service/models"
	"go.uber.org/zap"
)

const presignExpiry = 15 * time.Minute

var contentTypeExtensions = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/webp": ".webp",
}

// UploadService hands out presigned S3 PUT URLs for scan and product images.
type UploadService interface {
	Presign(ctx context.Context, userID string, isAdmin bool, req *models.PresignUploadRequest) (*models.PresignUploadResponse, *ServiceError)
}

type uploadServiceImpl struct {
	presigner awspkg.Presigner
	logger    *zap.Logger
}

// NewUploadService accepts a nil presigner when no bucket is configured.
func NewUploadService(presigner awspkg.Presigner, logger *zap.Logger) UploadService {
	return &uploadServiceImpl{presigner: presigner, logger: logger}
}

func (s *uploadServiceImpl) Presign(ctx context.Context, userID string, isAdmin bool, req *models.PresignUploadRequest) (*models.PresignUploadResponse, *ServiceError) {
	if s.presigner == nil {
		return nil, &ServiceError{StatusCode: http.StatusServiceUnavailable, Message: "uploads are not configured"}
	}
	ext, ok := contentTypeExtensions[req.ContentType]
	if !ok {
		return nil, &ServiceError{StatusCode: http.StatusBadRequest, Message: "unsupported content type"}
	}

	var key string
	switch req.Purpose {
	case "scan":
		key = fmt.Sprintf("scans/%s/%s%s", userID, uuid.NewString(), ext)
	case "product":
		if !isAdmin {
			return nil, &ServiceError{StatusCode: http.StatusForbidden, Message: "admin access required"}
		}
		key = fmt.Sprintf("products/%s%s", uuid.NewString(), ext)
	default:
		return nil, &ServiceError{StatusCode: http.StatusBadRequest, Message: "purpose must be scan or product"}
	}

	url, headers, err := s.presigner.PresignPut(ctx, key, req.ContentType, presignExpiry)
	if err != nil {
		s.logger.Error("Failed to presign upload", zap.String("key", key), zap.Error(err))
		return nil, &ServiceError{StatusCode: http.StatusBadGateway, Message: "Failed to prepare upload"}
	}
	return &models.PresignUploadResponse{
		UploadURL: url,
		Key:       key,
		Headers:   headers,
		ExpiresIn: int64(presignExpiry.Seconds()),
	}, nil
}
