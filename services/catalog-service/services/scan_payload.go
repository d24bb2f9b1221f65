package services

import (
	"fmt"
	"path"
	"strings"
	"unicode"

	"github.com/pawsitivecheck/backend/services/catalog-service/models"
)

const (
	maxBarcodeLength  = 64
	maxImageKeyLength = 1024
)

var imageMediaTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/webp": true,
}

var imageExtensions = map[string]bool{
	".jpeg": true,
	".jpg":  true,
	".png":  true,
	".webp": true,
}

// NormalizeBarcode trims a scanned barcode and rejects values no scanner
// would produce.
func NormalizeBarcode(raw string) (string, error) {
	code := strings.TrimSpace(raw)
	if code == "" {
		return "", fmt.Errorf("%w: empty barcode", ErrInvalidPayload)
	}
	if len(code) > maxBarcodeLength {
		return "", fmt.Errorf("%w: barcode longer than %d characters", ErrInvalidPayload, maxBarcodeLength)
	}
	for _, r := range code {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return "", fmt.Errorf("%w: barcode contains whitespace or control characters", ErrInvalidPayload)
		}
	}
	return code, nil
}

// IsValidBarcode reports whether raw is acceptable after trimming.
func IsValidBarcode(raw string) bool {
	_, err := NormalizeBarcode(raw)
	return err == nil
}

// NormalizeImageRef accepts an uploaded object key or a data: URL in one of
// the supported image formats.
func NormalizeImageRef(raw string) (string, error) {
	ref := strings.TrimSpace(raw)
	if ref == "" {
		return "", fmt.Errorf("%w: empty image reference", ErrInvalidPayload)
	}

	if strings.HasPrefix(ref, "data:") {
		meta, data, ok := strings.Cut(strings.TrimPrefix(ref, "data:"), ",")
		if !ok || data == "" {
			return "", fmt.Errorf("%w: malformed data URL", ErrInvalidPayload)
		}
		mediaType, _, _ := strings.Cut(meta, ";")
		if !imageMediaTypes[strings.ToLower(mediaType)] {
			return "", fmt.Errorf("%w: unsupported image format %q", ErrInvalidPayload, mediaType)
		}
		return ref, nil
	}

	if len(ref) > maxImageKeyLength || strings.Contains(ref, "://") || strings.ContainsAny(ref, " \t\r\n") {
		return "", fmt.Errorf("%w: malformed image key", ErrInvalidPayload)
	}
	if !imageExtensions[strings.ToLower(path.Ext(ref))] {
		return "", fmt.Errorf("%w: unsupported image format %q", ErrInvalidPayload, path.Ext(ref))
	}
	return ref, nil
}

// NormalizeScanPayload validates a payload before any lookup happens.
func NormalizeScanPayload(payload models.ScanPayload) (models.ScanPayload, error) {
	switch payload.Kind {
	case models.ScanKindBarcode:
		code, err := NormalizeBarcode(payload.Value)
		if err != nil {
			return payload, err
		}
		return models.ScanPayload{Kind: payload.Kind, Value: code}, nil
	case models.ScanKindImage:
		ref, err := NormalizeImageRef(payload.Value)
		if err != nil {
			return payload, err
		}
		return models.ScanPayload{Kind: payload.Kind, Value: ref}, nil
	default:
		return payload, fmt.Errorf("%w: unknown scan kind %q", ErrInvalidPayload, payload.Kind)
	}
}

// describeScannedData keeps inline image bytes out of the history table.
func describeScannedData(payload models.ScanPayload) string {
	if payload.Kind == models.ScanKindImage && strings.HasPrefix(payload.Value, "data:") {
		meta, data, _ := strings.Cut(strings.TrimPrefix(payload.Value, "data:"), ",")
		mediaType, _, _ := strings.Cut(meta, ";")
		return fmt.Sprintf("inline:%s (%d bytes)", strings.ToLower(mediaType), len(data))
	}
	return payload.Value
}
