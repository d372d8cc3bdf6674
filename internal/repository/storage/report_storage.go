package storage

import (
	"context"
	"path"
	"time"

	"github.com/google/uuid"
)

// ReportStorage archives rendered reports and hands out temporary links to them
type ReportStorage interface {
	Upload(ctx context.Context, objectPath string, data []byte, contentType string) (string, error)
	Delete(ctx context.Context, objectPath string) error
	GeneratePresignedURL(ctx context.Context, objectPath string, expiry time.Duration) (string, error)
}

// ReportObjectPath builds a unique key such as reports/unit-15/2024/<uuid>.pdf
func ReportObjectPath(unitNumber int32, year int, ext string) string {
	return path.Join("reports", "unit-"+itoa(unitNumber), itoa(int32(year)), uuid.New().String()+ext)
}
