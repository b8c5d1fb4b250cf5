package services

import (
	"context"
	"fmt"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"abstract-portal/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

const (
	maxUploadFiles    = 5
	maxUploadFileSize = 10 * 1024 * 1024
	signedURLExpiry   = 10 * time.Minute
	storageTimeout    = 10 * time.Second
)

var allowedExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
	".txt":  true,
}

var allowedContentTypes = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	"text/plain": true,
}

// StorageService stores attachments in S3 and hands out time-bounded signed
// retrieval URLs.
type StorageService interface {
	Upload(ctx context.Context, files []*multipart.FileHeader, submissionID string) (*models.UploadResult, error)
	SignedURL(ctx context.Context, key string) (string, error)
	SignedURLsForFiles(ctx context.Context, files []models.UploadedFile) []string
}

type storageService struct {
	client  *s3.Client
	presign *s3.PresignClient
	bucket  string
	region  string
}

func NewStorageService() (StorageService, error) {
	bucket := os.Getenv("S3_BUCKET_NAME")
	if bucket == "" {
		return nil, fmt.Errorf("S3_BUCKET_NAME is not set")
	}
	region := os.Getenv("AWS_REGION")
	if region == "" {
		region = "ap-south-1"
	}

	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg)
	return &storageService{
		client:  client,
		presign: s3.NewPresignClient(client),
		bucket:  bucket,
		region:  region,
	}, nil
}

func (s *storageService) Upload(ctx context.Context, files []*multipart.FileHeader, submissionID string) (*models.UploadResult, error) {
	if len(files) == 0 {
		return nil, models.ErrorValidation{Message: "No files provided"}
	}
	if len(files) > maxUploadFiles {
		return nil, models.ErrorValidation{Message: fmt.Sprintf("Too many files: max %d allowed", maxUploadFiles)}
	}
	if submissionID == "" {
		submissionID = "temp"
	}

	result := &models.UploadResult{TotalFiles: len(files)}

	for _, fh := range files {
		info, err := s.uploadOne(ctx, fh, submissionID)
		if err != nil {
			result.Errors = append(result.Errors, models.UploadError{
				FileName: fh.Filename,
				Error:    err.Error(),
			})
			continue
		}
		result.UploadedFiles = append(result.UploadedFiles, *info)
	}

	return result, nil
}

func (s *storageService) uploadOne(ctx context.Context, fh *multipart.FileHeader, submissionID string) (*models.UploadedFileInfo, error) {
	if fh.Size > maxUploadFileSize {
		return nil, fmt.Errorf("file too large: max %d bytes", maxUploadFileSize)
	}

	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !allowedExtensions[ext] {
		return nil, fmt.Errorf("file type not allowed: PDF, DOC, DOCX, TXT only")
	}
	contentType := fh.Header.Get("Content-Type")
	if contentType != "" && !allowedContentTypes[contentType] {
		return nil, fmt.Errorf("invalid file format: PDF, DOC, DOCX, TXT only")
	}

	src, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}
	defer src.Close()

	safeName := generateSafeFilename(fh.Filename)
	key := fmt.Sprintf("abstracts/%s/%s", submissionID, safeName)

	putCtx, cancel := context.WithTimeout(ctx, storageTimeout)
	defer cancel()

	_, err = s.client.PutObject(putCtx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        src,
		ContentType: aws.String(contentType),
	})
	if err != nil {
		log.Printf("S3 upload failed for %s: %v", fh.Filename, err)
		return nil, fmt.Errorf("upload failed")
	}

	return &models.UploadedFileInfo{
		OriginalName: fh.Filename,
		FileName:     safeName,
		Size:         fh.Size,
		Type:         contentType,
		Path:         fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.bucket, s.region, key),
		Key:          key,
		UploadedAt:   time.Now().UTC().Format(time.RFC3339),
	}, nil
}

func (s *storageService) SignedURL(ctx context.Context, key string) (string, error) {
	signCtx, cancel := context.WithTimeout(ctx, storageTimeout)
	defer cancel()

	out, err := s.presign.PresignGetObject(signCtx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	}, func(o *s3.PresignOptions) {
		o.Expires = signedURLExpiry
	})
	if err != nil {
		log.Println("Failed to presign URL:", err)
		return "", models.ErrorInternalServer{Message: "Could not generate signed URL"}
	}
	return out.URL, nil
}

// SignedURLsForFiles presigns every file row it can; malformed rows are
// skipped rather than failing the whole download.
func (s *storageService) SignedURLsForFiles(ctx context.Context, files []models.UploadedFile) []string {
	urls := make([]string, 0, len(files))
	for _, f := range files {
		key := KeyFromPath(f.FilePath)
		if key == "" {
			continue
		}
		url, err := s.SignedURL(ctx, key)
		if err != nil {
			continue
		}
		urls = append(urls, url)
	}
	return urls
}

// KeyFromPath recovers the S3 object key from a stored value that may be
// either a bare key or a full bucket URL from the legacy schema.
func KeyFromPath(path string) string {
	if path == "" {
		return ""
	}
	if i := strings.Index(path, ".com/"); i >= 0 {
		return path[i+len(".com/"):]
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return ""
	}
	return path
}

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9-_]`)

func generateSafeFilename(originalName string) string {
	ext := strings.ToLower(filepath.Ext(originalName))
	name := strings.TrimSuffix(filepath.Base(originalName), filepath.Ext(originalName))
	name = unsafeFilenameChars.ReplaceAllString(name, "_")
	if len(name) > 50 {
		name = name[:50]
	}
	short := strings.Split(uuid.NewString(), "-")[0]
	return fmt.Sprintf("%d_%s_%s%s", time.Now().UnixMilli(), short, name, ext)
}
