package utils

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

const maxAttachmentSize = 5 << 20 // 5 MiB per file

// SaveUploadedFile writes a multipart file into uploadDir under a unique
// name and returns the public path to store on the task.
func SaveUploadedFile(fileHeader *multipart.FileHeader, uploadDir string) (string, error) {
	if fileHeader.Size > maxAttachmentSize {
		return "", NewValidationError("attachment exceeds the 5MB size limit")
	}

	if err := os.MkdirAll(uploadDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %v", err)
	}

	src, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %v", err)
	}
	defer src.Close()

	filename := uuid.New().String() + filepath.Ext(fileHeader.Filename)
	destPath := filepath.Join(uploadDir, filename)

	dest, err := os.Create(destPath)
	if err != nil {
		return "", fmt.Errorf("failed to create attachment file: %v", err)
	}
	defer dest.Close()

	if _, err := io.Copy(dest, src); err != nil {
		os.Remove(destPath)
		return "", fmt.Errorf("failed to save attachment: %v", err)
	}

	return "/" + filepath.ToSlash(destPath), nil
}
