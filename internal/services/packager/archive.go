package packager

import (
	"archive/zip"
	"bytes"
	"fmt"
	"time"

	"github.com/phambaophuc/dpi-converter/internal/models"
)

func writeArchive(images []*models.ConvertedImage) ([]byte, error) {
	buffer := &bytes.Buffer{}
	zw := zip.NewWriter(buffer)
	now := time.Now()

	for _, img := range images {
		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:     img.Filename,
			Method:   zip.Deflate,
			Modified: now,
		})
		if err != nil {
			zw.Close()
			return nil, fmt.Errorf("failed to add %q to archive: %w", img.Filename, err)
		}
		if _, err := w.Write(img.Data); err != nil {
			zw.Close()
			return nil, fmt.Errorf("failed to write %q to archive: %w", img.Filename, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize archive: %w", err)
	}
	return buffer.Bytes(), nil
}
