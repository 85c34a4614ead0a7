package packager

import (
	"github.com/phambaophuc/dpi-converter/internal/models"
)

// Packager turns converted images into a single deliverable.
type Packager struct{}

func NewPackager() *Packager {
	return &Packager{}
}

// Package returns a lone image unchanged and bundles two or more into a zip
// archive named models.ArchiveFilename.
func (p *Packager) Package(images []*models.ConvertedImage) (*models.DeliveryResult, error) {
	switch len(images) {
	case 0:
		return nil, models.ErrEmptyBatch
	case 1:
		img := images[0]
		return &models.DeliveryResult{
			Filename: img.Filename,
			Data:     img.Data,
			MimeType: img.Format.MimeType(),
			Entries:  []string{img.Filename},
		}, nil
	}

	entries := dedupeEntries(images)

	data, err := writeArchive(entries)
	if err != nil {
		return nil, err
	}

	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Filename
	}

	return &models.DeliveryResult{
		Filename: models.ArchiveFilename,
		Data:     data,
		MimeType: models.ArchiveMimeType,
		Archived: true,
		Entries:  names,
	}, nil
}

// dedupeEntries applies last-wins to repeated filenames: the later image
// replaces the earlier one in the earlier one's position.
func dedupeEntries(images []*models.ConvertedImage) []*models.ConvertedImage {
	index := make(map[string]int, len(images))
	entries := make([]*models.ConvertedImage, 0, len(images))

	for _, img := range images {
		if i, ok := index[img.Filename]; ok {
			entries[i] = img
			continue
		}
		index[img.Filename] = len(entries)
		entries = append(entries, img)
	}
	return entries
}
