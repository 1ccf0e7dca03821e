package services

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"country-service/internal/models"

	"github.com/stretchr/testify/assert"
)

func seedFakeRepo(repo *fakeCountryRepository, names []string, gdps []float64) {
	rows := make([]models.Country, 0, len(names))
	for i, name := range names {
		gdp := gdps[i]
		rows = append(rows, models.Country{Name: name, EstimatedGDP: &gdp})
	}
	repo.RefreshSnapshot(nil, rows, time.Now().UTC())
}

func TestSummaryImage_GeneratesDecodablePNG(t *testing.T) {
	repo := newFakeCountryRepository()
	seedFakeRepo(repo,
		[]string{"Nigeria", "Ghana", "Kenya", "Togo", "Benin", "Chad"},
		[]float64{6e11, 5e11, 4e11, 3e11, 2e11, 1e11})

	imagePath := filepath.Join(t.TempDir(), "cache", "summary.png")
	service := NewSummaryImageService(repo, imagePath)

	err := service.Generate()

	assert.NoError(t, err)
	file, err := os.Open(imagePath)
	assert.NoError(t, err, "parent directory should be created on demand")
	defer file.Close()

	img, err := png.Decode(file)
	assert.NoError(t, err)
	assert.Equal(t, 1000, img.Bounds().Dx())
	assert.Equal(t, 600, img.Bounds().Dy())
}

func TestSummaryImage_EmptyStore(t *testing.T) {
	repo := newFakeCountryRepository()
	imagePath := filepath.Join(t.TempDir(), "summary.png")
	service := NewSummaryImageService(repo, imagePath)

	err := service.Generate()

	assert.NoError(t, err)
	_, statErr := os.Stat(imagePath)
	assert.NoError(t, statErr)
}

func TestSummaryImage_UnwritablePathReturnsError(t *testing.T) {
	repo := newFakeCountryRepository()
	blocker := filepath.Join(t.TempDir(), "blocker")
	assert.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	// A regular file in the directory position makes MkdirAll fail.
	service := NewSummaryImageService(repo, filepath.Join(blocker, "summary.png"))

	err := service.Generate()

	assert.Error(t, err)
}
