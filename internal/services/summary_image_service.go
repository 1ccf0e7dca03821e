package services

import (
	"country-service/internal/repository"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// SummaryImageService regenerates the cached summary artifact: total row
// count, the top five countries by estimated GDP, and a generation timestamp,
// drawn onto a fixed-size PNG. It reads committed state only and is always
// invoked off the request path.
type SummaryImageService struct {
	repo      repository.ICountryRepository
	imagePath string
}

type ISummaryImageService interface {
	Generate() error
}

func NewSummaryImageService(repo repository.ICountryRepository, imagePath string) ISummaryImageService {
	return &SummaryImageService{repo: repo, imagePath: imagePath}
}

func (s *SummaryImageService) Generate() error {
	total, err := s.repo.CountCountries()
	if err != nil {
		return fmt.Errorf("failed to read country count for summary: %w", err)
	}

	top5, err := s.repo.TopCountriesByGDP(5)
	if err != nil {
		return fmt.Errorf("failed to read top countries for summary: %w", err)
	}

	lines := []string{
		fmt.Sprintf("Total countries: %d", total),
		"Top 5 by estimated GDP:",
	}
	for i, c := range top5 {
		gdp := 0.0
		if c.EstimatedGDP != nil {
			gdp = *c.EstimatedGDP
		}
		lines = append(lines, fmt.Sprintf("%d. %s - %.2f", i+1, c.Name, gdp))
	}
	lines = append(lines, fmt.Sprintf("Timestamp: %s", time.Now().UTC().Format(time.RFC3339)))

	if err := s.render(lines); err != nil {
		return err
	}

	slog.Info("Summary image regenerated", "path", s.imagePath, "total", total)
	return nil
}

func (s *SummaryImageService) render(lines []string) error {
	const width, height = 1000, 600

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	background := color.RGBA{R: 245, G: 247, B: 250, A: 255}
	draw.Draw(img, img.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)

	drawer := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.RGBA{R: 20, G: 23, B: 26, A: 255}),
		Face: basicfont.Face7x13,
	}

	y := 40
	for _, line := range lines {
		drawer.Dot = fixed.P(40, y)
		drawer.DrawString(line)
		y += 40
	}

	if dir := filepath.Dir(s.imagePath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create summary image directory: %w", err)
		}
	}

	out, err := os.Create(s.imagePath)
	if err != nil {
		return fmt.Errorf("failed to create summary image file: %w", err)
	}
	defer out.Close()

	if err := png.Encode(out, img); err != nil {
		return fmt.Errorf("failed to encode summary image: %w", err)
	}
	return nil
}
