package services

import (
	"country-service/internal/models"
	"country-service/internal/repository"
)

type CountryService struct {
	repo repository.ICountryRepository
}

type ICountryService interface {
	ListCountries(params models.ListCountriesParams) ([]models.Country, error)
	GetCountryByName(name string) (*models.Country, error)
	DeleteCountryByName(name string) error
	GetCacheStatus() (*models.CacheStatus, error)
}

func NewCountryService(repo repository.ICountryRepository) ICountryService {
	return &CountryService{
		repo: repo,
	}
}

func (s *CountryService) ListCountries(params models.ListCountriesParams) ([]models.Country, error) {
	return s.repo.ListCountries(params)
}

func (s *CountryService) GetCountryByName(name string) (*models.Country, error) {
	return s.repo.GetCountryByName(name)
}

func (s *CountryService) DeleteCountryByName(name string) error {
	return s.repo.DeleteCountryByName(name)
}

func (s *CountryService) GetCacheStatus() (*models.CacheStatus, error) {
	total, err := s.repo.CountCountries()
	if err != nil {
		return nil, err
	}
	lastRefreshedAt, err := s.repo.GetLastRefreshedAt()
	if err != nil {
		return nil, err
	}
	return &models.CacheStatus{
		TotalCountries:  total,
		LastRefreshedAt: lastRefreshedAt,
	}, nil
}
