package models

// ListCountriesParams are the validated query parameters of GET /countries.
type ListCountriesParams struct {
	Region   *string
	Currency *string
	Sort     string
	Page     int
	Limit    int
}

// Sort orders accepted by the list endpoint.
const (
	SortGDPDesc        = "gdp_desc"
	SortGDPAsc         = "gdp_asc"
	SortNameAsc        = "name_asc"
	SortPopulationDesc = "population_desc"
)
