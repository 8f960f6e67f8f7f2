package service

import (
	"github.com/pawait/weatherview/internal/domain"
)

// DataRepository is re-exported from domain for convenience
type DataRepository = domain.SearchLogRepository
