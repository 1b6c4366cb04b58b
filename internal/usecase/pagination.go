package usecase

const (
	defaultPageLimit = 20
	maxPageLimit     = 50
)

type Pagination struct {
	CurrentPage int
	TotalPages  int
	TotalItems  int
	HasNext     bool
	HasPrev     bool
}

// normalizePage applies defaults to page and limit. Zero means "not given".
func normalizePage(page, limit, def int) (int, int, error) {
	if page == 0 {
		page = 1
	}
	if limit == 0 {
		limit = def
	}
	if page < 1 || limit < 1 || limit > maxPageLimit {
		return 0, 0, ErrInvalidInput
	}
	return page, limit, nil
}

func paginate(page, limit, total int) Pagination {
	pages := 0
	if limit > 0 {
		pages = (total + limit - 1) / limit
	}
	return Pagination{
		CurrentPage: page,
		TotalPages:  pages,
		TotalItems:  total,
		HasNext:     page*limit < total,
		HasPrev:     page > 1,
	}
}

func validSort(sortBy, sortOrder string, allowed ...string) bool {
	if sortOrder != "" && sortOrder != "asc" && sortOrder != "desc" {
		return false
	}
	if sortBy == "" {
		return true
	}
	for _, a := range allowed {
		if a == sortBy {
			return true
		}
	}
	return false
}
