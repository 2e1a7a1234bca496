package domain

// AccountFilter selects a page of one owner's accounts. Empty fields do not filter.
type AccountFilter struct {
	Type     AccountType
	Status   AccountStatus
	Search   string
	Page     int
	PageSize int
}

// Pagination describes where a page sits within the full filtered result.
type Pagination struct {
	Page     int
	PageSize int
	Total    int64
	Pages    int64
}

// AccountPage is one page of a filtered listing.
type AccountPage struct {
	Accounts   []Account
	Pagination Pagination
}
