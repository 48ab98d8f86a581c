package shared

// Filter carries list query options. Search matches case-insensitively
// against the fields each repository chooses to expose.
type Filter struct {
	Search string
}

// TotalPages returns ceil(total / pageSize)
func TotalPages(total int64, pageSize int) int {
	if pageSize <= 0 {
		return 0
	}
	pages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		pages++
	}
	return pages
}
