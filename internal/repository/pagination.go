package repository

import "gorm.io/gorm"

// applyPagination 按页码和页大小追加 Limit/Offset。
// pageSize 不是正数时视为不分页，页码从 1 开始，小于 1 按第一页处理。
func applyPagination(query *gorm.DB, page, pageSize int) *gorm.DB {
	if query == nil {
		return nil
	}
	if pageSize <= 0 {
		return query
	}
	if page < 1 {
		page = 1
	}
	return query.Limit(pageSize).Offset((page - 1) * pageSize)
}
