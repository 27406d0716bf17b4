package service

import "github.com/blogicum/internal/config"

// pageSizer 列表分页参数归一化，默认每页数量来自 blog.paginate_by
type pageSizer struct {
	defaultSize int
	maxSize     int
}

func newPageSizer(blog config.BlogConfig) pageSizer {
	blog.Normalize()
	return pageSizer{defaultSize: blog.PaginateBy, maxSize: blog.MaxPageSize}
}

func (p pageSizer) normalize(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = p.defaultSize
	}
	if p.maxSize > 0 && pageSize > p.maxSize {
		pageSize = p.maxSize
	}
	return page, pageSize
}
