package model

import "fmt"

// Cache key patterns
const (
	CachePatternBlogList      = "blogs:list:*"
	CachePatternBloggerList   = "bloggers:list:*"
	CachePatternAuthorBlogs   = "blogs:author:*"
	CachePatternBlogDetail    = "blog:detail:*"
	cacheKeyBlogListFmt       = "blogs:list:page:%d"
	cacheKeyBloggerListFmt    = "bloggers:list:page:%d"
	cacheKeyAuthorBlogsFmt    = "blogs:author:%d:page:%d"
	cacheKeyAuthorBlogsPrefix = "blogs:author:%d:*"
	cacheKeyBlogDetailFmt     = "blog:detail:%d"
)

func BlogListCacheKey(page int) string {
	return fmt.Sprintf(cacheKeyBlogListFmt, page)
}

func BloggerListCacheKey(page int) string {
	return fmt.Sprintf(cacheKeyBloggerListFmt, page)
}

func AuthorBlogsCacheKey(authorID int64, page int) string {
	return fmt.Sprintf(cacheKeyAuthorBlogsFmt, authorID, page)
}

func AuthorBlogsCachePattern(authorID int64) string {
	return fmt.Sprintf(cacheKeyAuthorBlogsPrefix, authorID)
}

func BlogDetailCacheKey(blogID int64) string {
	return fmt.Sprintf(cacheKeyBlogDetailFmt, blogID)
}
