package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix     = "user:%d"
	ListingKeyPrefix  = "listing:%d"
	BlogPostKeyPrefix = "blog:%d"
	BlogListKey       = "blogs:all"
	BandListKey       = "bands:all"
)

const (
	UserTTL     = 5 * time.Minute
	ListingTTL  = 10 * time.Minute
	BlogPostTTL = 10 * time.Minute
	ListTTL     = 2 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func ListingKey(listingID uint) string {
	return fmt.Sprintf(ListingKeyPrefix, listingID)
}

func BlogPostKey(blogID uint) string {
	return fmt.Sprintf(BlogPostKeyPrefix, blogID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidateListing(ctx context.Context, listingID uint) {
	Invalidate(ctx, ListingKey(listingID))
}

func InvalidateBlogPost(ctx context.Context, blogID uint) {
	Invalidate(ctx, BlogPostKey(blogID))
	Invalidate(ctx, BlogListKey)
}

func InvalidateBandList(ctx context.Context) {
	Invalidate(ctx, BandListKey)
}
