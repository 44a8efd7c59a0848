package controllers_test

import (
	"fmt"
	"net/http"
	"time"

	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pulse-api/models"
)

func TestToggleLike(t *testing.T) {
	ts := newTestServer(t)
	author := ts.createUser(t, "user-a", "alice")
	liker := ts.createUser(t, "user-b", "bob")
	post := ts.createPost(t, "post-1", author.ID, "hello", time.Now())

	// Like
	w := ts.request(t, http.MethodPost, "/api/v1/posts/"+post.ID+"/like", liker.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body := decodeBody(t, w)
	assert.Equal(t, true, body["is_liked"])
	assert.Equal(t, 1, ts.postLikesCount(t, post.ID))

	// Second call returns to the original state: toggle idempotence.
	w = ts.request(t, http.MethodPost, "/api/v1/posts/"+post.ID+"/like", liker.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	body = decodeBody(t, w)
	assert.Equal(t, false, body["is_liked"])
	assert.Equal(t, 0, ts.postLikesCount(t, post.ID))

	var edgeCount int64
	ts.db.Model(&models.PostLike{}).Count(&edgeCount)
	assert.Equal(t, int64(0), edgeCount)
}

func TestToggleLikeUnknownPost(t *testing.T) {
	ts := newTestServer(t)
	user := ts.createUser(t, "user-a", "alice")

	w := ts.request(t, http.MethodPost, "/api/v1/posts/nope/like", user.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestToggleLikeRequiresAuth(t *testing.T) {
	ts := newTestServer(t)
	author := ts.createUser(t, "user-a", "alice")
	post := ts.createPost(t, "post-1", author.ID, "hello", time.Now())

	w := ts.request(t, http.MethodPost, "/api/v1/posts/"+post.ID+"/like", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, 0, ts.postLikesCount(t, post.ID))
}

func TestLikesCountClampsAtZero(t *testing.T) {
	ts := newTestServer(t)
	author := ts.createUser(t, "user-a", "alice")
	liker := ts.createUser(t, "user-b", "bob")
	post := ts.createPost(t, "post-1", author.ID, "hello", time.Now())

	// Drifted state: an edge exists but the counter already reads zero.
	require.NoError(t, ts.db.Create(&models.PostLike{PostID: post.ID, UserID: liker.ID}).Error)

	w := ts.request(t, http.MethodPost, "/api/v1/posts/"+post.ID+"/like", liker.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, ts.postLikesCount(t, post.ID))
}

func TestToggleBookmark(t *testing.T) {
	ts := newTestServer(t)
	author := ts.createUser(t, "user-a", "alice")
	reader := ts.createUser(t, "user-b", "bob")
	post := ts.createPost(t, "post-1", author.ID, "hello", time.Now())

	w := ts.request(t, http.MethodPost, "/api/v1/posts/"+post.ID+"/bookmark", reader.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, decodeBody(t, w)["is_bookmarked"])

	var post1 models.Post
	require.NoError(t, ts.db.First(&post1, "id = ?", post.ID).Error)
	assert.Equal(t, 1, post1.BookmarksCount)

	w = ts.request(t, http.MethodPost, "/api/v1/posts/"+post.ID+"/bookmark", reader.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, decodeBody(t, w)["is_bookmarked"])

	require.NoError(t, ts.db.First(&post1, "id = ?", post.ID).Error)
	assert.Equal(t, 0, post1.BookmarksCount)
}

func TestCreatePost(t *testing.T) {
	ts := newTestServer(t)
	author := ts.createUser(t, "user-a", "alice")

	w := ts.request(t, http.MethodPost, "/api/v1/posts", author.ID, map[string]interface{}{
		"content": "my first post",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	body := decodeBody(t, w)
	post := body["post"].(map[string]interface{})
	assert.Equal(t, "my first post", post["content"])
	assert.Equal(t, float64(0), post["likes_count"])
	assert.Equal(t, false, post["is_liked"])

	var user models.User
	require.NoError(t, ts.db.First(&user, "id = ?", author.ID).Error)
	assert.Equal(t, 1, user.PostCount)
}

func TestCreatePostValidation(t *testing.T) {
	ts := newTestServer(t)
	author := ts.createUser(t, "user-a", "alice")

	longContent := make([]byte, 281)
	for i := range longContent {
		longContent[i] = 'a'
	}

	w := ts.request(t, http.MethodPost, "/api/v1/posts", author.ID, map[string]interface{}{
		"content": string(longContent),
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ts.request(t, http.MethodPost, "/api/v1/posts", author.ID, map[string]interface{}{
		"content": "ok",
		"images": []string{
			"https://img.example/1.png",
			"https://img.example/2.png",
			"https://img.example/3.png",
			"https://img.example/4.png",
			"https://img.example/5.png",
		},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestDeletePostCascades(t *testing.T) {
	ts := newTestServer(t)
	author := ts.createUser(t, "user-a", "alice")
	liker := ts.createUser(t, "user-b", "bob")

	w := ts.request(t, http.MethodPost, "/api/v1/posts", author.ID, map[string]interface{}{"content": "bye"})
	require.Equal(t, http.StatusCreated, w.Code)
	postID := decodeBody(t, w)["post"].(map[string]interface{})["id"].(string)

	ts.request(t, http.MethodPost, "/api/v1/posts/"+postID+"/like", liker.ID, nil)

	// Only the author may delete.
	w = ts.request(t, http.MethodDelete, "/api/v1/posts/"+postID, liker.ID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = ts.request(t, http.MethodDelete, "/api/v1/posts/"+postID, author.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var likeCount int64
	ts.db.Model(&models.PostLike{}).Where("post_id = ?", postID).Count(&likeCount)
	assert.Equal(t, int64(0), likeCount)

	var user models.User
	require.NoError(t, ts.db.First(&user, "id = ?", author.ID).Error)
	assert.Equal(t, 0, user.PostCount)
}

func TestFeedLatest(t *testing.T) {
	ts := newTestServer(t)
	author := ts.createUser(t, "user-a", "alice")
	base := time.Now().Add(-time.Hour)
	ts.createPost(t, "post-1", author.ID, "first", base)
	ts.createPost(t, "post-2", author.ID, "second", base.Add(time.Minute))
	ts.createPost(t, "post-3", author.ID, "third", base.Add(2*time.Minute))

	w := ts.request(t, http.MethodGet, "/api/v1/posts?type=latest", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	posts := body["posts"].([]interface{})
	require.Len(t, posts, 3)
	assert.Equal(t, "post-3", posts[0].(map[string]interface{})["id"])
	assert.Equal(t, "post-2", posts[1].(map[string]interface{})["id"])
	assert.Equal(t, "post-1", posts[2].(map[string]interface{})["id"])
	assert.Nil(t, body["next_cursor"])
}

func TestFeedFollowingAnonymousIsEmpty(t *testing.T) {
	ts := newTestServer(t)
	author := ts.createUser(t, "user-a", "alice")
	ts.createPost(t, "post-1", author.ID, "hello", time.Now())

	w := ts.request(t, http.MethodGet, "/api/v1/posts", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeBody(t, w)
	assert.Empty(t, body["posts"])
	assert.Nil(t, body["next_cursor"])
}

func TestFeedFollowingRestrictsAuthors(t *testing.T) {
	ts := newTestServer(t)
	viewer := ts.createUser(t, "user-v", "viewer")
	followed := ts.createUser(t, "user-f", "followed")
	stranger := ts.createUser(t, "user-s", "stranger")

	base := time.Now().Add(-time.Hour)
	ts.createPost(t, "post-1", viewer.ID, "mine", base)
	ts.createPost(t, "post-2", followed.ID, "followed post", base.Add(time.Minute))
	ts.createPost(t, "post-3", stranger.ID, "stranger post", base.Add(2*time.Minute))

	require.NoError(t, ts.db.Create(&models.Follow{FollowerID: viewer.ID, FollowingID: followed.ID}).Error)

	w := ts.request(t, http.MethodGet, "/api/v1/posts?type=following", viewer.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	posts := decodeBody(t, w)["posts"].([]interface{})
	require.Len(t, posts, 2)
	assert.Equal(t, "post-2", posts[0].(map[string]interface{})["id"])
	assert.Equal(t, "post-1", posts[1].(map[string]interface{})["id"])
}

func TestFeedTrendingTieBreaks(t *testing.T) {
	ts := newTestServer(t)
	author := ts.createUser(t, "user-a", "alice")

	base := time.Now().Add(-time.Hour)
	p1 := ts.createPost(t, "post-1", author.ID, "t1", base)
	p2 := ts.createPost(t, "post-2", author.ID, "t2", base.Add(time.Minute))
	p3 := ts.createPost(t, "post-3", author.ID, "t3", base.Add(2*time.Minute))

	require.NoError(t, ts.db.Model(&models.Post{}).Where("id = ?", p1.ID).UpdateColumn("likes_count", 5).Error)
	require.NoError(t, ts.db.Model(&models.Post{}).Where("id = ?", p2.ID).UpdateColumn("likes_count", 5).Error)
	require.NoError(t, ts.db.Model(&models.Post{}).Where("id = ?", p3.ID).UpdateColumn("likes_count", 2).Error)

	w := ts.request(t, http.MethodGet, "/api/v1/posts?type=trending&limit=2", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	posts := decodeBody(t, w)["posts"].([]interface{})
	require.Len(t, posts, 2)
	// Tied like counts fall through to creation time desc: the later post
	// of the tied pair comes first.
	assert.Equal(t, "post-2", posts[0].(map[string]interface{})["id"])
	assert.Equal(t, "post-1", posts[1].(map[string]interface{})["id"])
}

func TestFeedPaginationTerminates(t *testing.T) {
	ts := newTestServer(t)
	author := ts.createUser(t, "user-a", "alice")

	base := time.Now().Add(-time.Hour)
	total := 5
	for i := 1; i <= total; i++ {
		ts.createPost(t, fmt.Sprintf("post-%03d", i), author.ID, fmt.Sprintf("post %d", i), base.Add(time.Duration(i)*time.Minute))
	}

	seen := map[string]bool{}
	cursor := ""
	for page := 0; page < 10; page++ {
		path := "/api/v1/posts?type=latest&limit=2"
		if cursor != "" {
			path += "&cursor=" + cursor
		}

		w := ts.request(t, http.MethodGet, path, "", nil)
		require.Equal(t, http.StatusOK, w.Code)
		body := decodeBody(t, w)

		for _, p := range body["posts"].([]interface{}) {
			id := p.(map[string]interface{})["id"].(string)
			assert.False(t, seen[id], "post %s returned twice", id)
			seen[id] = true
		}

		next, ok := body["next_cursor"].(string)
		if !ok {
			break
		}
		cursor = next
	}

	assert.Len(t, seen, total)
}

func TestFeedEnrichment(t *testing.T) {
	ts := newTestServer(t)
	author := ts.createUser(t, "user-a", "alice")
	viewer := ts.createUser(t, "user-b", "bob")
	post := ts.createPost(t, "post-1", author.ID, "hello", time.Now())

	ts.request(t, http.MethodPost, "/api/v1/posts/"+post.ID+"/like", viewer.ID, nil)

	w := ts.request(t, http.MethodGet, "/api/v1/posts?type=latest", viewer.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	posts := decodeBody(t, w)["posts"].([]interface{})
	require.Len(t, posts, 1)
	item := posts[0].(map[string]interface{})
	assert.Equal(t, true, item["is_liked"])
	assert.Equal(t, false, item["is_bookmarked"])

	// Author summary never carries an email.
	authorJSON := item["author"].(map[string]interface{})
	_, hasEmail := authorJSON["email"]
	assert.False(t, hasEmail)

	// Anonymous viewers see both flags false.
	w = ts.request(t, http.MethodGet, "/api/v1/posts?type=latest", "", nil)
	posts = decodeBody(t, w)["posts"].([]interface{})
	assert.Equal(t, false, posts[0].(map[string]interface{})["is_liked"])
}

func TestFeedLimitValidation(t *testing.T) {
	ts := newTestServer(t)

	w := ts.request(t, http.MethodGet, "/api/v1/posts?limit=51", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = ts.request(t, http.MethodGet, "/api/v1/posts?type=bogus", "", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestBookmarksList(t *testing.T) {
	ts := newTestServer(t)
	author := ts.createUser(t, "user-a", "alice")
	reader := ts.createUser(t, "user-b", "bob")

	base := time.Now().Add(-time.Hour)
	p1 := ts.createPost(t, "post-1", author.ID, "one", base)
	p2 := ts.createPost(t, "post-2", author.ID, "two", base.Add(time.Minute))
	ts.createPost(t, "post-3", author.ID, "three", base.Add(2*time.Minute))

	ts.request(t, http.MethodPost, "/api/v1/posts/"+p1.ID+"/bookmark", reader.ID, nil)
	ts.request(t, http.MethodPost, "/api/v1/posts/"+p2.ID+"/bookmark", reader.ID, nil)

	w := ts.request(t, http.MethodGet, "/api/v1/bookmarks", reader.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	posts := decodeBody(t, w)["posts"].([]interface{})
	require.Len(t, posts, 2)
	for _, p := range posts {
		assert.Equal(t, true, p.(map[string]interface{})["is_bookmarked"])
	}

	w = ts.request(t, http.MethodGet, "/api/v1/bookmarks", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
