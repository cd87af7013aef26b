package post_test

import (
	"context"
	"testing"

	"murmur/internal/auth"
	"murmur/internal/db/dbtest"
	"murmur/internal/note"
	"murmur/internal/post"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	db    *gorm.DB
	posts *post.Store
	users *auth.Users
}

func setup(t *testing.T) fixture {
	t.Helper()
	gdb := dbtest.Open(t)
	return fixture{
		db:    gdb,
		posts: &post.Store{DB: gdb},
		users: &auth.Users{DB: gdb},
	}
}

func (f fixture) user(t *testing.T, username string) uint64 {
	t.Helper()
	u := &auth.User{
		Email:     username + "@example.com",
		Username:  username,
		Firstname: username,
		Lastname:  "Test",
		Password:  "pw",
	}
	require.NoError(t, f.users.Create(context.Background(), u))
	return u.ID
}

func count(t *testing.T, gdb *gorm.DB, model any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, gdb.Model(model).Count(&n).Error)
	return n
}

func TestCreatedPostHasEmptyView(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	uid := f.user(t, "alice")

	p, err := f.posts.Create(ctx, uid, "hello")
	require.NoError(t, err)
	assert.False(t, p.CreatedAt.IsZero())

	all, err := f.posts.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)

	views, err := f.posts.Views(ctx, all, uid)
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "hello", views[0].Content)
	assert.EqualValues(t, 0, views[0].LikeCount)
	assert.Empty(t, views[0].Comments)
	assert.False(t, views[0].Liked)
}

func TestLikesAreNotDeduplicated(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	alice := f.user(t, "alice")
	bob := f.user(t, "bob")

	p, err := f.posts.Create(ctx, alice, "hello")
	require.NoError(t, err)

	require.NoError(t, f.posts.AddLike(ctx, p.ID, alice))
	require.NoError(t, f.posts.AddLike(ctx, p.ID, alice))

	v, err := f.posts.View(ctx, *p, alice)
	require.NoError(t, err)
	assert.EqualValues(t, 2, v.LikeCount)
	assert.True(t, v.Liked)

	v, err = f.posts.View(ctx, *p, bob)
	require.NoError(t, err)
	assert.False(t, v.Liked)

	v, err = f.posts.View(ctx, *p, 0)
	require.NoError(t, err)
	assert.False(t, v.Liked)
}

func TestCommentsKeepStorageOrder(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	alice := f.user(t, "alice")
	bob := f.user(t, "bob")

	p, err := f.posts.Create(ctx, alice, "hello")
	require.NoError(t, err)
	require.NoError(t, f.posts.AddComment(ctx, p.ID, bob, "first"))
	require.NoError(t, f.posts.AddComment(ctx, p.ID, alice, "second"))

	comments, err := f.posts.Comments(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, comments, 2)
	assert.Equal(t, "first", comments[0].Content)
	assert.Equal(t, bob, comments[0].UserID)
	assert.Equal(t, "second", comments[1].Content)
}

func TestUpdateAndByUser(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	alice := f.user(t, "alice")
	bob := f.user(t, "bob")

	p, err := f.posts.Create(ctx, alice, "draft")
	require.NoError(t, err)
	_, err = f.posts.Create(ctx, bob, "bob's")
	require.NoError(t, err)

	require.NoError(t, f.posts.Update(ctx, p.ID, "final"))

	got, err := f.posts.ByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "final", got.Content)

	mine, err := f.posts.ByUser(ctx, alice)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, p.ID, mine[0].ID)
}

func TestByIDMissing(t *testing.T) {
	f := setup(t)

	_, err := f.posts.ByID(context.Background(), 42)
	assert.ErrorIs(t, err, post.ErrNotFound)
}

func TestDeletePostCascades(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	alice := f.user(t, "alice")

	p, err := f.posts.Create(ctx, alice, "doomed")
	require.NoError(t, err)
	keep, err := f.posts.Create(ctx, alice, "kept")
	require.NoError(t, err)

	require.NoError(t, f.posts.AddComment(ctx, p.ID, alice, "c"))
	require.NoError(t, f.posts.AddLike(ctx, p.ID, alice))
	require.NoError(t, f.posts.AddLike(ctx, keep.ID, alice))

	require.NoError(t, f.posts.Delete(ctx, p.ID))

	assert.EqualValues(t, 1, count(t, f.db, &post.Post{}))
	assert.EqualValues(t, 0, count(t, f.db, &post.Comment{}))
	assert.EqualValues(t, 1, count(t, f.db, &post.Like{}))
}

func TestDeleteUserCascades(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	notes := &note.Store{DB: f.db}
	alice := f.user(t, "alice")
	bob := f.user(t, "bob")

	ap, err := f.posts.Create(ctx, alice, "alice's")
	require.NoError(t, err)
	bp, err := f.posts.Create(ctx, bob, "bob's")
	require.NoError(t, err)

	// alice's activity on bob's post must go too
	require.NoError(t, f.posts.AddComment(ctx, bp.ID, alice, "hi bob"))
	require.NoError(t, f.posts.AddLike(ctx, bp.ID, alice))
	// bob's activity on alice's post goes with alice's post
	require.NoError(t, f.posts.AddComment(ctx, ap.ID, bob, "hi alice"))
	require.NoError(t, f.posts.AddLike(ctx, ap.ID, bob))
	_, err = notes.Create(ctx, alice, "t", "c")
	require.NoError(t, err)
	_, err = notes.Create(ctx, bob, "t", "c")
	require.NoError(t, err)

	require.NoError(t, f.users.Delete(ctx, alice))

	assert.EqualValues(t, 1, count(t, f.db, &auth.User{}))
	assert.EqualValues(t, 1, count(t, f.db, &post.Post{}))
	assert.EqualValues(t, 0, count(t, f.db, &post.Comment{}))
	assert.EqualValues(t, 0, count(t, f.db, &post.Like{}))
	assert.EqualValues(t, 1, count(t, f.db, &note.Note{}))
}

func TestLikeOnMissingPostFails(t *testing.T) {
	ctx := context.Background()
	f := setup(t)
	alice := f.user(t, "alice")

	assert.Error(t, f.posts.AddLike(ctx, 999, alice))
}
