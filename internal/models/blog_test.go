package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleLikeByDevice(t *testing.T) {
	b := &Blog{}

	liked := b.ToggleLike("device-1", "1.2.3.4", "ua")
	assert.True(t, liked)
	assert.Len(t, b.Likes, 1)

	// Same device likes again: the like comes off.
	liked = b.ToggleLike("device-1", "5.6.7.8", "ua")
	assert.False(t, liked)
	assert.Len(t, b.Likes, 0)
}

func TestToggleLikeFallsBackToIP(t *testing.T) {
	b := &Blog{}

	assert.True(t, b.ToggleLike("", "1.2.3.4", "ua"))
	assert.Len(t, b.Likes, 1)

	// No fingerprint, same IP: treated as the same visitor.
	assert.False(t, b.ToggleLike("", "1.2.3.4", "ua"))
	assert.Len(t, b.Likes, 0)
}

func TestToggleLikeDistinctDevices(t *testing.T) {
	b := &Blog{}

	assert.True(t, b.ToggleLike("device-1", "1.2.3.4", "ua"))
	assert.True(t, b.ToggleLike("device-2", "1.2.3.4", "ua"))
	assert.Len(t, b.Likes, 2)
}

func TestAddComment(t *testing.T) {
	b := &Blog{}

	c, err := b.AddComment("great post", "device-1", "1.2.3.4", "ua")
	require.NoError(t, err)
	assert.NotEmpty(t, c.CommentID)
	assert.Equal(t, "great post", c.Text)
	assert.Len(t, b.Comments, 1)
}

func TestAddCommentRejectsEmptyText(t *testing.T) {
	b := &Blog{}

	_, err := b.AddComment("   ", "device-1", "1.2.3.4", "ua")
	assert.ErrorIs(t, err, ErrEmptyComment)
	assert.Len(t, b.Comments, 0)
}
