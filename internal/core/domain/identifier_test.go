package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIdentifier_IsFull(t *testing.T) {
	assert.True(t, Identifier("/").IsFull())
	assert.True(t, Identifier("/a/b/").IsFull())
	assert.False(t, Identifier("/a/b/c.html").IsFull())
	assert.False(t, Identifier("").IsFull())
}

func TestIdentifier_ParentCandidate(t *testing.T) {
	tests := []struct {
		id     Identifier
		want   Identifier
		wantOK bool
	}{
		{"/", "", false},
		{"/a/", "/", true},
		{"/a/b/", "/a/", true},
		{"/a/b/c.html", "/a/b/", true},
		{"/c.html", "/", true},
		{"orphan", "", false},
	}

	for _, tt := range tests {
		t.Run(string(tt.id), func(t *testing.T) {
			got, ok := tt.id.ParentCandidate()
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestIdentifier_WithRoot(t *testing.T) {
	assert.Equal(t, Identifier("/blog/post1/"), Identifier("/post1/").WithRoot("/blog/"))
	assert.Equal(t, Identifier("/blog/post1/"), Identifier("/post1/").WithRoot("/blog"))
	assert.Equal(t, Identifier("/post1/"), Identifier("/post1/").WithRoot("/"))
	assert.Equal(t, Identifier("/post1/"), Identifier("/post1/").WithRoot(""))
	assert.Equal(t, Identifier("/blog/"), Identifier("/").WithRoot("/blog/"))
	assert.Equal(t, Identifier("/blog/post1/"), Identifier("post1/").WithRoot("/blog/"))
	assert.Equal(t, Identifier("/post1/"), Identifier("post1/").WithRoot("/"))
	assert.Equal(t, Identifier("/blog/"), Identifier("").WithRoot("/blog/"))
}
