package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestViewRootAttachReleasesPreviousScope(t *testing.T) {
	v := NewViewRoot()
	var clicks []int
	release := v.Attach(3, func(i int) { clicks = append(clicks, i) })
	assert.Equal(t, 3, v.ListenerCount())

	v.Attach(2, func(i int) { clicks = append(clicks, 10+i) })
	assert.Equal(t, 2, v.ListenerCount())

	// releasing an old scope must not touch the live one
	release()
	assert.Equal(t, 2, v.ListenerCount())

	assert.True(t, v.Dispatch(1))
	assert.False(t, v.Dispatch(2))
	assert.Equal(t, []int{11}, clicks)
}

func TestViewRootRelease(t *testing.T) {
	v := NewViewRoot()
	release := v.Attach(4, func(int) {})
	release()
	assert.Equal(t, 0, v.ListenerCount())
	assert.False(t, v.Dispatch(0))
	release() // idempotent
	assert.Equal(t, 0, v.ListenerCount())
}
