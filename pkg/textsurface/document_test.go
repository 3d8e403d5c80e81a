package textsurface

import (
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestInsertAndDelete(t *testing.T) {
	doc := NewDocument("")

	require.NoError(t, doc.InsertText("hi"))
	require.NoError(t, doc.InsertText(" "))
	require.NoError(t, doc.InsertText("thére"))
	assert.Equal(t, "hi thére", doc.Text())
	assert.Equal(t, 8, doc.Cursor())

	require.NoError(t, doc.DeleteBackward())
	require.NoError(t, doc.DeleteBackward())
	require.NoError(t, doc.DeleteBackward())
	assert.Equal(t, "hi th", doc.Text())
	assert.Equal(t, 5, doc.Len())
}

func TestInsertAtCursor(t *testing.T) {
	doc := NewDocument("ac")
	doc.SetCursor(1)

	require.NoError(t, doc.InsertText("b"))
	assert.Equal(t, "abc", doc.Text())
	assert.Equal(t, 2, doc.Cursor())

	require.NoError(t, doc.InsertText("\n"))
	assert.Equal(t, "ab\nc", doc.Text())
}

func TestDeleteAtStart(t *testing.T) {
	doc := NewDocument("x")
	doc.SetCursor(-5)
	assert.Equal(t, 0, doc.Cursor())

	require.NoError(t, doc.DeleteBackward())
	assert.Equal(t, "x", doc.Text())

	doc.SetCursor(100)
	assert.Equal(t, 1, doc.Cursor())
	require.NoError(t, doc.DeleteBackward())
	require.NoError(t, doc.DeleteBackward())
	assert.Equal(t, "", doc.Text())
}
