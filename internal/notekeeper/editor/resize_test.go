package editor_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notekeeper/internal/notekeeper/editor"
)

func TestResize_EastHandleGrowsWithPositiveDelta(t *testing.T) {
	var s editor.ResizeSession
	require.NoError(t, s.Begin("se", 400, 300, 800))

	width, height, readout, err := s.Move(100)

	require.NoError(t, err)
	assert.Equal(t, 500, width)
	assert.Equal(t, 375, height, "height follows the aspect ratio")
	assert.Equal(t, "500 x 375", readout)
}

func TestResize_WestHandleGrowsWithNegativeDelta(t *testing.T) {
	var s editor.ResizeSession
	require.NoError(t, s.Begin("nw", 400, 200, 800))

	width, _, _, err := s.Move(-100)
	require.NoError(t, err)
	assert.Equal(t, 500, width)

	width, _, _, err = s.Move(100)
	require.NoError(t, err)
	assert.Equal(t, 300, width, "dragging a west handle right shrinks the image")
}

func TestResize_ClampsToMinimumWidth(t *testing.T) {
	var s editor.ResizeSession
	require.NoError(t, s.Begin("se", 400, 300, 800))

	width, _, _, err := s.Move(-10000)

	require.NoError(t, err)
	assert.Equal(t, editor.MinImageWidth, width)
}

func TestResize_ClampsToContainerWidth(t *testing.T) {
	var s editor.ResizeSession
	require.NoError(t, s.Begin("ne", 400, 300, 700))

	width, _, _, err := s.Move(10000)

	require.NoError(t, err)
	assert.Equal(t, 700, width)
}

func TestResize_EndReturnsFinalWidthAndResets(t *testing.T) {
	var s editor.ResizeSession
	require.NoError(t, s.Begin("se", 400, 300, 800))

	_, _, _, err := s.Move(50)
	require.NoError(t, err)

	final, err := s.End()
	require.NoError(t, err)
	assert.Equal(t, 450, final)
	assert.False(t, s.Active())

	_, err = s.End()
	assert.ErrorIs(t, err, editor.ErrResizeInactive)
}

func TestResize_BeginValidation(t *testing.T) {
	var s editor.ResizeSession

	err := s.Begin("north", 400, 300, 800)
	assert.ErrorIs(t, err, editor.ErrUnknownHandle)

	err = s.Begin("se", 0, 300, 800)
	assert.Error(t, err)

	require.NoError(t, s.Begin("se", 400, 300, 800))
	err = s.Begin("se", 400, 300, 800)
	assert.ErrorIs(t, err, editor.ErrResizeActive)
}

func TestResize_MoveBeforeBegin(t *testing.T) {
	var s editor.ResizeSession

	_, _, _, err := s.Move(10)
	assert.ErrorIs(t, err, editor.ErrResizeInactive)
}

func TestSetImageWidth_UpdatesOnlyTargetImage(t *testing.T) {
	doc := editor.NewDocument("")
	doc.InsertImage("data:image/png;base64,A")
	doc.InsertImage("data:image/png;base64,B")

	content := editor.SetImageWidth(doc.Content, 1, 550)

	assert.Contains(t, content, `style="width: 400px;"`, "first image keeps its width")
	assert.Contains(t, content, `style="width: 550px;"`)
	assert.Equal(t, 2, editor.CountImages(content))
}

func TestSetImageWidth_OutOfRangeLeavesContentAlone(t *testing.T) {
	doc := editor.NewDocument("")
	doc.InsertImage("data:image/png;base64,A")

	content := editor.SetImageWidth(doc.Content, 5, 550)
	assert.Equal(t, doc.Content, content)
}
