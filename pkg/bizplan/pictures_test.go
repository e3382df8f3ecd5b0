package bizplan

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/ukaji3/bizplan-go/pkg/bizplan/models"
)

func writePictureWorkbook(t *testing.T) string {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 8, 8))))

	f := excelize.NewFile()
	defer f.Close()
	for _, cell := range []string{"D5", "B2"} {
		require.NoError(t, f.AddPictureFromBytes("Sheet1", cell, &excelize.Picture{
			Extension: ".png",
			File:      buf.Bytes(),
			Format:    &excelize.GraphicOptions{},
		}))
	}
	path := filepath.Join(t.TempDir(), "pictures.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestSheetImages(t *testing.T) {
	path := writePictureWorkbook(t)

	imgs, err := SheetImages(path, "Sheet1")
	require.NoError(t, err)
	require.Len(t, imgs, 2)
	assert.Equal(t, "그림 1", imgs[0].Caption)
	assert.Equal(t, "그림 2", imgs[1].Caption)
	assert.NotEmpty(t, imgs[0].Data)

	imgs, err = SheetImages(path, "")
	require.NoError(t, err)
	assert.Len(t, imgs, 2)

	imgs, err = SheetImages(path, "없음")
	require.NoError(t, err)
	assert.Empty(t, imgs)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	imgs, err = SheetImagesFromBytes(data, "Sheet1")
	require.NoError(t, err)
	assert.Len(t, imgs, 2)
}

func TestSheetImagesErrors(t *testing.T) {
	_, err := SheetImages(filepath.Join(t.TempDir(), "none.xlsx"), "")
	assert.True(t, errors.Is(err, ErrFileNotFound))

	_, err = SheetImagesFromBytes([]byte("plain text"), "")
	assert.True(t, errors.Is(err, ErrInvalidFormat))
}

func TestSectionImagesOrder(t *testing.T) {
	pics := map[string][]models.Picture{
		"Sheet1": {
			{Name: "c", Row: 4, Col: 0, Data: []byte("c")},
			{Name: "b", Row: 1, Col: 3, Data: []byte("b")},
			{Name: "a", Row: 1, Col: 1, Data: []byte("a")},
		},
	}
	imgs := sectionImages(pics, "Sheet1")
	require.Len(t, imgs, 3)
	assert.Equal(t, []byte("a"), imgs[0].Data)
	assert.Equal(t, []byte("b"), imgs[1].Data)
	assert.Equal(t, []byte("c"), imgs[2].Data)
}
