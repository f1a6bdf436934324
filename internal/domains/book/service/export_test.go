package service

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"bookcatalog-backend/internal/domains/book/model"
)

func TestExportBooks(t *testing.T) {
	f := newFixture(t)
	seedBook(f, "alice", nil)
	seedBook(f, "bob", strPtr("http://localhost:8080/api/books/cover/2"))

	data, err := f.svc.ExportBooks(context.Background(), model.PageRequest{Size: 10})
	require.NoError(t, err)

	xl, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer xl.Close()

	rows, err := xl.GetRows(exportSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, exportHeaders, rows[0])
	assert.Equal(t, "2", rows[1][0])
	assert.Equal(t, "Bob", rows[1][4])
	assert.Equal(t, "http://localhost:8080/api/books/cover/2", rows[1][5])
	assert.Equal(t, "1", rows[2][0])
}

func TestExportBooks_InvalidPage(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.ExportBooks(context.Background(), model.PageRequest{Size: 500})
	assert.ErrorIs(t, err, model.ErrInvalidPageLimit)
}
