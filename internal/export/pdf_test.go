package export

import (
	"bytes"
	"errors"
	"testing"

	"github.com/snnyvrz/shelfshare/apps/biblioteca-api/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookList_WritesPDF(t *testing.T) {
	books := []model.Book{
		{ID: 1, Title: "Cien años de soledad"},
		{ID: 2, Title: "La sombra del viento"},
	}

	var buf bytes.Buffer
	require.NoError(t, BookList(&buf, books))

	out := buf.Bytes()
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")), "missing pdf header")
	assert.Contains(t, string(out), "%%EOF")
}

func TestBookList_ManyBooksPaginate(t *testing.T) {
	books := make([]model.Book, 0, 80)
	for i := 0; i < 80; i++ {
		books = append(books, model.Book{ID: uint(i + 1), Title: "Libro"})
	}

	var small, large bytes.Buffer
	require.NoError(t, BookList(&small, books[:1]))
	require.NoError(t, BookList(&large, books))

	assert.Greater(t, large.Len(), small.Len())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestBookList_WriterError(t *testing.T) {
	err := BookList(failingWriter{}, []model.Book{{ID: 1, Title: "Niebla"}})
	assert.Error(t, err)
}
