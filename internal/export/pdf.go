// Package export renders the catalog as documents for download.
package export

import (
	"io"

	"github.com/go-pdf/fpdf"
	"github.com/snnyvrz/shelfshare/apps/biblioteca-api/internal/model"
)

const ListTitle = "Lista de libros"

// BookList writes an A4 PDF with a heading and one "Título: ..." line per
// book, in the order given.
func BookList(w io.Writer, books []model.Book) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(ListTitle, true)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	// core fonts are cp1252; titles are UTF-8
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, tr(ListTitle), "", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "B", 12)
	for _, b := range books {
		pdf.Ln(10)
		pdf.CellFormat(0, 10, tr("Título: "+b.Title), "", 1, "L", false, 0, "")
	}

	return pdf.Output(w)
}
