package service

import (
	"bytes"
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"bookcatalog-backend/internal/domains/book/model"
)

const exportSheet = "Books"

var exportHeaders = []string{"ID", "Title", "Description", "Category", "Owner", "Image URL", "Created At"}

// ExportBooks xuất một trang listing ra file .xlsx
func (s *BookService) ExportBooks(ctx context.Context, req model.PageRequest) ([]byte, error) {
	page, err := s.ListBooks(ctx, req)
	if err != nil {
		return nil, err
	}

	f, err := buildBooksExcelFile(page.Books)
	if err != nil {
		return nil, fmt.Errorf("failed to build excel file: %w", err)
	}
	defer f.Close()

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write excel file: %w", err)
	}
	return buf.Bytes(), nil
}

func buildBooksExcelFile(books []model.BookSummary) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, err
	}

	// Row 1: Header
	for i, h := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(exportSheet, cell, h); err != nil {
			return nil, err
		}
	}
	if style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		lastCol, _ := excelize.ColumnNumberToName(len(exportHeaders))
		_ = f.SetCellStyle(exportSheet, "A1", lastCol+"1", style)
	}

	// Data rows, bắt đầu từ row 2
	for i, b := range books {
		image := ""
		if b.ImageURL != nil {
			image = *b.ImageURL
		}
		values := []interface{}{
			b.BookID, b.Title, b.Description, b.CategoryName, b.UserName, image,
			b.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(exportSheet, cell, &values); err != nil {
			return nil, err
		}
	}

	return f, nil
}
