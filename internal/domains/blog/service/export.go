package service

import (
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"blog-backend/internal/domains/blog/model"
)

const (
	blogsSheet    = "Blogs"
	commentsSheet = "Comments"
)

// ExportBlogs tạo file Excel của blogs theo filter (cột author, name, post_date)
func (s *adminService) ExportBlogs(ctx context.Context, filter model.ListFilter) (*excelize.File, error) {
	items, total, err := s.ListBlogs(ctx, filter, 1, s.exportLimit)
	if err != nil {
		return nil, err
	}

	rows := make([][]interface{}, len(items))
	for i, b := range items {
		rows[i] = []interface{}{b.ID, b.Author.Username, b.Name, b.PostDate}
	}

	f, err := buildWorkbook(blogsSheet, []string{"ID", "Author", "Name", "Post Date"}, rows, total)
	if err != nil {
		return nil, fmt.Errorf("failed to build blogs workbook: %w", err)
	}
	return f, nil
}

// ExportComments tạo file Excel của comments theo filter (cột description, blog, author, post_date)
func (s *adminService) ExportComments(ctx context.Context, filter model.ListFilter) (*excelize.File, error) {
	items, total, err := s.ListComments(ctx, filter, 1, s.exportLimit)
	if err != nil {
		return nil, err
	}

	rows := make([][]interface{}, len(items))
	for i, c := range items {
		rows[i] = []interface{}{c.ID, c.Title, c.BlogName, c.Author.Username, c.PostDate}
	}

	f, err := buildWorkbook(commentsSheet, []string{"ID", "Description", "Blog", "Author", "Post Date"}, rows, total)
	if err != nil {
		return nil, fmt.Errorf("failed to build comments workbook: %w", err)
	}
	return f, nil
}

// TruncatedNote là dòng ghi chú cuối sheet khi export bị cắt ở exportLimit
func TruncatedNote(shown int, total int64) string {
	return fmt.Sprintf("Truncated: showing %d of %d rows", shown, total)
}

// buildWorkbook ghi header + rows; total > len(rows) thì thêm dòng ghi chú
func buildWorkbook(sheet string, headers []string, rows [][]interface{}, total int64) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := fillSheet(f, sheet, headers, rows, total); err != nil {
		_ = f.Close()
		return nil, err
	}
	return f, nil
}

func fillSheet(f *excelize.File, sheet string, headers []string, rows [][]interface{}, total int64) error {
	// Rename default sheet
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}

	// Row 1: Header
	for col, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err == nil {
		lastHeader, _ := excelize.CoordinatesToCellName(len(headers), 1)
		_ = f.SetCellStyle(sheet, "A1", lastHeader, headerStyle)
	}

	// Data rows, bắt đầu từ row 2
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}

	if total > int64(len(rows)) {
		cell, _ := excelize.CoordinatesToCellName(1, len(rows)+2)
		if err := f.SetCellValue(sheet, cell, TruncatedNote(len(rows), total)); err != nil {
			return err
		}
	}

	return nil
}
