// Package export renders bookings as spreadsheets for landlords.
package export

import (
	"bytes"
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/meshackowase-commits/HOSTESserch/internal/models"
	"github.com/meshackowase-commits/HOSTESserch/internal/store"
)

// SheetName is the worksheet the bookings are written to.
const SheetName = "Bookings"

// BookingHeader lists the exported columns in order.
var BookingHeader = []string{
	"Booking ID",
	"Hostel",
	"Student",
	"Phone",
	"Status",
	"Check-in",
	"Check-out",
	"Amount (KSh)",
	"Notes",
	"Created",
}

var columnWidths = []float64{38, 25, 25, 18, 12, 12, 12, 14, 50, 20}

// Row is one booking with the names it references resolved.
type Row struct {
	Booking      models.Booking
	HostelName   string
	StudentName  string
	StudentPhone string
}

// Resolve looks up the hostel and student of each booking. Missing rows
// leave the names empty.
func Resolve(ctx context.Context, s store.DataStore, bookings []models.Booking) ([]Row, error) {
	hostels := map[string]string{}
	students := map[string]*models.Profile{}

	rows := make([]Row, len(bookings))
	for i, b := range bookings {
		name, ok := hostels[b.HostelID]
		if !ok {
			h, err := s.GetHostel(ctx, b.HostelID)
			if err != nil {
				return nil, fmt.Errorf("load hostel %s: %w", b.HostelID, err)
			}
			if h != nil {
				name = h.Name
			}
			hostels[b.HostelID] = name
		}

		p, ok := students[b.StudentID]
		if !ok {
			var err error
			p, err = s.GetProfileByUserID(ctx, b.StudentID)
			if err != nil {
				return nil, fmt.Errorf("load profile %s: %w", b.StudentID, err)
			}
			students[b.StudentID] = p
		}

		rows[i] = Row{Booking: b, HostelName: name}
		if p != nil {
			rows[i].StudentName = p.FullName
			if p.PhoneNumber != nil {
				rows[i].StudentPhone = *p.PhoneNumber
			}
		}
	}
	return rows, nil
}

// BookingsXLSX writes rows to a single-sheet workbook with a frozen,
// styled header row.
func BookingsXLSX(rows []Row) ([]byte, error) {
	f := excelize.NewFile()

	index, err := f.NewSheet(SheetName)
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.DeleteSheet("Sheet1")
	f.SetActiveSheet(index)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6F3FF"},
			Pattern: 1,
		},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
	})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to create header style: %w", err)
	}

	for col, header := range BookingHeader {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to convert coordinates: %w", err)
		}
		if err := f.SetCellValue(SheetName, cell, header); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set header cell %s: %w", cell, err)
		}
		if err := f.SetCellStyle(SheetName, cell, cell, headerStyle); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set header style: %w", err)
		}

		name, err := excelize.ColumnNumberToName(col + 1)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to convert column number: %w", err)
		}
		if err := f.SetColWidth(SheetName, name, name, columnWidths[col]); err != nil {
			f.Close()
			return nil, fmt.Errorf("failed to set column width: %w", err)
		}
	}

	for i, r := range rows {
		for col, value := range values(r) {
			if value == nil || value == "" {
				continue
			}
			if err := setCellValue(f, col+1, i+2, value); err != nil {
				f.Close()
				return nil, fmt.Errorf("failed to set cell value at row %d, col %d: %w", i+2, col+1, err)
			}
		}
	}

	if err := f.SetPanes(SheetName, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	}); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to freeze panes: %w", err)
	}

	// the file must stay open until it is written out
	var buf bytes.Buffer
	if _, err := f.WriteTo(&buf); err != nil {
		f.Close()
		return nil, fmt.Errorf("failed to write to buffer: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("failed to close file: %w", err)
	}
	return buf.Bytes(), nil
}

// values lays out r in BookingHeader order.
func values(r Row) []any {
	b := r.Booking
	out := []any{
		b.ID,
		r.HostelName,
		r.StudentName,
		r.StudentPhone,
		string(b.Status),
		nil,
		nil,
		nil,
		nil,
		b.CreatedAt.UTC().Format("2006-01-02 15:04:05"),
	}
	if b.CheckInDate != nil {
		out[5] = b.CheckInDate.String()
	}
	if b.CheckOutDate != nil {
		out[6] = b.CheckOutDate.String()
	}
	if b.TotalAmount != nil {
		out[7] = *b.TotalAmount
	}
	if b.Notes != nil {
		out[8] = *b.Notes
	}
	return out
}

func setCellValue(f *excelize.File, col, row int, value any) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	return f.SetCellValue(SheetName, cell, value)
}
