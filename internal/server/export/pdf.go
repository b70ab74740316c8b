// Package export renders a user's month-grouped work log as a PDF document.
package export

import (
	"fmt"
	"strings"
	"time"

	"github.com/johnfercher/maroto/pkg/color"
	"github.com/johnfercher/maroto/pkg/consts"
	"github.com/johnfercher/maroto/pkg/pdf"
	"github.com/johnfercher/maroto/pkg/props"

	"github.com/dmitrijs2005/worklog/internal/server/worklog"
)

// ContentType is the MIME type of rendered documents.
const ContentType = "application/pdf"

// PDFRenderer lays out one section per month: a month heading, then a
// two-column table of dates and their comments.
type PDFRenderer struct{}

func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

// Render returns the PDF bytes for groups. owner appears in the header and
// generated is printed under it.
func (r *PDFRenderer) Render(owner string, generated time.Time, groups worklog.Grouped) ([]byte, error) {
	m := pdf.NewMaroto(consts.Portrait, consts.A4)
	m.SetPageMargins(20, 10, 20)

	m.RegisterHeader(func() {
		m.Row(10, func() {
			m.Col(12, func() {
				m.Text("Work log", props.Text{
					Top:   3,
					Style: consts.Bold,
					Align: consts.Center,
					Size:  16,
				})
			})
		})
		m.Row(8, func() {
			m.Col(12, func() {
				m.Text(fmt.Sprintf("%s, %s", owner, generated.UTC().Format("02 Jan 2006 15:04 MST")), props.Text{
					Style: consts.Normal,
					Align: consts.Center,
					Size:  10,
				})
			})
		})
	})

	headers := []string{"Date", "Comments"}
	grid := []uint{3, 9}

	for _, group := range groups {
		month := group.Month
		m.Row(10, func() {
			m.Col(12, func() {
				m.Text(month, props.Text{
					Top:   5,
					Style: consts.Bold,
					Size:  13,
					Align: consts.Left,
				})
			})
		})

		rows := make([][]string, 0, len(group.Records))
		for _, rec := range group.Records {
			rows = append(rows, []string{rec.Date, bulletList(rec.Comments)})
		}

		m.TableList(headers, rows, props.TableList{
			HeaderProp: props.TableListContent{
				Size:      10,
				GridSizes: grid,
			},
			ContentProp: props.TableListContent{
				Size:      10,
				GridSizes: grid,
			},
			Align:                consts.Left,
			AlternatedBackground: &color.Color{Red: 240, Green: 240, Blue: 240},
			HeaderContentSpace:   1,
			Line:                 false,
		})

		m.Row(5, func() {})
	}

	m.Row(12, func() {
		m.Col(12, func() {
			m.Text(fmt.Sprintf("Days logged: %d", groups.Count()), props.Text{
				Top:   4,
				Style: consts.Bold,
				Align: consts.Right,
				Size:  10,
			})
		})
	})

	buf, err := m.Output()
	if err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}

func bulletList(comments []string) string {
	lines := make([]string, len(comments))
	for i, c := range comments {
		lines[i] = "- " + c
	}
	return strings.Join(lines, "\n")
}
