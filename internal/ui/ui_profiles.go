package ui

import (
	"fmt"
	"log/slog"
	"sort"
	"strconv"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-biorhythm/internal/config"
	"github.com/tartampluch/go-biorhythm/internal/engine"
)

// profileRow is one line of the saved profiles table.
type profileRow struct {
	Profile   engine.Profile
	DaysAlive int

	// Next is the first critical day from today on, nil when none falls in the scan.
	Next *engine.CriticalEvent
}

// buildProfileRows computes the derived columns of every saved profile.
func buildProfileRows(profiles []engine.Profile, today time.Time) []profileRow {
	rows := make([]profileRow, 0, len(profiles))
	for _, p := range profiles {
		row := profileRow{Profile: p, DaysAlive: engine.DaysBetween(p.Date, today)}
		if events := engine.ScanCriticalDays(p.Date, today, 0, config.ProfileScanDays); len(events) > 0 {
			next := events[0]
			row.Next = &next
		}
		rows = append(rows, row)
	}
	return rows
}

// sortProfileRows orders rows by the given column. Rows without an upcoming
// critical day go last when sorting that column ascending. Ties keep their
// current order in both directions.
func sortProfileRows(rows []profileRow, col int, asc bool) {
	sort.SliceStable(rows, func(i, j int) bool {
		if asc {
			return profileRowLess(rows[i], rows[j], col)
		}
		return profileRowLess(rows[j], rows[i], col)
	})
}

func profileRowLess(a, b profileRow, col int) bool {
	switch col {
	case config.ColIDName:
		return strings.ToLower(a.Profile.Name) < strings.ToLower(b.Profile.Name)
	case config.ColIDDays:
		return a.DaysAlive < b.DaysAlive
	case config.ColIDNext:
		switch {
		case a.Next == nil:
			return false
		case b.Next == nil:
			return true
		default:
			return a.Next.Offset < b.Next.Offset
		}
	default: // config.ColIDDate
		if a.Profile.Date.Equal(b.Profile.Date) {
			return a.Profile.Name < b.Profile.Name
		}
		return a.Profile.Date.Before(b.Profile.Date)
	}
}

// ShowProfilesWindow lists the saved profiles with their upcoming critical
// day. Selecting a row loads it into the main window.
func (app *BiorhythmApp) ShowProfilesWindow() {
	if app.profilesWindow != nil {
		app.profilesWindow.RequestFocus()
		return
	}

	w := app.App.NewWindow(app.GetMsg(config.TKeyWinProfiles))
	app.profilesWindow = w
	w.Resize(fyne.NewSize(config.ProfilesWinWidth, config.ProfilesWinHeight))

	rows := buildProfileRows(app.Store.Profiles(), engine.Today(app.Clock))

	slog.Info(config.MsgOpenProfiles,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyCount, len(rows))

	currentSortCol := config.ColIDName
	sortAsc := true

	var table *widget.Table
	refreshTable := func() {
		sortProfileRows(rows, currentSortCol, sortAsc)
		slog.Debug(config.MsgProfilesSorted,
			config.LogKeyComponent, config.CompUI,
			config.LogKeySortCol, currentSortCol,
			config.LogKeySortAsc, sortAsc)
		table.Refresh()
	}

	table = widget.NewTable(
		func() (int, int) {
			return len(rows), config.ColCount
		},
		func() fyne.CanvasObject {
			return widget.NewLabel(config.TablePlaceholder)
		},
		func(id widget.TableCellID, o fyne.CanvasObject) {
			label := o.(*widget.Label)
			if id.Row >= len(rows) {
				return
			}
			label.SetText(app.profileCell(rows[id.Row], id.Col))
		},
	)

	table.ShowHeaderRow = true
	table.CreateHeader = func() fyne.CanvasObject {
		return widget.NewButton("Header", func() {})
	}
	table.UpdateHeader = func(id widget.TableCellID, o fyne.CanvasObject) {
		btn := o.(*widget.Button)

		var titleKey string
		switch id.Col {
		case config.ColIDName:
			titleKey = config.TKeyColName
		case config.ColIDDate:
			titleKey = config.TKeyColDate
		case config.ColIDDays:
			titleKey = config.TKeyColDays
		case config.ColIDNext:
			titleKey = config.TKeyColNext
		}

		text := app.GetMsg(titleKey)
		if id.Col == currentSortCol {
			if sortAsc {
				text += config.SortIconAsc
			} else {
				text += config.SortIconDesc
			}
		}
		btn.SetText(text)

		btn.OnTapped = func() {
			if currentSortCol == id.Col {
				sortAsc = !sortAsc
			} else {
				currentSortCol = id.Col
				sortAsc = true
			}
			refreshTable()
		}
	}

	table.OnSelected = func(id widget.TableCellID) {
		if id.Row < 0 || id.Row >= len(rows) {
			return
		}
		app.selectProfile(rows[id.Row].Profile)
		table.UnselectAll()
	}

	table.SetColumnWidth(config.ColIDName, config.ColWidthName)
	table.SetColumnWidth(config.ColIDDate, config.ColWidthDate)
	table.SetColumnWidth(config.ColIDDays, config.ColWidthDays)
	table.SetColumnWidth(config.ColIDNext, config.ColWidthNext)

	sortProfileRows(rows, currentSortCol, sortAsc)

	w.SetContent(container.NewBorder(nil, nil, nil, nil, table))
	w.SetOnClosed(func() {
		app.profilesWindow = nil
	})
	w.Show()
}

// profileCell formats one table cell.
func (app *BiorhythmApp) profileCell(row profileRow, col int) string {
	switch col {
	case config.ColIDName:
		if row.Profile.Name == "" {
			return config.NoValue
		}
		return row.Profile.Name
	case config.ColIDDate:
		return engine.FormatReferenceDate(row.Profile.Date)
	case config.ColIDDays:
		return strconv.Itoa(row.DaysAlive)
	case config.ColIDNext:
		if row.Next == nil {
			return config.NoValue
		}
		return fmt.Sprintf("%s  %s", row.Next.Date.Format(config.DateFormatSidebar), row.Next.LabelText())
	}
	return ""
}
