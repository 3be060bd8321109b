package tui

import (
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

type pickerKind int

const (
	pickBook pickerKind = iota
	pickChapter
)

// picker is the popup list used to add a book or a chapter.
type picker struct {
	kind     pickerKind
	book     string
	books    []string
	chapters []int
	cursor   int
}

func (p *picker) len() int {
	if p.kind == pickBook {
		return len(p.books)
	}
	return len(p.chapters)
}

// selectionRow is a book row (chapter 0) or one of its chapter rows.
type selectionRow struct {
	book    string
	chapter int
}

func (m *Model) openSelection() {
	sel, err := m.deps.Progress.Selection(m.ctx, m.profile)
	if err != nil {
		m.setError("open known verses", err)
		return
	}
	m.selection = sel
	m.selCursor = 0
	m.picker = nil
	m.screen = screenSelection
}

func (m *Model) selectionRows() []selectionRow {
	var rows []selectionRow
	for _, b := range m.selection.Books() {
		rows = append(rows, selectionRow{book: b.Book})
		for _, c := range b.Chapters {
			rows = append(rows, selectionRow{book: b.Book, chapter: c.Chapter})
		}
	}
	return rows
}

func (m *Model) currentRow() (selectionRow, bool) {
	rows := m.selectionRows()
	if m.selCursor < 0 || m.selCursor >= len(rows) {
		return selectionRow{}, false
	}
	return rows[m.selCursor], true
}

func (m *Model) updateSelection(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if m.picker != nil {
		m.updatePicker(key)
		return m, nil
	}

	rows := m.selectionRows()
	switch key.String() {
	case "up", "k":
		if m.selCursor > 0 {
			m.selCursor--
		}
	case "down", "j":
		if m.selCursor < len(rows)-1 {
			m.selCursor++
		}
	case "b":
		m.openBookPicker()
	case "c":
		if row, ok := m.currentRow(); ok {
			m.openChapterPicker(row.book)
		}
	case "left", "h":
		m.stepHighestVerse(-1)
	case "right", "l":
		m.stepHighestVerse(1)
	case "d", "delete", "backspace":
		row, ok := m.currentRow()
		if !ok {
			break
		}
		if row.chapter == 0 {
			m.selection.RemoveBook(row.book)
		} else {
			m.selection.RemoveChapter(row.book, row.chapter)
		}
		m.selCursor = max(0, min(m.selCursor, len(m.selectionRows())-1))
	case "s", "ctrl+s":
		if err := m.selection.Validate(); err != nil {
			m.setError("Cannot save yet: "+err.Error(), nil)
			break
		}
		if err := m.deps.Progress.Save(m.ctx, m.profile, m.selection); err != nil {
			m.setError("save known verses", err)
			break
		}
		m.screen = screenMenu
		m.setInfo("Known verses saved.")
	case "esc":
		m.screen = screenMenu
	}
	return m, nil
}

func (m *Model) openBookPicker() {
	selected := make(map[string]bool)
	for _, b := range m.selection.Books() {
		selected[b.Book] = true
	}

	var books []string
	for _, b := range m.selection.AvailableBooks() {
		if !selected[b] {
			books = append(books, b)
		}
	}
	if len(books) == 0 {
		m.setInfo("Every book is already selected.")
		return
	}
	m.picker = &picker{kind: pickBook, books: books}
}

func (m *Model) openChapterPicker(book string) {
	var have []int
	for _, b := range m.selection.Books() {
		if b.Book == book {
			for _, c := range b.Chapters {
				have = append(have, c.Chapter)
			}
		}
	}

	var chapters []int
	for _, c := range m.selection.AvailableChapters(book) {
		if !slices.Contains(have, c) {
			chapters = append(chapters, c)
		}
	}
	if len(chapters) == 0 {
		m.setInfo("Every chapter of " + book + " is already selected.")
		return
	}
	m.picker = &picker{kind: pickChapter, book: book, chapters: chapters}
}

func (m *Model) updatePicker(key tea.KeyMsg) {
	p := m.picker
	switch key.String() {
	case "up", "k":
		if p.cursor > 0 {
			p.cursor--
		}
	case "down", "j":
		if p.cursor < p.len()-1 {
			p.cursor++
		}
	case "esc":
		m.picker = nil
	case "enter":
		var err error
		var target selectionRow
		if p.kind == pickBook {
			target = selectionRow{book: p.books[p.cursor]}
			err = m.selection.AddBook(target.book)
		} else {
			target = selectionRow{book: p.book, chapter: p.chapters[p.cursor]}
			err = m.selection.AddChapter(target.book, target.chapter)
		}
		if err != nil {
			m.setError(err.Error(), nil)
		}
		m.picker = nil
		if i := slices.Index(m.selectionRows(), target); i >= 0 {
			m.selCursor = i
		}
	}
}

// stepHighestVerse moves the highest known verse of the current chapter row
// to the previous or next verse that has questions.
func (m *Model) stepHighestVerse(dir int) {
	row, ok := m.currentRow()
	if !ok || row.chapter == 0 {
		return
	}
	verses := m.selection.VersesIn(row.book, row.chapter)
	if len(verses) == 0 {
		return
	}

	current := m.highestVerse(row)
	i := slices.Index(verses, current)
	switch {
	case i < 0 && dir > 0:
		i = 0
	case i < 0:
		i = len(verses) - 1
	default:
		i = max(0, min(i+dir, len(verses)-1))
	}
	_ = m.selection.SetHighestVerse(row.book, row.chapter, verses[i])
}

func (m *Model) highestVerse(row selectionRow) int {
	for _, b := range m.selection.Books() {
		if b.Book != row.book {
			continue
		}
		for _, c := range b.Chapters {
			if c.Chapter == row.chapter {
				return c.HighestVerse
			}
		}
	}
	return 0
}

func (m *Model) viewSelection() string {
	var b strings.Builder
	b.WriteString(m.header("Known verses"))

	if m.picker != nil {
		return b.String() + m.viewPicker()
	}

	rows := m.selectionRows()
	if len(rows) == 0 {
		b.WriteString("Nothing selected yet. Press b to add a book.\n")
	}
	for i, row := range rows {
		var line string
		if row.chapter == 0 {
			line = fmt.Sprintf("%s %s", cursorMark(m.selCursor == i), styleRef.Render(row.book))
		} else {
			verses := m.selection.VersesIn(row.book, row.chapter)
			highest := m.highestVerse(row)
			upTo := styleIncorrect.Render("choose with ←/→")
			if highest > 0 {
				known := 0
				for _, v := range verses {
					if v <= highest {
						known++
					}
				}
				upTo = fmt.Sprintf("up to verse %d %s", highest,
					styleSubtle.Render(fmt.Sprintf("(%d of %d)", known, len(verses))))
			}
			line = fmt.Sprintf("%s   Chapter %-3d %s", cursorMark(m.selCursor == i), row.chapter, upTo)
		}
		b.WriteString(line + "\n")
	}

	b.WriteString(help("↑/↓: navigate | b: add book | c: add chapter | ←/→: highest verse | d: remove | s: save | esc: discard"))
	return b.String()
}

func (m *Model) viewPicker() string {
	var b strings.Builder
	p := m.picker
	if p.kind == pickBook {
		b.WriteString("Add a book:\n")
		for i, book := range p.books {
			b.WriteString(fmt.Sprintf("%s %s\n", cursorMark(p.cursor == i), book))
		}
	} else {
		b.WriteString(fmt.Sprintf("Add a chapter of %s:\n", p.book))
		for i, c := range p.chapters {
			b.WriteString(fmt.Sprintf("%s Chapter %d\n", cursorMark(p.cursor == i), c))
		}
	}
	b.WriteString(help("↑/↓: navigate | enter: add | esc: cancel"))
	return b.String()
}
