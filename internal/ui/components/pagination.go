// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package components

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/paginator"

	"github.com/jeranaias/leaddesk-tui/internal/paging"
	"github.com/jeranaias/leaddesk-tui/internal/ui/styles"
)

// maxPageButtons caps how many page numbers are listed before eliding.
const maxPageButtons = 9

// PaginationBar renders "Showing X to Y of N leads" with previous/next
// controls and page numbers. It is only shown when there is more than one
// page.
type PaginationBar struct {
	dots  paginator.Model
	theme *styles.Theme
	state paging.State
	total int
}

// NewPaginationBar creates an empty bar.
func NewPaginationBar(theme *styles.Theme) PaginationBar {
	p := paginator.New()
	p.Type = paginator.Dots
	p.ActiveDot = theme.PageCurrent.Render("*")
	p.InactiveDot = theme.PageOther.Render(".")
	return PaginationBar{dots: p, theme: theme, state: paging.New(paging.DefaultPageSize, 0)}
}

// Sync copies the pagination state for a collection of length items.
func (b *PaginationBar) Sync(state paging.State, length int) {
	b.state = state
	b.total = length
	b.dots.PerPage = state.Size
	b.dots.SetTotalPages(length)
	b.dots.Page = state.Current - 1
}

// Visible reports whether the bar has anything to show.
func (b PaginationBar) Visible() bool {
	return b.state.Total > 1
}

// Summary returns the "Showing X to Y of N leads" line.
func (b PaginationBar) Summary() string {
	w := b.state.Window(b.total)
	return fmt.Sprintf("Showing %d to %d of %d leads", w.From, w.To, w.Total)
}

// PageNumbers lists the page buttons, eliding the middle of long ranges.
func (b PaginationBar) PageNumbers() []string {
	total := b.state.Total
	cur := b.state.Current

	var out []string
	if total <= maxPageButtons {
		for p := 1; p <= total; p++ {
			out = append(out, strconv.Itoa(p))
		}
		return out
	}

	lo, hi := cur-2, cur+2
	if lo < 2 {
		lo, hi = 2, 6
	}
	if hi > total-1 {
		lo, hi = total-5, total-1
	}
	out = append(out, "1")
	if lo > 2 {
		out = append(out, "...")
	}
	for p := lo; p <= hi; p++ {
		out = append(out, strconv.Itoa(p))
	}
	if hi < total-1 {
		out = append(out, "...")
	}
	return append(out, strconv.Itoa(total))
}

// View renders the bar, or nothing for a single page.
func (b PaginationBar) View() string {
	if !b.Visible() {
		return ""
	}
	t := b.theme

	prev := t.PageOther.Render("< Prev")
	if !b.state.HasPrev() {
		prev = t.ButtonDisabled.Render("< Prev")
	}
	next := t.PageOther.Render("Next >")
	if !b.state.HasNext() {
		next = t.ButtonDisabled.Render("Next >")
	}

	current := strconv.Itoa(b.state.Current)
	var nums []string
	for _, n := range b.PageNumbers() {
		if n == current {
			nums = append(nums, t.PageCurrent.Render(n))
		} else {
			nums = append(nums, t.PageOther.Render(n))
		}
	}

	controls := prev + " " + strings.Join(nums, "") + " " + next
	return t.PageInfo.Render(b.Summary()) + "\n" + controls + "  " + b.dots.View()
}
