package ui

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/noborus/ov/oviewer"

	"partsearch/internal/domain"
)

// Pager shows an item's full record in ov
type Pager struct {
	program *tea.Program
}

// NewPager creates a new pager
func NewPager() *Pager {
	return &Pager{}
}

// SetProgram sets the program whose terminal the pager borrows
func (p *Pager) SetProgram(program *tea.Program) {
	p.program = program
}

// FormatItem renders the item as a header of its well known fields
// followed by the raw record
func FormatItem(item domain.Item, category string) (string, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n", item.Name())
	fmt.Fprintf(&b, "category: %s\n", category)
	fmt.Fprintf(&b, "objectID: %s\n", item.ID())
	if price, ok := item.Price(); ok {
		fmt.Fprintf(&b, "price:    $%s\n", price)
	}
	b.WriteString("\n")

	// Highlight metadata is noise here
	clean := make(map[string]any, len(item))
	for k, v := range item {
		if !strings.HasPrefix(k, "_") {
			clean[k] = v
		}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(clean); err != nil {
		return "", fmt.Errorf("failed to encode item: %w", err)
	}
	b.Write(buf.Bytes())
	return b.String(), nil
}

// ShowItem runs ov over the item's record until the user quits it
func (p *Pager) ShowItem(item domain.Item, category string) error {
	if p.program == nil {
		return fmt.Errorf("program not set")
	}

	content, err := FormatItem(item, category)
	if err != nil {
		return err
	}

	// Release terminal control to run ov
	if err := p.program.ReleaseTerminal(); err != nil {
		return err
	}
	defer func() {
		// Small delay to ensure ov has fully exited before restoring terminal
		time.Sleep(100 * time.Millisecond)
		_ = p.program.RestoreTerminal()
	}()

	root, err := oviewer.NewRoot(strings.NewReader(content))
	if err != nil {
		return err
	}

	// Do not write the document back to the screen on exit
	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}

// showItemCmd runs the pager off the update loop
func (p *Pager) showItemCmd(item domain.Item, category string) tea.Cmd {
	return func() tea.Msg {
		return pagerDoneMsg{err: p.ShowItem(item, category)}
	}
}
