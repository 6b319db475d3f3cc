package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/noborus/ov/oviewer"

	"cocktailgrip/internal/domain"
	"cocktailgrip/internal/ui/views"
)

// Pager shows long text outside of the Bubble Tea render loop
type Pager interface {
	Show(content string) error
}

// OvPager pages content with the embedded ov viewer. It needs the running
// program to hand the terminal over and back.
type OvPager struct {
	program *tea.Program
}

// NewOvPager creates a pager; SetProgram must be called before Show
func NewOvPager() *OvPager {
	return &OvPager{}
}

// SetProgram sets the program reference for terminal management
func (p *OvPager) SetProgram(program *tea.Program) {
	p.program = program
}

// Show runs ov on content and blocks until the user leaves it
func (p *OvPager) Show(content string) error {
	if p.program == nil {
		return fmt.Errorf("program not set")
	}

	if err := p.program.ReleaseTerminal(); err != nil {
		return err
	}

	// Ensure terminal is restored even if ov fails
	defer func() {
		// Small delay to ensure ov has fully exited before restoring terminal
		time.Sleep(100 * time.Millisecond)
		_ = p.program.RestoreTerminal()
	}()

	root, err := oviewer.NewRoot(strings.NewReader(content))
	if err != nil {
		return err
	}

	// Do not write the document back to the terminal on exit
	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}

// openRecipeCmd shows the recipe of c in the pager
func openRecipeCmd(p Pager, c domain.Cocktail) tea.Cmd {
	return func() tea.Msg {
		err := p.Show(views.RecipeText(c))
		return pagerDoneMsg{name: c.Name, err: err}
	}
}
