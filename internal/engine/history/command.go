package history

import (
	"fmt"

	"github.com/dshills/mathfield/internal/engine/buffer"
)

// Command represents a composable edit action.
type Command interface {
	// Execute performs the command and returns an error if it fails.
	Execute(buf *buffer.Buffer) error

	// Description returns a human-readable description of the command.
	Description() string
}

// InsertTextCommand types text at the cursor.
type InsertTextCommand struct {
	Text       string
	ForceRight bool
	ForceLeft  bool
	Linear     bool
}

// NewInsertTextCommand creates a new insert command.
func NewInsertTextCommand(text string) *InsertTextCommand {
	return &InsertTextCommand{Text: text}
}

// Execute inserts the text.
func (c *InsertTextCommand) Execute(buf *buffer.Buffer) error {
	if c.Text == "" {
		return nil
	}
	return buf.InsertText(c.Text, c.ForceRight, c.ForceLeft, c.Linear)
}

// Description returns a description like `Insert "1+2"`.
func (c *InsertTextCommand) Description() string {
	text := []rune(c.Text)
	if len(text) > 20 {
		return fmt.Sprintf("Insert %q...", string(text[:20]))
	}
	return fmt.Sprintf("Insert %q", c.Text)
}

// InsertTemplateCommand inserts a template at the cursor.
type InsertTemplateCommand struct {
	Name     string
	Template buffer.Template
}

// NewInsertTemplateCommand looks up the template registered under name.
func NewInsertTemplateCommand(name string) (*InsertTemplateCommand, error) {
	tpl, ok := buffer.TemplateByName(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTemplate, name)
	}
	return &InsertTemplateCommand{Name: name, Template: tpl}, nil
}

// Execute inserts the template.
func (c *InsertTemplateCommand) Execute(buf *buffer.Buffer) error {
	return buf.InsertTemplate(c.Template)
}

// Description returns the template name.
func (c *InsertTemplateCommand) Description() string {
	if c.Name == "" {
		return "Insert template"
	}
	return "Insert " + c.Name
}

// BackspaceCommand deletes left of the cursor Count times.
type BackspaceCommand struct {
	Count int
}

// NewBackspaceCommand creates a command deleting once.
func NewBackspaceCommand() *BackspaceCommand {
	return &BackspaceCommand{Count: 1}
}

// Execute performs the backspaces.
func (c *BackspaceCommand) Execute(buf *buffer.Buffer) error {
	for i := 0; i < max(c.Count, 1); i++ {
		if err := buf.PerformBackspace(); err != nil {
			return err
		}
	}
	return nil
}

// Description returns "Delete" or "Delete N".
func (c *BackspaceCommand) Description() string {
	if c.Count > 1 {
		return fmt.Sprintf("Delete %d", c.Count)
	}
	return "Delete"
}

// CompoundCommand groups multiple commands as one undo unit.
type CompoundCommand struct {
	Name     string
	Commands []Command
}

// NewCompoundCommand creates a new compound command.
func NewCompoundCommand(name string, commands ...Command) *CompoundCommand {
	return &CompoundCommand{
		Name:     name,
		Commands: commands,
	}
}

// Execute runs all commands in order. On failure the buffer is put back in
// the state it had before the first command.
func (c *CompoundCommand) Execute(buf *buffer.Buffer) error {
	before := buf.State()
	rev := buf.RevisionID()
	for i, cmd := range c.Commands {
		if err := cmd.Execute(buf); err != nil {
			if buf.RevisionID() != rev {
				_ = buf.Restore(before)
			}
			return fmt.Errorf("compound command '%s' step %d: %w", c.Name, i, err)
		}
	}
	return nil
}

// Description returns the compound command's name.
func (c *CompoundCommand) Description() string {
	if c.Name != "" {
		return c.Name
	}
	if len(c.Commands) == 1 {
		return c.Commands[0].Description()
	}
	return fmt.Sprintf("%d operations", len(c.Commands))
}

// Add adds a command to the compound command.
func (c *CompoundCommand) Add(cmd Command) {
	c.Commands = append(c.Commands, cmd)
}

// IsEmpty returns true if the compound command has no commands.
func (c *CompoundCommand) IsEmpty() bool {
	return len(c.Commands) == 0
}
