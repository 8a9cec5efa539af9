package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// ErrCanceled is returned by the prompters when the user aborts the prompt.
var ErrCanceled = errors.New("prompt canceled")

type checkboxKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Toggle    key.Binding
	ToggleAll key.Binding
	Confirm   key.Binding
	Cancel    key.Binding
}

func defaultCheckboxKeys() checkboxKeyMap {
	return checkboxKeyMap{
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Toggle:    key.NewBinding(key.WithKeys(" ", "space", "x"), key.WithHelp("space", "toggle")),
		ToggleAll: key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "toggle all")),
		Confirm:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),
		Cancel:    key.NewBinding(key.WithKeys("esc", "ctrl+c", "q"), key.WithHelp("esc", "cancel")),
	}
}

func (k checkboxKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.ToggleAll, k.Confirm, k.Cancel}
}

func (k checkboxKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, k.ShortHelp()}
}

// CheckboxModel 多选列表，对应 inquirer 的 checkbox 提示。
// 确认或取消后结束程序，结果通过 Selected / Canceled 读取。
type CheckboxModel struct {
	message  string
	choices  []string
	checked  []bool
	cursor   int
	done     bool
	canceled bool

	keys   checkboxKeyMap
	help   help.Model
	styles UIStyles
}

// NewCheckboxModel 创建初始模型，默认不勾选任何项
func NewCheckboxModel(message string, choices []string) *CheckboxModel {
	return &CheckboxModel{
		message: message,
		choices: choices,
		checked: make([]bool, len(choices)),
		keys:    defaultCheckboxKeys(),
		help:    help.New(),
		styles:  DefaultStyles(),
	}
}

// Init 实现 tea.Model 接口
func (m *CheckboxModel) Init() tea.Cmd { return nil }

// Update 处理按键事件
func (m *CheckboxModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || m.done {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Cancel):
		m.canceled = true
		m.done = true
		return m, tea.Quit
	case key.Matches(keyMsg, m.keys.Confirm):
		m.done = true
		return m, tea.Quit
	case key.Matches(keyMsg, m.keys.Up):
		m.cursor--
		if m.cursor < 0 {
			m.cursor = len(m.choices) - 1
		}
	case key.Matches(keyMsg, m.keys.Down):
		m.cursor++
		if m.cursor >= len(m.choices) {
			m.cursor = 0
		}
	case key.Matches(keyMsg, m.keys.Toggle):
		if len(m.checked) > 0 {
			m.checked[m.cursor] = !m.checked[m.cursor]
		}
	case key.Matches(keyMsg, m.keys.ToggleAll):
		// 已全选则全部取消，否则全选
		all := true
		for _, c := range m.checked {
			all = all && c
		}
		for i := range m.checked {
			m.checked[i] = !all
		}
	}
	return m, nil
}

// View 渲染
func (m *CheckboxModel) View() string {
	var b strings.Builder

	if m.done {
		answer := m.styles.Muted.Render("(none)")
		if m.canceled {
			answer = m.styles.Warning.Render("canceled")
		} else if selected := m.Selected(); len(selected) > 0 {
			answer = m.styles.Ref.Render(strings.Join(selected, ", "))
		}
		fmt.Fprintf(&b, "%s %s %s\n", m.styles.Success.Render("?"), m.message, answer)
		return b.String()
	}

	fmt.Fprintf(&b, "%s %s\n", m.styles.Success.Render("?"), m.message)
	for i, choice := range m.choices {
		cursor := " "
		if i == m.cursor {
			cursor = m.styles.Cursor.Render("❯")
		}
		box := "◯"
		line := choice
		if m.checked[i] {
			box = m.styles.Selected.Render("◉")
			line = m.styles.Selected.Render(choice)
		}
		fmt.Fprintf(&b, "%s %s %s\n", cursor, box, line)
	}
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n")
	return b.String()
}

// Selected 返回勾选的项，顺序与输入一致
func (m *CheckboxModel) Selected() []string {
	var selected []string
	for i, c := range m.checked {
		if c {
			selected = append(selected, m.choices[i])
		}
	}
	return selected
}

// Canceled reports whether the user aborted the prompt.
func (m *CheckboxModel) Canceled() bool { return m.canceled }

// CheckboxPrompter runs a CheckboxModel as a Bubble Tea program.
type CheckboxPrompter struct {
	In  io.Reader
	Out io.Writer
}

// NewCheckboxPrompter 使用标准输入输出
func NewCheckboxPrompter() *CheckboxPrompter {
	return &CheckboxPrompter{In: os.Stdin, Out: os.Stdout}
}

// MultiChoice presents choices and returns the checked subset.
func (p *CheckboxPrompter) MultiChoice(ctx context.Context, message string, choices []string) ([]string, error) {
	model := NewCheckboxModel(message, choices)

	finalModel, err := tea.NewProgram(model,
		tea.WithContext(ctx),
		tea.WithInput(p.In),
		tea.WithOutput(p.Out),
	).Run()
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, err
	}

	m, ok := finalModel.(*CheckboxModel)
	if !ok {
		return nil, fmt.Errorf("internal error: unexpected model type, got %T", finalModel)
	}
	if m.Canceled() {
		return nil, ErrCanceled
	}
	return m.Selected(), nil
}
