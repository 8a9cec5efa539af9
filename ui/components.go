package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// UIColors 定义统一的颜色主题
type UIColors struct {
	Gray    lipgloss.Color
	Blue    lipgloss.Color
	Green   lipgloss.Color
	Yellow  lipgloss.Color
	Red     lipgloss.Color
	Magenta lipgloss.Color
	White   lipgloss.Color
}

// DefaultColors 返回默认的颜色主题
func DefaultColors() UIColors {
	return UIColors{
		Gray:    lipgloss.Color("245"),
		Blue:    lipgloss.Color("39"),
		Green:   lipgloss.Color("42"),
		Yellow:  lipgloss.Color("220"),
		Red:     lipgloss.Color("196"),
		Magenta: lipgloss.Color("170"),
		White:   lipgloss.Color("255"),
	}
}

// UIStyles 定义统一的样式
type UIStyles struct {
	Colors   UIColors
	Title    lipgloss.Style
	Ref      lipgloss.Style
	Success  lipgloss.Style
	Warning  lipgloss.Style
	Error    lipgloss.Style
	Muted    lipgloss.Style
	Cursor   lipgloss.Style
	Selected lipgloss.Style
}

// DefaultStyles 返回默认的样式集
func DefaultStyles() UIStyles {
	colors := DefaultColors()
	return UIStyles{
		Colors:   colors,
		Title:    lipgloss.NewStyle().Foreground(colors.White).Bold(true),
		Ref:      lipgloss.NewStyle().Foreground(colors.Magenta),
		Success:  lipgloss.NewStyle().Foreground(colors.Green),
		Warning:  lipgloss.NewStyle().Foreground(colors.Yellow),
		Error:    lipgloss.NewStyle().Foreground(colors.Red),
		Muted:    lipgloss.NewStyle().Foreground(colors.Gray),
		Cursor:   lipgloss.NewStyle().Foreground(colors.Blue).Bold(true),
		Selected: lipgloss.NewStyle().Foreground(colors.Green),
	}
}

// RenderRef 以品红色渲染 git ref（分支名、HEAD 等）
func RenderRef(ref string) string {
	return DefaultStyles().Ref.Render(ref)
}

// RenderStatusLine 渲染状态行
func RenderStatusLine(icon, text string, style lipgloss.Style) string {
	return icon + " " + style.Render(text)
}
