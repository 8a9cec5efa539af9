package ui

import (
	"context"
	"errors"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// SurveyPrompter asks with survey's MultiSelect, the inquirer-style checkbox.
type SurveyPrompter struct {
	opts []survey.AskOpt
}

// NewSurveyPrompter 创建 survey 提示器，opts 透传给 survey.AskOne
func NewSurveyPrompter(opts ...survey.AskOpt) *SurveyPrompter {
	return &SurveyPrompter{opts: opts}
}

// MultiChoice presents choices and returns the checked subset.
func (p *SurveyPrompter) MultiChoice(ctx context.Context, message string, choices []string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var selected []string
	prompt := &survey.MultiSelect{
		Message:  message,
		Options:  choices,
		PageSize: 15,
	}
	if err := survey.AskOne(prompt, &selected, p.opts...); err != nil {
		if errors.Is(err, terminal.InterruptErr) {
			return nil, ErrCanceled
		}
		return nil, err
	}
	return selected, nil
}
