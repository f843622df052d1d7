// Package ui is a standalone bubbletea prompt flow that can be grafted onto a cobra
// command's PreRun/Run hooks: sequential questions, each rendered as a free-text input,
// a paged option list, or a paged file picker.
package ui

import (
	color "github.com/fatih/color"
	spfcbr "github.com/spf13/cobra"
)

// Question is one prompt in the interactive flow. Handler receives the answer (the
// selected option, the chosen file path, or the typed input) and may return an error to
// keep the flow on the same question.
type Question struct {
	Text         string
	Options      []string
	Handler      func(string) error
	FilePath     bool
	PasswordType bool
	Color        color.Attribute
	CursorStr    string
}

// UI runs a question flow, optionally hooked around a cobra command's Run/PreRun.
type UI interface {
	SetQuestions(questions []Question)
	SetLastMessage(msg string)
	RunInteractiveUI()

	// SetCobra attaches the cobra command the Before/After hooks wrap.
	SetCobra(cobra *spfcbr.Command)
	AfterPreRun()
	BeforePreRun()
	AfterRun()
	BeforeRun()
}

// New returns an empty UI; populate it with SetQuestions before running.
func New() UI {
	return &ui{}
}
