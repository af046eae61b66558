// Package tui drives schema forms interactively in a terminal: it prompts for
// each field, validates on blur through the form engine, and submits.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/goliatone/go-firform/pkg/form"
	"github.com/goliatone/go-firform/pkg/model"
	"github.com/goliatone/go-firform/pkg/theme"
	"github.com/goliatone/go-firform/pkg/validation"
)

// Form is the part of the form engine the runner drives.
type Form interface {
	Schema() model.FormSchema
	Value(name string) any
	SetField(name string, value any) error
	ToggleOption(name, option string) error
	TouchField(name string) error
	VisibleError(name string) string
	ValidateAll() bool
	Errors() map[string]string
	Submit(ctx context.Context) error
}

var _ Form = (*form.Engine)(nil)

// Runner prompts for form fields and submits the form.
type Runner struct {
	driver        PromptDriver
	out           io.Writer
	styles        theme.Styles
	attempts      int
	banner        Banner
	openFile      func(path string) (model.FileRef, error)
	logger        *zap.Logger
	confirmSubmit bool

	mu sync.Mutex
}

// New builds a runner. Without WithPromptDriver it talks to the terminal via
// survey.
func New(options ...Option) (*Runner, error) {
	r := &Runner{
		styles:   theme.Plain(),
		attempts: defaultAttempts,
		openFile: model.OpenFileRef,
		logger:   zap.NewNop(),
	}
	for _, opt := range options {
		if opt != nil {
			opt(r)
		}
	}
	if r.driver == nil {
		r.driver = NewSurveyDriver(r.out)
	}
	return r, nil
}

// With returns a copy of the runner with options applied on top.
func (r *Runner) With(options ...Option) *Runner {
	c := &Runner{
		driver:        r.driver,
		out:           r.out,
		styles:        r.styles,
		attempts:      r.attempts,
		banner:        r.banner,
		openFile:      r.openFile,
		logger:        r.logger,
		confirmSubmit: r.confirmSubmit,
	}
	for _, opt := range options {
		if opt != nil {
			opt(c)
		}
	}
	return c
}

// Notifier prints form notifications through the driver.
func (r *Runner) Notifier() form.Notifier {
	return form.NotifierFunc(func(level form.Level, message string) {
		r.Notify(context.Background(), level, message)
	})
}

// Notify prints one styled message.
func (r *Runner) Notify(ctx context.Context, level form.Level, message string) {
	if message == "" {
		return
	}
	var styled string
	switch level {
	case form.LevelSuccess:
		styled = r.styles.Success.Render("✓ " + message)
	case form.LevelError:
		styled = r.styles.Error.Render("✗ " + message)
	default:
		styled = r.styles.Info.Render(message)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.driver.Info(ctx, styled); err != nil {
		r.logger.Debug("print notification", zap.Error(err))
	}
}

// Driver returns the prompt driver, for screens that ask their own questions.
func (r *Runner) Driver() PromptDriver { return r.driver }

// Run prompts for every field in schema order, then submits. Fields that fail
// at submit are prompted again. A submission rejected by the backend is
// retried only when the user confirms. Run returns nil once the form
// submitted successfully.
func (r *Runner) Run(ctx context.Context, f Form) error {
	s := f.Schema()
	if s.Title != "" {
		r.info(ctx, r.styles.Title.Render(s.Title))
	}
	if s.Description != "" {
		r.info(ctx, r.styles.Subtitle.Render(s.Description))
	}

	if err := r.promptFields(ctx, f, s.Fields); err != nil {
		return err
	}

	for round := 0; ; round++ {
		if r.confirmSubmit {
			ok, err := r.driver.Confirm(ctx, ConfirmConfig{Message: submitLabel(s), Default: true})
			if err != nil {
				return err
			}
			if !ok {
				return ErrCancelled
			}
		}

		err := f.Submit(ctx)
		switch {
		case err == nil:
			return nil
		case errors.Is(err, form.ErrInvalid):
			if round >= r.attempts {
				return err
			}
			if err := r.promptFields(ctx, f, invalidFields(f, s)); err != nil {
				return err
			}
		case errors.Is(err, form.ErrClosed), errors.Is(err, form.ErrSubmitting), errors.Is(err, form.ErrNoSubmitter):
			return err
		default:
			retry, cerr := r.driver.Confirm(ctx, ConfirmConfig{Message: "Try again?", Default: true})
			if cerr != nil {
				return cerr
			}
			if !retry {
				return err
			}
			f.ValidateAll()
			if err := r.promptFields(ctx, f, invalidFields(f, s)); err != nil {
				return err
			}
		}
	}
}

func (r *Runner) promptFields(ctx context.Context, f Form, fields []model.Field) error {
	for _, field := range fields {
		if err := r.promptField(ctx, f, field); err != nil {
			return err
		}
	}
	return nil
}

// promptField asks for one field until its touched state is valid or the
// attempt budget is spent.
func (r *Runner) promptField(ctx context.Context, f Form, field model.Field) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if r.banner != nil {
		if text := r.banner(field); text != "" {
			r.info(ctx, r.styles.Info.Render(text))
		}
	}

	for attempt := 0; attempt < r.attempts; attempt++ {
		if err := r.ask(ctx, f, field); err != nil {
			return err
		}
		if err := f.TouchField(field.Name); err != nil {
			return err
		}
		msg := f.VisibleError(field.Name)
		if msg == "" {
			return nil
		}
		r.info(ctx, r.styles.Error.Render("  "+msg))
		if !field.Interactive() {
			return nil
		}
	}
	r.logger.Debug("field left invalid", zap.String("field", field.Name))
	return nil
}

func (r *Runner) ask(ctx context.Context, f Form, field model.Field) error {
	label := fieldMessage(field)
	current := f.Value(field.Name)

	switch field.Type {
	case model.FieldTypeBoolean:
		def, _ := current.(bool)
		ok, err := r.driver.Confirm(ctx, ConfirmConfig{Message: label, Default: def, Help: field.Description})
		if err != nil {
			return err
		}
		return f.SetField(field.Name, ok)

	case model.FieldTypeSelect:
		idx, err := r.driver.Select(ctx, SelectConfig{
			Message:      label,
			Options:      field.Options,
			DefaultIndex: indexOf(field.Options, validation.Text(current)),
			Help:         field.Description,
		})
		if err != nil {
			return err
		}
		value := ""
		if idx >= 0 && idx < len(field.Options) {
			value = field.Options[idx]
		}
		return f.SetField(field.Name, value)

	case model.FieldTypeSet:
		chosen, err := r.driver.MultiSelect(ctx, SelectConfig{
			Message:  label,
			Options:  field.Options,
			Defaults: indicesOf(field.Options, validation.Set(current)),
			Help:     field.Description,
		})
		if err != nil {
			return err
		}
		return toggleTo(f, field.Name, validation.Set(current), pick(field.Options, chosen))

	case model.FieldTypeFile:
		return r.askFile(ctx, f, field, label, current)
	}

	def := validation.Text(current)
	help := field.Description
	if help == "" && field.Type == model.FieldTypeDate {
		help = "Format: " + validation.DateLayout
	}
	var (
		answer string
		err    error
	)
	switch field.Format {
	case model.FormatPassword:
		answer, err = r.driver.Password(ctx, InputConfig{Message: label, Default: def, Help: help})
	case model.FormatTextArea:
		answer, err = r.driver.TextArea(ctx, TextAreaConfig{Message: label, Default: def, Help: help})
	default:
		answer, err = r.driver.Input(ctx, InputConfig{Message: label, Default: def, Help: help})
	}
	if err != nil {
		return err
	}
	return f.SetField(field.Name, answer)
}

func (r *Runner) askFile(ctx context.Context, f Form, field model.Field, label string, current any) error {
	ref, has := validation.File(current)
	help := field.Description
	if has {
		help = strings.TrimSpace(help + " Leave empty to keep " + ref.Name)
	}
	path, err := r.driver.Input(ctx, InputConfig{Message: label + " (path)", Help: help})
	if err != nil {
		return err
	}
	path = strings.TrimSpace(path)
	if path == "" {
		if has {
			return nil
		}
		return f.SetField(field.Name, model.FileRef{})
	}
	opened, err := r.openFile(path)
	if err != nil {
		r.info(ctx, r.styles.Error.Render("  "+err.Error()))
		return f.SetField(field.Name, model.FileRef{})
	}
	return f.SetField(field.Name, opened)
}

func (r *Runner) info(ctx context.Context, msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.driver.Info(ctx, msg); err != nil {
		r.logger.Debug("print", zap.Error(err))
	}
}

// toggleTo moves a checkbox group from current to want one toggle at a time.
func toggleTo(f Form, name string, current, want []string) error {
	have := make(map[string]bool, len(current))
	for _, v := range current {
		have[v] = true
	}
	wanted := make(map[string]bool, len(want))
	for _, v := range want {
		wanted[v] = true
		if !have[v] {
			if err := f.ToggleOption(name, v); err != nil {
				return err
			}
		}
	}
	for _, v := range current {
		if !wanted[v] {
			if err := f.ToggleOption(name, v); err != nil {
				return err
			}
		}
	}
	return nil
}

func invalidFields(f Form, s model.FormSchema) []model.Field {
	errs := f.Errors()
	out := make([]model.Field, 0, len(errs))
	for _, field := range s.Fields {
		if _, ok := errs[field.Name]; ok {
			out = append(out, field)
		}
	}
	return out
}

func fieldMessage(field model.Field) string {
	label := field.DisplayLabel()
	if field.Required {
		label += " *"
	}
	if field.Placeholder != "" {
		label = fmt.Sprintf("%s (%s)", label, field.Placeholder)
	}
	return label
}

func submitLabel(s model.FormSchema) string {
	if label := s.Metadata["submitLabel"]; label != "" {
		return label + "?"
	}
	return "Submit?"
}
