package app

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/goliatone/go-firform/pkg/fir"
	"github.com/goliatone/go-firform/pkg/form"
	"github.com/goliatone/go-firform/pkg/renderers/tui"
	"github.com/goliatone/go-firform/pkg/report"
)

// ReportQuery selects what the report table shows. A Sort key prefixed with
// "-" sorts descending.
type ReportQuery struct {
	Search string
	Sort   string
	Page   int
}

// Reports fetches every FIR and renders the searched, sorted page.
func (a *App) Reports(ctx context.Context, q ReportQuery) (*report.View, error) {
	records, err := a.fetchFIRs(ctx)
	if err != nil {
		return nil, err
	}

	view := report.NewView(a.report)
	view.Load(records)
	if q.Search != "" {
		view.Search(q.Search)
	}
	if q.Sort != "" {
		key := strings.TrimPrefix(q.Sort, "-")
		if !report.IsTableColumn(key) {
			return nil, fmt.Errorf("app: cannot sort by %q", key)
		}
		view.Sort(key)
		if strings.HasPrefix(q.Sort, "-") {
			view.Sort(key)
		}
	}
	if q.Page > 0 {
		view.SetPage(q.Page)
	}
	return view, a.print(report.RenderTable(view, a.styles) + "\n")
}

// ShowFIR renders one record.
func (a *App) ShowFIR(ctx context.Context, id fir.ID) (fir.Record, error) {
	deps, err := a.requireSession(ctx)
	if err != nil {
		return fir.Record{}, err
	}
	record, err := deps.Client.WithToken(deps.Session.Token).GetFIR(ctx, id)
	if err != nil {
		a.notify(form.LevelError, "fir.fetchFailed")
		return fir.Record{}, a.guard(ctx, err)
	}
	out, err := a.views.FIR(record)
	if err != nil {
		return record, err
	}
	return record, a.print(out)
}

// DeleteFIR removes a record after confirmation, unless confirmed is already
// true, then reloads the report.
func (a *App) DeleteFIR(ctx context.Context, id fir.ID, confirmed bool) error {
	deps, err := a.requireSession(ctx)
	if err != nil {
		return err
	}
	if !confirmed {
		ok, err := a.runner.Driver().Confirm(ctx, tui.ConfirmConfig{Message: a.translate("report.deleteConfirm")})
		if err != nil {
			return err
		}
		if !ok {
			return tui.ErrCancelled
		}
	}
	if err := deps.Client.WithToken(deps.Session.Token).DeleteFIR(ctx, id); err != nil {
		a.notify(form.LevelError, "report.deleteFailed")
		return a.guard(ctx, err)
	}
	a.notify(form.LevelSuccess, "report.deleted")
	_, err = a.Reports(ctx, ReportQuery{})
	return err
}

// Export writes every FIR in format under the export directory and returns
// the file path.
func (a *App) Export(ctx context.Context, format report.Format) (string, error) {
	records, err := a.fetchFIRs(ctx)
	if err != nil {
		return "", err
	}

	done, failed := "report.xlsxDone", "report.xlsxFailed"
	if format == report.FormatPDF {
		done, failed = "report.pdfDone", "report.pdfFailed"
	}
	path, err := report.ExportFile(a.exportDir, format, records, a.report)
	switch {
	case errors.Is(err, report.ErrNoData):
		a.notify(form.LevelError, "report.pdfEmpty")
		return "", err
	case err != nil:
		a.logger.Warn("export failed", zap.String("format", string(format)), zap.Error(err))
		a.notify(form.LevelError, failed)
		return "", err
	}
	a.notify(form.LevelSuccess, done)
	return path, nil
}

func (a *App) fetchFIRs(ctx context.Context) ([]fir.Record, error) {
	deps, err := a.requireSession(ctx)
	if err != nil {
		return nil, err
	}
	records, err := deps.Client.WithToken(deps.Session.Token).ListFIRs(ctx)
	if err != nil {
		a.notify(form.LevelError, "report.fetchFailed")
		return nil, a.guard(ctx, err)
	}
	return records, nil
}
