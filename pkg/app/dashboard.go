package app

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/goliatone/go-firform/internal/backend"
	"github.com/goliatone/go-firform/pkg/fir"
	"github.com/goliatone/go-firform/pkg/form"
	"github.com/goliatone/go-firform/pkg/views"
)

var dashboardActions = []string{
	"fir new",
	"report list",
	"report export --format xlsx|pdf",
	"profile show",
	"logout",
}

// Dashboard loads the current user and the FIR list together and renders
// the summary.
func (a *App) Dashboard(ctx context.Context) (views.Dashboard, error) {
	deps, err := a.requireSession(ctx)
	if err != nil {
		return views.Dashboard{}, err
	}
	client := deps.Client.WithToken(deps.Session.Token)

	var (
		user    backend.User
		records []fir.Record
		failKey string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if user, err = client.CurrentUser(gctx); err != nil {
			failKey = "session.userFailed"
		}
		return err
	})
	g.Go(func() error {
		var err error
		records, err = client.ListFIRs(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		if failKey == "" {
			failKey = "report.fetchFailed"
		}
		a.notify(form.LevelError, failKey)
		return views.Dashboard{}, a.guard(ctx, err)
	}

	d := views.Dashboard{
		User:     user,
		Total:    len(records),
		Stations: CountByStation(records),
		Actions:  dashboardActions,
	}
	out, err := a.views.Dashboard(d)
	if err != nil {
		return d, err
	}
	return d, a.print(out)
}

// CountByStation tallies records per police station, busiest first and ties
// by name.
func CountByStation(records []fir.Record) []views.StationCount {
	counts := make(map[string]int)
	for _, r := range records {
		station := r.PoliceStation
		if station == "" {
			station = "N/A"
		}
		counts[station]++
	}
	out := make([]views.StationCount, 0, len(counts))
	for station, n := range counts {
		out = append(out, views.StationCount{Station: station, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Station < out[j].Station
	})
	return out
}
