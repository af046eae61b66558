package backend

import (
	"context"
	"errors"

	"github.com/goliatone/go-firform/internal/apicontract"
	"github.com/goliatone/go-firform/pkg/fir"
)

var errMissingID = errors.New("backend: record id is required")

// ListFIRs returns every stored FIR.
func (c *Client) ListFIRs(ctx context.Context) ([]fir.Record, error) {
	var out []fir.Record
	if err := c.call(ctx, apicontract.OpListFIRs, nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetFIR returns one FIR.
func (c *Client) GetFIR(ctx context.Context, id fir.ID) (fir.Record, error) {
	if id == "" {
		return fir.Record{}, errMissingID
	}
	var out fir.Record
	err := c.call(ctx, apicontract.OpGetFIR, idParam(id), nil, &out)
	return out, err
}

// CreateFIR stores a new FIR and returns it as the backend echoed it.
func (c *Client) CreateFIR(ctx context.Context, record fir.Record) (fir.Record, error) {
	record.ID, record.FIRNumber, record.DateTime = "", "", ""
	body, err := c.validated(apicontract.OpCreateFIR, record)
	if err != nil {
		return fir.Record{}, err
	}
	var out fir.Record
	err = c.call(ctx, apicontract.OpCreateFIR, nil, body, &out)
	return out, err
}

// UpdateFIR replaces the FIR with id.
func (c *Client) UpdateFIR(ctx context.Context, id fir.ID, record fir.Record) (fir.Record, error) {
	if id == "" {
		return fir.Record{}, errMissingID
	}
	record.ID, record.FIRNumber, record.DateTime = "", "", ""
	body, err := c.validated(apicontract.OpUpdateFIR, record)
	if err != nil {
		return fir.Record{}, err
	}
	var out fir.Record
	err = c.call(ctx, apicontract.OpUpdateFIR, idParam(id), body, &out)
	return out, err
}

// DeleteFIR removes the FIR with id.
func (c *Client) DeleteFIR(ctx context.Context, id fir.ID) error {
	if id == "" {
		return errMissingID
	}
	return c.call(ctx, apicontract.OpDeleteFIR, idParam(id), nil, nil)
}

func idParam(id fir.ID) map[string]string {
	return map[string]string{"id": string(id)}
}
