// Package apicontract loads the embedded OpenAPI description of the FIR
// backend and resolves operations by id.
package apicontract

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
)

//go:embed openapi.yaml
var document []byte

// Operation ids exposed by the backend.
const (
	OpRegister      = "register"
	OpCaptchaText   = "captchaText"
	OpLogin         = "login"
	OpCurrentUser   = "currentUser"
	OpGetProfile    = "getProfile"
	OpUpdateProfile = "updateProfile"
	OpListFIRs      = "listFirs"
	OpGetFIR        = "getFir"
	OpCreateFIR     = "createFir"
	OpUpdateFIR     = "updateFir"
	OpDeleteFIR     = "deleteFir"
)

// ErrUnknownOperation is returned for ids missing from the contract.
var ErrUnknownOperation = errors.New("apicontract: unknown operation")

// Operation is one resolved endpoint.
type Operation struct {
	ID          string
	Method      string
	Path        string
	Summary     string
	ContentType string
	// Auth marks operations that require a bearer token.
	Auth bool

	body *openapi3.Schema
}

// Contract indexes the backend operations.
type Contract struct {
	operations map[string]Operation
}

var (
	defaultOnce     sync.Once
	defaultContract *Contract
	defaultErr      error
)

// Default loads the embedded document once.
func Default() (*Contract, error) {
	defaultOnce.Do(func() {
		defaultContract, defaultErr = Load(context.Background(), document)
	})
	return defaultContract, defaultErr
}

// Load parses and validates an OpenAPI document.
func Load(ctx context.Context, raw []byte) (*Contract, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, errors.New("apicontract: document payload is empty")
	}

	loader := openapi3.NewLoader()
	loader.Context = ctx
	doc, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("apicontract: load document: %w", err)
	}
	if err := doc.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
		return nil, fmt.Errorf("apicontract: validate: %w", err)
	}
	if doc.Paths == nil || doc.Paths.Len() == 0 {
		return nil, errors.New("apicontract: document does not contain any paths")
	}

	c := &Contract{operations: make(map[string]Operation)}
	for path, item := range doc.Paths.Map() {
		if item == nil {
			continue
		}
		for method, op := range item.Operations() {
			c.collect(doc, strings.ToUpper(method), path, op)
		}
	}
	if len(c.operations) == 0 {
		return nil, errors.New("apicontract: no operations extracted")
	}
	return c, nil
}

func (c *Contract) collect(doc *openapi3.T, method, path string, op *openapi3.Operation) {
	if op == nil || op.OperationID == "" {
		return
	}
	security := doc.Security
	if op.Security != nil {
		security = *op.Security
	}

	out := Operation{
		ID:      op.OperationID,
		Method:  method,
		Path:    path,
		Summary: op.Summary,
		Auth:    len(security) > 0,
	}
	if op.RequestBody != nil && op.RequestBody.Value != nil {
		for _, mediaType := range []string{"application/json", "multipart/form-data"} {
			if mt, ok := op.RequestBody.Value.Content[mediaType]; ok {
				out.ContentType = mediaType
				if mt.Schema != nil {
					out.body = mt.Schema.Value
				}
				break
			}
		}
	}
	c.operations[op.OperationID] = out
}

// Operation returns the operation with id.
func (c *Contract) Operation(id string) (Operation, error) {
	op, ok := c.operations[id]
	if !ok {
		return Operation{}, fmt.Errorf("%w: %s", ErrUnknownOperation, id)
	}
	return op, nil
}

// Len returns the number of operations in the contract.
func (c *Contract) Len() int {
	return len(c.operations)
}

// URL expands path parameters and joins the result onto base.
func (op Operation) URL(base string, params map[string]string) (string, error) {
	path := op.Path
	for name, value := range params {
		path = strings.ReplaceAll(path, "{"+name+"}", url.PathEscape(value))
	}
	if strings.Contains(path, "{") {
		return "", fmt.Errorf("apicontract: %s: unresolved path parameter in %s", op.ID, path)
	}
	return strings.TrimRight(base, "/") + path, nil
}

// ValidateBody checks a JSON request body against the operation's schema.
// Operations without a JSON body accept anything.
func (op Operation) ValidateBody(body any) error {
	if op.body == nil || op.ContentType != "application/json" {
		return nil
	}
	raw, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("apicontract: %s: encode body: %w", op.ID, err)
	}
	var decoded any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return fmt.Errorf("apicontract: %s: decode body: %w", op.ID, err)
	}
	if err := op.body.VisitJSON(decoded, openapi3.MultiErrors()); err != nil {
		return fmt.Errorf("apicontract: %s: request body: %w", op.ID, err)
	}
	return nil
}
