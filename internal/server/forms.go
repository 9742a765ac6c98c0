package server

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/goccy/go-json"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/goliatone/go-formbind/pkg/authforms"
	"github.com/goliatone/go-formbind/pkg/form"
	"github.com/goliatone/go-formbind/pkg/orchestrator"
	"github.com/goliatone/go-formbind/pkg/render"
	"github.com/goliatone/go-formbind/pkg/schema"
	"github.com/goliatone/go-formbind/pkg/submit"
)

func (s *Server) showForm(name string) echo.HandlerFunc {
	return func(c echo.Context) error {
		return s.page(c, http.StatusOK, orchestrator.Request{Form: name})
	}
}

// submitForm validates posted values. Valid submissions redirect to the
// success location; invalid ones re-render the page with 422.
func (s *Server) submitForm(name string) echo.HandlerFunc {
	return func(c echo.Context) error {
		def, err := s.definition(name)
		if err != nil {
			return err
		}
		params, err := c.FormParams()
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "malformed form body").SetInternal(err)
		}

		resp, err := s.generate(c, orchestrator.Request{
			Form:   name,
			Values: valuesFromForm(def.Schema, params),
			Submit: true,
		})
		if err != nil {
			return err
		}
		if resp.Submitted {
			target := def.Presentation.Success
			if target == "" {
				target = "/"
			}
			return c.Redirect(http.StatusSeeOther, target)
		}
		return c.Blob(http.StatusUnprocessableEntity, resp.ContentType, resp.Output)
	}
}

func (s *Server) page(c echo.Context, status int, req orchestrator.Request) error {
	resp, err := s.generate(c, req)
	if err != nil {
		return err
	}
	return c.Blob(status, resp.ContentType, resp.Output)
}

// generate runs the orchestrator with request-scoped render data: the
// renderer negotiated from Accept, theme query parameters and the CSRF token.
func (s *Server) generate(c echo.Context, req orchestrator.Request) (orchestrator.Response, error) {
	if r, ok := s.orch.Renderers().Negotiate(c.Request().Header.Get(echo.HeaderAccept)); ok {
		req.Renderer = r.Name()
	}
	req.ThemeName = c.QueryParam("theme")
	req.ThemeVariant = c.QueryParam("variant")
	if token, ok := c.Get(middleware.DefaultCSRFConfig.ContextKey).(string); ok && token != "" {
		req.RenderOptions.HiddenFields = render.MergeHiddenFields(req.RenderOptions.HiddenFields,
			render.CSRFToken(CSRFField, token))
	}
	resp, err := s.orch.Generate(c.Request().Context(), req)
	if err != nil {
		return resp, httpError(err)
	}
	return resp, nil
}

func (s *Server) definition(name string) (authforms.Definition, error) {
	def, err := s.orch.Forms().Get(name)
	if err != nil {
		return def, httpError(err)
	}
	return def, nil
}

func httpError(err error) error {
	if errors.Is(err, authforms.ErrFormNotFound) {
		return echo.NewHTTPError(http.StatusNotFound, err.Error()).SetInternal(err)
	}
	if errors.Is(err, render.ErrThemeNotFound) {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error()).SetInternal(err)
	}
	return err
}

// valuesFromForm keeps the declared paths of params. Dotted paths build
// nested objects.
func valuesFromForm(s *schema.Schema, params url.Values) schema.Values {
	values := schema.Values{}
	for _, path := range s.Paths() {
		if _, ok := params[path]; !ok {
			continue
		}
		_ = schema.Assign(values, path, params.Get(path))
	}
	return values
}

func (s *Server) listForms(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string][]string{"forms": s.orch.Forms().List()})
}

func (s *Server) formSchema(c echo.Context) error {
	def, err := s.definition(c.Param("name"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, def.Schema.OpenAPI())
}

// ValidateResponse reports the outcome of a validation request.
type ValidateResponse struct {
	Valid  bool              `json:"valid"`
	Errors map[string]string `json:"errors"`
}

func (s *Server) validateForm(c echo.Context) error {
	var values schema.Values
	if err := c.Echo().JSONSerializer.Deserialize(c, &values); err != nil {
		return err
	}
	resp, err := s.orch.Generate(c.Request().Context(), orchestrator.Request{
		Form:       c.Param("name"),
		Values:     values,
		Validate:   true,
		SkipRender: true,
	})
	if err != nil {
		return httpError(err)
	}
	errs := resp.Result.Errors
	if errs == nil {
		errs = map[string]string{}
	}
	return c.JSON(http.StatusOK, ValidateResponse{Valid: resp.Result.Valid(), Errors: errs})
}

// StateRequest carries values to change and an optional RFC 6902 patch.
type StateRequest struct {
	Values schema.Values   `json:"values"`
	Patch  json.RawMessage `json:"patch,omitempty"`
}

// FieldState is one field of a StateResponse.
type FieldState struct {
	Path    string `json:"path"`
	Touched bool   `json:"touched"`
	Dirty   bool   `json:"dirty"`
	Invalid bool   `json:"invalid"`
	Error   string `json:"error,omitempty"`
}

// StateResponse is the form state after a StateRequest. Secret values are
// masked.
type StateResponse struct {
	Values  schema.Values `json:"values"`
	Changed []string      `json:"changed"`
	Valid   bool          `json:"valid"`
	Fields  []FieldState  `json:"fields"`
}

func (s *Server) patchState(c echo.Context) error {
	var body StateRequest
	if err := c.Echo().JSONSerializer.Deserialize(c, &body); err != nil {
		return err
	}
	resp, err := s.orch.Generate(c.Request().Context(), orchestrator.Request{
		Form:       c.Param("name"),
		Values:     body.Values,
		Patch:      body.Patch,
		SkipRender: true,
	})
	if err != nil {
		if resp.Form != nil {
			return echo.NewHTTPError(http.StatusBadRequest, err.Error()).SetInternal(err)
		}
		return httpError(err)
	}
	return c.JSON(http.StatusOK, stateResponse(resp.Form, resp.Changed))
}

func stateResponse(f *form.Form, changed []string) StateResponse {
	if changed == nil {
		changed = []string{}
	}
	out := StateResponse{
		Values:  submit.Redact(f.Schema(), f.Values()),
		Changed: changed,
		Valid:   f.Valid(),
	}
	for _, path := range f.Schema().Paths() {
		msg := f.Error(path)
		out.Fields = append(out.Fields, FieldState{
			Path:    path,
			Touched: f.Touched(path),
			Dirty:   f.Dirty(path),
			Invalid: msg != "",
			Error:   msg,
		})
	}
	return out
}
