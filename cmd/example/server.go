package main

import (
	"errors"
	"io"
	"net/http"

	goerrors "github.com/goliatone/go-errors"
	"github.com/gorilla/mux"

	admin "github.com/goliatone/go-admin"
	"github.com/goliatone/go-admin/fields"
	"github.com/goliatone/go-admin/internal/jsonutil"
	"github.com/goliatone/go-admin/internal/links"
	"github.com/goliatone/go-admin/pkg/adminerrors"
	"github.com/goliatone/go-admin/pkg/interfaces"
)

const (
	jsonContentType    = "application/json"
	problemContentType = "application/problem+json"
	maxFormBytes       = 1 << 20
)

type server struct {
	admin  *admin.Admin[appContext]
	create *admin.CreateItemHandler[appContext]
	logger interfaces.Logger
}

type problemDetails struct {
	Type     string         `json:"type,omitempty"`
	Title    string         `json:"title"`
	Status   int            `json:"status"`
	Detail   string         `json:"detail,omitempty"`
	Instance string         `json:"instance,omitempty"`
	TextCode string         `json:"text_code,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

type resourceSummary struct {
	Name      string `json:"name"`
	Path      string `json:"path"`
	ListURL   string `json:"list_url"`
	CreateURL string `json:"create_url"`
}

type dashboardView struct {
	Title     string            `json:"title"`
	Theme     admin.Theme       `json:"theme"`
	Resources []resourceSummary `json:"resources"`
}

type itemView struct {
	ID     string                `json:"id"`
	URL    string                `json:"url"`
	Data   admin.Object          `json:"data"`
	Fields []admin.RenderedField `json:"fields"`
}

type listView struct {
	Resource  string     `json:"resource"`
	CreateURL string     `json:"create_url"`
	Items     []itemView `json:"items"`
}

type formField struct {
	FieldID     string          `json:"field_id"`
	Label       string          `json:"label"`
	Kind        fields.Kind     `json:"kind"`
	Optional    bool            `json:"optional"`
	Description string          `json:"description,omitempty"`
	HelpText    string          `json:"help_text,omitempty"`
	Choices     []fields.Choice `json:"choices,omitempty"`
}

type formView struct {
	Resource string         `json:"resource"`
	Action   string         `json:"action"`
	Fields   []formField    `json:"fields"`
	Schema   map[string]any `json:"schema,omitempty"`
}

func newRouter(a *admin.Admin[appContext], logger interfaces.Logger) http.Handler {
	s := &server{
		admin:  a,
		create: admin.NewCreateItemHandler(a),
		logger: logger,
	}

	router := mux.NewRouter().StrictSlash(true)
	sub := router
	if base := links.NormalizeBasePath(a.Config().BasePath); base != "" {
		sub = router.PathPrefix(base).Subrouter()
	}
	sub.HandleFunc("/", s.dashboard).Methods(http.MethodGet)
	sub.HandleFunc("/{resource}", s.list).Methods(http.MethodGet)
	sub.HandleFunc("/{resource}", s.createItem).Methods(http.MethodPost)
	sub.HandleFunc("/{resource}/create", s.form).Methods(http.MethodGet)
	sub.HandleFunc("/{resource}/{id}", s.item).Methods(http.MethodGet)
	return router
}

func (s *server) dashboard(w http.ResponseWriter, r *http.Request) {
	view := dashboardView{Title: s.admin.Title(), Theme: s.admin.Theme()}
	for _, jr := range s.admin.Resources() {
		listURL, err := s.admin.ListURL(jr.Path())
		if err != nil {
			s.fail(w, r, err)
			return
		}
		createURL, err := s.admin.CreateURL(jr.Path())
		if err != nil {
			s.fail(w, r, err)
			return
		}
		view.Resources = append(view.Resources, resourceSummary{
			Name:      jr.Name(),
			Path:      jr.Path(),
			ListURL:   listURL,
			CreateURL: createURL,
		})
	}
	s.respond(w, http.StatusOK, view)
}

func (s *server) list(w http.ResponseWriter, r *http.Request) {
	path := mux.Vars(r)["resource"]
	jr, err := s.admin.Resource(path)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	items, err := jr.List(r.Context(), s.admin.Context())
	if err != nil {
		s.fail(w, r, err)
		return
	}
	createURL, err := s.admin.CreateURL(path)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	view := listView{Resource: jr.Path(), CreateURL: createURL, Items: make([]itemView, 0, len(items))}
	for _, obj := range items {
		item, err := s.itemView(jr, obj)
		if err != nil {
			s.fail(w, r, err)
			return
		}
		view.Items = append(view.Items, item)
	}
	s.respond(w, http.StatusOK, view)
}

func (s *server) item(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	jr, err := s.admin.Resource(vars["resource"])
	if err != nil {
		s.fail(w, r, err)
		return
	}
	obj, err := jr.Get(r.Context(), s.admin.Context(), vars["id"])
	if err != nil {
		s.fail(w, r, err)
		return
	}
	view, err := s.itemView(jr, obj)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	s.respond(w, http.StatusOK, view)
}

func (s *server) form(w http.ResponseWriter, r *http.Request) {
	path := mux.Vars(r)["resource"]
	jr, err := s.admin.Resource(path)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	action, err := s.admin.ListURL(path)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	view := formView{Resource: jr.Path(), Action: action, Schema: jr.CreateSchema()}
	for _, cfg := range jr.CreateFieldConfigs() {
		view.Fields = append(view.Fields, formField{
			FieldID:     cfg.FieldID,
			Label:       cfg.Label(),
			Kind:        cfg.Kind,
			Optional:    cfg.Optional,
			Description: cfg.Description,
			HelpText:    cfg.HelpText,
			Choices:     cfg.Choices,
		})
	}
	s.respond(w, http.StatusOK, view)
}

func (s *server) createItem(w http.ResponseWriter, r *http.Request) {
	path := mux.Vars(r)["resource"]
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxFormBytes))
	if err != nil {
		s.fail(w, r, adminerrors.Internal(err, "cannot read form body").
			WithTextCode(adminerrors.TextCodeFormDecodeFailed))
		return
	}

	var created admin.Object
	err = s.create.Execute(r.Context(), admin.CreateItemCommand{
		Resource:  path,
		Form:      body,
		OnCreated: func(item admin.Object) { created = item },
	})
	if err != nil {
		s.fail(w, r, err)
		return
	}

	jr, err := s.admin.Resource(path)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	view, err := s.itemView(jr, created)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if listURL, err := s.admin.ListURL(path); err == nil {
		w.Header().Set("HX-Redirect", listURL)
	}
	w.Header().Set("Location", view.URL)
	s.respond(w, http.StatusCreated, view)
}

func (s *server) itemView(jr *admin.JSONResource[appContext], obj admin.Object) (itemView, error) {
	id, err := jr.ItemID(obj)
	if err != nil {
		return itemView{}, err
	}
	url, err := s.admin.ItemURL(jr.Path(), id)
	if err != nil {
		return itemView{}, err
	}
	rendered, err := jr.Render(obj)
	if err != nil {
		return itemView{}, err
	}
	return itemView{ID: id, URL: url, Data: obj, Fields: rendered}, nil
}

func (s *server) respond(w http.ResponseWriter, status int, payload any) {
	s.write(w, status, jsonContentType, payload)
}

func (s *server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := adminerrors.StatusCode(err)
	if isValidation(err) {
		status = http.StatusBadRequest
	}
	problem := problemDetails{
		Type:     "about:blank",
		Title:    http.StatusText(status),
		Status:   status,
		Detail:   err.Error(),
		Instance: r.URL.Path,
		TextCode: adminerrors.TextCode(err),
		Metadata: adminerrors.Metadata(err),
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "path", r.URL.Path, "status", status, "text_code", problem.TextCode, "error", err)
	} else {
		s.logger.Debug("request rejected", "path", r.URL.Path, "status", status, "text_code", problem.TextCode)
	}
	s.write(w, status, problemContentType, problem)
}

func (s *server) write(w http.ResponseWriter, status int, contentType string, payload any) {
	body, err := jsonutil.Marshal(payload)
	if err != nil {
		s.logger.Error("failed to encode response", "error", err)
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	if len(body) == 0 || body[len(body)-1] != '\n' {
		body = append(body, '\n')
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func isValidation(err error) bool {
	var maxBytes *http.MaxBytesError
	if errors.As(err, &maxBytes) {
		return true
	}
	return goerrors.IsCategory(err, goerrors.CategoryValidation)
}
