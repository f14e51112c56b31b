package listeditor

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/inventory-pro/dashboard/internal/platform/apiclient"
	"github.com/inventory-pro/dashboard/internal/resource"
	"github.com/inventory-pro/dashboard/internal/shared"
	"github.com/inventory-pro/dashboard/internal/view"
)

// InstanceParam carries the page instance id in links and forms.
const InstanceParam = "p"

// Descriptor names a resource for routing, storage and display.
type Descriptor struct {
	Name     string
	Title    string
	Singular string
	Path     string
	Template string
}

// Binding adapts one resource to the generic Page.
type Binding[T resource.Entity, D Draft] interface {
	Resource() Descriptor
	Gateway(api apiclient.Requester) resource.Gateway[T]
	SearchText(item T) []string
	DraftOf(item T) D
	Decode(id string, form url.Values) D
}

// OptionLoader is implemented by bindings whose form needs dropdown data.
type OptionLoader interface {
	LoadOptions(ctx context.Context, api apiclient.Requester) (map[string]any, error)
}

// Deps are shared by every Page.
type Deps struct {
	Logger    *slog.Logger
	Responder *view.Responder
	Store     *Store
	API       *apiclient.Client
	Validate  *validator.Validate
	// Changed, when set, runs after the backend accepted a save or delete.
	Changed func(ctx context.Context, session string)
}

// ModalView is the template-facing state of the editor.
type ModalView[D any] struct {
	Open   bool
	Mode   Mode
	Draft  D
	Errors map[string]string
	Action string
}

// PageView is handed to the resource template as .Data.
type PageView[T any, D any] struct {
	Resource Descriptor
	Instance string
	Query    string
	State    State
	Items    []T
	Total    int
	Error    string
	Modal    ModalView[D]
	Confirm  *T
	Options  map[string]any
}

// Page serves one resource's list-editor routes.
type Page[T resource.Entity, D Draft] struct {
	deps    Deps
	binding Binding[T, D]
}

// NewPage binds a resource to the shared dependencies.
func NewPage[T resource.Entity, D Draft](deps Deps, binding Binding[T, D]) *Page[T, D] {
	if deps.Validate == nil {
		deps.Validate = NewValidator()
	}
	return &Page[T, D]{deps: deps, binding: binding}
}

// Routes registers the page under the router it is mounted on.
func (p *Page[T, D]) Routes(r chi.Router) {
	r.Get("/", p.index)
	r.Post("/", p.create)
	r.Get("/new", p.openCreate)
	r.Get("/{id}/edit", p.openEdit)
	r.Post("/{id}", p.update)
	r.Get("/{id}/delete", p.requestDelete)
	r.Post("/{id}/delete", p.confirmDelete)
}

type request[T resource.Entity] struct {
	ctrl  *Controller[T]
	scope Scope
	api   apiclient.Requester
}

// open restores the instance named in the request, or mounts a new one.
func (p *Page[T, D]) open(r *http.Request) (request[T], error) {
	ctx := r.Context()
	sess := shared.SessionFromContext(ctx)
	api := p.deps.API.WithToken(sess.Token())
	ctrl := New(p.binding.Gateway(api), p.binding.SearchText)
	scope := Scope{Resource: p.binding.Resource().Name, Instance: r.FormValue(InstanceParam)}
	if sess != nil {
		scope.Session = sess.ID
	}

	if scope.Instance != "" {
		var snap Snapshot[T]
		found, err := p.deps.Store.Load(ctx, scope, &snap)
		if err != nil {
			p.deps.Logger.Warn("restore page state", slog.String("resource", scope.Resource), slog.Any("error", err))
		}
		if found {
			ctrl.Restore(snap)
			return request[T]{ctrl: ctrl, scope: scope, api: api}, nil
		}
	}

	scope.Instance = uuid.NewString()
	err := ctrl.Mount(ctx)
	if err != nil {
		p.deps.Logger.Warn("load collection", slog.String("resource", scope.Resource), slog.Any("error", err))
	}
	return request[T]{ctrl: ctrl, scope: scope, api: api}, err
}

func (p *Page[T, D]) persist(ctx context.Context, req request[T]) {
	if err := p.deps.Store.Save(ctx, req.scope, req.ctrl.Snapshot()); err != nil {
		p.deps.Logger.Error("save page state", slog.String("resource", req.scope.Resource), slog.Any("error", err))
	}
}

func (p *Page[T, D]) changed(ctx context.Context, req request[T]) {
	if p.deps.Changed != nil {
		p.deps.Changed(ctx, req.scope.Session)
	}
}

func (p *Page[T, D]) index(w http.ResponseWriter, r *http.Request) {
	req, err := p.open(r)
	if errors.Is(err, apiclient.ErrUnauthorized) {
		p.deps.Responder.SignInAgain(w, r)
		return
	}
	req.ctrl.CancelDelete()
	if req.ctrl.State() != StateLoadFailed {
		req.ctrl.ClearErr()
	}
	p.persist(r.Context(), req)
	p.render(w, r, req, nil, nil, http.StatusOK)
}

func (p *Page[T, D]) openCreate(w http.ResponseWriter, r *http.Request) {
	req, err := p.open(r)
	if errors.Is(err, apiclient.ErrUnauthorized) {
		p.deps.Responder.SignInAgain(w, r)
		return
	}
	p.persist(r.Context(), req)
	modal := NewModal[D](p.deps.Validate)
	modal.Open(nil)
	p.render(w, r, req, modal, nil, http.StatusOK)
}

func (p *Page[T, D]) openEdit(w http.ResponseWriter, r *http.Request) {
	req, err := p.open(r)
	if errors.Is(err, apiclient.ErrUnauthorized) {
		p.deps.Responder.SignInAgain(w, r)
		return
	}
	item, err := req.ctrl.OpenEdit(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, apiclient.ErrUnauthorized) {
			p.deps.Responder.SignInAgain(w, r)
			return
		}
		p.fail(w, r, req, nil, err)
		return
	}
	p.persist(r.Context(), req)
	draft := p.binding.DraftOf(item)
	modal := NewModal[D](p.deps.Validate)
	modal.Open(&draft)
	p.render(w, r, req, modal, nil, http.StatusOK)
}

func (p *Page[T, D]) create(w http.ResponseWriter, r *http.Request) {
	p.submit(w, r, "")
}

func (p *Page[T, D]) update(w http.ResponseWriter, r *http.Request) {
	p.submit(w, r, chi.URLParam(r, "id"))
}

func (p *Page[T, D]) submit(w http.ResponseWriter, r *http.Request, id string) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}
	req, err := p.open(r)
	if errors.Is(err, apiclient.ErrUnauthorized) {
		p.deps.Responder.SignInAgain(w, r)
		return
	}

	draft := p.binding.Decode(id, r.PostForm)
	modal := NewModal[D](p.deps.Validate)
	if id == "" {
		modal.Open(nil)
	} else {
		modal.Open(&draft)
	}
	if err := modal.Submit(draft); err != nil {
		p.persist(r.Context(), req)
		p.render(w, r, req, modal, nil, StatusFor(err))
		return
	}

	if _, err := req.ctrl.Save(r.Context(), draft); err != nil {
		if errors.Is(err, apiclient.ErrUnauthorized) {
			p.deps.Responder.SignInAgain(w, r)
			return
		}
		mode := ModeCreate
		if id != "" {
			mode = ModeEdit
		}
		modal.Fail(draft, mode)
		p.fail(w, r, req, modal, err)
		return
	}
	p.persist(r.Context(), req)
	p.changed(r.Context(), req)

	verb := "created"
	if id != "" {
		verb = "updated"
	}
	desc := p.binding.Resource()
	p.deps.Responder.RedirectWithFlash(w, r, p.instanceURL(req.scope.Instance), "success", desc.Singular+" "+verb+" successfully")
}

func (p *Page[T, D]) requestDelete(w http.ResponseWriter, r *http.Request) {
	req, err := p.open(r)
	if errors.Is(err, apiclient.ErrUnauthorized) {
		p.deps.Responder.SignInAgain(w, r)
		return
	}
	item, err := req.ctrl.RequestDelete(chi.URLParam(r, "id"))
	if err != nil {
		p.fail(w, r, req, nil, err)
		return
	}
	p.persist(r.Context(), req)
	p.render(w, r, req, nil, &item, http.StatusOK)
}

func (p *Page[T, D]) confirmDelete(w http.ResponseWriter, r *http.Request) {
	req, err := p.open(r)
	if errors.Is(err, apiclient.ErrUnauthorized) {
		p.deps.Responder.SignInAgain(w, r)
		return
	}
	err = req.ctrl.ConfirmDelete(r.Context(), chi.URLParam(r, "id"))
	switch {
	case errors.Is(err, ErrDeleteNotConfirmed):
		p.persist(r.Context(), req)
		p.deps.Responder.RedirectWithFlash(w, r, p.instanceURL(req.scope.Instance), "error", Message(err))
		return
	case errors.Is(err, apiclient.ErrUnauthorized):
		p.deps.Responder.SignInAgain(w, r)
		return
	case err != nil:
		p.fail(w, r, req, nil, err)
		return
	}
	p.persist(r.Context(), req)
	p.changed(r.Context(), req)
	desc := p.binding.Resource()
	p.deps.Responder.RedirectWithFlash(w, r, p.instanceURL(req.scope.Instance), "success", desc.Singular+" deleted successfully")
}

// fail renders the page with the inline error and the collection as it was.
func (p *Page[T, D]) fail(w http.ResponseWriter, r *http.Request, req request[T], modal *Modal[D], err error) {
	p.deps.Logger.Warn("list editor operation failed",
		slog.String("resource", req.scope.Resource),
		slog.String("path", r.URL.Path),
		slog.Any("error", err),
	)
	p.persist(r.Context(), req)
	pv := p.pageView(r, req, modal, nil)
	pv.Error = Message(err)
	p.deps.Responder.Render(w, r, p.binding.Resource().Template, p.binding.Resource().Title, pv, StatusFor(err))
}

func (p *Page[T, D]) render(w http.ResponseWriter, r *http.Request, req request[T], modal *Modal[D], confirm *T, status int) {
	desc := p.binding.Resource()
	p.deps.Responder.Render(w, r, desc.Template, desc.Title, p.pageView(r, req, modal, confirm), status)
}

func (p *Page[T, D]) pageView(r *http.Request, req request[T], modal *Modal[D], confirm *T) PageView[T, D] {
	desc := p.binding.Resource()
	query := strings.TrimSpace(r.FormValue("q"))
	out := PageView[T, D]{
		Resource: desc,
		Instance: req.scope.Instance,
		Query:    query,
		State:    req.ctrl.State(),
		Items:    req.ctrl.Search(query),
		Total:    req.ctrl.Len(),
		Error:    req.ctrl.Err(),
		Confirm:  confirm,
	}
	if modal != nil && modal.IsOpen() {
		draft := modal.Draft()
		action := desc.Path
		if key := draft.DraftKey(); key != "" {
			action = desc.Path + "/" + url.PathEscape(key)
		}
		out.Modal = ModalView[D]{
			Open:   true,
			Mode:   modal.Mode(),
			Draft:  draft,
			Errors: modal.FieldErrors(),
			Action: action,
		}
		if fields := modal.FieldErrors(); len(fields) > 0 {
			out.Error = (&ValidationError{Fields: fields}).Error()
		}
		out.Options = p.options(r.Context(), req.api, &out)
	}
	return out
}

func (p *Page[T, D]) options(ctx context.Context, api apiclient.Requester, out *PageView[T, D]) map[string]any {
	loader, ok := p.binding.(OptionLoader)
	if !ok {
		return nil
	}
	opts, err := loader.LoadOptions(ctx, api)
	if err != nil {
		p.deps.Logger.Warn("load form options", slog.String("resource", p.binding.Resource().Name), slog.Any("error", err))
		if out.Error == "" {
			out.Error = Message(err)
		}
	}
	return opts
}

func (p *Page[T, D]) instanceURL(instance string) string {
	return p.binding.Resource().Path + "?" + InstanceParam + "=" + url.QueryEscape(instance)
}
