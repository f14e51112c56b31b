package listeditor

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inventory-pro/dashboard/internal/platform/apiclient"
)

type vendor struct {
	ID    string `json:"_id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (v vendor) Key() string { return v.ID }

type vendorDraft struct {
	ID   string `form:"-"`
	Name string `form:"name" validate:"required" label:"Company name"`
}

func (d vendorDraft) DraftKey() string { return d.ID }
func (d vendorDraft) Payload() any     { return map[string]string{"name": d.Name} }

type fakeGateway struct {
	items   []vendor
	listErr error
	getErr  error
	saveErr error
	delErr  error
	calls   []string
	nextID  string
}

func (g *fakeGateway) List(ctx context.Context) ([]vendor, error) {
	g.calls = append(g.calls, "list")
	if g.listErr != nil {
		return nil, g.listErr
	}
	return append([]vendor(nil), g.items...), nil
}

func (g *fakeGateway) Get(ctx context.Context, id string) (vendor, error) {
	g.calls = append(g.calls, "get "+id)
	if g.getErr != nil {
		return vendor{}, g.getErr
	}
	for _, v := range g.items {
		if v.ID == id {
			return v, nil
		}
	}
	return vendor{}, &apiclient.APIError{Status: 404, Message: "Vendor not found"}
}

func (g *fakeGateway) Create(ctx context.Context, payload any) (vendor, error) {
	g.calls = append(g.calls, "create")
	if g.saveErr != nil {
		return vendor{}, g.saveErr
	}
	body := payload.(map[string]string)
	return vendor{ID: g.nextID, Name: body["name"]}, nil
}

func (g *fakeGateway) Update(ctx context.Context, id string, payload any) (vendor, error) {
	g.calls = append(g.calls, "update "+id)
	if g.saveErr != nil {
		return vendor{}, g.saveErr
	}
	body := payload.(map[string]string)
	return vendor{ID: id, Name: body["name"]}, nil
}

func (g *fakeGateway) Remove(ctx context.Context, id string) error {
	g.calls = append(g.calls, "remove "+id)
	return g.delErr
}

func vendorFields(v vendor) []string { return []string{v.Name, v.Email} }

func mounted(t *testing.T, gw *fakeGateway) *Controller[vendor] {
	t.Helper()
	ctrl := New[vendor](gw, vendorFields)
	require.NoError(t, ctrl.Mount(context.Background()))
	return ctrl
}

func keys(items []vendor) []string {
	out := make([]string, 0, len(items))
	for _, v := range items {
		out = append(out, v.ID)
	}
	return out
}

func TestMountLoadsInServerOrder(t *testing.T) {
	gw := &fakeGateway{items: []vendor{{ID: "v2", Name: "Zed"}, {ID: "v1", Name: "Acme"}}}
	ctrl := New[vendor](gw, vendorFields)
	assert.Equal(t, StateIdle, ctrl.State())

	require.NoError(t, ctrl.Mount(context.Background()))
	assert.Equal(t, StateLoaded, ctrl.State())
	assert.Equal(t, []string{"v2", "v1"}, keys(ctrl.Items()))
	assert.Empty(t, ctrl.Err())
}

func TestMountFailureLeavesEmptyCollection(t *testing.T) {
	gw := &fakeGateway{listErr: &apiclient.TransportError{Method: "GET", URL: "x", Err: errors.New("refused")}}
	ctrl := New[vendor](gw, vendorFields)

	err := ctrl.Mount(context.Background())
	require.Error(t, err)
	assert.Equal(t, StateLoadFailed, ctrl.State())
	assert.Equal(t, 0, ctrl.Len())
	assert.Equal(t, TransportMessage, ctrl.Err())
}

func TestVendorSearchScenario(t *testing.T) {
	gw := &fakeGateway{items: []vendor{{ID: "v1", Name: "Acme"}}}
	ctrl := mounted(t, gw)

	assert.Len(t, ctrl.Search("acme"), 1)
	assert.Len(t, ctrl.Search("ACM"), 1)
	assert.Empty(t, ctrl.Search("xyz"))
	assert.Len(t, ctrl.Search("  "), 1)
}

func TestSearchIsIdempotentAndNonDestructive(t *testing.T) {
	gw := &fakeGateway{items: []vendor{
		{ID: "v1", Name: "Acme", Email: "sales@acme.test"},
		{ID: "v2", Name: "Globex", Email: "hi@globex.test"},
		{ID: "v3", Name: "Initech", Email: "acme-fan@initech.test"},
	}}
	ctrl := mounted(t, gw)

	first := ctrl.Search("acme")
	second := ctrl.Search("acme")
	assert.Equal(t, first, second)
	assert.Equal(t, []string{"v1", "v3"}, keys(first))
	assert.Equal(t, []string{"v1", "v2", "v3"}, keys(ctrl.Items()))
	assert.Equal(t, []string{"list"}, gw.calls)
}

func TestCreatePrependsExactlyOnce(t *testing.T) {
	gw := &fakeGateway{items: []vendor{{ID: "v1", Name: "Acme"}}, nextID: "v9"}
	ctrl := mounted(t, gw)

	saved, err := ctrl.Save(context.Background(), vendorDraft{Name: "Globex"})
	require.NoError(t, err)
	assert.Equal(t, "v9", saved.ID)
	assert.Equal(t, []string{"v9", "v1"}, keys(ctrl.Items()))

	_, err = ctrl.Save(context.Background(), vendorDraft{Name: "Globex again"})
	require.NoError(t, err)
	assert.Equal(t, []string{"v9", "v1"}, keys(ctrl.Items()))
	assert.Equal(t, "Globex again", ctrl.Items()[0].Name)
}

func TestCreateOfExistingKeyMovesToHead(t *testing.T) {
	gw := &fakeGateway{items: []vendor{{ID: "v1", Name: "Acme"}, {ID: "v2", Name: "Globex"}}, nextID: "v2"}
	ctrl := mounted(t, gw)

	_, err := ctrl.Save(context.Background(), vendorDraft{Name: "Globex Ltd"})
	require.NoError(t, err)
	assert.Equal(t, []string{"v2", "v1"}, keys(ctrl.Items()))
	assert.Equal(t, "Globex Ltd", ctrl.Items()[0].Name)
}

func TestCreateWithoutIDKeepsCollection(t *testing.T) {
	gw := &fakeGateway{items: []vendor{{ID: "v1", Name: "Acme"}}}
	ctrl := mounted(t, gw)

	_, err := ctrl.Save(context.Background(), vendorDraft{Name: "Ghost"})
	require.ErrorIs(t, err, ErrUnkeyedResult)
	assert.Equal(t, []string{"v1"}, keys(ctrl.Items()))
	assert.NotEmpty(t, ctrl.Err())
	assert.Equal(t, http.StatusBadGateway, StatusFor(err))
}

func TestUpdateReplacesInPlace(t *testing.T) {
	gw := &fakeGateway{items: []vendor{{ID: "v0", Name: "First"}, {ID: "v1", Name: "Acme"}, {ID: "v2", Name: "Last"}}}
	ctrl := mounted(t, gw)

	_, err := ctrl.Save(context.Background(), vendorDraft{ID: "v1", Name: "Acme Co"})
	require.NoError(t, err)

	items := ctrl.Items()
	assert.Equal(t, []string{"v0", "v1", "v2"}, keys(items))
	assert.Equal(t, "Acme Co", items[1].Name)
	assert.Equal(t, "update v1", gw.calls[len(gw.calls)-1])
}

func TestUpdateOfMissingMemberAppends(t *testing.T) {
	gw := &fakeGateway{items: []vendor{{ID: "v1", Name: "Acme"}}}
	ctrl := mounted(t, gw)

	_, err := ctrl.Save(context.Background(), vendorDraft{ID: "v7", Name: "Late"})
	require.NoError(t, err)
	assert.Equal(t, []string{"v1", "v7"}, keys(ctrl.Items()))
}

func TestSaveFailureKeepsCollection(t *testing.T) {
	gw := &fakeGateway{items: []vendor{{ID: "v1", Name: "Acme"}}}
	ctrl := mounted(t, gw)
	before := ctrl.Items()

	gw.saveErr = &apiclient.APIError{Status: 400, Message: "Email already in use"}
	_, err := ctrl.Save(context.Background(), vendorDraft{ID: "v1", Name: "Acme Co"})
	require.Error(t, err)
	assert.Equal(t, before, ctrl.Items())
	assert.Equal(t, "Email already in use", ctrl.Err())
	assert.False(t, ctrl.Saving())
}

func TestSaveConflictMessage(t *testing.T) {
	gw := &fakeGateway{items: []vendor{{ID: "v1", Name: "Acme"}}}
	ctrl := mounted(t, gw)
	gw.saveErr = &apiclient.APIError{Status: 409, Message: "version mismatch"}

	_, err := ctrl.Save(context.Background(), vendorDraft{ID: "v1", Name: "Acme Co"})
	assert.ErrorIs(t, err, apiclient.ErrConflict)
	assert.Equal(t, ConflictMessage, ctrl.Err())
	assert.Equal(t, "Acme", ctrl.Items()[0].Name)
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	gw := &fakeGateway{items: []vendor{{ID: "v1", Name: "Acme"}, {ID: "v2", Name: "Globex"}}}
	ctrl := mounted(t, gw)

	err := ctrl.ConfirmDelete(context.Background(), "v1")
	assert.ErrorIs(t, err, ErrDeleteNotConfirmed)
	assert.NotContains(t, gw.calls, "remove v1")

	_, err = ctrl.RequestDelete("v1")
	require.NoError(t, err)
	assert.ErrorIs(t, ctrl.ConfirmDelete(context.Background(), "v2"), ErrDeleteNotConfirmed)

	_, err = ctrl.RequestDelete("v1")
	require.NoError(t, err)
	ctrl.CancelDelete()
	assert.ErrorIs(t, ctrl.ConfirmDelete(context.Background(), "v1"), ErrDeleteNotConfirmed)

	_, err = ctrl.RequestDelete("v1")
	require.NoError(t, err)
	require.NoError(t, ctrl.ConfirmDelete(context.Background(), "v1"))
	assert.Equal(t, []string{"v2"}, keys(ctrl.Items()))
	assert.Empty(t, ctrl.PendingDelete())
}

func TestRequestDeleteUnknownID(t *testing.T) {
	ctrl := mounted(t, &fakeGateway{items: []vendor{{ID: "v1"}}})
	_, err := ctrl.RequestDelete("nope")
	assert.ErrorIs(t, err, ErrNotInCollection)
}

func TestRemoveNotFoundKeepsCollection(t *testing.T) {
	gw := &fakeGateway{items: []vendor{{ID: "v1", Name: "Acme"}}}
	ctrl := mounted(t, gw)
	gw.delErr = &apiclient.APIError{Status: 404, Message: "Vendor not found"}

	_, err := ctrl.RequestDelete("v1")
	require.NoError(t, err)
	err = ctrl.ConfirmDelete(context.Background(), "v1")
	require.Error(t, err)
	assert.Equal(t, []string{"v1"}, keys(ctrl.Items()))
	assert.Equal(t, "Vendor not found", ctrl.Err())
}

func TestOpenEditRefetchesAndFallsBack(t *testing.T) {
	gw := &fakeGateway{items: []vendor{{ID: "v1", Name: "Acme"}}}
	ctrl := mounted(t, gw)

	gw.items[0].Name = "Acme (fresh)"
	item, err := ctrl.OpenEdit(context.Background(), "v1")
	require.NoError(t, err)
	assert.Equal(t, "Acme (fresh)", item.Name)

	gw.getErr = &apiclient.TransportError{Method: "GET", URL: "x", Err: errors.New("down")}
	item, err = ctrl.OpenEdit(context.Background(), "v1")
	require.NoError(t, err)
	assert.Equal(t, "Acme", item.Name)

	_, err = ctrl.OpenEdit(context.Background(), "v404")
	assert.ErrorIs(t, err, ErrNotInCollection)
	assert.ErrorIs(t, err, apiclient.ErrTransport)
}

func TestSnapshotRestore(t *testing.T) {
	gw := &fakeGateway{items: []vendor{{ID: "v1", Name: "Acme"}, {ID: "v1", Name: "Dup"}}}
	ctrl := mounted(t, gw)
	assert.Equal(t, 1, ctrl.Len())
	_, err := ctrl.RequestDelete("v1")
	require.NoError(t, err)

	snap := ctrl.Snapshot()
	other := New[vendor](gw, vendorFields)
	other.Restore(snap)
	assert.Equal(t, StateLoaded, other.State())
	assert.Equal(t, ctrl.Items(), other.Items())
	assert.Equal(t, "v1", other.PendingDelete())
	require.NoError(t, other.ConfirmDelete(context.Background(), "v1"))
	assert.Equal(t, 0, other.Len())
	assert.Equal(t, 1, ctrl.Len())
}
