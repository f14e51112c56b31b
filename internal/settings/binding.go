package settings

import (
	"net/url"

	"github.com/inventory-pro/dashboard/internal/listeditor"
	"github.com/inventory-pro/dashboard/internal/platform/apiclient"
	"github.com/inventory-pro/dashboard/internal/resource"
)

// Binding plugs settings into the list-editor page.
type Binding struct{}

func (Binding) Resource() listeditor.Descriptor {
	return listeditor.Descriptor{
		Name:     "settings",
		Title:    "Settings",
		Singular: "Setting",
		Path:     "/settings",
		Template: "pages/settings.html",
	}
}

func (Binding) Gateway(api apiclient.Requester) resource.Gateway[Setting] {
	return NewGateway(api)
}

func (Binding) SearchText(s Setting) []string {
	return []string{s.Name, s.Display()}
}

func (Binding) DraftOf(s Setting) Draft {
	return Draft{Original: s.Name, Name: s.Name, Value: s.Display(), Text: s.IsText()}
}

func (Binding) Decode(id string, values url.Values) Draft {
	form := listeditor.Form(values)
	draft := Draft{
		Original: id,
		Name:     form.String("key"),
		Value:    values.Get("value"),
		Text:     id != "" && values.Get("value_kind") == "text",
	}
	if id != "" {
		draft.Name = id
	}
	return draft
}
