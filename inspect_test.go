package web2pdf

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"testing"
	"time"
)

// stubInspector is a renderer that can also inspect, mirroring the
// production session.
type stubInspector struct {
	stubRenderer
	gotURL     string
	gotTimeout time.Duration
	inventory  *PageInventory
	inspectErr error
}

var _ pageInspector = (*stubInspector)(nil)

func (i *stubInspector) Inspect(_ context.Context, u *url.URL, timeout time.Duration) (*PageInventory, error) {
	i.gotURL = u.String()
	i.gotTimeout = timeout
	if i.inspectErr != nil {
		return nil, i.inspectErr
	}
	return i.inventory, nil
}

func TestServiceInspect(t *testing.T) {
	t.Parallel()

	stub := &stubInspector{inventory: &PageInventory{
		Navigation: []ElementSample{{Tag: "nav", Classes: []string{"navbar"}}},
		IDs:        []string{"main"},
	}}
	svc := New()
	svc.renderer = stub

	inv, err := svc.Inspect(context.Background(), "https://example.com", 10*time.Second)
	if err != nil {
		t.Fatalf("Inspect() error: %v", err)
	}
	if len(inv.Navigation) != 1 || inv.Navigation[0].Tag != "nav" {
		t.Errorf("Navigation = %+v", inv.Navigation)
	}
	if stub.gotURL != "https://example.com" {
		t.Errorf("inspector saw URL %q", stub.gotURL)
	}
	if stub.gotTimeout != 10*time.Second {
		t.Errorf("timeout = %v, want 10s", stub.gotTimeout)
	}
}

func TestServiceInspectValidatesURL(t *testing.T) {
	t.Parallel()

	svc := New()
	svc.renderer = &stubInspector{}

	for _, raw := range []string{"", "ftp://example.com", "example.com"} {
		if _, err := svc.Inspect(context.Background(), raw, time.Second); !errors.Is(err, ErrInvalidURL) {
			t.Errorf("Inspect(%q) error = %v, want ErrInvalidURL", raw, err)
		}
	}
}

func TestServiceInspectDefaultsTimeout(t *testing.T) {
	t.Parallel()

	stub := &stubInspector{inventory: &PageInventory{}}
	svc := New()
	svc.renderer = stub

	if _, err := svc.Inspect(context.Background(), "https://example.com", 0); err != nil {
		t.Fatalf("Inspect() error: %v", err)
	}
	if want := DefaultInspectTimeoutMs * time.Millisecond; stub.gotTimeout != want {
		t.Errorf("timeout = %v, want default %v", stub.gotTimeout, want)
	}
}

func TestServiceInspectPropagatesError(t *testing.T) {
	t.Parallel()

	svc := New()
	svc.renderer = &stubInspector{inspectErr: ErrTargetUnreachable}

	_, err := svc.Inspect(context.Background(), "https://example.com", time.Second)
	if !errors.Is(err, ErrTargetUnreachable) {
		t.Errorf("error = %v, want ErrTargetUnreachable", err)
	}
}

// The inventory round-trips through JSON between the page script and the
// typed result, so the field tags must match the script's object keys.
func TestPageInventoryJSONShape(t *testing.T) {
	t.Parallel()

	raw := `{
		"navigation": [{"tag": "nav", "id": "topnav", "classes": ["navbar", "dark"], "text": "Home"}],
		"headers": [], "footers": [], "sidebars": [],
		"buttons": [{"tag": "button", "id": "", "classes": ["close"], "text": "X"}],
		"ads": [], "forms": [],
		"all_ids": ["topnav", "main"],
		"common_classes": ["navbar", "close"]
	}`

	var inv PageInventory
	if err := json.Unmarshal([]byte(raw), &inv); err != nil {
		t.Fatalf("Unmarshal() error: %v", err)
	}
	if inv.Navigation[0].ID != "topnav" || inv.Navigation[0].Text != "Home" {
		t.Errorf("Navigation = %+v", inv.Navigation[0])
	}
	if len(inv.IDs) != 2 || inv.IDs[0] != "topnav" {
		t.Errorf("IDs = %v", inv.IDs)
	}
	if len(inv.Classes) != 2 {
		t.Errorf("Classes = %v", inv.Classes)
	}
}
