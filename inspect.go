package web2pdf

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/go-rod/rod/lib/proto"
)

// DefaultInspectTimeoutMs bounds the diagnostic navigation.
const DefaultInspectTimeoutMs = 30000

// ElementSample describes one sampled element on the inspected page.
type ElementSample struct {
	Tag     string   `json:"tag"`
	ID      string   `json:"id"`
	Classes []string `json:"classes"`
	Text    string   `json:"text"`
}

// PageInventory is a structural summary of a page, built to help a
// caller choose hide-selectors for rendering.
type PageInventory struct {
	Navigation []ElementSample `json:"navigation"`
	Headers    []ElementSample `json:"headers"`
	Footers    []ElementSample `json:"footers"`
	Sidebars   []ElementSample `json:"sidebars"`
	Buttons    []ElementSample `json:"buttons"`
	Ads        []ElementSample `json:"ads"`
	Forms      []ElementSample `json:"forms"`
	IDs        []string        `json:"all_ids"`
	Classes    []string        `json:"common_classes"`
}

// pageInspector abstracts the diagnostic session for testing.
type pageInspector interface {
	Inspect(ctx context.Context, u *url.URL, timeout time.Duration) (*PageInventory, error)
}

var _ pageInspector = (*rodSession)(nil)

// inventoryScript samples elements people commonly hide: at most five
// per category, plus the first observed ids and CSS classes.
const inventoryScript = `() => {
	const sample = (selector) => {
		const elements = document.querySelectorAll(selector);
		return Array.from(elements).slice(0, 5).map(el => ({
			tag: el.tagName.toLowerCase(),
			id: el.id || "",
			classes: Array.from(el.classList),
			text: (el.textContent || "").substring(0, 50).trim()
		}));
	};
	return {
		navigation: sample('nav, .nav, .navigation, .navbar'),
		headers: sample('header, .header'),
		footers: sample('footer, .footer'),
		sidebars: sample('.sidebar, .side-bar, aside'),
		buttons: sample('button'),
		ads: sample('.ad, .ads, .advertisement, .banner'),
		forms: sample('form'),
		all_ids: Array.from(new Set(
			Array.from(document.querySelectorAll('[id]')).map(el => el.id)
		)).slice(0, 20),
		common_classes: Array.from(new Set(
			Array.from(document.querySelectorAll('[class]'))
				.flatMap(el => Array.from(el.classList))
				.filter(cls => cls.length > 2)
		)).slice(0, 30)
	};
}`

// Inspect navigates to u in a short-lived session and returns a
// structural inventory of the page.
func (s *rodSession) Inspect(ctx context.Context, u *url.URL, timeout time.Duration) (*PageInventory, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	req := DefaultRenderRequest()
	req.URL = u
	req.Timeout = timeout

	browser, err := s.launch(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := browser.Close(); cerr != nil {
			s.logger.Warn("browser teardown failed", "error", cerr)
		}
	}()

	page, err := browser.Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPageCreate, err)
	}

	if err := s.navigate(page, req); err != nil {
		return nil, err
	}

	res, err := page.Timeout(timeout).Eval(inventoryScript)
	if err != nil {
		return nil, fmt.Errorf("%w: inspecting page: %v", ErrPageLoad, err)
	}

	raw, err := json.Marshal(res.Value.Val())
	if err != nil {
		return nil, fmt.Errorf("%w: encoding inventory: %v", ErrPageLoad, err)
	}
	var inv PageInventory
	if err := json.Unmarshal(raw, &inv); err != nil {
		return nil, fmt.Errorf("%w: decoding inventory: %v", ErrPageLoad, err)
	}
	return &inv, nil
}

// Inspect navigates to rawURL and returns a structural summary to help
// a caller choose hide-selectors. The URL undergoes the same validation
// as a render request.
func (s *Service) Inspect(ctx context.Context, rawURL string, timeout time.Duration) (*PageInventory, error) {
	u, err := ValidateURL(rawURL)
	if err != nil {
		return nil, err
	}
	if timeout <= 0 {
		timeout = DefaultInspectTimeoutMs * time.Millisecond
	}
	return s.inspector().Inspect(ctx, u, timeout)
}

// inspector returns the diagnostic session, sharing the renderer when
// it can inspect (the production rodSession does both).
func (s *Service) inspector() pageInspector {
	if pi, ok := s.renderer.(pageInspector); ok {
		return pi
	}
	return newRodSession(s.cfg.browserBin, s.cfg.sandbox, s.logger)
}
