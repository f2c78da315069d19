package web2pdf

import (
	"time"

	"github.com/go-rod/rod"
)

// scrollSettlePause is the fixed pause after scrolling back to top.
const scrollSettlePause = 500 * time.Millisecond

// scrollThroughScript scrolls the full document height in fixed steps to
// trigger lazy-loaded content.
const scrollThroughScript = `() => new Promise(resolve => {
	let totalHeight = 0;
	const distance = 100;
	const timer = setInterval(() => {
		const scrollHeight = document.body.scrollHeight;
		window.scrollBy(0, distance);
		totalHeight += distance;
		if (totalHeight >= scrollHeight) {
			clearInterval(timer);
			resolve();
		}
	}, 100);
})`

// elementSettleScript waits for every matching element to reach a loaded
// or errored state, capped at 5s per element, concurrently. Errors
// resolve rather than reject so one broken resource cannot block the
// rest.
const elementSettleScript = `async (tag) => {
	const elements = Array.from(document.querySelectorAll(tag));
	await Promise.all(elements.map(el => {
		if (el.complete && el.naturalHeight !== 0) {
			return Promise.resolve();
		}
		return new Promise(resolve => {
			el.onload = () => resolve();
			el.onerror = () => resolve();
			setTimeout(() => resolve(), 5000);
		});
	}));
}`

const scrollTopScript = `() => window.scrollTo(0, 0)`

// settle waits best-effort for dynamic content before emission:
// network idle, lazy-load scroll plus per-element waits for images and
// iframes when enabled, the requested extra delay, then network idle
// once more. Dynamic-content completeness is unverifiable for arbitrary
// pages, so every failure here is logged and swallowed; the request
// proceeds with whatever state the page reached, and each sub-wait is
// individually capped.
func (s *rodSession) settle(page *rod.Page, req *RenderRequest) {
	if !req.WaitForImages && !req.WaitForIframes && req.WaitTime <= 0 {
		return
	}

	s.waitNetworkIdle(page)

	if req.WaitForImages {
		s.settleLazyElements(page, "img")
	}
	if req.WaitForIframes {
		s.settleLazyElements(page, "iframe")
	}
	if req.WaitTime > 0 {
		s.logger.Debug("waiting for dynamic content", "delay", req.WaitTime)
		time.Sleep(req.WaitTime)
	}

	s.waitNetworkIdle(page)
}

// waitNetworkIdle blocks until no network activity for a quiet period,
// capped at the fixed idle timeout.
func (s *rodSession) waitNetworkIdle(page *rod.Page) {
	page.Timeout(networkIdleTimeout).WaitRequestIdle(networkIdleQuiet, nil, nil, nil)()
}

// settleLazyElements scrolls through the page to trigger lazy loading,
// waits for every element of the given tag to settle, scrolls back to
// top and pauses briefly.
func (s *rodSession) settleLazyElements(page *rod.Page, tag string) {
	p := page.Timeout(settleScriptTimeout)

	if _, err := p.Eval(scrollThroughScript); err != nil {
		s.logger.Warn("lazy-load scroll failed", "tag", tag, "error", err)
		return
	}
	if _, err := p.Eval(elementSettleScript, tag); err != nil {
		s.logger.Warn("element settle failed", "tag", tag, "error", err)
	}
	if _, err := p.Eval(scrollTopScript); err != nil {
		s.logger.Warn("scroll to top failed", "tag", tag, "error", err)
	}
	time.Sleep(scrollSettlePause)
}
