// Package browser drives the login-gated job boards (LinkedIn, Simplify,
// Jobright) through a real Chrome window. The window is headful on purpose:
// these boards gate their results behind a login, and the user completes it
// in the window that opens while the run waits.
package browser

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// userAgent pins a plain desktop Chrome signature; the default headless UA
// gets instantly flagged by LinkedIn.
const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/121.0.0.0 Safari/537.36"

const (
	viewportWidth  = 1366
	viewportHeight = 900
	navTimeout     = 20 * time.Second
	loginWait      = 120 * time.Second
)

// Session owns one Chrome process with a persistent profile. All browser
// sources in a run share it, so a LinkedIn login completed during the
// LinkedIn phase is still valid when Simplify runs, and logins survive
// between runs entirely.
type Session struct {
	profileDir string
	logger     *slog.Logger

	mu     sync.Mutex
	launch *launcher.Launcher
	brw    *rod.Browser
}

// NewSession prepares a session rooted at profileDir. Chrome is not started
// until the first page is requested.
func NewSession(profileDir string, logger *slog.Logger) *Session {
	if logger == nil {
		logger = slog.Default()
	}
	return &Session{profileDir: profileDir, logger: logger}
}

func (s *Session) browser() (*rod.Browser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.brw != nil {
		return s.brw, nil
	}

	dir, err := filepath.Abs(s.profileDir)
	if err != nil {
		return nil, fmt.Errorf("resolving profile dir: %w", err)
	}

	l := launcher.New().
		UserDataDir(dir).
		Headless(false).
		Set("disable-blink-features", "AutomationControlled").
		Set("window-size", fmt.Sprintf("%d,%d", viewportWidth, viewportHeight))

	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching chrome: %w", err)
	}

	b := rod.New().ControlURL(u)
	if err := b.Connect(); err != nil {
		l.Kill()
		return nil, fmt.Errorf("connecting to chrome: %w", err)
	}

	s.launch = l
	s.brw = b
	s.logger.Info("browser session started", "profile", dir)
	return b, nil
}

// NewPage opens a tab with the desktop user agent and viewport applied,
// launching Chrome first if this is the session's first page.
func (s *Session) NewPage() (*rod.Page, error) {
	b, err := s.browser()
	if err != nil {
		return nil, err
	}

	page, err := b.Page(proto.TargetCreateTarget{URL: "about:blank"})
	if err != nil {
		return nil, fmt.Errorf("opening page: %w", err)
	}
	if err := page.SetUserAgent(&proto.NetworkSetUserAgentOverride{UserAgent: userAgent}); err != nil {
		page.Close()
		return nil, fmt.Errorf("setting user agent: %w", err)
	}
	if err := page.SetViewport(&proto.EmulationSetDeviceMetricsOverride{
		Width:             viewportWidth,
		Height:            viewportHeight,
		DeviceScaleFactor: 1,
	}); err != nil {
		page.Close()
		return nil, fmt.Errorf("setting viewport: %w", err)
	}
	return page, nil
}

// Close shuts Chrome down. The profile directory is kept so logins carry
// over to the next run.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.brw != nil {
		_ = s.brw.Close()
		s.brw = nil
	}
	if s.launch != nil {
		s.launch.Kill()
		s.launch = nil
	}
}

// pause sleeps for d unless the context ends first.
func pause(ctx context.Context, d time.Duration) {
	select {
	case <-ctx.Done():
	case <-time.After(d):
	}
}

// sleepRand pauses somewhere between min and max, mimicking a human reading
// the page instead of a fixed robotic cadence.
func sleepRand(ctx context.Context, min, max time.Duration) {
	d := min
	if max > min {
		d += rand.N(max - min)
	}
	pause(ctx, d)
}

func pageURL(page *rod.Page) string {
	info, err := page.Info()
	if err != nil {
		return ""
	}
	return info.URL
}

func scrollBy(page *rod.Page, px int) {
	_, _ = page.Eval(`(y) => window.scrollBy(0, y)`, px)
}

func scrollToBottom(page *rod.Page) {
	_, _ = page.Eval(`() => window.scrollTo(0, document.body.scrollHeight)`)
}

// navigate loads a URL and waits for the load event, bounded by navTimeout.
func navigate(page *rod.Page, url string) error {
	p := page.Timeout(navTimeout)
	if err := p.Navigate(url); err != nil {
		return err
	}
	return p.WaitLoad()
}

// waitLogin polls the page URL once per second until loggedIn reports true
// or the login window runs out. The user is expected to be typing their
// credentials in the open Chrome window meanwhile.
func waitLogin(ctx context.Context, page *rod.Page, loggedIn func(url string) bool) bool {
	deadline := time.Now().Add(loginWait)
	for time.Now().Before(deadline) {
		select {
		case <-ctx.Done():
			return false
		case <-time.After(time.Second):
		}
		if loggedIn(pageURL(page)) {
			return true
		}
	}
	return false
}

func urlContainsAny(u string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(u, m) {
			return true
		}
	}
	return false
}
