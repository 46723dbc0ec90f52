package gflights

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/chromedp/chromedp"

	"flight-tracker/config"
	"flight-tracker/models"
	"flight-tracker/utils"
)

const startURL = "https://www.google.com/travel/flights"

// Capturer drives a visible browser through the semi-automated search flow
// and captures a snapshot of the results page. It lives outside the
// extraction core: its only job is to produce a models.Snapshot.
type Capturer struct {
	cfg    *config.Config
	logger *utils.Logger
	retry  *utils.RetryConfig
}

// New creates a ready-to-use Capturer.
func New(cfg *config.Config, logger *utils.Logger) *Capturer {
	return &Capturer{
		cfg:    cfg,
		logger: logger,
		retry: &utils.RetryConfig{
			MaxAttempts: cfg.MaxRetries,
			BaseDelay:   2 * time.Second,
			Logger:      logger,
		},
	}
}

// Capture opens the flight search page, lets the operator complete the
// search manually, and returns a snapshot of the rendered results.
func (c *Capturer) Capture() (*models.Snapshot, error) {
	chromeBin := findChromeBinary(c.cfg.ChromeBin)
	c.logger.Info("[gflights] Using browser binary: %s", chromeBin)

	// The assist flow needs a visible window, so headless stays off.
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", false),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.Flag("start-maximized", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)
	if chromeBin != "" {
		opts = append(opts, chromedp.ExecPath(chromeBin))
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(context.Background(), opts...)
	defer cancelAlloc()

	// Suppress chromedp log noise
	allocCtx, cancelSilent := chromedp.NewContext(allocCtx, chromedp.WithLogf(func(string, ...interface{}) {}))
	defer cancelSilent()

	var snapshot *models.Snapshot
	err := c.retry.Do("capture-results-page", func() error {
		ctx, cancel := chromedp.NewContext(allocCtx)
		defer cancel()

		assist := time.Duration(c.cfg.SearchAssistSeconds) * time.Second
		ctx, cancelTimeout := context.WithTimeout(ctx, assist+120*time.Second)
		defer cancelTimeout()

		c.logger.Info("[gflights] Opening %s", startURL)
		if err := chromedp.Run(ctx, chromedp.Navigate(startURL), chromedp.Sleep(3*time.Second)); err != nil {
			return fmt.Errorf("chromedp navigate: %w", err)
		}

		c.logger.Info("[gflights] Please complete the search in the browser window:")
		c.logger.Info("[gflights]   1. Set origin to %s and destination to %s", c.cfg.Origin, c.cfg.Destination)
		c.logger.Info("[gflights]   2. Pick your dates and run the search")
		c.logger.Info("[gflights] Waiting %d seconds...", c.cfg.SearchAssistSeconds)

		var currentURL string
		if err := chromedp.Run(ctx,
			chromedp.Sleep(assist),
			chromedp.Location(&currentURL),
		); err != nil {
			return fmt.Errorf("chromedp wait for search: %w", err)
		}

		if !strings.Contains(currentURL, "search") && !strings.Contains(currentURL, "booking") {
			return fmt.Errorf("not on a results page: %s", currentURL)
		}
		c.logger.Info("[gflights] On results page: %s", currentURL)

		snap, err := c.captureSnapshot(ctx, currentURL)
		if err != nil {
			return err
		}
		snapshot = snap
		return nil
	})
	if err != nil {
		return nil, err
	}

	c.logger.Info("[gflights] Captured %d candidate elements", len(snapshot.Elements))
	return snapshot, nil
}

// captureSnapshot pulls the candidate elements and the attributes the
// selector strategies match on out of the live DOM.
func (c *Capturer) captureSnapshot(ctx context.Context, pageURL string) (*models.Snapshot, error) {
	type capturedElement struct {
		Tag          string `json:"tag"`
		Classes      string `json:"classes"`
		Role         string `json:"role"`
		JSController string `json:"jscontroller"`
		DataVed      string `json:"dataVed"`
		Text         string `json:"text"`
	}

	var captured []capturedElement
	err := chromedp.Run(ctx,
		chromedp.Sleep(3*time.Second),
		chromedp.Evaluate(`
			(function() {
				var nodes = document.querySelectorAll('li, div[jscontroller], div[data-ved]');
				var out = [];
				for (var i = 0; i < nodes.length && out.length < 400; i++) {
					var el = nodes[i];
					var text = (el.innerText || '').trim();
					if (!text) continue;
					var role = el.getAttribute('role') || '';
					if (!role && el.tagName === 'LI' && el.parentElement &&
							el.parentElement.getAttribute('role') === 'list') {
						role = 'listitem';
					}
					out.push({
						tag: el.tagName.toLowerCase(),
						classes: el.getAttribute('class') || '',
						role: role,
						jscontroller: el.getAttribute('jscontroller') || '',
						dataVed: el.getAttribute('data-ved') || '',
						text: text
					});
				}
				return out;
			})()
		`, &captured),
	)
	if err != nil {
		return nil, fmt.Errorf("chromedp snapshot: %w", err)
	}

	snap := &models.Snapshot{
		URL:        pageURL,
		CapturedAt: time.Now(),
		Elements:   make([]models.Element, 0, len(captured)),
	}
	for _, el := range captured {
		snap.Elements = append(snap.Elements, models.Element{
			Tag:          el.Tag,
			Classes:      el.Classes,
			Role:         el.Role,
			JSController: el.JSController,
			DataVed:      el.DataVed,
			Text:         el.Text,
		})
	}
	return snap, nil
}

// findChromeBinary locates a Chrome/Chromium binary.
func findChromeBinary(configured string) string {
	if configured != "" {
		return configured
	}

	names := []string{"google-chrome-stable", "google-chrome", "chromium", "chromium-browser"}
	for _, name := range names {
		if path, err := exec.LookPath(name); err == nil {
			return path
		}
	}

	paths := []string{
		"/usr/bin/google-chrome-stable",
		"/usr/bin/google-chrome",
		"/usr/bin/chromium-browser",
		"/usr/bin/chromium",
		"/snap/bin/chromium",
		"/opt/google/chrome/google-chrome",
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}
