package desktop

import (
	"context"
	"fmt"

	"github.com/pkg/browser"
	logger "github.com/sirupsen/logrus"
)

// BrowserURLOpener opens URLs in the system browser. With headless set it
// only prints them.
type BrowserURLOpener struct {
	headless bool
}

func NewBrowserURLOpener(headless bool) *BrowserURLOpener {
	return &BrowserURLOpener{headless: headless}
}

func (o *BrowserURLOpener) Open(_ context.Context, url string) error {
	if o.headless {
		logger.Infof("Repository: %s", url)
		return nil
	}
	if err := browser.OpenURL(url); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}
	return nil
}
