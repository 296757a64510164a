package desktop

import (
	"context"
	"errors"

	"github.com/atotto/clipboard"
)

var errUnsupported = errors.New("no clipboard utility available on this system")

// SystemClipboard writes to the OS clipboard (pbcopy, xclip/xsel, wl-copy or
// the Windows API, depending on the platform).
type SystemClipboard struct{}

func NewSystemClipboard() *SystemClipboard { return &SystemClipboard{} }

func (c *SystemClipboard) Write(_ context.Context, text string) error {
	if clipboard.Unsupported {
		return errUnsupported
	}
	return clipboard.WriteAll(text)
}
