// Package tabs answers "what is the user looking at right now". In the
// browser this was the tab-query API; here the capture source is the
// system clipboard: copy a link in the browser, capture it in the panel.
package tabs

import (
	"errors"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
)

// DefaultTitle is used when the capture source carries no title of its
// own, which a copied URL never does.
const DefaultTitle = "Untitled"

// ErrNoTab is returned when there is nothing to capture.
var ErrNoTab = errors.New("no active tab found")

// Tab is a capturable reference to a web resource.
type Tab struct {
	Title string
	URL   string
}

// Querier reports the tab the user wants to capture.
type Querier interface {
	ActiveTab() (Tab, error)
}

// ClipboardQuerier reads the capture target from the system clipboard.
type ClipboardQuerier struct{}

func (ClipboardQuerier) ActiveTab() (Tab, error) {
	text, err := clipboard.ReadAll()
	if err != nil {
		return Tab{}, fmt.Errorf("read clipboard: %w", err)
	}
	return FromClipboard(text)
}

// FromClipboard interprets a clipboard payload as a tab. The first line
// is the URL; an optional second line is the title (some browsers copy
// "url\ntitle" from the address bar context menu).
func FromClipboard(text string) (Tab, error) {
	lines := strings.SplitN(strings.TrimSpace(text), "\n", 2)
	url := strings.TrimSpace(lines[0])
	if url == "" {
		return Tab{}, ErrNoTab
	}

	title := DefaultTitle
	if len(lines) > 1 {
		if t := strings.TrimSpace(lines[1]); t != "" {
			title = t
		}
	}
	return Tab{Title: title, URL: url}, nil
}

// internalSchemes are browser system pages that must not be captured.
var internalSchemes = []string{
	"chrome://",
	"chrome-extension://",
	"about:",
	"edge://",
	"brave://",
	"opera://",
	"vivaldi://",
	"moz-extension://",
}

// IsInternalURL reports whether the URL belongs to a browser's internal
// or system pages.
func IsInternalURL(url string) bool {
	for _, scheme := range internalSchemes {
		if strings.HasPrefix(url, scheme) {
			return true
		}
	}
	return false
}
