// Package clipboard exchanges plain text with the outside world.
package clipboard

import (
	"sync"

	"github.com/atotto/clipboard"

	"github.com/zjrosen/scribe/internal/log"
)

// Clipboard reads and writes plain text.
type Clipboard interface {
	ReadAll() (string, error)
	WriteAll(text string) error
}

// System is the operating system clipboard.
type System struct{}

func (System) ReadAll() (string, error) { return clipboard.ReadAll() }

func (System) WriteAll(text string) error { return clipboard.WriteAll(text) }

// Memory is a process-local clipboard.
type Memory struct {
	mu   sync.Mutex
	text string
}

func (m *Memory) ReadAll() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.text, nil
}

func (m *Memory) WriteAll(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.text = text
	return nil
}

// Auto returns the system clipboard when the platform supports one and a
// Memory clipboard otherwise (headless sessions, missing xclip/xsel).
func Auto() Clipboard {
	if clipboard.Unsupported {
		log.Warn(log.CatClipboard, "System clipboard unsupported, using in-memory clipboard")
		return &Memory{}
	}
	return System{}
}
