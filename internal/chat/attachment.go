package chat

import (
	"errors"

	"github.com/google/uuid"
)

// ErrPreviewReleased is returned when a preview handle is dereferenced after
// it has been released.
var ErrPreviewReleased = errors.New("preview handle released")

// Preview is a scoped local handle onto an attachment, used only for
// display. It is acquired when a file is selected and must be released on
// every path that retires it (cancel, replacement, log reset). A released
// handle can no longer be dereferenced.
type Preview struct {
	id       string
	name     string
	data     []byte
	released bool
}

// ID returns the unique id of this handle.
func (p *Preview) ID() string { return p.id }

// Name returns the file name the preview was derived from.
func (p *Preview) Name() string { return p.name }

// Bytes returns the previewed image content, or ErrPreviewReleased once the
// handle has been released.
func (p *Preview) Bytes() ([]byte, error) {
	if p.released {
		return nil, ErrPreviewReleased
	}
	return p.data, nil
}

// Released reports whether the handle has been released.
func (p *Preview) Released() bool { return p.released }

// Release invalidates the handle. Safe to call more than once.
func (p *Preview) Release() {
	p.released = true
	p.data = nil
}

// Attachment is a single pending image file for the next turn: the raw bytes
// destined for the request plus the preview handle destined for the
// transcript. Never shared across turns.
type Attachment struct {
	Name    string
	Data    []byte
	preview *Preview
}

// Preview returns the display handle for this attachment.
func (a *Attachment) Preview() *Preview { return a.preview }

// AttachmentManager holds at most one pending attachment. Like the log it is
// owned by a single goroutine. File content is accepted as-is; whether the
// bytes are a usable image is the backend's problem, not a contract here.
type AttachmentManager struct {
	pending *Attachment
}

// NewAttachmentManager creates an empty manager.
func NewAttachmentManager() *AttachmentManager {
	return &AttachmentManager{}
}

// Select stages a file for the next turn, replacing any pending attachment
// and releasing its preview. Returns the new attachment.
func (m *AttachmentManager) Select(name string, data []byte) *Attachment {
	m.Clear()
	m.pending = &Attachment{
		Name: name,
		Data: data,
		preview: &Preview{
			id:   uuid.NewString(),
			name: name,
			data: data,
		},
	}
	return m.pending
}

// Pending returns the staged attachment, or nil.
func (m *AttachmentManager) Pending() *Attachment {
	return m.pending
}

// Clear drops the pending attachment and invalidates its preview. No-op when
// nothing is staged.
func (m *AttachmentManager) Clear() {
	if m.pending != nil {
		m.pending.preview.Release()
		m.pending = nil
	}
}

// Take consumes the pending attachment for a submit: the slot empties but the
// attachment, and with it the preview handle, transfers to the caller. The
// preview stays live so the transcript can keep showing it; it is released
// when the log is reset.
func (m *AttachmentManager) Take() *Attachment {
	att := m.pending
	m.pending = nil
	return att
}
